package models

import "encoding/json"

// Identity is the opaque name of the node the dashboard talks to.
type Identity string

// LinearID identifies an NDA request across its successive versions.
type LinearID struct {
	ExternalID *string `json:"externalId"`
	ID         string  `json:"id"`
}

// NdaRequest is the state.data payload of a pending NDA request.
type NdaRequest struct {
	LinearID            LinearID `json:"linearId"`
	NdaRequestText      string   `json:"ndaRequestText"`
	NdaRequestEmitter   string   `json:"ndaRequestEmitter"`
	NdaRequestRecipient string   `json:"ndaRequestRecipient"`
	Participants        []string `json:"participants,omitempty"`

	// Fields holds every field of the payload, including the ones above.
	Fields map[string]any `json:"-"`
}

// UnmarshalJSON decodes the known fields and keeps the full payload in Fields.
func (r *NdaRequest) UnmarshalJSON(data []byte) error {
	type plain NdaRequest
	var p plain
	if err := json.Unmarshal(data, &p); err != nil {
		return err
	}
	var fields map[string]any
	if err := json.Unmarshal(data, &fields); err != nil {
		return err
	}
	*r = NdaRequest(p)
	r.Fields = fields
	return nil
}

// Clone returns a deep copy so views can hold a request without aliasing the list.
func (r NdaRequest) Clone() NdaRequest {
	c := r
	if r.LinearID.ExternalID != nil {
		ext := *r.LinearID.ExternalID
		c.LinearID.ExternalID = &ext
	}
	if r.Participants != nil {
		c.Participants = append([]string(nil), r.Participants...)
	}
	if r.Fields != nil {
		c.Fields = cloneValue(r.Fields).(map[string]any)
	}
	return c
}

func cloneValue(v any) any {
	switch t := v.(type) {
	case map[string]any:
		m := make(map[string]any, len(t))
		for k, e := range t {
			m[k] = cloneValue(e)
		}
		return m
	case []any:
		s := make([]any, len(t))
		for i, e := range t {
			s[i] = cloneValue(e)
		}
		return s
	default:
		return v
	}
}

// Outcome tags a submission result.
type Outcome int

const (
	OutcomeSuccess Outcome = iota
	OutcomeFailure
)

func (o Outcome) String() string {
	if o == OutcomeSuccess {
		return "success"
	}
	return "failure"
}

// ReviewResult is the result of a PUT to the backend. Success and failure are
// displayed the same way; Outcome tells them apart.
type ReviewResult struct {
	Outcome    Outcome
	StatusCode int
	Body       string
	Err        error
}

// Message renders the result the way the message modal shows it.
func (r ReviewResult) Message() string {
	if r.Err != nil {
		return r.Err.Error()
	}
	if r.Body == "" {
		return r.Outcome.String()
	}
	return r.Body
}
