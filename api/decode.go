package api

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/deathrjj/nda-dashboard-tui/models"
)

type stateAndRef struct {
	State struct {
		Data json.RawMessage `json:"data"`
	} `json:"state"`
}

// DecodeNdaRequests turns a getNdaRequests body into the state.data payloads
// in reverse server order. The body may be an array or an object keyed by
// arbitrary strings; objects are walked in document order.
func DecodeNdaRequests(body []byte) ([]models.NdaRequest, error) {
	entries, err := orderedEntries(body)
	if err != nil {
		return nil, fmt.Errorf("decode getNdaRequests: %w", err)
	}

	requests := make([]models.NdaRequest, 0, len(entries))
	for i := len(entries) - 1; i >= 0; i-- {
		var entry stateAndRef
		if err := json.Unmarshal(entries[i], &entry); err != nil {
			return nil, fmt.Errorf("decode getNdaRequests entry %d: %w", i, err)
		}
		var req models.NdaRequest
		if len(entry.State.Data) > 0 {
			if err := json.Unmarshal(entry.State.Data, &req); err != nil {
				return nil, fmt.Errorf("decode getNdaRequests entry %d data: %w", i, err)
			}
		}
		requests = append(requests, req)
	}
	return requests, nil
}

func orderedEntries(body []byte) ([]json.RawMessage, error) {
	dec := json.NewDecoder(bytes.NewReader(body))
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	if tok == nil {
		return nil, nil
	}
	delim, ok := tok.(json.Delim)
	if !ok || (delim != '[' && delim != '{') {
		return nil, fmt.Errorf("expected array or object, got %v", tok)
	}

	var entries []json.RawMessage
	for dec.More() {
		if delim == '{' {
			if _, err := dec.Token(); err != nil {
				return nil, err
			}
		}
		var raw json.RawMessage
		if err := dec.Decode(&raw); err != nil {
			return nil, err
		}
		entries = append(entries, raw)
	}
	if _, err := dec.Token(); err != nil {
		return nil, err
	}
	return entries, nil
}
