package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/deathrjj/nda-dashboard-tui/models"
)

// ErrUnexpectedStatus is wrapped by StatusError.
var ErrUnexpectedStatus = errors.New("unexpected status")

// StatusError reports a GET that the backend answered with an error status.
type StatusError struct {
	Method     string
	URL        string
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	msg := fmt.Sprintf("%s %s: %d %s", e.Method, e.URL, e.StatusCode, http.StatusText(e.StatusCode))
	if body := strings.TrimSpace(e.Body); body != "" {
		msg += ": " + body
	}
	return msg
}

func (e *StatusError) Unwrap() error { return ErrUnexpectedStatus }

// Client handles the NDA backend API interactions
type Client struct {
	BaseURL  string
	BasePath string
	client   *http.Client
}

// NewClient creates a new API client for baseURL, with endpoints under basePath.
func NewClient(baseURL, basePath string, timeout time.Duration) *Client {
	return &Client{
		BaseURL:  strings.TrimRight(baseURL, "/"),
		BasePath: basePath,
		client: &http.Client{
			Timeout: timeout,
		},
	}
}

// APIBaseURL is the path every endpoint is resolved against.
func (c *Client) APIBaseURL() string {
	return c.BasePath
}

func (c *Client) endpoint(name string, query url.Values) string {
	u := c.BaseURL + c.BasePath + name
	if len(query) > 0 {
		u += "?" + query.Encode()
	}
	return u
}

func (c *Client) get(ctx context.Context, name string, out any) error {
	u := c.endpoint(name, nil)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return err
	}
	body, err := io.ReadAll(resp.Body)
	resp.Body.Close()
	if err != nil {
		return err
	}
	if resp.StatusCode >= http.StatusBadRequest {
		return &StatusError{Method: http.MethodGet, URL: u, StatusCode: resp.StatusCode, Body: string(body)}
	}

	switch o := out.(type) {
	case *[]byte:
		*o = body
		return nil
	default:
		if err := json.Unmarshal(body, out); err != nil {
			return fmt.Errorf("decode %s: %w", name, err)
		}
		return nil
	}
}

// put never fails: every outcome, transport errors included, becomes a tagged result.
func (c *Client) put(ctx context.Context, name string, query url.Values) models.ReviewResult {
	req, err := http.NewRequestWithContext(ctx, http.MethodPut, c.endpoint(name, query), nil)
	if err != nil {
		return models.ReviewResult{Outcome: models.OutcomeFailure, Err: err}
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return models.ReviewResult{Outcome: models.OutcomeFailure, Err: err}
	}
	body, err := io.ReadAll(resp.Body)
	resp.Body.Close()

	result := models.ReviewResult{
		Outcome:    models.OutcomeSuccess,
		StatusCode: resp.StatusCode,
		Body:       string(body),
		Err:        err,
	}
	if resp.StatusCode >= http.StatusBadRequest || err != nil {
		result.Outcome = models.OutcomeFailure
	}
	return result
}

// Me retrieves the identity of the node.
func (c *Client) Me(ctx context.Context) (models.Identity, error) {
	var resp struct {
		Me json.RawMessage `json:"me"`
	}
	if err := c.get(ctx, "me", &resp); err != nil {
		return "", err
	}
	return decodeIdentity(resp.Me)
}

// Peers retrieves the names of the counterparties known to the node.
func (c *Client) Peers(ctx context.Context) ([]models.Identity, error) {
	var resp struct {
		Peers []json.RawMessage `json:"peers"`
	}
	if err := c.get(ctx, "peers", &resp); err != nil {
		return nil, err
	}
	peers := make([]models.Identity, 0, len(resp.Peers))
	for _, raw := range resp.Peers {
		id, err := decodeIdentity(raw)
		if err != nil {
			return nil, err
		}
		peers = append(peers, id)
	}
	return peers, nil
}

// NdaRequests retrieves the pending NDA requests, most recent first.
func (c *Client) NdaRequests(ctx context.Context) ([]models.NdaRequest, error) {
	var body []byte
	if err := c.get(ctx, "getNdaRequests", &body); err != nil {
		return nil, err
	}
	return DecodeNdaRequests(body)
}

// ReviewNda submits review text for the request with the given linear id.
func (c *Client) ReviewNda(ctx context.Context, previousStateID, text string) models.ReviewResult {
	return c.put(ctx, "review-nda", url.Values{
		"ndaPreviousStateId": {previousStateID},
		"ndaRequestText":     {text},
	})
}

// CreateNdaRequest starts a new NDA request with party.
func (c *Client) CreateNdaRequest(ctx context.Context, text string, party models.Identity) models.ReviewResult {
	return c.put(ctx, "create-ndarequest", url.Values{
		"ndaRequestText": {text},
		"partyName":      {string(party)},
	})
}

func decodeIdentity(raw json.RawMessage) (models.Identity, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return "", nil
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return models.Identity(s), nil
	}
	var buf bytes.Buffer
	if err := json.Compact(&buf, raw); err != nil {
		return "", fmt.Errorf("decode identity: %w", err)
	}
	return models.Identity(buf.String()), nil
}
