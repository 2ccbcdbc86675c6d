// Package dashboard holds the view-independent controllers of the NDA
// dashboard: the list of pending requests and the review of one request.
package dashboard

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"

	"github.com/deathrjj/nda-dashboard-tui/config"
	"github.com/deathrjj/nda-dashboard-tui/models"
)

// API is the subset of the backend the controllers use.
type API interface {
	APIBaseURL() string
	Me(ctx context.Context) (models.Identity, error)
	Peers(ctx context.Context) ([]models.Identity, error)
	NdaRequests(ctx context.Context) ([]models.NdaRequest, error)
	ReviewNda(ctx context.Context, previousStateID, text string) models.ReviewResult
	CreateNdaRequest(ctx context.Context, text string, party models.Identity) models.ReviewResult
}

// ListController loads the node identity and the pending requests.
type ListController struct {
	api    API
	policy config.ClosePolicy

	mu       sync.RWMutex
	identity models.Identity
	requests []models.NdaRequest

	// OnChange, when set, is called after the identity or the list is replaced.
	OnChange func()
}

// NewListController creates a list controller; policy is handed to every
// review controller it opens.
func NewListController(api API, policy config.ClosePolicy) *ListController {
	if policy == "" {
		policy = config.CloseOptimistic
	}
	return &ListController{api: api, policy: policy}
}

func (c *ListController) changed() {
	if c.OnChange != nil {
		c.OnChange()
	}
}

// LoadIdentity fetches and stores the node identity.
func (c *ListController) LoadIdentity(ctx context.Context) error {
	me, err := c.api.Me(ctx)
	if err != nil {
		log.Printf("dashboard: load identity: %v", err)
		return fmt.Errorf("load identity: %w", err)
	}
	c.mu.Lock()
	c.identity = me
	c.mu.Unlock()
	c.changed()
	return nil
}

// LoadRequests replaces the stored list with the server's pending requests.
func (c *ListController) LoadRequests(ctx context.Context) error {
	requests, err := c.api.NdaRequests(ctx)
	if err != nil {
		log.Printf("dashboard: load NDA requests: %v", err)
		return fmt.Errorf("load NDA requests: %w", err)
	}
	c.mu.Lock()
	c.requests = requests
	c.mu.Unlock()
	log.Printf("dashboard: loaded %d NDA requests", len(requests))
	c.changed()
	return nil
}

// Load fetches the identity and the requests concurrently.
func (c *ListController) Load(ctx context.Context) error {
	var (
		wg                sync.WaitGroup
		identErr, listErr error
	)
	wg.Add(2)
	go func() {
		defer wg.Done()
		identErr = c.LoadIdentity(ctx)
	}()
	go func() {
		defer wg.Done()
		listErr = c.LoadRequests(ctx)
	}()
	wg.Wait()
	return errors.Join(identErr, listErr)
}

// Identity returns the node identity, empty until loaded.
func (c *ListController) Identity() models.Identity {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.identity
}

// Requests returns a copy of the displayed requests, most recent first.
func (c *ListController) Requests() []models.NdaRequest {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]models.NdaRequest, len(c.requests))
	for i, r := range c.requests {
		out[i] = r.Clone()
	}
	return out
}

// Request returns a copy of the request at index i.
func (c *ListController) Request(i int) (models.NdaRequest, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if i < 0 || i >= len(c.requests) {
		return models.NdaRequest{}, false
	}
	return c.requests[i].Clone(), true
}

// OpenReview prepares the review of request. The returned controller holds
// its own copy of the request.
func (c *ListController) OpenReview(request models.NdaRequest, view ReviewView) *ReviewController {
	return &ReviewController{
		Request:    request.Clone(),
		APIBaseURL: c.api.APIBaseURL(),
		api:        c.api,
		view:       view,
		policy:     c.policy,
		refresh:    c.LoadRequests,
	}
}

// Peers lists the parties a new request can be addressed to.
func (c *ListController) Peers(ctx context.Context) ([]models.Identity, error) {
	peers, err := c.api.Peers(ctx)
	if err != nil {
		return nil, fmt.Errorf("load peers: %w", err)
	}
	return peers, nil
}

// CreateRequest starts a new NDA request with party and refreshes the list.
// A failed refresh is logged; the result of the creation is returned as is.
func (c *ListController) CreateRequest(ctx context.Context, text string, party models.Identity) models.ReviewResult {
	result := c.api.CreateNdaRequest(ctx, text, party)
	log.Printf("dashboard: create NDA request with %s: %s (%d)", party, result.Outcome, result.StatusCode)
	if err := c.LoadRequests(ctx); err != nil {
		log.Printf("dashboard: refresh after create: %v", err)
	}
	return result
}
