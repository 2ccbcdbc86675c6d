package dashboard

import (
	"context"
	"errors"
	"log"
	"sync"

	"github.com/deathrjj/nda-dashboard-tui/config"
	"github.com/deathrjj/nda-dashboard-tui/models"
)

// ErrReviewClosed is returned when a review that is no longer open is acted on.
var ErrReviewClosed = errors.New("review is no longer open")

// ReviewState is the lifecycle of a review modal.
type ReviewState int

const (
	ReviewOpen ReviewState = iota
	ReviewSubmitting
	ReviewClosed
	ReviewCancelled
)

func (s ReviewState) String() string {
	switch s {
	case ReviewOpen:
		return "open"
	case ReviewSubmitting:
		return "submitting"
	case ReviewClosed:
		return "closed"
	case ReviewCancelled:
		return "cancelled"
	}
	return "unknown"
}

// ReviewView is what a review controller drives on screen.
type ReviewView interface {
	// Close removes the review modal after a submission.
	Close()
	// Dismiss removes the review modal without submitting.
	Dismiss()
	// DisplayMessage opens the message modal over whatever is showing.
	DisplayMessage(result models.ReviewResult)
}

// Form is the text the user types into an open review.
type Form struct {
	Text string
}

// ReviewController submits a review for one request. The form is written
// from the UI goroutine and read by Submit, so it is only reachable through
// SetText and Text.
type ReviewController struct {
	Request    models.NdaRequest
	APIBaseURL string

	api     API
	view    ReviewView
	policy  config.ClosePolicy
	refresh func(context.Context) error

	mu    sync.Mutex
	state ReviewState
	form  Form
}

// SetText replaces the review text. It is ignored once the review has left
// the open state, so edits made while a submission is in flight are dropped.
func (r *ReviewController) SetText(text string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.state == ReviewOpen {
		r.form.Text = text
	}
}

// Text returns the current review text.
func (r *ReviewController) Text() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.form.Text
}

// State reports where the review is in its lifecycle.
func (r *ReviewController) State() ReviewState {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.state
}

// transition moves from one state to another and returns the form text as
// it was at that moment.
func (r *ReviewController) transition(from, to ReviewState) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.state != from {
		return "", ErrReviewClosed
	}
	r.state = to
	return r.form.Text, nil
}

// Submit sends the form text as a review of the request. The result, success
// or failure, goes to the message modal and the list is refreshed once.
// The text sent is the one set when Submit is called.
// It blocks until the backend answers; views call it off the UI goroutine.
func (r *ReviewController) Submit(ctx context.Context) (models.ReviewResult, error) {
	text, err := r.transition(ReviewOpen, ReviewSubmitting)
	if err != nil {
		return models.ReviewResult{}, err
	}
	if r.policy != config.CloseOnResponse {
		r.view.Close()
	}

	result := r.api.ReviewNda(ctx, r.Request.LinearID.ID, text)
	log.Printf("dashboard: review of %s: %s (%d)", r.Request.LinearID.ID, result.Outcome, result.StatusCode)

	if r.policy == config.CloseOnResponse {
		r.view.Close()
	}
	r.mu.Lock()
	r.state = ReviewClosed
	r.mu.Unlock()

	r.DisplayMessage(result)
	if r.refresh != nil {
		if err := r.refresh(ctx); err != nil {
			log.Printf("dashboard: refresh after review: %v", err)
		}
	}
	return result, nil
}

// DisplayMessage shows result in the message modal.
func (r *ReviewController) DisplayMessage(result models.ReviewResult) {
	r.view.DisplayMessage(result)
}

// Cancel dismisses the review without talking to the backend.
func (r *ReviewController) Cancel() error {
	if _, err := r.transition(ReviewOpen, ReviewCancelled); err != nil {
		return err
	}
	r.view.Dismiss()
	return nil
}
