package services

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"pragati/models"

	"github.com/rs/zerolog"
)

// ErrInvalidFeedback is returned when a submission is rejected client-side,
// before any network call.
var ErrInvalidFeedback = errors.New("invalid feedback")

var validImplementationStatuses = map[string]bool{
	models.StatusImplemented:          true,
	models.StatusPartiallyImplemented: true,
	models.StatusPlanning:             true,
	models.StatusNotApplicable:        true,
}

// FeedbackForm submits one rating for a generated module. It keeps no state
// beyond a submitted flag for the current form instance; after a failure the
// form stays usable for a retry.
type FeedbackForm struct {
	api *APIClient
	log zerolog.Logger

	mu        sync.Mutex
	submitted bool
}

func NewFeedbackForm(api *APIClient, log zerolog.Logger) *FeedbackForm {
	return &FeedbackForm{api: api, log: log}
}

func (f *FeedbackForm) Submitted() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.submitted
}

func (f *FeedbackForm) Submit(ctx context.Context, fb models.Feedback) error {
	if fb.Rating < 1 || fb.Rating > 5 {
		return fmt.Errorf("%w: rating must be between 1 and 5, got %d", ErrInvalidFeedback, fb.Rating)
	}
	if !validImplementationStatuses[fb.ImplementationStatus] {
		return fmt.Errorf("%w: unknown implementation status %q", ErrInvalidFeedback, fb.ImplementationStatus)
	}

	feedbackID, err := f.api.SubmitFeedback(ctx, fb)
	if err != nil {
		f.log.Error().Err(err).Str("module_id", fb.ModuleID).Msg("feedback submission failed")
		return err
	}

	f.mu.Lock()
	f.submitted = true
	f.mu.Unlock()

	f.log.Info().Str("feedback_id", feedbackID).Str("module_id", fb.ModuleID).Msg("feedback submitted")
	return nil
}
