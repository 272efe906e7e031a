package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"pragati/models"

	"github.com/rs/zerolog"
)

// ErrGenerationInFlight is returned when Submit is called while a prior
// generation has not finished. Generations are strictly sequential per
// session.
var ErrGenerationInFlight = errors.New("a generation request is already in flight")

// New conversations take the first 50 characters of the challenge as title.
const titlePrefixLen = 50

// GenerationWorkflow turns a teacher's free-text challenge into a generated
// module, creating a conversation lazily when none is active.
type GenerationWorkflow struct {
	api      *APIClient
	session  *SessionService
	dialects *DialectRegistry
	log      zerolog.Logger

	difficulty string

	mu            sync.Mutex
	generating    bool
	currentModule *models.Module
}

func NewGenerationWorkflow(api *APIClient, session *SessionService, dialects *DialectRegistry, difficulty string, log zerolog.Logger) *GenerationWorkflow {
	return &GenerationWorkflow{
		api:        api,
		session:    session,
		dialects:   dialects,
		difficulty: difficulty,
		log:        log,
	}
}

func (w *GenerationWorkflow) IsGenerating() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.generating
}

// CurrentModule is the most recently generated module, kept for feedback
// binding. Nil until the first successful generation.
func (w *GenerationWorkflow) CurrentModule() *models.Module {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.currentModule
}

// Submit runs one generation cycle: ensure a conversation, call the
// generation service, then reload the server-confirmed message history.
// Blank input is silently ignored.
func (w *GenerationWorkflow) Submit(ctx context.Context, text string, targetDuration int) error {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil
	}

	w.mu.Lock()
	if w.generating {
		w.mu.Unlock()
		return ErrGenerationInFlight
	}
	w.generating = true
	w.mu.Unlock()
	defer func() {
		w.mu.Lock()
		w.generating = false
		w.mu.Unlock()
	}()

	convID := w.session.ActiveConversationID()
	if convID == 0 {
		id, err := w.api.CreateConversation(ctx, titlePrefix(text))
		if err != nil {
			w.log.Error().Err(err).Msg("conversation create failed")
			return fmt.Errorf("create conversation: %w", err)
		}
		w.session.adopt(id)
		convID = id
		// Sidebar list refresh; already logged on failure.
		_ = w.session.LoadConversations(ctx)
	}

	req := models.GenerateRequest{
		Challenge:       text,
		TargetDuration:  targetDuration,
		DifficultyLevel: w.difficulty,
		ConversationID:  convID,
		Language:        w.dialects.Selected(),
	}

	module, err := w.api.GenerateModule(ctx, req)
	if err != nil {
		w.log.Error().Err(err).Int64("conversation_id", convID).Msg("module generation failed")
		return err
	}

	// Reload the full history instead of appending locally, so the view
	// matches server-confirmed state.
	w.session.LoadMessages(ctx, convID)

	w.mu.Lock()
	w.currentModule = module
	w.mu.Unlock()

	w.log.Info().
		Str("module_id", module.ID).
		Int("target_duration", targetDuration).
		Msg("module generated")
	return nil
}

func titlePrefix(text string) string {
	runes := []rune(text)
	if len(runes) > titlePrefixLen {
		return string(runes[:titlePrefixLen])
	}
	return text
}
