package services

import (
	"context"
	"sync"

	"pragati/models"

	"github.com/rs/zerolog"
)

// SessionService is the single source of truth for which conversation is
// active and what its messages are. Messages are always replaced wholesale
// with a server-confirmed list, never patched in place.
type SessionService struct {
	api *APIClient
	log zerolog.Logger

	mu            sync.Mutex
	conversations []models.Conversation
	activeConvID  int64 // 0 means no active conversation
	messages      []models.Message
	fetchSeq      uint64
}

func NewSessionService(api *APIClient, log zerolog.Logger) *SessionService {
	return &SessionService{api: api, log: log}
}

func (s *SessionService) Conversations() []models.Conversation {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.Conversation, len(s.conversations))
	copy(out, s.conversations)
	return out
}

func (s *SessionService) ActiveConversationID() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.activeConvID
}

func (s *SessionService) HasActiveConversation() bool {
	return s.ActiveConversationID() != 0
}

func (s *SessionService) Messages() []models.Message {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.Message, len(s.messages))
	copy(out, s.messages)
	return out
}

// LoadConversations refreshes the conversation list. On failure the prior
// list stays as-is; stale but valid beats empty.
func (s *SessionService) LoadConversations(ctx context.Context) error {
	conversations, err := s.api.GetConversations(ctx)
	if err != nil {
		s.log.Warn().Err(err).Msg("conversations load failed")
		return err
	}

	s.mu.Lock()
	s.conversations = conversations
	s.mu.Unlock()
	return nil
}

// SelectConversation makes id the active conversation and re-fetches its
// messages. Selecting the already-active id still re-fetches; messages are
// never cached across selections.
func (s *SessionService) SelectConversation(ctx context.Context, id int64) {
	s.mu.Lock()
	s.activeConvID = id
	s.mu.Unlock()

	s.LoadMessages(ctx, id)
}

// LoadMessages replaces the message list with the server's sequence for id.
// Each fetch is tagged with the conversation it was issued for and a
// sequence number; a result that arrives after the active conversation has
// changed, or after a newer fetch started, is discarded. On failure the
// prior messages stay untouched.
func (s *SessionService) LoadMessages(ctx context.Context, id int64) {
	s.mu.Lock()
	s.fetchSeq++
	seq := s.fetchSeq
	s.mu.Unlock()

	messages, err := s.api.GetConversationMessages(ctx, id)
	if err != nil {
		s.log.Warn().Err(err).Int64("conversation_id", id).Msg("messages load failed")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.activeConvID != id || seq != s.fetchSeq {
		s.log.Debug().Int64("conversation_id", id).Msg("discarding stale message fetch")
		return
	}
	s.messages = messages
}

// StartNewSession drops back to the conversation-less state. No remote call.
func (s *SessionService) StartNewSession() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.activeConvID = 0
	s.messages = nil
}

// adopt binds a conversation created by the generation workflow without
// triggering a message fetch.
func (s *SessionService) adopt(id int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.activeConvID = id
}
