package services

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"pragati/models"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// fakeBackend is an in-memory PRAGATI backend served over httptest for the
// service tests. Failure toggles and delays simulate the collaborator
// failure modes.
type fakeBackend struct {
	mu sync.Mutex

	conversations []models.Conversation
	messages      map[int64][]models.Message
	nextConvID    int64
	nextMsgID     int64

	generateCalls []models.GenerateRequest
	adaptCalls    int
	feedback      []models.Feedback

	failConversations bool
	failCreate        bool
	failMessages      bool
	failGenerate      bool
	failAdapt         bool
	failLanguages     bool
	failFeedback      bool

	generateDelay time.Duration
	adaptDelay    time.Duration
	messagesDelay map[int64]time.Duration

	languages []models.Dialect
}

func newFakeBackend() *fakeBackend {
	return &fakeBackend{
		messages:      make(map[int64][]models.Message),
		messagesDelay: make(map[int64]time.Duration),
	}
}

func (f *fakeBackend) router() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()

	r.GET("/api/conversations", f.getConversations)
	r.POST("/api/conversations", f.createConversation)
	r.GET("/api/conversations/:id/messages", f.getMessages)
	r.POST("/api/generate", f.generate)
	r.POST("/api/adapt", f.adapt)
	r.POST("/api/feedback", f.submitFeedback)
	r.GET("/api/languages", f.getLanguages)
	r.GET("/api/feedback/stats", f.feedbackStats)
	r.POST("/api/ingest", f.ingest)

	return r
}

// start serves the fake backend and returns an APIClient pointed at it.
func (f *fakeBackend) start(t *testing.T) *APIClient {
	t.Helper()
	server := httptest.NewServer(f.router())
	t.Cleanup(server.Close)
	return NewAPIClient(server.URL, 5*time.Second, zerolog.Nop())
}

// addConversation seeds a conversation with the given messages.
func (f *fakeBackend) addConversation(title string, messages ...models.Message) int64 {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextConvID++
	id := f.nextConvID
	f.conversations = append(f.conversations, models.Conversation{
		ID:        id,
		Title:     title,
		CreatedAt: models.Timestamp{Time: time.Now().UTC()},
		UpdatedAt: models.Timestamp{Time: time.Now().UTC()},
	})
	for _, msg := range messages {
		f.nextMsgID++
		msg.ID = f.nextMsgID
		msg.ConversationID = id
		f.messages[id] = append(f.messages[id], msg)
	}
	return id
}

func (f *fakeBackend) conversationTitle(id int64) string {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, conv := range f.conversations {
		if conv.ID == id {
			return conv.Title
		}
	}
	return ""
}

func (f *fakeBackend) generateCallCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.generateCalls)
}

func (f *fakeBackend) adaptCallCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.adaptCalls
}

func (f *fakeBackend) getConversations(c *gin.Context) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failConversations {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "boom"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "conversations": f.conversations})
}

func (f *fakeBackend) createConversation(c *gin.Context) {
	f.mu.Lock()
	if f.failCreate {
		f.mu.Unlock()
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "boom"})
		return
	}
	f.mu.Unlock()

	title := c.Query("title")
	if title == "" {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "title is required"})
		return
	}
	id := f.addConversation(title)
	c.JSON(http.StatusOK, gin.H{"success": true, "conversation_id": id})
}

func (f *fakeBackend) getMessages(c *gin.Context) {
	var id int64
	if _, err := fmt.Sscanf(c.Param("id"), "%d", &id); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "bad id"})
		return
	}

	f.mu.Lock()
	delay := f.messagesDelay[id]
	fail := f.failMessages
	f.mu.Unlock()

	if delay > 0 {
		time.Sleep(delay)
	}
	if fail {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "boom"})
		return
	}

	f.mu.Lock()
	messages := f.messages[id]
	f.mu.Unlock()
	c.JSON(http.StatusOK, gin.H{"success": true, "messages": messages})
}

func (f *fakeBackend) generate(c *gin.Context) {
	var req models.GenerateRequest
	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
		return
	}

	f.mu.Lock()
	f.generateCalls = append(f.generateCalls, req)
	delay := f.generateDelay
	fail := f.failGenerate
	f.mu.Unlock()

	if delay > 0 {
		time.Sleep(delay)
	}
	if fail {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "boom"})
		return
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	module := &models.Module{
		ID:              fmt.Sprintf("mod-%d", len(f.generateCalls)),
		Title:           "Module: " + req.Challenge,
		Challenge:       req.Challenge,
		TotalDuration:   req.TargetDuration,
		DifficultyLevel: req.DifficultyLevel,
		Language:        req.Language,
		Sections: []models.Section{
			{Title: "Warm-up", Content: "Introduce the topic.", DurationMinutes: req.TargetDuration / 3},
			{Title: "Core activity", Content: "Guided practice.", DurationMinutes: req.TargetDuration - req.TargetDuration/3, Activity: "Group work"},
		},
		CreatedAt: models.Timestamp{Time: time.Now().UTC()},
	}

	f.nextMsgID++
	f.messages[req.ConversationID] = append(f.messages[req.ConversationID], models.Message{
		ID:             f.nextMsgID,
		ConversationID: req.ConversationID,
		Role:           models.RoleUser,
		Content:        req.Challenge,
		CreatedAt:      models.Timestamp{Time: time.Now().UTC()},
	})
	f.nextMsgID++
	f.messages[req.ConversationID] = append(f.messages[req.ConversationID], models.Message{
		ID:             f.nextMsgID,
		ConversationID: req.ConversationID,
		Role:           models.RoleAssistant,
		Content:        "Module generated",
		ModuleData:     module,
		CreatedAt:      models.Timestamp{Time: time.Now().UTC()},
	})

	c.JSON(http.StatusOK, gin.H{"success": true, "module": module})
}

func (f *fakeBackend) adapt(c *gin.Context) {
	var req struct {
		Text           string `json:"text"`
		TargetLanguage string `json:"target_language"`
		SourceLanguage string `json:"source_language"`
	}
	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
		return
	}

	f.mu.Lock()
	f.adaptCalls++
	delay := f.adaptDelay
	fail := f.failAdapt
	f.mu.Unlock()

	if delay > 0 {
		time.Sleep(delay)
	}
	if fail {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "boom"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":         true,
		"translated_text": "[" + req.TargetLanguage + "] " + req.Text,
		"source_language": req.SourceLanguage,
		"target_language": req.TargetLanguage,
	})
}

func (f *fakeBackend) submitFeedback(c *gin.Context) {
	var fb models.Feedback
	if err := c.BindJSON(&fb); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
		return
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failFeedback {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "boom"})
		return
	}
	f.feedback = append(f.feedback, fb)
	c.JSON(http.StatusOK, gin.H{
		"success":     true,
		"message":     "Feedback submitted successfully",
		"feedback_id": fmt.Sprintf("%d", len(f.feedback)),
	})
}

func (f *fakeBackend) getLanguages(c *gin.Context) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failLanguages {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "boom"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"languages": f.languages})
}

func (f *fakeBackend) feedbackStats(c *gin.Context) {
	f.mu.Lock()
	defer f.mu.Unlock()

	stats := models.FeedbackStats{
		TotalCount:              len(f.feedback),
		ImplementationBreakdown: make(map[string]int),
	}
	sum := 0
	records := make([]models.FeedbackRecord, 0, len(f.feedback))
	for i, fb := range f.feedback {
		sum += fb.Rating
		stats.ImplementationBreakdown[fb.ImplementationStatus]++
		records = append(records, models.FeedbackRecord{
			ID:                   int64(i + 1),
			ModuleID:             fb.ModuleID,
			Challenge:            fb.Challenge,
			ConversationID:       fb.ConversationID,
			Rating:               fb.Rating,
			ImplementationStatus: fb.ImplementationStatus,
			Comments:             fb.Comments,
			CreatedAt:            models.Timestamp{Time: time.Now().UTC()},
		})
	}
	if len(f.feedback) > 0 {
		stats.AverageRating = float64(sum) / float64(len(f.feedback))
	}

	c.JSON(http.StatusOK, gin.H{
		"success":         true,
		"stats":           stats,
		"recent_feedback": records,
		"recent_queries":  []models.RecentQuery{},
	})
}

func (f *fakeBackend) ingest(c *gin.Context) {
	file, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "file is required"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success":        true,
		"message":        fmt.Sprintf("Document '%s' ingested successfully", file.Filename),
		"document_id":    "doc-1",
		"chunks_created": 3,
	})
}
