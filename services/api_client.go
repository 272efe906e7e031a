package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"pragati/models"

	"github.com/go-resty/resty/v2"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// ErrRemoteUnavailable covers every transport failure and every
// non-success response from the PRAGATI backend. The client does not
// distinguish further.
var ErrRemoteUnavailable = errors.New("remote service unavailable")

// APIClient talks to the PRAGATI backend over HTTP.
type APIClient struct {
	http *resty.Client
	log  zerolog.Logger
}

func NewAPIClient(baseURL string, timeout time.Duration, log zerolog.Logger) *APIClient {
	client := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(timeout).
		SetHeader("Content-Type", "application/json").
		OnBeforeRequest(func(_ *resty.Client, req *resty.Request) error {
			req.SetHeader("X-Request-ID", uuid.New().String())
			return nil
		})

	return &APIClient{http: client, log: log}
}

type conversationsResponse struct {
	Success       bool                  `json:"success"`
	Conversations []models.Conversation `json:"conversations"`
}

type createConversationResponse struct {
	Success        bool  `json:"success"`
	ConversationID int64 `json:"conversation_id"`
}

type messagesResponse struct {
	Success  bool             `json:"success"`
	Messages []models.Message `json:"messages"`
}

type generateResponse struct {
	Success bool           `json:"success"`
	Module  *models.Module `json:"module"`
	Message string         `json:"message,omitempty"`
}

type adaptResponse struct {
	Success        bool   `json:"success"`
	TranslatedText string `json:"translated_text"`
	SourceLanguage string `json:"source_language"`
	TargetLanguage string `json:"target_language"`
}

type feedbackResponse struct {
	Success    bool   `json:"success"`
	Message    string `json:"message"`
	FeedbackID string `json:"feedback_id"`
}

type languagesResponse struct {
	Languages []models.Dialect `json:"languages"`
}

type ingestResponse struct {
	Success       bool   `json:"success"`
	Message       string `json:"message"`
	DocumentID    string `json:"document_id"`
	ChunksCreated int    `json:"chunks_created"`
}

type statsResponse struct {
	Success        bool                    `json:"success"`
	Stats          models.FeedbackStats    `json:"stats"`
	RecentFeedback []models.FeedbackRecord `json:"recent_feedback"`
	RecentQueries  []models.RecentQuery    `json:"recent_queries"`
}

func (c *APIClient) GetConversations(ctx context.Context) ([]models.Conversation, error) {
	var out conversationsResponse
	resp, err := c.http.R().
		SetContext(ctx).
		SetResult(&out).
		Get("/api/conversations")
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRemoteUnavailable, err)
	}
	if resp.IsError() || !out.Success {
		return nil, fmt.Errorf("%w: conversations fetch returned status %d", ErrRemoteUnavailable, resp.StatusCode())
	}
	return out.Conversations, nil
}

// CreateConversation starts a new thread. The title travels as a query
// parameter, matching the backend route.
func (c *APIClient) CreateConversation(ctx context.Context, title string) (int64, error) {
	var out createConversationResponse
	resp, err := c.http.R().
		SetContext(ctx).
		SetQueryParam("title", title).
		SetResult(&out).
		Post("/api/conversations")
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrRemoteUnavailable, err)
	}
	if resp.IsError() || !out.Success {
		return 0, fmt.Errorf("%w: conversation create returned status %d", ErrRemoteUnavailable, resp.StatusCode())
	}
	return out.ConversationID, nil
}

func (c *APIClient) GetConversationMessages(ctx context.Context, conversationID int64) ([]models.Message, error) {
	var out messagesResponse
	resp, err := c.http.R().
		SetContext(ctx).
		SetResult(&out).
		Get(fmt.Sprintf("/api/conversations/%d/messages", conversationID))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRemoteUnavailable, err)
	}
	if resp.IsError() || !out.Success {
		return nil, fmt.Errorf("%w: messages fetch returned status %d", ErrRemoteUnavailable, resp.StatusCode())
	}
	return out.Messages, nil
}

func (c *APIClient) GenerateModule(ctx context.Context, req models.GenerateRequest) (*models.Module, error) {
	var out generateResponse
	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(req).
		SetResult(&out).
		Post("/api/generate")
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRemoteUnavailable, err)
	}
	if resp.IsError() || !out.Success || out.Module == nil {
		return nil, fmt.Errorf("%w: generation returned status %d", ErrRemoteUnavailable, resp.StatusCode())
	}
	return out.Module, nil
}

func (c *APIClient) AdaptContent(ctx context.Context, text, targetLanguage, sourceLanguage string) (string, error) {
	var out adaptResponse
	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(map[string]string{
			"text":            text,
			"target_language": targetLanguage,
			"source_language": sourceLanguage,
		}).
		SetResult(&out).
		Post("/api/adapt")
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrRemoteUnavailable, err)
	}
	if resp.IsError() || !out.Success {
		return "", fmt.Errorf("%w: adaptation returned status %d", ErrRemoteUnavailable, resp.StatusCode())
	}
	return out.TranslatedText, nil
}

func (c *APIClient) SubmitFeedback(ctx context.Context, fb models.Feedback) (string, error) {
	var out feedbackResponse
	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(fb).
		SetResult(&out).
		Post("/api/feedback")
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrRemoteUnavailable, err)
	}
	if resp.IsError() || !out.Success {
		return "", fmt.Errorf("%w: feedback submit returned status %d", ErrRemoteUnavailable, resp.StatusCode())
	}
	return out.FeedbackID, nil
}

func (c *APIClient) GetSupportedLanguages(ctx context.Context) ([]models.Dialect, error) {
	var out languagesResponse
	resp, err := c.http.R().
		SetContext(ctx).
		SetResult(&out).
		Get("/api/languages")
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRemoteUnavailable, err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("%w: language list returned status %d", ErrRemoteUnavailable, resp.StatusCode())
	}
	return out.Languages, nil
}

// IngestDocument uploads a training manual PDF for the retrieval index.
func (c *APIClient) IngestDocument(ctx context.Context, filename string, content io.Reader, title string) (*models.IngestResult, error) {
	var out ingestResponse
	req := c.http.R().
		SetContext(ctx).
		SetFileReader("file", filename, content).
		SetResult(&out)
	if title != "" {
		req.SetFormData(map[string]string{"title": title})
	}
	resp, err := req.Post("/api/ingest")
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRemoteUnavailable, err)
	}
	if resp.IsError() || !out.Success {
		return nil, fmt.Errorf("%w: document ingest returned status %d", ErrRemoteUnavailable, resp.StatusCode())
	}
	return &models.IngestResult{
		DocumentID:    out.DocumentID,
		ChunksCreated: out.ChunksCreated,
		Message:       out.Message,
	}, nil
}

func (c *APIClient) GetFeedbackStats(ctx context.Context) (*models.FeedbackOverview, error) {
	var out statsResponse
	resp, err := c.http.R().
		SetContext(ctx).
		SetResult(&out).
		Get("/api/feedback/stats")
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRemoteUnavailable, err)
	}
	if resp.IsError() || !out.Success {
		return nil, fmt.Errorf("%w: feedback stats returned status %d", ErrRemoteUnavailable, resp.StatusCode())
	}
	return &models.FeedbackOverview{
		Stats:          out.Stats,
		RecentFeedback: out.RecentFeedback,
		RecentQueries:  out.RecentQueries,
	}, nil
}
