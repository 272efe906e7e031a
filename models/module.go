package models

// Section is one step of a micro-learning module. Slice order is the
// display order.
type Section struct {
	Title           string `json:"title"`
	Content         string `json:"content"`
	DurationMinutes int    `json:"duration_minutes"`
	Activity        string `json:"activity,omitempty"`
}

// Module is a generated micro-learning unit. It is produced once by the
// generation service and never modified on the client.
type Module struct {
	ID              string    `json:"id"`
	Title           string    `json:"title"`
	Challenge       string    `json:"challenge"`
	Sections        []Section `json:"sections"`
	TotalDuration   int       `json:"total_duration"`
	DifficultyLevel string    `json:"difficulty_level,omitempty"`
	Language        string    `json:"language,omitempty"`
	CreatedAt       Timestamp `json:"created_at,omitempty"`
}

// GenerateRequest is the payload for POST /api/generate.
type GenerateRequest struct {
	Challenge       string `json:"challenge"`
	TargetDuration  int    `json:"target_duration"`
	DifficultyLevel string `json:"difficulty_level"`
	ConversationID  int64  `json:"conversation_id,omitempty"`
	Language        string `json:"language,omitempty"`
}

// IngestResult describes an ingested training manual.
type IngestResult struct {
	DocumentID    string `json:"document_id"`
	ChunksCreated int    `json:"chunks_created"`
	Message       string `json:"message"`
}
