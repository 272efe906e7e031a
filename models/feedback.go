package models

const (
	StatusImplemented          = "implemented"
	StatusPartiallyImplemented = "partially_implemented"
	StatusPlanning             = "planning"
	StatusNotApplicable        = "not_applicable"
)

// Feedback is a teacher's rating of a generated module.
type Feedback struct {
	ModuleID             string `json:"module_id"`
	Challenge            string `json:"challenge,omitempty"`
	ConversationID       int64  `json:"conversation_id,omitempty"`
	Rating               int    `json:"rating"`
	ImplementationStatus string `json:"implementation_status"`
	Comments             string `json:"comments,omitempty"`
	EvidenceURL          string `json:"evidence_url,omitempty"`
}

// FeedbackStats are the aggregates served by GET /api/feedback/stats.
type FeedbackStats struct {
	TotalCount              int            `json:"total_count"`
	AverageRating           float64        `json:"average_rating"`
	ImplementationBreakdown map[string]int `json:"implementation_breakdown"`
}

// FeedbackRecord is one stored feedback row.
type FeedbackRecord struct {
	ID                   int64     `json:"id"`
	ModuleID             string    `json:"module_id"`
	Challenge            string    `json:"challenge,omitempty"`
	ConversationID       int64     `json:"conversation_id,omitempty"`
	Rating               int       `json:"rating"`
	ImplementationStatus string    `json:"implementation_status"`
	Comments             string    `json:"comments,omitempty"`
	CreatedAt            Timestamp `json:"created_at"`
}

// RecentQuery is a recent teacher challenge with its conversation topic.
type RecentQuery struct {
	Content   string    `json:"content"`
	Topic     string    `json:"topic"`
	CreatedAt Timestamp `json:"created_at"`
}

// FeedbackOverview bundles everything the admin dashboard shows.
type FeedbackOverview struct {
	Stats          FeedbackStats    `json:"stats"`
	RecentFeedback []FeedbackRecord `json:"recent_feedback"`
	RecentQueries  []RecentQuery    `json:"recent_queries"`
}
