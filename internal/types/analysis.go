package types

import "time"

// AnalyzeRequest is the body of POST /analyze
type AnalyzeRequest struct {
	Ingredients *string `json:"ingredients"`
}

// AnalyzeResponse is returned by POST /analyze
type AnalyzeResponse struct {
	Recipes       string `json:"recipes"`
	SocialContent string `json:"social_content"`
}

// HistoryEntry is one row of GET /history
type HistoryEntry struct {
	ID              uint      `json:"id"`
	Ingredients     string    `json:"ingredients"`
	Timestamp       time.Time `json:"timestamp"`
	AnalysisPreview string    `json:"analysis_preview"`
}

// ErrorResponse is the body of every non-2xx JSON response
type ErrorResponse struct {
	Error string `json:"error"`
}

// HealthResponse is returned by GET /health
type HealthResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}
