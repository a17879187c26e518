package models

import "time"

// Analysis statuses
const (
	AnalysisStatusCompleted = "completed"
	AnalysisStatusDegraded  = "degraded"
)

// FoodAnalysis is one ingredients -> recipes -> social content exchange.
// Rows are append-only: nothing in the service updates or deletes them.
type FoodAnalysis struct {
	ID             uint      `gorm:"primaryKey" json:"id"`
	Ingredients    string    `gorm:"type:text;not null" json:"ingredients"`
	AnalysisResult string    `gorm:"type:text;not null" json:"analysis_result"`
	SocialContent  *string   `gorm:"type:text" json:"social_content,omitempty"`
	Status         string    `gorm:"size:16;not null;default:'completed'" json:"status"`
	CreatedAt      time.Time `gorm:"not null;index" json:"created_at"`
}

// TableName returns the table name for the FoodAnalysis model
func (FoodAnalysis) TableName() string {
	return "food_analyses"
}

// Degraded reports whether an upstream call failed while producing this analysis
func (a *FoodAnalysis) Degraded() bool {
	return a.Status == AnalysisStatusDegraded
}

// Social returns the social content or an empty string when none was stored
func (a *FoodAnalysis) Social() string {
	if a.SocialContent == nil {
		return ""
	}
	return *a.SocialContent
}
