package service

import (
	"context"

	"github.com/pageza/foodsnap/backend/internal/models"
	"github.com/pageza/foodsnap/backend/internal/types"
)

// Completer sends one prompt to a hosted completion API and returns the generated text
type Completer interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// AnalysisRepository is the append-only store for completed analyses
type AnalysisRepository interface {
	Append(ctx context.Context, analysis *models.FoodAnalysis) (uint, error)
	RecentHistory(ctx context.Context, limit int) ([]types.HistoryEntry, error)
}

// AnalysisObserver is notified after an analysis has been persisted
type AnalysisObserver interface {
	AnalysisCompleted(ctx context.Context, analysis *models.FoodAnalysis) error
}

// IAnalysisService defines the operations exposed to the HTTP layer
type IAnalysisService interface {
	Analyze(ctx context.Context, ingredients string) (*AnalysisResult, error)
	History(ctx context.Context, limit int) ([]types.HistoryEntry, error)
}
