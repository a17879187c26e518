package service

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/pageza/foodsnap/backend/internal/models"
	"github.com/pageza/foodsnap/backend/internal/types"
)

const (
	// DefaultHistoryLimit caps GET /history
	DefaultHistoryLimit = 10

	previewLength = 100
	previewMarker = "..."
)

// AnalysisStore persists analyses with gorm
type AnalysisStore struct {
	db  *gorm.DB
	now func() time.Time
}

// NewAnalysisStore creates a new AnalysisStore instance
func NewAnalysisStore(db *gorm.DB) *AnalysisStore {
	return &AnalysisStore{
		db:  db,
		now: func() time.Time { return time.Now().UTC() },
	}
}

// Append stores a new analysis, assigning its ID and creation time
func (s *AnalysisStore) Append(ctx context.Context, analysis *models.FoodAnalysis) (uint, error) {
	analysis.ID = 0
	analysis.CreatedAt = s.now()
	if analysis.Status == "" {
		analysis.Status = models.AnalysisStatusCompleted
	}

	if err := s.db.WithContext(ctx).Create(analysis).Error; err != nil {
		return 0, fmt.Errorf("failed to create analysis: %w", err)
	}
	return analysis.ID, nil
}

// RecentHistory returns up to limit analyses, newest first, with long fields truncated
func (s *AnalysisStore) RecentHistory(ctx context.Context, limit int) ([]types.HistoryEntry, error) {
	if limit <= 0 {
		limit = DefaultHistoryLimit
	}

	var analyses []models.FoodAnalysis
	err := s.db.WithContext(ctx).
		Order("created_at DESC").
		Order("id DESC").
		Limit(limit).
		Find(&analyses).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list analyses: %w", err)
	}

	entries := make([]types.HistoryEntry, 0, len(analyses))
	for _, a := range analyses {
		entries = append(entries, types.HistoryEntry{
			ID:              a.ID,
			Ingredients:     truncate(a.Ingredients, previewLength),
			Timestamp:       a.CreatedAt,
			AnalysisPreview: truncate(a.AnalysisResult, previewLength),
		})
	}
	return entries, nil
}

// truncate cuts s to limit characters and appends a marker, only when s is longer
func truncate(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit]) + previewMarker
}
