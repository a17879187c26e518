package service

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/pageza/foodsnap/backend/internal/models"
)

const (
	// DefaultAnalysisStream is the Redis stream completed analyses are appended to
	DefaultAnalysisStream = "foodsnap:analyses"

	analysisStreamMaxLen = 1000
)

// AnalysisEventPublisher appends every persisted analysis to a Redis stream so
// downstream consumers (social posting, moderation) can pick it up.
type AnalysisEventPublisher struct {
	redis  redis.Cmdable
	stream string
}

// NewAnalysisEventPublisher creates a publisher writing to the given stream
func NewAnalysisEventPublisher(client redis.Cmdable, stream string) *AnalysisEventPublisher {
	if stream == "" {
		stream = DefaultAnalysisStream
	}
	return &AnalysisEventPublisher{redis: client, stream: stream}
}

// AnalysisCompleted implements AnalysisObserver
func (p *AnalysisEventPublisher) AnalysisCompleted(ctx context.Context, analysis *models.FoodAnalysis) error {
	err := p.redis.XAdd(ctx, &redis.XAddArgs{
		Stream: p.stream,
		MaxLen: analysisStreamMaxLen,
		Approx: true,
		Values: map[string]interface{}{
			"id":             strconv.FormatUint(uint64(analysis.ID), 10),
			"status":         analysis.Status,
			"ingredients":    analysis.Ingredients,
			"recipes":        analysis.AnalysisResult,
			"social_content": analysis.Social(),
			"created_at":     analysis.CreatedAt.Format(time.RFC3339Nano),
		},
	}).Err()
	if err != nil {
		return fmt.Errorf("failed to publish analysis %d: %w", analysis.ID, err)
	}
	return nil
}
