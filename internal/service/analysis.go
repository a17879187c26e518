package service

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/pageza/foodsnap/backend/internal/models"
	"github.com/pageza/foodsnap/backend/internal/types"
)

const (
	observerTimeout = 5 * time.Second

	// shown instead of social content when there were no recipes to base it on
	socialSkippedMessage = "Ошибка генерации контента: рецепты не были получены"
)

// AnalysisResult is what one ingredients analysis produced
type AnalysisResult struct {
	ID         uint
	RecipeText string
	SocialText string
	// Degraded is set when either completion call failed and its text is an error message
	Degraded bool
}

// AnalysisService turns an ingredient list into recipes and social content
type AnalysisService struct {
	completer Completer
	store     AnalysisRepository
	observers []AnalysisObserver
	logger    *zap.Logger
}

// NewAnalysisService creates a new AnalysisService instance
func NewAnalysisService(completer Completer, store AnalysisRepository, logger *zap.Logger, observers ...AnalysisObserver) *AnalysisService {
	return &AnalysisService{
		completer: completer,
		store:     store,
		observers: observers,
		logger:    logger.Named("analysis"),
	}
}

// Analyze runs the recipe call, then the social-content call on its output,
// and persists the exchange. Upstream failures do not fail the operation: their
// rendered message takes the place of the generated text and the record is
// marked degraded. Only validation and store failures return an error.
func (s *AnalysisService) Analyze(ctx context.Context, ingredients string) (*AnalysisResult, error) {
	ingredients = strings.TrimSpace(ingredients)
	if ingredients == "" {
		return nil, ErrEmptyIngredients
	}

	result := &AnalysisResult{}

	recipes, err := s.completer.Complete(ctx, BuildRecipePrompt(ingredients))
	if err == nil && strings.TrimSpace(recipes) == "" {
		// the record's recipe column must stay non-empty
		err = &UpstreamError{Err: ErrEmptyCompletion}
	}
	if err != nil {
		s.logger.Warn("Recipe generation failed", zap.Error(err))
		result.RecipeText = upstreamMessage(err)
		result.SocialText = socialSkippedMessage
		result.Degraded = true
	} else {
		result.RecipeText = recipes

		social, err := s.completer.Complete(ctx, BuildSocialPrompt(recipes))
		if err != nil {
			s.logger.Warn("Social content generation failed", zap.Error(err))
			result.SocialText = upstreamMessage(err)
			result.Degraded = true
		} else {
			result.SocialText = social
		}
	}

	status := models.AnalysisStatusCompleted
	if result.Degraded {
		status = models.AnalysisStatusDegraded
	}
	social := result.SocialText
	analysis := &models.FoodAnalysis{
		Ingredients:    ingredients,
		AnalysisResult: result.RecipeText,
		SocialContent:  &social,
		Status:         status,
	}

	id, err := s.store.Append(ctx, analysis)
	if err != nil {
		return nil, &InternalError{Op: "save analysis", Err: err}
	}
	result.ID = id

	s.logger.Info("Analysis completed",
		zap.Uint("id", id),
		zap.String("status", status),
		zap.Int("ingredients_chars", len(ingredients)))

	s.notify(ctx, analysis)

	return result, nil
}

// History returns the most recent analyses, newest first
func (s *AnalysisService) History(ctx context.Context, limit int) ([]types.HistoryEntry, error) {
	entries, err := s.store.RecentHistory(ctx, limit)
	if err != nil {
		return nil, &InternalError{Op: "load history", Err: err}
	}
	return entries, nil
}

// notify runs every observer; failures are logged and never reach the caller.
// The request context may be cancelled right after the response is written,
// so observers get their own deadline.
func (s *AnalysisService) notify(ctx context.Context, analysis *models.FoodAnalysis) {
	if len(s.observers) == 0 {
		return
	}

	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), observerTimeout)
	defer cancel()

	for _, observer := range s.observers {
		if err := observer.AnalysisCompleted(ctx, analysis); err != nil {
			s.logger.Warn("Analysis observer failed", zap.Uint("id", analysis.ID), zap.Error(err))
		}
	}
}
