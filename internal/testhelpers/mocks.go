package testhelpers

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/pageza/foodsnap/backend/internal/models"
)

// MockCompleter is a mock implementation of the completion client
type MockCompleter struct {
	mock.Mock
}

func (m *MockCompleter) Complete(ctx context.Context, prompt string) (string, error) {
	args := m.Called(ctx, prompt)
	return args.String(0), args.Error(1)
}

// MockAnalysisObserver records analyses it is notified about
type MockAnalysisObserver struct {
	mock.Mock
}

func (m *MockAnalysisObserver) AnalysisCompleted(ctx context.Context, analysis *models.FoodAnalysis) error {
	args := m.Called(ctx, analysis)
	return args.Error(0)
}
