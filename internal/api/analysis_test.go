package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/pageza/foodsnap/backend/internal/models"
	"github.com/pageza/foodsnap/backend/internal/service"
	"github.com/pageza/foodsnap/backend/internal/testhelpers"
	"github.com/pageza/foodsnap/backend/internal/types"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func setupAnalysisRouter(t *testing.T) (*gin.Engine, *testhelpers.MockCompleter, *gorm.DB) {
	t.Helper()

	db := testhelpers.SetupTestDatabase(t)
	completer := new(testhelpers.MockCompleter)
	analysis := service.NewAnalysisService(completer, service.NewAnalysisStore(db), zap.NewNop())

	router := gin.New()
	RegisterRoutes(router, analysis, zap.NewNop())
	return router, completer, db
}

func postAnalyze(router *gin.Engine, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/analyze", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func getHistory(t *testing.T, router *gin.Engine) []types.HistoryEntry {
	t.Helper()
	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/history", nil))
	require.Equal(t, http.StatusOK, w.Code)

	var entries []types.HistoryEntry
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &entries))
	return entries
}

func countRecords(t *testing.T, db *gorm.DB) int64 {
	t.Helper()
	var count int64
	require.NoError(t, db.Model(&models.FoodAnalysis{}).Count(&count).Error)
	return count
}

func TestAnalyzeEndToEnd(t *testing.T) {
	router, completer, _ := setupAnalysisRouter(t)
	completer.On("Complete", mock.Anything, service.BuildRecipePrompt("eggs, flour, milk")).Return("RECIPE_TEXT", nil).Once()
	completer.On("Complete", mock.Anything, service.BuildSocialPrompt("RECIPE_TEXT")).Return("SOCIAL_TEXT", nil).Once()

	w := postAnalyze(router, `{"ingredients": "eggs, flour, milk"}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"recipes":"RECIPE_TEXT","social_content":"SOCIAL_TEXT"}`, w.Body.String())
	completer.AssertExpectations(t)

	entries := getHistory(t, router)
	require.Len(t, entries, 1)
	assert.Equal(t, "eggs, flour, milk", entries[0].Ingredients)
	assert.Equal(t, "RECIPE_TEXT", entries[0].AnalysisPreview)
	assert.WithinDuration(t, time.Now(), entries[0].Timestamp, time.Minute)
}

func TestAnalyzeValidation(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		wantErr string
	}{
		{"empty ingredients", `{"ingredients": ""}`, "Введите ингредиенты"},
		{"whitespace ingredients", `{"ingredients": "   "}`, "Введите ингредиенты"},
		{"missing key", `{"items": "eggs"}`, "Введите ингредиенты"},
		{"null body", `null`, "Введите ингредиенты"},
		{"empty body", ``, "Неверный формат данных"},
		{"not json", `ingredients=eggs`, "Неверный формат данных"},
		{"ingredients not a string", `{"ingredients": 42}`, "Неверный формат данных"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router, completer, db := setupAnalysisRouter(t)

			w := postAnalyze(router, tt.body)
			assert.Equal(t, http.StatusBadRequest, w.Code)

			var resp types.ErrorResponse
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
			assert.Equal(t, tt.wantErr, resp.Error)

			completer.AssertNotCalled(t, "Complete", mock.Anything, mock.Anything)
			assert.Zero(t, countRecords(t, db))
		})
	}
}

func TestAnalyzeUpstreamFailureIsAbsorbed(t *testing.T) {
	router, completer, db := setupAnalysisRouter(t)
	completer.On("Complete", mock.Anything, mock.Anything).Return("", &service.UpstreamError{StatusCode: 500}).Once()

	w := postAnalyze(router, `{"ingredients": "rice"}`)
	require.Equal(t, http.StatusOK, w.Code)

	var resp types.AnalyzeResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Contains(t, resp.Recipes, "500")
	assert.NotEmpty(t, resp.SocialContent)
	assert.Equal(t, int64(1), countRecords(t, db))
}

func TestHistoryLimitAndTruncation(t *testing.T) {
	router, completer, _ := setupAnalysisRouter(t)
	long := strings.Repeat("r", 150)
	completer.On("Complete", mock.Anything, mock.Anything).Return(long, nil)

	for i := 0; i < 12; i++ {
		w := postAnalyze(router, fmt.Sprintf(`{"ingredients": "item %d"}`, i))
		require.Equal(t, http.StatusOK, w.Code)
	}

	entries := getHistory(t, router)
	require.Len(t, entries, 10)
	assert.Equal(t, "item 11", entries[0].Ingredients)
	assert.Equal(t, "item 2", entries[9].Ingredients)
	for _, entry := range entries {
		assert.Equal(t, strings.Repeat("r", 100)+"...", entry.AnalysisPreview)
	}
}

func TestHistoryEmpty(t *testing.T) {
	router, _, _ := setupAnalysisRouter(t)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/history", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[]`, w.Body.String())
}

type brokenAnalysisService struct {
	err error
}

func (s *brokenAnalysisService) Analyze(ctx context.Context, ingredients string) (*service.AnalysisResult, error) {
	return nil, s.err
}

func (s *brokenAnalysisService) History(ctx context.Context, limit int) ([]types.HistoryEntry, error) {
	return nil, s.err
}

func TestInternalErrors(t *testing.T) {
	router := gin.New()
	broken := &brokenAnalysisService{err: &service.InternalError{Op: "save analysis", Err: errors.New("database is locked")}}
	RegisterRoutes(router, broken, zap.NewNop())

	w := postAnalyze(router, `{"ingredients": "rice"}`)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	var resp types.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "Внутренняя ошибка сервера: save analysis: database is locked", resp.Error)

	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/history", nil))
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Contains(t, resp.Error, "database is locked")
}

func TestAnalyzeMiddlewareOnlyGuardsAnalyze(t *testing.T) {
	router := gin.New()
	deny := func(c *gin.Context) {
		c.AbortWithStatus(http.StatusTooManyRequests)
	}
	RegisterRoutes(router, &brokenAnalysisService{err: errors.New("unused")}, zap.NewNop(), deny)

	w := postAnalyze(router, `{"ingredients": "rice"}`)
	assert.Equal(t, http.StatusTooManyRequests, w.Code)

	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, w.Code)
}
