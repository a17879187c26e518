package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/pageza/foodsnap/backend/internal/service"
	"github.com/pageza/foodsnap/backend/internal/types"
)

const invalidBodyMessage = "Неверный формат данных"

// AnalysisHandler handles ingredient analysis requests
type AnalysisHandler struct {
	analysis service.IAnalysisService
	logger   *zap.Logger
}

// NewAnalysisHandler creates a new AnalysisHandler instance
func NewAnalysisHandler(analysis service.IAnalysisService, logger *zap.Logger) *AnalysisHandler {
	return &AnalysisHandler{
		analysis: analysis,
		logger:   logger.Named("api"),
	}
}

// RegisterRoutes registers the analysis routes. analyzeMiddleware runs in
// front of POST /analyze only.
func (h *AnalysisHandler) RegisterRoutes(router gin.IRoutes, analyzeMiddleware ...gin.HandlerFunc) {
	analyze := make([]gin.HandlerFunc, 0, len(analyzeMiddleware)+1)
	analyze = append(analyze, analyzeMiddleware...)
	router.POST("/analyze", append(analyze, h.Analyze)...)
	router.GET("/history", h.History)
}

// Analyze generates recipes and social content for the submitted ingredients
func (h *AnalysisHandler) Analyze(c *gin.Context) {
	var req types.AnalyzeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, types.ErrorResponse{Error: invalidBodyMessage})
		return
	}

	ingredients := ""
	if req.Ingredients != nil {
		ingredients = *req.Ingredients
	}

	result, err := h.analysis.Analyze(c.Request.Context(), ingredients)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, types.AnalyzeResponse{
		Recipes:       result.RecipeText,
		SocialContent: result.SocialText,
	})
}

// History lists the most recent analyses
func (h *AnalysisHandler) History(c *gin.Context) {
	entries, err := h.analysis.History(c.Request.Context(), service.DefaultHistoryLimit)
	if err != nil {
		h.logger.Error("Failed to load history", zap.Error(err))
		c.JSON(http.StatusInternalServerError, types.ErrorResponse{Error: err.Error()})
		return
	}

	c.JSON(http.StatusOK, entries)
}

func (h *AnalysisHandler) respondError(c *gin.Context, err error) {
	var validationErr *service.ValidationError
	if errors.As(err, &validationErr) {
		c.JSON(http.StatusBadRequest, types.ErrorResponse{Error: validationErr.Message})
		return
	}

	h.logger.Error("Analysis failed", zap.Error(err))
	c.JSON(http.StatusInternalServerError, types.ErrorResponse{
		Error: fmt.Sprintf("Внутренняя ошибка сервера: %v", err),
	})
}
