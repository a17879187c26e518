package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/pageza/foodsnap/backend/internal/service"
	"github.com/pageza/foodsnap/backend/internal/types"
	"github.com/pageza/foodsnap/backend/web"
)

// HealthCheck returns the health status of the API
func HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, types.HealthResponse{
		Status:  "ok",
		Message: "FoodSnap AI работает",
	})
}

// Home serves the landing page
func Home(c *gin.Context) {
	c.Data(http.StatusOK, "text/html; charset=utf-8", web.IndexHTML)
}

// RegisterRoutes registers all routes
func RegisterRoutes(router *gin.Engine, analysis service.IAnalysisService, logger *zap.Logger, analyzeMiddleware ...gin.HandlerFunc) {
	router.GET("/", Home)
	router.GET("/health", HealthCheck)

	NewAnalysisHandler(analysis, logger).RegisterRoutes(router, analyzeMiddleware...)
}
