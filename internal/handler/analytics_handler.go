package handler

import (
	"context"
	"log"
	"net/http"

	"github.com/Kosench/go-link-tracker/internal/auth"
	"github.com/Kosench/go-link-tracker/internal/model"
	"github.com/gin-gonic/gin"
)

// AnalyticsProvider собирает агрегаты по переходам для владельца ссылок
type AnalyticsProvider interface {
	GetSummary(ctx context.Context, ownerID string) (*model.AnalyticsSummary, error)
}

type AnalyticsHandler struct {
	analytics AnalyticsProvider
}

func NewAnalyticsHandler(analytics AnalyticsProvider) *AnalyticsHandler {
	return &AnalyticsHandler{
		analytics: analytics,
	}
}

// GetAnalytics обрабатывает GET /api/analytics.
// Формат ответа читает дашборд: флаг success в теле, статус всегда 200.
func (h *AnalyticsHandler) GetAnalytics(c *gin.Context) {
	ownerID, ok := auth.UserID(c)
	if !ok {
		c.JSON(http.StatusOK, gin.H{
			"success": false,
			"message": "User not signed in",
		})
		return
	}

	summary, err := h.analytics.GetSummary(c.Request.Context(), ownerID)
	if err != nil {
		log.Printf("❌ Failed to build analytics for owner %s: %v", ownerID, err)
		c.JSON(http.StatusOK, gin.H{
			"success": false,
			"message": "Internal Server Error",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    summary,
	})
}
