package handler

import (
	"context"
	"log"
	"net/http"

	apperrors "github.com/Kosench/go-link-tracker/internal/errors"
	"github.com/Kosench/go-link-tracker/internal/model"
	"github.com/gin-gonic/gin"
)

// VisitRecorder валидирует и сохраняет один переход
type VisitRecorder interface {
	RecordVisit(ctx context.Context, req *model.TrackVisitRequest) (*model.Visit, error)
}

type VisitHandler struct {
	visits VisitRecorder
}

func NewVisitHandler(visits VisitRecorder) *VisitHandler {
	return &VisitHandler{
		visits: visits,
	}
}

// TrackVisit обрабатывает POST /api/track-visit.
// Endpoint внутренний: статус всегда 200, результат передается флагом
// success в теле - так его читает оркестратор редиректа.
func (h *VisitHandler) TrackVisit(c *gin.Context) {
	var req model.TrackVisitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusOK, gin.H{
			"success": false,
			"error":   "invalid JSON format",
		})
		return
	}

	if _, err := h.visits.RecordVisit(c.Request.Context(), &req); err != nil {
		if apperrors.IsValidationError(err) {
			validationErr := apperrors.GetValidationError(err)
			log.Printf("⚠️  Invalid visit payload: %s", validationErr.Message)
			c.JSON(http.StatusOK, gin.H{
				"success": false,
				"error":   validationErr.Message,
			})
			return
		}

		log.Printf("❌ Failed to save visit for urlId %d: %v", req.URLID, err)
		c.JSON(http.StatusOK, gin.H{
			"success": false,
			"error":   "failed to save visit",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}
