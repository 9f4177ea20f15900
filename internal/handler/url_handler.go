package handler

import (
	"context"
	"errors"
	"log"
	"net/http"

	"github.com/Kosench/go-link-tracker/internal/auth"
	apperrors "github.com/Kosench/go-link-tracker/internal/errors"
	"github.com/Kosench/go-link-tracker/internal/model"
	"github.com/gin-gonic/gin"
)

// URLManager - операции над короткими ссылками пользователя
type URLManager interface {
	CreateShortURL(ctx context.Context, ownerID string, req *model.CreateURLRequest) (*model.URLResponse, error)
	GetUserURLs(ctx context.Context, ownerID string) ([]model.URLResponse, error)
}

type URLHandler struct {
	urlService URLManager
}

func NewURLHandler(urlService URLManager) *URLHandler {
	return &URLHandler{
		urlService: urlService,
	}
}

// CreateURL обрабатывает POST /api/urls
func (h *URLHandler) CreateURL(c *gin.Context) {
	ownerID, ok := auth.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{
			"error":   "unauthorized",
			"message": "User not signed in",
		})
		return
	}

	var req model.CreateURLRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_request",
			"message": "Invalid JSON format",
		})
		return
	}

	response, err := h.urlService.CreateShortURL(c.Request.Context(), ownerID, &req)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusCreated, response)
}

// GetUserURLs обрабатывает GET /api/user-urls.
// Формат с флагом success в теле повторяет контракт дашборда.
func (h *URLHandler) GetUserURLs(c *gin.Context) {
	ownerID, ok := auth.UserID(c)
	if !ok {
		c.JSON(http.StatusOK, gin.H{
			"success": false,
			"message": "User not signed in",
			"urls":    []model.URLResponse{},
		})
		return
	}

	urls, err := h.urlService.GetUserURLs(c.Request.Context(), ownerID)
	if err != nil {
		log.Printf("❌ Failed to list URLs for owner %s: %v", ownerID, err)
		c.JSON(http.StatusOK, gin.H{
			"success": false,
			"message": "Internal Server Error",
			"urls":    []model.URLResponse{},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"urls":    urls,
	})
}

// handleError обрабатывает ошибки и возвращает соответствующие HTTP коды
func (h *URLHandler) handleError(c *gin.Context, err error) {
	if apperrors.IsValidationError(err) {
		validationErr := apperrors.GetValidationError(err)
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "validation_error",
			"message": validationErr.Message,
			"field":   validationErr.Field,
		})
		return
	}

	if errors.Is(err, apperrors.ErrURLNotFound) {
		c.JSON(http.StatusNotFound, gin.H{
			"error":   "url_not_found",
			"message": "URL not found",
		})
		return
	}

	if apperrors.IsBusinessError(err) {
		businessErr := apperrors.GetBusinessError(err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "business_error",
			"message": businessErr.Message,
			"code":    businessErr.Code,
		})
		return
	}

	// Неизвестная ошибка
	c.JSON(http.StatusInternalServerError, gin.H{
		"error":   "internal_error",
		"message": "An unexpected error occurred",
	})
}
