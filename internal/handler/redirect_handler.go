package handler

import (
	"context"
	"net/http"

	"github.com/Kosench/go-link-tracker/internal/service"
	"github.com/gin-gonic/gin"
)

// Redirector вычисляет результат редиректа для запрошенного алиаса
type Redirector interface {
	HandleRedirect(ctx context.Context, rawAlias string, headers http.Header) service.RedirectResult
}

type RedirectHandler struct {
	redirects Redirector
	homeURL   string
}

func NewRedirectHandler(redirects Redirector, homeURL string) *RedirectHandler {
	return &RedirectHandler{
		redirects: redirects,
		homeURL:   homeURL,
	}
}

// Redirect обрабатывает GET /:alias
func (h *RedirectHandler) Redirect(c *gin.Context) {
	result := h.redirects.HandleRedirect(c.Request.Context(), c.Param("alias"), c.Request.Header)

	switch result.Outcome {
	case service.OutcomeNotFound:
		c.HTML(http.StatusNotFound, "notfound.html", gin.H{
			"alias": result.Alias,
			"home":  h.homeURL,
		})
	case service.OutcomeRoot:
		c.Redirect(http.StatusFound, "/")
	default:
		c.Redirect(http.StatusFound, result.Target)
	}
}
