package handler

import (
	"context"
	"html/template"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/Kosench/go-link-tracker/internal/service"
	"github.com/gin-gonic/gin"
)

type mockRedirector struct {
	result    service.RedirectResult
	gotAlias  string
	gotHeader http.Header
}

func (m *mockRedirector) HandleRedirect(ctx context.Context, rawAlias string, headers http.Header) service.RedirectResult {
	m.gotAlias = rawAlias
	m.gotHeader = headers
	return m.result
}

func redirectRouter(redirector *mockRedirector) *gin.Engine {
	gin.SetMode(gin.TestMode)

	router := gin.New()
	tmpl := template.Must(template.New("notfound.html").Parse(
		`<p>Link {{ .alias }} not found. <a href="{{ .home }}">Home</a></p>`))
	router.SetHTMLTemplate(tmpl)

	handler := NewRedirectHandler(redirector, "http://localhost:8080")
	router.GET("/:alias", handler.Redirect)
	return router
}

func TestRedirectFound(t *testing.T) {
	redirector := &mockRedirector{
		result: service.RedirectResult{
			Outcome: service.OutcomeRedirect,
			Target:  "https://example.com/page",
			Alias:   "abc123",
		},
	}
	router := redirectRouter(redirector)

	req := httptest.NewRequest("GET", "/abc123", nil)
	req.Header.Set("User-Agent", "test-agent")
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	if w.Code != http.StatusFound {
		t.Errorf("Redirect() status = %d, want %d", w.Code, http.StatusFound)
	}
	if location := w.Header().Get("Location"); location != "https://example.com/page" {
		t.Errorf("Redirect() Location = %q, want %q", location, "https://example.com/page")
	}
	if redirector.gotAlias != "abc123" {
		t.Errorf("Redirect() passed alias %q, want %q", redirector.gotAlias, "abc123")
	}
	if redirector.gotHeader.Get("User-Agent") != "test-agent" {
		t.Error("Redirect() should pass request headers through")
	}
}

func TestRedirectNotFound(t *testing.T) {
	redirector := &mockRedirector{
		result: service.RedirectResult{
			Outcome: service.OutcomeNotFound,
			Alias:   "missing",
		},
	}
	router := redirectRouter(redirector)

	req := httptest.NewRequest("GET", "/missing", nil)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Errorf("Redirect() status = %d, want %d", w.Code, http.StatusNotFound)
	}
	if body := w.Body.String(); !strings.Contains(body, "missing") {
		t.Errorf("Redirect() body = %q, want it to name the alias", body)
	}
}

func TestRedirectRootFallback(t *testing.T) {
	redirector := &mockRedirector{
		result: service.RedirectResult{Outcome: service.OutcomeRoot},
	}
	router := redirectRouter(redirector)

	req := httptest.NewRequest("GET", "/%20", nil)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	if w.Code != http.StatusFound {
		t.Errorf("Redirect() status = %d, want %d", w.Code, http.StatusFound)
	}
	if location := w.Header().Get("Location"); location != "/" {
		t.Errorf("Redirect() Location = %q, want %q", location, "/")
	}
}
