package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Kosench/go-link-tracker/internal/auth"
	"github.com/Kosench/go-link-tracker/internal/model"
	"github.com/gin-gonic/gin"
)

type mockAnalyticsProvider struct {
	summary  *model.AnalyticsSummary
	failWith error
	gotOwner string
}

func (m *mockAnalyticsProvider) GetSummary(ctx context.Context, ownerID string) (*model.AnalyticsSummary, error) {
	m.gotOwner = ownerID
	if m.failWith != nil {
		return nil, m.failWith
	}
	return m.summary, nil
}

func analyticsRouter(provider *mockAnalyticsProvider) *gin.Engine {
	gin.SetMode(gin.TestMode)

	router := gin.New()
	router.Use(auth.Middleware("X-User-ID"))
	router.GET("/api/analytics", NewAnalyticsHandler(provider).GetAnalytics)
	return router
}

func getAnalytics(t *testing.T, router *gin.Engine, userID string) (int, map[string]interface{}) {
	t.Helper()

	req := httptest.NewRequest("GET", "/api/analytics", nil)
	if userID != "" {
		req.Header.Set("X-User-ID", userID)
	}
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	var response map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &response); err != nil {
		t.Fatalf("Failed to unmarshal response: %v", err)
	}

	return w.Code, response
}

func TestGetAnalytics(t *testing.T) {
	provider := &mockAnalyticsProvider{
		summary: &model.AnalyticsSummary{
			TotalVisits: 3,
			Devices:     map[string]int{"Mobile": 2, "Desktop": 1},
			Locations:   map[string]int{"Berlin, Germany": 3},
			Browsers:    map[string]int{"Chrome": 3},
			Systems:     map[string]int{"Android": 2, "Windows": 1},
		},
	}
	router := analyticsRouter(provider)

	status, response := getAnalytics(t, router, "user_42")

	if status != http.StatusOK {
		t.Errorf("GetAnalytics() status = %d, want %d", status, http.StatusOK)
	}
	if response["success"] != true {
		t.Fatalf("GetAnalytics() response = %v, want success true", response)
	}
	if provider.gotOwner != "user_42" {
		t.Errorf("GetAnalytics() passed owner %q, want %q", provider.gotOwner, "user_42")
	}

	data, ok := response["data"].(map[string]interface{})
	if !ok {
		t.Fatalf("GetAnalytics() data missing from response: %v", response)
	}
	if data["totalVisits"] != float64(3) {
		t.Errorf("GetAnalytics() totalVisits = %v, want 3", data["totalVisits"])
	}
	if _, ok := data["os"]; !ok {
		t.Error("GetAnalytics() data should expose systems under the os key")
	}
}

func TestGetAnalyticsUnauthenticated(t *testing.T) {
	provider := &mockAnalyticsProvider{}
	router := analyticsRouter(provider)

	status, response := getAnalytics(t, router, "")

	// Формат ответа дашборда: всегда 200, отказ только флагом в теле
	if status != http.StatusOK {
		t.Errorf("GetAnalytics() status = %d, want %d", status, http.StatusOK)
	}
	if response["success"] != false {
		t.Errorf("GetAnalytics() response = %v, want success false", response)
	}
	if response["message"] != "User not signed in" {
		t.Errorf("GetAnalytics() message = %v, want %q", response["message"], "User not signed in")
	}
	if provider.gotOwner != "" {
		t.Error("GetAnalytics() should not query summary without a signed in user")
	}
}

func TestGetAnalyticsServiceFailure(t *testing.T) {
	provider := &mockAnalyticsProvider{failWith: errors.New("db down")}
	router := analyticsRouter(provider)

	status, response := getAnalytics(t, router, "user_42")

	if status != http.StatusOK {
		t.Errorf("GetAnalytics() status = %d, want %d", status, http.StatusOK)
	}
	if response["success"] != false {
		t.Errorf("GetAnalytics() response = %v, want success false", response)
	}
	if response["message"] != "Internal Server Error" {
		t.Errorf("GetAnalytics() message = %v, want %q", response["message"], "Internal Server Error")
	}
}
