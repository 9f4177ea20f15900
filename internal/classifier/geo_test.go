package classifier

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func newGeoServer(t *testing.T, status int, body string) *httptest.Server {
	t.Helper()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		w.Write([]byte(body))
	}))
	t.Cleanup(server.Close)

	return server
}

func TestIPAPIClientResolve(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
		want   string
	}{
		{
			name:   "full response",
			status: http.StatusOK,
			body:   `{"city": "Berlin", "country_name": "Germany"}`,
			want:   "Berlin, Germany",
		},
		{
			name:   "missing city",
			status: http.StatusOK,
			body:   `{"country_name": "Germany"}`,
			want:   "Unknown, Germany",
		},
		{
			name:   "missing country",
			status: http.StatusOK,
			body:   `{"city": "Berlin"}`,
			want:   "Berlin, Unknown",
		},
		{
			name:   "service reports error",
			status: http.StatusOK,
			body:   `{"error": true, "reason": "Reserved IP Address"}`,
			want:   Unknown,
		},
		{
			name:   "non-success status",
			status: http.StatusTooManyRequests,
			body:   `{"error": true}`,
			want:   Unknown,
		},
		{
			name:   "malformed body",
			status: http.StatusOK,
			body:   `not json`,
			want:   Unknown,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := newGeoServer(t, tt.status, tt.body)
			client := NewIPAPIClient(server.URL, 2*time.Second)

			got := client.Resolve(context.Background(), "203.0.113.7")
			if got != tt.want {
				t.Errorf("Resolve() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestIPAPIClientResolveNetworkFailure(t *testing.T) {
	server := newGeoServer(t, http.StatusOK, `{}`)
	serverURL := server.URL
	server.Close()

	client := NewIPAPIClient(serverURL, 500*time.Millisecond)

	// Недоступный сервис деградирует до Unknown, а не до ошибки
	if got := client.Resolve(context.Background(), "203.0.113.7"); got != Unknown {
		t.Errorf("Resolve() = %q, want %q", got, Unknown)
	}
}

func TestIPAPIClientResolveUnknownIP(t *testing.T) {
	requested := false
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requested = true
	}))
	defer server.Close()

	client := NewIPAPIClient(server.URL, time.Second)

	if got := client.Resolve(context.Background(), Unknown); got != Unknown {
		t.Errorf("Resolve() = %q, want %q", got, Unknown)
	}
	if requested {
		t.Error("Resolve() should not call the service for an unknown IP")
	}
}
