package service

import (
	"context"
	"net/http"
	"testing"

	"github.com/Kosench/go-link-tracker/internal/classifier"
	apperrors "github.com/Kosench/go-link-tracker/internal/errors"
	"github.com/Kosench/go-link-tracker/internal/model"
)

type mockURLRepo struct {
	urls     map[string]*model.URL
	failWith error
}

func newMockURLRepo() *mockURLRepo {
	return &mockURLRepo{
		urls: make(map[string]*model.URL),
	}
}

func (m *mockURLRepo) Create(ctx context.Context, url *model.URL) error {
	if m.failWith != nil {
		return m.failWith
	}
	url.ID = int64(len(m.urls) + 1)
	m.urls[url.Alias] = url
	return nil
}

func (m *mockURLRepo) GetByAlias(ctx context.Context, alias string) (*model.URL, error) {
	if m.failWith != nil {
		return nil, m.failWith
	}
	url, exists := m.urls[alias]
	if !exists {
		return nil, apperrors.ErrURLNotFound
	}
	return url, nil
}

func (m *mockURLRepo) GetByOwner(ctx context.Context, ownerID string) ([]model.URL, error) {
	if m.failWith != nil {
		return nil, m.failWith
	}
	var urls []model.URL
	for _, url := range m.urls {
		if url.OwnerID == ownerID {
			urls = append(urls, *url)
		}
	}
	return urls, nil
}

func (m *mockURLRepo) ExistsByAlias(ctx context.Context, alias string) (bool, error) {
	if m.failWith != nil {
		return false, m.failWith
	}
	_, exists := m.urls[alias]
	return exists, nil
}

type mockTracker struct {
	tracked []model.TrackVisitRequest
}

func (m *mockTracker) Track(payload model.TrackVisitRequest) {
	m.tracked = append(m.tracked, payload)
}

func newRedirectService(repo *mockURLRepo, tracker *mockTracker) *RedirectService {
	cls := classifier.New(&classifier.StaticLocationProvider{Value: "Berlin, Germany"})
	return NewRedirectService(repo, cls, tracker)
}

func desktopHeaders() http.Header {
	headers := http.Header{}
	headers.Set("User-Agent", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) Chrome/120.0.0.0 Safari/537.36")
	headers.Set("X-Forwarded-For", "203.0.113.7")
	headers.Set("Referer", "https://news.example.com")
	return headers
}

func TestHandleRedirectSchemeNormalization(t *testing.T) {
	tests := []struct {
		name       string
		target     string
		wantTarget string
	}{
		{"schemeless target", "example.com/page", "https://example.com/page"},
		{"https target unchanged", "https://example.com/page", "https://example.com/page"},
		{"http target unchanged", "http://example.com/page", "http://example.com/page"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := newMockURLRepo()
			repo.urls["abc123"] = &model.URL{ID: 1, Alias: "abc123", TargetURL: tt.target}

			svc := newRedirectService(repo, &mockTracker{})
			result := svc.HandleRedirect(context.Background(), "abc123", desktopHeaders())

			if result.Outcome != OutcomeRedirect {
				t.Fatalf("HandleRedirect() outcome = %v, want OutcomeRedirect", result.Outcome)
			}
			if result.Target != tt.wantTarget {
				t.Errorf("HandleRedirect() target = %q, want %q", result.Target, tt.wantTarget)
			}
		})
	}
}

func TestHandleRedirectAliasNoise(t *testing.T) {
	repo := newMockURLRepo()
	repo.urls["abc123"] = &model.URL{ID: 1, Alias: "abc123", TargetURL: "https://example.com"}
	svc := newRedirectService(repo, &mockTracker{})

	for _, raw := range []string{"abc123", "/abc123", "abc123/", " abc123 ", "/abc123/"} {
		result := svc.HandleRedirect(context.Background(), raw, desktopHeaders())
		if result.Outcome != OutcomeRedirect {
			t.Errorf("HandleRedirect(%q) outcome = %v, want OutcomeRedirect", raw, result.Outcome)
		}
	}
}

func TestHandleRedirectEmptyAlias(t *testing.T) {
	repo := newMockURLRepo()
	tracker := &mockTracker{}
	svc := newRedirectService(repo, tracker)

	for _, raw := range []string{"", "/", "///", "   "} {
		result := svc.HandleRedirect(context.Background(), raw, desktopHeaders())
		if result.Outcome != OutcomeRoot {
			t.Errorf("HandleRedirect(%q) outcome = %v, want OutcomeRoot", raw, result.Outcome)
		}
	}

	if len(tracker.tracked) != 0 {
		t.Errorf("HandleRedirect() tracked %d visits for empty aliases, want 0", len(tracker.tracked))
	}
}

func TestHandleRedirectNotFound(t *testing.T) {
	repo := newMockURLRepo()
	tracker := &mockTracker{}
	svc := newRedirectService(repo, tracker)

	result := svc.HandleRedirect(context.Background(), "missing", desktopHeaders())

	if result.Outcome != OutcomeNotFound {
		t.Fatalf("HandleRedirect() outcome = %v, want OutcomeNotFound", result.Outcome)
	}
	if result.Alias != "missing" {
		t.Errorf("HandleRedirect() alias = %q, want %q", result.Alias, "missing")
	}
	if len(tracker.tracked) != 0 {
		t.Errorf("HandleRedirect() tracked %d visits for a missing alias, want 0", len(tracker.tracked))
	}
}

func TestHandleRedirectStoreFailure(t *testing.T) {
	repo := newMockURLRepo()
	repo.failWith = apperrors.NewStoreError("connection refused", nil)
	tracker := &mockTracker{}
	svc := newRedirectService(repo, tracker)

	// Сбой хранилища деградирует до редиректа на корень, не до 404
	result := svc.HandleRedirect(context.Background(), "abc123", desktopHeaders())

	if result.Outcome != OutcomeRoot {
		t.Errorf("HandleRedirect() outcome = %v, want OutcomeRoot", result.Outcome)
	}
	if len(tracker.tracked) != 0 {
		t.Errorf("HandleRedirect() tracked %d visits on store failure, want 0", len(tracker.tracked))
	}
}

func TestHandleRedirectTracksVisit(t *testing.T) {
	repo := newMockURLRepo()
	repo.urls["abc123"] = &model.URL{ID: 42, Alias: "abc123", TargetURL: "example.com"}
	tracker := &mockTracker{}
	svc := newRedirectService(repo, tracker)

	svc.HandleRedirect(context.Background(), "abc123", desktopHeaders())

	if len(tracker.tracked) != 1 {
		t.Fatalf("HandleRedirect() tracked %d visits, want 1", len(tracker.tracked))
	}

	payload := tracker.tracked[0]
	if payload.URLID != 42 {
		t.Errorf("tracked urlId = %d, want 42", payload.URLID)
	}
	if payload.Device != classifier.DeviceDesktop {
		t.Errorf("tracked device = %q, want %q", payload.Device, classifier.DeviceDesktop)
	}
	if payload.OS != "Windows" {
		t.Errorf("tracked os = %q, want Windows", payload.OS)
	}
	if payload.Browser != "Chrome" {
		t.Errorf("tracked browser = %q, want Chrome", payload.Browser)
	}
	if payload.Location != "Berlin, Germany" {
		t.Errorf("tracked location = %q, want Berlin, Germany", payload.Location)
	}
	if payload.Referrer != "https://news.example.com" {
		t.Errorf("tracked referrer = %q, want referer header", payload.Referrer)
	}
}
