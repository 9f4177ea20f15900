package service

import (
	"bytes"
	"context"
	"encoding/json"
	"log"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/Kosench/go-link-tracker/internal/model"
)

// VisitTracker принимает данные о переходе для записи в фоне.
// Track возвращает управление сразу: результат отправки вызывающему не виден.
type VisitTracker interface {
	Track(payload model.TrackVisitRequest)
}

// HTTPVisitTracker шлет переходы на внутренний endpoint учета.
// Каждая отправка живет в своей горутине со своим таймаутом и не
// привязана к жизненному циклу запроса, породившего редирект.
type HTTPVisitTracker struct {
	endpoint string
	client   *http.Client
	wg       sync.WaitGroup
}

func NewHTTPVisitTracker(baseURL string) *HTTPVisitTracker {
	return &HTTPVisitTracker{
		endpoint: strings.TrimRight(baseURL, "/") + "/api/track-visit",
		client: &http.Client{
			Timeout: 5 * time.Second,
		},
	}
}

// Track отправляет данные о переходе, не блокируя вызывающего.
// Любой сбой только логируется.
func (t *HTTPVisitTracker) Track(payload model.TrackVisitRequest) {
	t.wg.Add(1)

	go func() {
		defer t.wg.Done()

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		body, err := json.Marshal(payload)
		if err != nil {
			log.Printf("Failed to marshal visit for urlId %d: %v", payload.URLID, err)
			return
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodPost, t.endpoint, bytes.NewReader(body))
		if err != nil {
			log.Printf("Failed to build track request for urlId %d: %v", payload.URLID, err)
			return
		}
		req.Header.Set("Content-Type", "application/json")

		resp, err := t.client.Do(req)
		if err != nil {
			log.Printf("⚠️  Visit tracking failed for urlId %d: %v", payload.URLID, err)
			return
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			log.Printf("⚠️  Visit tracking for urlId %d returned status %d", payload.URLID, resp.StatusCode)
		}
	}()
}

// Shutdown дожидается завершения всех начатых отправок
func (t *HTTPVisitTracker) Shutdown() {
	t.wg.Wait()
}
