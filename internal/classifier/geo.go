package classifier

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"time"
)

// LocationProvider определяет местоположение посетителя по IP.
// Resolve никогда не возвращает ошибку: любой сбой - это "Unknown".
type LocationProvider interface {
	Resolve(ctx context.Context, ip string) string
}

// IPAPIClient - клиент сервиса геолокации с API вида ipapi.co/{ip}/json/
type IPAPIClient struct {
	baseURL string
	client  *http.Client
}

func NewIPAPIClient(baseURL string, timeout time.Duration) *IPAPIClient {
	return &IPAPIClient{
		baseURL: baseURL,
		client: &http.Client{
			Timeout: timeout,
		},
	}
}

type geoResponse struct {
	City    string `json:"city"`
	Country string `json:"country_name"`
	Error   bool   `json:"error"`
}

func (c *IPAPIClient) Resolve(ctx context.Context, ip string) string {
	if ip == "" || ip == Unknown {
		return Unknown
	}

	url := fmt.Sprintf("%s/%s/json/", c.baseURL, ip)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		log.Printf("⚠️  Location lookup failed for %s: %v", ip, err)
		return Unknown
	}

	resp, err := c.client.Do(req)
	if err != nil {
		log.Printf("⚠️  Location lookup failed for %s: %v", ip, err)
		return Unknown
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		log.Printf("⚠️  Location lookup for %s returned status %d", ip, resp.StatusCode)
		return Unknown
	}

	var data geoResponse
	if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
		log.Printf("⚠️  Location lookup failed for %s: %v", ip, err)
		return Unknown
	}

	if data.Error {
		return Unknown
	}

	city := data.City
	if city == "" {
		city = Unknown
	}
	country := data.Country
	if country == "" {
		country = Unknown
	}

	return fmt.Sprintf("%s, %s", city, country)
}

// StaticLocationProvider всегда возвращает одно и то же значение.
// Используется в тестах и при отключенной геолокации.
type StaticLocationProvider struct {
	Value string
}

func (p *StaticLocationProvider) Resolve(ctx context.Context, ip string) string {
	if p.Value == "" {
		return Unknown
	}
	return p.Value
}
