package model

import "time"

type URL struct {
	ID        int64     `json:"id"`
	Alias     string    `json:"alias"`
	TargetURL string    `json:"target_url"`
	OwnerID   string    `json:"owner_id"`
	CreatedAt time.Time `json:"created_at"`
}

type CreateURLRequest struct {
	URL string `json:"url" binding:"required"`
}

type URLResponse struct {
	ID        int64     `json:"id"`
	Alias     string    `json:"alias"`
	TargetURL string    `json:"target_url"`
	ShortURL  string    `json:"short_url"`
	CreatedAt time.Time `json:"created_at"`
}
