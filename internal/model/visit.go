package model

import "time"

type Visit struct {
	ID        int64     `json:"id"`
	URLID     int64     `json:"url_id"`
	Device    string    `json:"device"`
	OS        string    `json:"os"`
	Browser   string    `json:"browser"`
	Location  string    `json:"location"`
	Referrer  string    `json:"referrer"`
	CreatedAt time.Time `json:"created_at"`
}

// TrackVisitRequest - формат тела POST /api/track-visit.
// Имена полей повторяют формат, который шлет оркестратор редиректа.
type TrackVisitRequest struct {
	URLID    int64  `json:"urlId"`
	Device   string `json:"device"`
	OS       string `json:"os"`
	Browser  string `json:"browser"`
	Location string `json:"location"`
	Referrer string `json:"referrer"`
}

type DailyVisits struct {
	Date  string `json:"date"`
	Count int    `json:"count"`
}

// AnalyticsSummary - агрегаты по всем ссылкам одного владельца
type AnalyticsSummary struct {
	TotalVisits    int            `json:"totalVisits"`
	Devices        map[string]int `json:"devices"`
	Locations      map[string]int `json:"locations"`
	Browsers       map[string]int `json:"browsers"`
	Systems        map[string]int `json:"os"`
	VisitsOverTime []DailyVisits  `json:"visitsOverTime"`
	URLs           []URLResponse  `json:"urls"`
}
