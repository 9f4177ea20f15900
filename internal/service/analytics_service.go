package service

import (
	"context"
	"fmt"
	"time"

	"github.com/Kosench/go-link-tracker/internal/classifier"
	"github.com/Kosench/go-link-tracker/internal/model"
	"github.com/Kosench/go-link-tracker/internal/repository"
)

// Количество дней во временном ряду дашборда (включая сегодняшний)
const trendDays = 7

// AnalyticsService собирает агрегаты по переходам для дашборда
type AnalyticsService struct {
	urlRepo   repository.URLRepository
	visitRepo repository.VisitRepository
	baseURL   string
	now       func() time.Time
}

func NewAnalyticsService(urlRepo repository.URLRepository, visitRepo repository.VisitRepository, baseURL string) *AnalyticsService {
	return &AnalyticsService{
		urlRepo:   urlRepo,
		visitRepo: visitRepo,
		baseURL:   baseURL,
		now:       time.Now,
	}
}

// GetSummary возвращает агрегаты по всем ссылкам владельца.
// Для владельца без ссылок запрос к таблице переходов не выполняется.
func (s *AnalyticsService) GetSummary(ctx context.Context, ownerID string) (*model.AnalyticsSummary, error) {
	urls, err := s.urlRepo.GetByOwner(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to load owner URLs: %w", err)
	}

	if len(urls) == 0 {
		return emptySummary(), nil
	}

	urlIDs := make([]int64, len(urls))
	for i, url := range urls {
		urlIDs[i] = url.ID
	}

	visits, err := s.visitRepo.GetByURLIDs(ctx, urlIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to load visits: %w", err)
	}

	summary := Summarize(visits, s.now())
	summary.URLs = s.toResponses(urls)

	return summary, nil
}

// Summarize - чистая агрегация набора переходов: общее количество,
// группировки по категориям и временной ряд за последние 7 дней.
// Для фиксированных visits и now результат детерминирован.
func Summarize(visits []model.Visit, now time.Time) *model.AnalyticsSummary {
	summary := &model.AnalyticsSummary{
		TotalVisits:    len(visits),
		Devices:        make(map[string]int),
		Locations:      make(map[string]int),
		Browsers:       make(map[string]int),
		Systems:        make(map[string]int),
		VisitsOverTime: make([]model.DailyVisits, 0, trendDays),
	}

	// Дни считаем по UTC, а не по локальному времени посетителя
	dayCounts := make(map[string]int)

	for _, visit := range visits {
		summary.Devices[categoryKey(visit.Device)]++
		summary.Locations[categoryKey(visit.Location)]++
		summary.Browsers[categoryKey(visit.Browser)]++
		summary.Systems[categoryKey(visit.OS)]++

		dayCounts[visit.CreatedAt.UTC().Format("2006-01-02")]++
	}

	today := now.UTC()
	for i := trendDays - 1; i >= 0; i-- {
		day := today.AddDate(0, 0, -i).Format("2006-01-02")
		summary.VisitsOverTime = append(summary.VisitsOverTime, model.DailyVisits{
			Date:  day,
			Count: dayCounts[day],
		})
	}

	return summary
}

func categoryKey(value string) string {
	if value == "" {
		return classifier.Unknown
	}
	return value
}

func emptySummary() *model.AnalyticsSummary {
	return &model.AnalyticsSummary{
		TotalVisits:    0,
		Devices:        make(map[string]int),
		Locations:      make(map[string]int),
		Browsers:       make(map[string]int),
		Systems:        make(map[string]int),
		VisitsOverTime: []model.DailyVisits{},
		URLs:           []model.URLResponse{},
	}
}

func (s *AnalyticsService) toResponses(urls []model.URL) []model.URLResponse {
	responses := make([]model.URLResponse, len(urls))
	for i, url := range urls {
		responses[i] = model.URLResponse{
			ID:        url.ID,
			Alias:     url.Alias,
			TargetURL: url.TargetURL,
			ShortURL:  fmt.Sprintf("%s/%s", s.baseURL, url.Alias),
			CreatedAt: url.CreatedAt,
		}
	}
	return responses
}
