package service

import (
	"context"
	"errors"
	"log"
	"net/http"

	"github.com/Kosench/go-link-tracker/internal/classifier"
	apperrors "github.com/Kosench/go-link-tracker/internal/errors"
	"github.com/Kosench/go-link-tracker/internal/model"
	"github.com/Kosench/go-link-tracker/internal/repository"
	"github.com/Kosench/go-link-tracker/internal/utils"
)

type RedirectOutcome int

const (
	// OutcomeRedirect - найден алиас, редирект на целевой URL
	OutcomeRedirect RedirectOutcome = iota
	// OutcomeNotFound - алиаса нет, показываем страницу 404
	OutcomeNotFound
	// OutcomeRoot - пустой алиас или сбой хранилища, редирект на корень
	OutcomeRoot
)

type RedirectResult struct {
	Outcome RedirectOutcome
	Target  string
	Alias   string
}

// RedirectService - оркестратор редиректа: резолв алиаса, классификация
// посетителя и неблокирующая отправка данных о переходе
type RedirectService struct {
	urlRepo    repository.URLRepository
	classifier *classifier.Classifier
	tracker    VisitTracker
}

func NewRedirectService(urlRepo repository.URLRepository, cls *classifier.Classifier, tracker VisitTracker) *RedirectService {
	return &RedirectService{
		urlRepo:    urlRepo,
		classifier: cls,
		tracker:    tracker,
	}
}

// HandleRedirect вычисляет результат редиректа для запрошенного алиаса.
// Инвариант: если алиас найден, редирект происходит всегда - сбои
// классификации и учета перехода на него не влияют.
func (s *RedirectService) HandleRedirect(ctx context.Context, rawAlias string, headers http.Header) RedirectResult {
	alias := utils.NormalizeAlias(rawAlias)
	if alias == "" {
		return RedirectResult{Outcome: OutcomeRoot}
	}

	url, err := s.urlRepo.GetByAlias(ctx, alias)
	if err != nil {
		if errors.Is(err, apperrors.ErrURLNotFound) {
			log.Printf("⚠️  No URL found for alias %s", alias)
			return RedirectResult{Outcome: OutcomeNotFound, Alias: alias}
		}

		// Сбой хранилища - не ошибка для посетителя, уводим на корень
		log.Printf("❌ Failed to resolve alias %s: %v", alias, err)
		return RedirectResult{Outcome: OutcomeRoot}
	}

	// Классификация дожидается геолокации, но ее сбой уже поглощен
	// внутри классификатора
	visitor := s.classifier.Classify(ctx, headers)

	s.tracker.Track(model.TrackVisitRequest{
		URLID:    url.ID,
		Device:   visitor.Device,
		OS:       visitor.OS,
		Browser:  visitor.Browser,
		Location: visitor.Location,
		Referrer: visitor.Referrer,
	})

	return RedirectResult{
		Outcome: OutcomeRedirect,
		Target:  utils.NormalizeTargetURL(url.TargetURL),
	}
}
