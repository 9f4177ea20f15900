package service

import (
	"context"
	"fmt"
	"time"

	apperrors "github.com/Kosench/go-link-tracker/internal/errors"
	"github.com/Kosench/go-link-tracker/internal/model"
	"github.com/Kosench/go-link-tracker/internal/repository"
	"github.com/Kosench/go-link-tracker/internal/utils"
)

type URLService struct {
	urlRepo    repository.URLRepository
	baseURL    string
	maxRetries int
}

func NewURLService(urlRepo repository.URLRepository, baseURL string) *URLService {
	return &URLService{
		urlRepo:    urlRepo,
		baseURL:    baseURL,
		maxRetries: 5,
	}
}

func (s *URLService) CreateShortURL(ctx context.Context, ownerID string, req *model.CreateURLRequest) (*model.URLResponse, error) {
	if ownerID == "" {
		return nil, apperrors.NewValidationError("ownerId", "owner is required")
	}

	if err := utils.ValidateTargetURL(req.URL); err != nil {
		return nil, fmt.Errorf("validate error: %w", err)
	}

	sanitizedURL := utils.SanitizeInput(req.URL)

	alias, err := s.generateUniqueAlias(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to generate alias: %w", err)
	}

	url := &model.URL{
		Alias:     alias,
		TargetURL: sanitizedURL,
		OwnerID:   ownerID,
		CreatedAt: time.Now(),
	}

	if err := s.urlRepo.Create(ctx, url); err != nil {
		return nil, fmt.Errorf("failed to create URL: %w", err)
	}

	return &model.URLResponse{
		ID:        url.ID,
		Alias:     url.Alias,
		TargetURL: url.TargetURL,
		ShortURL:  s.buildShortURL(alias),
		CreatedAt: url.CreatedAt,
	}, nil
}

func (s *URLService) GetUserURLs(ctx context.Context, ownerID string) ([]model.URLResponse, error) {
	urls, err := s.urlRepo.GetByOwner(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list URLs: %w", err)
	}

	responses := make([]model.URLResponse, len(urls))
	for i, url := range urls {
		responses[i] = model.URLResponse{
			ID:        url.ID,
			Alias:     url.Alias,
			TargetURL: url.TargetURL,
			ShortURL:  s.buildShortURL(url.Alias),
			CreatedAt: url.CreatedAt,
		}
	}

	return responses, nil
}

func (s *URLService) generateUniqueAlias(ctx context.Context) (string, error) {
	for attempt := 0; attempt < s.maxRetries; attempt++ {
		alias, err := utils.GenerateAlias()
		if err != nil {
			return "", fmt.Errorf("failed to generate alias: %w", err)
		}

		// Проверяем уникальность
		exists, err := s.urlRepo.ExistsByAlias(ctx, alias)
		if err != nil {
			continue // пробуем еще раз
		}

		if !exists {
			return alias, nil
		}
	}

	return "", apperrors.ErrAliasGeneration
}

func (s *URLService) buildShortURL(alias string) string {
	return fmt.Sprintf("%s/%s", s.baseURL, alias)
}
