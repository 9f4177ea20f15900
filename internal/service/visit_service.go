package service

import (
	"context"
	"fmt"

	"github.com/Kosench/go-link-tracker/internal/classifier"
	apperrors "github.com/Kosench/go-link-tracker/internal/errors"
	"github.com/Kosench/go-link-tracker/internal/model"
	"github.com/Kosench/go-link-tracker/internal/repository"
)

type VisitService struct {
	visitRepo repository.VisitRepository
}

func NewVisitService(visitRepo repository.VisitRepository) *VisitService {
	return &VisitService{
		visitRepo: visitRepo,
	}
}

// RecordVisit валидирует и сохраняет один переход.
// referrer - единственное необязательное поле, по умолчанию "Direct".
func (s *VisitService) RecordVisit(ctx context.Context, req *model.TrackVisitRequest) (*model.Visit, error) {
	if req.URLID == 0 {
		return nil, missingField("urlId")
	}

	required := []struct {
		field string
		value string
	}{
		{"device", req.Device},
		{"os", req.OS},
		{"browser", req.Browser},
		{"location", req.Location},
	}
	for _, f := range required {
		if f.value == "" {
			return nil, missingField(f.field)
		}
	}

	referrer := req.Referrer
	if referrer == "" {
		referrer = classifier.DirectReferrer
	}

	visit := &model.Visit{
		URLID:    req.URLID,
		Device:   req.Device,
		OS:       req.OS,
		Browser:  req.Browser,
		Location: req.Location,
		Referrer: referrer,
	}

	if err := s.visitRepo.Create(ctx, visit); err != nil {
		return nil, fmt.Errorf("failed to save visit: %w", err)
	}

	return visit, nil
}

func missingField(field string) error {
	return apperrors.NewValidationError(field, fmt.Sprintf("Missing field: %s", field))
}
