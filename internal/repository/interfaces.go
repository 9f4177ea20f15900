package repository

import (
	"context"

	"github.com/Kosench/go-link-tracker/internal/model"
)

type URLRepository interface {
	Create(ctx context.Context, url *model.URL) error
	GetByAlias(ctx context.Context, alias string) (*model.URL, error)
	GetByOwner(ctx context.Context, ownerID string) ([]model.URL, error)
	ExistsByAlias(ctx context.Context, alias string) (bool, error)
}

type VisitRepository interface {
	Create(ctx context.Context, visit *model.Visit) error
	GetByURLIDs(ctx context.Context, urlIDs []int64) ([]model.Visit, error)
}
