package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	apperrors "github.com/Kosench/go-link-tracker/internal/errors"
	"github.com/Kosench/go-link-tracker/internal/model"
)

type PostgresVisitRepository struct {
	db *sql.DB
}

func NewPostgresVisitRepository(db *sql.DB) VisitRepository {
	return &PostgresVisitRepository{
		db: db,
	}
}

func (r *PostgresVisitRepository) Create(ctx context.Context, visit *model.Visit) error {
	query := `
	INSERT INTO visits (url_id, device, os, browser, location, referrer, created_at)
	VALUES ($1, $2, $3, $4, $5, $6, $7)
	RETURNING id
	`

	visit.CreatedAt = time.Now()

	err := r.db.QueryRowContext(
		ctx,
		query,
		visit.URLID,
		visit.Device,
		visit.OS,
		visit.Browser,
		visit.Location,
		visit.Referrer,
		visit.CreatedAt,
	).Scan(&visit.ID)

	if err != nil {
		// Сюда же попадает нарушение FK (url_id без записи в urls)
		return apperrors.NewStoreError("failed to create visit", err)
	}

	return nil
}

func (r *PostgresVisitRepository) GetByURLIDs(ctx context.Context, urlIDs []int64) ([]model.Visit, error) {
	if len(urlIDs) == 0 {
		return nil, nil
	}

	placeholders := make([]string, len(urlIDs))
	args := make([]interface{}, len(urlIDs))
	for i, id := range urlIDs {
		placeholders[i] = fmt.Sprintf("$%d", i+1)
		args[i] = id
	}

	query := fmt.Sprintf(`
	SELECT id, url_id, device, os, browser, location, referrer, created_at
	FROM visits
	WHERE url_id IN (%s)
	`, strings.Join(placeholders, ", "))

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewStoreError("failed to list visits", err)
	}
	defer rows.Close()

	var visits []model.Visit
	for rows.Next() {
		var visit model.Visit
		if err := rows.Scan(
			&visit.ID,
			&visit.URLID,
			&visit.Device,
			&visit.OS,
			&visit.Browser,
			&visit.Location,
			&visit.Referrer,
			&visit.CreatedAt,
		); err != nil {
			return nil, apperrors.NewStoreError("failed to scan visit row", err)
		}
		visits = append(visits, visit)
	}

	if err := rows.Err(); err != nil {
		return nil, apperrors.NewStoreError("failed to iterate visit rows", err)
	}

	return visits, nil
}
