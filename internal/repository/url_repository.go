package repository

import (
	"context"
	"database/sql"
	"fmt"

	apperrors "github.com/Kosench/go-link-tracker/internal/errors"
	"github.com/Kosench/go-link-tracker/internal/model"
)

type PostgresURLRepository struct {
	db *sql.DB
}

func NewPostgresURLRepository(db *sql.DB) URLRepository {
	return &PostgresURLRepository{
		db: db,
	}
}

func (r *PostgresURLRepository) Create(ctx context.Context, url *model.URL) error {
	// Атомарная вставка: при гонке за алиас вернется ErrNoRows
	query := `
	INSERT INTO urls (alias, target_url, owner_id, created_at)
	VALUES ($1, $2, $3, $4)
	ON CONFLICT (alias) DO NOTHING
	RETURNING id
	`

	err := r.db.QueryRowContext(
		ctx,
		query,
		url.Alias,
		url.TargetURL,
		url.OwnerID,
		url.CreatedAt,
	).Scan(&url.ID)

	if err == sql.ErrNoRows {
		return apperrors.ErrAliasExists
	}

	if err != nil {
		return apperrors.NewStoreError("failed to create URL", err)
	}

	return nil
}

func (r *PostgresURLRepository) GetByAlias(ctx context.Context, alias string) (*model.URL, error) {
	query := `
	SELECT id, alias, target_url, owner_id, created_at
	FROM urls
	WHERE alias = $1
	`

	url := &model.URL{}
	err := r.db.QueryRowContext(ctx, query, alias).Scan(
		&url.ID,
		&url.Alias,
		&url.TargetURL,
		&url.OwnerID,
		&url.CreatedAt)

	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("URL with alias '%s': %w", alias, apperrors.ErrURLNotFound)
	}

	if err != nil {
		return nil, apperrors.NewStoreError("failed to get URL", err)
	}

	return url, nil
}

func (r *PostgresURLRepository) GetByOwner(ctx context.Context, ownerID string) ([]model.URL, error) {
	query := `
	SELECT id, alias, target_url, owner_id, created_at
	FROM urls
	WHERE owner_id = $1
	ORDER BY created_at DESC
	`

	rows, err := r.db.QueryContext(ctx, query, ownerID)
	if err != nil {
		return nil, apperrors.NewStoreError("failed to list URLs by owner", err)
	}
	defer rows.Close()

	var urls []model.URL
	for rows.Next() {
		var url model.URL
		if err := rows.Scan(
			&url.ID,
			&url.Alias,
			&url.TargetURL,
			&url.OwnerID,
			&url.CreatedAt,
		); err != nil {
			return nil, apperrors.NewStoreError("failed to scan URL row", err)
		}
		urls = append(urls, url)
	}

	if err := rows.Err(); err != nil {
		return nil, apperrors.NewStoreError("failed to iterate URL rows", err)
	}

	return urls, nil
}

func (r *PostgresURLRepository) ExistsByAlias(ctx context.Context, alias string) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM urls WHERE alias = $1)`

	var exists bool
	err := r.db.QueryRowContext(ctx, query, alias).Scan(&exists)
	if err != nil {
		return false, apperrors.NewStoreError("failed to check alias existence", err)
	}

	return exists, nil
}
