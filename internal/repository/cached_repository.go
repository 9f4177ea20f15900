package repository

import (
	"context"
	"database/sql"
	"log"

	"github.com/Kosench/go-link-tracker/internal/cache"
	"github.com/Kosench/go-link-tracker/internal/model"
)

// CachedURLRepository - репозиторий с кэшированием поиска по алиасу.
// Горячий путь редиректа ходит в Redis, промахи и записи идут в Postgres.
type CachedURLRepository struct {
	inner URLRepository
	cache cache.Cache
	keys  *cache.KeyBuilder
}

// NewCachedURLRepository создает новый репозиторий с кэшем
func NewCachedURLRepository(db *sql.DB, c cache.Cache) URLRepository {
	return &CachedURLRepository{
		inner: NewPostgresURLRepository(db),
		cache: c,
		keys:  cache.DefaultKeyBuilder,
	}
}

// Create создает новую запись URL и кладет ее в кэш
func (r *CachedURLRepository) Create(ctx context.Context, url *model.URL) error {
	if err := r.inner.Create(ctx, url); err != nil {
		return err
	}

	// Ошибку кэша логируем, но операцию не прерываем
	if err := r.cache.Set(ctx, r.keys.URL(url.Alias), url); err != nil {
		log.Printf("Failed to cache URL: %v", err)
	}

	return nil
}

// GetByAlias получает URL по алиасу, сначала из кэша
func (r *CachedURLRepository) GetByAlias(ctx context.Context, alias string) (*model.URL, error) {
	cacheKey := r.keys.URL(alias)
	var cachedURL model.URL

	err := r.cache.Get(ctx, cacheKey, &cachedURL)
	if err == nil {
		return &cachedURL, nil
	}

	if err != cache.ErrCacheMiss {
		// Ошибка кэша не фатальна, продолжаем с БД
		log.Printf("Cache error: %v", err)
	}

	url, err := r.inner.GetByAlias(ctx, alias)
	if err != nil {
		return nil, err
	}

	if err := r.cache.Set(ctx, cacheKey, url); err != nil {
		log.Printf("Failed to cache URL: %v", err)
	}

	return url, nil
}

// GetByOwner всегда ходит в БД: список нужен дашборду и должен быть свежим
func (r *CachedURLRepository) GetByOwner(ctx context.Context, ownerID string) ([]model.URL, error) {
	return r.inner.GetByOwner(ctx, ownerID)
}

// ExistsByAlias проверяет существование алиаса
func (r *CachedURLRepository) ExistsByAlias(ctx context.Context, alias string) (bool, error) {
	exists, err := r.cache.Exists(ctx, r.keys.URL(alias))
	if err == nil && exists {
		return true, nil
	}

	return r.inner.ExistsByAlias(ctx, alias)
}
