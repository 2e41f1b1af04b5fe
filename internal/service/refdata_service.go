package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/onthi-app/onthi-backend/internal/config"
	"github.com/onthi-app/onthi-backend/internal/model"
	"github.com/onthi-app/onthi-backend/internal/repository"
)

// ErrRefItemNotFound is returned when a reference item does not exist or is deleted.
var ErrRefItemNotFound = errors.New("reference item not found")

const refDataCacheTTL = 12 * time.Hour

// RefDataService handles subjects, grade levels, and exam types. The three
// collections share one schema, so one service covers them all; the mobile
// pickers load them together on the authoring screen.
type RefDataService struct {
	repo *repository.RefDataRepository
	rdb  *redis.Client
	log  zerolog.Logger
}

// NewRefDataService creates a new RefDataService.
func NewRefDataService(repo *repository.RefDataRepository, rdb *redis.Client, log zerolog.Logger) *RefDataService {
	return &RefDataService{
		repo: repo,
		rdb:  rdb,
		log:  log.With().Str("component", "refdata_service").Logger(),
	}
}

// List retrieves reference items filtered by cond with pagination.
func (s *RefDataService) List(ctx context.Context, coll model.RefCollection, cond model.RefCond, page, limit int) ([]model.RefItem, int, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}
	if limit > 100 {
		limit = 100
	}

	items, total, err := s.repo.List(ctx, coll, cond, limit, (page-1)*limit)
	if err != nil {
		return nil, 0, err
	}
	if items == nil {
		items = []model.RefItem{}
	}
	return items, total, nil
}

// ListActive returns every active item of a collection, served from Redis
// when warm. This is the picker payload the authoring screen fetches three
// of concurrently.
func (s *RefDataService) ListActive(ctx context.Context, coll model.RefCollection) ([]model.RefItem, error) {
	cacheKey := config.CacheKey.RefDataKey(string(coll))

	cached, err := s.rdb.Get(ctx, cacheKey).Result()
	if err == nil {
		var items []model.RefItem
		if err := json.Unmarshal([]byte(cached), &items); err == nil {
			return items, nil
		}
		// Corrupt cache entry, fall through to the database.
		s.rdb.Del(ctx, cacheKey)
	} else if !errors.Is(err, redis.Nil) {
		s.log.Warn().Err(err).Str("collection", string(coll)).Msg("Cache read failed, falling back to database")
	}

	active := true
	items, _, err := s.repo.List(ctx, coll, model.RefCond{IsActive: &active}, 1000, 0)
	if err != nil {
		return nil, err
	}
	if items == nil {
		items = []model.RefItem{}
	}

	if raw, err := json.Marshal(items); err == nil {
		s.rdb.Set(ctx, cacheKey, raw, refDataCacheTTL)
	}
	return items, nil
}

// GetByID retrieves a single reference item.
func (s *RefDataService) GetByID(ctx context.Context, coll model.RefCollection, id uuid.UUID) (*model.RefItem, error) {
	item, err := s.repo.GetByID(ctx, coll, id)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, ErrRefItemNotFound
	}
	return item, nil
}

// Create inserts a reference item and invalidates the collection cache.
func (s *RefDataService) Create(ctx context.Context, coll model.RefCollection, req model.CreateRefItemRequest) (*model.RefItem, error) {
	item := &model.RefItem{
		Name:     req.Name,
		Code:     req.Code,
		IsActive: true,
	}
	if err := s.repo.Create(ctx, coll, item); err != nil {
		return nil, err
	}
	s.invalidate(ctx, coll)
	return item, nil
}

// Update modifies a reference item and invalidates the collection cache.
func (s *RefDataService) Update(ctx context.Context, coll model.RefCollection, id uuid.UUID, req model.UpdateRefItemRequest) (*model.RefItem, error) {
	item, err := s.repo.GetByID(ctx, coll, id)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, ErrRefItemNotFound
	}

	if req.Name != "" {
		item.Name = req.Name
	}
	if req.Code != "" {
		item.Code = req.Code
	}
	if req.IsActive != nil {
		item.IsActive = *req.IsActive
	}

	if err := s.repo.Update(ctx, coll, item); err != nil {
		return nil, err
	}
	s.invalidate(ctx, coll)
	return item, nil
}

// SoftDelete marks a reference item deleted and invalidates the collection cache.
func (s *RefDataService) SoftDelete(ctx context.Context, coll model.RefCollection, id uuid.UUID) error {
	ok, err := s.repo.SoftDelete(ctx, coll, id)
	if err != nil {
		return err
	}
	if !ok {
		return ErrRefItemNotFound
	}
	s.invalidate(ctx, coll)
	return nil
}

// PrewarmAllCaches loads every collection's active items into Redis on
// application startup so the first authoring screen does not pay the
// database round trips.
func (s *RefDataService) PrewarmAllCaches(ctx context.Context) error {
	for _, coll := range []model.RefCollection{model.CollectionSubjects, model.CollectionGradeLevels, model.CollectionExamTypes} {
		s.invalidate(ctx, coll)
		items, err := s.ListActive(ctx, coll)
		if err != nil {
			return fmt.Errorf("prewarm %s: %w", coll, err)
		}
		s.log.Info().Str("collection", string(coll)).Int("count", len(items)).Msg("Prewarmed reference data")
	}
	return nil
}

func (s *RefDataService) invalidate(ctx context.Context, coll model.RefCollection) {
	if err := s.rdb.Del(ctx, config.CacheKey.RefDataKey(string(coll))).Err(); err != nil {
		s.log.Warn().Err(err).Str("collection", string(coll)).Msg("Cache invalidation failed")
	}
}
