package postgres

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/skolaplan/admin-service/internal/cache"
	"github.com/skolaplan/admin-service/internal/models"
	"github.com/skolaplan/admin-service/internal/repositories"
)

// WorkPeriodPostgreSQL implements WorkPeriodRepository on GORM.
type WorkPeriodPostgreSQL struct {
	db           *gorm.DB
	cacheManager *cache.CacheManager
}

func NewWorkPeriodPostgreSQL(db *gorm.DB, cacheManager *cache.CacheManager) repositories.WorkPeriodRepository {
	return &WorkPeriodPostgreSQL{db: db, cacheManager: cacheManager}
}

func (r *WorkPeriodPostgreSQL) Create(ctx context.Context, period *models.WorkPeriod) error {
	if err := r.db.WithContext(ctx).Create(period).Error; err != nil {
		return r.handleDBError(err, "create work period")
	}

	cache.InvalidateWorkPeriodCache(ctx, r.cacheManager, period.ID)
	return nil
}

func (r *WorkPeriodPostgreSQL) GetByID(ctx context.Context, id uint) (*models.WorkPeriod, error) {
	cacheKey := fmt.Sprintf("id:%d", id)

	var cached models.WorkPeriod
	if err := r.cacheManager.WorkPeriod.Get(ctx, cacheKey, &cached); err == nil {
		return &cached, nil
	}

	var period models.WorkPeriod
	if err := r.db.WithContext(ctx).First(&period, id).Error; err != nil {
		return nil, r.handleDBError(err, "get work period by id")
	}

	_ = r.cacheManager.WorkPeriod.Set(ctx, cacheKey, &period, cache.WorkPeriodCacheConfig.TTL)
	return &period, nil
}

func (r *WorkPeriodPostgreSQL) Update(ctx context.Context, period *models.WorkPeriod) error {
	if err := r.db.WithContext(ctx).Save(period).Error; err != nil {
		return r.handleDBError(err, "update work period")
	}

	cache.InvalidateWorkPeriodCache(ctx, r.cacheManager, period.ID)
	return nil
}

func (r *WorkPeriodPostgreSQL) List(ctx context.Context) ([]*models.WorkPeriod, error) {
	cacheKey := "list:all"

	var cached []*models.WorkPeriod
	if err := r.cacheManager.WorkPeriod.Get(ctx, cacheKey, &cached); err == nil {
		return cached, nil
	}

	var periods []*models.WorkPeriod
	if err := r.db.WithContext(ctx).
		Order("start_date DESC").
		Find(&periods).Error; err != nil {
		return nil, r.handleDBError(err, "list work periods")
	}

	_ = r.cacheManager.WorkPeriod.Set(ctx, cacheKey, periods, cache.WorkPeriodCacheConfig.TTL)
	return periods, nil
}

func (r *WorkPeriodPostgreSQL) handleDBError(err error, op string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("%s: %w", op, repositories.ErrNotFound)
	}
	return fmt.Errorf("failed to %s: %w", op, err)
}
