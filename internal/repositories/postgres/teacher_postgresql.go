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

// TeacherPostgreSQL implements TeacherRepository on GORM with Redis-backed
// read caching.
type TeacherPostgreSQL struct {
	db           *gorm.DB
	cacheManager *cache.CacheManager
}

func NewTeacherPostgreSQL(db *gorm.DB, cacheManager *cache.CacheManager) repositories.TeacherRepository {
	return &TeacherPostgreSQL{db: db, cacheManager: cacheManager}
}

func (r *TeacherPostgreSQL) Create(ctx context.Context, teacher *models.Teacher) error {
	if err := r.db.WithContext(ctx).Create(teacher).Error; err != nil {
		return r.handleDBError(err, "create teacher")
	}

	cache.InvalidateTeacherCache(ctx, r.cacheManager, teacher.ID, teacher.Email)
	return nil
}

func (r *TeacherPostgreSQL) GetByID(ctx context.Context, id uint) (*models.Teacher, error) {
	cacheKey := fmt.Sprintf("id:%d", id)

	var cached models.Teacher
	if err := r.cacheManager.Teacher.Get(ctx, cacheKey, &cached); err == nil {
		return &cached, nil
	}

	var teacher models.Teacher
	if err := r.db.WithContext(ctx).First(&teacher, id).Error; err != nil {
		return nil, r.handleDBError(err, "get teacher by id")
	}

	_ = r.cacheManager.Teacher.Set(ctx, cacheKey, &teacher, cache.TeacherCacheConfig.TTL)
	return &teacher, nil
}

func (r *TeacherPostgreSQL) Update(ctx context.Context, teacher *models.Teacher) error {
	if err := r.db.WithContext(ctx).Save(teacher).Error; err != nil {
		return r.handleDBError(err, "update teacher")
	}

	cache.InvalidateTeacherCache(ctx, r.cacheManager, teacher.ID, teacher.Email)
	return nil
}

func (r *TeacherPostgreSQL) ListVisible(ctx context.Context) ([]*models.Teacher, error) {
	cacheKey := "list:visible"

	var cached []*models.Teacher
	if err := r.cacheManager.Teacher.Get(ctx, cacheKey, &cached); err == nil {
		return cached, nil
	}

	var teachers []*models.Teacher
	if err := r.db.WithContext(ctx).
		Where("status <> ?", models.StatusDeactivated).
		Order("first_name ASC").
		Find(&teachers).Error; err != nil {
		return nil, r.handleDBError(err, "list visible teachers")
	}

	_ = r.cacheManager.Teacher.Set(ctx, cacheKey, teachers, cache.TeacherCacheConfig.TTL)
	return teachers, nil
}

func (r *TeacherPostgreSQL) List(ctx context.Context, filters repositories.TeacherFilters) ([]*models.Teacher, int64, error) {
	var teachers []*models.Teacher
	var total int64

	query := r.db.WithContext(ctx).Model(&models.Teacher{})

	if filters.Status != nil {
		query = query.Where("status = ?", *filters.Status)
	} else if filters.VisibleOnly {
		query = query.Where("status <> ?", models.StatusDeactivated)
	}
	if filters.Query != "" {
		pattern := "%" + filters.Query + "%"
		query = query.Where("first_name ILIKE ? OR last_name ILIKE ? OR email ILIKE ?", pattern, pattern, pattern)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, r.handleDBError(err, "count teachers")
	}

	query = query.Order("first_name ASC")
	if filters.Limit > 0 {
		query = query.Limit(filters.Limit)
	}
	if filters.Offset > 0 {
		query = query.Offset(filters.Offset)
	}

	if err := query.Find(&teachers).Error; err != nil {
		return nil, 0, r.handleDBError(err, "list teachers")
	}

	return teachers, total, nil
}

func (r *TeacherPostgreSQL) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	cacheKey := fmt.Sprintf("email:%s", email)

	if cached, err := r.cacheManager.Exists.GetString(ctx, cacheKey); err == nil {
		return cached == "1", nil
	}

	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.Teacher{}).
		Where("email = ?", email).
		Count(&count).Error; err != nil {
		return false, r.handleDBError(err, "check teacher email exists")
	}

	value := "0"
	if count > 0 {
		value = "1"
	}
	_ = r.cacheManager.Exists.SetString(ctx, cacheKey, value, cache.ExistsCacheConfig.TTL)

	return count > 0, nil
}

func (r *TeacherPostgreSQL) handleDBError(err error, op string) error {
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return fmt.Errorf("%s: %w", op, repositories.ErrNotFound)
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return fmt.Errorf("%s: %w", op, repositories.ErrDuplicate)
	default:
		return fmt.Errorf("failed to %s: %w", op, err)
	}
}
