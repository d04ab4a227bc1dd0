package cache

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/redis/go-redis/v9"
)

// CacheManager bundles the per-domain cache helpers.
type CacheManager struct {
	Teacher    *CacheHelper
	WorkPeriod *CacheHelper
	Exists     *CacheHelper

	client *redis.Client
}

func NewCacheManager(client *redis.Client) *CacheManager {
	return &CacheManager{
		Teacher:    NewCacheHelper(client, TeacherCacheConfig.Prefix),
		WorkPeriod: NewCacheHelper(client, WorkPeriodCacheConfig.Prefix),
		Exists:     NewCacheHelper(client, ExistsCacheConfig.Prefix),
		client:     client,
	}
}

// HealthCheck pings the cache backend.
func (cm *CacheManager) HealthCheck(ctx context.Context) error {
	if cm.client == nil {
		return nil
	}
	return cm.client.Ping(ctx).Err()
}

// SafeDelete deletes cache keys, logging instead of failing the caller.
func SafeDelete(ctx context.Context, helper *CacheHelper, keys ...string) {
	if err := helper.Delete(ctx, keys...); err != nil {
		slog.ErrorContext(ctx, "Failed to delete cache keys",
			"error", err,
			"keys", keys)
	}
}

// SafeInvalidatePattern invalidates a cache pattern, logging on failure.
func SafeInvalidatePattern(ctx context.Context, helper *CacheHelper, pattern string) {
	if err := helper.InvalidatePattern(ctx, pattern); err != nil {
		slog.ErrorContext(ctx, "Failed to invalidate cache pattern",
			"error", err,
			"pattern", pattern)
	}
}

// InvalidateTeacherCache drops all cached state for one teacher, including
// the visible-list snapshot and the email existence pre-check.
func InvalidateTeacherCache(ctx context.Context, cm *CacheManager, teacherID uint, email string) {
	SafeDelete(ctx, cm.Teacher, fmt.Sprintf("id:%d", teacherID), "list:visible")
	SafeDelete(ctx, cm.Exists, fmt.Sprintf("email:%s", email))
}

// InvalidateWorkPeriodCache drops cached work period state, including every
// list snapshot.
func InvalidateWorkPeriodCache(ctx context.Context, cm *CacheManager, periodID uint) {
	SafeDelete(ctx, cm.WorkPeriod, fmt.Sprintf("id:%d", periodID))
	SafeInvalidatePattern(ctx, cm.WorkPeriod, "list:*")
}
