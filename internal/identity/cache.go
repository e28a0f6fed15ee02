package identity

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"terminal-terrace/editorial/internal/metrics"
	"terminal-terrace/editorial/internal/model"
	"terminal-terrace/editorial/pkg/database"
)

const (
	cacheKeyPrefix = "editorial:staff:"
	// 非员工也缓存，避免每个匿名请求都查库
	notStaffMarker = "-"
)

// CachedResolver 在 Redis 中缓存员工身份
// Redis 不可用时降级为直接查询
type CachedResolver struct {
	next Resolver
	rdb  *database.RedisClient
	ttl  time.Duration
	log  *logrus.Entry
}

func NewCachedResolver(next Resolver, rdb *database.RedisClient, ttl time.Duration, log *logrus.Entry) *CachedResolver {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	if log == nil {
		log = logrus.NewEntry(logrus.StandardLogger())
	}
	return &CachedResolver{next: next, rdb: rdb, ttl: ttl, log: log}
}

func cacheKey(userID string) string {
	return cacheKeyPrefix + userID
}

func (r *CachedResolver) StaffByUserID(ctx context.Context, userID string) (*model.Staff, error) {
	if userID == "" {
		return nil, nil
	}

	cached, err := r.rdb.Get(ctx, cacheKey(userID)).Result()
	switch {
	case err == nil:
		if staff, ok := r.decode(userID, cached); ok {
			metrics.RecordIdentityCache("hit")
			return staff, nil
		}
	case errors.Is(err, redis.Nil):
		metrics.RecordIdentityCache("miss")
	default:
		metrics.RecordIdentityCache("error")
		r.log.WithError(err).WithField("user_id", userID).Warn("读取员工缓存失败")
	}

	staff, err := r.next.StaffByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	r.store(ctx, userID, staff)
	return staff, nil
}

func (r *CachedResolver) decode(userID, cached string) (*model.Staff, bool) {
	if cached == notStaffMarker {
		return nil, true
	}
	var staff model.Staff
	if err := json.Unmarshal([]byte(cached), &staff); err != nil {
		r.log.WithError(err).WithField("user_id", userID).Warn("员工缓存格式错误")
		return nil, false
	}
	return &staff, true
}

func (r *CachedResolver) store(ctx context.Context, userID string, staff *model.Staff) {
	value := notStaffMarker
	if staff != nil {
		data, err := json.Marshal(staff)
		if err != nil {
			return
		}
		value = string(data)
	}
	if err := r.rdb.Set(ctx, cacheKey(userID), value, r.ttl).Err(); err != nil {
		r.log.WithError(err).WithField("user_id", userID).Warn("写入员工缓存失败")
	}
}

// Invalidate 删除缓存
func (r *CachedResolver) Invalidate(ctx context.Context, userID string) error {
	if err := r.rdb.Del(ctx, cacheKey(userID)).Err(); err != nil {
		return fmt.Errorf("invalidate staff cache: %w", err)
	}
	return r.next.Invalidate(ctx, userID)
}
