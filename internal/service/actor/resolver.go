package actor

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"berbagi/internal/domain"
	"berbagi/internal/pkg/logger"
	"berbagi/internal/repository"
)

// Resolver turns user ids into the display information embedded in
// notification metadata.
type Resolver interface {
	Resolve(ctx context.Context, userID uuid.UUID) (domain.Actor, error)
	Invalidate(ctx context.Context, userID uuid.UUID)
}

type resolver struct {
	userRepo repository.UserRepository
	redis    *redis.Client
	ttl      time.Duration
}

// NewResolver caches resolved actors in Redis for ttl. A nil client disables
// caching.
func NewResolver(userRepo repository.UserRepository, redis *redis.Client, ttl time.Duration) Resolver {
	return &resolver{
		userRepo: userRepo,
		redis:    redis,
		ttl:      ttl,
	}
}

func cacheKey(userID uuid.UUID) string {
	return fmt.Sprintf("actor:%s", userID)
}

func (r *resolver) Resolve(ctx context.Context, userID uuid.UUID) (domain.Actor, error) {
	if r.redis != nil {
		cached, err := r.redis.Get(ctx, cacheKey(userID)).Bytes()
		if err == nil {
			var a domain.Actor
			if json.Unmarshal(cached, &a) == nil {
				return a, nil
			}
		}
	}

	user, err := r.userRepo.GetByID(ctx, userID)
	if err != nil {
		return domain.Actor{}, fmt.Errorf("failed to get actor: %w", err)
	}
	if user == nil {
		return domain.Actor{ID: userID}, domain.ErrNotFound
	}

	a := user.Actor()
	if r.redis != nil {
		if data, err := json.Marshal(a); err == nil {
			if err := r.redis.Set(ctx, cacheKey(userID), data, r.ttl).Err(); err != nil {
				logger.Debug("Actor cache write failed", zap.String("user_id", userID.String()), zap.Error(err))
			}
		}
	}
	return a, nil
}

func (r *resolver) Invalidate(ctx context.Context, userID uuid.UUID) {
	if r.redis != nil {
		_ = r.redis.Del(ctx, cacheKey(userID)).Err()
	}
}
