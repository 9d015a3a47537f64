// file: repository/state_repository.go

package repository

import (
	"context"
	"errors"
	"fmt"
	"office-graph-api/logger"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

// IStateRepository stores the one-time OAuth state values issued at login.
// Consume must succeed at most once per value.
type IStateRepository interface {
	Save(ctx context.Context, state string, ttl time.Duration) error
	Consume(ctx context.Context, state string) (bool, error)
}

// MemoryStateRepository is the single-instance state store.
type MemoryStateRepository struct {
	mu     sync.Mutex
	states map[string]time.Time
	now    func() time.Time
}

func NewMemoryStateRepository() *MemoryStateRepository {
	return &MemoryStateRepository{
		states: make(map[string]time.Time),
		now:    time.Now,
	}
}

func (r *MemoryStateRepository) Save(_ context.Context, state string, ttl time.Duration) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.now()
	// Drop whatever has expired so abandoned logins do not accumulate.
	for s, exp := range r.states {
		if now.After(exp) {
			delete(r.states, s)
		}
	}
	r.states[state] = now.Add(ttl)
	return nil
}

func (r *MemoryStateRepository) Consume(_ context.Context, state string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	exp, ok := r.states[state]
	if !ok {
		return false, nil
	}
	delete(r.states, state)
	return !r.now().After(exp), nil
}

// RedisStateRepository shares login state between instances behind a load balancer.
type RedisStateRepository struct {
	client redis.Cmdable
	prefix string
}

func NewRedisStateRepository(client redis.Cmdable) *RedisStateRepository {
	return &RedisStateRepository{client: client, prefix: "oauth:state:"}
}

func (r *RedisStateRepository) Save(ctx context.Context, state string, ttl time.Duration) error {
	if err := r.client.Set(ctx, r.prefix+state, "1", ttl).Err(); err != nil {
		logger.Log.WithError(err).Error("Failed to store login state in Redis")
		return fmt.Errorf("failed to store login state: %w", err)
	}
	return nil
}

func (r *RedisStateRepository) Consume(ctx context.Context, state string) (bool, error) {
	// GETDEL makes the check-and-remove a single round trip.
	err := r.client.GetDel(ctx, r.prefix+state).Err()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		logger.Log.WithError(err).Error("Failed to consume login state from Redis")
		return false, fmt.Errorf("failed to consume login state: %w", err)
	}
	return true, nil
}
