// Package cache keeps the most recently generated plans so the next
// generation can vary from them without a database round trip.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/martinle068/FitnnessApp/internal/domain"
)

const opTimeout = 500 * time.Millisecond

// PlanCache stores the last nutrition and workout plan. Lookups return nil
// with no error when nothing is cached.
type PlanCache interface {
	LastNutritionPlan(ctx context.Context) (*domain.NutritionPlan, error)
	PutNutritionPlan(ctx context.Context, plan domain.NutritionPlan) error
	LastWorkoutPlan(ctx context.Context) (*domain.WorkoutPlan, error)
	PutWorkoutPlan(ctx context.Context, plan domain.WorkoutPlan) error
	Clear(ctx context.Context) error
}

/* ─── Memory ─────────────────────────────────────────────────────────── */

type memoryPlanCache struct {
	mu        sync.Mutex
	nutrition *domain.NutritionPlan
	workout   *domain.WorkoutPlan
}

// NewMemoryPlanCache is used when no Redis address is configured. Entries
// live for the lifetime of the process.
func NewMemoryPlanCache() PlanCache {
	return &memoryPlanCache{}
}

func (m *memoryPlanCache) LastNutritionPlan(context.Context) (*domain.NutritionPlan, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.nutrition, nil
}

func (m *memoryPlanCache) PutNutritionPlan(_ context.Context, plan domain.NutritionPlan) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.nutrition = &plan
	return nil
}

func (m *memoryPlanCache) LastWorkoutPlan(context.Context) (*domain.WorkoutPlan, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.workout, nil
}

func (m *memoryPlanCache) PutWorkoutPlan(_ context.Context, plan domain.WorkoutPlan) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.workout = &plan
	return nil
}

func (m *memoryPlanCache) Clear(context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.nutrition, m.workout = nil, nil
	return nil
}

/* ─── Redis ──────────────────────────────────────────────────────────── */

// redisKVClient is the subset of *redis.Client the cache needs.
type redisKVClient interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
	Del(ctx context.Context, keys ...string) *redis.IntCmd
}

type redisPlanCache struct {
	client redisKVClient
	prefix string
	ttl    time.Duration
}

// NewRedisPlanCache stores plans as JSON under "plans:last:*" with ttl. A
// non-positive ttl keeps entries until overwritten.
func NewRedisPlanCache(client *redis.Client, ttl time.Duration) PlanCache {
	if client == nil {
		return nil
	}
	return &redisPlanCache{client: client, prefix: "plans:last:", ttl: ttl}
}

func (r *redisPlanCache) key(kind string) string {
	return r.prefix + kind
}

func (r *redisPlanCache) LastNutritionPlan(ctx context.Context) (*domain.NutritionPlan, error) {
	return getJSON[domain.NutritionPlan](ctx, r.client, r.key("nutrition"))
}

func (r *redisPlanCache) PutNutritionPlan(ctx context.Context, plan domain.NutritionPlan) error {
	return setJSON(ctx, r.client, r.key("nutrition"), plan, r.ttl)
}

func (r *redisPlanCache) LastWorkoutPlan(ctx context.Context) (*domain.WorkoutPlan, error) {
	return getJSON[domain.WorkoutPlan](ctx, r.client, r.key("workout"))
}

func (r *redisPlanCache) PutWorkoutPlan(ctx context.Context, plan domain.WorkoutPlan) error {
	return setJSON(ctx, r.client, r.key("workout"), plan, r.ttl)
}

func (r *redisPlanCache) Clear(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()
	return r.client.Del(ctx, r.key("nutrition"), r.key("workout")).Err()
}

func getJSON[T any](ctx context.Context, client redisKVClient, key string) (*T, error) {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()
	raw, err := client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get %s: %w", key, err)
	}
	var v T
	if err := json.Unmarshal(raw, &v); err != nil {
		return nil, fmt.Errorf("decode %s: %w", key, err)
	}
	return &v, nil
}

func setJSON(ctx context.Context, client redisKVClient, key string, v any, ttl time.Duration) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	if ttl < 0 {
		ttl = 0
	}
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()
	if err := client.Set(ctx, key, raw, ttl).Err(); err != nil {
		return fmt.Errorf("set %s: %w", key, err)
	}
	return nil
}
