package repository

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/goccy/go-json"

	"github.com/ruralhealth/connect/backend/internal/models"
	"github.com/ruralhealth/connect/backend/pkg/supabase"
)

const tableIdempotencyKeys = "idempotency_keys"

type idempotencyRepository struct {
	client *supabase.Client
}

// NewIdempotencyRepository creates a new idempotency repository
func NewIdempotencyRepository(client *supabase.Client) IdempotencyRepository {
	return &idempotencyRepository{client: client}
}

func (r *idempotencyRepository) Get(ctx context.Context, key, route, scope string) (*models.IdempotencyKey, error) {
	query := map[string]string{
		"key":   "eq." + key,
		"route": "eq." + route,
		"scope": "eq." + scope,
	}

	body, err := r.client.Query(ctx, tableIdempotencyKeys, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query idempotency key: %w", err)
	}

	var keys []models.IdempotencyKey
	if err := json.Unmarshal(body, &keys); err != nil {
		return nil, fmt.Errorf("failed to unmarshal idempotency keys: %w", err)
	}

	if len(keys) == 0 {
		return nil, nil // Not found - this is not an error
	}

	return &keys[0], nil
}

func (r *idempotencyRepository) Store(ctx context.Context, key, route, scope string, responseBody []byte, statusCode int) error {
	data := map[string]any{
		"key":           key,
		"route":         route,
		"scope":         scope,
		"response_body": json.RawMessage(responseBody),
		"status_code":   statusCode,
	}

	if _, err := r.client.Upsert(ctx, tableIdempotencyKeys, data, "key,route,scope"); err != nil {
		return fmt.Errorf("failed to store idempotency key: %w", err)
	}

	return nil
}

type idempotencyKeyID struct {
	key, route, scope string
}

type memoryIdempotencyRepository struct {
	mu   sync.Mutex
	ttl  time.Duration
	now  func() time.Time
	keys map[idempotencyKeyID]models.IdempotencyKey
}

// NewMemoryIdempotencyRepository creates an in-memory idempotency store.
// Records older than ttl are treated as absent; a zero ttl keeps them forever.
func NewMemoryIdempotencyRepository(ttl time.Duration) IdempotencyRepository {
	return &memoryIdempotencyRepository{
		ttl:  ttl,
		now:  time.Now,
		keys: make(map[idempotencyKeyID]models.IdempotencyKey),
	}
}

func (r *memoryIdempotencyRepository) Get(ctx context.Context, key, route, scope string) (*models.IdempotencyKey, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	id := idempotencyKeyID{key: key, route: route, scope: scope}
	record, ok := r.keys[id]
	if !ok {
		return nil, nil
	}
	if r.ttl > 0 && r.now().Sub(record.CreatedAt) > r.ttl {
		delete(r.keys, id)
		return nil, nil
	}

	record.ResponseBody = append([]byte(nil), record.ResponseBody...)
	return &record, nil
}

func (r *memoryIdempotencyRepository) Store(ctx context.Context, key, route, scope string, responseBody []byte, statusCode int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.keys[idempotencyKeyID{key: key, route: route, scope: scope}] = models.IdempotencyKey{
		Key:          key,
		Route:        route,
		Scope:        scope,
		ResponseBody: append([]byte(nil), responseBody...),
		StatusCode:   statusCode,
		CreatedAt:    r.now(),
	}
	return nil
}
