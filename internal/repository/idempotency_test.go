package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryIdempotencyRepository(t *testing.T) {
	repo := NewMemoryIdempotencyRepository(0)
	ctx := context.Background()

	got, err := repo.Get(ctx, "k1", "POST /patients/:id/symptoms", "p1")
	require.NoError(t, err)
	assert.Nil(t, got)

	require.NoError(t, repo.Store(ctx, "k1", "POST /patients/:id/symptoms", "p1", []byte(`{"id":"e1"}`), 201))

	got, err = repo.Get(ctx, "k1", "POST /patients/:id/symptoms", "p1")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, 201, got.StatusCode)
	assert.JSONEq(t, `{"id":"e1"}`, string(got.ResponseBody))

	// Keys are scoped to the patient
	other, err := repo.Get(ctx, "k1", "POST /patients/:id/symptoms", "p2")
	require.NoError(t, err)
	assert.Nil(t, other)
}

func TestMemoryIdempotencyRepositoryExpires(t *testing.T) {
	repo := NewMemoryIdempotencyRepository(time.Hour).(*memoryIdempotencyRepository)
	now := time.Date(2025, time.March, 1, 9, 0, 0, 0, time.UTC)
	repo.now = func() time.Time { return now }
	ctx := context.Background()

	require.NoError(t, repo.Store(ctx, "k1", "route", "p1", []byte(`{}`), 201))

	now = now.Add(59 * time.Minute)
	got, err := repo.Get(ctx, "k1", "route", "p1")
	require.NoError(t, err)
	assert.NotNil(t, got)

	now = now.Add(2 * time.Minute)
	got, err = repo.Get(ctx, "k1", "route", "p1")
	require.NoError(t, err)
	assert.Nil(t, got)
}
