package repository

import (
	"context"
	"testing"

	mr "github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"

	"github.com/contentforge/contentforge/internal/content"
)

func newRedisRepo(t *testing.T) (*RedisRepo, *mr.Miniredis) {
	t.Helper()
	m, err := mr.Run()
	require.NoError(t, err)
	t.Cleanup(m.Close)
	return NewRedisRepo(redis.NewClient(&redis.Options{Addr: m.Addr()})), m
}

func TestRedisRepoCRUD(t *testing.T) {
	r, _ := newRedisRepo(t)
	ctx := context.Background()

	rec := &content.Record{ID: "1700000000000", UserID: "u1", Title: "t", ContentType: "blog", Content: "hello", CreatedAt: "2024-01-01T00:00:00.000Z"}
	require.NoError(t, r.Put(ctx, rec))

	got, err := r.Get(ctx, rec.ID)
	require.NoError(t, err)
	require.Equal(t, "hello", got.Content)
	require.Equal(t, "u1", got.UserID)

	list, err := r.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)

	require.NoError(t, r.Delete(ctx, rec.ID))
	_, err = r.Get(ctx, rec.ID)
	require.ErrorIs(t, err, ErrNotFound)
	require.ErrorIs(t, r.Delete(ctx, rec.ID), ErrNotFound)

	// index sets are cleaned up with the record
	list, err = r.List(ctx)
	require.NoError(t, err)
	require.Empty(t, list)
	byUser, err := r.ListByUser(ctx, "u1")
	require.NoError(t, err)
	require.Empty(t, byUser)
}

func TestRedisRepoListByUserNewestFirst(t *testing.T) {
	r, _ := newRedisRepo(t)
	ctx := context.Background()

	put := func(id, user, createdAt string) {
		require.NoError(t, r.Put(ctx, &content.Record{ID: id, UserID: user, CreatedAt: createdAt}))
	}
	put("1", "alice", "2024-01-01T00:00:00.000Z")
	put("2", "alice", "2024-03-01T00:00:00.000Z")
	put("3", "bob", "2024-02-01T00:00:00.000Z")

	recs, err := r.ListByUser(ctx, "alice")
	require.NoError(t, err)
	require.Len(t, recs, 2)
	require.Equal(t, "2", recs[0].ID)
	require.Equal(t, "1", recs[1].ID)
}

func TestRedisRepoUpsertMovesUserIndex(t *testing.T) {
	r, _ := newRedisRepo(t)
	ctx := context.Background()

	require.NoError(t, r.Put(ctx, &content.Record{ID: "1", UserID: "alice", CreatedAt: "2024-01-01T00:00:00.000Z"}))
	require.NoError(t, r.Put(ctx, &content.Record{ID: "1", UserID: "bob", CreatedAt: "2024-01-01T00:00:00.000Z"}))

	byAlice, err := r.ListByUser(ctx, "alice")
	require.NoError(t, err)
	require.Empty(t, byAlice)

	byBob, err := r.ListByUser(ctx, "bob")
	require.NoError(t, err)
	require.Len(t, byBob, 1)
}
