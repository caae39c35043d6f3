package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"

	"github.com/redis/go-redis/v9"

	"github.com/contentforge/contentforge/internal/content"
)

// RedisRepo stores records as JSON blobs under content:<id> with two
// membership sets acting as the table scan ("contents") and the userId
// secondary index ("contents:user:<userId>").
type RedisRepo struct {
	client *redis.Client
}

func NewRedisRepo(client *redis.Client) *RedisRepo {
	return &RedisRepo{client: client}
}

func recordKey(id string) string      { return "content:" + id }
func userSetKey(userID string) string { return "contents:user:" + userID }

const allSetKey = "contents"

func (r *RedisRepo) List(ctx context.Context) ([]*content.Record, error) {
	return r.listSet(ctx, allSetKey)
}

func (r *RedisRepo) Get(ctx context.Context, id string) (*content.Record, error) {
	data, err := r.client.Get(ctx, recordKey(id)).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get content %s: %w", id, err)
	}
	var rec content.Record
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, fmt.Errorf("decode content %s: %w", id, err)
	}
	return &rec, nil
}

func (r *RedisRepo) ListByUser(ctx context.Context, userID string) ([]*content.Record, error) {
	recs, err := r.listSet(ctx, userSetKey(userID))
	if err != nil {
		return nil, err
	}
	sort.Slice(recs, func(i, j int) bool { return recs[i].CreatedAt > recs[j].CreatedAt })
	return recs, nil
}

func (r *RedisRepo) Put(ctx context.Context, rec *content.Record) error {
	// an upsert may move the record between user index sets
	if prev, err := r.Get(ctx, rec.ID); err == nil && prev.UserID != rec.UserID {
		if err := r.client.SRem(ctx, userSetKey(prev.UserID), rec.ID).Err(); err != nil {
			return fmt.Errorf("put content %s: %w", rec.ID, err)
		}
	}
	data, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("encode content %s: %w", rec.ID, err)
	}
	pipe := r.client.Pipeline()
	pipe.Set(ctx, recordKey(rec.ID), data, 0)
	pipe.SAdd(ctx, allSetKey, rec.ID)
	pipe.SAdd(ctx, userSetKey(rec.UserID), rec.ID)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("put content %s: %w", rec.ID, err)
	}
	return nil
}

func (r *RedisRepo) Delete(ctx context.Context, id string) error {
	rec, err := r.Get(ctx, id)
	if err != nil {
		return err
	}
	pipe := r.client.Pipeline()
	pipe.Del(ctx, recordKey(id))
	pipe.SRem(ctx, allSetKey, id)
	pipe.SRem(ctx, userSetKey(rec.UserID), id)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("delete content %s: %w", id, err)
	}
	return nil
}

func (r *RedisRepo) listSet(ctx context.Context, setKey string) ([]*content.Record, error) {
	ids, err := r.client.SMembers(ctx, setKey).Result()
	if err != nil {
		return nil, fmt.Errorf("list contents: %w", err)
	}
	if len(ids) == 0 {
		return []*content.Record{}, nil
	}
	pipe := r.client.Pipeline()
	cmds := make([]*redis.StringCmd, len(ids))
	for i, id := range ids {
		cmds[i] = pipe.Get(ctx, recordKey(id))
	}
	if _, err := pipe.Exec(ctx); err != nil && err != redis.Nil {
		return nil, fmt.Errorf("list contents: %w", err)
	}
	out := make([]*content.Record, 0, len(ids))
	for _, cmd := range cmds {
		data, err := cmd.Bytes()
		if err != nil {
			if err == redis.Nil {
				// set member without a blob: treat as already deleted
				continue
			}
			return nil, fmt.Errorf("list contents: %w", err)
		}
		var rec content.Record
		if err := json.Unmarshal(data, &rec); err != nil {
			return nil, fmt.Errorf("decode content: %w", err)
		}
		out = append(out, &rec)
	}
	return out, nil
}
