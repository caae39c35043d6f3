package repository

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/contentforge/contentforge/internal/content"
)

// MongoRepo implements the record store against a MongoDB collection.
// The record id is the document _id; a secondary index on userId backs
// the per-user listing.
type MongoRepo struct {
	col *mongo.Collection
}

func NewMongoRepo(col *mongo.Collection) *MongoRepo {
	idx := mongo.IndexModel{Keys: bson.D{{Key: "userId", Value: 1}, {Key: "createdAt", Value: -1}}}
	col.Indexes().CreateOne(context.Background(), idx)
	return &MongoRepo{col: col}
}

func (m *MongoRepo) List(ctx context.Context) ([]*content.Record, error) {
	cur, err := m.col.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("scan contents: %w", err)
	}
	return decodeAll(ctx, cur)
}

func (m *MongoRepo) Get(ctx context.Context, id string) (*content.Record, error) {
	var rec content.Record
	err := m.col.FindOne(ctx, bson.M{"_id": id}).Decode(&rec)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get content %s: %w", id, err)
	}
	return &rec, nil
}

func (m *MongoRepo) ListByUser(ctx context.Context, userID string) ([]*content.Record, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cur, err := m.col.Find(ctx, bson.M{"userId": userID}, opts)
	if err != nil {
		return nil, fmt.Errorf("query contents by user: %w", err)
	}
	return decodeAll(ctx, cur)
}

func (m *MongoRepo) Put(ctx context.Context, rec *content.Record) error {
	opts := options.Replace().SetUpsert(true)
	if _, err := m.col.ReplaceOne(ctx, bson.M{"_id": rec.ID}, rec, opts); err != nil {
		return fmt.Errorf("put content %s: %w", rec.ID, err)
	}
	return nil
}

func (m *MongoRepo) Delete(ctx context.Context, id string) error {
	res, err := m.col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("delete content %s: %w", id, err)
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func decodeAll(ctx context.Context, cur *mongo.Cursor) ([]*content.Record, error) {
	defer cur.Close(ctx)
	out := []*content.Record{}
	for cur.Next(ctx) {
		var rec content.Record
		if err := cur.Decode(&rec); err != nil {
			return nil, fmt.Errorf("decode content: %w", err)
		}
		out = append(out, &rec)
	}
	if err := cur.Err(); err != nil {
		return nil, fmt.Errorf("iterate contents: %w", err)
	}
	return out, nil
}
