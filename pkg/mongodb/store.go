package mongodb

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/benedict-erwin/manufacture-online/internal/store"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
	"go.mongodb.org/mongo-driver/v2/mongo/readpref"
)

// Store implements store.Store on one MongoDB database
type Store struct {
	client  *mongo.Client
	db      *mongo.Database
	timeout time.Duration
}

var _ store.Store = (*Store)(nil)

func (s *Store) call(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, s.timeout)
}

// asFilter never hands the driver a nil document
func asFilter(filter store.Filter) bson.M {
	if filter == nil {
		return bson.M{}
	}
	return bson.M(filter)
}

func (s *Store) Find(ctx context.Context, collection string, filter store.Filter) ([]store.Document, error) {
	ctx, cancel := s.call(ctx)
	defer cancel()

	cursor, err := s.db.Collection(collection).Find(ctx, asFilter(filter))
	if err != nil {
		return nil, fmt.Errorf("mongodb: find %s: %w", collection, err)
	}

	docs := []store.Document{}
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("mongodb: decode %s: %w", collection, err)
	}
	return docs, nil
}

func (s *Store) FindOne(ctx context.Context, collection string, filter store.Filter) (store.Document, error) {
	ctx, cancel := s.call(ctx)
	defer cancel()

	var doc store.Document
	err := s.db.Collection(collection).FindOne(ctx, asFilter(filter)).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("mongodb: find one %s: %w", collection, err)
	}
	return doc, nil
}

func (s *Store) InsertOne(ctx context.Context, collection string, doc store.Document) (any, error) {
	ctx, cancel := s.call(ctx)
	defer cancel()

	if doc == nil {
		doc = store.Document{}
	}
	res, err := s.db.Collection(collection).InsertOne(ctx, bson.M(doc))
	if err != nil {
		return nil, fmt.Errorf("mongodb: insert %s: %w", collection, err)
	}
	return res.InsertedID, nil
}

func (s *Store) PushUpsert(ctx context.Context, collection string, filter store.Filter, field string, value any) error {
	ctx, cancel := s.call(ctx)
	defer cancel()

	coll := s.db.Collection(collection)
	update := bson.M{"$push": bson.M{field: value}}
	opts := options.UpdateOne().SetUpsert(true)
	_, err := coll.UpdateOne(ctx, asFilter(filter), update, opts)
	if mongo.IsDuplicateKeyError(err) {
		// a concurrent upsert inserted the document first; this one now matches it
		_, err = coll.UpdateOne(ctx, asFilter(filter), update, opts)
	}
	if err != nil {
		return fmt.Errorf("mongodb: push upsert %s: %w", collection, err)
	}
	return nil
}

func (s *Store) SetFields(ctx context.Context, collection string, filter store.Filter, fields store.Document) (bool, error) {
	ctx, cancel := s.call(ctx)
	defer cancel()

	res, err := s.db.Collection(collection).UpdateOne(ctx, asFilter(filter), bson.M{"$set": bson.M(fields)})
	if err != nil {
		return false, fmt.Errorf("mongodb: update %s: %w", collection, err)
	}
	return res.MatchedCount > 0, nil
}

func (s *Store) DeleteOne(ctx context.Context, collection string, filter store.Filter) (int64, error) {
	ctx, cancel := s.call(ctx)
	defer cancel()

	res, err := s.db.Collection(collection).DeleteOne(ctx, asFilter(filter))
	if err != nil {
		return 0, fmt.Errorf("mongodb: delete %s: %w", collection, err)
	}
	return res.DeletedCount, nil
}

// EnsureUniqueIndex creates an ascending unique compound index over fields
func (s *Store) EnsureUniqueIndex(ctx context.Context, collection string, fields ...string) error {
	ctx, cancel := s.call(ctx)
	defer cancel()

	keys := make(bson.D, 0, len(fields))
	for _, f := range fields {
		keys = append(keys, bson.E{Key: f, Value: 1})
	}
	model := mongo.IndexModel{Keys: keys, Options: options.Index().SetUnique(true)}
	if _, err := s.db.Collection(collection).Indexes().CreateOne(ctx, model); err != nil {
		return fmt.Errorf("mongodb: create index on %s: %w", collection, err)
	}
	return nil
}

func (s *Store) Ping(ctx context.Context) error {
	ctx, cancel := s.call(ctx)
	defer cancel()
	return s.client.Ping(ctx, readpref.Primary())
}
