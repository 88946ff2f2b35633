// Package store defines the document-store contract the HTTP handlers and
// background jobs use. pkg/mongodb implements it against MongoDB; Memory
// implements it in-process for development and tests.
package store

import (
	"context"
	"errors"
	"net/url"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// IDField is the primary key field of every document
const IDField = "_id"

// ErrInvalidID is returned when an id is not a 24 character hex ObjectID
var ErrInvalidID = errors.New("store: invalid object id")

// Document is a schemaless record as stored and returned
type Document = map[string]any

// Filter is an equality filter over top-level fields
type Filter = map[string]any

// Store is a document database addressed by collection name
type Store interface {
	// Find returns every document matching filter; never nil
	Find(ctx context.Context, collection string, filter Filter) ([]Document, error)
	// FindOne returns the first match, or nil without error when nothing matches
	FindOne(ctx context.Context, collection string, filter Filter) (Document, error)
	// InsertOne stores doc and returns its _id
	InsertOne(ctx context.Context, collection string, doc Document) (any, error)
	// PushUpsert atomically appends value to the array field of the document
	// matching filter, creating the document from filter when none matches
	PushUpsert(ctx context.Context, collection string, filter Filter, field string, value any) error
	// SetFields sets fields on the document matching filter and reports whether one matched
	SetFields(ctx context.Context, collection string, filter Filter, fields Document) (bool, error)
	// DeleteOne removes the first match and returns how many documents were removed
	DeleteOne(ctx context.Context, collection string, filter Filter) (int64, error)
	// Ping checks the connection
	Ping(ctx context.Context) error
}

// IDFilter builds {_id: ObjectID(hex)}
func IDFilter(hex string) (Filter, error) {
	id, err := bson.ObjectIDFromHex(hex)
	if err != nil {
		return nil, ErrInvalidID
	}
	return Filter{IDField: id}, nil
}

// QueryFilter turns query parameters into an equality filter using the first
// value of each key. An _id holding a valid hex id becomes an ObjectID.
func QueryFilter(values url.Values) Filter {
	filter := make(Filter, len(values))
	for key, vals := range values {
		if len(vals) == 0 {
			continue
		}
		filter[key] = vals[0]
	}
	if raw, ok := filter[IDField].(string); ok {
		if id, err := bson.ObjectIDFromHex(raw); err == nil {
			filter[IDField] = id
		}
	}
	return filter
}
