package store

import (
	"context"
	"reflect"
	"sync"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// Memory is an in-process Store. Documents are copied on the way in and out
// so callers never share maps with the store.
type Memory struct {
	mu          sync.RWMutex
	collections map[string][]Document
}

// NewMemory returns an empty in-memory store
func NewMemory() *Memory {
	return &Memory{collections: make(map[string][]Document)}
}

// Seed inserts docs into collection, assigning ids where missing
func (m *Memory) Seed(collection string, docs ...Document) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, doc := range docs {
		m.insertLocked(collection, doc)
	}
}

func (m *Memory) Find(_ context.Context, collection string, filter Filter) ([]Document, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := []Document{}
	for _, doc := range m.collections[collection] {
		if matches(doc, filter) {
			out = append(out, clone(doc))
		}
	}
	return out, nil
}

func (m *Memory) FindOne(_ context.Context, collection string, filter Filter) (Document, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if i := m.indexLocked(collection, filter); i >= 0 {
		return clone(m.collections[collection][i]), nil
	}
	return nil, nil
}

func (m *Memory) InsertOne(_ context.Context, collection string, doc Document) (any, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.insertLocked(collection, doc), nil
}

func (m *Memory) PushUpsert(_ context.Context, collection string, filter Filter, field string, value any) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if i := m.indexLocked(collection, filter); i >= 0 {
		doc := m.collections[collection][i]
		existing, _ := doc[field].([]any)
		items := make([]any, 0, len(existing)+1)
		items = append(items, existing...)
		doc[field] = append(items, value)
		return nil
	}

	doc := clone(filter)
	doc[field] = []any{value}
	m.insertLocked(collection, doc)
	return nil
}

func (m *Memory) SetFields(_ context.Context, collection string, filter Filter, fields Document) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	i := m.indexLocked(collection, filter)
	if i < 0 {
		return false, nil
	}
	for k, v := range fields {
		m.collections[collection][i][k] = v
	}
	return true, nil
}

func (m *Memory) DeleteOne(_ context.Context, collection string, filter Filter) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	i := m.indexLocked(collection, filter)
	if i < 0 {
		return 0, nil
	}
	docs := m.collections[collection]
	m.collections[collection] = append(docs[:i:i], docs[i+1:]...)
	return 1, nil
}

func (m *Memory) Ping(context.Context) error {
	return nil
}

func (m *Memory) insertLocked(collection string, doc Document) any {
	stored := clone(doc)
	if _, ok := stored[IDField]; !ok {
		stored[IDField] = bson.NewObjectID()
	}
	m.collections[collection] = append(m.collections[collection], stored)
	return stored[IDField]
}

func (m *Memory) indexLocked(collection string, filter Filter) int {
	for i, doc := range m.collections[collection] {
		if matches(doc, filter) {
			return i
		}
	}
	return -1
}

// matches applies equality on every filter key; a nil filter value also
// matches a missing field, as MongoDB does for {field: null}
func matches(doc Document, filter Filter) bool {
	for k, want := range filter {
		got, ok := doc[k]
		if want == nil {
			if ok && got != nil {
				return false
			}
			continue
		}
		if !ok || !reflect.DeepEqual(got, want) {
			return false
		}
	}
	return true
}

func clone(doc Document) Document {
	out := make(Document, len(doc)+1)
	for k, v := range doc {
		out[k] = v
	}
	return out
}
