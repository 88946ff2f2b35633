package mongodb

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/benedict-erwin/manufacture-online/config"
	"github.com/benedict-erwin/manufacture-online/http/handler"
	"github.com/benedict-erwin/manufacture-online/internal/entities/order"
	"github.com/benedict-erwin/manufacture-online/internal/store"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/v2/bson"
)

// connectTestStore connects to MONGODB_URI on a throwaway database that is
// dropped when the test ends
func connectTestStore(t *testing.T) *Store {
	t.Helper()
	uri := os.Getenv("MONGODB_URI")
	if uri == "" {
		t.Skip("MONGODB_URI not set")
	}

	s, err := Connect(t.Context(), config.MongoConfig{
		URI:      uri,
		Database: "manufacture_online_test_" + bson.NewObjectID().Hex(),
		Timeout:  10 * time.Second,
	})
	require.NoError(t, err)
	t.Cleanup(func() {
		ctx := context.Background()
		assert.NoError(t, s.db.Drop(ctx))
		assert.NoError(t, s.Close(ctx))
	})
	return s
}

func orderItems(t *testing.T, doc store.Document) bson.A {
	t.Helper()
	items, ok := doc[order.FieldItems].(bson.A)
	require.True(t, ok, "orders is %T", doc[order.FieldItems])
	return items
}

func TestStore_PurchaseTwiceKeepsOneDocument(t *testing.T) {
	s := connectTestStore(t)
	require.NoError(t, s.EnsureUniqueIndex(t.Context(), order.Collection, order.FieldEmail, order.FieldUsername))

	h := handler.New(handler.Config{Store: s})
	e := echo.New()
	for _, item := range []string{"bolt", "nut"} {
		req := httptest.NewRequest(http.MethodPut, "/purchase",
			strings.NewReader(`{"email":"u@x.com","username":"u","product":"`+item+`"}`))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
		rec := httptest.NewRecorder()
		require.NoError(t, h.Purchase(e.NewContext(req, rec)))
		assert.JSONEq(t, `{"message":"purchase successful"}`, rec.Body.String())
	}

	docs, err := s.Find(t.Context(), order.Collection, store.Filter{})
	require.NoError(t, err)
	require.Len(t, docs, 1)
	assert.Equal(t, "u@x.com", docs[0][order.FieldEmail])

	items := orderItems(t, docs[0])
	require.Len(t, items, 2)
	first, ok := items[0].(bson.M)
	require.True(t, ok)
	assert.Equal(t, "bolt", first["product"])
	assert.NotContains(t, first, order.FieldEmail)
}

func TestStore_PushUpsertConcurrent(t *testing.T) {
	s := connectTestStore(t)
	require.NoError(t, s.EnsureUniqueIndex(t.Context(), order.Collection, order.FieldEmail, order.FieldUsername))
	key := store.Filter{order.FieldEmail: "u@x.com", order.FieldUsername: "u"}

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			assert.NoError(t, s.PushUpsert(context.Background(), order.Collection, key, order.FieldItems, bson.M{"n": n}))
		}(i)
	}
	wg.Wait()

	docs, err := s.Find(t.Context(), order.Collection, key)
	require.NoError(t, err)
	require.Len(t, docs, 1)
	assert.Len(t, orderItems(t, docs[0]), 10)
}

func TestStore_CRUD(t *testing.T) {
	s := connectTestStore(t)
	ctx := t.Context()
	require.NoError(t, s.Ping(ctx))

	id, err := s.InsertOne(ctx, order.Collection, store.Document{"email": "u@x.com"})
	require.NoError(t, err)
	require.IsType(t, bson.ObjectID{}, id)

	doc, err := s.FindOne(ctx, order.Collection, store.Filter{store.IDField: id})
	require.NoError(t, err)
	assert.Equal(t, "u@x.com", doc["email"])

	ok, err := s.SetFields(ctx, order.Collection, store.Filter{store.IDField: id},
		store.Document{order.FieldPaid: true, order.FieldTransactionID: "tx_1"})
	require.NoError(t, err)
	assert.True(t, ok)

	paid, err := s.Find(ctx, order.Collection, store.Filter{order.FieldPaid: true})
	require.NoError(t, err)
	require.Len(t, paid, 1)
	assert.Equal(t, "tx_1", paid[0][order.FieldTransactionID])

	ok, err = s.SetFields(ctx, order.Collection, store.Filter{store.IDField: bson.NewObjectID()},
		store.Document{order.FieldPaid: true})
	require.NoError(t, err)
	assert.False(t, ok)

	n, err := s.DeleteOne(ctx, order.Collection, store.Filter{store.IDField: id})
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	doc, err = s.FindOne(ctx, order.Collection, store.Filter{store.IDField: id})
	require.NoError(t, err)
	assert.Nil(t, doc)
}
