package order

import (
	"testing"

	orderEntity "github.com/benedict-erwin/manufacture-online/internal/entities/order"
	"github.com/benedict-erwin/manufacture-online/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/v2/bson"
)

func TestMarkPaid(t *testing.T) {
	ctx := t.Context()
	st := store.NewMemory()
	id, err := st.InsertOne(ctx, orderEntity.Collection, store.Document{"email": "u@x.com"})
	require.NoError(t, err)
	hex := id.(bson.ObjectID).Hex()

	require.NoError(t, MarkPaid(ctx, st, hex, "pi_1"))

	doc, err := st.FindOne(ctx, orderEntity.Collection, store.Filter{"_id": id})
	require.NoError(t, err)
	assert.Equal(t, true, doc["paid"])
	assert.Equal(t, "pi_1", doc["transactionId"])
}

func TestMarkPaidErrors(t *testing.T) {
	ctx := t.Context()
	st := store.NewMemory()

	err := MarkPaid(ctx, st, "not-an-id", "pi_1")
	assert.ErrorIs(t, err, store.ErrInvalidID)

	err = MarkPaid(ctx, st, bson.NewObjectID().Hex(), "pi_1")
	assert.ErrorIs(t, err, ErrNotFound)
}
