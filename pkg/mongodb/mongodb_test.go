package mongodb

import (
	"testing"

	"github.com/benedict-erwin/manufacture-online/config"
	"github.com/benedict-erwin/manufacture-online/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/v2/bson"
)

func TestConnectWithoutAddress(t *testing.T) {
	s, err := Connect(t.Context(), config.MongoConfig{Database: "ManufactureOnline"})
	require.ErrorIs(t, err, ErrNotConfigured)
	assert.Nil(t, s)
}

func TestAsFilter(t *testing.T) {
	assert.Equal(t, bson.M{}, asFilter(nil))
	assert.Equal(t, bson.M{"email": "u@x.com"}, asFilter(store.Filter{"email": "u@x.com"}))
}

func TestCloseNilStore(t *testing.T) {
	var s *Store
	assert.NoError(t, s.Close(t.Context()))
}
