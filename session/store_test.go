package session

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/ariebrainware/biosecure-portal/model"
	"github.com/go-redis/redismock/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRedisStore(t *testing.T) {
	ctx := context.Background()
	db, mock := redismock.NewClientMock()
	store := NewRedisStore(db)

	s := NewState("abc")
	s.LoginShop(&model.VetShop{ShopName: "Shop", Phone: "9876543210", Location: "Salem"})
	encoded, err := json.Marshal(s)
	require.NoError(t, err)

	mock.ExpectSet("session:abc", string(encoded), 0).SetVal("OK")
	require.NoError(t, store.Save(ctx, s))

	mock.ExpectGet("session:abc").SetVal(string(encoded))
	loaded, err := store.Load(ctx, "abc")
	require.NoError(t, err)
	assert.Equal(t, model.RoleVetShop, loaded.Role)
	require.NotNil(t, loaded.Shop)
	assert.Equal(t, "9876543210", loaded.Shop.Phone)
	assert.NotNil(t, loaded.Translations)
	assert.False(t, loaded.Dirty())

	mock.ExpectGet("session:missing").RedisNil()
	_, err = store.Load(ctx, "missing")
	assert.ErrorIs(t, err, ErrNotFound)

	mock.ExpectGet("session:broken").SetErr(errors.New("connection refused"))
	_, err = store.Load(ctx, "broken")
	assert.Error(t, err)
	assert.NotErrorIs(t, err, ErrNotFound)

	mock.ExpectDel("session:abc").SetVal(1)
	require.NoError(t, store.Delete(ctx, "abc"))

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMemoryStore(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	s := NewState("abc")
	s.SetLanguage("hi")
	require.NoError(t, store.Save(ctx, s))

	// later changes are invisible until saved again
	s.SetLanguage("ta")

	loaded, err := store.Load(ctx, "abc")
	require.NoError(t, err)
	assert.Equal(t, "hi", loaded.Language)

	require.NoError(t, store.Delete(ctx, "abc"))
	_, err = store.Load(ctx, "abc")
	assert.ErrorIs(t, err, ErrNotFound)
}
