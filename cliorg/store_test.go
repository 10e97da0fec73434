package cliorg

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zalando/go-keyring"
)

func TestKeychainStoreRoundTrip(t *testing.T) {
	keyring.MockInit()
	store := NewKeychainStore("sf-test")
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, "user@example.com", []byte(`{"username":"user@example.com"}`)))

	data, err := store.Load(ctx, "user@example.com")
	require.NoError(t, err)
	assert.JSONEq(t, `{"username":"user@example.com"}`, string(data))

	require.NoError(t, store.Delete(ctx, "user@example.com"))
	_, err = store.Load(ctx, "user@example.com")
	assert.ErrorIs(t, err, ErrNoAuthInfo)
}

func TestKeychainStoreLoadMissing(t *testing.T) {
	keyring.MockInit()
	store := NewKeychainStore("sf-test")

	_, err := store.Load(context.Background(), "nobody@example.com")
	assert.ErrorIs(t, err, ErrNoAuthInfo)
}

func TestKeychainStoreDeleteMissing(t *testing.T) {
	keyring.MockInit()
	store := NewKeychainStore("sf-test")

	err := store.Delete(context.Background(), "nobody@example.com")
	assert.ErrorIs(t, err, ErrNoAuthInfo)
}

func TestKeychainStoreAccountsAreIndependent(t *testing.T) {
	keyring.MockInit()
	store := NewKeychainStore("sf-test")
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, "a@example.com", []byte("a")))
	require.NoError(t, store.Save(ctx, "b@example.com", []byte("b")))

	data, err := store.Load(ctx, "a@example.com")
	require.NoError(t, err)
	assert.Equal(t, "a", string(data))
}
