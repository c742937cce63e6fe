package kvstore

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	id "anamnesis/pkg/domain"
	"anamnesis/pkg/platform/sentinel"
)

func runStoreContract(t *testing.T, store Store) {
	t.Helper()
	ctx := context.Background()
	alice := id.UserID(uuid.New())
	bob := id.UserID(uuid.New())

	t.Run("absent key", func(t *testing.T) {
		_, ok, err := store.Get(ctx, alice, KeyAnamnesisCompletedAt)
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("set then get", func(t *testing.T) {
		require.NoError(t, store.Set(ctx, alice, KeyAnamnesisCompletedAt, "2024-01-01T00:00:00.000Z"))
		v, ok, err := store.Get(ctx, alice, KeyAnamnesisCompletedAt)
		require.NoError(t, err)
		assert.True(t, ok)
		assert.Equal(t, "2024-01-01T00:00:00.000Z", v)
	})

	t.Run("overwrite", func(t *testing.T) {
		require.NoError(t, store.Set(ctx, alice, KeyAnamnesisCompletedAt, "2024-02-01T00:00:00.000Z"))
		v, _, err := store.Get(ctx, alice, KeyAnamnesisCompletedAt)
		require.NoError(t, err)
		assert.Equal(t, "2024-02-01T00:00:00.000Z", v)
	})

	t.Run("users are isolated", func(t *testing.T) {
		_, ok, err := store.Get(ctx, bob, KeyAnamnesisCompletedAt)
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("remove", func(t *testing.T) {
		require.NoError(t, store.Remove(ctx, alice, KeyAnamnesisCompletedAt))
		_, ok, err := store.Get(ctx, alice, KeyAnamnesisCompletedAt)
		require.NoError(t, err)
		assert.False(t, ok)
		require.NoError(t, store.Remove(ctx, alice, KeyAnamnesisCompletedAt), "removing an absent key is not an error")
	})

	t.Run("string list", func(t *testing.T) {
		list, err := GetStringList(ctx, store, alice, KeySelectedMarkerIDs)
		require.NoError(t, err)
		assert.Nil(t, list)

		require.NoError(t, SetStringList(ctx, store, alice, KeySelectedMarkerIDs, []string{"m1", "m2"}))
		list, err = GetStringList(ctx, store, alice, KeySelectedMarkerIDs)
		require.NoError(t, err)
		assert.Equal(t, []string{"m1", "m2"}, list)
	})

	t.Run("get many", func(t *testing.T) {
		require.NoError(t, store.Set(ctx, alice, KeyObjectivesSelectedAt, "2024-03-01T00:00:00.000Z"))
		values, err := GetMany(ctx, store, alice, []Key{KeyAnamnesisCompletedAt, KeySelectedMarkerIDs, KeyObjectivesSelectedAt})
		require.NoError(t, err)
		assert.Equal(t, map[Key]string{
			KeySelectedMarkerIDs:    `["m1","m2"]`,
			KeyObjectivesSelectedAt: "2024-03-01T00:00:00.000Z",
		}, values)

		empty, err := GetMany(ctx, store, alice, nil)
		require.NoError(t, err)
		assert.Empty(t, empty)
	})

	t.Run("malformed list", func(t *testing.T) {
		require.NoError(t, store.Set(ctx, bob, KeySelectedMarkerIDs, "not-json"))
		_, err := GetStringList(ctx, store, bob, KeySelectedMarkerIDs)
		assert.ErrorIs(t, err, sentinel.ErrInvalidState)
	})
}

func TestInMemoryStore(t *testing.T) {
	runStoreContract(t, NewInMemoryStore())
}

func TestRedisStore(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	runStoreContract(t, NewRedisStore(client))
}

func TestRedisStoreKeyLayout(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	store := NewRedisStore(client)
	user := id.UserID(uuid.MustParse("11111111-2222-3333-4444-555555555555"))

	require.NoError(t, store.Set(context.Background(), user, KeyObjectivesSelectedAt, "x"))

	v, err := mr.Get("kv:11111111-2222-3333-4444-555555555555:objectivesSelectedAt")
	require.NoError(t, err)
	assert.Equal(t, "x", v)
	assert.Zero(t, mr.TTL("kv:11111111-2222-3333-4444-555555555555:objectivesSelectedAt"), "values do not expire")
}

func TestRedisStoreUnavailable(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr(), MaxRetries: -1})
	t.Cleanup(func() { _ = client.Close() })
	store := NewRedisStore(client)
	mr.Close()

	_, _, err := store.Get(context.Background(), id.UserID(uuid.New()), KeyAnamnesisCompletedAt)
	assert.Error(t, err)
}
