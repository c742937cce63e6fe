//go:build integration

package kvstore

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	id "anamnesis/pkg/domain"
	"anamnesis/pkg/testutil/containers"
)

func TestPostgresStore(t *testing.T) {
	pg := containers.NewPostgresContainer(t)
	store := NewPostgres(pg.DB)
	require.NoError(t, store.EnsureSchema(context.Background()))
	require.NoError(t, store.EnsureSchema(context.Background()), "schema creation is idempotent")

	runStoreContract(t, store)
}

func TestPostgresStoreGetMany(t *testing.T) {
	pg := containers.NewPostgresContainer(t)
	store := NewPostgres(pg.DB)
	ctx := context.Background()
	require.NoError(t, store.EnsureSchema(ctx))

	user := id.UserID(uuid.New())
	require.NoError(t, store.Set(ctx, user, KeyAnamnesisCompletedAt, "2024-01-01T00:00:00.000Z"))
	require.NoError(t, store.Set(ctx, user, KeySelectedMarkerIDs, `["m1"]`))

	values, err := store.GetMany(ctx, user, []Key{KeyAnamnesisCompletedAt, KeySelectedMarkerIDs, KeyObjectivesSelectedAt})
	require.NoError(t, err)
	assert.Len(t, values, 2)
	assert.Equal(t, `["m1"]`, values[KeySelectedMarkerIDs])
	_, ok := values[KeyObjectivesSelectedAt]
	assert.False(t, ok)

	empty, err := store.GetMany(ctx, user, nil)
	require.NoError(t, err)
	assert.Empty(t, empty)
}
