//go:build integration

package kvstore

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"anamnesis/pkg/testutil/containers"
)

func TestRedisStoreAgainstRealRedis(t *testing.T) {
	rc := containers.NewRedisContainer(t)
	t.Cleanup(func() {
		_ = rc.Client.Close()
		_ = rc.Container.Terminate(context.Background())
	})
	require.NoError(t, rc.FlushAll(context.Background()))

	runStoreContract(t, NewRedisStore(rc.Client))
}
