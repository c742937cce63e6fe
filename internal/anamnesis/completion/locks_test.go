package completion

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	id "anamnesis/pkg/domain"
	dErrors "anamnesis/pkg/domain-errors"
)

func TestUserLockWaiterGivesUpOnCancel(t *testing.T) {
	l := newUserLocks()
	unlock, err := l.lock(context.Background(), testUser)
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	_, err = l.lock(ctx, testUser)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeTimeout))
	assert.ErrorIs(t, err, context.DeadlineExceeded)

	unlock()
	again, err := l.lock(context.Background(), testUser)
	require.NoError(t, err)
	again()
}

func TestUserLockOtherShardsStayFree(t *testing.T) {
	l := newUserLocks()
	unlock, err := l.lock(context.Background(), testUser)
	require.NoError(t, err)
	defer unlock()

	var other id.UserID
	for {
		other = id.UserID(uuid.New())
		if shardFor(other) != shardFor(testUser) {
			break
		}
	}
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	release, err := l.lock(ctx, other)
	require.NoError(t, err)
	release()
}
