package completion

import (
	"context"
	"hash/fnv"

	id "anamnesis/pkg/domain"
)

// numUserShards spreads users over a fixed set of slots so that runs for
// different users rarely contend.
const numUserShards = 128

// userLocks serializes validation runs and Finish for one user. Each shard is
// a one-slot semaphore so a waiter can give up when its context ends.
type userLocks struct {
	shards [numUserShards]chan struct{}
}

func newUserLocks() *userLocks {
	l := &userLocks{}
	for i := range l.shards {
		l.shards[i] = make(chan struct{}, 1)
	}
	return l
}

// lock acquires the user's shard. The returned func releases it.
func (l *userLocks) lock(ctx context.Context, userID id.UserID) (func(), error) {
	if err := ctx.Err(); err != nil {
		return nil, abandoned(err)
	}
	sem := l.shards[shardFor(userID)]
	select {
	case sem <- struct{}{}:
		return func() { <-sem }, nil
	case <-ctx.Done():
		return nil, abandoned(ctx.Err())
	}
}

func shardFor(userID id.UserID) uint32 {
	h := fnv.New32a()
	_, _ = h.Write(userID[:])
	return h.Sum32() % numUserShards
}
