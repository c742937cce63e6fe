package completion

import (
	"context"
	"fmt"
	"time"

	"anamnesis/internal/anamnesis/models"
	"anamnesis/internal/kvstore"
	id "anamnesis/pkg/domain"
	"anamnesis/pkg/platform/sentinel"
)

// FlagTimeLayout is the ISO-8601 form stored under anamnesisCompletedAt.
const FlagTimeLayout = "2006-01-02T15:04:05.000Z"

// ErrMalformedFlag is returned when a stored flag is not a timestamp.
var ErrMalformedFlag = fmt.Errorf("malformed completion flag: %w", sentinel.ErrInvalidState)

// KVFlagStore keeps the flag in the per-user key-value store.
type KVFlagStore struct {
	kv kvstore.Store
}

func NewKVFlagStore(kv kvstore.Store) *KVFlagStore {
	return &KVFlagStore{kv: kv}
}

func (s *KVFlagStore) Get(ctx context.Context, userID id.UserID) (*models.CompletionFlag, error) {
	raw, ok, err := s.kv.Get(ctx, userID, kvstore.KeyAnamnesisCompletedAt)
	if err != nil {
		return nil, fmt.Errorf("read completion flag: %w", err)
	}
	if !ok {
		return nil, nil
	}
	completedAt, err := parseFlagTime(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrMalformedFlag, raw)
	}
	return &models.CompletionFlag{CompletedAt: completedAt}, nil
}

func (s *KVFlagStore) Set(ctx context.Context, userID id.UserID, flag models.CompletionFlag) error {
	value := flag.CompletedAt.UTC().Format(FlagTimeLayout)
	if err := s.kv.Set(ctx, userID, kvstore.KeyAnamnesisCompletedAt, value); err != nil {
		return fmt.Errorf("write completion flag: %w", err)
	}
	return nil
}

func (s *KVFlagStore) Clear(ctx context.Context, userID id.UserID) error {
	if err := s.kv.Remove(ctx, userID, kvstore.KeyAnamnesisCompletedAt); err != nil {
		return fmt.Errorf("clear completion flag: %w", err)
	}
	return nil
}

// parseFlagTime accepts the canonical layout and any RFC 3339 timestamp
// written by older clients.
func parseFlagTime(raw string) (time.Time, error) {
	if t, err := time.Parse(FlagTimeLayout, raw); err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339Nano, raw)
}
