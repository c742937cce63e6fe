// Package kvstore is the per-user persisted key-value collaborator.
//
// Values are opaque strings. The completion flag, the selected markers and
// the objectives timestamp all live here.
package kvstore

import (
	"context"
	"encoding/json"
	"fmt"

	id "anamnesis/pkg/domain"
	"anamnesis/pkg/platform/sentinel"
)

// Key names a per-user value.
type Key string

const (
	// KeyAnamnesisCompletedAt holds the completion flag as an ISO-8601 string.
	KeyAnamnesisCompletedAt Key = "anamnesisCompletedAt"
	// KeySelectedMarkerIDs holds a JSON array of marker ids.
	KeySelectedMarkerIDs Key = "selectedMarkerIds"
	// KeyObjectivesSelectedAt holds an ISO-8601 timestamp.
	KeyObjectivesSelectedAt Key = "objectivesSelectedAt"
)

// Store reads and writes per-user values. Get reports false for an absent key.
type Store interface {
	Get(ctx context.Context, userID id.UserID, key Key) (string, bool, error)
	Set(ctx context.Context, userID id.UserID, key Key, value string) error
	Remove(ctx context.Context, userID id.UserID, key Key) error
}

func (k Key) String() string {
	return string(k)
}

// MultiGetter is implemented by stores that read several keys in one round
// trip.
type MultiGetter interface {
	GetMany(ctx context.Context, userID id.UserID, keys []Key) (map[Key]string, error)
}

// GetMany reads several keys of one user. Absent keys are missing from the
// result. Stores without a batch read are queried key by key.
func GetMany(ctx context.Context, s Store, userID id.UserID, keys []Key) (map[Key]string, error) {
	if mg, ok := s.(MultiGetter); ok {
		return mg.GetMany(ctx, userID, keys)
	}
	out := make(map[Key]string, len(keys))
	for _, k := range keys {
		v, ok, err := s.Get(ctx, userID, k)
		if err != nil {
			return nil, err
		}
		if ok {
			out[k] = v
		}
	}
	return out, nil
}

// GetStringList decodes a JSON array value. An absent key yields nil.
func GetStringList(ctx context.Context, s Store, userID id.UserID, key Key) ([]string, error) {
	raw, ok, err := s.Get(ctx, userID, key)
	if err != nil || !ok {
		return nil, err
	}
	return DecodeStringList(key, raw)
}

// DecodeStringList decodes a raw JSON array value read from key.
func DecodeStringList(key Key, raw string) ([]string, error) {
	var out []string
	if err := json.Unmarshal([]byte(raw), &out); err != nil {
		return nil, fmt.Errorf("decode %s: %w: %w", key, sentinel.ErrInvalidState, err)
	}
	return out, nil
}

// SetStringList stores values as a JSON array.
func SetStringList(ctx context.Context, s Store, userID id.UserID, key Key, values []string) error {
	if values == nil {
		values = []string{}
	}
	raw, err := json.Marshal(values)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	return s.Set(ctx, userID, key, string(raw))
}
