package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"

	"anamnesis/internal/anamnesis/models"
	id "anamnesis/pkg/domain"
)

// QuestionCache holds question sets per locale. A miss is (nil, false, nil).
type QuestionCache interface {
	Get(ctx context.Context, locale id.Locale) ([]models.Question, bool, error)
	Set(ctx context.Context, locale id.Locale, questions []models.Question) error
	Delete(ctx context.Context, locale id.Locale) error
}

type cachedQuestions struct {
	questions []models.Question
	expiresAt time.Time
}

// MemoryQuestionCache is a process-local TTL cache.
type MemoryQuestionCache struct {
	mu      sync.RWMutex
	ttl     time.Duration
	now     func() time.Time
	entries map[id.Locale]cachedQuestions
}

func NewMemoryQuestionCache(ttl time.Duration) *MemoryQuestionCache {
	return &MemoryQuestionCache{
		ttl:     ttl,
		now:     time.Now,
		entries: make(map[id.Locale]cachedQuestions),
	}
}

func (c *MemoryQuestionCache) Get(_ context.Context, locale id.Locale) ([]models.Question, bool, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	entry, ok := c.entries[locale]
	if !ok || !c.now().Before(entry.expiresAt) {
		return nil, false, nil
	}
	return entry.questions, true, nil
}

func (c *MemoryQuestionCache) Set(_ context.Context, locale id.Locale, questions []models.Question) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[locale] = cachedQuestions{questions: questions, expiresAt: c.now().Add(c.ttl)}
	return nil
}

func (c *MemoryQuestionCache) Delete(_ context.Context, locale id.Locale) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, locale)
	return nil
}

const questionCacheKeyPrefix = "anamnesis:questions:"

// RedisQuestionCache shares question sets across instances.
type RedisQuestionCache struct {
	client redis.UniversalClient
	ttl    time.Duration
}

func NewRedisQuestionCache(client redis.UniversalClient, ttl time.Duration) *RedisQuestionCache {
	return &RedisQuestionCache{client: client, ttl: ttl}
}

func (c *RedisQuestionCache) Get(ctx context.Context, locale id.Locale) ([]models.Question, bool, error) {
	raw, err := c.client.Get(ctx, questionCacheKeyPrefix+locale.String()).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("get cached questions: %w", err)
	}
	var questions []models.Question
	if err := json.Unmarshal(raw, &questions); err != nil {
		return nil, false, fmt.Errorf("decode cached questions: %w", err)
	}
	return questions, true, nil
}

func (c *RedisQuestionCache) Set(ctx context.Context, locale id.Locale, questions []models.Question) error {
	raw, err := json.Marshal(questions)
	if err != nil {
		return fmt.Errorf("encode questions: %w", err)
	}
	if err := c.client.Set(ctx, questionCacheKeyPrefix+locale.String(), raw, c.ttl).Err(); err != nil {
		return fmt.Errorf("cache questions: %w", err)
	}
	return nil
}

func (c *RedisQuestionCache) Delete(ctx context.Context, locale id.Locale) error {
	if err := c.client.Del(ctx, questionCacheKeyPrefix+locale.String()).Err(); err != nil {
		return fmt.Errorf("delete cached questions: %w", err)
	}
	return nil
}
