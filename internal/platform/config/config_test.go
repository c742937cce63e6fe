package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFromEnv_Defaults(t *testing.T) {
	cfg := FromEnv()

	assert.Equal(t, ":8080", cfg.Server.Addr)
	assert.Equal(t, "pt-BR", cfg.Anamnesis.DefaultLocale)
	assert.Equal(t, "memory", cfg.Anamnesis.KVBackend)
	assert.Equal(t, 10*time.Minute, cfg.Anamnesis.QuestionCacheTTL)
	assert.Empty(t, cfg.Redis.URL)
	assert.Empty(t, cfg.Kafka.Brokers)
}

func TestFromEnv_Overrides(t *testing.T) {
	t.Setenv("ANAMNESIS_ADDR", ":9090")
	t.Setenv("REMOTE_TIMEOUT", "750ms")
	t.Setenv("REMOTE_FAILURE_THRESHOLD", "not-a-number")
	t.Setenv("KAFKA_BROKERS", "kafka-1:9092, kafka-2:9092,")
	t.Setenv("ANAMNESIS_LOCALES", "pt-BR,es-ES")

	cfg := FromEnv()

	assert.Equal(t, ":9090", cfg.Server.Addr)
	assert.Equal(t, 750*time.Millisecond, cfg.Remote.Timeout)
	assert.Equal(t, 5, cfg.Remote.FailureThreshold, "unparseable values fall back to defaults")
	assert.Equal(t, []string{"kafka-1:9092", "kafka-2:9092"}, cfg.Kafka.Brokers)
	assert.Equal(t, []string{"pt-BR", "es-ES"}, cfg.Anamnesis.SupportedLocales)
}
