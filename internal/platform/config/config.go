package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Config is the full service configuration, built once in main.
type Config struct {
	Server    Server
	Remote    RemoteConfig
	Redis     RedisConfig
	Database  DatabaseConfig
	Kafka     KafkaConfig
	Anamnesis AnamnesisConfig
}

// Server captures HTTP server level configuration.
type Server struct {
	Addr          string
	JWTSigningKey string
	JWTIssuer     string
	JWTAudience   string
	LogLevel      string
}

// RemoteConfig points at the questionnaire backend.
type RemoteConfig struct {
	BaseURL      string
	ServiceToken string
	Timeout      time.Duration
	// Consecutive failures before the circuit opens.
	FailureThreshold int
	Cooldown         time.Duration
}

// RedisConfig configures the optional Redis client. An empty URL disables Redis.
type RedisConfig struct {
	URL          string
	PoolSize     int
	MinIdleConns int
	DialTimeout  time.Duration
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// DatabaseConfig configures the optional Postgres pool. An empty URL disables it.
type DatabaseConfig struct {
	URL             string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

// KafkaConfig configures the audit publisher. No brokers means audit events
// stay in memory.
type KafkaConfig struct {
	Brokers    []string
	AuditTopic string
}

// AnamnesisConfig holds questionnaire specific knobs.
type AnamnesisConfig struct {
	DefaultLocale    string
	SupportedLocales []string
	QuestionCacheTTL time.Duration
	// KVBackend selects the local key-value store: "memory", "redis" or "postgres".
	KVBackend string
}

// FromEnv builds a Config from environment variables so main stays lean.
func FromEnv() Config {
	return Config{
		Server: Server{
			Addr:          getEnv("ANAMNESIS_ADDR", ":8080"),
			JWTSigningKey: getEnv("JWT_SIGNING_KEY", "dev-secret-key-change-in-production"),
			JWTIssuer:     getEnv("JWT_ISSUER", ""),
			JWTAudience:   getEnv("JWT_AUDIENCE", ""),
			LogLevel:      getEnv("LOG_LEVEL", "info"),
		},
		Remote: RemoteConfig{
			BaseURL:          getEnv("REMOTE_BASE_URL", "http://localhost:9000/api"),
			ServiceToken:     os.Getenv("REMOTE_SERVICE_TOKEN"),
			Timeout:          getDuration("REMOTE_TIMEOUT", 5*time.Second),
			FailureThreshold: getInt("REMOTE_FAILURE_THRESHOLD", 5),
			Cooldown:         getDuration("REMOTE_COOLDOWN", 10*time.Second),
		},
		Redis: RedisConfig{
			URL:          os.Getenv("REDIS_URL"),
			PoolSize:     getInt("REDIS_POOL_SIZE", 10),
			MinIdleConns: getInt("REDIS_MIN_IDLE_CONNS", 2),
			DialTimeout:  getDuration("REDIS_DIAL_TIMEOUT", 5*time.Second),
			ReadTimeout:  getDuration("REDIS_READ_TIMEOUT", 3*time.Second),
			WriteTimeout: getDuration("REDIS_WRITE_TIMEOUT", 3*time.Second),
		},
		Database: DatabaseConfig{
			URL:             os.Getenv("DATABASE_URL"),
			MaxOpenConns:    getInt("DATABASE_MAX_OPEN_CONNS", 20),
			MaxIdleConns:    getInt("DATABASE_MAX_IDLE_CONNS", 10),
			ConnMaxLifetime: getDuration("DATABASE_CONN_MAX_LIFETIME", 30*time.Minute),
		},
		Kafka: KafkaConfig{
			Brokers:    getList("KAFKA_BROKERS"),
			AuditTopic: getEnv("KAFKA_AUDIT_TOPIC", "anamnesis.audit"),
		},
		Anamnesis: AnamnesisConfig{
			DefaultLocale:    getEnv("ANAMNESIS_DEFAULT_LOCALE", "pt-BR"),
			SupportedLocales: getListOr("ANAMNESIS_LOCALES", []string{"pt-BR", "en-US"}),
			QuestionCacheTTL: getDuration("ANAMNESIS_QUESTION_CACHE_TTL", 10*time.Minute),
			KVBackend:        getEnv("ANAMNESIS_KV_BACKEND", "memory"),
		},
	}
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

func getInt(key string, defaultVal int) int {
	if val := os.Getenv(key); val != "" {
		if n, err := strconv.Atoi(val); err == nil {
			return n
		}
	}
	return defaultVal
}

func getDuration(key string, defaultVal time.Duration) time.Duration {
	if val := os.Getenv(key); val != "" {
		if d, err := time.ParseDuration(val); err == nil {
			return d
		}
	}
	return defaultVal
}

func getList(key string) []string {
	return getListOr(key, nil)
}

func getListOr(key string, defaultVal []string) []string {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal
	}
	var out []string
	for _, part := range strings.Split(val, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
