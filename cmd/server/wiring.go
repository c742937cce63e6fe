package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"anamnesis/internal/anamnesis/repository"
	"anamnesis/internal/audit"
	"anamnesis/internal/kvstore"
	"anamnesis/internal/platform/config"
	"anamnesis/internal/platform/database"
	platformredis "anamnesis/internal/platform/redis"
)

// infra holds the optional backing services. Nil fields are not configured.
type infra struct {
	redis *platformredis.Client
	db    *sql.DB
	kafka *audit.KafkaSink
}

func openInfra(ctx context.Context, cfg config.Config, log *slog.Logger) (*infra, error) {
	in := &infra{}
	var err error
	if in.redis, err = platformredis.New(ctx, cfg.Redis); err != nil {
		return nil, err
	}
	if in.db, err = database.Open(ctx, cfg.Database); err != nil {
		in.Close()
		return nil, err
	}
	if len(cfg.Kafka.Brokers) > 0 {
		if in.kafka, err = audit.NewKafkaSink(cfg.Kafka.Brokers, cfg.Kafka.AuditTopic); err != nil {
			in.Close()
			return nil, err
		}
		topicCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
		defer cancel()
		if err := in.kafka.EnsureTopic(topicCtx, 3, 1); err != nil {
			log.Warn("audit topic not provisioned", "topic", cfg.Kafka.AuditTopic, "error", err)
		}
	}
	return in, nil
}

func (in *infra) Close() {
	if in.kafka != nil {
		in.kafka.Close()
	}
	if in.db != nil {
		_ = in.db.Close()
	}
	if in.redis != nil {
		_ = in.redis.Close()
	}
}

// Health pings every configured backing service.
func (in *infra) Health(ctx context.Context) map[string]error {
	checks := map[string]error{}
	if in.redis != nil {
		checks["redis"] = in.redis.Health(ctx)
	}
	if in.db != nil {
		checks["postgres"] = in.db.PingContext(ctx)
	}
	if in.kafka != nil {
		checks["kafka"] = in.kafka.Ping(ctx)
	}
	return checks
}

func newKVStore(ctx context.Context, backend string, in *infra) (kvstore.Store, error) {
	switch backend {
	case "", "memory":
		return kvstore.NewInMemoryStore(), nil
	case "redis":
		if in.redis == nil {
			return nil, fmt.Errorf("kv backend redis requires REDIS_URL")
		}
		return kvstore.NewRedisStore(in.redis.Client), nil
	case "postgres":
		if in.db == nil {
			return nil, fmt.Errorf("kv backend postgres requires DATABASE_URL")
		}
		store := kvstore.NewPostgres(in.db)
		if err := store.EnsureSchema(ctx); err != nil {
			return nil, err
		}
		return store, nil
	default:
		return nil, fmt.Errorf("unknown kv backend %q", backend)
	}
}

// newQuestionCache shares cached question sets through Redis when available.
func newQuestionCache(ttl time.Duration, in *infra) repository.QuestionCache {
	if in.redis != nil {
		return repository.NewRedisQuestionCache(in.redis.Client, ttl)
	}
	return repository.NewMemoryQuestionCache(ttl)
}

// startAudit forwards events to Kafka through a buffered worker when brokers
// are configured and logs them otherwise. The returned channel closes once the
// worker has flushed after ctx ends.
func startAudit(ctx context.Context, cfg config.KafkaConfig, in *infra, log *slog.Logger) (*audit.Publisher, <-chan struct{}) {
	done := make(chan struct{})
	if in.kafka == nil {
		close(done)
		log.Info("audit events written to the log; no kafka brokers configured")
		return audit.NewPublisher(audit.NewLogSink(log)), done
	}

	worker := audit.NewWorker(in.kafka, 1024, log)
	go func() {
		defer close(done)
		_ = worker.Run(ctx)
	}()
	log.Info("audit events forwarded to kafka", "topic", cfg.AuditTopic)
	return audit.NewPublisher(worker), done
}
