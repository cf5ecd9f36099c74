package cli

import (
	"context"
	"fmt"
	"io"

	goredis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	mongodriver "go.mongodb.org/mongo-driver/mongo"

	"github.com/myenergy/tracker/internal/api/handler"
	"github.com/myenergy/tracker/internal/core/domain"
	"github.com/myenergy/tracker/internal/core/ports"
	"github.com/myenergy/tracker/internal/core/service"
	"github.com/myenergy/tracker/internal/infrastructure/db/file"
	"github.com/myenergy/tracker/internal/infrastructure/db/memory"
	mongodb "github.com/myenergy/tracker/internal/infrastructure/db/mongo"
	redisdb "github.com/myenergy/tracker/internal/infrastructure/db/redis"
	"github.com/myenergy/tracker/internal/pkg/config"
	"github.com/myenergy/tracker/pkg/logger"
)

const serviceName = "myenergy"

// backends holds the store, the session repository and every connection
// opened for them.
type backends struct {
	cfg       *config.Config
	log       zerolog.Logger
	passwords service.PasswordHasher
	store     *service.Store
	sessions  ports.SessionRepository
	checks    []handler.HealthCheck

	redis   *goredis.Client
	mongo   *mongodriver.Client
	closers []func(context.Context) error
}

// bootstrap loads configuration, initialises the logger and opens the
// configured backends.
func bootstrap(ctx context.Context, out io.Writer) (*backends, error) {
	cfg, err := config.Load(ctx)
	if err != nil {
		return nil, err
	}

	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  cfg.IsDevelopment(),
		Service: serviceName,
		Output:  out,
	})

	b := &backends{
		cfg:       cfg,
		log:       log,
		passwords: service.NewPasswordHasher(cfg.BcryptCost),
	}

	repo, err := b.documentRepository(ctx)
	if err != nil {
		b.close(ctx)
		return nil, err
	}

	seed, err := b.seedAdmin()
	if err != nil {
		b.close(ctx)
		return nil, err
	}
	b.store = service.NewStore(repo, seed, logger.Component("store"))
	b.checks = append(b.checks, handler.HealthCheck{Name: "store", Ping: b.store.Ping})

	if err := b.sessionRepository(ctx); err != nil {
		b.close(ctx)
		return nil, err
	}

	if b.redis != nil {
		client := b.redis
		b.checks = append(b.checks, handler.HealthCheck{Name: "redis", Ping: func(ctx context.Context) error {
			return client.Ping(ctx).Err()
		}})
	}
	if b.mongo != nil {
		client := b.mongo
		b.checks = append(b.checks, handler.HealthCheck{Name: "mongo", Ping: func(ctx context.Context) error {
			return client.Ping(ctx, nil)
		}})
	}

	log.Info().
		Str("store", cfg.Store.Driver).
		Str("sessions", cfg.Session.Driver).
		Msg("backends ready")
	return b, nil
}

func (b *backends) documentRepository(ctx context.Context) (ports.DocumentRepository, error) {
	switch b.cfg.Store.Driver {
	case config.DriverMemory:
		b.log.Warn().Msg("memory store selected: data is lost on exit")
		return memory.NewDocumentRepository(), nil
	case config.DriverRedis:
		client, err := b.redisClient(ctx)
		if err != nil {
			return nil, err
		}
		return redisdb.NewDocumentRepository(client, b.cfg.Store.Key), nil
	case config.DriverMongo:
		client, db, err := mongodb.Connect(ctx, mongodb.Config{
			URI:      b.cfg.Mongo.URI,
			Database: b.cfg.Mongo.Database,
			AppName:  serviceName,
		})
		if err != nil {
			return nil, err
		}
		b.mongo = client
		b.closers = append(b.closers, client.Disconnect)
		return mongodb.NewDocumentRepository(db, b.cfg.Store.Key), nil
	default:
		return file.NewDocumentRepository(b.cfg.Store.FilePath), nil
	}
}

func (b *backends) sessionRepository(ctx context.Context) error {
	if b.cfg.Session.Driver != config.DriverRedis {
		b.sessions = memory.NewSessionRepository()
		return nil
	}
	client, err := b.redisClient(ctx)
	if err != nil {
		return err
	}
	b.sessions = redisdb.NewSessionRepository(client)
	return nil
}

// redisClient connects once and shares the client between the store and the
// session repository.
func (b *backends) redisClient(ctx context.Context) (*goredis.Client, error) {
	if b.redis != nil {
		return b.redis, nil
	}
	client, err := redisdb.Connect(ctx, redisdb.Config{
		Addr:     b.cfg.Redis.Addr,
		Password: b.cfg.Redis.Password,
		DB:       b.cfg.Redis.DB,
	})
	if err != nil {
		return nil, err
	}
	b.redis = client
	b.closers = append(b.closers, func(context.Context) error { return client.Close() })
	return client, nil
}

func (b *backends) seedAdmin() (domain.User, error) {
	digest, err := b.passwords.Hash(b.cfg.Seed.AdminPassword)
	if err != nil {
		return domain.User{}, fmt.Errorf("hash seed password: %w", err)
	}
	return domain.User{
		ID:       b.cfg.Seed.AdminID,
		Name:     b.cfg.Seed.AdminName,
		Email:    b.cfg.Seed.AdminEmail,
		Password: digest,
		Role:     domain.RoleAdmin,
	}, nil
}

func (b *backends) close(ctx context.Context) {
	for i := len(b.closers) - 1; i >= 0; i-- {
		if err := b.closers[i](ctx); err != nil {
			b.log.Warn().Err(err).Msg("closing backend")
		}
	}
	b.closers = nil
}
