package config

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

const (
	DriverFile   = "file"
	DriverMemory = "memory"
	DriverRedis  = "redis"
	DriverMongo  = "mongo"
)

type Config struct {
	Port      string `env:"PORT,      default=8080"`
	Env       string `env:"ENV,       default=development"`
	JWTSecret string `env:"JWT_SECRET"`
	LogLevel  string `env:"LOG_LEVEL, default=info"`

	TokenTTL         time.Duration `env:"TOKEN_TTL,          default=24h"`
	BcryptCost       int           `env:"BCRYPT_COST,        default=10"`
	UserDeletePolicy string        `env:"USER_DELETE_POLICY, default=orphan"`

	Store   StoreConfig
	Session SessionConfig
	Seed    SeedConfig
	Mongo   MongoConfig
	Redis   RedisConfig
}

type StoreConfig struct {
	Driver   string `env:"STORE_DRIVER,    default=file"`
	FilePath string `env:"STORE_FILE_PATH, default=data/my_energy.json"`
	Key      string `env:"STORE_KEY,       default=my_energy_v2_db"`
}

type SessionConfig struct {
	Driver string `env:"SESSION_DRIVER, default=memory"`
}

// SeedConfig describes the admin written into an empty store.
type SeedConfig struct {
	AdminID       string `env:"SEED_ADMIN_ID,       default=admin_01"`
	AdminName     string `env:"SEED_ADMIN_NAME,     default=Super Admin"`
	AdminEmail    string `env:"SEED_ADMIN_EMAIL,    default=admin@app.com"`
	AdminPassword string `env:"SEED_ADMIN_PASSWORD, default=admin123"`
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=my_energy"`
}

type RedisConfig struct {
	Addr     string `env:"REDIS_ADDR,     default=localhost:6379"`
	Password string `env:"REDIS_PASSWORD"`
	DB       int    `env:"REDIS_DB,       default=0"`
}

// Load reads configuration from environment variables using go-envconfig.
func Load(ctx context.Context) (*Config, error) {
	cfg, err := Process(ctx, envconfig.OsLookuper())
	if err != nil {
		return nil, fmt.Errorf("config: failed to load configuration: %w", err)
	}
	return cfg, nil
}

// Process reads configuration through the given lookuper and validates it.
func Process(ctx context.Context, l envconfig.Lookuper) (*Config, error) {
	var cfg Config
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{Target: &cfg, Lookuper: l}); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) Validate() error {
	switch c.Store.Driver {
	case DriverFile, DriverMemory, DriverRedis, DriverMongo:
	default:
		return fmt.Errorf("unknown STORE_DRIVER %q", c.Store.Driver)
	}
	switch c.Session.Driver {
	case DriverMemory, DriverRedis:
	default:
		return fmt.Errorf("unknown SESSION_DRIVER %q", c.Session.Driver)
	}
	switch c.UserDeletePolicy {
	case "orphan", "cascade":
	default:
		return fmt.Errorf("unknown USER_DELETE_POLICY %q", c.UserDeletePolicy)
	}
	if c.TokenTTL <= 0 {
		return errors.New("TOKEN_TTL must be positive")
	}
	return nil
}

// RequireSecret fails when no JWT secret is configured. Only the HTTP server
// signs tokens, so the CLI commands do not call it.
func (c *Config) RequireSecret() error {
	if c.JWTSecret == "" {
		return errors.New("JWT_SECRET must be set")
	}
	return nil
}

func (c *Config) IsDevelopment() bool {
	return c.Env == "development"
}
