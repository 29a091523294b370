package config

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

const (
	StorageSQLite   = "sqlite"
	StoragePostgres = "postgres"
	StorageMongo    = "mongo"
)

type Config struct {
	Port      string        `env:"PORT,      default=8080"`
	Env       string        `env:"ENV,       default=development"`
	LogLevel  string        `env:"LOG_LEVEL, default=info"`
	JWTSecret string        `env:"JWT_SECRET, required"`
	TokenTTL  time.Duration `env:"TOKEN_TTL, default=24h"`

	Storage  StorageConfig
	Mongo    MongoConfig
	Redis    RedisConfig
	Kafka    KafkaConfig
	Password PasswordConfig
	Admin    AdminConfig

	EventWorkers int `env:"EVENT_WORKERS, default=4"`
}

type StorageConfig struct {
	Driver           string `env:"STORAGE_DRIVER,     default=sqlite"`
	SQLitePath       string `env:"SQLITE_PATH,        default=blog.db"`
	PostgresDSN      string `env:"POSTGRES_DSN"`
	PostgresMaxConns int    `env:"POSTGRES_MAX_CONNS, default=10"`
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=blog"`
}

// RedisConfig enables token revocation when Addr is set.
type RedisConfig struct {
	Addr string `env:"REDIS_ADDR"`
	DB   int    `env:"REDIS_DB, default=0"`
}

// KafkaConfig enables the event publisher when Brokers is set. Without it
// events are only logged.
type KafkaConfig struct {
	Brokers []string `env:"KAFKA_BROKERS"`
	Topic   string   `env:"KAFKA_TOPIC, default=blog-events"`
}

type PasswordConfig struct {
	Algorithm  string `env:"PASSWORD_HASH,      default=pbkdf2"`
	Iterations int    `env:"PBKDF2_ITERATIONS,  default=600000"`
	SaltLength int    `env:"PBKDF2_SALT_LENGTH, default=8"`
}

type AdminConfig struct {
	Emails         []string `env:"ADMIN_EMAILS"`
	BootstrapFirst bool     `env:"BOOTSTRAP_FIRST_ADMIN, default=true"`
}

// IsDevelopment reports whether the service runs with ENV=development.
func (c *Config) IsDevelopment() bool {
	return c.Env == "development"
}

// Validate checks the combinations envconfig cannot express.
func (c *Config) Validate() error {
	switch c.Storage.Driver {
	case StorageSQLite, StorageMongo:
	case StoragePostgres:
		if c.Storage.PostgresDSN == "" {
			return errors.New("POSTGRES_DSN is required when STORAGE_DRIVER=postgres")
		}
	default:
		return fmt.Errorf("unknown STORAGE_DRIVER %q", c.Storage.Driver)
	}

	switch c.Password.Algorithm {
	case "pbkdf2", "bcrypt":
	default:
		return fmt.Errorf("unknown PASSWORD_HASH %q", c.Password.Algorithm)
	}

	if c.TokenTTL <= 0 {
		return errors.New("TOKEN_TTL must be positive")
	}
	return nil
}

// Load reads configuration from environment variables using go-envconfig.
func Load() *Config {
	cfg, err := LoadWith(context.Background(), envconfig.OsLookuper())
	if err != nil {
		panic(fmt.Sprintf("config: failed to load configuration: %v", err))
	}
	return cfg
}

// LoadWith reads and validates configuration from the given lookuper.
func LoadWith(ctx context.Context, lookuper envconfig.Lookuper) (*Config, error) {
	var cfg Config
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{
		Target:   &cfg,
		Lookuper: lookuper,
	}); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}
