package config

import (
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/spf13/viper"
)

const (
	CatalogSourceFile     = "file"
	CatalogSourcePostgres = "postgres"
)

type Config struct {
	Server    ServerConfig
	Auth      AuthConfig
	Catalog   CatalogConfig
	Database  DatabaseConfig
	Redis     RedisConfig
	Events    EventsConfig
	Jobs      JobsConfig
	RateLimit RateLimitConfig
	Log       LogConfig
}

type ServerConfig struct {
	Host string
	Port int
	Env  string
}

// AuthConfig - общий bearer-токен для защищённых эндпоинтов
type AuthConfig struct {
	Token string
}

type CatalogConfig struct {
	Source string
	Path   string
}

type DatabaseConfig struct {
	Host            string
	Port            int
	User            string
	Password        string
	DBName          string
	SSLMode         string
	MaxConns        int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	ConnMaxIdleTime time.Duration
}

type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

// EventsConfig - публикация событий о завершённых поисках в Redis Streams
type EventsConfig struct {
	Enabled       bool
	Stream        string
	ConsumerGroup string
	MaxLen        int64
}

// JobsConfig - параметры асинхронного поиска по радиусу
type JobsConfig struct {
	Delay     time.Duration
	Workers   int
	QueueSize int
	// Retention - время жизни завершённых задач, 0 = хранить бессрочно
	Retention       time.Duration
	ShutdownTimeout time.Duration
}

type RateLimitConfig struct {
	PerSecond float64
	Burst     int
}

type LogConfig struct {
	Level string
}

// Load читает .env из текущей директории (если он есть) и переменные окружения
func Load() (*Config, error) {
	return LoadFrom(".env")
}

// LoadFrom - то же, что Load, но с явным путём к .env файлу
func LoadFrom(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetConfigFile(path)
	v.SetConfigType("env")
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.Is(err, fs.ErrNotExist) && !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	cfg := &Config{
		Server: ServerConfig{
			Host: v.GetString("API_HOST"),
			Port: v.GetInt("API_PORT"),
			Env:  v.GetString("API_ENV"),
		},
		Auth: AuthConfig{
			Token: v.GetString("AUTH_TOKEN"),
		},
		Catalog: CatalogConfig{
			Source: v.GetString("CATALOG_SOURCE"),
			Path:   v.GetString("CATALOG_PATH"),
		},
		Database: DatabaseConfig{
			Host:            v.GetString("DB_HOST"),
			Port:            v.GetInt("DB_PORT"),
			User:            v.GetString("DB_USER"),
			Password:        v.GetString("DB_PASSWORD"),
			DBName:          v.GetString("DB_NAME"),
			SSLMode:         v.GetString("DB_SSLMODE"),
			MaxConns:        v.GetInt("DB_MAX_CONNS"),
			MaxIdleConns:    v.GetInt("DB_MAX_IDLE_CONNS"),
			ConnMaxLifetime: time.Duration(v.GetInt("DB_CONN_MAX_LIFETIME")) * time.Second,
			ConnMaxIdleTime: time.Duration(v.GetInt("DB_CONN_MAX_IDLE_TIME")) * time.Second,
		},
		Redis: RedisConfig{
			Host:     v.GetString("REDIS_HOST"),
			Port:     v.GetInt("REDIS_PORT"),
			Password: v.GetString("REDIS_PASSWORD"),
			DB:       v.GetInt("REDIS_DB"),
		},
		Events: EventsConfig{
			Enabled:       v.GetBool("EVENTS_ENABLED"),
			Stream:        v.GetString("EVENTS_STREAM"),
			ConsumerGroup: v.GetString("EVENTS_CONSUMER_GROUP"),
			MaxLen:        v.GetInt64("EVENTS_STREAM_MAXLEN"),
		},
		Jobs: JobsConfig{
			Delay:           time.Duration(v.GetInt("JOBS_DELAY_MS")) * time.Millisecond,
			Workers:         v.GetInt("JOBS_WORKERS"),
			QueueSize:       v.GetInt("JOBS_QUEUE_SIZE"),
			Retention:       time.Duration(v.GetInt("JOBS_RETENTION_SEC")) * time.Second,
			ShutdownTimeout: time.Duration(v.GetInt("JOBS_SHUTDOWN_TIMEOUT_SEC")) * time.Second,
		},
		RateLimit: RateLimitConfig{
			PerSecond: v.GetFloat64("RATE_LIMIT_PER_SECOND"),
			Burst:     v.GetInt("RATE_LIMIT_BURST"),
		},
		Log: LogConfig{
			Level: v.GetString("LOG_LEVEL"),
		},
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("API_HOST", "")
	v.SetDefault("API_PORT", 8080)
	v.SetDefault("API_ENV", "development")
	v.SetDefault("AUTH_TOKEN", "dGhlc2VjcmV0dG9rZW4=")
	v.SetDefault("CATALOG_SOURCE", CatalogSourceFile)
	v.SetDefault("CATALOG_PATH", "./addresses.json")

	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", 5432)
	v.SetDefault("DB_SSLMODE", "disable")
	v.SetDefault("DB_MAX_CONNS", 5)
	v.SetDefault("DB_MAX_IDLE_CONNS", 2)
	v.SetDefault("DB_CONN_MAX_LIFETIME", 300)
	v.SetDefault("DB_CONN_MAX_IDLE_TIME", 60)

	v.SetDefault("REDIS_HOST", "localhost")
	v.SetDefault("REDIS_PORT", 6379)
	v.SetDefault("REDIS_DB", 0)

	v.SetDefault("EVENTS_ENABLED", false)
	v.SetDefault("EVENTS_STREAM", "stream:cities:search:done")
	v.SetDefault("EVENTS_CONSUMER_GROUP", "cities-search-audit")
	v.SetDefault("EVENTS_STREAM_MAXLEN", 10000)

	v.SetDefault("JOBS_DELAY_MS", 5000)
	v.SetDefault("JOBS_WORKERS", 4)
	v.SetDefault("JOBS_QUEUE_SIZE", 256)
	v.SetDefault("JOBS_RETENTION_SEC", 0)
	v.SetDefault("JOBS_SHUTDOWN_TIMEOUT_SEC", 30)

	v.SetDefault("RATE_LIMIT_PER_SECOND", 0)
	v.SetDefault("RATE_LIMIT_BURST", 0)

	v.SetDefault("LOG_LEVEL", "info")
}

func (c *Config) validate() error {
	switch c.Catalog.Source {
	case CatalogSourceFile, CatalogSourcePostgres:
	default:
		return fmt.Errorf("unknown CATALOG_SOURCE %q", c.Catalog.Source)
	}
	if c.Auth.Token == "" {
		return fmt.Errorf("AUTH_TOKEN must not be empty")
	}
	if c.Jobs.Delay < 0 {
		return fmt.Errorf("JOBS_DELAY_MS must not be negative")
	}
	if c.Jobs.Workers <= 0 {
		return fmt.Errorf("JOBS_WORKERS must be positive, got %d", c.Jobs.Workers)
	}
	if c.Jobs.QueueSize <= 0 {
		return fmt.Errorf("JOBS_QUEUE_SIZE must be positive, got %d", c.Jobs.QueueSize)
	}
	return nil
}

func (c *Config) GetServerAddr() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}

func (c *Config) GetDatabaseDSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Database.Host,
		c.Database.Port,
		c.Database.User,
		c.Database.Password,
		c.Database.DBName,
		c.Database.SSLMode,
	)
}

func (c *Config) GetRedisAddr() string {
	return fmt.Sprintf("%s:%d", c.Redis.Host, c.Redis.Port)
}

// RateLimitEnabled - лимит включается только если заданы оба параметра
func (c *Config) RateLimitEnabled() bool {
	return c.RateLimit.PerSecond > 0 && c.RateLimit.Burst > 0
}
