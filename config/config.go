package config

import (
	"time"

	"github.com/Ramsey-B/sorrel/pkg/database"
	"github.com/Ramsey-B/sorrel/pkg/kafka"
	"github.com/Ramsey-B/sorrel/pkg/matching"
	"github.com/Ramsey-B/sorrel/pkg/middleware"
	"github.com/Ramsey-B/sorrel/pkg/normalizers"
	"github.com/Ramsey-B/sorrel/pkg/redis"
)

type Config struct {
	AppName                       string   `env:"APP_NAME" env-default:"sorrel-api"`
	Port                          int      `env:"PORT" env-default:"3004"`
	LogLevel                      string   `env:"LOG_LEVEL" env-default:"info"`
	PrettyLogs                    bool     `env:"PRETTY_LOGS" env-default:"false"`
	HttpServerWriteTimeoutSeconds int      `env:"HTTP_SERVER_WRITE_TIMEOUT_SECONDS" env-default:"10"`
	HttpServerReadTimeoutSeconds  int      `env:"HTTP_SERVER_READ_TIMEOUT_SECONDS" env-default:"10"`
	HttpServerIdleTimeoutSeconds  int      `env:"HTTP_SERVER_IDLE_TIMEOUT_SECONDS" env-default:"10"`
	MaxHeaderBytes                int      `env:"HTTP_SERVER_MAX_HEADER_BYTES" env-default:"64000"` // 64KB
	ReadHeaderTimeoutSeconds      int      `env:"HTTP_SERVER_READ_HEADER_TIMEOUT_SECONDS" env-default:"10"`
	AllowOrigins                  []string `env:"HTTP_SERVER_ALLOW_ORIGINS" env-default:"*"`
	AllowMethods                  []string `env:"HTTP_SERVER_ALLOW_METHODS" env-default:"GET,POST,PUT,DELETE"`
	StartupMaxAttempts            int      `env:"STARTUP_MAX_ATTEMPTS" env-default:"5"`

	// PostgreSQL
	DatabaseDriver                string        `env:"DB_DRIVER" env-default:"postgres"`
	DatabaseHost                  string        `env:"DB_HOST" env-default:""`
	DatabasePort                  string        `env:"DB_PORT" env-default:"5432"`
	DatabaseUserName              string        `env:"DB_USER_NAME" env-default:""`
	DatabasePassword              string        `env:"DB_PASSWORD" env-default:""`
	DatabaseName                  string        `env:"DB_NAME" env-default:"sorrel"`
	DatabaseSSLMode               string        `env:"DB_SQL_MODE" env-default:"disable"`
	DatabaseReconnectRetryCount   int           `env:"DB_RECONNECT_RETRY_COUNT" env-default:"3"`
	DatabaseMaxOpenConns          int           `env:"DB_MAX_OPEN_CONNS" env-default:"25"`
	DatabaseMaxIdleConns          int           `env:"DB_MAX_IDLE_CONNS" env-default:"10"`
	DatabaseConnMaxLifetime       time.Duration `env:"DB_CONN_MAX_LIFETIME" env-default:"10s"`
	DatabaseMigrationFolderPath   string        `env:"DB_MIGRATION_FOLDER_PATH" env-default:"db/pg"`
	DatabaseMigrationVersion      int           `env:"DB_MIGRATION_VERSION" env-default:"0"`
	DatabaseMigrationForce        int           `env:"DB_MIGRATION_FORCE" env-default:"0"`
	DatabaseMigrationAutoRollback bool          `env:"DB_MIGRATION_AUTO_ROLLBACK" env-default:"true"`

	// Redis (pending confirmations)
	RedisHost            string `env:"REDIS_HOST" env-default:"localhost"`
	RedisPort            int    `env:"REDIS_PORT" env-default:"6379"`
	RedisPassword        string `env:"REDIS_PASSWORD" env-default:""`
	RedisDB              int    `env:"REDIS_DB" env-default:"0"`
	ConfirmationTTLHours int    `env:"CONFIRMATION_TTL_HOURS" env-default:"24"`

	// Rate limiting (per tenant)
	RateLimitRequests      int64 `env:"RATE_LIMIT_REQUESTS" env-default:"120"`
	RateLimitWindowSeconds int   `env:"RATE_LIMIT_WINDOW_SECONDS" env-default:"60"`

	// Kafka Producer settings
	KafkaBrokers      []string `env:"KAFKA_BROKERS" env-default:"localhost:9092"`
	KafkaOutputTopic  string   `env:"KAFKA_OUTPUT_TOPIC" env-default:"resolution-events"`
	KafkaBatchSize    int      `env:"KAFKA_BATCH_SIZE" env-default:"100"`
	KafkaBatchTimeout int      `env:"KAFKA_BATCH_TIMEOUT_MS" env-default:"100"`
	KafkaRequiredAcks int      `env:"KAFKA_REQUIRED_ACKS" env-default:"1"`
	KafkaCompression  string   `env:"KAFKA_COMPRESSION" env-default:"snappy"`

	// Matching
	MatchThreshold     float64 `env:"MATCH_THRESHOLD" env-default:"0.70"`
	SearchThreshold    float64 `env:"SEARCH_THRESHOLD" env-default:"0.50"`
	MaxSuggestions     int     `env:"MAX_SUGGESTIONS" env-default:"3"`
	PhoneticEnabled    bool    `env:"PHONETIC_ENABLED" env-default:"true"`
	SuffixGuardEnabled bool    `env:"SUFFIX_GUARD_ENABLED" env-default:"true"`
	SuffixGuardPattern string  `env:"SUFFIX_GUARD_PATTERN" env-default:""`
	PhoneCountryCode   string  `env:"PHONE_COUNTRY_CODE" env-default:"33"`
	PhoneTrunkPrefix   string  `env:"PHONE_TRUNK_PREFIX" env-default:"0"`
}

// Matching builds the resolver configuration
func (c *Config) Matching() matching.Config {
	cfg := matching.DefaultConfig()
	if c.MatchThreshold > 0 {
		cfg.Threshold = c.MatchThreshold
	}
	if c.SearchThreshold > 0 {
		cfg.SearchThreshold = c.SearchThreshold
	}
	if c.MaxSuggestions > 0 {
		cfg.MaxSuggestions = c.MaxSuggestions
	}
	cfg.EnablePhonetic = c.PhoneticEnabled
	if c.SuffixGuardPattern != "" {
		cfg.SuffixGuardPattern = c.SuffixGuardPattern
	}
	if !c.SuffixGuardEnabled {
		cfg.SuffixGuardPattern = ""
	}
	return cfg
}

// Normalizer builds the text normalizer configuration
func (c *Config) Normalizer() normalizers.Config {
	cfg := normalizers.DefaultConfig()
	if c.PhoneCountryCode != "" {
		cfg.Phone = normalizers.CountryRule{
			CountryCode: c.PhoneCountryCode,
			TrunkPrefix: c.PhoneTrunkPrefix,
		}
	}
	return cfg
}

// Database builds the PostgreSQL connection configuration
func (c *Config) Database() database.ConnectionConfig {
	return database.ConnectionConfig{
		Driver:          c.DatabaseDriver,
		Host:            c.DatabaseHost,
		Port:            c.DatabasePort,
		UserName:        c.DatabaseUserName,
		Password:        c.DatabasePassword,
		Name:            c.DatabaseName,
		SSLMode:         c.DatabaseSSLMode,
		RetryCount:      c.DatabaseReconnectRetryCount,
		MaxOpenConns:    c.DatabaseMaxOpenConns,
		MaxIdleConns:    c.DatabaseMaxIdleConns,
		ConnMaxLifetime: c.DatabaseConnMaxLifetime,
	}
}

// Migration builds the schema migration configuration
func (c *Config) Migration() *database.MigrationConfig {
	return &database.MigrationConfig{
		MigrationFolderPath: c.DatabaseMigrationFolderPath,
		Version:             uint(c.DatabaseMigrationVersion),
		Force:               c.DatabaseMigrationForce,
		AutoRollback:        c.DatabaseMigrationAutoRollback,
	}
}

// Redis builds the Redis client configuration
func (c *Config) Redis() redis.Config {
	return redis.Config{
		Host:     c.RedisHost,
		Port:     c.RedisPort,
		Password: c.RedisPassword,
		DB:       c.RedisDB,
	}
}

// RateLimit builds the per tenant request budget configuration
func (c *Config) RateLimit() middleware.RateLimitConfig {
	return middleware.RateLimitConfig{
		Limit:  c.RateLimitRequests,
		Window: time.Duration(c.RateLimitWindowSeconds) * time.Second,
	}
}

// ConfirmationTTL returns how long a pending confirmation stays live
func (c *Config) ConfirmationTTL() time.Duration {
	return time.Duration(c.ConfirmationTTLHours) * time.Hour
}

// Producer builds the Kafka producer configuration
func (c *Config) Producer() kafka.ProducerConfig {
	return kafka.ProducerConfig{
		Brokers:      c.KafkaBrokers,
		Topic:        c.KafkaOutputTopic,
		BatchSize:    c.KafkaBatchSize,
		BatchTimeout: time.Duration(c.KafkaBatchTimeout) * time.Millisecond,
		RequiredAcks: c.KafkaRequiredAcks,
		Compression:  c.KafkaCompression,
	}
}
