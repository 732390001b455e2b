package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

type Config struct {
	APIPort        string        `env:"API_PORT" envDefault:"8080"`
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT" envDefault:"60s"`

	// JWTSecret signs and verifies session tokens and has no default.
	JWTSecret string `env:"JWT_SECRET,required,notEmpty"`
	// Zero means issued tokens carry no exp claim.
	JWTExpHours int `env:"JWT_EXPIRATION_HOURS" envDefault:"0"`
	BcryptCost  int `env:"BCRYPT_COST" envDefault:"10"`

	DatabaseURL string `env:"DATABASE_URL"`
	DBHost      string `env:"DB_HOST" envDefault:"localhost"`
	DBPort      string `env:"DB_PORT" envDefault:"5432"`
	DBUser      string `env:"DB_USER" envDefault:"user"`
	DBPassword  string `env:"DB_PASSWORD" envDefault:"password"`
	DBName      string `env:"DB_NAME" envDefault:"faculty_db"`
	DBSslMode   string `env:"DB_SSLMODE" envDefault:"disable"`

	RedisAddr     string `env:"REDIS_ADDR" envDefault:"localhost:6379"`
	RedisPassword string `env:"REDIS_PASSWORD"`
	RedisDB       int    `env:"REDIS_DB" envDefault:"0"`

	AuditEnabled   bool   `env:"AUDIT_ENABLED" envDefault:"true"`
	AuditQueueName string `env:"AUDIT_QUEUE_NAME" envDefault:"auth_events_queue"`

	CORSAllowedOrigins []string `env:"CORS_ALLOWED_ORIGINS" envSeparator:"," envDefault:"*"`

	LogLevel  string `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat string `env:"LOG_FORMAT" envDefault:"json"`
}

// Load reads an optional .env file and then parses the process environment.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Debug().Msg("No .env file found, relying on environment variables")
	}
	return Parse()
}

// Parse builds a Config from the current environment only.
func Parse() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("config: failed to parse environment variables: %w", err)
	}
	if cfg.JWTExpHours < 0 {
		return nil, fmt.Errorf("config: JWT_EXPIRATION_HOURS must not be negative, got %d", cfg.JWTExpHours)
	}
	return cfg, nil
}

func (c *Config) JWTKey() []byte {
	return []byte(c.JWTSecret)
}

// JWTExp is the token lifetime, zero when tokens never expire.
func (c *Config) JWTExp() time.Duration {
	return time.Duration(c.JWTExpHours) * time.Hour
}

// DBConnStr prefers DATABASE_URL and falls back to the discrete DB_* settings.
func (c *Config) DBConnStr() string {
	if c.DatabaseURL != "" {
		return c.DatabaseURL
	}
	return "host=" + c.DBHost +
		" port=" + c.DBPort +
		" user=" + c.DBUser +
		" password=" + c.DBPassword +
		" dbname=" + c.DBName +
		" sslmode=" + c.DBSslMode
}
