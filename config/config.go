package config

import (
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/joeshaw/envdecode"
	"github.com/joho/godotenv"
)

// Config holds every setting the API reads from the environment.
type Config struct {
	Port    string `env:"PORT,default=8000"`
	Env     string `env:"APP_ENV,default=development"`
	BaseURL string `env:"BASE_URL,default=http://localhost:8000"`

	DBDriver    string `env:"DB_DRIVER,default=postgres"`
	DatabaseURL string `env:"DATABASE_URL"`
	DBPath      string `env:"DB_PATH,default=nourishnet.db"`

	JWTSecret        string        `env:"JWT_SECRET"`
	JWTRefreshSecret string        `env:"JWT_REFRESH_SECRET"`
	AccessTokenTTL   time.Duration `env:"ACCESS_TOKEN_TTL,default=15m"`
	RefreshTokenTTL  time.Duration `env:"REFRESH_TOKEN_TTL,default=168h"`
	ResetTokenTTL    time.Duration `env:"RESET_TOKEN_TTL,default=1h"`
	BcryptCost       int           `env:"BCRYPT_COST,default=10"`

	CORSOrigins string `env:"CORS_ORIGINS,default=http://localhost:5173"`

	SMTPHost  string `env:"SMTP_HOST"`
	SMTPPort  int    `env:"SMTP_PORT,default=587"`
	EmailUser string `env:"EMAIL_USER"`
	EmailPass string `env:"EMAIL_PASS"`
	EmailFrom string `env:"EMAIL_FROM"`

	RedisAddr     string `env:"REDIS_ADDR"`
	RedisPassword string `env:"REDIS_PASSWORD"`

	UploadDir      string `env:"UPLOAD_DIR,default=uploads"`
	MaxAvatarBytes int64  `env:"MAX_AVATAR_BYTES,default=2097152"`

	CloudinaryCloudName string `env:"CLOUDINARY_CLOUD_NAME"`
	CloudinaryAPIKey    string `env:"CLOUDINARY_API_KEY"`
	CloudinaryAPISecret string `env:"CLOUDINARY_API_SECRET"`

	PaymentDelay time.Duration `env:"PAYMENT_DELAY,default=1s"`

	AuthRateLimit     int           `env:"AUTH_RATE_LIMIT,default=10"`
	DonorRateLimit    int           `env:"DONOR_RATE_LIMIT,default=30"`
	PaymentRateLimit  int           `env:"PAYMENT_RATE_LIMIT,default=5"`
	ProviderRateLimit int           `env:"PROVIDER_RATE_LIMIT,default=30"`
	RateLimitWindow   time.Duration `env:"RATE_LIMIT_WINDOW,default=1m"`

	PurgeSchedule string `env:"PURGE_SCHEDULE,default=@every 15m"`

	LogLevel  string `env:"LOG_LEVEL,default=info"`
	LogFormat string `env:"LOG_FORMAT,default=json"`
}

// Load reads an optional .env file, decodes the environment and validates the result.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: Error loading .env file. Using environment variables directly.")
	}

	var cfg Config
	if err := envdecode.Decode(&cfg); err != nil && !errors.Is(err, envdecode.ErrNoTargetFieldsAreSet) {
		return nil, fmt.Errorf("decode environment: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks the settings that have no safe default.
func (c *Config) Validate() error {
	if c.JWTSecret == "" || c.JWTRefreshSecret == "" {
		return errors.New("JWT_SECRET and JWT_REFRESH_SECRET must be set")
	}
	if c.JWTSecret == c.JWTRefreshSecret {
		return errors.New("JWT_SECRET and JWT_REFRESH_SECRET must differ")
	}
	switch c.DBDriver {
	case "postgres":
		if c.DatabaseURL == "" {
			return errors.New("DATABASE_URL is not set")
		}
	case "sqlite":
	default:
		return fmt.Errorf("unsupported DB_DRIVER %q", c.DBDriver)
	}
	return nil
}

// Production reports whether cookies should be marked Secure.
func (c *Config) Production() bool {
	return strings.EqualFold(c.Env, "production")
}

// CloudinaryEnabled reports whether avatars should be uploaded to Cloudinary.
func (c *Config) CloudinaryEnabled() bool {
	return c.CloudinaryCloudName != "" && c.CloudinaryAPIKey != "" && c.CloudinaryAPISecret != ""
}
