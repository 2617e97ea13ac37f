package config

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port      string `env:"PORT,      default=8080"`
	Env       string `env:"ENV,       default=development"`
	JWTSecret string `env:"JWT_SECRET"`
	LogLevel  string `env:"LOG_LEVEL, default=info"`

	// Token validity windows, one explicit policy per role.
	AdminTokenTTL time.Duration `env:"ADMIN_TOKEN_TTL, default=1h"`
	UserTokenTTL  time.Duration `env:"USER_TOKEN_TTL,  default=168h"`

	// Page-surface session cookie and the login page the edge guard
	// redirects unauthenticated navigation to.
	AdminCookieName string `env:"ADMIN_COOKIE_NAME, default=admin-token"`
	LoginPath       string `env:"LOGIN_PATH,        default=/login"`

	AuditWorkers   int           `env:"AUDIT_WORKERS,    default=4"`
	NoticeCacheTTL time.Duration `env:"NOTICE_CACHE_TTL, default=1m"`

	Mongo MongoConfig
	Redis RedisConfig
	S3    S3Config
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=exam_portal"`
}

type RedisConfig struct {
	Addr string `env:"REDIS_ADDR, default=localhost:6379"`
	DB   int    `env:"REDIS_DB,   default=0"`
}

type S3Config struct {
	Endpoint      string `env:"S3_ENDPOINT"`
	Region        string `env:"S3_REGION,     default=us-east-1"`
	Bucket        string `env:"S3_BUCKET,     default=exam-portal-uploads"`
	AccessKey     string `env:"S3_ACCESS_KEY"`
	SecretKey     string `env:"S3_SECRET_KEY"`
	PublicBaseURL string `env:"S3_PUBLIC_BASE_URL, default=http://localhost:9000/exam-portal-uploads"`
}

// Load reads configuration from environment variables using go-envconfig.
func Load() *Config {
	var cfg Config
	if err := envconfig.Process(context.Background(), &cfg); err != nil {
		panic(fmt.Sprintf("config: failed to load configuration: %v", err))
	}
	if cfg.AdminTokenTTL < 0 || cfg.UserTokenTTL < 0 {
		panic(fmt.Sprintf("config: token TTLs must be positive (admin=%s, user=%s)",
			cfg.AdminTokenTTL, cfg.UserTokenTTL))
	}
	return &cfg
}
