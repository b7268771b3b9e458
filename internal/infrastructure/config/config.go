package config

import (
	"context"
	"time"

	"github.com/rs/zerolog"
	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port     string `env:"PORT,      default=8000"`
	Env      string `env:"ENV,       default=development"`
	LogLevel string `env:"LOG_LEVEL, default=info"`

	Auth      AuthConfig
	Bootstrap BootstrapConfig
	CORS      CORSConfig
	Mongo     MongoConfig
	Redis     RedisConfig
}

type AuthConfig struct {
	// JWTSecret signs every issued token. Read once at startup and handed
	// to the token codec as immutable configuration.
	JWTSecret string        `env:"JWT_SECRET"`
	TokenTTL  time.Duration `env:"TOKEN_TTL,  default=60m"`
	// BcryptCost tunes the password hashing work factor, which also bounds
	// worst-case login latency under load.
	BcryptCost        int `env:"BCRYPT_COST,         default=12"`
	PasswordMinLength int `env:"PASSWORD_MIN_LENGTH, default=8"`

	// Lockout knobs are accepted for compatibility and observability.
	// Failed logins are counted against MaxLoginAttempts within
	// LockoutDuration, but no login is ever refused.
	MaxLoginAttempts int64         `env:"MAX_LOGIN_ATTEMPTS, default=5"`
	LockoutDuration  time.Duration `env:"LOCKOUT_DURATION,   default=15m"`
	SessionTimeout   time.Duration `env:"SESSION_TIMEOUT,    default=1h"`
}

// BootstrapConfig seeds the initial administrator when the user collection
// holds no admin account yet.
type BootstrapConfig struct {
	AdminUsername string `env:"BOOTSTRAP_ADMIN_USERNAME, default=admin"`
	AdminEmail    string `env:"BOOTSTRAP_ADMIN_EMAIL,    default=admin@dynamixstudio.co"`
	AdminPassword string `env:"BOOTSTRAP_ADMIN_PASSWORD"`
}

type CORSConfig struct {
	AllowedOrigins   []string `env:"CORS_ALLOWED_ORIGINS, default=http://localhost:9002"`
	AllowCredentials bool     `env:"CORS_ALLOW_CREDENTIALS, default=true"`
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=displaydynamix"`
}

type RedisConfig struct {
	Addr string `env:"REDIS_ADDR, default=localhost:6379"`
	DB   int    `env:"REDIS_DB,   default=0"`
}

// Load reads configuration from environment variables using go-envconfig.
func Load(logger zerolog.Logger) *Config {
	var cfg Config
	if err := envconfig.Process(context.Background(), &cfg); err != nil {
		logger.Fatal().Err(err).Msg("failed to load configuration")
	}
	return &cfg
}
