package config

import (
	"crypto"
	"fmt"
	"os"
	"time"

	"github.com/caarlos0/env/v6"
	"github.com/golang-jwt/jwt/v4"
	"github.com/joho/godotenv"
)

const jwtSigningAlgorithmEd25519 = "EdDSA"

// StoreBackend selects record store implementation
type StoreBackend string

const (
	// StorePostgres keeps customers in postgresql
	StorePostgres StoreBackend = "postgres"
	// StoreMongo keeps customers in mongodb
	StoreMongo StoreBackend = "mongo"
	// StoreMemory keeps customers in process memory
	StoreMemory StoreBackend = "memory"
)

// HTTPCfg is http server config
type HTTPCfg struct {
	Port            int           `env:"HTTP_PORT" envDefault:"8080"`
	ShutdownTimeout time.Duration `env:"HTTP_SHUTDOWN_TIMEOUT" envDefault:"10s"`
}

// MongoCfg is mongodb connection config
type MongoCfg struct {
	Host        string `env:"MONGO_HOST" envDefault:"localhost"`
	User        string `env:"MONGO_USER" envDefault:""`
	Password    string `env:"MONGO_PASSWORD" envDefault:""`
	Port        int    `env:"MONGO_PORT" envDefault:"27017"`
	Database    string `env:"MONGO_DB" envDefault:"crm"`
	MaxPoolSize int    `env:"MONGO_MAX_POOL_SIZE" envDefault:"100"`
}

// PostgresCfg is postgresql connection config
type PostgresCfg struct {
	Host        string `env:"POSTGRES_HOST" envDefault:"localhost"`
	User        string `env:"POSTGRES_USER"`
	Password    string `env:"POSTGRES_PASSWORD"`
	Database    string `env:"POSTGRES_DB"`
	SslMode     string `env:"POSTGRES_SSL_MODE" envDefault:"disable"`
	Port        int    `env:"POSTGRES_PORT" envDefault:"5432"`
	PoolMaxConn int    `env:"POSTGRES_POOL_MAX_CONN" envDefault:"100"`
}

// RedisCfg is redis connection config used for notifications
type RedisCfg struct {
	Addr     string `env:"REDIS_ADDR" envDefault:"localhost:6379"`
	Password string `env:"REDIS_PASSWORD" envDefault:""`
	DB       int    `env:"REDIS_DB" envDefault:"0"`
}

// NotificationsCfg controls desktop notifications
type NotificationsCfg struct {
	Enabled bool   `env:"NOTIFICATIONS_ENABLED" envDefault:"true"`
	Channel string `env:"NOTIFICATIONS_CHANNEL" envDefault:"crm:notifications"`
}

// GeminiCfg is inference service config
type GeminiCfg struct {
	APIKey    string `env:"GEMINI_API_KEY" envDefault:""`
	TextModel string `env:"GEMINI_TEXT_MODEL" envDefault:"gemini-2.5-flash"`
	LiveModel string `env:"GEMINI_LIVE_MODEL" envDefault:"gemini-2.5-flash-native-audio-preview-09-2025"`
}

// JwtCfg is access token config
type JwtCfg struct {
	Issuer        string        `env:"AUTH_JWT_ISSUER" envDefault:"giahoa6-crm"`
	TimeToLive    time.Duration `env:"AUTH_JWT_TIME_TO_LIVE" envDefault:"10m"`
	SigningMethod jwt.SigningMethod
	PrivateKey    crypto.PrivateKey
	PublicKey     crypto.PublicKey
}

// RefreshTokenCfg is refresh token config
type RefreshTokenCfg struct {
	MaxCount   int           `env:"AUTH_REFRESH_TOKEN_MAX_COUNT" envDefault:"5"`
	TimeToLive time.Duration `env:"AUTH_REFRESH_TOKEN_TIME_TO_LIVE" envDefault:"720h"`
}

// MfaCfg is second factor config, issuer is shown by authenticator apps
type MfaCfg struct {
	Issuer string `env:"AUTH_MFA_ISSUER" envDefault:"GIA HOA 6"`
}

// AuthCfg groups identity settings
type AuthCfg struct {
	JwtCfg          JwtCfg
	RefreshTokenCfg RefreshTokenCfg
	MfaCfg          MfaCfg
}

// Config is application config
type Config struct {
	LogLevel         string       `env:"LOG_LEVEL" envDefault:"info"`
	StoreBackend     StoreBackend `env:"STORE_BACKEND" envDefault:"postgres"`
	HTTPCfg          HTTPCfg
	MongoCfg         MongoCfg
	PostgresCfg      PostgresCfg
	RedisCfg         RedisCfg
	NotificationsCfg NotificationsCfg
	GeminiCfg        GeminiCfg
	AuthCfg          AuthCfg
}

// Build loads .env if present and parses environment variables
func Build() (Config, error) {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		return Config{}, fmt.Errorf("failed to load .env file - %w", err)
	}

	var cfg Config
	opts := env.Options{RequiredIfNoDef: true}

	if err := env.Parse(&cfg, opts); err != nil {
		return cfg, fmt.Errorf("failed to parse environment variables - %w", err)
	}

	switch cfg.StoreBackend {
	case StorePostgres, StoreMongo, StoreMemory:
	default:
		return cfg, fmt.Errorf("unknown store backend %s", cfg.StoreBackend)
	}

	cfg.AuthCfg.JwtCfg.SigningMethod = jwt.GetSigningMethod(jwtSigningAlgorithmEd25519)

	jwtPrivateKeyBytes, err := os.ReadFile(os.Getenv("AUTH_JWT_PRIVATE_KEY_FILE"))
	if err != nil {
		return cfg, fmt.Errorf("failed to read private key file for jwt - %w", err)
	}

	jwtPrivateKey, err := jwt.ParseEdPrivateKeyFromPEM(jwtPrivateKeyBytes)
	if err != nil {
		return cfg, fmt.Errorf("failed to parse private key for jwt - %w", err)
	}
	cfg.AuthCfg.JwtCfg.PrivateKey = jwtPrivateKey

	jwtPublicKeyBytes, err := os.ReadFile(os.Getenv("AUTH_JWT_PUBLIC_KEY_FILE"))
	if err != nil {
		return cfg, fmt.Errorf("failed to read public key file for jwt - %w", err)
	}

	jwtPublicKey, err := jwt.ParseEdPublicKeyFromPEM(jwtPublicKeyBytes)
	if err != nil {
		return cfg, fmt.Errorf("failed to parse public key for jwt - %w", err)
	}
	cfg.AuthCfg.JwtCfg.PublicKey = jwtPublicKey

	return cfg, nil
}
