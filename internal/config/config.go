package config

import (
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all runtime configuration. It is built once at process
// start and passed by reference into each component; business logic never
// reads the environment directly.
type Config struct {
	Server    ServerConfig
	Store     StoreConfig
	MongoDB   MongoDBConfig
	Redis     RedisConfig
	Identity  IdentityConfig
	Generator GeneratorConfig
}

type ServerConfig struct {
	Port         string
	Host         string
	Environment  string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// StoreConfig selects the record-store backend. Backend may be "mongo",
// "redis", "memory" or empty (auto: mongo when configured, then redis,
// then memory).
type StoreConfig struct {
	Backend string
	Table   string
}

type MongoDBConfig struct {
	URI      string
	Database string
	Timeout  time.Duration
}

type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
}

// IdentityConfig configures how bearer tokens are verified. IssuerURL
// enables OIDC discovery; JWTSecret alone enables the local HS256
// verifier; neither leaves all callers anonymous.
type IdentityConfig struct {
	IssuerURL string
	ClientID  string
	JWTSecret string
}

// GeneratorConfig selects template or external-provider generation.
type GeneratorConfig struct {
	Mode        string
	BaseURL     string
	APIKey      string
	Model       string
	MaxTokens   int
	Temperature float64
}

const (
	GeneratorModeTemplate = "template"
	GeneratorModeOpenAI   = "openai"
)

// LoadConfig loads configuration from environment variables and an
// optional .env file.
func LoadConfig() (*Config, error) {
	_ = godotenv.Load()

	viper.AutomaticEnv()

	viper.SetDefault("SERVER_PORT", "8080")
	viper.SetDefault("SERVER_HOST", "0.0.0.0")
	viper.SetDefault("SERVER_ENVIRONMENT", "development")
	viper.SetDefault("STORE_TABLE", "contents")
	viper.SetDefault("MONGODB_DATABASE", "contentforge")
	viper.SetDefault("MONGODB_TIMEOUT", 10)
	viper.SetDefault("GENERATOR_MODE", GeneratorModeTemplate)
	viper.SetDefault("GENERATOR_BASE_URL", "https://api.openai.com/v1")
	viper.SetDefault("GENERATOR_MODEL", "gpt-3.5-turbo-instruct")
	viper.SetDefault("GENERATOR_MAX_TOKENS", 1000)
	viper.SetDefault("GENERATOR_TEMPERATURE", 0.7)

	cfg := &Config{
		Server: ServerConfig{
			Port:         viper.GetString("SERVER_PORT"),
			Host:         viper.GetString("SERVER_HOST"),
			Environment:  viper.GetString("SERVER_ENVIRONMENT"),
			ReadTimeout:  30 * time.Second,
			WriteTimeout: 30 * time.Second,
		},
		Store: StoreConfig{
			Backend: viper.GetString("STORE_BACKEND"),
			Table:   viper.GetString("STORE_TABLE"),
		},
		MongoDB: MongoDBConfig{
			URI:      viper.GetString("MONGODB_URI"),
			Database: viper.GetString("MONGODB_DATABASE"),
			Timeout:  time.Duration(viper.GetInt("MONGODB_TIMEOUT")) * time.Second,
		},
		Redis: RedisConfig{
			Host:     viper.GetString("REDIS_HOST"),
			Port:     viper.GetString("REDIS_PORT"),
			Password: viper.GetString("REDIS_PASSWORD"),
			DB:       0,
		},
		Identity: IdentityConfig{
			IssuerURL: viper.GetString("IDENTITY_ISSUER_URL"),
			ClientID:  viper.GetString("IDENTITY_CLIENT_ID"),
			JWTSecret: viper.GetString("IDENTITY_JWT_SECRET"),
		},
		Generator: GeneratorConfig{
			Mode:        viper.GetString("GENERATOR_MODE"),
			BaseURL:     viper.GetString("GENERATOR_BASE_URL"),
			APIKey:      viper.GetString("GENERATOR_API_KEY"),
			Model:       viper.GetString("GENERATOR_MODEL"),
			MaxTokens:   viper.GetInt("GENERATOR_MAX_TOKENS"),
			Temperature: viper.GetFloat64("GENERATOR_TEMPERATURE"),
		},
	}

	return cfg, nil
}
