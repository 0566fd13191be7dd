package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// WebSocket identification modes.
const (
	AuthModeTrusted  = "trusted"
	AuthModeJWT      = "jwt"
	AuthModeFirebase = "firebase"
)

type Config struct {
	Port                    string        `yaml:"port"`
	Env                     string        `yaml:"env"`
	LogLevel                string        `yaml:"logLevel"`
	PostgresConnStr         string        `yaml:"postgresConnStr"`
	MongoURI                string        `yaml:"mongoUri"`
	MongoDatabase           string        `yaml:"mongoDatabase"`
	FanoutLimit             int           `yaml:"fanoutLimit"`
	WSAuthMode              string        `yaml:"wsAuthMode"`
	JWTSecret               string        `yaml:"jwtSecret"`
	FirebaseCredentialsPath string        `yaml:"firebaseCredentialsPath"`
	StoreTimeout            time.Duration `yaml:"storeTimeout"`
	AllowedOrigins          []string      `yaml:"allowedOrigins"`
}

// Load reads the configuration. Sources, lowest precedence first: built-in
// defaults, the YAML file named by CONFIG_FILE, environment variables (a
// .env file is loaded into the environment when present).
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		Port:           "4000",
		Env:            "development",
		LogLevel:       "info",
		MongoDatabase:  "contenthub",
		FanoutLimit:    5,
		WSAuthMode:     AuthModeTrusted,
		StoreTimeout:   10 * time.Second,
		AllowedOrigins: []string{"http://localhost:3000"},
	}

	if path := os.Getenv("CONFIG_FILE"); path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config file: %w", err)
		}
	}

	cfg.Port = getEnv("PORT", cfg.Port)
	cfg.Env = getEnv("ENV", cfg.Env)
	cfg.LogLevel = getEnv("LOG_LEVEL", cfg.LogLevel)
	cfg.PostgresConnStr = getEnv("POSTGRES_CONN_STR", cfg.PostgresConnStr)
	cfg.MongoURI = getEnv("MONGO_URI", cfg.MongoURI)
	cfg.MongoDatabase = getEnv("MONGO_DATABASE", cfg.MongoDatabase)
	cfg.WSAuthMode = getEnv("WS_AUTH_MODE", cfg.WSAuthMode)
	cfg.JWTSecret = getEnv("JWT_SECRET", cfg.JWTSecret)
	cfg.FirebaseCredentialsPath = getEnv("FIREBASE_CREDENTIALS_PATH", cfg.FirebaseCredentialsPath)

	if v := os.Getenv("FANOUT_LIMIT"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("FANOUT_LIMIT: %w", err)
		}
		cfg.FanoutLimit = n
	}
	if v := os.Getenv("STORE_TIMEOUT"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return nil, fmt.Errorf("STORE_TIMEOUT: %w", err)
		}
		cfg.StoreTimeout = d
	}
	if v := os.Getenv("ALLOWED_ORIGINS"); v != "" {
		cfg.AllowedOrigins = splitList(v)
	}

	return cfg, cfg.validate()
}

func (c *Config) validate() error {
	if c.PostgresConnStr == "" {
		return fmt.Errorf("POSTGRES_CONN_STR environment variable not set")
	}
	if c.MongoURI == "" {
		return fmt.Errorf("MONGO_URI environment variable not set")
	}
	if c.FanoutLimit <= 0 {
		return fmt.Errorf("fanout limit must be positive, got %d", c.FanoutLimit)
	}
	switch c.WSAuthMode {
	case AuthModeTrusted:
	case AuthModeJWT:
		if c.JWTSecret == "" {
			return fmt.Errorf("JWT_SECRET is required when WS_AUTH_MODE=jwt")
		}
	case AuthModeFirebase:
		if c.FirebaseCredentialsPath == "" {
			return fmt.Errorf("FIREBASE_CREDENTIALS_PATH is required when WS_AUTH_MODE=firebase")
		}
	default:
		return fmt.Errorf("unknown WS_AUTH_MODE %q", c.WSAuthMode)
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func splitList(v string) []string {
	var out []string
	for _, part := range strings.Split(v, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
