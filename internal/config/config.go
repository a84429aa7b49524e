package config

import (
	"errors"
	"os"
	"strconv"
	"time"
)

const defaultJWTSecret = "dev-secret-change-in-production"

type Config struct {
	Port        string
	Env         string
	DatabaseDSN string
	JWTSecret   string
	SessionTTL  time.Duration
	BcryptCost  int
	CookieName  string
	LoginPath   string

	RedisAddr       string
	RedisPassword   string
	RedisDB         int
	ProfileCacheTTL time.Duration
}

func Load() Config {
	return Config{
		Port:        getEnv("PORT", "8080"),
		Env:         getEnv("ENV", "development"),
		DatabaseDSN: getEnv("DATABASE_DSN", "root:password@tcp(127.0.0.1:3306)/tasknest?parseTime=true"),
		JWTSecret:   getEnv("JWT_SECRET", defaultJWTSecret),
		SessionTTL:  getDuration("SESSION_TTL", 24*time.Hour),
		BcryptCost:  getInt("BCRYPT_COST", 10),
		CookieName:  getEnv("COOKIE_NAME", "auth_token"),
		LoginPath:   getEnv("LOGIN_PATH", "/login"),

		RedisAddr:       getEnv("REDIS_ADDR", ""),
		RedisPassword:   getEnv("REDIS_PASSWORD", ""),
		RedisDB:         getInt("REDIS_DB", 0),
		ProfileCacheTTL: getDuration("PROFILE_CACHE_TTL", 5*time.Minute),
	}
}

// Validate reports settings the server must not start with.
func (c Config) Validate() error {
	if c.IsProduction() && c.JWTSecret == defaultJWTSecret {
		return errors.New("JWT_SECRET must be set in production environment")
	}
	if c.JWTSecret == "" {
		return errors.New("JWT_SECRET must not be empty")
	}
	if c.SessionTTL <= 0 {
		return errors.New("SESSION_TTL must be positive")
	}
	return nil
}

func (c Config) IsProduction() bool {
	return c.Env == "production"
}

// CookieSecure reports whether the session cookie is restricted to HTTPS.
func (c Config) CookieSecure() bool {
	return c.IsProduction()
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getInt(key string, fallback int) int {
	if n, err := strconv.Atoi(os.Getenv(key)); err == nil {
		return n
	}
	return fallback
}

func getDuration(key string, fallback time.Duration) time.Duration {
	if d, err := time.ParseDuration(os.Getenv(key)); err == nil {
		return d
	}
	return fallback
}
