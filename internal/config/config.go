package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	Database DatabaseConfig
	JWT      JWTConfig
	Server   ServerConfig
	CORS     CORSConfig
	Auth     AuthConfig
}

type DatabaseConfig struct {
	Driver          string
	Host            string
	Port            string
	User            string
	Password        string
	Database        string
	MaxIdleConns    int
	MaxOpenConns    int
	ConnMaxLifetime time.Duration
	// LobCharset is the declared encoding of streamed large-text columns.
	LobCharset string
}

type JWTConfig struct {
	AccessSecret      string
	AccessTokenExpiry time.Duration
}

type ServerConfig struct {
	Port     string
	GinMode  string
	Env      string
	LogLevel string
}

type CORSConfig struct {
	AllowedOrigins []string
}

// AuthConfig controls whether bearer tokens are required. With auth
// disabled the service runs single-tenant as DefaultStudentID.
type AuthConfig struct {
	Enabled          bool
	DefaultStudentID int64
}

// LoadConfig reads .env (if present) and the process environment. Values
// already bound on v (for example from command-line flags) take precedence.
func LoadConfig(v *viper.Viper) (*Config, error) {
	// Load .env file if it exists
	_ = godotenv.Load()

	if v == nil {
		v = viper.New()
	}
	v.AutomaticEnv()

	v.SetDefault("DB_DRIVER", "mysql")
	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", "3306")
	v.SetDefault("DB_USER", "pa_rot")
	v.SetDefault("DB_PASSWORD", "")
	v.SetDefault("DB_NAME", "rotations")
	v.SetDefault("DB_MAX_IDLE_CONNS", 10)
	v.SetDefault("DB_MAX_OPEN_CONNS", 50)
	v.SetDefault("DB_CONN_MAX_LIFETIME", "1h")
	v.SetDefault("DB_LOB_CHARSET", "utf-8")
	v.SetDefault("PORT", "3000")
	v.SetDefault("GIN_MODE", "debug")
	v.SetDefault("ENV", "development")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("ALLOWED_ORIGINS", "http://localhost:4200,http://localhost:3000")
	v.SetDefault("AUTH_ENABLED", false)
	v.SetDefault("JWT_ACCESS_SECRET", "")
	v.SetDefault("ACCESS_TOKEN_EXPIRY", "8h")
	v.SetDefault("DEFAULT_STUDENT_ID", 522)

	cfg := &Config{
		Database: DatabaseConfig{
			Driver:          strings.ToLower(v.GetString("DB_DRIVER")),
			Host:            v.GetString("DB_HOST"),
			Port:            v.GetString("DB_PORT"),
			User:            v.GetString("DB_USER"),
			Password:        v.GetString("DB_PASSWORD"),
			Database:        v.GetString("DB_NAME"),
			MaxIdleConns:    v.GetInt("DB_MAX_IDLE_CONNS"),
			MaxOpenConns:    v.GetInt("DB_MAX_OPEN_CONNS"),
			ConnMaxLifetime: parseDuration(v.GetString("DB_CONN_MAX_LIFETIME"), time.Hour),
			LobCharset:      v.GetString("DB_LOB_CHARSET"),
		},
		JWT: JWTConfig{
			AccessSecret:      v.GetString("JWT_ACCESS_SECRET"),
			AccessTokenExpiry: parseDuration(v.GetString("ACCESS_TOKEN_EXPIRY"), 8*time.Hour),
		},
		Server: ServerConfig{
			Port:     v.GetString("PORT"),
			GinMode:  v.GetString("GIN_MODE"),
			Env:      v.GetString("ENV"),
			LogLevel: v.GetString("LOG_LEVEL"),
		},
		CORS: CORSConfig{
			AllowedOrigins: parseOrigins(v.GetString("ALLOWED_ORIGINS")),
		},
		Auth: AuthConfig{
			Enabled:          v.GetBool("AUTH_ENABLED"),
			DefaultStudentID: v.GetInt64("DEFAULT_STUDENT_ID"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate rejects combinations the server cannot start with.
func (c *Config) Validate() error {
	switch c.Database.Driver {
	case "mysql", "postgres":
	default:
		return fmt.Errorf("unsupported DB_DRIVER %q (want mysql or postgres)", c.Database.Driver)
	}
	if c.Auth.Enabled && c.JWT.AccessSecret == "" {
		return fmt.Errorf("JWT_ACCESS_SECRET is required when AUTH_ENABLED is true")
	}
	if !c.Auth.Enabled && c.Auth.DefaultStudentID <= 0 {
		return fmt.Errorf("DEFAULT_STUDENT_ID must be positive, got %d", c.Auth.DefaultStudentID)
	}
	return nil
}

func parseDuration(s string, fallback time.Duration) time.Duration {
	duration, err := time.ParseDuration(s)
	if err != nil {
		fmt.Printf("Warning: Invalid duration format '%s', using default\n", s)
		return fallback
	}
	return duration
}

func parseOrigins(s string) []string {
	origins := []string{}
	for _, o := range strings.Split(s, ",") {
		if o = strings.TrimSpace(o); o != "" {
			origins = append(origins, o)
		}
	}
	return origins
}
