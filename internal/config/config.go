package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	// Supabase
	SupabaseURL            string
	SupabasePublishableKey string
	SupabaseServiceRoleKey string
	SupabaseJWTSecret      string
	SupabaseStorageBucket  string

	// Database
	DatabaseURL         string
	StoreBackend        string
	OrderedQueryTimeout time.Duration

	// Gallery
	GalleryBackend string
	GalleryDir     string
	RedisAddr      string
	RedisPassword  string
	RedisDB        int
	SQLitePath     string

	// Image generation
	ImageGenURL     string
	ImageGenTimeout time.Duration

	// Server
	Port        string
	Environment string
	BaseURL     string
	CORSOrigins []string
	LogLevel    string
}

const (
	StoreBackendSupabase = "supabase"
	StoreBackendPostgres = "postgres"
	StoreBackendMemory   = "memory"

	GalleryBackendFile   = "file"
	GalleryBackendRedis  = "redis"
	GalleryBackendSQLite = "sqlite"
)

func defaults(v *viper.Viper) {
	v.SetDefault("supabase_storage_bucket", "generated-images")
	v.SetDefault("store_backend", StoreBackendSupabase)
	v.SetDefault("ordered_query_timeout", "5s")
	v.SetDefault("gallery_backend", GalleryBackendFile)
	v.SetDefault("gallery_dir", "data/gallery")
	v.SetDefault("redis_addr", "localhost:6379")
	v.SetDefault("redis_db", 0)
	v.SetDefault("sqlite_path", "data/gallery.db")
	v.SetDefault("imagegen_timeout", "120s")
	v.SetDefault("port", "8080")
	v.SetDefault("environment", "development")
	v.SetDefault("base_url", "http://localhost:8080")
	v.SetDefault("cors_origins", "http://localhost:3000")
	v.SetDefault("log_level", "info")
}

// Load reads configuration from the environment. When CONFIG_FILE is set, the
// YAML file it names provides values the environment does not override.
func Load() (*Config, error) {
	v := viper.New()
	defaults(v)
	v.AutomaticEnv()

	if path := os.Getenv("CONFIG_FILE"); path != "" {
		v.SetConfigFile(path)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
	}

	cfg := &Config{
		SupabaseURL:            strings.TrimSuffix(v.GetString("supabase_url"), "/"),
		SupabasePublishableKey: v.GetString("supabase_publishable_key"),
		SupabaseServiceRoleKey: v.GetString("supabase_service_role_key"),
		SupabaseJWTSecret:      v.GetString("supabase_jwt_secret"),
		SupabaseStorageBucket:  v.GetString("supabase_storage_bucket"),

		DatabaseURL:         v.GetString("database_url"),
		StoreBackend:        strings.ToLower(v.GetString("store_backend")),
		OrderedQueryTimeout: v.GetDuration("ordered_query_timeout"),

		GalleryBackend: strings.ToLower(v.GetString("gallery_backend")),
		GalleryDir:     v.GetString("gallery_dir"),
		RedisAddr:      v.GetString("redis_addr"),
		RedisPassword:  v.GetString("redis_password"),
		RedisDB:        v.GetInt("redis_db"),
		SQLitePath:     v.GetString("sqlite_path"),

		ImageGenURL:     v.GetString("imagegen_url"),
		ImageGenTimeout: v.GetDuration("imagegen_timeout"),

		Port:        v.GetString("port"),
		Environment: v.GetString("environment"),
		BaseURL:     v.GetString("base_url"),
		CORSOrigins: splitList(v.GetString("cors_origins")),
		LogLevel:    v.GetString("log_level"),
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

func (c *Config) Validate() error {
	if c.SupabaseURL == "" {
		return fmt.Errorf("SUPABASE_URL is required")
	}
	if c.SupabasePublishableKey == "" {
		return fmt.Errorf("SUPABASE_PUBLISHABLE_KEY is required")
	}
	if c.SupabaseJWTSecret == "" {
		return fmt.Errorf("SUPABASE_JWT_SECRET is required")
	}
	if c.ImageGenURL == "" {
		return fmt.Errorf("IMAGEGEN_URL is required")
	}

	switch c.StoreBackend {
	case StoreBackendSupabase, StoreBackendMemory:
	case StoreBackendPostgres:
		if c.DatabaseURL == "" {
			return fmt.Errorf("DATABASE_URL is required for the postgres store backend")
		}
	default:
		return fmt.Errorf("unknown STORE_BACKEND %q", c.StoreBackend)
	}

	switch c.GalleryBackend {
	case GalleryBackendFile, GalleryBackendRedis, GalleryBackendSQLite:
	default:
		return fmt.Errorf("unknown GALLERY_BACKEND %q", c.GalleryBackend)
	}
	return nil
}

// DataAPIKey is the key used for server-side table access. The service role
// key is preferred since ownership is enforced by the API.
func (c *Config) DataAPIKey() string {
	if c.SupabaseServiceRoleKey != "" {
		return c.SupabaseServiceRoleKey
	}
	return c.SupabasePublishableKey
}

func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
