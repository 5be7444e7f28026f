package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds runtime configuration values for the API service.
type Config struct {
	AppName                string
	AppEnv                 string
	AppPort                string
	DatabaseURL            string
	RedisURL               string
	NATSURL                string
	NATSAuditSubject       string
	JWTSecret              string
	JWTTTL                 time.Duration
	CanonicalAdminHost     string
	JobToken               string
	SportsAPIBaseURL       string
	SportsTeam             string
	ScheduleCacheTTL       time.Duration
	PublicCacheTTL         time.Duration
	PingTimeout            time.Duration
	PingSweepCron          string
	ScheduleSyncCron       string
	UploadMaxSizeMB        int
	CloudinaryCloudName    string
	CloudinaryAPIKey       string
	CloudinaryAPISecret    string
	CloudinaryUploadFolder string
}

// HTTPAddress returns the address the HTTP server should listen on.
func (c Config) HTTPAddress() string {
	if strings.HasPrefix(c.AppPort, ":") {
		return c.AppPort
	}

	return fmt.Sprintf(":%s", c.AppPort)
}

// Load reads configuration values from environment variables and optional .env file.
func Load() (Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetEnvPrefix("TABLESIDE")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	v.SetDefault("app.name", "Tableside API")
	v.SetDefault("app.env", "development")
	v.SetDefault("app.port", "8080")
	v.SetDefault("nats.audit_subject", "tableside.audit")
	v.SetDefault("jwt.ttl", "12h")
	v.SetDefault("sports.api_base_url", "https://site.api.espn.com/apis/site/v2/sports/football/nfl")
	v.SetDefault("schedule.cache_ttl", "6h")
	v.SetDefault("public.cache_ttl", "5m")
	v.SetDefault("ping.timeout", "10s")
	v.SetDefault("ping.sweep_cron", "*/15 * * * *")
	v.SetDefault("schedule.sync_cron", "0 6 * * *")
	v.SetDefault("upload.max_size_mb", 10)
	v.SetDefault("cloudinary.folder", "tableside/content")

	jwtTTL, err := time.ParseDuration(v.GetString("jwt.ttl"))
	if err != nil {
		return Config{}, fmt.Errorf("invalid jwt ttl: %w", err)
	}

	scheduleTTL, err := time.ParseDuration(v.GetString("schedule.cache_ttl"))
	if err != nil {
		return Config{}, fmt.Errorf("invalid schedule cache ttl: %w", err)
	}

	publicTTL, err := time.ParseDuration(v.GetString("public.cache_ttl"))
	if err != nil {
		return Config{}, fmt.Errorf("invalid public cache ttl: %w", err)
	}

	pingTimeout, err := time.ParseDuration(v.GetString("ping.timeout"))
	if err != nil {
		return Config{}, fmt.Errorf("invalid ping timeout: %w", err)
	}

	cfg := Config{
		AppName:                v.GetString("app.name"),
		AppEnv:                 v.GetString("app.env"),
		AppPort:                v.GetString("app.port"),
		DatabaseURL:            v.GetString("database.url"),
		RedisURL:               v.GetString("redis.url"),
		NATSURL:                v.GetString("nats.url"),
		NATSAuditSubject:       v.GetString("nats.audit_subject"),
		JWTSecret:              v.GetString("jwt.secret"),
		JWTTTL:                 jwtTTL,
		CanonicalAdminHost:     strings.ToLower(strings.TrimSpace(v.GetString("admin.canonical_host"))),
		JobToken:               v.GetString("job.token"),
		SportsAPIBaseURL:       v.GetString("sports.api_base_url"),
		SportsTeam:             v.GetString("sports.team"),
		ScheduleCacheTTL:       scheduleTTL,
		PublicCacheTTL:         publicTTL,
		PingTimeout:            pingTimeout,
		PingSweepCron:          v.GetString("ping.sweep_cron"),
		ScheduleSyncCron:       v.GetString("schedule.sync_cron"),
		UploadMaxSizeMB:        v.GetInt("upload.max_size_mb"),
		CloudinaryCloudName:    v.GetString("cloudinary.cloud_name"),
		CloudinaryAPIKey:       v.GetString("cloudinary.api_key"),
		CloudinaryAPISecret:    v.GetString("cloudinary.api_secret"),
		CloudinaryUploadFolder: v.GetString("cloudinary.folder"),
	}

	if cfg.JWTSecret == "" {
		return Config{}, fmt.Errorf("jwt secret must be provided")
	}

	if cfg.UploadMaxSizeMB <= 0 {
		cfg.UploadMaxSizeMB = 10
	}

	return cfg, nil
}
