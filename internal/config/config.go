package config

import (
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// envPrefix namespaces every environment variable this tool reads.
const envPrefix = "SPEECH2TEXT"

// Config holds the full application configuration.
type Config struct {
	// Endpoint is the transcription service URL receiving the multipart
	// upload.
	Endpoint string
	// UploadTimeout bounds one upload round trip at the transport level.
	UploadTimeout time.Duration
	// APIRateLimitPerMin paces requests across a batch.
	APIRateLimitPerMin int
	// MaxConcurrent bounds parallel uploads in batch mode.
	MaxConcurrent int
}

// Default returns a Config with hardcoded defaults matching the original
// deployment.
func Default() *Config {
	return &Config{
		Endpoint:           "http://localhost:8000/tools/transcribe_auto",
		UploadTimeout:      30 * time.Minute,
		APIRateLimitPerMin: 30,
		MaxConcurrent:      3,
	}
}

// Load layers a .env file and SPEECH2TEXT_* environment variables over the
// defaults. A missing .env is fine; explicit process environment still
// applies.
func Load() *Config {
	cfg := Default()

	_ = godotenv.Load()

	v := viper.New()
	v.SetEnvPrefix(envPrefix)
	v.AutomaticEnv()
	v.SetDefault("endpoint", cfg.Endpoint)
	v.SetDefault("upload_timeout", cfg.UploadTimeout)
	v.SetDefault("rate_limit_per_min", cfg.APIRateLimitPerMin)
	v.SetDefault("max_concurrent", cfg.MaxConcurrent)

	cfg.Endpoint = v.GetString("endpoint")
	cfg.UploadTimeout = v.GetDuration("upload_timeout")
	cfg.APIRateLimitPerMin = v.GetInt("rate_limit_per_min")
	cfg.MaxConcurrent = v.GetInt("max_concurrent")
	return cfg
}
