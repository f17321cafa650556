package infra

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config represents application configuration loaded from environment variables.
type Config struct {
	AppEnv      string
	Port        string
	DatabaseURL string

	// MediaDir is the shared uploads directory: multipart uploads, generated
	// images, and rendered videos all land here, and it is served statically.
	MediaDir string

	FFmpegPath  string
	FFprobePath string

	OpenAIAPIKey     string
	OpenAIBaseURL    string
	OpenAIImageModel string

	YouTubeClientSecretFile string
	YouTubeTokenFile        string

	GeoIPDBPath string

	HTTPReadTimeout  time.Duration
	HTTPWriteTimeout time.Duration
	HTTPIdleTimeout  time.Duration

	WorkerPollInterval time.Duration
}

// LoadConfig loads configuration from environment variables and applies
// defaults where needed. The write timeout default is generous because a
// render occupies the request for its full duration.
func LoadConfig() (*Config, error) {
	cfg := &Config{
		AppEnv:                  getEnv("APP_ENV", "development"),
		Port:                    getEnv("PORT", "8080"),
		DatabaseURL:             os.Getenv("DATABASE_URL"),
		MediaDir:                getEnv("MEDIA_DIR", "uploads"),
		FFmpegPath:              getEnv("FFMPEG_PATH", "ffmpeg"),
		FFprobePath:             getEnv("FFPROBE_PATH", "ffprobe"),
		OpenAIAPIKey:            os.Getenv("OPENAI_API_KEY"),
		OpenAIBaseURL:           getEnv("OPENAI_BASE_URL", "https://api.openai.com/v1"),
		OpenAIImageModel:        getEnv("OPENAI_IMAGE_MODEL", "dall-e-3"),
		YouTubeClientSecretFile: getEnv("YOUTUBE_CLIENT_SECRET_FILE", "client_secret.json"),
		YouTubeTokenFile:        getEnv("YOUTUBE_TOKEN_FILE", "youtube_token.json"),
		GeoIPDBPath:             os.Getenv("GEOIP_DB_PATH"),
		HTTPReadTimeout:         time.Second * time.Duration(getEnvInt("HTTP_READ_TIMEOUT_SECONDS", 15)),
		HTTPWriteTimeout:        time.Second * time.Duration(getEnvInt("HTTP_WRITE_TIMEOUT_SECONDS", 600)),
		HTTPIdleTimeout:         time.Second * time.Duration(getEnvInt("HTTP_IDLE_TIMEOUT_SECONDS", 60)),
		WorkerPollInterval:      time.Second * time.Duration(getEnvInt("WORKER_POLL_INTERVAL_SECONDS", 2)),
	}

	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL is required")
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return fallback
}
