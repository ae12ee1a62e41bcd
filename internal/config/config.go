package config

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

type ServerConfig struct {
	Host        string `envconfig:"HOST" default:"0.0.0.0"`
	Port        int    `envconfig:"PORT" default:"5003"`
	CORSOrigins string `envconfig:"CORS_ORIGINS" default:"*"`
}

type LogConfig struct {
	Level  string `envconfig:"LOG_LEVEL" default:"info"`
	Pretty bool   `envconfig:"LOG_PRETTY" default:"false"`
}

type StorageConfig struct {
	// Backend selects the identity store: "csv" or "postgres".
	Backend      string `envconfig:"STORAGE_BACKEND" default:"csv"`
	Dir          string `envconfig:"STORAGE_DIR" default:"storage"`
	CSVFile      string `envconfig:"CSV_FILE"`
	FaceImageDir string `envconfig:"FACE_IMAGE_DIR"`
	QRImageDir   string `envconfig:"QR_IMAGE_DIR"`
}

type DatabaseConfig struct {
	Host     string `envconfig:"DB_HOST" default:"127.0.0.1"`
	Port     int    `envconfig:"DB_PORT" default:"5432"`
	User     string `envconfig:"DB_USER" default:"postgres"`
	Password string `envconfig:"DB_PASSWORD" default:""`
	Name     string `envconfig:"DB_NAME" default:"apna_swastha"`
	SSLMode  string `envconfig:"DB_SSLMODE" default:"disable"`
}

type Config struct {
	Server   ServerConfig
	Log      LogConfig
	Storage  StorageConfig
	Database DatabaseConfig
}

// Load reads configuration from the environment, after loading a .env
// file when one is present.
func Load() (*Config, error) {
	// Missing .env is fine; the environment wins either way.
	_ = godotenv.Load()

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process environment config: %w", err)
	}

	if cfg.Storage.CSVFile == "" {
		cfg.Storage.CSVFile = filepath.Join(cfg.Storage.Dir, "workers.csv")
	}
	if cfg.Storage.FaceImageDir == "" {
		cfg.Storage.FaceImageDir = filepath.Join(cfg.Storage.Dir, "faces")
	}
	if cfg.Storage.QRImageDir == "" {
		cfg.Storage.QRImageDir = filepath.Join(cfg.Storage.Dir, "qrs")
	}

	switch cfg.Storage.Backend {
	case "csv", "postgres":
	default:
		return nil, fmt.Errorf("unknown storage backend %q", cfg.Storage.Backend)
	}

	return &cfg, nil
}

// CORSOriginList splits the configured origins into a slice.
func (c ServerConfig) CORSOriginList() []string {
	parts := strings.Split(c.CORSOrigins, ",")
	origins := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			origins = append(origins, p)
		}
	}
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	return origins
}
