// Package config reads render settings from an optional .env file and the environment.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/joho/godotenv"

	"github.com/df07/go-softraycast/pkg/export"
)

// Config holds settings shared by the CLI and the web server.
// Command line flags override these values.
type Config struct {
	Width     int    // Canvas width in pixels
	Height    int    // Canvas height in pixels
	MaxDepth  int    // Reflection bounce limit; negative uses the scene's own value
	Scene     string // Built-in scene name or path to a JSON scene file
	Output    string // Output image path
	ScenesDir string // Directory searched for JSON scene files
	Port      int    // Web server port
	S3        export.S3Config
}

// Defaults returns the configuration used when nothing is set
func Defaults() Config {
	return Config{
		Width:     400,
		Height:    400,
		MaxDepth:  -1,
		Scene:     "default",
		Output:    "output/render.png",
		ScenesDir: "scenes",
		Port:      8080,
		S3: export.S3Config{
			Region: "us-east-1",
		},
	}
}

// Helper to get environment variables with a default value.
func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) (int, error) {
	value, ok := os.LookupEnv(key)
	if !ok || value == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return fallback, fmt.Errorf("%s: %w", key, err)
	}
	return n, nil
}

// Load reads dir/.env if it exists, without overriding variables already set,
// then builds a Config from SOFTRAY_* variables on top of Defaults
func Load(dir string) (Config, error) {
	envFile := filepath.Join(dir, ".env")
	if _, err := os.Stat(envFile); err == nil {
		if err := godotenv.Load(envFile); err != nil {
			return Config{}, fmt.Errorf("failed to load %s: %w", envFile, err)
		}
	}

	cfg := Defaults()
	var err error

	if cfg.Width, err = getEnvInt("SOFTRAY_WIDTH", cfg.Width); err != nil {
		return Config{}, err
	}
	if cfg.Height, err = getEnvInt("SOFTRAY_HEIGHT", cfg.Height); err != nil {
		return Config{}, err
	}
	if cfg.MaxDepth, err = getEnvInt("SOFTRAY_MAX_DEPTH", cfg.MaxDepth); err != nil {
		return Config{}, err
	}
	if cfg.Port, err = getEnvInt("SOFTRAY_PORT", cfg.Port); err != nil {
		return Config{}, err
	}

	cfg.Scene = getEnv("SOFTRAY_SCENE", cfg.Scene)
	cfg.Output = getEnv("SOFTRAY_OUTPUT", cfg.Output)
	cfg.ScenesDir = getEnv("SOFTRAY_SCENES_DIR", cfg.ScenesDir)

	cfg.S3 = export.S3Config{
		AccessKey: os.Getenv("SOFTRAY_S3_ACCESS_KEY"),
		SecretKey: os.Getenv("SOFTRAY_S3_SECRET_KEY"),
		Endpoint:  os.Getenv("SOFTRAY_S3_ENDPOINT"),
		Region:    getEnv("SOFTRAY_S3_REGION", cfg.S3.Region),
		Bucket:    os.Getenv("SOFTRAY_S3_BUCKET"),
		ACL:       os.Getenv("SOFTRAY_S3_ACL"),
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks the numeric settings
func (c Config) Validate() error {
	if c.Width <= 0 || c.Height <= 0 {
		return fmt.Errorf("image size %dx%d must be positive", c.Width, c.Height)
	}
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("port %d out of range", c.Port)
	}
	return nil
}

// UploadEnabled reports whether an S3 bucket is configured
func (c Config) UploadEnabled() bool {
	return c.S3.Bucket != ""
}
