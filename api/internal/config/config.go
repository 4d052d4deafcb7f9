package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port string

	UploadDir     string
	SpeciesNetDir string
	PythonBin     string

	MaxUploadBytes  int64
	ClassifyTimeout time.Duration

	DatabaseURL string
}

func getEnv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func getEnvInt(k string, def int) int {
	if v := os.Getenv(k); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

func Load() *Config {
	// .env is optional; real env always wins.
	_ = godotenv.Load()

	return &Config{
		Port: getEnv("PORT", "5000"),

		UploadDir:     getEnv("UPLOAD_DIR", "api_uploads"),
		SpeciesNetDir: getEnv("SPECIESNET_DIR", "cameratrapai"),
		PythonBin:     getEnv("PYTHON_BIN", "python3"),

		MaxUploadBytes:  int64(getEnvInt("MAX_UPLOAD_MB", 100)) << 20,
		ClassifyTimeout: time.Duration(getEnvInt("SPECIESNET_TIMEOUT", 0)) * time.Second,

		DatabaseURL: os.Getenv("DATABASE_URL"),
	}
}
