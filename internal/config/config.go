package config

import (
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/labstack/gommon/log"
)

// Config holds the application configuration
type Config struct {
	Port             string
	Environment      string
	CropDataPath     string
	RainfallDataPath string
	LogLevel         string
}

// LoadEnvFiles loads .env style files into the environment. Missing files are
// not an error; variables already set win.
func LoadEnvFiles(paths ...string) {
	if len(paths) == 0 {
		paths = []string{".env"}
	}
	for _, p := range paths {
		if err := godotenv.Load(p); err != nil {
			log.Debugf("env file %s not loaded: %v", p, err)
		}
	}
}

// LoadConfig loads configuration from environment variables
func LoadConfig() *Config {
	return &Config{
		Port:             getEnv("PORT", "8080"),
		Environment:      getEnv("ENVIRONMENT", "development"),
		CropDataPath:     getEnv("CROP_DATA_PATH", "data/ICRISAT-District Level Data.csv"),
		RainfallDataPath: getEnv("RAINFALL_DATA_PATH", "data/rainfall.csv"),
		LogLevel:         getEnv("LOG_LEVEL", "info"),
	}
}

// Addr is the listen address for the HTTP server.
func (c *Config) Addr() string {
	if strings.Contains(c.Port, ":") {
		return c.Port
	}
	return ":" + c.Port
}

// Level maps LogLevel onto the echo logger levels. Unknown names mean INFO.
func (c *Config) Level() log.Lvl {
	switch strings.ToLower(c.LogLevel) {
	case "debug":
		return log.DEBUG
	case "warn", "warning":
		return log.WARN
	case "error":
		return log.ERROR
	case "off":
		return log.OFF
	}
	return log.INFO
}

// getEnv gets an environment variable with a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
