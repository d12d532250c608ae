package config

import (
	"os"

	"github.com/joho/godotenv"
)

type Config struct {
	DataDir string
	DBPath  string
}

// Load reads configuration from the environment. A .env file in the working
// directory is honored when present; missing keys fall back to defaults.
func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		DataDir: getEnv("DATA_DIR", "data"),
		DBPath:  getEnv("DB_PATH", "database/ecom.db"),
	}
}

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}
