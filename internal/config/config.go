package config

import (
	"os"
)

// Config collects the environment-driven settings. STORE_BACKEND picks
// one persistence backend per deployment: "mongo", "sqlite", or "file"
// (flat-file orders alongside the sqlite catalog).
type Config struct {
	ServerPort string
	Backend    string
	MongoURI   string
	MongoDB    string
	SQLitePath string
	OrdersFile string
	StaticDir  string
}

// Load reads the configuration from the environment, falling back to
// local-development defaults.
func Load() *Config {
	return &Config{
		ServerPort: getEnvOrDefault("PORT", "5000"),
		Backend:    getEnvOrDefault("STORE_BACKEND", "sqlite"),
		MongoURI:   getEnvOrDefault("MONGO_URI", "mongodb://localhost:27017"),
		MongoDB:    getEnvOrDefault("MONGO_DB", "shopDB"),
		SQLitePath: getEnvOrDefault("SQLITE_PATH", "shop.db"),
		OrdersFile: getEnvOrDefault("ORDERS_FILE", "orders.json"),
		StaticDir:  getEnvOrDefault("STATIC_DIR", ""),
	}
}

func getEnvOrDefault(key, def string) string {
	val := os.Getenv(key)
	if val == "" {
		return def
	}
	return val
}
