// config.go - Handles configuration for the project

package config // Declares the package name

import ( // Import required packages
	"os"      // For reading environment variables
	"strconv" // For numeric env values
	"strings" // For list env values
	"time"    // For durations (token TTL, store timeout)

	"github.com/joho/godotenv" // Loads a local .env file into the environment
)

type Config struct { // Config struct holds all configuration values
	Port string // HTTP listen port

	DBDriver    string // "sqlite" or "postgres"
	DBPath      string // Path to the SQLite database file
	DatabaseURL string // Postgres DSN (used when DBDriver is postgres)

	JWTSecret    string        // Secret key for JWT signing and verification
	TokenTTL     time.Duration // How long an issued token stays valid
	StoreTimeout time.Duration // Upper bound for any single store call
	BcryptCost   int           // Cost passed to bcrypt when hashing passwords

	RedisAddr     string // Redis address for the token denylist; empty disables logout
	RedisPassword string
	RedisDB       int

	CORSOrigins []string // Allowed origins; "*" allows all
	LogLevel    string   // logrus level name

	CreateAdmin   bool   // Seed a bootstrap admin when none exists
	AdminEmail    string // Bootstrap admin email
	AdminPassword string // Bootstrap admin password
	AdminName     string // Bootstrap admin full name
}

// Load reads config from environment variables (and .env if present) or uses defaults.
func Load() *Config {
	_ = godotenv.Load() // A missing .env file is fine; real env vars still apply

	return &Config{
		Port:          getEnv("PORT", "8080"),
		DBDriver:      getEnv("DB_DRIVER", "sqlite"),
		DBPath:        getEnv("DB_PATH", "data.db"),
		DatabaseURL:   getEnv("DATABASE_URL", ""),
		JWTSecret:     getEnv("JWT_SECRET", "supersecret"),
		TokenTTL:      getDuration("TOKEN_TTL", 48*time.Hour),
		StoreTimeout:  getDuration("STORE_TIMEOUT", 5*time.Second),
		BcryptCost:    getInt("BCRYPT_COST", 10),
		RedisAddr:     getEnv("REDIS_ADDR", ""),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),
		RedisDB:       getInt("REDIS_DB", 0),
		CORSOrigins:   getList("CORS_ORIGINS", []string{"*"}),
		LogLevel:      getEnv("LOG_LEVEL", "info"),
		CreateAdmin:   getBool("CREATE_ADMIN", false),
		AdminEmail:    getEnv("ADMIN_EMAIL", "admin@dms.local"),
		AdminPassword: getEnv("ADMIN_PASSWORD", ""),
		AdminName:     getEnv("ADMIN_NAME", "Administrator"),
	}
}

func getEnv(key, fallback string) string { // Helper to get env var or fallback
	if value := os.Getenv(key); value != "" { // If env var is set, use it
		return value
	}
	return fallback // Otherwise, use fallback value
}

func getInt(key string, fallback int) int {
	if n, err := strconv.Atoi(os.Getenv(key)); err == nil {
		return n
	}
	return fallback
}

func getBool(key string, fallback bool) bool {
	if b, err := strconv.ParseBool(os.Getenv(key)); err == nil {
		return b
	}
	return fallback
}

func getDuration(key string, fallback time.Duration) time.Duration {
	if d, err := time.ParseDuration(os.Getenv(key)); err == nil && d > 0 {
		return d
	}
	return fallback
}

func getList(key string, fallback []string) []string {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	if len(out) == 0 {
		return fallback
	}
	return out
}
