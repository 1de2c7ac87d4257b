package config

import (
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds all application configuration loaded from environment variables.
type Config struct {
	DatasetPath   string
	DatasetSource string // "csv" or "postgres"
	ModelPath     string

	PostgresHost     string
	PostgresPort     string
	PostgresUser     string
	PostgresPassword string
	PostgresDB       string
	PostgresSSLMode  string

	MaxConcurrency int
	MaxRetries     int

	DefaultLat  float64
	DefaultLon  float64
	DefaultZoom int
	FocusZoom   int

	MapOutputDir string
	MapSnapshot  bool
	MapShapefile bool
	ChromeBin    string

	HTTPAddr string

	LogLevel string
	LogColor bool
}

// Load reads the .env file and returns a populated Config struct.
func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("[config] No .env file found, falling back to system env vars")
	}

	return &Config{
		DatasetPath:   getEnv("DATASET_PATH", "./data/dataset_com_gbm.csv"),
		DatasetSource: strings.ToLower(getEnv("DATASET_SOURCE", "csv")),
		ModelPath:     getEnv("MODEL_PATH", "./data/price_model.json"),

		PostgresHost:     getEnv("POSTGRES_HOST", "localhost"),
		PostgresPort:     getEnv("POSTGRES_PORT", "5432"),
		PostgresUser:     getEnv("POSTGRES_USER", "advisor"),
		PostgresPassword: getEnv("POSTGRES_PASSWORD", "advisor123"),
		PostgresDB:       getEnv("POSTGRES_DB", "listings_db"),
		PostgresSSLMode:  getEnv("POSTGRES_SSLMODE", "disable"),

		MaxConcurrency: getEnvInt("MAX_CONCURRENCY", 4),
		MaxRetries:     getEnvInt("MAX_RETRIES", 3),

		DefaultLat:  getEnvFloat("MAP_DEFAULT_LAT", -37.8136),
		DefaultLon:  getEnvFloat("MAP_DEFAULT_LON", 144.9631),
		DefaultZoom: getEnvInt("MAP_DEFAULT_ZOOM", 10),
		FocusZoom:   getEnvInt("MAP_FOCUS_ZOOM", 14),

		MapOutputDir: getEnv("MAP_OUTPUT_DIR", "./output"),
		MapSnapshot:  getEnvBool("MAP_SNAPSHOT", false),
		MapShapefile: getEnvBool("MAP_SHAPEFILE", false),
		ChromeBin:    getEnv("CHROME_BIN", ""),

		HTTPAddr: getEnv("HTTP_ADDR", ":8080"),

		LogLevel: getEnv("LOG_LEVEL", "info"),
		LogColor: getEnvBool("LOG_COLOR", true),
	}
}

// DSN returns the PostgreSQL connection string.
func (c *Config) DSN() string {
	return "host=" + c.PostgresHost +
		" port=" + c.PostgresPort +
		" user=" + c.PostgresUser +
		" password=" + c.PostgresPassword +
		" dbname=" + c.PostgresDB +
		" sslmode=" + c.PostgresSSLMode
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if val := os.Getenv(key); val != "" {
		n, err := strconv.Atoi(val)
		if err == nil {
			return n
		}
	}
	return fallback
}

func getEnvFloat(key string, fallback float64) float64 {
	if val := os.Getenv(key); val != "" {
		f, err := strconv.ParseFloat(val, 64)
		if err == nil {
			return f
		}
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if val := os.Getenv(key); val != "" {
		b, err := strconv.ParseBool(val)
		if err == nil {
			return b
		}
	}
	return fallback
}
