package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	App   AppConfig
	Store StoreConfig
	Geo   GeoConfig
	Flow  FlowConfig
	Ai    AIConfig
}

type AppConfig struct {
	Port               string
	Environment        string
	LogFilePath        string
	CorsAllowedOrigins string
}

type StoreConfig struct {
	StationsPath string
	PoisPath     string
}

type GeoConfig struct {
	DefaultRadiusM int
	MinRadiusM     int
	MaxRadiusM     int
	NearbyLimit    int
}

type FlowConfig struct {
	TTL time.Duration
}

type AIConfig struct {
	OllamaBaseURL string
	OllamaModel   string
	TopKContext   int
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("Note: .env file not found, usage system environment")
	}

	return &Config{
		App: AppConfig{
			Port:               getEnv("APP_PORT", "8000"),
			Environment:        getEnv("GO_ENV", "development"),
			LogFilePath:        getEnv("LOG_FILE_PATH", "logs/app.log"),
			CorsAllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:3000,http://127.0.0.1:3000"),
		},
		Store: StoreConfig{
			StationsPath: getEnv("STATIONS_JSON", "stations.json"),
			PoisPath:     getEnv("POIS_JSON", "pois.json"),
		},
		Geo: GeoConfig{
			DefaultRadiusM: getEnvAsInt("NEARBY_DEFAULT_RADIUS_M", 1000),
			MinRadiusM:     getEnvAsInt("NEARBY_MIN_RADIUS_M", 100),
			MaxRadiusM:     getEnvAsInt("NEARBY_MAX_RADIUS_M", 5000),
			NearbyLimit:    getEnvAsInt("NEARBY_LIMIT", 20),
		},
		Flow: FlowConfig{
			TTL: time.Duration(getEnvAsInt("FLOW_TTL_SECONDS", 90)) * time.Second,
		},
		Ai: AIConfig{
			OllamaBaseURL: getEnv("OLLAMA_BASE_URL", "http://127.0.0.1:11434"),
			OllamaModel:   getEnv("OLLAMA_MODEL", "qwen3:1.7b"),
			TopKContext:   getEnvAsInt("TOPK_CONTEXT", 12),
		},
	}
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	strValue := getEnv(key, "")
	if value, err := strconv.Atoi(strValue); err == nil {
		return value
	}
	return fallback
}
