package config

import (
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const DefaultMaxFileSize int64 = 40 << 20

type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Gemini   GeminiConfig   `yaml:"gemini"`
	Storage  StorageConfig  `yaml:"storage"`
	Store    StoreConfig    `yaml:"store"`
	Analysis AnalysisConfig `yaml:"analysis"`
	Usage    UsageConfig    `yaml:"usage"`
}

type ServerConfig struct {
	Port string `yaml:"port"`
	Env  string `yaml:"env"`
}

type GeminiConfig struct {
	APIKey  string `yaml:"api_key"`
	Model   string `yaml:"model"`
	BaseURL string `yaml:"base_url"`
}

type StorageConfig struct {
	MaxFileSize int64 `yaml:"max_file_size"`
	// UploadDir keeps original uploads on disk when set.
	UploadDir string `yaml:"upload_dir"`
}

type StoreBackend string

const (
	StoreMemory   StoreBackend = "memory"
	StorePostgres StoreBackend = "postgres"
	StoreSQLite   StoreBackend = "sqlite"
	StoreRedis    StoreBackend = "redis"
)

type StoreConfig struct {
	Backend       StoreBackend `yaml:"backend"`
	DatabaseURL   string       `yaml:"database_url"`
	SQLitePath    string       `yaml:"sqlite_path"`
	RedisAddr     string       `yaml:"redis_addr"`
	RedisPassword string       `yaml:"redis_password"`
	RedisDB       int          `yaml:"redis_db"`
}

type AnalysisConfig struct {
	// MockOnMiss makes GET /analysis/:id answer unknown ids with a demo record instead of 404.
	MockOnMiss bool `yaml:"mock_on_miss"`
}

type UsageConfig struct {
	Limit int `yaml:"limit"`
}

func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Port: "3000",
			Env:  "development",
		},
		Gemini: GeminiConfig{
			Model: "gemini-2.0-flash",
		},
		Storage: StorageConfig{
			MaxFileSize: DefaultMaxFileSize,
		},
		Store: StoreConfig{
			Backend:    StoreMemory,
			SQLitePath: "./data/resume-analyzer.db",
			RedisAddr:  "localhost:6379",
		},
		Usage: UsageConfig{
			Limit: 5,
		},
	}
}

// Load reads .env, then the optional CONFIG_FILE yaml, then environment variables.
// Later sources win.
func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found. Using default values.")
	}

	cfg := Default()

	if path := os.Getenv("CONFIG_FILE"); path != "" {
		if err := loadFile(path, cfg); err != nil {
			log.Printf("⚠️  Ignoring config file: %v", err)
		}
	}

	applyEnv(cfg)
	return cfg
}

func loadFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}
	return nil
}

func applyEnv(cfg *Config) {
	cfg.Server.Port = getEnv("PORT", cfg.Server.Port)
	cfg.Server.Env = getEnv("ENV", cfg.Server.Env)

	cfg.Gemini.APIKey = getEnv("GEMINI_API_KEY", cfg.Gemini.APIKey)
	cfg.Gemini.Model = getEnv("GEMINI_MODEL", cfg.Gemini.Model)
	cfg.Gemini.BaseURL = getEnv("GEMINI_BASE_URL", cfg.Gemini.BaseURL)

	cfg.Storage.MaxFileSize = getEnvAsInt64("MAX_FILE_SIZE", cfg.Storage.MaxFileSize)
	cfg.Storage.UploadDir = getEnv("UPLOAD_DIR", cfg.Storage.UploadDir)

	cfg.Store.Backend = StoreBackend(getEnv("STORE_BACKEND", string(cfg.Store.Backend)))
	cfg.Store.DatabaseURL = getEnv("DATABASE_URL", getEnv("POSTGRES_URL", cfg.Store.DatabaseURL))
	cfg.Store.SQLitePath = getEnv("SQLITE_PATH", cfg.Store.SQLitePath)
	cfg.Store.RedisAddr = getEnv("REDIS_ADDR", cfg.Store.RedisAddr)
	cfg.Store.RedisPassword = getEnv("REDIS_PASSWORD", cfg.Store.RedisPassword)
	cfg.Store.RedisDB = getEnvAsInt("REDIS_DB", cfg.Store.RedisDB)

	cfg.Analysis.MockOnMiss = getEnvAsBool("ANALYSIS_MOCK_ON_MISS", cfg.Analysis.MockOnMiss)
	cfg.Usage.Limit = getEnvAsInt("USAGE_LIMIT", cfg.Usage.Limit)
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := getEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsInt64(key string, defaultValue int64) int64 {
	valueStr := getEnv(key, "")
	if value, err := strconv.ParseInt(valueStr, 10, 64); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := getEnv(key, "")
	if value, err := strconv.ParseBool(valueStr); err == nil {
		return value
	}
	return defaultValue
}
