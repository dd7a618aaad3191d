package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	App      AppConfig
	Database DatabaseConfig
	Memory   MemoryConfig
	Store    StoreConfig
	Ai       AIConfig
	Query    QueryConfig
}

type AppConfig struct {
	Port               string
	Environment        string
	LogFilePath        string
	CorsAllowedOrigins string
}

type DatabaseConfig struct {
	Connection string
}

// MemoryConfig selects the conversation backend: "memory" keeps sessions
// in-process, "postgres" persists them.
type MemoryConfig struct {
	Backend string
}

type StoreConfig struct {
	SharedDir string // legacy single-index store
	MultiDir  string // per-document store
}

type AIConfig struct {
	EmbeddingProvider    string // "ollama" or "openai"
	OllamaBaseURL        string
	OllamaEmbeddingModel string
	OpenAIAPIKey         string
	OpenAIEmbeddingModel string
	LLMProvider          string // "ollama" or "openai"
	LLMModel             string
}

type QueryConfig struct {
	DefaultTopK   int
	ContextWindow int // messages pulled into the conversation context
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
			CorsAllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:5173"),
		},
		Database: DatabaseConfig{
			Connection: getEnv("DB_CONNECTION_STRING", ""),
		},
		Memory: MemoryConfig{
			Backend: getEnv("MEMORY_BACKEND", "memory"),
		},
		Store: StoreConfig{
			SharedDir: getEnv("SHARED_STORE_DIR", "data/shared_index"),
			MultiDir:  getEnv("MULTI_STORE_DIR", "data/documents"),
		},
		Ai: AIConfig{
			EmbeddingProvider:    getEnv("EMBEDDING_PROVIDER", "ollama"),
			OllamaBaseURL:        getEnv("OLLAMA_BASE_URL", "http://localhost:11434"),
			OllamaEmbeddingModel: getEnv("OLLAMA_EMBEDDING_MODEL", "nomic-embed-text"),
			OpenAIAPIKey:         getEnv("OPENAI_API_KEY", ""),
			OpenAIEmbeddingModel: getEnv("OPENAI_EMBEDDING_MODEL", "text-embedding-3-small"),
			LLMProvider:          getEnv("LLM_PROVIDER", "ollama"),
			LLMModel:             getEnv("LLM_MODEL", "llama3"),
		},
		Query: QueryConfig{
			DefaultTopK:   getEnvAsInt("DEFAULT_TOP_K", 5),
			ContextWindow: getEnvAsInt("CONTEXT_WINDOW_MESSAGES", 10),
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
