package config

import (
	"os"
	"strconv"
	"sync"

	"github.com/joho/godotenv"
)

type Provider string

const (
	ProviderOpenAI Provider = "openai"
	ProviderGoogle Provider = "google"
)

// Settings are the values that differ between deployments. Everything else lives in the constants.
type Settings struct {
	OpenAIAPIKey    string
	GoogleAPIKey    string
	GoogleSearchKey string
	GoogleSearchCx  string
	BearlyAPIKey    string
	GithubAPIToken  string

	EmbeddingProvider Provider
	SummaryProvider   Provider
	WebSearchCacheOn  bool
	QdrantHost        string
	QdrantPort        int
	QdrantAPIKey      string
	RedisAddr         string
	RedisPassword     string
	AuthToken         string
	NoAuthBypass      bool
	LogFilePath       string
	ServerListenAddr  string
}

var (
	loadOnce sync.Once
	settings Settings
)

// Load reads .env once (missing file is fine) and resolves the settings from the environment.
func Load() Settings {
	loadOnce.Do(func() {
		_ = godotenv.Load()
		settings = fromEnvironment()
	})
	return settings
}

func fromEnvironment() Settings {
	return Settings{
		OpenAIAPIKey:      os.Getenv("OPENAI_API_KEY"),
		GoogleAPIKey:      getEnv("GOOGLE_API_KEY", os.Getenv("GEMINI_API_KEY")),
		GoogleSearchKey:   getEnv("GOOGLE_SEARCH_API_KEY", os.Getenv("GOOGLE_API_KEY")),
		GoogleSearchCx:    os.Getenv("GOOGLE_SEARCH_CX"),
		BearlyAPIKey:      os.Getenv("BEARLY_API_KEY"),
		GithubAPIToken:    os.Getenv("GITHUB_API_TOKEN"),
		EmbeddingProvider: Provider(getEnv("EMBEDDING_PROVIDER", string(ProviderOpenAI))),
		SummaryProvider:   Provider(getEnv("SUMMARY_PROVIDER", string(ProviderOpenAI))),
		WebSearchCacheOn:  getEnvBool("WEB_SEARCH_CACHE", false),
		QdrantHost:        getEnv("QDRANT_HOST", QdrantHost),
		QdrantPort:        getEnvInt("QDRANT_PORT", QdrantGrpcPort),
		QdrantAPIKey:      os.Getenv("QDRANT_API_KEY"),
		RedisAddr:         getEnv("REDIS_ADDR", RedisAddr),
		RedisPassword:     os.Getenv("REDIS_PASSWORD"),
		AuthToken:         os.Getenv("API_AUTH_TOKEN"),
		NoAuthBypass:      getEnvBool("NO_AUTH_BYPASS", !IS_PROD),
		LogFilePath:       os.Getenv("LOG_FILE_PATH"),
		ServerListenAddr:  getEnv("LISTEN_ADDR", ServerListenAddr),
	}
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		return value
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	value, err := strconv.ParseBool(os.Getenv(key))
	if err != nil {
		return fallback
	}
	return value
}

func getEnvInt(key string, fallback int) int {
	value, err := strconv.Atoi(os.Getenv(key))
	if err != nil {
		return fallback
	}
	return value
}
