package config

import (
	"log"
	"os"
	"strconv"
	"strings"
)

type Config struct {
	Port     string
	Env      string
	LogLevel string

	GithubSecret         string
	GithubPrivateKeyPath string
	GithubAppID          string
	GithubInstallationID string
	GitHubToken          string

	AIProvider  string
	OpenAIKey   string
	OpenAIModel string
	OllamaURL   string
	OllamaModel string

	QueueType string
	RedisAddr string

	RateLimitRPS   int
	RateLimitBurst int

	// Extra exclusion patterns on top of the built-in defaults,
	// comma-separated in the environment.
	ExcludePatterns []string

	BudgetEnabled  bool
	BudgetDailyUSD float64
	BudgetPRUSD    float64

	TestGenEnabled   bool
	TestGenOutputDir string

	BaseBranch string
}

func Load() *Config {
	return &Config{
		Port:                 getEnv("PORT", "8080"),
		Env:                  getEnv("ENV", "local"),
		LogLevel:             getEnv("LOG_LEVEL", "debug"),
		GithubSecret:         getEnv("GITHUB_WEBHOOK_SECRET", ""),
		GithubPrivateKeyPath: getEnv("GITHUB_APP_PRIVATE_KEY_PATH", ""),
		GithubAppID:          getEnv("GITHUB_APP_ID", ""),
		GithubInstallationID: getEnv("GITHUB_APP_INSTALLATION_ID", ""),
		GitHubToken:          getEnv("GITHUB_TOKEN", ""),
		AIProvider:           getEnv("AI_PROVIDER", "openai"),
		OpenAIKey:            getEnv("OPENAI_KEY", ""),
		OpenAIModel:          getEnv("OPENAI_MODEL", "gpt-4o-mini"),
		OllamaURL:            getEnv("OLLAMA_URL", "http://localhost:11434"),
		OllamaModel:          getEnv("OLLAMA_MODEL", "llama3"),
		QueueType:            getEnv("QUEUE_TYPE", "memory"), // memory | redis
		RedisAddr:            getEnv("REDIS_ADDR", "localhost:6379"),
		RateLimitRPS:         getEnvInt("RATE_LIMIT_RPS", 1),
		RateLimitBurst:       getEnvInt("RATE_LIMIT_BURST", 2),
		ExcludePatterns:      SplitPatterns(getEnv("EXCLUDE_PATTERNS", "")),
		BudgetEnabled:        getEnvBool("BUDGET_ENABLED", false),
		BudgetDailyUSD:       getEnvFloat("BUDGET_DAILY_USD", 5.0),
		BudgetPRUSD:          getEnvFloat("BUDGET_PR_USD", 0.5),
		TestGenEnabled:       getEnvBool("TESTGEN_ENABLED", false),
		TestGenOutputDir:     getEnv("TESTGEN_OUTPUT_DIR", "generated-tests"),
		BaseBranch:           getEnv("BASE_BRANCH", "main"),
	}
}

// SplitPatterns turns a comma-separated pattern list into trimmed, non-empty
// pattern strings.
func SplitPatterns(raw string) []string {
	if raw == "" {
		return nil
	}

	var patterns []string
	for _, p := range strings.Split(raw, ",") {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		patterns = append(patterns, p)
	}
	return patterns
}

func getEnv(key, def string) string {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	return v
}

func getEnvInt(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		log.Fatalf("invalid env %s: %v", key, err)
	}
	return i
}

func getEnvBool(key string, def bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		log.Fatalf("invalid env %s: %v", key, err)
	}
	return b
}

func getEnvFloat(key string, def float64) float64 {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		log.Fatalf("invalid env %s: %v", key, err)
	}
	return f
}
