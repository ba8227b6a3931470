package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all application configuration
type Config struct {
	App       App       `mapstructure:"app"`
	Gemini    Gemini    `mapstructure:"gemini"`
	Search    Search    `mapstructure:"search"`
	Recommend Recommend `mapstructure:"recommend"`
}

// App holds general application configuration
type App struct {
	Debug      bool   `mapstructure:"debug"`
	LogLevel   string `mapstructure:"log_level"`
	ConfigFile string `mapstructure:"config_file"`
}

// Gemini holds Google Gemini configuration
type Gemini struct {
	APIKey         string `mapstructure:"api_key"`
	Model          string `mapstructure:"model"`
	EmbeddingModel string `mapstructure:"embedding_model"`
	Timeout        string `mapstructure:"timeout"`
}

// Search holds search provider configuration
type Search struct {
	Provider   string          `mapstructure:"provider"` // Optional override; empty means pick by credential
	MaxResults int             `mapstructure:"max_results"`
	Timeout    string          `mapstructure:"timeout"`
	Providers  SearchProviders `mapstructure:"providers"`
}

// SearchProviders holds configuration for all search providers
type SearchProviders struct {
	SerpAPI    SerpAPIConfig    `mapstructure:"serpapi"`
	DuckDuckGo DuckDuckGoConfig `mapstructure:"duckduckgo"`
}

// SerpAPIConfig holds SerpAPI configuration
type SerpAPIConfig struct {
	APIKey string `mapstructure:"api_key"`
}

// DuckDuckGoConfig holds DuckDuckGo configuration
type DuckDuckGoConfig struct {
	RateLimit string `mapstructure:"rate_limit"`
}

// Recommend holds gift recommendation pipeline configuration
type Recommend struct {
	IdeasPerBatch   int `mapstructure:"ideas_per_batch"`    // K: maximum ideas returned per batch
	EvidenceTopK    int `mapstructure:"evidence_top_k"`     // Documents kept after similarity selection
	BuyLinksPerIdea int `mapstructure:"buy_links_per_idea"` // Results examined per buy-link query
}

var globalConfig *Config

// Load loads the configuration from .env, config file, and environment.
func Load(configFile string) (*Config, error) {
	if globalConfig != nil {
		return globalConfig, nil
	}

	// Load .env file if it exists
	if _, err := os.Stat(".env"); err == nil {
		if err := godotenv.Load(".env"); err != nil {
			fmt.Printf("Warning: Error loading .env file: %v\n", err)
		}
	}

	// Configure viper
	if configFile != "" {
		viper.SetConfigFile(configFile)
	} else {
		viper.AddConfigPath(".")
		viper.AddConfigPath("$HOME")
		viper.SetConfigName(".giftscout")
		viper.SetConfigType("yaml")
	}

	setDefaults()
	bindEnvironmentVariables()

	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// Read config file if it exists
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	config := &Config{}
	if err := viper.Unmarshal(config); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	if viper.ConfigFileUsed() != "" {
		config.App.ConfigFile = viper.ConfigFileUsed()
	}

	if err := validateConfig(config); err != nil {
		return nil, err
	}

	globalConfig = config
	return config, nil
}

// Get returns the global configuration, loading it if necessary
func Get() *Config {
	if globalConfig == nil {
		config, err := Load("")
		if err != nil {
			panic(fmt.Sprintf("Failed to load configuration: %v", err))
		}
		return config
	}
	return globalConfig
}

// Reset clears the cached global configuration. Used by tests.
func Reset() {
	globalConfig = nil
	viper.Reset()
}

// setDefaults sets default configuration values
func setDefaults() {
	// App defaults
	viper.SetDefault("app.debug", false)
	viper.SetDefault("app.log_level", "info")

	// Gemini defaults
	viper.SetDefault("gemini.model", "gemini-flash-lite-latest")
	viper.SetDefault("gemini.embedding_model", "gemini-embedding-001")
	viper.SetDefault("gemini.timeout", "30s")

	// Search defaults
	viper.SetDefault("search.max_results", 8)
	viper.SetDefault("search.timeout", "15s")
	viper.SetDefault("search.providers.duckduckgo.rate_limit", "2s")

	// Recommendation pipeline defaults
	viper.SetDefault("recommend.ideas_per_batch", 5)
	viper.SetDefault("recommend.evidence_top_k", 18)
	viper.SetDefault("recommend.buy_links_per_idea", 6)
}

// bindEnvironmentVariables sets up flexible environment variable binding
func bindEnvironmentVariables() {
	// Gemini API key - support multiple formats
	bindEnvKeys("gemini.api_key", []string{
		"GEMINI_API_KEY",
		"GOOGLE_GEMINI_API_KEY",
		"GOOGLE_AI_API_KEY",
	})

	// SerpAPI key
	bindEnvKeys("search.providers.serpapi.api_key", []string{
		"SERPAPI_API_KEY",
		"SERP_API_KEY",
	})
}

// bindEnvKeys binds a config key to multiple environment variable names
func bindEnvKeys(configKey string, envKeys []string) {
	for _, envKey := range envKeys {
		if value := os.Getenv(envKey); value != "" {
			viper.Set(configKey, value)
			return
		}
	}
}

// validateConfig performs sanity checks on loaded values
func validateConfig(config *Config) error {
	if config.Search.MaxResults <= 0 {
		return fmt.Errorf("search.max_results must be positive, got %d", config.Search.MaxResults)
	}
	if config.Recommend.IdeasPerBatch <= 0 {
		return fmt.Errorf("recommend.ideas_per_batch must be positive, got %d", config.Recommend.IdeasPerBatch)
	}
	if config.Recommend.EvidenceTopK <= 0 {
		return fmt.Errorf("recommend.evidence_top_k must be positive, got %d", config.Recommend.EvidenceTopK)
	}
	if config.Recommend.BuyLinksPerIdea <= 0 {
		return fmt.Errorf("recommend.buy_links_per_idea must be positive, got %d", config.Recommend.BuyLinksPerIdea)
	}
	return nil
}
