package config

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/viper"
)

// Config carries everything the application needs. It is built once in main
// and passed explicitly to constructors; nothing reads the environment after
// load time.
type Config struct {
	Server       ServerConfig
	Logger       LoggerConfig
	LLM          LLMConfig
	Auth         AuthConfig
	Results      ResultsConfig
	QuizStore    QuizStoreConfig
	Redis        RedisConfig
	OpenAIAPIKey string
}

type ServerConfig struct {
	Port         int
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

type LoggerConfig struct {
	Level string
	Env   string
}

// LLMConfig holds the generator knobs. ModelName selects the chat model,
// MaxTokens caps response length, Temperature controls sampling creativity.
type LLMConfig struct {
	ModelName   string
	MaxTokens   int
	Temperature float64
}

type AuthConfig struct {
	AdminPassword string
	JWTSecret     string
	TokenTTL      time.Duration
}

type ResultsConfig struct {
	Path string
}

// QuizStoreConfig selects where pending quizzes live between generation and
// submission. Backend is "memory" or "redis".
type QuizStoreConfig struct {
	Backend string
	TTL     time.Duration
}

type RedisConfig struct {
	Address  string
	Password string
	DB       int
}

// HasOpenAIKey reports whether quiz generation is configured at all.
// Without a key the server still runs; generation requests fail fast.
func (c *Config) HasOpenAIKey() bool {
	return c.OpenAIAPIKey != ""
}

func LoadConfig() (*Config, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")

	if os.Getenv("ENV") == "test" {
		viper.AddConfigPath("../../config")
		viper.AddConfigPath("../../")
	} else {
		viper.AddConfigPath(".")
		viper.AddConfigPath("./config")
	}

	viper.AutomaticEnv()

	setDefaults()

	// A missing config file is fine: every key has a default or an env
	// override. Any other read error is real.
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	config := &Config{
		Server: ServerConfig{
			Port:         viper.GetInt("server.port"),
			ReadTimeout:  viper.GetDuration("server.read_timeout") * time.Second,
			WriteTimeout: viper.GetDuration("server.write_timeout") * time.Second,
		},
		Logger: LoggerConfig{
			Level: viper.GetString("logger.level"),
			Env:   viper.GetString("logger.env"),
		},
		LLM: LLMConfig{
			ModelName:   viper.GetString("llm.model_name"),
			MaxTokens:   viper.GetInt("llm.max_tokens"),
			Temperature: viper.GetFloat64("llm.temperature"),
		},
		Auth: AuthConfig{
			AdminPassword: viper.GetString("auth.admin_password"),
			JWTSecret:     viper.GetString("auth.jwt_secret"),
			TokenTTL:      viper.GetDuration("auth.token_ttl") * time.Second,
		},
		Results: ResultsConfig{
			Path: viper.GetString("results.path"),
		},
		QuizStore: QuizStoreConfig{
			Backend: viper.GetString("quiz_store.backend"),
			TTL:     viper.GetDuration("quiz_store.ttl") * time.Second,
		},
		Redis: RedisConfig{
			Address:  viper.GetString("redis.address"),
			Password: viper.GetString("redis.password"),
			DB:       viper.GetInt("redis.db"),
		},
		OpenAIAPIKey: viper.GetString("openai_api_key"),
	}

	// Override with environment variables if set
	if key := os.Getenv("OPENAI_API_KEY"); key != "" {
		config.OpenAIAPIKey = key
	}
	if pass := os.Getenv("ADMIN_PASS"); pass != "" {
		config.Auth.AdminPassword = pass
	}
	if secret := os.Getenv("JWT_SECRET_KEY"); secret != "" {
		config.Auth.JWTSecret = secret
	}
	if path := os.Getenv("RESULTS_PATH"); path != "" {
		config.Results.Path = path
	}
	if backend := os.Getenv("QUIZ_STORE_BACKEND"); backend != "" {
		config.QuizStore.Backend = backend
	}
	if redisAddress := os.Getenv("REDIS_ADDRESS"); redisAddress != "" {
		config.Redis.Address = redisAddress
	}
	if redisPassword := os.Getenv("REDIS_PASSWORD"); redisPassword != "" {
		config.Redis.Password = redisPassword
	}

	return config, nil
}

func setDefaults() {
	viper.SetDefault("server.port", 8090)
	viper.SetDefault("server.read_timeout", 20)
	viper.SetDefault("server.write_timeout", 20)
	viper.SetDefault("logger.level", "info")
	viper.SetDefault("logger.env", "development")
	viper.SetDefault("llm.model_name", "gpt-4o-mini")
	viper.SetDefault("llm.max_tokens", 1500)
	viper.SetDefault("llm.temperature", 0.35)
	// change in deployment or set ADMIN_PASS
	viper.SetDefault("auth.admin_password", "admin123")
	viper.SetDefault("auth.jwt_secret", "")
	viper.SetDefault("auth.token_ttl", 3600)
	viper.SetDefault("results.path", "results.csv")
	viper.SetDefault("quiz_store.backend", "memory")
	viper.SetDefault("quiz_store.ttl", 1800)
	viper.SetDefault("redis.db", 0)
}
