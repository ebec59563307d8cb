package configs

import (
	"errors"
	"fmt"
	"io/fs"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type RESTconfig struct {
	PORT           string
	AllowedOrigins []string
}

type ListingsConfig struct {
	// FixturePath - JSON-файл с объявлениями. Пусто - встроенная фикстура.
	FixturePath string
	// StrictFilters - отклонять запрос с некорректным числовым фильтром вместо игнорирования
	StrictFilters bool
}

type ApiClientConfig struct {
	AIServiceURL     string
	AIServiceTimeout time.Duration
	AuthServiceURL   string
}

type AuthConfig struct {
	// JWTSecret - ключ подписи access-токенов сервиса аутентификации.
	// Пусто - AI-поиск доступен без токена.
	JWTSecret string
}

type StdoutLogConfig struct {
	Level string
}

type FluentBitConfig struct {
	Host    string
	Port    int
	Enabled bool
	Level   string
}

// AppConfig хранит всю конфигурацию приложения
type AppConfig struct {
	AppName      string
	Rest         RESTconfig
	Listings     ListingsConfig
	ApiClient    ApiClientConfig
	Auth         AuthConfig
	FluentBit    FluentBitConfig
	StdoutLogger StdoutLogConfig
}

// LoadConfig загружает конфигурацию из .env (если он есть) и переменных окружения.
func LoadConfig(envPath ...string) (*AppConfig, error) {
	var err error
	if len(envPath) > 0 {
		err = godotenv.Load(envPath[0])
	} else {
		err = godotenv.Load()
	}

	if err != nil {
		// без .env работаем на переменных окружения, но явно указанный файл обязан существовать
		if len(envPath) > 0 || !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("could not load .env file (path: %v): %w", envPath, err)
		}
		log.Println("No .env file found, using environment variables")
	}

	cfg := &AppConfig{
		AppName: getEnv("APP_NAME", "listing-service"),
	}

	cfg.Rest.PORT = getEnv("PORT", "8080")
	cfg.Rest.AllowedOrigins = splitList(getEnv("CORS_ALLOWED_ORIGINS", "*"))

	cfg.Listings.FixturePath = getEnv("LISTINGS_FIXTURE_PATH", "")
	cfg.Listings.StrictFilters = getEnvAsBool("SEARCH_STRICT_FILTERS", false)

	cfg.ApiClient.AIServiceURL = getEnv("AI_SERVICE_URL", "")
	cfg.ApiClient.AIServiceTimeout = getEnvAsDuration("AI_SERVICE_TIMEOUT", 15*time.Second)
	cfg.ApiClient.AuthServiceURL = getEnv("AUTH_SERVICE_URL", "")
	cfg.Auth.JWTSecret = getEnv("AUTH_JWT_SECRET", "")

	cfg.FluentBit.Enabled = getEnvAsBool("FLUENTBIT_ENABLED", false)
	if cfg.FluentBit.Enabled {
		cfg.FluentBit.Host = os.Getenv("FLUENTBIT_HOST")
		if cfg.FluentBit.Host == "" {
			log.Println("WARNING: FLUENTBIT_ENABLED is true, but FLUENTBIT_HOST is not set. Disabling Fluent Bit.")
			cfg.FluentBit.Enabled = false
		}

		cfg.FluentBit.Port = getEnvAsInt("FLUENTBIT_PORT", 24224)
		cfg.FluentBit.Level = getEnv("FLUENTBIT_LOG_LEVEL", "info")
	}

	cfg.StdoutLogger.Level = getEnv("STDOUT_LOG_LEVEL", "debug")

	if _, err := strconv.Atoi(cfg.Rest.PORT); err != nil {
		return nil, fmt.Errorf("PORT must be a number, got %q", cfg.Rest.PORT)
	}

	return cfg, nil
}

// getEnv - чтение переменной окружения со значением по умолчанию.
func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue
	}

	valueInt, err := strconv.Atoi(valueStr)
	if err != nil {
		log.Printf("Warning: Environment variable %s (value: %s) could not be parsed as int: %v. Using default value: %d\n", key, valueStr, err, defaultValue)
		return defaultValue
	}
	return valueInt
}

// getEnvAsBool читает переменную окружения как bool или возвращает значение по умолчанию
func getEnvAsBool(key string, defaultValue bool) bool {
	valStr, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue
	}
	valBool, err := strconv.ParseBool(valStr)
	if err != nil {
		log.Printf("Warning: Environment variable %s (value: %s) could not be parsed as bool: %v. Using default value: %t\n", key, valStr, err, defaultValue)
		return defaultValue
	}
	return valBool
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	valStr, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue
	}
	d, err := time.ParseDuration(valStr)
	if err != nil || d <= 0 {
		log.Printf("Warning: Environment variable %s (value: %s) is not a positive duration. Using default value: %s\n", key, valStr, defaultValue)
		return defaultValue
	}
	return d
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
