package config

import (
	"os"
	"strings"

	"github.com/joho/godotenv"
	"go.uber.org/fx"
)

// Config holds application configuration.
type Config struct {
	AppName     string
	AppVersion  string
	Environment string
	Port        string

	LogLevel string

	SpreadsheetName       string
	SpreadsheetID         string
	GoogleCredentialsFile string

	OpenAIAPIKey        string
	OpenAIModel         string
	OpenAIFallbackModel string
	OpenAIBaseURL       string

	StripeSecretKey     string
	StripeSuccessURL    string
	StripeCancelURL     string
	StripePricePremium  string
	StripePricePro      string
	StripePricePlatinum string

	RedisAddr     string
	RedisPassword string

	DefaultPlan string

	OTLPEndpoint string
}

// Load loads configuration from environment variables and .env file.
func Load() Config {
	_ = godotenv.Load()

	return Config{
		AppName:     getenv("APP_SERVICE", "dealercommand"),
		AppVersion:  getenv("APP_VERSION", "0.1.0"),
		Environment: getenv("ENVIRONMENT", "development"),
		Port:        getenv("PORT", "8080"),

		LogLevel: strings.ToLower(getenv("LOG_LEVEL", "info")),

		SpreadsheetName:       getenv("SPREADSHEET_NAME", "DealerCommand"),
		SpreadsheetID:         strings.TrimSpace(getenv("SPREADSHEET_ID", "")),
		GoogleCredentialsFile: strings.TrimSpace(getenv("GOOGLE_CREDENTIALS_FILE", "")),

		OpenAIAPIKey:        strings.TrimSpace(getenv("OPENAI_API_KEY", "")),
		OpenAIModel:         getenv("OPENAI_MODEL", "gpt-4o-mini"),
		OpenAIFallbackModel: getenv("OPENAI_FALLBACK_MODEL", "gpt-3.5-turbo"),
		OpenAIBaseURL:       strings.TrimSpace(getenv("OPENAI_BASE_URL", "")),

		StripeSecretKey:     strings.TrimSpace(getenv("STRIPE_SECRET_KEY", "")),
		StripeSuccessURL:    getenv("STRIPE_SUCCESS_URL", "https://app.dealercommand.io/billing/success"),
		StripeCancelURL:     getenv("STRIPE_CANCEL_URL", "https://app.dealercommand.io/billing/cancel"),
		StripePricePremium:  getenv("STRIPE_PRICE_PREMIUM", ""),
		StripePricePro:      getenv("STRIPE_PRICE_PRO", ""),
		StripePricePlatinum: getenv("STRIPE_PRICE_PLATINUM", ""),

		RedisAddr:     strings.TrimSpace(getenv("REDIS_ADDR", "")),
		RedisPassword: getenv("REDIS_PASSWORD", ""),

		DefaultPlan: getenv("DEFAULT_PLAN", "Free Trial"),

		OTLPEndpoint: getenv("OTLP_ENDPOINT", "localhost:4317"),
	}
}

// Module wires application configuration.
var Module = fx.Module("config",
	fx.Provide(Load),
	fx.Provide(NewPlanConfigHolder),
)

func getenv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok {
		return v
	}
	return fallback
}
