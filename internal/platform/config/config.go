package config

import (
	"log"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	DatabaseURL  string
	Port         string
	IsProduction bool
	JWTSecret    string

	// EncryptionKey protects sensitive bank-account fields at rest. In
	// production it must be set; main refuses to start without it.
	EncryptionKey string

	// Kafka settings for payout events. Empty broker disables publishing.
	KafkaBroker      string
	KafkaPayoutTopic string

	// PublicRateLimit is a formatted rate (e.g. "30-M") applied per IP to
	// the unauthenticated finance routes.
	PublicRateLimit string

	CORSAllowedOrigins []string
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	viper.SetDefault("PGSQL_URL", "")
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("IS_PRODUCTION", false)
	viper.SetDefault("JWT_SECRET", "a-very-secret-key-should-be-longer-and-random")
	viper.SetDefault("ENCRYPTION_KEY", "")
	viper.SetDefault("KAFKA_BROKER", "")
	viper.SetDefault("KAFKA_PAYOUT_TOPIC", "finance.payouts")
	viper.SetDefault("PUBLIC_RATE_LIMIT", "30-M")
	viper.SetDefault("CORS_ALLOWED_ORIGINS", "")

	viper.AutomaticEnv()

	cfg := &Config{}

	cfg.DatabaseURL = viper.GetString("PGSQL_URL")
	if cfg.DatabaseURL == "" {
		log.Println("Warning: PGSQL_URL environment variable not set.")
	}

	cfg.Port = viper.GetString("PORT")
	cfg.IsProduction = viper.GetBool("IS_PRODUCTION")

	cfg.JWTSecret = viper.GetString("JWT_SECRET")
	if cfg.JWTSecret == "a-very-secret-key-should-be-longer-and-random" {
		log.Println("Warning: JWT_SECRET environment variable not set. Using default insecure key.")
	}

	cfg.EncryptionKey = viper.GetString("ENCRYPTION_KEY")

	cfg.KafkaBroker = viper.GetString("KAFKA_BROKER")
	cfg.KafkaPayoutTopic = viper.GetString("KAFKA_PAYOUT_TOPIC")

	cfg.PublicRateLimit = viper.GetString("PUBLIC_RATE_LIMIT")

	if origins := viper.GetString("CORS_ALLOWED_ORIGINS"); origins != "" {
		for _, o := range strings.Split(origins, ",") {
			if o = strings.TrimSpace(o); o != "" {
				cfg.CORSAllowedOrigins = append(cfg.CORSAllowedOrigins, o)
			}
		}
	}

	return cfg, nil
}
