package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Port        string
	Environment string
	Database    DatabaseConfig
	Catalog     CatalogConfig
	Messaging   MessagingConfig
	Checkout    CheckoutConfig
	Cart        CartConfig
	CORS        CORSConfig
	LogLevel    string
}

type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
	SSLMode  string
}

type CatalogConfig struct {
	// Source is either "file" or "postgres"
	Source string
	File   string
}

type MessagingConfig struct {
	BaseURL string
	Phone   string
	Verify  bool
	Timeout time.Duration
}

type CheckoutConfig struct {
	AllowEmpty    bool
	Attempts      int
	RedirectTo    string
	RedirectDelay time.Duration
}

type CartConfig struct {
	MaxQuantity              int
	PersonalizationMaxLength int
	SessionTTL               time.Duration
}

type CORSConfig struct {
	AllowedOrigins []string
}

func Load() (*Config, error) {
	viper.SetConfigType("env")
	viper.SetConfigName(".env")
	viper.AddConfigPath(".")
	viper.AddConfigPath("..")
	viper.AddConfigPath("../..")

	// Set defaults
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("ENVIRONMENT", "development")
	viper.SetDefault("DB_PORT", "5432")
	viper.SetDefault("DB_SSLMODE", "disable")
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("CATALOG_SOURCE", "file")
	viper.SetDefault("WHATSAPP_BASE_URL", "https://wa.me")

	// Read from environment variables
	viper.AutomaticEnv()

	// Try to read .env file (optional)
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	cfg := &Config{
		Port:        getEnvOrViper("PORT", "8080"),
		Environment: getEnvOrViper("ENVIRONMENT", "development"),
		Database: DatabaseConfig{
			Host:     getEnvOrViper("DB_HOST", "localhost"),
			Port:     getEnvOrViper("DB_PORT", "5432"),
			User:     getEnvOrViper("DB_USER", "postgres"),
			Password: getEnvOrViper("DB_PASSWORD", "postgres"),
			DBName:   getEnvOrViper("DB_NAME", "storefront"),
			SSLMode:  getEnvOrViper("DB_SSLMODE", "disable"),
		},
		Catalog: CatalogConfig{
			Source: getEnvOrViper("CATALOG_SOURCE", "file"),
			File:   getEnvOrViper("CATALOG_FILE", "data/catalog.yaml"),
		},
		Messaging: MessagingConfig{
			BaseURL: strings.TrimSuffix(getEnvOrViper("WHATSAPP_BASE_URL", "https://wa.me"), "/"),
			Phone:   getEnvOrViper("WHATSAPP_PHONE", ""),
		},
		Checkout: CheckoutConfig{
			RedirectTo: getEnvOrViper("CHECKOUT_REDIRECT_TO", "/"),
		},
		CORS: CORSConfig{
			AllowedOrigins: splitList(getEnvOrViper("CORS_ALLOWED_ORIGINS", "*")),
		},
		LogLevel: getEnvOrViper("LOG_LEVEL", "info"),
	}

	var err error
	if cfg.Messaging.Verify, err = getBool("HANDOFF_VERIFY", false); err != nil {
		return nil, err
	}
	if cfg.Messaging.Timeout, err = getDuration("HANDOFF_TIMEOUT", 10*time.Second); err != nil {
		return nil, err
	}
	if cfg.Checkout.AllowEmpty, err = getBool("CHECKOUT_ALLOW_EMPTY", true); err != nil {
		return nil, err
	}
	if cfg.Checkout.Attempts, err = getInt("CHECKOUT_ATTEMPTS", 1); err != nil {
		return nil, err
	}
	if cfg.Checkout.RedirectDelay, err = getDuration("CHECKOUT_REDIRECT_DELAY", 3*time.Second); err != nil {
		return nil, err
	}
	if cfg.Cart.MaxQuantity, err = getInt("CART_MAX_QUANTITY", 10); err != nil {
		return nil, err
	}
	if cfg.Cart.PersonalizationMaxLength, err = getInt("PERSONALIZATION_MAX_LENGTH", 40); err != nil {
		return nil, err
	}
	if cfg.Cart.SessionTTL, err = getDuration("CART_SESSION_TTL", 24*time.Hour); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks required fields and value ranges
func (c *Config) Validate() error {
	if c.Messaging.Phone == "" {
		return fmt.Errorf("WHATSAPP_PHONE is required")
	}
	if !strings.ContainsAny(c.Messaging.Phone, "0123456789") {
		return fmt.Errorf("WHATSAPP_PHONE must contain digits, got %q", c.Messaging.Phone)
	}
	if c.Catalog.Source != "file" && c.Catalog.Source != "postgres" {
		return fmt.Errorf("CATALOG_SOURCE must be file or postgres, got %q", c.Catalog.Source)
	}
	if c.Catalog.Source == "file" && c.Catalog.File == "" {
		return fmt.Errorf("CATALOG_FILE is required when CATALOG_SOURCE is file")
	}
	if c.Checkout.Attempts < 1 {
		return fmt.Errorf("CHECKOUT_ATTEMPTS must be at least 1")
	}
	if c.Cart.MaxQuantity < 1 {
		return fmt.Errorf("CART_MAX_QUANTITY must be at least 1")
	}
	if c.Cart.PersonalizationMaxLength < 1 {
		return fmt.Errorf("PERSONALIZATION_MAX_LENGTH must be at least 1")
	}
	return nil
}

// DSN builds the lib/pq connection string
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.DBName, d.SSLMode)
}

func getEnvOrViper(key, defaultValue string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	if viper.IsSet(key) {
		return viper.GetString(key)
	}
	return defaultValue
}

func getBool(key string, defaultValue bool) (bool, error) {
	raw := getEnvOrViper(key, "")
	if raw == "" {
		return defaultValue, nil
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return false, fmt.Errorf("%s must be a boolean: %w", key, err)
	}
	return v, nil
}

func getInt(key string, defaultValue int) (int, error) {
	raw := getEnvOrViper(key, "")
	if raw == "" {
		return defaultValue, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%s must be an integer: %w", key, err)
	}
	return v, nil
}

func getDuration(key string, defaultValue time.Duration) (time.Duration, error) {
	raw := getEnvOrViper(key, "")
	if raw == "" {
		return defaultValue, nil
	}
	v, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("%s must be a duration: %w", key, err)
	}
	return v, nil
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
