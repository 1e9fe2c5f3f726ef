package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Database     DatabaseConfig
	JWT          JWTConfig
	App          AppConfig
	OAuth2Google OAuth2GoogleConfig
	SMTP         SMTPConfig
	Xendit       XenditConfig
	Billing      BillingConfig
	Kiosk        KioskConfig
}

type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Name     string
	SSLMode  string
}

// JWTConfig holds JWT configuration
type JWTConfig struct {
	Secret            string
	RefreshExpiration string
	AccessExpiration  string
}

// AppConfig holds application configuration
type AppConfig struct {
	Port        int
	Env         string
	LogLevel    string
	FrontendURL string
	// DefaultTimezone is the business timezone assigned to new branches.
	// Reporting computations always use the branch timezone, never the
	// process-local one.
	DefaultTimezone string
}

type OAuth2GoogleConfig struct {
	ClientID     string
	ClientSecret string
	RedirectURL  string
	Scopes       []string
}

type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
	FromName string
}

type XenditConfig struct {
	APIKey       string
	WebhookToken string
	Environment  string // sandbox or production
}

type BillingConfig struct {
	// MonthlyPrice is the SaaS subscription price charged to gym owners,
	// in MXN. Parsed as a decimal at startup.
	MonthlyPrice string
}

type KioskConfig struct {
	// StatsRefreshInterval is how often the per-branch visit snapshot is
	// rebuilt while a kiosk is connected.
	StatsRefreshInterval time.Duration
	// DefaultPIN is the unlock PIN seeded for new branches.
	DefaultPIN string
}

func Load() (*Config, error) {
	err := godotenv.Load()
	if err != nil {
		log.Println("No .env file found, reading configuration from environment")
	}

	config := &Config{}

	// Database configuration
	dbPort, err := strconv.Atoi(getEnv("DB_PORT", "5432"))
	if err != nil {
		return nil, fmt.Errorf("invalid DB_PORT: %w", err)
	}

	config.Database = DatabaseConfig{
		Host:     getEnv("DB_HOST", "localhost"),
		Port:     dbPort,
		User:     getEnv("DB_USER", "postgres"),
		Password: getEnv("DB_PASSWORD", ""),
		Name:     getEnv("DB_NAME", "eigenfit"),
		SSLMode:  getEnv("DB_SSL_MODE", "disable"),
	}

	// Application configuration
	appPort, err := strconv.Atoi(getEnv("APP_PORT", "8080"))
	if err != nil {
		return nil, fmt.Errorf("invalid APP_PORT: %w", err)
	}

	config.App = AppConfig{
		Port:            appPort,
		Env:             getEnv("APP_ENV", "development"),
		LogLevel:        getEnv("LOG_LEVEL", "info"),
		FrontendURL:     getEnv("FRONTEND_URL", "http://localhost:3000"),
		DefaultTimezone: getEnv("DEFAULT_TIMEZONE", "America/Mexico_City"),
	}

	// JWT configuration
	config.JWT = JWTConfig{
		Secret:            getEnv("JWT_SECRET_KEY", ""),
		RefreshExpiration: getEnv("JWT_REFRESH_EXPIRATION_TIME", "168h"),
		AccessExpiration:  getEnv("JWT_ACCESS_EXPIRATION_TIME", "1h"),
	}

	// OAuth2 Google configuration
	config.OAuth2Google = OAuth2GoogleConfig{
		ClientID:     getEnv("CLIENT_ID", ""),
		ClientSecret: getEnv("CLIENT_SECRET", ""),
		RedirectURL:  getEnv("REDIRECT_URL", ""),
		Scopes:       getEnvSlice("SCOPES"),
	}

	// SMTP configuration
	smtpPort, err := strconv.Atoi(getEnv("SMTP_PORT", "587"))
	if err != nil {
		return nil, fmt.Errorf("invalid SMTP_PORT: %w", err)
	}

	config.SMTP = SMTPConfig{
		Host:     getEnv("SMTP_HOST", ""),
		Port:     smtpPort,
		Username: getEnv("SMTP_USERNAME", ""),
		Password: getEnv("SMTP_PASSWORD", ""),
		From:     getEnv("SMTP_FROM", "no-reply@eigenfit.app"),
		FromName: getEnv("SMTP_FROM_NAME", "EigenFit"),
	}

	// Xendit configuration
	config.Xendit = XenditConfig{
		APIKey:       getEnv("XENDIT_API_KEY", ""),
		WebhookToken: getEnv("XENDIT_WEBHOOK_TOKEN", ""),
		Environment:  getEnv("XENDIT_ENVIRONMENT", "sandbox"),
	}

	// Billing configuration
	config.Billing = BillingConfig{
		MonthlyPrice: getEnv("BILLING_MONTHLY_PRICE", "499"),
	}

	// Kiosk configuration
	refreshInterval, err := time.ParseDuration(getEnv("KIOSK_STATS_REFRESH_INTERVAL", "60s"))
	if err != nil {
		return nil, fmt.Errorf("invalid KIOSK_STATS_REFRESH_INTERVAL: %w", err)
	}

	config.Kiosk = KioskConfig{
		StatsRefreshInterval: refreshInterval,
		DefaultPIN:           getEnv("KIOSK_DEFAULT_PIN", "1234"),
	}

	// Validate required fields
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return config, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Database.Password == "" {
		return fmt.Errorf("DB_PASSWORD is required")
	}
	if c.JWT.Secret == "" {
		return fmt.Errorf("JWT_SECRET_KEY is required")
	}
	if c.OAuth2Google.ClientID == "" {
		return fmt.Errorf("CLIENT_ID is required")
	}
	if c.OAuth2Google.ClientSecret == "" {
		return fmt.Errorf("CLIENT_SECRET is required")
	}
	if c.OAuth2Google.RedirectURL == "" {
		return fmt.Errorf("REDIRECT_URL is required")
	}
	if len(c.OAuth2Google.Scopes) == 0 {
		return fmt.Errorf("SCOPES is required")
	}
	if _, err := time.LoadLocation(c.App.DefaultTimezone); err != nil {
		return fmt.Errorf("invalid DEFAULT_TIMEZONE: %w", err)
	}
	if len(c.Kiosk.DefaultPIN) != 4 {
		return fmt.Errorf("KIOSK_DEFAULT_PIN must be 4 digits")
	}
	return nil
}

// DatabaseURL returns the PostgreSQL connection string
func (c *Config) DatabaseURL() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.Database.User,
		c.Database.Password,
		c.Database.Host,
		c.Database.Port,
		c.Database.Name,
		c.Database.SSLMode,
	)
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvSlice(env string) []string {
	value := getEnv(env, "")
	if value == "" {
		return []string{}
	}
	return strings.Split(value, ",")
}
