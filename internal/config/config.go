package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config represents the full application configuration surface.
type Config struct {
	Server        ServerConfig
	Log           LogConfig
	WhatsApp      WhatsAppConfig
	Email         EmailConfig
	Sheets        SheetsConfig
	Notifications NotificationsConfig
	Milk          MilkConfig
	MongoDB       MongoDBConfig
}

// ServerConfig holds HTTP server related options.
type ServerConfig struct {
	Port string
}

// LogConfig holds logger options.
type LogConfig struct {
	Level string
}

// WhatsAppConfig contains credentials and options for the Meta WhatsApp Cloud API.
type WhatsAppConfig struct {
	AccessToken   string
	PhoneNumberID string
	VerifyToken   string
	BaseURL       string
	APIVersion    string
}

// EmailConfig contains credentials for the transactional email API.
type EmailConfig struct {
	APIKey  string
	From    string
	BaseURL string
}

// SheetsConfig contains configuration required to export reports to Google Sheets.
// Export is disabled when CredentialsPath is empty.
type SheetsConfig struct {
	CredentialsPath string
	SpreadsheetID   string
}

// Enabled reports whether report export is configured.
func (c SheetsConfig) Enabled() bool {
	return c.CredentialsPath != ""
}

// NotificationsConfig holds scheduler-related settings.
type NotificationsConfig struct {
	CronSchedule string
	Timezone     string
}

// Location resolves the configured timezone.
func (c NotificationsConfig) Location() (*time.Location, error) {
	return time.LoadLocation(c.Timezone)
}

// MilkConfig holds milk income defaults.
type MilkConfig struct {
	DefaultPricePerLiter float64
}

// MongoDBConfig holds settings for MongoDB.
type MongoDBConfig struct {
	URI    string
	DBName string
}

// Load reads environment variables (optionally from the provided file) and
// materializes a Config instance.
func Load(envFile string) (*Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil {
			if !errors.Is(err, os.ErrNotExist) {
				return nil, fmt.Errorf("failed loading env file %s: %w", envFile, err)
			}
		}
	} else {
		// Ignore the returned error here; missing .env files are acceptable when
		// configuration comes from the environment directly.
		_ = godotenv.Load()
	}

	milkPrice, err := getenvFloat("DEFAULT_MILK_PRICE", 30)
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		Server: ServerConfig{
			Port: getenvWithDefault("APP_PORT", "8080"),
		},
		Log: LogConfig{
			Level: getenvWithDefault("LOG_LEVEL", "info"),
		},
		WhatsApp: WhatsAppConfig{
			AccessToken:   os.Getenv("WHATSAPP_TOKEN"),
			PhoneNumberID: os.Getenv("WHATSAPP_PHONE_NUMBER_ID"),
			VerifyToken:   os.Getenv("META_VERIFY_TOKEN"),
			BaseURL:       getenvWithDefault("WHATSAPP_BASE_URL", "https://graph.facebook.com"),
			APIVersion:    getenvWithDefault("WHATSAPP_API_VERSION", "v20.0"),
		},
		Email: EmailConfig{
			APIKey:  os.Getenv("EMAIL_API_KEY"),
			From:    os.Getenv("EMAIL_FROM"),
			BaseURL: getenvWithDefault("EMAIL_BASE_URL", "https://api.resend.com"),
		},
		Sheets: SheetsConfig{
			CredentialsPath: os.Getenv("GOOGLE_SHEETS_CREDENTIALS_PATH"),
			SpreadsheetID:   os.Getenv("GOOGLE_SHEET_REPORT_ID"),
		},
		Notifications: NotificationsConfig{
			CronSchedule: getenvWithDefault("DAILY_NOTIFICATIONS_CRON", "0 8 * * *"),
			Timezone:     getenvWithDefault("TIMEZONE", "Europe/Istanbul"),
		},
		Milk: MilkConfig{
			DefaultPricePerLiter: milkPrice,
		},
		MongoDB: MongoDBConfig{
			URI:    getenvWithDefault("MONGODB_URI", "mongodb://localhost:27017"),
			DBName: getenvWithDefault("MONGODB_DB_NAME", "livestock"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate ensures that required configuration fields are populated.
func (c *Config) Validate() error {
	if c == nil {
		return errors.New("config is nil")
	}

	if c.Server.Port == "" {
		return errors.New("APP_PORT must be provided")
	}

	switch {
	case c.WhatsApp.AccessToken == "":
		return errors.New("WHATSAPP_TOKEN must be provided")
	case c.WhatsApp.PhoneNumberID == "":
		return errors.New("WHATSAPP_PHONE_NUMBER_ID must be provided")
	case c.WhatsApp.VerifyToken == "":
		return errors.New("META_VERIFY_TOKEN must be provided")
	}

	if c.WhatsApp.BaseURL == "" {
		return errors.New("WHATSAPP_BASE_URL must not be empty")
	}

	if c.WhatsApp.APIVersion == "" {
		return errors.New("WHATSAPP_API_VERSION must not be empty")
	}

	switch {
	case c.Email.APIKey == "":
		return errors.New("EMAIL_API_KEY must be provided")
	case c.Email.From == "":
		return errors.New("EMAIL_FROM must be provided")
	case c.Email.BaseURL == "":
		return errors.New("EMAIL_BASE_URL must not be empty")
	}

	if c.Sheets.Enabled() && c.Sheets.SpreadsheetID == "" {
		return errors.New("GOOGLE_SHEET_REPORT_ID must be provided when GOOGLE_SHEETS_CREDENTIALS_PATH is set")
	}

	if c.Notifications.CronSchedule == "" {
		return errors.New("DAILY_NOTIFICATIONS_CRON must be provided")
	}

	if _, err := c.Notifications.Location(); err != nil {
		return fmt.Errorf("TIMEZONE is invalid: %w", err)
	}

	if c.Milk.DefaultPricePerLiter < 0 {
		return errors.New("DEFAULT_MILK_PRICE must not be negative")
	}

	if c.MongoDB.URI == "" {
		return errors.New("MONGODB_URI must be provided")
	}

	return nil
}

func getenvWithDefault(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getenvFloat(key string, fallback float64) (float64, error) {
	value := os.Getenv(key)
	if value == "" {
		return fallback, nil
	}
	f, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0, fmt.Errorf("%s must be numeric: %w", key, err)
	}
	return f, nil
}
