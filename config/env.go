package config

import (
	"errors"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	Port           string
	DBDriver       string
	DBURL          string
	DBAutoMigrate  bool
	JWTSecret      string
	JWTExpiryHours int
	CORSOrigins    []string
	RevalidateCron string

	KafkaBrokers []string
	KafkaTopic   string

	TwilioAccountSID  string
	TwilioAuthToken   string
	TwilioPhoneNumber string
	NotifyPhoneNumber string
}

// Load reads .env (if present) and then the process environment.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, relying on system env")
	}

	cfg := &Config{
		Port:              getEnv("PORT", "8080"),
		DBDriver:          strings.ToLower(getEnv("DB_DRIVER", "postgres")),
		DBURL:             os.Getenv("DB_URL"),
		DBAutoMigrate:     true,
		JWTSecret:         os.Getenv("JWT_SECRET"),
		JWTExpiryHours:    24,
		CORSOrigins:       splitList(getEnv("CORS_ORIGINS", "http://localhost:3000")),
		RevalidateCron:    getEnv("REVALIDATE_CRON", "@every 10m"),
		KafkaBrokers:      splitList(os.Getenv("KAFKA_BROKERS")),
		KafkaTopic:        getEnv("KAFKA_TOPIC", "invoice_events"),
		TwilioAccountSID:  os.Getenv("TWILIO_ACCOUNT_SID"),
		TwilioAuthToken:   os.Getenv("TWILIO_AUTH_TOKEN"),
		TwilioPhoneNumber: os.Getenv("TWILIO_PHONE_NUMBER"),
		NotifyPhoneNumber: os.Getenv("NOTIFY_PHONE_NUMBER"),
	}

	if v := os.Getenv("DB_AUTO_MIGRATE"); v != "" {
		lv := strings.ToLower(v)
		if lv == "false" || lv == "0" || lv == "no" {
			cfg.DBAutoMigrate = false
		}
	}
	if env := os.Getenv("JWT_EXPIRY_HOURS"); env != "" {
		if h, err := strconv.Atoi(env); err == nil && h > 0 {
			cfg.JWTExpiryHours = h
		}
	}

	if cfg.DBURL == "" {
		return nil, errors.New("DB_URL is not set")
	}
	if cfg.JWTSecret == "" {
		return nil, errors.New("JWT_SECRET is not set")
	}
	return cfg, nil
}

// SMSEnabled reports whether every Twilio setting needed for invoice alerts is present.
func (c *Config) SMSEnabled() bool {
	return c.TwilioAccountSID != "" && c.TwilioAuthToken != "" &&
		c.TwilioPhoneNumber != "" && c.NotifyPhoneNumber != ""
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
