package config

import (
	"errors"
	"strings"
	"time"
	_ "time/tzdata"

	"github.com/joho/godotenv"
	"github.com/romana/rlog"
	"github.com/spf13/viper"
)

type AppConfig struct {
	Port              string
	DatabaseURL       string
	JWTSecret         string
	JWTExpiry         time.Duration
	AllowRegistration bool
	CORSOrigins       []string
	Timezone          *time.Location

	MediaDir      string
	MediaBaseURL  string
	MaxImageBytes int64

	VAPIDPublicKey  string
	VAPIDPrivateKey string
	VAPIDSubscriber string
	PushConcurrency int
	PushSendQPS     float64

	TwilioAccountSID     string
	TwilioAuthToken      string
	TwilioWhatsAppNumber string

	RedisAddr        string
	RedisPassword    string
	RedisDB          int
	SettingsCacheTTL time.Duration

	OTLPEndpoint         string
	SlowRequestThreshold time.Duration
}

func (c *AppConfig) PushEnabled() bool {
	return c.VAPIDPublicKey != "" && c.VAPIDPrivateKey != ""
}

func (c *AppConfig) TwilioEnabled() bool {
	return c.TwilioAccountSID != "" && c.TwilioAuthToken != "" && c.TwilioWhatsAppNumber != ""
}

// Load reads .env (when present) and the process environment.
func Load() (*AppConfig, error) {
	if err := godotenv.Load(); err != nil {
		rlog.Debug("No .env file found")
	}

	v := viper.New()
	v.AutomaticEnv()

	v.SetDefault("PORT", "8080")
	v.SetDefault("JWT_EXPIRY_HOURS", 24)
	v.SetDefault("ALLOW_REGISTRATION", false)
	v.SetDefault("CORS_ORIGINS", "http://localhost:3000")
	v.SetDefault("APP_TIMEZONE", "Asia/Kolkata")
	v.SetDefault("MEDIA_DIR", "./media")
	v.SetDefault("MEDIA_BASE_URL", "/media")
	v.SetDefault("MAX_IMAGE_BYTES", 5<<20)
	v.SetDefault("VAPID_SUBSCRIBER", "admin@allure-boutique.com")
	v.SetDefault("PUSH_CONCURRENCY", 8)
	v.SetDefault("PUSH_SEND_QPS", 0)
	v.SetDefault("REDIS_DB", 0)
	v.SetDefault("SETTINGS_CACHE_TTL", "5m")
	v.SetDefault("SLOW_REQUEST_THRESHOLD", "200ms")

	cfg := &AppConfig{
		Port:                 v.GetString("PORT"),
		DatabaseURL:          v.GetString("DB_URL"),
		JWTSecret:            v.GetString("JWT_SECRET"),
		JWTExpiry:            time.Duration(v.GetInt("JWT_EXPIRY_HOURS")) * time.Hour,
		AllowRegistration:    v.GetBool("ALLOW_REGISTRATION"),
		CORSOrigins:          splitList(v.GetString("CORS_ORIGINS")),
		MediaDir:             v.GetString("MEDIA_DIR"),
		MediaBaseURL:         strings.TrimRight(v.GetString("MEDIA_BASE_URL"), "/"),
		MaxImageBytes:        v.GetInt64("MAX_IMAGE_BYTES"),
		VAPIDPublicKey:       v.GetString("VAPID_PUBLIC_KEY"),
		VAPIDPrivateKey:      v.GetString("VAPID_PRIVATE_KEY"),
		VAPIDSubscriber:      strings.TrimPrefix(v.GetString("VAPID_SUBSCRIBER"), "mailto:"),
		PushConcurrency:      v.GetInt("PUSH_CONCURRENCY"),
		PushSendQPS:          v.GetFloat64("PUSH_SEND_QPS"),
		TwilioAccountSID:     v.GetString("TWILIO_ACCOUNT_SID"),
		TwilioAuthToken:      v.GetString("TWILIO_AUTH_TOKEN"),
		TwilioWhatsAppNumber: v.GetString("TWILIO_WHATSAPP_NUMBER"),
		RedisAddr:            v.GetString("REDIS_ADDR"),
		RedisPassword:        v.GetString("REDIS_PASSWORD"),
		RedisDB:              v.GetInt("REDIS_DB"),
		SettingsCacheTTL:     v.GetDuration("SETTINGS_CACHE_TTL"),
		OTLPEndpoint:         v.GetString("OTEL_EXPORTER_OTLP_ENDPOINT"),
		SlowRequestThreshold: v.GetDuration("SLOW_REQUEST_THRESHOLD"),
	}

	loc, err := time.LoadLocation(v.GetString("APP_TIMEZONE"))
	if err != nil {
		return nil, err
	}
	cfg.Timezone = loc

	if cfg.DatabaseURL == "" {
		return nil, errors.New("DB_URL not set")
	}
	if cfg.JWTSecret == "" {
		return nil, errors.New("JWT_SECRET not set")
	}
	if cfg.PushConcurrency < 1 {
		cfg.PushConcurrency = 1
	}
	return cfg, nil
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
