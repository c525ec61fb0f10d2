package utils

import (
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	App     AppConfig
	Booking BookingConfig
	Session SessionConfig
	OTP     OTPConfig
}

type AppConfig struct {
	Name    string
	Port    string
	Debug   bool
	LogPath string
}

type BookingConfig struct {
	BaseURL        string
	TimeoutSeconds int
}

type SessionConfig struct {
	TTLMinutes int
}

type OTPConfig struct {
	Length                int
	ResendCooldownSeconds int
}

func LoadConfig() (*Config, error) {
	viper.SetConfigFile(".env")
	viper.SetConfigType("env")

	// Set defaults
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("DEBUG", false)
	viper.SetDefault("LOG_PATH", "logs/")
	viper.SetDefault("BOOKING_API_BASE", "http://localhost:5000")
	viper.SetDefault("BOOKING_TIMEOUT_SECONDS", 15)
	viper.SetDefault("SESSION_TTL_MINUTES", 60)
	viper.SetDefault("OTP_LENGTH", 6)
	viper.SetDefault("OTP_RESEND_COOLDOWN_SECONDS", 120)

	if err := viper.ReadInConfig(); err != nil {
		// .env is optional; env vars and defaults still apply
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
	}

	viper.AutomaticEnv()

	config := &Config{
		App: AppConfig{
			Name:    viper.GetString("APP_NAME"),
			Port:    viper.GetString("PORT"),
			Debug:   viper.GetBool("DEBUG"),
			LogPath: viper.GetString("LOG_PATH"),
		},
		Booking: BookingConfig{
			BaseURL:        viper.GetString("BOOKING_API_BASE"),
			TimeoutSeconds: viper.GetInt("BOOKING_TIMEOUT_SECONDS"),
		},
		Session: SessionConfig{
			TTLMinutes: viper.GetInt("SESSION_TTL_MINUTES"),
		},
		OTP: OTPConfig{
			Length:                viper.GetInt("OTP_LENGTH"),
			ResendCooldownSeconds: viper.GetInt("OTP_RESEND_COOLDOWN_SECONDS"),
		},
	}

	return config, nil
}

func (c *BookingConfig) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}

func (c *SessionConfig) TTL() time.Duration {
	return time.Duration(c.TTLMinutes) * time.Minute
}

func (c *OTPConfig) ResendCooldown() time.Duration {
	return time.Duration(c.ResendCooldownSeconds) * time.Second
}
