package config

import (
	"os"

	"gopkg.in/yaml.v3"
)

type TelegramConfig struct {
	BotToken string `yaml:"bot_token"`
	ChatID   int64  `yaml:"chat_id"`
}

// WhatsAppConfig — credenciais da WhatsApp Business Cloud API.
type WhatsAppConfig struct {
	PhoneNumberID string `yaml:"phone_number_id"`
	AccessToken   string `yaml:"access_token"`
}

// GatewayConfig — gateway HTTP de WhatsApp (alternativa à API oficial).
type GatewayConfig struct {
	APIURL string `yaml:"api_url"`
	APIKey string `yaml:"api_key"`
	DryRun bool   `yaml:"dry_run"`
}

type NotificationsConfig struct {
	Telegram           TelegramConfig `yaml:"telegram"`
	WhatsApp           WhatsAppConfig `yaml:"whatsapp"`
	Gateway            GatewayConfig  `yaml:"gateway"`
	DefaultCountryCode string         `yaml:"default_country_code"`
	TimeoutSeconds     int            `yaml:"timeout_seconds"`
}

type LinksConfig struct {
	BaseURL  string `yaml:"base_url"`
	TTLHours int    `yaml:"ttl_hours"`
}

type Config struct {
	Server struct {
		Port int `yaml:"port"`
	} `yaml:"server"`
	Database struct {
		DSN string `yaml:"url"`
	} `yaml:"database"`
	Auth struct {
		JWTSecret  string `yaml:"jwt_secret"`
		CronSecret string `yaml:"cron_secret"`
	} `yaml:"auth"`
	Email struct {
		SMTPHost     string `yaml:"smtp_host"`
		SMTPPort     int    `yaml:"smtp_port"`
		SMTPUser     string `yaml:"smtp_user"`
		SMTPPassword string `yaml:"smtp_password"`
		FromEmail    string `yaml:"from_email"`
	} `yaml:"email"`
	Scheduler struct {
		IntervalMinutes int `yaml:"interval_minutes"`
	} `yaml:"scheduler"`
	Timezone      string              `yaml:"timezone"`
	Links         LinksConfig         `yaml:"links"`
	Notifications NotificationsConfig `yaml:"notifications"`
}

func LoadConfig() *Config {
	path := os.Getenv("CONFIG_PATH")
	if path == "" {
		path = "config/config.yaml"
	}
	f, err := os.Open(path)
	if err != nil {
		panic("Failed to open " + path + ": " + err.Error())
	}
	defer f.Close()

	var cfg Config
	if err := yaml.NewDecoder(f).Decode(&cfg); err != nil {
		panic("Failed to parse " + path + ": " + err.Error())
	}

	if cfg.Timezone == "" {
		cfg.Timezone = "America/Sao_Paulo"
	}
	if cfg.Links.TTLHours == 0 {
		cfg.Links.TTLHours = 24 * 7
	}
	if cfg.Notifications.DefaultCountryCode == "" {
		cfg.Notifications.DefaultCountryCode = "55"
	}
	if cfg.Notifications.TimeoutSeconds == 0 {
		cfg.Notifications.TimeoutSeconds = 10
	}
	return &cfg
}
