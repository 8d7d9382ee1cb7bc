package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"lostandfound-backend/internal/matching"
)

// Config holds the application's configuration.
type Config struct {
	Database struct {
		URL string `yaml:"url"`
	} `yaml:"database"`
	EmbeddingService struct {
		URL string `yaml:"url"`
	} `yaml:"embedding_service"`
	Storage struct {
		Endpoint  string `yaml:"endpoint"`
		AccessKey string `yaml:"access_key"`
		SecretKey string `yaml:"secret_key"`
		Bucket    string `yaml:"bucket"`
		UseSSL    bool   `yaml:"use_ssl"`
	} `yaml:"storage"`
	Notifications struct {
		SMTPHost       string `yaml:"smtp_host"`
		SMTPPort       int    `yaml:"smtp_port"`
		SMTPFrom       string `yaml:"smtp_from"`
		SMTPPassword   string `yaml:"smtp_password"`
		TelegramToken  string `yaml:"telegram_token"`
		TelegramChatID int64  `yaml:"telegram_chat_id"`
	} `yaml:"notifications"`
	Auth struct {
		JWTSecret string `yaml:"jwt_secret"`
	} `yaml:"auth"`
	Matching struct {
		Weights    matching.Weights    `yaml:"weights"`
		Thresholds matching.Thresholds `yaml:"thresholds"`
	} `yaml:"matching"`
	Server struct {
		Port string `yaml:"port"`
	} `yaml:"server"`
}

// LoadConfig reads configuration from the specified YAML file. Secrets
// can be overridden through the environment, so the YAML file can be
// committed without them.
func LoadConfig(configPath string) (*Config, error) {
	config := &Config{}

	file, err := os.Open(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open config file: %w", err)
	}
	defer file.Close()

	decoder := yaml.NewDecoder(file)
	if err := decoder.Decode(config); err != nil {
		return nil, fmt.Errorf("failed to decode config file: %w", err)
	}

	applyEnvOverrides(config)
	applyDefaults(config)

	if config.Auth.JWTSecret == "" {
		return nil, fmt.Errorf("auth.jwt_secret must be set (config file or JWT_SECRET)")
	}

	return config, nil
}

func applyEnvOverrides(config *Config) {
	overrideString(&config.Database.URL, "DATABASE_URL")
	overrideString(&config.EmbeddingService.URL, "EMBEDDING_SERVICE_URL")
	overrideString(&config.Storage.AccessKey, "MINIO_ACCESS_KEY")
	overrideString(&config.Storage.SecretKey, "MINIO_SECRET_KEY")
	overrideString(&config.Notifications.SMTPPassword, "SMTP_PASSWORD")
	overrideString(&config.Notifications.TelegramToken, "TELEGRAM_BOT_TOKEN")
	overrideString(&config.Auth.JWTSecret, "JWT_SECRET")
}

func overrideString(target *string, env string) {
	if v := os.Getenv(env); v != "" {
		*target = v
	}
}

// applyDefaults fills in zero-valued tuning knobs so a config file only
// needs to name the ones it changes.
func applyDefaults(config *Config) {
	if config.Matching.Weights == (matching.Weights{}) {
		config.Matching.Weights = matching.DefaultWeights()
	}
	if config.Matching.Thresholds == (matching.Thresholds{}) {
		config.Matching.Thresholds = matching.DefaultThresholds()
	}
	if config.Server.Port == "" {
		config.Server.Port = ":8080"
	}
}
