package config

import (
	"errors"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type AppCfg struct {
	Env          string        `mapstructure:"env"`
	Port         int           `mapstructure:"port"`
	BaseURL      string        `mapstructure:"base_url"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	IdleTimeout  time.Duration `mapstructure:"idle_timeout"`
}

type MongoCfg struct {
	URI      string `mapstructure:"uri"`
	Database string `mapstructure:"database"`
}

type JWTCfg struct {
	AccessSecret     string `mapstructure:"access_secret"`
	RefreshSecret    string `mapstructure:"refresh_secret"`
	AccessTTLMinutes int    `mapstructure:"access_ttl_minutes"`
	RefreshTTLDays   int    `mapstructure:"refresh_ttl_days"`
}

type SecurityCfg struct {
	ResetTokenTTLMinutes int `mapstructure:"reset_token_ttl_minutes"`
}

type AWSCfg struct {
	Region string `mapstructure:"region"`
	Bucket string `mapstructure:"bucket"`
}

type MailCfg struct {
	APIKey      string `mapstructure:"api_key"`
	SenderEmail string `mapstructure:"sender_email"`
	SenderName  string `mapstructure:"sender_name"`
}

type Config struct {
	App      AppCfg      `mapstructure:"app"`
	Mongo    MongoCfg    `mapstructure:"mongo"`
	JWT      JWTCfg      `mapstructure:"jwt"`
	Security SecurityCfg `mapstructure:"security"`
	AWS      AWSCfg      `mapstructure:"aws"`
	Mail     MailCfg     `mapstructure:"mail"`
}

// Load reads config.yaml and applies environment overrides. Secrets are
// expected to come from the environment in anything but local development.
func Load(path string) (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetConfigFile(path)
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		return nil, err
	}
	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, err
	}

	override := func(env string, apply func(string)) {
		if s := v.GetString(env); s != "" {
			apply(s)
		}
	}
	override("APP_ENV", func(s string) { cfg.App.Env = s })
	override("MONGO_URI", func(s string) { cfg.Mongo.URI = s })
	override("MONGO_DB", func(s string) { cfg.Mongo.Database = s })
	override("ACCESS_TOKEN_SECRET", func(s string) { cfg.JWT.AccessSecret = s })
	override("REFRESH_TOKEN_SECRET", func(s string) { cfg.JWT.RefreshSecret = s })
	override("AWS_REGION", func(s string) { cfg.AWS.Region = s })
	override("AWS_BUCKET", func(s string) { cfg.AWS.Bucket = s })
	override("BREVO_API_KEY", func(s string) { cfg.Mail.APIKey = s })
	override("MAIL_SENDER_EMAIL", func(s string) { cfg.Mail.SenderEmail = s })

	if cfg.App.Port == 0 {
		cfg.App.Port = 8000
	}
	if cfg.JWT.AccessTTLMinutes == 0 {
		cfg.JWT.AccessTTLMinutes = 15
	}
	if cfg.JWT.RefreshTTLDays == 0 {
		cfg.JWT.RefreshTTLDays = 10
	}
	if cfg.Security.ResetTokenTTLMinutes == 0 {
		cfg.Security.ResetTokenTTLMinutes = 20
	}

	if cfg.Mongo.URI == "" {
		return nil, errors.New("MONGO_URI is required")
	}
	if cfg.JWT.AccessSecret == "" || cfg.JWT.RefreshSecret == "" {
		return nil, errors.New("ACCESS_TOKEN_SECRET and REFRESH_TOKEN_SECRET are required")
	}

	return cfg, nil
}
