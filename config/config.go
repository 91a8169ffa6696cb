package config

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cast"
	"gopkg.in/yaml.v3"
)

type SystemConfig struct {
	Listen   string `yaml:"listen" json:"listen"`
	Location string `yaml:"location" json:"location"`
	Debug    bool   `yaml:"debug" json:"debug"`
	SeedData bool   `yaml:"seed_data" json:"seed_data"`
}

type LoggerConfig struct {
	Mode       string `yaml:"mode" json:"mode"` // development or production
	FileEnable bool   `yaml:"file_enable" json:"file_enable"`
	Filename   string `yaml:"filename" json:"filename"`
}

type DatabaseConfig struct {
	// Type selects the store backend: "memory" or "postgres".
	Type string `yaml:"type" json:"type"`
	Host string `yaml:"host" json:"host"`
	Port int    `yaml:"port" json:"port"`
	Name string `yaml:"name" json:"name"`
	User string `yaml:"user" json:"user"`
	Pass string `yaml:"pass" json:"pass"`
}

// DSN renders the postgres connection string.
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=disable",
		d.Host, d.Port, d.User, d.Pass, d.Name)
}

type RatesConfig struct {
	IntervalSecs int    `yaml:"interval_secs" json:"interval_secs"`
	TimeoutSecs  int    `yaml:"timeout_secs" json:"timeout_secs"`
	CryptoURL    string `yaml:"crypto_url" json:"crypto_url"`
	ForexURL     string `yaml:"forex_url" json:"forex_url"`
}

func (r RatesConfig) Interval() time.Duration {
	return time.Duration(r.IntervalSecs) * time.Second
}

func (r RatesConfig) Timeout() time.Duration {
	return time.Duration(r.TimeoutSecs) * time.Second
}

type AppConfig struct {
	System   SystemConfig   `yaml:"system" json:"system"`
	Logger   LoggerConfig   `yaml:"logger" json:"logger"`
	Database DatabaseConfig `yaml:"database" json:"database"`
	Rates    RatesConfig    `yaml:"rates" json:"rates"`
}

func Default() *AppConfig {
	return &AppConfig{
		System: SystemConfig{
			Listen:   ":8001",
			Location: "America/Argentina/Buenos_Aires",
		},
		Logger: LoggerConfig{
			Mode:     "development",
			Filename: "mathi-phone.log",
		},
		Database: DatabaseConfig{
			Type: "memory",
			Host: "127.0.0.1",
			Port: 5432,
			Name: "mathi_phone",
			User: "postgres",
			Pass: "postgres",
		},
		Rates: RatesConfig{
			IntervalSecs: 300,
			TimeoutSecs:  10,
			CryptoURL:    "https://api.coingecko.com/api/v3/simple/price",
			ForexURL:     "https://api.exchangerate-api.com/v4/latest/USD",
		},
	}
}

// Load reads the YAML file when it exists, then applies environment
// overrides on top. A missing file is not an error.
func Load(path string) (*AppConfig, error) {
	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case os.IsNotExist(err):
			// fall through to env overrides
		case err != nil:
			return nil, fmt.Errorf("read config %s: %w", path, err)
		default:
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("parse config %s: %w", path, err)
			}
		}
	}
	cfg.applyEnv()
	return cfg, nil
}

func (c *AppConfig) applyEnv() {
	setEnvString(&c.System.Listen, "MATHI_LISTEN")
	setEnvString(&c.System.Location, "MATHI_LOCATION")
	setEnvBool(&c.System.Debug, "MATHI_DEBUG")
	setEnvBool(&c.System.SeedData, "MATHI_SEED_DATA")

	setEnvString(&c.Logger.Mode, "MATHI_LOGGER_MODE")
	setEnvBool(&c.Logger.FileEnable, "MATHI_LOGGER_FILE_ENABLE")
	setEnvString(&c.Logger.Filename, "MATHI_LOGGER_FILENAME")

	setEnvString(&c.Database.Type, "MATHI_DB_TYPE")
	setEnvString(&c.Database.Host, "MATHI_DB_HOST")
	setEnvInt(&c.Database.Port, "MATHI_DB_PORT")
	setEnvString(&c.Database.Name, "MATHI_DB_NAME")
	setEnvString(&c.Database.User, "MATHI_DB_USER")
	setEnvString(&c.Database.Pass, "MATHI_DB_PASS")

	setEnvInt(&c.Rates.IntervalSecs, "MATHI_RATES_INTERVAL_SECS")
	setEnvInt(&c.Rates.TimeoutSecs, "MATHI_RATES_TIMEOUT_SECS")
	setEnvString(&c.Rates.CryptoURL, "MATHI_RATES_CRYPTO_URL")
	setEnvString(&c.Rates.ForexURL, "MATHI_RATES_FOREX_URL")
}

func setEnvString(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

func setEnvInt(dst *int, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = cast.ToInt(v)
	}
}

func setEnvBool(dst *bool, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = cast.ToBool(v)
	}
}
