// Package config loads backend connection settings.
package config

import (
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
	"github.com/mitchellh/go-homedir"
	"github.com/spf13/afero"
	"github.com/spf13/viper"
)

var AppFs = afero.NewOsFs()

// Config holds the backend connection settings.
type Config struct {
	URL          string
	ServiceKey   string
	ExecFunction string
	Timeout      time.Duration
}

// Load reads configuration from config files, the environment, and
// .env files. SUPABASE_URL and SUPABASE_SERVICE_KEY are required; the
// rest has defaults.
func Load() (*Config, error) {
	home, err := homedir.Dir()
	if err != nil {
		return nil, err
	}

	viper.SetConfigName(".sqlbridge")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath(home)
	viper.AddConfigPath(filepath.Join(home, ".config", "sqlbridge"))

	viper.SetEnvPrefix("SQLBRIDGE")
	viper.AutomaticEnv()

	viper.SetDefault("exec_function", "exec_sql")
	viper.SetDefault("timeout_seconds", 10)

	// Config file is optional.
	_ = viper.ReadInConfig()

	// .env first, then .env.local with higher priority.
	if _, err := AppFs.Stat(".env"); err == nil {
		_ = godotenv.Load()
	}
	if _, err := AppFs.Stat(".env.local"); err == nil {
		_ = godotenv.Overload(".env.local")
	}

	cfg := &Config{
		URL:          os.Getenv("SUPABASE_URL"),
		ServiceKey:   os.Getenv("SUPABASE_SERVICE_KEY"),
		ExecFunction: viper.GetString("exec_function"),
		Timeout:      time.Duration(viper.GetInt("timeout_seconds")) * time.Second,
	}
	if cfg.URL == "" {
		cfg.URL = viper.GetString("url")
	}
	if cfg.ServiceKey == "" {
		cfg.ServiceKey = viper.GetString("service_key")
	}

	if cfg.URL == "" {
		return nil, fmt.Errorf("backend URL not configured: set SUPABASE_URL or url in .sqlbridge.yaml")
	}
	if cfg.ServiceKey == "" {
		return nil, fmt.Errorf("service key not configured: set SUPABASE_SERVICE_KEY or service_key in .sqlbridge.yaml")
	}

	return cfg, nil
}

// HTTPClient builds an http.Client honoring the configured timeout.
func (c *Config) HTTPClient() *http.Client {
	timeout := c.Timeout
	if timeout == 0 {
		timeout = 10 * time.Second
	}
	return &http.Client{Timeout: timeout}
}
