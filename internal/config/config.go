package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds every externally resolved setting. The five endpoint
// values are required; Load fails naming each one that is unset.
type Config struct {
	RegistryAPIURL    string `mapstructure:"REGISTRY_API_URL"`
	IDCAPIURL         string `mapstructure:"IDC_API_URL"`
	IDCCollectionURL  string `mapstructure:"IDC_COLLECTION_URL"`
	TCIAAPIURL        string `mapstructure:"TCIA_API_URL"`
	TCIACollectionURL string `mapstructure:"TCIA_COLLECTION_URL"`

	HTTPTimeout       time.Duration `mapstructure:"HTTP_TIMEOUT"`
	SeriesConcurrency int           `mapstructure:"SERIES_CONCURRENCY"`
}

var required = []string{
	"REGISTRY_API_URL",
	"IDC_API_URL",
	"IDC_COLLECTION_URL",
	"TCIA_API_URL",
	"TCIA_COLLECTION_URL",
}

// Load resolves settings from the environment (a .env file, if any,
// is loaded by the root command before this runs).
func Load() (*Config, error) {
	v := viper.New()
	v.AutomaticEnv()

	v.SetDefault("HTTP_TIMEOUT", 30*time.Second)
	v.SetDefault("SERIES_CONCURRENCY", 4)

	// Bind env vars explicitly so Unmarshal picks them up
	for _, key := range required {
		if err := v.BindEnv(key); err != nil {
			return nil, fmt.Errorf("bind %s: %w", key, err)
		}
	}
	for _, key := range []string{"HTTP_TIMEOUT", "SERIES_CONCURRENCY"} {
		if err := v.BindEnv(key); err != nil {
			return nil, fmt.Errorf("bind %s: %w", key, err)
		}
	}

	var missing []string
	for _, key := range required {
		if v.GetString(key) == "" {
			missing = append(missing, key)
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("missing required settings: %s", strings.Join(missing, ", "))
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	return cfg, nil
}
