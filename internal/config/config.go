package config

import (
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Backends selectable for the location source and the checkpoint store.
const (
	BackendPostgres = "postgres"
	BackendFile     = "file"
	BackendBadger   = "badger"
)

// Config holds the configuration settings for one prospector run.
//
// Fields:
// - Env: The current environment (e.g., local, development, production).
// - ProviderType: The places directory to query (places, legacy).
// - APIKey: The API key of the places directory.
// - RateLimit: Maximum directory requests per second.
// - Alerts: Webhook settings.
// - LocationCap: Maximum number of locations processed per run.
// - Categories: Place categories queried for every location.
// - Locations: Where the ordered locations come from.
// - Checkpoint: Where the resume cursor is stored.
// - PushgatewayURL: Prometheus Pushgateway receiving the run metrics, empty to disable.
// - Database: Configuration settings for the PostgreSQL database.
type Config struct {
	Env            string           `yaml:"env"`
	ProviderType   string           `yaml:"provider.type"`
	APIKey         string           `yaml:"provider.api_key"`
	RateLimit      int              `yaml:"provider.rate_limit"`
	Alerts         AlertConfig      `yaml:"alerts"`
	LocationCap    int              `yaml:"location_cap"`
	Categories     []string         `yaml:"categories"`
	Locations      LocationsConfig  `yaml:"locations"`
	Checkpoint     CheckpointConfig `yaml:"checkpoint"`
	PushgatewayURL string           `yaml:"pushgateway_url"`
	Database       PostgresConfig   `yaml:"postgres"`
}

// AlertConfig holds the webhook settings.
type AlertConfig struct {
	WebhookURL string        `yaml:"webhook_url"` // WebhookURL is the destination of alerts, empty disables delivery.
	Pause      time.Duration `yaml:"pause"`       // Pause is observed after every delivered alert.
}

// LocationsConfig selects the location source.
type LocationsConfig struct {
	Source string `yaml:"source"` // Source is postgres or file.
	File   string `yaml:"file"`   // File is the YAML file read when Source is file.
}

// CheckpointConfig selects the checkpoint store.
type CheckpointConfig struct {
	Backend string `yaml:"backend"` // Backend is postgres or badger.
	Path    string `yaml:"path"`    // Path is the badger directory, empty for in-memory.
}

// PostgresConfig struct holds the configuration details for connecting to a PostgreSQL database.
type PostgresConfig struct {
	Host     string `yaml:"host"`     // Host is the database server address.
	Port     string `yaml:"port"`     // Port is the database server port.
	User     string `yaml:"user"`     // User is the database user.
	Password string `yaml:"password"` // Password is the database user's password.
	Name     string `yaml:"db_name"`  // Name is the name of the database.
}

// MustLoad reads the configuration from the environment and an optional .env file.
// It panics when a value cannot be parsed.
func MustLoad() *Config {
	_ = godotenv.Load()

	v := viper.New()
	v.AutomaticEnv()
	setDefaults(v)

	rateLimit, err := strconv.Atoi(v.GetString("PROSPECTOR_RATE_LIMIT"))
	if err != nil {
		panic("failed to parse rate limit from configuration, must be an integer")
	}

	pause, err := time.ParseDuration(v.GetString("PROSPECTOR_ALERT_PAUSE"))
	if err != nil {
		panic("failed to parse alert pause from configuration")
	}

	locationCap, err := strconv.Atoi(v.GetString("PROSPECTOR_LOCATION_CAP"))
	if err != nil || locationCap <= 0 {
		panic("failed to parse location cap from configuration, must be a positive integer")
	}

	return &Config{
		Env:          v.GetString("PROSPECTOR_ENV"),
		ProviderType: v.GetString("PROSPECTOR_PROVIDER_TYPE"),
		APIKey:       v.GetString("PROSPECTOR_PROVIDER_KEY"),
		RateLimit:    rateLimit,
		Alerts: AlertConfig{
			WebhookURL: v.GetString("PROSPECTOR_WEBHOOK_URL"),
			Pause:      pause,
		},
		LocationCap: locationCap,
		Categories:  splitList(v.GetString("PROSPECTOR_CATEGORIES")),
		Locations: LocationsConfig{
			Source: v.GetString("PROSPECTOR_LOCATIONS_SOURCE"),
			File:   v.GetString("PROSPECTOR_LOCATIONS_FILE"),
		},
		Checkpoint: CheckpointConfig{
			Backend: v.GetString("PROSPECTOR_CHECKPOINT_BACKEND"),
			Path:    v.GetString("PROSPECTOR_CHECKPOINT_PATH"),
		},
		PushgatewayURL: v.GetString("PROSPECTOR_PUSHGATEWAY_URL"),
		Database: PostgresConfig{
			Host:     v.GetString("DB_HOST"),
			Port:     v.GetString("DB_PORT"),
			User:     v.GetString("DB_USERNAME"),
			Password: v.GetString("DB_PASSWORD"),
			Name:     v.GetString("DB_NAME"),
		},
	}
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("PROSPECTOR_ENV", "production")
	v.SetDefault("PROSPECTOR_PROVIDER_TYPE", "places")
	v.SetDefault("PROSPECTOR_RATE_LIMIT", "5")
	v.SetDefault("PROSPECTOR_ALERT_PAUSE", "2s")
	v.SetDefault("PROSPECTOR_LOCATION_CAP", "10")
	v.SetDefault("PROSPECTOR_CATEGORIES", "store,restaurant,lodging,bar")
	v.SetDefault("PROSPECTOR_LOCATIONS_SOURCE", BackendPostgres)
	v.SetDefault("PROSPECTOR_LOCATIONS_FILE", "locations.yaml")
	v.SetDefault("PROSPECTOR_CHECKPOINT_BACKEND", BackendPostgres)
	v.SetDefault("PROSPECTOR_CHECKPOINT_PATH", "data/checkpoint")
	v.SetDefault("DB_PORT", "5432")
}

// splitList turns a comma separated value into its trimmed, non-empty items.
func splitList(raw string) []string {
	var items []string
	for _, item := range strings.Split(raw, ",") {
		if item = strings.TrimSpace(item); item != "" {
			items = append(items, item)
		}
	}

	return items
}
