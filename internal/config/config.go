package config

import (
	"log"
	"os"

	"github.com/goccy/go-yaml"
)

// Config is the application configuration, loaded from config.yaml.
// Secrets (DATABASE_URL) stay in the environment; see .env.local.
type Config struct {
	Port           string   `yaml:"port"`
	AllowedOrigins []string `yaml:"allowed_origins"`

	Search    SearchConfig    `yaml:"search"`
	Directory DirectoryConfig `yaml:"directory"`
}

type SearchConfig struct {
	// DebounceMillis is the quiet period after the last filter keystroke
	// before the filter is considered settled.
	DebounceMillis int `yaml:"debounce_ms"`
	// URLWriteMillis is the second debounce stage, in front of the
	// query-string write that triggers the remote query.
	URLWriteMillis     int     `yaml:"url_write_ms"`
	RateLimitPerSecond float64 `yaml:"rate_limit_per_second"`
	RateLimitBurst     int     `yaml:"rate_limit_burst"`
}

type DirectoryConfig struct {
	DistrictEndpoint      string `yaml:"district_endpoint"`
	PrivateSchoolEndpoint string `yaml:"private_school_endpoint"`
	PublicSchoolEndpoint  string `yaml:"public_school_endpoint"`
	TimeoutSeconds        int    `yaml:"timeout_seconds"`
}

// Default returns the configuration used when no config.yaml is present.
func Default() Config {
	return Config{
		Port: "5050",
		AllowedOrigins: []string{
			"http://localhost:5173",
			"http://localhost:5174",
		},
		Search: SearchConfig{
			DebounceMillis:     500,
			URLWriteMillis:     500,
			RateLimitPerSecond: 5,
			RateLimitBurst:     10,
		},
		Directory: DirectoryConfig{
			TimeoutSeconds: 30,
		},
	}
}

// Load reads config.yaml (or the file named by CONFIG_PATH) on top of the
// defaults. A missing file is fine; a malformed one is fatal.
func Load() Config {
	cfg := Default()

	path := os.Getenv("CONFIG_PATH")
	if path == "" {
		path = "config.yaml"
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			log.Fatal("Failed to read config file: ", err)
		}
		return cfg
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		log.Fatal("Failed to parse config file: ", err)
	}

	log.Printf("Loaded config from %s", path)
	return cfg
}
