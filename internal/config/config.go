// internal/config/config.go
package config

import (
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config collects everything the service reads from the environment:
// provider credentials, broker and database connection strings. Credentials
// never live in code.
type Config struct {
	OpenAIEndpoint   string
	OpenAIAPIKey     string
	OpenAIDeployment string
	OpenAIAPIVersion string
	OpenAITimeout    time.Duration

	// AMQPURL empty means no broker: batch jobs run in-process.
	AMQPURL string

	HTTPAddr string
}

// FromEnv builds a Config from environment variables. Callers load .env via
// godotenv before this runs.
func FromEnv() Config {
	cfg := Config{
		OpenAIEndpoint:   os.Getenv("AZURE_OPENAI_ENDPOINT"),
		OpenAIAPIKey:     os.Getenv("AZURE_OPENAI_API_KEY"),
		OpenAIDeployment: os.Getenv("AZURE_OPENAI_DEPLOYMENT"),
		OpenAIAPIVersion: os.Getenv("AZURE_OPENAI_API_VERSION"),
		OpenAITimeout:    30 * time.Second,
		AMQPURL:          os.Getenv("AMQP_URL"),
		HTTPAddr:         os.Getenv("HTTP_ADDR"),
	}
	if cfg.HTTPAddr == "" {
		cfg.HTTPAddr = ":8080"
	}
	if v := os.Getenv("AZURE_OPENAI_TIMEOUT"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			cfg.OpenAITimeout = d
		}
	}
	return cfg
}

// Pipeline is the YAML-backed run configuration: which sheets to read, how
// hard to truncate ranked fields, and how far ahead to look for events.
type Pipeline struct {
	Sources []string `yaml:"sources"`

	// SamplePushesFile is the free-text sample sheet the tonality training
	// data is extracted from. Empty disables the extraction.
	SamplePushesFile string `yaml:"sample_pushes_file"`

	// Truncation sizes for ranked profile fields. Zeroes fall back to the
	// aggregator defaults.
	TopTokens     int `yaml:"top_tokens"`
	TopDiscounts  int `yaml:"top_discounts"`
	TopTimes      int `yaml:"top_times"`
	TopProductIDs int `yaml:"top_product_ids"`
	TopPromoCodes int `yaml:"top_promo_codes"`

	HorizonDays        int  `yaml:"horizon_days"`
	TopVerticals       int  `yaml:"top_verticals"`
	EventsPerVertical  int  `yaml:"events_per_vertical"`
	UsePromoExclusions bool `yaml:"use_promo_exclusions"`

	CalendarFile string `yaml:"calendar_file"`
	OutputDir    string `yaml:"output_dir"`
}

// DefaultPipeline mirrors the historical automation run: seven monthly
// revenue-campaign sheets, 15 tokens in the prompt template, a 45-day event
// horizon, ten verticals by volume with up to three events each.
func DefaultPipeline() Pipeline {
	return Pipeline{
		Sources: []string{
			"data/MAY REVENUE CAMPAIGNS 2025.csv",
			"data/JUNE REVENUE CAMPAIGNS 2025.csv",
			"data/JULY REVENUE CAMPAIGNS 2025.csv",
			"data/AUGUST REVENUE CAMPAIGNS 2025.csv",
			"data/SEPTEMBER REVENUE SHEET 2025.csv",
			"data/OCTOBER REVENUE SHEET 2025.csv",
			"data/NOVEMBER REVENUE SHEET 2025.csv",
		},
		SamplePushesFile:   "data/Sample Pushes.csv",
		TopTokens:          15,
		HorizonDays:        45,
		TopVerticals:       10,
		EventsPerVertical:  3,
		UsePromoExclusions: true,
		OutputDir:          "marcom-output",
	}
}

// LoadPipeline reads a Pipeline config from YAML, filling unset fields from
// the defaults. A missing path returns the defaults unchanged.
func LoadPipeline(path string) (Pipeline, error) {
	p := DefaultPipeline()
	if path == "" {
		return p, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return p, err
	}
	if err := yaml.Unmarshal(data, &p); err != nil {
		return p, err
	}
	if p.OutputDir == "" {
		p.OutputDir = "marcom-output"
	}
	return p, nil
}
