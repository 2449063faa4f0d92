// Package config loads application configuration from file and environment.
package config

import (
	"strings"

	"github.com/rotisserie/eris"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Config holds the full application configuration. Every external provider
// credential lives here; adapters receive their section at construction and
// never read ambient globals.
type Config struct {
	Places  PlacesConfig  `yaml:"places" mapstructure:"places"`
	Jina    JinaConfig    `yaml:"jina" mapstructure:"jina"`
	Search  SearchConfig  `yaml:"search" mapstructure:"search"`
	Scrape  ScrapeConfig  `yaml:"scrape" mapstructure:"scrape"`
	Enrich  EnrichConfig  `yaml:"enrich" mapstructure:"enrich"`
	Scorer  ScorerConfig  `yaml:"scorer" mapstructure:"scorer"`
	Limiter LimiterConfig `yaml:"limiter" mapstructure:"limiter"`
	Quota   QuotaConfig   `yaml:"quota" mapstructure:"quota"`
	Server  ServerConfig  `yaml:"server" mapstructure:"server"`
	Log     LogConfig     `yaml:"log" mapstructure:"log"`
}

// PlacesConfig holds Google Places API settings.
type PlacesConfig struct {
	Key           string  `yaml:"key" mapstructure:"key"`
	BaseURL       string  `yaml:"base_url" mapstructure:"base_url"`
	MaxPages      int     `yaml:"max_pages" mapstructure:"max_pages"`
	PageDelaySecs int     `yaml:"page_delay_secs" mapstructure:"page_delay_secs"`
	RateLimit     float64 `yaml:"rate_limit" mapstructure:"rate_limit"`
}

// JinaConfig holds Jina AI Reader and Search settings.
type JinaConfig struct {
	Key           string `yaml:"key" mapstructure:"key"`
	BaseURL       string `yaml:"base_url" mapstructure:"base_url"`
	SearchBaseURL string `yaml:"search_base_url" mapstructure:"search_base_url"`
}

// SearchConfig bounds query-variation generation for the web-search adapter.
type SearchConfig struct {
	MaxKeywords      int `yaml:"max_keywords" mapstructure:"max_keywords"`
	MaxLocationTerms int `yaml:"max_location_terms" mapstructure:"max_location_terms"`
	MaxVariations    int `yaml:"max_variations" mapstructure:"max_variations"`
	TargetResults    int `yaml:"target_results" mapstructure:"target_results"`
	ExpandMargin     int `yaml:"expand_margin" mapstructure:"expand_margin"`
}

// ScrapeConfig configures the fetch fallback chain.
type ScrapeConfig struct {
	TimeoutSecs    int `yaml:"timeout_secs" mapstructure:"timeout_secs"`
	MinContentLen  int `yaml:"min_content_len" mapstructure:"min_content_len"`
	MaxContentKB   int `yaml:"max_content_kb" mapstructure:"max_content_kb"`
	BreakerTrips   int `yaml:"breaker_trips" mapstructure:"breaker_trips"`
	BreakerCoolSec int `yaml:"breaker_cooldown_secs" mapstructure:"breaker_cooldown_secs"`
}

// EnrichConfig configures the enrichment orchestrator.
type EnrichConfig struct {
	MaxLeads        int `yaml:"max_leads" mapstructure:"max_leads"`
	BatchSize       int `yaml:"batch_size" mapstructure:"batch_size"`
	ItemTimeoutSecs int `yaml:"item_timeout_secs" mapstructure:"item_timeout_secs"`
	BatchDelayMs    int `yaml:"batch_delay_ms" mapstructure:"batch_delay_ms"`
}

// ScorerConfig holds the tunable scoring policy. Weights and thresholds are
// configuration, not frozen business rules.
type ScorerConfig struct {
	ContactWeight      float64             `yaml:"contact_weight" mapstructure:"contact_weight"`
	LocationWeight     float64             `yaml:"location_weight" mapstructure:"location_weight"`
	ExcellentThreshold int                 `yaml:"excellent_threshold" mapstructure:"excellent_threshold"`
	OkayThreshold      int                 `yaml:"okay_threshold" mapstructure:"okay_threshold"`
	CountryToken       string              `yaml:"country_token" mapstructure:"country_token"`
	GenericDomains     []string            `yaml:"generic_domains" mapstructure:"generic_domains"`
	NearbyAreas        map[string][]string `yaml:"nearby_areas" mapstructure:"nearby_areas"`
	SubAreas           map[string][]string `yaml:"sub_areas" mapstructure:"sub_areas"`
}

// LimiterConfig holds the canonical free-tier visibility policy.
type LimiterConfig struct {
	VisibleFraction float64 `yaml:"visible_fraction" mapstructure:"visible_fraction"`
	MinVisible      int     `yaml:"min_visible" mapstructure:"min_visible"`
	MaxVisible      int     `yaml:"max_visible" mapstructure:"max_visible"`
}

// QuotaConfig holds the free-tier daily search allowance.
type QuotaConfig struct {
	FreeDailySearches int `yaml:"free_daily_searches" mapstructure:"free_daily_searches"`
}

// ServerConfig configures the HTTP server.
type ServerConfig struct {
	Port int `yaml:"port" mapstructure:"port"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`
	Format string `yaml:"format" mapstructure:"format"`
}

// Load reads configuration from file and environment.
func Load() (*Config, error) {
	v := viper.New()

	// Config file
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	// Environment
	v.SetEnvPrefix("LEADSCOUT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")
	v.SetDefault("server.port", 8080)
	v.SetDefault("places.base_url", "https://places.googleapis.com/v1")
	v.SetDefault("places.max_pages", 3)
	v.SetDefault("places.page_delay_secs", 2)
	v.SetDefault("places.rate_limit", 10)
	v.SetDefault("jina.base_url", "https://r.jina.ai")
	v.SetDefault("jina.search_base_url", "https://s.jina.ai")
	v.SetDefault("search.max_keywords", 3)
	v.SetDefault("search.max_location_terms", 3)
	v.SetDefault("search.max_variations", 20)
	v.SetDefault("search.target_results", 50)
	v.SetDefault("search.expand_margin", 5)
	v.SetDefault("scrape.timeout_secs", 15)
	v.SetDefault("scrape.min_content_len", 100)
	v.SetDefault("scrape.max_content_kb", 512)
	v.SetDefault("scrape.breaker_trips", 3)
	v.SetDefault("scrape.breaker_cooldown_secs", 60)
	v.SetDefault("enrich.max_leads", 5)
	v.SetDefault("enrich.batch_size", 3)
	v.SetDefault("enrich.item_timeout_secs", 8)
	v.SetDefault("enrich.batch_delay_ms", 1000)
	v.SetDefault("scorer.contact_weight", 0.7)
	v.SetDefault("scorer.location_weight", 0.3)
	v.SetDefault("scorer.excellent_threshold", 80)
	v.SetDefault("scorer.okay_threshold", 50)
	v.SetDefault("scorer.country_token", "ireland")
	v.SetDefault("scorer.generic_domains", []string{
		"gmail.com", "yahoo.com", "hotmail.com", "outlook.com", "aol.com", "icloud.com",
	})
	v.SetDefault("limiter.visible_fraction", 0.1)
	v.SetDefault("limiter.min_visible", 5)
	v.SetDefault("limiter.max_visible", 25)
	v.SetDefault("quota.free_daily_searches", 3)

	// Read config file (optional)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, eris.Wrap(err, "config: read file")
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, eris.Wrap(err, "config: unmarshal")
	}

	return &cfg, nil
}

// InitLogger initializes the global zap logger.
func InitLogger(cfg LogConfig) error {
	var zapCfg zap.Config
	if cfg.Format == "console" {
		zapCfg = zap.NewDevelopmentConfig()
	} else {
		zapCfg = zap.NewProductionConfig()
	}

	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return eris.Wrap(err, "config: parse log level")
	}
	zapCfg.Level.SetLevel(level)

	logger, err := zapCfg.Build()
	if err != nil {
		return eris.Wrap(err, "config: build logger")
	}
	zap.ReplaceGlobals(logger)

	return nil
}
