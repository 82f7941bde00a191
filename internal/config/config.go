package config

import (
	"strings"

	"github.com/rotisserie/eris"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Config holds the full application configuration.
type Config struct {
	Store     StoreConfig     `yaml:"store" mapstructure:"store"`
	Paths     PathsConfig     `yaml:"paths" mapstructure:"paths"`
	Imaging   ImagingConfig   `yaml:"imaging" mapstructure:"imaging"`
	OCR       OCRConfig       `yaml:"ocr" mapstructure:"ocr"`
	Ebay      EbayConfig      `yaml:"ebay" mapstructure:"ebay"`
	Bbref     BbrefConfig     `yaml:"bbref" mapstructure:"bbref"`
	Anthropic AnthropicConfig `yaml:"anthropic" mapstructure:"anthropic"`
	Pipeline  PipelineConfig  `yaml:"pipeline" mapstructure:"pipeline"`
	Server    ServerConfig    `yaml:"server" mapstructure:"server"`
	Log       LogConfig       `yaml:"log" mapstructure:"log"`
}

// StoreConfig configures the run-tracking database backend.
type StoreConfig struct {
	Driver      string `yaml:"driver" mapstructure:"driver"`
	DatabaseURL string `yaml:"database_url" mapstructure:"database_url"`
}

// PathsConfig holds the directories for checkpoints and final artifacts.
type PathsConfig struct {
	DataDir    string `yaml:"data_dir" mapstructure:"data_dir"`
	OutputsDir string `yaml:"outputs_dir" mapstructure:"outputs_dir"`
}

// ImagingConfig configures sheet splitting and enhancement.
type ImagingConfig struct {
	GridSize         int     `yaml:"grid_size" mapstructure:"grid_size"`
	EnhanceThreshold int     `yaml:"enhance_threshold" mapstructure:"enhance_threshold"`
	ScaleFactor      float64 `yaml:"scale_factor" mapstructure:"scale_factor"`
}

// OCRConfig configures card text extraction.
type OCRConfig struct {
	Provider      string `yaml:"provider" mapstructure:"provider"`
	TesseractPath string `yaml:"tesseract_path" mapstructure:"tesseract_path"`
	Language      string `yaml:"language" mapstructure:"language"`
	DPI           int    `yaml:"dpi" mapstructure:"dpi"`
}

// EbayConfig configures the sold-listings price lookup.
type EbayConfig struct {
	BaseURL      string  `yaml:"base_url" mapstructure:"base_url"`
	UserAgent    string  `yaml:"user_agent" mapstructure:"user_agent"`
	RateLimitRPS float64 `yaml:"rate_limit_rps" mapstructure:"rate_limit_rps"`
	TimeoutSecs  int     `yaml:"timeout_secs" mapstructure:"timeout_secs"`
}

// BbrefConfig configures the career-stats lookup.
type BbrefConfig struct {
	BaseURL      string  `yaml:"base_url" mapstructure:"base_url"`
	UserAgent    string  `yaml:"user_agent" mapstructure:"user_agent"`
	RateLimitRPS float64 `yaml:"rate_limit_rps" mapstructure:"rate_limit_rps"`
	TimeoutSecs  int     `yaml:"timeout_secs" mapstructure:"timeout_secs"`
}

// AnthropicConfig holds Anthropic API settings for card descriptions.
type AnthropicConfig struct {
	Key       string `yaml:"key" mapstructure:"key"`
	Model     string `yaml:"model" mapstructure:"model"`
	MaxTokens int    `yaml:"max_tokens" mapstructure:"max_tokens"`
}

// PipelineConfig configures stage behavior.
type PipelineConfig struct {
	LookupTimeoutSecs int `yaml:"lookup_timeout_secs" mapstructure:"lookup_timeout_secs"`
	EnrichConcurrency int `yaml:"enrich_concurrency" mapstructure:"enrich_concurrency"`
}

// ServerConfig configures the scan API server.
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
	v.SetEnvPrefix("CARDSCAN")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("store.driver", "sqlite")
	v.SetDefault("store.database_url", "cardscan.db")
	v.SetDefault("paths.data_dir", "./data")
	v.SetDefault("paths.outputs_dir", "./outputs")
	v.SetDefault("imaging.grid_size", 3)
	v.SetDefault("imaging.enhance_threshold", 140)
	v.SetDefault("imaging.scale_factor", 1.0)
	v.SetDefault("ocr.provider", "gosseract")
	v.SetDefault("ocr.tesseract_path", "tesseract")
	v.SetDefault("ocr.language", "eng")
	v.SetDefault("ebay.base_url", "https://www.ebay.com")
	v.SetDefault("ebay.user_agent", "Mozilla/5.0")
	v.SetDefault("ebay.rate_limit_rps", 0.5)
	v.SetDefault("ebay.timeout_secs", 10)
	v.SetDefault("bbref.base_url", "https://www.baseball-reference.com")
	v.SetDefault("bbref.user_agent", "Mozilla/5.0")
	v.SetDefault("bbref.rate_limit_rps", 0.5)
	v.SetDefault("bbref.timeout_secs", 10)
	v.SetDefault("anthropic.model", "claude-haiku-4-5-20251001")
	v.SetDefault("anthropic.max_tokens", 300)
	v.SetDefault("pipeline.lookup_timeout_secs", 30)
	v.SetDefault("pipeline.enrich_concurrency", 1)
	v.SetDefault("server.port", 8080)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")

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
