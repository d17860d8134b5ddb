package config

import (
	"errors"
	"io/fs"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/rotisserie/eris"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/sells-group/geo-locator/internal/content"
	"github.com/sells-group/geo-locator/internal/model"
	"github.com/sells-group/geo-locator/internal/pipeline"
	"github.com/sells-group/geo-locator/internal/rings"
)

// Modes passed to Validate.
const (
	ModeLocate = "locate"
	ModeServe  = "serve"
)

// Config holds the full application configuration.
type Config struct {
	Geocode  GeocodeConfig  `yaml:"geocode" mapstructure:"geocode"`
	Rings    RingsConfig    `yaml:"rings" mapstructure:"rings"`
	Content  ContentConfig  `yaml:"content" mapstructure:"content"`
	Pipeline PipelineConfig `yaml:"pipeline" mapstructure:"pipeline"`
	Export   ExportConfig   `yaml:"export" mapstructure:"export"`
	Server   ServerConfig   `yaml:"server" mapstructure:"server"`
	Log      LogConfig      `yaml:"log" mapstructure:"log"`
}

// GeocodeConfig holds Google Geocoding API settings.
type GeocodeConfig struct {
	APIKey      string  `yaml:"api_key" mapstructure:"api_key"`
	BaseURL     string  `yaml:"base_url" mapstructure:"base_url"`
	TimeoutSecs int     `yaml:"timeout_secs" mapstructure:"timeout_secs"`
	RateLimit   float64 `yaml:"rate_limit" mapstructure:"rate_limit"`
}

// RingsConfig describes the ring layout. PointsPerRing of 0 means
// TotalPoints split evenly across Count rings.
type RingsConfig struct {
	Count           int     `yaml:"count" mapstructure:"count"`
	TotalPoints     int     `yaml:"total_points" mapstructure:"total_points"`
	PointsPerRing   int     `yaml:"points_per_ring" mapstructure:"points_per_ring"`
	RadiusStepMiles float64 `yaml:"radius_step_miles" mapstructure:"radius_step_miles"`
}

// ContentConfig holds the rotated content lists and colors.
type ContentConfig struct {
	Keywords      []string `yaml:"keywords" mapstructure:"keywords"`
	BusinessNames []string `yaml:"business_names" mapstructure:"business_names"`
	Descriptions  []string `yaml:"descriptions" mapstructure:"descriptions"`
	BusinessURL   string   `yaml:"business_url" mapstructure:"business_url"`
	Palette       []string `yaml:"palette" mapstructure:"palette"`
	CenterColor   string   `yaml:"center_color" mapstructure:"center_color"`
	Localize      bool     `yaml:"localize" mapstructure:"localize"`
}

// PipelineConfig configures batching.
type PipelineConfig struct {
	BatchSize         int `yaml:"batch_size" mapstructure:"batch_size"`
	InterBatchDelayMs int `yaml:"inter_batch_delay_ms" mapstructure:"inter_batch_delay_ms"`
	CallTimeoutSecs   int `yaml:"call_timeout_secs" mapstructure:"call_timeout_secs"`
}

// ExportConfig configures file output for the locate command.
type ExportConfig struct {
	Format string `yaml:"format" mapstructure:"format"`
	View   string `yaml:"view" mapstructure:"view"`
	Dir    string `yaml:"dir" mapstructure:"dir"`
}

// ServerConfig configures the HTTP API.
type ServerConfig struct {
	Port        int      `yaml:"port" mapstructure:"port"`
	CORSOrigins []string `yaml:"cors_origins" mapstructure:"cors_origins"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`
	Format string `yaml:"format" mapstructure:"format"`
}

// Load reads configuration from .env, file, and environment.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, eris.Wrap(err, "config: load .env")
	}

	v := viper.New()

	// Config file
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	// Environment
	v.SetEnvPrefix("LOCATOR")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	if err := v.BindEnv("geocode.api_key",
		"LOCATOR_GEOCODE_API_KEY", "GOOGLE_MAPS_API_KEY", "NEXT_PUBLIC_GOOGLE_MAPS_API_KEY"); err != nil {
		return nil, eris.Wrap(err, "config: bind api key")
	}

	// Defaults
	v.SetDefault("geocode.base_url", "https://maps.googleapis.com/maps/api/geocode/json")
	v.SetDefault("geocode.timeout_secs", 30)
	v.SetDefault("geocode.rate_limit", 50)
	v.SetDefault("rings.count", 5)
	v.SetDefault("rings.total_points", 360)
	v.SetDefault("rings.points_per_ring", 0)
	v.SetDefault("rings.radius_step_miles", 2.0)
	v.SetDefault("content.keywords", []string{
		"Air Conditioning Contractors",
		"Air Conditioning Repair",
	})
	v.SetDefault("content.business_names", []string{"Petey's HVAC"})
	v.SetDefault("content.descriptions", []string{
		"Professional air conditioning contractors offering expert AC installation, repair, and maintenance services for homes and businesses.",
		"Get fast, reliable air conditioning repair from certified HVAC technicians. We service all major AC brands.",
	})
	v.SetDefault("content.palette", content.DefaultPalette)
	v.SetDefault("content.center_color", content.DefaultCenterColor)
	v.SetDefault("content.localize", true)
	v.SetDefault("pipeline.batch_size", pipeline.DefaultBatchSize)
	v.SetDefault("pipeline.inter_batch_delay_ms", int(pipeline.DefaultInterBatchDelay/time.Millisecond))
	v.SetDefault("pipeline.call_timeout_secs", int(pipeline.DefaultCallTimeout/time.Second))
	v.SetDefault("export.format", "csv")
	v.SetDefault("export.view", "comprehensive")
	v.SetDefault("export.dir", ".")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.cors_origins", []string{"*"})
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

// Validate checks the settings a command mode depends on.
func (c *Config) Validate(mode string) error {
	switch mode {
	case ModeLocate, ModeServe:
	default:
		return eris.Errorf("config: unknown mode %q", mode)
	}
	if strings.TrimSpace(c.Geocode.APIKey) == "" {
		return model.NewConfigError("geocode.api_key",
			"required (set GOOGLE_MAPS_API_KEY or LOCATOR_GEOCODE_API_KEY)")
	}
	if c.Pipeline.BatchSize <= 0 {
		return model.NewConfigError("pipeline.batch_size", "must be positive")
	}
	if c.Pipeline.InterBatchDelayMs < 0 {
		return model.NewConfigError("pipeline.inter_batch_delay_ms", "must not be negative")
	}
	if c.Pipeline.CallTimeoutSecs <= 0 {
		return model.NewConfigError("pipeline.call_timeout_secs", "must be positive")
	}
	if mode == ModeServe && (c.Server.Port <= 0 || c.Server.Port > 65535) {
		return model.NewConfigError("server.port", "must be between 1 and 65535")
	}
	return nil
}

// RingsLayout derives the ring layout, splitting TotalPoints across rings
// when PointsPerRing is unset.
func (c *Config) RingsLayout() rings.Layout {
	ppr := c.Rings.PointsPerRing
	if ppr <= 0 {
		ppr = rings.PointsPerRing(c.Rings.TotalPoints, c.Rings.Count)
	}
	return rings.Layout{
		Rings:           c.Rings.Count,
		PointsPerRing:   ppr,
		RadiusStepMiles: c.Rings.RadiusStepMiles,
	}
}

// ContentLists returns the configured content lists.
func (c *Config) ContentLists() content.Lists {
	return content.Lists{
		Keywords:      c.Content.Keywords,
		BusinessNames: c.Content.BusinessNames,
		Descriptions:  c.Content.Descriptions,
	}
}

// PipelineOptions converts the batching settings.
func (c *Config) PipelineOptions() pipeline.Options {
	return pipeline.Options{
		BatchSize:       c.Pipeline.BatchSize,
		InterBatchDelay: time.Duration(c.Pipeline.InterBatchDelayMs) * time.Millisecond,
		CallTimeout:     time.Duration(c.Pipeline.CallTimeoutSecs) * time.Second,
		Localize:        c.Content.Localize,
	}
}

// Request builds a locate request around center from the configured
// content and layout.
func (c *Config) Request(center model.Coordinate) pipeline.Request {
	return pipeline.Request{
		Center:      center,
		BusinessURL: c.Content.BusinessURL,
		Content:     c.ContentLists(),
		Layout:      c.RingsLayout(),
		Palette:     c.Content.Palette,
		CenterColor: c.Content.CenterColor,
	}
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
