package config

import (
	"os"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/pelletier/go-toml/v2"

	"github.com/taskhubnet/statuswatch/pkg/domain/types"
	"github.com/taskhubnet/statuswatch/pkg/usecase"
)

// AppConfig is the TOML application configuration. Everything here has a
// working default, so running without a config file is fine.
type AppConfig struct {
	DefaultChannel   string            `toml:"default_channel"`
	DefaultTimeframe string            `toml:"default_timeframe"`
	Cache            CacheConfig       `toml:"cache"`
	Tags             TagsConfig        `toml:"tags"`
	Dashboards       []DashboardConfig `toml:"dashboard"`
}

type CacheConfig struct {
	Enabled         bool   `toml:"enabled"`
	TTL             string `toml:"ttl"`
	RefreshInterval string `toml:"refresh_interval"`
}

// TagsConfig overrides the hashtag spellings scanned in message text
type TagsConfig struct {
	LunchStart string   `toml:"lunch_start"`
	LunchEnds  []string `toml:"lunch_ends"`
	Update     string   `toml:"update"`
	Report     string   `toml:"report"`
}

// DashboardConfig names a channel/timeframe pair whose reports the refresh
// worker keeps warm
type DashboardConfig struct {
	Channel   string   `toml:"channel"`
	Timeframe string   `toml:"timeframe"`
	Kinds     []string `toml:"kinds"`
}

// DefaultAppConfig returns the configuration used when no file is given
func DefaultAppConfig() *AppConfig {
	return &AppConfig{
		DefaultChannel:   usecase.DefaultChannel,
		DefaultTimeframe: types.TimeframeToday.String(),
		Cache: CacheConfig{
			Enabled:         true,
			TTL:             "5m",
			RefreshInterval: "3m",
		},
	}
}

// LoadAppConfig reads and validates the TOML configuration at path. An empty
// path yields the defaults.
func LoadAppConfig(path string) (*AppConfig, error) {
	cfg := DefaultAppConfig()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to read config file",
			goerr.T(types.TagConfiguration), goerr.V("path", path))
	}

	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, goerr.Wrap(err, "failed to parse config file",
			goerr.T(types.TagConfiguration), goerr.V("path", path))
	}

	if err := cfg.Validate(); err != nil {
		return nil, goerr.Wrap(err, "invalid config file", goerr.V("path", path))
	}

	return cfg, nil
}

// Validate checks the configuration for consistency
func (x *AppConfig) Validate() error {
	if x.DefaultChannel == "" {
		return goerr.Wrap(ErrMissingDefaultChannel, "", goerr.T(types.TagConfiguration))
	}

	if !types.Timeframe(x.DefaultTimeframe).IsValid() {
		return goerr.New("invalid default_timeframe",
			goerr.T(types.TagConfiguration), goerr.V("timeframe", x.DefaultTimeframe))
	}

	if x.Cache.Enabled {
		if _, err := x.CacheTTL(); err != nil {
			return err
		}
		if _, err := x.RefreshInterval(); err != nil {
			return err
		}
	}

	seen := map[string]bool{}
	for _, d := range x.Dashboards {
		if d.Channel == "" {
			return goerr.New("dashboard channel is required", goerr.T(types.TagConfiguration))
		}
		if _, err := types.ParseTimeframe(d.Timeframe); err != nil {
			return goerr.Wrap(err, "invalid dashboard timeframe",
				goerr.T(types.TagConfiguration), goerr.V("channel", d.Channel))
		}
		for _, k := range d.Kinds {
			if _, err := types.ParseReportKind(k); err != nil {
				return goerr.Wrap(err, "invalid dashboard kind",
					goerr.T(types.TagConfiguration), goerr.V("channel", d.Channel))
			}
		}

		key := d.Channel + "/" + d.Timeframe
		if seen[key] {
			return goerr.Wrap(ErrDuplicateDashboard, "",
				goerr.T(types.TagConfiguration), goerr.V("channel", d.Channel), goerr.V("timeframe", d.Timeframe))
		}
		seen[key] = true
	}

	return nil
}

// CacheTTL parses the cache TTL duration
func (x *AppConfig) CacheTTL() (time.Duration, error) {
	return parseDuration("cache.ttl", x.Cache.TTL, usecase.DefaultCacheTTL)
}

// RefreshInterval parses the dashboard refresh interval
func (x *AppConfig) RefreshInterval() (time.Duration, error) {
	return parseDuration("cache.refresh_interval", x.Cache.RefreshInterval, 3*time.Minute)
}

func parseDuration(field, value string, fallback time.Duration) (time.Duration, error) {
	if value == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, goerr.Wrap(err, "invalid duration",
			goerr.T(types.TagConfiguration), goerr.V("field", field), goerr.V("value", value))
	}
	if d <= 0 {
		return 0, goerr.New("duration must be positive",
			goerr.T(types.TagConfiguration), goerr.V("field", field), goerr.V("value", value))
	}
	return d, nil
}

// TagSet converts the configured spellings into the extractor tag set.
// Unset fields keep their built-in spelling.
func (x *AppConfig) TagSet() usecase.TagSet {
	tags := usecase.DefaultTagSet()
	if x.Tags.LunchStart != "" {
		tags.LunchStart = x.Tags.LunchStart
	}
	if len(x.Tags.LunchEnds) > 0 {
		tags.LunchEnds = x.Tags.LunchEnds
	}
	if x.Tags.Update != "" {
		tags.Update = x.Tags.Update
	}
	if x.Tags.Report != "" {
		tags.Report = x.Tags.Report
	}
	return tags
}
