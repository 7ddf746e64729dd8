package profile

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/spf13/viper"

	"github.com/hrygo/datetimex/plugin/datetime"
	"github.com/hrygo/datetimex/plugin/datetime/recognizer"
	"github.com/hrygo/datetimex/plugin/datetime/timeout"
	"github.com/hrygo/datetimex/server/timezone"
)

// EnvPrefix prefixes every environment variable, e.g. DATETIMEX_PORT.
const EnvPrefix = "DATETIMEX"

// Profile is the configuration to start the server and the CLI.
type Profile struct {
	// Mode can be "prod" or "dev" or "demo"
	Mode string `mapstructure:"mode"`
	// Addr is the binding address for server
	Addr string `mapstructure:"addr"`
	// Port is the binding port for server
	Port int `mapstructure:"port"`
	// Version is the current version of server
	Version string `mapstructure:"version"`

	// Recognition defaults; requests may override culture and timezone.
	Culture            string        `mapstructure:"culture"`
	Timezone           string        `mapstructure:"timezone"`
	InclusiveEndPeriod bool          `mapstructure:"inclusive_end_period"`
	FilterAmbiguity    bool          `mapstructure:"filter_ambiguity"`
	MatchTimeout       time.Duration `mapstructure:"match_timeout"`

	// HTTP limits
	RateLimit        float64 `mapstructure:"rate_limit"`        // requests per second per client
	RateBurst        int     `mapstructure:"rate_burst"`
	BatchConcurrency int     `mapstructure:"batch_concurrency"` // queries of one batch run in parallel
	// ResultCacheSize bounds the cache of results for requests with an
	// explicit reference time. Zero disables it.
	ResultCacheSize int `mapstructure:"result_cache_size"`

	// LogLevel is debug, info, warn or error.
	LogLevel string `mapstructure:"log_level"`
}

// SetDefaults registers the default of every key on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("mode", "dev")
	v.SetDefault("addr", "")
	v.SetDefault("port", 8081)
	v.SetDefault("culture", recognizer.DefaultCulture)
	v.SetDefault("timezone", "UTC")
	v.SetDefault("inclusive_end_period", false)
	v.SetDefault("filter_ambiguity", true)
	v.SetDefault("match_timeout", timeout.MatchTimeout)
	v.SetDefault("rate_limit", 10.0)
	v.SetDefault("rate_burst", 20)
	v.SetDefault("batch_concurrency", 8)
	v.SetDefault("result_cache_size", 1024)
	v.SetDefault("log_level", "info")
}

// Load reads a profile from v: defaults, an optional config file, then
// DATETIMEX_* environment variables and any bound flags.
func Load(v *viper.Viper, configFile string) (*Profile, error) {
	SetDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, errors.Wrapf(err, "read config file %s", configFile)
		}
	}

	p := &Profile{}
	if err := v.Unmarshal(p); err != nil {
		return nil, errors.Wrap(err, "decode profile")
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return p, nil
}

func (p *Profile) IsDev() bool {
	return p.Mode != "prod"
}

// Options returns the recognizer options the profile describes.
func (p *Profile) Options(logger *slog.Logger) datetime.Options {
	return datetime.Options{
		InclusiveEndPeriod:  p.InclusiveEndPeriod,
		SkipAmbiguityFilter: !p.FilterAmbiguity,
		MatchTimeout:        p.MatchTimeout,
		Logger:              logger,
	}
}

// Location returns the default timezone.
func (p *Profile) Location() *time.Location {
	loc, _ := timezone.ParseTimezone(p.Timezone)
	return loc
}

// SlogLevel maps LogLevel to a slog level.
func (p *Profile) SlogLevel() slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(p.LogLevel)); err != nil {
		return slog.LevelInfo
	}
	return level
}

// ListenAddr is the host:port the server binds.
func (p *Profile) ListenAddr() string {
	return fmt.Sprintf("%s:%d", p.Addr, p.Port)
}

func (p *Profile) Validate() error {
	if p.Mode != "demo" && p.Mode != "dev" && p.Mode != "prod" {
		p.Mode = "demo"
	}
	if p.Port <= 0 || p.Port > 65535 {
		return errors.Errorf("invalid port %d", p.Port)
	}

	culture, ok := recognizer.NearestCulture(p.Culture)
	if !ok {
		return errors.Wrapf(recognizer.ErrUnsupportedCulture, "default culture %q", p.Culture)
	}
	p.Culture = culture

	if _, err := timezone.ParseTimezone(p.Timezone); err != nil {
		return errors.Wrap(err, "default timezone")
	}

	if p.MatchTimeout <= 0 {
		p.MatchTimeout = timeout.MatchTimeout
	}
	if p.RateLimit < 0 {
		return errors.Errorf("invalid rate limit %v", p.RateLimit)
	}
	if p.ResultCacheSize < 0 {
		return errors.Errorf("invalid result cache size %d", p.ResultCacheSize)
	}
	if p.BatchConcurrency <= 0 {
		p.BatchConcurrency = 1
	}

	var level slog.Level
	if err := level.UnmarshalText([]byte(p.LogLevel)); err != nil {
		slog.Warn("unknown log level, using info", slog.String("log_level", p.LogLevel))
		p.LogLevel = "info"
	}
	return nil
}
