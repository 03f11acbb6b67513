package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/mitchellh/go-homedir"
	"github.com/spf13/viper"
)

// Config carries every tunable of the reader. Zero values are never used
// directly; Load fills defaults for anything the file or env leaves unset.
type Config struct {
	Site     string
	Catalog  string
	NotFound string

	PrefsPath string

	Font FontConfig

	SearchDebounce time.Duration
	Breakpoint     int

	TitleSuffix   string
	TitleScramble bool

	CacheSize int

	LogFile  string
	LogLevel string
}

// FontConfig bounds and scales the reading font level.
type FontConfig struct {
	Min  int
	Max  int
	Base float64
	Step float64
}

// Clamp forces level into [Min, Max].
func (f FontConfig) Clamp(level int) int {
	if level < f.Min {
		return f.Min
	}
	if level > f.Max {
		return f.Max
	}
	return level
}

// Size is the effective font size for a level, in rem.
func (f FontConfig) Size(level int) float64 {
	return f.Base + float64(f.Clamp(level))*f.Step
}

// Default returns the configuration used when no file or env overrides exist.
func Default() *Config {
	return &Config{
		Site:      ".",
		Catalog:   "stories.json",
		NotFound:  "stories/404.html",
		PrefsPath: "~/.storyreader",
		Font: FontConfig{
			Min:  -2,
			Max:  4,
			Base: 1.2,
			Step: 0.1,
		},
		SearchDebounce: 90 * time.Millisecond,
		Breakpoint:     100,
		TitleSuffix:    "My Stories",
		TitleScramble:  true,
		CacheSize:      32,
		LogLevel:       "info",
	}
}

func setDefaults(v *viper.Viper) {
	d := Default()
	v.SetDefault("site", d.Site)
	v.SetDefault("catalog", d.Catalog)
	v.SetDefault("notfound", d.NotFound)
	v.SetDefault("prefs.path", d.PrefsPath)
	v.SetDefault("font.min", d.Font.Min)
	v.SetDefault("font.max", d.Font.Max)
	v.SetDefault("font.base", d.Font.Base)
	v.SetDefault("font.step", d.Font.Step)
	v.SetDefault("search.debounce", d.SearchDebounce)
	v.SetDefault("breakpoint", d.Breakpoint)
	v.SetDefault("title.suffix", d.TitleSuffix)
	v.SetDefault("title.scramble", d.TitleScramble)
	v.SetDefault("cache.size", d.CacheSize)
	v.SetDefault("log.file", d.LogFile)
	v.SetDefault("log.level", d.LogLevel)
}

// Load reads .storyreader.yaml from the working directory (or from
// $STORYREADER_CONFIG_PATH) and applies STORYREADER_* env overrides.
func Load() (*Config, error) {
	v := viper.New()
	setDefaults(v)
	v.SetConfigName(".storyreader") // .yaml is implicit
	v.SetEnvPrefix("STORYREADER")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if override := os.Getenv("STORYREADER_CONFIG_PATH"); override != "" {
		v.AddConfigPath(override)
	}
	v.AddConfigPath("./")

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("config: read config file: %w", err)
		}
	}
	return FromViper(v)
}

// FromViper decodes an already populated viper instance.
func FromViper(v *viper.Viper) (*Config, error) {
	prefsPath, err := homedir.Expand(v.GetString("prefs.path"))
	if err != nil {
		return nil, fmt.Errorf("config: expand prefs.path: %w", err)
	}
	logFile := v.GetString("log.file")
	if logFile != "" {
		if logFile, err = homedir.Expand(logFile); err != nil {
			return nil, fmt.Errorf("config: expand log.file: %w", err)
		}
	}

	cfg := &Config{
		Site:      v.GetString("site"),
		Catalog:   v.GetString("catalog"),
		NotFound:  v.GetString("notfound"),
		PrefsPath: prefsPath,
		Font: FontConfig{
			Min:  v.GetInt("font.min"),
			Max:  v.GetInt("font.max"),
			Base: v.GetFloat64("font.base"),
			Step: v.GetFloat64("font.step"),
		},
		SearchDebounce: v.GetDuration("search.debounce"),
		Breakpoint:     v.GetInt("breakpoint"),
		TitleSuffix:    v.GetString("title.suffix"),
		TitleScramble:  v.GetBool("title.scramble"),
		CacheSize:      v.GetInt("cache.size"),
		LogFile:        logFile,
		LogLevel:       v.GetString("log.level"),
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate rejects settings the reader cannot run with.
func (c *Config) Validate() error {
	if c.Font.Min > 0 || c.Font.Max < 0 {
		return fmt.Errorf("config: font range [%d, %d] must contain 0", c.Font.Min, c.Font.Max)
	}
	if c.Font.Base <= 0 {
		return fmt.Errorf("config: font.base must be positive, got %v", c.Font.Base)
	}
	if c.Font.Base+float64(c.Font.Min)*c.Font.Step <= 0 {
		return fmt.Errorf("config: font.min %d with step %v yields a non-positive size", c.Font.Min, c.Font.Step)
	}
	if c.SearchDebounce < 0 {
		return fmt.Errorf("config: search.debounce must not be negative")
	}
	if c.CacheSize <= 0 {
		return fmt.Errorf("config: cache.size must be positive, got %d", c.CacheSize)
	}
	if c.Catalog == "" {
		return fmt.Errorf("config: catalog path required")
	}
	return nil
}
