package config

import "github.com/spf13/viper"

// InputProp is one input property the CLI's config file supplies to the
// analyser, matching analyse.PropDef's shape without importing
// internal/shader/* from here.
type InputProp struct {
	Name string `mapstructure:"name"`
	Type string `mapstructure:"type"`
}

// Config is the CLI's runtime configuration, loaded from shaderc.toml (or
// SHADERC_*-prefixed environment variables) via viper.
type Config struct {
	InputProps  []InputProp `mapstructure:"input_props"`
	CacheDir    string      `mapstructure:"cache_dir"`
	CacheEnable bool        `mapstructure:"cache_enable"`
	GatherAll   bool        `mapstructure:"gather_all"`
	Color       string      `mapstructure:"color"` // "auto", "always", "never"
	WatchDebounceMS int     `mapstructure:"watch_debounce_ms"`
}

// Load reads shaderc.toml (if present) plus environment overrides into a
// Config, falling back to defaults for every field viper doesn't find set.
func Load() Config {
	viper.SetDefault("cache_dir", ".shaderc-cache")
	viper.SetDefault("cache_enable", false)
	viper.SetDefault("gather_all", false)
	viper.SetDefault("color", "auto")
	viper.SetDefault("watch_debounce_ms", 100)

	var cfg Config
	_ = viper.Unmarshal(&cfg)
	return cfg
}
