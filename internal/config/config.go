package config

import (
	"fmt"
	"io"
	"strings"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// Config holds all configuration for the bot
type Config struct {
	Bot      BotConfig      `mapstructure:"bot" yaml:"bot"`
	Strategy StrategyConfig `mapstructure:"strategy" yaml:"strategy"`
	Trace    TraceConfig    `mapstructure:"trace" yaml:"trace"`
}

// BotConfig holds process-level settings
type BotConfig struct {
	Name      string `mapstructure:"name" yaml:"name"`
	LogDir    string `mapstructure:"log_dir" yaml:"log_dir"`
	LogLevel  string `mapstructure:"log_level" yaml:"log_level"`
	LogFormat string `mapstructure:"log_format" yaml:"log_format"`
}

// StrategyConfig holds the policy thresholds. Fractions are of the engine's
// MAX_ENERGY; turns are absolute turn numbers.
type StrategyConfig struct {
	LowHaliteFraction    float64 `mapstructure:"low_halite_fraction" yaml:"low_halite_fraction"`
	EarlyCargoFraction   float64 `mapstructure:"early_cargo_fraction" yaml:"early_cargo_fraction"`
	LateCargoFraction    float64 `mapstructure:"late_cargo_fraction" yaml:"late_cargo_fraction"`
	CargoPhaseTurn       int     `mapstructure:"cargo_phase_turn" yaml:"cargo_phase_turn"`
	RushTurn             int     `mapstructure:"rush_turn" yaml:"rush_turn"`
	RushTurnsBeforeEnd   int     `mapstructure:"rush_turns_before_end" yaml:"rush_turns_before_end"`
	RushRawStepDistance  int     `mapstructure:"rush_raw_step_distance" yaml:"rush_raw_step_distance"`
	ConvertMaxTurn       int     `mapstructure:"convert_max_turn" yaml:"convert_max_turn"`
	ConvertMinBalance    int     `mapstructure:"convert_min_balance" yaml:"convert_min_balance"`
	ConvertMinDistance   int     `mapstructure:"convert_min_distance" yaml:"convert_min_distance"`
	ConvertMinCellHalite int     `mapstructure:"convert_min_cell_halite" yaml:"convert_min_cell_halite"`
	ShipyardHandicap     int     `mapstructure:"shipyard_handicap" yaml:"shipyard_handicap"`
	SpawnMaxTurn         int     `mapstructure:"spawn_max_turn" yaml:"spawn_max_turn"`
	StickyReturn         bool    `mapstructure:"sticky_return" yaml:"sticky_return"`
	TurnBudgetWarnMs     int     `mapstructure:"turn_budget_warn_ms" yaml:"turn_budget_warn_ms"`
}

// TraceConfig holds the per-turn decision trace settings
type TraceConfig struct {
	Enabled bool   `mapstructure:"enabled" yaml:"enabled"`
	Dir     string `mapstructure:"dir" yaml:"dir"`
}

var (
	// Global config instance
	cfg *Config
	v   *viper.Viper
)

// setViperDefaults sets all default values using Viper's SetDefault
func setViperDefaults(v *viper.Viper) {
	v.SetDefault("bot.name", "Forager")
	v.SetDefault("bot.log_dir", ".")
	v.SetDefault("bot.log_level", "info")
	v.SetDefault("bot.log_format", "console")

	v.SetDefault("strategy.low_halite_fraction", 0.1)
	v.SetDefault("strategy.early_cargo_fraction", 1/2.5)
	v.SetDefault("strategy.late_cargo_fraction", 1/1.5)
	v.SetDefault("strategy.cargo_phase_turn", 100)
	v.SetDefault("strategy.rush_turn", 470)
	v.SetDefault("strategy.rush_turns_before_end", 30)
	v.SetDefault("strategy.rush_raw_step_distance", 2)
	v.SetDefault("strategy.convert_max_turn", 330)
	v.SetDefault("strategy.convert_min_balance", 6000)
	v.SetDefault("strategy.convert_min_distance", 15)
	v.SetDefault("strategy.convert_min_cell_halite", 500)
	v.SetDefault("strategy.shipyard_handicap", 15)
	v.SetDefault("strategy.spawn_max_turn", 250)
	v.SetDefault("strategy.sticky_return", false)
	v.SetDefault("strategy.turn_budget_warn_ms", 1500)

	v.SetDefault("trace.enabled", false)
	v.SetDefault("trace.dir", "traces")
}

// Init initializes the configuration
func Init(configPath string) error {
	v = viper.New()

	// Set defaults before loading any config
	setViperDefaults(v)

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("forager")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
	}

	v.SetEnvPrefix("FORAGER")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		// A named file that does not exist falls back to defaults; for the
		// search paths only ConfigFileNotFoundError is tolerated.
		if configPath == "" {
			if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
				return fmt.Errorf("error reading config file: %w", err)
			}
		}
	}

	cfg = &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return fmt.Errorf("unable to decode config into struct: %w", err)
	}

	if err := Validate(cfg); err != nil {
		return fmt.Errorf("config validation failed: %w", err)
	}

	return nil
}

// Get returns the global config instance
func Get() *Config {
	if cfg == nil {
		// Initialize with defaults if not already initialized
		if err := Init(""); err != nil {
			panic("failed to initialize config with defaults: " + err.Error())
		}
	}
	return cfg
}

// LoadEnvironmentConfig merges forager.<env>.yaml over the loaded config
func LoadEnvironmentConfig(env string) error {
	if env == "" {
		return nil
	}

	envFile := fmt.Sprintf("forager.%s.yaml", env)

	v.SetConfigFile(envFile)
	if err := v.MergeInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return fmt.Errorf("error merging environment config %s: %w", envFile, err)
		}
	}

	if err := v.Unmarshal(cfg); err != nil {
		return fmt.Errorf("unable to decode merged config into struct: %w", err)
	}

	return Validate(cfg)
}

// Set allows runtime config updates
func Set(key string, value interface{}) {
	v.Set(key, value)
	// Re-unmarshal to update struct
	_ = v.Unmarshal(cfg)
}

// ConfigFilePath returns the path of the loaded config file
func ConfigFilePath() string {
	return v.ConfigFileUsed()
}

// WatchConfig enables hot-reloading of the config file. onChange receives the
// reloaded config only when it still validates.
func WatchConfig(onChange func(*Config)) {
	v.WatchConfig()
	v.OnConfigChange(func(e fsnotify.Event) {
		next := &Config{}
		if err := v.Unmarshal(next); err != nil {
			return
		}
		if err := Validate(next); err != nil {
			return
		}
		cfg = next
		if onChange != nil {
			onChange(next)
		}
	})
}

// Dump writes c as YAML
func Dump(w io.Writer, c *Config) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(c); err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	return enc.Close()
}

// Validate validates the configuration values
func Validate(c *Config) error {
	switch c.Bot.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("bot.log_level must be one of debug, info, warn, error")
	}
	switch c.Bot.LogFormat {
	case "console", "json":
	default:
		return fmt.Errorf("bot.log_format must be console or json")
	}
	if strings.TrimSpace(c.Bot.Name) == "" {
		return fmt.Errorf("bot.name must not be empty")
	}

	s := c.Strategy
	validateFraction := func(f float64, name string) error {
		if f <= 0 || f > 1 {
			return fmt.Errorf("strategy.%s must be in (0, 1]", name)
		}
		return nil
	}
	if err := validateFraction(s.LowHaliteFraction, "low_halite_fraction"); err != nil {
		return err
	}
	if err := validateFraction(s.EarlyCargoFraction, "early_cargo_fraction"); err != nil {
		return err
	}
	if err := validateFraction(s.LateCargoFraction, "late_cargo_fraction"); err != nil {
		return err
	}

	if s.CargoPhaseTurn < 0 {
		return fmt.Errorf("strategy.cargo_phase_turn must be non-negative")
	}
	if s.RushTurn < 0 || s.RushTurnsBeforeEnd < 0 {
		return fmt.Errorf("strategy.rush_turn and strategy.rush_turns_before_end must be non-negative")
	}
	if s.RushRawStepDistance < 0 {
		return fmt.Errorf("strategy.rush_raw_step_distance must be non-negative")
	}
	if s.ConvertMaxTurn < 0 || s.ConvertMinBalance < 0 || s.ConvertMinDistance < 0 || s.ConvertMinCellHalite < 0 {
		return fmt.Errorf("strategy.convert_* values must be non-negative")
	}
	if s.ShipyardHandicap < 0 {
		return fmt.Errorf("strategy.shipyard_handicap must be non-negative")
	}
	if s.SpawnMaxTurn < 0 {
		return fmt.Errorf("strategy.spawn_max_turn must be non-negative")
	}
	if s.TurnBudgetWarnMs < 0 {
		return fmt.Errorf("strategy.turn_budget_warn_ms must be non-negative")
	}

	if c.Trace.Enabled && strings.TrimSpace(c.Trace.Dir) == "" {
		return fmt.Errorf("trace.dir must be set when trace.enabled is true")
	}

	return nil
}
