// Package config provides Viper-based configuration loading for the Ethereal Veil server.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// DatabaseConfig holds PostgreSQL connection settings.
type DatabaseConfig struct {
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	User            string        `mapstructure:"user"`
	Password        string        `mapstructure:"password"`
	Name            string        `mapstructure:"name"`
	SSLMode         string        `mapstructure:"sslmode"`
	MaxConns        int32         `mapstructure:"max_conns"`
	MinConns        int32         `mapstructure:"min_conns"`
	MaxConnLifetime time.Duration `mapstructure:"max_conn_lifetime"`
}

// DSN returns the PostgreSQL connection string.
//
// Precondition: Host, Port, User, and Name must be non-empty.
// Postcondition: Returns a valid PostgreSQL DSN string.
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.Name, d.SSLMode,
	)
}

// LoggingConfig holds structured logging settings.
type LoggingConfig struct {
	// Level is the minimum log level: "debug", "info", "warn", "error".
	Level string `mapstructure:"level"`
	// Format is the log output format: "json" or "console".
	Format string `mapstructure:"format"`
}

// CombatConfig holds the tunable balance constants of the combat engine.
// The defaults reproduce the live game's hand-tuned values; none of them is
// a structural requirement of the resolution algorithm.
type CombatConfig struct {
	// TickInterval is the round scheduler's tick period.
	TickInterval time.Duration `mapstructure:"tick_interval"`
	// AttackCost is the base action cost of one attack.
	AttackCost int `mapstructure:"attack_cost"`
	// DefenseCost is the base action cost of one parry/dodge.
	DefenseCost int `mapstructure:"defense_cost"`
	// MaxDeficit and MinDeficit bound every entity's action deficit.
	MaxDeficit int `mapstructure:"max_deficit"`
	MinDeficit int `mapstructure:"min_deficit"`
	// DeficitDecay is subtracted from every combatant's deficit each tick.
	DeficitDecay int `mapstructure:"deficit_decay"`
	// UseDistance enables distance-based combat.
	UseDistance bool `mapstructure:"use_distance"`
	// InitialDistance is the pairwise distance set on a fresh engagement.
	InitialDistance int `mapstructure:"initial_distance"`
	// Reach is the baseline weapon reach used by distance penalties.
	Reach int `mapstructure:"reach"`
	// BalanceMod is a flat modifier added to every opposed check.
	BalanceMod int `mapstructure:"balance_mod"`
	// CompressionKnee is the combined-modifier magnitude beyond which
	// square-root dampening applies.
	CompressionKnee int `mapstructure:"compression_knee"`
	// HuntingTime is how long a hunt record survives without contact.
	HuntingTime time.Duration `mapstructure:"hunting_time"`
	// CritFraction, ExceptionalFraction, and NormalFraction are the degree
	// bucket boundaries, expressed as fractions of the distance between the
	// roll and the chance boundary.
	CritFraction        float64 `mapstructure:"crit_fraction"`
	ExceptionalFraction float64 `mapstructure:"exceptional_fraction"`
	NormalFraction      float64 `mapstructure:"normal_fraction"`
	// RespawnHPFraction is the fraction of MaxHP a player respawns with.
	RespawnHPFraction float64 `mapstructure:"respawn_hp_fraction"`
	// RespawnLocation is the room defeated players wake up in.
	RespawnLocation string `mapstructure:"respawn_location"`
}

// ContentConfig holds paths to on-disk content definitions.
type ContentConfig struct {
	// WeaponsDir is the directory of weapon YAML definitions ("" = built-ins only).
	WeaponsDir string `mapstructure:"weapons_dir"`
	// ArmourDir is the directory of armour YAML definitions ("" = built-ins only).
	ArmourDir string `mapstructure:"armour_dir"`
	// MessagesDir is the directory of attack-message YAML tables ("" = built-ins only).
	MessagesDir string `mapstructure:"messages_dir"`
	// SpecialsDir is the root directory of Lua combat-special scripts ("" = disabled).
	SpecialsDir string `mapstructure:"specials_dir"`
}

// Config is the top-level application configuration.
type Config struct {
	Database DatabaseConfig `mapstructure:"database"`
	Logging  LoggingConfig  `mapstructure:"logging"`
	Combat   CombatConfig   `mapstructure:"combat"`
	Content  ContentConfig  `mapstructure:"content"`
}

// Validate checks all configuration invariants.
//
// Postcondition: Returns nil if configuration is valid, or an error describing all violations.
func (c Config) Validate() error {
	var errs []string

	if err := validateDatabase(c.Database); err != nil {
		errs = append(errs, err.Error())
	}
	if err := validateLogging(c.Logging); err != nil {
		errs = append(errs, err.Error())
	}
	if err := validateCombat(c.Combat); err != nil {
		errs = append(errs, err.Error())
	}

	if len(errs) > 0 {
		return fmt.Errorf("configuration validation failed: %s", strings.Join(errs, "; "))
	}
	return nil
}

func validateDatabase(d DatabaseConfig) error {
	var errs []string
	if d.Host == "" {
		errs = append(errs, "database.host must not be empty")
	}
	if d.Port < 1 || d.Port > 65535 {
		errs = append(errs, fmt.Sprintf("database.port must be 1-65535, got %d", d.Port))
	}
	if d.User == "" {
		errs = append(errs, "database.user must not be empty")
	}
	if d.Name == "" {
		errs = append(errs, "database.name must not be empty")
	}
	validSSL := map[string]bool{"disable": true, "require": true, "verify-ca": true, "verify-full": true}
	if !validSSL[d.SSLMode] {
		errs = append(errs, fmt.Sprintf("database.sslmode must be one of [disable, require, verify-ca, verify-full], got %q", d.SSLMode))
	}
	if d.MaxConns < 1 {
		errs = append(errs, fmt.Sprintf("database.max_conns must be >= 1, got %d", d.MaxConns))
	}
	if d.MinConns < 0 {
		errs = append(errs, fmt.Sprintf("database.min_conns must be >= 0, got %d", d.MinConns))
	}
	if d.MinConns > d.MaxConns {
		errs = append(errs, "database.min_conns must not exceed database.max_conns")
	}
	if len(errs) > 0 {
		return errors.New(strings.Join(errs, "; "))
	}
	return nil
}

func validateLogging(l LoggingConfig) error {
	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[l.Level] {
		return fmt.Errorf("logging.level must be one of [debug, info, warn, error], got %q", l.Level)
	}
	validFormats := map[string]bool{"json": true, "console": true}
	if !validFormats[l.Format] {
		return fmt.Errorf("logging.format must be one of [json, console], got %q", l.Format)
	}
	return nil
}

func validateCombat(cb CombatConfig) error {
	var errs []string
	if cb.TickInterval <= 0 {
		errs = append(errs, "combat.tick_interval must be > 0")
	}
	if cb.AttackCost < 1 {
		errs = append(errs, fmt.Sprintf("combat.attack_cost must be >= 1, got %d", cb.AttackCost))
	}
	if cb.DefenseCost < 1 {
		errs = append(errs, fmt.Sprintf("combat.defense_cost must be >= 1, got %d", cb.DefenseCost))
	}
	if cb.MinDeficit >= cb.MaxDeficit {
		errs = append(errs, fmt.Sprintf("combat.min_deficit (%d) must be below combat.max_deficit (%d)", cb.MinDeficit, cb.MaxDeficit))
	}
	if cb.DeficitDecay < 1 {
		errs = append(errs, fmt.Sprintf("combat.deficit_decay must be >= 1, got %d", cb.DeficitDecay))
	}
	if cb.InitialDistance < 0 {
		errs = append(errs, "combat.initial_distance must be >= 0")
	}
	if cb.CompressionKnee < 1 {
		errs = append(errs, "combat.compression_knee must be >= 1")
	}
	if !(cb.CritFraction > 0 && cb.CritFraction < cb.ExceptionalFraction && cb.ExceptionalFraction < cb.NormalFraction && cb.NormalFraction < 1) {
		errs = append(errs, fmt.Sprintf("combat degree fractions must satisfy 0 < crit < exceptional < normal < 1, got %v/%v/%v",
			cb.CritFraction, cb.ExceptionalFraction, cb.NormalFraction))
	}
	if cb.RespawnHPFraction <= 0 || cb.RespawnHPFraction > 1 {
		errs = append(errs, fmt.Sprintf("combat.respawn_hp_fraction must be in (0, 1], got %v", cb.RespawnHPFraction))
	}
	if cb.RespawnLocation == "" {
		errs = append(errs, "combat.respawn_location must not be empty")
	}
	if len(errs) > 0 {
		return errors.New(strings.Join(errs, "; "))
	}
	return nil
}

// Load reads configuration from the given file path, applies environment variable
// overrides, and validates the result.
//
// Precondition: path must be a valid file path to a YAML configuration file.
// Postcondition: Returns a valid Config or a non-nil error.
func Load(path string) (Config, error) {
	v := viper.New()
	v.SetConfigFile(path)

	// Environment variable overrides with VEIL_ prefix
	v.SetEnvPrefix("VEIL")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		return Config{}, fmt.Errorf("reading config file: %w", err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshalling config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

// LoadFromViper builds a Config from an already-configured Viper instance.
//
// Precondition: v must be non-nil and have configuration values set.
// Postcondition: Returns a valid Config or a non-nil error.
func LoadFromViper(v *viper.Viper) (Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshalling config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// DefaultCombat returns the CombatConfig with the live game's default balance values.
func DefaultCombat() CombatConfig {
	return CombatConfig{
		TickInterval:        time.Second,
		AttackCost:          10,
		DefenseCost:         8,
		MaxDeficit:          100,
		MinDeficit:          -100,
		DeficitDecay:        10,
		UseDistance:         true,
		InitialDistance:     2,
		Reach:               5,
		BalanceMod:          0,
		CompressionKnee:     25,
		HuntingTime:         5 * time.Minute,
		CritFraction:        0.1,
		ExceptionalFraction: 0.3,
		NormalFraction:      0.6,
		RespawnHPFraction:   1.0,
		RespawnLocation:     "ethereal_veil_start",
	}
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.user", "veil")
	v.SetDefault("database.password", "veil")
	v.SetDefault("database.name", "veil")
	v.SetDefault("database.sslmode", "disable")
	v.SetDefault("database.max_conns", 10)
	v.SetDefault("database.min_conns", 2)
	v.SetDefault("database.max_conn_lifetime", "1h")

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "json")

	def := DefaultCombat()
	v.SetDefault("combat.tick_interval", def.TickInterval.String())
	v.SetDefault("combat.attack_cost", def.AttackCost)
	v.SetDefault("combat.defense_cost", def.DefenseCost)
	v.SetDefault("combat.max_deficit", def.MaxDeficit)
	v.SetDefault("combat.min_deficit", def.MinDeficit)
	v.SetDefault("combat.deficit_decay", def.DeficitDecay)
	v.SetDefault("combat.use_distance", def.UseDistance)
	v.SetDefault("combat.initial_distance", def.InitialDistance)
	v.SetDefault("combat.reach", def.Reach)
	v.SetDefault("combat.balance_mod", def.BalanceMod)
	v.SetDefault("combat.compression_knee", def.CompressionKnee)
	v.SetDefault("combat.hunting_time", def.HuntingTime.String())
	v.SetDefault("combat.crit_fraction", def.CritFraction)
	v.SetDefault("combat.exceptional_fraction", def.ExceptionalFraction)
	v.SetDefault("combat.normal_fraction", def.NormalFraction)
	v.SetDefault("combat.respawn_hp_fraction", def.RespawnHPFraction)
	v.SetDefault("combat.respawn_location", def.RespawnLocation)

	v.SetDefault("content.weapons_dir", "")
	v.SetDefault("content.armour_dir", "")
	v.SetDefault("content.messages_dir", "")
	v.SetDefault("content.specials_dir", "")
}
