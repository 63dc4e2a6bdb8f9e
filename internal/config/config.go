// Package config provides Viper-based configuration loading for underbrush.
package config

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Play modes.
const (
	ModeConsole = "console"
	ModeTelnet  = "telnet"
)

// Option stores.
const (
	StoreFile     = "file"
	StorePostgres = "postgres"
)

// ServerConfig holds top-level process settings.
type ServerConfig struct {
	// Mode is "console" to play on stdin/stdout or "telnet" to serve one
	// game per connection.
	Mode string `mapstructure:"mode"`
}

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

// TelnetConfig holds Telnet acceptor settings.
type TelnetConfig struct {
	Host string `mapstructure:"host"`
	Port int    `mapstructure:"port"`
	// ReadTimeout is the per-read timeout for Telnet connections.
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
}

// Addr returns the "host:port" listen address.
//
// Postcondition: Returns a non-empty string in "host:port" format.
func (t TelnetConfig) Addr() string {
	return fmt.Sprintf("%s:%d", t.Host, t.Port)
}

// LoggingConfig holds structured logging settings.
type LoggingConfig struct {
	// Level is the minimum log level: "debug", "info", "warn", "error".
	Level string `mapstructure:"level"`
	// Format is the log output format: "json" or "console".
	Format string `mapstructure:"format"`
	// Output is "stderr", "stdout" or a file path. Console play draws on
	// stdout, so its logs belong elsewhere.
	Output string `mapstructure:"output"`
}

// GameConfig holds content locations and the defaults of the game options.
type GameConfig struct {
	// ContentDir holds terrain/, items/, conditions/, scripts/ and levels/.
	ContentDir string `mapstructure:"content_dir"`
	// Level names the level file under ContentDir/levels.
	Level string `mapstructure:"level"`
	// ScriptInstructionLimit bounds every item-use script call.
	ScriptInstructionLimit int `mapstructure:"script_instruction_limit"`
	// Color enables ANSI colours on the map and in messages.
	Color        bool `mapstructure:"color"`
	TileIso      bool `mapstructure:"tile_iso"`
	TrigDist     bool `mapstructure:"trig_dist"`
	AutoFeatures bool `mapstructure:"auto_features"`
	AutoMining   bool `mapstructure:"auto_mining"`
	SafeMode     bool `mapstructure:"safe_mode"`
}

// TerrainDir returns the terrain definition directory.
func (g GameConfig) TerrainDir() string { return filepath.Join(g.ContentDir, "terrain") }

// ItemDir returns the item definition directory.
func (g GameConfig) ItemDir() string { return filepath.Join(g.ContentDir, "items") }

// ConditionDir returns the status effect definition directory.
func (g GameConfig) ConditionDir() string { return filepath.Join(g.ContentDir, "conditions") }

// ScriptDir returns the item-use script directory.
func (g GameConfig) ScriptDir() string { return filepath.Join(g.ContentDir, "scripts") }

// LevelPath returns the path of the level file.
func (g GameConfig) LevelPath() string { return filepath.Join(g.ContentDir, "levels", g.Level) }

// LanguageConfig holds localization settings.
type LanguageConfig struct {
	// UseLang, when set, overrides the stored USE_LANG option at startup.
	UseLang string `mapstructure:"use_lang"`
	// BasePath is the installation prefix; catalogs live under
	// <base>/share/locale, or lang/mo when empty.
	BasePath  string `mapstructure:"base_path"`
	NamesFile string `mapstructure:"names_file"`
	// OptionsStore is "file" or "postgres".
	OptionsStore string `mapstructure:"options_store"`
	OptionsFile  string `mapstructure:"options_file"`
	// Profile keys the stored options when OptionsStore is "postgres".
	Profile string `mapstructure:"profile"`
}

// Config is the top-level application configuration.
type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Database DatabaseConfig `mapstructure:"database"`
	Telnet   TelnetConfig   `mapstructure:"telnet"`
	Logging  LoggingConfig  `mapstructure:"logging"`
	Game     GameConfig     `mapstructure:"game"`
	Language LanguageConfig `mapstructure:"language"`
}

// Validate checks all configuration invariants.
//
// Postcondition: Returns nil if configuration is valid, or an error describing all violations.
func (c Config) Validate() error {
	var errs []string

	if err := validateServer(c.Server); err != nil {
		errs = append(errs, err.Error())
	}
	if c.Language.OptionsStore == StorePostgres {
		if err := validateDatabase(c.Database); err != nil {
			errs = append(errs, err.Error())
		}
	}
	if c.Server.Mode == ModeTelnet {
		if err := validateTelnet(c.Telnet); err != nil {
			errs = append(errs, err.Error())
		}
	}
	if err := validateLogging(c.Logging); err != nil {
		errs = append(errs, err.Error())
	}
	if err := validateGame(c.Game); err != nil {
		errs = append(errs, err.Error())
	}
	if err := validateLanguage(c.Language); err != nil {
		errs = append(errs, err.Error())
	}

	if len(errs) > 0 {
		return fmt.Errorf("configuration validation failed: %s", strings.Join(errs, "; "))
	}
	return nil
}

func validateServer(s ServerConfig) error {
	if s.Mode != ModeConsole && s.Mode != ModeTelnet {
		return fmt.Errorf("server.mode must be one of [console, telnet], got %q", s.Mode)
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
		return fmt.Errorf("%s", strings.Join(errs, "; "))
	}
	return nil
}

func validateTelnet(t TelnetConfig) error {
	var errs []string
	if t.Port < 1 || t.Port > 65535 {
		errs = append(errs, fmt.Sprintf("telnet.port must be 1-65535, got %d", t.Port))
	}
	if t.ReadTimeout < 0 {
		errs = append(errs, "telnet.read_timeout must not be negative")
	}
	if t.WriteTimeout < 0 {
		errs = append(errs, "telnet.write_timeout must not be negative")
	}
	if len(errs) > 0 {
		return fmt.Errorf("%s", strings.Join(errs, "; "))
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

func validateGame(g GameConfig) error {
	var errs []string
	if g.ContentDir == "" {
		errs = append(errs, "game.content_dir must not be empty")
	}
	if g.Level == "" {
		errs = append(errs, "game.level must not be empty")
	}
	if g.ScriptInstructionLimit < 0 {
		errs = append(errs, fmt.Sprintf("game.script_instruction_limit must be >= 0, got %d", g.ScriptInstructionLimit))
	}
	if len(errs) > 0 {
		return fmt.Errorf("%s", strings.Join(errs, "; "))
	}
	return nil
}

func validateLanguage(l LanguageConfig) error {
	var errs []string
	switch l.OptionsStore {
	case StoreFile:
		if l.OptionsFile == "" {
			errs = append(errs, "language.options_file must not be empty when options_store is file")
		}
	case StorePostgres:
		if l.Profile == "" {
			errs = append(errs, "language.profile must not be empty when options_store is postgres")
		}
	default:
		errs = append(errs, fmt.Sprintf("language.options_store must be one of [file, postgres], got %q", l.OptionsStore))
	}
	if len(errs) > 0 {
		return fmt.Errorf("%s", strings.Join(errs, "; "))
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

	// Environment variable overrides with UNDERBRUSH_ prefix
	v.SetEnvPrefix("UNDERBRUSH")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		return Config{}, fmt.Errorf("reading config file: %w", err)
	}
	return LoadFromViper(v)
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

// Defaults returns a Viper instance holding only the default settings.
func Defaults() *viper.Viper {
	v := viper.New()
	setDefaults(v)
	return v
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.mode", ModeConsole)

	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.user", "underbrush")
	v.SetDefault("database.password", "underbrush")
	v.SetDefault("database.name", "underbrush")
	v.SetDefault("database.sslmode", "disable")
	v.SetDefault("database.max_conns", 4)
	v.SetDefault("database.min_conns", 1)
	v.SetDefault("database.max_conn_lifetime", "1h")

	v.SetDefault("telnet.host", "0.0.0.0")
	v.SetDefault("telnet.port", 4000)
	v.SetDefault("telnet.read_timeout", "30m")
	v.SetDefault("telnet.write_timeout", "30s")

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "json")
	v.SetDefault("logging.output", "stderr")

	v.SetDefault("game.content_dir", "content")
	v.SetDefault("game.level", "yard.yaml")
	v.SetDefault("game.script_instruction_limit", 100000)
	v.SetDefault("game.color", true)
	v.SetDefault("game.tile_iso", false)
	v.SetDefault("game.trig_dist", false)
	v.SetDefault("game.auto_features", true)
	v.SetDefault("game.auto_mining", true)
	v.SetDefault("game.safe_mode", true)

	v.SetDefault("language.base_path", "")
	v.SetDefault("language.names_file", filepath.Join("content", "names", "names.yaml"))
	v.SetDefault("language.options_store", StoreFile)
	v.SetDefault("language.options_file", "options.yaml")
	v.SetDefault("language.profile", "default")
}
