package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

// Config is the top-level application configuration.
type Config struct {
	// DBPath is where the SQLite database lives.
	DBPath string `mapstructure:"db_path" yaml:"db_path"`

	// TemplateDir holds per-phase checklist template JSON files. When empty
	// the built-in templates are used.
	TemplateDir string `mapstructure:"template_dir" yaml:"template_dir"`

	// DefaultActor is the actor id stamped on commands when no --as flag is
	// given, typically the mechanic using the terminal.
	DefaultActor string `mapstructure:"default_actor" yaml:"default_actor"`

	// AuditLogPath receives one structured line per committed mutation.
	// Empty disables audit logging.
	AuditLogPath string `mapstructure:"audit_log_path" yaml:"audit_log_path"`
}

// DefaultConfigPath returns ~/.config/taller/config.yaml, falling back to the
// working directory when the home directory cannot be resolved.
func DefaultConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", "config.yaml")
	}
	return filepath.Join(home, ".config", "taller", "config.yaml")
}

func defaultDBPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", "taller.db")
	}
	return filepath.Join(home, ".local", "share", "taller", "taller.db")
}

func defaultConfig() *Config {
	return &Config{
		DBPath:       defaultDBPath(),
		DefaultActor: "unassigned",
	}
}

// Load reads configuration from the YAML file at path. A missing file is not
// an error; defaults apply. Environment variables prefixed TALLER_ override
// file values (TALLER_DB_PATH, TALLER_TEMPLATE_DIR, TALLER_DEFAULT_ACTOR,
// TALLER_AUDIT_LOG_PATH).
func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	v.SetDefault("db_path", defaultDBPath())
	v.SetDefault("template_dir", "")
	v.SetDefault("default_actor", "unassigned")
	v.SetDefault("audit_log_path", "")

	v.SetEnvPrefix("TALLER")
	v.AutomaticEnv()
	for _, key := range []string{"db_path", "template_dir", "default_actor", "audit_log_path"} {
		if err := v.BindEnv(key); err != nil {
			return nil, fmt.Errorf("binding env for %s: %w", key, err)
		}
	}

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(*os.PathError); !ok {
			if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
				return nil, fmt.Errorf("reading config %s: %w", path, err)
			}
		}
	}

	cfg := defaultConfig()
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}
	return cfg, nil
}
