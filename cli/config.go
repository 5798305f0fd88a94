package main

import (
	"strings"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/gaswelder/minisql"
)

// Config holds all configuration of the binary.
type Config struct {
	// JSON snapshot the databases are loaded from and saved to.
	// Empty means the databases live only in memory.
	StateFile string     `mapstructure:"state_file"`
	LogLevel  string     `mapstructure:"log_level"`
	Prompt    string     `mapstructure:"prompt"`
	Client    string     `mapstructure:"client"`
	HTTP      HTTPConfig `mapstructure:"http"`
}

type HTTPConfig struct {
	Addr string `mapstructure:"addr"`
}

// Flags that override config keys.
var flagKeys = map[string]string{
	"state-file": "state_file",
	"log-level":  "log_level",
	"addr":       "http.addr",
}

// LoadConfig reads the configuration from defaults, the config file if
// given, MINISQL_* environment variables and the command line, in
// increasing order of priority.
func LoadConfig(configPath string, flags *pflag.FlagSet) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	if configPath != "" {
		v.SetConfigFile(configPath)
		if err := v.ReadInConfig(); err != nil {
			return nil, errors.Wrap(err, "failed to read config file")
		}
	}

	v.SetEnvPrefix("MINISQL")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if flags != nil {
		for name, key := range flagKeys {
			f := flags.Lookup(name)
			if f == nil || !f.Changed {
				continue
			}
			if err := v.BindPFlag(key, f); err != nil {
				return nil, errors.Wrapf(err, "failed to bind flag %s", name)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, errors.Wrap(err, "failed to unmarshal config")
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("state_file", "")
	v.SetDefault("log_level", "warn")
	v.SetDefault("prompt", "mysql> ")
	v.SetDefault("client", minisql.DefaultClient)
	v.SetDefault("http.addr", ":8080")
}

// Validate checks the configuration values.
func (c *Config) Validate() error {
	if _, err := zerolog.ParseLevel(c.LogLevel); err != nil || c.LogLevel == "" {
		return errors.Errorf("invalid log level: %q", c.LogLevel)
	}
	if c.HTTP.Addr == "" {
		return errors.New("http address cannot be empty")
	}
	if c.Client == "" {
		return errors.New("client name cannot be empty")
	}
	return nil
}

// Level returns the configured log level.
func (c *Config) Level() zerolog.Level {
	level, err := zerolog.ParseLevel(c.LogLevel)
	if err != nil {
		return zerolog.WarnLevel
	}
	return level
}
