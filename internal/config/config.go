// Package config resolves runtime settings from flags, VOICECHAT_*
// environment variables (optionally loaded from .env), an optional config
// file and built-in defaults, in that order of precedence.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/bobbyhwsong/voice-chat-app/internal/api"
	"github.com/bobbyhwsong/voice-chat-app/internal/speech"
	"github.com/bobbyhwsong/voice-chat-app/internal/store"
)

const envPrefix = "VOICECHAT"

// Config holds all runtime settings.
type Config struct {
	APIBaseURL  string        `mapstructure:"api_base_url"`
	DB          string        `mapstructure:"db"`
	LogFile     string        `mapstructure:"log_file"`
	Debug       bool          `mapstructure:"debug"`
	HTTPTimeout time.Duration `mapstructure:"http_timeout"`
	Audio       AudioConfig   `mapstructure:"audio"`

	// CheatsheetStyle is a glamour style name: "dark", "light" or "notty".
	CheatsheetStyle string `mapstructure:"cheatsheet_style"`
}

// AudioConfig configures speech output.
type AudioConfig struct {
	Enabled      bool   `mapstructure:"enabled"`
	PlayerFormat string `mapstructure:"player_format"`
	PlayerDevice string `mapstructure:"player_device"`
	SynthCommand string `mapstructure:"synth_command"`
}

// flagKeys maps config keys to the persistent flags that override them.
var flagKeys = map[string]string{
	"api_base_url": "api",
	"db":           "db",
	"debug":        "debug",
	"log_file":     "log-file",
}

func setDefaults(v *viper.Viper) {
	format, device := speech.DefaultOutput()
	v.SetDefault("api_base_url", api.DefaultBaseURL)
	v.SetDefault("db", "")
	v.SetDefault("log_file", "")
	v.SetDefault("debug", false)
	v.SetDefault("http_timeout", time.Duration(0))
	v.SetDefault("cheatsheet_style", "dark")
	v.SetDefault("audio.enabled", true)
	v.SetDefault("audio.player_format", format)
	v.SetDefault("audio.player_device", device)
	v.SetDefault("audio.synth_command", speech.DefaultSynthCommand())
}

// LoadDotEnv loads .env files into the process environment. Missing files
// are not an error; variables already set are kept.
func LoadDotEnv(paths ...string) error {
	if len(paths) == 0 {
		paths = []string{".env"}
	}
	for _, p := range paths {
		if err := godotenv.Load(p); err != nil && !errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("load %s: %w", p, err)
		}
	}
	return nil
}

// Load resolves the configuration. flags may be nil.
func Load(flags *pflag.FlagSet) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	v.BindEnv("api_base_url", envPrefix+"_API_BASE_URL")
	v.BindEnv("db", envPrefix+"_DB")
	v.BindEnv("log_file", envPrefix+"_LOG_FILE")
	v.BindEnv("debug", envPrefix+"_DEBUG")
	v.BindEnv("http_timeout", envPrefix+"_HTTP_TIMEOUT")
	v.BindEnv("cheatsheet_style", envPrefix+"_CHEATSHEET_STYLE")
	v.BindEnv("audio.enabled", envPrefix+"_AUDIO_ENABLED")
	v.BindEnv("audio.player_format", envPrefix+"_AUDIO_PLAYER_FORMAT")
	v.BindEnv("audio.player_device", envPrefix+"_AUDIO_PLAYER_DEVICE")
	v.BindEnv("audio.synth_command", envPrefix+"_AUDIO_SYNTH_COMMAND")

	if flags != nil {
		for key, name := range flagKeys {
			if f := flags.Lookup(name); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return nil, fmt.Errorf("bind flag %s: %w", name, err)
				}
			}
		}
	}

	if dir, err := configDir(); err == nil {
		v.AddConfigPath(dir)
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("read config: %w", err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.resolvePaths(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) resolvePaths() error {
	c.APIBaseURL = strings.TrimRight(strings.TrimSpace(c.APIBaseURL), "/")
	if c.APIBaseURL == "" {
		c.APIBaseURL = api.DefaultBaseURL
	}

	if c.DB != "" {
		if err := store.EnsureDir(c.DB); err != nil {
			return fmt.Errorf("resolve DB path: %w", err)
		}
	} else {
		p, err := store.DefaultDBPath()
		if err != nil {
			return fmt.Errorf("resolve DB path: %w", err)
		}
		c.DB = p
	}

	if c.LogFile == "" {
		dir, err := store.DataDir()
		if err != nil {
			return fmt.Errorf("resolve log path: %w", err)
		}
		c.LogFile = filepath.Join(dir, "voicechat.log")
	}
	return nil
}

// configDir returns $XDG_CONFIG_HOME/voicechat or ~/.config/voicechat.
func configDir() (string, error) {
	if d := os.Getenv("XDG_CONFIG_HOME"); d != "" {
		return filepath.Join(d, "voicechat"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "voicechat"), nil
}
