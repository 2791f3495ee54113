// Package config loads server settings from an optional file, a .env file
// and WAYGATE_* environment variables, in increasing order of precedence.
// Command line flags bound by the caller win over all of them.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/sessamekesh/waygate/pkg/identity"
	"github.com/sessamekesh/waygate/pkg/rpc"
	"github.com/sessamekesh/waygate/pkg/sessioncrypto"
	"github.com/sessamekesh/waygate/pkg/store"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"go.uber.org/multierr"
)

const EnvPrefix = "WAYGATE"

type Config struct {
	Bind        string `mapstructure:"bind"`
	Endpoint    string `mapstructure:"endpoint"`
	MetricsBind string `mapstructure:"metrics_bind"`
	Debug       bool   `mapstructure:"debug"`

	ClientPublicKey string `mapstructure:"client_public_key"`
	ServerSecretKey string `mapstructure:"server_secret_key"`

	Store struct {
		Backend string `mapstructure:"backend"`
	} `mapstructure:"store"`

	Redis struct {
		URL string `mapstructure:"url"`
	} `mapstructure:"redis"`

	Identity struct {
		Mode        string `mapstructure:"mode"`
		SteamAPIKey string `mapstructure:"steam_api_key"`
		SteamAppID  uint32 `mapstructure:"steam_app_id"`
	} `mapstructure:"identity"`

	Origins struct {
		AllowAll  bool     `mapstructure:"allow_all"`
		Allowlist []string `mapstructure:"allowlist"`
		Denylist  []string `mapstructure:"denylist"`
	} `mapstructure:"origins"`

	AnnouncementsFile string   `mapstructure:"announcements_file"`
	MaxConnections    int      `mapstructure:"max_connections"`
	MaxMessageSize    int64    `mapstructure:"max_message_size"`
	Bans              []string `mapstructure:"bans"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("bind", "0.0.0.0:10901")
	v.SetDefault("endpoint", "/")
	v.SetDefault("metrics_bind", "127.0.0.1:9090")
	v.SetDefault("debug", false)
	v.SetDefault("client_public_key", "")
	v.SetDefault("server_secret_key", "")
	v.SetDefault("store.backend", string(store.Backend_Memory))
	v.SetDefault("redis.url", "redis://localhost:6379/0")
	v.SetDefault("identity.mode", string(identity.Mode_Steam))
	v.SetDefault("identity.steam_api_key", "")
	v.SetDefault("identity.steam_app_id", 0)
	v.SetDefault("origins.allow_all", true)
	v.SetDefault("origins.allowlist", []string{})
	v.SetDefault("origins.denylist", []string{})
	v.SetDefault("announcements_file", "")
	v.SetDefault("max_connections", 0)
	v.SetDefault("max_message_size", 64*1024)
	v.SetDefault("bans", []string{})
}

// Load reads path (if not empty) and the environment. flags may be nil;
// its flags are bound by their names with '-' read as '_'.
func Load(path string, flags *pflag.FlagSet) (*Config, error) {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to load .env file: %w", err)
	}

	v := viper.New()
	setDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if flags != nil {
		var bindErr error
		flags.VisitAll(func(f *pflag.Flag) {
			key := strings.ReplaceAll(f.Name, "-", "_")
			if isKnownKey(v, key) {
				bindErr = multierr.Append(bindErr, v.BindPFlag(key, f))
			}
		})
		if bindErr != nil {
			return nil, fmt.Errorf("failed to bind flags: %w", bindErr)
		}
	}

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	return &c, nil
}

func isKnownKey(v *viper.Viper, key string) bool {
	for _, k := range v.AllKeys() {
		if k == key {
			return true
		}
	}
	return false
}

// Validate reports every setting that would stop the server from starting.
func (c *Config) Validate() error {
	var err error

	if _, keyErr := c.BootstrapKeys(); keyErr != nil {
		err = multierr.Append(err, keyErr)
	}

	switch store.Backend(c.Store.Backend) {
	case store.Backend_Memory:
	case store.Backend_Redis:
		if c.Redis.URL == "" {
			err = multierr.Append(err, errors.New("redis store backend needs redis.url"))
		}
	default:
		err = multierr.Append(err, fmt.Errorf("unknown store backend %q", c.Store.Backend))
	}

	switch identity.Mode(c.Identity.Mode) {
	case identity.Mode_Trust:
	case identity.Mode_Steam:
		if c.Identity.SteamAPIKey == "" || c.Identity.SteamAppID == 0 {
			err = multierr.Append(err, errors.New("steam identity mode needs identity.steam_api_key and identity.steam_app_id"))
		}
	default:
		err = multierr.Append(err, fmt.Errorf("unknown identity mode %q", c.Identity.Mode))
	}

	if c.Endpoint == "" || c.Endpoint[0] != '/' {
		err = multierr.Append(err, fmt.Errorf("endpoint %q must start with /", c.Endpoint))
	}

	return err
}

func (c *Config) BootstrapKeys() (*sessioncrypto.BootstrapKeys, error) {
	return sessioncrypto.ParseBootstrapKeys(c.ClientPublicKey, c.ServerSecretKey)
}

func (c *Config) StoreConfig() store.Config {
	return store.Config{
		Backend:  store.Backend(c.Store.Backend),
		RedisURL: c.Redis.URL,
		Bans:     c.Bans,
	}
}

func (c *Config) IdentityConfig() identity.Config {
	return identity.Config{
		Mode:        identity.Mode(c.Identity.Mode),
		SteamAPIKey: c.Identity.SteamAPIKey,
		SteamAppID:  c.Identity.SteamAppID,
	}
}

// LoadAnnouncements reads a TOML file with an [[announcements]] array. An
// empty path yields no announcements.
func LoadAnnouncements(path string) ([]rpc.Announcement, error) {
	if path == "" {
		return nil, nil
	}

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("toml")
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read announcements: %w", err)
	}

	var file struct {
		Announcements []rpc.Announcement `mapstructure:"announcements"`
	}
	if err := v.Unmarshal(&file); err != nil {
		return nil, fmt.Errorf("failed to unmarshal announcements: %w", err)
	}
	return file.Announcements, nil
}
