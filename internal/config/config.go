// Package config resolves console settings from defaults, an optional YAML
// file and BLOGCONSOLE_* environment variables, in increasing precedence.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const EnvPrefix = "BLOGCONSOLE"

type Config struct {
	Server  Server  `mapstructure:"server"`
	Backend Backend `mapstructure:"backend"`
	Session Session `mapstructure:"session"`
	Proxy   Proxy   `mapstructure:"proxy"`
}

type Server struct {
	Addr     string `mapstructure:"addr"`
	DiagAddr string `mapstructure:"diag_addr"`
}

type Backend struct {
	Origin  string        `mapstructure:"origin"`
	Timeout time.Duration `mapstructure:"timeout"`
}

type Session struct {
	Path string `mapstructure:"path"`
}

// Proxy mounts the dev reverse proxy. Leave it off in production.
type Proxy struct {
	Enabled bool `mapstructure:"enabled"`
}

// DefaultSessionPath is where the admin session is persisted when no path
// is configured.
func DefaultSessionPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		dir = os.TempDir()
	}

	return filepath.Join(dir, "blogconsole", "session.json")
}

// Load reads path (when set) on top of the defaults and applies environment
// overrides such as BLOGCONSOLE_BACKEND_ORIGIN.
func Load(path string) (Config, error) {
	v := viper.New()
	v.SetDefault("server.addr", ":3333")
	v.SetDefault("server.diag_addr", ":9999")
	v.SetDefault("backend.origin", "http://127.0.0.1:8080")
	v.SetDefault("backend.timeout", 10*time.Second)
	v.SetDefault("session.path", DefaultSessionPath())
	v.SetDefault("proxy.enabled", false)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("read config %s: %w", path, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}
	if cfg.Backend.Timeout <= 0 {
		return Config{}, fmt.Errorf("backend.timeout must be positive, got %s", cfg.Backend.Timeout)
	}

	return cfg, nil
}

// GetEnv returns the environment value of key, or fallback when unset.
func GetEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok {
		return v
	}

	return fallback
}

func GetEnvBool(key string, fallback bool) bool {
	v, ok := os.LookupEnv(key)
	if !ok {
		return fallback
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}

	return b
}
