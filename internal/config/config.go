// Package config loads runtime configuration. Environment variables
// win over the optional YAML file; only the session secret is
// mandatory, everything else has a sensible default.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Defaults applied before any file or environment override.
const (
	DefaultAddr          = ":8080"
	DefaultSessionTTL    = 24 * time.Hour
	DefaultGeminiModel   = "gemini-2.5-flash"
	DefaultTheme         = "greenbridge"
	DefaultThemeVariant  = "light"
	DefaultShutdownGrace = 10 * time.Second
)

// Config is the resolved runtime configuration.
type Config struct {
	Addr          string
	SessionSecret string
	SessionTTL    time.Duration
	CookieSecure  bool
	GeminiAPIKey  string
	GeminiModel   string
	Theme         string
	ThemeVariant  string
	ThemeFile     string
	ShutdownGrace time.Duration
	Debug         bool
}

// Load reads configuration from the environment and, when present, a
// YAML file. An empty file path means "config.yaml in the working
// directory if it exists"; naming a file that does not exist is an
// error.
func Load(file string) (Config, error) {
	v := viper.New()

	v.SetDefault("addr", DefaultAddr)
	v.SetDefault("session_ttl", DefaultSessionTTL)
	v.SetDefault("cookie_secure", false)
	v.SetDefault("gemini_model", DefaultGeminiModel)
	v.SetDefault("theme", DefaultTheme)
	v.SetDefault("theme_variant", DefaultThemeVariant)
	v.SetDefault("shutdown_grace", DefaultShutdownGrace)
	v.SetDefault("debug", false)

	v.SetEnvPrefix("GREENBRIDGE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// bare names accepted alongside the prefixed ones, matching how
	// deploy environments usually set them
	bind := func(key string, envs ...string) {
		_ = v.BindEnv(append([]string{key}, envs...)...)
	}
	bind("session_secret", "GREENBRIDGE_SESSION_SECRET", "SESSION_SECRET")
	bind("gemini_api_key", "GREENBRIDGE_GEMINI_API_KEY", "GEMINI_API_KEY")
	bind("gemini_model", "GREENBRIDGE_GEMINI_MODEL", "GEMINI_MODEL")
	bind("addr", "GREENBRIDGE_ADDR", "HTTP_ADDR")
	bind("theme", "GREENBRIDGE_THEME", "THEME")
	bind("theme_variant", "GREENBRIDGE_THEME_VARIANT", "THEME_VARIANT")
	bind("theme_file", "GREENBRIDGE_THEME_FILE", "THEME_FILE")
	bind("cookie_secure", "GREENBRIDGE_COOKIE_SECURE", "COOKIE_SECURE")
	bind("shutdown_grace", "GREENBRIDGE_SHUTDOWN_GRACE", "SHUTDOWN_GRACE")
	bind("session_ttl", "GREENBRIDGE_SESSION_TTL", "SESSION_TTL")
	bind("debug", "GREENBRIDGE_DEBUG", "DEBUG")

	if file != "" {
		v.SetConfigFile(file)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if file != "" || !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("config: read %q: %w", v.ConfigFileUsed(), err)
		}
	}

	cfg := Config{
		Addr:          v.GetString("addr"),
		SessionSecret: v.GetString("session_secret"),
		SessionTTL:    v.GetDuration("session_ttl"),
		CookieSecure:  v.GetBool("cookie_secure"),
		GeminiAPIKey:  v.GetString("gemini_api_key"),
		GeminiModel:   v.GetString("gemini_model"),
		Theme:         v.GetString("theme"),
		ThemeVariant:  v.GetString("theme_variant"),
		ThemeFile:     v.GetString("theme_file"),
		ShutdownGrace: v.GetDuration("shutdown_grace"),
		Debug:         v.GetBool("debug"),
	}
	if cfg.SessionTTL <= 0 {
		cfg.SessionTTL = DefaultSessionTTL
	}
	if cfg.ShutdownGrace <= 0 {
		cfg.ShutdownGrace = DefaultShutdownGrace
	}
	return cfg, nil
}

// Validate checks the parts the server cannot run without.
func (c Config) Validate() error {
	if strings.TrimSpace(c.SessionSecret) == "" {
		return errors.New("config: SESSION_SECRET is required")
	}
	return nil
}
