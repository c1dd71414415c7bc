package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"xui-panel-client/internal/constants"
	xerrors "xui-panel-client/internal/errors"
)

// Load loads the configuration from environment variables. Variables found in
// envFiles are added to the environment first; missing files are skipped.
func Load(envFiles ...string) (*Config, error) {
	for _, file := range envFiles {
		if file == "" {
			continue
		}
		if err := godotenv.Load(file); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, &xerrors.ConfigError{Section: "env", Message: fmt.Sprintf("failed to read %s: %v", file, err)}
		}
	}

	v := viper.New()
	v.AutomaticEnv()

	// Set default values
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("XUI_TLS_VERIFY", true)
	v.SetDefault("XUI_TIMEOUT", constants.DefaultTimeout)
	v.SetDefault("XUI_RETRY_COUNT", constants.DefaultRetryCount)

	cfg := &Config{
		LogLevel: v.GetString("LOG_LEVEL"),
		Panel: PanelConfig{
			Host:          strings.TrimSpace(v.GetString("XUI_HOST")),
			Username:      strings.TrimSpace(v.GetString("XUI_USERNAME")),
			Password:      strings.TrimSpace(v.GetString("XUI_PASSWORD")),
			TwoFactorCode: strings.TrimSpace(v.GetString("XUI_TWO_FACTOR_CODE")),
			TLSVerify:     v.GetBool("XUI_TLS_VERIFY"),
			Timeout:       v.GetInt("XUI_TIMEOUT"),
			RetryCount:    v.GetInt("XUI_RETRY_COUNT"),
		},
	}

	return cfg, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Panel.Host == "" {
		return &xerrors.ConfigError{Section: "panel", Message: "XUI_HOST is required"}
	}

	u, err := url.Parse(c.Panel.Host)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return &xerrors.ConfigError{Section: "panel", Message: fmt.Sprintf("invalid panel host %q", c.Panel.Host)}
	}

	if c.Panel.Username != "" && c.Panel.Password == "" {
		return &xerrors.ConfigError{Section: "panel", Message: "XUI_PASSWORD is required when XUI_USERNAME is set"}
	}

	if c.Panel.Timeout <= 0 {
		return &xerrors.ConfigError{Section: "panel", Message: "timeout must be positive"}
	}

	if c.Panel.RetryCount < 0 {
		return &xerrors.ConfigError{Section: "panel", Message: "retry count cannot be negative"}
	}

	return nil
}
