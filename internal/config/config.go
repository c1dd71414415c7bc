package config

// Config represents the application configuration
type Config struct {
	Panel    PanelConfig `mapstructure:"panel"`
	LogLevel string      `mapstructure:"log_level"`
}

// PanelConfig holds the connection settings of a panel
type PanelConfig struct {
	Host          string `mapstructure:"host"`
	Username      string `mapstructure:"username"`
	Password      string `mapstructure:"password"`
	TwoFactorCode string `mapstructure:"two_factor_code"`
	TLSVerify     bool   `mapstructure:"tls_verify"`
	Timeout       int    `mapstructure:"timeout"` // seconds
	RetryCount    int    `mapstructure:"retry_count"`
}
