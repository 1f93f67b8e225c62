package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/bassette/tsense/internal/client"
	"github.com/bassette/tsense/internal/common"
	"github.com/bassette/tsense/internal/history"
	"github.com/bassette/tsense/internal/httpc"
	"github.com/spf13/viper"
)

// TLSConfig mirrors the client TLS settings in config files.
type TLSConfig struct {
	Insecure      bool   `mapstructure:"insecure" yaml:"insecure"`
	MinTLSVersion string `mapstructure:"min_tls_version" yaml:"min_tls_version"`
	MaxTLSVersion string `mapstructure:"max_tls_version" yaml:"max_tls_version"`
}

// LoggingConfig controls log output.
type LoggingConfig struct {
	Level         string `mapstructure:"level" yaml:"level"`   // error, warn, info, debug
	Format        string `mapstructure:"format" yaml:"format"` // text, json
	MaskSensitive *bool  `mapstructure:"mask_sensitive" yaml:"mask_sensitive"`
}

// HistoryConfig selects the session/launch-history backend.
type HistoryConfig struct {
	Disabled bool   `mapstructure:"disabled" yaml:"disabled"`
	Driver   string `mapstructure:"driver" yaml:"driver"` // sqlite (default) or postgresql
	DSN      string `mapstructure:"dsn" yaml:"dsn"`
}

// AuthConfig names a credential provider for non-interactive use.
type AuthConfig struct {
	// Provider type key (e.g., "password", "token", "oauth2")
	Type string `mapstructure:"type" yaml:"type"`
	// Logical name under which the acquired token is stored
	Name string `mapstructure:"name" yaml:"name"`
	// Provider-specific configuration
	Config map[string]interface{} `mapstructure:"config" yaml:"config"`
}

// Doc is the whole config document.
type Doc struct {
	Endpoint string        `mapstructure:"endpoint" yaml:"endpoint"`
	TLS      TLSConfig     `mapstructure:"tls" yaml:"tls"`
	Logging  LoggingConfig `mapstructure:"logging" yaml:"logging"`
	History  HistoryConfig `mapstructure:"history" yaml:"history"`
	Auth     []AuthConfig  `mapstructure:"auth" yaml:"auth"`
}

// ProfileDir returns the per-user tsense directory, creating it when missing.
func ProfileDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	dir := filepath.Join(home, ".tsense")
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return "", err
	}
	return dir, nil
}

// Load reads the config document from path. A missing file yields an empty
// document, not an error; env overrides still apply through viper.
func Load(v *viper.Viper, path string) (*Doc, error) {
	var doc Doc
	p := strings.TrimSpace(path)
	if p != "" {
		if _, err := os.Stat(p); err == nil {
			v.SetConfigFile(p)
			if err := v.ReadInConfig(); err != nil {
				return nil, fmt.Errorf("failed to read config %s: %w", p, err)
			}
		}
	}
	if err := v.Unmarshal(&doc); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	return &doc, nil
}

// ResolveEndpoint resolves the API base URL: explicit config wins, then the default.
func (d *Doc) ResolveEndpoint() string {
	if e := strings.TrimSpace(d.Endpoint); e != "" {
		return e
	}
	return client.DefaultBaseURL
}

// NewClient builds the API client from the document's endpoint and TLS settings.
func (d *Doc) NewClient() *client.Client {
	tlsCfg := httpc.FromSettings(d.TLS.Insecure, d.TLS.MinTLSVersion, d.TLS.MaxTLSVersion)
	return client.NewWithTLS(d.ResolveEndpoint(), tlsCfg)
}

// ApplyLogging configures the process logger from the document.
func (d *Doc) ApplyLogging() {
	level := common.ParseLogLevel(d.Logging.Level)
	var logger *common.Logger
	if strings.EqualFold(d.Logging.Format, "json") {
		logger = common.NewJSONLogger(level)
	} else {
		logger = common.NewLogger(level)
	}
	common.SetDefaultLogger(logger)
	if d.Logging.MaskSensitive != nil {
		common.SetMaskingEnabled(*d.Logging.MaskSensitive)
	}
}

// OpenHistory opens the configured history store, or (nil, nil) when disabled.
// The sqlite default lives under the profile directory.
func (d *Doc) OpenHistory() (*history.Store, error) {
	if d.History.Disabled {
		return nil, nil
	}
	driver := d.History.Driver
	dsn := d.History.DSN
	if strings.TrimSpace(driver) == "" || strings.EqualFold(driver, history.DriverSqlite) {
		if strings.TrimSpace(dsn) == "" {
			dir, err := ProfileDir()
			if err != nil {
				return nil, err
			}
			dsn = filepath.Join(dir, history.StoreDBFileName)
		}
		return history.Open(history.DriverSqlite, dsn)
	}
	return history.Open(driver, dsn)
}
