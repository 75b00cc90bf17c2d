// Package config provides runtime configuration for HearthGuard.
// It uses Viper to load settings from files and environment variables.
package config

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// Alert-log persistence modes. Persistent writes the alerts document to
// disk on every append; ephemeral keeps the history in memory for the
// lifetime of the process only.
const (
	PersistenceFile      = "persistent"
	PersistenceEphemeral = "ephemeral"
)

// Config holds all runtime configuration for HearthGuard.
type Config struct {
	// ── Server ───────────────────────────────────────────────────────────────
	ServerHost string `mapstructure:"server_host"`
	HTTPPort   int    `mapstructure:"http_port"`

	// ── State documents ──────────────────────────────────────────────────────
	// DataDir holds the two JSON documents that make up the external
	// contract: the device collection and the alert history.
	DataDir     string `mapstructure:"data_dir"`
	NetworkFile string `mapstructure:"network_file"`
	AlertsFile  string `mapstructure:"alerts_file"`

	// ── Alert log policy ─────────────────────────────────────────────────────
	// AlertPersistence: "persistent" or "ephemeral".
	AlertPersistence string `mapstructure:"alert_persistence"`
	// AlertCap bounds the live alert history; 0 = unlimited (append forever).
	AlertCap int `mapstructure:"alert_cap"`
	// ArchivePath: SQLite database receiving rotated-out alerts; empty
	// disables archiving (rotated alerts are discarded).
	ArchivePath string `mapstructure:"archive_path"`
	// SimulateOnRead pushes one synthetic alert into the log every time the
	// alert list is read, imitating live traffic.
	SimulateOnRead bool `mapstructure:"simulate_on_read"`

	// ── VLAN conventions ─────────────────────────────────────────────────────
	// QuarantineVLAN is where quarantined devices are parked; ReleaseVLAN is
	// where released devices return to.
	QuarantineVLAN int `mapstructure:"quarantine_vlan"`
	ReleaseVLAN    int `mapstructure:"release_vlan"`
}

// NetworkPath returns the absolute-ish location of the device document.
func (c *Config) NetworkPath() string {
	return filepath.Join(c.DataDir, c.NetworkFile)
}

// AlertsPath returns the location of the alert document.
func (c *Config) AlertsPath() string {
	return filepath.Join(c.DataDir, c.AlertsFile)
}

// Load reads config from file (./config.yaml or ~/.hearthguard/config.yaml)
// and falls back to defaults. Environment variables with prefix HEARTH_
// override file values.
func Load() (*Config, error) {
	v := viper.New()

	// --- Defaults ---
	v.SetDefault("server_host", "0.0.0.0")
	v.SetDefault("http_port", 8484)

	v.SetDefault("data_dir", "data")
	v.SetDefault("network_file", "network.json")
	v.SetDefault("alerts_file", "alerts.json")

	v.SetDefault("alert_persistence", PersistenceFile)
	v.SetDefault("alert_cap", 0)
	v.SetDefault("archive_path", "")
	v.SetDefault("simulate_on_read", true)

	v.SetDefault("quarantine_vlan", 99)
	v.SetDefault("release_vlan", 40)

	// --- Config file ---
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("$HOME/.hearthguard")
	if err := v.ReadInConfig(); err != nil {
		// config file is optional; ignore "not found" errors
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
	}

	// --- Environment Variables ---
	v.SetEnvPrefix("HEARTH")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	switch cfg.AlertPersistence {
	case PersistenceFile, PersistenceEphemeral:
	default:
		return nil, fmt.Errorf("unsupported alert_persistence %q (use %q or %q)",
			cfg.AlertPersistence, PersistenceFile, PersistenceEphemeral)
	}
	return &cfg, nil
}
