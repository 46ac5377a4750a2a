// Package config holds the tunable parameters of a reflux ledger: fee
// percentages, the distribution cooldown, the governance timelock delay,
// and the reward eligibility threshold, with a plain key=value file format
// for operators.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

// Config holds the operator-tunable ledger parameters.
type Config struct {
	// DataDir is the directory for persistent state (bolt ledger, snapshots).
	DataDir string

	// BuyFeePercent is the starting fee on transfers from the pool proxy.
	BuyFeePercent uint64

	// SellFeePercent is the starting fee on transfers to the pool proxy.
	SellFeePercent uint64

	// DistributionCooldown is the minimum interval between reward
	// distribution runs.
	DistributionCooldown time.Duration

	// GovernanceDelay is the timelock between proposing and applying a
	// fee change.
	GovernanceDelay time.Duration

	// MinEligibleBalance is the smallest balance that accrues rewards at
	// distribution time.
	MinEligibleBalance uint64
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{
		DataDir:              DefaultDataDir(),
		BuyFeePercent:        99,
		SellFeePercent:       99,
		DistributionCooldown: 3 * time.Hour,
		GovernanceDelay:      7 * 24 * time.Hour,
		MinEligibleBalance:   1000,
	}
}

// DefaultDataDir returns {home}/.reflux, falling back to ./.reflux when the
// home directory cannot be determined.
func DefaultDataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}
	return filepath.Join(home, ".reflux")
}

// ConfigPath returns the path of the config file inside dataDir.
func ConfigPath(dataDir string) string {
	return filepath.Join(dataDir, "config")
}

// SaveConfig writes cfg to path as "key = value" lines, creating the parent
// directory if needed.
func SaveConfig(path string, cfg Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return fmt.Errorf("config: create directory: %w", err)
	}

	var b strings.Builder
	b.WriteString("# Reflux Configuration\n")
	fmt.Fprintf(&b, "datadir = %s\n", cfg.DataDir)
	fmt.Fprintf(&b, "buyfee = %d\n", cfg.BuyFeePercent)
	fmt.Fprintf(&b, "sellfee = %d\n", cfg.SellFeePercent)
	fmt.Fprintf(&b, "cooldown = %s\n", cfg.DistributionCooldown)
	fmt.Fprintf(&b, "govdelay = %s\n", cfg.GovernanceDelay)
	fmt.Fprintf(&b, "mineligible = %d\n", cfg.MinEligibleBalance)

	return os.WriteFile(path, []byte(b.String()), 0600)
}

// LoadConfig reads a key=value configuration file written by SaveConfig.
// Missing keys keep their default values; unknown keys are ignored so old
// binaries tolerate configs written by newer ones. Blank lines and lines
// starting with '#' are skipped.
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Config{}, fmt.Errorf("%w: %s", ErrConfigNotFound, path)
		}
		return Config{}, fmt.Errorf("config: read file: %w", err)
	}

	cfg := DefaultConfig()
	for i, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		key, value, found := strings.Cut(line, "=")
		if !found {
			return Config{}, fmt.Errorf("%w: line %d: %q", ErrInvalidConfigLine, i+1, line)
		}
		key = strings.TrimSpace(key)
		value = strings.TrimSpace(value)

		var parseErr error
		switch key {
		case "datadir":
			cfg.DataDir = value
		case "buyfee":
			cfg.BuyFeePercent, parseErr = strconv.ParseUint(value, 10, 64)
		case "sellfee":
			cfg.SellFeePercent, parseErr = strconv.ParseUint(value, 10, 64)
		case "cooldown":
			cfg.DistributionCooldown, parseErr = time.ParseDuration(value)
		case "govdelay":
			cfg.GovernanceDelay, parseErr = time.ParseDuration(value)
		case "mineligible":
			cfg.MinEligibleBalance, parseErr = strconv.ParseUint(value, 10, 64)
		}
		if parseErr != nil {
			return Config{}, fmt.Errorf("%w: line %d: %v", ErrInvalidConfigLine, i+1, parseErr)
		}
	}
	return cfg, nil
}
