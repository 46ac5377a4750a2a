package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

// ---------------------------------------------------------------------------
// DefaultConfig tests
// ---------------------------------------------------------------------------

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	tests := []struct {
		name string
		got  interface{}
		want interface{}
	}{
		{"BuyFeePercent", cfg.BuyFeePercent, uint64(99)},
		{"SellFeePercent", cfg.SellFeePercent, uint64(99)},
		{"DistributionCooldown", cfg.DistributionCooldown, 3 * time.Hour},
		{"GovernanceDelay", cfg.GovernanceDelay, 7 * 24 * time.Hour},
		{"MinEligibleBalance", cfg.MinEligibleBalance, uint64(1000)},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if tc.got != tc.want {
				t.Errorf("got %v, want %v", tc.got, tc.want)
			}
		})
	}

	// DataDir depends on the home directory; only assert the suffix.
	if !strings.HasSuffix(cfg.DataDir, ".reflux") {
		t.Errorf("DataDir = %q, want suffix %q", cfg.DataDir, ".reflux")
	}
}

// ---------------------------------------------------------------------------
// SaveConfig / LoadConfig round-trip tests
// ---------------------------------------------------------------------------

func TestSaveLoadRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config")

	original := Config{
		DataDir:              "/tmp/test-reflux",
		BuyFeePercent:        12,
		SellFeePercent:       34,
		DistributionCooldown: 90 * time.Minute,
		GovernanceDelay:      48 * time.Hour,
		MinEligibleBalance:   250,
	}

	if err := SaveConfig(path, original); err != nil {
		t.Fatalf("SaveConfig: %v", err)
	}

	loaded, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}

	if loaded != original {
		t.Errorf("round trip mismatch:\n got  %+v\n want %+v", loaded, original)
	}
}

func TestSaveConfigCreatesDirectory(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "subdir", "config")

	if err := SaveConfig(path, DefaultConfig()); err != nil {
		t.Fatalf("SaveConfig should create parent dirs: %v", err)
	}

	if _, err := os.Stat(path); err != nil {
		t.Errorf("Config file not created: %v", err)
	}
}

func TestSaveConfig_OutputContainsHeader(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config")

	if err := SaveConfig(path, DefaultConfig()); err != nil {
		t.Fatalf("SaveConfig: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if !strings.Contains(string(data), "# Reflux Configuration") {
		t.Error("saved config should contain header '# Reflux Configuration'")
	}
}

// ---------------------------------------------------------------------------
// LoadConfig parser tests
// ---------------------------------------------------------------------------

func TestLoadConfigNotFound(t *testing.T) {
	_, err := LoadConfig("/nonexistent/path/config")
	if !errors.Is(err, ErrConfigNotFound) {
		t.Errorf("LoadConfig nonexistent: got %v, want ErrConfigNotFound", err)
	}
}

func TestLoadConfigInvalidLine(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config")

	if err := os.WriteFile(path, []byte("this-is-not-key-value\n"), 0600); err != nil {
		t.Fatal(err)
	}

	_, err := LoadConfig(path)
	if !errors.Is(err, ErrInvalidConfigLine) {
		t.Errorf("LoadConfig bad line: got %v, want ErrInvalidConfigLine", err)
	}
}

func TestLoadConfigBadValue(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config")

	if err := os.WriteFile(path, []byte("buyfee = ninety-nine\n"), 0600); err != nil {
		t.Fatal(err)
	}

	_, err := LoadConfig(path)
	if !errors.Is(err, ErrInvalidConfigLine) {
		t.Errorf("LoadConfig bad value: got %v, want ErrInvalidConfigLine", err)
	}
}

func TestLoadConfigCommentsAndBlanks(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config")

	content := `# This is a comment
buyfee = 5

# Another comment
cooldown = 1h
`
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}

	if cfg.BuyFeePercent != 5 {
		t.Errorf("BuyFeePercent = %d, want 5", cfg.BuyFeePercent)
	}
	if cfg.DistributionCooldown != time.Hour {
		t.Errorf("DistributionCooldown = %v, want 1h", cfg.DistributionCooldown)
	}
	// Unset fields should retain defaults.
	if cfg.SellFeePercent != 99 {
		t.Errorf("SellFeePercent = %d, want default 99", cfg.SellFeePercent)
	}
}

func TestLoadConfigUnknownKeysIgnored(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config")

	content := "futurekey = futurevalue\nbuyfee = 7\n"
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig with unknown key: %v", err)
	}
	if cfg.BuyFeePercent != 7 {
		t.Errorf("BuyFeePercent = %d, want 7", cfg.BuyFeePercent)
	}
}

func TestLoadConfig_WhitespaceAroundEquals(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config")

	if err := os.WriteFile(path, []byte("  mineligible = 42  \n"), 0600); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.MinEligibleBalance != 42 {
		t.Errorf("MinEligibleBalance = %d, want 42", cfg.MinEligibleBalance)
	}
}

// ---------------------------------------------------------------------------
// ValidateConfig tests
// ---------------------------------------------------------------------------

func TestValidateConfigDefaults(t *testing.T) {
	if err := ValidateConfig(DefaultConfig()); err != nil {
		t.Errorf("ValidateConfig(DefaultConfig()) = %v, want nil", err)
	}
}

func TestValidateConfigErrors(t *testing.T) {
	tests := []struct {
		name    string
		modify  func(*Config)
		wantErr error
	}{
		{
			name:    "empty_datadir",
			modify:  func(c *Config) { c.DataDir = "" },
			wantErr: ErrEmptyDataDir,
		},
		{
			name:    "buy_fee_over_100",
			modify:  func(c *Config) { c.BuyFeePercent = 101 },
			wantErr: ErrInvalidFeePercent,
		},
		{
			name:    "sell_fee_over_100",
			modify:  func(c *Config) { c.SellFeePercent = 200 },
			wantErr: ErrInvalidFeePercent,
		},
		{
			name:    "zero_cooldown",
			modify:  func(c *Config) { c.DistributionCooldown = 0 },
			wantErr: ErrInvalidCooldown,
		},
		{
			name:    "negative_delay",
			modify:  func(c *Config) { c.GovernanceDelay = -time.Hour },
			wantErr: ErrInvalidDelay,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tc.modify(&cfg)
			err := ValidateConfig(cfg)
			if !errors.Is(err, tc.wantErr) {
				t.Errorf("ValidateConfig: got %v, want %v", err, tc.wantErr)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// ConfigPath tests
// ---------------------------------------------------------------------------

func TestConfigPath(t *testing.T) {
	got := ConfigPath("/home/user/.reflux")
	want := filepath.Join("/home/user/.reflux", "config")
	if got != want {
		t.Errorf("ConfigPath = %q, want %q", got, want)
	}
}

func TestDefaultDataDir_EndsWith_DotReflux(t *testing.T) {
	if !strings.HasSuffix(DefaultDataDir(), ".reflux") {
		t.Errorf("DefaultDataDir() = %q, want suffix %q", DefaultDataDir(), ".reflux")
	}
}
