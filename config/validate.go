package config

// ValidateConfig checks that all configuration values are within acceptable
// ranges and returns the first error encountered, or nil if valid.
func ValidateConfig(cfg Config) error {
	if cfg.DataDir == "" {
		return ErrEmptyDataDir
	}
	if cfg.BuyFeePercent > 100 || cfg.SellFeePercent > 100 {
		return ErrInvalidFeePercent
	}
	if cfg.DistributionCooldown <= 0 {
		return ErrInvalidCooldown
	}
	if cfg.GovernanceDelay <= 0 {
		return ErrInvalidDelay
	}
	return nil
}
