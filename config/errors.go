package config

import "errors"

var (
	// ErrEmptyDataDir indicates the data directory path is empty.
	ErrEmptyDataDir = errors.New("config: data directory must not be empty")

	// ErrInvalidFeePercent indicates a buy or sell fee percentage above 100.
	ErrInvalidFeePercent = errors.New("config: fee percentage must not exceed 100")

	// ErrInvalidCooldown indicates a non-positive distribution cooldown.
	ErrInvalidCooldown = errors.New("config: distribution cooldown must be positive")

	// ErrInvalidDelay indicates a non-positive governance delay.
	ErrInvalidDelay = errors.New("config: governance delay must be positive")

	// ErrConfigNotFound indicates the configuration file does not exist.
	ErrConfigNotFound = errors.New("config: configuration file not found")

	// ErrInvalidConfigLine indicates a line in the config file is malformed.
	ErrInvalidConfigLine = errors.New("config: invalid configuration line")
)
