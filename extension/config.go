package extension

import "time"

// Config holds the Universe extension configuration.
// Fields can be set programmatically via Option functions or loaded from
// YAML configuration files (under "extensions.universe" or "universe" keys).
type Config struct {
	// DisableMigrate prevents auto-migration on start.
	DisableMigrate bool `json:"disable_migrate" mapstructure:"disable_migrate" yaml:"disable_migrate"`

	// ActivityBatchSize is the number of journal events to buffer before
	// flushing to the store (default: 100).
	ActivityBatchSize int `json:"activity_batch_size" mapstructure:"activity_batch_size" yaml:"activity_batch_size"`

	// ActivityFlushInterval is how frequently the journal buffer is flushed
	// even if the batch size has not been reached (default: 5s).
	ActivityFlushInterval time.Duration `json:"activity_flush_interval" mapstructure:"activity_flush_interval" yaml:"activity_flush_interval"`

	// MetadataBaseURI prefixes the image and external URLs of published
	// planet metadata.
	MetadataBaseURI string `json:"metadata_base_uri" mapstructure:"metadata_base_uri" yaml:"metadata_base_uri"`

	// TokenMint names the mint of the in-process token ledger used when no
	// token backend is supplied (default: "UNIV").
	TokenMint string `json:"token_mint" mapstructure:"token_mint" yaml:"token_mint"`

	// RequireConfig requires config to be present in YAML files.
	// If true and no config is found, Register returns an error.
	RequireConfig bool `json:"-" yaml:"-"`
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		ActivityBatchSize:     100,
		ActivityFlushInterval: 5 * time.Second,
		TokenMint:             "UNIV",
	}
}
