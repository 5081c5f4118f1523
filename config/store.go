package config

import "context"

// Store reads the singleton config. Writes go through the engine's
// atomic changeset.
type Store interface {
	GetConfig(ctx context.Context) (*Config, error)
}
