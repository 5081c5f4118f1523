package extension

import (
	"time"

	"github.com/xraph/universe"
	"github.com/xraph/universe/plugin"
	"github.com/xraph/universe/store"
	"github.com/xraph/universe/token"
)

// Option configures the Universe Forge extension.
type Option func(*Extension)

// WithStore sets the store for the universe engine.
func WithStore(s store.Store) Option {
	return func(e *Extension) {
		e.store = s
	}
}

// WithTokens sets the token backend the engine moves funds through.
func WithTokens(t token.Transactor) Option {
	return func(e *Extension) {
		e.tokens = t
	}
}

// WithEngineOption passes a universe.Option through to the underlying engine.
func WithEngineOption(opt universe.Option) Option {
	return func(e *Extension) {
		e.engineOpts = append(e.engineOpts, opt)
	}
}

// WithPlugin registers a universe plugin.
func WithPlugin(p plugin.Plugin) Option {
	return func(e *Extension) {
		e.engineOpts = append(e.engineOpts, universe.WithPlugin(p))
	}
}

// WithConfig sets the Forge extension configuration.
func WithConfig(cfg Config) Option {
	return func(e *Extension) { e.config = cfg }
}

// WithDisableMigrate prevents auto-migration on start.
func WithDisableMigrate() Option {
	return func(e *Extension) { e.config.DisableMigrate = true }
}

// WithRequireConfig requires config to be present in YAML files.
// If true and no config is found, Register returns an error.
func WithRequireConfig(require bool) Option {
	return func(e *Extension) { e.config.RequireConfig = require }
}

// WithActivityBatchSize sets the number of journal events to buffer before flushing.
func WithActivityBatchSize(size int) Option {
	return func(e *Extension) { e.config.ActivityBatchSize = size }
}

// WithActivityFlushInterval sets how frequently the journal buffer is flushed.
func WithActivityFlushInterval(d time.Duration) Option {
	return func(e *Extension) { e.config.ActivityFlushInterval = d }
}

// WithMetadataBaseURI sets the prefix of published metadata URLs.
func WithMetadataBaseURI(uri string) Option {
	return func(e *Extension) { e.config.MetadataBaseURI = uri }
}
