// Package extension provides the Forge extension adapter for Universe.
//
// It implements the forge.Extension interface to integrate Universe
// into a Forge application with DI registration and lifecycle management.
//
// Configuration can be provided programmatically via Option functions
// or via YAML configuration files under "extensions.universe" or
// "universe" keys.
package extension

import (
	"context"
	"errors"
	"slices"

	"github.com/xraph/forge"
	"github.com/xraph/vessel"

	"github.com/xraph/universe"
	"github.com/xraph/universe/store"
	"github.com/xraph/universe/store/memory"
	"github.com/xraph/universe/token"
	tokenmem "github.com/xraph/universe/token/memory"
	"github.com/xraph/universe/types"
)

// ExtensionName is the name registered with Forge.
const ExtensionName = "universe"

// ExtensionDescription is the human-readable description.
const ExtensionDescription = "Planet yield game and taxed token engine"

// ExtensionVersion is the semantic version.
const ExtensionVersion = "0.1.0"

// Ensure Extension implements forge.Extension at compile time.
var _ forge.Extension = (*Extension)(nil)

// Extension adapts Universe as a Forge extension.
type Extension struct {
	*forge.BaseExtension

	config     Config
	engine     *universe.Engine
	store      store.Store
	tokens     token.Transactor
	engineOpts []universe.Option
}

// New creates a new Universe Forge extension with the given options.
func New(opts ...Option) *Extension {
	e := &Extension{
		BaseExtension: forge.NewBaseExtension(ExtensionName, ExtensionVersion, ExtensionDescription),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Engine returns the underlying Universe engine.
// This is nil until Register is called.
func (e *Extension) Engine() *universe.Engine { return e.engine }

// Register implements [forge.Extension]. It loads configuration,
// initializes the engine, and registers it in the DI container.
func (e *Extension) Register(fapp forge.App) error {
	if err := e.BaseExtension.Register(fapp); err != nil {
		return err
	}

	if err := e.loadConfiguration(); err != nil {
		return err
	}

	if fallbacks := e.applyFallbacks(); slices.Contains(fallbacks, "tokens") {
		e.Logger().Warn("universe: no token ledger configured, using an empty in-memory ledger; "+
			"open and fund its accounts or pass WithTokens",
			forge.F("token_mint", e.config.TokenMint),
		)
	}

	e.engine = universe.New(e.store, e.tokens, e.buildEngineOpts()...)

	return vessel.Provide(fapp.Container(), func() (*universe.Engine, error) {
		return e.engine, nil
	})
}

// applyFallbacks fills in in-process backends for any not provided and
// returns the names of those it supplied.
func (e *Extension) applyFallbacks() []string {
	var fallbacks []string
	if e.store == nil {
		e.store = memory.New()
		fallbacks = append(fallbacks, "store")
	}
	if e.tokens == nil {
		e.tokens = tokenmem.New(types.Account(e.config.TokenMint))
		fallbacks = append(fallbacks, "tokens")
	}
	return fallbacks
}

// Start implements [forge.Extension].
func (e *Extension) Start(ctx context.Context) error {
	if e.engine == nil {
		return errors.New("universe: extension not initialized")
	}

	if err := e.engine.Start(ctx); err != nil {
		return err
	}

	e.MarkStarted()
	return nil
}

// Stop implements [forge.Extension].
func (e *Extension) Stop(_ context.Context) error {
	if e.engine != nil {
		if err := e.engine.Stop(); err != nil {
			e.MarkStopped()
			return err
		}
	}
	e.MarkStopped()
	return nil
}

// Health implements [forge.Extension].
func (e *Extension) Health(ctx context.Context) error {
	if e.store == nil {
		return errors.New("universe: store not initialized")
	}
	return e.store.Ping(ctx)
}

// buildEngineOpts constructs universe.Option values from the resolved config.
func (e *Extension) buildEngineOpts() []universe.Option {
	opts := make([]universe.Option, 0, len(e.engineOpts)+3)

	opts = append(opts, universe.WithActivityConfig(e.config.ActivityBatchSize, e.config.ActivityFlushInterval))
	if e.config.DisableMigrate {
		opts = append(opts, universe.WithoutMigrate())
	}
	if e.config.MetadataBaseURI != "" {
		opts = append(opts, universe.WithMetadataBaseURI(e.config.MetadataBaseURI))
	}

	// Pass-through options go last so they win.
	opts = append(opts, e.engineOpts...)

	return opts
}

// --- Config Loading ---

// loadConfiguration loads config from YAML files or programmatic sources.
func (e *Extension) loadConfiguration() error {
	programmaticConfig := e.config

	fileConfig, configLoaded := e.tryLoadFromConfigFile()

	if !configLoaded {
		if programmaticConfig.RequireConfig {
			return errors.New("universe: configuration is required but not found in config files; " +
				"ensure 'extensions.universe' or 'universe' key exists in your config")
		}
		e.config = mergeWithDefaults(programmaticConfig)
	} else {
		e.config = mergeConfigurations(fileConfig, programmaticConfig)
	}

	e.Logger().Debug("universe: configuration loaded",
		forge.F("disable_migrate", e.config.DisableMigrate),
		forge.F("activity_batch_size", e.config.ActivityBatchSize),
		forge.F("activity_flush_interval", e.config.ActivityFlushInterval),
		forge.F("metadata_base_uri", e.config.MetadataBaseURI),
		forge.F("token_mint", e.config.TokenMint),
	)

	return nil
}

// tryLoadFromConfigFile attempts to load config from YAML files.
func (e *Extension) tryLoadFromConfigFile() (Config, bool) {
	cm := e.App().Config()
	var cfg Config

	for _, key := range []string{"extensions.universe", "universe"} {
		if !cm.IsSet(key) {
			continue
		}
		if err := cm.Bind(key, &cfg); err == nil {
			e.Logger().Debug("universe: loaded config from file",
				forge.F("key", key),
			)
			return cfg, true
		}
		e.Logger().Warn("universe: failed to bind config",
			forge.F("key", key),
			forge.F("error", "bind failed"),
		)
	}

	return Config{}, false
}

// mergeWithDefaults fills zero-valued fields with defaults.
func mergeWithDefaults(cfg Config) Config {
	defaults := DefaultConfig()
	if cfg.ActivityBatchSize == 0 {
		cfg.ActivityBatchSize = defaults.ActivityBatchSize
	}
	if cfg.ActivityFlushInterval == 0 {
		cfg.ActivityFlushInterval = defaults.ActivityFlushInterval
	}
	if cfg.TokenMint == "" {
		cfg.TokenMint = defaults.TokenMint
	}
	return cfg
}

// mergeConfigurations merges YAML config with programmatic options.
// YAML config takes precedence; programmatic values fill gaps.
func mergeConfigurations(yamlConfig, programmaticConfig Config) Config {
	if programmaticConfig.DisableMigrate {
		yamlConfig.DisableMigrate = true
	}
	if yamlConfig.MetadataBaseURI == "" {
		yamlConfig.MetadataBaseURI = programmaticConfig.MetadataBaseURI
	}
	if yamlConfig.TokenMint == "" {
		yamlConfig.TokenMint = programmaticConfig.TokenMint
	}
	if yamlConfig.ActivityBatchSize == 0 {
		yamlConfig.ActivityBatchSize = programmaticConfig.ActivityBatchSize
	}
	if yamlConfig.ActivityFlushInterval == 0 {
		yamlConfig.ActivityFlushInterval = programmaticConfig.ActivityFlushInterval
	}
	return mergeWithDefaults(yamlConfig)
}
