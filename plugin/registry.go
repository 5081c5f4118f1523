package plugin

import (
	"context"
	"fmt"
	"log/slog"
	"reflect"
	"sync"
	"time"

	"github.com/xraph/universe/config"
	"github.com/xraph/universe/planet"
	"github.com/xraph/universe/tax"
	"github.com/xraph/universe/types"
	"github.com/xraph/universe/user"
	"github.com/xraph/universe/vesting"
)

// DefaultTimeout bounds a single hook call.
const DefaultTimeout = 5 * time.Second

// Registry manages all registered plugins and provides efficient dispatch.
// It uses type-cached discovery for O(1) dispatch performance.
type Registry struct {
	mu      sync.RWMutex
	plugins []Plugin
	logger  *slog.Logger
	timeout time.Duration

	// Type-cached plugin lists for efficient dispatch
	onInit              []OnInit
	onShutdown          []OnShutdown
	onConfigInitialized []OnConfigInitialized
	onConfigUpdated     []OnConfigUpdated
	onUserInitialized   []OnUserInitialized
	onPlanetCreated     []OnPlanetCreated
	onRewardsClaimed    []OnRewardsClaimed
	onRewardsCompounded []OnRewardsCompounded
	onPlanetTransferred []OnPlanetTransferred
	onMetadataPublished []OnMetadataPublished
	onTaxedTransfer     []OnTaxedTransfer
	onTokensBurned      []OnTokensBurned
	onVestingSetup      []OnVestingSetup
	onVestedClaimed     []OnVestedClaimed
	onRejected          []OnOperationRejected
	onActivityFlushed   []OnActivityFlushed
}

// NewRegistry creates a new plugin registry.
func NewRegistry() *Registry {
	return &Registry{
		logger:  slog.Default(),
		timeout: DefaultTimeout,
	}
}

// WithLogger sets the logger for the registry.
func (r *Registry) WithLogger(logger *slog.Logger) *Registry {
	r.logger = logger
	return r
}

// WithTimeout sets the per-hook timeout.
func (r *Registry) WithTimeout(d time.Duration) *Registry {
	if d > 0 {
		r.timeout = d
	}
	return r
}

// Register adds a plugin to the registry and caches its interfaces.
func (r *Registry) Register(p Plugin) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.plugins {
		if existing.Name() == p.Name() {
			return fmt.Errorf("plugin: duplicate registration: %s", p.Name())
		}
	}

	r.plugins = append(r.plugins, p)

	cache(p, &r.onInit)
	cache(p, &r.onShutdown)
	cache(p, &r.onConfigInitialized)
	cache(p, &r.onConfigUpdated)
	cache(p, &r.onUserInitialized)
	cache(p, &r.onPlanetCreated)
	cache(p, &r.onRewardsClaimed)
	cache(p, &r.onRewardsCompounded)
	cache(p, &r.onPlanetTransferred)
	cache(p, &r.onMetadataPublished)
	cache(p, &r.onTaxedTransfer)
	cache(p, &r.onTokensBurned)
	cache(p, &r.onVestingSetup)
	cache(p, &r.onVestedClaimed)
	cache(p, &r.onRejected)
	cache(p, &r.onActivityFlushed)

	r.logger.Info("plugin registered",
		"name", p.Name(),
		"interfaces", implementedInterfaces(p),
	)

	return nil
}

func cache[T Plugin](p Plugin, list *[]T) {
	if v, ok := p.(T); ok {
		*list = append(*list, v)
	}
}

var hookTypes = []reflect.Type{
	reflect.TypeFor[OnInit](),
	reflect.TypeFor[OnShutdown](),
	reflect.TypeFor[OnConfigInitialized](),
	reflect.TypeFor[OnConfigUpdated](),
	reflect.TypeFor[OnUserInitialized](),
	reflect.TypeFor[OnPlanetCreated](),
	reflect.TypeFor[OnRewardsClaimed](),
	reflect.TypeFor[OnRewardsCompounded](),
	reflect.TypeFor[OnPlanetTransferred](),
	reflect.TypeFor[OnMetadataPublished](),
	reflect.TypeFor[OnTaxedTransfer](),
	reflect.TypeFor[OnTokensBurned](),
	reflect.TypeFor[OnVestingSetup](),
	reflect.TypeFor[OnVestedClaimed](),
	reflect.TypeFor[OnOperationRejected](),
	reflect.TypeFor[OnActivityFlushed](),
}

// implementedInterfaces returns the hook names implemented by the plugin.
func implementedInterfaces(p Plugin) []string {
	var names []string
	v := reflect.TypeOf(p)
	for _, iface := range hookTypes {
		if v.Implements(iface) {
			names = append(names, iface.Name())
		}
	}
	return names
}

// Get returns a plugin by name.
func (r *Registry) Get(name string) Plugin {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, p := range r.plugins {
		if p.Name() == name {
			return p
		}
	}
	return nil
}

// List returns all registered plugins.
func (r *Registry) List() []Plugin {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]Plugin, len(r.plugins))
	copy(result, r.plugins)
	return result
}

// Count returns the number of registered plugins.
func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.plugins)
}

// ──────────────────────────────────────────────────
// Event emission methods
// ──────────────────────────────────────────────────

// dispatch calls fn for every plugin in the snapshot of list. Failures
// are logged and never reach the caller.
func dispatch[T Plugin](ctx context.Context, r *Registry, hook string, list *[]T, fn func(T) error) {
	r.mu.RLock()
	plugins := *list
	r.mu.RUnlock()

	for _, p := range plugins {
		if err := r.callWithTimeout(ctx, p.Name(), func() error {
			return fn(p)
		}); err != nil {
			r.logger.Warn("plugin "+hook+" failed",
				"plugin", p.Name(),
				"error", err,
			)
		}
	}
}

// EmitInit calls OnInit for all plugins that implement it.
func (r *Registry) EmitInit(ctx context.Context, engine any) {
	dispatch(ctx, r, "OnInit", &r.onInit, func(p OnInit) error {
		return p.OnInit(ctx, engine)
	})
}

// EmitShutdown calls OnShutdown for all plugins that implement it.
func (r *Registry) EmitShutdown(ctx context.Context) {
	dispatch(ctx, r, "OnShutdown", &r.onShutdown, func(p OnShutdown) error {
		return p.OnShutdown(ctx)
	})
}

func (r *Registry) EmitConfigInitialized(ctx context.Context, cfg *config.Config) {
	dispatch(ctx, r, "OnConfigInitialized", &r.onConfigInitialized, func(p OnConfigInitialized) error {
		return p.OnConfigInitialized(ctx, cfg)
	})
}

func (r *Registry) EmitConfigUpdated(ctx context.Context, oldCfg, newCfg *config.Config) {
	dispatch(ctx, r, "OnConfigUpdated", &r.onConfigUpdated, func(p OnConfigUpdated) error {
		return p.OnConfigUpdated(ctx, oldCfg, newCfg)
	})
}

func (r *Registry) EmitUserInitialized(ctx context.Context, u *user.User) {
	dispatch(ctx, r, "OnUserInitialized", &r.onUserInitialized, func(p OnUserInitialized) error {
		return p.OnUserInitialized(ctx, u)
	})
}

func (r *Registry) EmitPlanetCreated(ctx context.Context, pl *planet.Planet) {
	dispatch(ctx, r, "OnPlanetCreated", &r.onPlanetCreated, func(p OnPlanetCreated) error {
		return p.OnPlanetCreated(ctx, pl)
	})
}

func (r *Registry) EmitRewardsClaimed(ctx context.Context, pl *planet.Planet, reward types.Amount) {
	dispatch(ctx, r, "OnRewardsClaimed", &r.onRewardsClaimed, func(p OnRewardsClaimed) error {
		return p.OnRewardsClaimed(ctx, pl, reward)
	})
}

func (r *Registry) EmitRewardsCompounded(ctx context.Context, pl *planet.Planet, reward types.Amount) {
	dispatch(ctx, r, "OnRewardsCompounded", &r.onRewardsCompounded, func(p OnRewardsCompounded) error {
		return p.OnRewardsCompounded(ctx, pl, reward)
	})
}

func (r *Registry) EmitPlanetTransferred(ctx context.Context, pl *planet.Planet, seller types.Account, charged tax.NFTBreakdown) {
	dispatch(ctx, r, "OnPlanetTransferred", &r.onPlanetTransferred, func(p OnPlanetTransferred) error {
		return p.OnPlanetTransferred(ctx, pl, seller, charged)
	})
}

func (r *Registry) EmitMetadataPublished(ctx context.Context, m planet.Metadata) {
	dispatch(ctx, r, "OnMetadataPublished", &r.onMetadataPublished, func(p OnMetadataPublished) error {
		return p.OnMetadataPublished(ctx, m)
	})
}

func (r *Registry) EmitTaxedTransfer(ctx context.Context, from, to types.Account, charged tax.Breakdown) {
	dispatch(ctx, r, "OnTaxedTransfer", &r.onTaxedTransfer, func(p OnTaxedTransfer) error {
		return p.OnTaxedTransfer(ctx, from, to, charged)
	})
}

func (r *Registry) EmitTokensBurned(ctx context.Context, from types.Account, amount types.Amount) {
	dispatch(ctx, r, "OnTokensBurned", &r.onTokensBurned, func(p OnTokensBurned) error {
		return p.OnTokensBurned(ctx, from, amount)
	})
}

func (r *Registry) EmitVestingSetup(ctx context.Context, v *vesting.Vesting) {
	dispatch(ctx, r, "OnVestingSetup", &r.onVestingSetup, func(p OnVestingSetup) error {
		return p.OnVestingSetup(ctx, v)
	})
}

func (r *Registry) EmitVestedClaimed(ctx context.Context, track vesting.Track, amount types.Amount, v *vesting.Vesting) {
	dispatch(ctx, r, "OnVestedClaimed", &r.onVestedClaimed, func(p OnVestedClaimed) error {
		return p.OnVestedClaimed(ctx, track, amount, v)
	})
}

func (r *Registry) EmitOperationRejected(ctx context.Context, op string, caller types.Account, err error) {
	dispatch(ctx, r, "OnOperationRejected", &r.onRejected, func(p OnOperationRejected) error {
		return p.OnOperationRejected(ctx, op, caller, err)
	})
}

func (r *Registry) EmitActivityFlushed(ctx context.Context, count int, elapsed time.Duration) {
	dispatch(ctx, r, "OnActivityFlushed", &r.onActivityFlushed, func(p OnActivityFlushed) error {
		return p.OnActivityFlushed(ctx, count, elapsed)
	})
}

// callWithTimeout calls a plugin function with a timeout.
// Plugins should never block the game engine.
func (r *Registry) callWithTimeout(ctx context.Context, pluginName string, fn func() error) error {
	done := make(chan error, 1)

	go func() {
		done <- fn()
	}()

	timer := time.NewTimer(r.timeout)
	defer timer.Stop()

	select {
	case err := <-done:
		return err
	case <-timer.C:
		return fmt.Errorf("plugin timeout: %s", pluginName)
	case <-ctx.Done():
		return ctx.Err()
	}
}
