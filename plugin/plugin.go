// Package plugin provides an extensible plugin system for Universe.
// Plugins can hook into lifecycle events to extend functionality.
// Hooks fire only after an operation has committed.
package plugin

import (
	"context"
	"time"

	"github.com/xraph/universe/config"
	"github.com/xraph/universe/planet"
	"github.com/xraph/universe/tax"
	"github.com/xraph/universe/types"
	"github.com/xraph/universe/user"
	"github.com/xraph/universe/vesting"
)

// Plugin is the base interface that all plugins must implement.
type Plugin interface {
	Name() string
}

// ──────────────────────────────────────────────────
// Lifecycle hooks
// ──────────────────────────────────────────────────

// OnInit is called when the engine starts.
type OnInit interface {
	Plugin
	OnInit(ctx context.Context, engine any) error
}

// OnShutdown is called when the engine stops.
type OnShutdown interface {
	Plugin
	OnShutdown(ctx context.Context) error
}

// ──────────────────────────────────────────────────
// Config hooks
// ──────────────────────────────────────────────────

// OnConfigInitialized is called once the bootstrap config is stored.
type OnConfigInitialized interface {
	Plugin
	OnConfigInitialized(ctx context.Context, cfg *config.Config) error
}

// OnConfigUpdated is called after an admin update.
type OnConfigUpdated interface {
	Plugin
	OnConfigUpdated(ctx context.Context, oldCfg, newCfg *config.Config) error
}

// ──────────────────────────────────────────────────
// Registry and planet hooks
// ──────────────────────────────────────────────────

// OnUserInitialized is called when an owner registers.
type OnUserInitialized interface {
	Plugin
	OnUserInitialized(ctx context.Context, u *user.User) error
}

// OnPlanetCreated is called when a planet is created.
type OnPlanetCreated interface {
	Plugin
	OnPlanetCreated(ctx context.Context, p *planet.Planet) error
}

// OnRewardsClaimed is called when a reward is paid out.
type OnRewardsClaimed interface {
	Plugin
	OnRewardsClaimed(ctx context.Context, p *planet.Planet, reward types.Amount) error
}

// OnRewardsCompounded is called when a reward is folded into a planet.
type OnRewardsCompounded interface {
	Plugin
	OnRewardsCompounded(ctx context.Context, p *planet.Planet, reward types.Amount) error
}

// OnPlanetTransferred is called when a planet changes owner.
type OnPlanetTransferred interface {
	Plugin
	OnPlanetTransferred(ctx context.Context, p *planet.Planet, seller types.Account, charged tax.NFTBreakdown) error
}

// OnMetadataPublished is called with the collectible metadata of a
// created or compounded planet.
type OnMetadataPublished interface {
	Plugin
	OnMetadataPublished(ctx context.Context, m planet.Metadata) error
}

// ──────────────────────────────────────────────────
// Token hooks
// ──────────────────────────────────────────────────

// OnTaxedTransfer is called after a taxed token transfer.
type OnTaxedTransfer interface {
	Plugin
	OnTaxedTransfer(ctx context.Context, from, to types.Account, charged tax.Breakdown) error
}

// OnTokensBurned is called after a burn from the reserve.
type OnTokensBurned interface {
	Plugin
	OnTokensBurned(ctx context.Context, from types.Account, amount types.Amount) error
}

// ──────────────────────────────────────────────────
// Vesting hooks
// ──────────────────────────────────────────────────

// OnVestingSetup is called when the vesting schedule is created.
type OnVestingSetup interface {
	Plugin
	OnVestingSetup(ctx context.Context, v *vesting.Vesting) error
}

// OnVestedClaimed is called when vested tokens are released.
type OnVestedClaimed interface {
	Plugin
	OnVestedClaimed(ctx context.Context, track vesting.Track, amount types.Amount, v *vesting.Vesting) error
}

// ──────────────────────────────────────────────────
// Engine hooks
// ──────────────────────────────────────────────────

// OnOperationRejected is called when an operation fails. Nothing was
// committed.
type OnOperationRejected interface {
	Plugin
	OnOperationRejected(ctx context.Context, op string, caller types.Account, err error) error
}

// OnActivityFlushed is called when journal events are flushed to the store.
type OnActivityFlushed interface {
	Plugin
	OnActivityFlushed(ctx context.Context, count int, elapsed time.Duration) error
}
