// Package audithook bridges Universe lifecycle events to an audit trail backend.
//
// It defines a local Recorder interface so the package does not import
// an audit backend directly. Callers inject a RecorderFunc adapter at
// wiring time.
package audithook

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/xraph/universe/config"
	"github.com/xraph/universe/planet"
	"github.com/xraph/universe/plugin"
	"github.com/xraph/universe/tax"
	"github.com/xraph/universe/types"
	"github.com/xraph/universe/user"
	"github.com/xraph/universe/vesting"
)

// Compile-time interface checks.
var (
	_ plugin.Plugin              = (*Extension)(nil)
	_ plugin.OnConfigInitialized = (*Extension)(nil)
	_ plugin.OnConfigUpdated     = (*Extension)(nil)
	_ plugin.OnUserInitialized   = (*Extension)(nil)
	_ plugin.OnPlanetCreated     = (*Extension)(nil)
	_ plugin.OnRewardsClaimed    = (*Extension)(nil)
	_ plugin.OnRewardsCompounded = (*Extension)(nil)
	_ plugin.OnPlanetTransferred = (*Extension)(nil)
	_ plugin.OnTaxedTransfer     = (*Extension)(nil)
	_ plugin.OnTokensBurned      = (*Extension)(nil)
	_ plugin.OnVestingSetup      = (*Extension)(nil)
	_ plugin.OnVestedClaimed     = (*Extension)(nil)
	_ plugin.OnOperationRejected = (*Extension)(nil)
)

// Recorder is the interface that audit backends must implement.
type Recorder interface {
	Record(ctx context.Context, event *AuditEvent) error
}

// AuditEvent is a local representation of an audit event.
type AuditEvent struct {
	Action     string         `json:"action"`
	Resource   string         `json:"resource"`
	Category   string         `json:"category"`
	ResourceID string         `json:"resource_id,omitempty"`
	Metadata   map[string]any `json:"metadata,omitempty"`
	Outcome    string         `json:"outcome"`
	Severity   string         `json:"severity"`
	Reason     string         `json:"reason,omitempty"`
}

// RecorderFunc is an adapter to use a plain function as a Recorder.
type RecorderFunc func(ctx context.Context, event *AuditEvent) error

// Record implements Recorder.
func (f RecorderFunc) Record(ctx context.Context, event *AuditEvent) error {
	return f(ctx, event)
}

// Extension bridges Universe lifecycle events to an audit trail backend.
type Extension struct {
	recorder Recorder
	enabled  map[string]bool // nil = all enabled
	logger   *slog.Logger
}

// New creates an Extension that emits audit events through the provided Recorder.
func New(r Recorder, opts ...Option) *Extension {
	e := &Extension{
		recorder: r,
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Name implements plugin.Plugin.
func (e *Extension) Name() string { return "audit-hook" }

// ──────────────────────────────────────────────────
// Config hooks
// ──────────────────────────────────────────────────

// OnConfigInitialized implements plugin.OnConfigInitialized.
func (e *Extension) OnConfigInitialized(ctx context.Context, cfg *config.Config) error {
	return e.record(ctx, ActionConfigInitialized, SeverityInfo, OutcomeSuccess,
		ResourceConfig, "config", CategoryAdmin, nil,
		"admin", cfg.Admin.String(),
		"token_mint", cfg.TokenMint.String(),
		"total_supply", cfg.TotalSupply.String(),
	)
}

// OnConfigUpdated implements plugin.OnConfigUpdated.
func (e *Extension) OnConfigUpdated(ctx context.Context, oldCfg, newCfg *config.Config) error {
	return e.record(ctx, ActionConfigUpdated, SeverityWarning, OutcomeSuccess,
		ResourceConfig, "config", CategoryAdmin, nil,
		"admin", newCfg.Admin.String(),
		"old_reward_rate", oldCfg.RewardRate,
		"new_reward_rate", newCfg.RewardRate,
		"old_transaction_tax_rate", oldCfg.TransactionTaxRate,
		"new_transaction_tax_rate", newCfg.TransactionTaxRate,
	)
}

// ──────────────────────────────────────────────────
// Registry and planet hooks
// ──────────────────────────────────────────────────

// OnUserInitialized implements plugin.OnUserInitialized.
func (e *Extension) OnUserInitialized(ctx context.Context, u *user.User) error {
	return e.record(ctx, ActionUserInitialized, SeverityInfo, OutcomeSuccess,
		ResourceUser, u.ID.String(), CategoryRegistry, nil,
		"owner", u.Owner.String(),
	)
}

// OnPlanetCreated implements plugin.OnPlanetCreated.
func (e *Extension) OnPlanetCreated(ctx context.Context, p *planet.Planet) error {
	return e.record(ctx, ActionPlanetCreated, SeverityInfo, OutcomeSuccess,
		ResourcePlanet, p.ID.String(), CategoryGameplay, nil,
		"owner", p.Owner.String(),
		"locked_tokens", p.LockedTokens.String(),
	)
}

// OnRewardsClaimed implements plugin.OnRewardsClaimed.
func (e *Extension) OnRewardsClaimed(ctx context.Context, p *planet.Planet, reward types.Amount) error {
	return e.record(ctx, ActionRewardsClaimed, SeverityInfo, OutcomeSuccess,
		ResourcePlanet, p.ID.String(), CategoryGameplay, nil,
		"owner", p.Owner.String(),
		"reward", reward.String(),
	)
}

// OnRewardsCompounded implements plugin.OnRewardsCompounded.
func (e *Extension) OnRewardsCompounded(ctx context.Context, p *planet.Planet, reward types.Amount) error {
	return e.record(ctx, ActionRewardsCompounded, SeverityInfo, OutcomeSuccess,
		ResourcePlanet, p.ID.String(), CategoryGameplay, nil,
		"owner", p.Owner.String(),
		"reward", reward.String(),
		"compound_level", p.CompoundLevel,
		"name", p.Name,
	)
}

// OnPlanetTransferred implements plugin.OnPlanetTransferred.
func (e *Extension) OnPlanetTransferred(ctx context.Context, p *planet.Planet, seller types.Account, charged tax.NFTBreakdown) error {
	return e.record(ctx, ActionPlanetTransferred, SeverityInfo, OutcomeSuccess,
		ResourcePlanet, p.ID.String(), CategoryMarket, nil,
		"seller", seller.String(),
		"buyer", p.Owner.String(),
		"tax", charged.Total.String(),
	)
}

// ──────────────────────────────────────────────────
// Token and vesting hooks
// ──────────────────────────────────────────────────

// OnTaxedTransfer implements plugin.OnTaxedTransfer.
func (e *Extension) OnTaxedTransfer(ctx context.Context, from, to types.Account, charged tax.Breakdown) error {
	return e.record(ctx, ActionTaxedTransfer, SeverityInfo, OutcomeSuccess,
		ResourceToken, "", CategoryToken, nil,
		"from", from.String(),
		"to", to.String(),
		"amount", charged.Amount.String(),
		"tax", charged.Total.String(),
	)
}

// OnTokensBurned implements plugin.OnTokensBurned.
func (e *Extension) OnTokensBurned(ctx context.Context, from types.Account, amount types.Amount) error {
	return e.record(ctx, ActionTokensBurned, SeverityWarning, OutcomeSuccess,
		ResourceToken, "", CategoryAdmin, nil,
		"from", from.String(),
		"amount", amount.String(),
	)
}

// OnVestingSetup implements plugin.OnVestingSetup.
func (e *Extension) OnVestingSetup(ctx context.Context, v *vesting.Vesting) error {
	return e.record(ctx, ActionVestingSetup, SeverityInfo, OutcomeSuccess,
		ResourceVesting, "vesting", CategoryAdmin, nil,
		"ecosystem", v.Ecosystem.Total.String(),
		"treasury", v.Treasury.Total.String(),
		"burn_reserve", v.BurnReserve.String(),
	)
}

// OnVestedClaimed implements plugin.OnVestedClaimed.
func (e *Extension) OnVestedClaimed(ctx context.Context, track vesting.Track, amount types.Amount, v *vesting.Vesting) error {
	return e.record(ctx, ActionVestedClaimed, SeverityInfo, OutcomeSuccess,
		ResourceVesting, "vesting", CategoryAdmin, nil,
		"track", track.String(),
		"amount", amount.String(),
	)
}

// OnOperationRejected implements plugin.OnOperationRejected.
// Only admin operations are audited on failure.
func (e *Extension) OnOperationRejected(ctx context.Context, op string, caller types.Account, err error) error {
	if !adminOps[op] {
		return nil
	}
	return e.record(ctx, ActionOperationRejected, SeverityError, OutcomeFailure,
		ResourceConfig, "", CategorySecurity, err,
		"operation", op,
		"caller", caller.String(),
	)
}

var adminOps = map[string]bool{
	"initialize":          true,
	"setup_vesting":       true,
	"claim_vested_tokens": true,
	"burn_tokens":         true,
	"update_config":       true,
}

// ──────────────────────────────────────────────────
// Internal helpers
// ──────────────────────────────────────────────────

// record builds and sends an audit event if the action is enabled.
func (e *Extension) record(
	ctx context.Context,
	action, severity, outcome string,
	resource, resourceID, category string,
	err error,
	kvPairs ...any,
) error {
	if e.enabled != nil && !e.enabled[action] {
		return nil
	}

	meta := make(map[string]any, len(kvPairs)/2+1)
	for i := 0; i+1 < len(kvPairs); i += 2 {
		key, ok := kvPairs[i].(string)
		if !ok {
			key = fmt.Sprintf("%v", kvPairs[i])
		}
		meta[key] = kvPairs[i+1]
	}

	var reason string
	if err != nil {
		reason = err.Error()
		meta["error"] = err.Error()
	}

	evt := &AuditEvent{
		Action:     action,
		Resource:   resource,
		Category:   category,
		ResourceID: resourceID,
		Metadata:   meta,
		Outcome:    outcome,
		Severity:   severity,
		Reason:     reason,
	}

	if recErr := e.recorder.Record(ctx, evt); recErr != nil {
		e.logger.Warn("audit_hook: failed to record audit event",
			"action", action,
			"resource_id", resourceID,
			"error", recErr,
		)
	}
	return nil
}
