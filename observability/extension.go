// Package observability provides a metrics extension for Universe that
// records lifecycle event counts through a MetricFactory.
package observability

import (
	"context"
	"time"

	"github.com/xraph/universe/config"
	"github.com/xraph/universe/planet"
	"github.com/xraph/universe/plugin"
	"github.com/xraph/universe/tax"
	"github.com/xraph/universe/types"
	"github.com/xraph/universe/user"
	"github.com/xraph/universe/vesting"
)

// Ensure MetricsExtension implements required interfaces.
var (
	_ plugin.Plugin              = (*MetricsExtension)(nil)
	_ plugin.OnInit              = (*MetricsExtension)(nil)
	_ plugin.OnConfigUpdated     = (*MetricsExtension)(nil)
	_ plugin.OnUserInitialized   = (*MetricsExtension)(nil)
	_ plugin.OnPlanetCreated     = (*MetricsExtension)(nil)
	_ plugin.OnRewardsClaimed    = (*MetricsExtension)(nil)
	_ plugin.OnRewardsCompounded = (*MetricsExtension)(nil)
	_ plugin.OnPlanetTransferred = (*MetricsExtension)(nil)
	_ plugin.OnTaxedTransfer     = (*MetricsExtension)(nil)
	_ plugin.OnTokensBurned      = (*MetricsExtension)(nil)
	_ plugin.OnVestedClaimed     = (*MetricsExtension)(nil)
	_ plugin.OnOperationRejected = (*MetricsExtension)(nil)
	_ plugin.OnActivityFlushed   = (*MetricsExtension)(nil)
)

// Counter interface for metric counters.
type Counter interface {
	Inc()
	Add(float64)
}

// Histogram interface for metric histograms.
type Histogram interface {
	Observe(float64)
}

// MetricFactory creates metrics.
type MetricFactory interface {
	Counter(name string) Counter
	Histogram(name string) Histogram
}

// MetricsExtension records system-wide lifecycle metrics.
// Register it as a Universe plugin to track game and token metrics.
// Amounts are observed in base units.
type MetricsExtension struct {
	ConfigUpdated Counter

	// Registry metrics
	UsersInitialized Counter
	PlanetsCreated   Counter
	PlanetLocked     Histogram

	// Reward metrics
	RewardsClaimed    Counter
	RewardsCompounded Counter
	RewardAmount      Histogram
	CompoundLevel     Histogram

	// Marketplace metrics
	PlanetsTransferred Counter
	NFTTaxCollected    Counter

	// Token metrics
	TaxedTransfers  Counter
	TaxCollected    Counter
	TransferVolume  Histogram
	TokensBurned    Counter
	VestedReleased  Counter
	VestingReleases Counter

	// Journal metrics
	ActivityFlushed      Counter
	ActivityFlushLatency Histogram

	// Error metrics
	OperationsRejected Counter
}

// NewMetricsExtension creates a MetricsExtension with the provided MetricFactory.
// Use app.Metrics() in forge extensions.
func NewMetricsExtension(factory MetricFactory) *MetricsExtension {
	return &MetricsExtension{
		ConfigUpdated: factory.Counter("universe.config.updated"),

		UsersInitialized: factory.Counter("universe.user.initialized"),
		PlanetsCreated:   factory.Counter("universe.planet.created"),
		PlanetLocked:     factory.Histogram("universe.planet.locked_tokens"),

		RewardsClaimed:    factory.Counter("universe.reward.claimed"),
		RewardsCompounded: factory.Counter("universe.reward.compounded"),
		RewardAmount:      factory.Histogram("universe.reward.amount"),
		CompoundLevel:     factory.Histogram("universe.planet.compound_level"),

		PlanetsTransferred: factory.Counter("universe.planet.transferred"),
		NFTTaxCollected:    factory.Counter("universe.planet.transfer_tax"),

		TaxedTransfers:  factory.Counter("universe.token.transfers"),
		TaxCollected:    factory.Counter("universe.token.tax"),
		TransferVolume:  factory.Histogram("universe.token.transfer_amount"),
		TokensBurned:    factory.Counter("universe.token.burned"),
		VestedReleased:  factory.Counter("universe.vesting.released"),
		VestingReleases: factory.Counter("universe.vesting.claims"),

		ActivityFlushed:      factory.Counter("universe.activity.flushed"),
		ActivityFlushLatency: factory.Histogram("universe.activity.flush.latency_ms"),

		OperationsRejected: factory.Counter("universe.operation.rejected"),
	}
}

// Name implements plugin.Plugin.
func (m *MetricsExtension) Name() string { return "observability-metrics" }

// OnInit implements plugin.OnInit.
func (m *MetricsExtension) OnInit(_ context.Context, _ any) error {
	return nil
}

// OnConfigUpdated implements plugin.OnConfigUpdated.
func (m *MetricsExtension) OnConfigUpdated(_ context.Context, _, _ *config.Config) error {
	m.ConfigUpdated.Inc()
	return nil
}

// ──────────────────────────────────────────────────
// Planet lifecycle hooks
// ──────────────────────────────────────────────────

// OnUserInitialized implements plugin.OnUserInitialized.
func (m *MetricsExtension) OnUserInitialized(_ context.Context, _ *user.User) error {
	m.UsersInitialized.Inc()
	return nil
}

// OnPlanetCreated implements plugin.OnPlanetCreated.
func (m *MetricsExtension) OnPlanetCreated(_ context.Context, p *planet.Planet) error {
	m.PlanetsCreated.Inc()
	m.PlanetLocked.Observe(float64(p.LockedTokens.Int64()))
	return nil
}

// OnRewardsClaimed implements plugin.OnRewardsClaimed.
func (m *MetricsExtension) OnRewardsClaimed(_ context.Context, _ *planet.Planet, reward types.Amount) error {
	m.RewardsClaimed.Inc()
	m.RewardAmount.Observe(float64(reward.Int64()))
	return nil
}

// OnRewardsCompounded implements plugin.OnRewardsCompounded.
func (m *MetricsExtension) OnRewardsCompounded(_ context.Context, p *planet.Planet, reward types.Amount) error {
	m.RewardsCompounded.Inc()
	m.RewardAmount.Observe(float64(reward.Int64()))
	m.CompoundLevel.Observe(float64(p.CompoundLevel))
	return nil
}

// OnPlanetTransferred implements plugin.OnPlanetTransferred.
func (m *MetricsExtension) OnPlanetTransferred(_ context.Context, _ *planet.Planet, _ types.Account, charged tax.NFTBreakdown) error {
	m.PlanetsTransferred.Inc()
	m.NFTTaxCollected.Add(float64(charged.Total.Int64()))
	return nil
}

// ──────────────────────────────────────────────────
// Token lifecycle hooks
// ──────────────────────────────────────────────────

// OnTaxedTransfer implements plugin.OnTaxedTransfer.
func (m *MetricsExtension) OnTaxedTransfer(_ context.Context, _, _ types.Account, charged tax.Breakdown) error {
	m.TaxedTransfers.Inc()
	m.TaxCollected.Add(float64(charged.Total.Int64()))
	m.TransferVolume.Observe(float64(charged.Amount.Int64()))
	return nil
}

// OnTokensBurned implements plugin.OnTokensBurned.
func (m *MetricsExtension) OnTokensBurned(_ context.Context, _ types.Account, amount types.Amount) error {
	m.TokensBurned.Add(float64(amount.Int64()))
	return nil
}

// OnVestedClaimed implements plugin.OnVestedClaimed.
func (m *MetricsExtension) OnVestedClaimed(_ context.Context, _ vesting.Track, amount types.Amount, _ *vesting.Vesting) error {
	m.VestingReleases.Inc()
	m.VestedReleased.Add(float64(amount.Int64()))
	return nil
}

// ──────────────────────────────────────────────────
// Engine hooks
// ──────────────────────────────────────────────────

// OnOperationRejected implements plugin.OnOperationRejected.
func (m *MetricsExtension) OnOperationRejected(_ context.Context, _ string, _ types.Account, _ error) error {
	m.OperationsRejected.Inc()
	return nil
}

// OnActivityFlushed implements plugin.OnActivityFlushed.
func (m *MetricsExtension) OnActivityFlushed(_ context.Context, count int, elapsed time.Duration) error {
	m.ActivityFlushed.Add(float64(count))
	m.ActivityFlushLatency.Observe(float64(elapsed.Milliseconds()))
	return nil
}
