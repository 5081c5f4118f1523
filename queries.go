package universe

import (
	"context"
	"time"

	"github.com/xraph/universe/activity"
	"github.com/xraph/universe/config"
	"github.com/xraph/universe/id"
	"github.com/xraph/universe/planet"
	"github.com/xraph/universe/types"
	"github.com/xraph/universe/user"
	"github.com/xraph/universe/vesting"
)

// GetConfig returns the current config.
func (e *Engine) GetConfig(ctx context.Context) (*config.Config, error) {
	return e.store.GetConfig(ctx)
}

// GetUser returns the planet registry of owner.
func (e *Engine) GetUser(ctx context.Context, owner types.Account) (*user.User, error) {
	return e.store.GetUser(ctx, owner)
}

// GetPlanet returns a planet by ID.
func (e *Engine) GetPlanet(ctx context.Context, planetID id.PlanetID) (*planet.Planet, error) {
	return e.store.GetPlanet(ctx, planetID)
}

// ListPlanets returns the planets owned by owner, oldest first.
func (e *Engine) ListPlanets(ctx context.Context, owner types.Account, opts planet.ListOpts) ([]*planet.Planet, error) {
	return e.store.ListPlanets(ctx, owner, opts)
}

// GetVesting returns the vesting schedule.
func (e *Engine) GetVesting(ctx context.Context) (*vesting.Vesting, error) {
	return e.store.GetVesting(ctx)
}

// Pending is the reward a planet has accrued so far.
type Pending struct {
	PlanetID id.PlanetID  `json:"planet_id"`
	Accrued  types.Amount `json:"accrued"`
	ReadyAt  time.Time    `json:"ready_at"`
	Ready    bool         `json:"ready"`
}

// PendingReward reports what a claim of planetID would pay now and when
// the next claim becomes possible. It never fails for an early call.
func (e *Engine) PendingReward(ctx context.Context, planetID id.PlanetID) (*Pending, error) {
	cfg, err := e.loadConfig(ctx)
	if err != nil {
		return nil, err
	}
	p, err := e.store.GetPlanet(ctx, planetID)
	if err != nil {
		return nil, err
	}

	now := e.now()
	accrued, err := planet.Accrued(p, cfg, now)
	if err != nil {
		return nil, err
	}
	readyAt := p.ReadyAt(cfg)
	return &Pending{
		PlanetID: p.ID,
		Accrued:  accrued,
		ReadyAt:  readyAt,
		Ready:    !now.Before(readyAt),
	}, nil
}

// VestedRemaining is what a claim of track would release now.
func (e *Engine) VestedRemaining(ctx context.Context, track vesting.Track) (types.Amount, error) {
	cfg, err := e.loadConfig(ctx)
	if err != nil {
		return 0, err
	}
	v, err := e.store.GetVesting(ctx)
	if err != nil {
		return 0, err
	}
	return v.Remaining(track, cfg, e.now())
}

// ListActivity queries the journal, newest first. Events still buffered
// are not visible until the next flush.
func (e *Engine) ListActivity(ctx context.Context, opts activity.QueryOpts) ([]*activity.Event, error) {
	return e.store.QueryActivity(ctx, opts)
}

// PurgeActivity deletes journal events older than before.
func (e *Engine) PurgeActivity(ctx context.Context, before time.Time) (int64, error) {
	return e.store.PurgeActivity(ctx, before)
}
