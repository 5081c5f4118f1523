// Package planet implements the position state machine: creation at the
// base tier, time-gated reward accrual, compounding up the tier ladder
// and ownership transfer.
package planet

import (
	"time"

	"github.com/xraph/universe/id"
	"github.com/xraph/universe/types"
)

// Planet is a locked-balance position. CompoundLevel, DailyReward and
// Name always hold the ladder triple for the level.
type Planet struct {
	types.Entity
	ID            id.PlanetID   `json:"id"`
	Owner         types.Account `json:"owner"`
	CompoundLevel int           `json:"compound_level"`
	DailyReward   int64         `json:"daily_reward"`
	LastClaim     time.Time     `json:"last_claim"`
	LockedTokens  types.Amount  `json:"locked_tokens"`
	Name          string        `json:"name"`
}

// New returns a base-tier planet locking cost, created at now.
func New(owner types.Account, cost types.Amount, now time.Time) *Planet {
	base := ladder[0]
	return &Planet{
		Entity:        types.NewEntityAt(now),
		ID:            id.NewPlanetID(),
		Owner:         owner,
		CompoundLevel: base.Level,
		DailyReward:   base.DailyReward,
		LastClaim:     now.UTC(),
		LockedTokens:  cost,
		Name:          base.Name,
	}
}

// Tier returns the ladder entry of the planet's current level.
func (p *Planet) Tier() Tier {
	return Tier{Level: p.CompoundLevel, DailyReward: p.DailyReward, Name: p.Name}
}

// Claimed returns a copy with the claim clock reset to now.
func (p *Planet) Claimed(now time.Time) *Planet {
	next := *p
	next.LastClaim = now.UTC()
	next.TouchAt(now)
	return &next
}

// Compounded returns a copy with reward folded into the locked balance
// and the planet promoted one tier. It fails with ErrInvalidCompoundLevel
// when the ladder has no next tier.
func (p *Planet) Compounded(reward types.Amount, now time.Time) (*Planet, error) {
	tier, err := TierFor(p.CompoundLevel + 1)
	if err != nil {
		return nil, err
	}
	locked, err := p.LockedTokens.Add(reward)
	if err != nil {
		return nil, err
	}

	next := *p
	next.LockedTokens = locked
	next.CompoundLevel = tier.Level
	next.DailyReward = tier.DailyReward
	next.Name = tier.Name
	next.LastClaim = now.UTC()
	next.TouchAt(now)
	return &next, nil
}

// TransferredTo returns a copy owned by buyer. The locked balance and
// claim clock are untouched.
func (p *Planet) TransferredTo(buyer types.Account, now time.Time) *Planet {
	next := *p
	next.Owner = buyer
	next.TouchAt(now)
	return &next
}
