package planet

import (
	"errors"
	"fmt"
	"time"

	"github.com/xraph/universe/config"
	"github.com/xraph/universe/types"
)

// ErrRewardNotReady is returned when less than one reward interval has
// passed since the last claim.
var ErrRewardNotReady = errors.New("planet: reward not ready")

// Elapsed returns the whole seconds between the last claim and now.
func (p *Planet) Elapsed(now time.Time) int64 {
	return now.Unix() - p.LastClaim.Unix()
}

// ReadyAt is the earliest time a claim or compound can succeed.
func (p *Planet) ReadyAt(cfg *config.Config) time.Time {
	return p.LastClaim.Add(cfg.RewardIntervalDuration())
}

// Accrued is the linear reward for the elapsed time, ignoring the
// interval gate:
//
//	locked × daily_reward × elapsed / (100 × interval)
//
// Partial intervals accrue proportionally. The result truncates toward
// zero and the remainder is lost.
func Accrued(p *Planet, cfg *config.Config, now time.Time) (types.Amount, error) {
	elapsed := max(p.Elapsed(now), 0)
	return types.MulDivN(p.LockedTokens, 100*cfg.RewardInterval, p.DailyReward, elapsed)
}

// Reward is Accrued gated on at least one full interval.
func Reward(p *Planet, cfg *config.Config, now time.Time) (types.Amount, error) {
	if elapsed := p.Elapsed(now); elapsed < cfg.RewardInterval {
		return 0, fmt.Errorf("%w: %ds elapsed of %ds", ErrRewardNotReady, elapsed, cfg.RewardInterval)
	}
	return Accrued(p, cfg, now)
}
