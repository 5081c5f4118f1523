package vesting

import (
	"fmt"
	"time"

	"github.com/xraph/universe/config"
	"github.com/xraph/universe/types"
)

// Claimable is the part of total released after elapsed = now - start:
//
//	total × elapsed / duration, truncated, never above total
//
// Before start nothing is claimable; at or past the full duration all of
// total is.
func Claimable(total types.Amount, start time.Time, duration int64, now time.Time) (types.Amount, error) {
	if duration <= 0 {
		return 0, fmt.Errorf("vesting: non-positive duration %d", duration)
	}
	elapsed := now.Unix() - start.Unix()
	switch {
	case elapsed <= 0:
		return 0, nil
	case elapsed >= duration:
		return total, nil
	}
	return types.MulDiv(total, elapsed, duration)
}

// Remaining is what a claim of track t would pay out at now.
func (v *Vesting) Remaining(t Track, cfg *config.Config, now time.Time) (types.Amount, error) {
	if !t.Valid() {
		return 0, fmt.Errorf("%w: %q", ErrInvalidTrack, string(t))
	}
	alloc := v.allocation(t)
	claimable, err := Claimable(alloc.Total, cfg.VestingStartTime, t.Duration(cfg), now)
	if err != nil {
		return 0, err
	}
	return claimable.SaturatingSub(alloc.Claimed), nil
}

// Claim returns a copy of v with the newly vested amount of track t
// marked as claimed, and that amount. It fails with ErrNoVestedTokens
// when nothing new has vested.
func (v *Vesting) Claim(t Track, cfg *config.Config, now time.Time) (*Vesting, types.Amount, error) {
	remaining, err := v.Remaining(t, cfg, now)
	if err != nil {
		return nil, 0, err
	}
	if !remaining.IsPositive() {
		return nil, 0, fmt.Errorf("%w: %s", ErrNoVestedTokens, t)
	}

	next := *v
	alloc := next.allocation(t)
	claimed, err := alloc.Claimed.Add(remaining)
	if err != nil {
		return nil, 0, err
	}
	alloc.Claimed = claimed
	next.LastClaimTime = now.UTC()
	next.TouchAt(now)
	return &next, remaining, nil
}
