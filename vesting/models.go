// Package vesting releases the reserved ecosystem and treasury
// allocations linearly over their configured durations.
package vesting

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/xraph/universe/config"
	"github.com/xraph/universe/types"
)

var (
	// ErrNoVestedTokens is returned when nothing new has vested.
	ErrNoVestedTokens = errors.New("vesting: no vested tokens")

	// ErrInvalidTrack is returned for unknown track names.
	ErrInvalidTrack = errors.New("vesting: invalid track")

	// ErrInvalidAllocation is returned for negative allocations.
	ErrInvalidAllocation = errors.New("vesting: invalid allocation")
)

// Track selects one of the two release schedules.
type Track string

const (
	Ecosystem Track = "ecosystem"
	Treasury  Track = "treasury"
)

// ParseTrack parses a track name, case-insensitively.
func ParseTrack(s string) (Track, error) {
	switch t := Track(strings.ToLower(strings.TrimSpace(s))); t {
	case Ecosystem, Treasury:
		return t, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidTrack, s)
	}
}

func (t Track) String() string { return string(t) }

// Valid reports whether t names a known track.
func (t Track) Valid() bool { return t == Ecosystem || t == Treasury }

// Duration returns the configured duration of the track in seconds.
func (t Track) Duration(cfg *config.Config) int64 {
	if t == Ecosystem {
		return cfg.EcosystemVestingDuration
	}
	return cfg.TreasuryVestingDuration
}

// Allocation is one track's total and what has been paid out so far.
type Allocation struct {
	Total   types.Amount `json:"total"`
	Claimed types.Amount `json:"claimed"`
}

// Vesting is the singleton schedule record. BurnReserve is informational.
type Vesting struct {
	types.Entity
	Ecosystem     Allocation   `json:"ecosystem"`
	Treasury      Allocation   `json:"treasury"`
	BurnReserve   types.Amount `json:"burn_reserve"`
	LastClaimTime time.Time    `json:"last_claim_time"`
}

// New returns a schedule with nothing claimed.
func New(ecosystem, treasury, burnReserve types.Amount, now time.Time) (*Vesting, error) {
	if ecosystem.IsNegative() || treasury.IsNegative() || burnReserve.IsNegative() {
		return nil, fmt.Errorf("%w: ecosystem %d, treasury %d, burn reserve %d",
			ErrInvalidAllocation, ecosystem, treasury, burnReserve)
	}
	return &Vesting{
		Entity:        types.NewEntityAt(now),
		Ecosystem:     Allocation{Total: ecosystem},
		Treasury:      Allocation{Total: treasury},
		BurnReserve:   burnReserve,
		LastClaimTime: now.UTC(),
	}, nil
}

// Allocation returns the allocation of track t.
func (v *Vesting) Allocation(t Track) Allocation {
	return *v.allocation(t)
}

func (v *Vesting) allocation(t Track) *Allocation {
	if t == Ecosystem {
		return &v.Ecosystem
	}
	return &v.Treasury
}
