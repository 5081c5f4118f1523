// Package user maps an owner to the ordered set of planets it holds.
package user

import (
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/xraph/universe/id"
	"github.com/xraph/universe/types"
)

// ErrMaxPlanetsReached is returned when a user already holds the cap.
var ErrMaxPlanetsReached = errors.New("user: max planets reached")

// User holds planet identifiers only; the planet records live in the
// planet store. Planets keeps insertion order.
type User struct {
	types.Entity
	ID      id.UserID     `json:"id"`
	Owner   types.Account `json:"owner"`
	Planets []id.PlanetID `json:"planets"`
}

// New returns an empty registry record for owner.
func New(owner types.Account, now time.Time) *User {
	return &User{
		Entity:  types.NewEntityAt(now),
		ID:      id.NewUserID(),
		Owner:   owner,
		Planets: []id.PlanetID{},
	}
}

// Count returns the number of planets held.
func (u *User) Count() int { return len(u.Planets) }

// Has reports whether the user holds planetID.
func (u *User) Has(planetID id.PlanetID) bool {
	return slices.Contains(u.Planets, planetID)
}

// CanAdd reports whether another planet fits under limit.
func (u *User) CanAdd(limit int) bool {
	return len(u.Planets) < limit
}

// WithPlanet returns a copy with planetID appended.
func (u *User) WithPlanet(planetID id.PlanetID, limit int, now time.Time) (*User, error) {
	if !u.CanAdd(limit) {
		return nil, fmt.Errorf("%w: %s holds %d of %d", ErrMaxPlanetsReached, u.Owner, len(u.Planets), limit)
	}
	next := *u
	next.Planets = append(slices.Clone(u.Planets), planetID)
	next.TouchAt(now)
	return &next, nil
}

// WithoutPlanet returns a copy with planetID removed, order preserved.
func (u *User) WithoutPlanet(planetID id.PlanetID, now time.Time) *User {
	next := *u
	next.Planets = slices.DeleteFunc(slices.Clone(u.Planets), func(p id.PlanetID) bool {
		return p == planetID
	})
	next.TouchAt(now)
	return &next
}
