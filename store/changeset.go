package store

import (
	"github.com/xraph/universe/config"
	"github.com/xraph/universe/planet"
	"github.com/xraph/universe/user"
	"github.com/xraph/universe/vesting"
)

// Op is the kind of a record write.
type Op int

const (
	// OpInsert fails if the record exists.
	OpInsert Op = iota + 1
	// OpUpdate fails if the record does not exist.
	OpUpdate
)

func (o Op) String() string {
	switch o {
	case OpInsert:
		return "insert"
	case OpUpdate:
		return "update"
	default:
		return "unknown"
	}
}

// Write is one record write.
type Write[T any] struct {
	Record *T
	Op     Op
}

// Changeset collects the record writes of a single operation. Backends
// apply it as one unit.
type Changeset struct {
	Config  *Write[config.Config]
	Vesting *Write[vesting.Vesting]
	Users   []Write[user.User]
	Planets []Write[planet.Planet]
}

// NewChangeset returns an empty changeset.
func NewChangeset() *Changeset { return &Changeset{} }

func (cs *Changeset) InsertConfig(c *config.Config) *Changeset {
	cs.Config = &Write[config.Config]{Record: c, Op: OpInsert}
	return cs
}

func (cs *Changeset) UpdateConfig(c *config.Config) *Changeset {
	cs.Config = &Write[config.Config]{Record: c, Op: OpUpdate}
	return cs
}

func (cs *Changeset) InsertVesting(v *vesting.Vesting) *Changeset {
	cs.Vesting = &Write[vesting.Vesting]{Record: v, Op: OpInsert}
	return cs
}

func (cs *Changeset) UpdateVesting(v *vesting.Vesting) *Changeset {
	cs.Vesting = &Write[vesting.Vesting]{Record: v, Op: OpUpdate}
	return cs
}

func (cs *Changeset) InsertUser(u *user.User) *Changeset {
	cs.Users = append(cs.Users, Write[user.User]{Record: u, Op: OpInsert})
	return cs
}

func (cs *Changeset) UpdateUser(u *user.User) *Changeset {
	cs.Users = append(cs.Users, Write[user.User]{Record: u, Op: OpUpdate})
	return cs
}

func (cs *Changeset) InsertPlanet(p *planet.Planet) *Changeset {
	cs.Planets = append(cs.Planets, Write[planet.Planet]{Record: p, Op: OpInsert})
	return cs
}

func (cs *Changeset) UpdatePlanet(p *planet.Planet) *Changeset {
	cs.Planets = append(cs.Planets, Write[planet.Planet]{Record: p, Op: OpUpdate})
	return cs
}

// IsEmpty reports whether the changeset has no writes.
func (cs *Changeset) IsEmpty() bool {
	return cs.Config == nil && cs.Vesting == nil && len(cs.Users) == 0 && len(cs.Planets) == 0
}
