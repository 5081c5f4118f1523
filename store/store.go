package store

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

// Store is the unified storage interface for all Universe records.
// Instead of embedding the sub-interfaces, we explicitly declare all methods
// to avoid naming conflicts.
type Store interface {
	// Config methods
	GetConfig(ctx context.Context) (*config.Config, error)

	// User methods
	GetUser(ctx context.Context, owner types.Account) (*user.User, error)

	// Planet methods
	GetPlanet(ctx context.Context, planetID id.PlanetID) (*planet.Planet, error)
	ListPlanets(ctx context.Context, owner types.Account, opts planet.ListOpts) ([]*planet.Planet, error)

	// Vesting methods
	GetVesting(ctx context.Context) (*vesting.Vesting, error)

	// Activity methods
	IngestBatch(ctx context.Context, events []*activity.Event) error
	QueryActivity(ctx context.Context, opts activity.QueryOpts) ([]*activity.Event, error)
	PurgeActivity(ctx context.Context, before time.Time) (int64, error)

	// Commit persists every write of an operation.
	Commit(ctx context.Context, cs *Changeset) error

	// Core methods
	Migrate(ctx context.Context) error
	Ping(ctx context.Context) error
	Close() error
}

// Compile-time checks that Store covers every domain store.
var (
	_ config.Store   = (Store)(nil)
	_ user.Store     = (Store)(nil)
	_ planet.Store   = (Store)(nil)
	_ vesting.Store  = (Store)(nil)
	_ activity.Store = (Store)(nil)
)
