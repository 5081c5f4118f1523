package planet

import (
	"context"

	"github.com/xraph/universe/id"
	"github.com/xraph/universe/types"
)

type Store interface {
	GetPlanet(ctx context.Context, planetID id.PlanetID) (*Planet, error)
	ListPlanets(ctx context.Context, owner types.Account, opts ListOpts) ([]*Planet, error)
}

type ListOpts struct {
	Limit  int
	Offset int
}
