package universe

import "github.com/xraph/universe/id"

// ID is the primary identifier type for all Universe entities.
type ID = id.ID

// Prefix identifies the entity type encoded in a TypeID.
type Prefix = id.Prefix

// PlanetID identifies a planet.
type PlanetID = id.PlanetID
