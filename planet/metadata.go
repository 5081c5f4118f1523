package planet

import (
	"fmt"
	"strings"

	"github.com/xraph/universe/id"
)

// DefaultMetadataBaseURI hosts the planet metadata documents.
const DefaultMetadataBaseURI = "https://universe-solana.com/metadata"

// MetadataSymbol is the collection symbol of a base-tier planet.
const MetadataSymbol = "UNIV-PLANET"

// Metadata describes the collectible published for a planet.
type Metadata struct {
	PlanetID      id.PlanetID `json:"planet_id"`
	Name          string      `json:"name"`
	Symbol        string      `json:"symbol"`
	URI           string      `json:"uri"`
	CompoundLevel int         `json:"compound_level"`
	DailyReward   int64       `json:"daily_reward"`
}

// MetadataFor builds the metadata of p. Compounded planets carry their
// level in the symbol.
func MetadataFor(p *Planet, baseURI string) Metadata {
	if baseURI == "" {
		baseURI = DefaultMetadataBaseURI
	}
	symbol := MetadataSymbol
	if p.CompoundLevel > 0 {
		symbol = fmt.Sprintf("%s-%d", MetadataSymbol, p.CompoundLevel)
	}
	return Metadata{
		PlanetID:      p.ID,
		Name:          p.Name,
		Symbol:        symbol,
		URI:           fmt.Sprintf("%s/%s.json", strings.TrimRight(baseURI, "/"), p.ID),
		CompoundLevel: p.CompoundLevel,
		DailyReward:   p.DailyReward,
	}
}
