package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/xraph/universe/types"
)

// Overrides are the admin-tunable parameters. A nil field leaves the
// current value untouched. Amounts are base units.
type Overrides struct {
	PlanetCreationCost *types.Amount `json:"planet_creation_cost,omitempty" yaml:"planet_creation_cost"`
	MaxPlanetsPerUser  *int          `json:"max_planets_per_user,omitempty" yaml:"max_planets_per_user"`
	RewardRate         *int64        `json:"reward_rate,omitempty" yaml:"reward_rate"`
	RewardInterval     *int64        `json:"reward_interval,omitempty" yaml:"reward_interval"`
	TransactionTaxRate *int64        `json:"transaction_tax_rate,omitempty" yaml:"transaction_tax_rate"`
	LiquidityTaxRate   *int64        `json:"liquidity_tax_rate,omitempty" yaml:"liquidity_tax_rate"`
	RewardTaxRate      *int64        `json:"reward_tax_rate,omitempty" yaml:"reward_tax_rate"`
	NFTTransferTaxRate *int64        `json:"nft_transfer_tax_rate,omitempty" yaml:"nft_transfer_tax_rate"`
	TeamNFTTaxRate     *int64        `json:"team_nft_tax_rate,omitempty" yaml:"team_nft_tax_rate"`
	RewardNFTTaxRate   *int64        `json:"reward_nft_tax_rate,omitempty" yaml:"reward_nft_tax_rate"`
}

// IsEmpty reports whether no field is set.
func (o Overrides) IsEmpty() bool {
	return o == Overrides{}
}

// Fields returns the names of the fields that are set.
func (o Overrides) Fields() []string {
	var out []string
	add := func(set bool, name string) {
		if set {
			out = append(out, name)
		}
	}
	add(o.PlanetCreationCost != nil, "planet_creation_cost")
	add(o.MaxPlanetsPerUser != nil, "max_planets_per_user")
	add(o.RewardRate != nil, "reward_rate")
	add(o.RewardInterval != nil, "reward_interval")
	add(o.TransactionTaxRate != nil, "transaction_tax_rate")
	add(o.LiquidityTaxRate != nil, "liquidity_tax_rate")
	add(o.RewardTaxRate != nil, "reward_tax_rate")
	add(o.NFTTransferTaxRate != nil, "nft_transfer_tax_rate")
	add(o.TeamNFTTaxRate != nil, "team_nft_tax_rate")
	add(o.RewardNFTTaxRate != nil, "reward_nft_tax_rate")
	return out
}

// Apply returns a validated copy of c with the overrides applied. c is
// never modified, so a rejected update leaves the stored config intact.
func (c *Config) Apply(o Overrides, now time.Time) (*Config, error) {
	next := *c

	if o.PlanetCreationCost != nil {
		next.PlanetCreationCost = *o.PlanetCreationCost
	}
	if o.MaxPlanetsPerUser != nil {
		next.MaxPlanetsPerUser = *o.MaxPlanetsPerUser
	}
	if o.RewardRate != nil {
		next.RewardRate = *o.RewardRate
	}
	if o.RewardInterval != nil {
		next.RewardInterval = *o.RewardInterval
	}
	if o.TransactionTaxRate != nil {
		next.TransactionTaxRate = *o.TransactionTaxRate
	}
	if o.LiquidityTaxRate != nil {
		next.LiquidityTaxRate = *o.LiquidityTaxRate
	}
	if o.RewardTaxRate != nil {
		next.RewardTaxRate = *o.RewardTaxRate
	}
	if o.NFTTransferTaxRate != nil {
		next.NFTTransferTaxRate = *o.NFTTransferTaxRate
	}
	if o.TeamNFTTaxRate != nil {
		next.TeamNFTTaxRate = *o.TeamNFTTaxRate
	}
	if o.RewardNFTTaxRate != nil {
		next.RewardNFTTaxRate = *o.RewardNFTTaxRate
	}

	if err := next.Validate(); err != nil {
		return nil, err
	}
	next.TouchAt(now)
	return &next, nil
}

// LoadOverrides reads overrides from a YAML file. Unknown keys are
// rejected so a misspelt rate never silently keeps its old value.
func LoadOverrides(path string) (*Overrides, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseOverrides(raw)
}

// ParseOverrides decodes YAML overrides.
func ParseOverrides(raw []byte) (*Overrides, error) {
	var o Overrides
	dec := yaml.NewDecoder(bytes.NewReader(raw))
	dec.KnownFields(true)
	if err := dec.Decode(&o); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("config: overrides: %w", err)
	}
	return &o, nil
}
