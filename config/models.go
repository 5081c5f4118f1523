// Package config holds the global economic parameters of a Universe
// deployment and the rules every admin mutation must preserve.
package config

import (
	"time"

	"github.com/xraph/universe/types"
)

// Fixed defaults applied by Initialize.
const (
	DefaultTotalSupply        = types.Amount(1_000_000_000) * types.Unit
	DefaultPlanetCreationCost = types.Amount(1_000) * types.Unit
	DefaultMaxPlanetsPerUser  = 10
	DefaultRewardRate         = 4
	DefaultRewardInterval     = 28_800 // 8 hours
	DefaultTransactionTaxRate = 3
	DefaultLiquidityTaxRate   = 1
	DefaultRewardTaxRate      = 2
	DefaultNFTTransferTaxRate = 5
	DefaultTeamNFTTaxRate     = 2
	DefaultRewardNFTTaxRate   = 3
	DefaultVestingDuration    = 365 * 24 * 60 * 60
	DefaultAuthoritySeed      = "authority"
)

// Wallets are the token accounts the program pays into or out of.
type Wallets struct {
	RewardPool   types.Account `json:"reward_pool" yaml:"reward_pool"`
	Team         types.Account `json:"team" yaml:"team"`
	Marketing    types.Account `json:"marketing" yaml:"marketing"`
	Liquidity    types.Account `json:"liquidity" yaml:"liquidity"`
	VestingVault types.Account `json:"vesting_vault" yaml:"vesting_vault"`
	BurnReserve  types.Account `json:"burn_reserve" yaml:"burn_reserve"`
}

// Config is the singleton parameter record. Rates are whole percentages,
// intervals and durations are seconds.
type Config struct {
	types.Entity
	TotalSupply        types.Amount  `json:"total_supply"`
	PlanetCreationCost types.Amount  `json:"planet_creation_cost"`
	MaxPlanetsPerUser  int           `json:"max_planets_per_user"`
	RewardRate         int64         `json:"reward_rate"`
	RewardInterval     int64         `json:"reward_interval"`
	TokenMint          types.Account `json:"token_mint"`
	Admin              types.Account `json:"admin"`
	AuthoritySeed      string        `json:"authority_seed"`
	Wallets            Wallets       `json:"wallets"`

	TransactionTaxRate int64 `json:"transaction_tax_rate"`
	LiquidityTaxRate   int64 `json:"liquidity_tax_rate"`
	RewardTaxRate      int64 `json:"reward_tax_rate"`

	NFTTransferTaxRate int64 `json:"nft_transfer_tax_rate"`
	TeamNFTTaxRate     int64 `json:"team_nft_tax_rate"`
	RewardNFTTaxRate   int64 `json:"reward_nft_tax_rate"`

	VestingStartTime         time.Time `json:"vesting_start_time"`
	EcosystemVestingDuration int64     `json:"ecosystem_vesting_duration"`
	TreasuryVestingDuration  int64     `json:"treasury_vesting_duration"`
}

// InitParams are the caller-supplied inputs of Initialize. Overrides, if
// set, are applied on top of the fixed defaults.
type InitParams struct {
	TokenMint     types.Account `json:"token_mint" yaml:"token_mint"`
	AuthoritySeed string        `json:"authority_seed,omitempty" yaml:"authority_seed"`
	Wallets       Wallets       `json:"wallets" yaml:"wallets"`
	Overrides     *Overrides    `json:"overrides,omitempty" yaml:"overrides"`
}

// New builds the bootstrap config with every fixed default, admin as
// the caller and the vesting clock starting at now.
func New(admin types.Account, params InitParams, now time.Time) (*Config, error) {
	seed := params.AuthoritySeed
	if seed == "" {
		seed = DefaultAuthoritySeed
	}

	cfg := &Config{
		Entity:                   types.NewEntityAt(now),
		TotalSupply:              DefaultTotalSupply,
		PlanetCreationCost:       DefaultPlanetCreationCost,
		MaxPlanetsPerUser:        DefaultMaxPlanetsPerUser,
		RewardRate:               DefaultRewardRate,
		RewardInterval:           DefaultRewardInterval,
		TokenMint:                params.TokenMint,
		Admin:                    admin,
		AuthoritySeed:            seed,
		Wallets:                  params.Wallets,
		TransactionTaxRate:       DefaultTransactionTaxRate,
		LiquidityTaxRate:         DefaultLiquidityTaxRate,
		RewardTaxRate:            DefaultRewardTaxRate,
		NFTTransferTaxRate:       DefaultNFTTransferTaxRate,
		TeamNFTTaxRate:           DefaultTeamNFTTaxRate,
		RewardNFTTaxRate:         DefaultRewardNFTTaxRate,
		VestingStartTime:         now.UTC(),
		EcosystemVestingDuration: DefaultVestingDuration,
		TreasuryVestingDuration:  DefaultVestingDuration,
	}

	if params.Overrides != nil {
		return cfg.Apply(*params.Overrides, now)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// IsAdmin reports whether acct is the configured admin.
func (c *Config) IsAdmin(acct types.Account) bool {
	return !acct.IsZero() && acct == c.Admin
}

// RewardIntervalDuration returns the reward interval as a duration.
func (c *Config) RewardIntervalDuration() time.Duration {
	return time.Duration(c.RewardInterval) * time.Second
}

