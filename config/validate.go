package config

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidConfig wraps every ValidationError.
	ErrInvalidConfig = errors.New("config: invalid configuration")

	// ErrInvalidTaxRates is returned when the sub-splits of a tax exceed
	// the tax they split.
	ErrInvalidTaxRates = errors.New("config: invalid tax rates")
)

// ValidationError names the offending field.
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("config: validation failed for %s: %s", e.Field, e.Message)
}

// Unwrap lets errors.Is match ErrInvalidConfig.
func (e ValidationError) Unwrap() error { return ErrInvalidConfig }

// Validate checks every invariant of the parameter set.
func (c *Config) Validate() error {
	switch {
	case c.Admin.IsZero():
		return ValidationError{Field: "admin", Message: "required"}
	case c.TokenMint.IsZero():
		return ValidationError{Field: "token_mint", Message: "required"}
	case c.AuthoritySeed == "":
		return ValidationError{Field: "authority_seed", Message: "required"}
	case !c.TotalSupply.IsPositive():
		return ValidationError{Field: "total_supply", Message: "must be positive"}
	case !c.PlanetCreationCost.IsPositive():
		return ValidationError{Field: "planet_creation_cost", Message: "must be positive"}
	case c.MaxPlanetsPerUser <= 0:
		return ValidationError{Field: "max_planets_per_user", Message: "must be positive"}
	case c.RewardInterval <= 0:
		return ValidationError{Field: "reward_interval", Message: "must be positive"}
	case c.EcosystemVestingDuration <= 0:
		return ValidationError{Field: "ecosystem_vesting_duration", Message: "must be positive"}
	case c.TreasuryVestingDuration <= 0:
		return ValidationError{Field: "treasury_vesting_duration", Message: "must be positive"}
	}

	if err := c.validateWallets(); err != nil {
		return err
	}

	rates := []struct {
		field string
		value int64
	}{
		{"reward_rate", c.RewardRate},
		{"transaction_tax_rate", c.TransactionTaxRate},
		{"liquidity_tax_rate", c.LiquidityTaxRate},
		{"reward_tax_rate", c.RewardTaxRate},
		{"nft_transfer_tax_rate", c.NFTTransferTaxRate},
		{"team_nft_tax_rate", c.TeamNFTTaxRate},
		{"reward_nft_tax_rate", c.RewardNFTTaxRate},
	}
	for _, r := range rates {
		if r.value < 0 || r.value > 100 {
			return ValidationError{Field: r.field, Message: fmt.Sprintf("%d is outside 0..100", r.value)}
		}
	}

	return c.ValidateTaxRates()
}

// ValidateTaxRates checks that liquidity + reward splits stay within the
// transaction tax, and team + reward splits within the NFT transfer tax.
func (c *Config) ValidateTaxRates() error {
	if c.LiquidityTaxRate+c.RewardTaxRate > c.TransactionTaxRate {
		return fmt.Errorf("%w: liquidity %d + reward %d > transaction %d",
			ErrInvalidTaxRates, c.LiquidityTaxRate, c.RewardTaxRate, c.TransactionTaxRate)
	}
	if c.TeamNFTTaxRate+c.RewardNFTTaxRate > c.NFTTransferTaxRate {
		return fmt.Errorf("%w: team %d + reward %d > nft transfer %d",
			ErrInvalidTaxRates, c.TeamNFTTaxRate, c.RewardNFTTaxRate, c.NFTTransferTaxRate)
	}
	return nil
}

func (c *Config) validateWallets() error {
	wallets := []struct {
		field string
		empty bool
	}{
		{"wallets.reward_pool", c.Wallets.RewardPool.IsZero()},
		{"wallets.team", c.Wallets.Team.IsZero()},
		{"wallets.marketing", c.Wallets.Marketing.IsZero()},
		{"wallets.liquidity", c.Wallets.Liquidity.IsZero()},
		{"wallets.vesting_vault", c.Wallets.VestingVault.IsZero()},
		{"wallets.burn_reserve", c.Wallets.BurnReserve.IsZero()},
	}
	for _, w := range wallets {
		if w.empty {
			return ValidationError{Field: w.field, Message: "required"}
		}
	}
	return nil
}
