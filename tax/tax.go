// Package tax splits gross amounts into net transfers and tax parts.
//
// All figures are integer base units; every percentage truncates toward
// zero. Functions are pure: they compute, the engine moves tokens.
package tax

import (
	"errors"
	"fmt"

	"github.com/xraph/universe/config"
	"github.com/xraph/universe/types"
)

// ErrInvalidTaxCalculation is returned when independently computed
// sub-taxes add up to more than the tax they split.
var ErrInvalidTaxCalculation = errors.New("tax: invalid tax calculation")

// Breakdown is the result of a taxed token transfer.
type Breakdown struct {
	Amount    types.Amount `json:"amount"`
	Total     types.Amount `json:"total_tax"`
	Liquidity types.Amount `json:"liquidity_tax"`
	Reward    types.Amount `json:"reward_tax"`
	Net       types.Amount `json:"net"`
}

// Slack is the part of the total tax not routed to either sub-tax. It
// stays with the source account.
func (b Breakdown) Slack() types.Amount {
	return b.Total - b.Liquidity - b.Reward
}

// Apply computes the three-way split of amount. The net is derived from
// the total tax, not from the sub-taxes, so any rounding slack between
// them is absorbed by the sender.
func Apply(amount types.Amount, cfg *config.Config) (Breakdown, error) {
	if amount.IsNegative() {
		return Breakdown{}, fmt.Errorf("%w: negative amount %d", ErrInvalidTaxCalculation, amount)
	}

	total, err := types.Percent(amount, cfg.TransactionTaxRate)
	if err != nil {
		return Breakdown{}, err
	}
	liquidity, err := types.Percent(amount, cfg.LiquidityTaxRate)
	if err != nil {
		return Breakdown{}, err
	}
	reward, err := types.Percent(amount, cfg.RewardTaxRate)
	if err != nil {
		return Breakdown{}, err
	}

	if liquidity+reward > total {
		return Breakdown{}, fmt.Errorf("%w: liquidity %d + reward %d > total %d",
			ErrInvalidTaxCalculation, liquidity, reward, total)
	}

	return Breakdown{
		Amount:    amount,
		Total:     total,
		Liquidity: liquidity,
		Reward:    reward,
		Net:       amount - total,
	}, nil
}

// NFTBreakdown is the tax charged when a planet changes hands.
type NFTBreakdown struct {
	Locked types.Amount `json:"locked_tokens"`
	Total  types.Amount `json:"tax"`
	Team   types.Amount `json:"team_tax"`
	Reward types.Amount `json:"reward_tax"`
}

// SplitNFT computes the transfer tax on a position with locked tokens.
// The reward part is the remainder of the total, so Team + Reward == Total
// always holds.
func SplitNFT(locked types.Amount, cfg *config.Config) (NFTBreakdown, error) {
	if locked.IsNegative() {
		return NFTBreakdown{}, fmt.Errorf("%w: negative locked balance %d", ErrInvalidTaxCalculation, locked)
	}

	total, err := types.Percent(locked, cfg.NFTTransferTaxRate)
	if err != nil {
		return NFTBreakdown{}, err
	}

	var team types.Amount
	if cfg.NFTTransferTaxRate > 0 {
		team, err = types.MulDiv(total, cfg.TeamNFTTaxRate, cfg.NFTTransferTaxRate)
		if err != nil {
			return NFTBreakdown{}, err
		}
	}
	if team > total {
		return NFTBreakdown{}, fmt.Errorf("%w: team %d > tax %d", ErrInvalidTaxCalculation, team, total)
	}

	return NFTBreakdown{
		Locked: locked,
		Total:  total,
		Team:   team,
		Reward: total - team,
	}, nil
}
