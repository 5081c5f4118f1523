package universe

import (
	"context"
	"fmt"

	"github.com/xraph/universe/activity"
	"github.com/xraph/universe/store"
	"github.com/xraph/universe/tax"
	"github.com/xraph/universe/token"
	"github.com/xraph/universe/types"
)

// TransferWithTax moves amount from one token account to another,
// diverting the transaction tax. The legs run in a fixed order:
// liquidity share, reward share, then the net to the recipient. Any
// rounding slack between the tax total and its shares stays with the
// sender.
func (e *Engine) TransferWithTax(ctx context.Context, from, to types.Account, amount types.Amount) (tax.Breakdown, error) {
	var charged tax.Breakdown
	err := e.execute(ctx, func(tx token.Ledger) (*store.Changeset, error) {
		if !amount.IsPositive() {
			return nil, fmt.Errorf("%w: amount must be positive", ErrInvalidInput)
		}
		if to.IsZero() {
			return nil, fmt.Errorf("%w: recipient is required", ErrInvalidInput)
		}

		cfg, err := e.loadConfig(ctx)
		if err != nil {
			return nil, err
		}
		charged, err = tax.Apply(amount, cfg)
		if err != nil {
			return nil, err
		}

		auth := token.Signer(from)
		legs := []struct {
			to     types.Account
			amount types.Amount
		}{
			{cfg.Wallets.Liquidity, charged.Liquidity},
			{cfg.Wallets.RewardPool, charged.Reward},
			{to, charged.Net},
		}
		for _, leg := range legs {
			if err := tx.Transfer(ctx, from, leg.to, auth, leg.amount); err != nil {
				return nil, err
			}
		}
		return nil, nil
	})
	if err != nil {
		return tax.Breakdown{}, e.reject(ctx, activity.KindTransferWithTax, from, err)
	}

	e.plugins.EmitTaxedTransfer(ctx, from, to, charged)
	e.record(&activity.Event{
		Kind:         activity.KindTransferWithTax,
		Actor:        from,
		Counterparty: to,
		Amount:       amount,
		Tax:          charged.Total,
		Timestamp:    e.now(),
	})
	e.logger.Info("taxed transfer",
		"from", from,
		"to", to,
		"amount", amount,
		"tax", charged.Total,
	)

	return charged, nil
}
