package universe

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/xraph/universe/activity"
	"github.com/xraph/universe/config"
	"github.com/xraph/universe/store"
	"github.com/xraph/universe/token"
	"github.com/xraph/universe/types"
	"github.com/xraph/universe/vesting"
)

// Initialize creates the singleton config with the fixed defaults. The
// caller becomes the admin. It fails with ErrAlreadyInitialized when a
// config already exists.
func (e *Engine) Initialize(ctx context.Context, caller types.Account, params config.InitParams) (*config.Config, error) {
	var cfg *config.Config
	err := e.execute(ctx, func(_ token.Ledger) (*store.Changeset, error) {
		if caller.IsZero() {
			return nil, fmt.Errorf("%w: caller is required", ErrInvalidInput)
		}

		_, err := e.store.GetConfig(ctx)
		switch {
		case err == nil:
			return nil, ErrAlreadyInitialized
		case !errors.Is(err, ErrNotInitialized):
			return nil, fmt.Errorf("universe: load config: %w", err)
		}

		cfg, err = config.New(caller, params, e.now())
		if err != nil {
			return nil, err
		}
		return store.NewChangeset().InsertConfig(cfg), nil
	})
	if err != nil {
		return nil, e.reject(ctx, activity.KindInitialize, caller, err)
	}

	e.plugins.EmitConfigInitialized(ctx, cfg)
	e.record(&activity.Event{
		Kind:      activity.KindInitialize,
		Actor:     caller,
		Timestamp: cfg.CreatedAt,
		Details: map[string]string{
			"token_mint": cfg.TokenMint.String(),
		},
	})
	e.logger.Info("universe initialized",
		"admin", cfg.Admin,
		"token_mint", cfg.TokenMint,
		"planet_creation_cost", cfg.PlanetCreationCost,
	)

	return cfg, nil
}

// SetupVesting records the vesting allocations. Admin only, once.
func (e *Engine) SetupVesting(ctx context.Context, caller types.Account, ecosystem, treasury, burnReserve types.Amount) (*vesting.Vesting, error) {
	var v *vesting.Vesting
	err := e.execute(ctx, func(_ token.Ledger) (*store.Changeset, error) {
		cfg, err := e.loadConfig(ctx)
		if err != nil {
			return nil, err
		}
		if err := e.requireAdmin(cfg, caller); err != nil {
			return nil, err
		}

		_, err = e.store.GetVesting(ctx)
		switch {
		case err == nil:
			return nil, ErrVestingExists
		case !errors.Is(err, ErrVestingNotFound):
			return nil, fmt.Errorf("universe: load vesting: %w", err)
		}

		v, err = vesting.New(ecosystem, treasury, burnReserve, e.now())
		if err != nil {
			return nil, err
		}
		return store.NewChangeset().InsertVesting(v), nil
	})
	if err != nil {
		return nil, e.reject(ctx, activity.KindSetupVesting, caller, err)
	}

	e.plugins.EmitVestingSetup(ctx, v)
	e.record(&activity.Event{
		Kind:      activity.KindSetupVesting,
		Actor:     caller,
		Timestamp: v.CreatedAt,
		Details: map[string]string{
			"ecosystem":    strconv.FormatInt(v.Ecosystem.Total.Int64(), 10),
			"treasury":     strconv.FormatInt(v.Treasury.Total.Int64(), 10),
			"burn_reserve": strconv.FormatInt(v.BurnReserve.Int64(), 10),
		},
	})
	e.logger.Info("vesting set up",
		"ecosystem", v.Ecosystem.Total,
		"treasury", v.Treasury.Total,
		"burn_reserve", v.BurnReserve,
	)

	return v, nil
}

// ClaimVestedTokens releases the newly vested amount of a track from the
// vesting vault to recipient. Admin only. An empty recipient pays the
// caller.
func (e *Engine) ClaimVestedTokens(ctx context.Context, caller types.Account, track vesting.Track, recipient types.Account) (types.Amount, error) {
	if recipient.IsZero() {
		recipient = caller
	}

	var (
		amount types.Amount
		next   *vesting.Vesting
	)
	err := e.execute(ctx, func(tx token.Ledger) (*store.Changeset, error) {
		cfg, err := e.loadConfig(ctx)
		if err != nil {
			return nil, err
		}
		if err := e.requireAdmin(cfg, caller); err != nil {
			return nil, err
		}

		v, err := e.store.GetVesting(ctx)
		if err != nil {
			return nil, err
		}

		next, amount, err = v.Claim(track, cfg, e.now())
		if err != nil {
			return nil, err
		}

		if err := tx.Transfer(ctx, cfg.Wallets.VestingVault, recipient, token.Derived(cfg.AuthoritySeed), amount); err != nil {
			return nil, err
		}
		return store.NewChangeset().UpdateVesting(next), nil
	})
	if err != nil {
		return 0, e.reject(ctx, activity.KindClaimVestedTokens, caller, err)
	}

	e.plugins.EmitVestedClaimed(ctx, track, amount, next)
	e.record(&activity.Event{
		Kind:         activity.KindClaimVestedTokens,
		Actor:        caller,
		Counterparty: recipient,
		Amount:       amount,
		Timestamp:    next.LastClaimTime,
		Details: map[string]string{
			"track": track.String(),
		},
	})
	e.logger.Info("vested tokens claimed",
		"track", track,
		"amount", amount,
		"recipient", recipient,
	)

	return amount, nil
}

// BurnTokens destroys amount from the burn reserve. Admin only; the
// admin must be the reserve's authority.
func (e *Engine) BurnTokens(ctx context.Context, caller types.Account, amount types.Amount) error {
	var reserve types.Account
	err := e.execute(ctx, func(tx token.Ledger) (*store.Changeset, error) {
		cfg, err := e.loadConfig(ctx)
		if err != nil {
			return nil, err
		}
		if err := e.requireAdmin(cfg, caller); err != nil {
			return nil, err
		}
		if !amount.IsPositive() {
			return nil, fmt.Errorf("%w: burn amount must be positive", ErrInvalidInput)
		}

		reserve = cfg.Wallets.BurnReserve
		return nil, tx.Burn(ctx, cfg.TokenMint, reserve, token.Signer(caller), amount)
	})
	if err != nil {
		return e.reject(ctx, activity.KindBurnTokens, caller, err)
	}

	e.plugins.EmitTokensBurned(ctx, reserve, amount)
	e.record(&activity.Event{
		Kind:         activity.KindBurnTokens,
		Actor:        caller,
		Counterparty: reserve,
		Amount:       amount,
		Timestamp:    e.now(),
	})
	e.logger.Info("tokens burned", "amount", amount, "from", reserve)

	return nil
}

// UpdateConfig applies overrides to the config. Admin only. The result is
// validated as a whole, so an update that breaks either tax sum is
// rejected and nothing changes.
func (e *Engine) UpdateConfig(ctx context.Context, caller types.Account, o config.Overrides) (*config.Config, error) {
	var prev, next *config.Config
	err := e.execute(ctx, func(_ token.Ledger) (*store.Changeset, error) {
		cfg, err := e.loadConfig(ctx)
		if err != nil {
			return nil, err
		}
		if err := e.requireAdmin(cfg, caller); err != nil {
			return nil, err
		}

		next, err = cfg.Apply(o, e.now())
		if err != nil {
			return nil, err
		}
		prev = cfg
		return store.NewChangeset().UpdateConfig(next), nil
	})
	if err != nil {
		return nil, e.reject(ctx, activity.KindUpdateConfig, caller, err)
	}

	e.plugins.EmitConfigUpdated(ctx, prev, next)
	e.record(&activity.Event{
		Kind:      activity.KindUpdateConfig,
		Actor:     caller,
		Timestamp: next.UpdatedAt,
		Details:   fieldDetails(o.Fields()),
	})
	e.logger.Info("config updated", "fields", o.Fields())

	return next, nil
}

func fieldDetails(fields []string) map[string]string {
	if len(fields) == 0 {
		return nil
	}
	details := make(map[string]string, len(fields))
	for _, f := range fields {
		details[f] = "updated"
	}
	return details
}
