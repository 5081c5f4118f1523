package universe

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/xraph/universe/activity"
	"github.com/xraph/universe/config"
	"github.com/xraph/universe/id"
	"github.com/xraph/universe/planet"
	"github.com/xraph/universe/store"
	"github.com/xraph/universe/tax"
	"github.com/xraph/universe/token"
	"github.com/xraph/universe/types"
	"github.com/xraph/universe/user"
)

// InitializeUser creates the planet registry of owner.
func (e *Engine) InitializeUser(ctx context.Context, owner types.Account) (*user.User, error) {
	var u *user.User
	err := e.execute(ctx, func(_ token.Ledger) (*store.Changeset, error) {
		if owner.IsZero() {
			return nil, fmt.Errorf("%w: owner is required", ErrInvalidInput)
		}

		_, err := e.store.GetUser(ctx, owner)
		switch {
		case err == nil:
			return nil, fmt.Errorf("%w: %s", ErrUserExists, owner)
		case !errors.Is(err, ErrUserNotFound):
			return nil, fmt.Errorf("universe: load user: %w", err)
		}

		u = user.New(owner, e.now())
		return store.NewChangeset().InsertUser(u), nil
	})
	if err != nil {
		return nil, e.reject(ctx, activity.KindInitializeUser, owner, err)
	}

	e.plugins.EmitUserInitialized(ctx, u)
	e.record(&activity.Event{
		Kind:      activity.KindInitializeUser,
		Actor:     owner,
		Timestamp: u.CreatedAt,
	})
	e.logger.Info("user initialized", "owner", owner)

	return u, nil
}

// CreatePlanet mints a level-0 planet for owner. The creation cost moves
// from the owner's token account to the reward pool and is locked in the
// planet.
func (e *Engine) CreatePlanet(ctx context.Context, owner types.Account) (*planet.Planet, error) {
	var p *planet.Planet
	err := e.execute(ctx, func(tx token.Ledger) (*store.Changeset, error) {
		cfg, err := e.loadConfig(ctx)
		if err != nil {
			return nil, err
		}
		u, err := e.store.GetUser(ctx, owner)
		if err != nil {
			return nil, err
		}

		now := e.now()
		p = planet.New(owner, cfg.PlanetCreationCost, now)
		next, err := u.WithPlanet(p.ID, cfg.MaxPlanetsPerUser, now)
		if err != nil {
			return nil, err
		}

		if err := tx.Transfer(ctx, owner, cfg.Wallets.RewardPool, token.Signer(owner), cfg.PlanetCreationCost); err != nil {
			return nil, err
		}
		return store.NewChangeset().InsertPlanet(p).UpdateUser(next), nil
	})
	if err != nil {
		return nil, e.reject(ctx, activity.KindCreatePlanet, owner, err)
	}

	e.plugins.EmitPlanetCreated(ctx, p)
	e.publishMetadata(ctx, p)
	e.record(&activity.Event{
		Kind:      activity.KindCreatePlanet,
		Actor:     owner,
		PlanetID:  p.ID,
		Amount:    p.LockedTokens,
		Timestamp: p.CreatedAt,
	})
	e.logger.Info("planet created",
		"planet_id", p.ID,
		"owner", owner,
		"locked", p.LockedTokens,
	)

	return p, nil
}

// ClaimRewards pays the accrued reward of a planet from the reward pool
// to its owner and restarts accrual. At least one reward interval must
// have passed since the last claim.
func (e *Engine) ClaimRewards(ctx context.Context, owner types.Account, planetID id.PlanetID) (*planet.Planet, types.Amount, error) {
	var (
		next   *planet.Planet
		reward types.Amount
	)
	err := e.execute(ctx, func(tx token.Ledger) (*store.Changeset, error) {
		cfg, p, err := e.ownedPlanet(ctx, owner, planetID)
		if err != nil {
			return nil, err
		}

		now := e.now()
		reward, err = planet.Reward(p, cfg, now)
		if err != nil {
			return nil, err
		}

		if err := tx.Transfer(ctx, cfg.Wallets.RewardPool, owner, token.Derived(cfg.AuthoritySeed), reward); err != nil {
			return nil, err
		}
		next = p.Claimed(now)
		return store.NewChangeset().UpdatePlanet(next), nil
	})
	if err != nil {
		return nil, 0, e.reject(ctx, activity.KindClaimRewards, owner, err)
	}

	e.plugins.EmitRewardsClaimed(ctx, next, reward)
	e.record(&activity.Event{
		Kind:      activity.KindClaimRewards,
		Actor:     owner,
		PlanetID:  next.ID,
		Amount:    reward,
		Timestamp: next.LastClaim,
	})
	e.logger.Info("rewards claimed",
		"planet_id", next.ID,
		"owner", owner,
		"reward", reward,
	)

	return next, reward, nil
}

// CompoundRewards folds the accrued reward into the planet's locked
// tokens and raises it one tier. No tokens move.
func (e *Engine) CompoundRewards(ctx context.Context, owner types.Account, planetID id.PlanetID) (*planet.Planet, types.Amount, error) {
	var (
		next   *planet.Planet
		reward types.Amount
	)
	err := e.execute(ctx, func(_ token.Ledger) (*store.Changeset, error) {
		cfg, p, err := e.ownedPlanet(ctx, owner, planetID)
		if err != nil {
			return nil, err
		}

		now := e.now()
		reward, err = planet.Reward(p, cfg, now)
		if err != nil {
			return nil, err
		}

		next, err = p.Compounded(reward, now)
		if err != nil {
			return nil, err
		}
		return store.NewChangeset().UpdatePlanet(next), nil
	})
	if err != nil {
		return nil, 0, e.reject(ctx, activity.KindCompoundRewards, owner, err)
	}

	e.plugins.EmitRewardsCompounded(ctx, next, reward)
	e.publishMetadata(ctx, next)
	e.record(&activity.Event{
		Kind:      activity.KindCompoundRewards,
		Actor:     owner,
		PlanetID:  next.ID,
		Amount:    reward,
		Timestamp: next.LastClaim,
		Details: map[string]string{
			"compound_level": strconv.Itoa(next.CompoundLevel),
		},
	})
	e.logger.Info("rewards compounded",
		"planet_id", next.ID,
		"owner", owner,
		"reward", reward,
		"compound_level", next.CompoundLevel,
	)

	return next, reward, nil
}

// TransferPlanet hands a planet to buyer. The seller pays the NFT
// transfer tax on the planet's locked tokens, split between the team
// wallet and the reward pool. The locked balance itself does not move.
func (e *Engine) TransferPlanet(ctx context.Context, seller types.Account, planetID id.PlanetID, buyer types.Account) (*planet.Planet, tax.NFTBreakdown, error) {
	var (
		next    *planet.Planet
		charged tax.NFTBreakdown
	)
	err := e.execute(ctx, func(tx token.Ledger) (*store.Changeset, error) {
		if buyer.IsZero() {
			return nil, fmt.Errorf("%w: buyer is required", ErrInvalidInput)
		}
		if buyer == seller {
			return nil, fmt.Errorf("%w: cannot transfer a planet to its owner", ErrInvalidInput)
		}

		cfg, p, err := e.ownedPlanet(ctx, seller, planetID)
		if err != nil {
			return nil, err
		}
		from, err := e.store.GetUser(ctx, seller)
		if err != nil {
			return nil, err
		}
		to, err := e.store.GetUser(ctx, buyer)
		if err != nil {
			return nil, err
		}

		now := e.now()
		buyerNext, err := to.WithPlanet(p.ID, cfg.MaxPlanetsPerUser, now)
		if err != nil {
			return nil, err
		}

		charged, err = tax.SplitNFT(p.LockedTokens, cfg)
		if err != nil {
			return nil, err
		}
		if err := e.payNFTTax(ctx, tx, cfg, seller, charged); err != nil {
			return nil, err
		}

		next = p.TransferredTo(buyer, now)
		return store.NewChangeset().
			UpdatePlanet(next).
			UpdateUser(from.WithoutPlanet(p.ID, now)).
			UpdateUser(buyerNext), nil
	})
	if err != nil {
		return nil, tax.NFTBreakdown{}, e.reject(ctx, activity.KindTransferPlanet, seller, err)
	}

	e.plugins.EmitPlanetTransferred(ctx, next, seller, charged)
	e.record(&activity.Event{
		Kind:         activity.KindTransferPlanet,
		Actor:        seller,
		Counterparty: buyer,
		PlanetID:     next.ID,
		Amount:       next.LockedTokens,
		Tax:          charged.Total,
		Timestamp:    next.UpdatedAt,
	})
	e.logger.Info("planet transferred",
		"planet_id", next.ID,
		"seller", seller,
		"buyer", buyer,
		"tax", charged.Total,
	)

	return next, charged, nil
}

func (e *Engine) payNFTTax(ctx context.Context, tx token.Ledger, cfg *config.Config, seller types.Account, charged tax.NFTBreakdown) error {
	auth := token.Signer(seller)
	if err := tx.Transfer(ctx, seller, cfg.Wallets.Team, auth, charged.Team); err != nil {
		return err
	}
	return tx.Transfer(ctx, seller, cfg.Wallets.RewardPool, auth, charged.Reward)
}

// ownedPlanet loads the config and a planet that must belong to owner.
func (e *Engine) ownedPlanet(ctx context.Context, owner types.Account, planetID id.PlanetID) (*config.Config, *planet.Planet, error) {
	cfg, err := e.loadConfig(ctx)
	if err != nil {
		return nil, nil, err
	}
	p, err := e.store.GetPlanet(ctx, planetID)
	if err != nil {
		return nil, nil, err
	}
	if p.Owner != owner {
		return nil, nil, fmt.Errorf("%w: %s", ErrNotOwner, planetID)
	}
	return cfg, p, nil
}
