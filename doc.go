// Package universe provides the state machine of a planet yield game for
// Go applications.
//
// Universe is designed as a library, not a service. It keeps the game
// records (config, users, planets, vesting) in a pluggable store and
// moves tokens through a pluggable token ledger. It provides:
//
//   - Planet creation against a configurable cost and per-user cap
//   - Linear, time-based reward accrual with claim and compound
//   - A fixed compound ladder from Earth (level 0) to Sun (level 10)
//   - Taxed token transfers and taxed planet transfers
//   - Two linear vesting tracks released from a vault
//   - Admin-only parameter updates and token burns
//   - A batched activity journal and lifecycle plugin hooks
//
// # Quick Start
//
// Create an engine with your preferred store and token ledger:
//
//	import (
//	    "github.com/xraph/universe"
//	    "github.com/xraph/universe/store/postgres"
//	    tokenmem "github.com/xraph/universe/token/memory"
//	)
//
//	db, err := grove.Open(pgdriver.New(), databaseURL)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	store := postgres.New(db)
//
//	u := universe.New(store, tokenmem.New(mint))
//	if err := u.Start(ctx); err != nil {
//	    log.Fatal(err)
//	}
//	defer u.Stop()
//
// # Core Concepts
//
// The config is created once by Initialize and the caller becomes admin.
// Players register with InitializeUser and then create planets:
//
//	cfg, err := u.Initialize(ctx, admin, config.InitParams{TokenMint: mint, Wallets: wallets})
//	_, err = u.InitializeUser(ctx, player)
//	p, err := u.CreatePlanet(ctx, player)
//
// A planet accrues locked × daily_reward × elapsed / (100 × interval)
// tokens. Once a full interval has passed the owner may claim the reward
// or compound it into the planet:
//
//	_, reward, err := u.ClaimRewards(ctx, player, p.ID)
//	p, _, err = u.CompoundRewards(ctx, player, p.ID)
//
// Every mutating operation is atomic. Token movements and record writes
// either all happen or none do, and the error is returned unchanged.
//
// # Amounts
//
// All token amounts are int64 base units with nine decimals. Products are
// computed in arbitrary precision and truncated toward zero before the
// range check, so intermediate overflow is impossible and only a result
// outside int64 fails with ErrOverflow.
//
// # TypeID
//
// Planets and journal events use TypeID identifiers:
//
//	planet_01h2xcejqtf2nbrexx3vqjhp41  // Planet ID
//	act_01h455vb4pex5vsknk084sn02q     // Activity event ID
//
// Users are keyed by their owner account.
package universe
