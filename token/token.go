// Package token defines the contract of the fungible-token ledger that
// executes value movements on behalf of the game engine.
//
// The engine never moves balances itself. It requests transfers and burns
// from a Ledger and commits its own state only when every request in the
// same Atomically block succeeds.
package token

import (
	"context"
	"errors"
	"fmt"

	"github.com/xraph/universe/types"
)

var (
	// ErrInsufficientFunds is returned when a debit exceeds the source
	// balance. Callers propagate it unchanged.
	ErrInsufficientFunds = errors.New("token: insufficient funds")

	// ErrUnauthorized is returned when the authority may not debit the
	// source account.
	ErrUnauthorized = errors.New("token: authority may not debit account")

	// ErrInvalidAmount is returned for negative amounts.
	ErrInvalidAmount = errors.New("token: invalid amount")

	// ErrAccountNotFound is returned for accounts the ledger does not know.
	ErrAccountNotFound = errors.New("token: account not found")
)

// AuthorityKind distinguishes caller signatures from program-derived
// signing capabilities.
type AuthorityKind string

const (
	// AuthoritySigner is the direct signature of the caller.
	AuthoritySigner AuthorityKind = "signer"
	// AuthorityDerived is the program-derived capability scoped to a seed.
	AuthorityDerived AuthorityKind = "derived"
)

// Authority is the capability presented with a debit.
type Authority struct {
	Kind    AuthorityKind `json:"kind"`
	Account types.Account `json:"account,omitempty"`
	Seed    string        `json:"seed,omitempty"`
}

// Signer returns the authority of a caller signing for its own accounts.
func Signer(acct types.Account) Authority {
	return Authority{Kind: AuthoritySigner, Account: acct}
}

// Derived returns the program-derived authority for seed.
func Derived(seed string) Authority {
	return Authority{Kind: AuthorityDerived, Seed: seed}
}

func (a Authority) String() string {
	if a.Kind == AuthorityDerived {
		return fmt.Sprintf("derived(%s)", a.Seed)
	}
	return fmt.Sprintf("signer(%s)", a.Account)
}

// Ledger executes value movements.
type Ledger interface {
	// Transfer moves amount from one token account to another.
	Transfer(ctx context.Context, from, to types.Account, auth Authority, amount types.Amount) error

	// Burn destroys amount from an account, reducing the mint supply.
	Burn(ctx context.Context, mint, from types.Account, auth Authority, amount types.Amount) error
}

// Transactor runs a group of movements as one unit: if fn returns an
// error every movement requested through tx is rolled back.
type Transactor interface {
	Atomically(ctx context.Context, fn func(tx Ledger) error) error
}

// MovementKind is the type of a recorded movement.
type MovementKind string

const (
	MovementTransfer MovementKind = "transfer"
	MovementBurn     MovementKind = "burn"
)

// Movement is one executed value movement.
type Movement struct {
	Kind      MovementKind  `json:"kind"`
	From      types.Account `json:"from"`
	To        types.Account `json:"to,omitempty"`
	Authority Authority     `json:"authority"`
	Amount    types.Amount  `json:"amount"`
}
