// Package memory provides an in-process token ledger for tests and
// single-node deployments.
package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/xraph/universe/token"
	"github.com/xraph/universe/types"
)

// Compile-time interface checks.
var (
	_ token.Ledger     = (*Ledger)(nil)
	_ token.Transactor = (*Ledger)(nil)
)

type account struct {
	authority token.Authority
	balance   types.Amount
}

// Ledger is an in-memory token ledger with a single mint. Every account
// has exactly one authority allowed to debit it.
type Ledger struct {
	mu       sync.Mutex
	mint     types.Account
	supply   types.Amount
	accounts map[types.Account]*account
	history  []token.Movement
}

// New creates an empty ledger for mint.
func New(mint types.Account) *Ledger {
	return &Ledger{
		mint:     mint,
		accounts: make(map[types.Account]*account),
	}
}

// Open registers a token account debitable by auth. Re-opening an account
// replaces its authority and keeps its balance.
func (l *Ledger) Open(acct types.Account, auth token.Authority) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if a, ok := l.accounts[acct]; ok {
		a.authority = auth
		return
	}
	l.accounts[acct] = &account{authority: auth}
}

// Fund mints amount into acct.
func (l *Ledger) Fund(acct types.Account, amount types.Amount) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if amount.IsNegative() {
		return token.ErrInvalidAmount
	}
	a, ok := l.accounts[acct]
	if !ok {
		return fmt.Errorf("%w: %s", token.ErrAccountNotFound, acct)
	}
	bal, err := a.balance.Add(amount)
	if err != nil {
		return err
	}
	supply, err := l.supply.Add(amount)
	if err != nil {
		return err
	}
	a.balance, l.supply = bal, supply
	return nil
}

// Balance returns the balance of acct, zero for unknown accounts.
func (l *Ledger) Balance(acct types.Account) types.Amount {
	l.mu.Lock()
	defer l.mu.Unlock()

	if a, ok := l.accounts[acct]; ok {
		return a.balance
	}
	return 0
}

// Supply returns the outstanding mint supply.
func (l *Ledger) Supply() types.Amount {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.supply
}

// Movements returns a copy of the committed movement history.
func (l *Ledger) Movements() []token.Movement {
	l.mu.Lock()
	defer l.mu.Unlock()

	out := make([]token.Movement, len(l.history))
	copy(out, l.history)
	return out
}

// Transfer executes a single transfer.
func (l *Ledger) Transfer(ctx context.Context, from, to types.Account, auth token.Authority, amount types.Amount) error {
	return l.Atomically(ctx, func(tx token.Ledger) error {
		return tx.Transfer(ctx, from, to, auth, amount)
	})
}

// Burn executes a single burn.
func (l *Ledger) Burn(ctx context.Context, mint, from types.Account, auth token.Authority, amount types.Amount) error {
	return l.Atomically(ctx, func(tx token.Ledger) error {
		return tx.Burn(ctx, mint, from, auth, amount)
	})
}

// Atomically runs fn holding the ledger lock. Balances and supply touched
// inside fn are restored if fn returns an error.
func (l *Ledger) Atomically(ctx context.Context, fn func(tx token.Ledger) error) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	tx := &txn{
		l:        l,
		balances: make(map[types.Account]types.Amount),
		supply:   l.supply,
	}
	if err := fn(tx); err != nil {
		tx.rollback()
		return err
	}
	l.history = append(l.history, tx.moves...)
	return nil
}

// txn journals the pre-image of every balance it touches.
type txn struct {
	l        *Ledger
	balances map[types.Account]types.Amount
	supply   types.Amount
	moves    []token.Movement
}

func (t *txn) remember(acct types.Account, a *account) {
	if _, ok := t.balances[acct]; !ok {
		t.balances[acct] = a.balance
	}
}

func (t *txn) rollback() {
	for acct, bal := range t.balances {
		t.l.accounts[acct].balance = bal
	}
	t.l.supply = t.supply
}

func (t *txn) debit(from types.Account, auth token.Authority, amount types.Amount) (*account, error) {
	if amount.IsNegative() {
		return nil, fmt.Errorf("%w: %d", token.ErrInvalidAmount, amount)
	}
	src, ok := t.l.accounts[from]
	if !ok {
		return nil, fmt.Errorf("%w: %s", token.ErrAccountNotFound, from)
	}
	if src.authority != auth {
		return nil, fmt.Errorf("%w: %s by %s", token.ErrUnauthorized, from, auth)
	}
	if src.balance < amount {
		return nil, fmt.Errorf("%w: %s has %d, needs %d", token.ErrInsufficientFunds, from, src.balance, amount)
	}
	return src, nil
}

func (t *txn) Transfer(ctx context.Context, from, to types.Account, auth token.Authority, amount types.Amount) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	src, err := t.debit(from, auth, amount)
	if err != nil {
		return err
	}
	dst, ok := t.l.accounts[to]
	if !ok {
		return fmt.Errorf("%w: %s", token.ErrAccountNotFound, to)
	}
	t.remember(from, src)
	t.remember(to, dst)
	src.balance -= amount
	credited, err := dst.balance.Add(amount)
	if err != nil {
		return err
	}
	dst.balance = credited

	t.moves = append(t.moves, token.Movement{
		Kind:      token.MovementTransfer,
		From:      from,
		To:        to,
		Authority: auth,
		Amount:    amount,
	})
	return nil
}

func (t *txn) Burn(ctx context.Context, mint, from types.Account, auth token.Authority, amount types.Amount) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if mint != t.l.mint {
		return fmt.Errorf("%w: mint %s", token.ErrAccountNotFound, mint)
	}
	src, err := t.debit(from, auth, amount)
	if err != nil {
		return err
	}

	t.remember(from, src)
	src.balance -= amount
	t.l.supply -= amount

	t.moves = append(t.moves, token.Movement{
		Kind:      token.MovementBurn,
		From:      from,
		Authority: auth,
		Amount:    amount,
	})
	return nil
}
