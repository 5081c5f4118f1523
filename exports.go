package universe

import (
	"github.com/xraph/universe/config"
	"github.com/xraph/universe/types"
	"github.com/xraph/universe/vesting"
)

// Re-export common types for convenience so users don't have to import types package.

// Amount is re-exported from types package.
type Amount = types.Amount

// Account is re-exported from types package.
type Account = types.Account

// Entity is re-exported from types package.
type Entity = types.Entity

// Overrides is re-exported from config package.
type Overrides = config.Overrides

// Vesting tracks.
const (
	Ecosystem = vesting.Ecosystem
	Treasury  = vesting.Treasury
)

// Re-export Amount helpers
var (
	Tokens      = types.Tokens
	ParseAmount = types.ParseAmount
)

// Re-export Entity constructor
var NewEntity = types.NewEntity
