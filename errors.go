package universe

import (
	"errors"

	"github.com/xraph/universe/config"
	"github.com/xraph/universe/planet"
	"github.com/xraph/universe/tax"
	"github.com/xraph/universe/token"
	"github.com/xraph/universe/types"
	"github.com/xraph/universe/user"
	"github.com/xraph/universe/vesting"
)

// Sentinel errors for common failure scenarios.
var (
	// General errors
	ErrNotFound      = errors.New("universe: not found")
	ErrAlreadyExists = errors.New("universe: already exists")
	ErrInvalidInput  = errors.New("universe: invalid input")
	ErrUnauthorized  = errors.New("universe: unauthorized")
	ErrNotOwner      = errors.New("universe: caller does not own planet")

	// Lifecycle errors
	ErrNotInitialized     = errors.New("universe: not initialized")
	ErrAlreadyInitialized = errors.New("universe: already initialized")
	ErrUserNotFound       = errors.New("universe: user not found")
	ErrUserExists         = errors.New("universe: user already initialized")
	ErrPlanetNotFound     = errors.New("universe: planet not found")
	ErrVestingNotFound    = errors.New("universe: vesting not set up")
	ErrVestingExists      = errors.New("universe: vesting already set up")

	// Activity errors
	ErrActivityBufferFull = errors.New("universe: activity buffer full")

	// Store errors
	ErrStoreNotReady     = errors.New("universe: store not ready")
	ErrStoreClosed       = errors.New("universe: store is closed")
	ErrTransactionFailed = errors.New("universe: transaction failed")
	ErrMigrationFailed   = errors.New("universe: migration failed")
)

// Domain errors, re-exported so callers need only this package.
var (
	ErrMaxPlanetsReached     = user.ErrMaxPlanetsReached
	ErrRewardNotReady        = planet.ErrRewardNotReady
	ErrInvalidCompoundLevel  = planet.ErrInvalidCompoundLevel
	ErrInvalidTaxCalculation = tax.ErrInvalidTaxCalculation
	ErrInvalidTaxRates       = config.ErrInvalidTaxRates
	ErrInvalidConfig         = config.ErrInvalidConfig
	ErrNoVestedTokens        = vesting.ErrNoVestedTokens
	ErrInvalidTrack          = vesting.ErrInvalidTrack
	ErrInsufficientFunds     = token.ErrInsufficientFunds
	ErrOverflow              = types.ErrOverflow
)

// ValidationError represents a validation failure with details.
type ValidationError = config.ValidationError

// IsNotFound returns true if the error is a not found error.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound) ||
		errors.Is(err, ErrNotInitialized) ||
		errors.Is(err, ErrUserNotFound) ||
		errors.Is(err, ErrPlanetNotFound) ||
		errors.Is(err, ErrVestingNotFound)
}

// IsAuthError returns true if the caller lacked the right to act.
func IsAuthError(err error) bool {
	return errors.Is(err, ErrUnauthorized) ||
		errors.Is(err, ErrNotOwner) ||
		errors.Is(err, token.ErrUnauthorized)
}

// IsRetryable returns true if the error is temporary and the operation can be retried.
// Game rule rejections are terminal; RewardNotReady succeeds only once time passes.
func IsRetryable(err error) bool {
	return errors.Is(err, ErrActivityBufferFull) ||
		errors.Is(err, ErrStoreNotReady) ||
		errors.Is(err, ErrTransactionFailed)
}
