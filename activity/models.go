// Package activity is the journal of committed operations. Events are
// buffered by the engine and written to the store in batches.
package activity

import (
	"time"

	"github.com/xraph/universe/id"
	"github.com/xraph/universe/types"
)

// Kind names the operation that produced an event.
type Kind string

const (
	KindInitialize        Kind = "initialize"
	KindInitializeUser    Kind = "initialize_user"
	KindSetupVesting      Kind = "setup_vesting"
	KindCreatePlanet      Kind = "create_planet"
	KindClaimRewards      Kind = "claim_rewards"
	KindCompoundRewards   Kind = "compound_rewards"
	KindTransferPlanet    Kind = "transfer_planet"
	KindTransferWithTax   Kind = "transfer_with_tax"
	KindClaimVestedTokens Kind = "claim_vested_tokens"
	KindBurnTokens        Kind = "burn_tokens"
	KindUpdateConfig      Kind = "update_config"
)

// Event records one committed operation. Amount and Tax are base units.
type Event struct {
	ID           id.ActivityID     `json:"id"`
	Kind         Kind              `json:"kind"`
	Actor        types.Account     `json:"actor"`
	Counterparty types.Account     `json:"counterparty,omitempty"`
	PlanetID     id.PlanetID       `json:"planet_id,omitzero"`
	Amount       types.Amount      `json:"amount"`
	Tax          types.Amount      `json:"tax"`
	Timestamp    time.Time         `json:"timestamp"`
	Details      map[string]string `json:"details,omitempty"`
}
