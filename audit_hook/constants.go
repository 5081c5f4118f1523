package audithook

// Action constants for audit events.
const (
	// Config actions
	ActionConfigInitialized = "config.initialized"
	ActionConfigUpdated     = "config.updated"

	// Registry actions
	ActionUserInitialized = "user.initialized"

	// Planet actions
	ActionPlanetCreated     = "planet.created"
	ActionRewardsClaimed    = "planet.rewards_claimed"
	ActionRewardsCompounded = "planet.rewards_compounded"
	ActionPlanetTransferred = "planet.transferred"

	// Token actions
	ActionTaxedTransfer = "token.taxed_transfer"
	ActionTokensBurned  = "token.burned"

	// Vesting actions
	ActionVestingSetup  = "vesting.setup"
	ActionVestedClaimed = "vesting.claimed"

	// Engine actions
	ActionOperationRejected = "operation.rejected"
)

// Resource constants for audit events.
const (
	ResourceConfig  = "config"
	ResourceUser    = "user"
	ResourcePlanet  = "planet"
	ResourceToken   = "token"
	ResourceVesting = "vesting"
)

// Category constants for audit events.
const (
	CategoryAdmin    = "admin"
	CategoryRegistry = "registry"
	CategoryGameplay = "gameplay"
	CategoryMarket   = "market"
	CategoryToken    = "token"
	CategorySecurity = "security"
)

// Severity levels for audit events.
const (
	SeverityInfo     = "info"
	SeverityWarning  = "warning"
	SeverityError    = "error"
	SeverityCritical = "critical"
)

// Outcome values for audit events.
const (
	OutcomeSuccess = "success"
	OutcomeFailure = "failure"
)
