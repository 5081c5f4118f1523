package sqlite

import (
	"encoding/json"
	"time"

	"github.com/xraph/grove"

	"github.com/xraph/universe/activity"
	"github.com/xraph/universe/config"
	"github.com/xraph/universe/id"
	"github.com/xraph/universe/planet"
	"github.com/xraph/universe/types"
	"github.com/xraph/universe/user"
	"github.com/xraph/universe/vesting"
)

// Singleton rows are stored under a fixed key.
const (
	configKey  = "config"
	vestingKey = "vesting"
)

// Timestamps are stored as unix nanoseconds.
func toUnix(t time.Time) int64 {
	if t.IsZero() {
		return 0
	}
	return t.UnixNano()
}

func fromUnix(n int64) time.Time {
	if n == 0 {
		return time.Time{}
	}
	return time.Unix(0, n).UTC()
}

// ==================== Config models ====================

type configModel struct {
	grove.BaseModel `grove:"table:universe_config"`

	ID                       string `grove:"id,pk"`
	TotalSupply              int64  `grove:"total_supply"`
	PlanetCreationCost       int64  `grove:"planet_creation_cost"`
	MaxPlanetsPerUser        int    `grove:"max_planets_per_user"`
	RewardRate               int64  `grove:"reward_rate"`
	RewardInterval           int64  `grove:"reward_interval"`
	TokenMint                string `grove:"token_mint"`
	Admin                    string `grove:"admin"`
	AuthoritySeed            string `grove:"authority_seed"`
	Wallets                  string `grove:"wallets"`
	TransactionTaxRate       int64  `grove:"transaction_tax_rate"`
	LiquidityTaxRate         int64  `grove:"liquidity_tax_rate"`
	RewardTaxRate            int64  `grove:"reward_tax_rate"`
	NFTTransferTaxRate       int64  `grove:"nft_transfer_tax_rate"`
	TeamNFTTaxRate           int64  `grove:"team_nft_tax_rate"`
	RewardNFTTaxRate         int64  `grove:"reward_nft_tax_rate"`
	VestingStartTime         int64  `grove:"vesting_start_time"`
	EcosystemVestingDuration int64  `grove:"ecosystem_vesting_duration"`
	TreasuryVestingDuration  int64  `grove:"treasury_vesting_duration"`
	CreatedAt                int64  `grove:"created_at"`
	UpdatedAt                int64  `grove:"updated_at"`
}

func toConfigModel(c *config.Config) *configModel {
	wallets, _ := json.Marshal(c.Wallets) //nolint:errcheck // plain struct of strings

	return &configModel{
		ID:                       configKey,
		TotalSupply:              c.TotalSupply.Int64(),
		PlanetCreationCost:       c.PlanetCreationCost.Int64(),
		MaxPlanetsPerUser:        c.MaxPlanetsPerUser,
		RewardRate:               c.RewardRate,
		RewardInterval:           c.RewardInterval,
		TokenMint:                c.TokenMint.String(),
		Admin:                    c.Admin.String(),
		AuthoritySeed:            c.AuthoritySeed,
		Wallets:                  string(wallets),
		TransactionTaxRate:       c.TransactionTaxRate,
		LiquidityTaxRate:         c.LiquidityTaxRate,
		RewardTaxRate:            c.RewardTaxRate,
		NFTTransferTaxRate:       c.NFTTransferTaxRate,
		TeamNFTTaxRate:           c.TeamNFTTaxRate,
		RewardNFTTaxRate:         c.RewardNFTTaxRate,
		VestingStartTime:         toUnix(c.VestingStartTime),
		EcosystemVestingDuration: c.EcosystemVestingDuration,
		TreasuryVestingDuration:  c.TreasuryVestingDuration,
		CreatedAt:                toUnix(c.CreatedAt),
		UpdatedAt:                toUnix(c.UpdatedAt),
	}
}

func fromConfigModel(m *configModel) (*config.Config, error) {
	var wallets config.Wallets
	if m.Wallets != "" {
		if err := json.Unmarshal([]byte(m.Wallets), &wallets); err != nil {
			return nil, err
		}
	}

	return &config.Config{
		Entity: types.Entity{
			CreatedAt: fromUnix(m.CreatedAt),
			UpdatedAt: fromUnix(m.UpdatedAt),
		},
		TotalSupply:              types.Amount(m.TotalSupply),
		PlanetCreationCost:       types.Amount(m.PlanetCreationCost),
		MaxPlanetsPerUser:        m.MaxPlanetsPerUser,
		RewardRate:               m.RewardRate,
		RewardInterval:           m.RewardInterval,
		TokenMint:                types.Account(m.TokenMint),
		Admin:                    types.Account(m.Admin),
		AuthoritySeed:            m.AuthoritySeed,
		Wallets:                  wallets,
		TransactionTaxRate:       m.TransactionTaxRate,
		LiquidityTaxRate:         m.LiquidityTaxRate,
		RewardTaxRate:            m.RewardTaxRate,
		NFTTransferTaxRate:       m.NFTTransferTaxRate,
		TeamNFTTaxRate:           m.TeamNFTTaxRate,
		RewardNFTTaxRate:         m.RewardNFTTaxRate,
		VestingStartTime:         fromUnix(m.VestingStartTime),
		EcosystemVestingDuration: m.EcosystemVestingDuration,
		TreasuryVestingDuration:  m.TreasuryVestingDuration,
	}, nil
}

// ==================== Vesting models ====================

type vestingModel struct {
	grove.BaseModel `grove:"table:universe_vesting"`

	ID               string `grove:"id,pk"`
	EcosystemTotal   int64  `grove:"ecosystem_total"`
	EcosystemClaimed int64  `grove:"ecosystem_claimed"`
	TreasuryTotal    int64  `grove:"treasury_total"`
	TreasuryClaimed  int64  `grove:"treasury_claimed"`
	BurnReserve      int64  `grove:"burn_reserve"`
	LastClaimTime    int64  `grove:"last_claim_time"`
	CreatedAt        int64  `grove:"created_at"`
	UpdatedAt        int64  `grove:"updated_at"`
}

func toVestingModel(v *vesting.Vesting) *vestingModel {
	return &vestingModel{
		ID:               vestingKey,
		EcosystemTotal:   v.Ecosystem.Total.Int64(),
		EcosystemClaimed: v.Ecosystem.Claimed.Int64(),
		TreasuryTotal:    v.Treasury.Total.Int64(),
		TreasuryClaimed:  v.Treasury.Claimed.Int64(),
		BurnReserve:      v.BurnReserve.Int64(),
		LastClaimTime:    toUnix(v.LastClaimTime),
		CreatedAt:        toUnix(v.CreatedAt),
		UpdatedAt:        toUnix(v.UpdatedAt),
	}
}

func fromVestingModel(m *vestingModel) *vesting.Vesting {
	return &vesting.Vesting{
		Entity: types.Entity{
			CreatedAt: fromUnix(m.CreatedAt),
			UpdatedAt: fromUnix(m.UpdatedAt),
		},
		Ecosystem: vesting.Allocation{
			Total:   types.Amount(m.EcosystemTotal),
			Claimed: types.Amount(m.EcosystemClaimed),
		},
		Treasury: vesting.Allocation{
			Total:   types.Amount(m.TreasuryTotal),
			Claimed: types.Amount(m.TreasuryClaimed),
		},
		BurnReserve:   types.Amount(m.BurnReserve),
		LastClaimTime: fromUnix(m.LastClaimTime),
	}
}

// ==================== User models ====================

type userModel struct {
	grove.BaseModel `grove:"table:universe_users"`

	Owner     string `grove:"owner,pk"`
	ID        string `grove:"id"`
	Planets   string `grove:"planets"`
	CreatedAt int64  `grove:"created_at"`
	UpdatedAt int64  `grove:"updated_at"`
}

func toUserModel(u *user.User) *userModel {
	ids := make([]string, len(u.Planets))
	for i, pid := range u.Planets {
		ids[i] = pid.String()
	}
	planets, _ := json.Marshal(ids) //nolint:errcheck // slice of strings

	return &userModel{
		Owner:     u.Owner.String(),
		ID:        u.ID.String(),
		Planets:   string(planets),
		CreatedAt: toUnix(u.CreatedAt),
		UpdatedAt: toUnix(u.UpdatedAt),
	}
}

func fromUserModel(m *userModel) (*user.User, error) {
	userID, err := id.ParseUserID(m.ID)
	if err != nil {
		return nil, err
	}

	var ids []string
	if m.Planets != "" {
		if err := json.Unmarshal([]byte(m.Planets), &ids); err != nil {
			return nil, err
		}
	}

	planets := make([]id.PlanetID, 0, len(ids))
	for _, raw := range ids {
		pid, err := id.ParsePlanetID(raw)
		if err != nil {
			return nil, err
		}
		planets = append(planets, pid)
	}

	return &user.User{
		Entity: types.Entity{
			CreatedAt: fromUnix(m.CreatedAt),
			UpdatedAt: fromUnix(m.UpdatedAt),
		},
		ID:      userID,
		Owner:   types.Account(m.Owner),
		Planets: planets,
	}, nil
}

// ==================== Planet models ====================

type planetModel struct {
	grove.BaseModel `grove:"table:universe_planets"`

	ID            string `grove:"id,pk"`
	Owner         string `grove:"owner"`
	CompoundLevel int    `grove:"compound_level"`
	DailyReward   int64  `grove:"daily_reward"`
	LastClaim     int64  `grove:"last_claim"`
	LockedTokens  int64  `grove:"locked_tokens"`
	Name          string `grove:"name"`
	CreatedAt     int64  `grove:"created_at"`
	UpdatedAt     int64  `grove:"updated_at"`
}

func toPlanetModel(p *planet.Planet) *planetModel {
	return &planetModel{
		ID:            p.ID.String(),
		Owner:         p.Owner.String(),
		CompoundLevel: p.CompoundLevel,
		DailyReward:   p.DailyReward,
		LastClaim:     toUnix(p.LastClaim),
		LockedTokens:  p.LockedTokens.Int64(),
		Name:          p.Name,
		CreatedAt:     toUnix(p.CreatedAt),
		UpdatedAt:     toUnix(p.UpdatedAt),
	}
}

func fromPlanetModel(m *planetModel) (*planet.Planet, error) {
	planetID, err := id.ParsePlanetID(m.ID)
	if err != nil {
		return nil, err
	}

	return &planet.Planet{
		Entity: types.Entity{
			CreatedAt: fromUnix(m.CreatedAt),
			UpdatedAt: fromUnix(m.UpdatedAt),
		},
		ID:            planetID,
		Owner:         types.Account(m.Owner),
		CompoundLevel: m.CompoundLevel,
		DailyReward:   m.DailyReward,
		LastClaim:     fromUnix(m.LastClaim),
		LockedTokens:  types.Amount(m.LockedTokens),
		Name:          m.Name,
	}, nil
}

// ==================== Activity models ====================

type activityModel struct {
	grove.BaseModel `grove:"table:universe_activity"`

	ID           string `grove:"id,pk"`
	Kind         string `grove:"kind"`
	Actor        string `grove:"actor"`
	Counterparty string `grove:"counterparty"`
	PlanetID     string `grove:"planet_id"`
	Amount       int64  `grove:"amount"`
	Tax          int64  `grove:"tax"`
	Timestamp    int64  `grove:"timestamp"`
	Details      string `grove:"details"`
	CreatedAt    int64  `grove:"created_at"`
}

func toActivityModel(e *activity.Event) *activityModel {
	var planetID string
	if !e.PlanetID.IsNil() {
		planetID = e.PlanetID.String()
	}

	details := "{}"
	if len(e.Details) > 0 {
		raw, _ := json.Marshal(e.Details) //nolint:errcheck // map of strings
		details = string(raw)
	}

	return &activityModel{
		ID:           e.ID.String(),
		Kind:         string(e.Kind),
		Actor:        e.Actor.String(),
		Counterparty: e.Counterparty.String(),
		PlanetID:     planetID,
		Amount:       e.Amount.Int64(),
		Tax:          e.Tax.Int64(),
		Timestamp:    toUnix(e.Timestamp),
		Details:      details,
		CreatedAt:    time.Now().UnixNano(),
	}
}

func fromActivityModel(m *activityModel) (*activity.Event, error) {
	evtID, err := id.ParseActivityID(m.ID)
	if err != nil {
		return nil, err
	}

	evt := &activity.Event{
		ID:           evtID,
		Kind:         activity.Kind(m.Kind),
		Actor:        types.Account(m.Actor),
		Counterparty: types.Account(m.Counterparty),
		Amount:       types.Amount(m.Amount),
		Tax:          types.Amount(m.Tax),
		Timestamp:    fromUnix(m.Timestamp),
	}
	if m.Details != "" && m.Details != "{}" {
		if err := json.Unmarshal([]byte(m.Details), &evt.Details); err != nil {
			return nil, err
		}
	}
	if m.PlanetID != "" {
		if evt.PlanetID, err = id.ParsePlanetID(m.PlanetID); err != nil {
			return nil, err
		}
	}
	return evt, nil
}
