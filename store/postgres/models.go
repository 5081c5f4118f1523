package postgres

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

// ==================== Config models ====================

type configModel struct {
	grove.BaseModel `grove:"table:universe_config"`

	ID                       string          `grove:"id,pk"`
	TotalSupply              int64           `grove:"total_supply"`
	PlanetCreationCost       int64           `grove:"planet_creation_cost"`
	MaxPlanetsPerUser        int             `grove:"max_planets_per_user"`
	RewardRate               int64           `grove:"reward_rate"`
	RewardInterval           int64           `grove:"reward_interval"`
	TokenMint                string          `grove:"token_mint"`
	Admin                    string          `grove:"admin"`
	AuthoritySeed            string          `grove:"authority_seed"`
	Wallets                  json.RawMessage `grove:"wallets,type:jsonb"`
	TransactionTaxRate       int64           `grove:"transaction_tax_rate"`
	LiquidityTaxRate         int64           `grove:"liquidity_tax_rate"`
	RewardTaxRate            int64           `grove:"reward_tax_rate"`
	NFTTransferTaxRate       int64           `grove:"nft_transfer_tax_rate"`
	TeamNFTTaxRate           int64           `grove:"team_nft_tax_rate"`
	RewardNFTTaxRate         int64           `grove:"reward_nft_tax_rate"`
	VestingStartTime         time.Time       `grove:"vesting_start_time"`
	EcosystemVestingDuration int64           `grove:"ecosystem_vesting_duration"`
	TreasuryVestingDuration  int64           `grove:"treasury_vesting_duration"`
	CreatedAt                time.Time       `grove:"created_at"`
	UpdatedAt                time.Time       `grove:"updated_at"`
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
		Wallets:                  wallets,
		TransactionTaxRate:       c.TransactionTaxRate,
		LiquidityTaxRate:         c.LiquidityTaxRate,
		RewardTaxRate:            c.RewardTaxRate,
		NFTTransferTaxRate:       c.NFTTransferTaxRate,
		TeamNFTTaxRate:           c.TeamNFTTaxRate,
		RewardNFTTaxRate:         c.RewardNFTTaxRate,
		VestingStartTime:         c.VestingStartTime,
		EcosystemVestingDuration: c.EcosystemVestingDuration,
		TreasuryVestingDuration:  c.TreasuryVestingDuration,
		CreatedAt:                c.CreatedAt,
		UpdatedAt:                c.UpdatedAt,
	}
}

func fromConfigModel(m *configModel) (*config.Config, error) {
	var wallets config.Wallets
	if len(m.Wallets) > 0 {
		if err := json.Unmarshal(m.Wallets, &wallets); err != nil {
			return nil, err
		}
	}

	return &config.Config{
		Entity: types.Entity{
			CreatedAt: m.CreatedAt,
			UpdatedAt: m.UpdatedAt,
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
		VestingStartTime:         m.VestingStartTime.UTC(),
		EcosystemVestingDuration: m.EcosystemVestingDuration,
		TreasuryVestingDuration:  m.TreasuryVestingDuration,
	}, nil
}

// ==================== Vesting models ====================

type vestingModel struct {
	grove.BaseModel `grove:"table:universe_vesting"`

	ID               string    `grove:"id,pk"`
	EcosystemTotal   int64     `grove:"ecosystem_total"`
	EcosystemClaimed int64     `grove:"ecosystem_claimed"`
	TreasuryTotal    int64     `grove:"treasury_total"`
	TreasuryClaimed  int64     `grove:"treasury_claimed"`
	BurnReserve      int64     `grove:"burn_reserve"`
	LastClaimTime    time.Time `grove:"last_claim_time"`
	CreatedAt        time.Time `grove:"created_at"`
	UpdatedAt        time.Time `grove:"updated_at"`
}

func toVestingModel(v *vesting.Vesting) *vestingModel {
	return &vestingModel{
		ID:               vestingKey,
		EcosystemTotal:   v.Ecosystem.Total.Int64(),
		EcosystemClaimed: v.Ecosystem.Claimed.Int64(),
		TreasuryTotal:    v.Treasury.Total.Int64(),
		TreasuryClaimed:  v.Treasury.Claimed.Int64(),
		BurnReserve:      v.BurnReserve.Int64(),
		LastClaimTime:    v.LastClaimTime,
		CreatedAt:        v.CreatedAt,
		UpdatedAt:        v.UpdatedAt,
	}
}

func fromVestingModel(m *vestingModel) *vesting.Vesting {
	return &vesting.Vesting{
		Entity: types.Entity{
			CreatedAt: m.CreatedAt,
			UpdatedAt: m.UpdatedAt,
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
		LastClaimTime: m.LastClaimTime.UTC(),
	}
}

// ==================== User models ====================

type userModel struct {
	grove.BaseModel `grove:"table:universe_users"`

	Owner     string          `grove:"owner,pk"`
	ID        string          `grove:"id"`
	Planets   json.RawMessage `grove:"planets,type:jsonb"`
	CreatedAt time.Time       `grove:"created_at"`
	UpdatedAt time.Time       `grove:"updated_at"`
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
		Planets:   planets,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

func fromUserModel(m *userModel) (*user.User, error) {
	userID, err := id.ParseUserID(m.ID)
	if err != nil {
		return nil, err
	}

	var ids []string
	if len(m.Planets) > 0 {
		if err := json.Unmarshal(m.Planets, &ids); err != nil {
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
			CreatedAt: m.CreatedAt,
			UpdatedAt: m.UpdatedAt,
		},
		ID:      userID,
		Owner:   types.Account(m.Owner),
		Planets: planets,
	}, nil
}

// ==================== Planet models ====================

type planetModel struct {
	grove.BaseModel `grove:"table:universe_planets"`

	ID            string    `grove:"id,pk"`
	Owner         string    `grove:"owner"`
	CompoundLevel int       `grove:"compound_level"`
	DailyReward   int64     `grove:"daily_reward"`
	LastClaim     time.Time `grove:"last_claim"`
	LockedTokens  int64     `grove:"locked_tokens"`
	Name          string    `grove:"name"`
	CreatedAt     time.Time `grove:"created_at"`
	UpdatedAt     time.Time `grove:"updated_at"`
}

func toPlanetModel(p *planet.Planet) *planetModel {
	return &planetModel{
		ID:            p.ID.String(),
		Owner:         p.Owner.String(),
		CompoundLevel: p.CompoundLevel,
		DailyReward:   p.DailyReward,
		LastClaim:     p.LastClaim,
		LockedTokens:  p.LockedTokens.Int64(),
		Name:          p.Name,
		CreatedAt:     p.CreatedAt,
		UpdatedAt:     p.UpdatedAt,
	}
}

func fromPlanetModel(m *planetModel) (*planet.Planet, error) {
	planetID, err := id.ParsePlanetID(m.ID)
	if err != nil {
		return nil, err
	}

	return &planet.Planet{
		Entity: types.Entity{
			CreatedAt: m.CreatedAt,
			UpdatedAt: m.UpdatedAt,
		},
		ID:            planetID,
		Owner:         types.Account(m.Owner),
		CompoundLevel: m.CompoundLevel,
		DailyReward:   m.DailyReward,
		LastClaim:     m.LastClaim.UTC(),
		LockedTokens:  types.Amount(m.LockedTokens),
		Name:          m.Name,
	}, nil
}

// ==================== Activity models ====================

type activityModel struct {
	grove.BaseModel `grove:"table:universe_activity"`

	ID           string            `grove:"id,pk"`
	Kind         string            `grove:"kind"`
	Actor        string            `grove:"actor"`
	Counterparty string            `grove:"counterparty"`
	PlanetID     string            `grove:"planet_id"`
	Amount       int64             `grove:"amount"`
	Tax          int64             `grove:"tax"`
	Timestamp    time.Time         `grove:"timestamp"`
	Details      map[string]string `grove:"details,type:jsonb"`
	CreatedAt    time.Time         `grove:"created_at"`
}

func toActivityModel(e *activity.Event) *activityModel {
	var planetID string
	if !e.PlanetID.IsNil() {
		planetID = e.PlanetID.String()
	}

	return &activityModel{
		ID:           e.ID.String(),
		Kind:         string(e.Kind),
		Actor:        e.Actor.String(),
		Counterparty: e.Counterparty.String(),
		PlanetID:     planetID,
		Amount:       e.Amount.Int64(),
		Tax:          e.Tax.Int64(),
		Timestamp:    e.Timestamp,
		Details:      e.Details,
		CreatedAt:    time.Now().UTC(),
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
		Timestamp:    m.Timestamp.UTC(),
		Details:      m.Details,
	}
	if m.PlanetID != "" {
		if evt.PlanetID, err = id.ParsePlanetID(m.PlanetID); err != nil {
			return nil, err
		}
	}
	return evt, nil
}
