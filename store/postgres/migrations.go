package postgres

import (
	"context"

	"github.com/xraph/grove/migrate"
)

// Migrations is the grove migration group for the Universe store.
var Migrations = migrate.NewGroup("universe")

func init() {
	Migrations.MustRegister(
		&migrate.Migration{
			Name:    "create_universe_config",
			Version: "20250101000001",
			Up: func(ctx context.Context, exec migrate.Executor) error {
				_, err := exec.Exec(ctx, `
CREATE TABLE IF NOT EXISTS universe_config (
    id                         TEXT PRIMARY KEY,
    total_supply               BIGINT NOT NULL DEFAULT 0,
    planet_creation_cost       BIGINT NOT NULL DEFAULT 0,
    max_planets_per_user       INT NOT NULL DEFAULT 0,
    reward_rate                BIGINT NOT NULL DEFAULT 0,
    reward_interval            BIGINT NOT NULL DEFAULT 0,
    token_mint                 TEXT NOT NULL DEFAULT '',
    admin                      TEXT NOT NULL DEFAULT '',
    authority_seed             TEXT NOT NULL DEFAULT '',
    wallets                    JSONB NOT NULL DEFAULT '{}',
    transaction_tax_rate       BIGINT NOT NULL DEFAULT 0,
    liquidity_tax_rate         BIGINT NOT NULL DEFAULT 0,
    reward_tax_rate            BIGINT NOT NULL DEFAULT 0,
    nft_transfer_tax_rate      BIGINT NOT NULL DEFAULT 0,
    team_nft_tax_rate          BIGINT NOT NULL DEFAULT 0,
    reward_nft_tax_rate        BIGINT NOT NULL DEFAULT 0,
    vesting_start_time         TIMESTAMPTZ NOT NULL DEFAULT NOW(),
    ecosystem_vesting_duration BIGINT NOT NULL DEFAULT 0,
    treasury_vesting_duration  BIGINT NOT NULL DEFAULT 0,
    created_at                 TIMESTAMPTZ NOT NULL DEFAULT NOW(),
    updated_at                 TIMESTAMPTZ NOT NULL DEFAULT NOW()
);
`)
				return err
			},
			Down: func(ctx context.Context, exec migrate.Executor) error {
				_, err := exec.Exec(ctx, `DROP TABLE IF EXISTS universe_config`)
				return err
			},
		},
		&migrate.Migration{
			Name:    "create_universe_vesting",
			Version: "20250101000002",
			Up: func(ctx context.Context, exec migrate.Executor) error {
				_, err := exec.Exec(ctx, `
CREATE TABLE IF NOT EXISTS universe_vesting (
    id                TEXT PRIMARY KEY,
    ecosystem_total   BIGINT NOT NULL DEFAULT 0,
    ecosystem_claimed BIGINT NOT NULL DEFAULT 0,
    treasury_total    BIGINT NOT NULL DEFAULT 0,
    treasury_claimed  BIGINT NOT NULL DEFAULT 0,
    burn_reserve      BIGINT NOT NULL DEFAULT 0,
    last_claim_time   TIMESTAMPTZ NOT NULL DEFAULT NOW(),
    created_at        TIMESTAMPTZ NOT NULL DEFAULT NOW(),
    updated_at        TIMESTAMPTZ NOT NULL DEFAULT NOW(),
    CHECK (ecosystem_claimed <= ecosystem_total),
    CHECK (treasury_claimed <= treasury_total)
);
`)
				return err
			},
			Down: func(ctx context.Context, exec migrate.Executor) error {
				_, err := exec.Exec(ctx, `DROP TABLE IF EXISTS universe_vesting`)
				return err
			},
		},
		&migrate.Migration{
			Name:    "create_universe_users",
			Version: "20250101000003",
			Up: func(ctx context.Context, exec migrate.Executor) error {
				_, err := exec.Exec(ctx, `
CREATE TABLE IF NOT EXISTS universe_users (
    owner      TEXT PRIMARY KEY,
    id         TEXT NOT NULL,
    planets    JSONB NOT NULL DEFAULT '[]',
    created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
    updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE UNIQUE INDEX IF NOT EXISTS idx_universe_users_id ON universe_users (id);
`)
				return err
			},
			Down: func(ctx context.Context, exec migrate.Executor) error {
				_, err := exec.Exec(ctx, `DROP TABLE IF EXISTS universe_users`)
				return err
			},
		},
		&migrate.Migration{
			Name:    "create_universe_planets",
			Version: "20250101000004",
			Up: func(ctx context.Context, exec migrate.Executor) error {
				_, err := exec.Exec(ctx, `
CREATE TABLE IF NOT EXISTS universe_planets (
    id             TEXT PRIMARY KEY,
    owner          TEXT NOT NULL,
    compound_level INT NOT NULL DEFAULT 0,
    daily_reward   BIGINT NOT NULL DEFAULT 0,
    last_claim     TIMESTAMPTZ NOT NULL DEFAULT NOW(),
    locked_tokens  BIGINT NOT NULL DEFAULT 0,
    name           TEXT NOT NULL DEFAULT '',
    created_at     TIMESTAMPTZ NOT NULL DEFAULT NOW(),
    updated_at     TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE INDEX IF NOT EXISTS idx_universe_planets_owner ON universe_planets (owner, created_at);
`)
				return err
			},
			Down: func(ctx context.Context, exec migrate.Executor) error {
				_, err := exec.Exec(ctx, `DROP TABLE IF EXISTS universe_planets`)
				return err
			},
		},
		&migrate.Migration{
			Name:    "create_universe_activity",
			Version: "20250101000005",
			Up: func(ctx context.Context, exec migrate.Executor) error {
				_, err := exec.Exec(ctx, `
CREATE TABLE IF NOT EXISTS universe_activity (
    id           TEXT PRIMARY KEY,
    kind         TEXT NOT NULL,
    actor        TEXT NOT NULL DEFAULT '',
    counterparty TEXT NOT NULL DEFAULT '',
    planet_id    TEXT NOT NULL DEFAULT '',
    amount       BIGINT NOT NULL DEFAULT 0,
    tax          BIGINT NOT NULL DEFAULT 0,
    timestamp    TIMESTAMPTZ NOT NULL DEFAULT NOW(),
    details      JSONB NOT NULL DEFAULT '{}',
    created_at   TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE INDEX IF NOT EXISTS idx_universe_activity_actor ON universe_activity (actor, timestamp DESC);
CREATE INDEX IF NOT EXISTS idx_universe_activity_counterparty ON universe_activity (counterparty, timestamp DESC);
CREATE INDEX IF NOT EXISTS idx_universe_activity_kind ON universe_activity (kind, timestamp DESC);
`)
				return err
			},
			Down: func(ctx context.Context, exec migrate.Executor) error {
				_, err := exec.Exec(ctx, `DROP TABLE IF EXISTS universe_activity`)
				return err
			},
		},
	)
}
