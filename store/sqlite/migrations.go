package sqlite

import (
	"context"

	"github.com/xraph/grove/migrate"
)

// Migrations is the grove migration group for the Universe store (SQLite).
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
    total_supply               INTEGER NOT NULL DEFAULT 0,
    planet_creation_cost       INTEGER NOT NULL DEFAULT 0,
    max_planets_per_user       INTEGER NOT NULL DEFAULT 0,
    reward_rate                INTEGER NOT NULL DEFAULT 0,
    reward_interval            INTEGER NOT NULL DEFAULT 0,
    token_mint                 TEXT NOT NULL DEFAULT '',
    admin                      TEXT NOT NULL DEFAULT '',
    authority_seed             TEXT NOT NULL DEFAULT '',
    wallets                    TEXT NOT NULL DEFAULT '{}',
    transaction_tax_rate       INTEGER NOT NULL DEFAULT 0,
    liquidity_tax_rate         INTEGER NOT NULL DEFAULT 0,
    reward_tax_rate            INTEGER NOT NULL DEFAULT 0,
    nft_transfer_tax_rate      INTEGER NOT NULL DEFAULT 0,
    team_nft_tax_rate          INTEGER NOT NULL DEFAULT 0,
    reward_nft_tax_rate        INTEGER NOT NULL DEFAULT 0,
    vesting_start_time         INTEGER NOT NULL DEFAULT 0,
    ecosystem_vesting_duration INTEGER NOT NULL DEFAULT 0,
    treasury_vesting_duration  INTEGER NOT NULL DEFAULT 0,
    created_at                 INTEGER NOT NULL DEFAULT 0,
    updated_at                 INTEGER NOT NULL DEFAULT 0
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
    ecosystem_total   INTEGER NOT NULL DEFAULT 0,
    ecosystem_claimed INTEGER NOT NULL DEFAULT 0,
    treasury_total    INTEGER NOT NULL DEFAULT 0,
    treasury_claimed  INTEGER NOT NULL DEFAULT 0,
    burn_reserve      INTEGER NOT NULL DEFAULT 0,
    last_claim_time   INTEGER NOT NULL DEFAULT 0,
    created_at        INTEGER NOT NULL DEFAULT 0,
    updated_at        INTEGER NOT NULL DEFAULT 0
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
    planets    TEXT NOT NULL DEFAULT '[]',
    created_at INTEGER NOT NULL DEFAULT 0,
    updated_at INTEGER NOT NULL DEFAULT 0
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
    compound_level INTEGER NOT NULL DEFAULT 0,
    daily_reward   INTEGER NOT NULL DEFAULT 0,
    last_claim     INTEGER NOT NULL DEFAULT 0,
    locked_tokens  INTEGER NOT NULL DEFAULT 0,
    name           TEXT NOT NULL DEFAULT '',
    created_at     INTEGER NOT NULL DEFAULT 0,
    updated_at     INTEGER NOT NULL DEFAULT 0
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
    amount       INTEGER NOT NULL DEFAULT 0,
    tax          INTEGER NOT NULL DEFAULT 0,
    timestamp    INTEGER NOT NULL DEFAULT 0,
    details      TEXT NOT NULL DEFAULT '{}',
    created_at   INTEGER NOT NULL DEFAULT 0
);

CREATE INDEX IF NOT EXISTS idx_universe_activity_actor ON universe_activity (actor, timestamp);
CREATE INDEX IF NOT EXISTS idx_universe_activity_kind ON universe_activity (kind, timestamp);
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
