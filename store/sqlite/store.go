package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/xraph/grove"
	"github.com/xraph/grove/drivers/sqlitedriver"
	_ "github.com/xraph/grove/drivers/sqlitedriver/sqlitemigrate" // registers the sqlite migrate executor
	"github.com/xraph/grove/migrate"

	"github.com/xraph/universe"
	"github.com/xraph/universe/activity"
	"github.com/xraph/universe/config"
	"github.com/xraph/universe/id"
	"github.com/xraph/universe/planet"
	universestore "github.com/xraph/universe/store"
	"github.com/xraph/universe/types"
	"github.com/xraph/universe/user"
	"github.com/xraph/universe/vesting"
)

// compile-time interface check
var _ universestore.Store = (*Store)(nil)

// Store implements store.Store using SQLite via Grove ORM.
type Store struct {
	db  *grove.DB
	sdb *sqlitedriver.SqliteDB
}

// New creates a new SQLite store backed by Grove ORM.
func New(db *grove.DB) *Store {
	return &Store{
		db:  db,
		sdb: sqlitedriver.Unwrap(db),
	}
}

// DB returns the underlying grove database for direct access.
func (s *Store) DB() *grove.DB { return s.db }

// Migrate creates the required tables and indexes using the grove orchestrator.
func (s *Store) Migrate(ctx context.Context) error {
	executor, err := migrate.NewExecutorFor(s.sdb)
	if err != nil {
		return fmt.Errorf("universe/sqlite: create migration executor: %w", err)
	}
	orch := migrate.NewOrchestrator(executor, Migrations)
	if _, err := orch.Migrate(ctx); err != nil {
		return fmt.Errorf("universe/sqlite: migration failed: %w", err)
	}
	return nil
}

// Ping checks database connectivity.
func (s *Store) Ping(ctx context.Context) error {
	return s.db.Ping(ctx)
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// ==================== Config Store ====================

func (s *Store) GetConfig(ctx context.Context) (*config.Config, error) {
	m := new(configModel)
	err := s.sdb.NewSelect(m).
		Where("id = ?", configKey).
		Scan(ctx)
	if err != nil {
		if isNoRows(err) {
			return nil, universe.ErrNotInitialized
		}
		return nil, err
	}
	return fromConfigModel(m)
}

// ==================== User Store ====================

func (s *Store) GetUser(ctx context.Context, owner types.Account) (*user.User, error) {
	m := new(userModel)
	err := s.sdb.NewSelect(m).
		Where("owner = ?", owner.String()).
		Scan(ctx)
	if err != nil {
		if isNoRows(err) {
			return nil, universe.ErrUserNotFound
		}
		return nil, err
	}
	return fromUserModel(m)
}

// ==================== Planet Store ====================

func (s *Store) GetPlanet(ctx context.Context, planetID id.PlanetID) (*planet.Planet, error) {
	m := new(planetModel)
	err := s.sdb.NewSelect(m).
		Where("id = ?", planetID.String()).
		Scan(ctx)
	if err != nil {
		if isNoRows(err) {
			return nil, universe.ErrPlanetNotFound
		}
		return nil, err
	}
	return fromPlanetModel(m)
}

func (s *Store) ListPlanets(ctx context.Context, owner types.Account, opts planet.ListOpts) ([]*planet.Planet, error) {
	var models []planetModel
	q := s.sdb.NewSelect(&models).Where("owner = ?", owner.String())

	if opts.Limit > 0 {
		q = q.Limit(opts.Limit)
	}
	if opts.Offset > 0 {
		q = q.Offset(opts.Offset)
	}
	q = q.OrderExpr("created_at ASC, id ASC")

	if err := q.Scan(ctx); err != nil {
		return nil, err
	}

	result := make([]*planet.Planet, len(models))
	for i := range models {
		p, err := fromPlanetModel(&models[i])
		if err != nil {
			return nil, err
		}
		result[i] = p
	}
	return result, nil
}

// ==================== Vesting Store ====================

func (s *Store) GetVesting(ctx context.Context) (*vesting.Vesting, error) {
	m := new(vestingModel)
	err := s.sdb.NewSelect(m).
		Where("id = ?", vestingKey).
		Scan(ctx)
	if err != nil {
		if isNoRows(err) {
			return nil, universe.ErrVestingNotFound
		}
		return nil, err
	}
	return fromVestingModel(m), nil
}

// ==================== Activity Store ====================

func (s *Store) IngestBatch(ctx context.Context, events []*activity.Event) error {
	if len(events) == 0 {
		return nil
	}
	models := make([]activityModel, len(events))
	for i, e := range events {
		models[i] = *toActivityModel(e)
	}
	_, err := s.sdb.NewInsert(&models).
		OnConflict("(id) DO NOTHING").
		Exec(ctx)
	return err
}

func (s *Store) QueryActivity(ctx context.Context, opts activity.QueryOpts) ([]*activity.Event, error) {
	var models []activityModel
	q := s.sdb.NewSelect(&models)

	if opts.Actor != "" {
		q = q.Where("(actor = ? OR counterparty = ?)", opts.Actor.String(), opts.Actor.String())
	}
	if opts.Kind != "" {
		q = q.Where("kind = ?", string(opts.Kind))
	}
	if !opts.Start.IsZero() {
		q = q.Where("timestamp >= ?", toUnix(opts.Start))
	}
	if !opts.End.IsZero() {
		q = q.Where("timestamp <= ?", toUnix(opts.End))
	}
	if opts.Limit > 0 {
		q = q.Limit(opts.Limit)
	}
	if opts.Offset > 0 {
		q = q.Offset(opts.Offset)
	}
	q = q.OrderExpr("timestamp DESC, id DESC")

	if err := q.Scan(ctx); err != nil {
		return nil, err
	}

	result := make([]*activity.Event, len(models))
	for i := range models {
		evt, err := fromActivityModel(&models[i])
		if err != nil {
			return nil, err
		}
		result[i] = evt
	}
	return result, nil
}

func (s *Store) PurgeActivity(ctx context.Context, before time.Time) (int64, error) {
	res, err := s.sdb.NewDelete((*activityModel)(nil)).
		Where("timestamp < ?", toUnix(before)).
		Exec(ctx)
	if err != nil {
		return 0, err
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return 0, err
	}
	return rows, nil
}

// ==================== Commit ====================

// Commit applies the changeset's writes in one transaction. Inserts of an
// existing key fail with ErrAlreadyExists and updates of a missing key with
// ErrNotFound; any failure rolls back every write.
func (s *Store) Commit(ctx context.Context, cs *universestore.Changeset) error {
	tx, err := s.sdb.BeginTxQuery(ctx, nil)
	if err != nil {
		return fmt.Errorf("universe/sqlite: begin commit: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // no-op after Commit

	if cs.Config != nil {
		if err := write(ctx, tx, cs.Config.Op, "config", toConfigModel(cs.Config.Record)); err != nil {
			return err
		}
	}
	if cs.Vesting != nil {
		if err := write(ctx, tx, cs.Vesting.Op, "vesting", toVestingModel(cs.Vesting.Record)); err != nil {
			return err
		}
	}
	for _, w := range cs.Users {
		if err := write(ctx, tx, w.Op, "user "+w.Record.Owner.String(), toUserModel(w.Record)); err != nil {
			return err
		}
	}
	for _, w := range cs.Planets {
		if err := write(ctx, tx, w.Op, "planet "+w.Record.ID.String(), toPlanetModel(w.Record)); err != nil {
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("universe/sqlite: commit: %w", err)
	}
	return nil
}

func write(ctx context.Context, tx *sqlitedriver.SqliteTx, op universestore.Op, what string, model any) error {
	var (
		res rowsAffecter
		err error
	)
	switch op {
	case universestore.OpInsert:
		res, err = tx.NewInsert(model).OnConflict("DO NOTHING").Exec(ctx)
	case universestore.OpUpdate:
		res, err = tx.NewUpdate(model).WherePK().Exec(ctx)
	default:
		return fmt.Errorf("universe/sqlite: unknown op %q", op)
	}
	if err != nil {
		return fmt.Errorf("universe/sqlite: %s %s: %w", op, what, err)
	}

	rows, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		if op == universestore.OpInsert {
			return fmt.Errorf("%w: %s", universe.ErrAlreadyExists, what)
		}
		return fmt.Errorf("%w: %s", universe.ErrNotFound, what)
	}
	return nil
}

type rowsAffecter interface {
	RowsAffected() (int64, error)
}

// isNoRows checks for the standard sql.ErrNoRows sentinel.
func isNoRows(err error) bool {
	return errors.Is(err, sql.ErrNoRows)
}
