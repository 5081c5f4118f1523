package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/xraph/grove"
	"github.com/xraph/grove/drivers/mongodriver"

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

// Collection name constants.
const (
	colConfig   = "universe_config"
	colVesting  = "universe_vesting"
	colUsers    = "universe_users"
	colPlanets  = "universe_planets"
	colActivity = "universe_activity"
)

// compile-time interface check
var _ universestore.Store = (*Store)(nil)

// Store implements store.Store using MongoDB via Grove ORM.
type Store struct {
	db  *grove.DB
	mdb *mongodriver.MongoDB
}

// New creates a new MongoDB store backed by Grove ORM.
func New(db *grove.DB) *Store {
	return &Store{
		db:  db,
		mdb: mongodriver.Unwrap(db),
	}
}

// DB returns the underlying grove database for direct access.
func (s *Store) DB() *grove.DB { return s.db }

// Migrate creates indexes for all universe collections.
func (s *Store) Migrate(ctx context.Context) error {
	indexes := migrationIndexes()

	for col, models := range indexes {
		if len(models) == 0 {
			continue
		}
		_, err := s.mdb.Collection(col).Indexes().CreateMany(ctx, models)
		if err != nil {
			return fmt.Errorf("universe/mongo: migrate %s indexes: %w", col, err)
		}
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
	var m configModel
	err := s.mdb.NewFind(&m).
		Filter(bson.M{"_id": configKey}).
		Scan(ctx)
	if err != nil {
		if isNoDocuments(err) {
			return nil, universe.ErrNotInitialized
		}
		return nil, fmt.Errorf("universe/mongo: get config: %w", err)
	}
	return fromConfigModel(&m), nil
}

// ==================== User Store ====================

func (s *Store) GetUser(ctx context.Context, owner types.Account) (*user.User, error) {
	var m userModel
	err := s.mdb.NewFind(&m).
		Filter(bson.M{"_id": owner.String()}).
		Scan(ctx)
	if err != nil {
		if isNoDocuments(err) {
			return nil, universe.ErrUserNotFound
		}
		return nil, fmt.Errorf("universe/mongo: get user: %w", err)
	}
	return fromUserModel(&m)
}

// ==================== Planet Store ====================

func (s *Store) GetPlanet(ctx context.Context, planetID id.PlanetID) (*planet.Planet, error) {
	var m planetModel
	err := s.mdb.NewFind(&m).
		Filter(bson.M{"_id": planetID.String()}).
		Scan(ctx)
	if err != nil {
		if isNoDocuments(err) {
			return nil, universe.ErrPlanetNotFound
		}
		return nil, fmt.Errorf("universe/mongo: get planet: %w", err)
	}
	return fromPlanetModel(&m)
}

func (s *Store) ListPlanets(ctx context.Context, owner types.Account, opts planet.ListOpts) ([]*planet.Planet, error) {
	var models []planetModel

	q := s.mdb.NewFind(&models).
		Filter(bson.M{"owner": owner.String()}).
		Sort(bson.D{{Key: "created_at", Value: 1}, {Key: "_id", Value: 1}})

	if opts.Limit > 0 {
		q = q.Limit(int64(opts.Limit))
	}
	if opts.Offset > 0 {
		q = q.Skip(int64(opts.Offset))
	}

	if err := q.Scan(ctx); err != nil {
		return nil, fmt.Errorf("universe/mongo: list planets: %w", err)
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
	var m vestingModel
	err := s.mdb.NewFind(&m).
		Filter(bson.M{"_id": vestingKey}).
		Scan(ctx)
	if err != nil {
		if isNoDocuments(err) {
			return nil, universe.ErrVestingNotFound
		}
		return nil, fmt.Errorf("universe/mongo: get vesting: %w", err)
	}
	return fromVestingModel(&m), nil
}

// ==================== Activity Store ====================

func (s *Store) IngestBatch(ctx context.Context, events []*activity.Event) error {
	if len(events) == 0 {
		return nil
	}
	for _, e := range events {
		m := toActivityModel(e)
		_, err := s.mdb.NewInsert(m).Exec(ctx)
		if err != nil {
			// Skip duplicates for idempotency
			if mongo.IsDuplicateKeyError(err) {
				continue
			}
			return fmt.Errorf("universe/mongo: ingest event: %w", err)
		}
	}
	return nil
}

func (s *Store) QueryActivity(ctx context.Context, opts activity.QueryOpts) ([]*activity.Event, error) {
	var models []activityModel

	filter := bson.M{}
	if opts.Actor != "" {
		filter["$or"] = bson.A{
			bson.M{"actor": opts.Actor.String()},
			bson.M{"counterparty": opts.Actor.String()},
		}
	}
	if opts.Kind != "" {
		filter["kind"] = string(opts.Kind)
	}
	if !opts.Start.IsZero() || !opts.End.IsZero() {
		ts := bson.M{}
		if !opts.Start.IsZero() {
			ts["$gte"] = opts.Start
		}
		if !opts.End.IsZero() {
			ts["$lte"] = opts.End
		}
		filter["timestamp"] = ts
	}

	q := s.mdb.NewFind(&models).
		Filter(filter).
		Sort(bson.D{{Key: "timestamp", Value: -1}, {Key: "_id", Value: -1}})

	if opts.Limit > 0 {
		q = q.Limit(int64(opts.Limit))
	}
	if opts.Offset > 0 {
		q = q.Skip(int64(opts.Offset))
	}

	if err := q.Scan(ctx); err != nil {
		return nil, fmt.Errorf("universe/mongo: query activity: %w", err)
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
	res, err := s.mdb.NewDelete((*activityModel)(nil)).
		Filter(bson.M{"timestamp": bson.M{"$lt": before}}).
		Exec(ctx)
	if err != nil {
		return 0, fmt.Errorf("universe/mongo: purge activity: %w", err)
	}
	return res.DeletedCount(), nil
}

// ActivityTotals sums event amounts and taxes per kind, for reporting.
func (s *Store) ActivityTotals(ctx context.Context, since time.Time) (map[activity.Kind]ActivityTotal, error) {
	pipeline := bson.A{
		bson.M{"$match": bson.M{"timestamp": bson.M{"$gte": since}}},
		bson.M{
			"$group": bson.M{
				"_id":    "$kind",
				"count":  bson.M{"$sum": 1},
				"amount": bson.M{"$sum": "$amount"},
				"tax":    bson.M{"$sum": "$tax"},
			},
		},
	}

	cursor, err := s.mdb.Collection(colActivity).Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("universe/mongo: aggregate: %w", err)
	}
	defer cursor.Close(ctx)

	var rows []struct {
		Kind   string `bson:"_id"`
		Count  int64  `bson:"count"`
		Amount int64  `bson:"amount"`
		Tax    int64  `bson:"tax"`
	}
	if err := cursor.All(ctx, &rows); err != nil {
		return nil, fmt.Errorf("universe/mongo: aggregate decode: %w", err)
	}

	out := make(map[activity.Kind]ActivityTotal, len(rows))
	for _, r := range rows {
		out[activity.Kind(r.Kind)] = ActivityTotal{
			Count:  r.Count,
			Amount: types.Amount(r.Amount),
			Tax:    types.Amount(r.Tax),
		}
	}
	return out, nil
}

// ActivityTotal is one row of ActivityTotals.
type ActivityTotal struct {
	Count  int64
	Amount types.Amount
	Tax    types.Amount
}

// ==================== Commit ====================

// Commit applies the changeset's writes in one session transaction. A
// duplicate insert fails with ErrAlreadyExists and an update matching
// nothing with ErrNotFound; any failure aborts every write. Transactions
// require a replica set or sharded deployment.
func (s *Store) Commit(ctx context.Context, cs *universestore.Changeset) error {
	raw, err := s.mdb.GroveTx(ctx, 0, false)
	if err != nil {
		return fmt.Errorf("universe/mongo: begin commit: %w", err)
	}
	tx, ok := raw.(*mongodriver.MongoTx)
	if !ok {
		return fmt.Errorf("universe/mongo: unexpected transaction type %T", raw)
	}

	if err := applyChangeset(ctx, tx, cs); err != nil {
		_ = tx.Rollback() //nolint:errcheck // the write error wins
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("universe/mongo: commit: %w", err)
	}
	return nil
}

func applyChangeset(ctx context.Context, tx *mongodriver.MongoTx, cs *universestore.Changeset) error {
	if cs.Config != nil {
		m := toConfigModel(cs.Config.Record)
		if err := write(ctx, tx, cs.Config.Op, "config", m, m.ID); err != nil {
			return err
		}
	}
	if cs.Vesting != nil {
		m := toVestingModel(cs.Vesting.Record)
		if err := write(ctx, tx, cs.Vesting.Op, "vesting", m, m.ID); err != nil {
			return err
		}
	}
	for _, w := range cs.Users {
		m := toUserModel(w.Record)
		if err := write(ctx, tx, w.Op, "user", m, m.Owner); err != nil {
			return err
		}
	}
	for _, w := range cs.Planets {
		m := toPlanetModel(w.Record)
		if err := write(ctx, tx, w.Op, "planet", m, m.ID); err != nil {
			return err
		}
	}
	return nil
}

func write(ctx context.Context, tx *mongodriver.MongoTx, op universestore.Op, what string, model any, key string) error {
	switch op {
	case universestore.OpInsert:
		if _, err := tx.NewInsert(model).Exec(ctx); err != nil {
			if mongo.IsDuplicateKeyError(err) {
				return fmt.Errorf("%w: %s %s", universe.ErrAlreadyExists, what, key)
			}
			return fmt.Errorf("universe/mongo: insert %s: %w", what, err)
		}
		return nil

	case universestore.OpUpdate:
		res, err := tx.NewUpdate(model).
			Filter(bson.M{"_id": key}).
			Exec(ctx)
		if err != nil {
			return fmt.Errorf("universe/mongo: update %s: %w", what, err)
		}
		if res.MatchedCount() == 0 {
			return fmt.Errorf("%w: %s %s", universe.ErrNotFound, what, key)
		}
		return nil

	default:
		return fmt.Errorf("universe/mongo: unknown op %q", op)
	}
}

// isNoDocuments checks if an error wraps mongo.ErrNoDocuments.
func isNoDocuments(err error) bool {
	return errors.Is(err, mongo.ErrNoDocuments)
}

// migrationIndexes returns the index definitions for all universe collections.
func migrationIndexes() map[string][]mongo.IndexModel {
	return map[string][]mongo.IndexModel{
		colConfig:  nil,
		colVesting: nil,
		colUsers: {
			{
				Keys:    bson.D{{Key: "id", Value: 1}},
				Options: options.Index().SetUnique(true),
			},
		},
		colPlanets: {
			{Keys: bson.D{{Key: "owner", Value: 1}, {Key: "created_at", Value: 1}}},
		},
		colActivity: {
			{Keys: bson.D{{Key: "actor", Value: 1}, {Key: "timestamp", Value: -1}}},
			{Keys: bson.D{{Key: "counterparty", Value: 1}, {Key: "timestamp", Value: -1}}},
			{Keys: bson.D{{Key: "kind", Value: 1}, {Key: "timestamp", Value: -1}}},
			{Keys: bson.D{{Key: "timestamp", Value: -1}}},
		},
	}
}
