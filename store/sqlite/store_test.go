package sqlite_test

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/xraph/grove"
	"github.com/xraph/grove/drivers/sqlitedriver"

	"github.com/xraph/universe"
	"github.com/xraph/universe/activity"
	"github.com/xraph/universe/config"
	"github.com/xraph/universe/id"
	"github.com/xraph/universe/planet"
	"github.com/xraph/universe/store"
	"github.com/xraph/universe/store/sqlite"
	"github.com/xraph/universe/types"
	"github.com/xraph/universe/user"
	"github.com/xraph/universe/vesting"
)

var epoch = time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

func openStore(t *testing.T) *sqlite.Store {
	t.Helper()
	ctx := context.Background()

	sdb := sqlitedriver.New()
	if err := sdb.Open(ctx, filepath.Join(t.TempDir(), "universe.db")); err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	db, err := grove.Open(sdb)
	if err != nil {
		t.Fatalf("open grove: %v", err)
	}
	s := sqlite.New(db)
	t.Cleanup(func() { _ = s.Close() })

	if err := s.Migrate(ctx); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	// A second run finds every migration applied.
	if err := s.Migrate(ctx); err != nil {
		t.Fatalf("re-migrate: %v", err)
	}
	return s
}

func TestSingletonsRoundTrip(t *testing.T) {
	ctx := context.Background()
	s := openStore(t)

	if _, err := s.GetConfig(ctx); !errors.Is(err, universe.ErrNotInitialized) {
		t.Fatalf("empty config: got %v", err)
	}
	if _, err := s.GetVesting(ctx); !errors.Is(err, universe.ErrVestingNotFound) {
		t.Fatalf("empty vesting: got %v", err)
	}

	cfg, err := config.New("admin", config.InitParams{
		TokenMint: "UNIV",
		Wallets: config.Wallets{
			RewardPool:   "reward",
			Team:         "team",
			Marketing:    "marketing",
			Liquidity:    "liquidity",
			VestingVault: "vault",
			BurnReserve:  "burn",
		},
	}, epoch)
	if err != nil {
		t.Fatal(err)
	}
	v, err := vesting.New(150_000_000, 250_000_000, 5_000, epoch)
	if err != nil {
		t.Fatal(err)
	}
	if err := s.Commit(ctx, store.NewChangeset().InsertConfig(cfg).InsertVesting(v)); err != nil {
		t.Fatalf("insert singletons: %v", err)
	}

	gotCfg, err := s.GetConfig(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if gotCfg.Admin != "admin" || gotCfg.Wallets != cfg.Wallets || gotCfg.TotalSupply != cfg.TotalSupply {
		t.Errorf("config: got %+v", gotCfg)
	}
	if !gotCfg.VestingStartTime.Equal(epoch) || !gotCfg.CreatedAt.Equal(cfg.CreatedAt) {
		t.Errorf("config times: start %v created %v", gotCfg.VestingStartTime, gotCfg.CreatedAt)
	}

	gotCfg.RewardRate = 7
	gotCfg.UpdatedAt = epoch.Add(time.Hour)
	if err := s.Commit(ctx, store.NewChangeset().UpdateConfig(gotCfg)); err != nil {
		t.Fatalf("update config: %v", err)
	}
	if again, _ := s.GetConfig(ctx); again == nil || again.RewardRate != 7 {
		t.Errorf("updated config: got %+v", again)
	}

	gotV, err := s.GetVesting(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if gotV.Treasury.Total != 250_000_000 || gotV.BurnReserve != 5_000 || !gotV.LastClaimTime.Equal(epoch) {
		t.Errorf("vesting: got %+v", gotV)
	}

	if err := s.Commit(ctx, store.NewChangeset().InsertConfig(cfg)); !errors.Is(err, universe.ErrAlreadyExists) {
		t.Errorf("second config insert: expected ErrAlreadyExists, got %v", err)
	}
}

func TestUsersAndPlanetsRoundTrip(t *testing.T) {
	ctx := context.Background()
	s := openStore(t)

	cs := store.NewChangeset()
	var planets []*planet.Planet
	for i := range 3 {
		p := planet.New("alice", 1000, epoch.Add(time.Duration(i)*time.Second))
		planets = append(planets, p)
		cs.InsertPlanet(p)
	}
	u := user.New("alice", epoch)
	for _, p := range planets {
		u.Planets = append(u.Planets, p.ID)
	}
	cs.InsertUser(u).InsertPlanet(planet.New("bob", 1000, epoch))
	if err := s.Commit(ctx, cs); err != nil {
		t.Fatalf("commit: %v", err)
	}

	gotU, err := s.GetUser(ctx, "alice")
	if err != nil {
		t.Fatal(err)
	}
	if gotU.ID.String() != u.ID.String() || len(gotU.Planets) != 3 || gotU.Planets[2].String() != planets[2].ID.String() {
		t.Errorf("user: got %+v", gotU)
	}
	if _, err := s.GetUser(ctx, "carol"); !errors.Is(err, universe.ErrUserNotFound) {
		t.Errorf("missing user: got %v", err)
	}

	gotP, err := s.GetPlanet(ctx, planets[0].ID)
	if err != nil {
		t.Fatal(err)
	}
	if gotP.Owner != "alice" || gotP.LockedTokens != 1000 || !gotP.LastClaim.Equal(epoch) {
		t.Errorf("planet: got %+v", gotP)
	}
	if _, err := s.GetPlanet(ctx, id.NewPlanetID()); !errors.Is(err, universe.ErrPlanetNotFound) {
		t.Errorf("missing planet: got %v", err)
	}

	all, err := s.ListPlanets(ctx, "alice", planet.ListOpts{})
	if err != nil {
		t.Fatal(err)
	}
	if len(all) != 3 || all[0].ID.String() != planets[0].ID.String() || all[2].ID.String() != planets[2].ID.String() {
		t.Fatalf("list: got %d planets", len(all))
	}
	paged, _ := s.ListPlanets(ctx, "alice", planet.ListOpts{Offset: 1, Limit: 1})
	if len(paged) != 1 || paged[0].ID.String() != planets[1].ID.String() {
		t.Errorf("paging: got %v", paged)
	}

	gotP.Owner = "bob"
	gotP.LockedTokens = types.Amount(1040)
	if err := s.Commit(ctx, store.NewChangeset().UpdatePlanet(gotP)); err != nil {
		t.Fatalf("update planet: %v", err)
	}
	bobs, _ := s.ListPlanets(ctx, "bob", planet.ListOpts{})
	if len(bobs) != 2 {
		t.Errorf("bob planets after update: got %d", len(bobs))
	}
}

func TestFailedChangesetRollsBack(t *testing.T) {
	ctx := context.Background()
	s := openStore(t)

	existing := user.New("alice", epoch)
	if err := s.Commit(ctx, store.NewChangeset().InsertUser(existing)); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name    string
		cs      *store.Changeset
		wantErr error
	}{
		{
			name:    "update of missing planet",
			cs:      store.NewChangeset().InsertUser(user.New("carol", epoch)).UpdatePlanet(planet.New("carol", 1, epoch)),
			wantErr: universe.ErrNotFound,
		},
		{
			name:    "duplicate user after a valid write",
			cs:      store.NewChangeset().InsertUser(user.New("carol", epoch)).InsertUser(existing),
			wantErr: universe.ErrAlreadyExists,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := s.Commit(ctx, tt.cs); !errors.Is(err, tt.wantErr) {
				t.Fatalf("expected %v, got %v", tt.wantErr, err)
			}
			if _, err := s.GetUser(ctx, "carol"); !errors.Is(err, universe.ErrUserNotFound) {
				t.Errorf("user written by a rejected changeset: %v", err)
			}
		})
	}

	// The earlier record is untouched.
	if got, err := s.GetUser(ctx, "alice"); err != nil || got.ID.String() != existing.ID.String() {
		t.Errorf("alice after rollbacks: %+v, %v", got, err)
	}
}

func TestActivityRoundTrip(t *testing.T) {
	ctx := context.Background()
	s := openStore(t)

	pid := id.NewPlanetID()
	events := []*activity.Event{
		{ID: id.NewActivityID(), Kind: activity.KindCreatePlanet, Actor: "alice", PlanetID: pid, Amount: 1000, Timestamp: epoch},
		{ID: id.NewActivityID(), Kind: activity.KindTransferPlanet, Actor: "bob", Counterparty: "alice", PlanetID: pid, Tax: 52, Timestamp: epoch.Add(time.Hour), Details: map[string]string{"team": "20"}},
		{ID: id.NewActivityID(), Kind: activity.KindCreatePlanet, Actor: "bob", Timestamp: epoch.Add(2 * time.Hour)},
	}
	if err := s.IngestBatch(ctx, events); err != nil {
		t.Fatal(err)
	}
	// Replayed events are skipped.
	if err := s.IngestBatch(ctx, events[:1]); err != nil {
		t.Fatalf("re-ingest: %v", err)
	}

	got, err := s.QueryActivity(ctx, activity.QueryOpts{Actor: "alice"})
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 2 || got[0].Kind != activity.KindTransferPlanet {
		t.Fatalf("actor filter: got %d events", len(got))
	}
	if got[0].PlanetID.String() != pid.String() || got[0].Tax != 52 || got[0].Details["team"] != "20" || !got[0].Timestamp.Equal(epoch.Add(time.Hour)) {
		t.Errorf("event fields: got %+v", got[0])
	}

	ranged, _ := s.QueryActivity(ctx, activity.QueryOpts{Start: epoch.Add(30 * time.Minute), End: epoch.Add(90 * time.Minute)})
	if len(ranged) != 1 || ranged[0].ID.String() != events[1].ID.String() {
		t.Errorf("time range: got %d events", len(ranged))
	}

	n, err := s.PurgeActivity(ctx, epoch.Add(90*time.Minute))
	if err != nil {
		t.Fatal(err)
	}
	if n != 2 {
		t.Errorf("purged %d, want 2", n)
	}
}
