package planet_test

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/xraph/universe/config"
	"github.com/xraph/universe/planet"
	"github.com/xraph/universe/types"
)

var epoch = time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

func testConfig() *config.Config {
	return &config.Config{
		PlanetCreationCost: 1000,
		RewardInterval:     28800,
	}
}

func at(seconds int64) time.Time { return epoch.Add(time.Duration(seconds) * time.Second) }

func TestNew(t *testing.T) {
	p := planet.New("alice", 1000, epoch)
	if p.CompoundLevel != 0 || p.DailyReward != 4 || p.Name != "Earth" {
		t.Errorf("tier: got %+v", p.Tier())
	}
	if p.LockedTokens != 1000 || p.Owner != "alice" || !p.LastClaim.Equal(epoch) {
		t.Errorf("got %+v", p)
	}
	if !strings.HasPrefix(p.ID.String(), "planet_") {
		t.Errorf("id: %s", p.ID)
	}
}

func TestLadder(t *testing.T) {
	want := map[int]struct {
		rate int64
		name string
	}{
		0: {4, "Earth"}, 1: {5, "Moon"}, 2: {6, "Mercury"}, 3: {7, "Venus"}, 4: {8, "Mars"},
		5: {9, "Jupiter"}, 6: {10, "Saturn"}, 7: {11, "Uranus"}, 8: {12, "Neptune"}, 10: {14, "Sun"},
	}
	for level, w := range want {
		tier, err := planet.TierFor(level)
		if err != nil {
			t.Fatalf("level %d: %v", level, err)
		}
		if tier.DailyReward != w.rate || tier.Name != w.name {
			t.Errorf("level %d: got %+v", level, tier)
		}
	}
	if n := len(planet.Ladder()); n != len(want) {
		t.Errorf("ladder size: got %d, want %d", n, len(want))
	}

	for _, level := range []int{-1, 9, 11} {
		if _, err := planet.TierFor(level); !errors.Is(err, planet.ErrInvalidCompoundLevel) {
			t.Errorf("level %d: expected ErrInvalidCompoundLevel, got %v", level, err)
		}
	}
}

func TestRewardGate(t *testing.T) {
	cfg := testConfig()
	p := planet.New("alice", 1000, epoch)

	tests := []struct {
		name    string
		elapsed int64
		want    types.Amount
		wantErr bool
	}{
		{"immediately", 0, 0, true},
		{"one second short", 28799, 0, true},
		{"exactly one interval", 28800, 40, false},
		{"one and a half intervals", 43200, 60, false},
		{"non-integer multiple truncates", 28801, 40, false},
		{"three intervals", 86400, 120, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := planet.Reward(p, cfg, at(tt.elapsed))
			if tt.wantErr {
				if !errors.Is(err, planet.ErrRewardNotReady) {
					t.Fatalf("expected ErrRewardNotReady, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("got %d, want %d", got, tt.want)
			}
		})
	}
}

func TestRewardTruncation(t *testing.T) {
	// 1001 × 4% = 40.04: the fractional 0.04 unit is dropped, not carried.
	cfg := testConfig()
	p := planet.New("alice", 1001, epoch)
	got, err := planet.Reward(p, cfg, at(28800))
	if err != nil {
		t.Fatal(err)
	}
	if got != 40 {
		t.Errorf("got %d, want 40", got)
	}
}

func TestRewardMonotonic(t *testing.T) {
	cfg := testConfig()
	cfg.PlanetCreationCost = types.Tokens(1000)

	var prev types.Amount
	for elapsed := int64(28800); elapsed < 10*28800; elapsed += 1234 {
		p := planet.New("alice", types.Tokens(1000), epoch)
		got, err := planet.Reward(p, cfg, at(elapsed))
		if err != nil {
			t.Fatal(err)
		}
		if got < prev {
			t.Fatalf("elapsed %d: reward %d decreased from %d", elapsed, got, prev)
		}
		prev = got
	}

	small := planet.New("alice", types.Tokens(1000), epoch)
	large := planet.New("alice", types.Tokens(2000), epoch)
	a, _ := planet.Reward(small, cfg, at(28800))
	b, _ := planet.Reward(large, cfg, at(28800))
	if b != 2*a {
		t.Errorf("reward should scale with locked tokens: %d vs %d", a, b)
	}

	moon, err := small.Compounded(0, epoch)
	if err != nil {
		t.Fatal(err)
	}
	c, _ := planet.Reward(moon, cfg, at(28800))
	if c*4 != a*5 {
		t.Errorf("reward should scale with daily rate: %d at 4%%, %d at 5%%", a, c)
	}
}

func TestCompounded(t *testing.T) {
	p := planet.New("alice", 1000, epoch)
	next, err := p.Compounded(40, at(57600))
	if err != nil {
		t.Fatal(err)
	}
	if next.LockedTokens != 1040 || next.CompoundLevel != 1 || next.DailyReward != 5 || next.Name != "Moon" {
		t.Errorf("got %+v", next)
	}
	if !next.LastClaim.Equal(at(57600)) {
		t.Errorf("last claim: %v", next.LastClaim)
	}
	if p.CompoundLevel != 0 || p.LockedTokens != 1000 {
		t.Error("Compounded mutated the receiver")
	}
}

func TestCompoundedSkipsNoTier(t *testing.T) {
	p := planet.New("alice", 1000, epoch)
	for level := 1; level <= 8; level++ {
		var err error
		p, err = p.Compounded(0, epoch)
		if err != nil {
			t.Fatalf("level %d: %v", level, err)
		}
	}
	if p.Name != "Neptune" {
		t.Fatalf("expected Neptune, got %s", p.Name)
	}
	if _, err := p.Compounded(10, epoch); !errors.Is(err, planet.ErrInvalidCompoundLevel) {
		t.Fatalf("expected ErrInvalidCompoundLevel compounding past Neptune, got %v", err)
	}
}

func TestTransferredTo(t *testing.T) {
	p := planet.New("alice", 1040, epoch)
	next := p.TransferredTo("bob", at(10))
	if next.Owner != "bob" || next.LockedTokens != 1040 || !next.LastClaim.Equal(epoch) {
		t.Errorf("got %+v", next)
	}
	if p.Owner != "alice" {
		t.Error("TransferredTo mutated the receiver")
	}
}

func TestMetadataFor(t *testing.T) {
	p := planet.New("alice", 1000, epoch)
	m := planet.MetadataFor(p, "")
	if m.Symbol != "UNIV-PLANET" || m.Name != "Earth" {
		t.Errorf("got %+v", m)
	}
	if m.URI != "https://universe-solana.com/metadata/"+p.ID.String()+".json" {
		t.Errorf("uri: %s", m.URI)
	}

	moon, _ := p.Compounded(0, epoch)
	m = planet.MetadataFor(moon, "https://example.test/meta/")
	if m.Symbol != "UNIV-PLANET-1" || m.URI != "https://example.test/meta/"+p.ID.String()+".json" {
		t.Errorf("got %+v", m)
	}
}
