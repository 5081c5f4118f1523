package vesting_test

import (
	"errors"
	"testing"
	"time"

	"github.com/xraph/universe/config"
	"github.com/xraph/universe/types"
	"github.com/xraph/universe/vesting"
)

const year = 31_536_000

var epoch = time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

func at(seconds int64) time.Time { return epoch.Add(time.Duration(seconds) * time.Second) }

func testConfig() *config.Config {
	return &config.Config{
		VestingStartTime:         epoch,
		EcosystemVestingDuration: year,
		TreasuryVestingDuration:  year / 2,
	}
}

func TestParseTrack(t *testing.T) {
	for in, want := range map[string]vesting.Track{"ecosystem": vesting.Ecosystem, " Treasury": vesting.Treasury} {
		got, err := vesting.ParseTrack(in)
		if err != nil || got != want {
			t.Errorf("%q: got %q, %v", in, got, err)
		}
	}
	if _, err := vesting.ParseTrack("team"); !errors.Is(err, vesting.ErrInvalidTrack) {
		t.Errorf("expected ErrInvalidTrack, got %v", err)
	}
}

func TestClaimable(t *testing.T) {
	tests := []struct {
		name    string
		elapsed int64
		want    types.Amount
	}{
		{"before start", -10, 0},
		{"at start", 0, 0},
		{"half", year / 2, 100_000_000},
		{"truncates", 1, 6},
		{"at duration", year, 200_000_000},
		{"past duration is bounded", 3 * year, 200_000_000},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := vesting.Claimable(200_000_000, epoch, year, at(tt.elapsed))
			if err != nil {
				t.Fatal(err)
			}
			if got != tt.want {
				t.Errorf("got %d, want %d", got, tt.want)
			}
		})
	}

	if _, err := vesting.Claimable(1, epoch, 0, epoch); err == nil {
		t.Error("expected error for zero duration")
	}
}

func TestClaimHalfway(t *testing.T) {
	cfg := testConfig()
	v, err := vesting.New(200_000_000, 50_000_000, 10_000_000, epoch)
	if err != nil {
		t.Fatal(err)
	}

	next, paid, err := v.Claim(vesting.Ecosystem, cfg, at(15_768_000))
	if err != nil {
		t.Fatal(err)
	}
	if paid != 100_000_000 || next.Ecosystem.Claimed != 100_000_000 {
		t.Errorf("paid %d, claimed %d", paid, next.Ecosystem.Claimed)
	}
	if next.Treasury.Claimed != 0 {
		t.Error("treasury track changed")
	}
	if !next.LastClaimTime.Equal(at(15_768_000)) {
		t.Errorf("last claim time: %v", next.LastClaimTime)
	}
	if v.Ecosystem.Claimed != 0 {
		t.Error("Claim mutated the receiver")
	}

	if _, _, err := next.Claim(vesting.Ecosystem, cfg, at(15_768_000)); !errors.Is(err, vesting.ErrNoVestedTokens) {
		t.Errorf("second claim at same time: expected ErrNoVestedTokens, got %v", err)
	}
}

func TestClaimMonotonic(t *testing.T) {
	cfg := testConfig()
	v, _ := vesting.New(0, 1_000_003, 0, epoch)

	var total types.Amount
	prev := types.Amount(0)
	for elapsed := int64(1_000_000); elapsed <= year; elapsed += 1_000_000 {
		next, paid, err := v.Claim(vesting.Treasury, cfg, at(elapsed))
		if errors.Is(err, vesting.ErrNoVestedTokens) {
			continue
		}
		if err != nil {
			t.Fatal(err)
		}
		if paid < 0 || next.Treasury.Claimed < prev {
			t.Fatalf("elapsed %d: paid %d claimed %d prev %d", elapsed, paid, next.Treasury.Claimed, prev)
		}
		total += paid
		prev = next.Treasury.Claimed
		v = next
	}
	if total != 1_000_003 || v.Treasury.Claimed != 1_000_003 {
		t.Errorf("total paid %d, claimed %d", total, v.Treasury.Claimed)
	}
}

func TestClaimAfterDuration(t *testing.T) {
	cfg := testConfig()
	v, _ := vesting.New(200_000_000, 0, 0, epoch)

	next, paid, err := v.Claim(vesting.Ecosystem, cfg, at(year/4))
	if err != nil || paid != 50_000_000 {
		t.Fatalf("quarter: paid %d, %v", paid, err)
	}

	// Far past the duration only the rest of the allocation is released.
	next, paid, err = next.Claim(vesting.Ecosystem, cfg, at(5*year))
	if err != nil {
		t.Fatal(err)
	}
	if paid != 150_000_000 || next.Ecosystem.Claimed != next.Ecosystem.Total {
		t.Errorf("paid %d, claimed %d of %d", paid, next.Ecosystem.Claimed, next.Ecosystem.Total)
	}

	if _, _, err := next.Claim(vesting.Ecosystem, cfg, at(10*year)); !errors.Is(err, vesting.ErrNoVestedTokens) {
		t.Errorf("expected ErrNoVestedTokens once fully claimed, got %v", err)
	}
}

func TestNewRejectsNegative(t *testing.T) {
	if _, err := vesting.New(-1, 0, 0, epoch); !errors.Is(err, vesting.ErrInvalidAllocation) {
		t.Errorf("expected ErrInvalidAllocation, got %v", err)
	}
}
