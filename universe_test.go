package universe_test

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/xraph/universe"
	"github.com/xraph/universe/activity"
	"github.com/xraph/universe/config"
	"github.com/xraph/universe/planet"
	"github.com/xraph/universe/store/memory"
	"github.com/xraph/universe/tax"
	"github.com/xraph/universe/token"
	tokenmem "github.com/xraph/universe/token/memory"
	"github.com/xraph/universe/types"
	"github.com/xraph/universe/vesting"
)

const (
	mint  types.Account = "univ-mint"
	admin types.Account = "admin"
	alice types.Account = "alice"
	bob   types.Account = "bob"
	seed                = "authority"
)

var (
	epoch   = time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	wallets = config.Wallets{
		RewardPool:   "reward-pool",
		Team:         "team",
		Marketing:    "marketing",
		Liquidity:    "liquidity",
		VestingVault: "vesting-vault",
		BurnReserve:  "burn-reserve",
	}
)

type clock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *clock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *clock) Advance(seconds int64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(time.Duration(seconds) * time.Second)
}

type harness struct {
	t      *testing.T
	ctx    context.Context
	engine *universe.Engine
	store  *memory.Store
	tokens *tokenmem.Ledger
	clock  *clock
}

func ptr[T any](v T) *T { return &v }

// newHarness builds an initialized engine with a 1000 base unit planet
// cost, alice and bob registered, and every wallet funded.
func newHarness(t *testing.T, opts ...universe.Option) *harness {
	t.Helper()

	tokens := tokenmem.New(mint)
	tokens.Open(wallets.RewardPool, token.Derived(seed))
	tokens.Open(wallets.VestingVault, token.Derived(seed))
	tokens.Open(wallets.BurnReserve, token.Signer(admin))
	for _, acct := range []types.Account{wallets.Team, wallets.Marketing, wallets.Liquidity, admin, alice, bob} {
		tokens.Open(acct, token.Signer(acct))
	}
	fund := map[types.Account]types.Amount{
		wallets.RewardPool:   1_000_000,
		wallets.VestingVault: 400_000_000,
		wallets.BurnReserve:  5_000,
		alice:                10_000,
		bob:                  10_000,
	}
	for acct, amt := range fund {
		if err := tokens.Fund(acct, amt); err != nil {
			t.Fatal(err)
		}
	}

	h := &harness{
		t:      t,
		ctx:    context.Background(),
		store:  memory.New(),
		tokens: tokens,
		clock:  &clock{now: epoch},
	}
	opts = append([]universe.Option{
		universe.WithLogger(slog.New(slog.DiscardHandler)),
		universe.WithClock(h.clock.Now),
	}, opts...)
	h.engine = universe.New(h.store, tokens, opts...)

	_, err := h.engine.Initialize(h.ctx, admin, config.InitParams{
		TokenMint: mint,
		Wallets:   wallets,
		Overrides: &config.Overrides{PlanetCreationCost: ptr(types.Amount(1000))},
	})
	if err != nil {
		t.Fatalf("initialize: %v", err)
	}
	for _, owner := range []types.Account{alice, bob} {
		if _, err := h.engine.InitializeUser(h.ctx, owner); err != nil {
			t.Fatalf("initialize user %s: %v", owner, err)
		}
	}
	return h
}

func (h *harness) createPlanet(owner types.Account) *planet.Planet {
	h.t.Helper()
	p, err := h.engine.CreatePlanet(h.ctx, owner)
	if err != nil {
		h.t.Fatalf("create planet: %v", err)
	}
	return p
}

func (h *harness) balance(acct types.Account) types.Amount {
	return h.tokens.Balance(acct)
}

func TestInitialize(t *testing.T) {
	h := newHarness(t)

	cfg, err := h.engine.GetConfig(h.ctx)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Admin != admin || cfg.PlanetCreationCost != 1000 || cfg.RewardInterval != 28_800 {
		t.Errorf("unexpected config: %+v", cfg)
	}
	if !cfg.VestingStartTime.Equal(epoch) {
		t.Errorf("vesting start = %v, want %v", cfg.VestingStartTime, epoch)
	}

	_, err = h.engine.Initialize(h.ctx, bob, config.InitParams{TokenMint: mint, Wallets: wallets})
	if !errors.Is(err, universe.ErrAlreadyInitialized) {
		t.Errorf("second initialize: expected ErrAlreadyInitialized, got %v", err)
	}
}

func TestOperationsRequireConfig(t *testing.T) {
	e := universe.New(memory.New(), tokenmem.New(mint), universe.WithLogger(slog.New(slog.DiscardHandler)))
	ctx := context.Background()

	if _, err := e.InitializeUser(ctx, alice); err != nil {
		t.Fatalf("initialize user: %v", err)
	}
	if _, err := e.CreatePlanet(ctx, alice); !errors.Is(err, universe.ErrNotInitialized) {
		t.Errorf("expected ErrNotInitialized, got %v", err)
	}
}

func TestInitializeUserTwice(t *testing.T) {
	h := newHarness(t)

	if _, err := h.engine.InitializeUser(h.ctx, alice); !errors.Is(err, universe.ErrUserExists) {
		t.Errorf("expected ErrUserExists, got %v", err)
	}
}

func TestCreatePlanet(t *testing.T) {
	h := newHarness(t)

	p := h.createPlanet(alice)
	if p.CompoundLevel != 0 || p.DailyReward != 4 || p.Name != "Earth" || p.LockedTokens != 1000 {
		t.Errorf("unexpected planet: %+v", p)
	}
	if !p.LastClaim.Equal(epoch) {
		t.Errorf("last claim = %v, want %v", p.LastClaim, epoch)
	}
	if got := h.balance(alice); got != 9_000 {
		t.Errorf("alice balance = %d, want 9000", got)
	}
	if got := h.balance(wallets.RewardPool); got != 1_001_000 {
		t.Errorf("reward pool = %d, want 1001000", got)
	}

	u, err := h.engine.GetUser(h.ctx, alice)
	if err != nil {
		t.Fatal(err)
	}
	if !u.Has(p.ID) || u.Count() != 1 {
		t.Errorf("user planets = %v", u.Planets)
	}
}

func TestCreatePlanetCap(t *testing.T) {
	h := newHarness(t)

	if _, err := h.engine.UpdateConfig(h.ctx, admin, config.Overrides{MaxPlanetsPerUser: ptr(2)}); err != nil {
		t.Fatal(err)
	}
	h.createPlanet(alice)
	h.createPlanet(alice)

	before := h.balance(alice)
	if _, err := h.engine.CreatePlanet(h.ctx, alice); !errors.Is(err, universe.ErrMaxPlanetsReached) {
		t.Fatalf("expected ErrMaxPlanetsReached, got %v", err)
	}
	if got := h.balance(alice); got != before {
		t.Errorf("rejected creation moved tokens: %d -> %d", before, got)
	}
}

func TestCreatePlanetInsufficientFunds(t *testing.T) {
	h := newHarness(t)

	if _, err := h.engine.UpdateConfig(h.ctx, admin, config.Overrides{
		PlanetCreationCost: ptr(types.Amount(20_000)),
	}); err != nil {
		t.Fatal(err)
	}

	_, err := h.engine.CreatePlanet(h.ctx, alice)
	if !errors.Is(err, universe.ErrInsufficientFunds) {
		t.Fatalf("expected ErrInsufficientFunds, got %v", err)
	}
	u, _ := h.engine.GetUser(h.ctx, alice)
	if u.Count() != 0 {
		t.Errorf("user gained a planet from a failed creation: %v", u.Planets)
	}
	planets, _ := h.engine.ListPlanets(h.ctx, alice, planet.ListOpts{})
	if len(planets) != 0 {
		t.Errorf("planet persisted by a failed creation")
	}
}

func TestClaimAndCompoundScenario(t *testing.T) {
	h := newHarness(t)
	p := h.createPlanet(alice)

	h.clock.Advance(28_800)
	claimed, reward, err := h.engine.ClaimRewards(h.ctx, alice, p.ID)
	if err != nil {
		t.Fatalf("claim: %v", err)
	}
	if reward != 40 {
		t.Errorf("reward = %d, want 40", reward)
	}
	if want := epoch.Add(28_800 * time.Second); !claimed.LastClaim.Equal(want) {
		t.Errorf("last claim = %v, want %v", claimed.LastClaim, want)
	}
	if got := h.balance(alice); got != 9_040 {
		t.Errorf("alice balance = %d, want 9040", got)
	}

	h.clock.Advance(28_800)
	compounded, reward, err := h.engine.CompoundRewards(h.ctx, alice, p.ID)
	if err != nil {
		t.Fatalf("compound: %v", err)
	}
	if reward != 40 || compounded.LockedTokens != 1_040 {
		t.Errorf("reward %d, locked %d; want 40, 1040", reward, compounded.LockedTokens)
	}
	if compounded.CompoundLevel != 1 || compounded.DailyReward != 5 || compounded.Name != "Moon" {
		t.Errorf("unexpected tier: %+v", compounded)
	}
	if got := h.balance(alice); got != 9_040 {
		t.Errorf("compound moved tokens: alice balance = %d", got)
	}
}

func TestRewardNotReadyBoundary(t *testing.T) {
	tests := []struct {
		name    string
		elapsed int64
		wantErr bool
	}{
		{"immediately", 0, true},
		{"one second early", 28_799, true},
		{"exactly one interval", 28_800, false},
		{"one and a half intervals", 43_200, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newHarness(t)
			p := h.createPlanet(alice)
			h.clock.Advance(tt.elapsed)

			_, _, err := h.engine.ClaimRewards(h.ctx, alice, p.ID)
			if got := errors.Is(err, universe.ErrRewardNotReady); got != tt.wantErr {
				t.Errorf("ErrRewardNotReady = %v, want %v (err %v)", got, tt.wantErr, err)
			}
			if !tt.wantErr && err != nil {
				t.Errorf("unexpected error: %v", err)
			}

			_, _, err = h.engine.CompoundRewards(h.ctx, alice, p.ID)
			if tt.wantErr && !errors.Is(err, universe.ErrRewardNotReady) {
				t.Errorf("compound: expected ErrRewardNotReady, got %v", err)
			}
		})
	}
}

func TestClaimTruncates(t *testing.T) {
	h := newHarness(t)
	p := h.createPlanet(alice)

	// 1000 × 4 × 28801 / 2880000 = 40.00138..., truncated.
	h.clock.Advance(28_801)
	_, reward, err := h.engine.ClaimRewards(h.ctx, alice, p.ID)
	if err != nil {
		t.Fatal(err)
	}
	if reward != 40 {
		t.Errorf("reward = %d, want 40", reward)
	}

	pending, err := h.engine.PendingReward(h.ctx, p.ID)
	if err != nil {
		t.Fatal(err)
	}
	if pending.Accrued != 0 || pending.Ready {
		t.Errorf("pending right after a claim: %+v", pending)
	}
}

func TestClaimByNonOwner(t *testing.T) {
	h := newHarness(t)
	p := h.createPlanet(alice)
	h.clock.Advance(28_800)

	if _, _, err := h.engine.ClaimRewards(h.ctx, bob, p.ID); !errors.Is(err, universe.ErrNotOwner) {
		t.Errorf("expected ErrNotOwner, got %v", err)
	}
}

func TestClaimPropagatesLedgerFailure(t *testing.T) {
	h := newHarness(t)
	p := h.createPlanet(alice)

	// Drain the pool so the payout cannot be covered.
	pool := h.balance(wallets.RewardPool)
	if err := h.tokens.Transfer(h.ctx, wallets.RewardPool, bob, token.Derived(seed), pool); err != nil {
		t.Fatal(err)
	}

	h.clock.Advance(28_800)
	_, _, err := h.engine.ClaimRewards(h.ctx, alice, p.ID)
	if !errors.Is(err, token.ErrInsufficientFunds) {
		t.Fatalf("expected ErrInsufficientFunds, got %v", err)
	}

	stored, _ := h.engine.GetPlanet(h.ctx, p.ID)
	if !stored.LastClaim.Equal(p.LastClaim) {
		t.Errorf("last claim advanced by a failed claim: %v", stored.LastClaim)
	}
}

func TestCompoundLadderGap(t *testing.T) {
	h := newHarness(t)
	p := h.createPlanet(alice)

	for level := 1; level <= 8; level++ {
		h.clock.Advance(28_800)
		next, _, err := h.engine.CompoundRewards(h.ctx, alice, p.ID)
		if err != nil {
			t.Fatalf("compound to %d: %v", level, err)
		}
		if next.CompoundLevel != level {
			t.Fatalf("level = %d, want %d", next.CompoundLevel, level)
		}
	}

	before, _ := h.engine.GetPlanet(h.ctx, p.ID)
	h.clock.Advance(28_800)
	if _, _, err := h.engine.CompoundRewards(h.ctx, alice, p.ID); !errors.Is(err, universe.ErrInvalidCompoundLevel) {
		t.Fatalf("compound to 9: expected ErrInvalidCompoundLevel, got %v", err)
	}

	after, _ := h.engine.GetPlanet(h.ctx, p.ID)
	if after.CompoundLevel != 8 || after.Name != "Neptune" || after.LockedTokens != before.LockedTokens {
		t.Errorf("failed compound changed the planet: %+v", after)
	}
}

func TestTransferPlanetScenario(t *testing.T) {
	h := newHarness(t)
	p := h.createPlanet(alice)
	h.clock.Advance(28_800)
	if _, _, err := h.engine.CompoundRewards(h.ctx, alice, p.ID); err != nil {
		t.Fatal(err)
	}

	team, pool, seller := h.balance(wallets.Team), h.balance(wallets.RewardPool), h.balance(alice)

	moved, charged, err := h.engine.TransferPlanet(h.ctx, alice, p.ID, bob)
	if err != nil {
		t.Fatalf("transfer planet: %v", err)
	}
	want := tax.NFTBreakdown{Locked: 1_040, Total: 52, Team: 20, Reward: 32}
	if charged != want {
		t.Errorf("charged = %+v, want %+v", charged, want)
	}
	if moved.Owner != bob || moved.LockedTokens != 1_040 {
		t.Errorf("unexpected planet after transfer: %+v", moved)
	}

	if got := h.balance(wallets.Team) - team; got != 20 {
		t.Errorf("team received %d, want 20", got)
	}
	if got := h.balance(wallets.RewardPool) - pool; got != 32 {
		t.Errorf("reward pool received %d, want 32", got)
	}
	if got := seller - h.balance(alice); got != 52 {
		t.Errorf("seller paid %d, want 52", got)
	}

	from, _ := h.engine.GetUser(h.ctx, alice)
	to, _ := h.engine.GetUser(h.ctx, bob)
	if from.Has(p.ID) || !to.Has(p.ID) {
		t.Errorf("registries not updated: alice %v, bob %v", from.Planets, to.Planets)
	}
}

func TestTransferPlanetRewardLegShortfall(t *testing.T) {
	h := newHarness(t)
	p := h.createPlanet(alice)
	h.clock.Advance(28_800)
	if _, _, err := h.engine.CompoundRewards(h.ctx, alice, p.ID); err != nil {
		t.Fatal(err)
	}

	// 25 covers the 20 team leg but not the 32 reward leg.
	if err := h.tokens.Transfer(h.ctx, alice, bob, token.Signer(alice), h.balance(alice)-25); err != nil {
		t.Fatal(err)
	}
	team, pool, buyer := h.balance(wallets.Team), h.balance(wallets.RewardPool), h.balance(bob)

	_, _, err := h.engine.TransferPlanet(h.ctx, alice, p.ID, bob)
	if !errors.Is(err, universe.ErrInsufficientFunds) {
		t.Fatalf("expected ErrInsufficientFunds, got %v", err)
	}

	if got := h.balance(wallets.Team); got != team {
		t.Errorf("team balance = %d, want %d", got, team)
	}
	if got := h.balance(wallets.RewardPool); got != pool {
		t.Errorf("reward pool balance = %d, want %d", got, pool)
	}
	if got := h.balance(alice); got != 25 {
		t.Errorf("seller balance = %d, want 25", got)
	}
	if got := h.balance(bob); got != buyer {
		t.Errorf("buyer balance = %d, want %d", got, buyer)
	}

	stored, _ := h.engine.GetPlanet(h.ctx, p.ID)
	if stored.Owner != alice || stored.LockedTokens != 1_040 {
		t.Errorf("planet changed by a failed transfer: %+v", stored)
	}
	from, _ := h.engine.GetUser(h.ctx, alice)
	to, _ := h.engine.GetUser(h.ctx, bob)
	if !from.Has(p.ID) || to.Has(p.ID) {
		t.Errorf("registries changed by a failed transfer: alice %v, bob %v", from.Planets, to.Planets)
	}
}

func TestTransferPlanetRejections(t *testing.T) {
	h := newHarness(t)
	p := h.createPlanet(alice)

	if _, _, err := h.engine.TransferPlanet(h.ctx, bob, p.ID, alice); !errors.Is(err, universe.ErrNotOwner) {
		t.Errorf("non-owner: expected ErrNotOwner, got %v", err)
	}
	if _, _, err := h.engine.TransferPlanet(h.ctx, alice, p.ID, alice); !errors.Is(err, universe.ErrInvalidInput) {
		t.Errorf("self transfer: expected ErrInvalidInput, got %v", err)
	}
	if _, _, err := h.engine.TransferPlanet(h.ctx, alice, p.ID, "carol"); !errors.Is(err, universe.ErrUserNotFound) {
		t.Errorf("unknown buyer: expected ErrUserNotFound, got %v", err)
	}

	if _, err := h.engine.UpdateConfig(h.ctx, admin, config.Overrides{MaxPlanetsPerUser: ptr(1)}); err != nil {
		t.Fatal(err)
	}
	h.createPlanet(bob)
	if _, _, err := h.engine.TransferPlanet(h.ctx, alice, p.ID, bob); !errors.Is(err, universe.ErrMaxPlanetsReached) {
		t.Errorf("full buyer: expected ErrMaxPlanetsReached, got %v", err)
	}

	stored, _ := h.engine.GetPlanet(h.ctx, p.ID)
	if stored.Owner != alice {
		t.Errorf("owner changed by rejected transfers: %s", stored.Owner)
	}
}

func TestTransferWithTax(t *testing.T) {
	h := newHarness(t)

	charged, err := h.engine.TransferWithTax(h.ctx, alice, bob, 1_000)
	if err != nil {
		t.Fatal(err)
	}
	if charged.Total != 30 || charged.Liquidity != 10 || charged.Reward != 20 || charged.Net != 970 {
		t.Errorf("unexpected breakdown: %+v", charged)
	}
	if got := h.balance(bob); got != 10_970 {
		t.Errorf("bob balance = %d, want 10970", got)
	}
	if got := h.balance(wallets.Liquidity); got != 10 {
		t.Errorf("liquidity = %d, want 10", got)
	}
	if got := h.balance(alice); got != 9_000 {
		t.Errorf("alice balance = %d, want 9000", got)
	}

	moves := h.tokens.Movements()
	legs := moves[len(moves)-3:]
	wantTo := []types.Account{wallets.Liquidity, wallets.RewardPool, bob}
	for i, m := range legs {
		if m.To != wantTo[i] {
			t.Errorf("leg %d went to %s, want %s", i, m.To, wantTo[i])
		}
	}
}

func TestTransferWithTaxSlackStaysWithSender(t *testing.T) {
	h := newHarness(t)

	// 3% of 70 is 2, while 1% and 2% truncate to 0 and 1.
	charged, err := h.engine.TransferWithTax(h.ctx, alice, bob, 70)
	if err != nil {
		t.Fatal(err)
	}
	if charged.Total != 2 || charged.Liquidity != 0 || charged.Reward != 1 || charged.Net != 68 {
		t.Fatalf("unexpected breakdown: %+v", charged)
	}
	if got := h.balance(alice); got != 10_000-69 {
		t.Errorf("alice balance = %d, want %d", got, 10_000-69)
	}
	if got := h.balance(bob); got != 10_068 {
		t.Errorf("bob balance = %d, want 10068", got)
	}
}

func TestTransferWithTaxAtomic(t *testing.T) {
	h := newHarness(t)

	before := h.balance(alice)
	_, err := h.engine.TransferWithTax(h.ctx, alice, "nowhere", 1_000)
	if !errors.Is(err, token.ErrAccountNotFound) {
		t.Fatalf("expected ErrAccountNotFound, got %v", err)
	}
	if h.balance(alice) != before || h.balance(wallets.Liquidity) != 0 {
		t.Errorf("partial legs survived a failed transfer")
	}
}

func TestVestingScenario(t *testing.T) {
	h := newHarness(t)

	if _, err := h.engine.SetupVesting(h.ctx, admin, 200_000_000, 100_000_000, 50_000_000); err != nil {
		t.Fatal(err)
	}
	if _, err := h.engine.SetupVesting(h.ctx, admin, 1, 1, 1); !errors.Is(err, universe.ErrVestingExists) {
		t.Errorf("second setup: expected ErrVestingExists, got %v", err)
	}

	h.clock.Advance(15_768_000)
	amount, err := h.engine.ClaimVestedTokens(h.ctx, admin, vesting.Ecosystem, wallets.Marketing)
	if err != nil {
		t.Fatal(err)
	}
	if amount != 100_000_000 {
		t.Errorf("claimed %d, want 100000000", amount)
	}
	if got := h.balance(wallets.Marketing); got != 100_000_000 {
		t.Errorf("recipient balance = %d", got)
	}

	v, _ := h.engine.GetVesting(h.ctx)
	if v.Ecosystem.Claimed != 100_000_000 {
		t.Errorf("ecosystem claimed = %d", v.Ecosystem.Claimed)
	}

	if _, err := h.engine.ClaimVestedTokens(h.ctx, admin, vesting.Ecosystem, wallets.Marketing); !errors.Is(err, universe.ErrNoVestedTokens) {
		t.Errorf("repeat claim: expected ErrNoVestedTokens, got %v", err)
	}
}

func TestVestingPastDuration(t *testing.T) {
	h := newHarness(t)
	if _, err := h.engine.SetupVesting(h.ctx, admin, 200_000_000, 100_000_000, 0); err != nil {
		t.Fatal(err)
	}

	h.clock.Advance(10_000_000)
	first, err := h.engine.ClaimVestedTokens(h.ctx, admin, vesting.Treasury, "")
	if err != nil {
		t.Fatal(err)
	}

	h.clock.Advance(3 * 31_536_000)
	second, err := h.engine.ClaimVestedTokens(h.ctx, admin, vesting.Treasury, "")
	if err != nil {
		t.Fatal(err)
	}
	if first+second != 100_000_000 {
		t.Errorf("total released %d, want the full allocation", first+second)
	}
	if got := h.balance(admin); got != 100_000_000 {
		t.Errorf("admin received %d", got)
	}

	h.clock.Advance(31_536_000)
	if _, err := h.engine.ClaimVestedTokens(h.ctx, admin, vesting.Treasury, ""); !errors.Is(err, universe.ErrNoVestedTokens) {
		t.Errorf("claim after full release: expected ErrNoVestedTokens, got %v", err)
	}
	remaining, err := h.engine.VestedRemaining(h.ctx, vesting.Treasury)
	if err != nil || remaining != 0 {
		t.Errorf("remaining = %d, %v", remaining, err)
	}
}

func TestBurnTokens(t *testing.T) {
	h := newHarness(t)
	supply := h.tokens.Supply()

	if err := h.engine.BurnTokens(h.ctx, admin, 2_000); err != nil {
		t.Fatal(err)
	}
	if got := h.balance(wallets.BurnReserve); got != 3_000 {
		t.Errorf("burn reserve = %d, want 3000", got)
	}
	if got := supply - h.tokens.Supply(); got != 2_000 {
		t.Errorf("supply fell by %d, want 2000", got)
	}

	if err := h.engine.BurnTokens(h.ctx, admin, 10_000); !errors.Is(err, universe.ErrInsufficientFunds) {
		t.Errorf("overdraw: expected ErrInsufficientFunds, got %v", err)
	}
	if err := h.engine.BurnTokens(h.ctx, admin, 0); !errors.Is(err, universe.ErrInvalidInput) {
		t.Errorf("zero burn: expected ErrInvalidInput, got %v", err)
	}
}

func TestAdminOnly(t *testing.T) {
	h := newHarness(t)
	if _, err := h.engine.SetupVesting(h.ctx, admin, 100, 100, 0); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name string
		call func() error
	}{
		{"update config", func() error {
			_, err := h.engine.UpdateConfig(h.ctx, alice, config.Overrides{RewardRate: ptr(int64(5))})
			return err
		}},
		{"claim vested tokens", func() error {
			_, err := h.engine.ClaimVestedTokens(h.ctx, alice, vesting.Ecosystem, alice)
			return err
		}},
		{"burn tokens", func() error {
			return h.engine.BurnTokens(h.ctx, alice, 1)
		}},
		{"setup vesting", func() error {
			_, err := h.engine.SetupVesting(h.ctx, alice, 1, 1, 1)
			return err
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.call()
			if !errors.Is(err, universe.ErrUnauthorized) {
				t.Errorf("expected ErrUnauthorized, got %v", err)
			}
			if !universe.IsAuthError(err) {
				t.Errorf("IsAuthError(%v) = false", err)
			}
		})
	}
}

func TestUpdateConfig(t *testing.T) {
	h := newHarness(t)

	_, err := h.engine.UpdateConfig(h.ctx, admin, config.Overrides{
		LiquidityTaxRate: ptr(int64(2)),
		RewardTaxRate:    ptr(int64(2)),
	})
	if !errors.Is(err, universe.ErrInvalidTaxRates) {
		t.Fatalf("expected ErrInvalidTaxRates, got %v", err)
	}
	cfg, _ := h.engine.GetConfig(h.ctx)
	if cfg.LiquidityTaxRate != 1 || cfg.RewardTaxRate != 2 {
		t.Errorf("rejected update changed rates: %d, %d", cfg.LiquidityTaxRate, cfg.RewardTaxRate)
	}

	next, err := h.engine.UpdateConfig(h.ctx, admin, config.Overrides{
		TransactionTaxRate: ptr(int64(5)),
		LiquidityTaxRate:   ptr(int64(2)),
		RewardTaxRate:      ptr(int64(2)),
		RewardInterval:     ptr(int64(3_600)),
	})
	if err != nil {
		t.Fatal(err)
	}
	if next.TransactionTaxRate != 5 || next.RewardInterval != 3_600 || next.PlanetCreationCost != 1000 {
		t.Errorf("unexpected config: %+v", next)
	}

	// A shorter interval applies to existing planets immediately.
	p := h.createPlanet(alice)
	h.clock.Advance(3_600)
	if _, _, err := h.engine.ClaimRewards(h.ctx, alice, p.ID); err != nil {
		t.Errorf("claim after shortened interval: %v", err)
	}
}

func TestActivityJournal(t *testing.T) {
	h := newHarness(t, universe.WithActivityConfig(2, time.Hour))
	if err := h.engine.Start(h.ctx); err != nil {
		t.Fatal(err)
	}

	p := h.createPlanet(alice)
	h.clock.Advance(28_800)
	if _, _, err := h.engine.ClaimRewards(h.ctx, alice, p.ID); err != nil {
		t.Fatal(err)
	}
	if _, err := h.engine.TransferWithTax(h.ctx, bob, alice, 100); err != nil {
		t.Fatal(err)
	}

	if err := h.engine.Stop(); err != nil {
		t.Fatal(err)
	}

	events, err := h.store.QueryActivity(h.ctx, activity.QueryOpts{Actor: alice})
	if err != nil {
		t.Fatal(err)
	}
	// initialize_user, create_planet, claim_rewards and the incoming transfer.
	if len(events) != 4 {
		t.Fatalf("got %d events for alice, want 4", len(events))
	}
	if events[0].Kind != activity.KindTransferWithTax || events[0].Tax != 3 {
		t.Errorf("newest event = %+v", events[0])
	}

	claims, _ := h.store.QueryActivity(h.ctx, activity.QueryOpts{Kind: activity.KindClaimRewards})
	if len(claims) != 1 || claims[0].Amount != 40 || claims[0].PlanetID != p.ID {
		t.Errorf("claim events = %+v", claims)
	}
}

// externalSchemaStore refuses to migrate, as a store whose schema is
// owned by another deployment step would.
type externalSchemaStore struct {
	*memory.Store
	migrations int
}

func (s *externalSchemaStore) Migrate(context.Context) error {
	s.migrations++
	return errors.New("schema is managed externally")
}

func TestStartWithoutMigrate(t *testing.T) {
	ctx := context.Background()
	st := &externalSchemaStore{Store: memory.New()}
	opts := []universe.Option{
		universe.WithLogger(slog.New(slog.DiscardHandler)),
		universe.WithActivityConfig(10, time.Hour),
	}

	if err := universe.New(st, tokenmem.New(mint), opts...).Start(ctx); !errors.Is(err, universe.ErrMigrationFailed) {
		t.Fatalf("expected ErrMigrationFailed, got %v", err)
	}

	e := universe.New(st, tokenmem.New(mint), append(opts, universe.WithoutMigrate())...)
	if err := e.Start(ctx); err != nil {
		t.Fatalf("start without migrate: %v", err)
	}
	if st.migrations != 1 {
		t.Errorf("migrate called %d times, want 1", st.migrations)
	}

	if _, err := e.Initialize(ctx, admin, config.InitParams{TokenMint: mint, Wallets: wallets}); err != nil {
		t.Fatal(err)
	}
	if err := e.Stop(); err != nil {
		t.Fatal(err)
	}

	// The journal worker ran and flushed on Stop.
	events, err := st.QueryActivity(ctx, activity.QueryOpts{Kind: activity.KindInitialize})
	if err != nil {
		t.Fatal(err)
	}
	if len(events) != 1 || events[0].Actor != admin {
		t.Errorf("initialize events = %+v", events)
	}
}

type recorder struct {
	mu       sync.Mutex
	created  int
	rejected []string
}

func (r *recorder) Name() string { return "recorder" }

func (r *recorder) OnPlanetCreated(_ context.Context, _ *planet.Planet) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.created++
	return nil
}

func (r *recorder) OnOperationRejected(_ context.Context, op string, _ types.Account, _ error) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rejected = append(r.rejected, op)
	return nil
}

func TestPluginHooks(t *testing.T) {
	rec := &recorder{}
	h := newHarness(t, universe.WithPlugin(rec))

	h.createPlanet(alice)
	_, _, _ = h.engine.ClaimRewards(h.ctx, alice, h.createPlanet(bob).ID)

	rec.mu.Lock()
	defer rec.mu.Unlock()
	if rec.created != 2 {
		t.Errorf("created hook fired %d times, want 2", rec.created)
	}
	if len(rec.rejected) != 1 || rec.rejected[0] != string(activity.KindClaimRewards) {
		t.Errorf("rejected = %v", rec.rejected)
	}
}
