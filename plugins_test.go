package universe_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/xraph/universe"
	audithook "github.com/xraph/universe/audit_hook"
	"github.com/xraph/universe/observability"
)

type fakeMetric struct {
	mu    sync.Mutex
	total float64
	count int
}

func (m *fakeMetric) Inc() { m.Add(1) }

func (m *fakeMetric) Add(v float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.total += v
	m.count++
}

func (m *fakeMetric) Observe(v float64) { m.Add(v) }

func (m *fakeMetric) value() float64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.total
}

type fakeFactory struct {
	mu      sync.Mutex
	metrics map[string]*fakeMetric
}

func (f *fakeFactory) get(name string) *fakeMetric {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.metrics == nil {
		f.metrics = make(map[string]*fakeMetric)
	}
	m, ok := f.metrics[name]
	if !ok {
		m = &fakeMetric{}
		f.metrics[name] = m
	}
	return m
}

func (f *fakeFactory) Counter(name string) observability.Counter     { return f.get(name) }
func (f *fakeFactory) Histogram(name string) observability.Histogram { return f.get(name) }

func TestMetricsExtension(t *testing.T) {
	factory := &fakeFactory{}
	h := newHarness(t, universe.WithPlugin(observability.NewMetricsExtension(factory)))

	p := h.createPlanet(alice)
	h.clock.Advance(28_800)
	if _, _, err := h.engine.ClaimRewards(h.ctx, alice, p.ID); err != nil {
		t.Fatal(err)
	}
	if _, err := h.engine.TransferWithTax(h.ctx, alice, bob, 100); err != nil {
		t.Fatal(err)
	}
	_ = h.engine.BurnTokens(h.ctx, alice, 10)

	tests := []struct {
		name string
		want float64
	}{
		{"universe.user.initialized", 2},
		{"universe.planet.created", 1},
		{"universe.reward.claimed", 1},
		{"universe.reward.amount", 40},
		{"universe.token.transfers", 1},
		{"universe.token.tax", 3},
		{"universe.operation.rejected", 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := factory.get(tt.name).value(); got != tt.want {
				t.Errorf("%s = %v, want %v", tt.name, got, tt.want)
			}
		})
	}
}

func TestAuditHook(t *testing.T) {
	var (
		mu     sync.Mutex
		events []*audithook.AuditEvent
	)
	rec := audithook.RecorderFunc(func(_ context.Context, evt *audithook.AuditEvent) error {
		mu.Lock()
		defer mu.Unlock()
		events = append(events, evt)
		return nil
	})
	ext := audithook.New(rec, audithook.WithDisabledActions(audithook.ActionUserInitialized))
	h := newHarness(t, universe.WithPlugin(ext))

	p := h.createPlanet(alice)
	if err := h.engine.BurnTokens(h.ctx, bob, 10); !errors.Is(err, universe.ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
	// Non-admin failures are not audited.
	_, _, _ = h.engine.ClaimRewards(h.ctx, alice, p.ID)

	mu.Lock()
	defer mu.Unlock()

	actions := make([]string, len(events))
	for i, e := range events {
		actions[i] = e.Action
	}
	want := []string{
		audithook.ActionConfigInitialized,
		audithook.ActionPlanetCreated,
		audithook.ActionOperationRejected,
	}
	if len(actions) != len(want) {
		t.Fatalf("actions = %v, want %v", actions, want)
	}
	for i := range want {
		if actions[i] != want[i] {
			t.Errorf("action[%d] = %s, want %s", i, actions[i], want[i])
		}
	}

	created := events[1]
	if created.ResourceID != p.ID.String() || created.Metadata["owner"] != alice.String() {
		t.Errorf("unexpected planet event: %+v", created)
	}
	rejected := events[2]
	if rejected.Outcome != audithook.OutcomeFailure || rejected.Metadata["caller"] != bob.String() {
		t.Errorf("unexpected rejection event: %+v", rejected)
	}
}
