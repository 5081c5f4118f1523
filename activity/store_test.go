package activity_test

import (
	"testing"
	"time"

	"github.com/xraph/universe/activity"
)

func TestQueryOptsMatches(t *testing.T) {
	at := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	evt := &activity.Event{
		Kind:         activity.KindTransferWithTax,
		Actor:        "alice",
		Counterparty: "bob",
		Amount:       100,
		Tax:          3,
		Timestamp:    at,
	}

	tests := []struct {
		name string
		opts activity.QueryOpts
		want bool
	}{
		{"zero value", activity.QueryOpts{}, true},
		{"actor", activity.QueryOpts{Actor: "alice"}, true},
		{"counterparty", activity.QueryOpts{Actor: "bob"}, true},
		{"other account", activity.QueryOpts{Actor: "carol"}, false},
		{"kind", activity.QueryOpts{Kind: activity.KindTransferWithTax}, true},
		{"other kind", activity.QueryOpts{Kind: activity.KindBurnTokens}, false},
		{"start inclusive", activity.QueryOpts{Start: at}, true},
		{"start after", activity.QueryOpts{Start: at.Add(time.Second)}, false},
		{"end inclusive", activity.QueryOpts{End: at}, true},
		{"end before", activity.QueryOpts{End: at.Add(-time.Second)}, false},
		{"paging ignored", activity.QueryOpts{Limit: 1, Offset: 5}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.opts.Matches(evt); got != tt.want {
				t.Errorf("Matches = %v, want %v", got, tt.want)
			}
		})
	}
}
