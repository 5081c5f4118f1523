package activity

import (
	"context"
	"time"

	"github.com/xraph/universe/types"
)

type Store interface {
	IngestBatch(ctx context.Context, events []*Event) error
	QueryActivity(ctx context.Context, opts QueryOpts) ([]*Event, error)
	PurgeActivity(ctx context.Context, before time.Time) (int64, error)
}

// QueryOpts filters a query. Zero values match everything. Results are
// newest first.
type QueryOpts struct {
	Actor  types.Account
	Kind   Kind
	Start  time.Time
	End    time.Time
	Limit  int
	Offset int
}

// Matches reports whether e passes the filters, ignoring paging.
func (o QueryOpts) Matches(e *Event) bool {
	if o.Actor != "" && e.Actor != o.Actor && e.Counterparty != o.Actor {
		return false
	}
	if o.Kind != "" && e.Kind != o.Kind {
		return false
	}
	if !o.Start.IsZero() && e.Timestamp.Before(o.Start) {
		return false
	}
	if !o.End.IsZero() && e.Timestamp.After(o.End) {
		return false
	}
	return true
}
