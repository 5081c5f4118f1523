package memory

import (
	"context"
	"fmt"
	"slices"
	"sort"
	"sync"
	"time"

	"github.com/xraph/universe"
	"github.com/xraph/universe/activity"
	"github.com/xraph/universe/config"
	"github.com/xraph/universe/id"
	"github.com/xraph/universe/planet"
	"github.com/xraph/universe/store"
	"github.com/xraph/universe/types"
	"github.com/xraph/universe/user"
	"github.com/xraph/universe/vesting"
)

// Compile-time interface check.
var _ store.Store = (*Store)(nil)

// Store keeps every record in process memory. Records are copied on the
// way in and out so callers never share state with the store.
type Store struct {
	mu sync.RWMutex

	config  *config.Config
	vesting *vesting.Vesting

	// Users keyed by owner account
	users map[types.Account]*user.User

	// Planets keyed by planet ID
	planets map[string]*planet.Planet

	events []activity.Event
	closed bool
}

func New() *Store {
	return &Store{
		users:   make(map[types.Account]*user.User),
		planets: make(map[string]*planet.Planet),
		events:  make([]activity.Event, 0),
	}
}

// Config Store implementation
func (s *Store) GetConfig(_ context.Context) (*config.Config, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.config == nil {
		return nil, universe.ErrNotInitialized
	}
	c := *s.config
	return &c, nil
}

// User Store implementation
func (s *Store) GetUser(_ context.Context, owner types.Account) (*user.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if u, ok := s.users[owner]; ok {
		return cloneUser(u), nil
	}
	return nil, universe.ErrUserNotFound
}

// Planet Store implementation
func (s *Store) GetPlanet(_ context.Context, planetID id.PlanetID) (*planet.Planet, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if p, ok := s.planets[planetID.String()]; ok {
		c := *p
		return &c, nil
	}
	return nil, universe.ErrPlanetNotFound
}

func (s *Store) ListPlanets(_ context.Context, owner types.Account, opts planet.ListOpts) ([]*planet.Planet, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]*planet.Planet, 0)
	for _, p := range s.planets {
		if owner == "" || p.Owner == owner {
			c := *p
			result = append(result, &c)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].CreatedAt.Equal(result[j].CreatedAt) {
			return result[i].ID.String() < result[j].ID.String()
		}
		return result[i].CreatedAt.Before(result[j].CreatedAt)
	})
	return page(result, opts.Offset, opts.Limit), nil
}

// Vesting Store implementation
func (s *Store) GetVesting(_ context.Context) (*vesting.Vesting, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.vesting == nil {
		return nil, universe.ErrVestingNotFound
	}
	v := *s.vesting
	return &v, nil
}

// Activity Store implementation
func (s *Store) IngestBatch(_ context.Context, events []*activity.Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, e := range events {
		s.events = append(s.events, *e)
	}
	return nil
}

func (s *Store) QueryActivity(_ context.Context, opts activity.QueryOpts) ([]*activity.Event, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]*activity.Event, 0)
	for i := len(s.events) - 1; i >= 0; i-- {
		e := s.events[i]
		if opts.Matches(&e) {
			result = append(result, &e)
		}
	}
	sort.SliceStable(result, func(i, j int) bool {
		return result[i].Timestamp.After(result[j].Timestamp)
	})
	return page(result, opts.Offset, opts.Limit), nil
}

func (s *Store) PurgeActivity(_ context.Context, before time.Time) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var count int64
	kept := make([]activity.Event, 0, len(s.events))
	for _, e := range s.events {
		if e.Timestamp.Before(before) {
			count++
		} else {
			kept = append(kept, e)
		}
	}
	s.events = kept
	return count, nil
}

// Commit validates every write against the current state before applying
// any of them, so a rejected changeset leaves the store untouched.
func (s *Store) Commit(_ context.Context, cs *store.Changeset) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return universe.ErrStoreClosed
	}
	if err := s.check(cs); err != nil {
		return err
	}

	if w := cs.Config; w != nil {
		c := *w.Record
		s.config = &c
	}
	if w := cs.Vesting; w != nil {
		v := *w.Record
		s.vesting = &v
	}
	for _, w := range cs.Users {
		s.users[w.Record.Owner] = cloneUser(w.Record)
	}
	for _, w := range cs.Planets {
		p := *w.Record
		s.planets[p.ID.String()] = &p
	}
	return nil
}

func (s *Store) check(cs *store.Changeset) error {
	if w := cs.Config; w != nil {
		if err := expect(w.Op, s.config != nil, "config"); err != nil {
			return err
		}
	}
	if w := cs.Vesting; w != nil {
		if err := expect(w.Op, s.vesting != nil, "vesting"); err != nil {
			return err
		}
	}
	for _, w := range cs.Users {
		_, ok := s.users[w.Record.Owner]
		if err := expect(w.Op, ok, "user "+w.Record.Owner.String()); err != nil {
			return err
		}
	}
	for _, w := range cs.Planets {
		_, ok := s.planets[w.Record.ID.String()]
		if err := expect(w.Op, ok, "planet "+w.Record.ID.String()); err != nil {
			return err
		}
	}
	return nil
}

func expect(op store.Op, exists bool, what string) error {
	switch {
	case op == store.OpInsert && exists:
		return fmt.Errorf("%w: %s", universe.ErrAlreadyExists, what)
	case op == store.OpUpdate && !exists:
		return fmt.Errorf("%w: %s", universe.ErrNotFound, what)
	}
	return nil
}

func (s *Store) Migrate(_ context.Context) error {
	return nil // No migration needed for memory store
}

func (s *Store) Ping(_ context.Context) error {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return universe.ErrStoreClosed
	}
	return nil
}

func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.closed = true
	return nil
}

// Helper functions
func cloneUser(u *user.User) *user.User {
	c := *u
	c.Planets = slices.Clone(u.Planets)
	return &c
}

func page[T any](items []T, offset, limit int) []T {
	if offset > 0 {
		if offset >= len(items) {
			return items[:0]
		}
		items = items[offset:]
	}
	if limit > 0 && limit < len(items) {
		items = items[:limit]
	}
	return items
}
