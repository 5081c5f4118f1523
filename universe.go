package universe

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/xraph/universe/activity"
	"github.com/xraph/universe/config"
	"github.com/xraph/universe/id"
	"github.com/xraph/universe/planet"
	"github.com/xraph/universe/plugin"
	"github.com/xraph/universe/store"
	"github.com/xraph/universe/token"
	"github.com/xraph/universe/types"
)

// Engine is the game state machine. Every mutating operation runs as one
// unit: token movements are requested inside a token.Transactor block and
// the record writes are committed in the same block, so a failure at any
// step leaves neither balances nor records changed.
type Engine struct {
	store   store.Store
	tokens  token.Transactor
	plugins *plugin.Registry
	logger  *slog.Logger
	clock   func() time.Time

	// Serializes mutating operations within this process.
	writeMu sync.Mutex

	metadataBaseURI string
	skipMigrate     bool

	// Background workers
	activityBuffer chan *activity.Event
	stopChan       chan struct{}
	stopOnce       sync.Once
	wg             sync.WaitGroup

	// Configuration
	activityBatchSize     int
	activityFlushInterval time.Duration
}

// New creates a new Engine over a record store and a token ledger.
func New(s store.Store, tokens token.Transactor, opts ...Option) *Engine {
	e := &Engine{
		store:                 s,
		tokens:                tokens,
		plugins:               plugin.NewRegistry(),
		logger:                slog.Default(),
		clock:                 time.Now,
		metadataBaseURI:       planet.DefaultMetadataBaseURI,
		activityBuffer:        make(chan *activity.Event, 10000),
		stopChan:              make(chan struct{}),
		activityBatchSize:     100,
		activityFlushInterval: 5 * time.Second,
	}

	for _, opt := range opts {
		opt(e)
	}

	return e
}

// Option configures an Engine instance.
type Option func(*Engine)

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) {
		e.logger = logger
		e.plugins.WithLogger(logger)
	}
}

// WithPlugin registers a plugin.
func WithPlugin(p plugin.Plugin) Option {
	return func(e *Engine) {
		_ = e.plugins.Register(p) //nolint:errcheck // best-effort plugin registration during init
	}
}

// WithClock replaces the wall clock. Timestamps are kept at one-second
// resolution.
func WithClock(clock func() time.Time) Option {
	return func(e *Engine) {
		e.clock = clock
	}
}

// WithActivityConfig configures journal batching.
func WithActivityConfig(batchSize int, flushInterval time.Duration) Option {
	return func(e *Engine) {
		if batchSize > 0 {
			e.activityBatchSize = batchSize
		}
		if flushInterval > 0 {
			e.activityFlushInterval = flushInterval
		}
	}
}

// WithMetadataBaseURI sets the base URI of published planet metadata.
func WithMetadataBaseURI(uri string) Option {
	return func(e *Engine) {
		e.metadataBaseURI = uri
	}
}

// WithoutMigrate makes Start leave the schema alone. Background workers
// still run.
func WithoutMigrate() Option {
	return func(e *Engine) {
		e.skipMigrate = true
	}
}

// Store returns the underlying record store.
func (e *Engine) Store() store.Store { return e.store }

// Plugins returns the plugin registry.
func (e *Engine) Plugins() *plugin.Registry { return e.plugins }

// Start migrates the store, unless disabled with WithoutMigrate, and
// begins background workers.
func (e *Engine) Start(ctx context.Context) error {
	if !e.skipMigrate {
		if err := e.store.Migrate(ctx); err != nil {
			return fmt.Errorf("%w: %w", ErrMigrationFailed, err)
		}
	}

	e.plugins.EmitInit(ctx, e)

	e.wg.Add(1)
	go e.activityFlushWorker(context.WithoutCancel(ctx))

	e.logger.Info("universe started",
		"batch_size", e.activityBatchSize,
		"flush_interval", e.activityFlushInterval,
	)

	return nil
}

// Stop flushes pending journal events and closes the store.
func (e *Engine) Stop() error {
	e.stopOnce.Do(func() { close(e.stopChan) })
	e.wg.Wait()

	ctx := context.Background()
	e.plugins.EmitShutdown(ctx)

	return e.store.Close()
}

// now returns the current time truncated to whole seconds.
func (e *Engine) now() time.Time {
	return time.Unix(e.clock().Unix(), 0).UTC()
}

// execute runs fn inside one token transaction and commits the changeset
// it returns in the same transaction.
func (e *Engine) execute(ctx context.Context, fn func(tx token.Ledger) (*store.Changeset, error)) error {
	e.writeMu.Lock()
	defer e.writeMu.Unlock()

	return e.tokens.Atomically(ctx, func(tx token.Ledger) error {
		cs, err := fn(tx)
		if err != nil {
			return err
		}
		if cs == nil || cs.IsEmpty() {
			return nil
		}
		if err := e.store.Commit(ctx, cs); err != nil {
			e.logger.Error("failed to commit changeset", "error", err)
			return fmt.Errorf("%w: %w", ErrTransactionFailed, err)
		}
		return nil
	})
}

// reject logs and reports a failed operation, returning err unchanged.
func (e *Engine) reject(ctx context.Context, op activity.Kind, caller types.Account, err error) error {
	e.logger.Debug("operation rejected",
		"op", op,
		"caller", caller,
		"error", err,
	)
	e.plugins.EmitOperationRejected(ctx, string(op), caller, err)
	return err
}

func (e *Engine) loadConfig(ctx context.Context) (*config.Config, error) {
	cfg, err := e.store.GetConfig(ctx)
	if err != nil {
		if errors.Is(err, ErrNotInitialized) {
			return nil, err
		}
		return nil, fmt.Errorf("universe: load config: %w", err)
	}
	return cfg, nil
}

func (e *Engine) requireAdmin(cfg *config.Config, caller types.Account) error {
	if !cfg.IsAdmin(caller) {
		return fmt.Errorf("%w: %s is not the admin", ErrUnauthorized, caller)
	}
	return nil
}

func (e *Engine) publishMetadata(ctx context.Context, p *planet.Planet) {
	m := planet.MetadataFor(p, e.metadataBaseURI)
	e.logger.Info("planet metadata published",
		"planet_id", p.ID,
		"name", m.Name,
		"symbol", m.Symbol,
		"uri", m.URI,
	)
	e.plugins.EmitMetadataPublished(ctx, m)
}

// ──────────────────────────────────────────────────
// Activity journal
// ──────────────────────────────────────────────────

// record queues an event for the journal without blocking. The operation
// has already committed, so a full buffer drops the event.
func (e *Engine) record(evt *activity.Event) {
	if evt.ID.IsNil() {
		evt.ID = id.NewActivityID()
	}

	select {
	case e.activityBuffer <- evt:
	default:
		e.logger.Warn("activity event dropped",
			"kind", evt.Kind,
			"error", ErrActivityBufferFull,
		)
	}
}

// activityFlushWorker flushes journal events to the store.
func (e *Engine) activityFlushWorker(ctx context.Context) {
	defer e.wg.Done()

	batch := make([]*activity.Event, 0, e.activityBatchSize)
	ticker := time.NewTicker(e.activityFlushInterval)
	defer ticker.Stop()

	for {
		select {
		case <-e.stopChan:
			// Final flush
		drain:
			for {
				select {
				case evt := <-e.activityBuffer:
					batch = append(batch, evt)
				default:
					break drain
				}
			}
			if len(batch) > 0 {
				e.flushActivityBatch(ctx, batch)
			}
			return

		case evt := <-e.activityBuffer:
			batch = append(batch, evt)
			if len(batch) >= e.activityBatchSize {
				e.flushActivityBatch(ctx, batch)
				batch = make([]*activity.Event, 0, e.activityBatchSize)
			}

		case <-ticker.C:
			if len(batch) > 0 {
				e.flushActivityBatch(ctx, batch)
				batch = make([]*activity.Event, 0, e.activityBatchSize)
			}
		}
	}
}

func (e *Engine) flushActivityBatch(ctx context.Context, batch []*activity.Event) {
	start := time.Now()

	if err := e.store.IngestBatch(ctx, batch); err != nil {
		e.logger.Error("failed to flush activity batch",
			"error", err,
			"batch_size", len(batch),
		)
		return
	}

	elapsed := time.Since(start)
	e.plugins.EmitActivityFlushed(ctx, len(batch), elapsed)

	e.logger.Debug("flushed activity batch",
		"batch_size", len(batch),
		"elapsed_ms", elapsed.Milliseconds(),
	)
}
