// Package records is the create/validate/store/list engine shared by
// every application in this module.
//
// A Store owns a kv root store, the regions reserved inside it and the
// identifier counter. Every collection of an application draws its
// identifiers from that one counter, so identifiers are unique and
// increasing across the whole store but are not contiguous within one
// collection.
//
// A creation call runs in two phases. The check phase looks at the
// payload and at existing rows only. The mutate phase allocates an
// identifier, assembles the record and inserts it. A failed check never
// reaches the counter, so failed calls leave no gaps in the identifier
// sequence and can be retried safely once the payload is fixed.
package records

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sync"
	"time"

	"github.com/jrife/recordkeeper/storage/collection"
	"github.com/jrife/recordkeeper/storage/counter"
	"github.com/jrife/recordkeeper/storage/kv"
	"github.com/jrife/recordkeeper/storage/kv/plugins"
	"github.com/jrife/recordkeeper/storage/regions"
	"github.com/jrife/recordkeeper/utils/log"
	"go.uber.org/zap"
)

var (
	// ErrNotFound is matched by the error a listing returns
	// when it has no records to return
	ErrNotFound = errors.New("no records found")
	// ErrNoSuchDriver is returned by Open for an unknown kv driver
	ErrNoSuchDriver = errors.New("no such kv driver")
)

// Config configures a Store
type Config struct {
	// Driver is the name of the kv plugin, such as "bbolt" or "memory"
	Driver string
	// Options are passed to the kv plugin
	Options kv.PluginOptions
	// Layout names every region of the application
	Layout regions.Layout
	// Counter is the region holding the identifier counter. It
	// must be part of Layout.
	Counter kv.RegionID
	// Logger defaults to zap.L()
	Logger *zap.Logger
	// Clock defaults to time.Now
	Clock func() time.Time
}

// Store owns every collection region and the counter
// of one application
type Store struct {
	rootStore   kv.RootStore
	partitioner *regions.Partitioner
	counter     *counter.Counter
	logger      *zap.Logger
	clock       func() time.Time
	// mu admits one call at a time
	mu   sync.Mutex
	last uint64
}

// Open opens the root store with the configured driver and reserves
// every region of the layout. The root store is closed again if any
// region cannot be reserved.
func Open(config Config) (*Store, error) {
	plugin := plugins.Plugin(config.Driver)

	if plugin == nil {
		return nil, fmt.Errorf("%w: %q", ErrNoSuchDriver, config.Driver)
	}

	if _, ok := config.Layout[config.Counter]; !ok {
		return nil, fmt.Errorf("counter region %d is not part of the layout", config.Counter)
	}

	rootStore, err := plugin.NewRootStore(config.Options)

	if err != nil {
		return nil, fmt.Errorf("could not open %s root store: %w", config.Driver, err)
	}

	store, err := New(rootStore, config)

	if err != nil {
		rootStore.Close()

		return nil, err
	}

	return store, nil
}

// New builds a store on top of an open root store. config.Driver and
// config.Options are ignored.
func New(rootStore kv.RootStore, config Config) (*Store, error) {
	logger := config.Logger

	if logger == nil {
		logger = zap.L()
	}

	partitioner, err := regions.Reserve(rootStore, config.Layout)

	if err != nil {
		logger.Error("could not reserve regions", zap.Error(err))

		return nil, err
	}

	clock := config.Clock

	if clock == nil {
		clock = time.Now
	}

	logger.Debug("regions reserved", zap.Int("count", len(config.Layout)))

	return &Store{
		rootStore:   rootStore,
		partitioner: partitioner,
		counter: counter.New(counter.Config{
			Region: partitioner.Region(config.Counter),
			Logger: logger.With(zap.String("region", partitioner.Name(config.Counter))),
		}),
		logger: logger,
		clock:  clock,
	}, nil
}

// Logger returns the store's logger
func (store *Store) Logger() *zap.Logger {
	return store.logger
}

// Region returns the reserved region with this id.
// It panics if the id is not part of the layout.
func (store *Store) Region(id kv.RegionID) kv.Region {
	return store.partitioner.Region(id)
}

// RegionName returns the layout name of the region
func (store *Store) RegionName(id kv.RegionID) string {
	return store.partitioner.Name(id)
}

// LastID returns the most recently issued identifier, 0 if none
func (store *Store) LastID(ctx context.Context) (uint64, error) {
	store.mu.Lock()
	defer store.mu.Unlock()

	return store.counter.Current(ctx)
}

// Close closes the underlying root store
func (store *Store) Close() error {
	store.mu.Lock()
	defer store.mu.Unlock()

	return store.rootStore.Close()
}

// Purge closes the store and deletes all of its data
func (store *Store) Purge() error {
	store.mu.Lock()
	defer store.mu.Unlock()

	return store.rootStore.Delete()
}

// now returns the creation timestamp for a record in nanoseconds
// since the Unix epoch. It never returns less than it returned
// before, even if the wall clock steps backwards.
func (store *Store) now() uint64 {
	t := store.clock().UnixNano()

	if t < 0 {
		t = 0
	}

	stamp := uint64(t)

	if stamp < store.last {
		stamp = store.last
	}

	store.last = stamp

	return stamp
}

// Collection creates a collection of R in the region with this id
func Collection[R any](store *Store, id kv.RegionID, codec collection.Codec[R]) *collection.Collection[R] {
	return collection.New(store.RegionName(id), store.Region(id), codec, store.logger)
}

// Check inspects a payload and existing rows. It must not write anything.
type Check func(ctx context.Context) error

// Build assembles a record from a freshly allocated identifier and
// the creation timestamp
type Build[R any] func(id uint64, createdAt uint64) R

// Create runs check, then allocates an identifier, builds the record
// and inserts it into c. The record that was inserted is returned.
// Errors from check are returned unchanged. A record whose encoding
// exceeds the collection's size bound is rejected with
// collection.ErrTooLarge before an identifier is allocated. An error
// allocating the identifier wraps counter.ErrPersist and aborts the
// call. build must be a pure function of its arguments.
func Create[R any](ctx context.Context, store *Store, c *collection.Collection[R], check Check, build Build[R]) (R, error) {
	var record R

	store.mu.Lock()
	defer store.mu.Unlock()

	logger := log.WithContext(ctx, store.logger).With(zap.String("operation", "Create"), zap.String("collection", c.Name()))
	logger.Debug("start")

	if check != nil {
		if err := check(ctx); err != nil {
			logger.Debug("rejected", zap.Error(err))

			return record, err
		}
	}

	// Identifiers and timestamps encode widest at their maximum, so a
	// record that fits with both at the maximum fits with any value.
	if err := c.Fits(build(math.MaxUint64, math.MaxUint64)); err != nil {
		logger.Error("record cannot fit its size bound", zap.Error(err))

		return record, err
	}

	id, err := store.counter.Next(ctx)

	if err != nil {
		logger.Error("could not allocate identifier", zap.Error(err))

		return record, fmt.Errorf("could not allocate identifier: %w", err)
	}

	record = build(id, store.now())

	if err := c.Insert(ctx, id, record); err != nil {
		logger.Error("could not insert record", zap.Uint64("id", id), zap.Error(err))

		var zero R

		return zero, fmt.Errorf("could not insert %s %d: %w", c.Name(), id, err)
	}

	logger.Debug("return", zap.Uint64("id", id))

	return record, nil
}

// NotFoundError is returned by listings that have nothing to return.
// Its text is "No <noun> found.".
type NotFoundError struct {
	Noun string
}

// Error implements error
func (err *NotFoundError) Error() string {
	return fmt.Sprintf("No %s found.", err.Noun)
}

// Is lets errors.Is match ErrNotFound
func (err *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

// ListAll returns every record of c in ascending identifier order.
// An empty collection is reported as a *NotFoundError naming noun.
func ListAll[R any](ctx context.Context, store *Store, c *collection.Collection[R], noun string) ([]R, error) {
	return ListWhere(ctx, store, c, noun, nil)
}

// ListWhere is like ListAll but only returns records that match
func ListWhere[R any](ctx context.Context, store *Store, c *collection.Collection[R], noun string, match func(R) bool) ([]R, error) {
	store.mu.Lock()
	defer store.mu.Unlock()

	list, err := c.ListWhere(ctx, match)

	if err != nil {
		return nil, fmt.Errorf("could not list %s: %w", noun, err)
	}

	if len(list) == 0 {
		return nil, &NotFoundError{Noun: noun}
	}

	return list, nil
}
