package kv

import (
	"errors"

	"github.com/jrife/recordkeeper/storage/kv/keys"
)

var (
	// ErrClosed indicates that the root store was closed
	ErrClosed = errors.New("root store was closed")
	// ErrNoSuchRegion indicates that the region doesn't exist. It hasn't been created yet.
	ErrNoSuchRegion = errors.New("region does not exist")
	// ErrEmptyKey is returned by Put and Get when the key is nil or empty
	ErrEmptyKey = errors.New("key must not be empty")
	// ErrNilValue is returned by Put when the value is nil
	ErrNilValue = errors.New("value must not be nil")
	// ErrReadOnly is returned when a read-only transaction attempts an update operation
	ErrReadOnly = errors.New("transaction is read-only")
)

// PluginOptions are driver specific options passed
// to a plugin when creating a root store
type PluginOptions map[string]interface{}

// Plugin represents a kv storage plugin
type Plugin interface {
	// Name returns the name of the storage plugin
	Name() string
	// NewRootStore returns an instance of the plugin root store
	NewRootStore(options PluginOptions) (RootStore, error)
	// NewTempRootStore returns an instance of the plugin root store
	// initialized with some sane defaults. It is meant for
	// tests that need an initialized instance of the plugin's
	// store without knowing how to initialize it
	NewTempRootStore() (RootStore, error)
}

// RegionID is the fixed identity of a region
// inside a root store
type RegionID byte

// RootStore is the parent store from which all regions are descended
type RootStore interface {
	// Delete closes then deletes this store and all its contents.
	// If the root store doesn't exist it should return nil and have
	// no effect.
	Delete() error
	// Close closes the store. Function calls to any I/O objects
	// descended from this store occurring after Close returns
	// must have no effect and return ErrClosed. Close must not
	// return until all transactions have either rolled back or
	// committed.
	Close() error
	// Regions lists the ids of all regions that have been created
	// inside this root store in ascending order. It must return
	// ErrClosed if its invocation starts after Close() returns.
	Regions() ([]RegionID, error)
	// Region returns a handle for the region with this id. It does not
	// guarantee that this region exists yet and should not create the
	// region. It must not return nil.
	Region(id RegionID) Region
}

// Region is a reference to a region of a root store. Transactions
// within a region are strictly serializable. Regions are independent
// and do not require coordination between them.
type Region interface {
	// ID returns the id of this region
	ID() RegionID
	// Create creates this region if it does not exist. It has no
	// effect if the region already exists. It must return ErrClosed
	// if its invocation starts after Close() on the root store returns.
	Create() error
	// Begin starts a transaction for this region. writable should be
	// true for read-write transactions and false for read-only transactions.
	// If Begin() is called after Close() on the root store returns it must
	// return ErrClosed. Otherwise if this region does not exist it must
	// return ErrNoSuchRegion.
	Begin(writable bool) (Transaction, error)
}

// MapUpdater is an interface for updating a sorted
// key-value map
type MapUpdater interface {
	// Put puts a key. Put must return ErrEmptyKey if the key
	// is nil or empty and ErrNilValue if value is nil.
	Put(key, value []byte) error
}

// MapReader is an interface for reading a sorted
// key-value map
type MapReader interface {
	// Get gets a key. It must observe updates to that key made
	// previously by this transation. Get must return ErrEmptyKey
	// if the key is nil or empty. It must return nil if the
	// requested key does not exist.
	Get(key []byte) ([]byte, error)
	// Keys creates an iterator that iterates over the range
	// of keys
	Keys(keys keys.Range, order SortOrder) (Iterator, error)
}

// Map combines MapReader and MapUpdater
type Map interface {
	MapUpdater
	MapReader
}

// Transaction is a transaction for a region. It must only be
// used by one goroutine at a time. Byte slices returned from a
// transaction are only valid until the transaction ends.
type Transaction interface {
	Map
	// Commit commits the transaction
	Commit() error
	// Rollback rolls back the transaction. Calling Rollback after
	// Commit has no effect.
	Rollback() error
}

// SortOrder describes the order in which
// an iterator visits keys
type SortOrder int

const (
	// SortOrderAsc visits keys in ascending byte order
	SortOrderAsc SortOrder = iota
	// SortOrderDesc visits keys in descending byte order
	SortOrderDesc
)

// Iterator iterates over a set of keys. It must only be
// used by one goroutine at a time. Consumers should not
// attempt to use an iterator once its parent transaction
// has ended. Behavior is undefined in this case.
type Iterator interface {
	// Next advances the iterator to the next key
	// A fresh iterator must call Next once to
	// advance to the first key. Next returns false
	// if there is no next key or if it encounters an
	// error.
	Next() bool
	// Key returns the current key
	Key() []byte
	// Value returns the current value
	Value() []byte
	// Error returns the error, if any.
	Error() error
}
