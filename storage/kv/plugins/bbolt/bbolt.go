package bbolt

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/jrife/recordkeeper/storage/kv"
	"github.com/jrife/recordkeeper/storage/kv/keys"
	"github.com/jrife/recordkeeper/utils/uuid"
	bolt "go.etcd.io/bbolt"
)

const (
	// DriverName is the name under which this plugin is registered
	DriverName = "bbolt"
	// DefaultOpenTimeout bounds how long Open waits for the file lock
	// held by another process
	DefaultOpenTimeout = time.Second
)

var rootBucket = []byte{0}

// Plugins returns the plugins provided by this package
func Plugins() []kv.Plugin {
	return []kv.Plugin{
		&BBoltPlugin{},
	}
}

var _ kv.Plugin = (*BBoltPlugin)(nil)

// BBoltPlugin creates root stores backed by a bbolt file
type BBoltPlugin struct {
}

// Name implements kv.Plugin.Name
func (plugin *BBoltPlugin) Name() string {
	return DriverName
}

// NewRootStore implements kv.Plugin.NewRootStore.
// "path" is required. "timeout" is an optional time.Duration.
func (plugin *BBoltPlugin) NewRootStore(options kv.PluginOptions) (kv.RootStore, error) {
	var config BBoltRootStoreConfig

	if path, ok := options["path"]; !ok {
		return nil, fmt.Errorf("\"path\" is required")
	} else if pathString, ok := path.(string); !ok {
		return nil, fmt.Errorf("\"path\" must be a string")
	} else {
		config.Path = pathString
	}

	if timeout, ok := options["timeout"]; ok {
		if d, ok := timeout.(time.Duration); ok {
			config.Timeout = d
		} else {
			return nil, fmt.Errorf("\"timeout\" must be a time.Duration")
		}
	}

	return New(config)
}

// NewTempRootStore implements kv.Plugin.NewTempRootStore
func (plugin *BBoltPlugin) NewTempRootStore() (kv.RootStore, error) {
	return plugin.NewRootStore(kv.PluginOptions{
		"path": uuid.TempPath("bbolt"),
	})
}

// BBoltRootStoreConfig configures a bbolt root store
type BBoltRootStoreConfig struct {
	Path    string
	Timeout time.Duration
}

var _ kv.RootStore = (*BBoltRootStore)(nil)

// New opens the bbolt file at config.Path and ensures
// the root bucket exists
func New(config BBoltRootStoreConfig) (*BBoltRootStore, error) {
	if config.Timeout == 0 {
		config.Timeout = DefaultOpenTimeout
	}

	db, err := bolt.Open(config.Path, 0666, &bolt.Options{Timeout: config.Timeout})

	if err != nil {
		return nil, fmt.Errorf("could not open bbolt store at %s: %s", config.Path, err)
	}

	if err := db.Update(func(txn *bolt.Tx) error {
		_, err := txn.CreateBucketIfNotExists(rootBucket)

		return err
	}); err != nil {
		db.Close()

		return nil, fmt.Errorf("could not ensure root bucket exists: %s", err)
	}

	return &BBoltRootStore{db: db}, nil
}

// BBoltRootStore implements kv.RootStore. Each region
// is a child bucket of the root bucket whose name is
// the one byte region id.
type BBoltRootStore struct {
	db     *bolt.DB
	mu     sync.RWMutex
	closed bool
}

// Close implements kv.RootStore.Close
func (rootStore *BBoltRootStore) Close() error {
	rootStore.mu.Lock()
	defer rootStore.mu.Unlock()

	if rootStore.closed {
		return nil
	}

	rootStore.closed = true

	return rootStore.db.Close()
}

// Delete implements kv.RootStore.Delete
func (rootStore *BBoltRootStore) Delete() error {
	path := rootStore.db.Path()

	if err := rootStore.Close(); err != nil {
		return fmt.Errorf("could not close store: %s", err)
	}

	if err := os.RemoveAll(path); err != nil {
		return fmt.Errorf("could not remove path %s: %s", path, err)
	}

	return nil
}

// Regions implements kv.RootStore.Regions
func (rootStore *BBoltRootStore) Regions() ([]kv.RegionID, error) {
	rootStore.mu.RLock()
	defer rootStore.mu.RUnlock()

	if rootStore.closed {
		return nil, kv.ErrClosed
	}

	regions := []kv.RegionID{}

	err := rootStore.db.View(func(txn *bolt.Tx) error {
		cursor := txn.Bucket(rootBucket).Cursor()

		for k, v := cursor.First(); k != nil; k, v = cursor.Next() {
			if v == nil && len(k) == 1 {
				regions = append(regions, kv.RegionID(k[0]))
			}
		}

		return nil
	})

	if err != nil {
		return nil, err
	}

	return regions, nil
}

// Region implements kv.RootStore.Region
func (rootStore *BBoltRootStore) Region(id kv.RegionID) kv.Region {
	return &BBoltRegion{rootStore: rootStore, id: id}
}

var _ kv.Region = (*BBoltRegion)(nil)

// BBoltRegion implements kv.Region
type BBoltRegion struct {
	rootStore *BBoltRootStore
	id        kv.RegionID
}

func (region *BBoltRegion) name() []byte {
	return []byte{byte(region.id)}
}

// ID implements kv.Region.ID
func (region *BBoltRegion) ID() kv.RegionID {
	return region.id
}

// Create implements kv.Region.Create
func (region *BBoltRegion) Create() error {
	region.rootStore.mu.RLock()
	defer region.rootStore.mu.RUnlock()

	if region.rootStore.closed {
		return kv.ErrClosed
	}

	return region.rootStore.db.Update(func(txn *bolt.Tx) error {
		_, err := txn.Bucket(rootBucket).CreateBucketIfNotExists(region.name())

		return err
	})
}

// Begin implements kv.Region.Begin. The root store's read lock
// is held for the lifetime of the transaction so that Close
// waits for it to end.
func (region *BBoltRegion) Begin(writable bool) (kv.Transaction, error) {
	region.rootStore.mu.RLock()

	if region.rootStore.closed {
		region.rootStore.mu.RUnlock()

		return nil, kv.ErrClosed
	}

	transaction, err := region.rootStore.db.Begin(writable)

	if err != nil {
		region.rootStore.mu.RUnlock()

		return nil, fmt.Errorf("could not begin transaction: %s", err)
	}

	bucket := transaction.Bucket(rootBucket).Bucket(region.name())

	if bucket == nil {
		transaction.Rollback()
		region.rootStore.mu.RUnlock()

		return nil, kv.ErrNoSuchRegion
	}

	return &BBoltTransaction{
		transaction: transaction,
		bucket:      bucket,
		release:     region.rootStore.mu.RUnlock,
	}, nil
}

var _ kv.Transaction = (*BBoltTransaction)(nil)

// BBoltTransaction implements kv.Transaction
type BBoltTransaction struct {
	transaction *bolt.Tx
	bucket      *bolt.Bucket
	release     func()
	done        bool
}

// Put implements kv.Transaction.Put
func (transaction *BBoltTransaction) Put(key []byte, value []byte) error {
	if len(key) == 0 {
		return kv.ErrEmptyKey
	}

	if value == nil {
		return kv.ErrNilValue
	}

	if !transaction.transaction.Writable() {
		return kv.ErrReadOnly
	}

	return transaction.bucket.Put(key, value)
}

// Get implements kv.Transaction.Get
func (transaction *BBoltTransaction) Get(key []byte) ([]byte, error) {
	if len(key) == 0 {
		return nil, kv.ErrEmptyKey
	}

	return transaction.bucket.Get(key), nil
}

// Keys implements kv.Transaction.Keys
func (transaction *BBoltTransaction) Keys(keys keys.Range, order kv.SortOrder) (kv.Iterator, error) {
	return &BBoltIterator{cursor: transaction.bucket.Cursor(), keys: keys, order: order}, nil
}

// Commit implements kv.Transaction.Commit
func (transaction *BBoltTransaction) Commit() error {
	if transaction.done {
		return errors.New("transaction already ended")
	}

	defer transaction.end()

	return transaction.transaction.Commit()
}

// Rollback implements kv.Transaction.Rollback
func (transaction *BBoltTransaction) Rollback() error {
	if transaction.done {
		return nil
	}

	defer transaction.end()

	return transaction.transaction.Rollback()
}

func (transaction *BBoltTransaction) end() {
	transaction.done = true
	transaction.release()
}

var _ kv.Iterator = (*BBoltIterator)(nil)

// BBoltIterator implements kv.Iterator over a bucket cursor
type BBoltIterator struct {
	cursor  *bolt.Cursor
	keys    keys.Range
	order   kv.SortOrder
	started bool
	key     []byte
	value   []byte
}

// Next implements kv.Iterator.Next
func (iter *BBoltIterator) Next() bool {
	for {
		if !iter.started {
			iter.key, iter.value = iter.first()
			iter.started = true
		} else if iter.order == kv.SortOrderDesc {
			iter.key, iter.value = iter.cursor.Prev()
		} else {
			iter.key, iter.value = iter.cursor.Next()
		}

		if iter.key == nil {
			return false
		}

		// Nested buckets have nil values. Regions never contain them.
		if iter.value == nil {
			continue
		}

		if iter.order == kv.SortOrderDesc {
			if iter.keys.Min != nil && bytes.Compare(iter.key, iter.keys.Min) < 0 {
				iter.key, iter.value = nil, nil

				return false
			}
		} else if iter.keys.Max != nil && bytes.Compare(iter.key, iter.keys.Max) >= 0 {
			iter.key, iter.value = nil, nil

			return false
		}

		return true
	}
}

func (iter *BBoltIterator) first() ([]byte, []byte) {
	if iter.order == kv.SortOrderDesc {
		if iter.keys.Max == nil {
			return iter.cursor.Last()
		}

		// Seek lands on the first key >= Max which is out of range.
		if k, _ := iter.cursor.Seek(iter.keys.Max); k == nil {
			return iter.cursor.Last()
		}

		return iter.cursor.Prev()
	}

	if iter.keys.Min == nil {
		return iter.cursor.First()
	}

	return iter.cursor.Seek(iter.keys.Min)
}

// Key implements kv.Iterator.Key
func (iter *BBoltIterator) Key() []byte {
	return iter.key
}

// Value implements kv.Iterator.Value
func (iter *BBoltIterator) Value() []byte {
	return iter.value
}

// Error implements kv.Iterator.Error
func (iter *BBoltIterator) Error() error {
	return nil
}
