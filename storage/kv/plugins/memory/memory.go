package memory

import (
	"bytes"
	"errors"
	"sort"
	"sync"

	"github.com/emirpasic/gods/maps/treemap"
	"github.com/jrife/recordkeeper/storage/kv"
	"github.com/jrife/recordkeeper/storage/kv/keys"
)

const (
	// DriverName is the name under which this plugin is registered
	DriverName = "memory"
)

// Plugins returns the plugins provided by this package
func Plugins() []kv.Plugin {
	return []kv.Plugin{
		&MemoryPlugin{},
	}
}

var _ kv.Plugin = (*MemoryPlugin)(nil)

// MemoryPlugin creates volatile root stores. Nothing
// survives the process, which makes it useful for tests
// and throwaway runs.
type MemoryPlugin struct {
}

// Name implements kv.Plugin.Name
func (plugin *MemoryPlugin) Name() string {
	return DriverName
}

// NewRootStore implements kv.Plugin.NewRootStore. It takes no options.
func (plugin *MemoryPlugin) NewRootStore(options kv.PluginOptions) (kv.RootStore, error) {
	return New(), nil
}

// NewTempRootStore implements kv.Plugin.NewTempRootStore
func (plugin *MemoryPlugin) NewTempRootStore() (kv.RootStore, error) {
	return New(), nil
}

func compareBytes(a, b interface{}) int {
	return bytes.Compare(a.([]byte), b.([]byte))
}

var _ kv.RootStore = (*MemoryRootStore)(nil)

// MemoryRootStore implements kv.RootStore with one
// treemap per region
type MemoryRootStore struct {
	mu      sync.RWMutex
	closed  bool
	regions map[kv.RegionID]*memoryRegionState
}

type memoryRegionState struct {
	mu sync.RWMutex
	m  *treemap.Map
}

// New creates an empty root store
func New() *MemoryRootStore {
	return &MemoryRootStore{regions: map[kv.RegionID]*memoryRegionState{}}
}

// Close implements kv.RootStore.Close
func (rootStore *MemoryRootStore) Close() error {
	rootStore.mu.Lock()
	defer rootStore.mu.Unlock()

	rootStore.closed = true

	return nil
}

// Delete implements kv.RootStore.Delete
func (rootStore *MemoryRootStore) Delete() error {
	rootStore.mu.Lock()
	defer rootStore.mu.Unlock()

	rootStore.closed = true
	rootStore.regions = map[kv.RegionID]*memoryRegionState{}

	return nil
}

// Regions implements kv.RootStore.Regions
func (rootStore *MemoryRootStore) Regions() ([]kv.RegionID, error) {
	rootStore.mu.RLock()
	defer rootStore.mu.RUnlock()

	if rootStore.closed {
		return nil, kv.ErrClosed
	}

	regions := make([]kv.RegionID, 0, len(rootStore.regions))

	for id := range rootStore.regions {
		regions = append(regions, id)
	}

	sort.Slice(regions, func(i, j int) bool { return regions[i] < regions[j] })

	return regions, nil
}

// Region implements kv.RootStore.Region
func (rootStore *MemoryRootStore) Region(id kv.RegionID) kv.Region {
	return &MemoryRegion{rootStore: rootStore, id: id}
}

var _ kv.Region = (*MemoryRegion)(nil)

// MemoryRegion implements kv.Region
type MemoryRegion struct {
	rootStore *MemoryRootStore
	id        kv.RegionID
}

// ID implements kv.Region.ID
func (region *MemoryRegion) ID() kv.RegionID {
	return region.id
}

// Create implements kv.Region.Create
func (region *MemoryRegion) Create() error {
	region.rootStore.mu.Lock()
	defer region.rootStore.mu.Unlock()

	if region.rootStore.closed {
		return kv.ErrClosed
	}

	if _, ok := region.rootStore.regions[region.id]; !ok {
		region.rootStore.regions[region.id] = &memoryRegionState{m: treemap.NewWith(compareBytes)}
	}

	return nil
}

// Begin implements kv.Region.Begin. Read-write transactions hold
// the region's write lock until they end, read-only transactions
// hold its read lock.
func (region *MemoryRegion) Begin(writable bool) (kv.Transaction, error) {
	region.rootStore.mu.RLock()

	if region.rootStore.closed {
		region.rootStore.mu.RUnlock()

		return nil, kv.ErrClosed
	}

	state, ok := region.rootStore.regions[region.id]

	if !ok {
		region.rootStore.mu.RUnlock()

		return nil, kv.ErrNoSuchRegion
	}

	var unlock func()

	if writable {
		state.mu.Lock()
		unlock = state.mu.Unlock
	} else {
		state.mu.RLock()
		unlock = state.mu.RUnlock
	}

	return &MemoryTransaction{
		state:    state,
		writable: writable,
		release: func() {
			unlock()
			region.rootStore.mu.RUnlock()
		},
	}, nil
}

type undoEntry struct {
	key     []byte
	value   []byte
	existed bool
}

var _ kv.Transaction = (*MemoryTransaction)(nil)

// MemoryTransaction implements kv.Transaction. Writes are
// applied in place and undone on rollback.
type MemoryTransaction struct {
	state    *memoryRegionState
	writable bool
	undo     []undoEntry
	release  func()
	done     bool
}

// Put implements kv.Transaction.Put
func (transaction *MemoryTransaction) Put(key []byte, value []byte) error {
	if len(key) == 0 {
		return kv.ErrEmptyKey
	}

	if value == nil {
		return kv.ErrNilValue
	}

	if !transaction.writable {
		return kv.ErrReadOnly
	}

	k := append([]byte{}, key...)
	previous, existed := transaction.state.m.Get(k)
	entry := undoEntry{key: k, existed: existed}

	if existed {
		entry.value = previous.([]byte)
	}

	transaction.undo = append(transaction.undo, entry)
	transaction.state.m.Put(k, append([]byte{}, value...))

	return nil
}

// Get implements kv.Transaction.Get
func (transaction *MemoryTransaction) Get(key []byte) ([]byte, error) {
	if len(key) == 0 {
		return nil, kv.ErrEmptyKey
	}

	v, ok := transaction.state.m.Get(key)

	if !ok {
		return nil, nil
	}

	return v.([]byte), nil
}

// Keys implements kv.Transaction.Keys
func (transaction *MemoryTransaction) Keys(keys keys.Range, order kv.SortOrder) (kv.Iterator, error) {
	iter := transaction.state.m.Iterator()

	if order == kv.SortOrderDesc {
		iter.End()
	} else {
		iter.Begin()
	}

	return &MemoryIterator{iter: iter, keys: keys, order: order}, nil
}

// Commit implements kv.Transaction.Commit
func (transaction *MemoryTransaction) Commit() error {
	if transaction.done {
		return errors.New("transaction already ended")
	}

	transaction.undo = nil
	transaction.end()

	return nil
}

// Rollback implements kv.Transaction.Rollback
func (transaction *MemoryTransaction) Rollback() error {
	if transaction.done {
		return nil
	}

	for i := len(transaction.undo) - 1; i >= 0; i-- {
		entry := transaction.undo[i]

		if entry.existed {
			transaction.state.m.Put(entry.key, entry.value)
		} else {
			transaction.state.m.Remove(entry.key)
		}
	}

	transaction.undo = nil
	transaction.end()

	return nil
}

func (transaction *MemoryTransaction) end() {
	transaction.done = true
	transaction.release()
}

var _ kv.Iterator = (*MemoryIterator)(nil)

// MemoryIterator is the iterator implementation for MemoryTransaction
type MemoryIterator struct {
	iter  treemap.Iterator
	keys  keys.Range
	order kv.SortOrder
	done  bool
}

// Next implements kv.Iterator.Next
func (iter *MemoryIterator) Next() bool {
	if iter.done {
		return false
	}

	hasMore := false

	if iter.order == kv.SortOrderDesc {
		for hasMore = iter.iter.Prev(); hasMore && (iter.keys.Max != nil && keys.Compare(iter.iter.Key().([]byte), iter.keys.Max) >= 0); hasMore = iter.iter.Prev() {
		}

		if !hasMore || iter.keys.Min != nil && keys.Compare(iter.iter.Key().([]byte), iter.keys.Min) < 0 {
			iter.done = true

			return false
		}
	} else {
		for hasMore = iter.iter.Next(); hasMore && (iter.keys.Min != nil && keys.Compare(iter.iter.Key().([]byte), iter.keys.Min) < 0); hasMore = iter.iter.Next() {
		}

		if !hasMore || iter.keys.Max != nil && keys.Compare(iter.iter.Key().([]byte), iter.keys.Max) >= 0 {
			iter.done = true

			return false
		}
	}

	return true
}

// Key implements kv.Iterator.Key
func (iter *MemoryIterator) Key() []byte {
	return iter.iter.Key().([]byte)
}

// Value implements kv.Iterator.Value
func (iter *MemoryIterator) Value() []byte {
	return iter.iter.Value().([]byte)
}

// Error implements kv.Iterator.Error
func (iter *MemoryIterator) Error() error {
	return nil
}
