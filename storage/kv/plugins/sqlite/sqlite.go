package sqlite

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"
	"sync"

	"github.com/jrife/recordkeeper/storage/kv"
	"github.com/jrife/recordkeeper/storage/kv/keys"
	"github.com/jrife/recordkeeper/utils/uuid"
	_ "modernc.org/sqlite"
)

const (
	// DriverName is the name under which this plugin is registered
	DriverName = "sqlite"
	// DefaultBusyTimeout is how long, in milliseconds, a statement
	// waits for a lock held by another process
	DefaultBusyTimeout = 5000
)

const regionPrefix = "region_"

// Plugins returns the plugins provided by this package
func Plugins() []kv.Plugin {
	return []kv.Plugin{
		&SQLitePlugin{},
	}
}

var _ kv.Plugin = (*SQLitePlugin)(nil)

// SQLitePlugin creates root stores backed by a SQLite database file
type SQLitePlugin struct {
}

// Name implements kv.Plugin.Name
func (plugin *SQLitePlugin) Name() string {
	return DriverName
}

// NewRootStore implements kv.Plugin.NewRootStore.
// "path" is required.
func (plugin *SQLitePlugin) NewRootStore(options kv.PluginOptions) (kv.RootStore, error) {
	path, ok := options["path"]

	if !ok {
		return nil, fmt.Errorf("\"path\" is required")
	}

	pathString, ok := path.(string)

	if !ok || pathString == "" {
		return nil, fmt.Errorf("\"path\" must be a non-empty string")
	}

	return New(pathString)
}

// NewTempRootStore implements kv.Plugin.NewTempRootStore
func (plugin *SQLitePlugin) NewTempRootStore() (kv.RootStore, error) {
	return plugin.NewRootStore(kv.PluginOptions{
		"path": uuid.TempPath("sqlite"),
	})
}

var _ kv.RootStore = (*SQLiteRootStore)(nil)

// SQLiteRootStore implements kv.RootStore. Each region is a table
// named after its zero padded region id, so table names sort in
// region order. All access goes through one connection.
type SQLiteRootStore struct {
	db     *sql.DB
	path   string
	mu     sync.RWMutex
	closed bool
}

// New opens or creates the database file at path
func New(path string) (*SQLiteRootStore, error) {
	dsn := fmt.Sprintf("%s?_pragma=busy_timeout(%d)&_pragma=journal_mode(WAL)", path, DefaultBusyTimeout)
	db, err := sql.Open("sqlite", dsn)

	if err != nil {
		return nil, fmt.Errorf("could not open sqlite store at %s: %w", path, err)
	}

	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		db.Close()

		return nil, fmt.Errorf("could not open sqlite store at %s: %w", path, err)
	}

	return &SQLiteRootStore{db: db, path: path}, nil
}

// Close implements kv.RootStore.Close
func (rootStore *SQLiteRootStore) Close() error {
	rootStore.mu.Lock()
	defer rootStore.mu.Unlock()

	if rootStore.closed {
		return nil
	}

	rootStore.closed = true

	return rootStore.db.Close()
}

// Delete implements kv.RootStore.Delete
func (rootStore *SQLiteRootStore) Delete() error {
	if err := rootStore.Close(); err != nil {
		return fmt.Errorf("could not close store: %w", err)
	}

	for _, suffix := range []string{"", "-wal", "-shm"} {
		if err := os.RemoveAll(rootStore.path + suffix); err != nil {
			return fmt.Errorf("could not remove path %s: %w", rootStore.path+suffix, err)
		}
	}

	return nil
}

// Regions implements kv.RootStore.Regions
func (rootStore *SQLiteRootStore) Regions() ([]kv.RegionID, error) {
	rootStore.mu.RLock()
	defer rootStore.mu.RUnlock()

	if rootStore.closed {
		return nil, kv.ErrClosed
	}

	rows, err := rootStore.db.Query("SELECT name FROM sqlite_master WHERE type = 'table' AND name LIKE ?", regionPrefix+"%")

	if err != nil {
		return nil, fmt.Errorf("could not list regions: %w", err)
	}

	defer rows.Close()

	regions := []kv.RegionID{}

	for rows.Next() {
		var name string

		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("could not list regions: %w", err)
		}

		var id int

		if _, err := fmt.Sscanf(strings.TrimPrefix(name, regionPrefix), "%d", &id); err != nil || id < 0 || id > 255 {
			continue
		}

		regions = append(regions, kv.RegionID(id))
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("could not list regions: %w", err)
	}

	sort.Slice(regions, func(i, j int) bool { return regions[i] < regions[j] })

	return regions, nil
}

// Region implements kv.RootStore.Region
func (rootStore *SQLiteRootStore) Region(id kv.RegionID) kv.Region {
	return &SQLiteRegion{rootStore: rootStore, id: id}
}

var _ kv.Region = (*SQLiteRegion)(nil)

// SQLiteRegion implements kv.Region
type SQLiteRegion struct {
	rootStore *SQLiteRootStore
	id        kv.RegionID
}

func (region *SQLiteRegion) table() string {
	return fmt.Sprintf("%s%03d", regionPrefix, region.id)
}

// ID implements kv.Region.ID
func (region *SQLiteRegion) ID() kv.RegionID {
	return region.id
}

// Create implements kv.Region.Create
func (region *SQLiteRegion) Create() error {
	region.rootStore.mu.RLock()
	defer region.rootStore.mu.RUnlock()

	if region.rootStore.closed {
		return kv.ErrClosed
	}

	if _, err := region.rootStore.db.Exec("CREATE TABLE IF NOT EXISTS " + region.table() + " (k BLOB PRIMARY KEY, v BLOB) WITHOUT ROWID"); err != nil {
		return fmt.Errorf("could not create region %d: %w", region.id, err)
	}

	return nil
}

// Begin implements kv.Region.Begin. The root store's read lock
// is held for the lifetime of the transaction so that Close
// waits for it to end.
func (region *SQLiteRegion) Begin(writable bool) (kv.Transaction, error) {
	region.rootStore.mu.RLock()

	if region.rootStore.closed {
		region.rootStore.mu.RUnlock()

		return nil, kv.ErrClosed
	}

	transaction, err := region.rootStore.db.Begin()

	if err != nil {
		region.rootStore.mu.RUnlock()

		return nil, fmt.Errorf("could not begin transaction: %w", err)
	}

	var exists int

	err = transaction.QueryRow("SELECT COUNT(*) FROM sqlite_master WHERE type = 'table' AND name = ?", region.table()).Scan(&exists)

	if err != nil || exists == 0 {
		transaction.Rollback()
		region.rootStore.mu.RUnlock()

		if err != nil {
			return nil, fmt.Errorf("could not begin transaction: %w", err)
		}

		return nil, kv.ErrNoSuchRegion
	}

	return &SQLiteTransaction{
		transaction: transaction,
		table:       region.table(),
		writable:    writable,
		release:     region.rootStore.mu.RUnlock,
	}, nil
}

var _ kv.Transaction = (*SQLiteTransaction)(nil)

// SQLiteTransaction implements kv.Transaction
type SQLiteTransaction struct {
	transaction *sql.Tx
	table       string
	writable    bool
	release     func()
	done        bool
}

// Put implements kv.Transaction.Put
func (transaction *SQLiteTransaction) Put(key []byte, value []byte) error {
	if len(key) == 0 {
		return kv.ErrEmptyKey
	}

	if value == nil {
		return kv.ErrNilValue
	}

	if !transaction.writable {
		return kv.ErrReadOnly
	}

	_, err := transaction.transaction.Exec(
		"INSERT INTO "+transaction.table+" (k, v) VALUES (?, ?) ON CONFLICT (k) DO UPDATE SET v = excluded.v",
		key, value,
	)

	return err
}

// Get implements kv.Transaction.Get
func (transaction *SQLiteTransaction) Get(key []byte) ([]byte, error) {
	if len(key) == 0 {
		return nil, kv.ErrEmptyKey
	}

	var value []byte

	err := transaction.transaction.QueryRow("SELECT v FROM "+transaction.table+" WHERE k = ?", key).Scan(&value)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	} else if err != nil {
		return nil, err
	}

	// Empty blobs may come back as NULL
	if value == nil {
		value = []byte{}
	}

	return value, nil
}

// Keys implements kv.Transaction.Keys. The range is read eagerly
// so the iterator holds no open statement.
func (transaction *SQLiteTransaction) Keys(keys keys.Range, order kv.SortOrder) (kv.Iterator, error) {
	query := "SELECT k, v FROM " + transaction.table
	conditions := []string{}
	args := []interface{}{}

	if keys.Min != nil {
		conditions = append(conditions, "k >= ?")
		args = append(args, keys.Min)
	}

	if keys.Max != nil {
		conditions = append(conditions, "k < ?")
		args = append(args, keys.Max)
	}

	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}

	if order == kv.SortOrderDesc {
		query += " ORDER BY k DESC"
	} else {
		query += " ORDER BY k ASC"
	}

	rows, err := transaction.transaction.Query(query, args...)

	if err != nil {
		return nil, err
	}

	defer rows.Close()

	iter := &SQLiteIterator{pos: -1}

	for rows.Next() {
		var key, value []byte

		if err := rows.Scan(&key, &value); err != nil {
			return nil, err
		}

		if value == nil {
			value = []byte{}
		}

		iter.keys = append(iter.keys, key)
		iter.values = append(iter.values, value)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return iter, nil
}

// Commit implements kv.Transaction.Commit
func (transaction *SQLiteTransaction) Commit() error {
	if transaction.done {
		return errors.New("transaction already ended")
	}

	defer transaction.end()

	return transaction.transaction.Commit()
}

// Rollback implements kv.Transaction.Rollback
func (transaction *SQLiteTransaction) Rollback() error {
	if transaction.done {
		return nil
	}

	defer transaction.end()

	return transaction.transaction.Rollback()
}

func (transaction *SQLiteTransaction) end() {
	transaction.done = true
	transaction.release()
}

var _ kv.Iterator = (*SQLiteIterator)(nil)

// SQLiteIterator implements kv.Iterator over rows
// read when the iterator was created
type SQLiteIterator struct {
	keys   [][]byte
	values [][]byte
	pos    int
}

// Next implements kv.Iterator.Next
func (iter *SQLiteIterator) Next() bool {
	if iter.pos >= len(iter.keys) {
		return false
	}

	iter.pos++

	return iter.pos < len(iter.keys)
}

// Key implements kv.Iterator.Key
func (iter *SQLiteIterator) Key() []byte {
	if iter.pos < 0 || iter.pos >= len(iter.keys) {
		return nil
	}

	return iter.keys[iter.pos]
}

// Value implements kv.Iterator.Value
func (iter *SQLiteIterator) Value() []byte {
	if iter.pos < 0 || iter.pos >= len(iter.values) {
		return nil
	}

	return iter.values[iter.pos]
}

// Error implements kv.Iterator.Error
func (iter *SQLiteIterator) Error() error {
	return nil
}
