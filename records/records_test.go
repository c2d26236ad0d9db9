package records_test

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/jrife/recordkeeper/records"
	"github.com/jrife/recordkeeper/records/validate"
	"github.com/jrife/recordkeeper/storage/collection"
	"github.com/jrife/recordkeeper/storage/counter"
	"github.com/jrife/recordkeeper/storage/kv"
	"github.com/jrife/recordkeeper/storage/kv/plugins"
	"github.com/jrife/recordkeeper/storage/regions"
)

type owner struct {
	ID        uint64 `json:"id"`
	Name      string `json:"name"`
	CreatedAt uint64 `json:"created_at"`
}

func (o owner) Marshal() ([]byte, error)     { return json.Marshal(o) }
func (o *owner) Unmarshal(data []byte) error { return json.Unmarshal(data, o) }

type item struct {
	ID        uint64 `json:"id"`
	OwnerID   uint64 `json:"owner_id"`
	Label     string `json:"label"`
	CreatedAt uint64 `json:"created_at"`
}

func (i item) Marshal() ([]byte, error)     { return json.Marshal(i) }
func (i *item) Unmarshal(data []byte) error { return json.Unmarshal(data, i) }

const (
	counterRegion kv.RegionID = 0
	ownersRegion  kv.RegionID = 1
	itemsRegion   kv.RegionID = 2
)

var layout = regions.Layout{
	counterRegion: "counter",
	ownersRegion:  "owners",
	itemsRegion:   "items",
}

type fixture struct {
	store  *records.Store
	owners *collection.Collection[owner]
	items  *collection.Collection[item]
}

func (f fixture) createOwner(ctx context.Context, name string) (owner, error) {
	return records.Create(ctx, f.store, f.owners, func(ctx context.Context) error {
		return validate.NotEmpty("Name cannot be empty", name)
	}, func(id, createdAt uint64) owner {
		return owner{ID: id, Name: name, CreatedAt: createdAt}
	})
}

func (f fixture) createItem(ctx context.Context, ownerID uint64, label string) (item, error) {
	return records.Create(ctx, f.store, f.items, func(ctx context.Context) error {
		if err := validate.NotEmpty("All fields must be provided.", label); err != nil {
			return err
		}

		return validate.References(ctx, validate.Required("Owner", f.owners, ownerID))
	}, func(id, createdAt uint64) item {
		return item{ID: id, OwnerID: ownerID, Label: label, CreatedAt: createdAt}
	})
}

type tempFixtureBuilder func(t *testing.T, clock func() time.Time) fixture

func builder(plugin kv.Plugin) tempFixtureBuilder {
	return func(t *testing.T, clock func() time.Time) fixture {
		rootStore, err := plugin.NewTempRootStore()

		if err != nil {
			t.Fatalf("could not build a %s store: %s", plugin.Name(), err)
		}

		store, err := records.New(rootStore, records.Config{Layout: layout, Counter: counterRegion, Clock: clock})

		if err != nil {
			rootStore.Delete()
			t.Fatalf("expected err to be nil, got %#v", err)
		}

		t.Cleanup(func() { store.Purge() })

		return fixture{
			store:  store,
			owners: records.Collection(store, ownersRegion, collection.MessageCodec[owner](256)),
			items:  records.Collection(store, itemsRegion, collection.MessageCodec[item](256)),
		}
	}
}

func TestRecords(t *testing.T) {
	for _, plugin := range plugins.Plugins() {
		t.Run(fmt.Sprintf("Records(%s)", plugin.Name()), func(t *testing.T) {
			testRecords(builder(plugin), t)
		})
	}
}

func testRecords(builder tempFixtureBuilder, t *testing.T) {
	t.Run("SharedIdentifiers", func(t *testing.T) { testSharedIdentifiers(builder, t) })
	t.Run("FailedCheckBurnsNothing", func(t *testing.T) { testFailedCheckBurnsNothing(builder, t) })
	t.Run("List", func(t *testing.T) { testList(builder, t) })
	t.Run("Timestamps", func(t *testing.T) { testTimestamps(builder, t) })
}

func testSharedIdentifiers(builder tempFixtureBuilder, t *testing.T) {
	ctx := context.Background()
	f := builder(t, nil)
	last := uint64(0)

	for i := 0; i < 4; i++ {
		o, err := f.createOwner(ctx, fmt.Sprintf("owner-%d", i))

		if err != nil {
			t.Fatalf("expected err to be nil, got %#v", err)
		}

		it, err := f.createItem(ctx, o.ID, "thing")

		if err != nil {
			t.Fatalf("expected err to be nil, got %#v", err)
		}

		if o.ID <= last || it.ID <= o.ID {
			t.Fatalf("expected identifiers to increase across collections: last=%d owner=%d item=%d", last, o.ID, it.ID)
		}

		last = it.ID
	}

	if last != 8 {
		t.Fatalf("expected 8 identifiers to have been issued, got %d", last)
	}

	lastID, err := f.store.LastID(ctx)

	if err != nil || lastID != 8 {
		t.Fatalf("expected 8, nil, got %d, %#v", lastID, err)
	}
}

func testFailedCheckBurnsNothing(builder tempFixtureBuilder, t *testing.T) {
	ctx := context.Background()
	f := builder(t, nil)

	ann, err := f.createOwner(ctx, "Ann")

	if err != nil || ann.ID != 1 {
		t.Fatalf("expected owner 1, got %#v, %#v", ann, err)
	}

	if _, err := f.createOwner(ctx, ""); !errors.Is(err, validate.ErrMissingField) {
		t.Fatalf("expected ErrMissingField, got %#v", err)
	}

	if _, err := f.createItem(ctx, 999, "thing"); err == nil || err.Error() != "Owner ID does not exist." {
		t.Fatalf("expected a does not exist error, got %#v", err)
	}

	// An item pointing at an item is not pointing at an owner
	if _, err := f.createItem(ctx, ann.ID+1, "thing"); !errors.Is(err, validate.ErrNotExist) {
		t.Fatalf("expected ErrNotExist, got %#v", err)
	}

	it, err := f.createItem(ctx, ann.ID, "thing")

	if err != nil {
		t.Fatalf("expected err to be nil, got %#v", err)
	}

	if it.ID != 2 {
		t.Fatalf("expected failed calls not to consume identifiers, got %d", it.ID)
	}
}

func testList(builder tempFixtureBuilder, t *testing.T) {
	ctx := context.Background()
	f := builder(t, nil)

	_, err := records.ListAll(ctx, f.store, f.owners, "owners")

	if !errors.Is(err, records.ErrNotFound) || err.Error() != "No owners found." {
		t.Fatalf("expected not found, got %#v", err)
	}

	created, err := f.createOwner(ctx, "Ann")

	if err != nil {
		t.Fatalf("expected err to be nil, got %#v", err)
	}

	list, err := records.ListAll(ctx, f.store, f.owners, "owners")

	if err != nil {
		t.Fatalf("expected err to be nil, got %#v", err)
	}

	if diff := cmp.Diff([]owner{created}, list); diff != "" {
		t.Fatal(diff)
	}

	other, _ := f.createOwner(ctx, "Bob")
	f.createItem(ctx, created.ID, "a")
	f.createItem(ctx, other.ID, "b")
	f.createItem(ctx, created.ID, "c")

	mine, err := records.ListWhere(ctx, f.store, f.items, "items", func(i item) bool { return i.OwnerID == created.ID })

	if err != nil {
		t.Fatalf("expected err to be nil, got %#v", err)
	}

	labels := []string{}

	for _, i := range mine {
		labels = append(labels, i.Label)
	}

	if diff := cmp.Diff([]string{"a", "c"}, labels); diff != "" {
		t.Fatal(diff)
	}

	if _, err := records.ListWhere(ctx, f.store, f.items, "items", func(i item) bool { return i.OwnerID == 999 }); !errors.Is(err, records.ErrNotFound) {
		t.Fatalf("expected not found, got %#v", err)
	}
}

func testTimestamps(builder tempFixtureBuilder, t *testing.T) {
	ctx := context.Background()
	ticks := []time.Time{
		time.Unix(100, 0),
		time.Unix(200, 0),
		time.Unix(150, 0),
		time.Unix(300, 0),
	}
	i := 0
	clock := func() time.Time {
		tick := ticks[i]
		i++

		return tick
	}

	f := builder(t, clock)
	expected := []uint64{100e9, 200e9, 200e9, 300e9}

	for _, want := range expected {
		o, err := f.createOwner(ctx, "Ann")

		if err != nil {
			t.Fatalf("expected err to be nil, got %#v", err)
		}

		if o.CreatedAt != want {
			t.Fatalf("expected %d, got %d", want, o.CreatedAt)
		}
	}
}

type failingRootStore struct {
	kv.RootStore
}

func (rootStore failingRootStore) Region(id kv.RegionID) kv.Region {
	region := rootStore.RootStore.Region(id)

	if id == counterRegion {
		return failingRegion{region}
	}

	return region
}

type failingRegion struct {
	kv.Region
}

var errDisk = errors.New("disk full")

func (region failingRegion) Begin(writable bool) (kv.Transaction, error) {
	if writable {
		return nil, errDisk
	}

	return region.Region.Begin(writable)
}

func TestCreateCounterFailure(t *testing.T) {
	ctx := context.Background()
	rootStore, err := plugins.Plugin("memory").NewTempRootStore()

	if err != nil {
		t.Fatalf("expected err to be nil, got %#v", err)
	}

	store, err := records.New(failingRootStore{rootStore}, records.Config{Layout: layout, Counter: counterRegion})

	if err != nil {
		t.Fatalf("expected err to be nil, got %#v", err)
	}

	f := fixture{
		store:  store,
		owners: records.Collection(store, ownersRegion, collection.MessageCodec[owner](256)),
	}

	if _, err := f.createOwner(ctx, "Ann"); !errors.Is(err, counter.ErrPersist) || !errors.Is(err, errDisk) {
		t.Fatalf("expected ErrPersist, got %#v", err)
	}

	if _, err := records.ListAll(ctx, store, f.owners, "owners"); !errors.Is(err, records.ErrNotFound) {
		t.Fatalf("expected nothing to have been inserted, got %#v", err)
	}
}

func TestCreateTooLarge(t *testing.T) {
	ctx := context.Background()
	store, err := records.Open(records.Config{Driver: "memory", Layout: layout, Counter: counterRegion})

	if err != nil {
		t.Fatalf("expected err to be nil, got %#v", err)
	}

	defer store.Close()

	owners := records.Collection(store, ownersRegion, collection.MessageCodec[owner](16))

	_, err = records.Create(ctx, store, owners, nil, func(id, createdAt uint64) owner {
		return owner{ID: id, Name: "a name that will not fit", CreatedAt: createdAt}
	})

	if !errors.Is(err, collection.ErrTooLarge) {
		t.Fatalf("expected ErrTooLarge, got %#v", err)
	}

	var tooLarge *collection.TooLargeError

	if !errors.As(err, &tooLarge) || tooLarge.ID != 0 {
		t.Fatalf("expected TooLargeError without an identifier, got %#v", err)
	}

	if strings.Contains(err.Error(), fmt.Sprint(uint64(math.MaxUint64))) {
		t.Fatalf("expected error not to name an identifier, got %q", err.Error())
	}

	if lastID, err := store.LastID(ctx); err != nil || lastID != 0 {
		t.Fatalf("expected no identifier to be issued, got %d, %#v", lastID, err)
	}
}

func TestOpen(t *testing.T) {
	testCases := map[string]struct {
		config records.Config
		err    error
	}{
		"unknown driver": {
			config: records.Config{Driver: "floppy", Layout: layout, Counter: counterRegion},
			err:    records.ErrNoSuchDriver,
		},
		"counter outside layout": {
			config: records.Config{Driver: "memory", Layout: regions.Layout{1: "owners"}, Counter: counterRegion},
		},
		"bbolt without a path": {
			config: records.Config{Driver: "bbolt", Layout: layout, Counter: counterRegion},
		},
		"duplicate region names": {
			config: records.Config{Driver: "memory", Layout: regions.Layout{0: "counter", 1: "counter"}, Counter: counterRegion},
			err:    regions.ErrDuplicateRegion,
		},
	}

	for name, testCase := range testCases {
		t.Run(name, func(t *testing.T) {
			store, err := records.Open(testCase.config)

			if err == nil {
				store.Close()
				t.Fatalf("expected an error")
			}

			if testCase.err != nil && !errors.Is(err, testCase.err) {
				t.Fatalf("expected %v, got %#v", testCase.err, err)
			}
		})
	}
}
