package kv_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/jrife/recordkeeper/storage/kv"
	"github.com/jrife/recordkeeper/storage/kv/keys"
	"github.com/jrife/recordkeeper/storage/kv/plugins"
)

type regionModel map[string][]byte

type tempStoreBuilder func(t *testing.T, model map[kv.RegionID]regionModel) kv.RootStore

func builder(plugin kv.Plugin) tempStoreBuilder {
	return func(t *testing.T, model map[kv.RegionID]regionModel) kv.RootStore {
		rootStore, err := plugin.NewTempRootStore()

		if err != nil {
			t.Fatalf("could not build a %s store: %s", plugin.Name(), err)
		}

		t.Cleanup(func() { rootStore.Delete() })

		for id, contents := range model {
			if err := writeRegion(rootStore.Region(id), contents); err != nil {
				t.Fatalf("could not write region %d: %s", id, err)
			}
		}

		return rootStore
	}
}

func writeRegion(region kv.Region, model regionModel) error {
	if err := region.Create(); err != nil {
		return err
	}

	transaction, err := region.Begin(true)

	if err != nil {
		return err
	}

	defer transaction.Rollback()

	for key, value := range model {
		if err := transaction.Put([]byte(key), value); err != nil {
			return err
		}
	}

	return transaction.Commit()
}

func readRegion(region kv.Region, r keys.Range, order kv.SortOrder) ([]string, error) {
	transaction, err := region.Begin(false)

	if err != nil {
		return nil, err
	}

	defer transaction.Rollback()

	iter, err := transaction.Keys(r, order)

	if err != nil {
		return nil, err
	}

	result := []string{}

	for iter.Next() {
		result = append(result, fmt.Sprintf("%s=%s", iter.Key(), iter.Value()))
	}

	return result, iter.Error()
}

func TestKV(t *testing.T) {
	for _, plugin := range plugins.Plugins() {
		t.Run(fmt.Sprintf("KV(%s)", plugin.Name()), func(t *testing.T) {
			testKV(builder(plugin), t)
		})
	}
}

func testKV(builder tempStoreBuilder, t *testing.T) {
	t.Run("Regions", func(t *testing.T) { testRegions(builder, t) })
	t.Run("Begin", func(t *testing.T) { testBegin(builder, t) })
	t.Run("Transaction", func(t *testing.T) { testTransaction(builder, t) })
	t.Run("Keys", func(t *testing.T) { testKeys(builder, t) })
	t.Run("Close", func(t *testing.T) { testClose(builder, t) })
}

func testRegions(builder tempStoreBuilder, t *testing.T) {
	rootStore := builder(t, map[kv.RegionID]regionModel{
		7: {"a": []byte("1")},
		2: {},
		0: {},
	})

	// Create must be idempotent and must not disturb existing contents
	if err := rootStore.Region(7).Create(); err != nil {
		t.Fatalf("expected err to be nil, got %#v", err)
	}

	regions, err := rootStore.Regions()

	if err != nil {
		t.Fatalf("expected err to be nil, got %#v", err)
	}

	if diff := cmp.Diff([]kv.RegionID{0, 2, 7}, regions); diff != "" {
		t.Fatal(diff)
	}

	contents, err := readRegion(rootStore.Region(7), keys.All(), kv.SortOrderAsc)

	if err != nil {
		t.Fatalf("expected err to be nil, got %#v", err)
	}

	if diff := cmp.Diff([]string{"a=1"}, contents); diff != "" {
		t.Fatal(diff)
	}

	if rootStore.Region(7).ID() != 7 {
		t.Fatalf("expected region id 7, got %d", rootStore.Region(7).ID())
	}
}

func testBegin(builder tempStoreBuilder, t *testing.T) {
	rootStore := builder(t, map[kv.RegionID]regionModel{1: {}})

	if _, err := rootStore.Region(3).Begin(false); err != kv.ErrNoSuchRegion {
		t.Fatalf("expected ErrNoSuchRegion, got %#v", err)
	}

	transaction, err := rootStore.Region(1).Begin(false)

	if err != nil {
		t.Fatalf("expected err to be nil, got %#v", err)
	}

	defer transaction.Rollback()

	if err := transaction.Put([]byte("a"), []byte("b")); err != kv.ErrReadOnly {
		t.Fatalf("expected ErrReadOnly, got %#v", err)
	}
}

func testTransaction(builder tempStoreBuilder, t *testing.T) {
	testCases := map[string]struct {
		initial  regionModel
		puts     [][2]string
		commit   bool
		expected []string
	}{
		"commit": {
			initial:  regionModel{"a": []byte("1")},
			puts:     [][2]string{{"b", "2"}, {"a", "3"}},
			commit:   true,
			expected: []string{"a=3", "b=2"},
		},
		"rollback": {
			initial:  regionModel{"a": []byte("1")},
			puts:     [][2]string{{"b", "2"}, {"a", "3"}, {"a", "4"}},
			commit:   false,
			expected: []string{"a=1"},
		},
	}

	for name, testCase := range testCases {
		t.Run(name, func(t *testing.T) {
			rootStore := builder(t, map[kv.RegionID]regionModel{1: testCase.initial, 2: {"a": []byte("other")}})
			transaction, err := rootStore.Region(1).Begin(true)

			if err != nil {
				t.Fatalf("expected err to be nil, got %#v", err)
			}

			for _, put := range testCase.puts {
				if err := transaction.Put([]byte(put[0]), []byte(put[1])); err != nil {
					t.Fatalf("expected err to be nil, got %#v", err)
				}

				// Reads observe writes made earlier in the same transaction
				value, err := transaction.Get([]byte(put[0]))

				if err != nil {
					t.Fatalf("expected err to be nil, got %#v", err)
				}

				if string(value) != put[1] {
					t.Fatalf("expected %s, got %s", put[1], value)
				}
			}

			if testCase.commit {
				err = transaction.Commit()
			} else {
				err = transaction.Rollback()
			}

			if err != nil {
				t.Fatalf("expected err to be nil, got %#v", err)
			}

			contents, err := readRegion(rootStore.Region(1), keys.All(), kv.SortOrderAsc)

			if err != nil {
				t.Fatalf("expected err to be nil, got %#v", err)
			}

			if diff := cmp.Diff(testCase.expected, contents); diff != "" {
				t.Fatal(diff)
			}

			other, err := readRegion(rootStore.Region(2), keys.All(), kv.SortOrderAsc)

			if err != nil {
				t.Fatalf("expected err to be nil, got %#v", err)
			}

			if diff := cmp.Diff([]string{"a=other"}, other); diff != "" {
				t.Fatal(diff)
			}
		})
	}

	t.Run("empty-key", func(t *testing.T) {
		rootStore := builder(t, map[kv.RegionID]regionModel{1: {}})
		transaction, err := rootStore.Region(1).Begin(true)

		if err != nil {
			t.Fatalf("expected err to be nil, got %#v", err)
		}

		defer transaction.Rollback()

		if err := transaction.Put(nil, []byte("a")); err != kv.ErrEmptyKey {
			t.Fatalf("expected ErrEmptyKey, got %#v", err)
		}

		if err := transaction.Put([]byte("a"), nil); err != kv.ErrNilValue {
			t.Fatalf("expected ErrNilValue, got %#v", err)
		}

		if _, err := transaction.Get([]byte{}); err != kv.ErrEmptyKey {
			t.Fatalf("expected ErrEmptyKey, got %#v", err)
		}

		value, err := transaction.Get([]byte("missing"))

		if err != nil || value != nil {
			t.Fatalf("expected nil, nil, got %#v, %#v", value, err)
		}
	})
}

func testKeys(builder tempStoreBuilder, t *testing.T) {
	model := regionModel{
		"a": []byte("1"),
		"b": []byte("2"),
		"c": []byte("3"),
		"d": []byte("4"),
	}

	testCases := map[string]struct {
		keys     keys.Range
		order    kv.SortOrder
		expected []string
	}{
		"all-asc": {
			keys:     keys.All(),
			order:    kv.SortOrderAsc,
			expected: []string{"a=1", "b=2", "c=3", "d=4"},
		},
		"all-desc": {
			keys:     keys.All(),
			order:    kv.SortOrderDesc,
			expected: []string{"d=4", "c=3", "b=2", "a=1"},
		},
		"gt-asc": {
			keys:     keys.All().Gt([]byte("b")),
			order:    kv.SortOrderAsc,
			expected: []string{"c=3", "d=4"},
		},
		"gte-lt-asc": {
			keys:     keys.All().Gte([]byte("b")).Lt([]byte("d")),
			order:    kv.SortOrderAsc,
			expected: []string{"b=2", "c=3"},
		},
		"gte-lt-desc": {
			keys:     keys.All().Gte([]byte("b")).Lt([]byte("d")),
			order:    kv.SortOrderDesc,
			expected: []string{"c=3", "b=2"},
		},
		"lte-desc": {
			keys:     keys.All().Lte([]byte("b")),
			order:    kv.SortOrderDesc,
			expected: []string{"b=2", "a=1"},
		},
		"lt-past-end-desc": {
			keys:     keys.All().Lt([]byte("z")),
			order:    kv.SortOrderDesc,
			expected: []string{"d=4", "c=3", "b=2", "a=1"},
		},
		"empty-range": {
			keys:     keys.All().Gt([]byte("x")),
			order:    kv.SortOrderAsc,
			expected: []string{},
		},
	}

	rootStore := builder(t, map[kv.RegionID]regionModel{1: model})

	for name, testCase := range testCases {
		t.Run(name, func(t *testing.T) {
			contents, err := readRegion(rootStore.Region(1), testCase.keys, testCase.order)

			if err != nil {
				t.Fatalf("expected err to be nil, got %#v", err)
			}

			if diff := cmp.Diff(testCase.expected, contents); diff != "" {
				t.Fatal(diff)
			}
		})
	}
}

func testClose(builder tempStoreBuilder, t *testing.T) {
	rootStore := builder(t, map[kv.RegionID]regionModel{1: {}})

	if err := rootStore.Close(); err != nil {
		t.Fatalf("expected err to be nil, got %#v", err)
	}

	if _, err := rootStore.Region(1).Begin(false); !errors.Is(err, kv.ErrClosed) {
		t.Fatalf("expected ErrClosed, got %#v", err)
	}

	if err := rootStore.Region(2).Create(); !errors.Is(err, kv.ErrClosed) {
		t.Fatalf("expected ErrClosed, got %#v", err)
	}

	if _, err := rootStore.Regions(); !errors.Is(err, kv.ErrClosed) {
		t.Fatalf("expected ErrClosed, got %#v", err)
	}
}
