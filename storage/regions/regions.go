// Package regions hands out fixed-identity regions of a kv root store.
//
// A layout names every region an application uses. The mapping from
// region id to purpose is a static convention of the application: it
// is never written to or discovered from the store, so changing it
// between versions orphans existing data.
package regions

import (
	"errors"
	"fmt"
	"sort"

	"github.com/jrife/recordkeeper/storage/kv"
)

var (
	// ErrDuplicateRegion is returned by Reserve when a layout
	// gives the same name to two regions
	ErrDuplicateRegion = errors.New("region assigned twice in layout")
)

// Layout maps region ids to the name of the structure
// that lives in that region
type Layout map[kv.RegionID]string

// Validate checks that no name is used twice
func (layout Layout) Validate() error {
	names := map[string]kv.RegionID{}

	for id, name := range layout {
		if name == "" {
			return fmt.Errorf("region %d has no name", id)
		}

		if other, ok := names[name]; ok {
			return fmt.Errorf("%w: %q used by regions %d and %d", ErrDuplicateRegion, name, other, id)
		}

		names[name] = id
	}

	return nil
}

// IDs returns the ids in the layout in ascending order
func (layout Layout) IDs() []kv.RegionID {
	ids := make([]kv.RegionID, 0, len(layout))

	for id := range layout {
		ids = append(ids, id)
	}

	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	return ids
}

// Partitioner holds reserved regions
type Partitioner struct {
	layout  Layout
	regions map[kv.RegionID]kv.Region
}

// Reserve creates every region in the layout that does not
// exist yet and returns a partitioner for them. Reserve is
// idempotent: regions that already exist keep their contents.
// An error from Reserve is fatal for the caller; no region
// handles are returned unless every region was reserved.
func Reserve(rootStore kv.RootStore, layout Layout) (*Partitioner, error) {
	if err := layout.Validate(); err != nil {
		return nil, err
	}

	partitioner := &Partitioner{
		layout:  Layout{},
		regions: map[kv.RegionID]kv.Region{},
	}

	for _, id := range layout.IDs() {
		region := rootStore.Region(id)

		if err := region.Create(); err != nil {
			return nil, fmt.Errorf("could not reserve region %d (%s): %w", id, layout[id], err)
		}

		partitioner.layout[id] = layout[id]
		partitioner.regions[id] = region
	}

	return partitioner, nil
}

// Region returns the handle for exactly the region with this id.
// It panics if the id was not part of the reserved layout.
func (partitioner *Partitioner) Region(id kv.RegionID) kv.Region {
	region, ok := partitioner.regions[id]

	if !ok {
		panic(fmt.Sprintf("region %d was not reserved", id))
	}

	return region
}

// Name returns the name of the region with this id
func (partitioner *Partitioner) Name(id kv.RegionID) string {
	return partitioner.layout[id]
}

// Layout returns a copy of the reserved layout
func (partitioner *Partitioner) Layout() Layout {
	layout := make(Layout, len(partitioner.layout))

	for id, name := range partitioner.layout {
		layout[id] = name
	}

	return layout
}
