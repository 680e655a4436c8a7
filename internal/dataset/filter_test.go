package dataset

import (
	"testing"
	"time"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func testDataset() *Dataset {
	return &Dataset{Rows: []Row{
		{Date: day(2024, 1, 5), OrderID: "O1", Category: "Kitchen", Channel: "Online", Revenue: 100},
		{Date: day(2024, 1, 10), OrderID: "O2", Category: "Outdoor", Channel: "Retail", Revenue: 200},
		{Date: time.Date(2024, 1, 10, 18, 30, 0, 0, time.UTC), OrderID: "O3", Category: "Kitchen", Channel: "Online", Revenue: 50},
		{Date: day(2024, 2, 1), OrderID: "O4", Category: "Kitchen", Channel: "Retail", Revenue: 75},
	}}
}

func TestSelect_ZeroFilterReturnsAll(t *testing.T) {
	ds := testDataset()
	rows := ds.Select(Filter{})
	if len(rows) != 4 {
		t.Fatalf("rows = %d, want 4", len(rows))
	}
}

func TestSelect_DateBoundsInclusive(t *testing.T) {
	ds := testDataset()
	rows := ds.Select(Filter{From: day(2024, 1, 10), To: day(2024, 1, 10)})
	if len(rows) != 2 {
		t.Fatalf("rows = %d, want 2 (both Jan 10 orders, including the timestamped one)", len(rows))
	}
	for _, r := range rows {
		if r.Date.Day() != 10 {
			t.Errorf("unexpected row %s", r.OrderID)
		}
	}
}

func TestSelect_CategoryAndChannel(t *testing.T) {
	ds := testDataset()

	rows := ds.Select(Filter{Category: "Kitchen"})
	if len(rows) != 3 {
		t.Fatalf("category rows = %d, want 3", len(rows))
	}

	rows = ds.Select(Filter{Category: "Kitchen", Channel: "Retail"})
	if len(rows) != 1 || rows[0].OrderID != "O4" {
		t.Fatalf("combined filter = %v", rows)
	}
}

func TestSelect_NoMatches(t *testing.T) {
	ds := testDataset()
	rows := ds.Select(Filter{Category: "Toys"})
	if len(rows) != 0 {
		t.Fatalf("rows = %d, want 0", len(rows))
	}
}

func TestCacheReplace(t *testing.T) {
	ds := testDataset()
	cache := NewCache(ds)

	snap := cache.Snapshot()
	if len(snap.Rows) != 4 {
		t.Fatalf("snapshot rows = %d", len(snap.Rows))
	}

	cache.Replace(&Dataset{Rows: ds.Rows[:1]})
	if got := len(cache.Snapshot().Rows); got != 1 {
		t.Errorf("after replace rows = %d, want 1", got)
	}
	// The old snapshot is untouched.
	if len(snap.Rows) != 4 {
		t.Errorf("old snapshot mutated")
	}
}

func TestDateRange(t *testing.T) {
	ds := testDataset()
	min, max := ds.DateRange()
	if !min.Equal(day(2024, 1, 5)) {
		t.Errorf("min = %v", min)
	}
	if !max.Equal(day(2024, 2, 1)) {
		t.Errorf("max = %v", max)
	}

	empty := &Dataset{}
	min, max = empty.DateRange()
	if !min.IsZero() || !max.IsZero() {
		t.Errorf("empty range = %v, %v", min, max)
	}
}
