// Package dataset loads the orders table the dashboard renders: a flat CSV
// (or SQLite snapshot of it) read wholesale into memory, filtered per page
// view, never mutated.
package dataset

import (
	"sort"
	"sync"
	"time"
)

// Column names recognized in the input. Expected columns that are missing
// load as zero values; optional columns gate whole page sections.
const (
	ColDate            = "date"
	ColOrderID         = "order_id"
	ColProductID       = "product_id"
	ColSKU             = "sku"
	ColProductName     = "product_name"
	ColCategory        = "category"
	ColPrice           = "price"
	ColCost            = "cost"
	ColQty             = "qty"
	ColRevenue         = "revenue"
	ColChannel         = "channel"
	ColCity            = "city"
	ColWarehouse       = "warehouse"
	ColInventoryOnHand = "inventory_on_hand"
	ColLTV             = "ltv"
	ColCustomerID      = "customer_id"
	ColFirstOrder      = "first_order"

	// Optional columns.
	ColSpend          = "spend"
	ColVisits         = "visits"
	ColAddToCart      = "add_to_cart"
	ColCheckout       = "checkout"
	ColFirstOrderDate = "first_order_date"
)

// ExpectedColumns is the baseline schema every dataset is padded to.
var ExpectedColumns = []string{
	ColDate, ColOrderID, ColProductID, ColSKU, ColProductName, ColCategory,
	ColPrice, ColCost, ColQty, ColRevenue, ColChannel, ColCity, ColWarehouse,
	ColInventoryOnHand, ColLTV, ColCustomerID, ColFirstOrder,
}

// OptionalColumns enrich specific pages when present.
var OptionalColumns = []string{
	ColSpend, ColVisits, ColAddToCart, ColCheckout, ColFirstOrderDate,
}

// Row is one order line of the dataset.
type Row struct {
	Date            time.Time
	OrderID         string
	ProductID       string
	SKU             string
	ProductName     string
	Category        string
	Price           float64
	Cost            float64
	Qty             int64
	Revenue         float64
	Channel         string
	City            string
	Warehouse       string
	InventoryOnHand float64
	LTV             float64
	CustomerID      string
	FirstOrder      bool
	FirstOrderDate  time.Time
	Spend           float64
	Visits          float64
	AddToCart       float64
	Checkout        float64
}

// Dataset is an immutable in-memory snapshot of the orders table.
type Dataset struct {
	Rows     []Row
	Columns  map[string]bool // columns actually present in the source
	Skipped  int             // rows dropped for unparseable dates
	LoadedAt time.Time
	Source   string
}

// Has reports whether the source carried the named column.
func (d *Dataset) Has(col string) bool {
	return d.Columns[col]
}

// Categories returns the sorted distinct non-empty categories.
func (d *Dataset) Categories() []string {
	return d.distinct(func(r Row) string { return r.Category })
}

// Channels returns the sorted distinct non-empty channels.
func (d *Dataset) Channels() []string {
	return d.distinct(func(r Row) string { return r.Channel })
}

func (d *Dataset) distinct(key func(Row) string) []string {
	seen := make(map[string]bool)
	for _, r := range d.Rows {
		if k := key(r); k != "" {
			seen[k] = true
		}
	}
	out := make([]string, 0, len(seen))
	for k := range seen {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// DateRange returns the earliest and latest order dates. Both are zero for
// an empty dataset.
func (d *Dataset) DateRange() (min, max time.Time) {
	for _, r := range d.Rows {
		if min.IsZero() || r.Date.Before(min) {
			min = r.Date
		}
		if r.Date.After(max) {
			max = r.Date
		}
	}
	return min, max
}

// Cache holds the current dataset snapshot. Replace swaps the pointer under
// a write lock; readers keep whatever snapshot they already took.
type Cache struct {
	mu sync.RWMutex
	ds *Dataset
}

func NewCache(ds *Dataset) *Cache {
	return &Cache{ds: ds}
}

// Snapshot returns the current dataset.
func (c *Cache) Snapshot() *Dataset {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.ds
}

// Replace installs a new snapshot.
func (c *Cache) Replace(ds *Dataset) {
	c.mu.Lock()
	c.ds = ds
	c.mu.Unlock()
}
