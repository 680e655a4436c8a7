package analytics

import (
	"sort"

	"opsboard/internal/dataset"
)

// WarehouseStock is total inventory on hand per warehouse.
type WarehouseStock struct {
	Warehouse string
	OnHand    float64
}

// InventoryByWarehouse sums on-hand inventory per warehouse, sorted by
// warehouse name.
func InventoryByWarehouse(rows []dataset.Row) []WarehouseStock {
	sums := make(map[string]float64)
	for _, r := range rows {
		sums[r.Warehouse] += r.InventoryOnHand
	}

	out := make([]WarehouseStock, 0, len(sums))
	for w, v := range sums {
		out = append(out, WarehouseStock{Warehouse: w, OnHand: v})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Warehouse < out[j].Warehouse })
	return out
}

// Stock status values.
const (
	StockLow = "LOW"
	StockOK  = "OK"
)

// StockLevel is a product's mean on-hand inventory with its threshold status.
type StockLevel struct {
	ProductID  string
	Name       string
	MeanOnHand float64
	Status     string
}

// LowStock returns products ordered by mean on-hand ascending, capped at
// limit. Products at or below threshold are flagged LOW.
func LowStock(rows []dataset.Row, threshold float64, limit int) []StockLevel {
	type key struct{ id, name string }
	type acc struct {
		sum float64
		n   int64
	}
	accs := make(map[key]*acc)
	for _, r := range rows {
		k := key{r.ProductID, r.ProductName}
		a := accs[k]
		if a == nil {
			a = &acc{}
			accs[k] = a
		}
		a.sum += r.InventoryOnHand
		a.n++
	}

	out := make([]StockLevel, 0, len(accs))
	for k, a := range accs {
		mean := a.sum / float64(a.n)
		status := StockOK
		if mean <= threshold {
			status = StockLow
		}
		out = append(out, StockLevel{ProductID: k.id, Name: k.name, MeanOnHand: mean, Status: status})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].MeanOnHand != out[j].MeanOnHand {
			return out[i].MeanOnHand < out[j].MeanOnHand
		}
		return out[i].Name < out[j].Name
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}
