// Package analytics computes the dashboard's aggregates. Every function is
// a pure pass over already-filtered rows, so identical input always yields
// identical output.
package analytics

import "opsboard/internal/dataset"

// Summary holds the executive KPI row.
type Summary struct {
	TotalRevenue float64
	Orders       int64 // distinct order IDs
	AOV          float64
	AvgLTV       float64
	NewCustomers int64
}

// Summarize computes the overview KPIs. NewCustomers counts distinct
// customers flagged as first orders; when the source has no first_order
// column it falls back to all distinct customers.
func Summarize(rows []dataset.Row, hasFirstOrder bool) Summary {
	var s Summary
	orders := make(map[string]bool)
	customers := make(map[string]bool)
	var ltvSum float64

	for _, r := range rows {
		s.TotalRevenue += r.Revenue
		ltvSum += r.LTV
		if r.OrderID != "" {
			orders[r.OrderID] = true
		}
		if r.CustomerID != "" && (!hasFirstOrder || r.FirstOrder) {
			customers[r.CustomerID] = true
		}
	}

	s.Orders = int64(len(orders))
	s.NewCustomers = int64(len(customers))
	if s.Orders > 0 {
		s.AOV = s.TotalRevenue / float64(s.Orders)
	}
	if len(rows) > 0 {
		s.AvgLTV = ltvSum / float64(len(rows))
	}
	return s
}
