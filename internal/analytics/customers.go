package analytics

import (
	"sort"

	"opsboard/internal/dataset"
	"opsboard/internal/util"
)

// CustomerRevenue is one customer's summed revenue.
type CustomerRevenue struct {
	CustomerID string
	Revenue    float64
}

// TopCustomers returns the n highest-revenue customers, descending.
func TopCustomers(rows []dataset.Row, n int) []CustomerRevenue {
	sums := make(map[string]float64)
	for _, r := range rows {
		if r.CustomerID != "" {
			sums[r.CustomerID] += r.Revenue
		}
	}

	out := make([]CustomerRevenue, 0, len(sums))
	for id, v := range sums {
		out = append(out, CustomerRevenue{CustomerID: id, Revenue: v})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Revenue != out[j].Revenue {
			return out[i].Revenue > out[j].Revenue
		}
		return out[i].CustomerID < out[j].CustomerID
	})
	if n > 0 && len(out) > n {
		out = out[:n]
	}
	return out
}

// CohortTable is the monthly retention pivot: distinct customers active in
// each order month, grouped by their first-order month.
type CohortTable struct {
	FirstMonths []string // row keys, ascending (2006-01)
	OrderMonths []string // column keys, ascending
	Counts      map[string]map[string]int64
}

// CohortCounts builds the retention pivot from rows carrying a first-order
// date. Rows without one are ignored.
func CohortCounts(rows []dataset.Row) CohortTable {
	type pair struct{ first, order string }
	seen := make(map[pair]map[string]bool)
	firstSet := make(map[string]bool)
	orderSet := make(map[string]bool)

	for _, r := range rows {
		if r.FirstOrderDate.IsZero() || r.CustomerID == "" {
			continue
		}
		p := pair{util.MonthKey(r.FirstOrderDate), util.MonthKey(r.Date)}
		if seen[p] == nil {
			seen[p] = make(map[string]bool)
		}
		seen[p][r.CustomerID] = true
		firstSet[p.first] = true
		orderSet[p.order] = true
	}

	t := CohortTable{Counts: make(map[string]map[string]int64)}
	for m := range firstSet {
		t.FirstMonths = append(t.FirstMonths, m)
	}
	for m := range orderSet {
		t.OrderMonths = append(t.OrderMonths, m)
	}
	sort.Strings(t.FirstMonths)
	sort.Strings(t.OrderMonths)

	for p, customers := range seen {
		if t.Counts[p.first] == nil {
			t.Counts[p.first] = make(map[string]int64)
		}
		t.Counts[p.first][p.order] = int64(len(customers))
	}
	return t
}
