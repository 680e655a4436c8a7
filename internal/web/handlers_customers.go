package web

import (
	"net/http"
	"strconv"

	"opsboard/internal/analytics"
	"opsboard/internal/dataset"
	"opsboard/internal/util"
)

func (s *Server) handleCustomers(w http.ResponseWriter, r *http.Request) {
	ds := s.cache.Snapshot()
	f, form, err := pageFilters(r, ds)
	sh := shell{PageTitle: "Customers", Active: "Customers", Filters: form}
	if err != nil {
		s.renderError(w, r, sh, err.Error())
		return
	}

	rows := ds.Select(f)

	top := analytics.TopCustomers(rows, 20)
	topRows := make([][]string, len(top))
	for i, c := range top {
		topRows[i] = []string{c.CustomerID, util.Money(c.Revenue)}
	}
	sh.Tables = []tableSection{{
		Title:   "Top customers by revenue",
		Columns: []string{"Customer ID", "Revenue"},
		Rows:    topRows,
	}}

	if ds.Has(dataset.ColFirstOrderDate) {
		cohort := analytics.CohortCounts(rows)
		sh.Tables = append(sh.Tables, cohortSection(cohort))
	} else {
		sh.Notices = append(sh.Notices,
			"Add a 'first_order_date' column to see cohort retention.")
	}

	if len(rows) == 0 {
		sh.Notices = append(sh.Notices, "No rows match the current filters.")
	}

	s.renderPage(w, r, sh)
}

// cohortSection pivots the cohort counts into a month-by-month table. Rows
// are first-order months, columns are order months.
func cohortSection(t analytics.CohortTable) tableSection {
	cols := append([]string{"Cohort"}, t.OrderMonths...)
	table := make([][]string, len(t.FirstMonths))
	for i, first := range t.FirstMonths {
		row := make([]string, 0, len(cols))
		row = append(row, first)
		for _, month := range t.OrderMonths {
			if n := t.Counts[first][month]; n > 0 {
				row = append(row, strconv.FormatInt(n, 10))
			} else {
				row = append(row, "")
			}
		}
		table[i] = row
	}
	return tableSection{
		Title:   "Cohort retention (active customers per month)",
		Columns: cols,
		Rows:    table,
	}
}
