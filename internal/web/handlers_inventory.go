package web

import (
	"fmt"
	"net/http"

	"opsboard/internal/analytics"
	"opsboard/internal/charts"
)

func (s *Server) handleInventory(w http.ResponseWriter, r *http.Request) {
	ds := s.cache.Snapshot()
	f, form, err := pageFilters(r, ds)
	threshold := thresholdParam(r.URL.Query().Get("threshold"), s.opts.StockThreshold)
	form.ShowThreshold = true
	form.Threshold = threshold

	sh := shell{PageTitle: "Inventory", Active: "Inventory", Filters: form}
	if err != nil {
		s.renderError(w, r, sh, err.Error())
		return
	}

	rows := ds.Select(f)
	byWarehouse := analytics.InventoryByWarehouse(rows)
	low := analytics.LowStock(rows, threshold, s.opts.LowStockLimit)

	table := make([][]string, len(low))
	for i, lvl := range low {
		table[i] = []string{lvl.ProductID, lvl.Name, fmt.Sprintf("%.1f", lvl.MeanOnHand), lvl.Status}
	}
	sh.Tables = []tableSection{{
		Title:   fmt.Sprintf("Stock levels (threshold %.0f)", threshold),
		Columns: []string{"Product ID", "Product", "Mean on hand", "Status"},
		Rows:    table,
		Note:    fmt.Sprintf("Lowest %d products by mean on-hand stock.", s.opts.LowStockLimit),
	}}
	if len(rows) == 0 {
		sh.Notices = append(sh.Notices, "No rows match the current filters.")
	}

	s.renderPage(w, r, sh, charts.WarehouseBar(byWarehouse))
}
