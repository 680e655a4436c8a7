package web

import (
	"fmt"
	"net/http"

	"opsboard/internal/analytics"
	"opsboard/internal/charts"
	"opsboard/internal/util"
)

func (s *Server) handleProducts(w http.ResponseWriter, r *http.Request) {
	ds := s.cache.Snapshot()
	f, form, err := pageFilters(r, ds)
	sh := shell{PageTitle: "Products", Active: "Products", Filters: form}
	if err != nil {
		s.renderError(w, r, sh, err.Error())
		return
	}

	rows := ds.Select(f)
	catalog := analytics.CatalogTable(rows, s.opts.CatalogLimit)
	hist := analytics.PriceHistogram(rows, s.opts.HistogramBins)

	table := make([][]string, len(catalog))
	for i, line := range catalog {
		table[i] = []string{
			line.ProductID, line.SKU, line.Name, line.Category,
			util.Money(line.Price), util.Money(line.Cost),
			util.Number(line.Qty), util.Money(line.Revenue), util.Money(line.Margin),
		}
	}
	sh.Tables = []tableSection{{
		Title:   "Catalog",
		Columns: []string{"Product ID", "SKU", "Product", "Category", "Price", "Cost", "Qty sold", "Revenue", "Unit margin"},
		Rows:    table,
		Note:    fmt.Sprintf("Showing up to %d products by revenue.", s.opts.CatalogLimit),
	}}
	if len(rows) == 0 {
		sh.Notices = append(sh.Notices, "No rows match the current filters.")
	}

	s.renderPage(w, r, sh, charts.PriceHistogram(hist))
}
