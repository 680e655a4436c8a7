package web

import (
	"net/http"

	"opsboard/internal/analytics"
	"opsboard/internal/charts"
)

func (s *Server) handleSales(w http.ResponseWriter, r *http.Request) {
	ds := s.cache.Snapshot()
	f, form, err := pageFilters(r, ds)
	q := r.URL.Query()
	gran := analytics.ParseGranularity(q.Get("gran"), analytics.Monthly)
	topN := clampTopN(q.Get("top"), s.opts.TopProducts)
	form.ShowGran = true
	form.Gran = string(gran)
	form.TopN = topN

	sh := shell{PageTitle: "Sales", Active: "Sales", Filters: form}
	if err != nil {
		s.renderError(w, r, sh, err.Error())
		return
	}

	rows := ds.Select(f)
	series := analytics.RevenueSeries(rows, gran)
	top := analytics.TopProducts(rows, topN)

	if len(rows) == 0 {
		sh.Notices = append(sh.Notices, "No rows match the current filters.")
	}

	s.renderPage(w, r, sh,
		charts.RevenueLine(series, "Revenue over time"),
		charts.TopProductsBar(top, charts.TopNTitle(topN)))
}
