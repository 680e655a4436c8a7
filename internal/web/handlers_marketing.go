package web

import (
	"net/http"
	"strconv"

	"github.com/go-echarts/go-echarts/v2/components"

	"opsboard/internal/analytics"
	"opsboard/internal/charts"
	"opsboard/internal/dataset"
	"opsboard/internal/util"
)

func (s *Server) handleMarketing(w http.ResponseWriter, r *http.Request) {
	ds := s.cache.Snapshot()
	f, form, err := pageFilters(r, ds)
	sh := shell{PageTitle: "Marketing", Active: "Marketing", Filters: form}
	if err != nil {
		s.renderError(w, r, sh, err.Error())
		return
	}

	rows := ds.Select(f)
	var pageCharts []components.Charter

	if ds.Has(dataset.ColSpend) {
		perf := analytics.ChannelROAS(rows)
		pageCharts = append(pageCharts, charts.ROASBar(perf))

		table := make([][]string, len(perf))
		for i, p := range perf {
			table[i] = []string{p.Channel, util.Money(p.Spend), util.Money(p.Revenue), trimROAS(p.ROAS)}
		}
		sh.Tables = append(sh.Tables, tableSection{
			Title:   "Channel performance",
			Columns: []string{"Channel", "Spend", "Revenue", "ROAS"},
			Rows:    table,
		})
	} else {
		sh.Notices = append(sh.Notices,
			"No 'spend' column present in dataset. Add ad spend per row to calculate CAC / ROAS.")
	}

	if ds.Has(dataset.ColVisits) {
		pageCharts = append(pageCharts, charts.FunnelChart(analytics.Funnel(rows)))
	} else {
		sh.Notices = append(sh.Notices,
			"Add events columns like 'visits', 'add_to_cart' to visualize the funnel.")
	}

	if len(rows) == 0 {
		sh.Notices = append(sh.Notices, "No rows match the current filters.")
	}

	s.renderPage(w, r, sh, pageCharts...)
}

func trimROAS(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64) + "x"
}
