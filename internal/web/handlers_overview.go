package web

import (
	"fmt"
	"net/http"

	"golang.org/x/sync/errgroup"

	"opsboard/internal/analytics"
	"opsboard/internal/charts"
	"opsboard/internal/dataset"
	"opsboard/internal/util"
)

func (s *Server) handleOverview(w http.ResponseWriter, r *http.Request) {
	ds := s.cache.Snapshot()
	f, form, err := pageFilters(r, ds)
	sh := shell{PageTitle: "Overview", Active: "Overview", Filters: form}
	if err != nil {
		s.renderError(w, r, sh, err.Error())
		return
	}

	rows := ds.Select(f)

	var (
		summary  analytics.Summary
		trend    []analytics.TimePoint
		top      []analytics.ProductRevenue
		channels []analytics.ChannelRevenue
	)
	g, _ := errgroup.WithContext(r.Context())
	g.Go(func() error {
		summary = analytics.Summarize(rows, ds.Has(dataset.ColFirstOrder))
		return nil
	})
	g.Go(func() error {
		trend = analytics.RevenueSeries(rows, analytics.Daily)
		return nil
	})
	g.Go(func() error {
		top = analytics.TopProducts(rows, 10)
		return nil
	})
	g.Go(func() error {
		channels = analytics.RevenueByChannel(rows)
		return nil
	})
	_ = g.Wait()

	sh.KPIs = []kpiCard{
		{Title: "Revenue", Value: util.Money(summary.TotalRevenue)},
		{Title: "Orders", Value: util.Number(summary.Orders)},
		{Title: "Avg Order Value", Value: util.Money(summary.AOV)},
		{Title: "Average LTV", Value: util.Money(summary.AvgLTV)},
		{Title: "New Customers", Value: util.Number(summary.NewCustomers)},
	}
	if ds.Skipped > 0 {
		sh.Notices = append(sh.Notices,
			fmt.Sprintf("%d rows were skipped for unparseable dates.", ds.Skipped))
	}
	if len(rows) == 0 {
		sh.Notices = append(sh.Notices, "No rows match the current filters.")
	}

	topRows := make([][]string, len(top))
	for i, p := range top {
		topRows[i] = []string{p.ProductID, p.Name, util.Money(p.Revenue)}
	}
	sh.Tables = []tableSection{{
		Title:   "Top products by revenue",
		Columns: []string{"Product ID", "Product", "Revenue"},
		Rows:    topRows,
	}}

	s.renderPage(w, r, sh,
		charts.RevenueTrend(trend),
		charts.ChannelPie(channels))
}
