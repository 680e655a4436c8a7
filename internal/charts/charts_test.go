package charts

import (
	"bytes"
	"io"
	"strings"
	"testing"
	"time"

	"opsboard/internal/analytics"
)

type renderer interface {
	Render(w io.Writer) error
}

func renderToString(t *testing.T, r renderer) string {
	t.Helper()
	var buf bytes.Buffer
	if err := r.Render(&buf); err != nil {
		t.Fatalf("render: %v", err)
	}
	return buf.String()
}

func TestRevenueTrendRenders(t *testing.T) {
	points := []analytics.TimePoint{
		{Bucket: time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC), Label: "Jan 5", Revenue: 100},
		{Bucket: time.Date(2024, 1, 6, 0, 0, 0, 0, time.UTC), Label: "Jan 6", Revenue: 200},
	}
	out := renderToString(t, RevenueTrend(points))
	if !strings.Contains(out, "Revenue over time") {
		t.Errorf("chart title missing")
	}
	if !strings.Contains(out, "Jan 5") {
		t.Errorf("x axis labels missing")
	}
}

func TestTopProductsBarRenders(t *testing.T) {
	items := []analytics.ProductRevenue{
		{ProductID: "P1", Name: "Pan", Revenue: 135},
		{ProductID: "P2", Name: "Knife", Revenue: 89},
	}
	out := renderToString(t, TopProductsBar(items, TopNTitle(2)))
	if !strings.Contains(out, "Top 2 Products by Revenue") {
		t.Errorf("title missing")
	}
	if !strings.Contains(out, "Pan") {
		t.Errorf("product labels missing")
	}
}

func TestChannelPieRenders(t *testing.T) {
	items := []analytics.ChannelRevenue{
		{Channel: "Online", Revenue: 300},
		{Channel: "Retail", Revenue: 100},
	}
	out := renderToString(t, ChannelPie(items))
	if !strings.Contains(out, "Online") {
		t.Errorf("channel labels missing")
	}
}

func TestFunnelChartRenders(t *testing.T) {
	stages := []analytics.FunnelStage{
		{Stage: "Visits", Value: 100},
		{Stage: "Purchased", Value: 4},
	}
	out := renderToString(t, FunnelChart(stages))
	if !strings.Contains(out, "Visits") {
		t.Errorf("stage labels missing")
	}
}

func TestChartsRenderEmptyInput(t *testing.T) {
	// Empty series still render a valid document instead of panicking.
	renderToString(t, RevenueTrend(nil))
	renderToString(t, TopProductsBar(nil, TopNTitle(5)))
	renderToString(t, ChannelPie(nil))
	renderToString(t, PriceHistogram(nil))
	renderToString(t, WarehouseBar(nil))
	renderToString(t, ROASBar(nil))
	renderToString(t, FunnelChart(nil))
}
