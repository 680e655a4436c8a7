// Package charts builds the dashboard's go-echarts charts from analytics
// results. All builders return fully configured charts sized to the page
// grid; the caller only assembles them into a rendered page.
package charts

import (
	"fmt"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"

	"opsboard/internal/analytics"
)

// Palette is the categorical color sequence shared with the CSS tokens.
var Palette = opts.Colors{
	"#2B8E6B", "#64CBA3", "#FF6B5C", "#F6C85F",
	"#3B82F6", "#8B5CF6", "#D98A5A", "#9B9B9B",
}

const (
	chartHeight  = "420px"
	brandGreen   = "#2B8E6B"
	accentGold   = "#F6C85F"
	accentViolet = "#8B5CF6"
)

func baseOptions(title, subtitle string) []charts.GlobalOpts {
	return []charts.GlobalOpts{
		charts.WithTitleOpts(opts.Title{Title: title, Subtitle: subtitle}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true), Trigger: "axis"}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(false)}),
		charts.WithInitializationOpts(opts.Initialization{Width: "100%", Height: chartHeight}),
		charts.WithColorsOpts(Palette),
	}
}

// RevenueTrend renders the overview's smooth area chart of revenue over time.
func RevenueTrend(points []analytics.TimePoint) *charts.Line {
	line := charts.NewLine()
	line.SetGlobalOptions(append(baseOptions("Revenue over time", ""),
		charts.WithXAxisOpts(opts.XAxis{Type: "category", AxisLabel: &opts.AxisLabel{Rotate: 45}}),
		charts.WithYAxisOpts(opts.YAxis{Name: "Revenue", Type: "value"}),
	)...)

	labels, data := lineSeries(points)
	line.SetXAxis(labels)
	line.AddSeries("Revenue", data,
		charts.WithLineChartOpts(opts.LineChart{Smooth: opts.Bool(true), ShowSymbol: opts.Bool(false)}),
		charts.WithAreaStyleOpts(opts.AreaStyle{Opacity: opts.Float(0.25)}),
		charts.WithItemStyleOpts(opts.ItemStyle{Color: brandGreen}),
	)
	return line
}

// RevenueLine renders the sales page's revenue line with point markers.
func RevenueLine(points []analytics.TimePoint, title string) *charts.Line {
	line := charts.NewLine()
	line.SetGlobalOptions(append(baseOptions(title, ""),
		charts.WithXAxisOpts(opts.XAxis{Type: "category", AxisLabel: &opts.AxisLabel{Rotate: 45}}),
		charts.WithYAxisOpts(opts.YAxis{Name: "Revenue", Type: "value"}),
		charts.WithDataZoomOpts(opts.DataZoom{Type: "slider", Start: 0, End: 100}),
	)...)

	labels, data := lineSeries(points)
	line.SetXAxis(labels)
	line.AddSeries("Revenue", data,
		charts.WithLineChartOpts(opts.LineChart{ShowSymbol: opts.Bool(true)}),
		charts.WithItemStyleOpts(opts.ItemStyle{Color: brandGreen}),
	)
	return line
}

func lineSeries(points []analytics.TimePoint) ([]string, []opts.LineData) {
	labels := make([]string, len(points))
	data := make([]opts.LineData, len(points))
	for i, p := range points {
		labels[i] = p.Label
		data[i] = opts.LineData{Value: p.Revenue}
	}
	return labels, data
}

// TopProductsBar renders a horizontal bar of product revenue, highest at the
// top.
func TopProductsBar(items []analytics.ProductRevenue, title string) *charts.Bar {
	bar := charts.NewBar()
	bar.SetGlobalOptions(append(baseOptions(title, ""),
		charts.WithXAxisOpts(opts.XAxis{Type: "category"}),
		charts.WithYAxisOpts(opts.YAxis{Name: "Revenue", Type: "value"}),
		charts.WithGridOpts(opts.Grid{Left: "25%"}),
	)...)

	// Reverse so the largest bar ends up on top after axis reversal.
	labels := make([]string, len(items))
	data := make([]opts.BarData, len(items))
	for i, p := range items {
		j := len(items) - 1 - i
		labels[j] = p.Name
		data[j] = opts.BarData{Value: p.Revenue}
	}
	bar.SetXAxis(labels)
	bar.AddSeries("Revenue", data)
	bar.XYReversal()
	return bar
}

// ChannelPie renders the channel revenue mix.
func ChannelPie(items []analytics.ChannelRevenue) *charts.Pie {
	pie := charts.NewPie()
	pie.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{Title: "Channel mix"}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithInitializationOpts(opts.Initialization{Width: "100%", Height: chartHeight}),
		charts.WithColorsOpts(Palette),
	)

	data := make([]opts.PieData, len(items))
	for i, c := range items {
		data[i] = opts.PieData{Name: c.Channel, Value: c.Revenue}
	}
	pie.AddSeries("Revenue", data,
		charts.WithLabelOpts(opts.Label{Show: opts.Bool(true), Formatter: "{b}: {d}%"}),
		charts.WithPieChartOpts(opts.PieChart{Radius: []string{"35%", "65%"}}),
	)
	return pie
}

// PriceHistogram renders the price distribution bars.
func PriceHistogram(bins []analytics.HistBin) *charts.Bar {
	bar := charts.NewBar()
	bar.SetGlobalOptions(append(baseOptions("Price Distribution", ""),
		charts.WithXAxisOpts(opts.XAxis{Name: "Price", Type: "category", AxisLabel: &opts.AxisLabel{Rotate: 45}}),
		charts.WithYAxisOpts(opts.YAxis{Name: "Count", Type: "value"}),
	)...)

	labels := make([]string, len(bins))
	data := make([]opts.BarData, len(bins))
	for i, b := range bins {
		labels[i] = b.Label
		data[i] = opts.BarData{Value: b.Count}
	}
	bar.SetXAxis(labels)
	bar.AddSeries("Count", data,
		charts.WithBarChartOpts(opts.BarChart{BarGap: "10%"}),
		charts.WithItemStyleOpts(opts.ItemStyle{Color: accentGold}),
	)
	return bar
}

// WarehouseBar renders total inventory on hand per warehouse.
func WarehouseBar(items []analytics.WarehouseStock) *charts.Bar {
	bar := charts.NewBar()
	bar.SetGlobalOptions(append(baseOptions("Inventory on hand by warehouse", ""),
		charts.WithXAxisOpts(opts.XAxis{Type: "category"}),
		charts.WithYAxisOpts(opts.YAxis{Name: "On hand", Type: "value"}),
	)...)

	labels := make([]string, len(items))
	data := make([]opts.BarData, len(items))
	for i, w := range items {
		labels[i] = w.Warehouse
		data[i] = opts.BarData{Value: w.OnHand}
	}
	bar.SetXAxis(labels)
	bar.AddSeries("On hand", data,
		charts.WithItemStyleOpts(opts.ItemStyle{Color: accentViolet}),
	)
	return bar
}

// ROASBar renders return on ad spend per channel.
func ROASBar(items []analytics.ChannelPerf) *charts.Bar {
	bar := charts.NewBar()
	bar.SetGlobalOptions(append(baseOptions("ROAS by Channel", ""),
		charts.WithXAxisOpts(opts.XAxis{Type: "category"}),
		charts.WithYAxisOpts(opts.YAxis{Name: "ROAS", Type: "value"}),
	)...)

	labels := make([]string, len(items))
	data := make([]opts.BarData, len(items))
	for i, c := range items {
		labels[i] = c.Channel
		data[i] = opts.BarData{Value: c.ROAS}
	}
	bar.SetXAxis(labels)
	bar.AddSeries("ROAS", data)
	return bar
}

// FunnelChart renders the acquisition funnel.
func FunnelChart(stages []analytics.FunnelStage) *charts.Funnel {
	funnel := charts.NewFunnel()
	funnel.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{Title: "Funnel (visits → orders)"}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithInitializationOpts(opts.Initialization{Width: "100%", Height: chartHeight}),
		charts.WithColorsOpts(opts.Colors{"#64CBA3", "#2B8E6B", "#F6C85F", "#FF6B5C"}),
	)

	data := make([]opts.FunnelData, len(stages))
	for i, s := range stages {
		data[i] = opts.FunnelData{Name: s.Stage, Value: s.Value}
	}
	funnel.AddSeries("Funnel", data,
		charts.WithLabelOpts(opts.Label{Show: opts.Bool(true), Formatter: "{b}: {c}"}),
	)
	return funnel
}

// Subtitle helper for parameterized chart titles.
func TopNTitle(n int) string {
	return fmt.Sprintf("Top %d Products by Revenue", n)
}
