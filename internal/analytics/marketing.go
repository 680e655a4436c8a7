package analytics

import (
	"sort"

	"opsboard/internal/dataset"
)

// ChannelPerf holds spend, revenue, and return on ad spend for a channel.
type ChannelPerf struct {
	Channel string
	Spend   float64
	Revenue float64
	ROAS    float64
}

// ChannelROAS aggregates spend and revenue per channel and derives ROAS.
// Channels with zero spend report zero ROAS rather than dividing by zero.
func ChannelROAS(rows []dataset.Row) []ChannelPerf {
	type acc struct{ spend, revenue float64 }
	accs := make(map[string]*acc)
	for _, r := range rows {
		a := accs[r.Channel]
		if a == nil {
			a = &acc{}
			accs[r.Channel] = a
		}
		a.spend += r.Spend
		a.revenue += r.Revenue
	}

	out := make([]ChannelPerf, 0, len(accs))
	for ch, a := range accs {
		p := ChannelPerf{Channel: ch, Spend: a.spend, Revenue: a.revenue}
		if a.spend > 0 {
			p.ROAS = a.revenue / a.spend
		}
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].ROAS != out[j].ROAS {
			return out[i].ROAS > out[j].ROAS
		}
		return out[i].Channel < out[j].Channel
	})
	return out
}

// FunnelStage is one step of the acquisition funnel.
type FunnelStage struct {
	Stage string
	Value float64
}

// Funnel builds the visits -> add to cart -> checkout -> purchased funnel.
// Purchases count distinct order IDs; the event stages sum their columns.
func Funnel(rows []dataset.Row) []FunnelStage {
	var visits, addToCart, checkout float64
	orders := make(map[string]bool)
	for _, r := range rows {
		visits += r.Visits
		addToCart += r.AddToCart
		checkout += r.Checkout
		if r.OrderID != "" {
			orders[r.OrderID] = true
		}
	}
	return []FunnelStage{
		{Stage: "Visits", Value: visits},
		{Stage: "Add to Cart", Value: addToCart},
		{Stage: "Checkout", Value: checkout},
		{Stage: "Purchased", Value: float64(len(orders))},
	}
}
