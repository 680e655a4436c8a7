package analytics

import (
	"math"
	"sort"
	"strconv"

	"opsboard/internal/dataset"
)

// ProductRevenue is one product's summed revenue.
type ProductRevenue struct {
	ProductID string
	Name      string
	Revenue   float64
}

// TopProducts returns the n highest-revenue products, descending. Ties break
// on product name ascending.
func TopProducts(rows []dataset.Row, n int) []ProductRevenue {
	type key struct{ id, name string }
	sums := make(map[key]float64)
	for _, r := range rows {
		sums[key{r.ProductID, r.ProductName}] += r.Revenue
	}

	out := make([]ProductRevenue, 0, len(sums))
	for k, v := range sums {
		out = append(out, ProductRevenue{ProductID: k.id, Name: k.name, Revenue: v})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Revenue != out[j].Revenue {
			return out[i].Revenue > out[j].Revenue
		}
		return out[i].Name < out[j].Name
	})
	if n > 0 && len(out) > n {
		out = out[:n]
	}
	return out
}

// ChannelRevenue is one channel's summed revenue.
type ChannelRevenue struct {
	Channel string
	Revenue float64
}

// RevenueByChannel sums revenue per channel, descending.
func RevenueByChannel(rows []dataset.Row) []ChannelRevenue {
	sums := make(map[string]float64)
	for _, r := range rows {
		sums[r.Channel] += r.Revenue
	}

	out := make([]ChannelRevenue, 0, len(sums))
	for ch, v := range sums {
		out = append(out, ChannelRevenue{Channel: ch, Revenue: v})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Revenue != out[j].Revenue {
			return out[i].Revenue > out[j].Revenue
		}
		return out[i].Channel < out[j].Channel
	})
	return out
}

// CatalogLine is one SKU of the product table.
type CatalogLine struct {
	ProductID string
	SKU       string
	Name      string
	Category  string
	Price     float64
	Cost      float64
	Qty       int64
	Revenue   float64 // price * qty sold
	Margin    float64 // price - cost
}

// CatalogTable aggregates quantity sold per SKU and derives revenue and unit
// margin, sorted by revenue descending and capped at limit rows.
func CatalogTable(rows []dataset.Row, limit int) []CatalogLine {
	type key struct {
		id, sku, name, category string
		price, cost             float64
	}
	qty := make(map[key]int64)
	for _, r := range rows {
		qty[key{r.ProductID, r.SKU, r.ProductName, r.Category, r.Price, r.Cost}] += r.Qty
	}

	out := make([]CatalogLine, 0, len(qty))
	for k, q := range qty {
		out = append(out, CatalogLine{
			ProductID: k.id,
			SKU:       k.sku,
			Name:      k.name,
			Category:  k.category,
			Price:     k.price,
			Cost:      k.cost,
			Qty:       q,
			Revenue:   k.price * float64(q),
			Margin:    k.price - k.cost,
		})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Revenue != out[j].Revenue {
			return out[i].Revenue > out[j].Revenue
		}
		return out[i].SKU < out[j].SKU
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}

// HistBin is one bucket of the price histogram.
type HistBin struct {
	Low   float64
	High  float64
	Count int64
	Label string
}

// PriceHistogram buckets row prices into bins equal-width bins over the
// observed range. A degenerate range yields a single bin.
func PriceHistogram(rows []dataset.Row, bins int) []HistBin {
	if len(rows) == 0 || bins <= 0 {
		return nil
	}

	min, max := rows[0].Price, rows[0].Price
	for _, r := range rows[1:] {
		if r.Price < min {
			min = r.Price
		}
		if r.Price > max {
			max = r.Price
		}
	}

	if min == max {
		return []HistBin{{Low: min, High: max, Count: int64(len(rows)), Label: formatBinLabel(min, max)}}
	}

	width := (max - min) / float64(bins)
	out := make([]HistBin, bins)
	for i := range out {
		low := min + float64(i)*width
		out[i] = HistBin{Low: low, High: low + width, Label: formatBinLabel(low, low+width)}
	}
	for _, r := range rows {
		i := int(math.Floor((r.Price - min) / width))
		if i >= bins {
			i = bins - 1 // max price lands in the last bin
		}
		out[i].Count++
	}
	return out
}

func formatBinLabel(low, high float64) string {
	return "$" + trimFloat(low) + "–$" + trimFloat(high)
}

func trimFloat(v float64) string {
	return strconv.FormatFloat(math.Round(v*100)/100, 'f', -1, 64)
}
