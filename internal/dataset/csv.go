package dataset

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"
)

var dateLayouts = []string{
	"2006-01-02",
	time.RFC3339,
	"2006-01-02 15:04:05",
	"01/02/2006",
}

// ReadCSV loads a dataset from a CSV file on disk.
func ReadCSV(path string) (*Dataset, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open dataset: %w", err)
	}
	defer f.Close()

	ds, err := DecodeCSV(f)
	if err != nil {
		return nil, err
	}
	ds.Source = path
	return ds, nil
}

// DecodeCSV parses CSV rows into a dataset. The first record is the header;
// column order is free and unknown columns are ignored. Rows whose date does
// not parse are skipped and counted.
func DecodeCSV(r io.Reader) (*Dataset, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}

	idx := make(map[string]int, len(header))
	for i, name := range header {
		idx[strings.ToLower(strings.TrimSpace(name))] = i
	}

	cols := make(map[string]bool)
	for _, c := range append(append([]string{}, ExpectedColumns...), OptionalColumns...) {
		if _, ok := idx[c]; ok {
			cols[c] = true
		}
	}

	ds := &Dataset{Columns: cols, LoadedAt: time.Now()}
	for {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read record: %w", err)
		}

		field := func(col string) string {
			i, ok := idx[col]
			if !ok || i >= len(rec) {
				return ""
			}
			return strings.TrimSpace(rec[i])
		}

		date, ok := parseDate(field(ColDate))
		if !ok {
			ds.Skipped++
			continue
		}

		row := Row{
			Date:            date,
			OrderID:         field(ColOrderID),
			ProductID:       field(ColProductID),
			SKU:             field(ColSKU),
			ProductName:     field(ColProductName),
			Category:        field(ColCategory),
			Price:           parseFloat(field(ColPrice)),
			Cost:            parseFloat(field(ColCost)),
			Qty:             parseInt(field(ColQty)),
			Revenue:         parseFloat(field(ColRevenue)),
			Channel:         field(ColChannel),
			City:            field(ColCity),
			Warehouse:       field(ColWarehouse),
			InventoryOnHand: parseFloat(field(ColInventoryOnHand)),
			LTV:             parseFloat(field(ColLTV)),
			CustomerID:      field(ColCustomerID),
			FirstOrder:      parseBool(field(ColFirstOrder)),
			Spend:           parseFloat(field(ColSpend)),
			Visits:          parseFloat(field(ColVisits)),
			AddToCart:       parseFloat(field(ColAddToCart)),
			Checkout:        parseFloat(field(ColCheckout)),
		}
		if fod, ok := parseDate(field(ColFirstOrderDate)); ok {
			row.FirstOrderDate = fod
		}
		ds.Rows = append(ds.Rows, row)
	}
	return ds, nil
}

// WriteCSV writes rows in the canonical column order. Optional columns are
// emitted only when the dataset carried them, so an export mirrors its input.
func WriteCSV(w io.Writer, d *Dataset, rows []Row) error {
	cols := append([]string{}, ExpectedColumns...)
	for _, c := range OptionalColumns {
		if d.Has(c) {
			cols = append(cols, c)
		}
	}

	cw := csv.NewWriter(w)
	if err := cw.Write(cols); err != nil {
		return err
	}
	for _, r := range rows {
		rec := make([]string, len(cols))
		for i, c := range cols {
			rec[i] = fieldString(r, c)
		}
		if err := cw.Write(rec); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func fieldString(r Row, col string) string {
	switch col {
	case ColDate:
		return r.Date.Format("2006-01-02")
	case ColOrderID:
		return r.OrderID
	case ColProductID:
		return r.ProductID
	case ColSKU:
		return r.SKU
	case ColProductName:
		return r.ProductName
	case ColCategory:
		return r.Category
	case ColPrice:
		return formatFloat(r.Price)
	case ColCost:
		return formatFloat(r.Cost)
	case ColQty:
		return strconv.FormatInt(r.Qty, 10)
	case ColRevenue:
		return formatFloat(r.Revenue)
	case ColChannel:
		return r.Channel
	case ColCity:
		return r.City
	case ColWarehouse:
		return r.Warehouse
	case ColInventoryOnHand:
		return formatFloat(r.InventoryOnHand)
	case ColLTV:
		return formatFloat(r.LTV)
	case ColCustomerID:
		return r.CustomerID
	case ColFirstOrder:
		return strconv.FormatBool(r.FirstOrder)
	case ColSpend:
		return formatFloat(r.Spend)
	case ColVisits:
		return formatFloat(r.Visits)
	case ColAddToCart:
		return formatFloat(r.AddToCart)
	case ColCheckout:
		return formatFloat(r.Checkout)
	case ColFirstOrderDate:
		if r.FirstOrderDate.IsZero() {
			return ""
		}
		return r.FirstOrderDate.Format("2006-01-02")
	}
	return ""
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func parseDate(s string) (time.Time, bool) {
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

func parseFloat(s string) float64 {
	v, _ := strconv.ParseFloat(s, 64)
	return v
}

func parseInt(s string) int64 {
	if v, err := strconv.ParseInt(s, 10, 64); err == nil {
		return v
	}
	// Tolerate "2.0" style quantities.
	return int64(parseFloat(s))
}

func parseBool(s string) bool {
	v, err := strconv.ParseBool(strings.ToLower(s))
	if err != nil {
		return false
	}
	return v
}
