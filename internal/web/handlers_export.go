package web

import (
	"encoding/json"
	"fmt"
	"html/template"
	"net/http"
	"time"

	"go.uber.org/zap"

	"opsboard/internal/dataset"
	"opsboard/internal/util"
)

func (s *Server) handleExports(w http.ResponseWriter, r *http.Request) {
	ds := s.cache.Snapshot()
	f, form, err := pageFilters(r, ds)
	sh := shell{PageTitle: "Exports", Active: "Exports", Filters: form}
	if err != nil {
		s.renderError(w, r, sh, err.Error())
		return
	}

	rows := ds.Select(f)
	query := form.Query()
	sep := "?"
	if query != "" {
		sep = "&"
	}
	sh.ExportCSV = "/api/export/rows" + query + sep + "format=csv"
	sh.ExportJSON = "/api/export/rows" + query + sep + "format=json"
	sh.NotesHTML = template.HTML(s.notes)

	min, max := ds.DateRange()
	span := ""
	if !min.IsZero() {
		span = util.DateISO(min) + " to " + util.DateISO(max)
	}
	sh.Tables = []tableSection{{
		Title:   "Current selection",
		Columns: []string{"Rows", "Dataset span", "Source", "Loaded"},
		Rows: [][]string{{
			util.Number(int64(len(rows))),
			span,
			ds.Source,
			ds.LoadedAt.Format(time.RFC3339),
		}},
	}}

	s.renderPage(w, r, sh)
}

// exportRow is the JSON export shape. Optional columns marshal as zero
// values when the source lacks them.
type exportRow struct {
	Date           string  `json:"date"`
	OrderID        string  `json:"order_id"`
	ProductID      string  `json:"product_id"`
	SKU            string  `json:"sku"`
	ProductName    string  `json:"product_name"`
	Category       string  `json:"category"`
	Price          float64 `json:"price"`
	Cost           float64 `json:"cost"`
	Qty            int64   `json:"qty"`
	Revenue        float64 `json:"revenue"`
	Channel        string  `json:"channel"`
	City           string  `json:"city"`
	Warehouse      string  `json:"warehouse"`
	InventoryOn    float64 `json:"inventory_on_hand"`
	LTV            float64 `json:"ltv"`
	CustomerID     string  `json:"customer_id"`
	FirstOrder     bool    `json:"first_order"`
	FirstOrderDate string  `json:"first_order_date,omitempty"`
	Spend          float64 `json:"spend,omitempty"`
	Visits         float64 `json:"visits,omitempty"`
	AddToCart      float64 `json:"add_to_cart,omitempty"`
	Checkout       float64 `json:"checkout,omitempty"`
}

// handleExportRows streams the filtered rows as CSV or JSON.
func (s *Server) handleExportRows(w http.ResponseWriter, r *http.Request) {
	ds := s.cache.Snapshot()
	f, _, err := pageFilters(r, ds)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	rows := ds.Select(f)

	format := r.URL.Query().Get("format")
	switch format {
	case "", "csv":
		w.Header().Set("Content-Type", "text/csv")
		w.Header().Set("Content-Disposition", `attachment; filename="filtered_data.csv"`)
		if err := dataset.WriteCSV(w, ds, rows); err != nil {
			s.log.Error("csv export", zap.Error(err))
		}
	case "json":
		out := make([]exportRow, len(rows))
		for i, row := range rows {
			out[i] = toExportRow(row)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Header().Set("Content-Disposition", `attachment; filename="filtered_data.json"`)
		if err := json.NewEncoder(w).Encode(out); err != nil {
			s.log.Error("json export", zap.Error(err))
		}
	default:
		http.Error(w, fmt.Sprintf("unknown export format %q", format), http.StatusBadRequest)
	}
}

func toExportRow(r dataset.Row) exportRow {
	e := exportRow{
		Date:        util.DateISO(r.Date),
		OrderID:     r.OrderID,
		ProductID:   r.ProductID,
		SKU:         r.SKU,
		ProductName: r.ProductName,
		Category:    r.Category,
		Price:       r.Price,
		Cost:        r.Cost,
		Qty:         r.Qty,
		Revenue:     r.Revenue,
		Channel:     r.Channel,
		City:        r.City,
		Warehouse:   r.Warehouse,
		InventoryOn: r.InventoryOnHand,
		LTV:         r.LTV,
		CustomerID:  r.CustomerID,
		FirstOrder:  r.FirstOrder,
		Spend:       r.Spend,
		Visits:      r.Visits,
		AddToCart:   r.AddToCart,
		Checkout:    r.Checkout,
	}
	if !r.FirstOrderDate.IsZero() {
		e.FirstOrderDate = util.DateISO(r.FirstOrderDate)
	}
	return e
}
