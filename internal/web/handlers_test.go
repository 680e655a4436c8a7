package web

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"go.uber.org/zap"

	"opsboard/internal/dataset"
)

type nopMetrics struct{}

func (nopMetrics) PageView(ctx context.Context, page string)                        {}
func (nopMetrics) RenderDuration(ctx context.Context, page string, seconds float64) {}

func testServer(t *testing.T, ds *dataset.Dataset) *Server {
	t.Helper()
	s, err := NewServer(dataset.NewCache(ds), Options{}, zap.NewNop(), nopMetrics{})
	if err != nil {
		t.Fatalf("NewServer: %v", err)
	}
	return s
}

func fixtureDataset() *dataset.Dataset {
	day := func(d int) time.Time { return time.Date(2024, 1, d, 0, 0, 0, 0, time.UTC) }
	cols := map[string]bool{}
	for _, c := range dataset.ExpectedColumns {
		cols[c] = true
	}
	return &dataset.Dataset{
		Columns:  cols,
		LoadedAt: time.Now(),
		Source:   "fixture.csv",
		Rows: []dataset.Row{
			{Date: day(5), OrderID: "O1", ProductID: "P1", SKU: "S1", ProductName: "Espresso Maker",
				Category: "Kitchen", Price: 129, Cost: 61, Qty: 1, Revenue: 129, Channel: "Online",
				City: "Austin", Warehouse: "East", InventoryOnHand: 40, LTV: 350, CustomerID: "C1", FirstOrder: true},
			{Date: day(6), OrderID: "O2", ProductID: "P2", SKU: "S2", ProductName: "Chef Knife",
				Category: "Kitchen", Price: 89, Cost: 34, Qty: 2, Revenue: 178, Channel: "Retail",
				City: "Denver", Warehouse: "West", InventoryOnHand: 5, LTV: 180, CustomerID: "C2", FirstOrder: true},
			{Date: day(20), OrderID: "O3", ProductID: "P1", SKU: "S1", ProductName: "Espresso Maker",
				Category: "Kitchen", Price: 129, Cost: 61, Qty: 1, Revenue: 129, Channel: "Online",
				City: "Austin", Warehouse: "East", InventoryOnHand: 38, LTV: 350, CustomerID: "C1"},
		},
	}
}

func get(t *testing.T, s *Server, path string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	return rec
}

func TestPagesRender(t *testing.T) {
	s := testServer(t, fixtureDataset())

	tests := []struct {
		path   string
		marker string
	}{
		{"/", "New Customers"},
		{"/sales", "Granularity"},
		{"/products", "Catalog"},
		{"/inventory", "Stock levels"},
		{"/marketing", "Marketing"},
		{"/customers", "Top customers by revenue"},
		{"/exports", "Download CSV"},
	}
	for _, tt := range tests {
		rec := get(t, s, tt.path)
		if rec.Code != http.StatusOK {
			t.Errorf("GET %s = %d", tt.path, rec.Code)
			continue
		}
		if !strings.Contains(rec.Body.String(), tt.marker) {
			t.Errorf("GET %s missing %q", tt.path, tt.marker)
		}
	}
}

func TestOverviewKPIs(t *testing.T) {
	s := testServer(t, fixtureDataset())
	rec := get(t, s, "/")
	body := rec.Body.String()

	// 129 + 178 + 129 over 3 distinct orders.
	if !strings.Contains(body, "$436.00") {
		t.Errorf("total revenue missing from body")
	}
	if !strings.Contains(body, "Espresso Maker") {
		t.Errorf("top products table missing")
	}
}

func TestFilterNarrowsPages(t *testing.T) {
	s := testServer(t, fixtureDataset())
	rec := get(t, s, "/?from=2024-01-06&to=2024-01-06")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	body := rec.Body.String()
	if !strings.Contains(body, "$178.00") {
		t.Errorf("filtered revenue missing")
	}
	if strings.Contains(body, "Espresso Maker") {
		t.Errorf("filtered-out product still present")
	}
}

func TestBadDateReturns400(t *testing.T) {
	s := testServer(t, fixtureDataset())
	for _, path := range []string{"/?from=nope", "/sales?to=2024-13-99", "/api/summary?from=bad"} {
		rec := get(t, s, path)
		if rec.Code != http.StatusBadRequest {
			t.Errorf("GET %s = %d, want 400", path, rec.Code)
		}
	}
}

func TestMarketingNoticesWithoutOptionalColumns(t *testing.T) {
	s := testServer(t, fixtureDataset())
	rec := get(t, s, "/marketing")
	body := rec.Body.String()
	if !strings.Contains(body, "No 'spend' column") {
		t.Errorf("spend notice missing")
	}
	if !strings.Contains(body, "visualize the funnel") {
		t.Errorf("funnel notice missing")
	}
}

func TestMarketingWithOptionalColumns(t *testing.T) {
	ds := fixtureDataset()
	ds.Columns[dataset.ColSpend] = true
	ds.Columns[dataset.ColVisits] = true
	for i := range ds.Rows {
		ds.Rows[i].Spend = 10
		ds.Rows[i].Visits = 100
	}

	s := testServer(t, ds)
	rec := get(t, s, "/marketing")
	body := rec.Body.String()
	if strings.Contains(body, "No 'spend' column") {
		t.Errorf("notice shown despite spend column")
	}
	if !strings.Contains(body, "Channel performance") {
		t.Errorf("ROAS table missing")
	}
}

func TestCustomersCohortNotice(t *testing.T) {
	s := testServer(t, fixtureDataset())
	rec := get(t, s, "/customers")
	if !strings.Contains(rec.Body.String(), "first_order_date") {
		t.Errorf("cohort notice missing")
	}
}

func TestAPISummary(t *testing.T) {
	s := testServer(t, fixtureDataset())
	rec := get(t, s, "/api/summary")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}

	var resp summaryResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.TotalRevenue != 436 || resp.Orders != 3 || resp.Rows != 3 {
		t.Errorf("summary = %+v", resp)
	}
	if resp.NewCustomers != 2 {
		t.Errorf("new customers = %d", resp.NewCustomers)
	}
}

func TestAPIChartRevenue(t *testing.T) {
	s := testServer(t, fixtureDataset())
	rec := get(t, s, "/api/charts/revenue?gran=month")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var points []seriesPoint
	if err := json.Unmarshal(rec.Body.Bytes(), &points); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(points) != 1 || points[0].Revenue != 436 {
		t.Errorf("points = %+v", points)
	}
}

func TestExportCSV(t *testing.T) {
	s := testServer(t, fixtureDataset())
	rec := get(t, s, "/api/export/rows?format=csv&channel=Online")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if got := rec.Header().Get("Content-Disposition"); !strings.Contains(got, "filtered_data.csv") {
		t.Errorf("disposition = %q", got)
	}

	body := rec.Body.String()
	lines := strings.Split(strings.TrimSpace(body), "\n")
	if len(lines) != 3 { // header + 2 Online rows
		t.Fatalf("lines = %d:\n%s", len(lines), body)
	}
	if strings.Contains(body, "Chef Knife") {
		t.Errorf("retail row leaked into Online export")
	}
}

func TestExportJSON(t *testing.T) {
	s := testServer(t, fixtureDataset())
	rec := get(t, s, "/api/export/rows?format=json")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var rows []exportRow
	if err := json.Unmarshal(rec.Body.Bytes(), &rows); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(rows) != 3 || rows[0].OrderID != "O1" {
		t.Errorf("rows = %+v", rows)
	}
}

func TestExportUnknownFormat(t *testing.T) {
	s := testServer(t, fixtureDataset())
	rec := get(t, s, "/api/export/rows?format=xml")
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

func TestHealth(t *testing.T) {
	s := testServer(t, fixtureDataset())
	rec := get(t, s, "/health")
	if rec.Code != http.StatusOK || rec.Body.String() != "ok" {
		t.Errorf("health = %d %q", rec.Code, rec.Body.String())
	}
}
