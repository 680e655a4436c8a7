package dataset

import (
	"bytes"
	"strings"
	"testing"
	"time"
)

const sampleCSV = `date,order_id,product_id,sku,product_name,category,price,cost,qty,revenue,channel,city,warehouse,inventory_on_hand,ltv,customer_id,first_order
2024-01-05,O001,P001,SKU-1,Espresso Maker,Kitchen,129.00,61.0,1,129.00,Online,Austin,East,40,350.5,C001,true
2024-01-06,O002,P002,SKU-2,Chef Knife,Kitchen,89.00,34.0,2,178.00,Retail,Denver,West,12,180.0,C002,false
not-a-date,O003,P001,SKU-1,Espresso Maker,Kitchen,129.00,61.0,1,129.00,Online,Austin,East,40,350.5,C001,false
`

func TestDecodeCSV(t *testing.T) {
	ds, err := DecodeCSV(strings.NewReader(sampleCSV))
	if err != nil {
		t.Fatalf("DecodeCSV: %v", err)
	}

	if len(ds.Rows) != 2 {
		t.Fatalf("rows = %d, want 2", len(ds.Rows))
	}
	if ds.Skipped != 1 {
		t.Errorf("skipped = %d, want 1", ds.Skipped)
	}

	r := ds.Rows[0]
	if !r.Date.Equal(time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("date = %v", r.Date)
	}
	if r.OrderID != "O001" || r.ProductName != "Espresso Maker" {
		t.Errorf("unexpected row %+v", r)
	}
	if r.Price != 129 || r.Qty != 1 || r.Revenue != 129 {
		t.Errorf("numeric fields wrong: %+v", r)
	}
	if !r.FirstOrder {
		t.Errorf("first_order not parsed")
	}

	if !ds.Has(ColRevenue) {
		t.Errorf("expected revenue column present")
	}
	if ds.Has(ColSpend) {
		t.Errorf("spend column should be absent")
	}
}

func TestDecodeCSV_ColumnOrderFree(t *testing.T) {
	in := "revenue,date,order_id\n50.5,2024-02-01,O9\n"
	ds, err := DecodeCSV(strings.NewReader(in))
	if err != nil {
		t.Fatalf("DecodeCSV: %v", err)
	}
	if len(ds.Rows) != 1 {
		t.Fatalf("rows = %d, want 1", len(ds.Rows))
	}
	if ds.Rows[0].Revenue != 50.5 || ds.Rows[0].OrderID != "O9" {
		t.Errorf("unexpected row %+v", ds.Rows[0])
	}
}

func TestDecodeCSV_OptionalColumns(t *testing.T) {
	in := "date,order_id,revenue,spend,first_order_date\n2024-02-01,O1,10,3.5,2023-12-15\n"
	ds, err := DecodeCSV(strings.NewReader(in))
	if err != nil {
		t.Fatalf("DecodeCSV: %v", err)
	}
	if !ds.Has(ColSpend) || !ds.Has(ColFirstOrderDate) {
		t.Fatalf("optional columns not detected: %v", ds.Columns)
	}
	r := ds.Rows[0]
	if r.Spend != 3.5 {
		t.Errorf("spend = %v", r.Spend)
	}
	if !r.FirstOrderDate.Equal(time.Date(2023, 12, 15, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("first_order_date = %v", r.FirstOrderDate)
	}
}

func TestDecodeCSV_DateLayouts(t *testing.T) {
	tests := []string{
		"2024-03-07",
		"2024-03-07T10:00:00Z",
		"2024-03-07 10:00:00",
		"03/07/2024",
	}
	for _, in := range tests {
		ds, err := DecodeCSV(strings.NewReader("date,revenue\n" + in + ",1\n"))
		if err != nil {
			t.Fatalf("DecodeCSV(%q): %v", in, err)
		}
		if len(ds.Rows) != 1 {
			t.Errorf("date %q not accepted", in)
		}
	}
}

func TestWriteCSV_RoundTrip(t *testing.T) {
	ds, err := DecodeCSV(strings.NewReader(sampleCSV))
	if err != nil {
		t.Fatalf("DecodeCSV: %v", err)
	}

	var buf bytes.Buffer
	if err := WriteCSV(&buf, ds, ds.Rows); err != nil {
		t.Fatalf("WriteCSV: %v", err)
	}

	out := buf.String()
	if strings.Contains(out, "spend") {
		t.Errorf("export grew an optional column the input lacked:\n%s", out)
	}

	back, err := DecodeCSV(strings.NewReader(out))
	if err != nil {
		t.Fatalf("re-decode: %v", err)
	}
	if len(back.Rows) != len(ds.Rows) {
		t.Fatalf("round trip rows = %d, want %d", len(back.Rows), len(ds.Rows))
	}
	if back.Rows[1].Revenue != 178 || back.Rows[1].Channel != "Retail" {
		t.Errorf("round trip row = %+v", back.Rows[1])
	}
}
