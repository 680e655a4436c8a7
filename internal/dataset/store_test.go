package dataset

import (
	"context"
	"strings"
	"testing"
)

func TestImportAndLoadSQLite(t *testing.T) {
	ds, err := DecodeCSV(strings.NewReader(sampleCSV))
	if err != nil {
		t.Fatalf("DecodeCSV: %v", err)
	}

	db, err := OpenSQLite(":memory:")
	if err != nil {
		t.Fatalf("OpenSQLite: %v", err)
	}
	defer db.Close()

	ctx := context.Background()
	if err := ImportCSV(ctx, db, ds); err != nil {
		t.Fatalf("ImportCSV: %v", err)
	}

	back, err := LoadSQLite(ctx, db)
	if err != nil {
		t.Fatalf("LoadSQLite: %v", err)
	}

	if len(back.Rows) != len(ds.Rows) {
		t.Fatalf("rows = %d, want %d", len(back.Rows), len(ds.Rows))
	}
	if back.Rows[0].OrderID != "O001" || back.Rows[0].Revenue != 129 {
		t.Errorf("row 0 = %+v", back.Rows[0])
	}
	if !back.Rows[0].FirstOrder {
		t.Errorf("first_order lost in round trip")
	}

	// Column presence survives the round trip, including absences.
	if !back.Has(ColRevenue) {
		t.Errorf("revenue column lost")
	}
	if back.Has(ColSpend) {
		t.Errorf("spend column fabricated by round trip")
	}
}

func TestImportReplacesPreviousRows(t *testing.T) {
	ds, err := DecodeCSV(strings.NewReader(sampleCSV))
	if err != nil {
		t.Fatalf("DecodeCSV: %v", err)
	}

	db, err := OpenSQLite(":memory:")
	if err != nil {
		t.Fatalf("OpenSQLite: %v", err)
	}
	defer db.Close()

	ctx := context.Background()
	if err := ImportCSV(ctx, db, ds); err != nil {
		t.Fatalf("first import: %v", err)
	}

	single := &Dataset{Rows: ds.Rows[:1], Columns: ds.Columns}
	if err := ImportCSV(ctx, db, single); err != nil {
		t.Fatalf("second import: %v", err)
	}

	back, err := LoadSQLite(ctx, db)
	if err != nil {
		t.Fatalf("LoadSQLite: %v", err)
	}
	if len(back.Rows) != 1 {
		t.Errorf("rows = %d, want 1 after re-import", len(back.Rows))
	}
}
