package analytics

import (
	"testing"
	"time"

	"opsboard/internal/dataset"
)

func TestTopCustomers(t *testing.T) {
	rows := []dataset.Row{
		{CustomerID: "C1", Revenue: 50},
		{CustomerID: "C2", Revenue: 100},
		{CustomerID: "C1", Revenue: 75},
		{CustomerID: "", Revenue: 999},
	}

	out := TopCustomers(rows, 10)
	if len(out) != 2 {
		t.Fatalf("len = %d, want 2 (blank customer IDs drop)", len(out))
	}
	if out[0].CustomerID != "C1" || out[0].Revenue != 125 {
		t.Errorf("out[0] = %+v", out[0])
	}

	capped := TopCustomers(rows, 1)
	if len(capped) != 1 {
		t.Errorf("limit ignored")
	}
}

func TestCohortCounts(t *testing.T) {
	jan := time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC)
	feb := time.Date(2024, 2, 12, 0, 0, 0, 0, time.UTC)

	rows := []dataset.Row{
		// C1 first ordered in January, active in both months.
		{CustomerID: "C1", Date: jan, FirstOrderDate: jan},
		{CustomerID: "C1", Date: feb, FirstOrderDate: jan},
		// C2 first ordered in January, active only there.
		{CustomerID: "C2", Date: jan, FirstOrderDate: jan},
		// C3 joined in February.
		{CustomerID: "C3", Date: feb, FirstOrderDate: feb},
		// No first-order date: ignored.
		{CustomerID: "C4", Date: feb},
	}

	tab := CohortCounts(rows)
	if len(tab.FirstMonths) != 2 || tab.FirstMonths[0] != "2024-01" {
		t.Fatalf("FirstMonths = %v", tab.FirstMonths)
	}
	if len(tab.OrderMonths) != 2 {
		t.Fatalf("OrderMonths = %v", tab.OrderMonths)
	}

	if got := tab.Counts["2024-01"]["2024-01"]; got != 2 {
		t.Errorf("Jan cohort in Jan = %d, want 2", got)
	}
	if got := tab.Counts["2024-01"]["2024-02"]; got != 1 {
		t.Errorf("Jan cohort in Feb = %d, want 1", got)
	}
	if got := tab.Counts["2024-02"]["2024-02"]; got != 1 {
		t.Errorf("Feb cohort in Feb = %d, want 1", got)
	}
}
