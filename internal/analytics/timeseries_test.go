package analytics

import (
	"testing"
	"time"

	"opsboard/internal/dataset"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestParseGranularity(t *testing.T) {
	tests := []struct {
		in   string
		def  Granularity
		want Granularity
	}{
		{"day", Monthly, Daily},
		{"week", Monthly, Weekly},
		{"month", Daily, Monthly},
		{"", Monthly, Monthly},
		{"year", Daily, Daily},
	}
	for _, tt := range tests {
		if got := ParseGranularity(tt.in, tt.def); got != tt.want {
			t.Errorf("ParseGranularity(%q, %q) = %q, want %q", tt.in, tt.def, got, tt.want)
		}
	}
}

func TestRevenueSeries_Daily(t *testing.T) {
	rows := []dataset.Row{
		{Date: day(2024, 1, 5), Revenue: 10},
		{Date: time.Date(2024, 1, 5, 18, 0, 0, 0, time.UTC), Revenue: 5},
		{Date: day(2024, 1, 7), Revenue: 20},
	}
	points := RevenueSeries(rows, Daily)
	if len(points) != 2 {
		t.Fatalf("points = %d, want 2", len(points))
	}
	if !points[0].Bucket.Equal(day(2024, 1, 5)) || points[0].Revenue != 15 {
		t.Errorf("point 0 = %+v", points[0])
	}
	if !points[1].Bucket.Equal(day(2024, 1, 7)) || points[1].Revenue != 20 {
		t.Errorf("point 1 = %+v", points[1])
	}
	if points[0].Label != "Jan 5" {
		t.Errorf("label = %q", points[0].Label)
	}
}

func TestRevenueSeries_WeeklyStartsMonday(t *testing.T) {
	// 2024-01-07 is a Sunday; its week starts Monday 2024-01-01.
	// 2024-01-08 is the next Monday.
	rows := []dataset.Row{
		{Date: day(2024, 1, 7), Revenue: 10},
		{Date: day(2024, 1, 8), Revenue: 20},
	}
	points := RevenueSeries(rows, Weekly)
	if len(points) != 2 {
		t.Fatalf("points = %d, want 2", len(points))
	}
	if !points[0].Bucket.Equal(day(2024, 1, 1)) {
		t.Errorf("week bucket = %v, want Jan 1", points[0].Bucket)
	}
	if !points[1].Bucket.Equal(day(2024, 1, 8)) {
		t.Errorf("week bucket = %v, want Jan 8", points[1].Bucket)
	}
}

func TestRevenueSeries_MultiYearLabelsCarryYear(t *testing.T) {
	rows := []dataset.Row{
		{Date: day(2023, 12, 31), Revenue: 10},
		{Date: day(2024, 1, 5), Revenue: 20},
	}
	points := RevenueSeries(rows, Daily)
	if len(points) != 2 {
		t.Fatalf("points = %d", len(points))
	}
	if points[0].Label != "Dec 31 2023" || points[1].Label != "Jan 5 2024" {
		t.Errorf("labels = %q, %q; want year-qualified labels", points[0].Label, points[1].Label)
	}

	// A single-year series keeps the short form.
	same := RevenueSeries([]dataset.Row{
		{Date: day(2024, 1, 5), Revenue: 10},
		{Date: day(2024, 2, 5), Revenue: 20},
	}, Daily)
	if same[0].Label != "Jan 5" {
		t.Errorf("single-year label = %q", same[0].Label)
	}
}

func TestRevenueSeries_Monthly(t *testing.T) {
	rows := []dataset.Row{
		{Date: day(2024, 1, 5), Revenue: 10},
		{Date: day(2024, 1, 28), Revenue: 30},
		{Date: day(2024, 3, 1), Revenue: 40},
	}
	points := RevenueSeries(rows, Monthly)
	if len(points) != 2 {
		t.Fatalf("points = %d, want 2 (no empty Feb bucket)", len(points))
	}
	if points[0].Revenue != 40 || points[0].Label != "Jan 2024" {
		t.Errorf("point 0 = %+v", points[0])
	}
	if points[1].Revenue != 40 || points[1].Label != "Mar 2024" {
		t.Errorf("point 1 = %+v", points[1])
	}
}
