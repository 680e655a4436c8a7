package analytics

import (
	"sort"
	"time"

	"opsboard/internal/dataset"
)

// Granularity selects the revenue series bucket width.
type Granularity string

const (
	Daily   Granularity = "day"
	Weekly  Granularity = "week"
	Monthly Granularity = "month"
)

// ParseGranularity maps a query value to a granularity, defaulting to def.
func ParseGranularity(s string, def Granularity) Granularity {
	switch Granularity(s) {
	case Daily, Weekly, Monthly:
		return Granularity(s)
	}
	return def
}

// TimePoint is one bucket of the revenue series.
type TimePoint struct {
	Bucket  time.Time
	Label   string
	Revenue float64
}

// RevenueSeries sums revenue into time buckets, ascending. Weeks start on
// Monday; empty buckets between orders are not materialized.
func RevenueSeries(rows []dataset.Row, g Granularity) []TimePoint {
	sums := make(map[time.Time]float64)
	for _, r := range rows {
		sums[bucketStart(r.Date, g)] += r.Revenue
	}

	points := make([]TimePoint, 0, len(sums))
	for b, v := range sums {
		points = append(points, TimePoint{Bucket: b, Revenue: v})
	}
	sort.Slice(points, func(i, j int) bool { return points[i].Bucket.Before(points[j].Bucket) })

	// Day and week labels carry the year only when the series crosses a
	// year boundary, so multi-year buckets stay distinguishable.
	withYear := len(points) > 1 &&
		points[0].Bucket.Year() != points[len(points)-1].Bucket.Year()
	for i := range points {
		points[i].Label = bucketLabel(points[i].Bucket, g, withYear)
	}
	return points
}

func bucketStart(t time.Time, g Granularity) time.Time {
	day := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
	switch g {
	case Weekly:
		weekday := int(day.Weekday())
		if weekday == 0 {
			weekday = 7
		}
		return day.AddDate(0, 0, -(weekday - 1))
	case Monthly:
		return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
	default:
		return day
	}
}

func bucketLabel(b time.Time, g Granularity, withYear bool) string {
	if g == Monthly {
		return b.Format("Jan 2006")
	}
	if withYear {
		return b.Format("Jan 2 2006")
	}
	return b.Format("Jan 2")
}
