package dataset

import "time"

// Filter narrows the dataset for a page view. Zero-value fields mean "all";
// both date bounds are inclusive to the day.
type Filter struct {
	From     time.Time
	To       time.Time
	Category string
	Channel  string
}

// IsZero reports whether the filter selects everything.
func (f Filter) IsZero() bool {
	return f.From.IsZero() && f.To.IsZero() && f.Category == "" && f.Channel == ""
}

// Select returns the rows matching the filter, in source order.
func (d *Dataset) Select(f Filter) []Row {
	if f.IsZero() {
		return d.Rows
	}

	// Normalize To to the end of its day so a bound of 2024-03-01 keeps
	// orders timestamped within that day.
	end := f.To
	if !end.IsZero() {
		end = time.Date(end.Year(), end.Month(), end.Day(), 0, 0, 0, 0, end.Location()).
			AddDate(0, 0, 1).Add(-time.Nanosecond)
	}

	var out []Row
	for _, r := range d.Rows {
		if !f.From.IsZero() && r.Date.Before(f.From) {
			continue
		}
		if !end.IsZero() && r.Date.After(end) {
			continue
		}
		if f.Category != "" && r.Category != f.Category {
			continue
		}
		if f.Channel != "" && r.Channel != f.Channel {
			continue
		}
		out = append(out, r)
	}
	return out
}
