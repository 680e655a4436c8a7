package web

import (
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"opsboard/internal/dataset"
)

// filterForm carries the filter controls back into the page shell.
type filterForm struct {
	From     string
	To       string
	Category string
	Channel  string

	Categories []string
	Channels   []string

	// Page-specific controls.
	ShowGran      bool
	Gran          string
	TopN          int
	ShowThreshold bool
	Threshold     float64
}

// Query re-encodes the shared filter fields so navigation links and export
// URLs keep the current selection.
func (f filterForm) Query() string {
	v := url.Values{}
	if f.From != "" {
		v.Set("from", f.From)
	}
	if f.To != "" {
		v.Set("to", f.To)
	}
	if f.Category != "" {
		v.Set("category", f.Category)
	}
	if f.Channel != "" {
		v.Set("channel", f.Channel)
	}
	if len(v) == 0 {
		return ""
	}
	return "?" + v.Encode()
}

// pageFilters parses the shared filter params and fills the form's option
// lists from the current snapshot.
func pageFilters(r *http.Request, ds *dataset.Dataset) (dataset.Filter, filterForm, error) {
	q := r.URL.Query()
	form := filterForm{
		From:       q.Get("from"),
		To:         q.Get("to"),
		Category:   q.Get("category"),
		Channel:    q.Get("channel"),
		Categories: ds.Categories(),
		Channels:   ds.Channels(),
	}

	var f dataset.Filter
	var err error
	if f.From, err = parseDateParam(form.From); err != nil {
		return f, form, fmt.Errorf("invalid 'from' date %q", form.From)
	}
	if f.To, err = parseDateParam(form.To); err != nil {
		return f, form, fmt.Errorf("invalid 'to' date %q", form.To)
	}
	f.Category = form.Category
	f.Channel = form.Channel
	return f, form, nil
}

func parseDateParam(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	return time.Parse("2006-01-02", s)
}

// clampTopN bounds the top-N product control to 3..20.
func clampTopN(s string, def int) int {
	n := def
	if v, err := strconv.Atoi(s); err == nil {
		n = v
	}
	if n < 3 {
		n = 3
	}
	if n > 20 {
		n = 20
	}
	return n
}

func thresholdParam(s string, def float64) float64 {
	if v, err := strconv.ParseFloat(s, 64); err == nil && v >= 0 {
		return v
	}
	return def
}
