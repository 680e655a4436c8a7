package web

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"

	"opsboard/internal/analytics"
	"opsboard/internal/dataset"
)

type summaryResponse struct {
	TotalRevenue float64 `json:"total_revenue"`
	Orders       int64   `json:"orders"`
	AOV          float64 `json:"aov"`
	AvgLTV       float64 `json:"avg_ltv"`
	NewCustomers int64   `json:"new_customers"`
	Rows         int     `json:"rows"`
}

func (s *Server) handleAPISummary(w http.ResponseWriter, r *http.Request) {
	ds := s.cache.Snapshot()
	f, _, err := pageFilters(r, ds)
	if err != nil {
		s.writeJSONError(w, http.StatusBadRequest, err.Error())
		return
	}
	rows := ds.Select(f)
	sum := analytics.Summarize(rows, ds.Has(dataset.ColFirstOrder))
	s.writeJSON(w, summaryResponse{
		TotalRevenue: sum.TotalRevenue,
		Orders:       sum.Orders,
		AOV:          sum.AOV,
		AvgLTV:       sum.AvgLTV,
		NewCustomers: sum.NewCustomers,
		Rows:         len(rows),
	})
}

type seriesPoint struct {
	Bucket  string  `json:"bucket"`
	Revenue float64 `json:"revenue"`
}

func (s *Server) handleAPIChartRevenue(w http.ResponseWriter, r *http.Request) {
	ds := s.cache.Snapshot()
	f, _, err := pageFilters(r, ds)
	if err != nil {
		s.writeJSONError(w, http.StatusBadRequest, err.Error())
		return
	}
	gran := analytics.ParseGranularity(r.URL.Query().Get("gran"), analytics.Daily)
	series := analytics.RevenueSeries(ds.Select(f), gran)
	out := make([]seriesPoint, len(series))
	for i, p := range series {
		out[i] = seriesPoint{Bucket: p.Bucket.Format("2006-01-02"), Revenue: p.Revenue}
	}
	s.writeJSON(w, out)
}

type channelPoint struct {
	Channel string  `json:"channel"`
	Revenue float64 `json:"revenue"`
}

func (s *Server) handleAPIChartChannels(w http.ResponseWriter, r *http.Request) {
	ds := s.cache.Snapshot()
	f, _, err := pageFilters(r, ds)
	if err != nil {
		s.writeJSONError(w, http.StatusBadRequest, err.Error())
		return
	}
	channels := analytics.RevenueByChannel(ds.Select(f))
	out := make([]channelPoint, len(channels))
	for i, c := range channels {
		out[i] = channelPoint{Channel: c.Channel, Revenue: c.Revenue}
	}
	s.writeJSON(w, out)
}

func (s *Server) writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.log.Error("encode response", zap.Error(err))
	}
}

func (s *Server) writeJSONError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": msg})
}
