// Package web serves the dashboard pages, the JSON API, and the export
// endpoints over HTTP.
package web

import (
	"bytes"
	"context"
	"fmt"
	"io/fs"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/yuin/goldmark"
	"go.uber.org/zap"

	"opsboard/internal/dataset"
)

// Metrics receives dashboard usage metrics. The otel adapter implements it;
// tests and metric-less deployments use the no-op variant.
type Metrics interface {
	PageView(ctx context.Context, page string)
	RenderDuration(ctx context.Context, page string, seconds float64)
}

// Options carries the display settings the server renders with.
type Options struct {
	Addr            string
	Title           string
	ShutdownTimeout time.Duration
	TopProducts     int     // default top-N on the sales page
	StockThreshold  float64 // default low-stock threshold
	CatalogLimit    int     // product table row cap
	LowStockLimit   int     // low-stock table row cap
	HistogramBins   int
}

func (o Options) withDefaults() Options {
	if o.Addr == "" {
		o.Addr = ":8080"
	}
	if o.ShutdownTimeout == 0 {
		o.ShutdownTimeout = 10 * time.Second
	}
	if o.Title == "" {
		o.Title = "Operations Dashboard"
	}
	if o.TopProducts == 0 {
		o.TopProducts = 8
	}
	if o.StockThreshold == 0 {
		o.StockThreshold = 10
	}
	if o.CatalogLimit == 0 {
		o.CatalogLimit = 200
	}
	if o.LowStockLimit == 0 {
		o.LowStockLimit = 50
	}
	if o.HistogramBins == 0 {
		o.HistogramBins = 30
	}
	return o
}

type Server struct {
	cache   *dataset.Cache
	opts    Options
	log     *zap.Logger
	metrics Metrics
	router  chi.Router
	notes   []byte // rendered notes.md
	css     string
}

func NewServer(cache *dataset.Cache, opts Options, log *zap.Logger, metrics Metrics) (*Server, error) {
	var notes bytes.Buffer
	if err := goldmark.New().Convert(notesMarkdown, &notes); err != nil {
		return nil, fmt.Errorf("render notes: %w", err)
	}
	css, err := staticFiles.ReadFile("static/styles.css")
	if err != nil {
		return nil, fmt.Errorf("read styles: %w", err)
	}

	s := &Server{
		cache:   cache,
		opts:    opts.withDefaults(),
		log:     log,
		metrics: metrics,
		router:  chi.NewRouter(),
		notes:   notes.Bytes(),
		css:     string(css),
	}
	s.setupRoutes()
	return s, nil
}

func (s *Server) setupRoutes() {
	r := s.router
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(s.logRequests)

	staticFS, err := fs.Sub(staticFiles, "static")
	if err != nil {
		panic(fmt.Sprintf("static filesystem: %v", err))
	}
	r.Handle("/static/*", http.StripPrefix("/static/", http.FileServer(http.FS(staticFS))))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	// Pages
	r.Get("/", s.page("overview", s.handleOverview))
	r.Get("/sales", s.page("sales", s.handleSales))
	r.Get("/products", s.page("products", s.handleProducts))
	r.Get("/inventory", s.page("inventory", s.handleInventory))
	r.Get("/marketing", s.page("marketing", s.handleMarketing))
	r.Get("/customers", s.page("customers", s.handleCustomers))
	r.Get("/exports", s.page("exports", s.handleExports))

	// JSON API
	r.Get("/api/summary", s.handleAPISummary)
	r.Get("/api/charts/revenue", s.handleAPIChartRevenue)
	r.Get("/api/charts/channels", s.handleAPIChartChannels)

	// Export
	r.Get("/api/export/rows", s.handleExportRows)
}

// page wraps a page handler with view metrics.
func (s *Server) page(name string, h http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		s.metrics.PageView(r.Context(), name)
		h(w, r)
		s.metrics.RenderDuration(r.Context(), name, time.Since(start).Seconds())
	}
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		s.log.Info("request",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", ww.Status()),
			zap.Duration("took", time.Since(start)),
			zap.String("request_id", middleware.GetReqID(r.Context())))
	})
}

// Handler exposes the router, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Start runs the HTTP server until ctx is canceled, then shuts down
// gracefully.
func (s *Server) Start(ctx context.Context) error {
	server := &http.Server{
		Addr:         s.opts.Addr,
		Handler:      s.router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	s.log.Info("dashboard listening", zap.String("addr", s.opts.Addr))

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), s.opts.ShutdownTimeout)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			s.log.Warn("server shutdown", zap.Error(err))
		}
	}()

	err := server.ListenAndServe()
	if err == http.ErrServerClosed {
		return nil
	}
	return err
}
