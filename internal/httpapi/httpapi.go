package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/TemirB/kaspi-feedback/internal/domain"
	"github.com/TemirB/kaspi-feedback/internal/observability"
)

//go:generate mockgen -source=httpapi.go -destination=httpapi_mock_test.go -package=httpapi

// Reader is the read side of the order store.
type Reader interface {
	Load() []domain.OrderRecord
}

// Server is the read-only presentation server over the order store.
type Server struct {
	reader   Reader
	router   chi.Router
	static   string
	gatherer prometheus.Gatherer
	logger   *zap.Logger
	metrics  observability.Metrics
}

type Option func(*Server)

// WithStatic serves files from dir for every path no API route claims.
func WithStatic(dir string) Option {
	return func(s *Server) { s.static = dir }
}

// WithGatherer exposes g on /metrics.
func WithGatherer(g prometheus.Gatherer) Option {
	return func(s *Server) { s.gatherer = g }
}

func New(reader Reader, logger *zap.Logger, metrics observability.Metrics, opts ...Option) *Server {
	s := &Server{
		reader:  reader,
		static:  "./web",
		logger:  logger,
		metrics: metrics,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.routes()
	return s
}

func (s *Server) routes() {
	r := chi.NewRouter()
	r.Use(
		middleware.RequestID,
		middleware.RealIP,
		middleware.Recoverer,
		ServerTimingApp(s.metrics),
	)

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	r.Get("/ping", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("pong"))
	})
	r.Get("/orders", s.listOrders)
	r.Get("/orders/{order_code}", s.getOrder)
	if s.gatherer != nil {
		r.Handle("/metrics", promhttp.HandlerFor(s.gatherer, promhttp.HandlerOpts{}))
	}
	r.Handle("/*", spa(s.static))

	s.router = r
}

func (s *Server) load(w http.ResponseWriter) []domain.OrderRecord {
	t0 := time.Now()
	records := s.reader.Load()
	observability.AppendServerTiming(w, "store", time.Since(t0), "read")
	return records
}

func (s *Server) listOrders(w http.ResponseWriter, r *http.Request) {
	records := s.load(w)

	status := strings.TrimSpace(r.URL.Query().Get("status"))
	out := make([]domain.OrderRecord, 0, len(records))
	for _, rec := range records {
		if status != "" && !strings.EqualFold(string(rec.Status), status) {
			continue
		}
		out = append(out, rec)
	}

	observability.SetCount(w, "X-Total-Count", len(out))
	writeJSON(w, out)
}

func (s *Server) getOrder(w http.ResponseWriter, r *http.Request) {
	code := chi.URLParam(r, "order_code")
	if code == "" {
		http.Error(w, "missing order_code", http.StatusBadRequest)
		return
	}

	for _, rec := range s.load(w) {
		if rec.OrderCode == code {
			writeJSON(w, rec)
			return
		}
	}
	s.logger.Debug("Order not found", zap.String("order_code", code))
	http.Error(w, "no order with this code", http.StatusNotFound)
}

// spa serves static files and falls back to index.html for unknown paths.
func spa(dir string) http.Handler {
	files := http.FileServer(http.Dir(dir))
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		p := filepath.Join(dir, filepath.FromSlash(filepath.Clean("/"+r.URL.Path)))
		if _, err := os.Stat(p); errors.Is(err, os.ErrNotExist) {
			http.ServeFile(w, r, filepath.Join(dir, "index.html"))
			return
		}
		files.ServeHTTP(w, r)
	})
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	_ = enc.Encode(v)
}

func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		<-ctx.Done()
		_ = srv.Shutdown(context.Background())
	}()
	s.logger.Info("HTTP server listening", zap.String("addr", addr))
	return srv.ListenAndServe()
}

func (s *Server) Handler() http.Handler { return s.router }
