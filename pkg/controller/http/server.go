package http

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/taskhubnet/statuswatch/pkg/usecase"
	"github.com/taskhubnet/statuswatch/pkg/utils/logging"
)

// DefaultRequestTimeout bounds one report build; the upstream calls carry no
// deadline of their own, so the request context is the only stop.
const DefaultRequestTimeout = 60 * time.Second

type Server struct {
	router         *chi.Mux
	uc             *usecase.UseCases
	requestTimeout time.Duration
}

type Options func(*Server)

// WithRequestTimeout overrides the per-request deadline
func WithRequestTimeout(d time.Duration) Options {
	return func(s *Server) {
		if d > 0 {
			s.requestTimeout = d
		}
	}
}

func New(uc *usecase.UseCases, opts ...Options) *Server {
	r := chi.NewRouter()

	s := &Server{
		router:         r,
		uc:             uc,
		requestTimeout: DefaultRequestTimeout,
	}
	for _, opt := range opts {
		opt(s)
	}

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(accessLogger)
	r.Use(middleware.Recoverer)

	r.Route("/api", func(r chi.Router) {
		r.Get("/health", healthHandler)

		r.Route("/reports", func(r chi.Router) {
			r.Get("/lunch", s.lunchReportHandler)
			r.Get("/update", s.updateReportHandler)
			r.Get("/report", s.reportStatusHandler)
		})
	})

	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// accessLogger is a middleware that logs HTTP requests
func accessLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		defer func() {
			logging.Default().Info("access",
				"method", r.Method,
				"path", r.URL.Path,
				"status", ww.Status(),
				"bytes", ww.BytesWritten(),
				"duration", time.Since(start),
				"remote", r.RemoteAddr,
				"user_agent", r.UserAgent(),
			)
		}()

		next.ServeHTTP(ww, r)
	})
}

func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(`{"status":"ok"}`))
}
