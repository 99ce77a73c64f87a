package http

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/gomarketplace/cart-service/internal/platform/logger"
	"github.com/gomarketplace/cart-service/internal/platform/metrics"
)

// NewRouter wires the cart routes, health check and metrics endpoint.
func NewRouter(h *CartHandler, log logger.Logger, m *metrics.MetricsManager) *chi.Mux {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(requestLogger(log, m))

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	if m != nil {
		r.Method(http.MethodGet, "/metrics", m.Handler())
	}

	r.Route("/api/cart", func(r chi.Router) {
		r.Get("/", h.HandleGetCart)
		r.Delete("/", h.HandleClearCart)
		r.Post("/items", h.HandleAddToCart)
		r.Post("/items/{itemId}/increment", h.HandleIncrement)
		r.Post("/items/{itemId}/decrement", h.HandleDecrement)
	})

	return r
}

const unmatchedRoute = "unmatched"

func requestLogger(log logger.Logger, m *metrics.MetricsManager) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			started := time.Now()
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

			next.ServeHTTP(ww, r)

			// Raw paths stay out of metric labels.
			route := unmatchedRoute
			if rctx := chi.RouteContext(r.Context()); rctx != nil && rctx.RoutePattern() != "" {
				route = r.Method + " " + rctx.RoutePattern()
			}
			m.ObserveRequest("http", route, strconv.Itoa(ww.Status()), started)
			log.Infow("HTTP request completed",
				"method", r.Method,
				"path", r.URL.Path,
				"status", ww.Status(),
				"duration", time.Since(started),
				"request_id", middleware.GetReqID(r.Context()),
			)
		})
	}
}
