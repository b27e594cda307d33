package handlers

import (
	"net/http"

	"github.com/LavaJover/shvark-mpesa-service/internal/delivery/http/middleware"
	"github.com/LavaJover/shvark-mpesa-service/internal/domain"
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// NewRouter mounts the payment API. gatherer may be nil to skip /metrics.
func NewRouter(payments *PaymentHandler, tokens domain.AccessTokenRepository, gatherer prometheus.Gatherer) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID())
	r.Use(middleware.AccessLog)
	r.Use(chimiddleware.Recoverer)

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	if gatherer != nil {
		r.Handle("/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))
	}

	r.Route("/payments", func(r chi.Router) {
		r.Post("/callback", payments.Callback)

		r.Group(func(r chi.Router) {
			r.Use(middleware.Authenticate(tokens))
			r.Post("/stk-push", payments.StkPush)
			r.Get("/orders/{orderId}/latest", payments.LatestForOrder)
		})
	})

	return r
}
