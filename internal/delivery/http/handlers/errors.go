package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/LavaJover/shvark-mpesa-service/internal/delivery/http/dto/payment/response"
	"github.com/LavaJover/shvark-mpesa-service/internal/delivery/http/middleware"
	"github.com/LavaJover/shvark-mpesa-service/internal/domain"
)

// gateway causes whose text is safe to show the caller
var gatewayCauses = []error{
	domain.ErrGatewayNotConfigured,
	domain.ErrGatewayAuth,
	domain.ErrGatewayRequest,
}

func writeError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, domain.ErrOrderNotFound):
		writeJSON(w, http.StatusNotFound, response.Fail("Order not found"))
	case errors.Is(err, domain.ErrOrderAlreadyPaid):
		writeJSON(w, http.StatusConflict, response.Fail("Order already paid"))
	case errors.Is(err, domain.ErrUnauthenticated):
		writeJSON(w, http.StatusUnauthorized, response.Fail("Unauthenticated"))
	case errors.Is(err, domain.ErrPaymentInitiationFailed):
		message := domain.ErrPaymentInitiationFailed.Error()
		for _, cause := range gatewayCauses {
			if errors.Is(err, cause) {
				message = cause.Error()
				break
			}
		}
		writeJSON(w, http.StatusInternalServerError, response.Fail(message))
	default:
		slog.Error("payment request failed",
			"path", r.URL.Path,
			"request_id", middleware.RequestIDFromContext(r.Context()),
			"error", err.Error(),
		)
		writeJSON(w, http.StatusInternalServerError, response.Fail("Internal server error"))
	}
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Warn("failed to write response", "error", err.Error())
	}
}
