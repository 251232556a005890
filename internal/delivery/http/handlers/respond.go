package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/krwdesk/otc-trade-service/internal/domain"
)

type errorResponse struct {
	Kind    string `json:"kind"`
	Message string `json:"message"`
}

// errorKinds maps each domain sentinel to a stable machine-readable kind and
// an HTTP status. Order matters: the first match wins.
var errorKinds = []struct {
	sentinel error
	kind     string
	status   int
}{
	{domain.ErrValidation, "ValidationError", http.StatusBadRequest},
	{domain.ErrNoBalance, "NoBalance", http.StatusBadRequest},
	{domain.ErrForbidden, "Forbidden", http.StatusForbidden},
	{domain.ErrTransactionNotFound, "NotFound", http.StatusNotFound},
	{domain.ErrNotFound, "NotFound", http.StatusNotFound},
	{domain.ErrInvalidTransition, "InvalidTransition", http.StatusConflict},
	{domain.ErrConflict, "ConcurrentTransitionConflict", http.StatusConflict},
	{domain.ErrOrderNotTradable, "OrderNotTradable", http.StatusConflict},
	{domain.ErrSettlementFailed, "SettlementFailed", http.StatusBadGateway},
	{domain.ErrExternalService, "ExternalServiceError", http.StatusBadGateway},
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, logger *zap.Logger, err error) {
	for _, ek := range errorKinds {
		if errors.Is(err, ek.sentinel) {
			writeJSON(w, ek.status, errorResponse{Kind: ek.kind, Message: err.Error()})
			return
		}
	}

	logger.Error("unhandled error", zap.Error(err))
	writeJSON(w, http.StatusInternalServerError, errorResponse{
		Kind:    "InternalError",
		Message: "an unexpected error occurred",
	})
}

func decodeBody(w http.ResponseWriter, r *http.Request, logger *zap.Logger, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{
			Kind:    "ValidationError",
			Message: "malformed request body",
		})
		return false
	}
	return true
}
