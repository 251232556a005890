package http

import (
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/krwdesk/otc-trade-service/internal/delivery/http/handlers"
)

// NewRouter wires every exposed verb onto a mux router with logging and
// recovery middleware, plus the health and metrics endpoints.
func NewRouter(
	tradeHandler *handlers.TradeHandler,
	reconcileHandler *handlers.ReconcileHandler,
	walletHandler *handlers.WalletHandler,
	logger *zap.Logger) *mux.Router {

	router := mux.NewRouter()
	router.Use(loggingMiddleware(logger))
	router.Use(recoveryMiddleware(logger))

	router.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	}).Methods(http.MethodGet)
	router.Handle("/metrics", promhttp.Handler()).Methods(http.MethodGet)

	api := router.PathPrefix("/api/v1").Subrouter()

	api.HandleFunc("/trades/private", tradeHandler.CreatePrivateBuyOrder).Methods(http.MethodPost)
	api.HandleFunc("/trades/{orderId}/accept", tradeHandler.AcceptOrder).Methods(http.MethodPost)
	api.HandleFunc("/trades/{orderId}/request-payment", tradeHandler.RequestPayment).Methods(http.MethodPost)
	api.HandleFunc("/trades/{orderId}/complete", tradeHandler.CompleteOrder).Methods(http.MethodPost)
	api.HandleFunc("/trades/{orderId}/cancel", tradeHandler.CancelTradeByBuyer).Methods(http.MethodPost)
	api.HandleFunc("/trades/{orderId}/cancel/private", tradeHandler.CancelPrivateByBuyer).Methods(http.MethodPost)
	api.HandleFunc("/trades/{orderId}/audio", tradeHandler.SetAudioOn).Methods(http.MethodPatch)
	api.HandleFunc("/trades/status", tradeHandler.GetPairStatus).Methods(http.MethodGet)
	api.HandleFunc("/trades/active", tradeHandler.GetActiveByBuyer).Methods(http.MethodGet)
	api.HandleFunc("/admin/trades/{orderId}/cancel", tradeHandler.CancelByAdmin).Methods(http.MethodPost)

	api.HandleFunc("/reconcile/recover", reconcileHandler.SubmitRecover).Methods(http.MethodPost)
	api.HandleFunc("/reconcile/charge", reconcileHandler.RecordCharge).Methods(http.MethodPost)
	api.HandleFunc("/reconcile/refresh", reconcileHandler.RefreshStatus).Methods(http.MethodPost)
	api.HandleFunc("/reconcile/history", reconcileHandler.ListHistory).Methods(http.MethodGet)

	api.HandleFunc("/wallets/agent", walletHandler.CreateAgentWallets).Methods(http.MethodPost)
	api.HandleFunc("/wallets/{address}/identity", walletHandler.ResolveIdentity).Methods(http.MethodGet)
	api.HandleFunc("/escrow/{address}/in-use", walletHandler.InUseAmount).Methods(http.MethodGet)

	return router
}

func loggingMiddleware(logger *zap.Logger) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			wrapped := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}

			next.ServeHTTP(wrapped, r)

			logger.Info("http request",
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.Int("status", wrapped.statusCode),
				zap.Duration("duration", time.Since(start)),
				zap.String("remote_addr", r.RemoteAddr),
			)
		})
	}
}

type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

func recoveryMiddleware(logger *zap.Logger) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if err := recover(); err != nil {
					logger.Error("panic recovered",
						zap.Any("error", err),
						zap.String("method", r.Method),
						zap.String("path", r.URL.Path),
					)

					w.Header().Set("Content-Type", "application/json")
					w.WriteHeader(http.StatusInternalServerError)
					_, _ = w.Write([]byte(`{"kind":"InternalError","message":"an unexpected error occurred"}`))
				}
			}()

			next.ServeHTTP(w, r)
		})
	}
}
