package handlers

import (
	"net/http"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/krwdesk/otc-trade-service/internal/domain"
	"github.com/krwdesk/otc-trade-service/internal/usecase/reconcile"
)

type ReconcileHandler struct {
	usecase reconcile.ReconcileUsecase
	logger  *zap.Logger
}

func NewReconcileHandler(usecase reconcile.ReconcileUsecase, logger *zap.Logger) *ReconcileHandler {
	return &ReconcileHandler{usecase: usecase, logger: logger.Named("reconcile_handler")}
}

type historyResponse struct {
	AgentCode string `json:"agentcode"`
	StoreCode string `json:"storecode"`

	ActionType      string `json:"actionType"`
	TransactionID   string `json:"transactionId,omitempty"`
	TransactionHash string `json:"transactionHash,omitempty"`

	FromWalletAddress string `json:"fromWalletAddress"`
	ToWalletAddress   string `json:"toWalletAddress"`
	Amount            string `json:"amount"`
	RawValue          string `json:"rawValue,omitempty"`

	Status        string `json:"status"`
	OnchainStatus string `json:"onchainStatus,omitempty"`
	Error         string `json:"error,omitempty"`

	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
	ConfirmedAt *time.Time `json:"confirmedAt,omitempty"`
}

func toHistoryResponse(h *domain.EngineActionHistory) *historyResponse {
	return &historyResponse{
		AgentCode:         h.AgentCode,
		StoreCode:         h.StoreCode,
		ActionType:        string(h.ActionType),
		TransactionID:     h.TransactionID,
		TransactionHash:   h.TransactionHash,
		FromWalletAddress: h.FromWalletAddress,
		ToWalletAddress:   h.ToWalletAddress,
		Amount:            h.Amount.String(),
		RawValue:          h.RawValue,
		Status:            string(h.Status),
		OnchainStatus:     h.OnchainStatus,
		Error:             h.Error,
		CreatedAt:         h.CreatedAt,
		UpdatedAt:         h.UpdatedAt,
		ConfirmedAt:       h.ConfirmedAt,
	}
}

type recoverRequest struct {
	AgentCode         string `json:"agentcode"`
	StoreCode         string `json:"storecode"`
	FromWalletAddress string `json:"fromWalletAddress"`
	ToWalletAddress   string `json:"toWalletAddress"`
}

func (h *ReconcileHandler) SubmitRecover(w http.ResponseWriter, r *http.Request) {
	var req recoverRequest
	if !decodeBody(w, r, h.logger, &req) {
		return
	}

	history, err := h.usecase.SubmitRecover(r.Context(), &reconcile.RecoverInput{
		AgentCode:  req.AgentCode,
		StoreCode:  req.StoreCode,
		FromWallet: req.FromWalletAddress,
		ToWallet:   req.ToWalletAddress,
	})
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	writeJSON(w, http.StatusCreated, toHistoryResponse(history))
}

type chargeRequest struct {
	AgentCode         string          `json:"agentcode"`
	StoreCode         string          `json:"storecode"`
	FromWalletAddress string          `json:"fromWalletAddress"`
	ToWalletAddress   string          `json:"toWalletAddress"`
	Amount            decimal.Decimal `json:"amount"`
	TransactionHash   string          `json:"transactionHash"`
	Status            string          `json:"status"`
}

func (h *ReconcileHandler) RecordCharge(w http.ResponseWriter, r *http.Request) {
	var req chargeRequest
	if !decodeBody(w, r, h.logger, &req) {
		return
	}

	history, err := h.usecase.RecordCharge(r.Context(), &reconcile.ChargeInput{
		AgentCode:       req.AgentCode,
		StoreCode:       req.StoreCode,
		FromWallet:      req.FromWalletAddress,
		ToWallet:        req.ToWalletAddress,
		Amount:          req.Amount,
		TransactionHash: req.TransactionHash,
		Status:          req.Status,
	})
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	writeJSON(w, http.StatusCreated, toHistoryResponse(history))
}

type refreshRequest struct {
	ActionType      string `json:"actionType"`
	TransactionID   string `json:"transactionId"`
	TransactionHash string `json:"transactionHash"`
}

func (h *ReconcileHandler) RefreshStatus(w http.ResponseWriter, r *http.Request) {
	var req refreshRequest
	if !decodeBody(w, r, h.logger, &req) {
		return
	}

	history, err := h.usecase.RefreshStatus(r.Context(), domain.ActionKey{
		ActionType:      domain.ActionType(req.ActionType),
		TransactionID:   req.TransactionID,
		TransactionHash: req.TransactionHash,
	})
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, toHistoryResponse(history))
}

func (h *ReconcileHandler) ListHistory(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	period := domain.HistoryPeriod(query.Get("period"))
	switch period {
	case domain.PeriodDay, domain.PeriodWeek, domain.PeriodMonth:
	case "":
		period = domain.PeriodDay
	default:
		writeJSON(w, http.StatusBadRequest, errorResponse{
			Kind:    "ValidationError",
			Message: "period must be one of day, week, month",
		})
		return
	}

	rows, err := h.usecase.ListHistory(r.Context(), &reconcile.ListHistoryInput{
		AgentCode:      query.Get("agentcode"),
		StoreCode:      query.Get("storecode"),
		ActionType:     domain.ActionType(query.Get("type")),
		Period:         period,
		RefreshPending: query.Get("refresh") == "true",
	})
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	resp := make([]*historyResponse, 0, len(rows))
	for _, row := range rows {
		resp = append(resp, toHistoryResponse(row))
	}
	writeJSON(w, http.StatusOK, resp)
}
