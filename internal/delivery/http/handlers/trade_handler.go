package handlers

import (
	"net"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/krwdesk/otc-trade-service/internal/domain"
	"github.com/krwdesk/otc-trade-service/internal/usecase/trade"
)

type TradeHandler struct {
	usecase trade.TradeUsecase
	logger  *zap.Logger
}

func NewTradeHandler(usecase trade.TradeUsecase, logger *zap.Logger) *TradeHandler {
	return &TradeHandler{usecase: usecase, logger: logger.Named("trade_handler")}
}

type orderResponse struct {
	OrderID      string `json:"orderId"`
	TradeID      string `json:"tradeId"`
	BuyerWallet  string `json:"buyerWalletAddress"`
	SellerWallet string `json:"sellerWalletAddress"`
	EscrowWallet string `json:"escrowWalletAddress"`

	UsdtAmount   string  `json:"usdtAmount"`
	KrwAmount    int64   `json:"krwAmount"`
	ExchangeRate float64 `json:"exchangeRate"`

	PrivateSale bool   `json:"privateSale"`
	Status      string `json:"status"`
	AudioOn     bool   `json:"audioOn"`

	TransactionHash string `json:"transactionHash,omitempty"`
	CancelReason    string `json:"cancelReason,omitempty"`

	CreatedAt          time.Time  `json:"createdAt"`
	AcceptedAt         *time.Time `json:"acceptedAt,omitempty"`
	PaymentRequestedAt *time.Time `json:"paymentRequestedAt,omitempty"`
	PaymentConfirmedAt *time.Time `json:"paymentConfirmedAt,omitempty"`
	CancelledAt        *time.Time `json:"cancelledAt,omitempty"`
}

func toOrderResponse(order *domain.Order) *orderResponse {
	return &orderResponse{
		OrderID:            order.ID,
		TradeID:            order.TradeID,
		BuyerWallet:        order.BuyerWalletAddress,
		SellerWallet:       order.SellerWalletAddress,
		EscrowWallet:       order.EscrowWalletAddress,
		UsdtAmount:         order.UsdtAmount.String(),
		KrwAmount:          order.KrwAmount,
		ExchangeRate:       order.ExchangeRate,
		PrivateSale:        order.PrivateSale,
		Status:             string(order.Status),
		AudioOn:            order.AudioOn,
		TransactionHash:    order.TransactionHash,
		CancelReason:       order.CancelReason,
		CreatedAt:          order.CreatedAt,
		AcceptedAt:         order.AcceptedAt,
		PaymentRequestedAt: order.PaymentRequestedAt,
		PaymentConfirmedAt: order.PaymentConfirmedAt,
		CancelledAt:        order.CancelledAt,
	}
}

type createOrderRequest struct {
	BuyerWalletAddress  string          `json:"buyerWalletAddress"`
	SellerWalletAddress string          `json:"sellerWalletAddress"`
	EscrowWalletAddress string          `json:"escrowWalletAddress"`
	UsdtAmount          decimal.Decimal `json:"usdtAmount"`
	KrwAmount           int64           `json:"krwAmount"`
	ExchangeRate        float64         `json:"exchangeRate"`
}

func (h *TradeHandler) CreatePrivateBuyOrder(w http.ResponseWriter, r *http.Request) {
	var req createOrderRequest
	if !decodeBody(w, r, h.logger, &req) {
		return
	}

	order, err := h.usecase.CreatePrivateBuyOrder(r.Context(), &trade.CreateOrderInput{
		BuyerWallet:  req.BuyerWalletAddress,
		SellerWallet: req.SellerWalletAddress,
		EscrowWallet: req.EscrowWalletAddress,
		UsdtAmount:   req.UsdtAmount,
		KrwAmount:    req.KrwAmount,
		ExchangeRate: req.ExchangeRate,
		PrivateSale:  true,
	})
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	writeJSON(w, http.StatusCreated, toOrderResponse(order))
}

type actorRequest struct {
	WalletAddress string `json:"walletAddress"`
}

func (h *TradeHandler) AcceptOrder(w http.ResponseWriter, r *http.Request) {
	var req actorRequest
	if !decodeBody(w, r, h.logger, &req) {
		return
	}

	order, err := h.usecase.AcceptOrder(r.Context(), mux.Vars(r)["orderId"], req.WalletAddress)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, toOrderResponse(order))
}

func (h *TradeHandler) RequestPayment(w http.ResponseWriter, r *http.Request) {
	var req actorRequest
	if !decodeBody(w, r, h.logger, &req) {
		return
	}

	order, err := h.usecase.RequestPayment(r.Context(), mux.Vars(r)["orderId"], req.WalletAddress)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, toOrderResponse(order))
}

type completeOrderRequest struct {
	SellerWalletAddress string `json:"sellerWalletAddress"`
	AgentCode           string `json:"agentcode"`
	StoreCode           string `json:"storecode"`
}

func (h *TradeHandler) CompleteOrder(w http.ResponseWriter, r *http.Request) {
	var req completeOrderRequest
	if !decodeBody(w, r, h.logger, &req) {
		return
	}

	order, err := h.usecase.CompletePrivateBuyOrderBySeller(r.Context(), &trade.CompleteOrderInput{
		OrderID:      mux.Vars(r)["orderId"],
		SellerWallet: req.SellerWalletAddress,
		AgentCode:    req.AgentCode,
		StoreCode:    req.StoreCode,
	})
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, toOrderResponse(order))
}

type cancelPrivateRequest struct {
	BuyerWalletAddress  string `json:"buyerWalletAddress"`
	SellerWalletAddress string `json:"sellerWalletAddress"`
}

func (h *TradeHandler) CancelPrivateByBuyer(w http.ResponseWriter, r *http.Request) {
	var req cancelPrivateRequest
	if !decodeBody(w, r, h.logger, &req) {
		return
	}

	err := h.usecase.CancelPrivateBuyOrderByBuyer(r.Context(),
		mux.Vars(r)["orderId"], req.BuyerWalletAddress, req.SellerWalletAddress)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"result": "cancelled"})
}

type cancelTradeRequest struct {
	BuyerWalletAddress string `json:"buyerWalletAddress"`
	Reason             string `json:"reason"`
}

func (h *TradeHandler) CancelTradeByBuyer(w http.ResponseWriter, r *http.Request) {
	var req cancelTradeRequest
	if !decodeBody(w, r, h.logger, &req) {
		return
	}

	err := h.usecase.CancelTradeByBuyer(r.Context(), mux.Vars(r)["orderId"],
		req.BuyerWalletAddress, domain.CancellationAudit{
			IPAddress: clientIP(r),
			UserAgent: r.UserAgent(),
			Reason:    req.Reason,
		})
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"result": "cancelled"})
}

func (h *TradeHandler) CancelByAdmin(w http.ResponseWriter, r *http.Request) {
	if err := h.usecase.CancelPrivateBuyOrderByAdminToBuyer(r.Context(), mux.Vars(r)["orderId"]); err != nil {
		writeError(w, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"result": "cancelled"})
}

type tradeStatusResponse struct {
	IsTrading bool           `json:"isTrading"`
	Order     *orderResponse `json:"order,omitempty"`
}

func (h *TradeHandler) GetPairStatus(w http.ResponseWriter, r *http.Request) {
	status, err := h.usecase.GetPrivateTradeStatusByBuyerAndSeller(r.Context(),
		r.URL.Query().Get("buyer"), r.URL.Query().Get("seller"))
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	resp := tradeStatusResponse{IsTrading: status.IsTrading}
	if status.Order != nil {
		resp.Order = toOrderResponse(status.Order)
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *TradeHandler) GetActiveByBuyer(w http.ResponseWriter, r *http.Request) {
	order, err := h.usecase.GetActivePrivateTradeByBuyerWallet(r.Context(), r.URL.Query().Get("buyer"))
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	resp := tradeStatusResponse{IsTrading: order != nil}
	if order != nil {
		resp.Order = toOrderResponse(order)
	}
	writeJSON(w, http.StatusOK, resp)
}

type audioRequest struct {
	AudioOn bool `json:"audioOn"`
}

func (h *TradeHandler) SetAudioOn(w http.ResponseWriter, r *http.Request) {
	var req audioRequest
	if !decodeBody(w, r, h.logger, &req) {
		return
	}

	if err := h.usecase.SetAudioOn(r.Context(), mux.Vars(r)["orderId"], req.AudioOn); err != nil {
		writeError(w, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]bool{"audioOn": req.AudioOn})
}

func clientIP(r *http.Request) string {
	if forwarded := r.Header.Get("X-Forwarded-For"); forwarded != "" {
		return forwarded
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
