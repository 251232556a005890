package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type OrderStatus string

const (
	StatusOrdered          OrderStatus = "ordered"
	StatusAccepted         OrderStatus = "accepted"
	StatusPaymentRequested OrderStatus = "paymentRequested"
	StatusPaymentConfirmed OrderStatus = "paymentConfirmed"
	StatusCancelled        OrderStatus = "cancelled"
)

// TradableStatuses are the non-terminal statuses: an order in one of these
// still occupies the single active trade slot for its buyer/seller pair.
var TradableStatuses = []OrderStatus{StatusOrdered, StatusAccepted, StatusPaymentRequested}

// LockedStatuses count against escrow availability. Accepted orders are
// excluded: funds lock at placement and again once a deposit is requested.
var LockedStatuses = []OrderStatus{StatusOrdered, StatusPaymentRequested}

func (s OrderStatus) Terminal() bool {
	return s == StatusPaymentConfirmed || s == StatusCancelled
}

func (s OrderStatus) Tradable() bool {
	for _, ts := range TradableStatuses {
		if s == ts {
			return true
		}
	}
	return false
}

type Order struct {
	ID      string
	TradeID string

	BuyerWalletAddress  string
	SellerWalletAddress string
	EscrowWalletAddress string

	UsdtAmount   decimal.Decimal
	KrwAmount    int64
	ExchangeRate float64

	PrivateSale bool
	Status      OrderStatus
	AudioOn     bool

	// Set only once the settlement transfer confirmed.
	TransactionHash string

	CancelledByIP      string
	CancelledUserAgent string
	CancelReason       string

	CreatedAt          time.Time
	AcceptedAt         *time.Time
	PaymentRequestedAt *time.Time
	PaymentConfirmedAt *time.Time
	CancelledAt        *time.Time
}

// CancellationAudit carries the caller metadata recorded on buyer cancels.
type CancellationAudit struct {
	IPAddress string
	UserAgent string
	Reason    string
}
