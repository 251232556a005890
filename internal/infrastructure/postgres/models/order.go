package models

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/krwdesk/otc-trade-service/internal/domain"
)

type OrderModel struct {
	ID      string `gorm:"primaryKey;type:uuid"`
	TradeID string `gorm:"index:idx_trade_id,unique"`

	BuyerWalletAddress  string `gorm:"index:idx_buyer_status"`
	SellerWalletAddress string
	EscrowWalletAddress string `gorm:"index:idx_escrow_status"`

	UsdtAmount   decimal.Decimal `gorm:"type:numeric(30,6)"`
	KrwAmount    int64
	ExchangeRate float64

	PrivateSale bool
	Status      domain.OrderStatus `gorm:"index:idx_buyer_status;index:idx_escrow_status"`
	AudioOn     bool

	TransactionHash string

	CancelledByIP      string
	CancelledUserAgent string
	CancelReason       string

	CreatedAt          time.Time `gorm:"index:idx_created_at"`
	AcceptedAt         *time.Time
	PaymentRequestedAt *time.Time
	PaymentConfirmedAt *time.Time
	CancelledAt        *time.Time
}
