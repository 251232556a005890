package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// StatusTransition is one conditional compare-and-set write: the update
// matches on From and sets To plus the transition's timestamp and payload.
// Zero rows matched means the optimistic write lost the race.
type StatusTransition struct {
	From []OrderStatus
	To   OrderStatus
	At   time.Time

	// Settlement only.
	TransactionHash string
	// Cancellation only.
	Cancellation *CancellationAudit
}

type OrderRepository interface {
	CreateOrder(order *Order) error
	GetOrderByID(orderID string) (*Order, error)
	GetActiveOrderByPair(buyerWallet, sellerWallet string) (*Order, error)
	GetActiveOrderByBuyer(buyerWallet string) (*Order, error)

	// TransitionStatus applies tr as a single conditional update and returns
	// ErrConflict when no row matched the expected current status.
	TransitionStatus(orderID string, tr StatusTransition) error

	SetAudioOn(orderID string, audioOn bool) error

	// SumLockedByEscrow sums UsdtAmount over LockedStatuses orders drawing
	// on the given escrow wallet.
	SumLockedByEscrow(escrowWallet string) (decimal.Decimal, error)
}
