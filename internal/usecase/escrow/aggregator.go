package escrow

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/krwdesk/otc-trade-service/internal/domain"
)

type EscrowUsecase interface {
	InUseAmount(escrowWallet string) (decimal.Decimal, error)
}

// DefaultEscrowUsecase reports how much of an escrow wallet's balance is
// already committed to open orders. The figure is a point-in-time estimate,
// not a lock: callers re-check right before admitting a new order and still
// handle downstream transfer failures.
type DefaultEscrowUsecase struct {
	OrderRepo domain.OrderRepository
}

func NewDefaultEscrowUsecase(orderRepo domain.OrderRepository) *DefaultEscrowUsecase {
	return &DefaultEscrowUsecase{OrderRepo: orderRepo}
}

func (uc *DefaultEscrowUsecase) InUseAmount(escrowWallet string) (decimal.Decimal, error) {
	if !domain.ValidWalletAddress(escrowWallet) {
		return decimal.Zero, fmt.Errorf("escrow wallet: %w", domain.ErrValidation)
	}
	return uc.OrderRepo.SumLockedByEscrow(escrowWallet)
}
