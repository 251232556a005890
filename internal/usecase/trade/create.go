package trade

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jaevor/go-nanoid"
	"go.uber.org/zap"

	"github.com/krwdesk/otc-trade-service/internal/domain"
	"github.com/krwdesk/otc-trade-service/internal/usecase/reconcile"
)

// CreatePrivateBuyOrder opens a buy order for a fixed buyer/seller pair.
// Re-invoking with the same pair while an order is still tradable returns
// the existing order instead of creating a duplicate, so repeated client
// requests are safe.
func (uc *DefaultTradeUsecase) CreatePrivateBuyOrder(ctx context.Context, input *CreateOrderInput) (*domain.Order, error) {
	if !domain.ValidWalletAddress(input.BuyerWallet) ||
		!domain.ValidWalletAddress(input.SellerWallet) ||
		!domain.ValidWalletAddress(input.EscrowWallet) {
		return nil, fmt.Errorf("order wallets: %w", domain.ErrValidation)
	}
	if !input.UsdtAmount.IsPositive() || input.KrwAmount <= 0 {
		return nil, fmt.Errorf("order amounts must be positive: %w", domain.ErrValidation)
	}

	existing, err := uc.OrderRepo.GetActiveOrderByPair(input.BuyerWallet, input.SellerWallet)
	if err != nil {
		return nil, err
	}
	if existing != nil && existing.Status.Tradable() {
		uc.Logger.Info("reusing active order for pair",
			zap.String("order_id", existing.ID),
			zap.String("status", string(existing.Status)))
		return existing, nil
	}

	capacityOK, err := uc.hasCapacity(ctx, input)
	if err != nil {
		return nil, err
	}

	idGenerator, err := nanoid.Standard(15)
	if err != nil {
		return nil, err
	}

	order := &domain.Order{
		ID:                  uuid.New().String(),
		TradeID:             idGenerator(),
		BuyerWalletAddress:  input.BuyerWallet,
		SellerWalletAddress: input.SellerWallet,
		EscrowWalletAddress: input.EscrowWallet,
		UsdtAmount:          input.UsdtAmount,
		KrwAmount:           input.KrwAmount,
		ExchangeRate:        input.ExchangeRate,
		PrivateSale:         input.PrivateSale,
		Status:              domain.StatusOrdered,
		CreatedAt:           time.Now(),
	}

	if err := uc.OrderRepo.CreateOrder(order); err != nil {
		return nil, err
	}

	// Private sales skip the explicit seller accept when capacity allows.
	if input.PrivateSale && capacityOK {
		if err := uc.OrderRepo.TransitionStatus(order.ID, domain.StatusTransition{
			From: []domain.OrderStatus{domain.StatusOrdered},
			To:   domain.StatusAccepted,
			At:   time.Now(),
		}); err != nil {
			uc.Logger.Warn("auto-accept lost the race",
				zap.String("order_id", order.ID), zap.Error(err))
		}
	}

	// Re-read: capacity may have been exhausted between the check and the
	// create, or a concurrent cancel may have fired already.
	created, err := uc.OrderRepo.GetOrderByID(order.ID)
	if err != nil {
		return nil, err
	}
	if !created.Status.Tradable() {
		return nil, fmt.Errorf("order %s landed in status %s: %w",
			created.ID, created.Status, domain.ErrOrderNotTradable)
	}

	uc.Metrics.RecordOrderCreated(created.PrivateSale)
	uc.publishEvent(created)

	uc.Logger.Info("order created",
		zap.String("order_id", created.ID),
		zap.String("trade_id", created.TradeID),
		zap.String("status", string(created.Status)),
		zap.String("usdt_amount", created.UsdtAmount.String()))

	return created, nil
}

// hasCapacity checks that the escrow wallet's free balance covers the new
// order. Advisory only: the balance is externally mutable, so settlement
// still handles transfer failure.
func (uc *DefaultTradeUsecase) hasCapacity(ctx context.Context, input *CreateOrderInput) (bool, error) {
	raw, err := uc.Executor.GetBalance(ctx, uc.Asset.ContractAddress, input.EscrowWallet)
	if err != nil {
		uc.Metrics.RecordExecutorError("get_balance")
		return false, err
	}

	balance, err := reconcile.AmountFromRaw(raw, uc.Asset.Decimals)
	if err != nil {
		return false, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	inUse, err := uc.Escrow.InUseAmount(input.EscrowWallet)
	if err != nil {
		return false, err
	}

	return balance.Sub(inUse).GreaterThanOrEqual(input.UsdtAmount), nil
}
