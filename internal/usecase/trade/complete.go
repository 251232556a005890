package trade

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/krwdesk/otc-trade-service/internal/domain"
	"github.com/krwdesk/otc-trade-service/internal/usecase/reconcile"
)

// CompletePrivateBuyOrderBySeller settles an order: the escrow wallet pays
// the buyer and the order moves to paymentConfirmed. Only the order's seller
// may complete it, and only from paymentRequested. A failed transfer leaves
// the order in paymentRequested; the seller retries completion later.
func (uc *DefaultTradeUsecase) CompletePrivateBuyOrderBySeller(ctx context.Context, input *CompleteOrderInput) (*domain.Order, error) {
	order, err := uc.getOrder(input.OrderID)
	if err != nil {
		return nil, err
	}
	if !strings.EqualFold(order.SellerWalletAddress, input.SellerWallet) {
		return nil, fmt.Errorf("wallet %s is not the order seller: %w", input.SellerWallet, domain.ErrForbidden)
	}
	if order.Status != domain.StatusPaymentRequested {
		return nil, fmt.Errorf("complete from status %s: %w", order.Status, domain.ErrInvalidTransition)
	}

	started := time.Now()
	history, err := uc.Reconciler.Transfer(ctx, &reconcile.TransferInput{
		AgentCode:  input.AgentCode,
		StoreCode:  input.StoreCode,
		FromWallet: order.EscrowWalletAddress,
		ToWallet:   order.BuyerWalletAddress,
		Amount:     order.UsdtAmount,
	})
	if err != nil {
		uc.Metrics.RecordSettlementDuration("failed", time.Since(started).Seconds())
		uc.Logger.Error("settlement transfer failed",
			zap.String("order_id", order.ID), zap.Error(err))
		return nil, fmt.Errorf("%w: %v", domain.ErrSettlementFailed, err)
	}
	if history.Status == domain.ActionFailed {
		uc.Metrics.RecordSettlementDuration("failed", time.Since(started).Seconds())
		return nil, fmt.Errorf("%w: transfer %s reported %s",
			domain.ErrSettlementFailed, history.TransactionID, history.Error)
	}
	uc.Metrics.RecordSettlementDuration("submitted", time.Since(started).Seconds())

	if err := uc.OrderRepo.TransitionStatus(order.ID, domain.StatusTransition{
		From:            []domain.OrderStatus{domain.StatusPaymentRequested},
		To:              domain.StatusPaymentConfirmed,
		At:              time.Now(),
		TransactionHash: history.TransactionHash,
	}); err != nil {
		return nil, err
	}

	completed, err := uc.OrderRepo.GetOrderByID(order.ID)
	if err != nil {
		return nil, err
	}

	usdt, _ := completed.UsdtAmount.Float64()
	uc.Metrics.RecordOrderCompleted(completed.PrivateSale, usdt)
	uc.publishEvent(completed)

	uc.Logger.Info("order settled",
		zap.String("order_id", completed.ID),
		zap.String("transaction_id", history.TransactionID),
		zap.String("transaction_hash", history.TransactionHash))

	return completed, nil
}
