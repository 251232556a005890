package trade

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/krwdesk/otc-trade-service/internal/domain"
)

// Cancellation is never idempotent: a second cancel of the same order fails
// with ErrInvalidTransition instead of silently succeeding.

// CancelPrivateBuyOrderByBuyer cancels a private order after verifying the
// caller holds both sides of the pair.
func (uc *DefaultTradeUsecase) CancelPrivateBuyOrderByBuyer(ctx context.Context, orderID, buyerWallet, sellerWallet string) error {
	order, err := uc.getOrder(orderID)
	if err != nil {
		return err
	}
	if !strings.EqualFold(order.BuyerWalletAddress, buyerWallet) ||
		!strings.EqualFold(order.SellerWalletAddress, sellerWallet) {
		return fmt.Errorf("pair does not match order %s: %w", orderID, domain.ErrForbidden)
	}

	return uc.cancel(order, "buyer", nil)
}

// CancelTradeByBuyer is the general buyer cancel path. It records the
// caller's ip, user agent and stated reason for the audit trail.
func (uc *DefaultTradeUsecase) CancelTradeByBuyer(ctx context.Context, orderID, buyerWallet string, audit domain.CancellationAudit) error {
	order, err := uc.getOrder(orderID)
	if err != nil {
		return err
	}
	if !strings.EqualFold(order.BuyerWalletAddress, buyerWallet) {
		return fmt.Errorf("wallet %s is not the order buyer: %w", buyerWallet, domain.ErrForbidden)
	}

	return uc.cancel(order, "buyer", &audit)
}

// CancelPrivateBuyOrderByAdminToBuyer cancels on admin authority: no buyer
// match is required, terminal orders are still rejected.
func (uc *DefaultTradeUsecase) CancelPrivateBuyOrderByAdminToBuyer(ctx context.Context, orderID string) error {
	order, err := uc.getOrder(orderID)
	if err != nil {
		return err
	}

	return uc.cancel(order, "admin", nil)
}

func (uc *DefaultTradeUsecase) cancel(order *domain.Order, actor string, audit *domain.CancellationAudit) error {
	if order.Status.Terminal() {
		return fmt.Errorf("cancel from status %s: %w", order.Status, domain.ErrInvalidTransition)
	}

	if err := uc.OrderRepo.TransitionStatus(order.ID, domain.StatusTransition{
		From:         domain.TradableStatuses,
		To:           domain.StatusCancelled,
		At:           time.Now(),
		Cancellation: audit,
	}); err != nil {
		return err
	}

	uc.Metrics.RecordOrderCancelled(actor, order.PrivateSale)

	cancelled, err := uc.OrderRepo.GetOrderByID(order.ID)
	if err != nil {
		uc.Logger.Warn("re-read after cancel failed", zap.String("order_id", order.ID), zap.Error(err))
	} else {
		uc.publishEvent(cancelled)
	}

	uc.Logger.Info("order cancelled",
		zap.String("order_id", order.ID),
		zap.String("actor", actor))

	return nil
}
