package trade

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/krwdesk/otc-trade-service/internal/domain"
)

// AcceptOrder moves an ordered order to accepted on behalf of its seller.
// Private sales normally auto-accept at creation; this covers the explicit
// path for open-market orders and auto-accepts that lost their race.
func (uc *DefaultTradeUsecase) AcceptOrder(ctx context.Context, orderID, sellerWallet string) (*domain.Order, error) {
	order, err := uc.getOrder(orderID)
	if err != nil {
		return nil, err
	}
	if !strings.EqualFold(order.SellerWalletAddress, sellerWallet) {
		return nil, fmt.Errorf("wallet %s is not the order seller: %w", sellerWallet, domain.ErrForbidden)
	}
	if order.Status != domain.StatusOrdered {
		return nil, fmt.Errorf("accept from status %s: %w", order.Status, domain.ErrInvalidTransition)
	}

	if err := uc.OrderRepo.TransitionStatus(orderID, domain.StatusTransition{
		From: []domain.OrderStatus{domain.StatusOrdered},
		To:   domain.StatusAccepted,
		At:   time.Now(),
	}); err != nil {
		return nil, err
	}

	uc.Logger.Info("order accepted", zap.String("order_id", orderID))

	return uc.OrderRepo.GetOrderByID(orderID)
}

// RequestPayment moves an accepted order to paymentRequested on behalf of
// its buyer, signalling that the fiat leg is underway.
func (uc *DefaultTradeUsecase) RequestPayment(ctx context.Context, orderID, buyerWallet string) (*domain.Order, error) {
	order, err := uc.getOrder(orderID)
	if err != nil {
		return nil, err
	}
	if !strings.EqualFold(order.BuyerWalletAddress, buyerWallet) {
		return nil, fmt.Errorf("wallet %s is not the order buyer: %w", buyerWallet, domain.ErrForbidden)
	}
	if order.Status != domain.StatusAccepted {
		return nil, fmt.Errorf("request payment from status %s: %w", order.Status, domain.ErrInvalidTransition)
	}

	if err := uc.OrderRepo.TransitionStatus(orderID, domain.StatusTransition{
		From: []domain.OrderStatus{domain.StatusAccepted},
		To:   domain.StatusPaymentRequested,
		At:   time.Now(),
	}); err != nil {
		return nil, err
	}

	uc.Logger.Info("payment requested", zap.String("order_id", orderID))

	return uc.OrderRepo.GetOrderByID(orderID)
}

func (uc *DefaultTradeUsecase) getOrder(orderID string) (*domain.Order, error) {
	if !domain.ValidOrderID(orderID) {
		return nil, fmt.Errorf("order id %q: %w", orderID, domain.ErrValidation)
	}
	return uc.OrderRepo.GetOrderByID(orderID)
}
