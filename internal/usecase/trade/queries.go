package trade

import (
	"context"
	"fmt"

	"github.com/krwdesk/otc-trade-service/internal/domain"
)

// GetPrivateTradeStatusByBuyerAndSeller reports whether the pair has an
// order in a tradable status. Terminal rows for the same pair do not count.
func (uc *DefaultTradeUsecase) GetPrivateTradeStatusByBuyerAndSeller(ctx context.Context, buyerWallet, sellerWallet string) (*TradeStatus, error) {
	if !domain.ValidWalletAddress(buyerWallet) || !domain.ValidWalletAddress(sellerWallet) {
		return nil, fmt.Errorf("pair wallets: %w", domain.ErrValidation)
	}

	order, err := uc.OrderRepo.GetActiveOrderByPair(buyerWallet, sellerWallet)
	if err != nil {
		return nil, err
	}
	if order == nil || !order.Status.Tradable() {
		return &TradeStatus{IsTrading: false}, nil
	}

	return &TradeStatus{IsTrading: true, Order: order}, nil
}

// GetActivePrivateTradeByBuyerWallet returns the buyer's single tradable
// order, or nil when none is open.
func (uc *DefaultTradeUsecase) GetActivePrivateTradeByBuyerWallet(ctx context.Context, buyerWallet string) (*domain.Order, error) {
	if !domain.ValidWalletAddress(buyerWallet) {
		return nil, fmt.Errorf("buyer wallet: %w", domain.ErrValidation)
	}

	order, err := uc.OrderRepo.GetActiveOrderByBuyer(buyerWallet)
	if err != nil {
		return nil, err
	}
	if order == nil || !order.Status.Tradable() {
		return nil, nil
	}

	return order, nil
}
