package repository

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/krwdesk/otc-trade-service/internal/domain"
	"github.com/krwdesk/otc-trade-service/internal/infrastructure/postgres/mappers"
	"github.com/krwdesk/otc-trade-service/internal/infrastructure/postgres/models"
)

type DefaultOrderRepository struct {
	DB *gorm.DB
}

func NewDefaultOrderRepository(db *gorm.DB) *DefaultOrderRepository {
	return &DefaultOrderRepository{DB: db}
}

func (r *DefaultOrderRepository) CreateOrder(order *domain.Order) error {
	orderModel := mappers.ToGORMOrder(order)
	if err := r.DB.Create(orderModel).Error; err != nil {
		return fmt.Errorf("failed to create order: %w", err)
	}
	return nil
}

func (r *DefaultOrderRepository) GetOrderByID(orderID string) (*domain.Order, error) {
	var orderModel models.OrderModel
	if err := r.DB.First(&orderModel, "id = ?", orderID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("order %s: %w", orderID, domain.ErrNotFound)
		}
		return nil, err
	}
	return mappers.ToDomainOrder(&orderModel), nil
}

// GetActiveOrderByPair returns the single non-terminal order for a
// buyer/seller pair, or nil when the pair has no active trade.
func (r *DefaultOrderRepository) GetActiveOrderByPair(buyerWallet, sellerWallet string) (*domain.Order, error) {
	var orderModel models.OrderModel
	err := r.DB.
		Where("buyer_wallet_address = ? AND seller_wallet_address = ?", buyerWallet, sellerWallet).
		Where("status IN ?", statusStrings(domain.TradableStatuses)).
		Order("created_at DESC").
		First(&orderModel).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return mappers.ToDomainOrder(&orderModel), nil
}

func (r *DefaultOrderRepository) GetActiveOrderByBuyer(buyerWallet string) (*domain.Order, error) {
	var orderModel models.OrderModel
	err := r.DB.
		Where("buyer_wallet_address = ?", buyerWallet).
		Where("status IN ?", statusStrings(domain.TradableStatuses)).
		Order("created_at DESC").
		First(&orderModel).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return mappers.ToDomainOrder(&orderModel), nil
}

// TransitionStatus issues the transition as one conditional UPDATE filtered
// on the expected current status. Zero matched rows means another writer won
// the race and the caller gets ErrConflict.
func (r *DefaultOrderRepository) TransitionStatus(orderID string, tr domain.StatusTransition) error {
	updates := map[string]interface{}{
		"status": tr.To,
	}

	switch tr.To {
	case domain.StatusAccepted:
		updates["accepted_at"] = tr.At
	case domain.StatusPaymentRequested:
		updates["payment_requested_at"] = tr.At
	case domain.StatusPaymentConfirmed:
		updates["payment_confirmed_at"] = tr.At
		updates["transaction_hash"] = tr.TransactionHash
	case domain.StatusCancelled:
		updates["cancelled_at"] = tr.At
		if tr.Cancellation != nil {
			updates["cancelled_by_ip"] = tr.Cancellation.IPAddress
			updates["cancelled_user_agent"] = tr.Cancellation.UserAgent
			updates["cancel_reason"] = tr.Cancellation.Reason
		}
	}

	res := r.DB.Model(&models.OrderModel{}).
		Where("id = ? AND status IN ?", orderID, statusStrings(tr.From)).
		Updates(updates)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("order %s to %s: %w", orderID, tr.To, domain.ErrConflict)
	}

	return nil
}

func (r *DefaultOrderRepository) SetAudioOn(orderID string, audioOn bool) error {
	res := r.DB.Model(&models.OrderModel{}).
		Where("id = ?", orderID).
		Update("audio_on", audioOn)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("order %s: %w", orderID, domain.ErrNotFound)
	}
	return nil
}

func (r *DefaultOrderRepository) SumLockedByEscrow(escrowWallet string) (decimal.Decimal, error) {
	var total decimal.Decimal
	row := r.DB.Model(&models.OrderModel{}).
		Where("escrow_wallet_address = ?", escrowWallet).
		Where("status IN ?", statusStrings(domain.LockedStatuses)).
		Select("COALESCE(SUM(usdt_amount), 0)").
		Row()
	if err := row.Scan(&total); err != nil {
		return decimal.Zero, fmt.Errorf("failed to sum locked escrow amount: %w", err)
	}
	return total, nil
}

func statusStrings(statuses []domain.OrderStatus) []string {
	out := make([]string, len(statuses))
	for i, s := range statuses {
		out[i] = string(s)
	}
	return out
}
