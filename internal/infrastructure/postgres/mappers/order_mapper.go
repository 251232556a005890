package mappers

import (
	"github.com/krwdesk/otc-trade-service/internal/domain"
	"github.com/krwdesk/otc-trade-service/internal/infrastructure/postgres/models"
)

func ToGORMOrder(order *domain.Order) *models.OrderModel {
	return &models.OrderModel{
		ID:                  order.ID,
		TradeID:             order.TradeID,
		BuyerWalletAddress:  order.BuyerWalletAddress,
		SellerWalletAddress: order.SellerWalletAddress,
		EscrowWalletAddress: order.EscrowWalletAddress,
		UsdtAmount:          order.UsdtAmount,
		KrwAmount:           order.KrwAmount,
		ExchangeRate:        order.ExchangeRate,
		PrivateSale:         order.PrivateSale,
		Status:              order.Status,
		AudioOn:             order.AudioOn,
		TransactionHash:     order.TransactionHash,
		CancelledByIP:       order.CancelledByIP,
		CancelledUserAgent:  order.CancelledUserAgent,
		CancelReason:        order.CancelReason,
		CreatedAt:           order.CreatedAt,
		AcceptedAt:          order.AcceptedAt,
		PaymentRequestedAt:  order.PaymentRequestedAt,
		PaymentConfirmedAt:  order.PaymentConfirmedAt,
		CancelledAt:         order.CancelledAt,
	}
}

func ToDomainOrder(model *models.OrderModel) *domain.Order {
	return &domain.Order{
		ID:                  model.ID,
		TradeID:             model.TradeID,
		BuyerWalletAddress:  model.BuyerWalletAddress,
		SellerWalletAddress: model.SellerWalletAddress,
		EscrowWalletAddress: model.EscrowWalletAddress,
		UsdtAmount:          model.UsdtAmount,
		KrwAmount:           model.KrwAmount,
		ExchangeRate:        model.ExchangeRate,
		PrivateSale:         model.PrivateSale,
		Status:              model.Status,
		AudioOn:             model.AudioOn,
		TransactionHash:     model.TransactionHash,
		CancelledByIP:       model.CancelledByIP,
		CancelledUserAgent:  model.CancelledUserAgent,
		CancelReason:        model.CancelReason,
		CreatedAt:           model.CreatedAt,
		AcceptedAt:          model.AcceptedAt,
		PaymentRequestedAt:  model.PaymentRequestedAt,
		PaymentConfirmedAt:  model.PaymentConfirmedAt,
		CancelledAt:         model.CancelledAt,
	}
}
