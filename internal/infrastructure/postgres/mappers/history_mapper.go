package mappers

import (
	"github.com/krwdesk/otc-trade-service/internal/domain"
	"github.com/krwdesk/otc-trade-service/internal/infrastructure/postgres/models"
)

func ToGORMHistory(h *domain.EngineActionHistory) *models.EngineActionHistoryModel {
	return &models.EngineActionHistoryModel{
		ID:                h.ID,
		AgentCode:         h.AgentCode,
		StoreCode:         h.StoreCode,
		ActionType:        h.ActionType,
		TransactionID:     h.TransactionID,
		TransactionHash:   h.TransactionHash,
		FromWalletAddress: h.FromWalletAddress,
		ToWalletAddress:   h.ToWalletAddress,
		Amount:            h.Amount,
		RawValue:          h.RawValue,
		Status:            h.Status,
		OnchainStatus:     h.OnchainStatus,
		Error:             h.Error,
		CreatedAt:         h.CreatedAt,
		UpdatedAt:         h.UpdatedAt,
		ConfirmedAt:       h.ConfirmedAt,
	}
}

func ToDomainHistory(model *models.EngineActionHistoryModel) *domain.EngineActionHistory {
	return &domain.EngineActionHistory{
		ID:                model.ID,
		AgentCode:         model.AgentCode,
		StoreCode:         model.StoreCode,
		ActionType:        model.ActionType,
		TransactionID:     model.TransactionID,
		TransactionHash:   model.TransactionHash,
		FromWalletAddress: model.FromWalletAddress,
		ToWalletAddress:   model.ToWalletAddress,
		Amount:            model.Amount,
		RawValue:          model.RawValue,
		Status:            model.Status,
		OnchainStatus:     model.OnchainStatus,
		Error:             model.Error,
		CreatedAt:         model.CreatedAt,
		UpdatedAt:         model.UpdatedAt,
		ConfirmedAt:       model.ConfirmedAt,
	}
}
