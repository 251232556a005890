package repository

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/krwdesk/otc-trade-service/internal/domain"
	"github.com/krwdesk/otc-trade-service/internal/infrastructure/postgres/mappers"
	"github.com/krwdesk/otc-trade-service/internal/infrastructure/postgres/models"
)

type DefaultHistoryRepository struct {
	DB *gorm.DB
}

func NewDefaultHistoryRepository(db *gorm.DB) *DefaultHistoryRepository {
	return &DefaultHistoryRepository{DB: db}
}

// Upsert writes h keyed by its action key. The lookup and the write run in
// one DB transaction; CreatedAt survives re-submission of the same key.
func (r *DefaultHistoryRepository) Upsert(h *domain.EngineActionHistory) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		var existing models.EngineActionHistoryModel
		err := keyScope(tx, h.Key()).First(&existing).Error

		if errors.Is(err, gorm.ErrRecordNotFound) {
			model := mappers.ToGORMHistory(h)
			if model.ID == "" {
				model.ID = uuid.New().String()
			}
			now := time.Now()
			if model.CreatedAt.IsZero() {
				model.CreatedAt = now
			}
			model.UpdatedAt = now
			return tx.Create(model).Error
		}
		if err != nil {
			return err
		}

		updates := map[string]interface{}{
			"agent_code":          h.AgentCode,
			"store_code":          h.StoreCode,
			"from_wallet_address": h.FromWalletAddress,
			"to_wallet_address":   h.ToWalletAddress,
			"amount":              h.Amount,
			"raw_value":           h.RawValue,
			"status":              h.Status,
			"onchain_status":      h.OnchainStatus,
			"error":               h.Error,
			"updated_at":          time.Now(),
		}
		if h.TransactionHash != "" {
			updates["transaction_hash"] = h.TransactionHash
		}
		if existing.ConfirmedAt == nil && h.ConfirmedAt != nil {
			updates["confirmed_at"] = h.ConfirmedAt
		}

		return tx.Model(&models.EngineActionHistoryModel{}).
			Where("id = ?", existing.ID).
			Updates(updates).Error
	})
}

func (r *DefaultHistoryRepository) GetByKey(key domain.ActionKey) (*domain.EngineActionHistory, error) {
	var model models.EngineActionHistoryModel
	if err := keyScope(r.DB, key).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("history %s/%s%s: %w",
				key.ActionType, key.TransactionID, key.TransactionHash, domain.ErrNotFound)
		}
		return nil, err
	}
	return mappers.ToDomainHistory(&model), nil
}

func (r *DefaultHistoryRepository) List(filter domain.HistoryFilter) ([]*domain.EngineActionHistory, error) {
	query := r.DB.Model(&models.EngineActionHistoryModel{})

	// Scope codes match case-insensitively, mirroring the code lookup rules
	// of the rest of the platform.
	if filter.AgentCode != "" {
		query = query.Where("agent_code ILIKE ?", filter.AgentCode)
	}
	if filter.StoreCode != "" {
		query = query.Where("store_code ILIKE ?", filter.StoreCode)
	}
	if filter.ActionType != "" {
		query = query.Where("action_type = ?", filter.ActionType)
	}
	if !filter.Since.IsZero() {
		query = query.Where("created_at >= ?", filter.Since)
	}

	var historyModels []models.EngineActionHistoryModel
	if err := query.Order("created_at DESC").Find(&historyModels).Error; err != nil {
		return nil, err
	}

	histories := make([]*domain.EngineActionHistory, len(historyModels))
	for i := range historyModels {
		histories[i] = mappers.ToDomainHistory(&historyModels[i])
	}
	return histories, nil
}

func (r *DefaultHistoryRepository) ListPendingRecovers(limit int) ([]*domain.EngineActionHistory, error) {
	var historyModels []models.EngineActionHistoryModel
	err := r.DB.
		Where("action_type = ?", domain.ActionRecover).
		Where("status NOT IN ?", []string{string(domain.ActionConfirmed), string(domain.ActionFailed)}).
		Where("transaction_id <> ''").
		Order("created_at ASC").
		Limit(limit).
		Find(&historyModels).Error
	if err != nil {
		return nil, err
	}

	histories := make([]*domain.EngineActionHistory, len(historyModels))
	for i := range historyModels {
		histories[i] = mappers.ToDomainHistory(&historyModels[i])
	}
	return histories, nil
}

func keyScope(db *gorm.DB, key domain.ActionKey) *gorm.DB {
	if key.ActionType == domain.ActionCharge {
		return db.Where("action_type = ? AND transaction_hash = ?", key.ActionType, key.TransactionHash)
	}
	return db.Where("action_type = ? AND transaction_id = ?", key.ActionType, key.TransactionID)
}
