package models

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/krwdesk/otc-trade-service/internal/domain"
)

type EngineActionHistoryModel struct {
	ID        string `gorm:"primaryKey;type:uuid"`
	AgentCode string `gorm:"index:idx_agent_code"`
	StoreCode string `gorm:"index:idx_store_code"`

	ActionType      domain.ActionType `gorm:"index:idx_action_txid;index:idx_action_txhash"`
	TransactionID   string            `gorm:"index:idx_action_txid"`
	TransactionHash string            `gorm:"index:idx_action_txhash"`

	FromWalletAddress string
	ToWalletAddress   string
	Amount            decimal.Decimal `gorm:"type:numeric(30,6)"`
	RawValue          string

	Status        domain.ActionStatus `gorm:"index:idx_history_status"`
	OnchainStatus string
	Error         string

	CreatedAt   time.Time `gorm:"index:idx_history_created_at"`
	UpdatedAt   time.Time
	ConfirmedAt *time.Time
}

func (EngineActionHistoryModel) TableName() string {
	return "engine_action_histories"
}
