package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type ActionType string

const (
	ActionRecover ActionType = "RECOVER"
	ActionCharge  ActionType = "CHARGE"
)

type ActionStatus string

const (
	ActionRequesting ActionStatus = "REQUESTING"
	ActionQueued     ActionStatus = "QUEUED"
	ActionSubmitted  ActionStatus = "SUBMITTED"
	ActionConfirmed  ActionStatus = "CONFIRMED"
	ActionFailed     ActionStatus = "FAILED"
)

func (s ActionStatus) Terminal() bool {
	return s == ActionConfirmed || s == ActionFailed
}

// EngineActionHistory is the audit row for one submitted on-chain action.
// RECOVER rows are keyed by the engine-assigned transaction id, CHARGE rows
// by the chain-assigned transaction hash. Rows are never deleted.
type EngineActionHistory struct {
	ID        string
	AgentCode string
	StoreCode string

	ActionType      ActionType
	TransactionID   string
	TransactionHash string

	FromWalletAddress string
	ToWalletAddress   string
	Amount            decimal.Decimal
	RawValue          string

	Status        ActionStatus
	OnchainStatus string
	Error         string

	CreatedAt   time.Time
	UpdatedAt   time.Time
	ConfirmedAt *time.Time
}

// ActionKey is the idempotency key of a history row.
type ActionKey struct {
	ActionType      ActionType
	TransactionID   string
	TransactionHash string
}

func (h *EngineActionHistory) Key() ActionKey {
	if h.ActionType == ActionCharge {
		return ActionKey{ActionType: ActionCharge, TransactionHash: h.TransactionHash}
	}
	return ActionKey{ActionType: h.ActionType, TransactionID: h.TransactionID}
}

// HistoryPeriod selects the listing window for history queries.
type HistoryPeriod string

const (
	PeriodDay   HistoryPeriod = "day"
	PeriodWeek  HistoryPeriod = "week"
	PeriodMonth HistoryPeriod = "month"
)
