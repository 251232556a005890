package domain

import "time"

// HistoryFilter scopes a listing query. Codes match case-insensitively.
type HistoryFilter struct {
	AgentCode  string
	StoreCode  string
	ActionType ActionType
	Since      time.Time
}

type HistoryRepository interface {
	// Upsert persists h keyed by h.Key(). An existing row is updated in
	// place; CreatedAt is written only on first insert. Retries of the same
	// key never produce a second row.
	Upsert(h *EngineActionHistory) error

	GetByKey(key ActionKey) (*EngineActionHistory, error)
	List(filter HistoryFilter) ([]*EngineActionHistory, error)

	// ListPendingRecovers returns up to limit non-terminal RECOVER rows that
	// carry a transaction id, oldest first.
	ListPendingRecovers(limit int) ([]*EngineActionHistory, error)
}
