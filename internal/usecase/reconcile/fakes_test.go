package reconcile

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/krwdesk/otc-trade-service/internal/domain"
)

// memHistoryRepo mirrors the postgres repository's upsert discipline in
// memory: find by key, update in place preserving CreatedAt and the hash
// fill-if-empty rule, insert otherwise.
type memHistoryRepo struct {
	rows []*domain.EngineActionHistory
}

func (m *memHistoryRepo) find(key domain.ActionKey) *domain.EngineActionHistory {
	for _, row := range m.rows {
		if row.Key() == key {
			return row
		}
	}
	return nil
}

func (m *memHistoryRepo) Upsert(h *domain.EngineActionHistory) error {
	now := time.Now()

	if existing := m.find(h.Key()); existing != nil {
		createdAt := existing.CreatedAt
		hash := existing.TransactionHash
		confirmedAt := existing.ConfirmedAt

		*existing = *h
		existing.CreatedAt = createdAt
		existing.UpdatedAt = now
		if existing.TransactionHash == "" {
			existing.TransactionHash = hash
		}
		if confirmedAt != nil {
			existing.ConfirmedAt = confirmedAt
		}
		return nil
	}

	row := *h
	if row.CreatedAt.IsZero() {
		row.CreatedAt = now
	}
	row.UpdatedAt = now
	m.rows = append(m.rows, &row)
	return nil
}

func (m *memHistoryRepo) GetByKey(key domain.ActionKey) (*domain.EngineActionHistory, error) {
	if row := m.find(key); row != nil {
		cp := *row
		return &cp, nil
	}
	return nil, fmt.Errorf("history %s/%s%s: %w",
		key.ActionType, key.TransactionID, key.TransactionHash, domain.ErrNotFound)
}

func (m *memHistoryRepo) List(filter domain.HistoryFilter) ([]*domain.EngineActionHistory, error) {
	var out []*domain.EngineActionHistory
	for _, row := range m.rows {
		if filter.AgentCode != "" && !strings.EqualFold(row.AgentCode, filter.AgentCode) {
			continue
		}
		if filter.StoreCode != "" && !strings.EqualFold(row.StoreCode, filter.StoreCode) {
			continue
		}
		if filter.ActionType != "" && row.ActionType != filter.ActionType {
			continue
		}
		if !filter.Since.IsZero() && row.CreatedAt.Before(filter.Since) {
			continue
		}
		cp := *row
		out = append(out, &cp)
	}
	return out, nil
}

func (m *memHistoryRepo) ListPendingRecovers(limit int) ([]*domain.EngineActionHistory, error) {
	var out []*domain.EngineActionHistory
	for _, row := range m.rows {
		if row.ActionType != domain.ActionRecover || row.Status.Terminal() || row.TransactionID == "" {
			continue
		}
		cp := *row
		out = append(out, &cp)
		if len(out) == limit {
			break
		}
	}
	return out, nil
}

// fakeExecutor is a scriptable ChainExecutor.
type fakeExecutor struct {
	balance    string
	balanceErr error

	transactionID string
	submitErr     error
	submitCalls   int

	status      *domain.TransactionStatus
	statusErr   error
	statusCalls int

	wallets []domain.WalletAccount
}

func (f *fakeExecutor) CreateWallet(ctx context.Context, label string) (*domain.WalletAccount, error) {
	account := domain.WalletAccount{Label: label, SignerAddress: "0x00000000000000000000000000000000000000aa"}
	return &account, nil
}

func (f *fakeExecutor) ListWallets(ctx context.Context, page, pageSize int) ([]domain.WalletAccount, int, error) {
	if page > 1 {
		return nil, len(f.wallets), nil
	}
	return f.wallets, len(f.wallets), nil
}

func (f *fakeExecutor) GetBalance(ctx context.Context, contractAddress, ownerAddress string) (string, error) {
	if f.balanceErr != nil {
		return "", f.balanceErr
	}
	return f.balance, nil
}

func (f *fakeExecutor) SubmitTransfer(ctx context.Context, identity domain.ExecutionIdentity, contractAddress, to, amount string) (string, error) {
	f.submitCalls++
	if f.submitErr != nil {
		return "", f.submitErr
	}
	return f.transactionID, nil
}

func (f *fakeExecutor) GetTransactionStatus(ctx context.Context, transactionID string) (*domain.TransactionStatus, error) {
	f.statusCalls++
	if f.statusErr != nil {
		return nil, f.statusErr
	}
	return f.status, nil
}
