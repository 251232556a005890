package trade

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/krwdesk/otc-trade-service/internal/domain"
	"github.com/krwdesk/otc-trade-service/internal/usecase/reconcile"
)

// memOrderRepo mirrors the postgres repository's conditional-update
// discipline: a transition only lands when the current status is in the
// expected set, otherwise ErrConflict.
type memOrderRepo struct {
	orders map[string]*domain.Order
}

func newMemOrderRepo() *memOrderRepo {
	return &memOrderRepo{orders: make(map[string]*domain.Order)}
}

func (m *memOrderRepo) CreateOrder(order *domain.Order) error {
	cp := *order
	m.orders[order.ID] = &cp
	return nil
}

func (m *memOrderRepo) GetOrderByID(orderID string) (*domain.Order, error) {
	order, ok := m.orders[orderID]
	if !ok {
		return nil, fmt.Errorf("order %s: %w", orderID, domain.ErrNotFound)
	}
	cp := *order
	return &cp, nil
}

func (m *memOrderRepo) GetActiveOrderByPair(buyerWallet, sellerWallet string) (*domain.Order, error) {
	for _, order := range m.orders {
		if order.BuyerWalletAddress == buyerWallet &&
			order.SellerWalletAddress == sellerWallet &&
			order.Status.Tradable() {
			cp := *order
			return &cp, nil
		}
	}
	return nil, nil
}

func (m *memOrderRepo) GetActiveOrderByBuyer(buyerWallet string) (*domain.Order, error) {
	for _, order := range m.orders {
		if order.BuyerWalletAddress == buyerWallet && order.Status.Tradable() {
			cp := *order
			return &cp, nil
		}
	}
	return nil, nil
}

func (m *memOrderRepo) TransitionStatus(orderID string, tr domain.StatusTransition) error {
	order, ok := m.orders[orderID]
	if !ok {
		return fmt.Errorf("order %s: %w", orderID, domain.ErrNotFound)
	}

	matched := false
	for _, from := range tr.From {
		if order.Status == from {
			matched = true
			break
		}
	}
	if !matched {
		return fmt.Errorf("order %s not in expected status: %w", orderID, domain.ErrConflict)
	}

	order.Status = tr.To
	at := tr.At
	switch tr.To {
	case domain.StatusAccepted:
		order.AcceptedAt = &at
	case domain.StatusPaymentRequested:
		order.PaymentRequestedAt = &at
	case domain.StatusPaymentConfirmed:
		order.PaymentConfirmedAt = &at
		order.TransactionHash = tr.TransactionHash
	case domain.StatusCancelled:
		order.CancelledAt = &at
		if tr.Cancellation != nil {
			order.CancelledByIP = tr.Cancellation.IPAddress
			order.CancelledUserAgent = tr.Cancellation.UserAgent
			order.CancelReason = tr.Cancellation.Reason
		}
	}
	return nil
}

func (m *memOrderRepo) SetAudioOn(orderID string, audioOn bool) error {
	order, ok := m.orders[orderID]
	if !ok {
		return fmt.Errorf("order %s: %w", orderID, domain.ErrNotFound)
	}
	order.AudioOn = audioOn
	return nil
}

func (m *memOrderRepo) SumLockedByEscrow(escrowWallet string) (decimal.Decimal, error) {
	sum := decimal.Zero
	for _, order := range m.orders {
		if order.EscrowWalletAddress != escrowWallet {
			continue
		}
		for _, locked := range domain.LockedStatuses {
			if order.Status == locked {
				sum = sum.Add(order.UsdtAmount)
				break
			}
		}
	}
	return sum, nil
}

// fakeReconciler scripts the settlement path.
type fakeReconciler struct {
	transferHistory *domain.EngineActionHistory
	transferErr     error
	transferCalls   int
	lastTransfer    *reconcile.TransferInput
}

func (f *fakeReconciler) SubmitRecover(ctx context.Context, input *reconcile.RecoverInput) (*domain.EngineActionHistory, error) {
	return nil, nil
}

func (f *fakeReconciler) RecordCharge(ctx context.Context, input *reconcile.ChargeInput) (*domain.EngineActionHistory, error) {
	return nil, nil
}

func (f *fakeReconciler) RefreshStatus(ctx context.Context, key domain.ActionKey) (*domain.EngineActionHistory, error) {
	return nil, nil
}

func (f *fakeReconciler) ListHistory(ctx context.Context, input *reconcile.ListHistoryInput) ([]*domain.EngineActionHistory, error) {
	return nil, nil
}

func (f *fakeReconciler) Transfer(ctx context.Context, input *reconcile.TransferInput) (*domain.EngineActionHistory, error) {
	f.transferCalls++
	f.lastTransfer = input
	if f.transferErr != nil {
		return nil, f.transferErr
	}
	return f.transferHistory, nil
}

// balanceExecutor answers the capacity check; nothing else is consulted by
// the lifecycle machine.
type balanceExecutor struct {
	balance string
}

func (b *balanceExecutor) CreateWallet(ctx context.Context, label string) (*domain.WalletAccount, error) {
	return nil, nil
}

func (b *balanceExecutor) ListWallets(ctx context.Context, page, pageSize int) ([]domain.WalletAccount, int, error) {
	return nil, 0, nil
}

func (b *balanceExecutor) GetBalance(ctx context.Context, contractAddress, ownerAddress string) (string, error) {
	return b.balance, nil
}

func (b *balanceExecutor) SubmitTransfer(ctx context.Context, identity domain.ExecutionIdentity, contractAddress, to, amount string) (string, error) {
	return "", nil
}

func (b *balanceExecutor) GetTransactionStatus(ctx context.Context, transactionID string) (*domain.TransactionStatus, error) {
	return nil, nil
}
