package reconcile

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/krwdesk/otc-trade-service/internal/domain"
)

// Transfer submits a caller-determined amount from fromWallet and tracks it
// through the history table. This is the settlement path used when a trade
// completes: the escrow wallet pays the buyer.
func (uc *DefaultReconcileUsecase) Transfer(ctx context.Context, input *TransferInput) (*domain.EngineActionHistory, error) {
	if !domain.ValidWalletAddress(input.FromWallet) || !domain.ValidWalletAddress(input.ToWallet) {
		return nil, fmt.Errorf("transfer wallets: %w", domain.ErrValidation)
	}
	if !input.Amount.IsPositive() {
		return nil, fmt.Errorf("transfer amount must be positive: %w", domain.ErrValidation)
	}

	identity, err := uc.Resolver.CreateExecutionIdentity(ctx, input.FromWallet, uc.Asset.Chain)
	if err != nil {
		return nil, err
	}

	transactionID, err := uc.Executor.SubmitTransfer(ctx, identity, uc.Asset.ContractAddress, input.ToWallet, input.Amount.String())
	if err != nil {
		uc.Metrics.RecordExecutorError("submit_transfer")
		return nil, err
	}

	history := &domain.EngineActionHistory{
		AgentCode:         input.AgentCode,
		StoreCode:         input.StoreCode,
		ActionType:        domain.ActionRecover,
		TransactionID:     transactionID,
		FromWalletAddress: input.FromWallet,
		ToWalletAddress:   input.ToWallet,
		Amount:            input.Amount,
		Status:            domain.ActionQueued,
	}

	if status, err := uc.Executor.GetTransactionStatus(ctx, transactionID); err != nil {
		uc.Logger.Warn("initial status fetch failed, recording QUEUED",
			zap.String("transaction_id", transactionID),
			zap.Error(err))
	} else {
		applyExecutionStatus(history, status, time.Now())
	}

	if err := uc.HistoryRepo.Upsert(history); err != nil {
		return nil, err
	}

	uc.Logger.Info("settlement transfer submitted",
		zap.String("transaction_id", transactionID),
		zap.String("from", input.FromWallet),
		zap.String("to", input.ToWallet),
		zap.String("amount", input.Amount.String()))

	return uc.HistoryRepo.GetByKey(history.Key())
}
