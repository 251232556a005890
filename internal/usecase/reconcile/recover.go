package reconcile

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/krwdesk/otc-trade-service/internal/domain"
)

// SubmitRecover sweeps the full tracked-asset balance of fromWallet to
// toWallet and opens a RECOVER history row for the submitted action.
func (uc *DefaultReconcileUsecase) SubmitRecover(ctx context.Context, input *RecoverInput) (*domain.EngineActionHistory, error) {
	if !domain.ValidWalletAddress(input.FromWallet) || !domain.ValidWalletAddress(input.ToWallet) {
		return nil, fmt.Errorf("recover wallets: %w", domain.ErrValidation)
	}

	raw, err := uc.Executor.GetBalance(ctx, uc.Asset.ContractAddress, input.FromWallet)
	if err != nil {
		uc.Metrics.RecordExecutorError("get_balance")
		return nil, err
	}

	amount, err := AmountFromRaw(raw, uc.Asset.Decimals)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}
	if !amount.IsPositive() {
		return nil, fmt.Errorf("wallet %s: %w", input.FromWallet, domain.ErrNoBalance)
	}

	identity, err := uc.Resolver.CreateExecutionIdentity(ctx, input.FromWallet, uc.Asset.Chain)
	if err != nil {
		return nil, err
	}

	transactionID, err := uc.Executor.SubmitTransfer(ctx, identity, uc.Asset.ContractAddress, input.ToWallet, amount.String())
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
		Amount:            amount,
		RawValue:          raw,
		Status:            domain.ActionQueued,
	}

	// One immediate probe. A failed probe is not a failed recover: the
	// caller already holds a transaction id to poll later.
	status, err := uc.Executor.GetTransactionStatus(ctx, transactionID)
	if err != nil {
		uc.Logger.Warn("initial status fetch failed, recording QUEUED",
			zap.String("transaction_id", transactionID),
			zap.Error(err))
	} else {
		applyExecutionStatus(history, status, time.Now())
	}

	if err := uc.HistoryRepo.Upsert(history); err != nil {
		return nil, err
	}

	uc.Logger.Info("recover submitted",
		zap.String("transaction_id", transactionID),
		zap.String("from", input.FromWallet),
		zap.String("to", input.ToWallet),
		zap.String("amount", amount.String()))

	return uc.HistoryRepo.GetByKey(history.Key())
}

// applyExecutionStatus folds a raw execution-service status into the history
// row: normalized status, passthrough onchain status, hash fill-if-empty and
// the once-only confirmation timestamp.
func applyExecutionStatus(history *domain.EngineActionHistory, status *domain.TransactionStatus, now time.Time) {
	normalized := domain.NormalizeActionStatus(status.Status)

	history.Status = normalized
	history.OnchainStatus = status.OnchainStatus
	history.Error = status.Error
	if history.TransactionHash == "" && status.TransactionHash != "" {
		history.TransactionHash = status.TransactionHash
	}
	if normalized == domain.ActionConfirmed && history.ConfirmedAt == nil {
		history.ConfirmedAt = &now
	}
}
