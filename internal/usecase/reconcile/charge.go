package reconcile

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/krwdesk/otc-trade-service/internal/domain"
)

// RecordCharge persists a caller-observed transfer, e.g. a client-submitted
// top-up, keyed by its chain transaction hash. Re-reporting the same hash
// updates the existing row.
func (uc *DefaultReconcileUsecase) RecordCharge(ctx context.Context, input *ChargeInput) (*domain.EngineActionHistory, error) {
	if !domain.ValidWalletAddress(input.FromWallet) || !domain.ValidWalletAddress(input.ToWallet) {
		return nil, fmt.Errorf("charge wallets: %w", domain.ErrValidation)
	}
	if !input.Amount.IsPositive() {
		return nil, fmt.Errorf("charge amount must be positive: %w", domain.ErrValidation)
	}
	if !domain.ValidTransactionHash(input.TransactionHash) {
		return nil, fmt.Errorf("charge transaction hash: %w", domain.ErrValidation)
	}

	history := &domain.EngineActionHistory{
		AgentCode:         input.AgentCode,
		StoreCode:         input.StoreCode,
		ActionType:        domain.ActionCharge,
		TransactionHash:   input.TransactionHash,
		FromWalletAddress: input.FromWallet,
		ToWalletAddress:   input.ToWallet,
		Amount:            input.Amount,
		Status:            domain.NormalizeActionStatus(input.Status),
	}
	if history.Status == domain.ActionConfirmed {
		now := time.Now()
		history.ConfirmedAt = &now
	}

	if err := uc.HistoryRepo.Upsert(history); err != nil {
		return nil, err
	}

	uc.Logger.Info("charge recorded",
		zap.String("transaction_hash", input.TransactionHash),
		zap.String("amount", input.Amount.String()))

	return uc.HistoryRepo.GetByKey(history.Key())
}
