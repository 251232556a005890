package reconcile

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/krwdesk/otc-trade-service/internal/domain"
)

// RefreshStatus re-fetches execution status for a history row and persists
// the normalized outcome. A terminal row is returned unchanged. An upstream
// failure never corrupts the row into a false terminal state: "not found"
// resets to QUEUED, any other failure is recorded as a non-fatal error
// annotation with the status untouched.
func (uc *DefaultReconcileUsecase) RefreshStatus(ctx context.Context, key domain.ActionKey) (*domain.EngineActionHistory, error) {
	history, err := uc.HistoryRepo.GetByKey(key)
	if err != nil {
		return nil, err
	}

	if history.Status.Terminal() {
		return history, nil
	}
	if history.TransactionID == "" {
		return history, nil
	}

	status, err := uc.Executor.GetTransactionStatus(ctx, history.TransactionID)
	if err != nil {
		if errors.Is(err, domain.ErrTransactionNotFound) {
			// The action may not have reached the indexer yet.
			history.Status = domain.ActionQueued
			history.Error = ""
		} else {
			uc.Metrics.RecordExecutorError("get_transaction_status")
			history.Error = err.Error()
		}

		if upsertErr := uc.HistoryRepo.Upsert(history); upsertErr != nil {
			return nil, upsertErr
		}
		uc.Metrics.RecordRefresh(string(history.Status))
		return history, nil
	}

	applyExecutionStatus(history, status, time.Now())

	if err := uc.HistoryRepo.Upsert(history); err != nil {
		return nil, err
	}
	uc.Metrics.RecordRefresh(string(history.Status))

	if history.Status.Terminal() {
		uc.Logger.Info("action reached terminal status",
			zap.String("transaction_id", history.TransactionID),
			zap.String("status", string(history.Status)))
	}

	return uc.HistoryRepo.GetByKey(key)
}
