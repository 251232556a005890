package reconcile

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/krwdesk/otc-trade-service/internal/domain"
)

// refreshBatchLimit bounds how many pending rows one listing call will
// refresh. Dashboards polling concurrently stay cheap and safe.
const refreshBatchLimit = 20

// kst anchors the "day" window: business days roll over at UTC+9 midnight,
// not on a rolling 24h basis.
var kst = time.FixedZone("KST", 9*60*60)

// ListHistory returns history rows within the requested window, optionally
// refreshing a bounded batch of pending RECOVER rows first so the response
// reflects post-refresh state.
func (uc *DefaultReconcileUsecase) ListHistory(ctx context.Context, input *ListHistoryInput) ([]*domain.EngineActionHistory, error) {
	if input.RefreshPending {
		uc.refreshPending(ctx)
	}

	return uc.HistoryRepo.List(domain.HistoryFilter{
		AgentCode:  input.AgentCode,
		StoreCode:  input.StoreCode,
		ActionType: input.ActionType,
		Since:      windowStart(input.Period, time.Now()),
	})
}

func (uc *DefaultReconcileUsecase) refreshPending(ctx context.Context) {
	pending, err := uc.HistoryRepo.ListPendingRecovers(refreshBatchLimit)
	if err != nil {
		uc.Logger.Error("failed to list pending recovers", zap.Error(err))
		return
	}

	for _, history := range pending {
		if _, err := uc.RefreshStatus(ctx, history.Key()); err != nil {
			uc.Logger.Warn("pending refresh failed",
				zap.String("transaction_id", history.TransactionID),
				zap.Error(err))
		}
	}
}

func windowStart(period domain.HistoryPeriod, now time.Time) time.Time {
	switch period {
	case domain.PeriodWeek:
		return now.AddDate(0, 0, -7)
	case domain.PeriodMonth:
		return now.AddDate(0, 0, -30)
	default:
		local := now.In(kst)
		return time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, kst)
	}
}
