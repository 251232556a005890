package reconcile

import (
	"context"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/krwdesk/otc-trade-service/internal/config"
	"github.com/krwdesk/otc-trade-service/internal/domain"
	"github.com/krwdesk/otc-trade-service/internal/infrastructure/metrics"
	"github.com/krwdesk/otc-trade-service/internal/usecase/walletid"
)

type ReconcileUsecase interface {
	SubmitRecover(ctx context.Context, input *RecoverInput) (*domain.EngineActionHistory, error)
	RecordCharge(ctx context.Context, input *ChargeInput) (*domain.EngineActionHistory, error)
	RefreshStatus(ctx context.Context, key domain.ActionKey) (*domain.EngineActionHistory, error)
	ListHistory(ctx context.Context, input *ListHistoryInput) ([]*domain.EngineActionHistory, error)
	Transfer(ctx context.Context, input *TransferInput) (*domain.EngineActionHistory, error)
}

type RecoverInput struct {
	AgentCode  string
	StoreCode  string
	FromWallet string
	ToWallet   string
}

type ChargeInput struct {
	AgentCode       string
	StoreCode       string
	FromWallet      string
	ToWallet        string
	Amount          decimal.Decimal
	TransactionHash string
	Status          string
}

type ListHistoryInput struct {
	AgentCode      string
	StoreCode      string
	ActionType     domain.ActionType
	Period         domain.HistoryPeriod
	RefreshPending bool
}

// TransferInput is the settlement path: a caller-determined amount moved
// from an escrow wallet, tracked like any other engine action.
type TransferInput struct {
	AgentCode  string
	StoreCode  string
	FromWallet string
	ToWallet   string
	Amount     decimal.Decimal
}

type DefaultReconcileUsecase struct {
	HistoryRepo domain.HistoryRepository
	Executor    domain.ChainExecutor
	Resolver    *walletid.Resolver
	Metrics     *metrics.TradeMetrics
	Asset       config.Asset
	Logger      *zap.Logger
}

func NewDefaultReconcileUsecase(
	historyRepo domain.HistoryRepository,
	executor domain.ChainExecutor,
	resolver *walletid.Resolver,
	tradeMetrics *metrics.TradeMetrics,
	asset config.Asset,
	logger *zap.Logger) *DefaultReconcileUsecase {

	return &DefaultReconcileUsecase{
		HistoryRepo: historyRepo,
		Executor:    executor,
		Resolver:    resolver,
		Metrics:     tradeMetrics,
		Asset:       asset,
		Logger:      logger.Named("reconcile"),
	}
}
