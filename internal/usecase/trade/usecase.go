package trade

import (
	"context"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/krwdesk/otc-trade-service/internal/config"
	"github.com/krwdesk/otc-trade-service/internal/domain"
	"github.com/krwdesk/otc-trade-service/internal/infrastructure/kafka"
	"github.com/krwdesk/otc-trade-service/internal/infrastructure/metrics"
	"github.com/krwdesk/otc-trade-service/internal/usecase/escrow"
	"github.com/krwdesk/otc-trade-service/internal/usecase/reconcile"
)

type TradeUsecase interface {
	CreatePrivateBuyOrder(ctx context.Context, input *CreateOrderInput) (*domain.Order, error)
	AcceptOrder(ctx context.Context, orderID, sellerWallet string) (*domain.Order, error)
	RequestPayment(ctx context.Context, orderID, buyerWallet string) (*domain.Order, error)
	CompletePrivateBuyOrderBySeller(ctx context.Context, input *CompleteOrderInput) (*domain.Order, error)

	CancelPrivateBuyOrderByBuyer(ctx context.Context, orderID, buyerWallet, sellerWallet string) error
	CancelTradeByBuyer(ctx context.Context, orderID, buyerWallet string, audit domain.CancellationAudit) error
	CancelPrivateBuyOrderByAdminToBuyer(ctx context.Context, orderID string) error

	GetPrivateTradeStatusByBuyerAndSeller(ctx context.Context, buyerWallet, sellerWallet string) (*TradeStatus, error)
	GetActivePrivateTradeByBuyerWallet(ctx context.Context, buyerWallet string) (*domain.Order, error)
	SetAudioOn(ctx context.Context, orderID string, audioOn bool) error
}

type CreateOrderInput struct {
	BuyerWallet  string
	SellerWallet string
	EscrowWallet string

	UsdtAmount   decimal.Decimal
	KrwAmount    int64
	ExchangeRate float64

	PrivateSale bool
}

type CompleteOrderInput struct {
	OrderID      string
	SellerWallet string

	// Reconciliation scope for the settlement history row.
	AgentCode string
	StoreCode string
}

// TradeStatus is the pair-scoped view: IsTrading is false whenever no order
// for the pair sits in a tradable status, even if terminal rows exist.
type TradeStatus struct {
	IsTrading bool
	Order     *domain.Order
}

type DefaultTradeUsecase struct {
	OrderRepo  domain.OrderRepository
	Reconciler reconcile.ReconcileUsecase
	Escrow     escrow.EscrowUsecase
	Executor   domain.ChainExecutor
	Publisher  *kafka.TradePublisher
	Metrics    *metrics.TradeMetrics
	Asset      config.Asset
	Logger     *zap.Logger
}

func NewDefaultTradeUsecase(
	orderRepo domain.OrderRepository,
	reconciler reconcile.ReconcileUsecase,
	escrowUsecase escrow.EscrowUsecase,
	executor domain.ChainExecutor,
	publisher *kafka.TradePublisher,
	tradeMetrics *metrics.TradeMetrics,
	asset config.Asset,
	logger *zap.Logger) *DefaultTradeUsecase {

	return &DefaultTradeUsecase{
		OrderRepo:  orderRepo,
		Reconciler: reconciler,
		Escrow:     escrowUsecase,
		Executor:   executor,
		Publisher:  publisher,
		Metrics:    tradeMetrics,
		Asset:      asset,
		Logger:     logger.Named("trade"),
	}
}

func (uc *DefaultTradeUsecase) publishEvent(order *domain.Order) {
	if uc.Publisher == nil {
		return
	}

	event := kafka.TradeEvent{
		OrderID:      order.ID,
		TradeID:      order.TradeID,
		Status:       string(order.Status),
		BuyerWallet:  order.BuyerWalletAddress,
		SellerWallet: order.SellerWalletAddress,
		UsdtAmount:   order.UsdtAmount.String(),
		KrwAmount:    order.KrwAmount,
	}
	if err := uc.Publisher.PublishTrade(event); err != nil {
		uc.Logger.Error("failed to publish trade event",
			zap.String("order_id", order.ID),
			zap.String("status", string(order.Status)),
			zap.Error(err))
	}
}
