package trade

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/krwdesk/otc-trade-service/internal/config"
	"github.com/krwdesk/otc-trade-service/internal/domain"
	"github.com/krwdesk/otc-trade-service/internal/infrastructure/metrics"
	"github.com/krwdesk/otc-trade-service/internal/usecase/escrow"
)

const (
	buyerWallet  = "0x1111111111111111111111111111111111111111"
	sellerWallet = "0x2222222222222222222222222222222222222222"
	escrowWallet = "0x3333333333333333333333333333333333333333"
	tokenAddr    = "0x4444444444444444444444444444444444444444"
	settleHash   = "0xabcdef0123456789abcdef0123456789abcdef0123456789abcdef0123456789"
)

var testMetrics = metrics.NewTradeMetrics()

type testEnv struct {
	uc         *DefaultTradeUsecase
	repo       *memOrderRepo
	reconciler *fakeReconciler
}

func newTestEnv(balance string) *testEnv {
	repo := newMemOrderRepo()
	reconciler := &fakeReconciler{}
	executor := &balanceExecutor{balance: balance}
	asset := config.Asset{ContractAddress: tokenAddr, Decimals: 6, Chain: "polygon"}

	uc := NewDefaultTradeUsecase(
		repo,
		reconciler,
		escrow.NewDefaultEscrowUsecase(repo),
		executor,
		nil,
		testMetrics,
		asset,
		zap.NewNop(),
	)

	return &testEnv{uc: uc, repo: repo, reconciler: reconciler}
}

func createInput() *CreateOrderInput {
	return &CreateOrderInput{
		BuyerWallet:  buyerWallet,
		SellerWallet: sellerWallet,
		EscrowWallet: escrowWallet,
		UsdtAmount:   decimal.NewFromInt(100),
		KrwAmount:    140_000_000,
		ExchangeRate: 1400,
		PrivateSale:  true,
	}
}

func TestCreatePrivateBuyOrderAutoAccepts(t *testing.T) {
	env := newTestEnv("1000000000") // 1000 USDT at 6 decimals

	order, err := env.uc.CreatePrivateBuyOrder(context.Background(), createInput())
	require.NoError(t, err)

	assert.Equal(t, domain.StatusAccepted, order.Status)
	assert.NotEmpty(t, order.ID)
	assert.NotEmpty(t, order.TradeID)
	require.NotNil(t, order.AcceptedAt)
}

func TestCreatePrivateBuyOrderReusesActiveOrder(t *testing.T) {
	env := newTestEnv("1000000000")

	first, err := env.uc.CreatePrivateBuyOrder(context.Background(), createInput())
	require.NoError(t, err)

	second, err := env.uc.CreatePrivateBuyOrder(context.Background(), createInput())
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID)
	assert.Len(t, env.repo.orders, 1)
}

func TestCreatePrivateBuyOrderWithoutCapacityStaysOrdered(t *testing.T) {
	env := newTestEnv("50000000") // 50 USDT, below the 100 requested

	order, err := env.uc.CreatePrivateBuyOrder(context.Background(), createInput())
	require.NoError(t, err)

	assert.Equal(t, domain.StatusOrdered, order.Status)
	assert.Nil(t, order.AcceptedAt)
}

func TestCreatePrivateBuyOrderValidation(t *testing.T) {
	env := newTestEnv("1000000000")

	input := createInput()
	input.BuyerWallet = "0xbad"
	_, err := env.uc.CreatePrivateBuyOrder(context.Background(), input)
	assert.ErrorIs(t, err, domain.ErrValidation)

	input = createInput()
	input.UsdtAmount = decimal.Zero
	_, err = env.uc.CreatePrivateBuyOrder(context.Background(), input)
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func (env *testEnv) mustCreate(t *testing.T) *domain.Order {
	t.Helper()
	order, err := env.uc.CreatePrivateBuyOrder(context.Background(), createInput())
	require.NoError(t, err)
	return order
}

func (env *testEnv) mustRequestPayment(t *testing.T, orderID string) *domain.Order {
	t.Helper()
	order, err := env.uc.RequestPayment(context.Background(), orderID, buyerWallet)
	require.NoError(t, err)
	return order
}

func TestRequestPaymentFlow(t *testing.T) {
	env := newTestEnv("1000000000")
	order := env.mustCreate(t)

	updated := env.mustRequestPayment(t, order.ID)
	assert.Equal(t, domain.StatusPaymentRequested, updated.Status)
	require.NotNil(t, updated.PaymentRequestedAt)

	// Only the buyer may request payment.
	_, err := env.uc.RequestPayment(context.Background(), order.ID, sellerWallet)
	assert.ErrorIs(t, err, domain.ErrForbidden)

	// Second request hits the wrong status.
	_, err = env.uc.RequestPayment(context.Background(), order.ID, buyerWallet)
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)
}

func TestCompleteBySellerSettles(t *testing.T) {
	env := newTestEnv("1000000000")
	order := env.mustCreate(t)
	env.mustRequestPayment(t, order.ID)

	env.reconciler.transferHistory = &domain.EngineActionHistory{
		ActionType:      domain.ActionRecover,
		TransactionID:   "txn-1",
		TransactionHash: settleHash,
		Status:          domain.ActionConfirmed,
	}

	completed, err := env.uc.CompletePrivateBuyOrderBySeller(context.Background(), &CompleteOrderInput{
		OrderID:      order.ID,
		SellerWallet: sellerWallet,
	})
	require.NoError(t, err)

	assert.Equal(t, domain.StatusPaymentConfirmed, completed.Status)
	assert.Equal(t, settleHash, completed.TransactionHash)
	require.NotNil(t, completed.PaymentConfirmedAt)

	// The transfer drew the escrow down toward the buyer.
	require.NotNil(t, env.reconciler.lastTransfer)
	assert.Equal(t, escrowWallet, env.reconciler.lastTransfer.FromWallet)
	assert.Equal(t, buyerWallet, env.reconciler.lastTransfer.ToWallet)
	assert.Equal(t, "100", env.reconciler.lastTransfer.Amount.String())
}

func TestCompleteOnlyBySeller(t *testing.T) {
	env := newTestEnv("1000000000")
	order := env.mustCreate(t)
	env.mustRequestPayment(t, order.ID)

	_, err := env.uc.CompletePrivateBuyOrderBySeller(context.Background(), &CompleteOrderInput{
		OrderID:      order.ID,
		SellerWallet: buyerWallet,
	})
	assert.ErrorIs(t, err, domain.ErrForbidden)
	assert.Zero(t, env.reconciler.transferCalls)
}

func TestCompleteFromWrongStatus(t *testing.T) {
	env := newTestEnv("1000000000")
	order := env.mustCreate(t)

	_, err := env.uc.CompletePrivateBuyOrderBySeller(context.Background(), &CompleteOrderInput{
		OrderID:      order.ID,
		SellerWallet: sellerWallet,
	})
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)
}

func TestCompleteSettlementFailureLeavesOrderRetryable(t *testing.T) {
	env := newTestEnv("1000000000")
	order := env.mustCreate(t)
	env.mustRequestPayment(t, order.ID)

	env.reconciler.transferErr = errors.New("executor unavailable")

	_, err := env.uc.CompletePrivateBuyOrderBySeller(context.Background(), &CompleteOrderInput{
		OrderID:      order.ID,
		SellerWallet: sellerWallet,
	})
	assert.ErrorIs(t, err, domain.ErrSettlementFailed)

	current, err := env.repo.GetOrderByID(order.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusPaymentRequested, current.Status)

	// Retry succeeds once the executor recovers.
	env.reconciler.transferErr = nil
	env.reconciler.transferHistory = &domain.EngineActionHistory{
		TransactionID:   "txn-2",
		TransactionHash: settleHash,
		Status:          domain.ActionConfirmed,
	}
	completed, err := env.uc.CompletePrivateBuyOrderBySeller(context.Background(), &CompleteOrderInput{
		OrderID:      order.ID,
		SellerWallet: sellerWallet,
	})
	require.NoError(t, err)
	assert.Equal(t, domain.StatusPaymentConfirmed, completed.Status)
}

func TestCancelByBuyerRecordsAudit(t *testing.T) {
	env := newTestEnv("1000000000")
	order := env.mustCreate(t)

	audit := domain.CancellationAudit{
		IPAddress: "203.0.113.9",
		UserAgent: "test-agent",
		Reason:    "변심",
	}
	require.NoError(t, env.uc.CancelTradeByBuyer(context.Background(), order.ID, buyerWallet, audit))

	cancelled, err := env.repo.GetOrderByID(order.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusCancelled, cancelled.Status)
	assert.Equal(t, "변심", cancelled.CancelReason)
	assert.Equal(t, "203.0.113.9", cancelled.CancelledByIP)
	require.NotNil(t, cancelled.CancelledAt)

	// Cancellation is not idempotent.
	err = env.uc.CancelTradeByBuyer(context.Background(), order.ID, buyerWallet, audit)
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)
}

func TestCancelPrivateRequiresPairMatch(t *testing.T) {
	env := newTestEnv("1000000000")
	order := env.mustCreate(t)

	err := env.uc.CancelPrivateBuyOrderByBuyer(context.Background(), order.ID, buyerWallet, buyerWallet)
	assert.ErrorIs(t, err, domain.ErrForbidden)

	require.NoError(t, env.uc.CancelPrivateBuyOrderByBuyer(context.Background(), order.ID, buyerWallet, sellerWallet))
}

func TestCancelByAdminSkipsBuyerMatch(t *testing.T) {
	env := newTestEnv("1000000000")
	order := env.mustCreate(t)

	require.NoError(t, env.uc.CancelPrivateBuyOrderByAdminToBuyer(context.Background(), order.ID))

	// Terminal orders are still protected from admin cancels.
	err := env.uc.CancelPrivateBuyOrderByAdminToBuyer(context.Background(), order.ID)
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)
}

func TestTerminalOrderImmutable(t *testing.T) {
	env := newTestEnv("1000000000")
	order := env.mustCreate(t)
	env.mustRequestPayment(t, order.ID)

	env.reconciler.transferHistory = &domain.EngineActionHistory{
		TransactionID: "txn-1", TransactionHash: settleHash, Status: domain.ActionConfirmed,
	}
	_, err := env.uc.CompletePrivateBuyOrderBySeller(context.Background(), &CompleteOrderInput{
		OrderID: order.ID, SellerWallet: sellerWallet,
	})
	require.NoError(t, err)

	_, err = env.uc.AcceptOrder(context.Background(), order.ID, sellerWallet)
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)

	_, err = env.uc.RequestPayment(context.Background(), order.ID, buyerWallet)
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)

	_, err = env.uc.CompletePrivateBuyOrderBySeller(context.Background(), &CompleteOrderInput{
		OrderID: order.ID, SellerWallet: sellerWallet,
	})
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)

	err = env.uc.CancelTradeByBuyer(context.Background(), order.ID, buyerWallet, domain.CancellationAudit{})
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)
}

func TestAtMostOneActiveOrderPerPair(t *testing.T) {
	env := newTestEnv("1000000000")

	first := env.mustCreate(t)
	require.NoError(t, env.uc.CancelPrivateBuyOrderByAdminToBuyer(context.Background(), first.ID))

	second := env.mustCreate(t)
	assert.NotEqual(t, first.ID, second.ID)

	active := 0
	for _, order := range env.repo.orders {
		if order.Status.Tradable() {
			active++
		}
	}
	assert.Equal(t, 1, active)
}

func TestGetPairStatus(t *testing.T) {
	env := newTestEnv("1000000000")

	status, err := env.uc.GetPrivateTradeStatusByBuyerAndSeller(context.Background(), buyerWallet, sellerWallet)
	require.NoError(t, err)
	assert.False(t, status.IsTrading)
	assert.Nil(t, status.Order)

	order := env.mustCreate(t)

	status, err = env.uc.GetPrivateTradeStatusByBuyerAndSeller(context.Background(), buyerWallet, sellerWallet)
	require.NoError(t, err)
	assert.True(t, status.IsTrading)
	require.NotNil(t, status.Order)
	assert.Equal(t, order.ID, status.Order.ID)

	// A terminal row for the pair does not count as trading.
	require.NoError(t, env.uc.CancelPrivateBuyOrderByAdminToBuyer(context.Background(), order.ID))
	status, err = env.uc.GetPrivateTradeStatusByBuyerAndSeller(context.Background(), buyerWallet, sellerWallet)
	require.NoError(t, err)
	assert.False(t, status.IsTrading)
}

func TestGetActiveByBuyer(t *testing.T) {
	env := newTestEnv("1000000000")

	order, err := env.uc.GetActivePrivateTradeByBuyerWallet(context.Background(), buyerWallet)
	require.NoError(t, err)
	assert.Nil(t, order)

	created := env.mustCreate(t)

	order, err = env.uc.GetActivePrivateTradeByBuyerWallet(context.Background(), buyerWallet)
	require.NoError(t, err)
	require.NotNil(t, order)
	assert.Equal(t, created.ID, order.ID)
}

func TestSetAudioOn(t *testing.T) {
	env := newTestEnv("1000000000")
	order := env.mustCreate(t)

	require.NoError(t, env.uc.SetAudioOn(context.Background(), order.ID, true))

	current, err := env.repo.GetOrderByID(order.ID)
	require.NoError(t, err)
	assert.True(t, current.AudioOn)

	assert.ErrorIs(t, env.uc.SetAudioOn(context.Background(), "bad-id", true), domain.ErrValidation)
}

func TestInUseAmountCountsOnlyLockedStatuses(t *testing.T) {
	env := newTestEnv("1000000000")
	escrowUsecase := escrow.NewDefaultEscrowUsecase(env.repo)

	put := func(status domain.OrderStatus, amount int64, id string) {
		env.repo.orders[id] = &domain.Order{
			ID:                  id,
			BuyerWalletAddress:  buyerWallet,
			SellerWalletAddress: sellerWallet,
			EscrowWalletAddress: escrowWallet,
			UsdtAmount:          decimal.NewFromInt(amount),
			Status:              status,
		}
	}

	put(domain.StatusOrdered, 10, "o1")
	put(domain.StatusPaymentRequested, 20, "o2")
	put(domain.StatusAccepted, 40, "o3")
	put(domain.StatusPaymentConfirmed, 80, "o4")
	put(domain.StatusCancelled, 160, "o5")

	inUse, err := escrowUsecase.InUseAmount(escrowWallet)
	require.NoError(t, err)
	assert.Equal(t, "30", inUse.String())
}
