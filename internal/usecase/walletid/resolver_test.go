package walletid

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/krwdesk/otc-trade-service/internal/domain"
)

const (
	signerA = "0xAAAA111111111111111111111111111111111111"
	smartA  = "0xAAAA222222222222222222222222222222222222"
	signerB = "0xBBBB111111111111111111111111111111111111"
	signerC = "0xCCCC111111111111111111111111111111111111"
)

// registryExecutor serves a fixed wallet registry in pages.
type registryExecutor struct {
	accounts  []domain.WalletAccount
	listCalls int
}

func (r *registryExecutor) CreateWallet(ctx context.Context, label string) (*domain.WalletAccount, error) {
	return nil, nil
}

func (r *registryExecutor) ListWallets(ctx context.Context, page, pageSize int) ([]domain.WalletAccount, int, error) {
	r.listCalls++
	start := (page - 1) * pageSize
	if start >= len(r.accounts) {
		return nil, len(r.accounts), nil
	}
	end := start + pageSize
	if end > len(r.accounts) {
		end = len(r.accounts)
	}
	return r.accounts[start:end], len(r.accounts), nil
}

func (r *registryExecutor) GetBalance(ctx context.Context, contractAddress, ownerAddress string) (string, error) {
	return "0", nil
}

func (r *registryExecutor) SubmitTransfer(ctx context.Context, identity domain.ExecutionIdentity, contractAddress, to, amount string) (string, error) {
	return "", nil
}

func (r *registryExecutor) GetTransactionStatus(ctx context.Context, transactionID string) (*domain.TransactionStatus, error) {
	return nil, nil
}

func newTestResolver(executor domain.ChainExecutor) *Resolver {
	return NewResolver(executor, zap.NewNop())
}

func TestResolveFromRegistry(t *testing.T) {
	executor := &registryExecutor{accounts: []domain.WalletAccount{
		{SignerAddress: signerA, SmartAccountAddress: smartA},
		{SignerAddress: signerB},
	}}
	resolver := newTestResolver(executor)

	identity, err := resolver.Resolve(context.Background(), signerA)
	require.NoError(t, err)
	assert.Equal(t, signerA, identity.SignerAddress)
	assert.Equal(t, smartA, identity.SmartAccountAddress)
	assert.True(t, identity.HasSmartAccount())
}

func TestResolveBySmartAccountAddress(t *testing.T) {
	executor := &registryExecutor{accounts: []domain.WalletAccount{
		{SignerAddress: signerA, SmartAccountAddress: smartA},
	}}
	resolver := newTestResolver(executor)

	identity, err := resolver.Resolve(context.Background(), smartA)
	require.NoError(t, err)
	assert.Equal(t, signerA, identity.SignerAddress)
}

func TestResolveCachesWholeScan(t *testing.T) {
	executor := &registryExecutor{accounts: []domain.WalletAccount{
		{SignerAddress: signerA, SmartAccountAddress: smartA},
		{SignerAddress: signerB},
	}}
	resolver := newTestResolver(executor)

	_, err := resolver.Resolve(context.Background(), signerB)
	require.NoError(t, err)
	callsAfterFirst := executor.listCalls

	// signerA was cached as a side effect of the scan.
	_, err = resolver.Resolve(context.Background(), signerA)
	require.NoError(t, err)
	assert.Equal(t, callsAfterFirst, executor.listCalls)
}

func TestResolveFallbackCachesSignerOnly(t *testing.T) {
	executor := &registryExecutor{}
	resolver := newTestResolver(executor)

	identity, err := resolver.Resolve(context.Background(), signerC)
	require.NoError(t, err)
	assert.Equal(t, signerC, identity.SignerAddress)
	assert.False(t, identity.HasSmartAccount())
	callsAfterFirst := executor.listCalls

	// The miss itself is cached: no second scan.
	_, err = resolver.Resolve(context.Background(), signerC)
	require.NoError(t, err)
	assert.Equal(t, callsAfterFirst, executor.listCalls)
}

func TestResolveRejectsMalformedAddress(t *testing.T) {
	resolver := newTestResolver(&registryExecutor{})

	_, err := resolver.Resolve(context.Background(), "not-an-address")
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestPrimeDropsSelfSmartAccount(t *testing.T) {
	resolver := newTestResolver(&registryExecutor{})

	resolver.Prime(domain.WalletAccount{
		SignerAddress:       signerA,
		SmartAccountAddress: strings.ToLower(signerA),
	})

	identity, err := resolver.Resolve(context.Background(), signerA)
	require.NoError(t, err)
	assert.False(t, identity.HasSmartAccount())
}

func TestCreateExecutionIdentityRouting(t *testing.T) {
	executor := &registryExecutor{accounts: []domain.WalletAccount{
		{SignerAddress: signerA, SmartAccountAddress: smartA},
		{SignerAddress: signerB},
	}}
	resolver := newTestResolver(executor)

	sponsored, err := resolver.CreateExecutionIdentity(context.Background(), signerA, "polygon")
	require.NoError(t, err)
	assert.True(t, sponsored.Sponsored)
	assert.Equal(t, smartA, sponsored.SmartAccountAddress)
	assert.Equal(t, "polygon", sponsored.Chain)

	direct, err := resolver.CreateExecutionIdentity(context.Background(), signerB, "polygon")
	require.NoError(t, err)
	assert.False(t, direct.Sponsored)
	assert.Empty(t, direct.SmartAccountAddress)
}
