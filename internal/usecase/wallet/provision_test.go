package wallet

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/krwdesk/otc-trade-service/internal/domain"
	"github.com/krwdesk/otc-trade-service/internal/usecase/walletid"
)

type creatingExecutor struct {
	created []string
}

func (c *creatingExecutor) CreateWallet(ctx context.Context, label string) (*domain.WalletAccount, error) {
	c.created = append(c.created, label)
	account := domain.WalletAccount{
		Label:         label,
		SignerAddress: fmt.Sprintf("0x%040d", len(c.created)),
	}
	return &account, nil
}

func (c *creatingExecutor) ListWallets(ctx context.Context, page, pageSize int) ([]domain.WalletAccount, int, error) {
	return nil, 0, nil
}

func (c *creatingExecutor) GetBalance(ctx context.Context, contractAddress, ownerAddress string) (string, error) {
	return "0", nil
}

func (c *creatingExecutor) SubmitTransfer(ctx context.Context, identity domain.ExecutionIdentity, contractAddress, to, amount string) (string, error) {
	return "", nil
}

func (c *creatingExecutor) GetTransactionStatus(ctx context.Context, transactionID string) (*domain.TransactionStatus, error) {
	return nil, nil
}

func TestCreateAgentWallets(t *testing.T) {
	executor := &creatingExecutor{}
	resolver := walletid.NewResolver(executor, zap.NewNop())
	uc := NewDefaultWalletUsecase(executor, resolver, zap.NewNop())

	wallets, err := uc.CreateAgentWallets(context.Background(), &CreateAgentWalletsInput{
		AgentCode: "AG01",
		StoreCode: "ST01",
	})
	require.NoError(t, err)

	assert.Equal(t, []string{"AG01-ST01-fee", "AG01-ST01-escrow"}, executor.created)
	assert.NotEmpty(t, wallets.FeeWallet.SignerAddress)
	assert.NotEmpty(t, wallets.EscrowWallet.SignerAddress)

	// The resolver was primed: no registry scan on first resolution.
	identity, err := resolver.Resolve(context.Background(), wallets.EscrowWallet.SignerAddress)
	require.NoError(t, err)
	assert.Equal(t, wallets.EscrowWallet.SignerAddress, identity.SignerAddress)
}

func TestCreateAgentWalletsRequiresScope(t *testing.T) {
	uc := NewDefaultWalletUsecase(&creatingExecutor{}, walletid.NewResolver(&creatingExecutor{}, zap.NewNop()), zap.NewNop())

	_, err := uc.CreateAgentWallets(context.Background(), &CreateAgentWalletsInput{AgentCode: "AG01"})
	assert.ErrorIs(t, err, domain.ErrValidation)
}
