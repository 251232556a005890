package wallet

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/krwdesk/otc-trade-service/internal/domain"
	"github.com/krwdesk/otc-trade-service/internal/usecase/walletid"
)

type WalletUsecase interface {
	CreateAgentWallets(ctx context.Context, input *CreateAgentWalletsInput) (*AgentWallets, error)
}

type CreateAgentWalletsInput struct {
	AgentCode string
	StoreCode string
}

// AgentWallets is the custodial pair provisioned per agent/store scope: the
// escrow wallet holds the tradable balance, the fee wallet accumulates
// platform fees until swept by a recover.
type AgentWallets struct {
	FeeWallet    domain.WalletAccount
	EscrowWallet domain.WalletAccount
}

type DefaultWalletUsecase struct {
	Executor domain.ChainExecutor
	Resolver *walletid.Resolver
	Logger   *zap.Logger
}

func NewDefaultWalletUsecase(executor domain.ChainExecutor, resolver *walletid.Resolver, logger *zap.Logger) *DefaultWalletUsecase {
	return &DefaultWalletUsecase{
		Executor: executor,
		Resolver: resolver,
		Logger:   logger.Named("wallet"),
	}
}

// CreateAgentWallets provisions the fee and escrow wallets for a scope and
// primes the identity cache so the first settlement does not pay for a full
// registry scan.
func (uc *DefaultWalletUsecase) CreateAgentWallets(ctx context.Context, input *CreateAgentWalletsInput) (*AgentWallets, error) {
	if input.AgentCode == "" || input.StoreCode == "" {
		return nil, fmt.Errorf("agent and store codes are required: %w", domain.ErrValidation)
	}

	feeLabel := fmt.Sprintf("%s-%s-fee", input.AgentCode, input.StoreCode)
	escrowLabel := fmt.Sprintf("%s-%s-escrow", input.AgentCode, input.StoreCode)

	fee, err := uc.Executor.CreateWallet(ctx, feeLabel)
	if err != nil {
		return nil, fmt.Errorf("create fee wallet: %w", err)
	}
	uc.Resolver.Prime(*fee)

	escrowAccount, err := uc.Executor.CreateWallet(ctx, escrowLabel)
	if err != nil {
		return nil, fmt.Errorf("create escrow wallet: %w", err)
	}
	uc.Resolver.Prime(*escrowAccount)

	uc.Logger.Info("agent wallets created",
		zap.String("agent_code", input.AgentCode),
		zap.String("store_code", input.StoreCode),
		zap.String("fee_wallet", fee.SignerAddress),
		zap.String("escrow_wallet", escrowAccount.SignerAddress))

	return &AgentWallets{FeeWallet: *fee, EscrowWallet: *escrowAccount}, nil
}
