package domain

import (
	"context"
	"strings"
)

// WalletIdentity pairs a custodial signer with its derived smart account.
// A smart account equal to its signer is not a routable identity and is
// stored as absent.
type WalletIdentity struct {
	SignerAddress       string
	SmartAccountAddress string
}

func (w WalletIdentity) HasSmartAccount() bool {
	return w.SmartAccountAddress != "" && !strings.EqualFold(w.SmartAccountAddress, w.SignerAddress)
}

// ExecutionIdentity routes a submitted action: sponsored through the smart
// account when one exists, directly as the signer otherwise.
type ExecutionIdentity struct {
	SignerAddress       string
	SmartAccountAddress string
	Chain               string
	Sponsored           bool
}

// WalletAccount is one entry of the execution service's wallet registry.
type WalletAccount struct {
	Label               string
	SignerAddress       string
	SmartAccountAddress string
}

// TransactionStatus is the raw execution-service view of a submitted action.
type TransactionStatus struct {
	Status          string
	OnchainStatus   string
	TransactionHash string
	Error           string
}

// ChainExecutor is the blockchain execution service surface this core
// consumes. Every call blocks on the network; implementations impose their
// own timeout.
type ChainExecutor interface {
	CreateWallet(ctx context.Context, label string) (*WalletAccount, error)
	ListWallets(ctx context.Context, page, pageSize int) ([]WalletAccount, int, error)
	GetBalance(ctx context.Context, contractAddress, ownerAddress string) (string, error)
	SubmitTransfer(ctx context.Context, identity ExecutionIdentity, contractAddress, to, amount string) (string, error)
	GetTransactionStatus(ctx context.Context, transactionID string) (*TransactionStatus, error)
}
