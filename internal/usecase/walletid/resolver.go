package walletid

import (
	"context"
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/krwdesk/otc-trade-service/internal/domain"
)

const (
	maxRegistryPages = 100
	registryPageSize = 200
)

// Resolver maps a custodial wallet address to its execution identity. The
// cache is process-local; entries never expire, a miss triggers a fresh paged
// registry scan and new wallets become visible then.
type Resolver struct {
	executor domain.ChainExecutor
	logger   *zap.Logger

	mu    sync.RWMutex
	cache map[string]domain.WalletIdentity
}

func NewResolver(executor domain.ChainExecutor, logger *zap.Logger) *Resolver {
	return &Resolver{
		executor: executor,
		logger:   logger.Named("walletid"),
		cache:    make(map[string]domain.WalletIdentity),
	}
}

// Resolve returns the identity for walletAddress. On a cache miss it pages
// through the wallet registry, caching every entry seen, and falls back to a
// signer-only identity when the registry does not know the address.
func (r *Resolver) Resolve(ctx context.Context, walletAddress string) (domain.WalletIdentity, error) {
	if !domain.ValidWalletAddress(walletAddress) {
		return domain.WalletIdentity{}, domain.ErrValidation
	}

	key := strings.ToLower(walletAddress)
	if identity, ok := r.lookup(key); ok {
		return identity, nil
	}

	if identity, ok, err := r.scanRegistry(ctx, key); err != nil {
		return domain.WalletIdentity{}, err
	} else if ok {
		return identity, nil
	}

	// Unknown to the registry: treat as a plain externally-owned account and
	// remember that, so repeated lookups stay cheap.
	fallback := domain.WalletIdentity{SignerAddress: walletAddress}
	r.mu.Lock()
	r.cache[key] = fallback
	r.mu.Unlock()

	r.logger.Debug("wallet not in registry, cached signer-only identity",
		zap.String("wallet", walletAddress))

	return fallback, nil
}

// Prime inserts a known account into the cache, e.g. right after wallet
// creation, saving the next resolution a full scan.
func (r *Resolver) Prime(account domain.WalletAccount) {
	identity := domain.WalletIdentity{
		SignerAddress:       account.SignerAddress,
		SmartAccountAddress: account.SmartAccountAddress,
	}
	// A smart account equal to its signer is not routable.
	if strings.EqualFold(identity.SmartAccountAddress, identity.SignerAddress) {
		identity.SmartAccountAddress = ""
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.cache[strings.ToLower(identity.SignerAddress)] = identity
	if identity.SmartAccountAddress != "" {
		r.cache[strings.ToLower(identity.SmartAccountAddress)] = identity
	}
}

// CreateExecutionIdentity builds the routing descriptor for a submission:
// sponsored through the smart account when one is known, direct otherwise.
// This must be decided before any transfer submit; wrong routing fails
// silently or charges gas to the wrong account.
func (r *Resolver) CreateExecutionIdentity(ctx context.Context, walletAddress, chain string) (domain.ExecutionIdentity, error) {
	identity, err := r.Resolve(ctx, walletAddress)
	if err != nil {
		return domain.ExecutionIdentity{}, err
	}

	if identity.HasSmartAccount() {
		return domain.ExecutionIdentity{
			SignerAddress:       identity.SignerAddress,
			SmartAccountAddress: identity.SmartAccountAddress,
			Chain:               chain,
			Sponsored:           true,
		}, nil
	}

	return domain.ExecutionIdentity{
		SignerAddress: identity.SignerAddress,
		Chain:         chain,
	}, nil
}

func (r *Resolver) lookup(key string) (domain.WalletIdentity, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	identity, ok := r.cache[key]
	return identity, ok
}

func (r *Resolver) scanRegistry(ctx context.Context, key string) (domain.WalletIdentity, bool, error) {
	for page := 1; page <= maxRegistryPages; page++ {
		accounts, total, err := r.executor.ListWallets(ctx, page, registryPageSize)
		if err != nil {
			return domain.WalletIdentity{}, false, err
		}

		for _, account := range accounts {
			r.Prime(account)
		}

		if identity, ok := r.lookup(key); ok {
			return identity, true, nil
		}

		if len(accounts) == 0 || page*registryPageSize >= total {
			break
		}
	}
	return domain.WalletIdentity{}, false, nil
}
