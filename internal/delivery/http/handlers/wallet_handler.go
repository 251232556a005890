package handlers

import (
	"net/http"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"github.com/krwdesk/otc-trade-service/internal/usecase/escrow"
	"github.com/krwdesk/otc-trade-service/internal/usecase/wallet"
	"github.com/krwdesk/otc-trade-service/internal/usecase/walletid"
)

type WalletHandler struct {
	wallets  wallet.WalletUsecase
	resolver *walletid.Resolver
	escrow   escrow.EscrowUsecase
	logger   *zap.Logger
}

func NewWalletHandler(
	wallets wallet.WalletUsecase,
	resolver *walletid.Resolver,
	escrowUsecase escrow.EscrowUsecase,
	logger *zap.Logger) *WalletHandler {

	return &WalletHandler{
		wallets:  wallets,
		resolver: resolver,
		escrow:   escrowUsecase,
		logger:   logger.Named("wallet_handler"),
	}
}

type createAgentWalletsRequest struct {
	AgentCode string `json:"agentcode"`
	StoreCode string `json:"storecode"`
}

type walletAccountResponse struct {
	Label               string `json:"label,omitempty"`
	SignerAddress       string `json:"signerAddress"`
	SmartAccountAddress string `json:"smartAccountAddress,omitempty"`
}

func (h *WalletHandler) CreateAgentWallets(w http.ResponseWriter, r *http.Request) {
	var req createAgentWalletsRequest
	if !decodeBody(w, r, h.logger, &req) {
		return
	}

	wallets, err := h.wallets.CreateAgentWallets(r.Context(), &wallet.CreateAgentWalletsInput{
		AgentCode: req.AgentCode,
		StoreCode: req.StoreCode,
	})
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]walletAccountResponse{
		"feeWallet": {
			Label:               wallets.FeeWallet.Label,
			SignerAddress:       wallets.FeeWallet.SignerAddress,
			SmartAccountAddress: wallets.FeeWallet.SmartAccountAddress,
		},
		"escrowWallet": {
			Label:               wallets.EscrowWallet.Label,
			SignerAddress:       wallets.EscrowWallet.SignerAddress,
			SmartAccountAddress: wallets.EscrowWallet.SmartAccountAddress,
		},
	})
}

func (h *WalletHandler) ResolveIdentity(w http.ResponseWriter, r *http.Request) {
	identity, err := h.resolver.Resolve(r.Context(), mux.Vars(r)["address"])
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, walletAccountResponse{
		SignerAddress:       identity.SignerAddress,
		SmartAccountAddress: identity.SmartAccountAddress,
	})
}

func (h *WalletHandler) InUseAmount(w http.ResponseWriter, r *http.Request) {
	amount, err := h.escrow.InUseAmount(mux.Vars(r)["address"])
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"inUseAmount": amount.String()})
}
