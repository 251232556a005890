package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/krwdesk/otc-trade-service/internal/domain"
)

// HTTPExecutorClient talks to the blockchain execution service. Every call
// carries an explicit timeout; the service gives no latency guarantee.
type HTTPExecutorClient struct {
	baseURL string
	apiKey  string
	timeout time.Duration
	client  *http.Client
	logger  *zap.Logger
}

const defaultTimeout = 12 * time.Second

func NewHTTPExecutorClient(baseURL, apiKey string, timeout time.Duration, logger *zap.Logger) *HTTPExecutorClient {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &HTTPExecutorClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		timeout: timeout,
		client:  &http.Client{Timeout: timeout},
		logger:  logger.Named("executor"),
	}
}

type errorResponse struct {
	Error string `json:"error"`
}

type createWalletRequest struct {
	Label string `json:"label"`
}

type walletAccountResponse struct {
	Label               string `json:"label"`
	SignerAddress       string `json:"signerAddress"`
	SmartAccountAddress string `json:"smartAccountAddress"`
}

type listWalletsResponse struct {
	Accounts   []walletAccountResponse `json:"accounts"`
	TotalCount int                     `json:"totalCount"`
}

type balanceResponse struct {
	Value string `json:"value"`
}

type submitTransferRequest struct {
	SignerAddress       string `json:"signerAddress"`
	SmartAccountAddress string `json:"smartAccountAddress,omitempty"`
	Chain               string `json:"chain"`
	Sponsored           bool   `json:"sponsored"`
	ContractAddress     string `json:"contractAddress"`
	To                  string `json:"to"`
	Amount              string `json:"amount"`
}

type submitTransferResponse struct {
	TransactionID string `json:"transactionId"`
}

type transactionStatusResponse struct {
	Status          string `json:"status"`
	OnchainStatus   string `json:"onchainStatus"`
	TransactionHash string `json:"transactionHash"`
	Error           string `json:"error"`
}

func (c *HTTPExecutorClient) CreateWallet(ctx context.Context, label string) (*domain.WalletAccount, error) {
	var resp walletAccountResponse
	if err := c.post(ctx, "/v1/wallets", createWalletRequest{Label: label}, &resp); err != nil {
		return nil, err
	}
	return &domain.WalletAccount{
		Label:               resp.Label,
		SignerAddress:       resp.SignerAddress,
		SmartAccountAddress: resp.SmartAccountAddress,
	}, nil
}

func (c *HTTPExecutorClient) ListWallets(ctx context.Context, page, pageSize int) ([]domain.WalletAccount, int, error) {
	var resp listWalletsResponse
	path := fmt.Sprintf("/v1/wallets?page=%d&pageSize=%d", page, pageSize)
	if err := c.get(ctx, path, &resp); err != nil {
		return nil, 0, err
	}

	accounts := make([]domain.WalletAccount, len(resp.Accounts))
	for i, acc := range resp.Accounts {
		accounts[i] = domain.WalletAccount{
			Label:               acc.Label,
			SignerAddress:       acc.SignerAddress,
			SmartAccountAddress: acc.SmartAccountAddress,
		}
	}
	return accounts, resp.TotalCount, nil
}

func (c *HTTPExecutorClient) GetBalance(ctx context.Context, contractAddress, ownerAddress string) (string, error) {
	var resp balanceResponse
	path := fmt.Sprintf("/v1/tokens/%s/balance/%s", contractAddress, ownerAddress)
	if err := c.get(ctx, path, &resp); err != nil {
		return "", err
	}
	return resp.Value, nil
}

func (c *HTTPExecutorClient) SubmitTransfer(ctx context.Context, identity domain.ExecutionIdentity, contractAddress, to, amount string) (string, error) {
	req := submitTransferRequest{
		SignerAddress:   identity.SignerAddress,
		Chain:           identity.Chain,
		Sponsored:       identity.Sponsored,
		ContractAddress: contractAddress,
		To:              to,
		Amount:          amount,
	}
	if identity.Sponsored {
		req.SmartAccountAddress = identity.SmartAccountAddress
	}

	var resp submitTransferResponse
	if err := c.post(ctx, "/v1/transfers", req, &resp); err != nil {
		return "", err
	}
	return resp.TransactionID, nil
}

func (c *HTTPExecutorClient) GetTransactionStatus(ctx context.Context, transactionID string) (*domain.TransactionStatus, error) {
	var resp transactionStatusResponse
	if err := c.get(ctx, "/v1/transactions/"+transactionID, &resp); err != nil {
		return nil, err
	}
	return &domain.TransactionStatus{
		Status:          resp.Status,
		OnchainStatus:   resp.OnchainStatus,
		TransactionHash: resp.TransactionHash,
		Error:           resp.Error,
	}, nil
}

func (c *HTTPExecutorClient) get(ctx context.Context, path string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return err
	}
	return c.do(req, out)
}

func (c *HTTPExecutorClient) post(ctx context.Context, path string, body, out interface{}) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewBuffer(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	return c.do(req, out)
}

func (c *HTTPExecutorClient) do(req *http.Request, out interface{}) error {
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrExternalService, err)
	}
	defer resp.Body.Close()

	responseBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrExternalService, err)
	}

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		if out == nil {
			return nil
		}
		if err := json.Unmarshal(responseBody, out); err != nil {
			return fmt.Errorf("%w: decode response: %v", domain.ErrExternalService, err)
		}
		return nil
	}

	var errResp errorResponse
	if err := json.Unmarshal(responseBody, &errResp); err != nil {
		errResp.Error = string(responseBody)
	}

	if resp.StatusCode == http.StatusNotFound || containsNotFound(errResp.Error) {
		return fmt.Errorf("%w: %s", domain.ErrTransactionNotFound, errResp.Error)
	}

	c.logger.Warn("execution service call failed",
		zap.String("path", req.URL.Path),
		zap.Int("status", resp.StatusCode),
		zap.String("error", errResp.Error))

	return fmt.Errorf("%w: %s", domain.ErrExternalService, errResp.Error)
}

func containsNotFound(msg string) bool {
	return strings.Contains(strings.ToLower(msg), "not found")
}
