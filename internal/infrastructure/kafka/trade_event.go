package kafka

type TradeEvent struct {
	OrderID      string `json:"order_id"`
	TradeID      string `json:"trade_id"`
	Status       string `json:"status"`
	BuyerWallet  string `json:"buyer_wallet"`
	SellerWallet string `json:"seller_wallet"`
	UsdtAmount   string `json:"usdt_amount"`
	KrwAmount    int64  `json:"krw_amount"`
}
