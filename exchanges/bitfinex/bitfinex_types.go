package bitfinex

import (
	"github.com/shopspring/decimal"
	"github.com/thrasher-corp/bfxrest/types"
)

// Order sides and types accepted by the v1 order endpoints
const (
	SideBuy  = "buy"
	SideSell = "sell"

	OrderTypeMarket               = "market"
	OrderTypeLimit                = "limit"
	OrderTypeStop                 = "stop"
	OrderTypeTrailingStop         = "trailing-stop"
	OrderTypeFillOrKill           = "fill-or-kill"
	OrderTypeExchangeMarket       = "exchange market"
	OrderTypeExchangeLimit        = "exchange limit"
	OrderTypeExchangeStop         = "exchange stop"
	OrderTypeExchangeTrailingStop = "exchange trailing-stop"
	OrderTypeExchangeFillOrKill   = "exchange fill-or-kill"

	OfferDirectionLend = "lend"
	OfferDirectionLoan = "loan"

	WalletTrading  = "trading"
	WalletExchange = "exchange"
	WalletDeposit  = "deposit"
)

// Ticker holds the high level overview of a market
type Ticker struct {
	Mid       decimal.Decimal `json:"mid"`
	Bid       decimal.Decimal `json:"bid"`
	Ask       decimal.Decimal `json:"ask"`
	Last      decimal.Decimal `json:"last_price"`
	Low       decimal.Decimal `json:"low"`
	High      decimal.Decimal `json:"high"`
	Volume    decimal.Decimal `json:"volume"`
	Timestamp types.Time      `json:"timestamp"`
}

// Stat holds the traded volume over a period in days
type Stat struct {
	Period int64           `json:"period"`
	Volume decimal.Decimal `json:"volume"`
}

// Trade holds a public executed trade
type Trade struct {
	Timestamp types.Time      `json:"timestamp"`
	TID       int64           `json:"tid"`
	Price     decimal.Decimal `json:"price"`
	Amount    decimal.Decimal `json:"amount"`
	Exchange  string          `json:"exchange"`
	Type      string          `json:"type"`
}

// FundingBook holds the margin funding book
type FundingBook struct {
	Bids []FundingBookItem `json:"bids"`
	Asks []FundingBookItem `json:"asks"`
}

// FundingBookItem is a single funding book level, Rate is the yearly rate in
// percent and FlashReturnRate is "Yes" when the offer is at the FRR
type FundingBookItem struct {
	Rate            decimal.Decimal `json:"rate"`
	Amount          decimal.Decimal `json:"amount"`
	Period          int64           `json:"period"`
	Timestamp       types.Time      `json:"timestamp"`
	FlashReturnRate string          `json:"frr"`
}

// Orderbook holds the bids and asks of a market
type Orderbook struct {
	Bids []OrderbookItem `json:"bids"`
	Asks []OrderbookItem `json:"asks"`
}

// OrderbookItem is a single order book level
type OrderbookItem struct {
	Price     decimal.Decimal `json:"price"`
	Amount    decimal.Decimal `json:"amount"`
	Timestamp types.Time      `json:"timestamp"`
}

// Lends holds a snapshot of the total amount lent and used for a currency
type Lends struct {
	Rate       decimal.Decimal `json:"rate"`
	AmountLent decimal.Decimal `json:"amount_lent"`
	AmountUsed decimal.Decimal `json:"amount_used"`
	Timestamp  types.Time      `json:"timestamp"`
}

// SymbolDetails holds the trading rules of a market
type SymbolDetails struct {
	Pair             string          `json:"pair"`
	PricePrecision   int             `json:"price_precision"`
	InitialMargin    decimal.Decimal `json:"initial_margin"`
	MinimumMargin    decimal.Decimal `json:"minimum_margin"`
	MaximumOrderSize decimal.Decimal `json:"maximum_order_size"`
	MinimumOrderSize decimal.Decimal `json:"minimum_order_size"`
	Expiration       string          `json:"expiration"`
	Margin           bool            `json:"margin"`
}

// AccountInfo holds the account trading fees
type AccountInfo struct {
	MakerFees decimal.Decimal  `json:"maker_fees"`
	TakerFees decimal.Decimal  `json:"taker_fees"`
	Fees      []AccountInfoFee `json:"fees"`
}

// AccountInfoFee holds the trading fees of a single currency
type AccountInfoFee struct {
	Pairs     string          `json:"pairs"`
	MakerFees decimal.Decimal `json:"maker_fees"`
	TakerFees decimal.Decimal `json:"taker_fees"`
}

// WithdrawalFees holds the withdrawal fee of each currency
type WithdrawalFees struct {
	Withdraw map[string]decimal.Decimal `json:"withdraw"`
}

// AccountSummary holds a 30-day summary of trading volume and funding
// profits
type AccountSummary struct {
	TradeVolume   []AccountSummaryVolume `json:"trade_vol_30d"`
	FundingProfit []AccountSummaryProfit `json:"funding_profit_30d"`
	MakerFee      decimal.Decimal        `json:"maker_fee"`
	TakerFee      decimal.Decimal        `json:"taker_fee"`
}

// AccountSummaryVolume is the traded volume of a currency
type AccountSummaryVolume struct {
	Currency string          `json:"curr"`
	Volume   decimal.Decimal `json:"vol"`
}

// AccountSummaryProfit is the funding profit of a currency
type AccountSummaryProfit struct {
	Currency string          `json:"curr"`
	Amount   decimal.Decimal `json:"amount"`
}

// KeyPermissions holds the permissions granted to the API key in use
type KeyPermissions struct {
	Account   Permission `json:"account"`
	History   Permission `json:"history"`
	Orders    Permission `json:"orders"`
	Positions Permission `json:"positions"`
	Funding   Permission `json:"funding"`
	Wallets   Permission `json:"wallets"`
	Withdraw  Permission `json:"withdraw"`
}

// Permission holds read and write access for a permission group
type Permission struct {
	Read  bool `json:"read"`
	Write bool `json:"write"`
}

// MarginInfo holds the trading wallet information for margin trading
type MarginInfo struct {
	MarginBalance     decimal.Decimal `json:"margin_balance"`
	TradableBalance   decimal.Decimal `json:"tradable_balance"`
	UnrealizedPL      decimal.Decimal `json:"unrealized_pl"`
	UnrealizedSwap    decimal.Decimal `json:"unrealized_swap"`
	NetValue          decimal.Decimal `json:"net_value"`
	RequiredMargin    decimal.Decimal `json:"required_margin"`
	Leverage          decimal.Decimal `json:"leverage"`
	MarginRequirement decimal.Decimal `json:"margin_requirement"`
	MarginLimits      []MarginLimits  `json:"margin_limits"`
	Message           string          `json:"message"`
}

// MarginLimits holds the margin limits of a single pair
type MarginLimits struct {
	OnPair            string          `json:"on_pair"`
	InitialMargin     decimal.Decimal `json:"initial_margin"`
	MarginRequirement decimal.Decimal `json:"margin_requirement"`
	TradableBalance   decimal.Decimal `json:"tradable_balance"`
}

// Balance holds a wallet balance of a single currency
type Balance struct {
	Type      string          `json:"type"`
	Currency  string          `json:"currency"`
	Amount    decimal.Decimal `json:"amount"`
	Available decimal.Decimal `json:"available"`
}

// WalletTransfer holds the outcome of a transfer between wallets
type WalletTransfer struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

// DepositResponse holds a deposit address
type DepositResponse struct {
	Result   string `json:"result"`
	Method   string `json:"method"`
	Currency string `json:"currency"`
	Address  string `json:"address"`
}

// Withdrawal holds the outcome of a withdrawal request
type Withdrawal struct {
	Status       string `json:"status"`
	Message      string `json:"message"`
	WithdrawalID int64  `json:"withdrawal_id"`
}

// PlaceOrder is a single order of a multiple order request
type PlaceOrder struct {
	Symbol   string          `json:"symbol"`
	Amount   decimal.Decimal `json:"amount"`
	Price    decimal.Decimal `json:"price"`
	Exchange string          `json:"exchange"`
	Side     string          `json:"side"`
	Type     string          `json:"type"`
}

// Order holds the state of an order
type Order struct {
	ID                    int64           `json:"id"`
	Symbol                string          `json:"symbol"`
	Exchange              string          `json:"exchange"`
	Price                 decimal.Decimal `json:"price"`
	AverageExecutionPrice decimal.Decimal `json:"avg_execution_price"`
	Side                  string          `json:"side"`
	Type                  string          `json:"type"`
	Timestamp             types.Time      `json:"timestamp"`
	IsLive                bool            `json:"is_live"`
	IsCancelled           bool            `json:"is_cancelled"`
	IsHidden              bool            `json:"is_hidden"`
	WasForced             bool            `json:"was_forced"`
	OriginalAmount        decimal.Decimal `json:"original_amount"`
	RemainingAmount       decimal.Decimal `json:"remaining_amount"`
	ExecutedAmount        decimal.Decimal `json:"executed_amount"`
	OrderID               int64           `json:"order_id,omitempty"`
}

// OrderMultiResponse holds the orders placed by a multiple order request
type OrderMultiResponse struct {
	Orders []Order `json:"order_ids"`
	Status string  `json:"status"`
}

// GenericResponse holds a plain result message
type GenericResponse struct {
	Result string `json:"result"`
}

// Position holds an active margin position
type Position struct {
	ID        int64           `json:"id"`
	Symbol    string          `json:"symbol"`
	Status    string          `json:"status"`
	Base      decimal.Decimal `json:"base"`
	Amount    decimal.Decimal `json:"amount"`
	Timestamp types.Time      `json:"timestamp"`
	Swap      decimal.Decimal `json:"swap"`
	PL        decimal.Decimal `json:"pl"`
}

// BalanceHistory holds a single balance ledger entry
type BalanceHistory struct {
	Currency    string          `json:"currency"`
	Amount      decimal.Decimal `json:"amount"`
	Balance     decimal.Decimal `json:"balance"`
	Description string          `json:"description"`
	Timestamp   types.Time      `json:"timestamp"`
}

// MovementHistory holds a past deposit or withdrawal. TxID is relayed as
// sent, the exchange returns both numeric ids and transaction hashes
type MovementHistory struct {
	ID               int64           `json:"id"`
	TxID             any             `json:"txid"`
	Currency         string          `json:"currency"`
	Method           string          `json:"method"`
	Type             string          `json:"type"`
	Amount           decimal.Decimal `json:"amount"`
	Description      string          `json:"description"`
	Address          string          `json:"address"`
	Status           string          `json:"status"`
	Timestamp        types.Time      `json:"timestamp"`
	TimestampCreated types.Time      `json:"timestamp_created"`
	Fee              decimal.Decimal `json:"fee"`
}

// TradeHistory holds a past executed trade of the account
type TradeHistory struct {
	Price       decimal.Decimal `json:"price"`
	Amount      decimal.Decimal `json:"amount"`
	Timestamp   types.Time      `json:"timestamp"`
	Exchange    string          `json:"exchange"`
	Type        string          `json:"type"`
	FeeCurrency string          `json:"fee_currency"`
	FeeAmount   decimal.Decimal `json:"fee_amount"`
	TID         int64           `json:"tid"`
	OrderID     int64           `json:"order_id"`
}

// Offer holds the state of a funding offer
type Offer struct {
	ID              int64           `json:"id"`
	Currency        string          `json:"currency"`
	Rate            decimal.Decimal `json:"rate"`
	Period          int64           `json:"period"`
	Direction       string          `json:"direction"`
	Timestamp       types.Time      `json:"timestamp"`
	IsLive          bool            `json:"is_live"`
	IsCancelled     bool            `json:"is_cancelled"`
	OriginalAmount  decimal.Decimal `json:"original_amount"`
	RemainingAmount decimal.Decimal `json:"remaining_amount"`
	ExecutedAmount  decimal.Decimal `json:"executed_amount"`
	OfferID         int64           `json:"offer_id,omitempty"`
}

// Credit holds a funding offer which has been taken
type Credit struct {
	ID        int64           `json:"id"`
	Currency  string          `json:"currency"`
	Status    string          `json:"status"`
	Rate      decimal.Decimal `json:"rate"`
	Period    int64           `json:"period"`
	Amount    decimal.Decimal `json:"amount"`
	Timestamp types.Time      `json:"timestamp"`
}

// MarginFunds holds taken margin funding
type MarginFunds struct {
	ID         int64           `json:"id"`
	PositionID int64           `json:"position_id"`
	Currency   string          `json:"currency"`
	Rate       decimal.Decimal `json:"rate"`
	Period     int64           `json:"period"`
	Amount     decimal.Decimal `json:"amount"`
	Timestamp  types.Time      `json:"timestamp"`
	AutoClose  bool            `json:"auto_close"`
}

// MarginTotalTakenFunds holds the total swaps used by a position pair
type MarginTotalTakenFunds struct {
	PositionPair string          `json:"position_pair"`
	TotalSwaps   decimal.Decimal `json:"total_swaps"`
}
