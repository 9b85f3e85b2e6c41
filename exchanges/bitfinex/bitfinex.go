package bitfinex

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/thrasher-corp/bfxrest/common"
	"github.com/thrasher-corp/bfxrest/exchanges/request"
	"github.com/thrasher-corp/bfxrest/log"
)

const (
	bitfinexAPIURLBase = "https://api.bitfinex.com"
	bitfinexAPIVersion = "/v1/"

	// Public endpoints
	bitfinexSymbols        = "symbols"
	bitfinexSymbolsDetails = "symbols_details"
	bitfinexTicker         = "pubticker/"
	bitfinexStats          = "stats/"
	bitfinexTrades         = "trades/"
	bitfinexLendbook       = "lendbook/"
	bitfinexOrderbook      = "book/"
	bitfinexLends          = "lends/"

	// Authenticated endpoints
	bitfinexAccountInfo        = "account_infos"
	bitfinexAccountFees        = "account_fees"
	bitfinexAccountSummary     = "summary"
	bitfinexKeyPermissions     = "key_info"
	bitfinexMarginInfo         = "margin_infos"
	bitfinexBalances           = "balances"
	bitfinexTransfer           = "transfer"
	bitfinexDeposit            = "deposit/new"
	bitfinexWithdrawal         = "withdraw"
	bitfinexOrderNew           = "order/new"
	bitfinexOrderNewMulti      = "order/new/multi"
	bitfinexOrderCancel        = "order/cancel"
	bitfinexOrderCancelMulti   = "order/cancel/multi"
	bitfinexOrderCancelAll     = "order/cancel/all"
	bitfinexOrderCancelReplace = "order/cancel/replace"
	bitfinexOrderStatus        = "order/status"
	bitfinexOrders             = "orders"
	bitfinexInactiveOrders     = "orders/hist"
	bitfinexPositions          = "positions"
	bitfinexClaimPosition      = "position/claim"
	bitfinexHistory            = "history"
	bitfinexHistoryMovements   = "history/movements"
	bitfinexTradeHistory       = "mytrades"
	bitfinexOfferNew           = "offer/new"
	bitfinexOfferCancel        = "offer/cancel"
	bitfinexOfferStatus        = "offer/status"
	bitfinexActiveCredits      = "credits"
	bitfinexOffers             = "offers"
	bitfinexMarginActiveFunds  = "taken_funds"
	bitfinexMarginUnusedFunds  = "unused_taken_funds"
	bitfinexMarginTotalFunds   = "total_taken_funds"
	bitfinexMarginClose        = "funding/close"

	bitfinexPublicTimeout  = time.Second * 10
	bitfinexPrivateTimeout = time.Second * 20
)

// Bitfinex is the overarching type across the bitfinex package
type Bitfinex struct {
	Name          string
	Verbose       bool
	HTTPDebugging bool

	apiURL         string
	publicTimeout  time.Duration
	privateTimeout time.Duration
	signer         *Signer
	requester      *request.Requester
}

// GetSymbols returns the available currency pairs
func (b *Bitfinex) GetSymbols(ctx context.Context) ([]string, error) {
	var products []string
	return products, b.SendHTTPRequest(ctx, bitfinexSymbols, &products)
}

// GetSymbolsDetails returns the trading rules of every available currency pair
func (b *Bitfinex) GetSymbolsDetails(ctx context.Context) ([]SymbolDetails, error) {
	var response []SymbolDetails
	return response, b.SendHTTPRequest(ctx, bitfinexSymbolsDetails, &response)
}

// GetTicker returns the high level overview of the market for a symbol, e.g.
// "btcusd"
func (b *Bitfinex) GetTicker(ctx context.Context, symbol string) (Ticker, error) {
	var response Ticker
	return response, b.SendHTTPRequest(ctx, bitfinexTicker+symbol, &response)
}

// GetStats returns the traded volume of a symbol over several periods
func (b *Bitfinex) GetStats(ctx context.Context, symbol string) ([]Stat, error) {
	var response []Stat
	return response, b.SendHTTPRequest(ctx, bitfinexStats+symbol, &response)
}

// GetTrades returns the most recent trades of a symbol
// values can hold "timestamp" to only return trades at or after a unix time
// and "limit_trades" to cap the number returned
func (b *Bitfinex) GetTrades(ctx context.Context, symbol string, values url.Values) ([]Trade, error) {
	var response []Trade
	path := common.EncodeURLValues(bitfinexTrades+symbol, values)
	return response, b.SendHTTPRequest(ctx, path, &response)
}

// GetFundingBook returns the full margin funding book of a currency, e.g.
// "usd"
// values can hold "limit_bids" and "limit_asks"
func (b *Bitfinex) GetFundingBook(ctx context.Context, currency string, values url.Values) (FundingBook, error) {
	var response FundingBook
	path := common.EncodeURLValues(bitfinexLendbook+currency, values)
	return response, b.SendHTTPRequest(ctx, path, &response)
}

// GetOrderbook returns the full order book of a symbol
// values can hold "limit_bids", "limit_asks" and "group"
func (b *Bitfinex) GetOrderbook(ctx context.Context, symbol string, values url.Values) (Orderbook, error) {
	var response Orderbook
	path := common.EncodeURLValues(bitfinexOrderbook+symbol, values)
	return response, b.SendHTTPRequest(ctx, path, &response)
}

// GetLends returns the most recent funding data of a currency
// values can hold "timestamp" and "limit_lends"
func (b *Bitfinex) GetLends(ctx context.Context, currency string, values url.Values) ([]Lends, error) {
	var response []Lends
	path := common.EncodeURLValues(bitfinexLends+currency, values)
	return response, b.SendHTTPRequest(ctx, path, &response)
}

// GetAccountInfo returns the trading fees of the account
func (b *Bitfinex) GetAccountInfo(ctx context.Context) ([]AccountInfo, error) {
	var response []AccountInfo
	return response, b.SendAuthenticatedHTTPRequest(ctx, bitfinexAccountInfo, nil, &response)
}

// GetWithdrawalFees returns the withdrawal fee of each currency
func (b *Bitfinex) GetWithdrawalFees(ctx context.Context) (WithdrawalFees, error) {
	var response WithdrawalFees
	return response, b.SendAuthenticatedHTTPRequest(ctx, bitfinexAccountFees, nil, &response)
}

// GetAccountSummary returns a 30-day summary of your trading volume and return
// on margin funding
func (b *Bitfinex) GetAccountSummary(ctx context.Context) (AccountSummary, error) {
	var response AccountSummary
	return response, b.SendAuthenticatedHTTPRequest(ctx, bitfinexAccountSummary, nil, &response)
}

// GetKeyPermissions checks the permissions of the key being used to generate
// this request
func (b *Bitfinex) GetKeyPermissions(ctx context.Context) (KeyPermissions, error) {
	var response KeyPermissions
	return response, b.SendAuthenticatedHTTPRequest(ctx, bitfinexKeyPermissions, nil, &response)
}

// GetMarginInfo shows your trading wallet information for margin trading
func (b *Bitfinex) GetMarginInfo(ctx context.Context) ([]MarginInfo, error) {
	var response []MarginInfo
	return response, b.SendAuthenticatedHTTPRequest(ctx, bitfinexMarginInfo, nil, &response)
}

// GetAccountBalance returns full wallet balance information
func (b *Bitfinex) GetAccountBalance(ctx context.Context) ([]Balance, error) {
	var response []Balance
	return response, b.SendAuthenticatedHTTPRequest(ctx, bitfinexBalances, nil, &response)
}

// WalletTransfer move available balances between your wallets
// Currency - example "BTC"
// WalletFrom - example "exchange"
// WalletTo - example "deposit"
func (b *Bitfinex) WalletTransfer(ctx context.Context, amount decimal.Decimal, currency, walletFrom, walletTo string) ([]WalletTransfer, error) {
	var response []WalletTransfer
	req := map[string]any{
		"amount":     amount.String(),
		"currency":   currency,
		"walletfrom": walletFrom,
		"walletto":   walletTo,
	}
	return response, b.SendAuthenticatedHTTPRequest(ctx, bitfinexTransfer, req, &response)
}

// NewDeposit returns a deposit address
// Method - example "bitcoin", "litecoin", "ethereum"
// WalletName - accepted: "trading", "exchange", "deposit"
// renew - when set a new unused deposit address is generated
func (b *Bitfinex) NewDeposit(ctx context.Context, method, walletName string, renew bool) (DepositResponse, error) {
	var response DepositResponse
	req := map[string]any{
		"method":      method,
		"wallet_name": walletName,
		"renew":       0,
	}
	if renew {
		req["renew"] = 1
	}
	return response, b.SendAuthenticatedHTTPRequest(ctx, bitfinexDeposit, req, &response)
}

// WithdrawCryptocurrency requests a withdrawal from one of your wallets. The
// currency code is converted to the withdrawal type the exchange expects
func (b *Bitfinex) WithdrawCryptocurrency(ctx context.Context, currency, wallet, address, paymentID string, amount decimal.Decimal) ([]Withdrawal, error) {
	var response []Withdrawal
	req := map[string]any{
		"withdraw_type":  ConvertSymbolToWithdrawalType(currency),
		"walletselected": wallet,
		"amount":         amount.String(),
		"address":        address,
	}
	if paymentID != "" {
		req["payment_id"] = paymentID
	}
	return response, b.SendAuthenticatedHTTPRequest(ctx, bitfinexWithdrawal, req, &response)
}

// NewOrder submits a new order and returns its state
func (b *Bitfinex) NewOrder(ctx context.Context, symbol, orderType string, amount, price decimal.Decimal, buy, hidden bool) (Order, error) {
	var response Order
	req := orderParams(symbol, orderType, amount, price, buy, hidden)
	return response, b.SendAuthenticatedHTTPRequest(ctx, bitfinexOrderNew, req, &response)
}

// NewOrderMulti allows several new orders at once
func (b *Bitfinex) NewOrderMulti(ctx context.Context, orders []PlaceOrder) (OrderMultiResponse, error) {
	var response OrderMultiResponse
	req := map[string]any{"orders": orders}
	return response, b.SendAuthenticatedHTTPRequest(ctx, bitfinexOrderNewMulti, req, &response)
}

// CancelExistingOrder cancels a single order by OrderID
func (b *Bitfinex) CancelExistingOrder(ctx context.Context, orderID int64) (Order, error) {
	var response Order
	req := map[string]any{"order_id": orderID}
	return response, b.SendAuthenticatedHTTPRequest(ctx, bitfinexOrderCancel, req, &response)
}

// CancelMultipleOrders cancels multiple orders
func (b *Bitfinex) CancelMultipleOrders(ctx context.Context, orderIDs []int64) (string, error) {
	var response GenericResponse
	req := map[string]any{"order_ids": orderIDs}
	err := b.SendAuthenticatedHTTPRequest(ctx, bitfinexOrderCancelMulti, req, &response)
	return response.Result, err
}

// CancelAllExistingOrders cancels all active and open orders
func (b *Bitfinex) CancelAllExistingOrders(ctx context.Context) (string, error) {
	var response GenericResponse
	err := b.SendAuthenticatedHTTPRequest(ctx, bitfinexOrderCancelAll, nil, &response)
	return response.Result, err
}

// ReplaceOrder replaces an older order with a new order
func (b *Bitfinex) ReplaceOrder(ctx context.Context, orderID int64, symbol, orderType string, amount, price decimal.Decimal, buy, hidden bool) (Order, error) {
	var response Order
	req := orderParams(symbol, orderType, amount, price, buy, hidden)
	req["order_id"] = orderID
	return response, b.SendAuthenticatedHTTPRequest(ctx, bitfinexOrderCancelReplace, req, &response)
}

// GetOrderStatus returns order status information
func (b *Bitfinex) GetOrderStatus(ctx context.Context, orderID int64) (Order, error) {
	var response Order
	req := map[string]any{"order_id": orderID}
	return response, b.SendAuthenticatedHTTPRequest(ctx, bitfinexOrderStatus, req, &response)
}

// GetOpenOrders returns all active orders and statuses
func (b *Bitfinex) GetOpenOrders(ctx context.Context) ([]Order, error) {
	var response []Order
	return response, b.SendAuthenticatedHTTPRequest(ctx, bitfinexOrders, nil, &response)
}

// GetInactiveOrders returns the most recent inactive orders, limit is left to
// the exchange default when not positive
func (b *Bitfinex) GetInactiveOrders(ctx context.Context, limit int) ([]Order, error) {
	var response []Order
	var req map[string]any
	if limit > 0 {
		req = map[string]any{"limit": strconv.Itoa(limit)}
	}
	return response, b.SendAuthenticatedHTTPRequest(ctx, bitfinexInactiveOrders, req, &response)
}

// GetActivePositions returns an array of active positions
func (b *Bitfinex) GetActivePositions(ctx context.Context) ([]Position, error) {
	var response []Position
	return response, b.SendAuthenticatedHTTPRequest(ctx, bitfinexPositions, nil, &response)
}

// ClaimPosition claims a position, a zero amount claims all of it
func (b *Bitfinex) ClaimPosition(ctx context.Context, positionID int64, amount decimal.Decimal) (Position, error) {
	var response Position
	req := map[string]any{"position_id": positionID}
	if !amount.IsZero() {
		req["amount"] = amount.String()
	}
	return response, b.SendAuthenticatedHTTPRequest(ctx, bitfinexClaimPosition, req, &response)
}

// GetBalanceHistory returns balance history for the account
func (b *Bitfinex) GetBalanceHistory(ctx context.Context, currency string, timeSince, timeUntil time.Time, limit int, wallet string) ([]BalanceHistory, error) {
	var response []BalanceHistory
	req := map[string]any{"currency": currency}
	setTimeRange(req, "since", timeSince, "until", timeUntil)
	if limit > 0 {
		req["limit"] = limit
	}
	if wallet != "" {
		req["wallet"] = wallet
	}
	return response, b.SendAuthenticatedHTTPRequest(ctx, bitfinexHistory, req, &response)
}

// GetMovementHistory returns an array of past deposits and withdrawals
func (b *Bitfinex) GetMovementHistory(ctx context.Context, currency, method string, timeSince, timeUntil time.Time, limit int) ([]MovementHistory, error) {
	var response []MovementHistory
	req := map[string]any{"currency": currency}
	if method != "" {
		req["method"] = method
	}
	setTimeRange(req, "since", timeSince, "until", timeUntil)
	if limit > 0 {
		req["limit"] = limit
	}
	return response, b.SendAuthenticatedHTTPRequest(ctx, bitfinexHistoryMovements, req, &response)
}

// GetTradeHistory returns past executed trades of a symbol
func (b *Bitfinex) GetTradeHistory(ctx context.Context, symbol string, timestamp, until time.Time, limit int, reverse bool) ([]TradeHistory, error) {
	var response []TradeHistory
	req := map[string]any{"symbol": symbol}
	setTimeRange(req, "timestamp", timestamp, "until", until)
	if limit > 0 {
		req["limit_trades"] = limit
	}
	if reverse {
		req["reverse"] = 1
	}
	return response, b.SendAuthenticatedHTTPRequest(ctx, bitfinexTradeHistory, req, &response)
}

// NewOffer submits a new funding offer
// Rate - yearly rate in percent
// Period - number of days the funds are offered for
// Direction - "lend" or "loan"
func (b *Bitfinex) NewOffer(ctx context.Context, currency string, amount, rate decimal.Decimal, period int64, direction string) (Offer, error) {
	var response Offer
	req := map[string]any{
		"currency":  currency,
		"amount":    amount.String(),
		"rate":      rate.String(),
		"period":    period,
		"direction": direction,
	}
	return response, b.SendAuthenticatedHTTPRequest(ctx, bitfinexOfferNew, req, &response)
}

// CancelOffer cancels offer by offerID
func (b *Bitfinex) CancelOffer(ctx context.Context, offerID int64) (Offer, error) {
	var response Offer
	req := map[string]any{"offer_id": offerID}
	return response, b.SendAuthenticatedHTTPRequest(ctx, bitfinexOfferCancel, req, &response)
}

// GetOfferStatus checks offer status whether it has been cancelled, execute or
// is still active
func (b *Bitfinex) GetOfferStatus(ctx context.Context, offerID int64) (Offer, error) {
	var response Offer
	req := map[string]any{"offer_id": offerID}
	return response, b.SendAuthenticatedHTTPRequest(ctx, bitfinexOfferStatus, req, &response)
}

// GetActiveCredits returns all available credits
func (b *Bitfinex) GetActiveCredits(ctx context.Context) ([]Credit, error) {
	var response []Credit
	return response, b.SendAuthenticatedHTTPRequest(ctx, bitfinexActiveCredits, nil, &response)
}

// GetActiveOffers returns all current active offers
func (b *Bitfinex) GetActiveOffers(ctx context.Context) ([]Offer, error) {
	var response []Offer
	return response, b.SendAuthenticatedHTTPRequest(ctx, bitfinexOffers, nil, &response)
}

// GetActiveMarginFunding returns an array of active margin funds
func (b *Bitfinex) GetActiveMarginFunding(ctx context.Context) ([]MarginFunds, error) {
	var response []MarginFunds
	return response, b.SendAuthenticatedHTTPRequest(ctx, bitfinexMarginActiveFunds, nil, &response)
}

// GetUnusedMarginFunds returns an array of funding borrowed but not currently
// used
func (b *Bitfinex) GetUnusedMarginFunds(ctx context.Context) ([]MarginFunds, error) {
	var response []MarginFunds
	return response, b.SendAuthenticatedHTTPRequest(ctx, bitfinexMarginUnusedFunds, nil, &response)
}

// GetMarginTotalTakenFunds returns an array of active funding used in a
// position
func (b *Bitfinex) GetMarginTotalTakenFunds(ctx context.Context) ([]MarginTotalTakenFunds, error) {
	var response []MarginTotalTakenFunds
	return response, b.SendAuthenticatedHTTPRequest(ctx, bitfinexMarginTotalFunds, nil, &response)
}

// CloseMarginFunding closes an unused or used taken fund
func (b *Bitfinex) CloseMarginFunding(ctx context.Context, swapID int64) (MarginFunds, error) {
	var response MarginFunds
	req := map[string]any{"swap_id": swapID}
	return response, b.SendAuthenticatedHTTPRequest(ctx, bitfinexMarginClose, req, &response)
}

// SendHTTPRequest sends an unauthenticated GET request for a v1 path and
// decodes the response into result
func (b *Bitfinex) SendHTTPRequest(ctx context.Context, path string, result any) error {
	u := b.endpoint(path)
	log.Debugf(log.ExchangeSys, "%s fetching %s", b.Name, u)
	return b.requester.SendPayload(ctx, &request.Item{
		Method:        http.MethodGet,
		Path:          u,
		Result:        result,
		Timeout:       b.publicTimeout,
		Verbose:       b.Verbose,
		HTTPDebugging: b.HTTPDebugging,
	})
}

// SendAuthenticatedHTTPRequest signs params for a v1 path, POSTs them and
// decodes the response into result. It fails with ErrMissingCredentials
// before any network activity when no credentials are set.
func (b *Bitfinex) SendAuthenticatedHTTPRequest(ctx context.Context, path string, params map[string]any, result any) error {
	if !b.AuthenticatedSupport() {
		return fmt.Errorf("%s %s: %w", b.Name, path, ErrMissingCredentials)
	}
	signed, err := b.signer.Sign(path, params)
	if err != nil {
		return fmt.Errorf("%s %s: %w", b.Name, path, err)
	}

	u := b.endpoint(path)
	log.Debugf(log.ExchangeSys, "%s sending %s nonce %s", b.Name, u, signed.Nonce)
	return b.requester.SendPayload(ctx, &request.Item{
		Method:        http.MethodPost,
		Path:          u,
		Headers:       signed.Headers,
		Body:          strings.NewReader(signed.Payload),
		Result:        result,
		Timeout:       b.privateTimeout,
		Verbose:       b.Verbose,
		HTTPDebugging: b.HTTPDebugging,
	})
}

func (b *Bitfinex) endpoint(path string) string {
	base := b.apiURL
	if base == "" {
		base = bitfinexAPIURLBase
	}
	return strings.TrimSuffix(base, "/") + bitfinexAPIVersion + path
}

func orderParams(symbol, orderType string, amount, price decimal.Decimal, buy, hidden bool) map[string]any {
	req := map[string]any{
		"symbol":    symbol,
		"amount":    amount.String(),
		"price":     price.String(),
		"exchange":  "bitfinex",
		"type":      orderType,
		"is_hidden": hidden,
		"side":      SideSell,
	}
	if buy {
		req["side"] = SideBuy
	}
	return req
}

// setTimeRange adds unix second bounds for any non zero time
func setTimeRange(req map[string]any, fromKey string, from time.Time, toKey string, to time.Time) {
	if !from.IsZero() {
		req[fromKey] = strconv.FormatInt(from.Unix(), 10)
	}
	if !to.IsZero() {
		req[toKey] = strconv.FormatInt(to.Unix(), 10)
	}
}
