package main

import (
	"context"

	"github.com/pkg/errors"
	"github.com/thrasher-corp/bfxrest/encoding/json"
	"github.com/thrasher-corp/bfxrest/exchanges/bitfinex"
	"github.com/urfave/cli/v2"
)

var (
	orderIDFlag = &cli.Int64Flag{Name: "id", Usage: "the order ID", Required: true}
	offerIDFlag = &cli.Int64Flag{Name: "id", Usage: "the offer ID", Required: true}
	amountFlag  = &cli.StringFlag{Name: "amount", Usage: "the amount as a decimal string", Required: true}
	walletFlag  = &cli.StringFlag{Name: "wallet", Value: bitfinex.WalletExchange, Usage: "the wallet: trading, exchange or deposit"}
	timeRange   = []cli.Flag{
		&cli.StringFlag{Name: "since", Usage: "the start time, RFC3339 or unix seconds"},
		&cli.StringFlag{Name: "until", Usage: "the end time, RFC3339 or unix seconds"},
		&cli.IntFlag{Name: "limit", Usage: "the maximum number of entries returned"},
	}
)

var orderFlags = []cli.Flag{
	symbolFlag,
	amountFlag,
	&cli.StringFlag{Name: "price", Usage: "the price as a decimal string", Required: true},
	&cli.StringFlag{Name: "type", Value: bitfinex.OrderTypeExchangeLimit, Usage: "the order type, e.g. \"exchange limit\""},
	&cli.StringFlag{Name: "side", Value: bitfinex.SideBuy, Usage: "buy or sell"},
	&cli.BoolFlag{Name: "hidden", Usage: "hides the order from the order book"},
}

var accountCommand = &cli.Command{
	Name:  "account",
	Usage: "account information commands",
	Subcommands: []*cli.Command{
		{
			Name:  "info",
			Usage: "gets the account trading fees",
			Action: run(func(ctx context.Context, b *bitfinex.Bitfinex, _ *cli.Context) (any, error) {
				return b.GetAccountInfo(ctx)
			}),
		},
		{
			Name:  "fees",
			Usage: "gets the withdrawal fees",
			Action: run(func(ctx context.Context, b *bitfinex.Bitfinex, _ *cli.Context) (any, error) {
				return b.GetWithdrawalFees(ctx)
			}),
		},
		{
			Name:  "summary",
			Usage: "gets the 30-day trading and funding summary",
			Action: run(func(ctx context.Context, b *bitfinex.Bitfinex, _ *cli.Context) (any, error) {
				return b.GetAccountSummary(ctx)
			}),
		},
		{
			Name:  "keyinfo",
			Usage: "gets the permissions of the API key",
			Action: run(func(ctx context.Context, b *bitfinex.Bitfinex, _ *cli.Context) (any, error) {
				return b.GetKeyPermissions(ctx)
			}),
		},
		{
			Name:  "margin",
			Usage: "gets the margin trading information",
			Action: run(func(ctx context.Context, b *bitfinex.Bitfinex, _ *cli.Context) (any, error) {
				return b.GetMarginInfo(ctx)
			}),
		},
	},
}

var walletCommand = &cli.Command{
	Name:  "wallet",
	Usage: "wallet commands",
	Subcommands: []*cli.Command{
		{
			Name:  "balances",
			Usage: "gets every wallet balance",
			Action: run(func(ctx context.Context, b *bitfinex.Bitfinex, _ *cli.Context) (any, error) {
				return b.GetAccountBalance(ctx)
			}),
		},
		{
			Name:  "transfer",
			Usage: "moves funds between wallets",
			Flags: []cli.Flag{
				amountFlag,
				currencyFlag,
				&cli.StringFlag{Name: "from", Usage: "the source wallet", Required: true},
				&cli.StringFlag{Name: "to", Usage: "the destination wallet", Required: true},
			},
			Action: run(func(ctx context.Context, b *bitfinex.Bitfinex, c *cli.Context) (any, error) {
				amount, err := parseDecimal(c, "amount")
				if err != nil {
					return nil, err
				}
				return b.WalletTransfer(ctx, amount, c.String("currency"), c.String("from"), c.String("to"))
			}),
		},
		{
			Name:  "deposit",
			Usage: "gets a deposit address",
			Flags: []cli.Flag{
				&cli.StringFlag{Name: "method", Usage: "the deposit method, e.g. bitcoin", Required: true},
				walletFlag,
				&cli.BoolFlag{Name: "renew", Usage: "generates a new address"},
			},
			Action: run(func(ctx context.Context, b *bitfinex.Bitfinex, c *cli.Context) (any, error) {
				return b.NewDeposit(ctx, c.String("method"), c.String("wallet"), c.Bool("renew"))
			}),
		},
		{
			Name:  "withdraw",
			Usage: "withdraws cryptocurrency to an address",
			Flags: []cli.Flag{
				currencyFlag,
				amountFlag,
				walletFlag,
				&cli.StringFlag{Name: "address", Usage: "the destination address", Required: true},
				&cli.StringFlag{Name: "paymentid", Usage: "the payment ID, for currencies which use one"},
			},
			Action: run(func(ctx context.Context, b *bitfinex.Bitfinex, c *cli.Context) (any, error) {
				amount, err := parseDecimal(c, "amount")
				if err != nil {
					return nil, err
				}
				return b.WithdrawCryptocurrency(ctx, c.String("currency"), c.String("wallet"), c.String("address"), c.String("paymentid"), amount)
			}),
		},
	},
}

var orderCommand = &cli.Command{
	Name:  "order",
	Usage: "order commands",
	Subcommands: []*cli.Command{
		{
			Name:  "new",
			Usage: "submits a new order",
			Flags: orderFlags,
			Action: run(func(ctx context.Context, b *bitfinex.Bitfinex, c *cli.Context) (any, error) {
				amount, price, buy, err := parseOrder(c)
				if err != nil {
					return nil, err
				}
				return b.NewOrder(ctx, c.String("symbol"), c.String("type"), amount, price, buy, c.Bool("hidden"))
			}),
		},
		{
			Name:      "multi",
			Usage:     "submits several orders at once",
			ArgsUsage: `'[{"symbol":"btcusd","amount":"0.1","price":"30000","exchange":"bitfinex","side":"buy","type":"exchange limit"}]'`,
			Action: run(func(ctx context.Context, b *bitfinex.Bitfinex, c *cli.Context) (any, error) {
				var orders []bitfinex.PlaceOrder
				if err := json.Unmarshal([]byte(c.Args().First()), &orders); err != nil {
					return nil, errors.Wrap(err, "orders must be a JSON array")
				}
				return b.NewOrderMulti(ctx, orders)
			}),
		},
		{
			Name:  "cancel",
			Usage: "cancels an order",
			Flags: []cli.Flag{orderIDFlag},
			Action: run(func(ctx context.Context, b *bitfinex.Bitfinex, c *cli.Context) (any, error) {
				return b.CancelExistingOrder(ctx, c.Int64("id"))
			}),
		},
		{
			Name:  "cancelmulti",
			Usage: "cancels several orders",
			Flags: []cli.Flag{&cli.Int64SliceFlag{Name: "id", Usage: "an order ID, may be repeated", Required: true}},
			Action: run(func(ctx context.Context, b *bitfinex.Bitfinex, c *cli.Context) (any, error) {
				return b.CancelMultipleOrders(ctx, c.Int64Slice("id"))
			}),
		},
		{
			Name:  "cancelall",
			Usage: "cancels every open order",
			Action: run(func(ctx context.Context, b *bitfinex.Bitfinex, _ *cli.Context) (any, error) {
				return b.CancelAllExistingOrders(ctx)
			}),
		},
		{
			Name:  "replace",
			Usage: "replaces an order with a new one",
			Flags: append([]cli.Flag{orderIDFlag}, orderFlags...),
			Action: run(func(ctx context.Context, b *bitfinex.Bitfinex, c *cli.Context) (any, error) {
				amount, price, buy, err := parseOrder(c)
				if err != nil {
					return nil, err
				}
				return b.ReplaceOrder(ctx, c.Int64("id"), c.String("symbol"), c.String("type"), amount, price, buy, c.Bool("hidden"))
			}),
		},
		{
			Name:  "status",
			Usage: "gets the state of an order",
			Flags: []cli.Flag{orderIDFlag},
			Action: run(func(ctx context.Context, b *bitfinex.Bitfinex, c *cli.Context) (any, error) {
				return b.GetOrderStatus(ctx, c.Int64("id"))
			}),
		},
		{
			Name:  "open",
			Usage: "gets every open order",
			Action: run(func(ctx context.Context, b *bitfinex.Bitfinex, _ *cli.Context) (any, error) {
				return b.GetOpenOrders(ctx)
			}),
		},
		{
			Name:  "inactive",
			Usage: "gets the most recent inactive orders",
			Flags: []cli.Flag{&cli.IntFlag{Name: "limit", Usage: "the maximum number of orders returned"}},
			Action: run(func(ctx context.Context, b *bitfinex.Bitfinex, c *cli.Context) (any, error) {
				return b.GetInactiveOrders(ctx, c.Int("limit"))
			}),
		},
	},
}

var positionCommand = &cli.Command{
	Name:  "position",
	Usage: "margin position commands",
	Subcommands: []*cli.Command{
		{
			Name:  "active",
			Usage: "gets every active position",
			Action: run(func(ctx context.Context, b *bitfinex.Bitfinex, _ *cli.Context) (any, error) {
				return b.GetActivePositions(ctx)
			}),
		},
		{
			Name:  "claim",
			Usage: "claims a position",
			Flags: []cli.Flag{
				&cli.Int64Flag{Name: "id", Usage: "the position ID", Required: true},
				&cli.StringFlag{Name: "amount", Usage: "the amount to claim, all when unset"},
			},
			Action: run(func(ctx context.Context, b *bitfinex.Bitfinex, c *cli.Context) (any, error) {
				amount, err := parseOptionalDecimal(c, "amount")
				if err != nil {
					return nil, err
				}
				return b.ClaimPosition(ctx, c.Int64("id"), amount)
			}),
		},
	},
}

var historyCommand = &cli.Command{
	Name:  "history",
	Usage: "account history commands",
	Subcommands: []*cli.Command{
		{
			Name:  "balance",
			Usage: "gets the balance ledger of a currency",
			Flags: append([]cli.Flag{currencyFlag, &cli.StringFlag{Name: "wallet", Usage: "only entries of this wallet"}}, timeRange...),
			Action: run(func(ctx context.Context, b *bitfinex.Bitfinex, c *cli.Context) (any, error) {
				since, until, err := parseTimeRange(c)
				if err != nil {
					return nil, err
				}
				return b.GetBalanceHistory(ctx, c.String("currency"), since, until, c.Int("limit"), c.String("wallet"))
			}),
		},
		{
			Name:  "movements",
			Usage: "gets past deposits and withdrawals of a currency",
			Flags: append([]cli.Flag{currencyFlag, &cli.StringFlag{Name: "method", Usage: "only movements of this method"}}, timeRange...),
			Action: run(func(ctx context.Context, b *bitfinex.Bitfinex, c *cli.Context) (any, error) {
				since, until, err := parseTimeRange(c)
				if err != nil {
					return nil, err
				}
				return b.GetMovementHistory(ctx, c.String("currency"), c.String("method"), since, until, c.Int("limit"))
			}),
		},
		{
			Name:  "trades",
			Usage: "gets past executed trades of a currency pair",
			Flags: append([]cli.Flag{symbolFlag, &cli.BoolFlag{Name: "reverse", Usage: "returns the oldest trades first"}}, timeRange...),
			Action: run(func(ctx context.Context, b *bitfinex.Bitfinex, c *cli.Context) (any, error) {
				since, until, err := parseTimeRange(c)
				if err != nil {
					return nil, err
				}
				return b.GetTradeHistory(ctx, c.String("symbol"), since, until, c.Int("limit"), c.Bool("reverse"))
			}),
		},
	},
}

var fundingCommand = &cli.Command{
	Name:  "funding",
	Usage: "margin funding commands",
	Subcommands: []*cli.Command{
		{
			Name:  "newoffer",
			Usage: "submits a new funding offer",
			Flags: []cli.Flag{
				currencyFlag,
				amountFlag,
				&cli.StringFlag{Name: "rate", Usage: "the yearly rate in percent", Required: true},
				&cli.Int64Flag{Name: "period", Value: 2, Usage: "the number of days"},
				&cli.StringFlag{Name: "direction", Value: bitfinex.OfferDirectionLend, Usage: "lend or loan"},
			},
			Action: run(func(ctx context.Context, b *bitfinex.Bitfinex, c *cli.Context) (any, error) {
				amount, err := parseDecimal(c, "amount")
				if err != nil {
					return nil, err
				}
				rate, err := parseDecimal(c, "rate")
				if err != nil {
					return nil, err
				}
				return b.NewOffer(ctx, c.String("currency"), amount, rate, c.Int64("period"), c.String("direction"))
			}),
		},
		{
			Name:  "canceloffer",
			Usage: "cancels a funding offer",
			Flags: []cli.Flag{offerIDFlag},
			Action: run(func(ctx context.Context, b *bitfinex.Bitfinex, c *cli.Context) (any, error) {
				return b.CancelOffer(ctx, c.Int64("id"))
			}),
		},
		{
			Name:  "offerstatus",
			Usage: "gets the state of a funding offer",
			Flags: []cli.Flag{offerIDFlag},
			Action: run(func(ctx context.Context, b *bitfinex.Bitfinex, c *cli.Context) (any, error) {
				return b.GetOfferStatus(ctx, c.Int64("id"))
			}),
		},
		{
			Name:  "offers",
			Usage: "gets every active funding offer",
			Action: run(func(ctx context.Context, b *bitfinex.Bitfinex, _ *cli.Context) (any, error) {
				return b.GetActiveOffers(ctx)
			}),
		},
		{
			Name:  "credits",
			Usage: "gets every active credit",
			Action: run(func(ctx context.Context, b *bitfinex.Bitfinex, _ *cli.Context) (any, error) {
				return b.GetActiveCredits(ctx)
			}),
		},
		{
			Name:  "taken",
			Usage: "gets the active margin funding",
			Action: run(func(ctx context.Context, b *bitfinex.Bitfinex, _ *cli.Context) (any, error) {
				return b.GetActiveMarginFunding(ctx)
			}),
		},
		{
			Name:  "unused",
			Usage: "gets funding borrowed but not used",
			Action: run(func(ctx context.Context, b *bitfinex.Bitfinex, _ *cli.Context) (any, error) {
				return b.GetUnusedMarginFunds(ctx)
			}),
		},
		{
			Name:  "total",
			Usage: "gets the total funding used by each position",
			Action: run(func(ctx context.Context, b *bitfinex.Bitfinex, _ *cli.Context) (any, error) {
				return b.GetMarginTotalTakenFunds(ctx)
			}),
		},
		{
			Name:  "close",
			Usage: "closes taken funding",
			Flags: []cli.Flag{&cli.Int64Flag{Name: "id", Usage: "the swap ID", Required: true}},
			Action: run(func(ctx context.Context, b *bitfinex.Bitfinex, c *cli.Context) (any, error) {
				return b.CloseMarginFunding(ctx, c.Int64("id"))
			}),
		},
	},
}
