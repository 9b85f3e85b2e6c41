package main

import (
	"context"
	"net/url"
	"strconv"

	"github.com/thrasher-corp/bfxrest/exchanges/bitfinex"
	"github.com/urfave/cli/v2"
)

// exchangeCall is the body of a command once the client is set up
type exchangeCall func(ctx context.Context, b *bitfinex.Bitfinex, c *cli.Context) (any, error)

// run sets up a client, runs call and prints its result as JSON
func run(call exchangeCall) cli.ActionFunc {
	return func(c *cli.Context) error {
		b, cancel, err := setupClient(c)
		if err != nil {
			return err
		}
		defer closeClient(c, b, cancel)

		result, err := call(c.Context, b, c)
		if err != nil {
			return err
		}
		return jsonOutput(c, result)
	}
}

var symbolFlag = &cli.StringFlag{
	Name:     "symbol",
	Aliases:  []string{"s"},
	Usage:    "the currency pair, e.g. btcusd",
	Required: true,
}

var currencyFlag = &cli.StringFlag{
	Name:     "currency",
	Usage:    "the currency, e.g. usd",
	Required: true,
}

var getSymbolsCommand = &cli.Command{
	Name:  "symbols",
	Usage: "gets the available currency pairs",
	Action: run(func(ctx context.Context, b *bitfinex.Bitfinex, _ *cli.Context) (any, error) {
		return b.GetSymbols(ctx)
	}),
}

var getSymbolsDetailsCommand = &cli.Command{
	Name:  "symbolsdetails",
	Usage: "gets the trading rules of every currency pair",
	Action: run(func(ctx context.Context, b *bitfinex.Bitfinex, _ *cli.Context) (any, error) {
		return b.GetSymbolsDetails(ctx)
	}),
}

var getTickerCommand = &cli.Command{
	Name:  "ticker",
	Usage: "gets the ticker of a currency pair",
	Flags: []cli.Flag{symbolFlag},
	Action: run(func(ctx context.Context, b *bitfinex.Bitfinex, c *cli.Context) (any, error) {
		return b.GetTicker(ctx, c.String("symbol"))
	}),
}

var getStatsCommand = &cli.Command{
	Name:  "stats",
	Usage: "gets the traded volume of a currency pair",
	Flags: []cli.Flag{symbolFlag},
	Action: run(func(ctx context.Context, b *bitfinex.Bitfinex, c *cli.Context) (any, error) {
		return b.GetStats(ctx, c.String("symbol"))
	}),
}

var getTradesCommand = &cli.Command{
	Name:  "trades",
	Usage: "gets the most recent trades of a currency pair",
	Flags: []cli.Flag{
		symbolFlag,
		&cli.StringFlag{Name: "since", Usage: "only trades at or after this time, RFC3339 or unix seconds"},
		&cli.IntFlag{Name: "limit", Usage: "the maximum number of trades returned"},
	},
	Action: run(func(ctx context.Context, b *bitfinex.Bitfinex, c *cli.Context) (any, error) {
		values, err := queryValues(c, "timestamp", "limit_trades")
		if err != nil {
			return nil, err
		}
		return b.GetTrades(ctx, c.String("symbol"), values)
	}),
}

var bookLimitFlags = []cli.Flag{
	&cli.IntFlag{Name: "bids", Usage: "the maximum number of bids returned"},
	&cli.IntFlag{Name: "asks", Usage: "the maximum number of asks returned"},
}

var getFundingBookCommand = &cli.Command{
	Name:  "fundingbook",
	Usage: "gets the margin funding book of a currency",
	Flags: append([]cli.Flag{currencyFlag}, bookLimitFlags...),
	Action: run(func(ctx context.Context, b *bitfinex.Bitfinex, c *cli.Context) (any, error) {
		return b.GetFundingBook(ctx, c.String("currency"), bookValues(c))
	}),
}

var getOrderbookCommand = &cli.Command{
	Name:  "orderbook",
	Usage: "gets the order book of a currency pair",
	Flags: append([]cli.Flag{
		symbolFlag,
		&cli.BoolFlag{Name: "ungrouped", Usage: "returns every order instead of grouping by price"},
	}, bookLimitFlags...),
	Action: run(func(ctx context.Context, b *bitfinex.Bitfinex, c *cli.Context) (any, error) {
		values := bookValues(c)
		if c.Bool("ungrouped") {
			values.Set("group", "0")
		}
		return b.GetOrderbook(ctx, c.String("symbol"), values)
	}),
}

var getLendsCommand = &cli.Command{
	Name:  "lends",
	Usage: "gets the most recent funding data of a currency",
	Flags: []cli.Flag{
		currencyFlag,
		&cli.StringFlag{Name: "since", Usage: "only data at or after this time, RFC3339 or unix seconds"},
		&cli.IntFlag{Name: "limit", Usage: "the maximum number of entries returned"},
	},
	Action: run(func(ctx context.Context, b *bitfinex.Bitfinex, c *cli.Context) (any, error) {
		values, err := queryValues(c, "timestamp", "limit_lends")
		if err != nil {
			return nil, err
		}
		return b.GetLends(ctx, c.String("currency"), values)
	}),
}

// queryValues maps the since and limit flags onto the supplied query keys
func queryValues(c *cli.Context, sinceKey, limitKey string) (url.Values, error) {
	values := url.Values{}
	since, err := parseTime(c.String("since"))
	if err != nil {
		return nil, err
	}
	if !since.IsZero() {
		values.Set(sinceKey, strconv.FormatInt(since.Unix(), 10))
	}
	if limit := c.Int("limit"); limit > 0 {
		values.Set(limitKey, strconv.Itoa(limit))
	}
	return values, nil
}

func bookValues(c *cli.Context) url.Values {
	values := url.Values{}
	if bids := c.Int("bids"); bids > 0 {
		values.Set("limit_bids", strconv.Itoa(bids))
	}
	if asks := c.Int("asks"); asks > 0 {
		values.Set("limit_asks", strconv.Itoa(asks))
	}
	return values
}
