package main

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"github.com/thrasher-corp/bfxrest/encoding/json"
	"github.com/thrasher-corp/bfxrest/exchanges/bitfinex"
	"github.com/urfave/cli/v2"
)

var errInvalidSide = errors.New("side must be buy or sell")

func jsonOutput(c *cli.Context, in any) error {
	j, err := json.MarshalIndent(in, "", " ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(c.App.Writer, string(j))
	return err
}

// closeClient shuts the client down once a command has finished
func closeClient(c *cli.Context, b *bitfinex.Bitfinex, cancel context.CancelFunc) {
	if err := b.Shutdown(); err != nil {
		fmt.Fprintln(c.App.ErrWriter, "unable to shut down client:", err)
	}
	cancel()
}

// parseTime accepts RFC3339 or unix seconds, an empty string yields the zero
// time
func parseTime(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	if secs, err := strconv.ParseInt(s, 10, 64); err == nil {
		return time.Unix(secs, 0), nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, errors.Errorf("invalid time %q, expected RFC3339 or unix seconds", s)
	}
	return t, nil
}

func parseTimeRange(c *cli.Context) (since, until time.Time, err error) {
	if since, err = parseTime(c.String("since")); err != nil {
		return
	}
	until, err = parseTime(c.String("until"))
	return
}

func parseDecimal(c *cli.Context, name string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(c.String(name))
	if err != nil {
		return decimal.Zero, errors.Wrapf(err, "invalid --%s", name)
	}
	return d, nil
}

// parseOptionalDecimal returns zero when the flag is unset
func parseOptionalDecimal(c *cli.Context, name string) (decimal.Decimal, error) {
	if c.String(name) == "" {
		return decimal.Zero, nil
	}
	return parseDecimal(c, name)
}

func parseOrder(c *cli.Context) (amount, price decimal.Decimal, buy bool, err error) {
	if amount, err = parseDecimal(c, "amount"); err != nil {
		return
	}
	if price, err = parseDecimal(c, "price"); err != nil {
		return
	}
	switch c.String("side") {
	case bitfinex.SideBuy:
		buy = true
	case bitfinex.SideSell:
	default:
		err = errors.Wrap(errInvalidSide, c.String("side"))
	}
	return
}
