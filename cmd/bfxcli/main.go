package main

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"os/signal"
	"time"

	"github.com/joho/godotenv"
	"github.com/logrusorgru/aurora"
	"github.com/pkg/errors"
	"github.com/thrasher-corp/bfxrest/config"
	"github.com/thrasher-corp/bfxrest/exchanges/bitfinex"
	"github.com/thrasher-corp/bfxrest/exchanges/request"
	"github.com/thrasher-corp/bfxrest/log"
	"github.com/urfave/cli/v2"
)

const defaultTimeout = time.Second * 30

func newApp() *cli.App {
	app := cli.NewApp()
	app.Name = "bfxcli"
	app.Usage = "command line interface for the Bitfinex v1 REST API"
	app.EnableBashCompletion = true
	app.Flags = []cli.Flag{
		&cli.StringFlag{
			Name:    "config",
			Aliases: []string{"c"},
			Usage:   "the config file to load, JSON or YAML",
		},
		&cli.StringFlag{
			Name:  "env",
			Value: ".env",
			Usage: "a .env file holding BFX_ variables, ignored when missing",
		},
		&cli.StringFlag{
			Name:  "url",
			Usage: "override the config API URL",
		},
		&cli.StringFlag{
			Name:  "apikey",
			Usage: "override config API key for request",
		},
		&cli.StringFlag{
			Name:  "apisecret",
			Usage: "override config API secret for request",
		},
		&cli.DurationFlag{
			Name:  "timeout",
			Value: defaultTimeout,
			Usage: "the context timeout value for the whole command",
		},
		&cli.BoolFlag{
			Name:  "verbose",
			Usage: "logs request and response details",
		},
		&cli.BoolFlag{
			Name:  "httpdebug",
			Usage: "dumps full HTTP requests and responses, implies --verbose",
		},
	}
	app.Commands = []*cli.Command{
		getSymbolsCommand,
		getSymbolsDetailsCommand,
		getTickerCommand,
		getStatsCommand,
		getTradesCommand,
		getFundingBookCommand,
		getOrderbookCommand,
		getLendsCommand,
		accountCommand,
		walletCommand,
		orderCommand,
		positionCommand,
		historyCommand,
		fundingCommand,
	}
	return app
}

// setupClient loads the environment and config then returns a client, its
// context is bounded by the --timeout flag
func setupClient(c *cli.Context) (*bitfinex.Bitfinex, context.CancelFunc, error) {
	if err := godotenv.Load(c.String("env")); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, nil, errors.Wrapf(err, "unable to load %s", c.String("env"))
	}

	cfg, err := config.Load(c.String("config"))
	if err != nil {
		return nil, nil, errors.Wrap(err, "unable to load config")
	}
	if c.IsSet("url") {
		cfg.Exchange.API.URL = c.String("url")
	}
	if c.IsSet("apikey") {
		cfg.Exchange.API.Credentials.Key = c.String("apikey")
	}
	if c.IsSet("apisecret") {
		cfg.Exchange.API.Credentials.Secret = c.String("apisecret")
	}
	if !c.IsSet("config") {
		// keep stdout for command output
		cfg.Logging.Output = "stderr"
	}
	verbose := c.Bool("verbose") || c.Bool("httpdebug")
	if verbose {
		cfg.Exchange.Verbose = true
		cfg.Logging.Level = "INFO|DEBUG|WARN|ERROR"
	}
	if err := log.SetupGlobalLogger(&cfg.Logging); err != nil {
		return nil, nil, errors.Wrap(err, "unable to set up logger")
	}

	b, err := bitfinex.New(&cfg.Exchange)
	if err != nil {
		return nil, nil, errors.Wrap(err, "unable to set up exchange")
	}

	var cancel context.CancelFunc
	c.Context, cancel = context.WithTimeout(c.Context, c.Duration("timeout"))
	if verbose {
		c.Context = request.WithVerbose(c.Context)
	}
	if c.Bool("httpdebug") {
		c.Context = request.WithHTTPDebugging(c.Context)
	}
	return b, cancel, nil
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := newApp().RunContext(ctx, os.Args); err != nil {
		fmt.Fprintln(os.Stderr, aurora.Bold(aurora.Red("error:")), err)
		var httpErr *request.HTTPError
		if errors.As(err, &httpErr) && httpErr.Message() != "" {
			fmt.Fprintln(os.Stderr, aurora.Yellow("exchange message:"), httpErr.Message())
		}
		stop()
		os.Exit(1)
	}
}
