package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"text/tabwriter"
	"time"

	"github.com/urfave/cli/v2"
	"go.uber.org/zap"

	"github.com/rewards-dashboard/rpcfallback/logutils"
	"github.com/rewards-dashboard/rpcfallback/metrics"
	"github.com/rewards-dashboard/rpcfallback/params"
	"github.com/rewards-dashboard/rpcfallback/rpc"
	"github.com/rewards-dashboard/rpcfallback/rpc/chain/ethclient"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newApp().RunContext(ctx, os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newApp() *cli.App {
	return &cli.App{
		Name:  "rpcfallback",
		Usage: "Reach an Ethereum node through a prioritized list of RPC endpoints",
		Flags: globalFlags(),
		Commands: []*cli.Command{
			{
				Name:  "endpoints",
				Usage: "List candidate endpoints in attempt order",
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  ProbeFlag,
						Usage: "Probe every endpoint before listing it",
					},
				},
				Action: withClient(listEndpoints),
			},
			{
				Name:   "connect",
				Usage:  "Open a validated connection and print the endpoint serving it",
				Action: withClient(connect),
			},
			{
				Name:    "block-number",
				Aliases: []string{"bn"},
				Usage:   "Print the latest block number",
				Action:  withClient(printBlockNumber),
			},
		},
	}
}

type session struct {
	config *params.Config
	client *rpc.Client
	logger *zap.Logger
}

// withClient builds the configured client, serves metrics when asked to, and runs action.
func withClient(action func(*cli.Context, *session) error) cli.ActionFunc {
	return func(cCtx *cli.Context) error {
		config, err := loadConfig(cCtx)
		if err != nil {
			return err
		}

		logger, err := logutils.NewZapLogger(config.Log)
		if err != nil {
			return err
		}
		defer func() { _ = logger.Sync() }()
		logger.Debug("configuration loaded", zap.String("config", config.String()))

		if addr := cCtx.String(MetricsAddrFlag); addr != "" {
			server := metrics.NewMetricsServer(addr, nil, logger)
			go server.Listen()
			defer func() {
				ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				_ = server.Stop(ctx)
			}()
		}

		err = action(cCtx, &session{
			config: config,
			client: rpc.NewClient(config.Endpoints, logger),
			logger: logger,
		})

		if url := cCtx.String(MetricsPushURLFlag); url != "" {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if pushErr := metrics.Push(ctx, url, metrics.PushJob, nil); pushErr != nil {
				logger.Warn("failed to push metrics", zap.String("url", url), zap.Error(pushErr))
			}
		}
		return err
	}
}

func listEndpoints(cCtx *cli.Context, s *session) error {
	var reports []rpc.EndpointReport
	if cCtx.Bool(ProbeFlag) {
		var err error
		reports, err = s.client.CheckEndpoints(cCtx.Context, s.config.Endpoints.ChainID, &s.config.Retry)
		if err != nil {
			return err
		}
	} else {
		reports = s.client.Report(s.client.Providers())
	}

	w := tabwriter.NewWriter(cCtx.App.Writer, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "KEY\tURL\tHEALTH\tRESPONSE")
	for _, r := range reports {
		health, response := "unknown", "-"
		if r.Known {
			if r.Health.IsHealthy {
				health = "healthy"
				response = fmt.Sprintf("%dms", r.Health.ResponseTimeMs)
			} else {
				health = "unhealthy"
			}
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", r.Provider.Key, s.config.Endpoints.Redact(r.Provider.URL), health, response)
	}
	return w.Flush()
}

func connect(cCtx *cli.Context, s *session) error {
	conn, err := s.client.CreateConnectionWithFallback(cCtx.Context, s.config.Endpoints.ChainID, &s.config.Retry)
	if err != nil {
		return err
	}
	defer conn.Close()

	fmt.Fprintf(cCtx.App.Writer, "connected to %s (chain %d)\n", s.config.Endpoints.Redact(conn.GetURL()), conn.ExpectedChainID())
	return nil
}

func printBlockNumber(cCtx *cli.Context, s *session) error {
	number, err := rpc.ExecuteWithFallback(cCtx.Context, s.client,
		func(ctx context.Context, client ethclient.EthClientInterface) (uint64, error) {
			return client.BlockNumber(ctx)
		}, s.config.Endpoints.ChainID, &s.config.Retry)
	if err != nil {
		return err
	}

	fmt.Fprintln(cCtx.App.Writer, number)
	return nil
}
