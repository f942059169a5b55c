package cmd

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"flowswap/config"
	"flowswap/pkg/ledger"
	"flowswap/pkg/metrics"
	"flowswap/pkg/pricing"
	"flowswap/pkg/quote"
	"flowswap/pkg/route"
	"flowswap/pkg/server"
	"flowswap/pkg/swap"
	"flowswap/pkg/token"
	"flowswap/pkg/vault"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the quote engine HTTP server",
	Long: `Start the flowswap daemon: token registry, quote cache, swap executor
and the HTTP API.

With --dry-run (or FLOWSWAP_DRY_RUN=true) settlement goes through an
in-process simulator instead of Flow EVM, so no signing key is needed.

Examples:
  flowswap serve
  flowswap serve --dry-run
  FLOWSWAP_LISTEN_ADDR=:9090 flowswap serve`,
	RunE: runServe,
}

var dryRun bool

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().BoolVar(&dryRun, "dry-run", false, "Use a simulated settlement layer")
	if err := viper.BindPFlag("dry_run", serveCmd.Flags().Lookup("dry-run")); err != nil {
		panic(err)
	}
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger := newLogger(cfg.LogLevel)

	registry := token.NewRegistry(token.DefaultTokens())
	graph := token.NewGraph(token.DefaultPools())

	hub, ok := registry.BySymbol(cfg.HubSymbol)
	if !ok {
		logger.Error("hub token not in registry", "symbol", cfg.HubSymbol)
		os.Exit(1)
	}

	settlementCost, err := decimal.NewFromString(cfg.SettlementCostFLOW)
	if err != nil {
		logger.Error("invalid settlement cost", "value", cfg.SettlementCostFLOW, "error", err)
		os.Exit(1)
	}

	finder := route.NewFinder(graph, hub)
	builder := quote.NewBuilder(registry, finder, pricing.DefaultOracle(), settlementCost)
	cache := quote.NewCache(builder)
	store := swap.NewStore()
	m := metrics.New()

	var (
		ledgerClient ledger.Client
		scanner      *vault.Scanner
	)
	if cfg.DryRun {
		logger.Info("dry-run mode, using simulated settlement layer")
		ledgerClient = ledger.NewSimClient()
	} else {
		evm, err := ledger.NewEVMClient(ledger.EVMConfig{
			RPCURL:        cfg.RPCURL,
			ChainID:       cfg.ChainID,
			PrivateKey:    cfg.PrivateKey,
			RouterAddress: cfg.RouterAddress,
		}, logger)
		if err != nil {
			return err
		}
		defer evm.Close()

		chainID, reachable := evm.Probe(cmd.Context())
		logger.Info("settlement layer", "chainId", chainID, "reachable", reachable, "rpc", cfg.RPCURL)

		scanner, err = vault.NewScanner(evm.RawClient())
		if err != nil {
			return err
		}
		ledgerClient = evm
	}

	executor := swap.NewExecutor(cache, store, ledgerClient, m, logger)

	srv := server.New(server.Config{
		ListenAddr: cfg.ListenAddr,
		Registry:   registry,
		Cache:      cache,
		Executor:   executor,
		Store:      store,
		Ledger:     ledgerClient,
		Scanner:    scanner,
		Metrics:    m,
		Logger:     logger,
	})

	errCh := make(chan error, 1)
	go func() { errCh <- srv.Start() }()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return err
	case sig := <-stop:
		logger.Info("shutting down", "signal", sig.String())
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(ctx)
}

func newLogger(level string) *slog.Logger {
	var lvl slog.Level
	switch level {
	case "debug":
		lvl = slog.LevelDebug
	case "warn":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	default:
		lvl = slog.LevelInfo
	}
	return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: lvl}))
}
