package server

import (
	"flag"
	"net/http"
	"os"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/realchain/ledger/errors"
	"github.com/tendermint/tendermint/abci/server"
	abci "github.com/tendermint/tendermint/abci/types"
	cmn "github.com/tendermint/tendermint/libs/common"
	"github.com/tendermint/tendermint/libs/log"
)

const (
	flagBind    = "bind"
	flagDebug   = "debug"
	flagMetrics = "metrics"
)

// AppGenerator lets us lazily initialize app, using home dir
// and logger potentially initialized with other flags
type AppGenerator func(home string, logger log.Logger, debug bool) (abci.Application, error)

// parseStartFlags returns the configuration with the command line values
// applied on top.
func parseStartFlags(cfg Config, args []string) (Config, error) {
	startFlags := flag.NewFlagSet("start", flag.ContinueOnError)
	startFlags.StringVar(&cfg.Bind, flagBind, cfg.Bind, "address server listens on")
	startFlags.StringVar(&cfg.Metrics, flagMetrics, cfg.Metrics, "address serving prometheus metrics, empty to disable")
	startFlags.BoolVar(&cfg.Debug, flagDebug, cfg.Debug, "call stack returned on error")
	if err := startFlags.Parse(args); err != nil {
		return cfg, errors.Wrap(errors.ErrInput, err.Error())
	}
	return cfg, cfg.Validate()
}

// StartCmd loads the configuration from the home directory, starts the
// ABCI server and blocks until the process is terminated.
func StartCmd(gen AppGenerator, home string, args []string) error {
	cfg, err := LoadConfig(home)
	if err != nil {
		return err
	}
	cfg, err = parseStartFlags(cfg, args)
	if err != nil {
		return err
	}
	logger, err := NewLogger(cfg.Log, os.Stdout)
	if err != nil {
		return err
	}
	logger = logger.With("module", "escrowd")

	stop, err := startServer(gen, logger, home, cfg)
	if err != nil {
		return err
	}
	cmn.TrapSignal(logger, stop)

	// Wait forever
	select {}
}

// startServer runs the ABCI server and the metrics endpoint in the
// background. The returned function shuts both down.
func startServer(gen AppGenerator, logger log.Logger, home string, cfg Config) (func(), error) {
	app, err := gen(home, logger, cfg.Debug)
	if err != nil {
		return nil, errors.Wrap(err, "cannot create application")
	}

	logger.Info("Starting ABCI app", "bind", cfg.Bind)
	svr, err := server.NewServer(cfg.Bind, "socket", app)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrInput, "cannot create listener: %s", err)
	}
	svr.SetLogger(logger.With("module", "abci-server"))
	if err := svr.Start(); err != nil {
		return nil, errors.Wrapf(errors.ErrInput, "cannot start server: %s", err)
	}

	var metrics *http.Server
	if cfg.Metrics != "" {
		mux := http.NewServeMux()
		mux.Handle("/metrics", promhttp.Handler())
		metrics = &http.Server{Addr: cfg.Metrics, Handler: mux}
		go func() {
			logger.Info("Serving metrics", "addr", cfg.Metrics)
			if err := metrics.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				logger.Error("Metrics server failed", "err", err)
			}
		}()
	}

	stop := func() {
		if err := svr.Stop(); err != nil {
			logger.Error("Cannot stop ABCI server", "err", err)
		}
		if metrics != nil {
			if err := metrics.Close(); err != nil {
				logger.Error("Cannot stop metrics server", "err", err)
			}
		}
	}
	return stop, nil
}
