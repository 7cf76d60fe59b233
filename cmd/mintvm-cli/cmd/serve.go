// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package cmd

import (
	"context"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/ava-labs/avalanchego/api/metrics"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/nftmint/mintvm/config"
	"github.com/nftmint/mintvm/rpc"
	"github.com/nftmint/mintvm/server"
	"github.com/nftmint/mintvm/utils"
	"github.com/nftmint/mintvm/vm"
)

const metricsEndpoint = "/metrics"

var (
	configFile   string
	serveGenesis string
	allowedHosts []string
)

func initServeFlags() {
	flags := serveCmd.Flags()
	flags.StringVar(&configFile, "config", "", "node config (.json, .yaml or .yml)")
	flags.StringVar(&serveGenesis, "genesis-file", "genesis.json", "genesis file path")
	flags.StringSliceVar(&allowedHosts, "allowed-hosts", []string{"localhost"}, "hosts allowed to reach the API")
}

func loadConfig() (config.Config, error) {
	if len(configFile) == 0 {
		return config.NewConfig(), nil
	}
	return config.Load(configFile)
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Runs a mintvm node",
	RunE: func(*cobra.Command, []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		genesisBytes, err := os.ReadFile(serveGenesis)
		if err != nil {
			return err
		}

		logs := newLogFactory(cfg)
		defer logs.Close()
		log, err := logs.Make("mintvm")
		if err != nil {
			return err
		}

		registry := prometheus.NewRegistry()
		if err := registry.Register(collectors.NewGoCollector()); err != nil {
			return err
		}
		requests := prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "http_requests",
			Help: "number of API requests by status code and method",
		}, []string{"code", "method"})
		if err := registry.Register(requests); err != nil {
			return err
		}
		gatherer := metrics.NewPrefixGatherer()
		if err := gatherer.Register("node", registry); err != nil {
			return err
		}

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		node, err := vm.New(ctx, log, cfg, genesisBytes, vm.WithGatherer(gatherer))
		if err != nil {
			return err
		}
		defer func() {
			if err := node.Shutdown(context.Background()); err != nil {
				log.Error("shutdown failed", zap.Error(err))
			}
		}()

		handler, err := rpc.NewJSONRPCHandler(log, node)
		if err != nil {
			return err
		}
		listener, err := net.Listen("tcp", cfg.RPCAddress)
		if err != nil {
			return err
		}
		srv := server.New(
			log,
			listener,
			server.NewDefaultHTTPConfig(),
			cfg.CORSOrigins,
			allowedHosts,
			server.WrapperFunc(func(h http.Handler) http.Handler {
				return promhttp.InstrumentHandlerCounter(requests, h)
			}),
		)
		if err := srv.AddRoute(handler, rpc.BasePath, rpc.Endpoint); err != nil {
			return err
		}
		if err := srv.AddRoute(promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}), rpc.BasePath, metricsEndpoint); err != nil {
			return err
		}

		utils.Outf("{{green}}serving{{/}} %s%s%s\n", srv.Addr(), rpc.BasePath, rpc.Endpoint)
		g, gctx := errgroup.WithContext(ctx)
		g.Go(srv.Dispatch)
		g.Go(func() error {
			<-gctx.Done()
			log.Info("stopping server")
			return srv.Shutdown()
		})
		return g.Wait()
	},
}
