package main

import (
	"context"
	"net"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/emma-community/emma-portal-proxy/internal/apiserver"
	"github.com/emma-community/emma-portal-proxy/internal/config"
	"github.com/emma-community/emma-portal-proxy/internal/emma"
	"github.com/emma-community/emma-portal-proxy/internal/service"
	"github.com/emma-community/emma-portal-proxy/pkg/log"
)

func main() {
	cfg, err := config.New()
	if err != nil {
		zap.S().Fatalw("reading configuration", "error", err)
	}

	logger := log.InitLog(log.ParseLevel(cfg.Service.LogLevel))
	defer func() { _ = logger.Sync() }()
	undo := zap.ReplaceGlobals(logger)
	defer undo()

	zap.S().Info("Starting emma portal proxy")
	defer zap.S().Info("Emma portal proxy stopped")

	if err := cfg.Validate(); err != nil {
		zap.S().Fatalw("invalid configuration", "error", err)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGHUP, syscall.SIGTERM, syscall.SIGQUIT)
	defer cancel()

	tokenStore := emma.NewTokenStore()
	factory := emma.NewClientFactory(cfg.Emma.BaseURL, tokenStore)
	tokenManager := emma.NewTokenManager(
		factory,
		tokenStore,
		cfg.Emma.ClientID,
		cfg.Emma.ClientSecret,
		time.Duration(cfg.Service.RefreshMarginSeconds)*time.Second,
	)
	go tokenManager.Run(ctx)

	cloudService := service.NewCloudService(service.ClientsFromFactory(factory))

	go func() {
		listener, err := newListener(cfg.Service.Address)
		if err != nil {
			zap.S().Fatalw("creating listener", "error", err)
		}

		server := apiserver.New(cfg, cloudService, tokenStore, listener)
		if err := server.Run(ctx); err != nil {
			zap.S().Fatalw("running api server", "error", err)
		}
		cancel()
	}()

	go func() {
		listener, err := newListener(cfg.Service.MetricsAddress)
		if err != nil {
			zap.S().Fatalw("creating metrics listener", "error", err)
		}

		metricsServer := apiserver.NewMetricServer(cfg.Service.MetricsAddress, listener)
		if err := metricsServer.Run(ctx); err != nil {
			zap.S().Fatalw("running metrics server", "error", err)
		}
		cancel()
	}()

	<-ctx.Done()
}

func newListener(address string) (net.Listener, error) {
	if address == "" {
		address = "localhost:0"
	}
	return net.Listen("tcp", address)
}
