package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/krwdesk/otc-trade-service/internal/client"
	"github.com/krwdesk/otc-trade-service/internal/config"
	deliveryhttp "github.com/krwdesk/otc-trade-service/internal/delivery/http"
	"github.com/krwdesk/otc-trade-service/internal/delivery/http/handlers"
	"github.com/krwdesk/otc-trade-service/internal/infrastructure/kafka"
	"github.com/krwdesk/otc-trade-service/internal/infrastructure/metrics"
	"github.com/krwdesk/otc-trade-service/internal/infrastructure/migrate"
	"github.com/krwdesk/otc-trade-service/internal/infrastructure/postgres"
	"github.com/krwdesk/otc-trade-service/internal/infrastructure/postgres/repository"
	"github.com/krwdesk/otc-trade-service/internal/usecase/escrow"
	"github.com/krwdesk/otc-trade-service/internal/usecase/reconcile"
	"github.com/krwdesk/otc-trade-service/internal/usecase/trade"
	"github.com/krwdesk/otc-trade-service/internal/usecase/wallet"
	"github.com/krwdesk/otc-trade-service/internal/usecase/walletid"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Printf("no .env file loaded: %v", err)
	}

	cfg := config.MustLoad()

	logger := mustLogger(cfg.Env)
	defer logger.Sync()

	db := postgres.MustInitDB(cfg)
	if err := migrate.RunMigrations(db, "migrations"); err != nil {
		logger.Fatal("migrations failed", zap.Error(err))
	}

	orderRepo := repository.NewDefaultOrderRepository(db)
	historyRepo := repository.NewDefaultHistoryRepository(db)

	executor := client.NewHTTPExecutorClient(
		cfg.ChainExecutor.BaseURL,
		cfg.ChainExecutor.APIKey,
		cfg.ChainExecutor.Timeout,
		logger,
	)

	publisher := kafka.NewTradePublisher(
		[]string{cfg.KafkaService.Host + ":" + cfg.KafkaService.Port},
		cfg.KafkaService.Topic,
	)
	defer publisher.Close()

	tradeMetrics := metrics.NewTradeMetrics()

	resolver := walletid.NewResolver(executor, logger)
	reconciler := reconcile.NewDefaultReconcileUsecase(historyRepo, executor, resolver, tradeMetrics, cfg.Asset, logger)
	escrowUsecase := escrow.NewDefaultEscrowUsecase(orderRepo)
	tradeUsecase := trade.NewDefaultTradeUsecase(orderRepo, reconciler, escrowUsecase, executor, publisher, tradeMetrics, cfg.Asset, logger)
	walletUsecase := wallet.NewDefaultWalletUsecase(executor, resolver, logger)

	router := deliveryhttp.NewRouter(
		handlers.NewTradeHandler(tradeUsecase, logger),
		handlers.NewReconcileHandler(reconciler, logger),
		handlers.NewWalletHandler(walletUsecase, resolver, escrowUsecase, logger),
		logger,
	)

	addr := fmt.Sprintf("%s:%s", cfg.HTTPServer.Host, cfg.HTTPServer.Port)
	server := &http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	go func() {
		logger.Info("http server listening", zap.String("addr", addr))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("http server failed", zap.Error(err))
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	logger.Info("shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		logger.Error("http shutdown failed", zap.Error(err))
	}

	logger.Info("stopped")
}

func mustLogger(env string) *zap.Logger {
	var (
		logger *zap.Logger
		err    error
	)
	if env == "prod" {
		logger, err = zap.NewProduction()
	} else {
		logger, err = zap.NewDevelopment()
	}
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	return logger
}
