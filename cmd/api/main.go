// Express Pay payments service.
//
// This is the main entry point. It wires up the gateway client, the billing
// service and the HTTP server, then blocks until shutdown.
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/itmedia/expresspay-payments/config"
	"github.com/itmedia/expresspay-payments/internal/api"
	"github.com/itmedia/expresspay-payments/internal/billing"
	"github.com/itmedia/expresspay-payments/internal/expresspay"
)

func main() {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	logger, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		logger.Fatal("configuration error", zap.Error(err))
	}

	signer, err := expresspay.NewSignatureProvider(
		cfg.ExpressPay.APISignature,
		cfg.ExpressPay.APISecret,
		cfg.ExpressPay.NotificationSignature,
		cfg.ExpressPay.NotificationSecret,
	)
	if err != nil {
		logger.Fatal("configuration error", zap.Error(err))
	}

	gateway := expresspay.NewClient(
		signer,
		cfg.ExpressPay.Token,
		cfg.ExpressPay.BaseURL,
		cfg.ExpressPay.Version,
		cfg.ExpressPay.ReturnURL,
		cfg.ExpressPay.FailURL,
	)

	service := billing.NewService(gateway, logger)
	handler := api.NewHandler(service, logger)
	router := api.SetupRouter(handler, logger, cfg.Server.GinMode)

	server := &http.Server{
		Addr:    ":" + cfg.Server.Port,
		Handler: router,
	}

	go func() {
		logger.Info("server listening",
			zap.String("addr", server.Addr),
			zap.String("gateway", cfg.ExpressPay.BaseURL))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("server error", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		logger.Error("shutdown error", zap.Error(err))
	}
}
