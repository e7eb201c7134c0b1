package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/vitos/crypto_exchange_adapter/internal/config"
	"github.com/vitos/crypto_exchange_adapter/internal/infrastructure/exchange/hitbtc"
	"github.com/vitos/crypto_exchange_adapter/internal/infrastructure/logger"
	"github.com/vitos/crypto_exchange_adapter/internal/infrastructure/transport"
	"github.com/vitos/crypto_exchange_adapter/internal/web"
	"go.uber.org/zap"
)

func main() {
	configPath := flag.String("config", "config/config.yaml", "path to config file")
	flag.Parse()

	// 1. Load Config
	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// 2. Init Logger
	log, err := logger.NewLogger(cfg.Logging.Level, cfg.Logging.Encoding)
	if err != nil {
		fmt.Printf("Failed to init logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()
	log = log.With(zap.String("exchange", cfg.Exchange.Name))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// 3. Init Transport
	tr := transport.NewRestyTransport(transport.Config{
		Timeout:    cfg.Timeout(),
		RetryCount: cfg.Transport.RetryCount,
		RateLimit:  cfg.RateLimit(),
	}, log)

	// 4. Init Exchange (HitBTC)
	adapter := hitbtc.NewAdapter(tr, hitbtc.Options{
		APIKey:         cfg.Exchange.APIKey,
		APISecret:      cfg.Exchange.APISecret,
		BaseURL:        cfg.Exchange.RESTEndpoint,
		OrderCacheSize: cfg.Orders.CacheSize,
		Logger:         log,
	})
	if adapter.ID() != cfg.Exchange.Name {
		log.Fatal("Exchange mismatch", zap.String("adapter", adapter.ID()))
	}
	if _, err := adapter.LoadMarkets(ctx, false); err != nil {
		log.Fatal("Failed to load markets", zap.Error(err))
	}

	// 5. Init Web Server
	server := web.NewServer(cfg.Server.Port, adapter, log)

	// 6. Start Ticker Stream
	if len(cfg.Stream.Symbols) > 0 {
		stream := hitbtc.NewTickerStream(adapter, cfg.Exchange.WSEndpoint)
		stream.OnTicker(server.OnTicker)
		if err := stream.Subscribe(ctx, cfg.Stream.Symbols); err != nil {
			log.Fatal("Failed to subscribe", zap.Strings("symbols", cfg.Stream.Symbols), zap.Error(err))
		}
		go func() {
			if err := stream.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
				log.Error("Ticker stream stopped", zap.Error(err))
			}
		}()
	}

	// 7. Start Server
	go func() {
		if err := server.Start(); err != nil {
			log.Error("Server failed", zap.Error(err))
			stop()
		}
	}()

	// 8. Wait for Shutdown
	<-ctx.Done()

	log.Info("Shutting down...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("Shutdown failed", zap.Error(err))
	}
}
