package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/vitos/crypto_exchange_adapter/internal/config"
	"github.com/vitos/crypto_exchange_adapter/internal/infrastructure/exchange/hitbtc"
	"github.com/vitos/crypto_exchange_adapter/internal/infrastructure/transport"
)

func main() {
	symbol := flag.String("symbol", "BTC/USDT", "market to query")
	flag.Parse()

	// Load .env
	godotenv.Load()

	apiKey := os.Getenv(config.EnvAPIKey)
	apiSecret := os.Getenv(config.EnvAPISecret)

	tr := transport.NewRestyTransport(transport.Config{Timeout: 10 * time.Second}, nil)
	adapter := hitbtc.NewAdapter(tr, hitbtc.Options{APIKey: apiKey, APISecret: apiSecret})
	ctx := context.Background()

	fmt.Printf("Testing %s Interaction...\n", hitbtc.ExchangeName)
	fmt.Printf("Endpoint: %s\n", hitbtc.BaseURL)

	// 1. Load Markets
	markets, err := adapter.LoadMarkets(ctx, false)
	if err != nil {
		fmt.Printf("❌ Failed to load markets: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("✅ Loaded %d markets\n", len(markets))

	// 2. Check Public Endpoint (Ticker)
	ticker, err := adapter.FetchTicker(ctx, *symbol)
	if err != nil {
		fmt.Printf("❌ Failed to get ticker: %v\n", err)
	} else {
		fmt.Printf("✅ Ticker (%s): Bid=%s Ask=%s Last=%s\n", ticker.Symbol,
			ticker.Bid.Decimal, ticker.Ask.Decimal, ticker.Last.Decimal)
	}

	// 3. Check Private Endpoint (Balance)
	if apiKey == "" || apiSecret == "" {
		fmt.Printf("Skipping private checks: %s / %s not set\n", config.EnvAPIKey, config.EnvAPISecret)
		return
	}
	balances, err := adapter.FetchBalance(ctx)
	if err != nil {
		fmt.Printf("❌ Failed to get balance: %v\n", err)
		return
	}
	for code, b := range balances.Currencies {
		if b.Total.IsZero() {
			continue
		}
		fmt.Printf("✅ Balance %s: Free=%s Used=%s Total=%s\n", code, b.Free, b.Used, b.Total)
	}
}
