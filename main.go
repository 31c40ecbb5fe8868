package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/bernhardbrugger/deepstock-bot/internal/service/analyst"
	"github.com/bernhardbrugger/deepstock-bot/internal/service/scanner"
	"github.com/bernhardbrugger/deepstock-bot/internal/service/scoring"
	"github.com/bernhardbrugger/deepstock-bot/ioc"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

func initViper() {

	// --config=./config/xxx.yaml
	file := pflag.String("config", "./config/config.yaml", "specify config file")
	pflag.Parse()

	viper.SetConfigFile(*file)
	if err := viper.ReadInConfig(); err != nil {
		slog.Warn("config file not loaded, using defaults", "file", *file, "error", err)
	}
}

func main() {
	initViper()

	cmd := pflag.Arg(0)
	switch cmd {
	case "scan":
		s, _ := buildScanner()
		result := s.Scan(context.Background())
		fmt.Printf("\n✅ Scan complete: %d notable trades found, %d alerts sent.\n",
			result.TradesFiltered, result.AlertsSent)
	case "watch":
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()
		s, interval := buildScanner()
		if err := s.Watch(ctx, interval); err != nil {
			panic(err)
		}
	case "config":
		os.Exit(printConfigStatus())
	default:
		fmt.Println("usage: deepstock-bot [--config FILE] <scan|watch|config>")
		os.Exit(1)
	}
}

func buildScanner() (*scanner.Scanner, time.Duration) {
	for _, issue := range ioc.ValidateConfig() {
		slog.Warn(issue)
	}

	cfg, interval := ioc.InitScanConfig()
	sources := ioc.InitSources()
	channels := ioc.InitChannels()

	opts := make([]scanner.Option, 0, 2)
	if llmSvc := ioc.InitLLM(); llmSvc != nil {
		opts = append(opts, scanner.WithAnalyst(analyst.NewService(llmSvc)))
	}
	if seenRepo, retention := ioc.InitSeenRepo(); seenRepo != nil {
		cfg.SeenRetention = retention
		opts = append(opts, scanner.WithSeenRepo(seenRepo))
	}

	return scanner.NewScanner(sources, scoring.NewEngine(), channels, cfg, opts...), interval
}

func printConfigStatus() int {
	mark := func(ok bool) string {
		if ok {
			return "✅ configured"
		}
		return "❌ not set"
	}
	optional := func(ok bool) string {
		if ok {
			return "✅ configured"
		}
		return "⚪ not set (optional)"
	}

	hasFmp := viper.GetString("sources.fmp_api_key") != ""
	hasFinnhub := viper.GetString("sources.finnhub_api_key") != ""
	hasLLM := ioc.InitLLM() != nil

	cfg, interval := ioc.InitScanConfig()

	fmt.Println("\n🤖 deepstock-bot Configuration Status")
	fmt.Println("=============================================")
	fmt.Println("\n📡 Data Sources:")
	fmt.Printf("  FMP API:         %s\n", mark(hasFmp))
	fmt.Printf("  Finnhub API:     %s\n", mark(hasFinnhub))
	fmt.Println("  SEC EDGAR:       ✅ no key needed")
	fmt.Println("\n🧠 AI Provider:")
	fmt.Printf("  Provider:        %s\n", optional(hasLLM))
	if hasLLM {
		fmt.Printf("  Active provider: %s (%s)\n",
			viper.GetString("llm.provider"), viper.GetString("llm.model"))
	}
	fmt.Println("\n📬 Alert Channels:")
	fmt.Printf("  Telegram:        %s\n", optional(ioc.HasTelegram()))
	fmt.Printf("  Email:           %s\n", optional(ioc.HasEmail()))
	fmt.Println("\n⚙️  Scan Settings:")
	fmt.Printf("  Interval:        %s\n", interval)
	fmt.Printf("  Min trade value: $%s\n", cfg.MinTradeValue.String())
	fmt.Printf("  Min score:       %.1f\n", cfg.MinScore)
	fmt.Printf("  Watchlist:       %v\n", cfg.Watchlist)

	issues := ioc.ValidateConfig()
	if len(issues) == 0 {
		fmt.Println("\n✅ All good! Ready to scan.")
		return 0
	}
	fmt.Println()
	for _, issue := range issues {
		fmt.Println(issue)
	}
	if !ioc.HasTelegram() && !ioc.HasEmail() {
		return 1
	}
	return 0
}
