package main

import (
	"context"
	"errors"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/amsanchez/edgebot/config"
	"github.com/amsanchez/edgebot/internal/adapters/anthropic"
	"github.com/amsanchez/edgebot/internal/adapters/notify"
	"github.com/amsanchez/edgebot/internal/adapters/polymarket"
	"github.com/amsanchez/edgebot/internal/adapters/storage"
	"github.com/amsanchez/edgebot/internal/application/engine"
	"github.com/amsanchez/edgebot/internal/ports"
)

func main() {
	configPath := flag.String("config", "config/config.yaml", "path to config file")
	once := flag.Bool("once", false, "run one cycle and exit")
	demo := flag.Bool("demo", false, "synthetic activity, no network calls")
	verbose := flag.Bool("verbose", false, "set log level to debug")
	logFormat := flag.String("format", "", "log format: text|json (overrides config)")
	table := flag.Bool("table", false, "print full stats + ledger tables (default: compact 1-line)")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			slog.Error("failed to load config", "err", err, "path", *configPath)
			os.Exit(1)
		}
		cfg = config.Default()
	}

	if *verbose {
		cfg.Log.Level = "debug"
	}
	if *logFormat != "" {
		cfg.Log.Format = *logFormat
	}
	setupLogger(cfg.Log)

	slog.Info("edgebot starting",
		"config", *configPath,
		"interval", cfg.ScanInterval(),
		"demo", *demo,
		"once", *once,
		"auto_trading", cfg.Bot.AutoTrading,
		"survival_mode", cfg.Bot.SurvivalMode,
	)

	var journal *storage.Journal
	if cfg.Storage.DSN != "" && !*demo {
		journal, err = storage.NewJournal(cfg.Storage.DSN)
		if err != nil {
			slog.Error("failed to open journal", "err", err, "dsn", cfg.Storage.DSN)
			os.Exit(1)
		}
		defer journal.Close()
	}

	notifier := notify.NewConsole(*table)

	bot := engine.New(cfg, engine.Factories{
		Markets: func(b config.Bot, api config.APIConfig) ports.MarketProvider {
			return polymarket.NewClient(api.GammaBase, b.PolymarketAPIKey)
		},
		Predictor: func(b config.Bot, api config.APIConfig) ports.Predictor {
			return anthropic.NewClient(api.AnthropicBase, b.AnthropicAPIKey, b.AnthropicModel)
		},
	}, nil)

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if *demo {
		runDemo(ctx, bot, notifier, *once, cfg.ScanInterval())
		return
	}

	bot.Configure(cfg.Bot)
	bot.Start()

	run(ctx, bot, notifier, journal, *once, cfg.ScanInterval())

	bot.Stop()
	slog.Info("edgebot stopped cleanly")
}

// run drives the cycle loop: one iteration immediately, then one per tick
// until the context is cancelled.
func run(ctx context.Context, bot *engine.Engine, notifier *notify.Console, journal *storage.Journal, once bool, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		delta := bot.RunCycle(ctx)
		stats := bot.Stats()
		orders := bot.Orders()

		notifier.NotifyCycle(delta)
		notifier.NotifyStats(stats, orders)

		if journal != nil {
			if err := journal.RecordCycle(ctx, stats, delta); err != nil {
				slog.Warn("journal write failed", "err", err)
			}
			for _, order := range orders {
				if err := journal.RecordOrder(ctx, order); err != nil {
					slog.Warn("journal order write failed", "err", err, "order", order.ID)
				}
			}
		}

		if once {
			return
		}

		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}

// runDemo drives synthetic cycles so the output surface can be exercised
// without credentials.
func runDemo(ctx context.Context, bot *engine.Engine, notifier *notify.Console, once bool, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		stats, delta := bot.RunDemoCycle()

		notifier.NotifyCycle(delta)
		notifier.NotifyStats(stats, bot.Orders())

		if once {
			return
		}

		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}

func setupLogger(cfg config.LogConfig) {
	var level slog.Level
	switch cfg.Level {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: level}
	var handler slog.Handler
	if cfg.Format == "json" {
		handler = slog.NewJSONHandler(os.Stderr, opts)
	} else {
		handler = slog.NewTextHandler(os.Stderr, opts)
	}
	slog.SetDefault(slog.New(handler))
}
