package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"DowntimeIncome/internal/bot"
	"DowntimeIncome/internal/config"
	"DowntimeIncome/internal/engine"
	"DowntimeIncome/internal/ingest"
	"DowntimeIncome/internal/notifier"
	"DowntimeIncome/internal/recorder"
	"DowntimeIncome/internal/scheduler"
	"DowntimeIncome/internal/table"
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)
	log.Println("[INFO] DowntimeIncome bot starting...")

	// Load config
	cfgPath := "configs/config.yaml"
	if v := os.Getenv("CONFIG_PATH"); v != "" {
		cfgPath = v
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		log.Fatalf("[FATAL] load config: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("[FATAL] config validation: %v", err)
	}
	if err := cfg.ValidateTelegram(); err != nil {
		log.Fatalf("[FATAL] config validation: %v", err)
	}
	variant, err := cfg.Variant()
	if err != nil {
		log.Fatalf("[FATAL] resolve variant: %v", err)
	}
	log.Printf("[INFO] rule variant: %s", variant.Name)

	// Init recorder
	var rec recorder.Recorder
	if cfg.Database.SQLitePath != "" {
		sr, err := recorder.NewSQLiteRecorder(cfg.Database.SQLitePath)
		if err != nil {
			log.Printf("[WARN] init sqlite recorder failed, using noop: %v", err)
			rec = recorder.NewNoopRecorder()
		} else {
			rec = sr
			defer sr.Close()
		}
	} else {
		rec = recorder.NewNoopRecorder()
	}

	// Context for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Income table: start from the built-in table, then try the external source
	holder := table.NewHolder(nil)
	var ing *ingest.Ingestor
	if src := ingest.NewSource(cfg.Table.Source, cfg.Proxy); src != nil {
		ing = ingest.NewIngestor(src, holder, rec)
		if _, err := ing.Ingest(ctx); err != nil {
			log.Printf("[WARN] starting with the built-in table: %v", err)
		}
	}

	eng, err := engine.New(holder, variant, engine.WithCache(cfg.CacheSize()))
	if err != nil {
		log.Fatalf("[FATAL] init engine: %v", err)
	}

	// Init Telegram notifier
	tn := notifier.NewTelegramNotifier(cfg.Telegram.BotToken, cfg.Telegram.ChatID, cfg.Proxy)

	// Chat session
	var reloader bot.Reloader
	if ing != nil {
		reloader = ing
	}
	b := bot.New(eng, reloader, rec)
	if ing != nil {
		ing.OnSwap = b.TableChanged
	}

	// Init scheduler
	if ing != nil && cfg.Table.RefreshCron != "" {
		sched := scheduler.NewScheduler(ctx, ing)
		sched.Notify = func(text string) { tn.Publish(ctx, text) }
		if err := sched.RegisterRefresh(cfg.Table.RefreshCron); err != nil {
			log.Fatalf("[FATAL] register cron tasks: %v", err)
		}
		sched.Start()
		defer sched.Stop()
	}

	// Start Telegram polling
	go tn.StartPolling(ctx, b.HandleCommand)
	log.Println("[INFO] Telegram polling started")

	log.Println("[INFO] DowntimeIncome bot is running. Press Ctrl+C to stop.")

	// Wait for shutdown signal
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	log.Println("[INFO] shutdown signal received, stopping...")
	cancel()
	log.Println("[INFO] DowntimeIncome bot stopped")
}
