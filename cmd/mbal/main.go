package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"ReservoirBench/internal/calculator"
	"ReservoirBench/internal/config"
	"ReservoirBench/internal/history"
	"ReservoirBench/internal/session"
	"ReservoirBench/internal/workbench"
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)
	log.Println("[INFO] ReservoirBench mbal starting...")

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

	// Init run history
	var rec history.Recorder
	if cfg.History.SQLitePath != "" {
		sr, err := history.NewSQLiteRecorder(cfg.History.SQLitePath)
		if err != nil {
			log.Printf("[WARN] init sqlite history failed, using noop: %v", err)
			rec = history.NewNoopRecorder()
		} else {
			rec = sr
			defer sr.Close()
		}
	} else {
		rec = history.NewNoopRecorder()
	}

	sess := session.New(session.ToolMaterialBalance, calculator.FitOptions{
		MaxEvaluations: cfg.Solver.MaxEvaluations,
		Tolerance:      cfg.Solver.Tolerance,
	})
	w := workbench.New(sess, rec, cfg)

	// Context for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		log.Println("[INFO] shutdown signal received, stopping...")
		cancel()
	}()

	w.RunShell(ctx, os.Stdin, os.Stdout)
	log.Println("[INFO] ReservoirBench mbal stopped")
}
