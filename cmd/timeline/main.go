package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/klabast/wb-services/timeline/internal/app"
	"github.com/klabast/wb-services/timeline/internal/commands"
)

func main() {
	// Check for subcommands
	if len(os.Args) > 1 {
		switch os.Args[1] {
		case app.ModeList:
			commands.List(os.Args[2:])
			return
		case app.ModeTUI:
			commands.TUI(os.Args[2:])
			return
		case app.ModeTheme:
			commands.Theme(os.Args[2:])
			return
		case app.ModeServe:
			os.Args = append(os.Args[:1], os.Args[2:]...)
		}
	}

	// Parse flags
	configPath := flag.String("config", app.ConfigPath(), "Path to YAML config file (env "+app.ConfigEnv+")")
	listen := flag.String("listen", "", "Address to listen on (overrides config)")
	source := flag.String("source", "", "Event document: file path or http(s) URL (overrides config)")
	flag.Parse()

	cfg, err := app.LoadConfig(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if *listen != "" {
		cfg.Server.ListenAddress = *listen
	}
	if *source != "" {
		cfg.Source.Location = *source
	}

	srv := app.NewServer(cfg, cfg.NewSource())

	// A failed load is rendered as the timeline error state, not fatal
	loadCtx, cancelLoad := context.WithTimeout(context.Background(), cfg.Source.Timeout)
	_ = srv.Reload(loadCtx)
	cancelLoad()

	go func() {
		log.Printf("Starting timeline in %s mode on http://localhost%s", app.ModeServe, cfg.Server.ListenAddress)
		log.Printf("Event source: %s", cfg.Source.Location)
		if err := srv.Serve(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal(err)
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM, syscall.SIGHUP)
	for sig := range sigCh {
		if sig == syscall.SIGHUP {
			log.Println("Reloading events...")
			ctx, cancel := context.WithTimeout(context.Background(), cfg.Source.Timeout)
			_ = srv.Reload(ctx)
			cancel()
			continue
		}
		break
	}

	log.Println("shutting down...")
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Printf("Error during shutdown: %v", err)
	}
}
