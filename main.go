package main

import (
	"context"
	"embed"
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"mafia/internal/archive"
	"mafia/internal/botapi"
	"mafia/internal/config"
	"mafia/internal/engine/roles"
	"mafia/internal/lobby"
	"mafia/internal/server"
	"mafia/internal/telemetry"
)

//go:embed web/static
var static embed.FS

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "mafia: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	_ = godotenv.Load()

	cfg, err := config.ParseConfig(flag.CommandLine, os.Args[1:])
	if err != nil {
		return err
	}
	log, err := newLogger(cfg.Dev)
	if err != nil {
		return err
	}
	defer log.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdownTracing, err := telemetry.Setup(ctx, "mafia", cfg.OtelEndpoint)
	if err != nil {
		return fmt.Errorf("telemetry: %w", err)
	}
	defer func() {
		sctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		shutdownTracing(sctx)
	}()

	gameCfg, err := config.LoadGameConfig(cfg.GameConfig)
	if err != nil {
		return err
	}
	mgr := lobby.NewManager(gameCfg, roles.NewCatalog(), log)
	defer mgr.Close()

	var transcripts server.TranscriptSource
	if cfg.ArchiveDSN != "" {
		store, err := archive.Open(cfg.ArchiveDSN)
		if err != nil {
			return err
		}
		defer store.Close()
		mgr.OnStart(store.Hook(log))
		transcripts = store
	}

	sub, err := fs.Sub(static, "web/static")
	if err != nil {
		return fmt.Errorf("static fs: %w", err)
	}
	handlers := server.NewHandlers(mgr, transcripts, log)
	ui := server.New(cfg.Port, sub, handlers, log)

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error { return ui.Start(ctx) })
	if cfg.BotPort != 0 {
		bots := botapi.NewHandler(mgr, log)
		g.Go(func() error { return serveBots(ctx, cfg.BotPort, bots, log) })
	}
	return g.Wait()
}

func newLogger(dev bool) (*zap.Logger, error) {
	if dev {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}

func serveBots(ctx context.Context, port int, h *botapi.Handler, log *zap.Logger) error {
	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", port),
		Handler:           h.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		<-ctx.Done()
		sctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		srv.Shutdown(sctx)
	}()
	log.Info("bot api listening", zap.String("addr", srv.Addr))
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
