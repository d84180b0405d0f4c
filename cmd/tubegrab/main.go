package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/fatih/color"
	"github.com/joho/godotenv"
	"github.com/labstack/echo/v5"
	"github.com/spf13/cobra"

	"github.com/tubegrab/tubegrab/internal/api"
	"github.com/tubegrab/tubegrab/internal/app"
	"github.com/tubegrab/tubegrab/internal/cookies"
	"github.com/tubegrab/tubegrab/internal/infra/config"
	"github.com/tubegrab/tubegrab/internal/infra/logger"
	"github.com/tubegrab/tubegrab/internal/progress"
	"github.com/tubegrab/tubegrab/internal/retention"
	"github.com/tubegrab/tubegrab/internal/session"
	"github.com/tubegrab/tubegrab/internal/store"
	"github.com/tubegrab/tubegrab/internal/ytdlp"
)

var cfgPath string

func main() {
	rootCmd := &cobra.Command{
		Use:           "tubegrab",
		Short:         "HTTP backend for downloading video/audio renditions via yt-dlp",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run()
		},
	}
	rootCmd.PersistentFlags().StringVarP(&cfgPath, "config", "c", "", "path to config.yaml (optional)")

	if err := rootCmd.Execute(); err != nil {
		color.Red("Error: %v", err)
		os.Exit(1)
	}
}

func run() error {
	// .env is optional; deployments can set TUBEGRAB_* vars directly
	_ = godotenv.Load()

	cfg, err := config.Load(cfgPath)
	if err != nil {
		return err
	}

	log, err := logger.New(cfg.Log.Path, logger.ParseLevel(cfg.Log.Level), cfg.Log.IncludeStdout)
	if err != nil {
		return fmt.Errorf("failed to open log file: %w", err)
	}

	for _, dir := range []string{cfg.Download.Dir, cfg.Download.CacheDir} {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create %s: %w", dir, err)
		}
	}

	engine := ytdlp.NewClient(cfg.Engine.Binary, cfg.Engine.SocketTimeout)
	if err := engine.Check(); err != nil {
		return err
	}

	appCtx := app.NewContext(cfg, log)
	appCtx.Extractor = engine
	appCtx.Progress = progress.NewStore()
	appCtx.Sessions = session.NewRunner(appCtx.Progress, cfg.Download.Dir, cfg.Download.GraceDelay, log)
	appCtx.Cookies = cookies.NewFileStore(cfg.Cookies.FilePath, cfg.Download.CacheDir)
	appCtx.FFmpegAvailable = ytdlp.FFmpegAvailable()

	if !appCtx.FFmpegAvailable {
		log.Warn("ffmpeg not found in PATH; merged video and mp3 transcoding will fail")
	}

	if cfg.History.Enabled {
		db, err := store.NewPersistentStore(cfg.History.SQLitePath)
		if err != nil {
			return err
		}
		defer db.Close()
		appCtx.History = db
	}

	// Setup Signal Handling for Graceful Shutdown
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if cfg.Retention.Enabled {
		sweeper := retention.NewSweeper(cfg.Download.Dir, cfg.Retention.Interval, cfg.Retention.MaxAge, log)
		go sweeper.Start(ctx)
	} else {
		log.Info("Retention sweeper disabled; downloaded files are kept until manually removed")
	}

	e := echo.New()
	api.RegisterRoutes(e, appCtx)

	addr := ":" + cfg.Server.Port
	srv := &http.Server{Addr: addr, Handler: e}

	color.Green("tubegrab listening on %s", addr)
	log.Info("Server starting on %s", addr)

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	log.Info("Shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	return srv.Shutdown(shutdownCtx)
}
