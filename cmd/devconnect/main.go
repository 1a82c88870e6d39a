package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/goliatone/go-devconnect/config"
	"github.com/goliatone/go-devconnect/logger"
	"github.com/goliatone/go-devconnect/repository"
	"github.com/goliatone/go-devconnect/server"
	"github.com/goliatone/go-print"
)

func main() {
	configPath := flag.String("config", "", "path to a YAML config file")
	flag.Parse()

	if err := run(*configPath); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(configPath string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	lgr := logger.New(logger.Options{
		Level:  cfg.Log.Level,
		Pretty: cfg.Log.Pretty,
	})

	if cfg.Debug {
		redacted := *cfg
		redacted.Auth.SigningKey = "***"
		redacted.Github.Token = ""
		lgr.Debug("config loaded", "config", print.MaybePrettyJSON(redacted))
	}

	ctx := context.Background()

	repos, err := repository.Open(ctx, repository.Options{
		Driver: cfg.Database.Driver,
		DSN:    cfg.Database.DSN,
		Name:   cfg.Database.Name,
		Debug:  cfg.Database.Debug,
	}, lgr.With("component", "repository"))
	if err != nil {
		return err
	}

	srv := server.New(cfg, repos, lgr)

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Listen()
	}()

	select {
	case err = <-errCh:
		lgr.Error("server stopped", "error", err)
	case sig := <-waitExitSignal():
		lgr.Info("shutting down", "signal", sig.String())
		shutdownCtx, cancel := context.WithTimeout(ctx, cfg.Server.ShutdownTimeout)
		defer cancel()
		if serr := srv.Shutdown(shutdownCtx); serr != nil {
			lgr.Error("shutdown failed", "error", serr)
		}
	}

	if cerr := repos.Close(ctx); cerr != nil {
		lgr.Error("closing storage failed", "error", cerr)
	}
	return err
}

func waitExitSignal() <-chan os.Signal {
	ch := make(chan os.Signal, 3)
	signal.Notify(ch,
		syscall.SIGINT,
		syscall.SIGQUIT,
		syscall.SIGTERM,
	)
	return ch
}
