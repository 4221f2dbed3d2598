package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/alexanderramin/taskhub/internal/cli"
	"github.com/alexanderramin/taskhub/internal/config"
	"github.com/alexanderramin/taskhub/internal/gateway"
	"github.com/alexanderramin/taskhub/internal/prefs"
	"github.com/alexanderramin/taskhub/internal/reconcile"
	"github.com/alexanderramin/taskhub/internal/session"
	"github.com/mattn/go-isatty"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(cfg.DataDir, 0o755); err != nil {
		return fmt.Errorf("creating data dir: %w", err)
	}

	store, conn, err := prefs.Open(filepath.Join(cfg.DataDir, "taskhub.db"))
	if err != nil {
		return err
	}
	defer conn.Close()

	notify := &cli.Notifier{}
	guard := session.NewGuard(ctx, store, notify.LoggedOut)

	var observer gateway.Observer = gateway.NoopObserver{}
	if cfg.LogHTTP {
		observer = gateway.NewLogObserver(os.Stderr)
	}
	remote := gateway.NewClient(cfg.APIBase, guard, observer)

	rec := reconcile.New(remote, guard, store,
		reconcile.WithUndoWindow(cfg.UndoWindow),
		reconcile.WithOnChange(notify.Changed),
		reconcile.WithOnCommitError(notify.CommitFailed),
	)

	app := &cli.App{
		Config: &cfg,
		Prefs:  store,
		Guard:  guard,
		Remote: remote,
		Rec:    rec,
	}
	app.IsInteractive = func() bool {
		return isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
	}

	return cli.NewRootCmd(app, notify).Execute()
}
