package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	portssvc "github.com/SscSPs/mandi_ledger_app/internal/core/ports/services"
	"github.com/SscSPs/mandi_ledger_app/internal/core/services"
	"github.com/SscSPs/mandi_ledger_app/internal/platform/config"
	"github.com/SscSPs/mandi_ledger_app/internal/platform/logger"
	"github.com/SscSPs/mandi_ledger_app/internal/platform/storage"
	"github.com/alecthomas/kong"
)

var (
	// Version is set via ldflags when building.
	Version = "dev"

	cli struct {
		Version kong.VersionFlag `help:"Show version information"`
		Commands
	}
)

// Globals carries what every command needs. The config is loaded once before dispatch.
type Globals struct {
	Verbose bool `help:"Log at debug level to stderr." short:"v"`

	cfg *config.Config
}

// withServices opens the configured store, runs fn against the service container and closes the store.
func (g *Globals) withServices(fn func(ctx context.Context, svc *portssvc.ServiceContainer) error) error {
	ctx := context.Background()
	store, err := storage.Open(ctx, g.cfg, false)
	if err != nil {
		return fmt.Errorf("failed to open ledger storage: %w", err)
	}
	defer store.Close()

	return fn(ctx, services.NewServiceContainer(g.cfg, store.Repos, slog.Default()))
}

func main() {
	ctx := kong.Parse(&cli,
		kong.Vars{
			"version": Version,
		},
		kong.Name("mandictl"),
		kong.Description("Record and report mandi purchases and sales from the command line."),
		kong.UsageOnError(),
		kong.Bind(&cli.Globals),
	)

	cfg, err := config.LoadConfig()
	ctx.FatalIfErrorf(err)
	cli.Globals.cfg = cfg

	level := cfg.LogLevel
	if cli.Verbose {
		level = slog.LevelDebug
	}
	// CLI output goes to stdout, logs stay on stderr.
	slog.SetDefault(logger.New(false, level, os.Stderr))

	err = ctx.Run()
	ctx.FatalIfErrorf(err)
}
