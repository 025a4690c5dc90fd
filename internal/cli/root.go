// Package cli implements the dairy command line reports.
package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/mamadbah2/dairy/internal/config"
	"github.com/mamadbah2/dairy/internal/repository"
	"github.com/mamadbah2/dairy/internal/repository/backends"
	"github.com/mamadbah2/dairy/internal/service/dashboard"
	"github.com/mamadbah2/dairy/pkg/logger"
)

// App holds the state shared by every subcommand.
type App struct {
	envFile  string
	logLevel string
	out      io.Writer

	// openFetcher is swapped in tests.
	openFetcher func(ctx context.Context, cfg *config.Config, logger *zap.Logger) (repository.Fetcher, backends.CloseFunc, error)

	logger  *zap.Logger
	fetcher repository.Fetcher
	closeFn backends.CloseFunc
}

// Run executes the dairy command tree with args, writing reports to out.
// Backends opened for the command are always released.
func Run(ctx context.Context, out io.Writer, args []string) error {
	app := &App{out: out, openFetcher: openCatalog}
	return app.run(ctx, args)
}

func (a *App) run(ctx context.Context, args []string) error {
	cmd := a.rootCmd()
	cmd.SetArgs(args)
	cmd.SetOut(a.out)

	err := cmd.ExecuteContext(ctx)
	if cerr := a.teardown(context.WithoutCancel(ctx)); cerr != nil && err == nil {
		err = cerr
	}
	return err
}

func (a *App) rootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "dairy",
		Short:         "Farm dashboard reports from the command line",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd.Context())
		},
	}

	cmd.PersistentFlags().StringVar(&a.envFile, "env", "", "Path to an env file (default .env when present)")
	cmd.PersistentFlags().StringVar(&a.logLevel, "log-level", "", "Log level override (debug, info, warn, error)")

	cmd.AddCommand(
		newSummaryCmd(a),
		newCategoriesCmd(a),
		newSeriesCmd(a),
		newMilkCmd(a),
		newCowsCmd(a),
		newCowCmd(a),
		newChartCmd(a),
	)
	return cmd
}

func (a *App) setup(ctx context.Context) error {
	cfg, err := config.Load(a.envFile)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	level := cfg.LogLevel
	if a.logLevel != "" {
		level = a.logLevel
	}
	a.logger, err = logger.NewConsole(level)
	if err != nil {
		return err
	}

	a.fetcher, a.closeFn, err = a.openFetcher(ctx, cfg, a.logger)
	if err != nil {
		return err
	}
	return nil
}

func (a *App) teardown(ctx context.Context) error {
	if a.logger != nil {
		defer func() { _ = a.logger.Sync() }()
	}
	if a.closeFn == nil {
		return nil
	}
	closeFn := a.closeFn
	a.closeFn = nil
	return closeFn(ctx)
}

// session opens a throwaway dashboard session over the configured sources.
func (a *App) session(ctx context.Context) *dashboard.Session {
	return dashboard.NewManager(a.fetcher, a.logger.Named("svc.dashboard")).Create(ctx)
}

func openCatalog(ctx context.Context, cfg *config.Config, logger *zap.Logger) (repository.Fetcher, backends.CloseFunc, error) {
	return backends.Open(ctx, cfg, logger)
}
