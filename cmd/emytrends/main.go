package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"emytrends/internal/config"
	"emytrends/internal/http/handlers"
	applog "emytrends/internal/log"
	"emytrends/internal/repos"
	"emytrends/internal/services"
)

var (
	cfg    config.Config
	logger *zap.Logger
	fix    bool
)

var rootCmd = &cobra.Command{
	Use:   "emytrends",
	Short: "Emytrends storefront backend",
	Long: `Serves the Emytrends hair extension shop: catalog, cart, orders,
accounts and the admin dashboard API.

Configuration comes from EMY_* environment variables.
Run without a subcommand to start the HTTP server.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		if cfg, err = config.Load(); err != nil {
			return err
		}
		logger, err = applog.Setup(cfg.LogLevel, cfg.LogFile)
		return err
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
	RunE: func(cmd *cobra.Command, args []string) error { return serve(cmd.Context()) },
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Migrate, seed and start the HTTP server",
	RunE:  func(cmd *cobra.Command, args []string) error { return serve(cmd.Context()) },
}

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply pending schema migrations",
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := repos.Connect(cfg.DBDSN)
		if err != nil {
			return err
		}
		defer db.Close()
		return repos.Migrate(db)
	},
}

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Insert the demo accounts, catalog and blog posts",
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := repos.Connect(cfg.DBDSN)
		if err != nil {
			return err
		}
		defer db.Close()
		if err := repos.Migrate(db); err != nil {
			return err
		}
		return repos.Seed(db)
	},
}

var reconcileCmd = &cobra.Command{
	Use:   "reconcile-addresses",
	Short: "Report users without exactly one default address",
	Long: `Lists every user whose address book has no default address or more
than one. With --fix the most recently updated candidate becomes the
single default.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := repos.Connect(cfg.DBDSN)
		if err != nil {
			return err
		}
		defer db.Close()
		counts, err := services.NewAddressService(repos.NewAddressRepo(db)).Reconcile(cmd.Context(), fix)
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		for _, c := range counts {
			fmt.Fprintf(out, "%s\t%d\n", c.UserID, c.Defaults)
		}
		fmt.Fprintf(out, "%d user(s) out of line", len(counts))
		if fix && len(counts) > 0 {
			fmt.Fprint(out, ", fixed")
		}
		fmt.Fprintln(out)
		return nil
	},
}

func serve(ctx context.Context) error {
	logger.Info("config", zap.Any("settings", cfg.Fields()))

	db, err := repos.OpenDB(cfg.DBDSN)
	if err != nil {
		return err
	}
	defer db.Close()

	deps, err := handlers.NewDeps(db, cfg)
	if err != nil {
		return err
	}
	app := handlers.NewApp(deps, handlers.OptionsFrom(cfg))
	logger.Info("media", zap.String("dir", deps.Store.Root), zap.String("url", deps.Store.BaseURL))

	errc := make(chan error, 1)
	go func() { errc <- app.Listen(":" + cfg.Port) }()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}
	logger.Info("shutdown")
	sctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return app.ShutdownWithContext(sctx)
}

func init() {
	reconcileCmd.Flags().BoolVar(&fix, "fix", false, "elect a single default for each reported user")
	rootCmd.AddCommand(serveCmd, migrateCmd, seedCmd, reconcileCmd)
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}
