// Package cli provides the cobra commands of the storefront binary.
package cli

import (
	"context"
	"fmt"
	"text/tabwriter"
	"time"

	gfshutdown "github.com/gelmium/graceful-shutdown"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"storefront/internal/config"
	"storefront/internal/domain"
	"storefront/internal/http/handlers"
	applog "storefront/internal/log"
	"storefront/internal/repos"
	"storefront/internal/services"
)

const shutdownTimeout = 15 * time.Second

type options struct {
	configFile string
	dbDSN      string
	cfg        config.Config
}

func Execute() error {
	return NewRootCmd().Execute()
}

func NewRootCmd() *cobra.Command {
	opts := &options{}
	root := &cobra.Command{
		Use:           "storefront",
		Short:         "Product catalog with search, category filter, price sort and cart",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			var err error
			if opts.configFile != "" {
				opts.cfg, err = config.LoadFile(opts.configFile)
			} else {
				opts.cfg, err = config.Load()
			}
			if err != nil {
				return err
			}
			if opts.dbDSN != "" {
				opts.cfg.DBDSN = opts.dbDSN
			}
			return nil
		},
	}
	root.PersistentFlags().StringVar(&opts.configFile, "config", "", "path to a TOML config file")
	root.PersistentFlags().StringVar(&opts.dbDSN, "db", "", "sqlite DSN holding the catalog (overrides config)")

	root.AddCommand(newServeCmd(opts), newBrowseCmd(opts))
	return root
}

func loadCatalog(dsn string) (*services.CatalogService, func() error, error) {
	db, err := repos.OpenDB(dsn)
	if err != nil {
		return nil, nil, err
	}
	svc, err := services.NewCatalogService(repos.NewProductRepo(db))
	if err != nil {
		_ = db.Close()
		return nil, nil, err
	}
	return svc, db.Close, nil
}

func newServeCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve the catalog page and JSON API",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := opts.cfg
			logger, closeLog, err := applog.Setup(applog.Options{Level: cfg.LogLevel, Format: cfg.LogFormat, File: cfg.LogFile})
			if err != nil {
				return fmt.Errorf("logger: %w", err)
			}
			defer func() { _ = closeLog() }()
			logger.Info("config.loaded",
				zap.String("env", cfg.Env),
				zap.String("port", cfg.Port),
				zap.String("db_dsn", cfg.DBDSN),
				zap.String("templates_dir", cfg.TemplatesDir),
				zap.Duration("session_ttl", cfg.SessionTTL),
			)

			catalogSvc, closeDB, err := loadCatalog(cfg.DBDSN)
			if err != nil {
				return err
			}
			// The catalog is in memory from here on.
			if err := closeDB(); err != nil {
				logger.Warn("db.close", zap.Error(err))
			}
			logger.Info("catalog.loaded", zap.Int("products", catalogSvc.Catalog.Len()))

			sessions := services.NewSessionStore(catalogSvc.Catalog, cfg.SessionTTL)
			app := handlers.NewApp(cfg, handlers.NewDeps(catalogSvc, sessions))
			go func() {
				if err := app.Listen(cfg.Addr()); err != nil {
					logger.Error("server.listen", zap.Error(err))
				}
			}()

			wait := gfshutdown.GracefulShutdown(
				context.Background(),
				shutdownTimeout,
				map[string]gfshutdown.Operation{
					"http": func(ctx context.Context) error {
						logger.Info("server.shutdown")
						return app.ShutdownWithContext(ctx)
					},
				},
			)
			if code := <-wait; code != 0 {
				return fmt.Errorf("shutdown finished with exit code %d", code)
			}
			return nil
		},
	}
}

func newBrowseCmd(opts *options) *cobra.Command {
	var query, category, sort string
	cmd := &cobra.Command{
		Use:   "browse",
		Short: "Print the catalog filtered and sorted like the catalog page",
		RunE: func(cmd *cobra.Command, args []string) error {
			catalogSvc, closeDB, err := loadCatalog(opts.cfg.DBDSN)
			if err != nil {
				return err
			}
			defer func() { _ = closeDB() }()

			products := catalogSvc.Search(domain.Criteria{
				Query:    query,
				Category: category,
				Sort:     domain.ParseSortOrder(sort),
			})
			out := cmd.OutOrStdout()
			if len(products) == 0 {
				fmt.Fprintln(out, "No products found matching your criteria.")
				return nil
			}
			w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tNAME\tCATEGORY\tPRICE\tRATING")
			for _, p := range products {
				fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%.1f\n", p.ID, p.Name, p.Category, p.Price.StringFixed(2), p.Rating)
			}
			return w.Flush()
		},
	}
	cmd.Flags().StringVarP(&query, "query", "q", "", "case-insensitive text matched against name and description")
	cmd.Flags().StringVarP(&category, "category", "c", domain.CategoryAll, "category label, or All")
	cmd.Flags().StringVarP(&sort, "sort", "s", "none", "none, low-to-high or high-to-low")
	return cmd
}
