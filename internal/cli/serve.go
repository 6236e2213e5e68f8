package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/CursiveCrow/cadence/internal/web"
	"github.com/CursiveCrow/cadence/pkg/store"
)

// newServeCmd creates the serve command.
func newServeCmd(configPath *string) *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API server",
		Long: `Serve exposes the scheduling pipeline over HTTP.

Endpoints:
  POST /v1/validate    check a plan
  POST /v1/schedule    compute a schedule
  POST /v1/render      render the dependency graph as SVG
  /v1/schedules        save and retrieve named schedules
  GET  /healthz        liveness probe

The schedule cache uses Redis when configured, otherwise the local file
cache. Saved schedules persist in MongoDB when configured, otherwise in
process memory.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			logger := loggerFromContext(ctx)

			cfg, err := loadConfig(*configPath)
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			if addr == "" {
				addr = cfg.Server.Addr
			}
			if addr == "" {
				addr = ":8080"
			}

			runner, err := newRunner(ctx, cfg)
			if err != nil {
				return err
			}
			defer runner.Close()

			var st store.Store
			if cfg.Mongo.URI != "" {
				ms, err := store.NewMongoStore(ctx, store.MongoConfig{
					URI:        cfg.Mongo.URI,
					Database:   cfg.Mongo.Database,
					Collection: cfg.Mongo.Collection,
				})
				if err != nil {
					return err
				}
				defer ms.Close(ctx)
				st = ms
				logger.Info("using mongodb schedule store", "uri", cfg.Mongo.URI)
			} else {
				st = store.NewMemoryStore()
				logger.Warn("no mongodb configured, saved schedules are in-memory only")
			}

			server := web.NewServer(runner, st, logger)
			return server.ListenAndServe(addr)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default :8080)")

	return cmd
}
