package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mhersche/isoline/internal/server"
	"github.com/mhersche/isoline/pkg/cache"
	"github.com/mhersche/isoline/pkg/pipeline"
	"github.com/mhersche/isoline/pkg/store"
)

// serveOpts holds the command-line flags for the serve command.
type serveOpts struct {
	addr      string
	redisAddr string
	redisPass string
	redisDB   int
	mongoURI  string
	mongoDB   string
	noCache   bool
}

// serveCommand creates the serve command for running the HTTP API.
func (c *CLI) serveCommand() *cobra.Command {
	opts := serveOpts{
		addr:      c.Config.Server.Addr,
		redisAddr: c.Config.Server.RedisAddr,
		mongoURI:  c.Config.Server.MongoURI,
		mongoDB:   c.Config.Server.MongoDB,
	}

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		Long: `Run the HTTP API for tracing fields and persisting contour sets.

Without --redis the trace cache falls back to the local file cache, and
without --mongo-uri contour sets are held in memory for the lifetime of
the process.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runServe(cmd.Context(), &opts)
		},
	}

	cmd.Flags().StringVar(&opts.addr, "addr", opts.addr, "listen address")
	cmd.Flags().StringVar(&opts.redisAddr, "redis", opts.redisAddr, "redis address for the trace cache (e.g. localhost:6379)")
	cmd.Flags().StringVar(&opts.redisPass, "redis-password", "", "redis password")
	cmd.Flags().IntVar(&opts.redisDB, "redis-db", 0, "redis database number")
	cmd.Flags().StringVar(&opts.mongoURI, "mongo-uri", opts.mongoURI, "mongodb connection URI for the set store")
	cmd.Flags().StringVar(&opts.mongoDB, "mongo-db", opts.mongoDB, "mongodb database name")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable the trace cache")

	return cmd
}

// runServe wires the cache, store, and runner, then serves until ctx is
// cancelled.
func (c *CLI) runServe(ctx context.Context, opts *serveOpts) error {
	ca, err := c.serverCache(ctx, opts)
	if err != nil {
		return err
	}

	st, err := c.serverStore(ctx, opts)
	if err != nil {
		return err
	}
	defer func() {
		if err := st.Close(context.Background()); err != nil {
			c.Logger.Warnf("close store: %v", err)
		}
	}()

	runner := pipeline.NewRunner(ca, nil, c.Logger)
	defer runner.Close()

	srv := server.New(runner, st, c.Logger)
	return srv.ListenAndServe(ctx, opts.addr)
}

// serverCache selects the trace cache backend: redis when configured,
// the local file cache otherwise.
func (c *CLI) serverCache(ctx context.Context, opts *serveOpts) (cache.Cache, error) {
	if opts.noCache {
		return cache.NewNullCache(), nil
	}
	if opts.redisAddr != "" {
		ca, err := cache.NewRedisCache(ctx, opts.redisAddr, opts.redisPass, opts.redisDB)
		if err != nil {
			return nil, fmt.Errorf("connect redis %s: %w", opts.redisAddr, err)
		}
		c.Logger.Info("using redis cache", "addr", opts.redisAddr)
		return ca, nil
	}
	return newCache(false)
}

// serverStore selects the set store backend: mongodb when configured,
// in-memory otherwise.
func (c *CLI) serverStore(ctx context.Context, opts *serveOpts) (store.Store, error) {
	if opts.mongoURI != "" {
		st, err := store.NewMongoStore(ctx, opts.mongoURI, opts.mongoDB)
		if err != nil {
			return nil, fmt.Errorf("connect mongodb: %w", err)
		}
		c.Logger.Info("using mongodb store", "database", opts.mongoDB)
		return st, nil
	}
	c.Logger.Warn("no --mongo-uri given, contour sets are held in memory only")
	return store.NewMemoryStore(), nil
}
