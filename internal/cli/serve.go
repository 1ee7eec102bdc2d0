package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/cardwall/internal/api"
	"github.com/matzehuels/cardwall/pkg/cache"
	"github.com/matzehuels/cardwall/pkg/pipeline"
	"github.com/matzehuels/cardwall/pkg/store"
)

// apiKeyPrefix namespaces the API's snapshot cache keys away from CLI builds.
const apiKeyPrefix = "api:v1:"

// Session store backends for the serve command.
const (
	storeMemory = "memory"
	storeRedis  = "redis"
	storeMongo  = "mongo"
)

// validStores is the set of supported session store backends.
var validStores = map[string]bool{storeMemory: true, storeRedis: true, storeMongo: true}

// validateStore checks that a store backend name is valid.
func validateStore(name string) error {
	if !validStores[name] {
		return fmt.Errorf("invalid store: %q (must be one of: memory, redis, mongo)", name)
	}
	return nil
}

// serveOpts holds the command-line flags for the serve command.
type serveOpts struct {
	addr      string
	storeName string
	noCache   bool

	redis store.RedisConfig
	mongo store.MongoConfig
}

// serveCommand creates the serve command that runs the layout API.
func (c *CLI) serveCommand() *cobra.Command {
	opts := serveOpts{}

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the cardwall layout API",
		Long: `Run the cardwall layout API.

The server exposes stateless layout builds and stateful layout sessions
over HTTP. Sessions live in the selected store: the in-process memory
store for single-instance use, or Redis/MongoDB when sessions must be
shared between instances or survive restarts.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := validateStore(opts.storeName); err != nil {
				return err
			}
			return c.runServe(cmd.Context(), opts)
		},
	}

	cmd.Flags().StringVar(&opts.addr, "addr", api.DefaultAddr, "listen address")
	cmd.Flags().StringVar(&opts.storeName, "store", storeMemory, "session store: memory (default), redis, mongo")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable snapshot caching")
	cmd.Flags().StringVar(&opts.redis.Addr, "redis-addr", "localhost:6379", "redis address (store=redis)")
	cmd.Flags().StringVar(&opts.redis.Password, "redis-password", "", "redis password (store=redis)")
	cmd.Flags().IntVar(&opts.redis.DB, "redis-db", 0, "redis database number (store=redis)")
	cmd.Flags().StringVar(&opts.mongo.URI, "mongo-uri", "mongodb://localhost:27017", "mongodb connection string (store=mongo)")
	cmd.Flags().StringVar(&opts.mongo.Database, "mongo-db", "", "mongodb database name (store=mongo)")
	cmd.Flags().StringVar(&opts.mongo.Collection, "mongo-collection", "", "mongodb collection name (store=mongo)")

	return cmd
}

// runServe builds the store and runner, then serves until ctx is canceled.
func (c *CLI) runServe(ctx context.Context, opts serveOpts) error {
	st, err := c.newStore(ctx, opts)
	if err != nil {
		return fmt.Errorf("initialize store: %w", err)
	}
	defer st.Close()

	cch, err := newCache(opts.noCache)
	if err != nil {
		return fmt.Errorf("initialize cache: %w", err)
	}
	keyer := cache.NewScopedKeyer(cache.NewDefaultKeyer(), apiKeyPrefix)
	runner := pipeline.NewRunner(cch, keyer, c.Logger)
	defer runner.Close()

	srv := api.New(api.Config{Addr: opts.addr}, st, runner, c.Logger)

	printInfo("Serving cardwall API on %s", StyleHighlight.Render(opts.addr))
	printDetail("store: %s", opts.storeName)
	printDetail("press ctrl+c to stop")
	printNewline()

	return srv.ListenAndServe(ctx)
}

// newStore constructs the session store selected by --store.
func (c *CLI) newStore(ctx context.Context, opts serveOpts) (store.Store, error) {
	switch opts.storeName {
	case storeRedis:
		return store.NewRedisStore(ctx, opts.redis)
	case storeMongo:
		return store.NewMongoStore(ctx, opts.mongo)
	default:
		return store.NewMemoryStore(), nil
	}
}
