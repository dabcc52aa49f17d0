package cli

import (
	"context"
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/matzehuels/flowviz/pkg/api"
	"github.com/matzehuels/flowviz/pkg/cache"
	"github.com/matzehuels/flowviz/pkg/observability"
	"github.com/matzehuels/flowviz/pkg/pipeline"
)

// serveOpts holds the command-line flags for the serve command.
type serveOpts struct {
	addr          string
	config        string
	redisAddr     string
	redisPassword string
	redisDB       int
	namespace     string
	backend       string
	noCache       bool
	maxBody       int64
}

// serveCommand creates the serve command running the HTTP render service.
func (c *CLI) serveCommand() *cobra.Command {
	opts := serveOpts{addr: api.DefaultAddr, maxBody: api.DefaultMaxBodyBytes, backend: backendFile}

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP render service",
		Long: `Run an HTTP server that renders records posted to /render.

Rendered artifacts are cached on disk by default. --cache-backend memory
keeps them in process memory; --redis shares them through Redis.
Prometheus metrics are served on /metrics.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			cfg, err := c.loadConfig(opts.config)
			if err != nil {
				return err
			}
			if err := cfg.Validate(); err != nil {
				return err
			}

			store, err := c.serveCache(ctx, opts)
			if err != nil {
				return err
			}

			var keyer cache.Keyer
			if opts.namespace != "" {
				keyer = cache.NewScopedKeyer(cache.NewDefaultKeyer(), opts.namespace+":")
			}
			runner := pipeline.NewRunner(store, keyer, c.Logger)
			defer runner.Close()

			observability.NewMetrics(prometheus.DefaultRegisterer).Install()

			server := api.New(runner, cfg,
				api.WithLogger(c.Logger),
				api.WithMaxBodyBytes(opts.maxBody))

			printKeyValue("Listening", StyleHighlight.Render("http://"+displayAddr(opts.addr)))
			return server.ListenAndServe(ctx, opts.addr)
		},
	}

	cmd.Flags().StringVar(&opts.addr, "addr", opts.addr, "listen address")
	cmd.Flags().StringVarP(&opts.config, "config", "c", "", "base configuration file (.toml, .yaml)")
	cmd.Flags().StringVar(&opts.redisAddr, "redis", "", "Redis address for the artifact cache (host:port)")
	cmd.Flags().StringVar(&opts.redisPassword, "redis-password", "", "Redis password")
	cmd.Flags().IntVar(&opts.redisDB, "redis-db", 0, "Redis database number")
	cmd.Flags().StringVar(&opts.namespace, "cache-namespace", "", "prefix artifact keys, letting several deployments share one cache")
	cmd.Flags().StringVar(&opts.backend, "cache-backend", opts.backend, "artifact cache backend: file, memory or redis")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable the artifact cache")
	cmd.Flags().Int64Var(&opts.maxBody, "max-body", opts.maxBody, "maximum records upload size in bytes")
	_ = cmd.MarkFlagFilename("config", "toml", "yaml", "yml")
	_ = cmd.RegisterFlagCompletionFunc("cache-backend", cobra.FixedCompletions(
		[]string{backendFile, backendMemory, backendRedis}, cobra.ShellCompDirectiveNoFileComp))

	return cmd
}

// displayAddr fills in localhost for listen addresses without a host.
func displayAddr(addr string) string {
	if len(addr) > 0 && addr[0] == ':' {
		return "localhost" + addr
	}
	return addr
}

// Artifact cache backends for serve.
const (
	backendFile   = "file"
	backendMemory = "memory"
	backendRedis  = "redis"
)

// serveCache opens the artifact cache selected by the serve flags. Setting
// --redis implies the redis backend.
func (c *CLI) serveCache(ctx context.Context, opts serveOpts) (cache.Cache, error) {
	if opts.noCache {
		return cache.NewNullCache(), nil
	}
	backend := opts.backend
	if opts.redisAddr != "" {
		backend = backendRedis
	}
	switch backend {
	case backendFile, "":
		return newCache(false)
	case backendMemory:
		printInfo("Caching in process memory")
		return cache.NewMemoryCache(), nil
	case backendRedis:
		if opts.redisAddr == "" {
			return nil, fmt.Errorf("cache backend redis needs --redis")
		}
		store, err := cache.NewRedisCache(ctx, cache.RedisConfig{
			Addr:     opts.redisAddr,
			Password: opts.redisPassword,
			DB:       opts.redisDB,
		})
		if err != nil {
			return nil, err
		}
		printInfo("Caching in Redis at %s", opts.redisAddr)
		return store, nil
	default:
		return nil, fmt.Errorf("unknown cache backend %q (want file, memory or redis)", backend)
	}
}
