package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"slices"
	"sync"
	"syscall"

	"sinhalanews/harvester/config"
	"sinhalanews/harvester/internal/adapter"
	"sinhalanews/harvester/internal/crawl"
	"sinhalanews/harvester/internal/store"
	"sinhalanews/harvester/logger"
	"sinhalanews/harvester/services/cache"
	"sinhalanews/harvester/services/publisher"

	"github.com/joho/godotenv"
)

func main() {
	// Load environment variables
	godotenv.Load()

	// Initialize logger first
	logger.Init()
	log := logger.Default

	sourceFlag := flag.String("source", "all", "source to harvest (hirunews, news_first, lankadeepa, itnnews, all)")
	categoryFlag := flag.String("category", "all", "category to harvest, or all")
	pagesFlag := flag.Int("pages", 0, "page budget per category (overrides MAX_PAGES)")
	flag.Parse()

	// Load and validate configuration
	cfg := config.LoadConfig()
	if *pagesFlag > 0 {
		cfg.MaxPages = *pagesFlag
	}
	if err := cfg.Validate(); err != nil {
		log.Fatal().Err(err).Msg("Invalid configuration")
	}

	log.Info().
		Str("environment", cfg.Environment).
		Str("source", *sourceFlag).
		Str("category", *categoryFlag).
		Int("max_pages", cfg.MaxPages).
		Msg("Starting harvest run")

	// Set up context cancelled on shutdown signals
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Initialize optional services
	services := initializeServices(ctx, &cfg)
	defer services.Cleanup()

	// Create site adapters and select the requested ones
	adapters := selectAdapters(adapter.NewAdapters(&cfg, services.Cache), *sourceFlag)
	if len(adapters) == 0 {
		log.Fatal().Str("source", *sourceFlag).Msg("No adapter matches the requested source")
	}

	seenStore := store.NewSeenSetStore(cfg.DataDir)
	persister := store.NewPersister(cfg.DataDir)

	// One worker per (source, category) partition; partitions share
	// no mutable state.
	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		total   crawl.Stats
		aborted bool
	)

	for _, a := range adapters {
		categories := a.Categories()
		if *categoryFlag != "all" {
			if !slices.Contains(categories, *categoryFlag) {
				log.Warn().Str("source", a.Source()).Str("category", *categoryFlag).
					Msg("Source does not serve category, skipping")
				continue
			}
			categories = []string{*categoryFlag}
		}

		for _, category := range categories {
			controller := crawl.New(
				a,
				seenStore,
				persister,
				services.Publisher,
				cfg.MaxPages,
				cfg.MinCandidatesPerPage,
				cfg.FetchDelay(),
			)

			wg.Add(1)
			go func(source, category string, controller *crawl.Controller) {
				defer wg.Done()

				stats, err := controller.Run(ctx, category)

				mu.Lock()
				defer mu.Unlock()
				total = total.Add(stats)
				if err != nil && ctx.Err() == nil {
					log.Error().Err(err).Str("source", source).Str("category", category).
						Msg("Partition aborted")
					aborted = true
				}
			}(a.Source(), category, controller)
		}
	}

	wg.Wait()

	if services.Publisher != nil {
		if err := services.Publisher.TrimStreams(); err != nil {
			log.Error().Err(err).Msg("Failed to trim streams")
		}
	}

	// Zero new articles is success, not failure.
	log.Info().
		Int("candidates", total.Candidates).
		Int("already_known", total.AlreadyKnown).
		Int("persisted", total.Persisted).
		Int("failed", total.Failed).
		Msg("Harvest run complete")

	if aborted {
		os.Exit(1)
	}
}

// Services holds the optional external services
type Services struct {
	Cache     cache.CacheService
	Publisher publisher.Publisher
}

// Cleanup closes the services that hold connections
func (s *Services) Cleanup() {
	if s.Publisher != nil {
		s.Publisher.Close()
	}
}

// initializeServices wires the block cache and the publisher; both
// are optional and stay nil when unconfigured.
func initializeServices(ctx context.Context, cfg *config.Config) *Services {
	services := &Services{}

	if cfg.MemcacheAddr != "" {
		services.Cache = cache.NewMemcacheService(cfg.MemcacheAddr)
		logger.Info("Connected to Memcache at %s", cfg.MemcacheAddr)
	}

	if cfg.RedisAddr != "" {
		services.Publisher = publisher.NewRedisPublisher(
			ctx,
			cfg.RedisAddr,
			cfg.RedisDB,
			cfg.RedisStream,
			cfg.RedisStreamMaxLength,
		)
		logger.Info("Connected to Redis at %s (DB: %d, Stream: %s)",
			cfg.RedisAddr, cfg.RedisDB, cfg.RedisStream)
	}

	return services
}

// selectAdapters filters the adapters to the requested source
func selectAdapters(adapters []adapter.SiteAdapter, source string) []adapter.SiteAdapter {
	if source == "all" {
		return adapters
	}
	var selected []adapter.SiteAdapter
	for _, a := range adapters {
		if a.Source() == source {
			selected = append(selected, a)
		}
	}
	return selected
}
