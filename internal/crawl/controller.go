package crawl

import (
	"context"
	"encoding/json"
	"time"

	"sinhalanews/harvester/internal/adapter"
	"sinhalanews/harvester/internal/article"
	"sinhalanews/harvester/internal/store"
	"sinhalanews/harvester/logger"
	"sinhalanews/harvester/services/publisher"
)

// Stats summarizes one partition's run.
type Stats struct {
	Candidates   int
	AlreadyKnown int
	Persisted    int
	Failed       int
}

// Add accumulates another partition's stats
func (s Stats) Add(o Stats) Stats {
	return Stats{
		Candidates:   s.Candidates + o.Candidates,
		AlreadyKnown: s.AlreadyKnown + o.AlreadyKnown,
		Persisted:    s.Persisted + o.Persisted,
		Failed:       s.Failed + o.Failed,
	}
}

// Controller drives pagination for one source and decides when new
// content is exhausted.
//
// Precondition: listings are reverse-chronological. The zero-progress
// early stop relies on it — "page N has nothing new" implies the same
// for page N+1. It does not hold for unordered listings.
type Controller struct {
	adapter    adapter.SiteAdapter
	seen       *store.SeenSetStore
	persister  *store.Persister
	publisher  publisher.Publisher
	maxPages   int
	minPerPage int
	delay      time.Duration
}

// New creates a controller. pub may be nil when publishing is
// disabled.
func New(
	a adapter.SiteAdapter,
	seen *store.SeenSetStore,
	persister *store.Persister,
	pub publisher.Publisher,
	maxPages int,
	minPerPage int,
	delay time.Duration,
) *Controller {
	return &Controller{
		adapter:    a,
		seen:       seen,
		persister:  persister,
		publisher:  pub,
		maxPages:   maxPages,
		minPerPage: minPerPage,
		delay:      delay,
	}
}

// Run crawls one (source, category) partition up to the page budget.
// Finding nothing new is a normal terminal state, not an error; only
// a failed durable write (or a failed seen-set save) is returned.
func (c *Controller) Run(ctx context.Context, category string) (Stats, error) {
	partition := store.Partition{Source: c.adapter.Source(), Category: category}
	log := logger.ForController(partition.Source, partition.Category)

	ids := c.seen.Load(partition)
	log.Info().Int("known", len(ids)).Int("max_pages", c.maxPages).Msg("Starting crawl")

	var stats Stats

	for page := 1; page <= c.maxPages; page++ {
		// A page's candidates are processed to completion once
		// fetched; cancellation only applies between pages.
		if err := ctx.Err(); err != nil {
			if saveErr := c.seen.Save(partition, ids); saveErr != nil {
				log.Error().Err(saveErr).Msg("Failed to save seen-set on cancellation")
			}
			return stats, err
		}

		candidates := c.adapter.ListCategoryPage(category, page)
		if len(candidates) == 0 {
			log.Debug().Int("page", page).Msg("Empty page, stopping pagination")
			break
		}

		persistedThisPage := 0
		for _, cand := range candidates {
			stats.Candidates++

			id := article.ID(cand.NaturalKey)
			if ids.Contains(id) {
				stats.AlreadyKnown++
				continue
			}

			art, ok := c.adapter.FetchArticleDetail(cand)
			c.pace()
			if !ok || !art.IsComplete() {
				stats.Failed++
				continue
			}

			location, err := c.persister.Persist(partition, art)
			if err != nil {
				// Nothing is marked seen for a failed write; flush
				// what was confirmed so far and abort the partition.
				if saveErr := c.seen.Save(partition, ids); saveErr != nil {
					log.Error().Err(saveErr).Msg("Failed to save seen-set after persistence error")
				}
				return stats, err
			}

			ids.Add(id)
			persistedThisPage++
			stats.Persisted++
			c.announce(log, art)
			log.Debug().Str("location", location).Str("id", id).Msg("Saved article")
		}

		if persistedThisPage == 0 {
			log.Debug().Int("page", page).Msg("No new articles on page, stopping pagination")
			break
		}
		if len(candidates) < c.minPerPage {
			log.Debug().Int("page", page).Int("candidates", len(candidates)).
				Msg("Short page, treating as end of content")
			break
		}
	}

	if err := c.seen.Save(partition, ids); err != nil {
		return stats, err
	}

	log.Info().
		Int("candidates", stats.Candidates).
		Int("already_known", stats.AlreadyKnown).
		Int("persisted", stats.Persisted).
		Int("failed", stats.Failed).
		Msg("Crawl finished")

	return stats, nil
}

// pace enforces the politeness interval after every detail fetch,
// including failed ones.
func (c *Controller) pace() {
	if c.delay > 0 {
		time.Sleep(c.delay)
	}
}

// announce publishes a newly persisted article; publish failures are
// logged, never fatal.
func (c *Controller) announce(log *logger.Logger, art *article.Article) {
	if c.publisher == nil {
		return
	}
	data, err := json.Marshal(art)
	if err != nil {
		log.Error().Err(err).Str("id", art.ID).Msg("Failed to encode article for publishing")
		return
	}
	if err := c.publisher.Publish(art.Source, data); err != nil {
		log.Error().Err(err).Str("id", art.ID).Msg("Failed to publish article")
	}
}
