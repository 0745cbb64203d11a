package worker

import (
	"context"
	"time"

	"mblythe/rentwatcher/internal/scraper"
	"mblythe/rentwatcher/logger"
	"mblythe/rentwatcher/services/notifier"
	"mblythe/rentwatcher/services/store"
)

// Worker orchestrates one or more scrape-diff-notify passes
type Worker struct {
	ctx          context.Context
	scrapers     []scraper.Scraper
	store        store.Store
	notifier     notifier.Notifier
	pollInterval time.Duration
}

// NewWorker creates a new worker
func NewWorker(
	ctx context.Context,
	scrapers []scraper.Scraper,
	st store.Store,
	n notifier.Notifier,
	pollInterval time.Duration,
) *Worker {
	return &Worker{
		ctx:          ctx,
		scrapers:     scrapers,
		store:        st,
		notifier:     n,
		pollInterval: pollInterval,
	}
}

// Start runs passes until the context is cancelled. A zero poll interval
// means a single pass, for cron-style invocation.
func (w *Worker) Start() error {
	log := logger.ForWorker()

	for {
		start := time.Now()
		w.RunOnce()
		log.Debug().Dur("elapsed", time.Since(start)).Msg("Pass finished")

		if w.pollInterval <= 0 {
			return nil
		}

		select {
		case <-w.ctx.Done():
			return w.ctx.Err()
		case <-time.After(w.pollInterval):
		}
	}
}

// RunOnce executes one full pass: fetch every source in order, diff the
// combined results against the store, notify new listings, and persist
// exactly the links seen this pass. No per-source or per-listing failure
// aborts the pass.
func (w *Worker) RunOnce() {
	log := logger.ForWorker()

	var all []scraper.Listing
	for _, s := range w.scrapers {
		listings, err := s.FetchListings()
		if err != nil {
			log.Error().
				Err(err).
				Str("scraper", s.GetName()).
				Msg("Scrape failed; source yields no listings this pass")
			continue
		}
		all = append(all, listings...)
	}

	if len(all) == 0 {
		log.Info().Msg("No listings found across all sources in this run")
		// The persisted set always mirrors the current pass, even when empty
		if err := w.store.Save(map[string]bool{}); err != nil {
			log.Error().Err(err).Msg("Failed to persist state")
		}
		return
	}

	sent := w.store.Load()

	current := make(map[string]bool, len(all))
	var newListings []scraper.Listing
	for _, listing := range all {
		current[listing.Link] = true
		if !sent[listing.Link] {
			newListings = append(newListings, listing)
		}
	}

	log.Info().
		Int("total", len(all)).
		Int("new", len(newListings)).
		Msg("Diffed listings against the store")

	for _, listing := range newListings {
		if err := w.notifier.Notify(listing); err != nil {
			log.Error().
				Err(err).
				Str("link", listing.Link).
				Msg("Failed to send notification")
			continue
		}
		log.Info().
			Str("name", listing.Name).
			Str("source", listing.Source).
			Msg("Sent notification")
	}

	if err := w.store.Save(current); err != nil {
		log.Error().Err(err).Msg("Failed to persist state")
	}
}
