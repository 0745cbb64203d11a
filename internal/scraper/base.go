package scraper

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"mblythe/rentwatcher/helpers"
	"mblythe/rentwatcher/logger"
	"mblythe/rentwatcher/services/cache"

	"github.com/PuerkitoBio/goquery"
)

// BaseScraper provides common functionality for all site scrapers. The
// HTTP client is constructed by the orchestrator and shared across all
// sources within a run so warm-up cookies carry over.
type BaseScraper struct {
	URL       string
	WarmupURL string
	Source    string
	Client    *http.Client
	CacheKey  string
	CacheSvc  cache.CacheService
	BlockTime time.Duration
}

// fetchPage fetches the search-results page, honoring an existing
// rate-limit block and issuing the warm-up request first if configured.
func (s *BaseScraper) fetchPage() (io.Reader, error) {
	// Check if the source is currently blocked
	if s.CacheSvc != nil && s.CacheKey != "" {
		if _, err := s.CacheSvc.Get(s.CacheKey); err == nil {
			return nil, fmt.Errorf("%s: blocked for %d more seconds at most", s.CacheKey, s.BlockTime/time.Second)
		}
	}

	// Warm-up establishes session-scoped cookies. Its own failure is
	// non-fatal; the search request proceeds regardless.
	if s.WarmupURL != "" {
		if _, err := helpers.Fetch(s.Client, s.WarmupURL); err != nil {
			logger.ForScraper(s.Source).Warn().
				Err(err).
				Str("url", s.WarmupURL).
				Msg("Warm-up request failed")
		}
	}

	body, err := helpers.Fetch(s.Client, s.URL)
	if err != nil {
		if errors.Is(err, helpers.ErrRateLimited) && s.CacheSvc != nil && s.CacheKey != "" {
			s.CacheSvc.Set(s.CacheKey, []byte(fmt.Sprintf("%d", s.BlockTime/time.Second)), s.BlockTime)
		}
		return nil, err
	}

	return body, nil
}

// createDocument creates a goquery document from a reader
func (s *BaseScraper) createDocument(reader io.Reader) (*goquery.Document, error) {
	doc, err := goquery.NewDocumentFromReader(reader)
	if err != nil {
		return nil, fmt.Errorf("failed to parse HTML: %w", err)
	}
	return doc, nil
}

// resolveURL joins a relative detail-page path onto the site origin.
// Absolute URLs are kept as-is.
func resolveURL(baseURL, href string) string {
	href = strings.TrimSpace(href)
	if href == "" || strings.HasPrefix(href, "http://") || strings.HasPrefix(href, "https://") {
		return href
	}
	return baseURL + href
}

// stringOr dereferences an optional decoded field with a default
func stringOr(v *string, def string) string {
	if v == nil || *v == "" {
		return def
	}
	return *v
}

// intOr dereferences an optional decoded count, clamping negatives to zero
func intOr(v *int) int {
	if v == nil || *v < 0 {
		return 0
	}
	return *v
}

// GetName returns the scraper's name for logging
func (s *BaseScraper) GetName() string {
	return s.Source + "Scraper"
}

// GetSource returns the source name
func (s *BaseScraper) GetSource() string {
	return s.Source
}
