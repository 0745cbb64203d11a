package scraper

import (
	"encoding/json"
	"net/http"
	"time"

	"mblythe/rentwatcher/logger"
	apperr "mblythe/rentwatcher/pkg/errors"
	"mblythe/rentwatcher/services/cache"
)

// NextDataScraper extracts listings from sites that embed their search
// results as a single JSON payload inside a known script tag.
type NextDataScraper struct {
	BaseScraper
	ScriptID   string
	Paths      [][]string
	DecodeItem ItemDecoderFunc
}

// NewNextDataScraper creates a new embedded-JSON scraper
func NewNextDataScraper(config NextDataConfig, client *http.Client, cacheSvc cache.CacheService) *NextDataScraper {
	return &NextDataScraper{
		BaseScraper: BaseScraper{
			URL:       config.URL,
			WarmupURL: config.WarmupURL,
			Source:    config.Source,
			Client:    client,
			CacheKey:  config.CacheKey,
			CacheSvc:  cacheSvc,
			BlockTime: time.Duration(config.BlockTime) * time.Second,
		},
		ScriptID:   config.ScriptID,
		Paths:      config.Paths,
		DecodeItem: config.DecodeItem,
	}
}

// FetchListings fetches the search page and extracts listings from the
// embedded JSON payload.
func (s *NextDataScraper) FetchListings() ([]Listing, error) {
	log := logger.ForScraper(s.GetName())

	body, err := s.fetchPage()
	if err != nil {
		return nil, apperr.NewNetwork(s.Source, "failed to fetch search page", err)
	}

	doc, err := s.createDocument(body)
	if err != nil {
		return nil, apperr.NewParsing(s.Source, "failed to parse search page", err)
	}

	script := doc.Find("script#" + s.ScriptID)
	if script.Length() == 0 {
		// Site likely changed its rendering strategy; not a crash condition
		log.Warn().
			Str("script_id", s.ScriptID).
			Msg("Embedded data script not found; page structure may have changed")
		return nil, nil
	}

	var payload json.RawMessage
	if err := json.Unmarshal([]byte(script.Text()), &payload); err != nil {
		return nil, apperr.NewParsing(s.Source, "embedded payload is not valid JSON", err)
	}

	items, resolved := s.resolveListings(payload)
	if !resolved {
		log.Warn().Msg("No known key path resolved to a listings array; payload shape may have changed")
		return nil, nil
	}
	if len(items) == 0 {
		log.Info().Msg("No listings found for this search")
		return nil, nil
	}

	listings := make([]Listing, 0, len(items))
	for i, item := range items {
		listing, err := s.DecodeItem(item)
		if err != nil {
			log.Warn().
				Err(err).
				Int("index", i).
				Msg("Skipping a listing due to decoding error")
			continue
		}
		listings = append(listings, *listing)
	}

	return listings, nil
}

// resolveListings tries each configured key path in order and returns the
// first one that resolves to a JSON array.
func (s *NextDataScraper) resolveListings(payload json.RawMessage) ([]json.RawMessage, bool) {
	for _, path := range s.Paths {
		if items, ok := navigate(payload, path); ok {
			return items, true
		}
	}
	return nil, false
}

// navigate walks a key path through nested JSON objects down to an array
func navigate(raw json.RawMessage, path []string) ([]json.RawMessage, bool) {
	current := raw
	for _, key := range path {
		var node map[string]json.RawMessage
		if err := json.Unmarshal(current, &node); err != nil {
			return nil, false
		}
		next, ok := node[key]
		if !ok {
			return nil, false
		}
		current = next
	}

	var items []json.RawMessage
	if err := json.Unmarshal(current, &items); err != nil {
		return nil, false
	}
	return items, true
}
