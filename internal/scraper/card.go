package scraper

import (
	"fmt"
	"net/http"
	"regexp"
	"strconv"
	"strings"
	"time"

	"mblythe/rentwatcher/logger"
	apperr "mblythe/rentwatcher/pkg/errors"
	"mblythe/rentwatcher/services/cache"

	"github.com/PuerkitoBio/goquery"
)

var firstIntRegex = regexp.MustCompile(`\d+`)

// CardScraper extracts listings from plain server-rendered markup by
// walking a container of card elements with configured selectors.
type CardScraper struct {
	BaseScraper
	BaseURL     string
	Selectors   CardSelectors
	noResultsRe *regexp.Regexp
}

// NewCardScraper creates a new DOM-selector scraper
func NewCardScraper(config CardConfig, client *http.Client, cacheSvc cache.CacheService) *CardScraper {
	return &CardScraper{
		BaseScraper: BaseScraper{
			URL:       config.URL,
			WarmupURL: config.WarmupURL,
			Source:    config.Source,
			Client:    client,
			CacheKey:  config.CacheKey,
			CacheSvc:  cacheSvc,
			BlockTime: time.Duration(config.BlockTime) * time.Second,
		},
		BaseURL:     config.BaseURL,
		Selectors:   config.Selectors,
		noResultsRe: regexp.MustCompile(config.Selectors.NoResultsPattern),
	}
}

// FetchListings fetches the search page and extracts listings from its cards
func (s *CardScraper) FetchListings() ([]Listing, error) {
	log := logger.ForScraper(s.GetName())

	body, err := s.fetchPage()
	if err != nil {
		return nil, apperr.NewNetwork(s.Source, "failed to fetch search page", err)
	}

	doc, err := s.createDocument(body)
	if err != nil {
		return nil, apperr.NewParsing(s.Source, "failed to parse search page", err)
	}

	// A genuine empty-results page is an expected terminal state,
	// distinct from a structural anomaly
	if s.isNoResultsPage(doc) {
		log.Info().Msg("Source returned a 'no results' page, which is expected")
		return nil, nil
	}

	container := doc.Find(s.Selectors.Container)
	if container.Length() == 0 {
		log.Warn().
			Str("selector", s.Selectors.Container).
			Msg("Neither results nor 'no results' marker found; page structure may have changed")
		return nil, nil
	}

	var listings []Listing
	container.Find(s.Selectors.Card).Each(func(i int, card *goquery.Selection) {
		listing, err := s.processCard(card)
		if err != nil {
			log.Warn().
				Err(err).
				Int("index", i).
				Msg("Skipping a listing due to parsing error")
			return
		}
		if listing != nil {
			listings = append(listings, *listing)
		}
	})

	return listings, nil
}

// isNoResultsPage reports whether the page carries the explicit
// empty-results heading.
func (s *CardScraper) isNoResultsPage(doc *goquery.Document) bool {
	found := false
	doc.Find(s.Selectors.NoResults).EachWithBreak(func(i int, sel *goquery.Selection) bool {
		if s.noResultsRe.MatchString(strings.TrimSpace(sel.Text())) {
			found = true
			return false
		}
		return true
	})
	return found
}

// processCard extracts one card. Name, price and link are mandatory; a
// card missing any of them is dropped without an error. Image and
// bed/bath counts are optional with defaults.
func (s *CardScraper) processCard(card *goquery.Selection) (*Listing, error) {
	nameSel := card.Find(s.Selectors.Name)
	priceSel := card.Find(s.Selectors.Price)
	linkSel := card.Find(s.Selectors.Link)
	if nameSel.Length() == 0 || priceSel.Length() == 0 || linkSel.Length() == 0 {
		return nil, nil
	}

	href, exists := linkSel.Attr("href")
	if !exists || strings.TrimSpace(href) == "" {
		return nil, nil
	}

	image := ""
	if src, exists := card.Find(s.Selectors.Image).Attr("src"); exists {
		image = strings.TrimSpace(src)
	}

	beds, baths, err := s.extractCounts(card)
	if err != nil {
		return nil, err
	}

	return &Listing{
		Name:      strings.TrimSpace(nameSel.Text()),
		Link:      resolveURL(s.BaseURL, href),
		Image:     image,
		Price:     strings.TrimSpace(priceSel.Text()),
		Bedrooms:  beds,
		Bathrooms: baths,
		Source:    s.Source,
	}, nil
}

// extractCounts scans the feature labels for the first integer token in
// any label mentioning "bed" or "bath".
func (s *CardScraper) extractCounts(card *goquery.Selection) (int, int, error) {
	beds, baths := 0, 0
	var parseErr error

	card.Find(s.Selectors.Features).EachWithBreak(func(i int, feature *goquery.Selection) bool {
		text := strings.ToLower(strings.TrimSpace(feature.Text()))

		if strings.Contains(text, "bed") {
			n, err := firstInt(text)
			if err != nil {
				parseErr = fmt.Errorf("bedroom label %q: %w", text, err)
				return false
			}
			beds = n
		}
		if strings.Contains(text, "bath") {
			n, err := firstInt(text)
			if err != nil {
				parseErr = fmt.Errorf("bathroom label %q: %w", text, err)
				return false
			}
			baths = n
		}
		return true
	})

	if parseErr != nil {
		return 0, 0, parseErr
	}
	return beds, baths, nil
}

// firstInt returns the first integer token in a string
func firstInt(text string) (int, error) {
	match := firstIntRegex.FindString(text)
	if match == "" {
		return 0, fmt.Errorf("no integer token found")
	}
	return strconv.Atoi(match)
}
