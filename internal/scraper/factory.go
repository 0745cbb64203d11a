package scraper

import (
	"net/http"

	"mblythe/rentwatcher/config"
	"mblythe/rentwatcher/logger"
	"mblythe/rentwatcher/services/cache"
)

// CreateScrapers creates the site scrapers in the fixed run order. All
// scrapers share the given client so session cookies carry across fetches.
func CreateScrapers(cfg *config.Config, client *http.Client, cacheSvc cache.CacheService) []Scraper {
	scrapers := []Scraper{
		NewNextDataScraper(NextDataConfig{
			URL:       cfg.RightmoveURL,
			CacheKey:  "rightmove_rate_limited",
			BlockTime: 500,
			Source:    SourceRightmove,
			ScriptID:  "__NEXT_DATA__",
			// The listings array moved under a 'results' wrapper in a
			// site revision; both shapes are tried.
			Paths: [][]string{
				{"props", "pageProps", "results", "properties"},
				{"props", "pageProps", "properties"},
			},
			DecodeItem: decodeRightmoveItem,
		}, client, cacheSvc),
		NewNextDataScraper(NextDataConfig{
			URL:       cfg.ZooplaURL,
			WarmupURL: "https://www.zoopla.co.uk/",
			CacheKey:  "zoopla_rate_limited",
			BlockTime: 500,
			Source:    SourceZoopla,
			ScriptID:  "__NEXT_DATA__",
			Paths: [][]string{
				{"props", "pageProps", "regularListings", "listings"},
				{"props", "pageProps", "listings"},
			},
			DecodeItem: decodeZooplaItem,
		}, client, cacheSvc),
		NewCardScraper(CardConfig{
			URL:       cfg.OnTheMarketURL,
			WarmupURL: "https://www.onthemarket.com/",
			CacheKey:  "onthemarket_rate_limited",
			BlockTime: 500,
			BaseURL:   "https://www.onthemarket.com",
			Source:    SourceOnTheMarket,
			Selectors: CardSelectors{
				NoResults:        "h1",
				NoResultsPattern: `Sorry, no properties found`,
				Container:        "#properties-list-tab-panel",
				Card:             "li.otm-PropertyCard",
				Name:             "span.otm-PropertyCard-address",
				Price:            "div.otm-PropertyCard-price",
				Link:             "a.otm-PropertyCard-link",
				Image:            "img.otm-PropertyCard-image",
				Features:         "div.otm-PropertyCard-features span",
			},
		}, client, cacheSvc),
	}

	for _, s := range scrapers {
		logger.Debug("Created scraper %s", s.GetName())
	}

	return scrapers
}
