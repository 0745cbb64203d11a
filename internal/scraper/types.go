package scraper

import "encoding/json"

// Source names for the supported listing sites
const (
	SourceRightmove   = "Rightmove"
	SourceZoopla      = "Zoopla"
	SourceOnTheMarket = "OnTheMarket"
)

// NotAvailable is the sentinel used when a site omits a display field.
const NotAvailable = "N/A"

// Listing represents one normalized property listing. Link is the unique
// identity for deduplication; two listings with equal links are the same
// property regardless of other field differences.
type Listing struct {
	Name      string `json:"name"`
	Link      string `json:"link"`
	Image     string `json:"image,omitempty"`
	Price     string `json:"price"`
	Bedrooms  int    `json:"bedrooms"`
	Bathrooms int    `json:"bathrooms"`
	Source    string `json:"source"`
}

// Scraper interface defines the contract for all site scraper implementations
type Scraper interface {
	// FetchListings retrieves listings from a source. It never fails for
	// per-item problems; those are logged and skipped.
	FetchListings() ([]Listing, error)

	// GetName returns the scraper's name for logging and identification
	GetName() string

	// GetSource returns the source name for the scraper
	GetSource() string
}

// ItemDecoderFunc decodes one raw JSON array element into a Listing.
// Implementations decode into a source-specific intermediate shape where
// every field is optional, then substitute defaults in one place.
type ItemDecoderFunc func(json.RawMessage) (*Listing, error)

// NextDataConfig configures a scraper for sites that embed their search
// results as JSON inside a known script tag.
type NextDataConfig struct {
	URL       string
	WarmupURL string
	CacheKey  string
	BlockTime int
	Source    string

	// ScriptID identifies the embedded payload's script tag
	ScriptID string

	// Paths are candidate key paths to the listings array, tried in order.
	// Site revisions that add or remove a wrapper level are handled here
	// as data, not as a separate scraper.
	Paths [][]string

	DecodeItem ItemDecoderFunc
}

// CardSelectors contains CSS selectors for server-rendered listing pages
type CardSelectors struct {
	// NoResults matches the heading shown on a genuine empty-results page
	NoResults        string
	NoResultsPattern string

	Container string
	Card      string
	Name      string
	Price     string
	Link      string
	Image     string
	Features  string
}

// CardConfig configures a scraper for plain server-rendered markup
type CardConfig struct {
	URL       string
	WarmupURL string
	CacheKey  string
	BlockTime int
	BaseURL   string
	Source    string
	Selectors CardSelectors
}
