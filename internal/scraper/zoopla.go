package scraper

import (
	"encoding/json"
	"fmt"
)

const zooplaOrigin = "https://www.zoopla.co.uk"

// zooplaListing is the intermediate decode shape for one Zoopla result
// element, with every field optional.
type zooplaListing struct {
	Title       *string `json:"title"`
	ListingURIs *struct {
		Detail *string `json:"detail"`
	} `json:"listingUris"`
	Image *struct {
		URL *string `json:"url"`
	} `json:"image"`
	Pricing *struct {
		Label *string `json:"label"`
	} `json:"pricing"`
	Beds  *int `json:"beds"`
	Baths *int `json:"baths"`
}

// decodeZooplaItem decodes one raw result element into a Listing
func decodeZooplaItem(raw json.RawMessage) (*Listing, error) {
	var item zooplaListing
	if err := json.Unmarshal(raw, &item); err != nil {
		return nil, fmt.Errorf("unexpected element shape: %w", err)
	}

	detail := ""
	if item.ListingURIs != nil {
		detail = stringOr(item.ListingURIs.Detail, "")
	}

	image := ""
	if item.Image != nil {
		image = stringOr(item.Image.URL, "")
	}

	price := NotAvailable
	if item.Pricing != nil {
		price = stringOr(item.Pricing.Label, NotAvailable)
	}

	return &Listing{
		Name:      stringOr(item.Title, NotAvailable),
		Link:      resolveURL(zooplaOrigin, detail),
		Image:     image,
		Price:     price,
		Bedrooms:  intOr(item.Beds),
		Bathrooms: intOr(item.Baths),
		Source:    SourceZoopla,
	}, nil
}
