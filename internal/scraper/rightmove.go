package scraper

import (
	"encoding/json"
	"fmt"
)

const rightmoveOrigin = "https://www.rightmove.co.uk"

// rightmoveListing is the intermediate decode shape for one Rightmove
// result element. Every field is optional; defaults are substituted in
// decodeRightmoveItem so the absent-field contract lives in one place.
type rightmoveListing struct {
	DisplayAddress *string `json:"displayAddress"`
	PropertyURL    *string `json:"propertyUrl"`
	PropertyImages *struct {
		MainImageSrc *string `json:"mainImageSrc"`
	} `json:"propertyImages"`
	Price *struct {
		DisplayPrices []struct {
			DisplayPrice *string `json:"displayPrice"`
		} `json:"displayPrices"`
	} `json:"price"`
	Bedrooms  *int `json:"bedrooms"`
	Bathrooms *int `json:"bathrooms"`
}

// decodeRightmoveItem decodes one raw result element into a Listing
func decodeRightmoveItem(raw json.RawMessage) (*Listing, error) {
	var item rightmoveListing
	if err := json.Unmarshal(raw, &item); err != nil {
		return nil, fmt.Errorf("unexpected element shape: %w", err)
	}

	image := ""
	if item.PropertyImages != nil {
		image = stringOr(item.PropertyImages.MainImageSrc, "")
	}

	price := NotAvailable
	if item.Price != nil && len(item.Price.DisplayPrices) > 0 {
		price = stringOr(item.Price.DisplayPrices[0].DisplayPrice, NotAvailable)
	}

	return &Listing{
		Name:      stringOr(item.DisplayAddress, NotAvailable),
		Link:      resolveURL(rightmoveOrigin, stringOr(item.PropertyURL, "")),
		Image:     image,
		Price:     price,
		Bedrooms:  intOr(item.Bedrooms),
		Bathrooms: intOr(item.Bathrooms),
		Source:    SourceRightmove,
	}, nil
}
