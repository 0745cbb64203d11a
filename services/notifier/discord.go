package notifier

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"mblythe/rentwatcher/internal/scraper"
	apperr "mblythe/rentwatcher/pkg/errors"
)

// Per-source embed colors; unrecognized sources get the neutral default.
var sourceColors = map[string]int{
	scraper.SourceRightmove:   3447003,
	scraper.SourceZoopla:      8359053,
	scraper.SourceOnTheMarket: 15158332,
}

type embedField struct {
	Name   string `json:"name"`
	Value  string `json:"value"`
	Inline bool   `json:"inline"`
}

type embedImage struct {
	URL string `json:"url"`
}

type embedFooter struct {
	Text string `json:"text"`
}

type embed struct {
	Title  string       `json:"title"`
	URL    string       `json:"url"`
	Color  int          `json:"color"`
	Fields []embedField `json:"fields"`
	Image  embedImage   `json:"image"`
	Footer embedFooter  `json:"footer"`
}

type webhookPayload struct {
	Embeds []embed `json:"embeds"`
}

// DiscordNotifier implements Notifier against a Discord webhook endpoint
type DiscordNotifier struct {
	webhookURL string
	client     *http.Client
}

// NewDiscordNotifier creates a new Discord webhook notifier
func NewDiscordNotifier(webhookURL string, client *http.Client) *DiscordNotifier {
	if client == nil {
		client = http.DefaultClient
	}
	return &DiscordNotifier{
		webhookURL: webhookURL,
		client:     client,
	}
}

// Notify posts one listing to the webhook as a rich embed
func (n *DiscordNotifier) Notify(listing scraper.Listing) error {
	payload := webhookPayload{
		Embeds: []embed{{
			Title: listing.Name,
			URL:   listing.Link,
			Color: sourceColors[listing.Source],
			Fields: []embedField{
				{Name: "Price", Value: listing.Price, Inline: true},
				{Name: "Bedrooms", Value: strconv.Itoa(listing.Bedrooms), Inline: true},
				{Name: "Bathrooms", Value: strconv.Itoa(listing.Bathrooms), Inline: true},
			},
			Image:  embedImage{URL: listing.Image},
			Footer: embedFooter{Text: "Source: " + listing.Source},
		}},
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return apperr.NewNotification(listing.Source, "failed to encode webhook payload", err)
	}

	resp, err := n.client.Post(n.webhookURL, "application/json", bytes.NewReader(body))
	if err != nil {
		return apperr.NewNotification(listing.Source, "failed to deliver webhook", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return apperr.NewNotification(listing.Source,
			fmt.Sprintf("webhook returned status %d", resp.StatusCode), nil)
	}

	return nil
}
