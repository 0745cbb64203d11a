package worker

import (
	"context"
	"errors"
	"testing"

	"mblythe/rentwatcher/internal/scraper"
	"mblythe/rentwatcher/services/notifier"
	"mblythe/rentwatcher/services/store"

	"github.com/stretchr/testify/assert"
)

// MockScraper implements the scraper.Scraper interface for testing
type MockScraper struct {
	name     string
	source   string
	listings []scraper.Listing
	fetchErr error
}

var _ scraper.Scraper = (*MockScraper)(nil)

func (m *MockScraper) FetchListings() ([]scraper.Listing, error) {
	return m.listings, m.fetchErr
}

func (m *MockScraper) GetName() string {
	return m.name
}

func (m *MockScraper) GetSource() string {
	return m.source
}

// MockStore implements the store.Store interface for testing
type MockStore struct {
	links   map[string]bool
	saved   []map[string]bool
	saveErr error
}

var _ store.Store = (*MockStore)(nil)

func NewMockStore(links map[string]bool) *MockStore {
	if links == nil {
		links = make(map[string]bool)
	}
	return &MockStore{links: links}
}

func (m *MockStore) Load() map[string]bool {
	loaded := make(map[string]bool, len(m.links))
	for k, v := range m.links {
		loaded[k] = v
	}
	return loaded
}

func (m *MockStore) Save(links map[string]bool) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	m.links = links
	m.saved = append(m.saved, links)
	return nil
}

// MockNotifier implements the notifier.Notifier interface for testing
type MockNotifier struct {
	notified  []scraper.Listing
	failLinks map[string]bool
}

var _ notifier.Notifier = (*MockNotifier)(nil)

func (m *MockNotifier) Notify(listing scraper.Listing) error {
	if m.failLinks[listing.Link] {
		return errors.New("delivery failed")
	}
	m.notified = append(m.notified, listing)
	return nil
}

func listing(link string) scraper.Listing {
	return scraper.Listing{
		Name:   "Listing " + link,
		Link:   link,
		Price:  "£1,000 pcm",
		Source: "Test",
	}
}

func newTestWorker(scrapers []scraper.Scraper, st *MockStore, n *MockNotifier) *Worker {
	return NewWorker(context.Background(), scrapers, st, n, 0)
}

// TestRunOnceNotifiesOnlyNewListings covers the core diff: a link already
// in the store is never re-notified within the run, and the persisted
// store afterwards is exactly the links seen in this run.
func TestRunOnceNotifiesOnlyNewListings(t *testing.T) {
	st := NewMockStore(map[string]bool{"https://a/1": true})
	n := &MockNotifier{}
	s := &MockScraper{
		name:     "TestScraper",
		listings: []scraper.Listing{listing("https://a/1"), listing("https://a/2")},
	}

	w := newTestWorker([]scraper.Scraper{s}, st, n)
	w.RunOnce()

	assert.Len(t, n.notified, 1)
	assert.Equal(t, "https://a/2", n.notified[0].Link)
	assert.Equal(t, map[string]bool{"https://a/1": true, "https://a/2": true}, st.links)
}

// TestRunOnceClosureProperty: every fetched listing's link ends up in the
// persisted store after the run.
func TestRunOnceClosureProperty(t *testing.T) {
	st := NewMockStore(nil)
	n := &MockNotifier{}
	s1 := &MockScraper{name: "S1", listings: []scraper.Listing{listing("https://a/1")}}
	s2 := &MockScraper{name: "S2", listings: []scraper.Listing{listing("https://b/1"), listing("https://b/2")}}

	w := newTestWorker([]scraper.Scraper{s1, s2}, st, n)
	w.RunOnce()

	for _, link := range []string{"https://a/1", "https://b/1", "https://b/2"} {
		assert.True(t, st.links[link], "link %s should be persisted", link)
	}
	assert.Len(t, n.notified, 3, "first run notifies everything")
}

// TestRunOnceEmptyRunClearsStore: when all sources return zero listings
// the store is overwritten with the empty set, whatever it held before.
func TestRunOnceEmptyRunClearsStore(t *testing.T) {
	st := NewMockStore(map[string]bool{"https://a/1": true, "https://a/2": true})
	n := &MockNotifier{}
	s := &MockScraper{name: "EmptyScraper"}

	w := newTestWorker([]scraper.Scraper{s}, st, n)
	w.RunOnce()

	assert.Empty(t, st.links)
	assert.Empty(t, n.notified)
	assert.Len(t, st.saved, 1, "the empty state should have been persisted")
}

// TestRunOnceResurfacedListingIsRenotified documents the replace-not-union
// store semantics: a listing that disappears from results for one run is
// forgotten, so it is notified again if it reappears. This is preserved
// observed behavior, not a bug to fix silently.
func TestRunOnceResurfacedListingIsRenotified(t *testing.T) {
	st := NewMockStore(nil)
	n := &MockNotifier{}
	s := &MockScraper{name: "FlakyScraper", listings: []scraper.Listing{listing("https://a/1")}}
	w := newTestWorker([]scraper.Scraper{s}, st, n)

	// First run notifies the listing
	w.RunOnce()
	assert.Len(t, n.notified, 1)

	// Listing disappears; store is replaced with the empty set
	s.listings = nil
	w.RunOnce()
	assert.Empty(t, st.links)

	// Listing resurfaces and is notified a second time
	s.listings = []scraper.Listing{listing("https://a/1")}
	w.RunOnce()
	assert.Len(t, n.notified, 2)
}

// TestRunOnceContinuesPastScrapeFailure: one failing source does not
// affect the others.
func TestRunOnceContinuesPastScrapeFailure(t *testing.T) {
	st := NewMockStore(nil)
	n := &MockNotifier{}
	failing := &MockScraper{name: "FailingScraper", fetchErr: errors.New("connection refused")}
	working := &MockScraper{name: "WorkingScraper", listings: []scraper.Listing{listing("https://b/1")}}

	w := newTestWorker([]scraper.Scraper{failing, working}, st, n)
	w.RunOnce()

	assert.Len(t, n.notified, 1)
	assert.Equal(t, map[string]bool{"https://b/1": true}, st.links)
}

// TestRunOnceContinuesPastNotifyFailure: a delivery failure does not block
// later notifications or the final persist.
func TestRunOnceContinuesPastNotifyFailure(t *testing.T) {
	st := NewMockStore(nil)
	n := &MockNotifier{failLinks: map[string]bool{"https://a/1": true}}
	s := &MockScraper{
		name:     "TestScraper",
		listings: []scraper.Listing{listing("https://a/1"), listing("https://a/2")},
	}

	w := newTestWorker([]scraper.Scraper{s}, st, n)
	w.RunOnce()

	assert.Len(t, n.notified, 1)
	assert.Equal(t, "https://a/2", n.notified[0].Link)
	// The failed listing's link is still persisted; it will not be retried
	assert.Equal(t, map[string]bool{"https://a/1": true, "https://a/2": true}, st.links)
}
