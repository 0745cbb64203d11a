package notifier

import "mblythe/rentwatcher/internal/scraper"

// Notifier represents a service for delivering new-listing notifications
type Notifier interface {
	// Notify delivers a notification for one listing. A failure is
	// returned to the caller to log; it never aborts the run.
	Notify(listing scraper.Listing) error
}
