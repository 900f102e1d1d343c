// Package notify defines the notification interface and implementations
// for deal digest delivery.
package notify

import (
	"context"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/donaldgifford/laptop-advisor/pkg/deals"
	domain "github.com/donaldgifford/laptop-advisor/pkg/types"
)

// DealDigest is the set of top deals found in a freshly loaded catalog.
type DealDigest struct {
	SnapshotID string
	LoadedAt   time.Time
	Listings   int
	Deals      []domain.DealListing
	Summary    deals.Summary
}

// Notifier defines the interface for sending deal digests.
type Notifier interface {
	SendDealDigest(ctx context.Context, digest *DealDigest) error
}

var pricePrinter = message.NewPrinter(language.Turkish)

// FormatPrice renders a price with Turkish digit grouping, e.g. "45.000 TL".
func FormatPrice(v float64) string {
	return pricePrinter.Sprintf("%.0f TL", v)
}
