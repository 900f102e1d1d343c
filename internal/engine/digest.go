package engine

import (
	"context"

	"github.com/donaldgifford/laptop-advisor/internal/notify"
	"github.com/donaldgifford/laptop-advisor/pkg/deals"
)

// digestAsync sends the digest for snap in the background. Callers sharing
// the load never wait on the notifier.
func (e *Engine) digestAsync(ctx context.Context, snap *Snapshot) {
	if e.notifier == nil || e.digestSize <= 0 {
		return
	}
	e.digests.Add(1)
	go func() {
		defer e.digests.Done()
		ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), DigestTimeout)
		defer cancel()
		e.sendDigest(ctx, snap)
	}()
}

// WaitDigests blocks until every pending digest has been sent or has failed.
func (e *Engine) WaitDigests() {
	e.digests.Wait()
}

// sendDigest notifies the top deals of a changed snapshot. Failures are
// logged and never fail the reload.
func (e *Engine) sendDigest(ctx context.Context, snap *Snapshot) {
	if e.notifier == nil || e.digestSize <= 0 {
		return
	}

	found, err := e.findDeals(ctx, snap, e.dealThreshold, e.digestSize)
	if err != nil {
		e.log.Error("deal digest skipped", "snapshot", snap.ID, "error", err)
		return
	}
	if len(found) == 0 {
		e.log.Debug("no deals for digest", "snapshot", snap.ID)
		return
	}

	digest := &notify.DealDigest{
		SnapshotID: snap.ID.String(),
		LoadedAt:   snap.LoadedAt,
		Listings:   len(snap.Listings()),
		Deals:      found,
		Summary:    deals.Summarize(found),
	}
	if err := e.notifier.SendDealDigest(ctx, digest); err != nil {
		e.log.Error("sending deal digest failed", "snapshot", snap.ID, "error", err)
		return
	}
	e.log.Info("deal digest sent", "snapshot", snap.ID, "deals", len(found))
}
