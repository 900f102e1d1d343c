package notify

import (
	"context"
	"log/slog"
)

// NoOpNotifier implements Notifier by logging discarded digests. It is used
// when Discord is not configured.
type NoOpNotifier struct {
	log *slog.Logger
}

// NewNoOpNotifier creates a notifier that discards digests with a log message.
func NewNoOpNotifier(log *slog.Logger) *NoOpNotifier {
	if log == nil {
		log = slog.Default()
	}
	return &NoOpNotifier{log: log}
}

// SendDealDigest logs and discards a digest.
func (n *NoOpNotifier) SendDealDigest(_ context.Context, digest *DealDigest) error {
	n.log.Debug("deal digest discarded (no backend configured)",
		"snapshot", digest.SnapshotID,
		"deals", len(digest.Deals),
	)
	return nil
}
