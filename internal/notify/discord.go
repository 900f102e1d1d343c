package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/donaldgifford/laptop-advisor/internal/metrics"
	domain "github.com/donaldgifford/laptop-advisor/pkg/types"
)

const (
	colorGreen  = 0x2ECC71 // great
	colorYellow = 0xF1C40F // very good
	colorOrange = 0xE67E22 // good

	// Discord allows max 25 fields per embed.
	maxFields = 25

	defaultMaxRetries   = 2
	defaultMaxRetryWait = 10 * time.Second
)

// ErrRateLimited is returned when Discord keeps answering 429 after all
// retries are used.
var ErrRateLimited = errors.New("discord rate limited (429)")

// DiscordNotifier implements Notifier via Discord webhook.
type DiscordNotifier struct {
	webhookURL   string
	client       *http.Client
	maxRetries   int
	maxRetryWait time.Duration
}

// NewDiscordNotifier creates a new DiscordNotifier.
func NewDiscordNotifier(webhookURL string, opts ...DiscordOption) *DiscordNotifier {
	d := &DiscordNotifier{
		webhookURL:   webhookURL,
		client:       http.DefaultClient,
		maxRetries:   defaultMaxRetries,
		maxRetryWait: defaultMaxRetryWait,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// DiscordOption configures a DiscordNotifier.
type DiscordOption func(*DiscordNotifier)

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(c *http.Client) DiscordOption {
	return func(d *DiscordNotifier) {
		d.client = c
	}
}

// WithMaxRetries sets how many times a 429 response is retried.
func WithMaxRetries(n int) DiscordOption {
	return func(d *DiscordNotifier) {
		d.maxRetries = max(n, 0)
	}
}

// WithMaxRetryWait caps the wait requested by a Retry-After header.
func WithMaxRetryWait(w time.Duration) DiscordOption {
	return func(d *DiscordNotifier) {
		d.maxRetryWait = w
	}
}

// discordWebhookPayload is the Discord webhook JSON structure.
type discordWebhookPayload struct {
	Embeds []discordEmbed `json:"embeds"`
}

type discordEmbed struct {
	Title       string              `json:"title"`
	URL         string              `json:"url,omitempty"`
	Color       int                 `json:"color"`
	Description string              `json:"description,omitempty"`
	Fields      []discordEmbedField `json:"fields,omitempty"`
	Footer      *discordFooter      `json:"footer,omitempty"`
	Timestamp   string              `json:"timestamp,omitempty"`
}

type discordEmbedField struct {
	Name   string `json:"name"`
	Value  string `json:"value"`
	Inline bool   `json:"inline"`
}

type discordFooter struct {
	Text string `json:"text"`
}

// SendDealDigest posts the digest as a single Discord embed. An empty
// digest is not sent.
func (d *DiscordNotifier) SendDealDigest(ctx context.Context, digest *DealDigest) error {
	if len(digest.Deals) == 0 {
		return nil
	}

	start := time.Now()
	err := d.post(ctx, discordWebhookPayload{Embeds: []discordEmbed{buildEmbed(digest)}})
	metrics.NotificationDuration.Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.NotificationFailuresTotal.Inc()
		return err
	}
	metrics.DigestsSentTotal.Inc()
	return nil
}

func buildEmbed(digest *DealDigest) discordEmbed {
	top := &digest.Deals[0]

	embed := discordEmbed{
		Title: fmt.Sprintf("%d laptop deals in the latest catalog", len(digest.Deals)),
		URL:   top.URL,
		Color: levelColor(top.Level),
		Description: fmt.Sprintf("Average discount %.0f%%, up to %.0f%%. Combined savings %s across %d listings.",
			digest.Summary.AverageDiscount,
			digest.Summary.MaxDiscount,
			FormatPrice(digest.Summary.TotalSavings),
			digest.Listings,
		),
	}

	limit := min(len(digest.Deals), maxFields)
	embed.Fields = make([]discordEmbedField, 0, limit)
	for i := range limit {
		embed.Fields = append(embed.Fields, dealField(&digest.Deals[i]))
	}

	if digest.SnapshotID != "" {
		embed.Footer = &discordFooter{Text: "snapshot " + digest.SnapshotID}
	}
	if !digest.LoadedAt.IsZero() {
		embed.Timestamp = digest.LoadedAt.UTC().Format(time.RFC3339)
	}
	return embed
}

func dealField(deal *domain.DealListing) discordEmbedField {
	value := fmt.Sprintf("%s (market %s), deal score %.0f",
		FormatPrice(deal.Price),
		FormatPrice(deal.MarketPriceEstimate),
		deal.DealScore,
	)
	if deal.URL != "" {
		value += "\n" + deal.URL
	}
	return discordEmbedField{
		Name:  fmt.Sprintf("%s (%.0f%% off)", deal.Name, deal.DiscountPercentage),
		Value: value,
	}
}

func levelColor(level domain.DealLevel) int {
	switch level {
	case domain.DealGreat:
		return colorGreen
	case domain.DealVeryGood:
		return colorYellow
	default:
		return colorOrange
	}
}

func (d *DiscordNotifier) post(ctx context.Context, payload discordWebhookPayload) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshaling discord payload: %w", err)
	}

	for attempt := 0; ; attempt++ {
		wait, err := d.send(ctx, body)
		if !errors.Is(err, ErrRateLimited) || attempt >= d.maxRetries {
			return err
		}

		timer := time.NewTimer(min(wait, d.maxRetryWait))
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
		}
	}
}

// send makes one webhook call. On 429 it returns ErrRateLimited and the
// wait Discord asked for.
func (d *DiscordNotifier) send(ctx context.Context, body []byte) (time.Duration, error) {
	req, err := http.NewRequestWithContext(
		ctx,
		http.MethodPost,
		d.webhookURL,
		bytes.NewReader(body),
	)
	if err != nil {
		return 0, fmt.Errorf("creating discord request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := d.client.Do(req)
	if err != nil {
		return 0, fmt.Errorf("sending discord webhook: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusTooManyRequests {
		return retryAfter(resp), ErrRateLimited
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		respBody, readErr := io.ReadAll(resp.Body)
		if readErr != nil {
			return 0, fmt.Errorf("discord returned %d (body unreadable)", resp.StatusCode)
		}
		return 0, fmt.Errorf("discord returned %d: %s", resp.StatusCode, respBody)
	}

	return 0, nil
}

// retryAfter reads the wait from the Retry-After header, falling back to
// the retry_after field of the JSON body. Both are in seconds.
func retryAfter(resp *http.Response) time.Duration {
	if v := resp.Header.Get("Retry-After"); v != "" {
		if secs, err := strconv.ParseFloat(v, 64); err == nil && secs >= 0 {
			return time.Duration(secs * float64(time.Second))
		}
	}
	var body struct {
		RetryAfter float64 `json:"retry_after"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err == nil && body.RetryAfter > 0 {
		return time.Duration(body.RetryAfter * float64(time.Second))
	}
	return time.Second
}
