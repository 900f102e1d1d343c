package notify

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/donaldgifford/laptop-advisor/internal/metrics"
	"github.com/donaldgifford/laptop-advisor/pkg/deals"
	domain "github.com/donaldgifford/laptop-advisor/pkg/types"
)

func testDeal(name string, discount float64, level domain.DealLevel) domain.DealListing {
	return domain.DealListing{
		Listing: domain.Listing{
			Name:  name,
			Price: 30000,
			URL:   "https://example.com/" + name,
		},
		MarketPriceEstimate: 45000,
		DiscountPercentage:  discount,
		DealScore:           discount + 10,
		Level:               level,
	}
}

func testDigest(n int) *DealDigest {
	list := make([]domain.DealListing, 0, n)
	for i := range n {
		list = append(list, testDeal("laptop-"+string(rune('a'+i)), 33, domain.DealGreat))
	}
	return &DealDigest{
		SnapshotID: "0b7e2a1c",
		LoadedAt:   time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC),
		Listings:   120,
		Deals:      list,
		Summary:    deals.Summarize(list),
	}
}

func TestDiscordNotifier_SendDealDigest(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		level      domain.DealLevel
		statusCode int
		wantErr    string
		wantColor  int
	}{
		{
			name:       "great deal uses green color",
			level:      domain.DealGreat,
			statusCode: http.StatusNoContent,
			wantColor:  colorGreen,
		},
		{
			name:       "very good deal uses yellow color",
			level:      domain.DealVeryGood,
			statusCode: http.StatusNoContent,
			wantColor:  colorYellow,
		},
		{
			name:       "good deal uses orange color",
			level:      domain.DealGood,
			statusCode: http.StatusNoContent,
			wantColor:  colorOrange,
		},
		{
			name:       "discord returns 400 error",
			level:      domain.DealGreat,
			statusCode: http.StatusBadRequest,
			wantErr:    "discord returned 400",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var received discordWebhookPayload

			srv := httptest.NewServer(
				http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
					assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
					assert.Equal(t, http.MethodPost, r.Method)

					err := json.NewDecoder(r.Body).Decode(&received)
					assert.NoError(t, err)

					w.WriteHeader(tt.statusCode)
				}),
			)
			defer srv.Close()

			digest := testDigest(2)
			digest.Deals[0].Level = tt.level

			d := NewDiscordNotifier(srv.URL)
			err := d.SendDealDigest(context.Background(), digest)

			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}

			require.NoError(t, err)
			require.Len(t, received.Embeds, 1)

			embed := received.Embeds[0]
			assert.Equal(t, tt.wantColor, embed.Color)
			assert.Equal(t, "2 laptop deals in the latest catalog", embed.Title)
			assert.Equal(t, digest.Deals[0].URL, embed.URL)
			assert.Equal(t, "2026-03-01T12:00:00Z", embed.Timestamp)
			require.NotNil(t, embed.Footer)
			assert.Equal(t, "snapshot 0b7e2a1c", embed.Footer.Text)

			require.Len(t, embed.Fields, 2)
			assert.Equal(t, "laptop-a (33% off)", embed.Fields[0].Name)
			assert.Contains(t, embed.Fields[0].Value, "30.000 TL (market 45.000 TL)")
			assert.Contains(t, embed.Fields[0].Value, "https://example.com/laptop-a")
		})
	}
}

func TestDiscordNotifier_FieldLimit(t *testing.T) {
	t.Parallel()

	var received discordWebhookPayload
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&received))
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	require.NoError(t, NewDiscordNotifier(srv.URL).SendDealDigest(context.Background(), testDigest(30)))
	require.Len(t, received.Embeds, 1)
	assert.Len(t, received.Embeds[0].Fields, maxFields)
}

func TestDiscordNotifier_EmptyDigestSkipped(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	require.NoError(t, NewDiscordNotifier(srv.URL).SendDealDigest(context.Background(), &DealDigest{}))
	assert.Zero(t, calls.Load())
}

func TestDiscordNotifier_RetryAfter(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		maxRetries int
		limited    int32
		header     string
		body       string
		wantCalls  int32
		wantErr    error
	}{
		{
			name:       "retries after header wait",
			maxRetries: 2,
			limited:    1,
			header:     "0",
			wantCalls:  2,
		},
		{
			name:       "retries after body wait",
			maxRetries: 2,
			limited:    2,
			body:       `{"retry_after": 0.001}`,
			wantCalls:  3,
		},
		{
			name:       "gives up after max retries",
			maxRetries: 1,
			limited:    5,
			header:     "0",
			wantCalls:  2,
			wantErr:    ErrRateLimited,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var calls atomic.Int32
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				if calls.Add(1) <= tt.limited {
					if tt.header != "" {
						w.Header().Set("Retry-After", tt.header)
					}
					w.WriteHeader(http.StatusTooManyRequests)
					_, _ = w.Write([]byte(tt.body))
					return
				}
				w.WriteHeader(http.StatusNoContent)
			}))
			defer srv.Close()

			d := NewDiscordNotifier(srv.URL, WithMaxRetries(tt.maxRetries), WithMaxRetryWait(10*time.Millisecond))
			err := d.SendDealDigest(context.Background(), testDigest(1))
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
			}
			assert.Equal(t, tt.wantCalls, calls.Load())
		})
	}
}

func TestDiscordNotifier_RetryHonoursContext(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Retry-After", "60")
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer srv.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	err := NewDiscordNotifier(srv.URL).SendDealDigest(ctx, testDigest(1))
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestDiscordNotifier_NetworkError(t *testing.T) {
	t.Parallel()

	d := NewDiscordNotifier("http://127.0.0.1:1") // nothing listening
	err := d.SendDealDigest(context.Background(), testDigest(1))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "sending discord webhook")
}

func TestDiscordNotifier_InvalidWebhookURL(t *testing.T) {
	t.Parallel()

	d := NewDiscordNotifier("://not-a-valid-url")
	err := d.SendDealDigest(context.Background(), testDigest(1))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "creating discord request")
}

func TestWithHTTPClient(t *testing.T) {
	t.Parallel()

	custom := &http.Client{}
	d := NewDiscordNotifier("https://example.com", WithHTTPClient(custom))
	assert.Same(t, custom, d.client)
}

func TestFormatPrice(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "45.000 TL", FormatPrice(45000))
	assert.Equal(t, "1.234.568 TL", FormatPrice(1234567.6))
	assert.Equal(t, "999 TL", FormatPrice(999))
}

func getNotificationHistogramSampleCount() uint64 {
	ch := make(chan prometheus.Metric, 1)
	metrics.NotificationDuration.Collect(ch)
	m := <-ch
	pb := &dto.Metric{}
	_ = m.Write(pb)
	return pb.GetHistogram().GetSampleCount()
}

func TestSendDealDigest_ObservesNotificationDuration(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	before := getNotificationHistogramSampleCount()

	d := NewDiscordNotifier(srv.URL)
	require.NoError(t, d.SendDealDigest(context.Background(), testDigest(1)))

	after := getNotificationHistogramSampleCount()
	assert.Greater(t, after, before, "NotificationDuration histogram sample count should increase")
}
