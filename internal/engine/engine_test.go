package engine

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	ptestutil "github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	"github.com/donaldgifford/laptop-advisor/internal/metrics"
	"github.com/donaldgifford/laptop-advisor/internal/notify"
	notifyMocks "github.com/donaldgifford/laptop-advisor/internal/notify/mocks"
	sourceMocks "github.com/donaldgifford/laptop-advisor/internal/source/mocks"
	"github.com/donaldgifford/laptop-advisor/pkg/catalog"
	"github.com/donaldgifford/laptop-advisor/pkg/deals"
	domain "github.com/donaldgifford/laptop-advisor/pkg/types"
)

// quietLogger returns a logger that discards output for tests.
func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

func row(name, price string) domain.RawListing {
	return domain.RawListing{
		Name:       name,
		Price:      price,
		ScreenSize: "15.6",
		SSD:        "512GB",
		CPU:        "AMD Ryzen 7 7735HS",
		RAM:        "16GB",
		OS:         "FreeDOS",
		GPU:        "NVIDIA RTX 4060",
		URL:        "https://example.com/" + name,
	}
}

// catalogRows has one listing a third below its three peers.
func catalogRows() []domain.RawListing {
	return []domain.RawListing{
		row("Lenovo Legion 5", "44.000 TL"),
		row("Asus TUF A15", "45.000 TL"),
		row("MSI Katana 15", "46.000 TL"),
		row("Casper Excalibur G870", "30.000 TL"),
	}
}

func mockSource(t *testing.T) *sourceMocks.MockSource {
	t.Helper()
	ms := sourceMocks.NewMockSource(t)
	ms.EXPECT().Name().Return("mock").Maybe()
	return ms
}

func newTestEngine(
	ms *sourceMocks.MockSource,
	n notify.Notifier,
	clock *fakeClock,
	opts ...EngineOption,
) *Engine {
	base := []EngineOption{WithLogger(quietLogger()), WithClock(clock.Now)}
	return NewEngine(ms,
		catalog.NewProcessor(nil, catalog.WithLogger(quietLogger())),
		deals.NewDetector(deals.WithLogger(quietLogger()), deals.WithMaxResults(0)),
		n,
		append(base, opts...)...,
	)
}

func TestNewEngine_Defaults(t *testing.T) {
	t.Parallel()

	eng := NewEngine(mockSource(t), catalog.NewProcessor(nil), deals.NewDetector(), nil)
	assert.Equal(t, DefaultCacheTTL, eng.cacheTTL)
	assert.Equal(t, DefaultDigestSize, eng.digestSize)
	assert.InDelta(t, deals.DefaultThreshold, eng.dealThreshold, 0.001)
	assert.Equal(t, deals.DefaultMaxResults, eng.dealLimit)
	assert.NotNil(t, eng.log)
	assert.NotNil(t, eng.tracer)
}

func TestEngine_SnapshotCaching(t *testing.T) {
	t.Parallel()

	ms := mockSource(t)
	ms.EXPECT().Load(mock.Anything).Return(catalogRows(), nil).Twice()
	mn := notifyMocks.NewMockNotifier(t)
	clock := newFakeClock()
	eng := newTestEngine(ms, mn, clock, WithCacheTTL(time.Minute))

	first, err := eng.Snapshot(context.Background())
	require.NoError(t, err)
	assert.Len(t, first.Listings(), 4)
	assert.Equal(t, "mock", first.Source)
	assert.NotEmpty(t, first.TablesVersion)

	clock.Advance(30 * time.Second)
	cached, err := eng.Snapshot(context.Background())
	require.NoError(t, err)
	assert.Same(t, first, cached, "fresh snapshot is served from cache")

	before := ptestutil.ToFloat64(metrics.SnapshotReloadsTotal.WithLabelValues(reloadUnchanged))
	clock.Advance(time.Minute)
	reloaded, err := eng.Snapshot(context.Background())
	require.NoError(t, err)
	assert.Equal(t, first.ID, reloaded.ID, "unchanged rows keep the snapshot identity")
	assert.Same(t, first.Catalog, reloaded.Catalog)
	assert.True(t, reloaded.LoadedAt.After(first.LoadedAt))
	assert.GreaterOrEqual(t, ptestutil.ToFloat64(metrics.SnapshotReloadsTotal.WithLabelValues(reloadUnchanged)), before+1)
}

func TestEngine_RefreshChangedSendsDigest(t *testing.T) {
	t.Parallel()

	changed := append(catalogRows(), row("HP Victus 16", "31.000 TL"))

	ms := mockSource(t)
	ms.EXPECT().Load(mock.Anything).Return(catalogRows(), nil).Once()
	ms.EXPECT().Load(mock.Anything).Return(changed, nil).Once()

	var got *notify.DealDigest
	mn := notifyMocks.NewMockNotifier(t)
	mn.EXPECT().SendDealDigest(mock.Anything, mock.AnythingOfType("*notify.DealDigest")).
		Run(func(_ context.Context, d *notify.DealDigest) { got = d }).
		Return(nil).Once()

	eng := newTestEngine(ms, mn, newFakeClock(), WithDigestSize(1))

	first, err := eng.Refresh(context.Background())
	require.NoError(t, err)

	second, err := eng.Refresh(context.Background())
	require.NoError(t, err)
	assert.NotEqual(t, first.ID, second.ID)
	assert.NotEqual(t, first.Digest, second.Digest)
	assert.Len(t, second.Listings(), 5)

	eng.WaitDigests()
	require.NotNil(t, got)
	assert.Equal(t, second.ID.String(), got.SnapshotID)
	assert.Equal(t, 5, got.Listings)
	require.Len(t, got.Deals, 1, "digest is capped at the digest size")
	assert.Equal(t, "Casper Excalibur G870", got.Deals[0].Name)
	assert.Equal(t, 1, got.Summary.Count)
}

func TestEngine_DigestFailureDoesNotFailRefresh(t *testing.T) {
	t.Parallel()

	ms := mockSource(t)
	ms.EXPECT().Load(mock.Anything).Return(catalogRows()[:3], nil).Once()
	ms.EXPECT().Load(mock.Anything).Return(catalogRows(), nil).Once()
	mn := notifyMocks.NewMockNotifier(t)
	mn.EXPECT().SendDealDigest(mock.Anything, mock.Anything).Return(errors.New("webhook down")).Once()

	eng := newTestEngine(ms, mn, newFakeClock())
	_, err := eng.Refresh(context.Background())
	require.NoError(t, err)
	snap, err := eng.Refresh(context.Background())
	require.NoError(t, err)
	assert.Len(t, snap.Listings(), 4)
	eng.WaitDigests()
}

func TestEngine_SlowDigestDoesNotBlockRefresh(t *testing.T) {
	t.Parallel()

	ms := mockSource(t)
	ms.EXPECT().Load(mock.Anything).Return(catalogRows()[:3], nil).Once()
	ms.EXPECT().Load(mock.Anything).Return(catalogRows(), nil).Once()

	release := make(chan struct{})
	sent := make(chan struct{})
	mn := notifyMocks.NewMockNotifier(t)
	mn.EXPECT().SendDealDigest(mock.Anything, mock.Anything).
		Run(func(ctx context.Context, _ *notify.DealDigest) {
			_, hasDeadline := ctx.Deadline()
			assert.True(t, hasDeadline, "digest runs under its own timeout")
			<-release
			close(sent)
		}).
		Return(nil).Once()

	eng := newTestEngine(ms, mn, newFakeClock())
	_, err := eng.Refresh(context.Background())
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		_, err := eng.Refresh(ctx)
		done <- err
	}()

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("Refresh waited on the digest notifier")
	}

	cancel()
	close(release)
	eng.WaitDigests()
	select {
	case <-sent:
	default:
		t.Fatal("digest was not sent")
	}
}

func TestEngine_NoData(t *testing.T) {
	t.Parallel()

	ms := mockSource(t)
	ms.EXPECT().Load(mock.Anything).Return([]domain.RawListing{}, nil)
	eng := newTestEngine(ms, nil, newFakeClock())

	_, err := eng.Snapshot(context.Background())
	assert.ErrorIs(t, err, catalog.ErrNoData)

	_, err = eng.Recommend(context.Background(), &domain.Preferences{MinBudget: 0, MaxBudget: 50000})
	require.Error(t, err)
}

func TestEngine_ServesStaleSnapshotOnReloadError(t *testing.T) {
	t.Parallel()

	boom := errors.New("file vanished")
	ms := mockSource(t)
	ms.EXPECT().Load(mock.Anything).Return(catalogRows(), nil).Once()
	ms.EXPECT().Load(mock.Anything).Return(nil, boom)
	clock := newFakeClock()
	eng := newTestEngine(ms, nil, clock, WithCacheTTL(time.Minute))

	first, err := eng.Snapshot(context.Background())
	require.NoError(t, err)

	clock.Advance(2 * time.Minute)
	stale, err := eng.Snapshot(context.Background())
	require.NoError(t, err)
	assert.Same(t, first, stale)

	_, err = eng.Refresh(context.Background())
	require.ErrorIs(t, err, boom)
	assert.Contains(t, err.Error(), "loading catalog from mock")
}

func TestEngine_Recommend(t *testing.T) {
	t.Parallel()

	ms := mockSource(t)
	ms.EXPECT().Load(mock.Anything).Return(catalogRows(), nil).Once()
	eng := newTestEngine(ms, nil, newFakeClock(), WithTopK(3))
	_, err := eng.Snapshot(context.Background())
	require.NoError(t, err)

	tests := []struct {
		name      string
		prefs     domain.Preferences
		wantFound int
		wantMatch int
		wantErr   error
	}{
		{
			name:      "whole catalog within budget",
			prefs:     domain.Preferences{MinBudget: 20000, MaxBudget: 50000, Purpose: domain.PurposeGaming},
			wantFound: 3,
			wantMatch: 4,
		},
		{
			name:      "budget excludes everything",
			prefs:     domain.Preferences{MinBudget: 1000, MaxBudget: 2000, Purpose: domain.PurposeGaming},
			wantFound: 0,
			wantMatch: 0,
		},
		{
			name:    "invalid preferences",
			prefs:   domain.Preferences{MaxBudget: -1},
			wantErr: ErrInvalidPreferences,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			rec, err := eng.Recommend(context.Background(), &tt.prefs)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.NotNil(t, rec.Recommendations)
			assert.Len(t, rec.Recommendations, tt.wantFound)
			assert.Equal(t, tt.wantMatch, rec.Summary.Matched)
			assert.Equal(t, 4, rec.Summary.Total)
			for i := 1; i < len(rec.Recommendations); i++ {
				assert.GreaterOrEqual(t, rec.Recommendations[i-1].Score, rec.Recommendations[i].Score)
			}
		})
	}
}

func TestEngine_Deals(t *testing.T) {
	t.Parallel()

	ms := mockSource(t)
	ms.EXPECT().Load(mock.Anything).Return(catalogRows(), nil).Once()
	eng := newTestEngine(ms, nil, newFakeClock())

	rep, err := eng.Deals(context.Background(), -1, 0)
	require.NoError(t, err)
	assert.InDelta(t, deals.DefaultThreshold, rep.Threshold, 0.001)
	require.Len(t, rep.Deals, 1)
	assert.Equal(t, "Casper Excalibur G870", rep.Deals[0].Name)
	assert.InDelta(t, 45000.0, rep.Deals[0].MarketPriceEstimate, 0.001)
	assert.Equal(t, domain.DealGreat, rep.Deals[0].Level)
	assert.Equal(t, 1, rep.Summary.Count)

	rep, err = eng.Deals(context.Background(), 50, 0)
	require.NoError(t, err)
	assert.NotNil(t, rep.Deals)
	assert.Empty(t, rep.Deals)

	rep, err = eng.Deals(context.Background(), 0, 2)
	require.NoError(t, err)
	assert.LessOrEqual(t, len(rep.Deals), 2)
}

func TestEngine_Market(t *testing.T) {
	t.Parallel()

	ms := mockSource(t)
	ms.EXPECT().Load(mock.Anything).Return(catalogRows(), nil).Once()
	eng := newTestEngine(ms, nil, newFakeClock())

	rep, err := eng.Market(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 4, rep.Stats.TotalListings)
	assert.Equal(t, 4, rep.Stats.DedicatedGPUCount)
	assert.InDelta(t, 41250.0, rep.Stats.AveragePrice, 0.001)
}

// countingSource blocks every load until release is closed.
type countingSource struct {
	calls   atomic.Int32
	release chan struct{}
}

func (s *countingSource) Load(context.Context) ([]domain.RawListing, error) {
	s.calls.Add(1)
	<-s.release
	return catalogRows(), nil
}

func (s *countingSource) Name() string { return "counting" }

func TestEngine_ConcurrentReloadsCollapse(t *testing.T) {
	t.Parallel()

	src := &countingSource{release: make(chan struct{})}
	eng := NewEngine(src,
		catalog.NewProcessor(nil, catalog.WithLogger(quietLogger())),
		deals.NewDetector(deals.WithLogger(quietLogger())),
		nil,
		WithLogger(quietLogger()),
	)

	const callers = 8
	var wg sync.WaitGroup
	ids := make([]string, callers)
	for i := range callers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			snap, err := eng.Snapshot(context.Background())
			assert.NoError(t, err)
			if snap != nil {
				ids[i] = snap.ID.String()
			}
		}()
	}

	require.Eventually(t, func() bool { return src.calls.Load() == 1 }, time.Second, time.Millisecond)
	time.Sleep(50 * time.Millisecond)
	close(src.release)
	wg.Wait()

	assert.Equal(t, int32(1), src.calls.Load())
	for _, id := range ids {
		assert.Equal(t, ids[0], id)
	}
}

func TestEngine_ReloadHonoursCallerContext(t *testing.T) {
	t.Parallel()

	src := &countingSource{release: make(chan struct{})}
	t.Cleanup(func() { close(src.release) })
	eng := NewEngine(src, catalog.NewProcessor(nil), deals.NewDetector(), nil, WithLogger(quietLogger()))

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	_, err := eng.Refresh(ctx)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestEngine_Spans(t *testing.T) {
	t.Parallel()

	sr := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(sr))

	ms := mockSource(t)
	ms.EXPECT().Load(mock.Anything).Return(catalogRows(), nil).Once()
	eng := newTestEngine(ms, nil, newFakeClock(), WithTracer(tp.Tracer("test")))

	_, err := eng.Recommend(context.Background(), &domain.Preferences{MaxBudget: 50000})
	require.NoError(t, err)
	_, err = eng.Recommend(context.Background(), &domain.Preferences{MaxBudget: -5})
	require.Error(t, err)

	names := make(map[string]int)
	var failed int
	for _, s := range sr.Ended() {
		names[s.Name()]++
		if s.Status().Code == codes.Error {
			failed++
		}
	}
	assert.Equal(t, 1, names["engine.load"])
	assert.Equal(t, 2, names["engine.Recommend"])
	assert.Equal(t, 1, failed)
}

func TestDigest(t *testing.T) {
	t.Parallel()

	a := catalogRows()
	b := catalogRows()
	assert.Equal(t, Digest(a), Digest(b))
	assert.Len(t, Digest(a), 64)

	b[0], b[1] = b[1], b[0]
	assert.NotEqual(t, Digest(a), Digest(b), "row order is part of the digest")

	c := catalogRows()
	c[3].URL = "https://example.com/other"
	assert.NotEqual(t, Digest(a), Digest(c))

	assert.Equal(t, Digest(nil), Digest([]domain.RawListing{}))
}
