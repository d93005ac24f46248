package scheduler

import (
	"context"
	"errors"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"btc-mining-sim/internal/observability"
)

type fakeFetcher struct {
	price float64
	err   error
	calls int
}

func (f *fakeFetcher) SpotPrice(ctx context.Context) (float64, error) {
	f.calls++
	return f.price, f.err
}

func TestRefreshNow_UpdatesFeed(t *testing.T) {
	feed := &PriceFeed{}
	_, _, ok := feed.Latest()
	assert.False(t, ok)

	metrics := observability.NewMetrics("test")
	s := NewScheduler(context.Background(), &fakeFetcher{price: 64000}, feed, metrics)
	require.NoError(t, s.RefreshNow())

	price, at, ok := feed.Latest()
	assert.True(t, ok)
	assert.Equal(t, 64000.0, price)
	assert.False(t, at.IsZero())
	assert.Equal(t, 64000.0, testutil.ToFloat64(metrics.LastBTCPrice))
}

func TestRefreshNow_KeepsLastGoodPrice(t *testing.T) {
	feed := &PriceFeed{}
	f := &fakeFetcher{price: 64000}
	s := NewScheduler(context.Background(), f, feed, nil)
	require.NoError(t, s.RefreshNow())

	f.err = errors.New("upstream down")
	assert.Error(t, s.RefreshNow())

	price, _, ok := feed.Latest()
	assert.True(t, ok)
	assert.Equal(t, 64000.0, price)
	assert.EqualError(t, feed.LastError(), "upstream down")
}

func TestRegister(t *testing.T) {
	s := NewScheduler(context.Background(), &fakeFetcher{}, &PriceFeed{}, nil)
	assert.NoError(t, s.Register("@every 10m"))
	assert.Len(t, s.Cron.Entries(), 1)
	assert.Error(t, s.Register("not a schedule"))

	s.Start()
	s.Stop()
}
