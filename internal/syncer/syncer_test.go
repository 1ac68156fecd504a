package syncer

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/recallnet/js-recall-sub004/internal/alert"
	"github.com/recallnet/js-recall-sub004/internal/domain/model"
	"github.com/recallnet/js-recall-sub004/internal/swap"
)

const wallet = "0x1111111111111111111111111111111111111111"

type syncCall struct {
	wallet string
	since  swap.Since
	chains []model.Chain
}

type fakeProvider struct {
	mu     sync.Mutex
	calls  []syncCall
	result func(c model.Chain) (swap.SyncResult, error)
}

func (p *fakeProvider) Sync(_ context.Context, w string, since swap.Since, chains []model.Chain) (swap.SyncResult, error) {
	p.mu.Lock()
	p.calls = append(p.calls, syncCall{wallet: w, since: since, chains: chains})
	p.mu.Unlock()
	return p.result(chains[0])
}

type cursorKey struct {
	wallet string
	chain  model.Chain
}

type fakeCursors struct {
	mu     sync.Mutex
	blocks map[cursorKey]int64
	getErr error
}

func newFakeCursors() *fakeCursors {
	return &fakeCursors{blocks: map[cursorKey]int64{}}
}

func (f *fakeCursors) Get(_ context.Context, w string, c model.Chain) (int64, bool, error) {
	if f.getErr != nil {
		return 0, false, f.getErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	b, ok := f.blocks[cursorKey{w, c}]
	return b, ok, nil
}

func (f *fakeCursors) Set(_ context.Context, w string, c model.Chain, block int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.blocks[cursorKey{w, c}] = block
	return nil
}

type fakePublisher struct {
	mu        sync.Mutex
	trades    []model.Trade
	transfers []model.Transfer
	err       error
}

func (p *fakePublisher) PublishTrades(_ context.Context, trades []model.Trade) error {
	if p.err != nil {
		return p.err
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	p.trades = append(p.trades, trades...)
	return nil
}

func (p *fakePublisher) PublishTransfers(_ context.Context, _ string, transfers []model.Transfer) error {
	if p.err != nil {
		return p.err
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	p.transfers = append(p.transfers, transfers...)
	return nil
}

func headResult(c model.Chain, head int64, trades ...model.Trade) swap.SyncResult {
	return swap.SyncResult{
		TradesResult: swap.TradesResult{Trades: trades, SkippedBlocks: map[model.Chain]int64{}},
		Heads:        map[model.Chain]int64{c: head},
		Failed:       map[model.Chain]error{},
	}
}

var fixedNow = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

func newTestSyncer(p Provider, cursors CursorStore, pub Publisher, chains ...model.Chain) *Syncer {
	return New(p, cursors, pub, Config{
		Wallets:            []string{wallet},
		Chains:             chains,
		InitialLookback:    time.Hour,
		UnhealthyThreshold: 2,
	}, nil, WithClock(func() time.Time { return fixedNow }))
}

func TestRunOnce_FirstCycleUsesLookbackAndStoresHeadPlusOne(t *testing.T) {
	provider := &fakeProvider{result: func(c model.Chain) (swap.SyncResult, error) {
		return headResult(c, 500, model.Trade{TxHash: "0xa", Chain: c}), nil
	}}
	cursors := newFakeCursors()
	pub := &fakePublisher{}

	s := newTestSyncer(provider, cursors, pub, model.ChainBase)
	require.NoError(t, s.RunOnce(context.Background()))

	require.Len(t, provider.calls, 1)
	call := provider.calls[0]
	assert.False(t, call.since.IsBlock())
	assert.Equal(t, fixedNow.Add(-time.Hour), call.since.Time)
	assert.Equal(t, []model.Chain{model.ChainBase}, call.chains)

	assert.Equal(t, int64(501), cursors.blocks[cursorKey{wallet, model.ChainBase}])
	assert.Len(t, pub.trades, 1)
}

func TestRunOnce_ResumesFromStoredCursor(t *testing.T) {
	provider := &fakeProvider{result: func(c model.Chain) (swap.SyncResult, error) {
		return headResult(c, 900), nil
	}}
	cursors := newFakeCursors()
	cursors.blocks[cursorKey{wallet, model.ChainEthereum}] = 750

	s := newTestSyncer(provider, cursors, &fakePublisher{}, model.ChainEthereum)
	require.NoError(t, s.RunOnce(context.Background()))

	require.Len(t, provider.calls, 1)
	require.True(t, provider.calls[0].since.IsBlock())
	assert.Equal(t, int64(750), *provider.calls[0].since.Block)
	assert.Equal(t, int64(901), cursors.blocks[cursorKey{wallet, model.ChainEthereum}])
}

func TestRunOnce_SkippedBlockBecomesCursor(t *testing.T) {
	provider := &fakeProvider{result: func(c model.Chain) (swap.SyncResult, error) {
		res := headResult(c, 900)
		res.SkippedBlocks[c] = 820
		return res, nil
	}}
	cursors := newFakeCursors()

	s := newTestSyncer(provider, cursors, &fakePublisher{}, model.ChainBase)
	require.NoError(t, s.RunOnce(context.Background()))
	assert.Equal(t, int64(820), cursors.blocks[cursorKey{wallet, model.ChainBase}])
}

func TestRunOnce_UnknownHeadLeavesCursor(t *testing.T) {
	provider := &fakeProvider{result: func(c model.Chain) (swap.SyncResult, error) {
		return swap.SyncResult{
			TradesResult: swap.TradesResult{SkippedBlocks: map[model.Chain]int64{}},
			Heads:        map[model.Chain]int64{},
			Failed:       map[model.Chain]error{},
		}, nil
	}}
	cursors := newFakeCursors()
	cursors.blocks[cursorKey{wallet, model.ChainBase}] = 42

	s := newTestSyncer(provider, cursors, &fakePublisher{}, model.ChainBase)
	require.NoError(t, s.RunOnce(context.Background()))
	assert.Equal(t, int64(42), cursors.blocks[cursorKey{wallet, model.ChainBase}])
}

func TestRunOnce_ChainFailureIsolated(t *testing.T) {
	provider := &fakeProvider{result: func(c model.Chain) (swap.SyncResult, error) {
		if c == model.ChainEthereum {
			res := headResult(c, 0)
			delete(res.Heads, c)
			res.Failed[c] = errors.New("head unavailable")
			return res, nil
		}
		return headResult(c, 100), nil
	}}
	cursors := newFakeCursors()

	s := newTestSyncer(provider, cursors, &fakePublisher{}, model.ChainBase, model.ChainEthereum)
	err := s.RunOnce(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "head unavailable")

	assert.Equal(t, int64(101), cursors.blocks[cursorKey{wallet, model.ChainBase}])
	_, stored := cursors.blocks[cursorKey{wallet, model.ChainEthereum}]
	assert.False(t, stored)
}

func TestRunOnce_PublishFailureKeepsCursor(t *testing.T) {
	provider := &fakeProvider{result: func(c model.Chain) (swap.SyncResult, error) {
		return headResult(c, 100, model.Trade{TxHash: "0xa"}), nil
	}}
	cursors := newFakeCursors()
	pub := &fakePublisher{err: errors.New("broker down")}

	s := newTestSyncer(provider, cursors, pub, model.ChainBase)
	err := s.RunOnce(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "publish trades")
	assert.Empty(t, cursors.blocks)
}

func TestRunOnce_CursorLoadError(t *testing.T) {
	provider := &fakeProvider{result: func(c model.Chain) (swap.SyncResult, error) {
		return headResult(c, 100), nil
	}}
	cursors := newFakeCursors()
	cursors.getErr = errors.New("redis unavailable")

	s := newTestSyncer(provider, cursors, &fakePublisher{}, model.ChainBase)
	err := s.RunOnce(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "load cursor")
	assert.Empty(t, provider.calls)
}

func TestHealth_TracksConsecutiveFailures(t *testing.T) {
	provider := &fakeProvider{result: func(c model.Chain) (swap.SyncResult, error) {
		return swap.SyncResult{}, errors.New("boom")
	}}
	s := newTestSyncer(provider, newFakeCursors(), &fakePublisher{}, model.ChainBase)

	require.Error(t, s.RunOnce(context.Background()))
	assert.True(t, s.Healthy())
	require.Error(t, s.RunOnce(context.Background()))
	assert.False(t, s.Healthy())

	snaps := s.Health()
	require.Len(t, snaps, 1)
	assert.Equal(t, "base", snaps[0].Chain)
	assert.Equal(t, 2, snaps[0].ConsecutiveFailures)
}

func TestRun_StopsOnCancel(t *testing.T) {
	provider := &fakeProvider{result: func(c model.Chain) (swap.SyncResult, error) {
		return headResult(c, 1), nil
	}}
	s := New(provider, newFakeCursors(), &fakePublisher{}, Config{
		Wallets:  []string{wallet},
		Chains:   []model.Chain{model.ChainBase},
		Interval: time.Hour,
	}, nil)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.Run(ctx) }()

	require.Eventually(t, func() bool {
		provider.mu.Lock()
		defer provider.mu.Unlock()
		return len(provider.calls) == 1
	}, time.Second, 5*time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(time.Second):
		t.Fatal("Run did not return after cancel")
	}
}

type recordingAlerter struct {
	mu     sync.Mutex
	alerts []alert.Alert
}

func (r *recordingAlerter) Send(_ context.Context, a alert.Alert) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.alerts = append(r.alerts, a)
	return nil
}

func TestAlerts_UnhealthyThenRecovered(t *testing.T) {
	var failing atomic.Bool
	failing.Store(true)
	provider := &fakeProvider{result: func(c model.Chain) (swap.SyncResult, error) {
		if failing.Load() {
			return swap.SyncResult{}, errors.New("rpc down")
		}
		return headResult(c, 10), nil
	}}
	rec := &recordingAlerter{}
	s := New(provider, newFakeCursors(), &fakePublisher{}, Config{
		Wallets:            []string{wallet},
		Chains:             []model.Chain{model.ChainBase},
		UnhealthyThreshold: 2,
	}, nil, WithAlerter(rec))

	require.Error(t, s.RunOnce(context.Background()))
	assert.Empty(t, rec.alerts)
	require.Error(t, s.RunOnce(context.Background()))
	require.Len(t, rec.alerts, 1)
	assert.Equal(t, alert.AlertTypeUnhealthy, rec.alerts[0].Type)
	assert.Equal(t, "base", rec.alerts[0].Chain)
	assert.Contains(t, rec.alerts[0].Fields["last_error"], "rpc down")

	failing.Store(false)
	require.NoError(t, s.RunOnce(context.Background()))
	require.Len(t, rec.alerts, 2)
	assert.Equal(t, alert.AlertTypeRecovery, rec.alerts[1].Type)
}
