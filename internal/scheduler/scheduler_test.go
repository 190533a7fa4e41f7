package scheduler

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/smallbiznis/ledgerdesk/internal/clock"
	ledgerdomain "github.com/smallbiznis/ledgerdesk/internal/ledgerstore/domain"
	reconciliationdomain "github.com/smallbiznis/ledgerdesk/internal/reconciliation/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeRefresher struct {
	calls   int
	lastWin ledgerdomain.DateWindow
	err     error
}

func (f *fakeRefresher) Refresh(ctx context.Context, window ledgerdomain.DateWindow) (reconciliationdomain.RefreshResult, error) {
	f.calls++
	f.lastWin = window
	if f.err != nil {
		return reconciliationdomain.RefreshResult{}, f.err
	}
	return reconciliationdomain.RefreshResult{CycleID: "cycle-1", Window: window}, nil
}

func (f *fakeRefresher) Snapshot() (reconciliationdomain.RefreshResult, error) {
	return reconciliationdomain.RefreshResult{}, reconciliationdomain.ErrNoSnapshot
}

func (f *fakeRefresher) Filtered(reconciliationdomain.Filter) (reconciliationdomain.FilteredView, error) {
	return reconciliationdomain.FilteredView{}, reconciliationdomain.ErrNoSnapshot
}

func newTestScheduler(t *testing.T, svc reconciliationdomain.Service, now time.Time) *Scheduler {
	t.Helper()
	sched, err := New(Params{
		Log:               zap.NewNop(),
		Clock:             clock.NewFakeClock(now),
		ReconciliationSvc: svc,
		Config:            Config{WindowDays: 30},
	})
	require.NoError(t, err)
	return sched
}

func TestNew_RequiresDependencies(t *testing.T) {
	_, err := New(Params{Log: zap.NewNop()})
	assert.ErrorIs(t, err, ErrInvalidConfig)
}

func TestWindow_RollsBackConfiguredDays(t *testing.T) {
	now := time.Date(2026, 6, 10, 12, 0, 0, 0, time.UTC)
	sched := newTestScheduler(t, &fakeRefresher{}, now)

	window := sched.Window()
	assert.True(t, window.To.Equal(now))
	assert.True(t, window.From.Equal(now.AddDate(0, 0, -30)))
}

func TestRunOnce_RefreshesRollingWindow(t *testing.T) {
	now := time.Date(2026, 6, 10, 12, 0, 0, 0, time.UTC)
	fake := &fakeRefresher{}
	sched := newTestScheduler(t, fake, now)

	require.NoError(t, sched.RunOnce(context.Background()))
	assert.Equal(t, 1, fake.calls)
	assert.True(t, fake.lastWin.To.Equal(now))
}

func TestRunOnce_PropagatesRefreshError(t *testing.T) {
	fake := &fakeRefresher{err: errors.New("replica down")}
	sched := newTestScheduler(t, fake, time.Now())

	err := sched.RunOnce(context.Background())
	assert.Error(t, err)
}
