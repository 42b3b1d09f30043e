package jobs

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type recordingObserver struct {
	jobs []string
	errs []error
}

func (o *recordingObserver) ObserveJob(job string, err error) {
	o.jobs = append(o.jobs, job)
	o.errs = append(o.errs, err)
}

type fakePurger struct {
	sessions    int64
	drafts      int64
	draftMaxAge time.Duration
	auditDays   int
	err         error
	hadDeadline bool
}

func (f *fakePurger) PurgeExpired(ctx context.Context) (int64, error) {
	_, f.hadDeadline = ctx.Deadline()
	return f.sessions, f.err
}

func (f *fakePurger) PurgeStale(ctx context.Context, maxAge time.Duration) (int64, error) {
	f.draftMaxAge = maxAge
	return f.drafts, f.err
}

func (f *fakePurger) CleanupOldLogs(ctx context.Context, retentionDays int) (int64, error) {
	f.auditDays = retentionDays
	return 0, f.err
}

func TestScheduler_AddJob(t *testing.T) {
	s := NewScheduler(zap.NewNop(), time.Minute, nil)

	require.NoError(t, s.AddJob("b", "@every 1h", func(context.Context) error { return nil }))
	require.NoError(t, s.AddJob("a", "0 */15 * * * *", func(context.Context) error { return nil }))

	assert.Error(t, s.AddJob("a", "@hourly", func(context.Context) error { return nil }), "duplicate name")
	assert.Error(t, s.AddJob("c", "not a cron", func(context.Context) error { return nil }))
	assert.Equal(t, []string{"a", "b"}, s.JobNames())

	require.NoError(t, s.RemoveJob("a"))
	assert.Equal(t, []string{"b"}, s.JobNames())
	assert.Error(t, s.RemoveJob("a"))
}

func TestScheduler_RunNowObservesOutcome(t *testing.T) {
	obs := &recordingObserver{}
	s := NewScheduler(zap.NewNop(), time.Minute, obs)
	boom := errors.New("boom")

	require.NoError(t, s.AddJob("ok", "@hourly", func(context.Context) error { return nil }))
	require.NoError(t, s.AddJob("fails", "@hourly", func(context.Context) error { return boom }))

	assert.NoError(t, s.RunNow("ok"))
	assert.ErrorIs(t, s.RunNow("fails"), boom)
	assert.Error(t, s.RunNow("missing"))

	assert.Equal(t, []string{"ok", "fails"}, obs.jobs)
	assert.Nil(t, obs.errs[0])
	assert.Equal(t, boom, obs.errs[1])
}

func TestScheduler_RunsWithTimeout(t *testing.T) {
	purger := &fakePurger{sessions: 3}
	s := NewScheduler(zap.NewNop(), time.Second, nil)
	require.NoError(t, s.AddJob(SessionCleanupJobName, "@hourly", SessionCleanup(purger, zap.NewNop())))

	require.NoError(t, s.RunNow(SessionCleanupJobName))
	assert.True(t, purger.hadDeadline)
}

func TestRegisterCleanupJobs(t *testing.T) {
	purger := &fakePurger{}
	s := NewScheduler(zap.NewNop(), time.Minute, nil)

	err := RegisterCleanupJobs(s, CleanupConfig{
		SessionCron:        "0 */15 * * * *",
		DraftCron:          "0 30 2 * * *",
		DraftMaxAge:        30 * 24 * time.Hour,
		AuditCron:          "0 0 3 * * *",
		AuditRetentionDays: 365,
	}, purger, purger, purger, zap.NewNop())
	require.NoError(t, err)
	assert.Equal(t, []string{AuditCleanupJobName, DraftCleanupJobName, SessionCleanupJobName}, s.JobNames())

	require.NoError(t, s.RunNow(DraftCleanupJobName))
	assert.Equal(t, 30*24*time.Hour, purger.draftMaxAge)
	require.NoError(t, s.RunNow(AuditCleanupJobName))
	assert.Equal(t, 365, purger.auditDays)
}

func TestRegisterCleanupJobs_SkipsDisabled(t *testing.T) {
	purger := &fakePurger{}
	s := NewScheduler(zap.NewNop(), time.Minute, nil)

	err := RegisterCleanupJobs(s, CleanupConfig{
		SessionCron: "0 */15 * * * *",
		DraftCron:   "0 30 2 * * *",
		AuditCron:   "0 0 3 * * *",
	}, purger, purger, purger, zap.NewNop())
	require.NoError(t, err)
	assert.Equal(t, []string{SessionCleanupJobName}, s.JobNames())
}

func TestCleanupJobs_PropagateErrors(t *testing.T) {
	boom := errors.New("db down")
	purger := &fakePurger{err: boom}
	ctx := context.Background()

	assert.ErrorIs(t, SessionCleanup(purger, zap.NewNop())(ctx), boom)
	assert.ErrorIs(t, DraftCleanup(purger, time.Hour, zap.NewNop())(ctx), boom)
	assert.ErrorIs(t, AuditCleanup(purger, 30)(ctx), boom)
}
