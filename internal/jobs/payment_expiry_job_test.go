package jobs

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"marketplace/internal/core/application/usecases/commands"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockExpiryHandler struct{ mock.Mock }

func (m *MockExpiryHandler) Handle(ctx context.Context, cmd commands.ExpirePendingPaymentsCommand) (int, error) {
	args := m.Called(ctx, cmd)
	return args.Int(0), args.Error(1)
}

type stubJob struct {
	name     string
	startErr error
	log      *[]string
}

func (j stubJob) Name() string { return j.name }

func (j stubJob) Start() error {
	if j.startErr != nil {
		return j.startErr
	}
	*j.log = append(*j.log, "start "+j.name)
	return nil
}

func (j stubJob) Stop() { *j.log = append(*j.log, "stop "+j.name) }

var discard = slog.New(slog.NewTextHandler(io.Discard, nil))

func newTestJob(handler PaymentExpiryHandler, now time.Time) *PaymentExpiryJob {
	job := NewPaymentExpiryJob(handler, 15*time.Minute, discard)
	job.batchSize = 2
	job.now = func() time.Time { return now }
	return job
}

func TestPaymentExpiryJob_RunOnce(t *testing.T) {
	now := time.Date(2026, 6, 10, 12, 0, 0, 0, time.UTC)
	wantCutoff := now.Add(-15 * time.Minute)
	cutoffIs := mock.MatchedBy(func(cmd commands.ExpirePendingPaymentsCommand) bool {
		return cmd.Cutoff().Equal(wantCutoff) && cmd.Limit() == 2
	})

	t.Run("drains full batches", func(t *testing.T) {
		handler := &MockExpiryHandler{}
		handler.On("Handle", mock.Anything, cutoffIs).Return(2, nil).Twice()
		handler.On("Handle", mock.Anything, cutoffIs).Return(1, nil).Once()

		got := newTestJob(handler, now).RunOnce(context.Background())

		assert.Equal(t, 5, got)
		handler.AssertExpectations(t)
	})

	t.Run("nothing to expire", func(t *testing.T) {
		handler := &MockExpiryHandler{}
		handler.On("Handle", mock.Anything, cutoffIs).Return(0, nil).Once()

		assert.Equal(t, 0, newTestJob(handler, now).RunOnce(context.Background()))
		handler.AssertExpectations(t)
	})

	t.Run("stops at the first failure", func(t *testing.T) {
		handler := &MockExpiryHandler{}
		handler.On("Handle", mock.Anything, cutoffIs).Return(2, nil).Once()
		handler.On("Handle", mock.Anything, cutoffIs).Return(0, errors.New("connection reset")).Once()

		assert.Equal(t, 2, newTestJob(handler, now).RunOnce(context.Background()))
		handler.AssertExpectations(t)
	})

	t.Run("overlapping run is skipped", func(t *testing.T) {
		handler := &MockExpiryHandler{}
		job := newTestJob(handler, now)
		job.running.Lock()
		defer job.running.Unlock()

		assert.Equal(t, 0, job.RunOnce(context.Background()))
		handler.AssertNotCalled(t, "Handle", mock.Anything, mock.Anything)
	})
}

func TestPaymentExpiryJob_StartStop(t *testing.T) {
	job := NewPaymentExpiryJob(&MockExpiryHandler{}, time.Minute, discard)

	require.NoError(t, job.Start())
	assert.Len(t, job.cron.Entries(), 1)
	job.Stop()
}

func TestJobManager(t *testing.T) {
	t.Run("starts in order and stops in reverse", func(t *testing.T) {
		var log []string
		jm := NewJobManager(stubJob{name: "a", log: &log}, stubJob{name: "b", log: &log})

		require.NoError(t, jm.StartAll())
		jm.StopAll()

		assert.Equal(t, []string{"start a", "start b", "stop b", "stop a"}, log)
	})

	t.Run("a failed start stops the started jobs", func(t *testing.T) {
		var log []string
		jm := NewJobManager(
			stubJob{name: "a", log: &log},
			stubJob{name: "b", log: &log, startErr: errors.New("bad schedule")},
		)

		err := jm.StartAll()

		require.ErrorContains(t, err, "failed to start b job")
		assert.Equal(t, []string{"start a", "stop a"}, log)
	})
}
