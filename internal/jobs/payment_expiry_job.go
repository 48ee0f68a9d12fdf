package jobs

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"marketplace/internal/core/application/usecases/commands"

	"github.com/robfig/cron/v3"
)

const (
	PaymentExpirySchedule  = "0 * * * * *"
	DefaultExpiryBatchSize = 100
)

// PaymentExpiryHandler fails pending gateway payments older than a cutoff.
type PaymentExpiryHandler interface {
	Handle(ctx context.Context, cmd commands.ExpirePendingPaymentsCommand) (int, error)
}

// PaymentExpiryJob fails gateway payments whose callback never arrived.
// Runs at the start of every minute.
type PaymentExpiryJob struct {
	handler   PaymentExpiryHandler
	ttl       time.Duration
	batchSize int
	now       func() time.Time
	cron      *cron.Cron
	logger    *slog.Logger

	running sync.Mutex
}

// NewPaymentExpiryJob fails payments still pending ttl after they were posted.
func NewPaymentExpiryJob(handler PaymentExpiryHandler, ttl time.Duration, logger *slog.Logger) *PaymentExpiryJob {
	return &PaymentExpiryJob{
		handler:   handler,
		ttl:       ttl,
		batchSize: DefaultExpiryBatchSize,
		now:       time.Now,
		cron:      cron.New(cron.WithSeconds()),
		logger:    logger.With("component", "payment_expiry_job"),
	}
}

func (j *PaymentExpiryJob) Name() string { return "payment expiry" }

// Start schedules the sweep. It fails if the schedule cannot be registered.
func (j *PaymentExpiryJob) Start() error {
	if _, err := j.cron.AddFunc(PaymentExpirySchedule, func() {
		j.RunOnce(context.Background())
	}); err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Payment expiry job started", "ttl", j.ttl)
	return nil
}

// Stop halts the scheduler and waits for a running sweep to return.
func (j *PaymentExpiryJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.InfoContext(context.Background(), "Payment expiry job stopped")
}

// RunOnce expires full batches until one comes back short. A run still in
// progress when the next tick fires makes that tick a no-op.
func (j *PaymentExpiryJob) RunOnce(ctx context.Context) int {
	if !j.running.TryLock() {
		return 0
	}
	defer j.running.Unlock()

	cutoff := j.now().UTC().Add(-j.ttl)
	total := 0
	for {
		cmd, err := commands.NewExpirePendingPaymentsCommand(cutoff, j.batchSize)
		if err != nil {
			j.logger.ErrorContext(ctx, "Payment expiry command rejected", "error", err)
			return total
		}
		expired, err := j.handler.Handle(ctx, cmd)
		if err != nil {
			j.logger.ErrorContext(ctx, "Payment expiry job failed", "error", err)
			return total
		}
		total += expired
		if expired < j.batchSize {
			break
		}
	}

	if total > 0 {
		j.logger.InfoContext(ctx, "Expired pending payments", "count", total, "cutoff", cutoff)
	}
	return total
}
