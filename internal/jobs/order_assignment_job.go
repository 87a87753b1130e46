package jobs

import (
	"context"
	"errors"
	"log/slog"

	"dispatch/internal/core/application/usecases/commands"
	"dispatch/internal/pkg/errs"

	"github.com/robfig/cron/v3"
)

// OrderAssignmentJob periodically sweeps for orders still waiting on a
// courier and assigns the oldest one to the closest courier in range. Covers
// orders whose initial offer reached nobody, for example when every nearby
// courier was offline at creation time.
type OrderAssignmentJob struct {
	handler commands.AutoAssignOrderCommandHandler
	cron    *cron.Cron
	spec    string
	log     *slog.Logger
}

// NewOrderAssignmentJob creates the assignment sweep with a cron spec using
// the seconds field, e.g. "*/5 * * * * *" for every five seconds.
func NewOrderAssignmentJob(
	handler commands.AutoAssignOrderCommandHandler,
	spec string,
	log *slog.Logger,
) *OrderAssignmentJob {
	return &OrderAssignmentJob{
		handler: handler,
		cron:    cron.New(cron.WithSeconds()),
		spec:    spec,
		log:     log.With("component", "order_assignment_job"),
	}
}

// Start schedules the sweep and begins running it.
func (j *OrderAssignmentJob) Start() error {
	_, err := j.cron.AddFunc(j.spec, func() {
		ctx := context.Background()
		err := j.handler.Handle(ctx, commands.NewAutoAssignOrderCommand())
		if err == nil {
			return
		}

		// No waiting order, nobody in range, or a concurrent manual
		// assignment won the row. All expected between sweeps.
		if errors.Is(err, errs.ErrObjectNotFound) ||
			errors.Is(err, errs.ErrConflict) ||
			errors.Is(err, commands.ErrNoCourierNearby) {
			return
		}

		j.log.ErrorContext(ctx, "assignment sweep failed", "error", err)
	})
	if err != nil {
		return err
	}

	j.cron.Start()
	j.log.Info("order assignment job started", "spec", j.spec)
	return nil
}

// Stop stops the sweep. Does not wait for an in-flight run.
func (j *OrderAssignmentJob) Stop() {
	j.cron.Stop()
	j.log.Info("order assignment job stopped")
}
