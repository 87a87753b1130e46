package jobs

import (
	"fmt"
	"log/slog"

	"dispatch/internal/core/application/usecases/commands"
)

// DefaultAssignmentSpec runs the assignment sweep every five seconds.
const DefaultAssignmentSpec = "*/5 * * * * *"

// JobManager coordinates the scheduled jobs of the application behind a
// single start/stop interface.
type JobManager struct {
	orderAssignmentJob *OrderAssignmentJob
}

// NewJobManager creates a job manager with all required jobs.
func NewJobManager(
	autoAssignHandler commands.AutoAssignOrderCommandHandler,
	assignmentSpec string,
	log *slog.Logger,
) *JobManager {
	if assignmentSpec == "" {
		assignmentSpec = DefaultAssignmentSpec
	}

	return &JobManager{
		orderAssignmentJob: NewOrderAssignmentJob(autoAssignHandler, assignmentSpec, log),
	}
}

// StartAll starts every scheduled job.
func (jm *JobManager) StartAll() error {
	if err := jm.orderAssignmentJob.Start(); err != nil {
		return fmt.Errorf("failed to start order assignment job: %w", err)
	}
	return nil
}

// StopAll stops every scheduled job.
func (jm *JobManager) StopAll() {
	jm.orderAssignmentJob.Stop()
}
