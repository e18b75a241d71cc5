package scheduler

import (
	"context"
	"log/slog"
	"time"

	"github.com/taskheroes/task-heroes-api/internal/services"
)

// DailyTaskScheduler resets completed daily tasks at each local
// midnight. The client-driven check-daily endpoint covers clients in
// other timezones; this loop keeps the store clean even when no client
// connects.
type DailyTaskScheduler struct {
	taskService *services.TaskService
}

// NewDailyTaskScheduler creates a new DailyTaskScheduler.
func NewDailyTaskScheduler(taskService *services.TaskService) *DailyTaskScheduler {
	return &DailyTaskScheduler{
		taskService: taskService,
	}
}

// Run blocks until the context is cancelled, firing the bulk reset at
// every midnight boundary.
func (s *DailyTaskScheduler) Run(ctx context.Context) {
	for {
		wait := time.Until(nextMidnight(time.Now()))
		timer := time.NewTimer(wait)

		select {
		case <-ctx.Done():
			timer.Stop()
			return
		case <-timer.C:
			count, err := s.taskService.ResetDailyTasks()
			if err != nil {
				slog.Error("scheduled daily task reset failed", "error", err)
				continue
			}
			slog.Info("scheduled daily task reset completed", "reset", count)
		}
	}
}

// nextMidnight returns the start of the day after now, in now's location.
func nextMidnight(now time.Time) time.Time {
	year, month, day := now.Date()
	return time.Date(year, month, day, 0, 0, 0, 0, now.Location()).AddDate(0, 0, 1)
}
