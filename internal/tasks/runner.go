package tasks

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"portfolio_site/internal/models"
)

// Run is the outcome of one task execution: the history row to record and
// the updates to apply to the task.
type Run struct {
	History models.ScheduledTaskHistory
	Updates map[string]interface{}
	Err     error
}

// Execute runs task through the handler registered for it, retrying up to
// task.MaxAttempt times. It touches no storage.
func Execute(ctx context.Context, r *Registry, deps Deps, task models.ScheduledTask, now func() time.Time) []Run {
	if task.Arguments == nil {
		task.Arguments = make(map[string]interface{})
	}

	handler, found := r.Get(task.TaskName)
	if !found {
		ranAt := now()
		return []Run{{
			History: models.ScheduledTaskHistory{
				ScheduledTaskID: task.ID,
				TaskName:        task.TaskName,
				RunAt:           ranAt,
				Status:          "handler_not_found",
				AttemptNumber:   1,
				Arguments:       task.Arguments,
				Result:          map[string]interface{}{"error": "Handler not found"},
			},
			Updates: map[string]interface{}{
				"status":   models.ScheduledTaskStatusFailure,
				"last_run": &ranAt,
			},
			Err: fmt.Errorf("no handler for task %q", task.TaskName),
		}}
	}

	maxAttempt := task.MaxAttempt
	if maxAttempt < 1 {
		maxAttempt = 1
	}

	var runs []Run
	for attempt := 1; attempt <= maxAttempt; attempt++ {
		startTime := now()
		result, err := handler(ctx, deps, task)
		runtime := now().Sub(startTime)

		run := Run{
			History: models.ScheduledTaskHistory{
				ScheduledTaskID: task.ID,
				TaskName:        task.TaskName,
				RunAt:           startTime,
				Runtime:         int(runtime.Milliseconds()),
				Status:          "success",
				AttemptNumber:   attempt,
				Arguments:       task.Arguments,
				Result:          result,
			},
			Err: err,
		}

		if err == nil {
			run.Updates = task.Completed(startTime)
			return append(runs, run)
		}

		run.History.Status = "failure"
		run.History.Result = map[string]interface{}{"error": err.Error()}
		if attempt == maxAttempt || ctx.Err() != nil {
			run.Updates = map[string]interface{}{
				"status":   models.ScheduledTaskStatusFailure,
				"last_run": &startTime,
			}
			return append(runs, run)
		}
		runs = append(runs, run)
	}
	return runs
}

// Runner polls the database for due tasks and executes them
type Runner struct {
	db       *gorm.DB
	registry *Registry
	deps     Deps
	log      *zap.Logger
	now      func() time.Time
}

// NewRunner creates a Runner
func NewRunner(db *gorm.DB, registry *Registry, deps Deps, log *zap.Logger) *Runner {
	return &Runner{db: db, registry: registry, deps: deps, log: log, now: time.Now}
}

// RunDue executes every active task whose due time has passed
func (r *Runner) RunDue(ctx context.Context) error {
	var pending []models.ScheduledTask
	err := r.db.WithContext(ctx).
		Where("status = ? AND due <= ?", models.ScheduledTaskStatusActive, r.now()).
		Order("due asc").
		Find(&pending).Error
	if err != nil {
		return fmt.Errorf("fetching pending tasks: %w", err)
	}

	if len(pending) == 0 {
		r.log.Debug("no pending tasks")
		return nil
	}
	r.log.Info("processing pending tasks", zap.Int("count", len(pending)))

	for _, task := range pending {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		r.process(ctx, task)
	}
	return nil
}

func (r *Runner) process(ctx context.Context, task models.ScheduledTask) {
	log := r.log.With(zap.Uint("task_id", task.ID), zap.String("task", task.TaskName))

	for _, run := range Execute(ctx, r.registry, r.deps, task, r.now) {
		if run.Err != nil {
			log.Warn("task attempt failed", zap.Int("attempt", run.History.AttemptNumber), zap.Error(run.Err))
		} else {
			log.Info("task completed", zap.Int("attempt", run.History.AttemptNumber), zap.Int("runtime_ms", run.History.Runtime))
		}

		if err := r.db.WithContext(ctx).Create(&run.History).Error; err != nil {
			log.Error("recording task history", zap.Error(err))
		}
		if run.Updates != nil {
			if err := r.db.WithContext(ctx).Model(&task).Updates(run.Updates).Error; err != nil {
				log.Error("updating task", zap.Error(err))
			}
		}
	}
}
