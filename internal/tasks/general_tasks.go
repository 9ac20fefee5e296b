package tasks

import (
	"context"

	"go.uber.org/zap"

	"portfolio_site/internal/models"
)

// LogInfoTaskDef writes its message argument to the log. Handy for checking
// that the worker picks tasks up.
type LogInfoTaskDef struct{}

// TaskID returns the unique identifier for this task
func (t *LogInfoTaskDef) TaskID() string {
	return "log_info"
}

// HandleExecution logs the message argument
func (t *LogInfoTaskDef) HandleExecution(ctx context.Context, deps Deps, task models.ScheduledTask) (map[string]interface{}, error) {
	message, ok := task.Arguments["message"].(string)
	if !ok {
		message = "No message provided"
	}
	if deps.Logger != nil {
		deps.Logger.Info("log_info task", zap.Uint("task_id", task.ID), zap.String("message", message))
	}

	return map[string]interface{}{
		"status":      "success",
		"message":     message,
		"max_attempt": task.MaxAttempt,
	}, nil
}

// LogInfoTask is the singleton instance of LogInfoTaskDef
var LogInfoTask = &LogInfoTaskDef{}
