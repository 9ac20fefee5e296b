package tasks

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/teambition/rrule-go"

	"portfolio_site/internal/models"
)

// BuildScheduledTask builds an active ScheduledTask. args is stored as a JSON
// object. A non-empty rule makes the task recurring and must be a valid RRULE.
func BuildScheduledTask(taskName string, args interface{}, due time.Time, rule string, maxAttempt int) (*models.ScheduledTask, error) {
	argsBytes, err := json.Marshal(args)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal args: %w", err)
	}

	var mapArgs map[string]interface{}
	if err := json.Unmarshal(argsBytes, &mapArgs); err != nil {
		return nil, fmt.Errorf("failed to unmarshal into map: %w", err)
	}
	if mapArgs == nil {
		mapArgs = map[string]interface{}{}
	}

	task := &models.ScheduledTask{
		TaskName:   taskName,
		Arguments:  mapArgs,
		Due:        due,
		Status:     models.ScheduledTaskStatusActive,
		TaskType:   models.ScheduledTaskTypeOneTime,
		MaxAttempt: maxAttempt,
	}

	if rule != "" {
		if _, err := rrule.StrToRRule(rule); err != nil {
			return nil, fmt.Errorf("invalid recurring rule %q: %w", rule, err)
		}
		task.TaskType = models.ScheduledTaskTypeRecurring
		task.RecurringInterval = &rule
	}
	return task, nil
}
