package tasks

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"portfolio_site/internal/models"
	"portfolio_site/internal/services"
)

// SyncContentTaskDef copies the content files into the database
type SyncContentTaskDef struct{}

// TaskID returns the unique identifier for this task
func (t *SyncContentTaskDef) TaskID() string {
	return "sync_content"
}

// CreateTask builds a ScheduledTask for this task. rule may be empty for a one-off sync.
func (t *SyncContentTaskDef) CreateTask(due time.Time, rule string) (*models.ScheduledTask, error) {
	return BuildScheduledTask(t.TaskID(), map[string]interface{}{}, due, rule, 3)
}

// HandleExecution reads projects and studies from the files and upserts them
func (t *SyncContentTaskDef) HandleExecution(ctx context.Context, deps Deps, task models.ScheduledTask) (map[string]interface{}, error) {
	if deps.Files == nil || deps.Store == nil {
		return nil, errors.New("sync_content needs a content directory and a database")
	}

	projects, studies, err := services.LoadAll(ctx, deps.Files)
	if err != nil {
		return nil, fmt.Errorf("reading content files: %w", err)
	}
	if err := deps.Store.Upsert(ctx, projects, studies); err != nil {
		return nil, err
	}

	// Pages should show the new content right away
	if deps.Content != nil {
		if err := deps.Content.Invalidate(ctx); err != nil && deps.Logger != nil {
			deps.Logger.Warn("invalidating content cache", zap.Error(err))
		}
	}

	return map[string]interface{}{
		"status":   "success",
		"projects": len(projects),
		"studies":  len(studies),
	}, nil
}

// SyncContentTask is the singleton instance of SyncContentTaskDef
var SyncContentTask = &SyncContentTaskDef{}

// WarmCacheTaskDef drops and reloads the cached content
type WarmCacheTaskDef struct{}

// TaskID returns the unique identifier for this task
func (t *WarmCacheTaskDef) TaskID() string {
	return "warm_cache"
}

// CreateTask builds a ScheduledTask for this task
func (t *WarmCacheTaskDef) CreateTask(due time.Time, rule string) (*models.ScheduledTask, error) {
	return BuildScheduledTask(t.TaskID(), map[string]interface{}{}, due, rule, 3)
}

// HandleExecution invalidates the cache and loads every collection again
func (t *WarmCacheTaskDef) HandleExecution(ctx context.Context, deps Deps, task models.ScheduledTask) (map[string]interface{}, error) {
	if deps.Content == nil {
		return nil, errors.New("warm_cache needs the content service")
	}
	if err := deps.Content.Invalidate(ctx); err != nil {
		return nil, fmt.Errorf("invalidating cache: %w", err)
	}
	projects, studies, err := deps.Content.Warm(ctx)
	if err != nil {
		return nil, err
	}
	return map[string]interface{}{
		"status":   "success",
		"projects": projects,
		"studies":  studies,
	}, nil
}

// WarmCacheTask is the singleton instance of WarmCacheTaskDef
var WarmCacheTask = &WarmCacheTaskDef{}
