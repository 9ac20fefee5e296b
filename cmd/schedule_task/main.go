package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"go.uber.org/zap"

	"portfolio_site/internal/config"
	"portfolio_site/internal/services"
	"portfolio_site/internal/tasks"
)

func main() {
	taskName := flag.String("task_name", "", "Name of the task (mandatory)")
	argsStr := flag.String("arguments", "{}", "JSON arguments for the task")
	dueStr := flag.String("due", "", "Due date (default: now, format: 2006-01-02 15:04 or RFC3339)")
	recurring := flag.String("recurring", "", "RRULE for recurring tasks, e.g. FREQ=DAILY;BYHOUR=3 (optional)")
	maxAttempt := flag.Int("max_attempt", 3, "Max attempts (optional, default: 3)")

	flag.Parse()

	if *taskName == "" {
		fmt.Println("Usage: schedule_task -task_name <name> [-arguments <json>] [-due <YYYY-MM-DD HH:MM>] [-recurring <rrule>]")
		flag.PrintDefaults()
		os.Exit(1)
	}

	registry := tasks.NewRegistry()
	tasks.DefineTasks(registry)
	if _, ok := registry.Get(*taskName); !ok {
		log.Fatalf("Unknown task %q, available: %v", *taskName, registry.Names())
	}

	var args map[string]interface{}
	if err := json.Unmarshal([]byte(*argsStr), &args); err != nil {
		log.Fatalf("Invalid JSON arguments: %v", err)
	}

	due := time.Now()
	if *dueStr != "" {
		var err error
		due, err = time.Parse(time.RFC3339, *dueStr)
		if err != nil {
			due, err = time.ParseInLocation("2006-01-02 15:04", *dueStr, time.Local)
			if err != nil {
				log.Fatalf("Invalid due date format. Use '2006-01-02 15:04' (Local) or RFC3339: %v", err)
			}
		}
	}

	task, err := tasks.BuildScheduledTask(*taskName, args, due, *recurring, *maxAttempt)
	if err != nil {
		log.Fatalf("Invalid task: %v", err)
	}

	cfg, err := config.Load(config.Path())
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if cfg.DatabaseURL == "" {
		log.Fatal("DATABASE_URL is not set")
	}

	db, err := services.InitDB(cfg.DatabaseURL, zap.NewNop())
	if err != nil {
		log.Fatalf("Failed to connect DB: %v", err)
	}

	if err := db.Create(task).Error; err != nil {
		log.Fatalf("Failed to create task: %v", err)
	}

	fmt.Printf("Successfully created task ID: %d\n", task.ID)
	fmt.Printf("Task: %s\nDue: %s\nType: %s\n", task.TaskName, task.Due.Format(time.RFC3339), task.TaskType)
	if task.RecurringInterval != nil {
		fmt.Printf("Next after due: %s\n", task.NextDue(task.Due).Format(time.RFC3339))
	}
}
