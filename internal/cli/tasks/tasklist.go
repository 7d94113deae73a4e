package tasks

import (
	"fmt"

	"github.com/jtwaugh/taskweave/internal/cli"
	"github.com/jtwaugh/taskweave/internal/models"
	"github.com/jtwaugh/taskweave/internal/utils"
)

type TaskListCmd struct {
	All     bool `help:"Include soft-deleted tasks."`
	ShowIDs bool `help:"Show task IDs." name:"show-ids"`
}

func (c *TaskListCmd) Run(ctx *cli.Context) error {
	var (
		tasks []models.Task
		err   error
	)
	if c.All {
		tasks, err = ctx.Store.GetAllTasksIncludingDeleted()
	} else {
		tasks, err = ctx.Store.GetAllTasks()
	}
	if err != nil {
		return fmt.Errorf("failed to get tasks: %w", err)
	}
	if len(tasks) == 0 {
		fmt.Println("No tasks found")
		return nil
	}

	fmt.Println("Tasks:")
	for _, task := range tasks {
		status := "active"
		if task.DeletedAt != nil {
			status = "deleted"
		}

		idStr := ""
		if c.ShowIDs {
			idStr = fmt.Sprintf(" (ID: %s)", task.ID)
		}

		fmt.Printf("  [%s] %s%s - %s (priority %d)\n",
			status, task.Title, idStr, utils.FormatDuration(task.EstimatedMin), task.Priority)
		if task.DueDate != "" {
			fmt.Printf("      Due: %s\n", task.DueDate)
		}
	}

	return nil
}
