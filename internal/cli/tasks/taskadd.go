package tasks

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/jtwaugh/taskweave/internal/cli"
	"github.com/jtwaugh/taskweave/internal/models"
	"github.com/jtwaugh/taskweave/internal/utils"
)

type TaskAddCmd struct {
	Title       string `arg:"" help:"Task title."`
	Description string `short:"D" help:"Longer description of the task."`
	Due         string `short:"u" help:"Due date (YYYY-MM-DD)."`
	Estimate    int    `short:"e" help:"Estimated total duration in minutes." default:"60"`
	Priority    int    `short:"p" help:"Priority (1-5, lower is higher priority)." default:"3"`
}

func (c *TaskAddCmd) Validate() error {
	if c.Priority < 1 || c.Priority > 5 {
		return fmt.Errorf("priority must be between 1 and 5")
	}
	if c.Estimate <= 0 {
		return fmt.Errorf("estimate must be greater than zero")
	}
	if c.Due != "" && !utils.ValidateDateFormat(c.Due) {
		return fmt.Errorf("invalid due date format (expected YYYY-MM-DD): %q", c.Due)
	}
	return nil
}

func (c *TaskAddCmd) Run(ctx *cli.Context) error {
	task := models.Task{
		ID:           uuid.New().String(),
		Title:        c.Title,
		Description:  c.Description,
		DueDate:      c.Due,
		EstimatedMin: c.Estimate,
		Priority:     c.Priority,
		CreatedAt:    time.Now().UTC().Format(time.RFC3339),
	}

	if err := ctx.Store.AddTask(task); err != nil {
		return err
	}

	fmt.Printf("Added task: %s (ID: %s)\n", c.Title, task.ID)
	if c.Due != "" {
		fmt.Printf("  Due: %s\n", c.Due)
	}
	fmt.Println("  Run 'taskweave breakdown' to split it into subtasks, or 'taskweave schedule' to place it.")
	return nil
}
