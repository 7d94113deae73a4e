package tasks

import (
	"fmt"

	"github.com/jtwaugh/taskweave/internal/cli"
)

type TaskDeleteCmd struct {
	ID string `arg:"" help:"Task ID."`
}

func (c *TaskDeleteCmd) Run(ctx *cli.Context) error {
	task, err := ctx.Store.GetTask(c.ID)
	if err != nil {
		return fmt.Errorf("failed to get task: %w", err)
	}

	// Soft delete; calendar placements are removed, subtasks kept for restore.
	if err := ctx.Store.DeleteTask(c.ID); err != nil {
		return fmt.Errorf("failed to delete task: %w", err)
	}

	fmt.Printf("Deleted task: %s\n", task.Title)
	fmt.Printf("  Restore it with 'taskweave task restore %s'\n", c.ID)
	return nil
}
