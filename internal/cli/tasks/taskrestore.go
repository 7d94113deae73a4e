package tasks

import (
	"fmt"

	"github.com/jtwaugh/taskweave/internal/cli"
)

type TaskRestoreCmd struct {
	ID string `arg:"" help:"Task ID to restore."`
}

func (c *TaskRestoreCmd) Run(ctx *cli.Context) error {
	if err := ctx.Store.RestoreTask(c.ID); err != nil {
		return fmt.Errorf("failed to restore task: %w", err)
	}

	task, err := ctx.Store.GetTask(c.ID)
	if err != nil {
		return fmt.Errorf("failed to get restored task: %w", err)
	}

	fmt.Printf("Restored task: %s\n", task.Title)
	fmt.Println("  Its calendar placements were not restored. Run 'taskweave schedule' to replace it.")
	return nil
}
