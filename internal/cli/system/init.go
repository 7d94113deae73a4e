package system

import (
	"fmt"
	"os"

	"github.com/google/uuid"

	"github.com/jtwaugh/taskweave/internal/cli"
	"github.com/jtwaugh/taskweave/internal/constants"
	"github.com/jtwaugh/taskweave/internal/models"
)

type InitCmd struct {
	Force  bool `help:"Force reset by deleting existing database before initialization."`
	NoSlot bool `help:"Skip creating the default weekday availability window." name:"no-slot"`
}

func (c *InitCmd) Run(ctx *cli.Context) error {
	// If force flag is provided, delete any existing SQLite database file
	if c.Force {
		dbPath := ctx.Store.GetConfigPath()
		if _, err := os.Stat(dbPath); err == nil {
			if err := ctx.Store.Close(); err != nil {
				return fmt.Errorf("failed to close existing database: %w", err)
			}
			if err := os.Remove(dbPath); err != nil {
				return fmt.Errorf("failed to delete existing database: %w", err)
			}
			fmt.Printf("Deleted existing database at: %s\n", dbPath)
		} else if !os.IsNotExist(err) {
			return fmt.Errorf("failed to access existing database: %w", err)
		}
	}

	if err := ctx.Store.Init(); err != nil {
		return err
	}
	fmt.Printf("Initialized taskweave storage at: %s\n", ctx.Store.GetConfigPath())

	if !c.NoSlot {
		if err := c.seedDefaultSlot(ctx); err != nil {
			return err
		}
	}

	fmt.Println("\nNext steps:")
	fmt.Println("  taskweave slot add 09:00 17:00     adjust your availability")
	fmt.Println("  taskweave config set-api-key ...   enable AI task breakdown")
	fmt.Println("  taskweave breakdown \"...\"          break a task into a schedule")
	return nil
}

func (c *InitCmd) seedDefaultSlot(ctx *cli.Context) error {
	existing, err := ctx.Store.GetAllTimeSlots()
	if err != nil {
		return fmt.Errorf("failed to get availability windows: %w", err)
	}
	if len(existing) > 0 {
		return nil
	}

	weekdays, err := cli.ParseWeekdays("mon,tue,wed,thu,fri")
	if err != nil {
		return err
	}
	slot := models.TimeSlot{
		ID:       uuid.New().String(),
		Start:    constants.DefaultSlotStart,
		End:      constants.DefaultSlotEnd,
		Weekdays: weekdays,
	}
	if err := ctx.Store.AddTimeSlot(slot); err != nil {
		return fmt.Errorf("failed to add default availability window: %w", err)
	}
	fmt.Printf("Added default availability window: %s-%s on weekdays\n", slot.Start, slot.End)
	return nil
}
