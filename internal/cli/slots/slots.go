package slots

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/jtwaugh/taskweave/internal/cli"
	"github.com/jtwaugh/taskweave/internal/models"
	"github.com/jtwaugh/taskweave/internal/utils"
	"github.com/jtwaugh/taskweave/internal/validation"
)

type SlotAddCmd struct {
	Start    string `arg:"" help:"Window start time (HH:MM)."`
	End      string `arg:"" help:"Window end time (HH:MM)."`
	Weekdays string `short:"w" help:"Comma-separated weekdays the window applies to." default:"mon,tue,wed,thu,fri"`
}

func (c *SlotAddCmd) Validate() error {
	start, err := utils.ParseTimeToMinutes(c.Start)
	if err != nil {
		return fmt.Errorf("invalid start time format (expected HH:MM): %w", err)
	}
	end, err := utils.ParseTimeToMinutes(c.End)
	if err != nil {
		return fmt.Errorf("invalid end time format (expected HH:MM): %w", err)
	}
	if start >= end {
		return fmt.Errorf("start must be before end")
	}
	return nil
}

func (c *SlotAddCmd) Run(ctx *cli.Context) error {
	weekdays, err := cli.ParseWeekdays(c.Weekdays)
	if err != nil {
		return err
	}

	slot := models.TimeSlot{
		ID:       uuid.New().String(),
		Start:    c.Start,
		End:      c.End,
		Weekdays: weekdays,
	}

	// Overlapping windows are allowed but worth flagging up front.
	existing, err := ctx.Store.GetAllTimeSlots()
	if err != nil {
		return fmt.Errorf("failed to get availability windows: %w", err)
	}
	conflicts := validation.CheckSlotOverlap(append(existing, slot))

	if err := ctx.Store.AddTimeSlot(slot); err != nil {
		return fmt.Errorf("failed to add availability window: %w", err)
	}

	fmt.Printf("Added availability window: %s-%s on %s (ID: %s)\n",
		c.Start, c.End, cli.FormatWeekdays(weekdays), slot.ID)
	for _, conflict := range conflicts {
		fmt.Printf("  ⚠ %s\n", conflict.Description)
	}
	return nil
}

type SlotListCmd struct{}

func (c *SlotListCmd) Run(ctx *cli.Context) error {
	slots, err := ctx.Store.GetAllTimeSlots()
	if err != nil {
		return fmt.Errorf("failed to get availability windows: %w", err)
	}
	if len(slots) == 0 {
		fmt.Println("No availability windows configured. Add one with 'taskweave slot add'.")
		return nil
	}

	fmt.Println("Availability windows:")
	for _, slot := range slots {
		fmt.Printf("  %s-%s (%s) on %s (ID: %s)\n",
			slot.Start, slot.End, utils.FormatDuration(cli.CalculateSlotDuration(slot)),
			cli.FormatWeekdays(slot.Weekdays), slot.ID)
	}
	return nil
}

type SlotRemoveCmd struct {
	ID string `arg:"" help:"Availability window ID."`
}

func (c *SlotRemoveCmd) Run(ctx *cli.Context) error {
	slot, err := ctx.Store.GetTimeSlot(c.ID)
	if err != nil {
		return fmt.Errorf("failed to get availability window: %w", err)
	}

	if err := ctx.Store.DeleteTimeSlot(c.ID); err != nil {
		return fmt.Errorf("failed to remove availability window: %w", err)
	}

	fmt.Printf("Removed availability window: %s-%s on %s\n", slot.Start, slot.End, cli.FormatWeekdays(slot.Weekdays))
	fmt.Println("  Existing placements inside it are kept; run 'taskweave doctor' to find any now outside availability.")
	return nil
}

type SlotRestoreCmd struct {
	ID string `arg:"" help:"Availability window ID to restore."`
}

func (c *SlotRestoreCmd) Run(ctx *cli.Context) error {
	if err := ctx.Store.RestoreTimeSlot(c.ID); err != nil {
		return fmt.Errorf("failed to restore availability window: %w", err)
	}
	fmt.Println("Restored availability window.")
	return nil
}
