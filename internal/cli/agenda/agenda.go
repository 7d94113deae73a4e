package agenda

import (
	"fmt"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/jtwaugh/taskweave/internal/cli"
	"github.com/jtwaugh/taskweave/internal/constants"
	"github.com/jtwaugh/taskweave/internal/utils"
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	timeStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	doneStyle   = lipgloss.NewStyle().Strikethrough(true).Foreground(lipgloss.Color("8"))
)

type AgendaCmd struct {
	Date string `arg:"" optional:"" help:"Date to show (YYYY-MM-DD or 'today')." default:"today"`
	Days int    `short:"n" help:"Number of days to show." default:"1"`
}

func (c *AgendaCmd) Run(ctx *cli.Context) error {
	settings, err := ctx.Store.GetSettings()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	var day time.Time
	if c.Date == "today" {
		today, err := utils.GetTodayFromSettings(settings)
		if err != nil {
			return err
		}
		day, _ = time.Parse(constants.DateFormat, today)
	} else {
		day, err = time.Parse(constants.DateFormat, c.Date)
		if err != nil {
			return fmt.Errorf("invalid date format, use YYYY-MM-DD or 'today': %w", err)
		}
	}

	if c.Days < 1 {
		return fmt.Errorf("days must be at least 1")
	}

	for i := 0; i < c.Days; i++ {
		date := day.AddDate(0, 0, i)
		if err := c.printDay(ctx, date); err != nil {
			return err
		}
		if i < c.Days-1 {
			fmt.Println()
		}
	}
	return nil
}

func (c *AgendaCmd) printDay(ctx *cli.Context, day time.Time) error {
	dateStr := day.Format(constants.DateFormat)
	placements, err := ctx.Store.GetScheduledTasks(dateStr)
	if err != nil {
		return fmt.Errorf("failed to get schedule for %s: %w", dateStr, err)
	}

	fmt.Println(headerStyle.Render(fmt.Sprintf("%s (%s)", dateStr, day.Weekday())))
	if len(placements) == 0 {
		fmt.Println("  nothing scheduled")
		return nil
	}

	for _, p := range placements {
		title := "unknown task"
		done := false
		if p.SubtaskID != "" {
			if st, err := ctx.Store.GetSubtask(p.SubtaskID); err == nil {
				title = st.Title
				done = st.Done
			}
		} else if task, err := ctx.Store.GetTask(p.TaskID); err == nil {
			title = task.Title
		}

		line := title
		if done {
			line = doneStyle.Render(title)
		}
		fmt.Printf("  %s  %s\n", timeStyle.Render(fmt.Sprintf("%s-%s", p.Start, p.End)), line)
	}
	return nil
}
