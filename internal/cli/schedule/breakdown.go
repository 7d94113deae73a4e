package schedule

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/huh"

	"github.com/jtwaugh/taskweave/internal/ai"
	"github.com/jtwaugh/taskweave/internal/cli"
	"github.com/jtwaugh/taskweave/internal/models"
	"github.com/jtwaugh/taskweave/internal/utils"
	"github.com/jtwaugh/taskweave/internal/workflow"
)

type BreakdownCmd struct {
	Title       string `arg:"" help:"Task title."`
	Description string `short:"D" help:"Longer description of the task."`
	Due         string `short:"u" help:"Due date (YYYY-MM-DD)."`
	Estimate    int    `short:"e" help:"Estimated total duration in minutes." default:"60"`
	Priority    int    `short:"p" help:"Priority (1-5, lower is higher priority)." default:"3"`
	Yes         bool   `short:"y" help:"Skip interactive prompts, accepting defaults."`
	NoSchedule  bool   `help:"Create the task and subtasks without scheduling them." name:"no-schedule"`
}

func (c *BreakdownCmd) Validate() error {
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

func (c *BreakdownCmd) Run(ctx *cli.Context) error {
	planner, err := ctx.NewPlanner()
	if err != nil {
		return err
	}
	pipeline := workflow.New(planner, ctx.Store, ctx.Scheduler)
	runCtx := context.Background()

	task := models.Task{
		Title:        c.Title,
		Description:  c.Description,
		DueDate:      c.Due,
		EstimatedMin: c.Estimate,
		Priority:     c.Priority,
		CreatedAt:    time.Now().UTC().Format(time.RFC3339),
	}

	// Step 1: quality pre-check.
	fmt.Println("Analyzing task...")
	report, err := pipeline.AnalyzeQuality(runCtx, task)
	if err != nil {
		return err
	}
	if !report.Actionable {
		fmt.Printf("The task description scored %d/100 for actionability.\n", report.Score)
		for _, issue := range report.Issues {
			fmt.Printf("  - %s\n", issue)
		}
		task, err = c.refineTask(task, report)
		if err != nil {
			return err
		}
	}

	// Step 2: personalization.
	answers := map[string]string{}
	if !c.Yes {
		questions, err := pipeline.Personalize(runCtx, task)
		if err != nil {
			return err
		}
		answers, err = askQuestions(questions)
		if err != nil {
			return err
		}
	}

	// Step 3: learning plan.
	fmt.Println("Generating plan...")
	plan, err := pipeline.Plan(runCtx, task, answers)
	if err != nil {
		return err
	}
	if plan.Summary != "" {
		fmt.Printf("\nPlan: %s\n", plan.Summary)
		for _, phase := range plan.Phases {
			fmt.Printf("  [%s] %s (%s)\n", phase.Phase, phase.Name, utils.FormatDuration(phase.EstimatedMin))
		}
	}

	// Step 4: subtask generation.
	fmt.Println("\nGenerating subtasks...")
	subtasks, err := pipeline.Generate(runCtx, task, &plan)
	if err != nil {
		return err
	}
	fmt.Println()
	for _, st := range subtasks {
		fmt.Printf("  %2d. %s - %s\n", st.Order, st.Title, utils.FormatDuration(st.DurationMin))
	}

	if !c.Yes {
		accept := true
		confirm := huh.NewForm(huh.NewGroup(
			huh.NewConfirm().
				Title(fmt.Sprintf("Save %q with these %d subtasks?", task.Title, len(subtasks))).
				Value(&accept),
		))
		if err := confirm.Run(); err != nil {
			return err
		}
		if !accept {
			fmt.Println("Aborted. Nothing was saved.")
			return nil
		}
	}

	// Step 5: save and schedule.
	opts, err := ctx.SchedulerOptions()
	if err != nil {
		return err
	}
	result, err := pipeline.Save(runCtx, workflow.Request{
		Task:         task,
		Answers:      answers,
		AutoSchedule: !c.NoSchedule,
		Options:      opts,
	}, subtasks)
	if err != nil {
		return err
	}

	fmt.Println()
	for _, p := range result.Placements {
		fmt.Printf("  %s %s-%s (%s)\n", p.Date, p.Start, p.End, utils.FormatDuration(p.DurationMin))
	}
	fmt.Println(result.Message)
	return nil
}

// refineTask lets the user improve a low-quality description, or proceed with
// it anyway. With --yes the original task is used as-is.
func (c *BreakdownCmd) refineTask(task models.Task, report ai.QualityReport) (models.Task, error) {
	if c.Yes {
		return task, nil
	}

	refine := len(report.ClarifyingQuestions) > 0
	form := huh.NewForm(huh.NewGroup(
		huh.NewConfirm().
			Title("Refine the description before continuing?").
			Value(&refine),
	))
	if err := form.Run(); err != nil {
		return models.Task{}, err
	}
	if !refine {
		return task, nil
	}

	for _, q := range report.ClarifyingQuestions {
		fmt.Printf("  ? %s\n", q)
	}
	description := task.Description
	input := huh.NewForm(huh.NewGroup(
		huh.NewText().
			Title("Description").
			Value(&description),
	))
	if err := input.Run(); err != nil {
		return models.Task{}, err
	}
	task.Description = description
	return task, nil
}

// askQuestions presents each personalization question as a select or a
// free-form input depending on whether it carries options.
func askQuestions(questions []ai.Question) (map[string]string, error) {
	answers := make(map[string]string, len(questions))
	for _, q := range questions {
		var answer string
		var field huh.Field
		if len(q.Options) > 0 {
			opts := make([]huh.Option[string], 0, len(q.Options))
			for _, o := range q.Options {
				opts = append(opts, huh.NewOption(o, o))
			}
			field = huh.NewSelect[string]().Title(q.Prompt).Options(opts...).Value(&answer)
		} else {
			field = huh.NewInput().Title(q.Prompt).Value(&answer)
		}
		if err := huh.NewForm(huh.NewGroup(field)).Run(); err != nil {
			return nil, err
		}
		if answer != "" {
			answers[q.ID] = answer
		}
	}
	return answers, nil
}
