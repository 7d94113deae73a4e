// Package workflow drives the task breakdown flow as an explicit pipeline:
// quality analysis, personalization, plan generation, subtask generation,
// then save and optional auto-scheduling. Each step takes a context and is
// checked between remote calls, so abandoning the flow cancels cleanly.
// There is no automatic retry anywhere; retrying a failed step is a user
// action.
package workflow

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/jtwaugh/taskweave/internal/ai"
	"github.com/jtwaugh/taskweave/internal/logger"
	"github.com/jtwaugh/taskweave/internal/models"
	"github.com/jtwaugh/taskweave/internal/scheduler"
	"github.com/jtwaugh/taskweave/internal/storage"
)

// State names the pipeline's current step for reporting.
type State string

const (
	StateIdle               State = "idle"
	StateAnalyzing          State = "analyzing"
	StateQualityAlert       State = "quality-alert"
	StatePersonalizing      State = "personalizing"
	StatePlanning           State = "planning"
	StateGenerating         State = "generating-subtasks"
	StateReadyToSave        State = "ready-to-save"
	StateSaving             State = "saving"
	StateScheduled          State = "scheduled"
	StateCreatedUnscheduled State = "created-unscheduled"
	StateSaveFailed         State = "save-failed"
)

// Request carries one breakdown run's inputs through the pipeline.
type Request struct {
	Task         models.Task
	Answers      map[string]string
	AutoSchedule bool
	Options      scheduler.Options
}

// SaveResult reports the outcome of the save step.
type SaveResult struct {
	State      State
	Task       models.Task
	Subtasks   []models.Subtask
	Placements []models.ScheduledTask
	Message    string
}

// Pipeline holds the collaborators for one breakdown flow. A pipeline serves
// one flow at a time; create a new one per run.
type Pipeline struct {
	planner   ai.Planner
	store     storage.Provider
	scheduler *scheduler.Scheduler
	state     State
}

func New(planner ai.Planner, store storage.Provider, sched *scheduler.Scheduler) *Pipeline {
	return &Pipeline{
		planner:   planner,
		store:     store,
		scheduler: sched,
		state:     StateIdle,
	}
}

// State returns the pipeline's current step.
func (p *Pipeline) State() State {
	return p.state
}

func (p *Pipeline) transition(next State) {
	logger.Debug("Workflow transition", "from", p.state, "to", next)
	p.state = next
}

// AnalyzeQuality runs the quality pre-check. A non-actionable report moves
// the pipeline into the quality-alert state; the caller decides whether to
// refine the task or proceed anyway.
func (p *Pipeline) AnalyzeQuality(ctx context.Context, task models.Task) (ai.QualityReport, error) {
	if err := ctx.Err(); err != nil {
		return ai.QualityReport{}, err
	}
	p.transition(StateAnalyzing)

	report, err := p.planner.AnalyzeTaskQuality(ctx, task)
	if err != nil {
		return ai.QualityReport{}, fmt.Errorf("quality analysis failed: %w", err)
	}

	if !report.Actionable {
		p.transition(StateQualityAlert)
	} else {
		p.transition(StatePersonalizing)
	}
	return report, nil
}

// Personalize fetches the personalization questions for the task.
func (p *Pipeline) Personalize(ctx context.Context, task models.Task) ([]ai.Question, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	p.transition(StatePersonalizing)
	return p.planner.PersonalizationQuestions(ctx, task)
}

// Plan generates the learning plan from the task and answers.
func (p *Pipeline) Plan(ctx context.Context, task models.Task, answers map[string]string) (ai.LearningPlan, error) {
	if err := ctx.Err(); err != nil {
		return ai.LearningPlan{}, err
	}
	p.transition(StatePlanning)
	return p.planner.GenerateLearningPlan(ctx, task, answers)
}

// Generate decomposes the task into ordered subtasks.
func (p *Pipeline) Generate(ctx context.Context, task models.Task, plan *ai.LearningPlan) ([]models.Subtask, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	p.transition(StateGenerating)

	subtasks, err := p.planner.GenerateSubtasks(ctx, task, plan)
	if err != nil {
		return nil, fmt.Errorf("subtask generation failed: %w", err)
	}
	p.transition(StateReadyToSave)
	return subtasks, nil
}

// EstimateOrDefault estimates minutes for a unit of work, falling back to
// the given default when the remote call fails.
func (p *Pipeline) EstimateOrDefault(ctx context.Context, title string, defaultMin int) int {
	duration, err := p.planner.EstimateDuration(ctx, title)
	if err != nil {
		logger.Warn("Duration estimation failed, using default", "title", title, "default_min", defaultMin, "error", err)
		return defaultMin
	}
	return duration
}

// Save persists the task and its subtasks, then auto-schedules when
// requested. Scheduling failure does not fail the save: the task is created
// unscheduled and the result says so.
func (p *Pipeline) Save(ctx context.Context, req Request, subtasks []models.Subtask) (SaveResult, error) {
	if err := ctx.Err(); err != nil {
		return SaveResult{}, err
	}
	p.transition(StateSaving)

	task := req.Task
	if task.ID == "" {
		task.ID = uuid.NewString()
	}
	if err := p.store.AddTask(task); err != nil {
		p.transition(StateSaveFailed)
		return SaveResult{State: StateSaveFailed}, fmt.Errorf("failed to save task: %w", err)
	}

	saved := make([]models.Subtask, 0, len(subtasks))
	for _, st := range subtasks {
		st.TaskID = task.ID
		if st.ID == "" {
			st.ID = uuid.NewString()
		}
		if err := p.store.AddSubtask(st); err != nil {
			p.transition(StateSaveFailed)
			return SaveResult{State: StateSaveFailed, Task: task}, fmt.Errorf("failed to save subtask %q: %w", st.Title, err)
		}
		saved = append(saved, st)
	}

	result := SaveResult{Task: task, Subtasks: saved}
	if !req.AutoSchedule {
		p.transition(StateCreatedUnscheduled)
		result.State = StateCreatedUnscheduled
		result.Message = fmt.Sprintf("Created %q with %d subtask(s).", task.Title, len(saved))
		return result, nil
	}

	schedResult, err := p.schedule(ctx, task, saved, req.Options)
	if err != nil {
		// The task exists either way; scheduling can be retried by hand.
		p.transition(StateCreatedUnscheduled)
		result.State = StateCreatedUnscheduled
		result.Message = fmt.Sprintf("Created %q with %d subtask(s), but scheduling failed: %v. Run 'taskweave schedule %s' to retry.",
			task.Title, len(saved), err, task.ID)
		return result, nil
	}

	result.Placements = schedResult.Placements
	result.Message = schedResult.Message
	if schedResult.Success {
		p.transition(StateScheduled)
		result.State = StateScheduled
	} else {
		// Partial schedule: whatever fit is saved, the rest stays pending.
		p.transition(StateCreatedUnscheduled)
		result.State = StateCreatedUnscheduled
	}
	return result, nil
}

func (p *Pipeline) schedule(ctx context.Context, task models.Task, subtasks []models.Subtask, opts scheduler.Options) (scheduler.Result, error) {
	if err := ctx.Err(); err != nil {
		return scheduler.Result{}, err
	}

	slots, err := p.store.GetAllTimeSlots()
	if err != nil {
		return scheduler.Result{}, fmt.Errorf("failed to load availability: %w", err)
	}
	existing, err := p.store.GetAllScheduledTasks()
	if err != nil {
		return scheduler.Result{}, fmt.Errorf("failed to load existing schedule: %w", err)
	}

	schedResult, err := p.scheduler.ScheduleSubtasks(subtasks, slots, existing, task.DueDate, opts)
	if err != nil {
		return scheduler.Result{}, err
	}

	for i := range schedResult.Placements {
		schedResult.Placements[i].ID = uuid.NewString()
		if err := p.store.AddScheduledTask(schedResult.Placements[i]); err != nil {
			return scheduler.Result{}, fmt.Errorf("failed to save placement: %w", err)
		}
	}
	return schedResult, nil
}
