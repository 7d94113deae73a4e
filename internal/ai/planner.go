package ai

import (
	"context"

	"github.com/jtwaugh/taskweave/internal/models"
)

// QualityReport is the planner's assessment of how actionable a task
// description is before decomposition is attempted.
type QualityReport struct {
	Score               int // 0-100
	Actionable          bool
	Issues              []string
	ClarifyingQuestions []string
}

// Question is a single personalization prompt shown to the user before a
// learning plan is generated.
type Question struct {
	ID      string
	Prompt  string
	Options []string // empty for free-form answers
}

// PlanPhase is one stage of a generated learning plan.
type PlanPhase struct {
	Name         string
	Phase        models.SubtaskPhase
	Description  string
	EstimatedMin int
}

// LearningPlan is the personalized plan a task decomposition follows.
type LearningPlan struct {
	Summary string
	Phases  []PlanPhase
}

// Planner is the remote AI backend behind the task breakdown workflow. All
// calls are synchronous network requests; callers own retry policy (there is
// none - retries are explicit user actions).
type Planner interface {
	// AnalyzeTaskQuality checks whether a task description is clear enough
	// to decompose, returning issues and clarifying questions when not.
	AnalyzeTaskQuality(ctx context.Context, task models.Task) (QualityReport, error)

	// PersonalizationQuestions returns questions whose answers shape the
	// learning plan.
	PersonalizationQuestions(ctx context.Context, task models.Task) ([]Question, error)

	// GenerateLearningPlan produces a phased plan from the task and the
	// user's personalization answers.
	GenerateLearningPlan(ctx context.Context, task models.Task, answers map[string]string) (LearningPlan, error)

	// GenerateSubtasks decomposes the task into ordered subtasks, following
	// the plan when one is given.
	GenerateSubtasks(ctx context.Context, task models.Task, plan *LearningPlan) ([]models.Subtask, error)

	// EstimateDuration estimates minutes for a single unit of work. Callers
	// fall back to a default estimate on error.
	EstimateDuration(ctx context.Context, title string) (int, error)
}
