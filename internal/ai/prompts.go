package ai

import (
	"fmt"
	"sort"

	"github.com/tidwall/sjson"

	"github.com/jtwaugh/taskweave/internal/models"
)

const (
	qualitySystemPrompt = `You review task descriptions for a personal task planner.
Assess whether the task is specific and actionable enough to break into subtasks.
Respond with JSON only: {"score": 0-100, "actionable": bool, "issues": [...], "clarifying_questions": [...]}`

	questionsSystemPrompt = `You personalize learning plans for a personal task planner.
Given a task, produce at most 4 short questions whose answers would change how the work should be broken down
(prior experience, available depth, preferred pace, end goal).
Respond with JSON only: {"questions": [{"id": "...", "prompt": "...", "options": [...]}]}
Omit "options" for free-form questions.`

	planSystemPrompt = `You design phased learning plans for a personal task planner.
Phases must be one of: learn, practice, apply, review. Keep 2 to 4 phases.
Respond with JSON only: {"summary": "...", "phases": [{"name": "...", "phase": "...", "description": "...", "estimated_min": n}]}`

	subtasksSystemPrompt = `You decompose tasks for a personal task planner.
Produce 3 to 10 ordered subtasks, each 15 to 120 minutes, that together complete the task.
Phases must be one of: learn, practice, apply, review. Difficulty must be one of: easy, moderate, hard.
Respond with JSON only: {"subtasks": [{"title": "...", "duration_min": n, "phase": "...", "difficulty": "..."}]}`

	durationSystemPrompt = `You estimate how long a unit of work takes for a personal task planner.
Respond with JSON only: {"duration_min": n}`
)

// taskPayload renders the task as a compact JSON document for a user prompt.
func taskPayload(task models.Task) string {
	payload, _ := sjson.Set("", "title", task.Title)
	if task.Description != "" {
		payload, _ = sjson.Set(payload, "description", task.Description)
	}
	if task.DueDate != "" {
		payload, _ = sjson.Set(payload, "due_date", task.DueDate)
	}
	if task.EstimatedMin > 0 {
		payload, _ = sjson.Set(payload, "estimated_min", task.EstimatedMin)
	}
	return payload
}

func qualityUserPrompt(task models.Task) string {
	return fmt.Sprintf("Assess this task:\n%s", taskPayload(task))
}

func questionsUserPrompt(task models.Task) string {
	return fmt.Sprintf("Write personalization questions for this task:\n%s", taskPayload(task))
}

func planUserPrompt(task models.Task, answers map[string]string) string {
	payload := taskPayload(task)
	ids := make([]string, 0, len(answers))
	for id := range answers {
		ids = append(ids, id)
	}
	// Stable key order keeps identical requests cache-equal.
	sort.Strings(ids)
	for _, id := range ids {
		payload, _ = sjson.Set(payload, "answers."+id, answers[id])
	}
	return fmt.Sprintf("Design a learning plan for this task and context:\n%s", payload)
}

func subtasksUserPrompt(task models.Task, plan *LearningPlan) string {
	payload := taskPayload(task)
	if plan != nil {
		payload, _ = sjson.Set(payload, "plan.summary", plan.Summary)
		for i, phase := range plan.Phases {
			prefix := fmt.Sprintf("plan.phases.%d.", i)
			payload, _ = sjson.Set(payload, prefix+"name", phase.Name)
			payload, _ = sjson.Set(payload, prefix+"phase", string(phase.Phase))
			payload, _ = sjson.Set(payload, prefix+"estimated_min", phase.EstimatedMin)
		}
	}
	return fmt.Sprintf("Decompose this task:\n%s", payload)
}

func durationUserPrompt(title string) string {
	payload, _ := sjson.Set("", "title", title)
	return fmt.Sprintf("Estimate this unit of work:\n%s", payload)
}
