package ai

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jtwaugh/taskweave/internal/models"
)

func TestParseSubtasks(t *testing.T) {
	raw := `{"subtasks": [
		{"title": "Read the docs", "duration_min": 45, "phase": "learn", "difficulty": "easy"},
		{"title": "Build a prototype", "duration_min": 120, "phase": "apply", "difficulty": "hard"}
	]}`

	subtasks, err := parseSubtasks("task-1", raw, 60)
	require.NoError(t, err)
	require.Len(t, subtasks, 2)

	assert.Equal(t, "task-1", subtasks[0].TaskID)
	assert.Equal(t, "Read the docs", subtasks[0].Title)
	assert.Equal(t, 45, subtasks[0].DurationMin)
	assert.Equal(t, models.PhaseLearn, subtasks[0].Phase)
	assert.Equal(t, models.DifficultyEasy, subtasks[0].Difficulty)
	assert.Equal(t, 1, subtasks[0].Order)
	assert.Equal(t, 2, subtasks[1].Order)
}

func TestParseSubtasks_MarkdownFence(t *testing.T) {
	raw := "Here is the breakdown:\n```json\n{\"subtasks\": [{\"title\": \"Outline\", \"duration_min\": 30}]}\n```\nLet me know if you want changes."

	subtasks, err := parseSubtasks("task-1", raw, 60)
	require.NoError(t, err)
	require.Len(t, subtasks, 1)
	assert.Equal(t, "Outline", subtasks[0].Title)
}

func TestParseSubtasks_DefaultsApplied(t *testing.T) {
	raw := `{"subtasks": [{"title": "Mystery step"}]}`

	subtasks, err := parseSubtasks("task-1", raw, 60)
	require.NoError(t, err)
	require.Len(t, subtasks, 1)

	assert.Equal(t, 60, subtasks[0].DurationMin, "missing duration falls back to the default")
	assert.Equal(t, models.PhaseApply, subtasks[0].Phase, "unknown phase normalizes to apply")
	assert.Equal(t, models.DifficultyModerate, subtasks[0].Difficulty, "unknown difficulty normalizes to moderate")
}

func TestParseSubtasks_Unparsable(t *testing.T) {
	_, err := parseSubtasks("task-1", "I could not produce a breakdown for this task.", 60)
	assert.ErrorIs(t, err, ErrUnparsableResponse)

	_, err = parseSubtasks("task-1", `{"subtasks": []}`, 60)
	assert.ErrorIs(t, err, ErrUnparsableResponse)
}

func TestParseQualityReport(t *testing.T) {
	raw := `{"score": 35, "actionable": false,
		"issues": ["no concrete outcome"],
		"clarifying_questions": ["What does done look like?"]}`

	report, err := parseQualityReport(raw)
	require.NoError(t, err)

	assert.Equal(t, 35, report.Score)
	assert.False(t, report.Actionable)
	assert.Equal(t, []string{"no concrete outcome"}, report.Issues)
	assert.Equal(t, []string{"What does done look like?"}, report.ClarifyingQuestions)
}

func TestParseQuestions(t *testing.T) {
	raw := `{"questions": [
		{"id": "experience", "prompt": "Have you done this before?", "options": ["never", "a little", "often"]},
		{"prompt": "What is your end goal?"}
	]}`

	questions, err := parseQuestions(raw)
	require.NoError(t, err)
	require.Len(t, questions, 2)

	assert.Equal(t, "experience", questions[0].ID)
	assert.Len(t, questions[0].Options, 3)
	assert.Equal(t, "q2", questions[1].ID, "missing IDs are synthesized from position")
	assert.Empty(t, questions[1].Options)
}

func TestParseLearningPlan(t *testing.T) {
	raw := `{"summary": "Front-load fundamentals, then build.",
		"phases": [
			{"name": "Fundamentals", "phase": "learn", "description": "Core concepts", "estimated_min": 180},
			{"name": "Project", "phase": "apply", "estimated_min": 300}
		]}`

	plan, err := parseLearningPlan(raw)
	require.NoError(t, err)

	assert.Equal(t, "Front-load fundamentals, then build.", plan.Summary)
	require.Len(t, plan.Phases, 2)
	assert.Equal(t, models.PhaseLearn, plan.Phases[0].Phase)
	assert.Equal(t, 300, plan.Phases[1].EstimatedMin)
}

func TestParseDuration(t *testing.T) {
	duration, err := parseDuration(`{"duration_min": 90}`)
	require.NoError(t, err)
	assert.Equal(t, 90, duration)

	_, err = parseDuration(`{"duration_min": 0}`)
	assert.ErrorIs(t, err, ErrUnparsableResponse)

	_, err = parseDuration("about an hour, maybe two")
	assert.ErrorIs(t, err, ErrUnparsableResponse)
}

func TestExtractJSON_TrailingProse(t *testing.T) {
	raw := `{"duration_min": 45} Hope that helps!`
	assert.Equal(t, `{"duration_min": 45}`, extractJSON(raw))
}
