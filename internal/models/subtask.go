package models

type SubtaskPhase string

const (
	PhaseLearn    SubtaskPhase = "learn"
	PhasePractice SubtaskPhase = "practice"
	PhaseApply    SubtaskPhase = "apply"
	PhaseReview   SubtaskPhase = "review"
)

type Difficulty string

const (
	DifficultyEasy     Difficulty = "easy"
	DifficultyModerate Difficulty = "moderate"
	DifficultyHard     Difficulty = "hard"
)

// Subtask is a decomposed unit of a parent task. Subtasks are owned by
// exactly one task and ordered by the Order index.
type Subtask struct {
	ID          string       `json:"id"`
	TaskID      string       `json:"task_id"`
	Title       string       `json:"title"`
	DurationMin int          `json:"duration_min"`
	Phase       SubtaskPhase `json:"phase,omitempty"`
	Difficulty  Difficulty   `json:"difficulty,omitempty"`
	Order       int          `json:"order"`
	Done        bool         `json:"done"`
}
