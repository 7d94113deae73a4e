package ai

import (
	"errors"
	"fmt"
	"strings"

	"github.com/tidwall/gjson"

	"github.com/jtwaugh/taskweave/internal/models"
)

// ErrUnparsableResponse is returned when a model response carries no usable JSON.
var ErrUnparsableResponse = errors.New("planner response could not be parsed")

// extractJSON pulls the JSON document out of a model response, tolerating
// markdown code fences and prose before or after the document.
func extractJSON(raw string) string {
	text := strings.TrimSpace(raw)

	if idx := strings.Index(text, "```"); idx >= 0 {
		rest := text[idx+3:]
		rest = strings.TrimPrefix(rest, "json")
		if end := strings.Index(rest, "```"); end >= 0 {
			text = rest[:end]
		} else {
			text = rest
		}
		text = strings.TrimSpace(text)
	}

	start := strings.IndexAny(text, "{[")
	if start < 0 {
		return ""
	}
	text = text[start:]

	if !gjson.Valid(text) {
		// Trim trailing prose by walking back to the last closing bracket.
		for end := len(text); end > 0; end-- {
			if text[end-1] != '}' && text[end-1] != ']' {
				continue
			}
			if candidate := text[:end]; gjson.Valid(candidate) {
				return candidate
			}
		}
		return ""
	}
	return text
}

func parseQualityReport(raw string) (QualityReport, error) {
	doc := extractJSON(raw)
	if doc == "" {
		return QualityReport{}, ErrUnparsableResponse
	}

	parsed := gjson.Parse(doc)
	report := QualityReport{
		Score:      int(parsed.Get("score").Int()),
		Actionable: parsed.Get("actionable").Bool(),
	}
	for _, issue := range parsed.Get("issues").Array() {
		report.Issues = append(report.Issues, issue.String())
	}
	for _, q := range parsed.Get("clarifying_questions").Array() {
		report.ClarifyingQuestions = append(report.ClarifyingQuestions, q.String())
	}
	return report, nil
}

func parseQuestions(raw string) ([]Question, error) {
	doc := extractJSON(raw)
	if doc == "" {
		return nil, ErrUnparsableResponse
	}

	var questions []Question
	for i, item := range gjson.Get(doc, "questions").Array() {
		q := Question{
			ID:     item.Get("id").String(),
			Prompt: item.Get("prompt").String(),
		}
		if q.ID == "" {
			q.ID = fmt.Sprintf("q%d", i+1)
		}
		for _, opt := range item.Get("options").Array() {
			q.Options = append(q.Options, opt.String())
		}
		if q.Prompt != "" {
			questions = append(questions, q)
		}
	}
	if len(questions) == 0 {
		return nil, ErrUnparsableResponse
	}
	return questions, nil
}

func parseLearningPlan(raw string) (LearningPlan, error) {
	doc := extractJSON(raw)
	if doc == "" {
		return LearningPlan{}, ErrUnparsableResponse
	}

	parsed := gjson.Parse(doc)
	plan := LearningPlan{Summary: parsed.Get("summary").String()}
	for _, item := range parsed.Get("phases").Array() {
		plan.Phases = append(plan.Phases, PlanPhase{
			Name:         item.Get("name").String(),
			Phase:        normalizePhase(item.Get("phase").String()),
			Description:  item.Get("description").String(),
			EstimatedMin: int(item.Get("estimated_min").Int()),
		})
	}
	if len(plan.Phases) == 0 {
		return LearningPlan{}, ErrUnparsableResponse
	}
	return plan, nil
}

// parseSubtasks builds ordered subtasks from a model response. IDs are left
// empty for the caller to assign; Order follows response order.
func parseSubtasks(taskID, raw string, defaultDurationMin int) ([]models.Subtask, error) {
	doc := extractJSON(raw)
	if doc == "" {
		return nil, ErrUnparsableResponse
	}

	var subtasks []models.Subtask
	for i, item := range gjson.Get(doc, "subtasks").Array() {
		title := item.Get("title").String()
		if title == "" {
			continue
		}
		duration := int(item.Get("duration_min").Int())
		if duration <= 0 {
			duration = defaultDurationMin
		}
		subtasks = append(subtasks, models.Subtask{
			TaskID:      taskID,
			Title:       title,
			DurationMin: duration,
			Phase:       normalizePhase(item.Get("phase").String()),
			Difficulty:  normalizeDifficulty(item.Get("difficulty").String()),
			Order:       i + 1,
		})
	}
	if len(subtasks) == 0 {
		return nil, ErrUnparsableResponse
	}
	return subtasks, nil
}

func parseDuration(raw string) (int, error) {
	doc := extractJSON(raw)
	if doc == "" {
		return 0, ErrUnparsableResponse
	}
	duration := int(gjson.Get(doc, "duration_min").Int())
	if duration <= 0 {
		return 0, fmt.Errorf("%w: non-positive duration", ErrUnparsableResponse)
	}
	return duration, nil
}

// normalizePhase maps loose model output onto the known phases, defaulting
// to apply for anything unrecognized.
func normalizePhase(s string) models.SubtaskPhase {
	switch models.SubtaskPhase(strings.ToLower(strings.TrimSpace(s))) {
	case models.PhaseLearn:
		return models.PhaseLearn
	case models.PhasePractice:
		return models.PhasePractice
	case models.PhaseReview:
		return models.PhaseReview
	default:
		return models.PhaseApply
	}
}

func normalizeDifficulty(s string) models.Difficulty {
	switch models.Difficulty(strings.ToLower(strings.TrimSpace(s))) {
	case models.DifficultyEasy:
		return models.DifficultyEasy
	case models.DifficultyHard:
		return models.DifficultyHard
	default:
		return models.DifficultyModerate
	}
}
