package ai

import (
	"context"
	"errors"
	"fmt"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"

	"github.com/jtwaugh/taskweave/internal/logger"
	"github.com/jtwaugh/taskweave/internal/models"
)

// ErrNoAPIKey is returned when no planner API key is configured.
var ErrNoAPIKey = errors.New("no planner API key configured, run 'taskweave config set-api-key'")

// Client is the OpenAI-backed Planner implementation.
type Client struct {
	api                openai.Client
	model              string
	defaultDurationMin int
	cache              *responseCache
}

// Config holds planner client configuration.
type Config struct {
	APIKey             string
	Model              string
	BaseURL            string // empty for the default endpoint
	DefaultDurationMin int
}

// NewClient creates an OpenAI-backed planner. The API key is required; model
// and base URL come from settings.
func NewClient(cfg Config) (*Client, error) {
	if cfg.APIKey == "" {
		return nil, ErrNoAPIKey
	}

	opts := []option.RequestOption{option.WithAPIKey(cfg.APIKey)}
	if cfg.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(cfg.BaseURL))
	}

	if cfg.DefaultDurationMin <= 0 {
		cfg.DefaultDurationMin = 60
	}

	return &Client{
		api:                openai.NewClient(opts...),
		model:              cfg.Model,
		defaultDurationMin: cfg.DefaultDurationMin,
		cache:              newResponseCache(),
	}, nil
}

// complete runs one chat completion. There is no retry: a failed call is
// surfaced to the caller, and retrying is a user action.
func (c *Client) complete(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	key := promptKey{Model: c.model, System: systemPrompt, User: userPrompt}
	if cached, ok := c.cache.get(key); ok {
		logger.Debug("Planner cache hit", "model", c.model)
		return cached, nil
	}

	resp, err := c.api.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: openai.ChatModel(c.model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(systemPrompt),
			openai.UserMessage(userPrompt),
		},
		Temperature:         openai.Float(0.2),
		MaxCompletionTokens: openai.Int(1024),
	})
	if err != nil {
		return "", fmt.Errorf("planner request failed: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("planner returned no choices")
	}

	text := resp.Choices[0].Message.Content
	c.cache.put(key, text)
	return text, nil
}

func (c *Client) AnalyzeTaskQuality(ctx context.Context, task models.Task) (QualityReport, error) {
	raw, err := c.complete(ctx, qualitySystemPrompt, qualityUserPrompt(task))
	if err != nil {
		return QualityReport{}, err
	}
	return parseQualityReport(raw)
}

func (c *Client) PersonalizationQuestions(ctx context.Context, task models.Task) ([]Question, error) {
	raw, err := c.complete(ctx, questionsSystemPrompt, questionsUserPrompt(task))
	if err != nil {
		return nil, err
	}
	return parseQuestions(raw)
}

func (c *Client) GenerateLearningPlan(ctx context.Context, task models.Task, answers map[string]string) (LearningPlan, error) {
	raw, err := c.complete(ctx, planSystemPrompt, planUserPrompt(task, answers))
	if err != nil {
		return LearningPlan{}, err
	}
	return parseLearningPlan(raw)
}

func (c *Client) GenerateSubtasks(ctx context.Context, task models.Task, plan *LearningPlan) ([]models.Subtask, error) {
	raw, err := c.complete(ctx, subtasksSystemPrompt, subtasksUserPrompt(task, plan))
	if err != nil {
		return nil, err
	}
	return parseSubtasks(task.ID, raw, c.defaultDurationMin)
}

func (c *Client) EstimateDuration(ctx context.Context, title string) (int, error) {
	raw, err := c.complete(ctx, durationSystemPrompt, durationUserPrompt(title))
	if err != nil {
		return 0, err
	}
	return parseDuration(raw)
}
