package evaluation

import (
	"context"
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/akolanti/SDKAssistant/internal/agent"
	"github.com/akolanti/SDKAssistant/internal/config"
	"github.com/akolanti/SDKAssistant/internal/domain/chatModel"
	"github.com/akolanti/SDKAssistant/internal/rag/llm"
	"github.com/akolanti/SDKAssistant/pkg/logger_i"
)

//go:embed dataset.json
var defaultDataset []byte

type Item struct {
	Input     string `json:"input"`
	Reference string `json:"reference"`
}

type Result struct {
	Input      string `json:"input"`
	Prediction string `json:"prediction"`
	Value      string `json:"value"`
	Score      int    `json:"score"`
	Reasoning  string `json:"reasoning"`
}

type Report struct {
	Results  []Result `json:"results"`
	Mean     float64  `json:"mean"`
	Failures int      `json:"failures"`
}

const judgePrompt = `You are assessing a submitted answer on a given task or input based on a set of criteria. Here is the data:
[BEGIN DATA]
***
[Input]: %s
***
[Submission]: %s
***
[Criteria]: correctness: Is the submission correct, accurate, and factual?
***
[Reference]: %s
***
[END DATA]
Does the submission meet the Criteria? First, write out in a step by step manner your reasoning about each criterion to be sure that your conclusion is correct. Avoid simply stating the correct answers at the outset. Then print only the single character "Y" or "N" (without quotes or punctuation) on its own line corresponding to the correct answer of whether the submission meets all criteria. At the end, repeat just the letter again by itself on a new line.`

// DefaultDataset is the labelled question set shipped with the assistant.
func DefaultDataset() []Item {
	items, err := parseDataset(defaultDataset)
	if err != nil {
		panic(err)
	}
	return items
}

func LoadDataset(path string) ([]Item, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading dataset: %w", err)
	}
	return parseDataset(data)
}

func parseDataset(data []byte) ([]Item, error) {
	var items []Item
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, fmt.Errorf("decoding dataset: %w", err)
	}
	return items, nil
}

// Evaluator answers every item with a fresh agent and grades the answer against the
// reference with an LLM judge.
type Evaluator struct {
	newAgent func(cfg chatModel.ModelConfig) (*agent.Agent, error)
	judge    llm.Completer
	logger   *logger_i.Logger
}

func New(newAgent func(cfg chatModel.ModelConfig) (*agent.Agent, error), judge llm.Completer) *Evaluator {
	return &Evaluator{
		newAgent: newAgent,
		judge:    judge,
		logger:   logger_i.NewLogger("evaluation"),
	}
}

// AgentConfig is deterministic sampling on the default model.
func AgentConfig() chatModel.ModelConfig {
	return chatModel.ModelConfig{
		Model:            config.DefaultModel,
		Temperature:      0,
		FrequencyPenalty: 0,
		PresencePenalty:  0,
		TopP:             1,
	}
}

func (e *Evaluator) Run(ctx context.Context, items []Item) (Report, error) {
	var report Report
	total := 0
	for _, item := range items {
		result, err := e.evaluate(ctx, item)
		if err != nil {
			return report, err
		}
		if result.Value == "Y" {
			e.logger.Info("Passed", "input", item.Input, "score", result.Score)
		} else {
			e.logger.Error("Failed", "input", item.Input, "score", result.Score, "reasoning", result.Reasoning)
			report.Failures++
		}
		total += result.Score
		report.Results = append(report.Results, result)
	}
	if len(report.Results) > 0 {
		report.Mean = float64(total) / float64(len(report.Results))
	}
	e.logger.Info("Evaluation finished", "mean", report.Mean, "evaluated", len(report.Results), "failures", report.Failures)
	return report, nil
}

func (e *Evaluator) evaluate(ctx context.Context, item Item) (Result, error) {
	a, err := e.newAgent(AgentConfig())
	if err != nil {
		return Result{}, err
	}
	res, err := a.Invoke(ctx, agent.Input{Text: item.Input})
	if err != nil {
		if ctx.Err() != nil {
			return Result{}, ctx.Err()
		}
		return Result{Input: item.Input, Value: "N", Reasoning: "agent failed: " + err.Error()}, nil
	}

	verdict, err := e.judge.Complete(ctx, fmt.Sprintf(judgePrompt, item.Input, res.Output, item.Reference),
		llm.Settings{Model: config.EvaluationJudgeModel, TopP: 1})
	if err != nil {
		return Result{}, fmt.Errorf("grading %q: %w", item.Input, err)
	}
	value, reasoning := ParseVerdict(verdict)
	score := 0
	if value == "Y" {
		score = 1
	}
	return Result{Input: item.Input, Prediction: res.Output, Value: value, Score: score, Reasoning: reasoning}, nil
}

// ParseVerdict takes the last non empty line as the Y/N value and everything before it as the
// reasoning. The letter is repeated at the end of the judge's answer, so repeats are dropped.
func ParseVerdict(text string) (value string, reasoning string) {
	lines := strings.Split(strings.TrimSpace(text), "\n")
	last := len(lines) - 1
	value = strings.ToUpper(strings.Trim(strings.TrimSpace(lines[last]), `."'`))
	for last > 0 && strings.ToUpper(strings.TrimSpace(lines[last-1])) == value {
		last--
	}
	if value != "Y" && value != "N" {
		return "N", strings.TrimSpace(text)
	}
	return value, strings.TrimSpace(strings.Join(lines[:last], "\n"))
}
