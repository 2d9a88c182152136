package pipeline

import (
	"context"

	"traderdesk/internal/agents"
	"traderdesk/internal/models"
	"traderdesk/internal/parse"
)

// Backend is the strategy used for the detection and extraction stages.
// Implementations must be total: they return a value of the correct
// shape for every input and never propagate backend failures.
type Backend interface {
	// Name identifies the backend in logs and reasoning.
	Name() string
	// DetectAlgo detects the execution algorithm. input is the raw
	// caller text, normalized its normalized form.
	DetectAlgo(ctx context.Context, input, normalized string) (*models.AlgoType, string)
	// ExtractParams extracts algorithm parameters for a non-nil algo.
	ExtractParams(ctx context.Context, input, normalized string, algo *models.AlgoType) map[string]any
}

// RuleBackend runs the deterministic pattern-matching extractors.
type RuleBackend struct{}

// Name implements Backend.
func (RuleBackend) Name() string { return "rules" }

// DetectAlgo implements Backend.
func (RuleBackend) DetectAlgo(_ context.Context, _, normalized string) (*models.AlgoType, string) {
	return parse.DetectAlgo(normalized)
}

// ExtractParams implements Backend.
func (RuleBackend) ExtractParams(_ context.Context, _, normalized string, algo *models.AlgoType) map[string]any {
	return parse.ExtractParams(normalized, algo)
}

// LLMBackend delegates detection and extraction to the parser agent.
// The agent degrades internally, so this backend is also total.
type LLMBackend struct {
	Agent *agents.ParserAgent
}

// Name implements Backend.
func (LLMBackend) Name() string { return "llm" }

// DetectAlgo implements Backend. The model sees the raw caller text,
// not the normalized form.
func (b LLMBackend) DetectAlgo(ctx context.Context, input, _ string) (*models.AlgoType, string) {
	return b.Agent.DetectAlgo(ctx, input)
}

// ExtractParams implements Backend.
func (b LLMBackend) ExtractParams(ctx context.Context, input, _ string, algo *models.AlgoType) map[string]any {
	return b.Agent.ExtractParams(ctx, input, algo)
}
