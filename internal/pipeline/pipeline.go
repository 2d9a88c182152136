package pipeline

import (
	"context"

	"github.com/rs/zerolog"

	"traderdesk/internal/agents"
	"traderdesk/internal/logging"
	"traderdesk/internal/parse"
)

// Pipeline runs the fixed four-stage trader-text workflow. The backend
// for stages two and three is selected once per Run, never re-checked
// between stages.
type Pipeline struct {
	agent  *agents.ParserAgent
	logger zerolog.Logger
}

// New creates a pipeline. The agent may be nil, in which case every run
// uses the rule-based backend.
func New(agent *agents.ParserAgent, logger zerolog.Logger) *Pipeline {
	return &Pipeline{
		agent:  agent,
		logger: logger,
	}
}

// LLMAvailable reports whether runs will use the model-backed backend.
func (p *Pipeline) LLMAvailable() bool {
	return p.agent != nil && p.agent.Available()
}

// Run executes the pipeline over the caller's raw text and returns the
// terminal state. Every stage is total, so the returned state always
// carries a non-empty structured output and a confidence in [0,1].
func (p *Pipeline) Run(ctx context.Context, inputText string) *State {
	return p.RunWithBackend(ctx, p.selectBackend(), inputText)
}

// RunWithBackend executes the pipeline with an explicit backend
// strategy, bypassing availability selection.
func (p *Pipeline) RunWithBackend(ctx context.Context, backend Backend, inputText string) *State {
	st := NewState(inputText)

	p.runNormalize(st)
	p.runDetect(ctx, backend, st)
	p.runExtract(ctx, backend, st)
	p.runRender(st)

	algoName := "none"
	if st.DetectedAlgo != nil {
		algoName = string(*st.DetectedAlgo)
	}
	logging.LogTraderTextParse(p.logger, algoName, st.StructuredOutput, st.Confidence, backend.Name() == "llm")

	return st
}

func (p *Pipeline) selectBackend() Backend {
	if p.LLMAvailable() {
		return LLMBackend{Agent: p.agent}
	}
	return RuleBackend{}
}

func (p *Pipeline) runNormalize(st *State) {
	st.NormalizedText = parse.Normalize(st.InputText)
	st.advance(StageNormalized)
}

func (p *Pipeline) runDetect(ctx context.Context, backend Backend, st *State) {
	st.DetectedAlgo, st.Reasoning = backend.DetectAlgo(ctx, st.InputText, st.NormalizedText)
	st.advance(StageAlgoDetected)
}

func (p *Pipeline) runExtract(ctx context.Context, backend Backend, st *State) {
	// No detected algorithm forces empty parameters without touching
	// the backend.
	if st.DetectedAlgo == nil {
		st.Parameters = map[string]any{}
	} else {
		st.Parameters = backend.ExtractParams(ctx, st.InputText, st.NormalizedText, st.DetectedAlgo)
	}
	st.advance(StageParamsExtracted)
}

func (p *Pipeline) runRender(st *State) {
	st.StructuredOutput, st.Confidence = parse.Render(st.DetectedAlgo, st.Parameters, st.InputText)
	st.advance(StageRendered)
}
