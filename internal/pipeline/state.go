// Package pipeline implements the four-stage trader-text parsing
// workflow: normalize, detect algorithm, extract parameters, render.
package pipeline

import "traderdesk/internal/models"

// Stage identifies a completed pipeline stage. Transitions are strictly
// linear; a stage is never skipped or revisited.
type Stage int

const (
	StageInitial Stage = iota
	StageNormalized
	StageAlgoDetected
	StageParamsExtracted
	StageRendered
)

// String returns the stage name used in diagnostics.
func (s Stage) String() string {
	switch s {
	case StageNormalized:
		return "normalize"
	case StageAlgoDetected:
		return "detect_algo"
	case StageParamsExtracted:
		return "extract_params"
	case StageRendered:
		return "generate_output"
	default:
		return "initial"
	}
}

// StageNames lists the pipeline stages in execution order.
func StageNames() []string {
	return []string{
		StageNormalized.String(),
		StageAlgoDetected.String(),
		StageParamsExtracted.String(),
		StageRendered.String(),
	}
}

// State is the single mutable record threaded through the pipeline.
// InputText is set once at creation and never modified; each stage
// writes its own fields.
type State struct {
	InputText        string
	NormalizedText   string
	DetectedAlgo     *models.AlgoType
	Parameters       map[string]any
	StructuredOutput string
	Confidence       float64
	Reasoning        string

	stage Stage
}

// NewState creates the initial state for one pipeline run.
func NewState(inputText string) *State {
	return &State{
		InputText:  inputText,
		Parameters: map[string]any{},
	}
}

// Stage returns the last completed stage.
func (s *State) Stage() Stage {
	return s.stage
}

// advance records stage completion. Stages within one run always
// advance in order, so the new stage is the successor of the current.
func (s *State) advance(to Stage) {
	if to == s.stage+1 {
		s.stage = to
	}
}

// Result projects the final state into the API response shape.
func (s *State) Result() models.TraderTextParsed {
	return models.TraderTextParsed{
		Structured: s.StructuredOutput,
		Algo:       s.DetectedAlgo,
		Parameters: s.Parameters,
		Confidence: s.Confidence,
		Reasoning:  s.Reasoning,
	}
}
