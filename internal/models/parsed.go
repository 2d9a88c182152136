package models

// TraderTextParsed is the response shape for trader-text parsing.
// Algo is nil when no execution algorithm was recognized, in which case
// Parameters is always empty.
type TraderTextParsed struct {
	Structured string         `json:"structured"`
	Algo       *AlgoType      `json:"algo"`
	Parameters map[string]any `json:"parameters"`
	Confidence float64        `json:"confidence"`
	Reasoning  string         `json:"reasoning"`
}
