package parse

import (
	"strings"

	"traderdesk/internal/models"
)

// ReasoningRuleBased is the fixed reasoning string attached to
// rule-based detections.
const ReasoningRuleBased = "Rule-based detection (LLM not available)"

// DetectAlgo detects an execution algorithm in normalized text.
// Checks run in priority order and the first match wins; nil means
// no algorithm was recognized.
func DetectAlgo(text string) (*models.AlgoType, string) {
	var algo *models.AlgoType

	switch {
	case strings.Contains(text, "vwap"):
		algo = algoPtr(models.AlgoVWAP)
	case strings.Contains(text, "twap"):
		algo = algoPtr(models.AlgoTWAP)
	case strings.Contains(text, "pov"), strings.Contains(text, "participation"):
		algo = algoPtr(models.AlgoPOV)
	case strings.Contains(text, "aggressive"),
		strings.Contains(text, "urgent"),
		strings.Contains(text, "shortfall"):
		algo = algoPtr(models.AlgoImplementationShortfall)
	}

	return algo, ReasoningRuleBased
}

func algoPtr(a models.AlgoType) *models.AlgoType {
	return &a
}
