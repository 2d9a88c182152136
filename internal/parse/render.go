package parse

import (
	"fmt"
	"strings"

	"traderdesk/internal/models"
)

// Fixed confidence constants assigned by template.
const (
	ConfidenceNone      = 0.5
	ConfidenceVWAP      = 0.95
	ConfidenceTWAP      = 0.92
	ConfidencePOV       = 0.90
	ConfidenceShortfall = 0.88
)

// Render produces the canonical human-readable summary for a detected
// algorithm and its parameters, together with the template's confidence
// score. Missing parameter keys use the same defaults as extraction.
// originalText is the caller's raw input, used only when no algorithm
// was detected.
func Render(algo *models.AlgoType, params map[string]any, originalText string) (string, float64) {
	if algo == nil {
		return fmt.Sprintf("Custom execution: %s", originalText), ConfidenceNone
	}

	switch *algo {
	case models.AlgoVWAP:
		endTime := stringParam(params, "end_time", DefaultEndTime)
		auctions := ""
		if boolParam(params, "include_auctions") {
			auctions = " on all auctions"
		}
		return fmt.Sprintf("VWAP Market Close [%s]%s", endTime, auctions), ConfidenceVWAP

	case models.AlgoTWAP:
		duration := stringParam(params, "duration", DefaultDuration)
		return fmt.Sprintf("TWAP execution over %s", duration), ConfidenceTWAP

	case models.AlgoPOV:
		rate := stringParam(params, "participation_rate", DefaultParticipationRate)
		return fmt.Sprintf("POV %s participation rate", rate), ConfidencePOV

	case models.AlgoImplementationShortfall:
		urgency := stringParam(params, "urgency", "medium")
		return fmt.Sprintf("Implementation Shortfall - %s urgency profile", capitalize(urgency)), ConfidenceShortfall

	default:
		return fmt.Sprintf("Custom execution: %s", originalText), ConfidenceNone
	}
}

// stringParam reads a string parameter, tolerating values decoded from
// model JSON that are not strings.
func stringParam(params map[string]any, key, fallback string) string {
	v, ok := params[key]
	if !ok || v == nil {
		return fallback
	}
	switch s := v.(type) {
	case string:
		if s == "" {
			return fallback
		}
		return s
	default:
		return fmt.Sprintf("%v", v)
	}
}

func boolParam(params map[string]any, key string) bool {
	v, ok := params[key]
	if !ok {
		return false
	}
	switch b := v.(type) {
	case bool:
		return b
	case string:
		return strings.EqualFold(b, "true")
	default:
		return false
	}
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
