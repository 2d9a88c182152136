package parse

import (
	"fmt"
	"regexp"
	"strings"

	"traderdesk/internal/models"
)

var (
	timeOfDayRe = regexp.MustCompile(`(\d{1,2}):(\d{2})`)
	durationRe  = regexp.MustCompile(`(\d+)\s*(hour|hr|minute|min)`)
	percentRe   = regexp.MustCompile(`(\d+)\s*%`)
)

// Default parameter values used when a pattern does not match.
const (
	DefaultStartTime         = "09:30"
	DefaultEndTime           = "16:00"
	DefaultDuration          = "full day"
	DefaultParticipationRate = "10%"
)

// ExtractParams extracts algorithm-specific parameters from normalized
// text. Absent matches fall back to the documented defaults, so every
// expected key is always present. A nil algo yields an empty map.
func ExtractParams(text string, algo *models.AlgoType) map[string]any {
	params := map[string]any{}
	if algo == nil {
		return params
	}

	switch *algo {
	case models.AlgoVWAP:
		params["start_time"] = DefaultStartTime
		params["end_time"] = DefaultEndTime
		if m := timeOfDayRe.FindStringSubmatch(text); m != nil {
			params["end_time"] = fmt.Sprintf("%s:%s", m[1], m[2])
		}
		params["include_auctions"] = strings.Contains(text, "auction")

	case models.AlgoTWAP:
		params["duration"] = DefaultDuration
		if m := durationRe.FindStringSubmatch(text); m != nil {
			params["duration"] = fmt.Sprintf("%s %s", m[1], m[2])
		}

	case models.AlgoPOV:
		params["participation_rate"] = DefaultParticipationRate
		if m := percentRe.FindStringSubmatch(text); m != nil {
			params["participation_rate"] = m[1] + "%"
		}

	case models.AlgoImplementationShortfall:
		urgency := "medium"
		if strings.Contains(text, "aggressive") || strings.Contains(text, "urgent") {
			urgency = "high"
		}
		params["urgency"] = urgency
	}

	return params
}
