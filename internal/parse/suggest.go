package parse

import "strings"

// suggestionEntry maps a short keyword prefix to candidate completions.
type suggestionEntry struct {
	prefix     string
	candidates []string
}

// suggestionTable is evaluated in order; the first prefix the trimmed,
// lower-cased input starts with selects its candidate list.
var suggestionTable = []suggestionEntry{
	{"vwap", []string{"VWAP Market Close", "VWAP Market Close 16:00", "VWAP with auctions"}},
	{"twap", []string{"TWAP over 2 hours", "TWAP over trading day", "TWAP 1 hour execution"}},
	{"pov", []string{"POV 10% participation", "POV 15% participation rate", "POV 5% target"}},
	{"aggr", []string{"aggressive execution required", "aggressive - minimize slippage"}},
	{"urgent", []string{"urgent - minimize market impact", "urgent execution needed"}},
	{"client", []string{"Client requests immediate execution", "Client confirmed price tolerance"}},
	{"priority", []string{"Priority order - high net worth client", "Priority - institutional client"}},
	{"rebal", []string{"Part of portfolio rebalancing strategy", "Rebalancing trade - no rush"}},
}

// Suggest returns completion suggestions for partial input. Candidates
// are filtered to those starting with the input, case-insensitively;
// no matching prefix yields an empty slice.
func Suggest(partial string) []string {
	input := Normalize(partial)
	if input == "" {
		return []string{}
	}

	for _, entry := range suggestionTable {
		if !strings.HasPrefix(input, entry.prefix) {
			continue
		}
		out := []string{}
		for _, candidate := range entry.candidates {
			if strings.HasPrefix(strings.ToLower(candidate), input) {
				out = append(out, candidate)
			}
		}
		return out
	}

	return []string{}
}
