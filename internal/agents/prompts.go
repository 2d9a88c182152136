package agents

import (
	"fmt"
	"strings"

	"traderdesk/internal/models"
)

// Per-task sampling budgets.
var (
	detectOptions   = CompletionOptions{Temperature: 0.3, MaxTokens: 200}
	paramsOptions   = CompletionOptions{Temperature: 0.2, MaxTokens: 300}
	orderOptions    = CompletionOptions{Temperature: 0.2, MaxTokens: 300}
	suggestOptions  = CompletionOptions{Temperature: 0.4, MaxTokens: 50}
)

const (
	detectSystemPrompt  = "You are a financial trading algorithm expert."
	paramsSystemPrompt  = "You are a financial trading parameter extraction expert. Always respond with valid JSON only."
	orderSystemPrompt   = "You are a financial order parsing expert. Always respond with valid JSON only."
	suggestSystemPrompt = "You are an autocomplete assistant. Respond with a single completion suggestion only."
)

func detectPrompt(inputText string) string {
	return fmt.Sprintf(`You are an expert in financial trading algorithms. Analyze the following trader instruction and identify the execution algorithm.

Trader Instruction: %q

Available algorithms:
- VWAP (Volume Weighted Average Price): Used to execute large orders over time matching the volume-weighted average price
- TWAP (Time Weighted Average Price): Executes orders evenly over a specified time period
- POV (Percentage of Volume): Executes as a percentage of market volume
- Implementation Shortfall: Balances urgency and market impact dynamically

Respond with ONLY the algorithm name (vwap, twap, pov, or implementation_shortfall) or "none" if unclear. Include a brief reason.

Format your response as:
ALGORITHM: [name]
REASON: [brief explanation]`, inputText)
}

func paramsPrompt(inputText string, algo models.AlgoType) string {
	upper := strings.ToUpper(string(algo))
	return fmt.Sprintf(`Extract execution parameters from this trader instruction for a %s algorithm.

Trader Instruction: %q

Based on the algorithm type (%s), extract relevant parameters such as:
- For VWAP: start_time, end_time, include_auctions
- For TWAP: duration, number_of_slices
- For POV: participation_rate, min_rate, max_rate
- For Implementation Shortfall: urgency_level, risk_aversion

Respond ONLY with valid JSON containing the parameters. If a parameter is not specified, use reasonable defaults.

Example: {"end_time": "16:00", "include_auctions": true}`, upper, inputText, upper)
}

func orderPrompt(inputText string, securities []models.SecurityInfo) string {
	var listing strings.Builder
	for _, s := range securities {
		fmt.Fprintf(&listing, "- %s: %s (%s, %s)\n", s.Symbol, s.Name, s.Market, s.Currency)
	}

	return fmt.Sprintf(`You are a financial order entry assistant. Parse the following natural language order instruction into structured data.

Available Securities:
%s
Order Instruction: %q

Extract the following information:
1. Security (symbol, if mentioned)
2. Quantity (number of shares/units)
3. Price (if specified, otherwise null for market order)
4. Time in Force (DAY, GTC, GTD, or FOK)
5. Contact Method (phone, email, meeting, or portal)

Respond ONLY with valid JSON in this exact format:
{
    "symbol": "AAPL" or null,
    "quantity": 100 or null,
    "price": 180.50 or null,
    "time_in_force": "GTC",
    "contact_method": "phone"
}`, listing.String(), inputText)
}

func suggestPrompt(partial string) string {
	return fmt.Sprintf(`You are an autocomplete assistant for financial trader notes. Given the partial text, suggest ONE complete phrase that a trader might want to type.

Partial text: %q

Common trader instructions include:
- VWAP Market Close
- TWAP over [time period]
- POV [percentage]%% participation
- Aggressive execution required
- Client requests immediate execution
- Priority order - high net worth client

Respond with ONLY ONE completion suggestion that starts with the given text. Be concise.`, partial)
}
