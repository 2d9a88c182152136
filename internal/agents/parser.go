package agents

import (
	"context"
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"traderdesk/internal/catalog"
	"traderdesk/internal/errors"
	"traderdesk/internal/logging"
	"traderdesk/internal/models"
	"traderdesk/internal/parse"
)

var (
	algorithmLineRe = regexp.MustCompile(`(?i)ALGORITHM:\s*(\w+)`)
	reasonLineRe    = regexp.MustCompile(`(?is)REASON:\s*(.+)`)
)

// ParserAgent runs the model-backed variants of the parsing tasks.
// Every method is total: transport and decode failures degrade to the
// documented fallback and never propagate.
type ParserAgent struct {
	llm     LLMClient
	catalog *catalog.Catalog
	logger  zerolog.Logger
}

// NewParserAgent creates a parser agent. A nil llm client makes every
// method take its fallback path immediately.
func NewParserAgent(llm LLMClient, cat *catalog.Catalog, logger zerolog.Logger) *ParserAgent {
	return &ParserAgent{
		llm:     llm,
		catalog: cat,
		logger:  logger,
	}
}

// Available reports whether a language-model client is configured.
func (a *ParserAgent) Available() bool {
	return a.llm != nil
}

// DetectAlgo identifies the execution algorithm in trader text via one
// completion request. A missing ALGORITHM line, an unknown token, or a
// transport failure yields a nil algorithm with the failure description
// as reasoning.
func (a *ParserAgent) DetectAlgo(ctx context.Context, inputText string) (*models.AlgoType, string) {
	if a.llm == nil {
		return parse.DetectAlgo(parse.Normalize(inputText))
	}

	response, err := a.complete(ctx, "detect_algo", detectSystemPrompt, detectPrompt(inputText), detectOptions)
	if err != nil {
		return nil, fmt.Sprintf("Error: %v", err)
	}

	var algo *models.AlgoType
	if m := algorithmLineRe.FindStringSubmatch(response); m != nil {
		if parsed, ok := models.ParseAlgoType(m[1]); ok {
			algo = &parsed
		}
	}

	reasoning := "LLM detection"
	if m := reasonLineRe.FindStringSubmatch(response); m != nil {
		reasoning = strings.TrimSpace(m[1])
	}

	return algo, reasoning
}

// ExtractParams asks the model for a single JSON object of parameters.
// Decode or transport failure yields an empty map, a deliberate
// "extraction failed" signal distinct from the rule-based defaults.
func (a *ParserAgent) ExtractParams(ctx context.Context, inputText string, algo *models.AlgoType) map[string]any {
	if algo == nil {
		return map[string]any{}
	}
	if a.llm == nil {
		return parse.ExtractParams(parse.Normalize(inputText), algo)
	}

	response, err := a.complete(ctx, "extract_params", paramsSystemPrompt, paramsPrompt(inputText, *algo), paramsOptions)
	if err != nil {
		return map[string]any{}
	}

	payload, err := extractJSON(response)
	if err != nil {
		a.logger.Warn().Str("task", "extract_params").Str("raw", response).Msg("No JSON object in model output")
		return map[string]any{}
	}

	params := map[string]any{}
	if err := json.Unmarshal(payload, &params); err != nil {
		a.logger.Warn().Err(err).Str("task", "extract_params").Msg("Decoding parameter JSON failed")
		return map[string]any{}
	}

	return params
}

// llmOrderResult is the JSON shape requested from the model for order
// parsing.
type llmOrderResult struct {
	Symbol        *string  `json:"symbol"`
	Quantity      *int     `json:"quantity"`
	Price         *float64 `json:"price"`
	TimeInForce   string   `json:"time_in_force"`
	ContactMethod string   `json:"contact_method"`
}

// ParseOrder extracts order fields from free text. On any parse or
// transport failure the whole result falls back to the rule-based
// extractor run on the same input. A symbol the catalog does not know
// maps to a nil security; it is never invented.
func (a *ParserAgent) ParseOrder(ctx context.Context, text string) models.OrderForm {
	if a.llm == nil {
		return parse.ExtractOrder(text, a.catalog)
	}

	response, err := a.complete(ctx, "parse_order", orderSystemPrompt, orderPrompt(text, a.catalog.List()), orderOptions)
	if err != nil {
		return parse.ExtractOrder(text, a.catalog)
	}

	payload, err := extractJSON(response)
	if err != nil {
		a.logger.Warn().Str("task", "parse_order").Str("raw", response).Msg("No JSON object in model output")
		return parse.ExtractOrder(text, a.catalog)
	}

	var result llmOrderResult
	if err := json.Unmarshal(payload, &result); err != nil {
		a.logger.Warn().Err(err).Str("task", "parse_order").Msg("Decoding order JSON failed")
		return parse.ExtractOrder(text, a.catalog)
	}

	// An enum token outside the domain is a parse failure, not a value
	// to coerce. The whole result falls back, same as a decode failure.
	tif, tifOK := models.LookupTimeInForce(result.TimeInForce)
	contact, contactOK := models.LookupContactMethod(result.ContactMethod)
	if !tifOK || !contactOK {
		a.logger.Warn().
			Str("task", "parse_order").
			Str("time_in_force", result.TimeInForce).
			Str("contact_method", result.ContactMethod).
			Msg("Invalid enum token in order JSON")
		return parse.ExtractOrder(text, a.catalog)
	}

	form := models.NewOrderForm()
	if result.Symbol != nil {
		if sec, err := a.catalog.Get(*result.Symbol); err == nil {
			form.Security = &sec
		}
	}
	form.Quantity = result.Quantity
	form.Price = result.Price
	form.TimeInForce = tif
	form.ContactMethod = contact

	return form
}

// Suggest returns autocomplete suggestions. Inputs shorter than three
// characters never reach the model; an empty or failed completion falls
// back to the rule-based suggester.
func (a *ParserAgent) Suggest(ctx context.Context, partial string) []string {
	if a.llm == nil || len(partial) < 3 {
		return parse.Suggest(partial)
	}

	response, err := a.complete(ctx, "autocomplete", suggestSystemPrompt, suggestPrompt(partial), suggestOptions)
	if err != nil {
		return parse.Suggest(partial)
	}

	suggestion := strings.TrimSpace(response)
	if suggestion == "" {
		return parse.Suggest(partial)
	}

	return []string{suggestion}
}

func (a *ParserAgent) complete(ctx context.Context, task, system, prompt string, opts CompletionOptions) (string, error) {
	start := time.Now()
	response, err := a.llm.CompleteWithSystem(ctx, system, prompt, opts)
	logging.LogLLMCall(a.logger, task, time.Since(start), err)
	if err != nil {
		return "", errors.NewLLMError(task, "completion", err)
	}
	if strings.TrimSpace(response) == "" {
		return "", errors.NewLLMError(task, "completion", errors.ErrEmptyCompletion)
	}
	return strings.TrimSpace(response), nil
}

// extractJSON locates the first balanced-looking {...} span in model
// output. Models often wrap JSON in prose or code fences; taking the
// outermost braces is sufficient for the single-object responses these
// prompts request.
func extractJSON(content string) ([]byte, error) {
	start := strings.Index(content, "{")
	end := strings.LastIndex(content, "}")
	if start == -1 || end == -1 || end <= start {
		return nil, fmt.Errorf("no JSON object found in model output")
	}
	return []byte(content[start : end+1]), nil
}
