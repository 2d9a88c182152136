package server

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"traderdesk/internal/errors"
	"traderdesk/internal/logging"
	"traderdesk/internal/pipeline"
	"traderdesk/internal/store"
)

// textRequest is the shared request body for the parsing endpoints.
// Text is a pointer so that presence is required but the empty string
// is accepted; empty input parses to the custom-execution output.
type textRequest struct {
	Text *string `json:"text" binding:"required"`
}

// errorResponse is the JSON error body.
type errorResponse struct {
	Detail string `json:"detail"`
}

func (s *Server) handleRoot(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"service": "Traderdesk Order Parsing API",
		"status":  "operational",
		"version": s.version,
		"features": gin.H{
			"openai":   s.pipeline.LLMAvailable(),
			"pipeline": true,
		},
		"timestamp": time.Now().Format(time.RFC3339),
	})
}

func (s *Server) handleHealth(c *gin.Context) {
	llm := gin.H{"available": false}
	if s.pipeline.LLMAvailable() {
		llm = gin.H{"available": true}
	}

	c.JSON(http.StatusOK, gin.H{
		"status": "healthy",
		"openai": llm,
		"pipeline": gin.H{
			"available":      true,
			"workflow_nodes": pipeline.StageNames(),
		},
		"audit": gin.H{"enabled": s.audit != nil},
	})
}

// handleParseOrder parses a natural-language order into an OrderForm.
// Example: "Buy 100 shares of AAPL as a GTC order".
func (s *Server) handleParseOrder(c *gin.Context) {
	var req textRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse{Detail: "text is required"})
		return
	}

	form := s.agent.ParseOrder(c.Request.Context(), *req.Text)

	symbol := ""
	if form.Security != nil {
		symbol = form.Security.Symbol
	}
	quantity := 0
	if form.Quantity != nil {
		quantity = *form.Quantity
	}
	logging.LogOrderParse(s.logger, symbol, quantity, string(form.TimeInForce), s.pipeline.LLMAvailable())

	s.recordEvent(c, store.ParseEvent{
		Endpoint:   "parse-order",
		InputText:  *req.Text,
		Structured: symbol,
		LLMPath:    s.pipeline.LLMAvailable(),
	})

	c.JSON(http.StatusOK, form)
}

// handleParseTraderText runs the four-stage parsing workflow.
// Example: "VWAP Market Close" -> "VWAP Market Close [16:00]".
func (s *Server) handleParseTraderText(c *gin.Context) {
	var req textRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse{Detail: "text is required"})
		return
	}

	st := s.pipeline.Run(c.Request.Context(), *req.Text)
	result := st.Result()

	algoName := ""
	if result.Algo != nil {
		algoName = string(*result.Algo)
	}
	s.recordEvent(c, store.ParseEvent{
		Endpoint:   "parse-trader-text",
		InputText:  *req.Text,
		Structured: result.Structured,
		Algo:       algoName,
		Confidence: result.Confidence,
		LLMPath:    s.pipeline.LLMAvailable(),
	})

	c.JSON(http.StatusOK, result)
}

func (s *Server) handleAutocomplete(c *gin.Context) {
	var req textRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse{Detail: "text is required"})
		return
	}

	suggestions := s.agent.Suggest(c.Request.Context(), *req.Text)
	c.JSON(http.StatusOK, suggestions)
}

func (s *Server) handleListSecurities(c *gin.Context) {
	c.JSON(http.StatusOK, s.catalog.List())
}

func (s *Server) handleGetSecurity(c *gin.Context) {
	symbol := c.Param("symbol")

	sec, err := s.catalog.Get(symbol)
	if err != nil {
		if errors.Is(err, errors.ErrSymbolNotFound) {
			c.JSON(http.StatusNotFound, errorResponse{Detail: "Security " + symbol + " not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, errorResponse{Detail: "Error looking up security: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, sec)
}

// handleAudit returns recent parse events when auditing is enabled.
func (s *Server) handleAudit(c *gin.Context) {
	if s.audit == nil {
		c.JSON(http.StatusNotFound, errorResponse{Detail: "audit trail is not enabled"})
		return
	}

	limit := 100
	if raw := c.Query("limit"); raw != "" {
		if v, err := strconv.Atoi(raw); err == nil && v > 0 && v <= 1000 {
			limit = v
		}
	}

	events, err := s.audit.Recent(c.Request.Context(), limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, errorResponse{Detail: "Error reading audit trail: " + err.Error()})
		return
	}
	if events == nil {
		events = []store.ParseEvent{}
	}

	c.JSON(http.StatusOK, events)
}

// recordEvent writes to the audit store when enabled. Failures are
// logged, never surfaced to the caller.
func (s *Server) recordEvent(c *gin.Context, event store.ParseEvent) {
	if s.audit == nil {
		return
	}
	if err := s.audit.SaveParseEvent(c.Request.Context(), event); err != nil {
		s.logger.Warn().Err(err).Str("endpoint", event.Endpoint).Msg("Failed to record parse event")
	}
}
