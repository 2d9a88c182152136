package server

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"traderdesk/internal/agents"
	"traderdesk/internal/catalog"
	"traderdesk/internal/config"
	"traderdesk/internal/models"
	"traderdesk/internal/pipeline"
	"traderdesk/internal/store"
)

// memoryAudit is an in-memory AuditStore for handler tests.
type memoryAudit struct {
	events []store.ParseEvent
}

func (m *memoryAudit) SaveParseEvent(_ context.Context, event store.ParseEvent) error {
	event.ID = int64(len(m.events) + 1)
	m.events = append(m.events, event)
	return nil
}

func (m *memoryAudit) Recent(_ context.Context, limit int) ([]store.ParseEvent, error) {
	out := []store.ParseEvent{}
	for i := len(m.events) - 1; i >= 0 && len(out) < limit; i-- {
		out = append(out, m.events[i])
	}
	return out, nil
}

func (m *memoryAudit) Close() error { return nil }

func newTestServer(audit store.AuditStore) *Server {
	cfg := config.ServerConfig{
		Addr:            ":0",
		AllowedOrigins:  []string{"*"},
		ReadTimeout:     5 * time.Second,
		WriteTimeout:    5 * time.Second,
		ShutdownTimeout: time.Second,
	}
	cat := catalog.New()
	agent := agents.NewParserAgent(nil, cat, zerolog.Nop())
	pl := pipeline.New(agent, zerolog.Nop())
	return New(cfg, zerolog.Nop(), "2.0.0", pl, agent, cat, audit)
}

func postJSON(t *testing.T, handler http.Handler, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)
	return w
}

func getPath(t *testing.T, handler http.Handler, path string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)
	return w
}

func TestRootEndpoint(t *testing.T) {
	w := getPath(t, newTestServer(nil).Handler(), "/")

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}

	var body map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatal(err)
	}
	if body["status"] != "operational" {
		t.Errorf("status = %v", body["status"])
	}
	if body["version"] != "2.0.0" {
		t.Errorf("version = %v", body["version"])
	}
	features, _ := body["features"].(map[string]any)
	if features["openai"] != false {
		t.Errorf("features.openai = %v, want false without credentials", features["openai"])
	}
}

func TestHealthEndpoint(t *testing.T) {
	w := getPath(t, newTestServer(nil).Handler(), "/api/health")

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}

	var body struct {
		Status   string `json:"status"`
		Pipeline struct {
			Available     bool     `json:"available"`
			WorkflowNodes []string `json:"workflow_nodes"`
		} `json:"pipeline"`
		Audit struct {
			Enabled bool `json:"enabled"`
		} `json:"audit"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatal(err)
	}
	if body.Status != "healthy" {
		t.Errorf("status = %q", body.Status)
	}
	if len(body.Pipeline.WorkflowNodes) != 4 || body.Pipeline.WorkflowNodes[0] != "normalize" {
		t.Errorf("workflow_nodes = %v", body.Pipeline.WorkflowNodes)
	}
	if body.Audit.Enabled {
		t.Error("audit.enabled = true, want false without store")
	}
}

func TestParseOrderEndpoint(t *testing.T) {
	w := postJSON(t, newTestServer(nil).Handler(), "/api/parse-order",
		`{"text": "Buy 100 shares of AAPL at $180.50 GTC"}`)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}

	var form models.OrderForm
	if err := json.Unmarshal(w.Body.Bytes(), &form); err != nil {
		t.Fatal(err)
	}
	if form.Security == nil || form.Security.Symbol != "AAPL" {
		t.Fatalf("security = %v, want AAPL", form.Security)
	}
	if form.Quantity == nil || *form.Quantity != 100 {
		t.Errorf("quantity = %v, want 100", form.Quantity)
	}
	if form.Price == nil || *form.Price != 180.50 {
		t.Errorf("price = %v, want 180.50", form.Price)
	}
	if form.TimeInForce != models.TIFGTC {
		t.Errorf("time_in_force = %v, want GTC", form.TimeInForce)
	}
	if form.ContactMethod != models.ContactPhone {
		t.Errorf("contact_method = %v, want phone", form.ContactMethod)
	}
}

func TestParseTraderTextEndpoint(t *testing.T) {
	w := postJSON(t, newTestServer(nil).Handler(), "/api/parse-trader-text",
		`{"text": "VWAP Market Close"}`)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}

	var result models.TraderTextParsed
	if err := json.Unmarshal(w.Body.Bytes(), &result); err != nil {
		t.Fatal(err)
	}
	if result.Structured != "VWAP Market Close [16:00]" {
		t.Errorf("structured = %q", result.Structured)
	}
	if result.Algo == nil || *result.Algo != models.AlgoVWAP {
		t.Fatalf("algo = %v, want vwap", result.Algo)
	}
	if result.Confidence != 0.95 {
		t.Errorf("confidence = %v, want 0.95", result.Confidence)
	}
}

func TestParseEndpointsRejectMissingText(t *testing.T) {
	handler := newTestServer(nil).Handler()

	for _, path := range []string{"/api/parse-order", "/api/parse-trader-text", "/api/autocomplete"} {
		for _, body := range []string{`{}`, `not json`, `{"text": null}`} {
			w := postJSON(t, handler, path, body)
			if w.Code != http.StatusBadRequest {
				t.Errorf("POST %s with %q status = %d, want 400", path, body, w.Code)
			}
		}
	}
}

// The text field must be present but may be empty; empty input parses
// to the custom-execution output at the no-detection confidence.
func TestParseTraderTextAcceptsEmptyText(t *testing.T) {
	w := postJSON(t, newTestServer(nil).Handler(), "/api/parse-trader-text", `{"text": ""}`)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200 for empty text", w.Code)
	}

	var result models.TraderTextParsed
	if err := json.Unmarshal(w.Body.Bytes(), &result); err != nil {
		t.Fatal(err)
	}
	if result.Structured != "Custom execution: " {
		t.Errorf("structured = %q, want custom execution of empty text", result.Structured)
	}
	if result.Algo != nil {
		t.Errorf("algo = %v, want nil", *result.Algo)
	}
	if result.Confidence != 0.5 {
		t.Errorf("confidence = %v, want 0.5", result.Confidence)
	}
}

func TestAutocompleteEndpoint(t *testing.T) {
	w := postJSON(t, newTestServer(nil).Handler(), "/api/autocomplete", `{"text": "vwap"}`)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}

	var suggestions []string
	if err := json.Unmarshal(w.Body.Bytes(), &suggestions); err != nil {
		t.Fatal(err)
	}
	if len(suggestions) != 3 {
		t.Errorf("suggestions = %v, want 3 VWAP candidates", suggestions)
	}
}

func TestListSecurities(t *testing.T) {
	w := getPath(t, newTestServer(nil).Handler(), "/api/securities")

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}

	var list []models.SecurityInfo
	if err := json.Unmarshal(w.Body.Bytes(), &list); err != nil {
		t.Fatal(err)
	}
	if len(list) != 6 {
		t.Errorf("len(securities) = %d, want 6", len(list))
	}
}

func TestGetSecurity(t *testing.T) {
	handler := newTestServer(nil).Handler()

	w := getPath(t, handler, "/api/securities/aapl")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	var sec models.SecurityInfo
	if err := json.Unmarshal(w.Body.Bytes(), &sec); err != nil {
		t.Fatal(err)
	}
	if sec.Symbol != "AAPL" || sec.Price != 178.50 {
		t.Errorf("security = %+v", sec)
	}

	w = getPath(t, handler, "/api/securities/ZZZZ")
	if w.Code != http.StatusNotFound {
		t.Errorf("unknown symbol status = %d, want 404", w.Code)
	}
}

func TestAuditEndpointDisabled(t *testing.T) {
	w := getPath(t, newTestServer(nil).Handler(), "/api/audit")
	if w.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404 when auditing disabled", w.Code)
	}
}

func TestAuditRecordsParseEvents(t *testing.T) {
	audit := &memoryAudit{}
	handler := newTestServer(audit).Handler()

	postJSON(t, handler, "/api/parse-trader-text", `{"text": "TWAP over 2 hours"}`)
	postJSON(t, handler, "/api/parse-order", `{"text": "Buy 100 shares of AAPL"}`)

	w := getPath(t, handler, "/api/audit?limit=10")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}

	var events []store.ParseEvent
	if err := json.Unmarshal(w.Body.Bytes(), &events); err != nil {
		t.Fatal(err)
	}
	if len(events) != 2 {
		t.Fatalf("len(events) = %d, want 2", len(events))
	}
	// Newest first.
	if events[0].Endpoint != "parse-order" || events[1].Endpoint != "parse-trader-text" {
		t.Errorf("order = [%s %s]", events[0].Endpoint, events[1].Endpoint)
	}
	if events[1].Algo != "twap" || events[1].Confidence != 0.92 {
		t.Errorf("trader text event = %+v", events[1])
	}
	if events[0].Structured != "AAPL" {
		t.Errorf("order event structured = %q, want matched symbol", events[0].Structured)
	}
}

func TestCORSHeaders(t *testing.T) {
	handler := newTestServer(nil).Handler()

	req := httptest.NewRequest(http.MethodOptions, "/api/health", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	if w.Code != http.StatusNoContent {
		t.Errorf("preflight status = %d, want 204", w.Code)
	}
	if got := w.Header().Get("Access-Control-Allow-Origin"); got != "*" {
		t.Errorf("Access-Control-Allow-Origin = %q, want *", got)
	}
}
