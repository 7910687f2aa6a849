package server

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/go-cmp/cmp"

	"github.com/easyops/context-academy-go/pkg/catalog"
	"github.com/easyops/context-academy-go/pkg/core/config"
	academyerr "github.com/easyops/context-academy-go/pkg/core/errors"
	"github.com/easyops/context-academy-go/pkg/otel"
)

type evaluationBody struct {
	ScenarioID string   `json:"scenarioId"`
	Enabled    []string `json:"enabled"`
	Selection  struct {
		Method   string `json:"method"`
		Response struct {
			ID    string `json:"id"`
			Score int    `json:"score"`
		} `json:"response"`
	} `json:"selection"`
	TokenUsage struct {
		Used       int `json:"used"`
		Max        int `json:"max"`
		Percentage int `json:"percentage"`
	} `json:"tokenUsage"`
	Grade string `json:"grade"`
}

func newTestServer(t *testing.T) (*Server, *otel.InMemoryMetrics) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	c, err := catalog.Builtin()
	if err != nil {
		t.Fatalf("Builtin() error = %v", err)
	}

	metrics := otel.NewInMemoryMetrics()
	engine := otel.NewTracedEngine(nil, otel.WithEngineMetrics(metrics))
	s, err := New(config.ServerConfig{Mode: gin.TestMode, Addr: "127.0.0.1:0"}, c, WithEngine(engine))
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	return s, metrics
}

func do(t *testing.T, h http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatal(err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	if err := json.Unmarshal(rec.Body.Bytes(), &v); err != nil {
		t.Fatalf("invalid JSON %q: %v", rec.Body.String(), err)
	}
	return v
}

func TestHealthCheck(t *testing.T) {
	s, _ := newTestServer(t)
	rec := do(t, s.Handler(), http.MethodGet, "/healthcheck", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}
}

func TestListScenarios(t *testing.T) {
	s, _ := newTestServer(t)
	rec := do(t, s.Handler(), http.MethodGet, "/api/scenarios", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}

	body := decode[struct {
		Scenarios []ScenarioSummary `json:"scenarios"`
	}](t, rec)

	var ids []string
	for _, s := range body.Scenarios {
		ids = append(ids, s.ID)
	}
	want := []string{"code-review", "customer-support", "research-assistant"}
	if diff := cmp.Diff(want, ids); diff != "" {
		t.Errorf("scenario ids mismatch (-want +got):\n%s", diff)
	}
}

func TestGetScenarioNotFound(t *testing.T) {
	s, _ := newTestServer(t)
	rec := do(t, s.Handler(), http.MethodGet, "/api/scenarios/missing", nil)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusNotFound)
	}
	body := decode[ErrorEnvelope](t, rec)
	if body.Error.Code != CodeScenarioNotFound {
		t.Errorf("error code = %s, want %s", body.Error.Code, CodeScenarioNotFound)
	}
}

func TestEvaluate(t *testing.T) {
	tests := []struct {
		name       string
		body       any
		wantStatus int
		wantID     string
		wantMethod string
	}{
		{"defaults when body is empty", nil, http.StatusOK, "system-only", "exact"},
		{"empty set", EvaluateRequest{Enabled: []string{}}, http.StatusOK, "bare", "exact"},
		{"exact match", EvaluateRequest{Enabled: []string{"rag", "system"}}, http.StatusOK, "system-rag", "exact"},
		{"heuristic", EvaluateRequest{Enabled: []string{"system", "tools", "rag", "examples"}}, http.StatusOK, "system-tools-rag", "heuristic"},
		{"unknown component", EvaluateRequest{Enabled: []string{"ghost"}}, http.StatusBadRequest, "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, _ := newTestServer(t)
			rec := do(t, s.Handler(), http.MethodPost, "/api/scenarios/customer-support/evaluate", tt.body)
			if rec.Code != tt.wantStatus {
				t.Fatalf("status = %d, want %d (%s)", rec.Code, tt.wantStatus, rec.Body.String())
			}
			if tt.wantStatus != http.StatusOK {
				if body := decode[ErrorEnvelope](t, rec); body.Error.Code != CodeUnknownComponent {
					t.Errorf("error code = %s, want %s", body.Error.Code, CodeUnknownComponent)
				}
				return
			}

			body := decode[evaluationBody](t, rec)
			if body.Selection.Response.ID != tt.wantID {
				t.Errorf("response = %s, want %s", body.Selection.Response.ID, tt.wantID)
			}
			if body.Selection.Method != tt.wantMethod {
				t.Errorf("method = %s, want %s", body.Selection.Method, tt.wantMethod)
			}
			if body.TokenUsage.Max != 1740 {
				t.Errorf("tokenUsage.max = %d, want 1740", body.TokenUsage.Max)
			}
		})
	}
}

func TestEvaluateInvalidJSON(t *testing.T) {
	s, _ := newTestServer(t)
	req := httptest.NewRequest(http.MethodPost, "/api/scenarios/customer-support/evaluate", bytes.NewBufferString("{"))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusBadRequest)
	}
}

func TestToggle(t *testing.T) {
	s, metrics := newTestServer(t)
	rec := do(t, s.Handler(), http.MethodPost, "/api/scenarios/customer-support/toggle",
		ToggleRequest{Enabled: []string{"system"}, Component: "rag"})
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d (%s)", rec.Code, http.StatusOK, rec.Body.String())
	}

	body := decode[struct {
		State struct {
			ScenarioID string   `json:"scenarioId"`
			Enabled    []string `json:"enabled"`
		} `json:"state"`
		Evaluation evaluationBody `json:"evaluation"`
	}](t, rec)

	if diff := cmp.Diff([]string{"rag", "system"}, body.State.Enabled); diff != "" {
		t.Errorf("enabled mismatch (-want +got):\n%s", diff)
	}
	if body.Evaluation.Selection.Response.ID != "system-rag" {
		t.Errorf("response = %s, want system-rag", body.Evaluation.Selection.Response.ID)
	}
	// 180 + 450 = 630 / 1740
	if body.Evaluation.TokenUsage.Used != 630 || body.Evaluation.TokenUsage.Percentage != 36 {
		t.Errorf("tokenUsage = %+v, want used 630 (36%%)", body.Evaluation.TokenUsage)
	}
	if got := metrics.GetCounterValue(otel.MetricToggles); got != 1 {
		t.Errorf("%s = %d, want 1", otel.MetricToggles, got)
	}
}

func TestToggleErrors(t *testing.T) {
	tests := []struct {
		name       string
		body       any
		wantStatus int
		wantCode   string
	}{
		{"missing component", map[string]any{"enabled": []string{"system"}}, http.StatusBadRequest, CodeInvalidRequest},
		{"unknown component", ToggleRequest{Component: "ghost"}, http.StatusBadRequest, CodeUnknownComponent},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, _ := newTestServer(t)
			rec := do(t, s.Handler(), http.MethodPost, "/api/scenarios/customer-support/toggle", tt.body)
			if rec.Code != tt.wantStatus {
				t.Fatalf("status = %d, want %d", rec.Code, tt.wantStatus)
			}
			if body := decode[ErrorEnvelope](t, rec); body.Error.Code != tt.wantCode {
				t.Errorf("error code = %s, want %s", body.Error.Code, tt.wantCode)
			}
		})
	}
}

func TestRespondDomainError(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
	}{
		{"not found", academyerr.ErrScenarioNotFound, http.StatusNotFound, CodeScenarioNotFound},
		{"unknown component", academyerr.ErrUnknownComponentReference, http.StatusBadRequest, CodeUnknownComponent},
		{"invalid input", academyerr.ErrInvalidInput, http.StatusBadRequest, CodeInvalidRequest},
		{"empty catalog", academyerr.WrapError(academyerr.ErrEmptyCatalog, "scenario x"), http.StatusInternalServerError, CodeEmptyCatalog},
		{"authoring fault", academyerr.WrapError(academyerr.ErrInvalidScore, "scenario x"), http.StatusInternalServerError, CodeInvalidCatalog},
		{"duplicate response", academyerr.ErrDuplicateResponse, http.StatusInternalServerError, CodeInvalidCatalog},
		{"other", errors.New("boom"), http.StatusInternalServerError, CodeInternal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(rec)
			respondDomainError(c, tt.err)

			if rec.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", rec.Code, tt.wantStatus)
			}
			if body := decode[ErrorEnvelope](t, rec); body.Error.Code != tt.wantCode {
				t.Errorf("error code = %s, want %s", body.Error.Code, tt.wantCode)
			}
		})
	}
}

func TestMatrix(t *testing.T) {
	s, _ := newTestServer(t)
	rec := do(t, s.Handler(), http.MethodGet, "/api/scenarios/research-assistant/matrix", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}

	body := decode[struct {
		Rows        []catalog.MatrixRow `json:"rows"`
		Unreachable []string            `json:"unreachable"`
	}](t, rec)
	if len(body.Rows) != 16 {
		t.Errorf("rows = %d, want 16", len(body.Rows))
	}
	if len(body.Unreachable) != 0 {
		t.Errorf("unreachable = %v, want none", body.Unreachable)
	}
}

func TestCORSPreflight(t *testing.T) {
	s, _ := newTestServer(t)

	req := httptest.NewRequest(http.MethodOptions, "/api/scenarios/customer-support/evaluate", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)

	if rec.Code != http.StatusNoContent {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusNoContent)
	}
	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "http://localhost:3000" {
		t.Errorf("allow-origin = %q, want http://localhost:3000", got)
	}
}

func TestServeShutdown(t *testing.T) {
	s, _ := newTestServer(t)

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatal(err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.Serve(ctx, ln) }()

	resp, err := http.Get("http://" + ln.Addr().String() + "/healthcheck")
	if err != nil {
		t.Fatalf("GET /healthcheck error = %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Errorf("status = %d, want %d", resp.StatusCode, http.StatusOK)
	}

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Errorf("Serve() error = %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("server did not shut down")
	}
}

func TestNewInvalidConfig(t *testing.T) {
	c, err := catalog.Builtin()
	if err != nil {
		t.Fatal(err)
	}
	if _, err := New(config.ServerConfig{Mode: "production"}, c); err == nil {
		t.Error("New() expected error for invalid mode")
	}
}
