package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	academyerr "github.com/easyops/context-academy-go/pkg/core/errors"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetArgs(args)
	cmd.SetOut(&out)
	cmd.SetErr(io.Discard)
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestScenariosJSON(t *testing.T) {
	out, err := run(t, "scenarios", "--json")
	if err != nil {
		t.Fatalf("scenarios error = %v", err)
	}
	var scenarios []struct {
		ID string `json:"id"`
	}
	if err := json.Unmarshal([]byte(out), &scenarios); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if len(scenarios) != 3 {
		t.Errorf("got %d scenarios, want 3", len(scenarios))
	}
}

func TestEvaluate(t *testing.T) {
	tests := []struct {
		name   string
		args   []string
		wantID string
	}{
		{"defaults", nil, "system-only"},
		{"enable", []string{"--enable", "system,rag"}, "system-rag"},
		{"all", []string{"--all"}, "full-context"},
		{"none", []string{"--none"}, "bare"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			args := append([]string{"evaluate", "customer-support", "--json"}, tt.args...)
			out, err := run(t, args...)
			if err != nil {
				t.Fatalf("evaluate error = %v", err)
			}
			var ev struct {
				Selection struct {
					Response struct {
						ID string `json:"id"`
					} `json:"response"`
				} `json:"selection"`
			}
			if err := json.Unmarshal([]byte(out), &ev); err != nil {
				t.Fatalf("invalid JSON: %v", err)
			}
			if ev.Selection.Response.ID != tt.wantID {
				t.Errorf("response = %s, want %s", ev.Selection.Response.ID, tt.wantID)
			}
		})
	}
}

func TestEvaluateText(t *testing.T) {
	out, err := run(t, "evaluate", "customer-support", "--all", "--no-color")
	if err != nil {
		t.Fatalf("evaluate error = %v", err)
	}
	for _, want := range []string{"Refund Request", "[System Prompt]", "[User Message]", "response full-context (exact match)"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q", want)
		}
	}
}

func TestEvaluateErrors(t *testing.T) {
	if _, err := run(t, "evaluate", "missing"); !errors.Is(err, academyerr.ErrScenarioNotFound) {
		t.Errorf("error = %v, want ErrScenarioNotFound", err)
	}
	if _, err := run(t, "evaluate", "customer-support", "--enable", "ghost"); !errors.Is(err, academyerr.ErrUnknownComponentReference) {
		t.Errorf("error = %v, want ErrUnknownComponentReference", err)
	}
	if _, err := run(t, "evaluate", "customer-support", "--all", "--none"); err == nil {
		t.Error("expected error for mutually exclusive flags")
	}
}

func TestToggle(t *testing.T) {
	out, err := run(t, "toggle", "customer-support", "--enable", "system", "--component", "rag", "--json")
	if err != nil {
		t.Fatalf("toggle error = %v", err)
	}
	var ev struct {
		Enabled []string `json:"enabled"`
	}
	if err := json.Unmarshal([]byte(out), &ev); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if strings.Join(ev.Enabled, ",") != "rag,system" {
		t.Errorf("enabled = %v, want [rag system]", ev.Enabled)
	}

	if _, err := run(t, "toggle", "customer-support"); err == nil {
		t.Error("expected error when --component is missing")
	}
}

func TestToggleOff(t *testing.T) {
	out, err := run(t, "toggle", "customer-support", "--enable", "system,rag", "--component", "system", "--json")
	if err != nil {
		t.Fatalf("toggle error = %v", err)
	}
	var ev struct {
		ScenarioID string   `json:"scenarioId"`
		Enabled    []string `json:"enabled"`
	}
	if err := json.Unmarshal([]byte(out), &ev); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if ev.ScenarioID != "customer-support" || strings.Join(ev.Enabled, ",") != "rag" {
		t.Errorf("got %s %v, want customer-support [rag]", ev.ScenarioID, ev.Enabled)
	}
}

func TestMatrix(t *testing.T) {
	out, err := run(t, "matrix", "research-assistant", "--json")
	if err != nil {
		t.Fatalf("matrix error = %v", err)
	}
	var body struct {
		Rows []json.RawMessage `json:"rows"`
	}
	if err := json.Unmarshal([]byte(out), &body); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if len(body.Rows) != 16 {
		t.Errorf("rows = %d, want 16", len(body.Rows))
	}
}

func TestShow(t *testing.T) {
	out, err := run(t, "show", "code-review")
	if err != nil {
		t.Fatalf("show error = %v", err)
	}
	for _, want := range []string{"Pull Request Review", "Components", "conventions", "Responses"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q", want)
		}
	}
}

func TestValidate(t *testing.T) {
	if _, err := run(t, "validate"); err != nil {
		t.Fatalf("validate builtin error = %v", err)
	}

	dir := t.TempDir()
	bad := `id: broken
title: Broken
customer_message: hi
components:
  - id: sys
    name: System
    tokens: 10
    content: x
responses:
  - id: r1
    required_components: [ghost]
    score: 50
    agent_response: "?"
`
	path := filepath.Join(dir, "broken.yaml")
	if err := os.WriteFile(path, []byte(bad), 0o644); err != nil {
		t.Fatal(err)
	}

	out, err := run(t, "validate", "--catalog", path, "--no-color")
	if !errors.Is(err, errValidationFailed) {
		t.Fatalf("validate error = %v, want errValidationFailed", err)
	}
	if !strings.Contains(out, "unknown component reference") {
		t.Errorf("output missing unknown reference error:\n%s", out)
	}
}
