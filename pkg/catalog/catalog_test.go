package catalog

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"testing/fstest"

	academyctx "github.com/easyops/context-academy-go/pkg/context"
	academyerr "github.com/easyops/context-academy-go/pkg/core/errors"
	"github.com/easyops/context-academy-go/pkg/otel"
	"github.com/easyops/context-academy-go/pkg/playground"
)

const minimalYAML = `id: mini
title: Mini
description: A tiny scenario
customer_message: hello
default_enabled: [sys]
components:
  - id: sys
    name: System
    tokens: 100
    content: be helpful
  - id: rag
    name: Docs
    tokens: 200
    content: some docs
responses:
  - id: none
    required_components: []
    score: 10
    agent_response: "?"
  - id: sys
    required_components: [sys]
    score: 40
    agent_response: hi
  - id: full
    required_components: [sys, rag]
    score: 90
    agent_response: grounded
`

func TestBuiltin(t *testing.T) {
	c, err := Builtin()
	if err != nil {
		t.Fatalf("Builtin() error = %v", err)
	}

	wantIDs := []string{"code-review", "customer-support", "research-assistant"}
	if got := c.IDs(); strings.Join(got, ",") != strings.Join(wantIDs, ",") {
		t.Errorf("IDs() = %v, want %v", got, wantIDs)
	}
	if n := len(c.Report().Warnings); n != 0 {
		t.Errorf("builtin catalog has %d warnings: %v", n, c.Report().WarningErr())
	}

	for _, s := range c.Scenarios() {
		if len(s.Responses) == 0 {
			t.Errorf("scenario %s has no responses", s.ID)
		}
		if s.CustomerMessage == "" {
			t.Errorf("scenario %s has no customer message", s.ID)
		}
	}
}

func TestBuiltinSelection(t *testing.T) {
	c, err := Builtin()
	if err != nil {
		t.Fatalf("Builtin() error = %v", err)
	}
	s, err := c.Scenario("customer-support")
	if err != nil {
		t.Fatalf("Scenario() error = %v", err)
	}

	tests := []struct {
		name    string
		enabled []string
		wantID  string
		method  playground.Method
	}{
		{"empty set", nil, "bare", playground.MethodExact},
		{"system only", []string{"system"}, "system-only", playground.MethodExact},
		{"all", []string{"system", "tools", "rag", "memory", "history", "examples"}, "full-context", playground.MethodExact},
		{"no exact match", []string{"system", "tools", "rag", "examples"}, "system-tools-rag", playground.MethodHeuristic},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ev, err := playground.Evaluate(s, academyctx.NewEnabledSet(tt.enabled...))
			if err != nil {
				t.Fatalf("Evaluate() error = %v", err)
			}
			if ev.Selection.Response.ID != tt.wantID {
				t.Errorf("selected %s, want %s", ev.Selection.Response.ID, tt.wantID)
			}
			if ev.Selection.Method != tt.method {
				t.Errorf("method = %s, want %s", ev.Selection.Method, tt.method)
			}
		})
	}
}

func TestCatalogScenarioNotFound(t *testing.T) {
	c, err := Builtin()
	if err != nil {
		t.Fatalf("Builtin() error = %v", err)
	}
	if _, err := c.Scenario("missing"); !errors.Is(err, academyerr.ErrScenarioNotFound) {
		t.Errorf("Scenario(missing) error = %v, want ErrScenarioNotFound", err)
	}
}

func TestLoadFS(t *testing.T) {
	fsys := fstest.MapFS{
		"b.yaml":    {Data: []byte(minimalYAML)},
		"a.yml":     {Data: []byte(strings.Replace(minimalYAML, "id: mini", "id: other", 1))},
		"notes.txt": {Data: []byte("ignored")},
	}

	c, err := Load(fsys)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if got := strings.Join(c.IDs(), ","); got != "other,mini" {
		t.Errorf("IDs() = %s, want other,mini", got)
	}
}

func TestLoadFSDuplicateScenario(t *testing.T) {
	fsys := fstest.MapFS{
		"a.yaml": {Data: []byte(minimalYAML)},
		"b.yaml": {Data: []byte(minimalYAML)},
	}

	_, err := Load(fsys)
	if !errors.Is(err, academyerr.ErrDuplicateScenario) {
		t.Errorf("Load() error = %v, want ErrDuplicateScenario", err)
	}
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "mini.yaml")
	if err := os.WriteFile(file, []byte(minimalYAML), 0o644); err != nil {
		t.Fatal(err)
	}

	t.Run("file", func(t *testing.T) {
		c, err := LoadFile(file)
		if err != nil {
			t.Fatalf("LoadFile() error = %v", err)
		}
		if c.Len() != 1 {
			t.Errorf("Len() = %d, want 1", c.Len())
		}
	})

	t.Run("directory", func(t *testing.T) {
		c, err := LoadFile(dir)
		if err != nil {
			t.Fatalf("LoadFile() error = %v", err)
		}
		if _, err := c.Scenario("mini"); err != nil {
			t.Errorf("Scenario(mini) error = %v", err)
		}
	})

	t.Run("unsupported extension", func(t *testing.T) {
		other := filepath.Join(dir, "mini.json")
		if err := os.WriteFile(other, []byte("{}"), 0o644); err != nil {
			t.Fatal(err)
		}
		if _, err := LoadFile(other); !errors.Is(err, academyerr.ErrInvalidInput) {
			t.Errorf("LoadFile() error = %v, want ErrInvalidInput", err)
		}
	})

	t.Run("missing", func(t *testing.T) {
		if _, err := LoadFile(filepath.Join(dir, "nope.yaml")); err == nil {
			t.Error("LoadFile() expected error for missing file")
		}
	})
}

func TestDecodeMultiDocument(t *testing.T) {
	doc := minimalYAML + "---\n" + strings.Replace(minimalYAML, "id: mini", "id: second", 1)
	scenarios, err := Decode(strings.NewReader(doc))
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	if len(scenarios) != 2 {
		t.Fatalf("len = %d, want 2", len(scenarios))
	}
	if scenarios[1].ID != "second" {
		t.Errorf("scenarios[1].ID = %s, want second", scenarios[1].ID)
	}
	if got := scenarios[0].Responses[2].RequiredComponents; len(got) != 2 {
		t.Errorf("required_components = %v, want [sys rag]", got)
	}
}

func TestDecodeUnknownField(t *testing.T) {
	_, err := Decode(strings.NewReader("id: x\ntitel: typo\n"))
	if err == nil {
		t.Error("Decode() expected error for unknown field")
	}
}

func TestNewStrict(t *testing.T) {
	scenarios, err := Decode(strings.NewReader(minimalYAML))
	if err != nil {
		t.Fatal(err)
	}
	// 去掉全集合响应，只产生警告
	scenarios[0].Responses = scenarios[0].Responses[:2]

	logger := &recordingLogger{}
	if _, err := New(scenarios, WithLogger(logger)); err != nil {
		t.Fatalf("New() error = %v", err)
	}
	if len(logger.warnings) != 1 {
		t.Errorf("logged %d warnings, want 1", len(logger.warnings))
	}

	_, err = New(scenarios, WithStrict(true))
	if !errors.Is(err, academyerr.ErrMissingFullResponse) {
		t.Errorf("New(strict) error = %v, want ErrMissingFullResponse", err)
	}
}

type recordingLogger struct {
	otel.NoopLogger
	warnings []string
}

func (l *recordingLogger) Warn(msg string, args ...any) {
	l.warnings = append(l.warnings, msg)
}
