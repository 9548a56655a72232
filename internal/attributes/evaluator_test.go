package attributes

import (
	"testing"

	"github.com/mrzor/bsdproc/internal/config"
	"github.com/mrzor/bsdproc/internal/procmeta"
)

func testSubject() Subject {
	return Subject{
		PID:  4242,
		PPID: 1,
		UID:  80,
		Comm: "nginx",
		Metadata: &procmeta.ProcessMetadata{
			PID:         4242,
			Environ:     map[string]string{"PORT": "8080", "APP_ENV": "prod"},
			Args:        []string{"nginx", "-g", "daemon off;"},
			CmdlineFull: "nginx -g daemon off;",
		},
	}
}

func TestEvaluator_Simple(t *testing.T) {
	attrs := []config.CustomAttribute{
		{Name: "port", Expression: `env["PORT"]`},
		{Name: "arg.first", Expression: `args[0]`},
		{Name: "owner", Expression: `uid == 0 ? "root" : "user"`},
	}

	evaluator, err := NewEvaluator(attrs)
	if err != nil {
		t.Fatalf("NewEvaluator() error = %v", err)
	}

	result := evaluator.Evaluate(testSubject())
	if len(result) != 3 {
		t.Fatalf("Expected 3 attributes, got %d", len(result))
	}

	want := map[string]string{"port": "8080", "arg.first": "nginx", "owner": "user"}
	for _, kv := range result {
		if kv.Value.AsString() != want[string(kv.Key)] {
			t.Errorf("%s = %q, want %q", kv.Key, kv.Value.AsString(), want[string(kv.Key)])
		}
	}
}

func TestEvaluator_MapExpansion(t *testing.T) {
	evaluator, err := NewEvaluator([]config.CustomAttribute{
		{Name: "e", Expression: `env`},
	})
	if err != nil {
		t.Fatalf("NewEvaluator() error = %v", err)
	}

	result := evaluator.Evaluate(testSubject())
	if len(result) != 2 {
		t.Fatalf("Expected 2 attributes (map expansion), got %d", len(result))
	}

	// Keys come out sorted.
	if result[0].Key != "e.APP_ENV" || result[1].Key != "e.PORT" {
		t.Errorf("keys = [%s %s], want [e.APP_ENV e.PORT]", result[0].Key, result[1].Key)
	}
}

func TestEvaluator_SanitizesExpandedKeys(t *testing.T) {
	evaluator, err := NewEvaluator([]config.CustomAttribute{
		{Name: "m", Expression: `{"a-b.c": 1}`},
	})
	if err != nil {
		t.Fatalf("NewEvaluator() error = %v", err)
	}

	result := evaluator.Evaluate(testSubject())
	if len(result) != 1 || result[0].Key != "m.a_b_c" {
		t.Fatalf("result = %v, want single m.a_b_c", result)
	}
	if result[0].Value.AsString() != "1" {
		t.Errorf("value = %q, want 1", result[0].Value.AsString())
	}
}

func TestEvaluator_NoMetadata(t *testing.T) {
	evaluator, err := NewEvaluator([]config.CustomAttribute{
		{Name: "argc", Expression: `len(args)`},
		{Name: "name", Expression: `comm`},
	})
	if err != nil {
		t.Fatalf("NewEvaluator() error = %v", err)
	}

	result := evaluator.Evaluate(Subject{PID: 1, Comm: "init"})
	if len(result) != 2 {
		t.Fatalf("Expected 2 attributes, got %d", len(result))
	}
	if result[0].Value.AsString() != "0" || result[1].Value.AsString() != "init" {
		t.Errorf("result = %v", result)
	}
}

func TestEvaluator_RuntimeErrorSkipsAttribute(t *testing.T) {
	evaluator, err := NewEvaluator([]config.CustomAttribute{
		{Name: "tenth", Expression: `args[10]`},
		{Name: "comm", Expression: `comm`},
	})
	if err != nil {
		t.Fatalf("NewEvaluator() error = %v", err)
	}

	result := evaluator.Evaluate(testSubject())
	if len(result) != 1 || result[0].Key != "comm" {
		t.Errorf("result = %v, want only comm", result)
	}
}

func TestEvaluator_InvalidExpression(t *testing.T) {
	_, err := NewEvaluator([]config.CustomAttribute{
		{Name: "bad", Expression: `env[`},
	})
	if err == nil {
		t.Fatal("NewEvaluator() expected error for invalid expression")
	}
}

func TestEvaluator_Names(t *testing.T) {
	evaluator, err := NewEvaluator([]config.CustomAttribute{
		{Name: "a", Expression: `pid`},
		{Name: "b", Expression: `ppid`},
	})
	if err != nil {
		t.Fatalf("NewEvaluator() error = %v", err)
	}

	names := evaluator.Names()
	if len(names) != 2 || names[0] != "a" || names[1] != "b" {
		t.Errorf("Names() = %v, want [a b]", names)
	}
}

func TestSanitizeAttributeName(t *testing.T) {
	tests := map[string]string{
		"simple":     "simple",
		"with-dash":  "with_dash",
		"dots.in.it": "dots_in_it",
		"UPPER_9":    "UPPER_9",
	}
	for in, want := range tests {
		if got := sanitizeAttributeName(in); got != want {
			t.Errorf("sanitizeAttributeName(%q) = %q, want %q", in, got, want)
		}
	}
}
