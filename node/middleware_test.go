package node

import (
	"bytes"
	"context"
	stderrors "errors"
	"strings"
	"testing"

	"github.com/kbukum/nodekit/logger"
)

func tagging(tag string, order *[]string) Middleware {
	return func(def *Definition) *Definition {
		inner := def.Execute
		return def.withExecutor(func(ctx context.Context, input Input, ec *Context) (Output, error) {
			*order = append(*order, tag+":before")
			output, err := inner(ctx, input, ec)
			*order = append(*order, tag+":after")
			return output, err
		})
	}
}

func TestChain_OrderFirstIsOutermost(t *testing.T) {
	var order []string
	def := registryDef("base")
	wrapped := Chain(tagging("a", &order), tagging("b", &order), tagging("c", &order))(def)

	if _, err := wrapped.Execute(context.Background(), Input{}, nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := []string{"a:before", "b:before", "c:before", "c:after", "b:after", "a:after"}
	if len(order) != len(want) {
		t.Fatalf("expected %d events, got %v", len(want), order)
	}
	for i := range want {
		if order[i] != want[i] {
			t.Errorf("position %d: expected %q, got %q", i, want[i], order[i])
		}
	}
}

func TestChain_Empty(t *testing.T) {
	def := registryDef("base")
	if got := Chain()(def); got != def {
		t.Error("expected empty chain to return the definition unchanged")
	}
}

func TestWithLogging_PassesResultThrough(t *testing.T) {
	var buf bytes.Buffer
	log := logger.NewWithWriter(&buf, "test")

	def := registryDef("logged_node")
	wrapped := WithLogging(log)(def)

	ec := NewContext("caller-1", nil)
	output, err := wrapped.Execute(context.Background(), Input{}, ec)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if output["ok"] != true {
		t.Errorf("expected the wrapped output, got %v", output)
	}
	if !strings.Contains(buf.String(), "logged_node") {
		t.Errorf("expected node type in log output, got %q", buf.String())
	}
}

func TestWithLogging_LogsFailure(t *testing.T) {
	var buf bytes.Buffer
	log := logger.NewWithWriter(&buf, "test")

	failing := &Definition{
		Type: "failing_node",
		Name: "Failing",
		Execute: func(ctx context.Context, input Input, ec *Context) (Output, error) {
			return nil, stderrors.New("backend down")
		},
	}
	wrapped := WithLogging(log)(failing)

	if _, err := wrapped.Execute(context.Background(), Input{}, nil); err == nil {
		t.Fatal("expected the error passed through")
	}
	if !strings.Contains(buf.String(), "backend down") {
		t.Errorf("expected failure reason in log output, got %q", buf.String())
	}
}

func TestWithTracing_PassesResultThrough(t *testing.T) {
	def := registryDef("traced_node")
	wrapped := WithTracing("pipeline")(def)

	output, err := wrapped.Execute(context.Background(), Input{}, NewContext("caller-1", nil))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if output["ok"] != true {
		t.Errorf("expected the wrapped output, got %v", output)
	}
	if wrapped.Type != def.Type {
		t.Error("expected metadata preserved")
	}
}
