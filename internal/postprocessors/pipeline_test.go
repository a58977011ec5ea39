package postprocessors

import (
	"context"
	"errors"
	"reflect"
	"strings"
	"testing"

	"github.com/custodia-labs/docvault/internal/core/domain"
)

// mockProcessor is a test processor that returns predefined chunks.
type mockProcessor struct {
	name   string
	chunks []string
	err    error
}

func (m *mockProcessor) Name() string {
	return m.name
}

func (m *mockProcessor) Process(_ context.Context, _ *domain.Document, chunks []string) ([]string, error) {
	if m.err != nil {
		return nil, m.err
	}
	if m.chunks != nil {
		return m.chunks, nil
	}
	return chunks, nil
}

// upperProcessor upper-cases every chunk it receives.
type upperProcessor struct{}

func (upperProcessor) Name() string { return "upper" }

func (upperProcessor) Process(_ context.Context, _ *domain.Document, chunks []string) ([]string, error) {
	out := make([]string, len(chunks))
	for i, c := range chunks {
		out[i] = strings.ToUpper(c)
	}
	return out, nil
}

func TestNewPipeline(t *testing.T) {
	p := NewPipeline()
	if p == nil {
		t.Fatal("expected non-nil pipeline")
	}
	if p.Len() != 0 {
		t.Errorf("expected 0 processors, got %d", p.Len())
	}
}

func TestPipeline_Add(t *testing.T) {
	p := NewPipeline()
	p.Add(&mockProcessor{name: "test"})

	if p.Len() != 1 {
		t.Errorf("expected 1 processor, got %d", p.Len())
	}
}

func TestPipeline_Process_NilDocument(t *testing.T) {
	p := NewPipeline()

	_, err := p.Process(context.Background(), nil)
	if err == nil {
		t.Error("expected error for nil document")
	}
}

func TestPipeline_Process_EmptyPipeline(t *testing.T) {
	p := NewPipeline()
	doc := &domain.Document{Source: "a.pdf", Content: "test content"}

	chunks, err := p.Process(context.Background(), doc)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if chunks != nil {
		t.Errorf("expected nil chunks from empty pipeline, got %v", chunks)
	}
}

func TestPipeline_Process_RunsInOrder(t *testing.T) {
	p := NewPipeline(
		&mockProcessor{name: "chunker", chunks: []string{"first", "second"}},
		upperProcessor{},
		&mockProcessor{name: "passthrough"},
	)
	doc := &domain.Document{Source: "a.pdf", Content: "test content"}

	chunks, err := p.Process(context.Background(), doc)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := []string{"FIRST", "SECOND"}
	if !reflect.DeepEqual(chunks, want) {
		t.Errorf("expected %q, got %q", want, chunks)
	}
}

func TestPipeline_Process_ProcessorError(t *testing.T) {
	expectedErr := errors.New("processor failed")

	p := NewPipeline(&mockProcessor{
		name: "failing",
		err:  expectedErr,
	})

	_, err := p.Process(context.Background(), &domain.Document{Content: "x"})
	if err == nil {
		t.Fatal("expected error from failing processor")
	}
	if !errors.Is(err, expectedErr) {
		t.Errorf("expected wrapped error, got: %v", err)
	}
	if !strings.Contains(err.Error(), "processor failing") {
		t.Errorf("expected processor name in error, got: %v", err)
	}
}
