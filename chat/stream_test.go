package chat

import (
	"testing"
)

func TestStreamChunk_IsFinal(t *testing.T) {
	chunk := StreamChunk{Delta: "partial"}
	if chunk.IsFinal() {
		t.Error("chunk without finish reason should not be final")
	}

	chunk.FinishReason = "stop"
	if !chunk.IsFinal() {
		t.Error("chunk with finish reason should be final")
	}
}

func TestStreamChunk_HasContent(t *testing.T) {
	if (&StreamChunk{}).HasContent() {
		t.Error("empty chunk should have no content")
	}
	if !(&StreamChunk{Delta: "x"}).HasContent() {
		t.Error("chunk with delta should have content")
	}
}

func TestStreamAccumulator_Add(t *testing.T) {
	acc := NewStreamAccumulator()

	acc.Add(StreamChunk{Delta: "The graph "})
	acc.Add(StreamChunk{Delta: "gained three entities.", Sources: []Source{
		{DocumentID: "doc-1", Title: "Release notes"},
	}})
	acc.Add(StreamChunk{FinishReason: "stop"})

	if acc.Content != "The graph gained three entities." {
		t.Errorf("unexpected content: %q", acc.Content)
	}
	if len(acc.Sources) != 1 || acc.Sources[0].DocumentID != "doc-1" {
		t.Errorf("unexpected sources: %+v", acc.Sources)
	}
	if !acc.IsComplete() {
		t.Error("expected accumulator to be complete after finish reason")
	}
}

func TestStreamAccumulator_DeduplicatesSources(t *testing.T) {
	acc := NewStreamAccumulator()

	acc.Add(StreamChunk{Sources: []Source{
		{DocumentID: "doc-1", Score: 0.9},
		{DocumentID: "doc-2", Score: 0.8},
	}})
	acc.Add(StreamChunk{Sources: []Source{
		{DocumentID: "doc-1", Score: 0.7}, // repeat, first wins
		{DocumentID: ""},                  // no ID, dropped
		{DocumentID: "doc-3"},
	}})

	if len(acc.Sources) != 3 {
		t.Fatalf("expected 3 deduplicated sources, got %d", len(acc.Sources))
	}
	if acc.Sources[0].Score != 0.9 {
		t.Error("expected first occurrence of a document to be kept")
	}
}

func TestStreamAccumulator_ToMessage(t *testing.T) {
	acc := NewStreamAccumulator()
	acc.Add(StreamChunk{Delta: "answer", Sources: []Source{{DocumentID: "doc-1"}}})

	msg := acc.ToMessage()
	if msg.Role != RoleAssistant {
		t.Errorf("expected assistant role, got %q", msg.Role)
	}
	if msg.Content != "answer" {
		t.Errorf("unexpected content: %q", msg.Content)
	}
	if len(msg.Sources) != 1 {
		t.Errorf("expected sources carried onto the message, got %+v", msg.Sources)
	}
}

func TestStreamAccumulator_Reset(t *testing.T) {
	acc := NewStreamAccumulator()
	acc.Add(StreamChunk{Delta: "stale", Sources: []Source{{DocumentID: "doc-1"}}, FinishReason: "stop"})

	acc.Reset()

	if acc.Content != "" || acc.Sources != nil || acc.IsComplete() {
		t.Errorf("expected cleared accumulator, got %+v", acc)
	}

	// A document seen before the reset counts as new afterwards.
	acc.Add(StreamChunk{Sources: []Source{{DocumentID: "doc-1"}}})
	if len(acc.Sources) != 1 {
		t.Error("expected source to accumulate after reset")
	}
}
