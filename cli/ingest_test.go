package cli

import (
	"strings"
	"testing"
)

func TestChunkTextEmpty(t *testing.T) {
	if chunks := chunkText(""); len(chunks) != 0 {
		t.Errorf("expected no chunks for empty text, got %d", len(chunks))
	}
	if chunks := chunkText("\n\n  \n\n"); len(chunks) != 0 {
		t.Errorf("expected no chunks for whitespace text, got %d", len(chunks))
	}
}

func TestChunkTextSingleParagraph(t *testing.T) {
	chunks := chunkText("just one paragraph")
	if len(chunks) != 1 {
		t.Fatalf("expected 1 chunk, got %d", len(chunks))
	}
	if chunks[0] != "just one paragraph" {
		t.Errorf("unexpected chunk: %q", chunks[0])
	}
}

func TestChunkTextMergesShortParagraphs(t *testing.T) {
	chunks := chunkText("first paragraph\n\nsecond paragraph")
	if len(chunks) != 1 {
		t.Fatalf("expected merged chunk, got %d", len(chunks))
	}
	if chunks[0] != "first paragraph\n\nsecond paragraph" {
		t.Errorf("unexpected chunk: %q", chunks[0])
	}
}

func TestChunkTextSplitsAtSizeLimit(t *testing.T) {
	long := strings.Repeat("a", maxChunkSize-10)
	chunks := chunkText(long + "\n\n" + "next paragraph")
	if len(chunks) != 2 {
		t.Fatalf("expected 2 chunks, got %d", len(chunks))
	}
	if chunks[1] != "next paragraph" {
		t.Errorf("unexpected second chunk: %q", chunks[1])
	}
}

func TestChunkTextOversizedParagraphKeptWhole(t *testing.T) {
	oversized := strings.Repeat("b", maxChunkSize*2)
	chunks := chunkText(oversized)
	if len(chunks) != 1 {
		t.Fatalf("expected 1 chunk, got %d", len(chunks))
	}
	if chunks[0] != oversized {
		t.Error("oversized paragraph must not be split mid-sentence")
	}
}
