package service

import (
	"strings"
	"testing"
	"unicode/utf8"
)

func TestChunkTextShortTextSingleChunk(t *testing.T) {
	c := NewChunker(DefaultChunkerConfig())
	chunks := c.ChunkText("A short clause.", "Terms", 2)

	if len(chunks) != 1 {
		t.Fatalf("expected 1 chunk, got %d", len(chunks))
	}
	if !chunks[0].IsCompleteSection {
		t.Error("short text should be a complete section")
	}
	if chunks[0].Section != "Terms" || chunks[0].PageNumber != 2 {
		t.Errorf("chunk metadata = %q page %d", chunks[0].Section, chunks[0].PageNumber)
	}
	if chunks[0].ChunkSize != len(chunks[0].Text) {
		t.Errorf("chunk size %d does not match text length %d", chunks[0].ChunkSize, len(chunks[0].Text))
	}
}

func TestChunkTextSnapsToSentenceBoundaries(t *testing.T) {
	c := NewChunker(ChunkerConfig{ChunkSize: 30, ChunkOverlap: 15, MinChunkSize: 5})
	text := "Alpha beta gamma delta. Epsilon zeta eta theta iota. Kappa lambda mu."

	chunks := c.ChunkText(text, "Body", 1)
	if len(chunks) != 3 {
		t.Fatalf("expected 3 chunks, got %d: %+v", len(chunks), chunks)
	}

	want := []string{
		"Alpha beta gamma delta.",
		"Epsilon zeta eta theta iota.",
		"Kappa lambda mu.",
	}
	for i, w := range want {
		if chunks[i].Text != w {
			t.Errorf("chunk %d = %q, want %q", i, chunks[i].Text, w)
		}
	}
}

func TestChunkTextWindowsCoverTextWithoutGaps(t *testing.T) {
	c := NewChunker(ChunkerConfig{ChunkSize: 100, ChunkOverlap: 30, MinChunkSize: 10})

	var sb strings.Builder
	for sb.Len() < 400 {
		sb.WriteString("The party of the first part agrees to indemnify the counterparty. ")
	}
	chunks := c.ChunkText(sb.String(), "Indemnity", 1)

	if len(chunks) < 3 {
		t.Fatalf("expected several chunks, got %d", len(chunks))
	}
	for i, chunk := range chunks {
		if len(chunk.Text) > 100 {
			t.Errorf("chunk %d exceeds window: %d chars", i, len(chunk.Text))
		}
		if chunk.IsCompleteSection {
			t.Errorf("chunk %d marked complete in multi-chunk split", i)
		}
	}
	for i := 1; i < len(chunks); i++ {
		if chunks[i].StartChar > chunks[i-1].EndChar {
			t.Errorf("gap between chunks %d and %d: start %d, previous end %d",
				i-1, i, chunks[i].StartChar, chunks[i-1].EndChar)
		}
	}
}

func TestChunkTextDropsShortTail(t *testing.T) {
	c := NewChunker(ChunkerConfig{ChunkSize: 100, ChunkOverlap: 20, MinChunkSize: 30})
	text := strings.Repeat("a", 110)

	chunks := c.ChunkText(text, "Body", 1)
	if len(chunks) != 1 {
		t.Fatalf("expected short tail to be dropped, got %d chunks", len(chunks))
	}
	if len(chunks[0].Text) != 100 {
		t.Errorf("kept chunk length = %d, want 100", len(chunks[0].Text))
	}
}

func TestChunkTextTerminatesWithoutSentenceBreaks(t *testing.T) {
	c := NewChunker(ChunkerConfig{ChunkSize: 50, ChunkOverlap: 25, MinChunkSize: 5})
	text := strings.Repeat("x", 1000)

	chunks := c.ChunkText(text, "Body", 1)
	if len(chunks) == 0 {
		t.Fatal("expected chunks from unbroken text")
	}
	for i := 1; i < len(chunks); i++ {
		if chunks[i].StartChar <= chunks[i-1].StartChar {
			t.Fatalf("no forward progress between chunks %d and %d", i-1, i)
		}
	}
}

func TestChunkTextCountsRunesNotBytes(t *testing.T) {
	c := NewChunker(DefaultChunkerConfig())

	// 400 characters but 1200 bytes; must stay a single complete chunk.
	text := strings.Repeat("€", 400)
	chunks := c.ChunkText(text, "Körperschaft", 1)
	if len(chunks) != 1 {
		t.Fatalf("expected 1 chunk for 400-character text, got %d", len(chunks))
	}
	if !chunks[0].IsCompleteSection {
		t.Error("400-character text should be a complete section")
	}
	if chunks[0].ChunkSize != 400 {
		t.Errorf("chunk size = %d, want 400", chunks[0].ChunkSize)
	}
}

func TestChunkTextMultiByteSplitStaysValidUTF8(t *testing.T) {
	c := NewChunker(ChunkerConfig{ChunkSize: 50, ChunkOverlap: 10, MinChunkSize: 5})

	var sb strings.Builder
	for sb.Len() < 900 {
		sb.WriteString("Die Vertragsparteien gemäß § 7 zahlen 100 €. ")
	}
	chunks := c.ChunkText(sb.String(), "Zahlung", 1)
	if len(chunks) < 2 {
		t.Fatalf("expected multiple chunks, got %d", len(chunks))
	}
	for i, chunk := range chunks {
		if !utf8.ValidString(chunk.Text) {
			t.Errorf("chunk %d is not valid UTF-8: %q", i, chunk.Text)
		}
		if n := utf8.RuneCountInString(chunk.Text); n > 50 {
			t.Errorf("chunk %d exceeds window: %d characters", i, n)
		}
		if chunk.ChunkSize != utf8.RuneCountInString(chunk.Text) {
			t.Errorf("chunk %d size = %d, want rune count %d",
				i, chunk.ChunkSize, utf8.RuneCountInString(chunk.Text))
		}
	}
}

func TestNewChunkerFillsDefaults(t *testing.T) {
	c := NewChunker(ChunkerConfig{})
	text := strings.Repeat("b", 1000)

	chunks := c.ChunkText(text, "Body", 1)
	if len(chunks) != 1 || !chunks[0].IsCompleteSection {
		t.Errorf("default chunk size should keep 1000 chars whole, got %d chunks", len(chunks))
	}
}
