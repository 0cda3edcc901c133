package storage

import (
	"context"
	"io"
	"strings"
	"testing"
)

func TestSourceObjectKey(t *testing.T) {
	tests := []struct {
		documentID string
		filename   string
		want       string
	}{
		{"doc_abc123", "lease.pdf", "doc_abc123/lease.pdf"},
		{"doc_abc123", "my contract.docx", "doc_abc123/my_contract.docx"},
		{"doc_abc123", "../../etc/passwd", "doc_abc123/passwd"},
	}

	for _, tt := range tests {
		if got := sourceObjectKey(tt.documentID, tt.filename); got != tt.want {
			t.Errorf("sourceObjectKey(%q, %q) = %q, want %q", tt.documentID, tt.filename, got, tt.want)
		}
	}
}

func TestLocalStorageRoundTrip(t *testing.T) {
	store, err := NewLocalStorage(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	ctx := context.Background()

	path, err := store.UploadSource(ctx, "doc_1", "lease.txt", strings.NewReader("source bytes"))
	if err != nil {
		t.Fatalf("UploadSource: %v", err)
	}
	if path != "doc_1/lease.txt" {
		t.Errorf("storage path = %q", path)
	}

	reader, err := store.DownloadSource(ctx, "doc_1", "lease.txt")
	if err != nil {
		t.Fatalf("DownloadSource: %v", err)
	}
	data, err := io.ReadAll(reader)
	reader.Close()
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "source bytes" {
		t.Errorf("downloaded = %q", data)
	}

	if err := store.DeleteSources(ctx, "doc_1"); err != nil {
		t.Fatalf("DeleteSources: %v", err)
	}
	if _, err := store.DownloadSource(ctx, "doc_1", "lease.txt"); err == nil {
		t.Error("source should be gone after DeleteSources")
	}
}

func TestDeleteSourcesUnknownDocument(t *testing.T) {
	store, err := NewLocalStorage(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	if err := store.DeleteSources(context.Background(), "doc_missing"); err != nil {
		t.Errorf("deleting unknown document should be a no-op, got %v", err)
	}
}
