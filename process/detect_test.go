package process

import (
	"os"
	"path/filepath"
	"testing"

	"docxfix/docx/docxtest"
)

func TestIsDocxFile(t *testing.T) {
	dir := t.TempDir()

	text := filepath.Join(dir, "test.docx")
	if err := os.WriteFile(text, []byte("not a zip"), 0644); err != nil {
		t.Fatalf("Failed to create test file: %v", err)
	}
	empty := filepath.Join(dir, "empty.docx")
	if err := os.WriteFile(empty, nil, 0644); err != nil {
		t.Fatalf("Failed to create test file: %v", err)
	}

	tests := []struct {
		name string
		path string
		want bool
	}{
		{"package", docxtest.Write(t, docxtest.Para(docxtest.Run("x"))), true},
		{"text", text, false},
		{"empty", empty, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := isDocxFile(tt.path)
			if err != nil {
				t.Fatalf("isDocxFile() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("isDocxFile() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestIsDocxFile_NonExistent(t *testing.T) {
	if _, err := isDocxFile("/nonexistent/file.docx"); err == nil {
		t.Error("Expected error for non-existent file, got nil")
	}
}
