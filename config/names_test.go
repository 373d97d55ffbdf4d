package config

import (
	"strings"
	"testing"
)

func TestCleanFileName(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"fixed_report.docx", "fixed_report.docx"},
		{"a/b.docx", "ab.docx"},
		{"..hidden.docx", "hidden.docx"},
		{"with\x00zero.docx", "withzero.docx"},
		{"", "_bad_file_name_"},
		{"...", "_bad_file_name_"},
		{"/", "_bad_file_name_"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := CleanFileName(tt.in); got != tt.want {
				t.Errorf("CleanFileName(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestCleanFileName_Forbidden(t *testing.T) {
	got := CleanFileName("x" + forbiddenNameChars + "y.docx")
	if got != "xy.docx" {
		t.Errorf("CleanFileName() = %q, want %q", got, "xy.docx")
	}
	if strings.ContainsAny(got, forbiddenNameChars) {
		t.Errorf("CleanFileName() left forbidden characters in %q", got)
	}
}
