package sitekit

import (
	"os"
	"path/filepath"
	"testing"
)

// ---------------------------------------------------------------------------
// TestUpdatedStamp - Extracts and normalizes the updated field
// ---------------------------------------------------------------------------

func TestUpdatedStamp(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		content string
		format  string
		want    string
	}{
		{
			name:    "quoted date",
			content: "---\nupdated: \"2024-05-01\"\n---\nbody\n",
			want:    "2024-05-01",
		},
		{
			name:    "bare date",
			content: "---\nupdated: 2024-05-01\n---\n",
			want:    "2024-05-01",
		},
		{
			name:    "timestamp is truncated to the day",
			content: "---\nupdated: \"2024-05-01T14:30:00\"\n---\n",
			want:    "2024-05-01",
		},
		{
			name:    "RFC 3339 with zone",
			content: "---\nupdated: \"2024-05-01T14:30:00+02:00\"\n---\n",
			want:    "2024-05-01",
		},
		{
			name:    "free text is kept",
			content: "---\nupdated: \"Spring 2024\"\n---\n",
			want:    "Spring 2024",
		},
		{
			name:    "custom format",
			content: "---\nupdated: \"2024-05-01\"\n---\n",
			format:  "european",
			want:    "01/05/2024",
		},
		{
			name:    "CRLF line endings",
			content: "---\r\nupdated: \"2024-05-01\"\r\n---\r\n",
			want:    "2024-05-01",
		},
		{
			name:    "no front matter",
			content: "# Sampler\nupdated: 2024-05-01\n",
			want:    "",
		},
		{
			name:    "missing key",
			content: "---\ntitle: Sampler\n---\n",
			want:    "",
		},
		{
			name:    "malformed YAML",
			content: "---\nupdated: [2024\n---\n",
			want:    "",
		},
		{
			name:    "non-string value",
			content: "---\nupdated: 20240501\n---\n",
			want:    "",
		},
		{
			name:    "empty file",
			content: "",
			want:    "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := UpdatedStamp([]byte(tt.content), tt.format); got != tt.want {
				t.Errorf("UpdatedStamp() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestReadUpdatedStamp(t *testing.T) {
	t.Parallel()

	t.Run("reads page", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "index.md")
		if err := os.WriteFile(path, []byte("---\nupdated: \"2025-01-15\"\n---\n"), 0o600); err != nil {
			t.Fatal(err)
		}
		got, err := ReadUpdatedStamp(path, "")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got != "2025-01-15" {
			t.Errorf("stamp = %q, want %q", got, "2025-01-15")
		}
	})

	t.Run("missing page is an error", func(t *testing.T) {
		t.Parallel()

		if _, err := ReadUpdatedStamp(filepath.Join(t.TempDir(), "nope.md"), ""); err == nil {
			t.Error("expected error, got nil")
		}
	})
}
