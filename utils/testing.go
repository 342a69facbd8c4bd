package utils

import (
	"os"
	"path"
	"testing"
)

// CreateTestFile writes contents to a file under the test's temp dir and
// opens it for reading. The handle is closed automatically when the test
// finishes. It returns the open file and its path.
func CreateTestFile(t *testing.T, contents string) (*os.File, string) {
	t.Helper()

	filepath := path.Join(t.TempDir(), "test.txt")
	if err := os.WriteFile(filepath, []byte(contents), 0644); err != nil {
		t.Fatalf("Failed to create temp file: %v", err)
	}

	f, err := os.Open(filepath)
	if err != nil {
		t.Fatalf("Failed to open temp file: %v", err)
	}

	t.Cleanup(func() {
		if err := f.Close(); err != nil {
			t.Fatalf("Failed to close temp file: %v", err)
		}
	})

	return f, filepath
}
