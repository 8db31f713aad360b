package preflight

import (
	"path/filepath"
	"testing"
)

func TestCheckDirectoryAccess(t *testing.T) {
	dir := t.TempDir()
	result := CheckDirectoryAccess("Work directory", dir)
	if !result.Passed {
		t.Fatalf("temp dir should pass access check: %+v", result)
	}

	missing := CheckDirectoryAccess("Work directory", filepath.Join(dir, "missing"))
	if missing.Passed {
		t.Fatal("missing directory should fail access check")
	}
}

func TestCheckFreeSpaceOnTempDir(t *testing.T) {
	result := CheckFreeSpace("Space", t.TempDir())
	if result.Detail == "" {
		t.Fatal("free space check should report a detail")
	}
}
