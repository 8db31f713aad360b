package deps

import "testing"

func TestCheckBinariesReportsMissing(t *testing.T) {
	results := CheckBinaries([]Requirement{
		{Name: "Nope", Command: "definitely-not-a-binary-on-path"},
	})
	if len(results) != 1 {
		t.Fatalf("expected 1 result, got %d", len(results))
	}
	if results[0].Available {
		t.Fatal("nonexistent binary should not report available")
	}
	if results[0].Detail == "" {
		t.Fatal("missing binary should carry a detail message")
	}
}

func TestCheckBinariesReportsUnconfigured(t *testing.T) {
	results := CheckBinaries([]Requirement{{Name: "Empty"}})
	if results[0].Available {
		t.Fatal("empty command should not report available")
	}
	if results[0].Detail != "command not configured" {
		t.Fatalf("unexpected detail %q", results[0].Detail)
	}
}

func TestCheckBinariesFindsShell(t *testing.T) {
	// /bin/sh exists on every platform these tests run on.
	results := CheckBinaries([]Requirement{{Name: "Shell", Command: "sh"}})
	if !results[0].Available {
		t.Fatalf("expected sh to be available: %+v", results[0])
	}
	if results[0].Command == "sh" {
		t.Fatal("expected resolved absolute path for sh")
	}
}
