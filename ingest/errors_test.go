package ingest

import "testing"

func TestErrorsReportAndHasErrors(t *testing.T) {
	errs := NewErrors()
	if errs.HasErrors() {
		t.Fatal("a fresh Errors should report no errors")
	}

	errs.Report(3, "bad field %q", "Name")
	if !errs.HasErrors() {
		t.Fatal("HasErrors() = false after Report")
	}

	diags := errs.Diagnostics()
	if len(diags) != 1 {
		t.Fatalf("len(Diagnostics()) = %d, want 1", len(diags))
	}
	if diags[0].RecordIndex != 3 || diags[0].Message != `bad field "Name"` {
		t.Errorf("diagnostic = %+v", diags[0])
	}
}

func TestErrorsErrorJoinsDiagnostics(t *testing.T) {
	errs := NewErrors()
	errs.Report(0, "first")
	errs.Report(1, "second")

	want := "record 0: first\nrecord 1: second"
	if got := errs.Error(); got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
}
