package progress

import "testing"

func TestNewReporterInCI(t *testing.T) {
	t.Setenv("CI", "true")
	r := NewReporter("Exporting en")
	ci, ok := r.(*CIReporter)
	if !ok {
		t.Fatalf("expected *CIReporter, got %T", r)
	}
	if ci.Description != "Exporting en" {
		t.Errorf("Description = %q", ci.Description)
	}
	r.Start(2)
	r.Update(1, "index.html")
	r.Finish()
}

func TestTerminalReporterBeforeStart(t *testing.T) {
	r := &TerminalReporter{}
	// Update and Finish without a bar must not panic.
	r.Update(1, "x")
	r.Finish()
}
