package resource

import (
	"errors"
	"testing"
)

func TestStatusString(t *testing.T) {
	tests := []struct {
		status Status
		want   string
	}{
		{StatusReconciled, "reconciled"},
		{StatusDegraded, "degraded"},
		{Status(7), "Status(7)"},
	}

	for _, tt := range tests {
		if got := tt.status.String(); got != tt.want {
			t.Errorf("Status(%d).String() = %q, want %q", int(tt.status), got, tt.want)
		}
	}
}

func TestValidationErrorUnwrap(t *testing.T) {
	cause := errors.New("name is required")
	err := &ValidationError{Resource: "tours", Err: cause}

	if !errors.Is(err, cause) {
		t.Error("ValidationError should unwrap to its cause")
	}
	if got := err.Error(); got != "tours validation failed: name is required" {
		t.Errorf("Error() = %q", got)
	}
}
