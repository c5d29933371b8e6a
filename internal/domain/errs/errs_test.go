package errs

import (
	"errors"
	"fmt"
	"testing"
)

func TestKind(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want error
	}{
		{name: "not found", err: NotFound("lesson %s", "l1"), want: ErrNotFound},
		{name: "invalid", err: Invalid("bad status %q", "sick"), want: ErrInvalidArgument},
		{name: "conflict", err: Conflict("cross-course"), want: ErrConflict},
		{name: "wrapped twice", err: fmt.Errorf("saving: %w", NotFound("course")), want: ErrNotFound},
		{name: "plain", err: errors.New("disk full"), want: nil},
		{name: "nil", err: nil, want: nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Kind(tt.err); got != tt.want {
				t.Errorf("Kind() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestNotFound_Message(t *testing.T) {
	err := NotFound("lesson %s", "abc")
	if err.Error() != "lesson abc: not found" {
		t.Errorf("unexpected message %q", err.Error())
	}
}
