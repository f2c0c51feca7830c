package errors

import (
	"errors"
	"strings"
	"testing"
)

func TestError_Error(t *testing.T) {
	tests := []struct {
		name     string
		err      *Error
		contains []string
	}{
		{
			name: "full error",
			err: &Error{
				Phase:  PhaseHeader,
				Kind:   KindUnsupported,
				Detail: "bit depth 16, want 8",
				Offset: 22,
			},
			contains: []string{"[header]", "unsupported", "offset 22", "bit depth 16"},
		},
		{
			name: "minimal error",
			err: &Error{
				Phase:  PhaseLayers,
				Kind:   KindTruncated,
				Offset: -1,
			},
			contains: []string{"[layers]", "truncated"},
		},
		{
			name: "error with cause",
			err: &Error{
				Phase:  PhaseIO,
				Kind:   KindResource,
				Detail: "open input",
				Cause:  errors.New("permission denied"),
				Offset: -1,
			},
			contains: []string{"[io]", "resource", "open input", "caused by", "permission denied"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msg := tt.err.Error()
			for _, s := range tt.contains {
				if !strings.Contains(msg, s) {
					t.Errorf("error message %q does not contain %q", msg, s)
				}
			}
		})
	}
}

func TestError_Unwrap(t *testing.T) {
	cause := errors.New("root cause")
	err := Resource("read input", cause)

	if !errors.Is(err, cause) {
		t.Error("errors.Is did not find cause through Unwrap")
	}
}

func TestError_Is(t *testing.T) {
	a := Unsupported(PhaseHeader, "color mode 4")
	b := &Error{Phase: PhaseHeader, Kind: KindUnsupported}
	c := &Error{Phase: PhaseLayers, Kind: KindUnsupported}

	if !errors.Is(a, b) {
		t.Error("same phase and kind should match")
	}
	if errors.Is(a, c) {
		t.Error("different phase should not match")
	}
}

func TestBuilder(t *testing.T) {
	cause := errors.New("short read")
	err := New(PhaseChannels, KindTruncated).
		Offset(128).
		Detail("channel %d of %d", 2, 4).
		Cause(cause).
		Build()

	if err.Phase != PhaseChannels || err.Kind != KindTruncated {
		t.Errorf("phase/kind = %s/%s", err.Phase, err.Kind)
	}
	if err.Offset != 128 {
		t.Errorf("offset = %d, want 128", err.Offset)
	}
	if err.Detail != "channel 2 of 4" {
		t.Errorf("detail = %q", err.Detail)
	}
	if !errors.Is(err, cause) {
		t.Error("cause not wrapped")
	}
}

func TestFatal(t *testing.T) {
	if Resource("open", nil).Fatal() {
		t.Error("resource errors should not report fatal")
	}
	if !BadMagic(PhaseHeader, []byte("XXXX"), "8BPS").Fatal() {
		t.Error("format errors should report fatal")
	}
}
