package yamlutil_test

// Notes:
// - MaxInputSize is a package variable; the oversize test shrinks it and
//   therefore does not run in parallel.
// These are acceptable gaps: we test observable behavior, not implementation details.

import (
	"errors"
	"strings"
	"testing"

	"github.com/alnah/go-slides2pdf/internal/yamlutil"
)

type testConfig struct {
	Name  string `yaml:"name"`
	Count int    `yaml:"count"`
}

// ---------------------------------------------------------------------------
// TestUnmarshalStrict - Parses YAML and rejects unknown fields
// ---------------------------------------------------------------------------

func TestUnmarshalStrict(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		data       []byte
		dest       any
		wantErr    error
		wantErrMsg string
	}{
		{
			name: "known fields",
			data: []byte("name: deck\ncount: 3"),
			dest: &testConfig{},
		},
		{
			name:    "nil data",
			data:    nil,
			dest:    &testConfig{},
			wantErr: yamlutil.ErrNilData,
		},
		{
			name:    "empty data",
			data:    []byte{},
			dest:    &testConfig{},
			wantErr: yamlutil.ErrNilData,
		},
		{
			name:    "nil destination",
			data:    []byte("name: deck"),
			dest:    nil,
			wantErr: yamlutil.ErrNilDestination,
		},
		{
			name:       "unknown field",
			data:       []byte("name: deck\ncolour: red"),
			dest:       &testConfig{},
			wantErrMsg: "yamlutil:",
		},
		{
			name:       "invalid syntax",
			data:       []byte("name: [unclosed"),
			dest:       &testConfig{},
			wantErrMsg: "yamlutil:",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := yamlutil.UnmarshalStrict(tt.data, tt.dest)

			switch {
			case tt.wantErr != nil:
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("error = %v, want %v", err, tt.wantErr)
				}
			case tt.wantErrMsg != "":
				if err == nil || !strings.Contains(err.Error(), tt.wantErrMsg) {
					t.Fatalf("error = %v, want message containing %q", err, tt.wantErrMsg)
				}
			default:
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				cfg := tt.dest.(*testConfig)
				if cfg.Name != "deck" || cfg.Count != 3 {
					t.Errorf("got %+v, want {Name:deck Count:3}", *cfg)
				}
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestUnmarshalStrict_InputTooLarge - Size guard
// ---------------------------------------------------------------------------

func TestUnmarshalStrict_InputTooLarge(t *testing.T) {
	original := yamlutil.MaxInputSize
	yamlutil.MaxInputSize = 8
	t.Cleanup(func() { yamlutil.MaxInputSize = original })

	err := yamlutil.UnmarshalStrict([]byte("name: a-much-longer-value"), &testConfig{})
	if !errors.Is(err, yamlutil.ErrInputTooLarge) {
		t.Fatalf("error = %v, want ErrInputTooLarge", err)
	}
}
