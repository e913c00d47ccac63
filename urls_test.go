package slides2pdf

import (
	"errors"
	"reflect"
	"strings"
	"testing"
	"testing/iotest"
)

// ---------------------------------------------------------------------------
// TestReadURLList - Trimming, blank lines, order
// ---------------------------------------------------------------------------

func TestReadURLList(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{
			name:  "one per line",
			input: "https://a\nhttps://b\nhttps://c\n",
			want:  []string{"https://a", "https://b", "https://c"},
		},
		{
			name:  "blank and whitespace lines skipped",
			input: "\n  https://a  \n\n\t\nhttps://b",
			want:  []string{"https://a", "https://b"},
		},
		{
			name:  "CRLF line endings",
			input: "https://a\r\nhttps://b\r\n",
			want:  []string{"https://a", "https://b"},
		},
		{
			name:  "order and duplicates kept",
			input: "https://b\nhttps://a\nhttps://b\n",
			want:  []string{"https://b", "https://a", "https://b"},
		},
		{
			name:  "non-URL lines are kept for per-URL failure",
			input: "https://a\nnot a url\n",
			want:  []string{"https://a", "not a url"},
		},
		{
			name:  "empty input",
			input: "",
			want:  nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := ReadURLList(strings.NewReader(tt.input))
			if err != nil {
				t.Fatalf("ReadURLList() error = %v", err)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("ReadURLList() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestReadURLList_ReaderError(t *testing.T) {
	t.Parallel()

	boom := errors.New("disk gone")
	_, err := ReadURLList(iotest.ErrReader(boom))
	if !errors.Is(err, boom) {
		t.Errorf("error = %v, want wrapped %v", err, boom)
	}
}

// ---------------------------------------------------------------------------
// TestValidateURL - Accepted schemes
// ---------------------------------------------------------------------------

func TestValidateURL(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input   string
		wantErr error
	}{
		{"https://slides.com/user/deck", nil},
		{"http://localhost:8000/#/3", nil},
		{"file:///home/me/deck/index.html", nil},
		{"", ErrEmptyURL},
		{"   ", ErrEmptyURL},
		{"slides.com/user/deck", ErrInvalidURL},
		{"ftp://slides.com/deck", ErrInvalidURL},
		{"https://", ErrInvalidURL},
		{"file://", ErrInvalidURL},
		{"https://exa mple.com/%zz", ErrInvalidURL},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			t.Parallel()

			err := ValidateURL(tt.input)
			if tt.wantErr == nil {
				if err != nil {
					t.Errorf("ValidateURL(%q) = %v, want nil", tt.input, err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("ValidateURL(%q) = %v, want %v", tt.input, err, tt.wantErr)
			}
		})
	}
}
