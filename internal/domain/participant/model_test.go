package participant

import (
	"errors"
	"strings"
	"testing"
)

func TestNormalizeHandle(t *testing.T) {
	cases := []struct {
		name    string
		in      string
		want    string
		wantErr bool
	}{
		{name: "trims", in: "  alice ", want: "alice"},
		{name: "blank", in: "   ", wantErr: true},
		{name: "max length", in: strings.Repeat("a", MaxHandleLength), want: strings.Repeat("a", MaxHandleLength)},
		{name: "too long", in: strings.Repeat("a", MaxHandleLength+1), wantErr: true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := NormalizeHandle(tc.in)
			if tc.wantErr {
				if !errors.Is(err, ErrInvalidHandle) {
					t.Fatalf("expected ErrInvalidHandle, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tc.want {
				t.Fatalf("got %q want %q", got, tc.want)
			}
		})
	}
}

func TestHandleKey(t *testing.T) {
	if HandleKey(" Alice ") != HandleKey("alice") {
		t.Fatalf("handle keys must be case-insensitive")
	}
}
