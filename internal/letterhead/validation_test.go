package letterhead

import (
	"errors"
	"testing"
)

func TestValidateKey(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		key     string
		wantErr error
	}{
		{name: "simple", key: "dazzlo"},
		{name: "hyphenated", key: "dazzlo-holidays"},
		{name: "underscore", key: "brand_two"},
		{name: "empty", key: "", wantErr: ErrInvalidKey},
		{name: "dot", key: "a.b", wantErr: ErrInvalidKey},
		{name: "parent traversal", key: "..", wantErr: ErrInvalidKey},
		{name: "forward slash", key: "a/b", wantErr: ErrInvalidKey},
		{name: "backslash", key: `a\b`, wantErr: ErrInvalidKey},
		{name: "null byte", key: "a\x00b", wantErr: ErrInvalidKey},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := ValidateKey(tt.key)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("ValidateKey(%q) = %v, want %v", tt.key, err, tt.wantErr)
			}
		})
	}
}

func TestNormalizeKey(t *testing.T) {
	t.Parallel()

	tests := map[string]string{
		"dazzlo":         "dazzlo",
		"  Dazzlo-Tech ": "dazzlo-tech",
		"DAZZLO":         "dazzlo",
		"":               "",
	}
	for in, want := range tests {
		if got := NormalizeKey(in); got != want {
			t.Errorf("NormalizeKey(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestValidateHeight(t *testing.T) {
	t.Parallel()

	valid := []string{"30mm", "2.5cm", "1in", "96px", "12pt", "0mm"}
	for _, v := range valid {
		if err := validateHeight("headerHeight", v); err != nil {
			t.Errorf("validateHeight(%q) error = %v", v, err)
		}
	}

	invalid := []string{"", "30", "-5mm", "30 mm", "30em", "auto"}
	for _, v := range invalid {
		if err := validateHeight("headerHeight", v); !errors.Is(err, ErrInvalidManifest) {
			t.Errorf("validateHeight(%q) error = %v, want ErrInvalidManifest", v, err)
		}
	}
}
