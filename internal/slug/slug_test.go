package slug_test

import (
	"testing"

	"storefront/internal/slug"
)

func TestMake(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"Garden Chair", "garden-chair"},
		{"Garden Chair (Oak)", "garden-chair-oak"},
		{"  Spaces  everywhere  ", "spaces-everywhere"},
		{"Ünïcode Nämé", "n-code-n-m"},
		{"UPPER", "upper"},
		{"already-a-slug", "already-a-slug"},
		{"123 Numbers", "123-numbers"},
		{"!!!", ""},
		{"", ""},
	}

	for _, c := range cases {
		if got := slug.Make(c.in); got != c.want {
			t.Errorf("Make(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}
