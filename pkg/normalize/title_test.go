package normalize

import (
	"testing"
)

func TestNormalizeTitle(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{name: "plain", raw: "An act relating to water", want: "An act relating to water"},
		{name: "surrounding quotes", raw: `"School Funding Act"`, want: "School Funding Act"},
		{name: "nested quotes", raw: `'"Budget Act"'`, want: "Budget Act"},
		{name: "html entities", raw: "Roads &amp; Bridges", want: "Roads & Bridges"},
		{name: "smart quotes", raw: "The “Clean Water” Act", want: `The "Clean Water" Act`},
		{name: "em dash", raw: "Housing — affordability", want: "Housing - affordability"},
		{name: "whitespace collapse", raw: "An  act\t relating\nto  roads", want: "An act relating to roads"},
		{name: "capitalize first", raw: "an act relating to schools", want: "An act relating to schools"},
		{name: "trailing period dropped", raw: "An act relating to schools.", want: "An act relating to schools"},
		{name: "abbreviation period kept", raw: "Contracts with Acme Inc.", want: "Contracts with Acme Inc."},
		{name: "ellipsis kept", raw: "An act...", want: "An act..."},
		{name: "empty falls back", raw: "", want: "Untitled Bill"},
		{name: "quotes only falls back", raw: `""`, want: "Untitled Bill"},
		{name: "control characters dropped", raw: "An act\x00 relating to roads", want: "An act relating to roads"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NormalizeTitle(tt.raw)
			if got != tt.want {
				t.Errorf("NormalizeTitle(%q) = %q, want %q", tt.raw, got, tt.want)
			}
		})
	}
}
