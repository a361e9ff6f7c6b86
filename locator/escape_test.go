package locator

import "testing"

func TestEscapeCSS(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"plain-name", "plain-name"},
		{"a.b", `a\.b`},
		{"a.b:c", `a\.b\:c`},
		{"1abc", `\31 abc`},
		{"-1x", `-\31 x`},
		{"foo bar", `foo\ bar`},
		{`say "hi"`, `say\ \"hi\"`},
		{"/join", `\/join`},
	}
	for _, tt := range tests {
		if got := EscapeCSS(tt.in); got != tt.want {
			t.Errorf("EscapeCSS(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestXPathLiteral(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"plain", "'plain'"},
		{"it's", `"it's"`},
		{`a'b"c`, `concat('a', "'", 'b"c')`},
	}
	for _, tt := range tests {
		if got := xpathLiteral(tt.in); got != tt.want {
			t.Errorf("xpathLiteral(%q) = %s, want %s", tt.in, got, tt.want)
		}
	}
}
