package locator

import "testing"

func TestPenalty(t *testing.T) {
	tests := []struct {
		expr string
		want float64
	}{
		{"#main", 2 + 5*0.5},
		{"div", 30 + 3*0.5},
		{"ul>:nth-child(7)", 30 + 1000 + 16*0.5},
		{`[title="a.b #c"]`, 5 + 16*0.5},
		{`.a\.b`, 10 + 5*0.5},
		{`#\31 23`, 2 + 7*0.5},
		{".btn-active", 10 + 11*0.5 + 5000},
		{"div.card>a", 30 + 10 + 30 + 10*0.5},
	}
	for _, tt := range tests {
		if got := Penalty(tt.expr); got != tt.want {
			t.Errorf("Penalty(%q) = %v, want %v", tt.expr, got, tt.want)
		}
	}
}

func TestPenaltyIDBeatsTag(t *testing.T) {
	pairs := [][2]string{
		{"#cart", "div"},
		{"#cart .item", "div .item"},
		{"#nav>a", "nav>a"},
	}
	for _, p := range pairs {
		if Penalty(p[0]) >= Penalty(p[1]) {
			t.Errorf("Penalty(%q) = %v should be below Penalty(%q) = %v",
				p[0], Penalty(p[0]), p[1], Penalty(p[1]))
		}
	}
}

func TestPenaltyOrdering(t *testing.T) {
	// id < attribute < class < tag < position
	order := []string{"#ab", "[x]", ".ab", "ab", ":nth-child(1)"}
	for i := 1; i < len(order); i++ {
		if Penalty(order[i-1]) >= Penalty(order[i]) {
			t.Errorf("Penalty(%q) should be below Penalty(%q)", order[i-1], order[i])
		}
	}
}

func TestWildcards(t *testing.T) {
	if got := WildcardCSS("#list>li:nth-child(3) :nth-child(12)"); got != "#list>li:nth-child(n) :nth-child(n)" {
		t.Errorf("WildcardCSS = %q", got)
	}

	tests := []struct {
		expr string
		want string
	}{
		{"//div[@id='x']/ul[2]/li[7]", "//div[@id='x']/ul/li"},
		{"//div[@id='col[2]']/ul/li[2]", "//div[@id='col[2]']/ul/li"},
		{`//a[@title="[10]"]/span[3]`, `//a[@title="[10]"]/span`},
		{"//nav[contains(@class, 'menu')]/a[12]", "//nav[contains(@class, 'menu')]/a"},
		{"//p[last()]/b[]", "//p[last()]/b[]"},
		{"//li[1", "//li[1"},
	}
	for _, tt := range tests {
		if got := WildcardXPath(tt.expr); got != tt.want {
			t.Errorf("WildcardXPath(%q) = %q, want %q", tt.expr, got, tt.want)
		}
	}
}
