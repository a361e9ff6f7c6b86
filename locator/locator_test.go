package locator

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"pinpoint/dom"
	"pinpoint/query"
)

func TestLocateSingleTextBeatsID(t *testing.T) {
	tree := mustTree(t, `<html><body><div>
		<button id="save-btn" class="btn">Save</button>
		<button class="btn">Cancel</button>
	</div></body></html>`)
	target := pick(t, tree, "#save-btn")

	sel := ForTree(tree, Config{}).LocateSingle(target)

	if sel.Structural.Expression != "#save-btn" {
		t.Errorf("expected structural %q, got %q", "#save-btn", sel.Structural.Expression)
	}
	if sel.Structural.Penalty != 6.5 {
		t.Errorf("expected structural penalty 6.5, got %v", sel.Structural.Penalty)
	}
	want := "//button[contains(normalize-space(.), 'Save')]"
	if sel.Best.Expression != want {
		t.Errorf("expected best %q, got %q", want, sel.Best.Expression)
	}
	if sel.Best.Family != query.XPath || sel.Best.Kind != KindText {
		t.Errorf("expected xpath text candidate, got %s %s", sel.Best.Family, sel.Best.Kind)
	}
}

func TestLocateSingleTieGoesToStructural(t *testing.T) {
	tree := mustTree(t, `<html><body><form>
		<input name="q" type="search">
		<button type="submit">Go</button>
	</form></body></html>`)
	target := pick(t, tree, "input")

	sel := ForTree(tree, Config{}).LocateSingle(target)

	if sel.Ordered.Expression != "//input[@name='q']" {
		t.Errorf("expected ordered %q, got %q", "//input[@name='q']", sel.Ordered.Expression)
	}
	if sel.Structural.Penalty != sel.Ordered.Penalty {
		t.Fatalf("expected equal penalties, got %v and %v", sel.Structural.Penalty, sel.Ordered.Penalty)
	}
	if sel.Best.Family != query.CSS || sel.Best.Expression != `[name="q"]` {
		t.Errorf("expected css %q, got %s %q", `[name="q"]`, sel.Best.Family, sel.Best.Expression)
	}
}

func TestLocateSingleDuplicateID(t *testing.T) {
	tree := mustTree(t, `<html><body><p id="dup">Same</p><p id="dup">Same</p></body></html>`)
	nodes, _ := query.NewDocument(tree, nil).Query(query.CSS, "p")
	target := nodes[0]

	l := ForTree(tree, Config{})
	sel := l.LocateSingle(target)

	if !sel.Ordered.NonUnique {
		t.Errorf("expected ordered %q to be flagged non-unique", sel.Ordered.Expression)
	}
	if sel.Ordered.Penalty < nonUniqueWeight {
		t.Errorf("expected non-unique penalty, got %v", sel.Ordered.Penalty)
	}
	if sel.Best.NonUnique || sel.Best.Family != query.CSS {
		t.Fatalf("expected a unique css result, got %+v", sel.Best)
	}
	got, err := l.Verify(sel.Best.Family, sel.Best.Expression)
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if len(got) != 1 || got[0] != target {
		t.Errorf("expected %q to match only the first paragraph", sel.Best.Expression)
	}
}

func TestLocateSingleEscapedIDs(t *testing.T) {
	tree := mustTree(t, `<html><body>
		<div id="a.b:c">x</div>
		<span id="1abc">y</span>
		<div>z</div><span>w</span>
	</body></html>`)
	l := ForTree(tree, Config{})

	tests := []struct {
		css  string
		want string
	}{
		{`[id="a.b:c"]`, `#a\.b\:c`},
		{`[id="1abc"]`, `#\31 abc`},
	}
	for _, tt := range tests {
		target := pick(t, tree, tt.css)
		c := l.Structural(target)
		if c.Expression != tt.want {
			t.Errorf("expected %q, got %q", tt.want, c.Expression)
		}
		if !l.Unique(query.CSS, c.Expression, target) {
			t.Errorf("expected %q to identify its target", c.Expression)
		}
	}
}

const shopPage = `<html><head><title>Shop</title></head>
<body>
  <header id="top"><nav><a href="/">Home</a><a href="/deals">Deals</a></nav></header>
  <main>
    <p id="dup">Same</p>
    <p id="dup">Same</p>
    <ul class="results">
      <li class="item-7f3k"><a href="/p/1">Item 1</a></li>
      <li class="item-7f3k"><a href="/p/2">Item 2</a></li>
      <li class="item-7f3k"><a href="/p/3">It's 3</a></li>
    </ul>
    <div style="display: none"><span>hidden</span></div>
    <table><tr><td>a</td><td>b</td></tr><tr><td>a</td><td>b</td></tr></table>
    <form><input name="q" type="search"><button type="submit" data-testid="go">Go</button></form>
  </main>
</body></html>`

// Every element gets an expression that re-queries to exactly itself or,
// failing that, the positional fallback.
func TestLocateSingleTotal(t *testing.T) {
	tree := mustTree(t, shopPage)
	l := ForTree(tree, Config{})
	assertTotal(t, l, tree.AllNodes)
}

// assertTotal checks that every node's best expression is confirmed unique,
// or is the structural positional fallback.
func assertTotal(t *testing.T, l *Locator, nodes []*dom.Node) {
	t.Helper()
	for _, n := range nodes {
		sel := l.LocateSingle(n)
		if sel.Best.Expression == "" {
			t.Errorf("%s: empty expression", n.DisplayName())
			continue
		}
		if sel.Best.NonUnique {
			if sel.Best.Family != query.CSS || sel.Best.Kind != KindPositional {
				t.Errorf("%s: non-unique %s %q is not the positional fallback",
					n.DisplayName(), sel.Best.Family, sel.Best.Expression)
			}
			continue
		}
		got, err := l.Verify(sel.Best.Family, sel.Best.Expression)
		if err != nil {
			t.Errorf("%s: verify %q: %v", n.DisplayName(), sel.Best.Expression, err)
			continue
		}
		if len(got) != 1 || got[0] != n {
			t.Errorf("%s: %s %q matched %d nodes", n.DisplayName(), sel.Best.Family, sel.Best.Expression, len(got))
		}
	}
}

// A deep positional path costs more than a penalised ordered candidate but
// is still the only expression that identifies the target.
func TestLocateSinglePrefersUniqueOverPenalty(t *testing.T) {
	tree := mustTree(t, "<html><body>"+nest(12, "<span></span>")+nest(12, "<span></span>")+"</body></html>")
	spans, _ := query.NewDocument(tree, nil).Query(query.CSS, "span")
	target := spans[1]

	sel := ForTree(tree, Config{}).LocateSingle(target)

	if sel.Structural.Kind != KindPositional || sel.Structural.NonUnique {
		t.Fatalf("expected unique positional structural, got %s %q (non-unique %v)",
			sel.Structural.Kind, sel.Structural.Expression, sel.Structural.NonUnique)
	}
	if !sel.Ordered.NonUnique {
		t.Fatalf("expected ordered %q to be non-unique", sel.Ordered.Expression)
	}
	if sel.Ordered.Penalty >= sel.Structural.Penalty {
		t.Fatalf("fixture should make the ordered penalty lower: %v vs %v", sel.Ordered.Penalty, sel.Structural.Penalty)
	}
	if sel.Best.Family != query.CSS || sel.Best.Expression != sel.Structural.Expression || sel.Best.NonUnique {
		t.Errorf("expected best %q, got %s %q (non-unique %v)",
			sel.Structural.Expression, sel.Best.Family, sel.Best.Expression, sel.Best.NonUnique)
	}
}

// twoCards has targets that no seed of their own identifies, so the first
// unique paths appear one level up.
const twoCards = `<html><body>
	<div class="card"><b>x</b></div>
	<div class="note"><b>y</b></div>
</body></html>`

// twoSections needs two levels: the wrapping divs are indistinguishable.
const twoSections = `<html><body>
	<section id="first"><div><b>x</b></div></section>
	<section id="second"><div><b>y</b></div></section>
</body></html>`

func foundExprs(paths []scoredPath) []string {
	out := make([]string, len(paths))
	for i, p := range paths {
		out[i] = p.expr
	}
	return out
}

func TestAscendLevelOne(t *testing.T) {
	tree := mustTree(t, twoCards)
	target := pick(t, tree, ".card b")
	l := ForTree(tree, Config{AscentLevels: 1})

	got := foundExprs(l.ascend(target, Seeds(target, l.cfg)))

	want := []string{".card b", ".card>b", ".card :nth-child(1)", ".card>:nth-child(1)", ":nth-child(1)>b"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("level 1 paths mismatch (-want +got):\n%s", diff)
	}
	if c := l.Structural(target); c.Expression != ".card b" || c.Kind != KindStructural {
		t.Errorf("expected structural %q, got %s %q", ".card b", c.Kind, c.Expression)
	}
}

func TestAscendLevelTwo(t *testing.T) {
	tree := mustTree(t, twoSections)
	target := pick(t, tree, "#second b")

	if got := ForTree(tree, Config{AscentLevels: 1}).ascend(target, []string{"b", ":nth-child(1)"}); len(got) != 0 {
		t.Errorf("expected no unique path within one level, got %v", foundExprs(got))
	}

	l := ForTree(tree, Config{})
	c := l.Structural(target)
	if c.Expression != "#second div b" || c.Kind != KindStructural {
		t.Errorf("expected structural %q, got %s %q", "#second div b", c.Kind, c.Expression)
	}
	if c.Penalty != 2+30+30+13*0.5 {
		t.Errorf("expected penalty %v, got %v", 2+30+30+13*0.5, c.Penalty)
	}
}

func TestAscendStopsAtCandidateCap(t *testing.T) {
	tree := mustTree(t, twoSections)
	target := pick(t, tree, "#second b")

	tests := []struct {
		name     string
		limit    int
		wantBody bool
	}{
		// level two alone yields more than ten unique paths
		{"default cap", 0, false},
		{"large cap", 1000, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := ForTree(tree, Config{CandidateCap: tt.limit})
			got := foundExprs(l.ascend(target, Seeds(target, l.cfg)))
			if len(got) < 10 {
				t.Fatalf("expected at least 10 paths, got %d", len(got))
			}
			hasBody := false
			for _, expr := range got {
				if strings.HasPrefix(expr, "body") {
					hasBody = true
				}
			}
			if hasBody != tt.wantBody {
				t.Errorf("expected body-level paths %v, got %v in %v", tt.wantBody, hasBody, got)
			}
		})
	}
}

func TestAscendFrontierCap(t *testing.T) {
	tree := mustTree(t, twoSections)
	target := pick(t, tree, "#second b")

	tests := []struct {
		name      string
		limit     int
		wantChild bool
	}{
		{"default keeps child paths", 0, true},
		// "div b" and "div>b" tie; the cap keeps the first generated
		{"cap of one drops them", 1, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := ForTree(tree, Config{FrontierCap: tt.limit})
			got := foundExprs(l.ascend(target, Seeds(target, l.cfg)))
			if len(got) == 0 {
				t.Fatal("expected unique paths")
			}
			hasChild := false
			for _, expr := range got {
				if strings.Contains(expr, "div>b") {
					hasChild = true
				}
			}
			if hasChild != tt.wantChild {
				t.Errorf("expected %q paths %v, got %v", "div>b", tt.wantChild, got)
			}
		})
	}
}

func TestCapFrontier(t *testing.T) {
	paths := []string{"div", "#a", ".b", "#c", "span"}

	if got := capFrontier(paths, 10); !cmp.Equal(got, paths) {
		t.Errorf("expected paths unchanged under the cap, got %v", got)
	}
	want := []string{"#a", "#c", ".b"}
	if diff := cmp.Diff(want, capFrontier(paths, 3)); diff != "" {
		t.Errorf("capFrontier mismatch (-want +got):\n%s", diff)
	}
}

const scopedPage = `<html><body>
	<div class="panel"><ul><li><span>One</span></li><li><span>Two</span></li></ul></div>
	<div class="panel" id="second">
		<ul><li><span>One</span></li><li><span>Two</span></li></ul>
		<p>Footer</p>
	</div>
</body></html>`

func TestPositionalPathStopsAtScope(t *testing.T) {
	tree := mustTree(t, scopedPage)
	scope := pick(t, tree, "#second")
	target := pick(t, tree, "#second li:nth-child(2) span")

	want := "ul:nth-child(1)>li:nth-child(2)>span:nth-child(1)"
	if got := positionalPath(target, scope); got != want {
		t.Errorf("expected %q, got %q", want, got)
	}
	if got := positionalPath(target, nil); !strings.HasPrefix(got, "body:nth-child(2)>div:nth-child(2)>") {
		t.Errorf("expected document path from body, got %q", got)
	}
}

func TestLocateSingleScoped(t *testing.T) {
	tree := mustTree(t, scopedPage)
	scope := pick(t, tree, "#second")
	l := ForTree(tree, Config{Scope: scope})

	// "p" is unique inside the scope only
	footer := pick(t, tree, "#second p")
	if c := l.Structural(footer); c.Expression != "p" {
		t.Errorf("expected scoped structural %q, got %q", "p", c.Expression)
	}

	assertTotal(t, l, scope.Descendants())
}

func TestOrderedSkipsQuotedText(t *testing.T) {
	tree := mustTree(t, `<html><body><p>It's here</p><p>Other</p></body></html>`)
	nodes, _ := query.NewDocument(tree, nil).Query(query.CSS, "p")

	c := ForTree(tree, Config{}).Ordered(nodes[0])
	if c.Expression != "//p[1]" || c.Kind != KindPositional {
		t.Errorf("expected positional %q, got %s %q", "//p[1]", c.Kind, c.Expression)
	}
}

func TestOrderedContainerText(t *testing.T) {
	tree := mustTree(t, `<html><body>
		<div class="card" id="c1"><span>a</span> <span>b</span> <span>c</span> <span>d</span></div>
	</body></html>`)
	if got := directText(pick(t, tree, "div")); got != "" {
		t.Errorf("expected no text for a container, got %q", got)
	}
	if got := directText(pick(t, tree, "body")); got != "a b c d" {
		t.Errorf("expected %q, got %q", "a b c d", got)
	}
}

func TestAnchoredPath(t *testing.T) {
	tests := []struct {
		name   string
		src    string
		target string
		want   string
	}{
		{
			name:   "id anchor",
			src:    `<body><div id="main-list"><ul><li>a</li><li id="x">b</li></ul></div></body>`,
			target: "#x",
			want:   "//div[@id='main-list']/ul/li[2]",
		},
		{
			name:   "class anchor",
			src:    `<body><nav class="menu"><a>x</a><a id="y">y</a></nav><nav><a>z</a></nav></body>`,
			target: "#y",
			want:   "//nav[contains(@class, 'menu')]/a[2]",
		},
		{
			name:   "depth budget",
			src:    `<body>` + nest(8, `<span id="deep">x</span>`) + `</body>`,
			target: "#deep",
			want:   "//div/div/div/div/div/span",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tree := mustTree(t, tt.src)
			l := ForTree(tree, Config{})
			if got := l.AnchoredPath(pick(t, tree, tt.target)); got != tt.want {
				t.Errorf("expected %q, got %q", tt.want, got)
			}
		})
	}
}

func TestBreadcrumbs(t *testing.T) {
	tree := mustTree(t, `<html><body><div id="app">
		<main class="is-open content-area"><section id="hero"><h1>Hi</h1></section></main>
	</div></body></html>`)

	var labels []string
	for _, c := range ForTree(tree, Config{}).Breadcrumbs(pick(t, tree, "h1")) {
		labels = append(labels, c.Label)
	}
	want := []string{"div", "main.content-area", "section#hero", "h1"}
	if diff := cmp.Diff(want, labels); diff != "" {
		t.Errorf("breadcrumbs mismatch (-want +got):\n%s", diff)
	}
}

func TestVerifyMalformed(t *testing.T) {
	tree := mustTree(t, `<html><body><p>x</p></body></html>`)
	l := ForTree(tree, Config{})

	for _, tt := range []struct {
		family query.Family
		expr   string
	}{
		{query.CSS, "div["},
		{query.XPath, "//p[@"},
	} {
		if _, err := l.Verify(tt.family, tt.expr); !errors.Is(err, query.ErrQueryFailure) {
			t.Errorf("%s %q: expected ErrQueryFailure, got %v", tt.family, tt.expr, err)
		}
	}
}
