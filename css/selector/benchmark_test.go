package selector

import (
	"strings"
	"testing"

	"golang.org/x/net/html"
)

func MustParseHTML(doc string) *html.Node {
	dom, err := html.Parse(strings.NewReader(doc))
	if err != nil {
		panic(err)
	}
	return dom
}

var (
	benchSelectors = MustParse(`div.matched, body > div div.matched, div + div.matched, div:hover`)
	doc            = `<!DOCTYPE html>
<html>
<body>
<div class="matched">
  <div>
    <div class="matched"></div>
    <div class="matched"></div>
    <div class="matched"></div>
    <div class="matched"></div>
    <div class="matched"></div>
    <div class="matched"></div>
    <div class="matched"></div>
    <div class="matched"></div>
    <div class="matched"></div>
    <div class="matched"></div>
    <div class="matched"></div>
    <div class="matched"></div>
    <div class="matched"></div>
    <div class="matched"></div>
    <div class="matched"></div>
    <div class="matched"></div>
  </div>
</div>
</body>
</html>
`
)
var dom = MustParseHTML(doc)

func matchAll(root *html.Node, sel *Selector) (out []*html.Node) {
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && sel.MatchesChain(n, nil) {
			out = append(out, n)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(root)
	return out
}

func BenchmarkMatchAll(b *testing.B) {
	var matches []*html.Node
	for i := 0; i < b.N; i++ {
		for _, sel := range benchSelectors {
			matches = matchAll(dom, sel)
		}
	}
	_ = matches
}

func BenchmarkParse(b *testing.B) {
	for i := 0; i < b.N; i++ {
		_, err := Parse(`html > body div.a#b[title~="x"]:first-child + p::before, ul li:hover a:link`, nil)
		if err != nil {
			b.Fatal(err)
		}
	}
}

func TestMatchAll(t *testing.T) {
	for i, expected := range []int{17, 16, 15, 0} {
		if got := len(matchAll(dom, benchSelectors[i])); got != expected {
			t.Fatalf("for %s, expected %d matches, got %d", benchSelectors[i], expected, got)
		}
	}
}
