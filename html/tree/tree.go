package tree

import (
	"fmt"
	"io"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// ParseHTML parses an HTML document and returns its root <html> element.
func ParseHTML(r io.Reader) (*html.Node, error) {
	doc, err := html.ParseWithOptions(r, html.ParseOptionEnableScripting(false))
	if err != nil {
		return nil, fmt.Errorf("invalid html input: %s", err)
	}
	for c := doc.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode {
			return c, nil
		}
	}
	return nil, fmt.Errorf("invalid html input: missing root element")
}

func isElement(n *html.Node) bool { return n != nil && n.Type == html.ElementNode }

// parentElement returns nil for the root element.
func parentElement(n *html.Node) *html.Node {
	if p := n.Parent; isElement(p) {
		return p
	}
	return nil
}

func getAttr(n *html.Node, name string) (string, bool) {
	for _, attr := range n.Attr {
		if attr.Namespace == "" && strings.EqualFold(attr.Key, name) {
			return attr.Val, true
		}
	}
	return "", false
}

// walkElements calls fn for `root` and its element descendants, in document order.
func walkElements(root *html.Node, fn func(*html.Node)) {
	if isElement(root) {
		fn(root)
	}
	for c := root.FirstChild; c != nil; c = c.NextSibling {
		walkElements(c, fn)
	}
}

// ancestorWithTag returns the closest ancestor of `n` with the given tag, or nil.
func ancestorWithTag(n *html.Node, tag atom.Atom) *html.Node {
	for p := parentElement(n); p != nil; p = parentElement(p) {
		if p.DataAtom == tag {
			return p
		}
	}
	return nil
}

// elementText returns the concatenated text content of `n`.
func elementText(n *html.Node) string {
	var b strings.Builder
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.TextNode {
			b.WriteString(c.Data)
		}
	}
	return b.String()
}

// Describe returns a short description of the element, like `div#main.a.b`,
// used in logs and diagnostics.
func Describe(n *html.Node) string {
	if !isElement(n) {
		return fmt.Sprintf("<node %d>", n.Type)
	}
	out := n.Data
	if id, ok := getAttr(n, "id"); ok && id != "" {
		out += "#" + id
	}
	if class, ok := getAttr(n, "class"); ok {
		for _, c := range strings.Fields(class) {
			out += "." + c
		}
	}
	return out
}
