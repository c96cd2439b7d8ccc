package main

import (
	"fmt"
	"sort"
	"strings"

	pr "github.com/benoitkugler/webstyle/css/properties"
	"github.com/benoitkugler/webstyle/html/tree"
	tp "github.com/xlab/treeprint"
	"golang.org/x/net/html"
)

var defaultProperties = []string{"display", "color", "font-size"}

// parseProperties resolves the property names given on the command line.
func parseProperties(names []string) ([]pr.KnownProp, error) {
	if len(names) == 0 {
		names = defaultProperties
	}
	out := make([]pr.KnownProp, 0, len(names))
	for _, name := range names {
		p, ok := pr.LookupByName(strings.ToLower(strings.TrimSpace(name)))
		if !ok {
			return nil, fmt.Errorf("unknown property %q", name)
		}
		if p.IsShorthand() {
			out = append(out, p.Longhands()...)
		} else {
			out = append(out, p)
		}
	}
	return out, nil
}

func styleLabel(e *html.Node, style *tree.CalculatedStyle, props []pr.KnownProp) string {
	var decls []string
	for _, p := range props {
		decls = append(decls, fmt.Sprintf("%s: %s", p, style.ValueOf(p)))
	}
	return fmt.Sprintf("%s {%s}", tree.Describe(e), strings.Join(decls, "; "))
}

// renderTree prints the computed values of `props` for each element
// generating a box. Pseudo-elements with rules are shown as children.
func renderTree(d *tree.Document, props []pr.KnownProp) (string, error) {
	root := tp.New()
	if err := addElement(root, d, d.Root(), props); err != nil {
		return "", err
	}
	return root.String(), nil
}

func addElement(parent tp.Tree, d *tree.Document, e *html.Node, props []pr.KnownProp) error {
	style, err := d.GetCalculatedStyle(e)
	if err != nil {
		return err
	}
	if style.IsDisplayNone() {
		return nil
	}
	branch := parent.AddBranch(styleLabel(e, style, props))
	for _, name := range [...]string{"before", "after"} {
		pseudo, err := d.PseudoElementStyle(e, name)
		if err != nil {
			return err
		}
		if pseudo != nil {
			branch.AddNode(fmt.Sprintf("::%s {content: %s}", name, pseudo.ValueOf(pr.PContent)))
		}
	}
	for c := e.FirstChild; c != nil; c = c.NextSibling {
		if c.Type != html.ElementNode {
			continue
		}
		if err := addElement(branch, d, c, props); err != nil {
			return err
		}
	}
	return nil
}

// renderPages prints the style of the first right page,
// and of the named pages used by the document.
func renderPages(d *tree.Document, names []string) string {
	out := tp.New()
	pages := []tree.Page{{Side: "right", First: true}}
	for _, name := range names {
		pages = append(pages, tree.Page{Name: name, Side: "right"})
	}
	for _, page := range pages {
		info := d.PageStyle(page)
		w, h := info.Size()
		margins := info.Style.MarginRect(w)
		label := fmt.Sprintf("@page %s {size: %gpx %gpx; margin: %gpx %gpx %gpx %gpx}", pageLabel(page),
			w, h, margins.Top, margins.Right, margins.Bottom, margins.Left)
		branch := out.AddBranch(label)
		boxes := make([]string, 0, len(info.MarginBoxes))
		for name := range info.MarginBoxes {
			boxes = append(boxes, name)
		}
		sort.Strings(boxes)
		for _, name := range boxes {
			branch.AddNode(fmt.Sprintf("@%s {content: %s}", name, info.MarginBox(name).ValueOf(pr.PContent)))
		}
	}
	return out.String()
}

func pageLabel(page tree.Page) string {
	label := page.Name
	if page.First {
		label += ":first"
	}
	if page.Side != "" {
		label += ":" + page.Side
	}
	return label
}

// pageNames collects the named pages used by the elements.
func pageNames(d *tree.Document) ([]string, error) {
	var (
		out  []string
		seen = map[string]bool{}
		walk func(e *html.Node) error
	)
	walk = func(e *html.Node) error {
		style, err := d.GetCalculatedStyle(e)
		if err != nil {
			return err
		}
		if name := style.PageName(); name != "" && !seen[name] {
			seen[name] = true
			out = append(out, name)
		}
		for c := e.FirstChild; c != nil; c = c.NextSibling {
			if c.Type == html.ElementNode {
				if err := walk(c); err != nil {
					return err
				}
			}
		}
		return nil
	}
	return out, walk(d.Root())
}
