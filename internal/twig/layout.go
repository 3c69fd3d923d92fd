package twig

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"

	"github.com/Piqzaa/HTML-to-Twig/internal/assemble"
	"github.com/Piqzaa/HTML-to-Twig/internal/dom"
)

var mainContentName = regexp.MustCompile(`(?i)content|main`)

// Assemble renders the document, restores Twig syntax and, when a layout is
// set, rebuilds the page as blocks extending that layout.
func (d *dialect) Assemble(doc *goquery.Document) (string, error) {
	out, err := dom.Render(doc.Get(0))
	if err != nil {
		return "", err
	}
	out = assemble.IsolateTwigTags(assemble.RestoreTwig(out))
	if d.layout == "" {
		return out, nil
	}
	return d.wrap(out)
}

// wrap emits, in order, the extends tag and the title, stylesheets, body
// and javascripts blocks. Blocks with nothing to hold are left out, except
// body which is present whenever the page has one.
func (d *dialect) wrap(page string) (string, error) {
	doc, err := dom.Parse(page)
	if err != nil {
		return "", err
	}
	root := doc.Get(0)

	lines := []string{fmt.Sprintf("{%% extends '%s.html.twig' %%}\n", d.layout)}

	if title, ok := dom.FindTitle(root); ok {
		lines = append(lines, fmt.Sprintf("{%% block title %%}%s{%% endblock %%}\n", title))
	}

	if head := dom.FindHead(root); head != nil {
		var styles []string
		for _, c := range dom.ElementChildren(head) {
			if !isStylesheet(c) {
				continue
			}
			s, err := renderFragment(c)
			if err != nil {
				return "", err
			}
			styles = append(styles, "    "+s)
		}
		if len(styles) > 0 {
			lines = append(lines, "\n{% block stylesheets %}", "    {{ parent() }}")
			lines = append(lines, styles...)
			lines = append(lines, "{% endblock %}\n")
		}
	}

	body := dom.FindBody(root)
	if body == nil {
		return strings.Join(lines, "\n"), nil
	}

	var content string
	if main := mainContent(body); main != nil {
		content, err = renderFragment(main)
	} else {
		content, err = dom.RenderChildren(body)
		content = assemble.RestoreTwig(content)
	}
	if err != nil {
		return "", err
	}
	lines = append(lines, "\n{% block body %}", content, "{% endblock %}\n")

	if scripts := dom.FindAll(body, dom.Element("script")); len(scripts) > 0 {
		lines = append(lines, "\n{% block javascripts %}", "    {{ parent() }}")
		for _, s := range scripts {
			r, err := renderFragment(s)
			if err != nil {
				return "", err
			}
			lines = append(lines, "    "+r)
		}
		lines = append(lines, "{% endblock %}\n")
	}

	return strings.Join(lines, "\n"), nil
}

// isStylesheet matches <style> and links whose rel is exactly "stylesheet".
func isStylesheet(n *html.Node) bool {
	switch n.Data {
	case "style":
		return true
	case "link":
		rel, _ := dom.Attr(n, "rel")
		return strings.Join(strings.Fields(rel), " ") == "stylesheet"
	}
	return false
}

// mainContent returns the first main or article element, else the first
// element whose class or id mentions content or main.
func mainContent(body *html.Node) *html.Node {
	if n := dom.FindFirst(body, func(n *html.Node) bool {
		return dom.IsElement(n, "main") || dom.IsElement(n, "article")
	}); n != nil {
		return n
	}
	return dom.FindFirst(body, func(n *html.Node) bool {
		if n.Type != html.ElementNode {
			return false
		}
		for _, c := range dom.Classes(n) {
			if mainContentName.MatchString(c) {
				return true
			}
		}
		id, _ := dom.Attr(n, "id")
		return id != "" && mainContentName.MatchString(id)
	})
}

func renderFragment(n *html.Node) (string, error) {
	s, err := dom.Render(n)
	if err != nil {
		return "", err
	}
	return assemble.RestoreTwig(s), nil
}
