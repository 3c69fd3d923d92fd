// Package nav finds repeated navigation menus and hands each one to a
// dialect emitter, which turns it into a loop or a menu call.
package nav

import (
	"log/slog"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"

	"github.com/Piqzaa/HTML-to-Twig/internal/dom"
	"github.com/Piqzaa/HTML-to-Twig/internal/report"
	"github.com/Piqzaa/HTML-to-Twig/internal/structure"
)

// Menu is a navigation element whose items share one shape.
type Menu struct {
	// Element is the node the selector matched.
	Element *html.Node
	// List is Element itself when it is a ul, else its first ul descendant.
	List *html.Node
	// Items are all li descendants of Element in document order.
	Items []*html.Node
}

// Emitter rewrites one menu in place and records what it did.
type Emitter interface {
	EmitMenu(m Menu, rep *report.Report)
}

// Rewriter runs the navigation selectors over a document.
type Rewriter struct {
	selectors []string
	emit      Emitter
}

func NewRewriter(selectors []string, emit Emitter) *Rewriter {
	return &Rewriter{selectors: selectors, emit: emit}
}

// Apply queries each selector against the current tree, so a menu rewritten
// by an earlier selector is seen in its rewritten form by later ones.
// Overlapping matches are not merged. Matches detached by an earlier
// rewrite are skipped.
func (r *Rewriter) Apply(doc *goquery.Document, rep *report.Report) {
	for _, selector := range r.selectors {
		matches, err := dom.Select(doc.Selection, selector)
		if err != nil {
			slog.Debug("skipping navigation selector", "selector", selector, "error", err)
			continue
		}
		for _, n := range matches.Nodes {
			if !dom.Attached(n) {
				continue
			}
			if m, ok := detect(n); ok {
				r.emit.EmitMenu(m, rep)
			}
		}
	}
}

func detect(n *html.Node) (Menu, bool) {
	items := dom.FindAll(n, dom.Element("li"))
	if len(items) < 2 {
		return Menu{}, false
	}
	if structure.CountSimilar(items) < len(items)/2 {
		return Menu{}, false
	}
	list := n
	if n.Data != "ul" {
		list = dom.FindFirst(n, dom.Element("ul"))
	}
	if list == nil {
		return Menu{}, false
	}
	return Menu{Element: n, List: list, Items: items}, true
}

// NameSource says which attribute a menu name came from.
type NameSource int

const (
	FromDefault NameSource = iota
	FromID
	FromClass
	FromAriaLabel
)

// RawName returns the un-normalised menu name: the id, else the first class
// token mentioning nav or menu, else the aria-label. Dialects normalise it.
func RawName(n *html.Node) (string, NameSource) {
	if id, _ := dom.Attr(n, "id"); id != "" {
		return id, FromID
	}
	for _, cls := range dom.Classes(n) {
		lower := strings.ToLower(cls)
		if strings.Contains(lower, "nav") || strings.Contains(lower, "menu") {
			return cls, FromClass
		}
	}
	if label, _ := dom.Attr(n, "aria-label"); label != "" {
		return label, FromAriaLabel
	}
	return "", FromDefault
}
