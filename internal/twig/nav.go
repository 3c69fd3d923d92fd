package twig

import (
	"fmt"
	"strings"

	"github.com/Piqzaa/HTML-to-Twig/internal/dom"
	"github.com/Piqzaa/HTML-to-Twig/internal/nav"
	"github.com/Piqzaa/HTML-to-Twig/internal/report"
)

const (
	labelExpr  = "{{ item.label }}"
	urlExpr    = "{{ item.url }}"
	activeExpr = "{{ item.active ? 'active' : '' }}"
)

// EmitMenu turns the first item into the body of a for-loop over
// <name>_items and removes the others.
func (d *dialect) EmitMenu(m nav.Menu, rep *report.Report) {
	name := menuName(m)
	first := m.Items[0]

	if link := dom.FindFirst(first, dom.Element("a")); link != nil {
		dom.SetAttr(link, "href", urlExpr)
		if dom.SoleString(link) != nil {
			dom.SetChildren(link, dom.NewText(labelExpr))
		} else if text := dom.FirstTextChild(link); text != nil {
			// Mixed content: only the first text run becomes the label.
			text.Data = labelExpr
		}
	}

	if classes := dom.Classes(first); len(classes) > 0 {
		dom.SetAttr(first, "class", strings.Join(classes, " ")+" "+activeExpr)
	} else {
		dom.SetAttr(first, "class", activeExpr)
	}

	dom.InsertBefore(first, dom.NewText(fmt.Sprintf("{%% for item in %s_items %%}\n", name)))
	for _, item := range m.Items[1:] {
		dom.Detach(item)
	}
	dom.InsertAfter(first, dom.NewText("\n{% endfor %}"))

	rep.AddLoop(report.LoopRecord{
		Element:  "<nav> / <ul> menu",
		ItemsVar: name + "_items",
		ItemVar:  "item",
	})
	rep.AddSuggestion(fmt.Sprintf("Review the '%s' navigation loop and adjust variable names as needed.", name))
}

// menuName derives a Twig variable stem from the matched element.
func menuName(m nav.Menu) string {
	raw, source := nav.RawName(m.Element)
	switch source {
	case nav.FromID, nav.FromClass:
		return strings.ReplaceAll(raw, "-", "_")
	case nav.FromAriaLabel:
		return strings.NewReplacer(" ", "_", "-", "_").Replace(strings.ToLower(raw))
	default:
		return "menu"
	}
}
