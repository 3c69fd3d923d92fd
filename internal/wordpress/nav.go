package wordpress

import (
	"fmt"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/Piqzaa/HTML-to-Twig/internal/dom"
	"github.com/Piqzaa/HTML-to-Twig/internal/nav"
	"github.com/Piqzaa/HTML-to-Twig/internal/report"
)

// NavMenuLoop is the loop type recorded for every converted menu.
const NavMenuLoop = "wp_nav_menu()"

// NavMenuPrefix starts the element label of a converted menu's loop record.
const NavMenuPrefix = "Navigation menu: "

const navMenuCall = `<?php
wp_nav_menu(array(
    'theme_location' => '%s',
    'menu_class'     => '%s',
    'container'      => false,
    'fallback_cb'    => false,
));
?>`

// EmitMenu replaces the matched element with a <nav> that calls
// wp_nav_menu() for a theme location derived from the menu name.
func (d *dialect) EmitMenu(m nav.Menu, rep *report.Report) {
	name := MenuName(m)
	location := Location(name)

	menu := dom.NewElement("nav")
	if classes := dom.Classes(m.Element); len(classes) > 0 {
		dom.SetAttr(menu, "class", strings.Join(classes, " "))
	}
	if id, _ := dom.Attr(m.Element, "id"); id != "" {
		dom.SetAttr(menu, "id", id)
	}
	menu.AppendChild(dom.NewRaw(fmt.Sprintf(navMenuCall, location, strings.Join(dom.Classes(m.List), " "))))
	dom.Replace(m.Element, menu)

	rep.AddLoop(report.LoopRecord{Element: NavMenuPrefix + name, LoopType: NavMenuLoop})
	rep.AddSuggestion(fmt.Sprintf(
		"Register menu location '%s' in functions.php:\n    register_nav_menus(array('%s' => __('%s', '%s')));",
		location, location, name, d.theme))
}

// MenuName is the human-readable menu name shown in the admin screen.
func MenuName(m nav.Menu) string {
	raw, source := nav.RawName(m.Element)
	switch source {
	case nav.FromID, nav.FromClass:
		// A Caser keeps state, so each call gets its own.
		return cases.Title(language.Und).String(strings.NewReplacer("-", " ", "_", " ").Replace(raw))
	case nav.FromAriaLabel:
		return raw
	default:
		return "Primary Menu"
	}
}

// Location turns a menu name into a theme location slug.
func Location(name string) string {
	return strings.NewReplacer(" ", "_", "-", "_").Replace(strings.ToLower(name))
}
