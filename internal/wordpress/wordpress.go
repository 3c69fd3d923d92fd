// Package wordpress converts static HTML into a WordPress page template:
// theme-relative asset URLs, wp_nav_menu() calls in place of hand-written
// menus and get_header()/get_footer() around the page body.
package wordpress

import (
	"strings"

	"github.com/Piqzaa/HTML-to-Twig/internal/engine"
	"github.com/Piqzaa/HTML-to-Twig/internal/report"
)

// DefaultTheme is the text domain used when no theme name is given.
const DefaultTheme = "mytheme"

type Options struct {
	ThemeName string
	// Input and Output only label the report.
	Input  string
	Output string
}

func Convert(src string, opts Options) (string, *report.Report, error) {
	return ConvertWith(engine.Default(), src, opts)
}

func ConvertWith(e *engine.Engine, src string, opts Options) (string, *report.Report, error) {
	theme := opts.ThemeName
	if theme == "" {
		theme = DefaultTheme
	}

	rep := report.New(report.WordPress)
	rep.Input = opts.Input
	rep.Output = opts.Output
	rep.Theme = theme

	out, err := e.Run(src, &dialect{theme: theme}, rep)
	if err != nil {
		return "", rep, err
	}
	return out, rep, nil
}

type dialect struct {
	theme string
}

func (d *dialect) Name() report.Dialect { return report.WordPress }

func (d *dialect) AssetExpr(rel string) string {
	return "<?php echo esc_url(get_template_directory_uri() . '/" + rel + "'); ?>"
}

// CSSExpr keeps the whole PHP tag: PHP runs before the browser parses CSS.
func (d *dialect) CSSExpr(expr string) string { return expr }

func (d *dialect) Rewritten(s string) bool {
	return strings.Contains(s, "<?php")
}
