// Package twig converts static HTML into a Twig template using Symfony
// conventions: asset() calls, for-loops over menu items and block
// inheritance from a base layout.
package twig

import (
	"strings"

	"github.com/Piqzaa/HTML-to-Twig/internal/engine"
	"github.com/Piqzaa/HTML-to-Twig/internal/report"
)

// Options configures one conversion.
type Options struct {
	// Layout, when set, wraps the output in {% extends '<Layout>.html.twig' %}
	// and blocks.
	Layout string
	// Input and Output only label the report.
	Input  string
	Output string
}

// Convert rewrites src and returns the template with its report.
func Convert(src string, opts Options) (string, *report.Report, error) {
	return ConvertWith(engine.Default(), src, opts)
}

// ConvertWith runs the conversion on a specific engine.
func ConvertWith(e *engine.Engine, src string, opts Options) (string, *report.Report, error) {
	rep := report.New(report.Twig)
	rep.Input = opts.Input
	rep.Output = opts.Output
	rep.Layout = opts.Layout

	out, err := e.Run(src, &dialect{layout: opts.Layout}, rep)
	if err != nil {
		return "", rep, err
	}
	return out, rep, nil
}

type dialect struct {
	layout string
}

func (d *dialect) Name() report.Dialect { return report.Twig }

func (d *dialect) AssetExpr(rel string) string {
	return "{{ asset('" + rel + "') }}"
}

// CSSExpr keeps only the inner expression, without {{ }}.
func (d *dialect) CSSExpr(expr string) string {
	expr = strings.TrimPrefix(expr, "{{ ")
	return strings.TrimSuffix(expr, " }}")
}

func (d *dialect) Rewritten(s string) bool {
	return strings.Contains(s, "{{") || strings.Contains(s, "{%")
}
