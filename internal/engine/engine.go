// Package engine runs the dialect-independent conversion pipeline: parse,
// rewrite assets, rewrite navigation, detect regions and repetition, then
// let the dialect assemble the output text.
package engine

import (
	"github.com/PuerkitoBio/goquery"

	"github.com/Piqzaa/HTML-to-Twig/internal/assets"
	"github.com/Piqzaa/HTML-to-Twig/internal/dom"
	"github.com/Piqzaa/HTML-to-Twig/internal/nav"
	"github.com/Piqzaa/HTML-to-Twig/internal/patterns"
	"github.com/Piqzaa/HTML-to-Twig/internal/regions"
	"github.com/Piqzaa/HTML-to-Twig/internal/report"
)

// Dialect is everything that differs between output template languages.
type Dialect interface {
	assets.Formatter
	nav.Emitter
	regions.Policy

	// Name selects the dialect's region table.
	Name() report.Dialect
	// Assemble renders the rewritten document as template text.
	Assemble(doc *goquery.Document) (string, error)
}

// Engine is stateless apart from its read-only tables and may be shared
// across goroutines.
type Engine struct {
	tables *patterns.Tables
}

func New(tables *patterns.Tables) *Engine {
	return &Engine{tables: tables}
}

// Default uses the embedded pattern tables.
func Default() *Engine {
	return New(patterns.Default())
}

// Run converts src with d, appending everything it does to rep.
func (e *Engine) Run(src string, d Dialect, rep *report.Report) (string, error) {
	doc, err := dom.Parse(src)
	if err != nil {
		return "", err
	}

	assets.NewClassifier(e.tables, d).Apply(doc, rep)
	nav.NewRewriter(e.tables.NavSelectors, d).Apply(doc, rep)
	regions.NewDetector(e.tables, e.tables.RegionsFor(string(d.Name())), d).Apply(doc, rep)

	return d.Assemble(doc)
}
