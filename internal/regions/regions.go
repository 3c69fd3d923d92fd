// Package regions reports layout regions and repeated sibling structures.
// It only reads the tree; what gets recorded is up to the dialect Policy.
package regions

import (
	"log/slog"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"

	"github.com/Piqzaa/HTML-to-Twig/internal/dom"
	"github.com/Piqzaa/HTML-to-Twig/internal/patterns"
	"github.com/Piqzaa/HTML-to-Twig/internal/report"
	"github.com/Piqzaa/HTML-to-Twig/internal/structure"
)

// Repetition is a container whose element children mostly share one shape.
type Repetition struct {
	// Name is the container's id, else its first class token, else "container".
	Name     string
	Children []*html.Node
	// Similar counts children after the first that match the first.
	Similar int
}

// Count is the number of similar children including the first.
func (r Repetition) Count() int { return r.Similar + 1 }

// Policy decides how findings are recorded.
type Policy interface {
	RegionFound(name, selector string, rep *report.Report)
	RepetitionFound(r Repetition, rep *report.Report)
}

type Detector struct {
	tables  *patterns.Tables
	regions []patterns.Region
	policy  Policy
}

func NewDetector(tables *patterns.Tables, regions []patterns.Region, policy Policy) *Detector {
	return &Detector{tables: tables, regions: regions, policy: policy}
}

// Apply runs region detection, then repetition detection.
func (d *Detector) Apply(doc *goquery.Document, rep *report.Report) {
	d.detectRegions(doc, rep)
	d.detectRepetition(doc.Get(0), rep)
}

// detectRegions records at most one entry per region: the first selector
// with any match wins. Selectors that fail to compile are skipped.
func (d *Detector) detectRegions(doc *goquery.Document, rep *report.Report) {
	for _, region := range d.regions {
		for _, selector := range region.Selectors {
			matches, err := dom.Select(doc.Selection, selector)
			if err != nil {
				slog.Debug("skipping region selector", "region", region.Name, "selector", selector, "error", err)
				continue
			}
			if matches.Length() > 0 {
				d.policy.RegionFound(region.Name, selector, rep)
				break
			}
		}
	}
}

func (d *Detector) detectRepetition(root *html.Node, rep *report.Report) {
	containers := dom.FindAll(root, func(n *html.Node) bool {
		return n.Type == html.ElementNode && d.tables.IsContainer(n.Data)
	})
	for _, c := range containers {
		if r, ok := d.repetition(c); ok {
			d.policy.RepetitionFound(r, rep)
		}
	}
}

func (d *Detector) repetition(c *html.Node) (Repetition, bool) {
	children := dom.ElementChildren(c)
	if len(children) < d.tables.MinChildren {
		return Repetition{}, false
	}
	similar := structure.CountSimilar(children)
	if similar < d.tables.MinSimilar {
		return Repetition{}, false
	}
	return Repetition{
		Name:     containerName(c),
		Children: children,
		Similar:  similar,
	}, true
}

func containerName(n *html.Node) string {
	if id, _ := dom.Attr(n, "id"); id != "" {
		return id
	}
	if classes := dom.Classes(n); len(classes) > 0 {
		return classes[0]
	}
	return "container"
}
