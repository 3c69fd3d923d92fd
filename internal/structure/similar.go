// Package structure compares elements by shape.
//
// Two elements are similar when they share a tag name and the ordered list
// of their direct element children's tag names. The comparison is one level
// deep on purpose: it is a cheap heuristic for "same template, different
// data", and it ignores text, attributes and anything further down.
package structure

import (
	"slices"

	"golang.org/x/net/html"

	"github.com/Piqzaa/HTML-to-Twig/internal/dom"
)

// Similar reports whether a and b have the same shallow shape.
func Similar(a, b *html.Node) bool {
	if a.Data != b.Data {
		return false
	}
	return slices.Equal(childTags(a), childTags(b))
}

// CountSimilar returns how many of nodes[1:] are similar to nodes[0].
func CountSimilar(nodes []*html.Node) int {
	if len(nodes) < 2 {
		return 0
	}
	first := nodes[0]
	n := 0
	for _, other := range nodes[1:] {
		if Similar(first, other) {
			n++
		}
	}
	return n
}

func childTags(n *html.Node) []string {
	kids := dom.ElementChildren(n)
	tags := make([]string, len(kids))
	for i, k := range kids {
		tags[i] = k.Data
	}
	return tags
}
