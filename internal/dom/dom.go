// Package dom wraps golang.org/x/net/html and goquery with the handful of
// tree operations the converters need: tolerant parsing, selector queries
// that report invalid syntax, and node surgery that keeps the tree acyclic.
package dom

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/andybalholm/cascadia"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Parse builds a document from HTML text. The parser never rejects
// malformed markup; an error means the input could not be read.
func Parse(src string) (*goquery.Document, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(src))
	if err != nil {
		return nil, fmt.Errorf("parse html: %w", err)
	}
	return doc, nil
}

// Select returns the descendants of sel matching selector, in document
// order and without duplicates. Unlike goquery's Find it surfaces invalid
// selector syntax instead of matching nothing.
func Select(sel *goquery.Selection, selector string) (*goquery.Selection, error) {
	m, err := cascadia.Compile(selector)
	if err != nil {
		return nil, fmt.Errorf("compile selector %q: %w", selector, err)
	}
	return sel.FindMatcher(m), nil
}

// IsElement reports whether n is an element named tag.
func IsElement(n *html.Node, tag string) bool {
	return n != nil && n.Type == html.ElementNode && n.Data == tag
}

// ElementChildren returns the direct element children of n.
func ElementChildren(n *html.Node) []*html.Node {
	var out []*html.Node
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode {
			out = append(out, c)
		}
	}
	return out
}

// Attr returns the value of key and whether it is present.
func Attr(n *html.Node, key string) (string, bool) {
	for _, a := range n.Attr {
		if a.Namespace == "" && a.Key == key {
			return a.Val, true
		}
	}
	return "", false
}

// SetAttr sets key, replacing an existing value in place.
func SetAttr(n *html.Node, key, val string) {
	for i, a := range n.Attr {
		if a.Namespace == "" && a.Key == key {
			n.Attr[i].Val = val
			return
		}
	}
	n.Attr = append(n.Attr, html.Attribute{Key: key, Val: val})
}

// Classes returns the class tokens of n in source order.
func Classes(n *html.Node) []string {
	v, _ := Attr(n, "class")
	return strings.Fields(v)
}

// Attached reports whether n is still reachable from a document root.
// Nodes removed by an earlier rewrite return false.
func Attached(n *html.Node) bool {
	for p := n; p != nil; p = p.Parent {
		if p.Type == html.DocumentNode {
			return true
		}
	}
	return false
}

// FindFirst returns the first node below n, in document order, for which
// match returns true.
func FindFirst(n *html.Node, match func(*html.Node) bool) *html.Node {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if match(c) {
			return c
		}
		if found := FindFirst(c, match); found != nil {
			return found
		}
	}
	return nil
}

// FindAll returns every node below n for which match returns true.
func FindAll(n *html.Node, match func(*html.Node) bool) []*html.Node {
	var out []*html.Node
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			if match(c) {
				out = append(out, c)
			}
			walk(c)
		}
	}
	walk(n)
	return out
}

// Element returns a matcher for elements named tag.
func Element(tag string) func(*html.Node) bool {
	return func(n *html.Node) bool { return IsElement(n, tag) }
}

// FindTitle returns the trimmed text of the first <title> below n. The
// boolean is false when there is no title element, so an empty title can
// be told apart from a missing one.
func FindTitle(n *html.Node) (string, bool) {
	if t := FindFirst(n, Element("title")); t != nil {
		return TextContent(t), true
	}
	return "", false
}

// FindBody returns the first <body> below n, or nil.
func FindBody(n *html.Node) *html.Node {
	return FindFirst(n, Element("body"))
}

// FindHead returns the first <head> below n, or nil.
func FindHead(n *html.Node) *html.Node {
	return FindFirst(n, Element("head"))
}

// TextContent concatenates the text below n, trimmed.
func TextContent(n *html.Node) string {
	var buf strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			buf.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return strings.TrimSpace(buf.String())
}

// SoleString follows a chain of only-children down from n and returns the
// text node at its end, or nil if any node on the way has several children.
func SoleString(n *html.Node) *html.Node {
	for {
		c := n.FirstChild
		if c == nil || c.NextSibling != nil {
			return nil
		}
		switch c.Type {
		case html.TextNode:
			return c
		case html.ElementNode:
			n = c
		default:
			return nil
		}
	}
}

// FirstTextChild returns the first direct text child of n that is not
// whitespace only.
func FirstTextChild(n *html.Node) *html.Node {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.TextNode && strings.TrimSpace(c.Data) != "" {
			return c
		}
	}
	return nil
}

// NewText returns a detached text node. The renderer escapes its data.
func NewText(data string) *html.Node {
	return &html.Node{Type: html.TextNode, Data: data}
}

// NewRaw returns a node the renderer writes verbatim, for markup that must
// not be escaped such as PHP tags.
func NewRaw(data string) *html.Node {
	return &html.Node{Type: html.RawNode, Data: data}
}

// NewElement returns a detached element with no attributes.
func NewElement(tag string) *html.Node {
	return &html.Node{Type: html.ElementNode, Data: tag, DataAtom: atom.Lookup([]byte(tag))}
}

// Detach removes n from its parent, if any.
func Detach(n *html.Node) {
	if n.Parent != nil {
		n.Parent.RemoveChild(n)
	}
}

// InsertBefore places n immediately before ref, detaching it first.
func InsertBefore(ref, n *html.Node) {
	Detach(n)
	ref.Parent.InsertBefore(n, ref)
}

// InsertAfter places n immediately after ref, detaching it first.
func InsertAfter(ref, n *html.Node) {
	Detach(n)
	ref.Parent.InsertBefore(n, ref.NextSibling)
}

// Replace swaps old for n in old's parent.
func Replace(old, n *html.Node) {
	InsertBefore(old, n)
	Detach(old)
}

// SetChildren drops all children of n and appends the given ones.
func SetChildren(n *html.Node, children ...*html.Node) {
	for c := n.FirstChild; c != nil; c = n.FirstChild {
		n.RemoveChild(c)
	}
	for _, c := range children {
		Detach(c)
		n.AppendChild(c)
	}
}

// Render serializes n and its subtree.
func Render(n *html.Node) (string, error) {
	var sb strings.Builder
	if err := html.Render(&sb, n); err != nil {
		return "", fmt.Errorf("render %s: %w", n.Data, err)
	}
	return sb.String(), nil
}

// RenderChildren serializes the children of n without n itself.
func RenderChildren(n *html.Node) (string, error) {
	var sb strings.Builder
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if err := html.Render(&sb, c); err != nil {
			return "", fmt.Errorf("render %s: %w", c.Data, err)
		}
	}
	return sb.String(), nil
}
