// Package assets rewrites local asset references into a template dialect's
// asset syntax.
//
// A reference is classified by its directory first (images/, css/, js/,
// fonts/ and their common spellings, optionally below assets/) and by its
// extension second. Absolute URLs, data URIs and references that already
// carry dialect syntax are left alone, which makes every rewrite idempotent.
package assets

import (
	"path"
	"regexp"
	"strings"
	"unicode"

	"github.com/Piqzaa/HTML-to-Twig/internal/patterns"
)

// Formatter produces a dialect's asset syntax.
type Formatter interface {
	// AssetExpr wraps a path relative to the asset root, such as
	// "images/logo.png", in the dialect's asset call.
	AssetExpr(rel string) string
	// CSSExpr turns an AssetExpr result into the form embedded in url('...').
	CSSExpr(expr string) string
	// Rewritten reports whether s already contains dialect syntax.
	Rewritten(s string) bool
}

var (
	cssURL    = regexp.MustCompile(`(?i)url\(["']?([^"')\s]+)["']?\)`)
	cssImport = regexp.MustCompile(`(?i)@import\s+url\(["']?([^"')\s]+)["']?\)`)
	dotDirs   = regexp.MustCompile(`^(?:\.\.?/)+`)
)

var absolutePrefixes = []string{"http://", "https://", "//", "data:"}

// Classifier maps raw references to dialect expressions. It holds no
// mutable state.
type Classifier struct {
	tables *patterns.Tables
	format Formatter
}

func NewClassifier(tables *patterns.Tables, format Formatter) *Classifier {
	return &Classifier{tables: tables, format: format}
}

// Rewrite returns the dialect expression for raw, or raw itself when the
// reference must not be touched.
func (c *Classifier) Rewrite(raw string) string {
	out, _ := c.classify(raw)
	return out
}

// classify also reports whether the reference fell into a known category.
// Unchanged references count as known.
func (c *Classifier) classify(raw string) (string, bool) {
	if c.skip(raw) {
		return raw, true
	}
	clean := strings.TrimSpace(raw)

	for _, cat := range c.tables.Categories {
		if m := cat.Pattern.FindStringSubmatch(clean); m != nil {
			return c.format.AssetExpr(cat.Name + "/" + m[1]), true
		}
	}

	clean = dotDirs.ReplaceAllString(clean, "")
	if cat, ok := c.tables.CategoryForExt(path.Ext(clean)); ok {
		return c.format.AssetExpr(cat + "/" + clean), true
	}
	return c.format.AssetExpr(clean), false
}

func (c *Classifier) skip(raw string) bool {
	if strings.TrimSpace(raw) == "" {
		return true
	}
	for _, p := range absolutePrefixes {
		if strings.HasPrefix(raw, p) {
			return true
		}
	}
	return c.format.Rewritten(raw)
}

// RewriteSrcset rewrites every candidate URL of a srcset value and keeps
// each width or density descriptor as written.
func (c *Classifier) RewriteSrcset(srcset string) string {
	if c.format.Rewritten(srcset) {
		return srcset
	}
	var out []string
	for _, cand := range srcsetCandidates(srcset) {
		u := c.Rewrite(cand.url)
		if cand.descriptor != "" {
			u += " " + cand.descriptor
		}
		out = append(out, u)
	}
	return strings.Join(out, ", ")
}

type srcsetCandidate struct {
	url        string
	descriptor string
}

// srcsetCandidates splits a srcset value into candidates. A URL runs to the
// next whitespace, so data URIs keep their commas.
func srcsetCandidates(srcset string) []srcsetCandidate {
	var out []srcsetCandidate
	s := srcset
	for {
		s = strings.TrimLeftFunc(s, func(r rune) bool { return r == ',' || unicode.IsSpace(r) })
		if s == "" {
			return out
		}
		end := strings.IndexFunc(s, unicode.IsSpace)
		if end < 0 {
			end = len(s)
		}
		url := s[:end]
		s = s[end:]
		if strings.HasSuffix(url, ",") {
			out = append(out, srcsetCandidate{url: strings.TrimRight(url, ",")})
			continue
		}
		desc := s
		if i := strings.IndexByte(s, ','); i >= 0 {
			desc, s = s[:i], s[i+1:]
		} else {
			s = ""
		}
		out = append(out, srcsetCandidate{url: url, descriptor: strings.Join(strings.Fields(desc), " ")})
	}
}

// RewriteStyleURLs rewrites url(...) references in an inline style value.
func (c *Classifier) RewriteStyleURLs(css string) string {
	return c.replaceURLs(cssURL, css, "url('%s')")
}

// RewriteImports rewrites @import url(...) statements in a style sheet.
func (c *Classifier) RewriteImports(css string) string {
	return c.replaceURLs(cssImport, css, "@import url('%s')")
}

func (c *Classifier) replaceURLs(re *regexp.Regexp, css, wrap string) string {
	return re.ReplaceAllStringFunc(css, func(match string) string {
		raw := re.FindStringSubmatch(match)[1]
		converted := c.Rewrite(raw)
		if converted == raw {
			return match
		}
		return strings.Replace(wrap, "%s", c.format.CSSExpr(converted), 1)
	})
}
