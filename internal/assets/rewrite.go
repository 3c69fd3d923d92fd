package assets

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"

	"github.com/Piqzaa/HTML-to-Twig/internal/dom"
	"github.com/Piqzaa/HTML-to-Twig/internal/report"
)

// Apply rewrites every asset reference in doc in place and records each
// changed reference of a kinded attribute in rep. Srcset values, inline
// style urls and @import statements are rewritten without a record.
func (c *Classifier) Apply(doc *goquery.Document, rep *report.Report) {
	doc.Find("img[src]").Each(func(_ int, s *goquery.Selection) {
		c.rewriteAttr(s, "src", report.KindImage, rep)
	})
	doc.Find("img[srcset]").Each(func(_ int, s *goquery.Selection) {
		c.rewriteSrcsetAttr(s)
	})

	doc.Find("link[href]").Each(func(_ int, s *goquery.Selection) {
		if hasRelToken(s, "stylesheet") {
			c.rewriteAttr(s, "href", report.KindCSS, rep)
		}
	})
	doc.Find("style").Each(func(_ int, s *goquery.Selection) {
		for n := s.Get(0).FirstChild; n != nil; n = n.NextSibling {
			if n.Type == html.TextNode {
				n.Data = c.RewriteImports(n.Data)
			}
		}
	})

	doc.Find("script[src]").Each(func(_ int, s *goquery.Selection) {
		c.rewriteAttr(s, "src", report.KindJS, rep)
	})

	doc.Find("link[href]").Each(func(_ int, s *goquery.Selection) {
		rel, _ := s.Attr("rel")
		if strings.Contains(strings.ToLower(rel), "icon") {
			c.rewriteAttr(s, "href", report.KindFavicon, rep)
		}
	})

	doc.Find("[style]").Each(func(_ int, s *goquery.Selection) {
		style, _ := s.Attr("style")
		if rewritten := c.RewriteStyleURLs(style); rewritten != style {
			s.SetAttr("style", rewritten)
		}
	})

	doc.Find("source[src]").Each(func(_ int, s *goquery.Selection) {
		c.rewriteAttr(s, "src", report.KindSource, rep)
	})
	doc.Find("source[srcset]").Each(func(_ int, s *goquery.Selection) {
		c.rewriteSrcsetAttr(s)
	})
	doc.Find("video[poster]").Each(func(_ int, s *goquery.Selection) {
		c.rewriteAttr(s, "poster", report.KindVideoPoster, rep)
	})
}

func (c *Classifier) rewriteAttr(s *goquery.Selection, attr, kind string, rep *report.Report) {
	original, _ := s.Attr(attr)
	converted, known := c.classify(original)
	if converted == original {
		return
	}
	s.SetAttr(attr, converted)
	rep.AddAsset(original, converted, kind)
	if !known {
		rep.AddWarning(fmt.Sprintf("No asset category for '%s'; referenced without a subdirectory", strings.TrimSpace(original)))
	}
}

func (c *Classifier) rewriteSrcsetAttr(s *goquery.Selection) {
	srcset, _ := s.Attr("srcset")
	if rewritten := c.RewriteSrcset(srcset); rewritten != srcset {
		s.SetAttr("srcset", rewritten)
	}
}

func hasRelToken(s *goquery.Selection, token string) bool {
	rel, _ := dom.Attr(s.Get(0), "rel")
	for _, t := range strings.Fields(rel) {
		if strings.EqualFold(t, token) {
			return true
		}
	}
	return false
}
