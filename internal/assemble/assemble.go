// Package assemble holds the text passes shared by the dialect output
// stages: undoing serializer escapes inside template syntax and extracting
// or tidying parts of the rendered document.
package assemble

import (
	"html"
	"regexp"
	"strings"
)

var (
	twigSyntax   = regexp.MustCompile(`(?s)\{\{.*?\}\}|\{%.*?%\}`)
	twigTag      = regexp.MustCompile(`(\{%[^%]+%\})`)
	blankRuns    = regexp.MustCompile(`\n{3,}`)
	escapedPHP   = regexp.MustCompile(`(?s)&lt;\?php.*?\?&gt;`)
	emptyPHP     = regexp.MustCompile(`<\?php\s*\?>`)
	bodyContents = regexp.MustCompile(`(?is)<body[^>]*>(.*?)</body>`)
)

// The serializer always double-quotes attributes, so a numeric apostrophe
// entity can be written back as a literal quote anywhere in the output.
var twigDelims = strings.NewReplacer(
	"&#39;", "'",
	"&lt;%", "{%",
	"%&gt;", "%}",
	"&lt;{", "{{",
	"}&gt;", "}}",
)

var phpDelims = strings.NewReplacer(
	"&#39;", "'",
	"&lt;?php", "<?php",
	"?&gt;", "?>",
)

// RestoreTwig undoes HTML escaping the serializer applied to Twig syntax,
// both on the delimiters themselves and on quotes inside {{ }} and {% %}.
func RestoreTwig(s string) string {
	s = twigDelims.Replace(s)
	return twigSyntax.ReplaceAllStringFunc(s, html.UnescapeString)
}

// IsolateTwigTags puts every {% %} tag on its own line and collapses the
// blank runs that leaves behind.
func IsolateTwigTags(s string) string {
	s = twigTag.ReplaceAllString(s, "\n${1}\n")
	return blankRuns.ReplaceAllString(s, "\n\n")
}

// RestorePHP undoes HTML escaping of PHP tags, drops empty <?php ?> pairs
// and unescapes quotes inside each tag.
func RestorePHP(s string) string {
	s = escapedPHP.ReplaceAllStringFunc(s, html.UnescapeString)
	s = emptyPHP.ReplaceAllString(s, "")
	return phpDelims.Replace(s)
}

// BodyContents returns the markup between <body> and </body>, or s itself
// when there is no body element.
func BodyContents(s string) string {
	if m := bodyContents.FindStringSubmatch(s); m != nil {
		return m[1]
	}
	return s
}
