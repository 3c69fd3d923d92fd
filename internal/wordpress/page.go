package wordpress

import (
	"fmt"

	"github.com/PuerkitoBio/goquery"

	"github.com/Piqzaa/HTML-to-Twig/internal/assemble"
	"github.com/Piqzaa/HTML-to-Twig/internal/dom"
)

const pageHeader = `<?php
/**
 * Template Name: Custom Page Template
 *
 * @package %s
 */

get_header();
?>

`

const pageFooter = `

<?php
get_sidebar();
get_footer();
`

// Assemble keeps only the body markup and wraps it in the theme's header,
// sidebar and footer calls.
func (d *dialect) Assemble(doc *goquery.Document) (string, error) {
	out, err := dom.Render(doc.Get(0))
	if err != nil {
		return "", err
	}
	body := assemble.RestorePHP(assemble.BodyContents(out))
	return fmt.Sprintf(pageHeader, d.theme) + body + pageFooter, nil
}
