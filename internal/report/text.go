package report

import (
	"fmt"
	"strings"
)

var (
	heavyRule = strings.Repeat("=", 70)
	lightRule = strings.Repeat("-", 70)
)

// Text renders the report in its fixed plain-text layout. The output is a
// pure function of the report contents.
func (r *Report) Text() string {
	title := "HTML TO TWIG CONVERSION REPORT"
	if r.Dialect == WordPress {
		title = "HTML TO WORDPRESS CONVERSION REPORT"
	}

	lines := []string{
		heavyRule,
		title,
		heavyRule,
		"",
		"Input:  " + r.Input,
		"Output: " + r.Output,
	}
	switch {
	case r.Dialect == WordPress:
		lines = append(lines, "Theme:  "+r.Theme)
	case r.Layout != "":
		lines = append(lines, "Layout: "+r.Layout)
	}
	lines = append(lines, "")

	lines = section(lines, "ASSET CONVERSIONS")
	if len(r.Assets) == 0 {
		lines = append(lines, "  No asset conversions performed.", "")
	}
	for _, a := range r.Assets {
		lines = append(lines,
			fmt.Sprintf("  [%s]", strings.ToUpper(a.Type)),
			"    Before: "+a.Original,
			"    After:  "+a.Converted,
			"",
		)
	}

	if r.Dialect == WordPress {
		lines = section(lines, "TEMPLATE PARTS SUGGESTIONS")
		if len(r.Regions) == 0 {
			lines = append(lines, "  No template part suggestions.", "")
		}
		for _, b := range r.Regions {
			lines = append(lines,
				fmt.Sprintf("  get_template_part('%s')", b.Name),
				"    Reason: "+b.Reason,
				"",
			)
		}
	} else {
		lines = section(lines, "BLOCK SUGGESTIONS")
		if len(r.Regions) == 0 {
			lines = append(lines, "  No block suggestions.", "")
		}
		for _, b := range r.Regions {
			lines = append(lines,
				fmt.Sprintf("  {%% block %s %%}", b.Name),
				"    Reason: "+b.Reason,
				"",
			)
		}
	}

	lines = section(lines, "LOOP CONVERSIONS")
	if len(r.Loops) == 0 {
		lines = append(lines, "  No loop conversions performed.", "")
	}
	for _, l := range r.Loops {
		if r.Dialect == WordPress {
			lines = append(lines, "  Element: "+l.Element, "    Type: "+l.LoopType, "")
			continue
		}
		lines = append(lines,
			"  Element: "+l.Element,
			fmt.Sprintf("    {%% for %s in %s %%}", l.ItemVar, l.ItemsVar),
			"",
		)
	}

	lines = section(lines, "MANUAL REVIEW SUGGESTIONS")
	if len(r.Suggestions) == 0 {
		lines = append(lines, "  No manual review needed.")
	}
	for i, s := range r.Suggestions {
		lines = append(lines, fmt.Sprintf("  %d. %s", i+1, s))
	}
	lines = append(lines, "")

	if len(r.Warnings) > 0 {
		lines = section(lines, "WARNINGS")
		for _, w := range r.Warnings {
			lines = append(lines, "  ⚠ "+w)
		}
		lines = append(lines, "")
	}

	lines = append(lines, heavyRule, "END OF REPORT", heavyRule)
	return strings.Join(lines, "\n")
}

func section(lines []string, name string) []string {
	return append(lines, lightRule, name, lightRule)
}
