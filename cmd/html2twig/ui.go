package main

import (
	"fmt"
	"io"
	"os"
	"strings"
	"unicode/utf8"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"

	"github.com/Piqzaa/HTML-to-Twig/internal/report"
)

var (
	colorAccent  = lipgloss.Color("#2CD7C7")
	colorWarning = lipgloss.Color("#F4D03F")
	colorError   = lipgloss.Color("#E74C3C")
	colorMuted   = lipgloss.Color("#6C7A89")
)

type styles struct {
	Title   lipgloss.Style
	Bold    lipgloss.Style
	Muted   lipgloss.Style
	Success lipgloss.Style
	Warning lipgloss.Style
	Error   lipgloss.Style
	Header  lipgloss.Style
}

func colorStyles() styles {
	return styles{
		Title:   lipgloss.NewStyle().Bold(true).Foreground(colorAccent),
		Bold:    lipgloss.NewStyle().Bold(true),
		Muted:   lipgloss.NewStyle().Foreground(colorMuted),
		Success: lipgloss.NewStyle().Foreground(colorAccent),
		Warning: lipgloss.NewStyle().Bold(true).Foreground(colorWarning),
		Error:   lipgloss.NewStyle().Bold(true).Foreground(colorError),
		Header:  lipgloss.NewStyle().Bold(true).Foreground(colorAccent),
	}
}

func plainStyles() styles {
	s := lipgloss.NewStyle()
	return styles{Title: s, Bold: s, Muted: s, Success: s, Warning: s, Error: s, Header: s}
}

// ui writes human-oriented output. Colors are used only on a terminal
// and when NO_COLOR is unset.
type ui struct {
	out   io.Writer
	style styles
}

func newUI(out io.Writer) *ui {
	u := &ui{out: out, style: plainStyles()}
	if f, ok := out.(*os.File); ok && os.Getenv("NO_COLOR") == "" &&
		(isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())) {
		u.style = colorStyles()
	}
	return u
}

func (u *ui) printf(format string, args ...any) {
	fmt.Fprintf(u.out, format, args...)
}

func (u *ui) field(name, value string) {
	u.printf("%s %s\n", u.style.Bold.Render(name+":"), value)
}

func (u *ui) success(msg string) {
	u.printf("%s %s\n", u.style.Success.Render("✓"), msg)
}

func (u *ui) failure(msg string) {
	u.printf("%s %s\n", u.style.Error.Render("✗"), msg)
}

// truncate shortens s to n runes, marking the cut with "...".
func truncate(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	return string([]rune(s)[:n]) + "..."
}

// table renders rows under headers with left-aligned, padded columns.
func (u *ui) table(title string, headers []string, rows [][]string) {
	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = utf8.RuneCountInString(h)
	}
	for _, row := range rows {
		for i, cell := range row {
			widths[i] = max(widths[i], utf8.RuneCountInString(cell))
		}
	}
	pad := func(s string, w int) string {
		return s + strings.Repeat(" ", w-utf8.RuneCountInString(s))
	}

	u.printf("%s\n", u.style.Title.Render(title))
	cells := make([]string, len(headers))
	for i, h := range headers {
		cells[i] = u.style.Header.Render(pad(h, widths[i]))
	}
	u.printf("  %s\n", strings.Join(cells, "  "))
	for _, row := range rows {
		for i, cell := range row {
			cells[i] = pad(cell, widths[i])
		}
		cells[1] = u.style.Muted.Render(cells[1])
		cells[2] = u.style.Success.Render(cells[2])
		u.printf("  %s\n", strings.Join(cells, "  "))
	}
}

// summary prints what a conversion did. Without verbose, long asset and
// suggestion lists are cut short.
func (u *ui) summary(rep *report.Report, verbose bool) {
	wordpress := rep.Dialect == report.WordPress

	if len(rep.Assets) > 0 {
		assets := rep.Assets
		if !verbose && len(assets) > 10 {
			assets = assets[:10]
		}
		rows := make([][]string, 0, len(assets)+1)
		for _, a := range assets {
			rows = append(rows, []string{strings.ToUpper(a.Type), truncate(a.Original, 40), truncate(a.Converted, 50)})
		}
		if !verbose && len(rep.Assets) > 10 {
			rows = append(rows, []string{"...", fmt.Sprintf("(%d more)", len(rep.Assets)-10), "..."})
		}
		u.table("Asset Conversions", []string{"Type", "Original", "Converted"}, rows)
		u.printf("\n")
	}

	if len(rep.Regions) > 0 {
		if wordpress {
			u.printf("%s\n", u.style.Bold.Render("Template Parts Detected:"))
			for _, r := range rep.Regions {
				u.printf("  • %s: %s\n", r.Name, r.Reason)
			}
		} else {
			u.printf("%s\n", u.style.Bold.Render("Block Suggestions:"))
			for _, r := range rep.Regions {
				u.printf("  • {%% block %s %%}: %s\n", r.Name, r.Reason)
			}
		}
		u.printf("\n")
	}

	if len(rep.Loops) > 0 {
		u.printf("%s\n", u.style.Bold.Render("Loop Conversions:"))
		for _, l := range rep.Loops {
			if wordpress {
				u.printf("  • %s → %s\n", l.Element, l.LoopType)
			} else {
				u.printf("  • %s → {%% for %s in %s %%}\n", l.Element, l.ItemVar, l.ItemsVar)
			}
		}
		u.printf("\n")
	}

	if len(rep.Suggestions) > 0 {
		u.printf("%s\n", u.style.Warning.Render("Manual Review Suggestions:"))
		suggestions := rep.Suggestions
		if !verbose && len(suggestions) > 5 {
			suggestions = suggestions[:5]
		}
		for i, s := range suggestions {
			if !verbose {
				s = truncate(s, 100)
			}
			u.printf("  %d. %s\n", i+1, s)
		}
		if !verbose && len(rep.Suggestions) > 5 {
			u.printf("  ... and %d more (use --verbose to see all)\n", len(rep.Suggestions)-5)
		}
		u.printf("\n")
	}

	if len(rep.Warnings) > 0 {
		u.printf("%s\n", u.style.Error.Render("Warnings:"))
		for _, w := range rep.Warnings {
			u.printf("  ⚠ %s\n", w)
		}
		u.printf("\n")
	}
}
