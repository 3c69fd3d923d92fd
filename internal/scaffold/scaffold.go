// Package scaffold writes starter template trees: a Symfony templates/
// directory with a base layout, or a minimal WordPress theme whose
// functions.php registers the menus found by earlier conversions.
package scaffold

import (
	"bytes"
	"embed"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"
	"text/template"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/Piqzaa/HTML-to-Twig/internal/report"
	"github.com/Piqzaa/HTML-to-Twig/internal/wordpress"
)

//go:embed templates
var templates embed.FS

// Twig and PHP both claim {{ }}, so theme templates use [[ ]].
var themeTemplates = template.Must(
	template.New("wordpress").Delims("[[", "]]").ParseFS(templates,
		"templates/wordpress/*.tmpl",
		"templates/wordpress/template-parts/*.tmpl",
	),
)

// AssetDirs are created empty inside a new theme.
var AssetDirs = []string{"css", "js", "images", "fonts", "template-parts"}

// Symfony writes templates/base.html.twig and templates/page/index.html.twig
// under dir and returns the paths written. Existing files are overwritten.
func Symfony(dir string) ([]string, error) {
	root := "templates/symfony"
	var written []string
	err := fs.WalkDir(templates, root, func(p string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return err
		}
		data, err := templates.ReadFile(p)
		if err != nil {
			return err
		}
		dst := filepath.Join(dir, "templates", filepath.FromSlash(strings.TrimPrefix(p, root+"/")))
		if err := writeFile(dst, data); err != nil {
			return err
		}
		written = append(written, dst)
		return nil
	})
	if err != nil {
		return written, fmt.Errorf("scaffold symfony: %w", err)
	}
	return written, nil
}

type themeData struct {
	Theme string
	Title string
	Slug  string
	Menus []menuEntry
}

type menuEntry struct {
	Location string
	Name     string
}

func newThemeData(theme string, rep *report.Report) themeData {
	return themeData{
		Theme: theme,
		Title: cases.Title(language.Und).String(strings.ReplaceAll(theme, "_", " ")),
		Slug:  strings.ReplaceAll(strings.ToLower(theme), " ", "_"),
		Menus: menus(rep),
	}
}

// menus lists one registration per distinct menu location converted into a
// wp_nav_menu() call, or the primary location when there are none.
func menus(rep *report.Report) []menuEntry {
	var out []menuEntry
	seen := make(map[string]bool)
	if rep != nil {
		for _, l := range rep.Loops {
			if l.LoopType != wordpress.NavMenuLoop {
				continue
			}
			name := strings.TrimPrefix(l.Element, wordpress.NavMenuPrefix)
			loc := wordpress.Location(name)
			if seen[loc] {
				continue
			}
			seen[loc] = true
			out = append(out, menuEntry{Location: loc, Name: name})
		}
	}
	if len(out) == 0 {
		out = append(out, menuEntry{Location: "primary", Name: "Primary Menu"})
	}
	return out
}

// FunctionsPHP renders a functions.php for theme. Menu locations come from
// the wp_nav_menu() loops in rep, which may be nil.
func FunctionsPHP(theme string, rep *report.Report) (string, error) {
	if theme == "" {
		theme = wordpress.DefaultTheme
	}
	return render("functions.php.tmpl", newThemeData(theme, rep))
}

func render(name string, data themeData) (string, error) {
	var buf bytes.Buffer
	if err := themeTemplates.ExecuteTemplate(&buf, name, data); err != nil {
		return "", fmt.Errorf("render %s: %w", name, err)
	}
	return buf.String(), nil
}

// WordPress writes a theme skeleton to dir/theme and returns the files
// written. rep, when non-nil, supplies the menus for functions.php.
func WordPress(dir, theme string, rep *report.Report) ([]string, error) {
	if theme == "" {
		theme = wordpress.DefaultTheme
	}
	themeDir := filepath.Join(dir, theme)
	for _, sub := range AssetDirs {
		if err := os.MkdirAll(filepath.Join(themeDir, sub), 0o755); err != nil {
			return nil, fmt.Errorf("scaffold wordpress: %w", err)
		}
	}

	data := newThemeData(theme, rep)
	var written []string
	for _, name := range []string{
		"style.css",
		"functions.php",
		"header.php",
		"footer.php",
		"index.php",
		"sidebar.php",
		"template-parts/content.php",
	} {
		out, err := render(path.Base(name)+".tmpl", data)
		if err != nil {
			return written, fmt.Errorf("scaffold wordpress: %w", err)
		}
		dst := filepath.Join(themeDir, filepath.FromSlash(name))
		if err := writeFile(dst, []byte(out)); err != nil {
			return written, fmt.Errorf("scaffold wordpress: %w", err)
		}
		written = append(written, dst)
	}
	return written, nil
}

func writeFile(dst string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return err
	}
	return os.WriteFile(dst, data, 0o644)
}
