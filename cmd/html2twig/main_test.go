package main

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Piqzaa/HTML-to-Twig/internal/config"
	"github.com/Piqzaa/HTML-to-Twig/internal/report"
)

const page = `<html><head><title>Home</title><link rel="stylesheet" href="css/site.css"></head>
<body><header><img src="img/logo.png"></header>
<nav id="main-nav"><ul><li><a href="/">Home</a></li><li><a href="/about">About</a></li></ul></nav>
<main><p>Hello</p></main><script src="js/app.js"></script></body></html>`

// run executes the CLI with args, reading the project file from dir.
func run(t *testing.T, dir string, args ...string) (string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	root := newRootCmd(&stdout, &stderr)
	root.SetArgs(append([]string{"--project-dir", dir}, args...))
	err := root.Execute()
	return stdout.String(), err
}

func writePage(t *testing.T, dir, name, content string) string {
	t.Helper()
	p := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(p, []byte(content), 0o644))
	return p
}

func TestConvert_Twig(t *testing.T) {
	dir := t.TempDir()
	in := writePage(t, dir, "index.html", page)
	out := filepath.Join(dir, "out", "index")

	stdout, err := run(t, dir, "convert", in, out, "--layout", "base")
	require.NoError(t, err)

	data, err := os.ReadFile(out + ".twig")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), "{% extends 'base.html.twig' %}"))

	rep, err := os.ReadFile(filepath.Join(dir, "out", "index_report.txt"))
	require.NoError(t, err)
	assert.Contains(t, string(rep), "HTML TO TWIG CONVERSION REPORT")
	assert.Contains(t, string(rep), "Layout: base")

	assert.Contains(t, stdout, "Layout: base.html.twig")
	assert.Contains(t, stdout, "Asset Conversions")
	assert.Contains(t, stdout, "{% block header %}: Detected header element(s)")
	assert.Contains(t, stdout, "→ {% for item in main_nav_items %}")
	assert.Contains(t, stdout, "Conversion completed successfully!")
}

func TestConvert_WordPressWithFunctions(t *testing.T) {
	dir := t.TempDir()
	in := writePage(t, dir, "index.html", page)
	out := filepath.Join(dir, "theme", "page-home.php")

	stdout, err := run(t, dir, "convert", in, out, "--wordpress", "--theme-name", "acme", "--no-report", "--functions")
	require.NoError(t, err)

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Contains(t, string(data), "@package acme")

	_, err = os.Stat(filepath.Join(dir, "theme", "page-home_report.txt"))
	assert.True(t, os.IsNotExist(err), "report should be skipped")

	functions, err := os.ReadFile(filepath.Join(dir, "theme", "functions.php"))
	require.NoError(t, err)
	assert.Contains(t, string(functions), "'main_nav' => __('Main Nav', 'acme'),")

	assert.Contains(t, stdout, "Theme: acme")
	assert.Contains(t, stdout, "Template Parts Detected:")
	assert.Contains(t, stdout, "Navigation menu: Main Nav → wp_nav_menu()")
}

func TestConvert_FunctionsRequiresWordPress(t *testing.T) {
	dir := t.TempDir()
	in := writePage(t, dir, "index.html", page)
	_, err := run(t, dir, "convert", in, filepath.Join(dir, "x.twig"), "--functions")
	assert.ErrorContains(t, err, "--functions requires --wordpress")
}

func TestConvert_MissingInput(t *testing.T) {
	dir := t.TempDir()
	_, err := run(t, dir, "convert", filepath.Join(dir, "nope.html"), filepath.Join(dir, "out.twig"))
	assert.Error(t, err)
}

func TestConvert_ProjectFileDefaults(t *testing.T) {
	dir := t.TempDir()
	writePage(t, dir, config.ProjectFile, "target: wordpress\ntheme: fromfile\nreport: false\n")
	in := writePage(t, dir, "index.html", page)
	out := filepath.Join(dir, "page")

	_, err := run(t, dir, "convert", in, out)
	require.NoError(t, err)

	data, err := os.ReadFile(out + ".php")
	require.NoError(t, err)
	assert.Contains(t, string(data), "@package fromfile")
	_, err = os.Stat(filepath.Join(dir, "page_report.txt"))
	assert.True(t, os.IsNotExist(err))

	// An explicit flag beats the project file.
	_, err = run(t, dir, "convert", in, filepath.Join(dir, "twig"), "--wordpress=false")
	require.NoError(t, err)
	_, err = os.Stat(filepath.Join(dir, "twig.twig"))
	assert.NoError(t, err)
}

func TestBatch(t *testing.T) {
	dir := t.TempDir()
	a := writePage(t, dir, "a.html", page)
	b := writePage(t, dir, "b.md", "# About\n\nSome text.\n")
	bad := writePage(t, dir, "c.csv", "x,y")
	outDir := filepath.Join(dir, "templates")

	stdout, err := run(t, dir, "batch", a, b, bad, "-o", outDir, "-j", "2")
	assert.ErrorContains(t, err, "1 of 3 file(s) failed")

	for _, name := range []string{"a.html.twig", "b.html.twig", "a.html_report.txt"} {
		_, statErr := os.Stat(filepath.Join(outDir, name))
		assert.NoError(t, statErr, name)
	}
	assert.Contains(t, stdout, "Converted: 2")
	assert.Contains(t, stdout, "Failed: 1")
	assert.Contains(t, stdout, "c.csv: ")
}

func TestBatch_WordPressNames(t *testing.T) {
	dir := t.TempDir()
	a := writePage(t, dir, "about.htm", page)
	outDir := filepath.Join(dir, "theme")

	_, err := run(t, dir, "batch", a, "--wordpress", "-o", outDir)
	require.NoError(t, err)
	_, err = os.Stat(filepath.Join(outDir, "about.php"))
	assert.NoError(t, err)
}

func TestInit(t *testing.T) {
	dir := t.TempDir()

	stdout, err := run(t, dir, "init", "--symfony", "-o", dir)
	require.NoError(t, err)
	assert.Contains(t, stdout, "Symfony Twig structure created:")
	_, err = os.Stat(filepath.Join(dir, "templates", "base.html.twig"))
	assert.NoError(t, err)

	stdout, err = run(t, dir, "init", "--wordpress", "-t", "acme", "-o", dir)
	require.NoError(t, err)
	assert.Contains(t, stdout, "WordPress theme 'acme' created:")
	_, err = os.Stat(filepath.Join(dir, "acme", "style.css"))
	assert.NoError(t, err)

	_, err = run(t, dir, "init")
	assert.ErrorContains(t, err, "--symfony or --wordpress")
}

func TestSummary_Truncates(t *testing.T) {
	rep := report.New(report.Twig)
	for i := 0; i < 12; i++ {
		rep.AddAsset(fmt.Sprintf("img/%02d.png", i), fmt.Sprintf("{{ asset('images/%02d.png') }}", i), report.KindImage)
	}
	for i := 0; i < 7; i++ {
		rep.AddSuggestion(fmt.Sprintf("suggestion %d %s", i, strings.Repeat("x", 120)))
	}
	rep.AddWarning("careful")

	var buf bytes.Buffer
	u := &ui{out: &buf, style: plainStyles()}
	u.summary(rep, false)
	out := buf.String()

	assert.Contains(t, out, "img/09.png")
	assert.NotContains(t, out, "img/10.png")
	assert.Contains(t, out, "(2 more)")
	assert.Contains(t, out, "  5. suggestion 4")
	assert.NotContains(t, out, "  6. ")
	assert.Contains(t, out, "... and 2 more (use --verbose to see all)")
	assert.Contains(t, out, "  ⚠ careful")

	buf.Reset()
	u.summary(rep, true)
	out = buf.String()
	assert.Contains(t, out, "img/11.png")
	assert.Contains(t, out, "  7. suggestion 6 "+strings.Repeat("x", 120))
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", truncate("short", 10))
	assert.Equal(t, "héll...", truncate("héllo wörld", 4))
}
