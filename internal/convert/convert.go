// Package convert is the single entry point shared by the CLI, the HTTP API
// and the batch pipeline: it picks the target dialect, loads the source
// file and names the files a conversion produces.
package convert

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/Piqzaa/HTML-to-Twig/internal/report"
	"github.com/Piqzaa/HTML-to-Twig/internal/source"
	"github.com/Piqzaa/HTML-to-Twig/internal/twig"
	"github.com/Piqzaa/HTML-to-Twig/internal/wordpress"
)

// Target is an output dialect.
type Target string

const (
	TargetTwig      Target = "twig"
	TargetWordPress Target = "wordpress"
)

var ErrUnknownTarget = errors.New("unknown target")

// ParseTarget accepts the target names used on the command line and in API
// requests. An empty string selects Twig.
func ParseTarget(s string) (Target, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "twig", "symfony":
		return TargetTwig, nil
	case "wordpress", "wp":
		return TargetWordPress, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownTarget, s)
	}
}

// Request describes one conversion of HTML text.
type Request struct {
	Target Target `json:"target"`
	// Layout applies to Twig only.
	Layout string `json:"layout,omitempty"`
	// Theme applies to WordPress only.
	Theme string `json:"theme,omitempty"`
	// Input and Output label the report.
	Input  string `json:"input,omitempty"`
	Output string `json:"output,omitempty"`
}

// Result is the converted template and its report.
type Result struct {
	Output string         `json:"output"`
	Report *report.Report `json:"report"`
}

// Convert runs the dialect selected by req.Target over html.
func Convert(html string, req Request) (Result, error) {
	var (
		out string
		rep *report.Report
		err error
	)
	switch req.Target {
	case TargetTwig, "":
		out, rep, err = twig.Convert(html, twig.Options{Layout: req.Layout, Input: req.Input, Output: req.Output})
	case TargetWordPress:
		out, rep, err = wordpress.Convert(html, wordpress.Options{ThemeName: req.Theme, Input: req.Input, Output: req.Output})
	default:
		return Result{}, fmt.Errorf("%w: %q", ErrUnknownTarget, req.Target)
	}
	if err != nil {
		return Result{}, fmt.Errorf("convert %s: %w", req.Input, err)
	}
	return Result{Output: out, Report: rep}, nil
}

// File loads data with the loader for filename, then converts it.
func File(filename string, data []byte, req Request) (Result, error) {
	html, err := source.Load(filename, data)
	if err != nil {
		return Result{}, err
	}
	if req.Input == "" {
		req.Input = filename
	}
	return Convert(html, req)
}

// Extension is the suffix added to outputs named without one.
func (t Target) Extension() string {
	if t == TargetWordPress {
		return ".php"
	}
	return ".twig"
}

// BatchExtension is the suffix batch conversions use in place of the input's.
func (t Target) BatchExtension() string {
	if t == TargetWordPress {
		return ".php"
	}
	return ".html.twig"
}

// OutputPath adds the target's default suffix when path has none.
func OutputPath(path string, t Target) string {
	if filepath.Ext(path) == "" {
		return path + t.Extension()
	}
	return path
}

// BatchOutputName names the output for input inside a batch output directory.
func BatchOutputName(input string, t Target) string {
	base := filepath.Base(input)
	return strings.TrimSuffix(base, filepath.Ext(base)) + t.BatchExtension()
}

// ReportPath places the report next to output: page.html.twig gives
// page.html_report.txt.
func ReportPath(output string) string {
	return strings.TrimSuffix(output, filepath.Ext(output)) + "_report.txt"
}
