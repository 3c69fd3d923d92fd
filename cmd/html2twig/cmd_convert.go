package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/Piqzaa/HTML-to-Twig/internal/convert"
	"github.com/Piqzaa/HTML-to-Twig/internal/scaffold"
)

func newConvertCmd(a *app) *cobra.Command {
	var (
		flags     dialectFlags
		noReport  bool
		verbose   bool
		functions bool
	)
	cmd := &cobra.Command{
		Use:   "convert INPUT OUTPUT",
		Short: "Convert one HTML or Markdown page to a template",
		Long: `Convert one page to a Twig or WordPress template.

When OUTPUT has no extension, .twig (or .php with --wordpress) is added.
A plain-text report is written next to the output as <name>_report.txt.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			req, err := a.request(cmd, flags)
			if err != nil {
				return err
			}
			if functions && req.Target != convert.TargetWordPress {
				return fmt.Errorf("--functions requires --wordpress")
			}
			writeReport := a.project.WantReport() && !noReport
			return a.runConvert(args[0], args[1], req, writeReport, verbose, functions)
		},
	}
	flags.register(cmd)
	cmd.Flags().BoolVar(&noReport, "no-report", false, "skip generating the conversion report")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "show detailed conversion information")
	cmd.Flags().BoolVar(&functions, "functions", false, "also write functions.php registering the converted menus (WordPress only)")
	return cmd
}

func (a *app) runConvert(input, output string, req convert.Request, writeReport, verbose, functions bool) error {
	data, err := os.ReadFile(input)
	if err != nil {
		return err
	}
	output = convert.OutputPath(output, req.Target)
	req.Input = input
	req.Output = output

	a.ui.printf("\n")
	a.ui.field("Converting", input)
	a.ui.field("Output", output)
	if req.Target == convert.TargetWordPress {
		a.ui.field("Type", "WordPress")
		a.ui.field("Theme", req.Theme)
	} else {
		a.ui.field("Type", "Twig")
		if req.Layout != "" {
			a.ui.field("Layout", req.Layout+".html.twig")
		}
	}
	a.ui.printf("\n")

	res, err := convert.File(input, data, req)
	if err != nil {
		a.log.Debug("conversion failed", "input", input, "error", err)
		return err
	}
	if err := writeFile(output, res.Output); err != nil {
		return err
	}

	a.ui.summary(res.Report, verbose)

	if writeReport {
		reportPath := convert.ReportPath(output)
		if err := writeFile(reportPath, res.Report.Text()); err != nil {
			return err
		}
		a.ui.field("Report saved to", reportPath)
	}

	if functions {
		php, err := scaffold.FunctionsPHP(req.Theme, res.Report)
		if err != nil {
			return err
		}
		functionsPath := filepath.Join(filepath.Dir(output), "functions.php")
		if err := writeFile(functionsPath, php); err != nil {
			return err
		}
		a.ui.field("Functions saved to", functionsPath)
	}

	a.ui.printf("\n")
	a.ui.success("Conversion completed successfully!")
	return nil
}

func writeFile(path, content string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(path, []byte(content), 0o644)
}
