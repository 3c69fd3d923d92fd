package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/Piqzaa/HTML-to-Twig/internal/convert"
)

const defaultBatchDir = "./templates"

type batchResult struct {
	input  string
	output string
	err    error
}

func newBatchCmd(a *app) *cobra.Command {
	var (
		flags     dialectFlags
		outputDir string
		workers   int
	)
	cmd := &cobra.Command{
		Use:   "batch FILES...",
		Short: "Convert several pages at once",
		Long: `Convert several pages into one output directory.

Outputs are named <name>.html.twig, or <name>.php with --wordpress.

Examples:
  html2twig batch *.html -o templates/
  html2twig batch page1.html page2.html --layout base`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			req, err := a.request(cmd, flags)
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("output-dir") && a.project.OutputDir != "" {
				outputDir = a.project.OutputDir
			}
			if !cmd.Flags().Changed("workers") && a.project.Workers > 0 {
				workers = a.project.Workers
			}
			return a.runBatch(cmd.Context(), args, outputDir, req, workers)
		},
	}
	flags.register(cmd)
	cmd.Flags().StringVarP(&outputDir, "output-dir", "o", defaultBatchDir, "output directory for converted files")
	cmd.Flags().IntVarP(&workers, "workers", "j", runtime.NumCPU(), "files converted in parallel")
	return cmd
}

// convertBatch converts inputs in parallel. Results keep input order; one
// failing file does not stop the others.
func convertBatch(ctx context.Context, inputs []string, outputDir string, req convert.Request, writeReport bool, workers int) []batchResult {
	results := make([]batchResult, len(inputs))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(max(workers, 1))
	for i, input := range inputs {
		i, input := i, input
		g.Go(func() error {
			out := filepath.Join(outputDir, convert.BatchOutputName(input, req.Target))
			results[i] = batchResult{input: input, output: out}
			if err := ctx.Err(); err != nil {
				results[i].err = err
				return nil
			}
			results[i].err = convertOne(input, out, req, writeReport)
			return nil
		})
	}
	// Failures are kept per file in results; no goroutine returns an error.
	_ = g.Wait()
	return results
}

func convertOne(input, output string, req convert.Request, writeReport bool) error {
	data, err := os.ReadFile(input)
	if err != nil {
		return err
	}
	req.Input = input
	req.Output = output
	res, err := convert.File(input, data, req)
	if err != nil {
		return err
	}
	if err := writeFile(output, res.Output); err != nil {
		return err
	}
	if writeReport {
		return writeFile(convert.ReportPath(output), res.Report.Text())
	}
	return nil
}

func (a *app) runBatch(ctx context.Context, inputs []string, outputDir string, req convert.Request, workers int) error {
	if ctx == nil {
		ctx = context.Background()
	}
	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return err
	}
	a.ui.printf("%s\n\n", a.ui.style.Bold.Render(fmt.Sprintf("Converting %d file(s)...", len(inputs))))

	results := convertBatch(ctx, inputs, outputDir, req, a.project.WantReport(), workers)

	failed := 0
	for _, r := range results {
		name := filepath.Base(r.input)
		if r.err != nil {
			failed++
			a.log.Debug("batch conversion failed", "input", r.input, "error", r.err)
			a.ui.failure(name + ": " + r.err.Error())
			continue
		}
		a.ui.success(name + " → " + r.output)
	}

	a.ui.printf("\n%s\n", a.ui.style.Bold.Render("Results:"))
	a.ui.printf("  %s Converted: %d\n", a.ui.style.Success.Render("✓"), len(results)-failed)
	if failed > 0 {
		a.ui.printf("  %s Failed: %d\n", a.ui.style.Error.Render("✗"), failed)
	}
	a.ui.printf("\n")
	a.ui.field("Output directory", outputDir)

	if failed > 0 {
		return fmt.Errorf("%d of %d file(s) failed", failed, len(results))
	}
	return nil
}
