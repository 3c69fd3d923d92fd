package main

import (
	"context"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/Piqzaa/HTML-to-Twig/internal/convert"
	"github.com/Piqzaa/HTML-to-Twig/internal/watch"
)

func newWatchCmd(a *app) *cobra.Command {
	var (
		flags     dialectFlags
		outputDir string
		debounce  time.Duration
	)
	cmd := &cobra.Command{
		Use:   "watch DIR",
		Short: "Re-convert pages under DIR whenever they change",
		Long: `Watch DIR for changed .html, .htm and .md pages and convert each one.

Outputs go next to the page unless --output-dir is given.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			req, err := a.request(cmd, flags)
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("output-dir") && a.project.OutputDir != "" {
				outputDir = a.project.OutputDir
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return a.runWatch(ctx, args[0], outputDir, req, debounce)
		},
	}
	flags.register(cmd)
	cmd.Flags().StringVarP(&outputDir, "output-dir", "o", "", "output directory (default: next to each page)")
	cmd.Flags().DurationVar(&debounce, "debounce", watch.DefaultOptions().Debounce, "quiet period before converting a burst of changes")
	return cmd
}

func (a *app) runWatch(ctx context.Context, dir, outputDir string, req convert.Request, debounce time.Duration) error {
	opts := watch.DefaultOptions()
	opts.Debounce = debounce

	handle := func(paths []string) {
		for _, p := range paths {
			dst := outputDir
			if dst == "" {
				dst = filepath.Dir(p)
			}
			out := filepath.Join(dst, convert.BatchOutputName(p, req.Target))
			if err := convertOne(p, out, req, a.project.WantReport()); err != nil {
				a.log.Error("convert failed", "input", p, "error", err)
				a.ui.failure(filepath.Base(p) + ": " + err.Error())
				continue
			}
			a.log.Info("converted", "input", p, "output", out)
			a.ui.success(filepath.Base(p) + " → " + out)
		}
	}

	w, err := watch.New(dir, handle, opts, a.log)
	if err != nil {
		return err
	}
	defer w.Close()

	a.ui.field("Watching", dir)
	a.ui.printf("%s\n", a.ui.style.Muted.Render("Press Ctrl+C to stop."))
	return w.Run(ctx)
}
