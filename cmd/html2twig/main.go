// Command html2twig converts static HTML pages into Twig templates for
// Symfony or page templates for a WordPress theme.
package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/Piqzaa/HTML-to-Twig/internal/config"
	"github.com/Piqzaa/HTML-to-Twig/internal/convert"
	"github.com/Piqzaa/HTML-to-Twig/internal/logging"
	"github.com/Piqzaa/HTML-to-Twig/internal/wordpress"
)

const version = "1.0.0"

const banner = `
╦ ╦╔╦╗╔╦╗╦  ┌─┐  ╔╦╗┬ ┬┬┌─┐
╠═╣ ║ ║║║║  ┌─┘   ║ ││││├─┐
╩ ╩ ╩ ╩ ╩╩═╝└─┘   ╩ └┴┘┴└─┘
    HTML to Twig/WordPress Converter
`

// app is the state shared by all subcommands.
type app struct {
	projectDir string
	logLevel   string

	project config.Project
	log     *slog.Logger
	ui      *ui
}

// dialectFlags are the conversion flags shared by convert, batch and watch.
type dialectFlags struct {
	layout    string
	wordpress bool
	theme     string
}

func (f *dialectFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.layout, "layout", "l", "", "base layout to extend (e.g. 'base' for base.html.twig)")
	cmd.Flags().BoolVarP(&f.wordpress, "wordpress", "w", false, "convert to a WordPress PHP template instead of Twig")
	cmd.Flags().StringVarP(&f.theme, "theme-name", "t", wordpress.DefaultTheme, "WordPress theme name (only used with --wordpress)")
}

// request merges the flags with the project file; flags set on the command
// line win.
func (a *app) request(cmd *cobra.Command, f dialectFlags) (convert.Request, error) {
	target, err := convert.ParseTarget(a.project.Target)
	if err != nil {
		return convert.Request{}, fmt.Errorf("%s: %w", config.ProjectFile, err)
	}
	if cmd.Flags().Changed("wordpress") {
		target = convert.TargetTwig
		if f.wordpress {
			target = convert.TargetWordPress
		}
	}

	req := convert.Request{Target: target, Layout: a.project.Layout, Theme: a.project.Theme}
	if cmd.Flags().Changed("layout") || req.Layout == "" {
		req.Layout = f.layout
	}
	if cmd.Flags().Changed("theme-name") || req.Theme == "" {
		req.Theme = f.theme
	}
	if target == convert.TargetWordPress {
		req.Layout = ""
	} else {
		req.Theme = ""
	}
	return req, nil
}

func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	a := &app{}
	root := &cobra.Command{
		Use:   "html2twig",
		Short: "Convert HTML templates to Twig (Symfony) or WordPress PHP templates",
		Long: `html2twig rewrites static HTML pages into templates: asset references go
through asset() or get_template_directory_uri(), navigation menus become
loops or wp_nav_menu() calls and layout regions are reported as blocks
or template parts.

Examples:
  html2twig convert input.html output.twig
  html2twig convert input.html output.twig --layout base
  html2twig convert input.html output.php --wordpress
  html2twig init --symfony`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			log, _, err := logging.Setup(logging.Config{Level: a.logLevel, Format: "text", Stream: stderr})
			if err != nil {
				return err
			}
			a.log = log
			a.ui = newUI(stdout)

			a.project, err = config.LoadProject(a.projectDir)
			if err != nil {
				return err
			}
			if a.project != (config.Project{}) {
				a.log.Debug("loaded project file", "dir", a.projectDir)
			}
			return nil
		},
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprint(stdout, banner+"\n")
			cmd.Help()
		},
	}
	root.SetOut(stdout)
	root.SetErr(stderr)
	root.SetVersionTemplate("html2twig version {{.Version}}\n")
	root.PersistentFlags().StringVar(&a.projectDir, "project-dir", ".", "directory holding "+config.ProjectFile)
	root.PersistentFlags().StringVar(&a.logLevel, "log-level", "warn", "log level: debug, info, warn, error")

	root.AddCommand(
		newConvertCmd(a),
		newBatchCmd(a),
		newInitCmd(a),
		newWatchCmd(a),
	)
	return root
}

func main() {
	root := newRootCmd(os.Stdout, os.Stderr)
	if err := root.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
