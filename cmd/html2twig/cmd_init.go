package main

import (
	"errors"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/Piqzaa/HTML-to-Twig/internal/scaffold"
	"github.com/Piqzaa/HTML-to-Twig/internal/wordpress"
)

func newInitCmd(a *app) *cobra.Command {
	var (
		symfony bool
		wp      bool
		output  string
		theme   string
	)
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Create a starter Symfony templates/ tree or WordPress theme",
		Example: `  html2twig init --symfony
  html2twig init --wordpress --theme-name mytheme`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			switch {
			case symfony && wp:
				return errors.New("choose one of --symfony or --wordpress")
			case symfony:
				return a.initSymfony(output)
			case wp:
				if !cmd.Flags().Changed("theme-name") && a.project.Theme != "" {
					theme = a.project.Theme
				}
				return a.initWordPress(output, theme)
			default:
				return errors.New("please specify --symfony or --wordpress")
			}
		},
	}
	cmd.Flags().BoolVarP(&symfony, "symfony", "s", false, "initialize a Symfony Twig template structure")
	cmd.Flags().BoolVarP(&wp, "wordpress", "w", false, "initialize a WordPress theme structure")
	cmd.Flags().StringVarP(&output, "output", "o", ".", "output directory")
	cmd.Flags().StringVarP(&theme, "theme-name", "t", wordpress.DefaultTheme, "theme name (for WordPress)")
	return cmd
}

func (a *app) initSymfony(dir string) error {
	written, err := scaffold.Symfony(dir)
	if err != nil {
		return err
	}
	a.ui.success("Symfony Twig structure created:")
	for _, p := range written {
		a.ui.printf("  • %s\n", p)
	}
	a.ui.printf("\n%s\n", a.ui.style.Bold.Render("Next steps:"))
	a.ui.printf("  1. Customize base.html.twig with your layout\n")
	a.ui.printf("  2. Use: html2twig convert input.html templates/page/output.html.twig --layout base\n")
	return nil
}

func (a *app) initWordPress(dir, theme string) error {
	written, err := scaffold.WordPress(dir, theme, nil)
	if err != nil {
		return err
	}
	a.ui.success("WordPress theme '" + theme + "' created:")
	for _, p := range written {
		a.ui.printf("  • %s\n", p)
	}
	themeDir := filepath.Join(dir, theme)
	a.ui.printf("\n%s\n", a.ui.style.Bold.Render("Next steps:"))
	a.ui.printf("  1. Copy the '%s' folder to wp-content/themes/\n", theme)
	a.ui.printf("  2. Activate the theme in WordPress admin\n")
	a.ui.printf("  3. Use: html2twig convert input.html %s --wordpress\n", filepath.Join(themeDir, "page-custom.php"))
	return nil
}
