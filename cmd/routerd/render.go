package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func renderCmd(g *globals) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "render <url>",
		Short: "Render a URL to HTML",
		Long: `Render a URL and print the HTML document to stdout.

A URL that redirects prints nothing; the redirect is reported on stderr.

Examples:
  routerd render /about > about.html`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(g.configPath)
			if err != nil {
				return err
			}
			res, err := newApp(cfg, g.logger()).Render(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if rd := res.Redirect; rd != nil {
				fmt.Fprintf(cmd.ErrOrStderr(), "%s redirects (%s %d) to %s\n", args[0], rd.Action, rd.Status, rd.URL)
				return nil
			}
			_, err = cmd.OutOrStdout().Write(res.HTML)
			return err
		},
	}
	return cmd
}
