package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/vango-dev/vrouter"
	rerrors "github.com/vango-dev/vrouter/internal/errors"
	"github.com/vango-dev/vrouter/pkg/location"
)

func resolveCmd(g *globals) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "resolve <url>",
		Short: "Show what a URL resolves to",
		Long: `Render a URL and report the outcome without printing the page:
the response status, and for redirects the action and target.

Examples:
  routerd resolve /
  routerd resolve /old/42 --json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(g.configPath)
			if err != nil {
				return err
			}
			res, err := newApp(cfg, g.logger()).Render(cmd.Context(), args[0])
			if err != nil {
				if perr := printFailure(cmd.OutOrStdout(), args[0], cfg.Basename, err, asJSON); perr != nil {
					return perr
				}
				return err
			}
			return printResolution(cmd.OutOrStdout(), args[0], res, asJSON)
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the render context as JSON")

	return cmd
}

// printFailure reports a URL that could not be rendered. A malformed URL
// also shows the pathname as it would be routed without decoding.
func printFailure(w io.Writer, url, basename string, err error, asJSON bool) error {
	re := describe(err)
	status := vrouter.ErrorStatus(err)
	if asJSON {
		out := struct {
			URL    string          `json:"url"`
			Status int             `json:"status"`
			Error  json.RawMessage `json:"error"`
		}{url, status, json.RawMessage(re.FormatJSON())}
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(out)
	}
	if rerrors.HasCode(re, "E100") {
		raw, _ := location.NormalizeOrRaw(location.Path(url), basename)
		_, err := fmt.Fprintf(w, "%s %d raw=%s\n", url, status, raw.Pathname)
		return err
	}
	_, err = fmt.Fprintf(w, "%s %d\n", url, status)
	return err
}

func printResolution(w io.Writer, url string, res *vrouter.Result, asJSON bool) error {
	if asJSON {
		out := struct {
			URL     string `json:"url"`
			Status  int    `json:"status"`
			Context any    `json:"context"`
		}{url, res.Status, res.Context}
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(out)
	}

	if rd := res.Redirect; rd != nil {
		_, err := fmt.Fprintf(w, "%s %d %s -> %s\n", url, rd.Status, rd.Action, rd.URL)
		return err
	}
	_, err := fmt.Fprintf(w, "%s %d\n", url, res.Status)
	return err
}
