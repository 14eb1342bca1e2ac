package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	rerrors "github.com/vango-dev/vrouter/internal/errors"
)

func errorsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "errors [code]",
		Short: "List error codes or explain one",
		Long: `Without arguments, list every error code routerd can report.
With a code, print its full explanation.

Examples:
  routerd errors
  routerd errors E100`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return explainErrors(cmd.OutOrStdout(), args)
		},
	}
}

func explainErrors(w io.Writer, args []string) error {
	if len(args) == 1 {
		code := strings.ToUpper(args[0])
		if _, ok := rerrors.GetTemplate(code); !ok {
			return rerrors.Newf(rerrors.CategoryCLI, "unknown error code %q", args[0])
		}
		_, err := fmt.Fprint(w, rerrors.New(code).Format())
		return err
	}
	for _, code := range rerrors.GetAllCodes() {
		t, _ := rerrors.GetTemplate(code)
		if _, err := fmt.Fprintf(w, "%s  %-9s  %s\n", code, t.Category, t.Message); err != nil {
			return err
		}
	}
	return nil
}
