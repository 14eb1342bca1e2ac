// Command routerd serves, renders and exports a site described by a
// routerd.json or routerd.yaml file.
package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	rerrors "github.com/vango-dev/vrouter/internal/errors"
	"github.com/vango-dev/vrouter/pkg/location"
)

// Version information set at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// globals are the persistent flags shared by every command.
type globals struct {
	configPath string
	verbose    bool
	noColor    bool
}

func main() {
	g := &globals{}

	rootCmd := &cobra.Command{
		Use:   "routerd",
		Short: "Serve and export declarative routed sites",
		Long: `routerd renders a site described by a routerd.json or routerd.yaml
file. Routes are matched in order; the first match renders. Routes can
redirect, set a response status and link to each other.

  • serve the site over HTTP, with optional live navigation
  • resolve a URL to see which route, redirect or status it produces
  • render a URL to HTML
  • export every route to a directory or an S3 bucket`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.PersistentFlags().StringVarP(&g.configPath, "config", "c", "", "Config file or site directory (default: search upwards from the working directory)")
	rootCmd.PersistentFlags().BoolVarP(&g.verbose, "verbose", "v", false, "Log debug output")
	rootCmd.PersistentFlags().BoolVar(&g.noColor, "no-color", os.Getenv("NO_COLOR") != "", "Disable colored output")
	rootCmd.PersistentPreRun = func(*cobra.Command, []string) {
		if g.noColor {
			disableColors()
		}
	}

	rootCmd.AddCommand(
		serveCmd(g),
		resolveCmd(g),
		renderCmd(g),
		exportCmd(g),
		errorsCmd(),
		versionCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		printError(os.Stderr, err)
		os.Exit(1)
	}
}

// describe returns err as a RouterError. A malformed URL becomes E100;
// other uncoded errors keep their message.
func describe(err error) *rerrors.RouterError {
	var re *rerrors.RouterError
	if errors.As(err, &re) {
		return re
	}
	var decodeErr *location.DecodeError
	if errors.As(err, &decodeErr) {
		return rerrors.FromError(err, "E100").WithPath(decodeErr.Pathname)
	}
	return rerrors.Newf(rerrors.CategoryCLI, "%s", err).Wrap(err)
}

// printError prints coded errors in full and anything else on one line.
func printError(w io.Writer, err error) {
	rerrors.PrintError(w, describe(err))
}

// colorize is cleared by --no-color.
var colorize = true

func disableColors() {
	colorize = false
	rerrors.DisableColors()
}

func paint(code, s string) string {
	if !colorize {
		return s
	}
	return "\033[" + code + "m" + s + "\033[0m"
}

func (g *globals) logger() *slog.Logger {
	level := slog.LevelInfo
	if g.verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

// success prints a success message.
func success(format string, args ...any) {
	fmt.Printf("%s %s\n", paint("32", "✓"), fmt.Sprintf(format, args...))
}

// info prints an info message.
func info(format string, args ...any) {
	fmt.Printf("  %s\n", fmt.Sprintf(format, args...))
}

// warn prints a warning message.
func warn(format string, args ...any) {
	fmt.Printf("%s %s\n", paint("33", "⚠"), fmt.Sprintf(format, args...))
}
