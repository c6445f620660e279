// Command spritepack-render is the downstream transform renderer: it
// reads a layout document and a text/template file, and writes the
// rendered result to stdout (or --out), for engine-specific atlas
// metadata formats.
package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/piwi3910/spritepack/internal/apperr"
	"github.com/piwi3910/spritepack/internal/layout"
	"github.com/piwi3910/spritepack/internal/transformpack"
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	var layoutPath, outPath, templatePath string
	exitCode := 0

	cmd := &cobra.Command{
		Use:   "spritepack-render",
		Short: "Render a spritepack layout document through a text/template",
		RunE: func(cmd *cobra.Command, _ []string) error {
			exitCode = execute(layoutPath, outPath, templatePath)
			return nil
		},
	}
	cmd.Flags().StringVar(&layoutPath, "layout", "", "layout document path (default: stdin)")
	cmd.Flags().StringVar(&outPath, "out", "", "output path (default: stdout)")
	cmd.Flags().StringVar(&templatePath, "template", "", "text/template file describing the output format")
	cmd.SetArgs(args)

	if err := cmd.Execute(); err != nil {
		return apperr.Usage.ExitCode()
	}
	return exitCode
}

func execute(layoutPath, outPath, templatePath string) int {
	if templatePath == "" {
		return apperr.Usage.ExitCode()
	}

	in := os.Stdin
	if layoutPath != "" {
		f, err := os.Open(layoutPath)
		if err != nil {
			return apperr.Input.ExitCode()
		}
		defer f.Close()
		in = f
	}

	doc, err := layout.Parse(in)
	if err != nil {
		return apperr.KindOf(err).ExitCode()
	}

	templateText, err := os.ReadFile(templatePath)
	if err != nil {
		return apperr.Input.ExitCode()
	}

	out := os.Stdout
	if outPath != "" {
		f, err := os.Create(outPath)
		if err != nil {
			return apperr.Internal.ExitCode()
		}
		defer f.Close()
		out = f
	}

	if err := transformpack.Render(out, doc, string(templateText)); err != nil {
		return apperr.KindOf(err).ExitCode()
	}
	return 0
}
