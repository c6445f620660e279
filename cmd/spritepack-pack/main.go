// Command spritepack-pack is the downstream pixel packer: it reads a
// layout document from stdin (or --layout) and writes the composed
// atlas PNG to stdout (or --out).
package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/piwi3910/spritepack/internal/apperr"
	"github.com/piwi3910/spritepack/internal/layout"
	"github.com/piwi3910/spritepack/internal/rasterpack"
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	var layoutPath, outPath, baseDir string
	exitCode := 0

	cmd := &cobra.Command{
		Use:   "spritepack-pack",
		Short: "Render a spritepack layout document to a PNG atlas",
		RunE: func(cmd *cobra.Command, _ []string) error {
			exitCode = execute(layoutPath, outPath, baseDir)
			return nil
		},
	}
	cmd.Flags().StringVar(&layoutPath, "layout", "", "layout document path (default: stdin)")
	cmd.Flags().StringVar(&outPath, "out", "", "output PNG path (default: stdout)")
	cmd.Flags().StringVar(&baseDir, "base-dir", ".", "directory relative paths in the layout resolve against")
	cmd.SetArgs(args)

	if err := cmd.Execute(); err != nil {
		return apperr.Usage.ExitCode()
	}
	return exitCode
}

func execute(layoutPath, outPath, baseDir string) int {
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

	canvas, err := rasterpack.Render(doc, baseDir)
	if err != nil {
		return apperr.KindOf(err).ExitCode()
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

	if err := rasterpack.EncodePNG(out, canvas); err != nil {
		return apperr.KindOf(err).ExitCode()
	}
	return 0
}
