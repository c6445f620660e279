// Command spritepack-layout is spritepack's primary CLI: it resolves
// input sources, prepares packable rectangles, drives a packing
// strategy, and emits the resulting layout text.
package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/piwi3910/spritepack/internal/apperr"
	"github.com/piwi3910/spritepack/internal/applog"
	"github.com/piwi3910/spritepack/internal/config"
	"github.com/piwi3910/spritepack/internal/fingerprint"
	"github.com/piwi3910/spritepack/internal/geometry"
	"github.com/piwi3910/spritepack/internal/imagemeta"
	"github.com/piwi3910/spritepack/internal/inputset"
	"github.com/piwi3910/spritepack/internal/layout"
	"github.com/piwi3910/spritepack/internal/layoutcache"
	"github.com/piwi3910/spritepack/internal/model"
	"github.com/piwi3910/spritepack/internal/pack"
	"github.com/piwi3910/spritepack/internal/workpool"
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	var outPath string

	cmd := &cobra.Command{
		Use:   "spritepack-layout [sources...]",
		Short: "Pack source images into a sprite sheet layout",
		Args:  cobra.MinimumNArgs(1),
	}
	flags := config.BindFlags(cmd)
	cmd.Flags().StringVar(&outPath, "out", "", "output layout file path (default: stdout)")

	var exitCode int
	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		exitCode = execute(cmd.Context(), args, flags, outPath)
		return nil
	}
	cmd.SetArgs(args)

	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return apperr.Usage.ExitCode()
	}
	return exitCode
}

func execute(ctx context.Context, sources []string, flags *config.Flags, outPath string) int {
	log := applog.NewStderr(flags.LogLevel, flags.LogJSON)

	profilePath := config.ResolveProfilePath(flags.ProfilePath)
	profiles, err := config.LoadProfile(profilePath)
	if err != nil {
		log.Error().Err(err).Msg("loading profile")
		return apperr.KindOf(err).ExitCode()
	}

	opts, err := flags.Resolve(profiles)
	if err != nil {
		log.Error().Err(err).Msg("resolving options")
		return apperr.KindOf(err).ExitCode()
	}

	paths, err := collectInputs(sources)
	if err != nil {
		log.Error().Err(err).Msg("collecting inputs")
		return apperr.KindOf(err).ExitCode()
	}
	if len(paths) == 0 {
		log.Error().Msg("no input images found")
		return apperr.Usage.ExitCode()
	}

	pool := workpool.New(opts.Threads)
	provider := imagemeta.New(pool)

	fp, err := fingerprintInputs(paths, opts)
	if err != nil {
		log.Error().Err(err).Msg("computing fingerprint")
		return apperr.KindOf(err).ExitCode()
	}

	layoutcache.Prune()

	var doc layout.Document
	if cached, cachedPaths, ok := layoutcache.Lookup(fp); ok {
		log.Debug().Str("fingerprint", fp).Msg("layout cache hit")
		doc = layout.Document{Layout: cached, Paths: cachedPaths}
	} else {
		reqs := make([]imagemeta.Request, len(paths))
		for i, p := range paths {
			reqs[i] = imagemeta.Request{Path: p, NeedBounds: opts.TrimTransparent}
		}
		images, err := provider.Batch(ctx, reqs)
		if err != nil {
			log.Error().Err(err).Msg("reading image metadata")
			return apperr.KindOf(err).ExitCode()
		}

		rects, err := geometry.Prepare(images, opts)
		if err != nil {
			log.Error().Err(err).Msg("preparing rectangles")
			return apperr.KindOf(err).ExitCode()
		}

		driver := pack.NewDriver(pool)
		result, err := driver.Run(ctx, rects, opts)
		if err != nil {
			log.Error().Err(err).Msg("packing")
			return apperr.KindOf(err).ExitCode()
		}

		doc = layout.Document{Layout: result, Paths: paths}
		if err := layoutcache.Store(fp, doc.Layout, doc.Paths); err != nil {
			log.Warn().Err(err).Msg("storing layout cache entry")
		}
	}

	out := os.Stdout
	if outPath != "" {
		f, err := os.Create(outPath)
		if err != nil {
			log.Error().Err(err).Msg("opening output")
			return apperr.Internal.ExitCode()
		}
		defer f.Close()
		out = f
	}
	if err := layout.Emit(out, doc); err != nil {
		log.Error().Err(err).Msg("emitting layout")
		return apperr.KindOf(err).ExitCode()
	}

	return 0
}

// collectInputs expands every source argument, treating directories and
// list files according to inputset's rules, and returns the union in
// first-seen order.
func collectInputs(sources []string) ([]string, error) {
	seen := map[string]bool{}
	var all []string
	for _, src := range sources {
		info, err := os.Stat(src)
		if err != nil {
			return nil, apperr.New(apperr.Input, "collectInputs", err)
		}

		var expanded []string
		if info.IsDir() {
			expanded, err = inputset.ExpandDirectory(src)
		} else {
			expanded, err = inputset.ExpandListFile(src)
		}
		if err != nil {
			return nil, err
		}

		for _, p := range expanded {
			abs, _ := filepath.Abs(p)
			if !seen[abs] {
				seen[abs] = true
				all = append(all, p)
			}
		}
	}
	return all, nil
}

func fingerprintInputs(paths []string, opts model.PackingOptions) (string, error) {
	stats := make([]fingerprint.FileStat, len(paths))
	for i, p := range paths {
		info, err := os.Stat(p)
		if err != nil {
			return "", apperr.New(apperr.Input, "fingerprintInputs", err)
		}
		stats[i] = fingerprint.FileStat{Path: p, Size: info.Size(), ModUnix: info.ModTime().Unix()}
	}
	return fingerprint.Compute(stats, opts), nil
}
