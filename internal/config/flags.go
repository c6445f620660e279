package config

import (
	"github.com/spf13/cobra"

	"github.com/piwi3910/spritepack/internal/geometry"
	"github.com/piwi3910/spritepack/internal/model"
)

// Flags holds the raw CLI flag destinations bound onto a cobra.Command
// by BindFlags. Resolve turns them, together with a loaded ProfileFile,
// into a model.PackingOptions.
type Flags struct {
	cmd *cobra.Command

	Mode                string
	Optimize            string
	Padding             int
	MaxWidth            int
	MaxHeight           int
	MaxCombinations     int
	Scale               float64
	TrimTransparent     bool
	NoTrimTransparent   bool
	RotateAllowed       bool
	SourceResolution    string
	TargetResolution    string
	ResolutionReference string
	Threads             int

	ProfileName string
	ProfilePath string
	LogLevel    string
	LogJSON     bool
}

// BindFlags registers every packing flag onto cmd, defaulted from
// model.DefaultOptions() so --help shows accurate defaults even before
// a profile is loaded.
func BindFlags(cmd *cobra.Command) *Flags {
	d := model.DefaultOptions()
	f := &Flags{cmd: cmd}

	fs := cmd.Flags()
	fs.StringVar(&f.ProfileName, "profile", "", "named [profile.NAME] section to load from the profile file")
	fs.StringVar(&f.ProfilePath, "profiles-config", "", "explicit path to a TOML profile file")
	fs.StringVar(&f.Mode, "mode", string(d.Mode), "packing strategy: compact, pot, or fast")
	fs.StringVar(&f.Optimize, "optimize", string(d.Optimize), "scoring target: gpu or space")
	fs.IntVar(&f.Padding, "padding", d.Padding, "pixels of spacing reserved around each sprite")
	fs.IntVar(&f.MaxWidth, "max-width", d.MaxWidth, "hard atlas width limit (0 = unconstrained)")
	fs.IntVar(&f.MaxHeight, "max-height", d.MaxHeight, "hard atlas height limit (0 = unconstrained)")
	fs.IntVar(&f.MaxCombinations, "max-combinations", d.MaxCombinations, "cap on compact-mode candidate sizes tried (0 = unbounded)")
	fs.Float64Var(&f.Scale, "scale", d.Scale, "uniform scale factor applied to every source image")
	fs.BoolVar(&f.TrimTransparent, "trim-transparent", d.TrimTransparent, "crop fully transparent borders before packing")
	fs.BoolVar(&f.NoTrimTransparent, "no-trim-transparent", false, "disable transparent-border cropping, overriding --trim-transparent and the profile")
	fs.BoolVar(&f.RotateAllowed, "rotate", d.RotateAllowed, "allow 90 degree rotation during packing")
	fs.StringVar(&f.SourceResolution, "source-resolution", "", "source reference resolution WxH, composed with scale")
	fs.StringVar(&f.TargetResolution, "target-resolution", "", "target reference resolution WxH, composed with scale")
	fs.StringVar(&f.ResolutionReference, "resolution-reference", string(d.ResolutionReference), "largest or smallest axis drives resolution scaling")
	fs.IntVar(&f.Threads, "threads", d.Threads, "worker pool size (0 = CPU count)")
	fs.StringVar(&f.LogLevel, "log-level", "info", "zerolog level: debug, info, warn, error")
	fs.BoolVar(&f.LogJSON, "log-json", false, "emit logs as newline-delimited JSON")

	return f
}

// Resolve layers defaults, the named profile section, then explicit
// flags (flags win) into a final PackingOptions.
func (f *Flags) Resolve(profiles ProfileFile) (model.PackingOptions, error) {
	opts := model.DefaultOptions()

	profile, err := profiles.Select(f.ProfileName)
	if err != nil {
		return model.PackingOptions{}, err
	}
	if err := profile.ApplyTo(&opts); err != nil {
		return model.PackingOptions{}, err
	}

	changed := f.cmd.Flags().Changed

	if changed("mode") {
		opts.Mode = model.PackMode(f.Mode)
	}
	if changed("optimize") {
		opts.Optimize = model.OptimizeTarget(f.Optimize)
	}
	if changed("padding") {
		opts.Padding = f.Padding
	}
	if changed("max-width") {
		opts.MaxWidth = f.MaxWidth
	}
	if changed("max-height") {
		opts.MaxHeight = f.MaxHeight
	}
	if changed("max-combinations") {
		opts.MaxCombinations = f.MaxCombinations
	}
	if changed("scale") {
		opts.Scale = f.Scale
	}
	if changed("trim-transparent") {
		opts.TrimTransparent = f.TrimTransparent
	}
	if changed("no-trim-transparent") {
		opts.TrimTransparent = !f.NoTrimTransparent
	}
	if changed("rotate") {
		opts.RotateAllowed = f.RotateAllowed
	}
	if changed("resolution-reference") {
		opts.ResolutionReference = model.ResolutionReference(f.ResolutionReference)
	}
	if changed("threads") {
		opts.Threads = f.Threads
	}
	if changed("source-resolution") {
		d, err := geometry.ParseDimensions(f.SourceResolution)
		if err != nil {
			return model.PackingOptions{}, err
		}
		opts.SourceResolution = &d
	}
	if changed("target-resolution") {
		d, err := geometry.ParseDimensions(f.TargetResolution)
		if err != nil {
			return model.PackingOptions{}, err
		}
		opts.TargetResolution = &d
	}

	return opts, nil
}
