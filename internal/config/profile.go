// Package config resolves the effective model.PackingOptions for a run
// from three layered sources, lowest priority first: compiled-in
// defaults, a named section of a TOML profile file, and explicit CLI
// flags.
//
// No INI library appears anywhere in the retrieval pack this module was
// built from (the only candidate, an AWS SDK internal ini parser, is
// unexported and not importable), while github.com/BurntSushi/toml is
// already a direct dependency and is used for exactly this kind of
// named-section settings file in noisetorch-NoiseTorch's config.go.
// Profiles are therefore TOML files with one `[profile.NAME]` table per
// named profile, the TOML equivalent of the INI `[profile NAME]` section
// shape.
package config

import (
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"github.com/piwi3910/spritepack/internal/apperr"
	"github.com/piwi3910/spritepack/internal/geometry"
	"github.com/piwi3910/spritepack/internal/model"
)

// Profile mirrors the subset of PackingOptions one named profile section
// may set. Keys are the long-form CLI options in snake_case. Pointer and
// zero-value fields distinguish "unset" from "set to zero" so a profile
// never silently overrides a default with a zero.
type Profile struct {
	Mode                string   `toml:"mode"`
	Optimize            string   `toml:"optimize"`
	Padding             *int     `toml:"padding"`
	MaxWidth            *int     `toml:"max_width"`
	MaxHeight           *int     `toml:"max_height"`
	MaxCombinations     *int     `toml:"max_combinations"`
	Scale               *float64 `toml:"scale"`
	TrimTransparent     *bool    `toml:"trim_transparent"`
	RotateAllowed       *bool    `toml:"rotate"`
	SourceResolution    string   `toml:"source_resolution"`
	TargetResolution    string   `toml:"target_resolution"`
	ResolutionReference string   `toml:"resolution_reference"`
	Threads             *int     `toml:"threads"`
}

// ProfileFile is the on-disk profile document: one named profile per
// `[profile.NAME]` TOML table, selected at runtime by --profile NAME.
// Missing keys within a selected profile inherit built-in defaults.
type ProfileFile struct {
	Profile map[string]Profile `toml:"profile"`
}

// Select returns the named profile, or a zero Profile when name is
// empty (no profile requested). An unknown name is a ConfigError.
func (pf ProfileFile) Select(name string) (Profile, error) {
	if name == "" {
		return Profile{}, nil
	}
	p, ok := pf.Profile[name]
	if !ok {
		return Profile{}, apperr.Newf(apperr.Config, "config.ProfileFile.Select", "unknown profile %q", name)
	}
	return p, nil
}

// ResolveProfilePath implements the lookup order: an explicit path wins
// outright; otherwise check
// $XDG_CONFIG_HOME/spritepack/spritepack.toml (falling back to
// os.UserConfigDir()), then ./spritepack.toml in the working directory.
// Returns "" if nothing is found, which callers treat as "use defaults".
func ResolveProfilePath(explicit string) string {
	if explicit != "" {
		return explicit
	}
	if dir, err := os.UserConfigDir(); err == nil {
		candidate := filepath.Join(dir, "spritepack", "spritepack.toml")
		if _, err := os.Stat(candidate); err == nil {
			return candidate
		}
	}
	if _, err := os.Stat("spritepack.toml"); err == nil {
		return "spritepack.toml"
	}
	return ""
}

// LoadProfile decodes a TOML profile file. A missing path is not an
// error — callers pass the empty string from ResolveProfilePath to mean
// "no profile file", and LoadProfile returns an empty ProfileFile for it.
func LoadProfile(path string) (ProfileFile, error) {
	var pf ProfileFile
	if path == "" {
		return pf, nil
	}
	if _, err := toml.DecodeFile(path, &pf); err != nil {
		return ProfileFile{}, apperr.New(apperr.Config, "config.LoadProfile", err)
	}
	return pf, nil
}

// ApplyTo overlays non-nil/non-empty profile fields onto opts, in place.
// A malformed source_resolution/target_resolution string is reported
// rather than silently ignored, since it would otherwise produce a
// confusing downstream scale error instead of pointing at the profile.
func (p Profile) ApplyTo(opts *model.PackingOptions) error {
	if p.Mode != "" {
		opts.Mode = model.PackMode(p.Mode)
	}
	if p.Optimize != "" {
		opts.Optimize = model.OptimizeTarget(p.Optimize)
	}
	if p.Padding != nil {
		opts.Padding = *p.Padding
	}
	if p.MaxWidth != nil {
		opts.MaxWidth = *p.MaxWidth
	}
	if p.MaxHeight != nil {
		opts.MaxHeight = *p.MaxHeight
	}
	if p.MaxCombinations != nil {
		opts.MaxCombinations = *p.MaxCombinations
	}
	if p.Scale != nil {
		opts.Scale = *p.Scale
	}
	if p.TrimTransparent != nil {
		opts.TrimTransparent = *p.TrimTransparent
	}
	if p.RotateAllowed != nil {
		opts.RotateAllowed = *p.RotateAllowed
	}
	if p.ResolutionReference != "" {
		opts.ResolutionReference = model.ResolutionReference(p.ResolutionReference)
	}
	if p.Threads != nil {
		opts.Threads = *p.Threads
	}
	if p.SourceResolution != "" {
		d, err := geometry.ParseDimensions(p.SourceResolution)
		if err != nil {
			return err
		}
		opts.SourceResolution = &d
	}
	if p.TargetResolution != "" {
		d, err := geometry.ParseDimensions(p.TargetResolution)
		if err != nil {
			return err
		}
		opts.TargetResolution = &d
	}
	return nil
}
