package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/piwi3910/spritepack/internal/model"
)

func TestLoadProfileEmptyPath(t *testing.T) {
	pf, err := LoadProfile("")
	require.NoError(t, err)
	assert.Equal(t, ProfileFile{}, pf)
}

func TestLoadProfileParsesNamedSections(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "profile.toml")
	content := "[profile.fast]\nmode = \"fast\"\npadding = 1\n\n" +
		"[profile.legacy]\nmode = \"pot\"\nscale = 0.75\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	pf, err := LoadProfile(path)
	require.NoError(t, err)

	fast, err := pf.Select("fast")
	require.NoError(t, err)
	assert.Equal(t, "fast", fast.Mode)
	require.NotNil(t, fast.Padding)
	assert.Equal(t, 1, *fast.Padding)

	legacy, err := pf.Select("legacy")
	require.NoError(t, err)
	assert.Equal(t, "pot", legacy.Mode)
}

func TestProfileFileSelectUnknownNameErrors(t *testing.T) {
	pf := ProfileFile{Profile: map[string]Profile{"fast": {Mode: "fast"}}}
	_, err := pf.Select("bogus")
	assert.Error(t, err)
}

func TestProfileFileSelectEmptyNameReturnsZeroProfile(t *testing.T) {
	pf := ProfileFile{Profile: map[string]Profile{"fast": {Mode: "fast"}}}
	p, err := pf.Select("")
	require.NoError(t, err)
	assert.Equal(t, Profile{}, p)
}

func TestProfileApplyToOverridesDefaults(t *testing.T) {
	opts := model.DefaultOptions()
	pad := 8
	p := Profile{Mode: "fast", Padding: &pad}

	require.NoError(t, p.ApplyTo(&opts))
	assert.Equal(t, model.ModeFast, opts.Mode)
	assert.Equal(t, 8, opts.Padding)
}

func TestResolveProfilePathPrefersExplicit(t *testing.T) {
	assert.Equal(t, "/explicit/path.toml", ResolveProfilePath("/explicit/path.toml"))
}

func TestFlagsResolveFlagsOverrideProfile(t *testing.T) {
	cmd := &cobra.Command{Use: "test"}
	f := BindFlags(cmd)
	require.NoError(t, cmd.Flags().Set("mode", "fast"))
	require.NoError(t, cmd.Flags().Set("padding", "3"))

	profiles := ProfileFile{Profile: map[string]Profile{"legacy": {Mode: "pot"}}}

	opts, err := f.Resolve(profiles)
	require.NoError(t, err)
	assert.Equal(t, model.ModeFast, opts.Mode) // flag wins over profile
	assert.Equal(t, 3, opts.Padding)
}

func TestFlagsResolveFallsBackToProfileWhenFlagUnset(t *testing.T) {
	cmd := &cobra.Command{Use: "test"}
	f := BindFlags(cmd)
	require.NoError(t, cmd.Flags().Set("profile", "legacy"))

	profiles := ProfileFile{Profile: map[string]Profile{"legacy": {Mode: "pot"}}}

	opts, err := f.Resolve(profiles)
	require.NoError(t, err)
	assert.Equal(t, model.ModePOT, opts.Mode)
}

func TestFlagsResolveUnknownProfileNameErrors(t *testing.T) {
	cmd := &cobra.Command{Use: "test"}
	f := BindFlags(cmd)
	require.NoError(t, cmd.Flags().Set("profile", "bogus"))

	_, err := f.Resolve(ProfileFile{})
	assert.Error(t, err)
}

func TestFlagsResolveTrimTransparentFlagPair(t *testing.T) {
	cmd := &cobra.Command{Use: "test"}
	f := BindFlags(cmd)
	require.NoError(t, cmd.Flags().Set("trim-transparent", "true"))

	opts, err := f.Resolve(ProfileFile{})
	require.NoError(t, err)
	assert.True(t, opts.TrimTransparent)
}

func TestFlagsResolveNoTrimTransparentOverridesProfile(t *testing.T) {
	cmd := &cobra.Command{Use: "test"}
	f := BindFlags(cmd)
	require.NoError(t, cmd.Flags().Set("no-trim-transparent", "true"))

	trimOn := true
	profiles := ProfileFile{Profile: map[string]Profile{"fast": {TrimTransparent: &trimOn}}}
	require.NoError(t, cmd.Flags().Set("profile", "fast"))

	opts, err := f.Resolve(profiles)
	require.NoError(t, err)
	assert.False(t, opts.TrimTransparent)
}
