// Package inputset resolves the CLI's input sources (directories and
// list files) into a flat, deterministically ordered list of image
// paths.
package inputset

import (
	"bufio"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/piwi3910/spritepack/internal/apperr"
	"github.com/piwi3910/spritepack/internal/imagemeta"
)

// ExpandDirectory walks dir recursively and returns every file with a
// recognized image suffix, sorted lexicographically by path.
func ExpandDirectory(dir string) ([]string, error) {
	var paths []string
	err := filepath.WalkDir(dir, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		if imagemeta.IsRecognizedImage(path) {
			paths = append(paths, path)
		}
		return nil
	})
	if err != nil {
		return nil, apperr.New(apperr.Input, "inputset.ExpandDirectory", err)
	}
	sort.Strings(paths)
	return paths, nil
}

// ExpandListFile reads a newline-delimited list of image paths. Blank
// lines and lines starting with '#' are skipped. Relative paths are
// resolved against the list file's own directory, not the process's
// working directory, so a list file can be moved alongside its assets.
func ExpandListFile(listPath string) ([]string, error) {
	f, err := os.Open(listPath)
	if err != nil {
		return nil, apperr.New(apperr.Input, "inputset.ExpandListFile", err)
	}
	defer f.Close()

	base := filepath.Dir(listPath)
	var paths []string

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if !filepath.IsAbs(line) {
			line = filepath.Join(base, line)
		}
		paths = append(paths, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, apperr.New(apperr.Input, "inputset.ExpandListFile", err)
	}
	return paths, nil
}
