package layout

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/piwi3910/spritepack/internal/apperr"
	"github.com/piwi3910/spritepack/internal/model"
)

// Parse is the inverse of Emit: it reads the layout grammar and returns
// the Layout plus the ordered path table the placements index into.
// Parse assigns source indices by first-seen order of distinct paths,
// so a round-tripped Document with repeated paths collapses to one
// entry per distinct path — a Document produced by Emit never repeats a
// path, so this only matters for hand-written layout files.
func Parse(r io.Reader) (Document, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64*1024), 1024*1024)

	var doc Document
	pathIndex := map[string]int{}
	sawAtlas, sawScale := false, false
	lineNo := 0

	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		fields := strings.Fields(line)
		switch fields[0] {
		case "atlas":
			w, h, err := parsePair(strings.TrimPrefix(line, "atlas "))
			if err != nil {
				return Document{}, parseErr(lineNo, "atlas", err)
			}
			doc.Layout.AtlasWidth, doc.Layout.AtlasHeight = w, h
			sawAtlas = true
		case "scale":
			f, err := strconv.ParseFloat(strings.TrimSpace(strings.TrimPrefix(line, "scale")), 64)
			if err != nil {
				return Document{}, parseErr(lineNo, "scale", err)
			}
			doc.Layout.Scale = f
			sawScale = true
		case "sprite":
			placement, path, err := parseSprite(line)
			if err != nil {
				return Document{}, parseErr(lineNo, "sprite", err)
			}
			idx, ok := pathIndex[path]
			if !ok {
				idx = len(doc.Paths)
				pathIndex[path] = idx
				doc.Paths = append(doc.Paths, path)
			}
			placement.SourceIndex = idx
			doc.Layout.Placements = append(doc.Layout.Placements, placement)
		default:
			return Document{}, apperr.Newf(apperr.Usage, "layout.Parse", "line %d: unknown directive %q", lineNo, fields[0])
		}
	}
	if err := scanner.Err(); err != nil {
		return Document{}, apperr.New(apperr.Input, "layout.Parse", err)
	}
	if !sawAtlas {
		return Document{}, apperr.Newf(apperr.Usage, "layout.Parse", "missing atlas header")
	}
	if !sawScale {
		return Document{}, apperr.Newf(apperr.Usage, "layout.Parse", "missing scale header")
	}

	return doc, nil
}

func parsePair(s string) (int, int, error) {
	var a, b int
	n, err := fmt.Sscanf(strings.TrimSpace(s), "%d,%d", &a, &b)
	if err != nil || n != 2 {
		return 0, 0, fmt.Errorf("expected W,H pair, got %q", s)
	}
	return a, b, nil
}

func parseSprite(line string) (model.Placement, string, error) {
	rest := strings.TrimPrefix(line, "sprite ")
	rest = strings.TrimSpace(rest)

	path, remainder, err := readQuoted(rest)
	if err != nil {
		return model.Placement{}, "", err
	}
	remainder = strings.TrimSpace(remainder)
	fields := strings.Fields(remainder)
	if len(fields) < 2 {
		return model.Placement{}, "", fmt.Errorf("sprite line missing position/size fields")
	}

	x, y, err := parsePair(fields[0])
	if err != nil {
		return model.Placement{}, "", err
	}
	w, h, err := parsePair(fields[1])
	if err != nil {
		return model.Placement{}, "", err
	}

	p := model.Placement{X: x, Y: y, W: w, H: h}

	i := 2
	if i+1 < len(fields) && strings.Contains(fields[i], ",") && strings.Contains(fields[i+1], ",") {
		left, top, err := parsePair(fields[i])
		if err != nil {
			return model.Placement{}, "", fmt.Errorf("malformed trim offset %q", fields[i])
		}
		right, bottom, err := parsePair(fields[i+1])
		if err != nil {
			return model.Placement{}, "", fmt.Errorf("malformed trim offset %q", fields[i+1])
		}
		p.Trim = model.Trim{Left: left, Top: top, Right: right, Bottom: bottom}
		i += 2
	}

	for ; i < len(fields); i++ {
		switch fields[i] {
		case "rotated":
			p.Rotated = true
		default:
			return model.Placement{}, "", fmt.Errorf("unknown sprite attribute %q", fields[i])
		}
	}

	return p, path, nil
}

// readQuoted reads a Go-syntax double-quoted string from the start of s
// and returns its decoded value plus whatever text follows it.
func readQuoted(s string) (string, string, error) {
	if len(s) == 0 || s[0] != '"' {
		return "", "", fmt.Errorf("expected quoted path, got %q", s)
	}
	for i := 1; i < len(s); i++ {
		if s[i] == '\\' {
			i++
			continue
		}
		if s[i] == '"' {
			quoted := s[:i+1]
			decoded, err := strconv.Unquote(quoted)
			if err != nil {
				return "", "", fmt.Errorf("malformed quoted path %q: %w", quoted, err)
			}
			return decoded, s[i+1:], nil
		}
	}
	return "", "", fmt.Errorf("unterminated quoted path in %q", s)
}

func parseErr(line int, directive string, err error) error {
	return apperr.Newf(apperr.Usage, "layout.Parse", "line %d (%s): %v", line, directive, err)
}
