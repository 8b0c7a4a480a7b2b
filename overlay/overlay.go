// Package overlay writes translated macro replacements back over the
// original source, per spec.md §6's source overlay collaborator.
package overlay

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/appleseedlab/merc/facts"
)

// Writer applies translations to source files under SourceRoot and
// writes the results under OutputDir, mirroring the relative path of
// each input file.
type Writer struct {
	SourceRoot string
	OutputDir  string
	ReadOnly   bool
}

type edit struct {
	startLine, endLine, endCol int
	replacement                string
}

// ApplyAll overlays every accepted translation onto its source file. For
// each file with one or more translated macros, the file is read once,
// every macro's definition span is blanked, the rendered replacement is
// placed on its span's start line, and the result is written under
// OutputDir.
func (w Writer) ApplyAll(translations map[facts.Macro]string) error {
	byFile := make(map[string][]edit)
	for m, repl := range translations {
		start := facts.ParseLocation(m.DefinitionLocation)
		end := facts.ParseLocation(m.EndDefinitionLocation)
		if !start.Valid || !end.Valid {
			return fmt.Errorf("overlay: macro %q has an invalid definition span", m.Name)
		}
		byFile[start.File] = append(byFile[start.File], edit{
			startLine:   start.Line,
			endLine:     end.Line,
			endCol:      end.Col,
			replacement: repl,
		})
	}

	for file, edits := range byFile {
		if err := w.applyFile(file, edits); err != nil {
			return fmt.Errorf("overlay: %s: %w", file, err)
		}
	}
	return nil
}

func (w Writer) applyFile(file string, edits []edit) error {
	contents, err := os.ReadFile(file)
	if err != nil {
		return err
	}

	lines := strings.Split(string(contents), "\n")

	sort.Slice(edits, func(i, j int) bool { return edits[i].startLine < edits[j].startLine })

	for _, e := range edits {
		startIdx, endIdx := e.startLine-1, e.endLine-1
		if startIdx < 0 || endIdx < startIdx || endIdx >= len(lines) {
			return fmt.Errorf("definition span %d..%d out of range for a %d-line file", e.startLine, e.endLine, len(lines))
		}

		trailer := trailingOpenComment(lines[endIdx], e.endCol)

		for idx := startIdx; idx <= endIdx; idx++ {
			lines[idx] = ""
		}
		if startIdx == endIdx {
			lines[startIdx] = e.replacement + trailer
		} else {
			lines[startIdx] = e.replacement
			lines[endIdx] = trailer
		}
	}

	relPath, err := filepath.Rel(w.SourceRoot, file)
	if err != nil {
		relPath = filepath.Base(file)
	}
	outPath := filepath.Join(w.OutputDir, relPath)

	if err := os.MkdirAll(filepath.Dir(outPath), 0o755); err != nil {
		return err
	}
	if err := os.WriteFile(outPath, []byte(strings.Join(lines, "\n")), 0o644); err != nil {
		return err
	}
	if w.ReadOnly {
		if err := os.Chmod(outPath, 0o444); err != nil {
			return err
		}
	}
	return nil
}

// trailingOpenComment returns the text starting at a "/*" on line that
// begins at or after col and is never closed on that same line — a
// block comment that was opened on the macro's end line and continues
// past it. Blanking the macro's definition span must not swallow that
// opening token, or the comment that follows in the rest of the file
// would lose its start.
func trailingOpenComment(line string, col int) string {
	if col < 0 || col > len(line) {
		return ""
	}
	rest := line[col:]
	idx := strings.Index(rest, "/*")
	if idx < 0 {
		return ""
	}
	comment := rest[idx:]
	if strings.Contains(comment, "*/") {
		return ""
	}
	return comment
}
