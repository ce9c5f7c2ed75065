package filewalker

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"script-translator/internal/parser"

	"github.com/rs/zerolog/log"
)

// Walker lists the script files of a directory and dispatches them to the
// correct parser.
type Walker struct {
	parsers []parser.Parser
}

// NewWalker creates a Walker over the given parsers. With none, it handles
// Ren'Py files with the given extension.
func NewWalker(ext string, parsers ...parser.Parser) *Walker {
	if len(parsers) == 0 {
		parsers = []parser.Parser{parser.NewRenpyParser(ext)}
	}
	return &Walker{parsers: parsers}
}

// FileEntry represents a discovered file ready for processing.
type FileEntry struct {
	Path   string
	Ext    string
	Parser parser.Parser
}

// Walk returns the supported regular files directly inside root, sorted by
// name. Subdirectories are not visited. Extensions match case-sensitively.
func (w *Walker) Walk(root string) ([]FileEntry, error) {
	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("stat root: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("root is not a directory: %s", root)
	}

	dirEntries, err := os.ReadDir(root)
	if err != nil {
		return nil, fmt.Errorf("read directory: %w", err)
	}

	var entries []FileEntry
	for _, de := range dirEntries {
		name := de.Name()
		if !isFile(filepath.Join(root, name), de) {
			continue
		}
		ext := filepath.Ext(name)

		for _, p := range w.parsers {
			if p.CanParse(ext) {
				entries = append(entries, FileEntry{
					Path:   filepath.Join(root, name),
					Ext:    ext,
					Parser: p,
				})
				break
			}
		}
	}

	// ReadDir already sorts; keep the order explicit for other parser sets.
	sort.Slice(entries, func(i, j int) bool {
		return filepath.Base(entries[i].Path) < filepath.Base(entries[j].Path)
	})

	log.Info().Int("count", len(entries)).Str("root", root).Msg("Discovered files")
	return entries, nil
}

// isFile reports whether de is a regular file, following symlinks.
func isFile(path string, de os.DirEntry) bool {
	if de.Type()&os.ModeSymlink == 0 {
		return de.Type().IsRegular()
	}
	info, err := os.Stat(path)
	if err != nil {
		log.Warn().Err(err).Str("path", path).Msg("Skipping broken link")
		return false
	}
	return info.Mode().IsRegular()
}
