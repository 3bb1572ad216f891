package ingest

import (
	"io/fs"
	"path"
	"strings"
)

type SourceFile struct {
	Path string
}

// Discover lists the markdown files directly inside dir. Subdirectories are
// not descended into. Paths are returned in lexical order, joined with dir.
func Discover(fsys fs.FS, dir string) ([]SourceFile, error) {
	entries, err := fs.ReadDir(fsys, dir)
	if err != nil {
		return nil, err
	}

	var out []SourceFile
	for _, d := range entries {
		if d.IsDir() {
			continue
		}
		if strings.HasSuffix(d.Name(), ".md") {
			out = append(out, SourceFile{Path: path.Join(dir, d.Name())})
		}
	}
	return out, nil
}
