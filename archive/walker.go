// Package archive builds Walk abstraction on top of "archive/zip".
package archive

import (
	"archive/zip"
	"fmt"
	"path"
	"strings"
)

// MatchFunc decides if entry with the given name should be visited.
type MatchFunc func(name string) bool

// WalkFunc is the type of the function called for each file in archive
// visited by Walk. The archive argument contains path to archive passed to
// Walk. The file argument is the zip.File structure for entry which satisfies
// match condition. If an error is returned, processing stops.
type WalkFunc func(archive string, file *zip.File) error

// All matches every entry.
func All(string) bool { return true }

// Walk visits files in the archive in their physical order, calling walkFn
// for each entry accepted by match. Directory entries are skipped. Entries
// with path traversal components ("..") or absolute paths make Walk fail
// before anything is visited, OOXML packages never legitimately have them.
func Walk(archive string, match MatchFunc, walkFn WalkFunc) error {

	r, err := zip.OpenReader(archive)
	if err != nil {
		return err
	}
	defer r.Close()

	for _, f := range r.File {
		if !isSafePath(f.FileHeader.Name) {
			return fmt.Errorf("zip entry %q: unsafe path (absolute or contains path traversal)", f.FileHeader.Name)
		}
	}

	if match == nil {
		match = All
	}
	for _, f := range r.File {
		if f.FileInfo().IsDir() || !match(f.FileHeader.Name) {
			continue
		}
		if err := walkFn(archive, f); err != nil {
			return err
		}
	}
	return nil
}

// isSafePath returns false for paths that could escape the extraction
// directory: absolute paths and those containing ".." components.
func isSafePath(name string) bool {
	if path.IsAbs(name) || strings.HasPrefix(name, "/") || strings.HasPrefix(name, `\`) {
		return false
	}
	for _, part := range strings.Split(strings.ReplaceAll(name, `\`, "/"), "/") {
		if part == ".." {
			return false
		}
	}
	return true
}
