package download

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/ccollins476ad/booruscrape/booru"
	"github.com/flytam/filenamify"
)

const (
	// Large file urls containing this are animated posts encoded as webm.
	webmMarker = ".webm"

	// Some animated posts report "zip" (ugoira) as their extension even
	// though their large file is a webm.
	zipExt  = "zip"
	webmExt = "webm"
)

// SelectVariant returns the url to download for the given post and the
// extension to save it with. It picks the large file when that is a webm
// and the standard file otherwise. It returns MissingURL if the selected
// variant has no url.
func SelectVariant(p booru.Post) (string, string, error) {
	isWebm := p.LargeFileURL != nil && strings.Contains(*p.LargeFileURL, webmMarker)

	ext := p.FileExt
	if ext == zipExt && isWebm {
		ext = webmExt
	}

	ext, err := sanitizeExt(ext)
	if err != nil {
		return "", "", err
	}

	var u *string
	if isWebm {
		u = p.LargeFileURL
	} else {
		u = p.FileURL
	}
	if u == nil {
		return "", "", fmt.Errorf("post %d: %w", p.ID, MissingURL)
	}

	return *u, ext, nil
}

// sanitizeExt keeps remote metadata from smuggling path separators into the
// destination filename. Extensions without separators or NUL bytes pass
// through unchanged.
func sanitizeExt(ext string) (string, error) {
	if !strings.ContainsAny(ext, "/\\\x00") {
		return ext, nil
	}

	clean, err := filenamify.Filenamify(ext, filenamify.Options{Replacement: "_"})
	if err != nil {
		return "", &FilesystemError{Op: "name", Path: ext, Err: err}
	}
	return clean, nil
}

// Filename returns the path, relative to a store's destination directory,
// that the given post is saved to: <rating subfolder>/<score>_<id>.<ext>.
func Filename(p booru.Post, ext string) string {
	return filepath.Join(p.Rating.Subfolder(), fmt.Sprintf("%d_%d.%s", p.Score, p.ID, ext))
}

// DestPath returns the path under destDir that the given post is saved to.
func DestPath(destDir string, p booru.Post, ext string) string {
	return filepath.Join(destDir, Filename(p, ext))
}
