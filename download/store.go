package download

import (
	"context"
	"errors"
	"io"
	"net/http"
	"os"
	"path/filepath"

	"github.com/ccollins476ad/booruscrape/booru"
	"github.com/ccollins476ad/booruscrape/fileutil"
	"golang.org/x/sync/singleflight"
)

// Store downloads booru posts into a directory tree bucketed by rating.
type Store struct {
	destDir string // constant

	hc *http.Client

	// Collapses concurrent downloads that target the same destination path.
	flight singleflight.Group
}

// Desc decribes a downloaded post.
type Desc struct {
	Filename string // Relative to destination directory
	IsLocal  bool   // True if file already downloaded
}

// NewStore creates a store that saves posts under destDir. The client is
// shared by every download; nil selects http.DefaultClient.
func NewStore(destDir string, hc *http.Client) *Store {
	if hc == nil {
		hc = http.DefaultClient
	}
	return &Store{
		destDir: destDir,
		hc:      hc,
	}
}

// Download ensures the given post has been saved to disk. It is a no-op that
// reports IsLocal if the destination file already exists. Otherwise it
// streams the selected url into the destination file, which appears only
// once the full body has been written.
//
// A call that joins an in-flight download of the same file stops waiting
// when its own ctx is done. The download itself is bound to the ctx of the
// call that started it.
//
// Errors are MissingURL, *FilesystemError, or *TransferError. Nothing is
// logged or retried.
func (s *Store) Download(ctx context.Context, p booru.Post) (*Desc, error) {
	u, ext, err := SelectVariant(p)
	if err != nil {
		return nil, err
	}

	filename := Filename(p, ext)
	destPath := DestPath(s.destDir, p, ext)

	subDir := filepath.Dir(destPath)
	if err := os.MkdirAll(subDir, 0755); err != nil {
		return nil, &FilesystemError{Op: "mkdir", Path: subDir, Err: err}
	}

	ch := s.flight.DoChan(destPath, func() (any, error) {
		if fileutil.FileExists(destPath) {
			return Desc{Filename: filename, IsLocal: true}, nil
		}

		if err := s.fetch(ctx, u, destPath); err != nil {
			return nil, err
		}
		return Desc{Filename: filename, IsLocal: false}, nil
	})

	select {
	case <-ctx.Done():
		return nil, &TransferError{URL: u, Err: ctx.Err()}

	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		desc := res.Val.(Desc)
		return &desc, nil
	}
}

// fetch streams url=u into a new file at destPath.
func (s *Store) fetch(ctx context.Context, u string, destPath string) error {
	body, err := GetBody(ctx, s.hc, u)
	if err != nil {
		return err
	}
	defer body.Close()

	err = fileutil.WriteFileAtomic(destPath, func(w io.Writer) error {
		_, err := io.Copy(w, body)
		return err
	})
	if err != nil {
		var te *TransferError
		if errors.As(err, &te) {
			return err
		}
		return &FilesystemError{Op: "write", Path: destPath, Err: err}
	}

	return nil
}

// DestDir returns the store's destination directory.
func (s *Store) DestDir() string {
	return s.destDir
}
