package fileutil

import (
	"bufio"
	"io"
	"os"

	"github.com/google/uuid"
)

// FileExists returns true if a file or directory with the given path exists.
func FileExists(filename string) bool {
	_, err := os.Stat(filename)
	return err == nil
}

// IsDir returns true if a directory with the given path exists.
func IsDir(filename string) bool {
	info, err := os.Stat(filename)
	return err == nil && info.IsDir()
}

// TempPath returns a unique sibling path of filename for writing a partial
// file to. It never equals filename.
func TempPath(filename string) string {
	return filename + "." + uuid.NewString() + ".part"
}

// WriteFileAtomic creates filename with the content that fill writes. fill
// writes to a buffered temporary file in the same directory, which is renamed
// to filename only after fill returns nil and the file is synced. On error
// the temporary file is removed and filename is left untouched.
//
// Errors returned by fill are returned unchanged. Filesystem errors are
// returned as *os.PathError or *os.LinkError.
func WriteFileAtomic(filename string, fill func(w io.Writer) error) (err error) {
	tmp := TempPath(filename)

	f, err := os.OpenFile(tmp, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0644)
	if err != nil {
		return err
	}

	defer func() {
		if err != nil {
			f.Close()
			os.Remove(tmp)
		}
	}()

	bw := bufio.NewWriter(f)
	if err = fill(bw); err != nil {
		return err
	}
	if err = bw.Flush(); err != nil {
		return &os.PathError{Op: "write", Path: tmp, Err: err}
	}
	if err = f.Sync(); err != nil {
		return err
	}
	if err = f.Close(); err != nil {
		return err
	}

	return os.Rename(tmp, filename)
}
