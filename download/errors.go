package download

import (
	"errors"
	"fmt"
)

// MissingURL indicates that a post lacks the url its selected variant needs.
// The post cannot be downloaded without intervention.
var MissingURL = errors.New("no url detected")

// FilesystemError is returned when creating a directory or writing a
// downloaded file fails.
type FilesystemError struct {
	Op   string
	Path string
	Err  error
}

func (e *FilesystemError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

func (e *FilesystemError) Unwrap() error {
	return e.Err
}

// TransferError is returned when a request cannot be built or sent, the
// server answers with a non-2xx status, or the response body cannot be read
// in full. StatusCode is 0 if no response was received.
type TransferError struct {
	URL        string
	StatusCode int
	Err        error
}

func (e *TransferError) Error() string {
	return fmt.Sprintf("transfer %s: %v", e.URL, e.Err)
}

func (e *TransferError) Unwrap() error {
	return e.Err
}
