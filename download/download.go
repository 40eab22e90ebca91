package download

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
)

// GetBody performs an http GET with url=u using the supplied client. The
// returned body respects ctx and reports read failures as *TransferError.
// The caller must close it.
func GetBody(ctx context.Context, hc *http.Client, u string) (io.ReadCloser, error) {
	pu, err := url.Parse(u)
	if err != nil {
		return nil, &TransferError{URL: u, Err: err}
	}
	if pu.Scheme == "" || pu.Host == "" {
		return nil, &TransferError{URL: u, Err: fmt.Errorf("not an absolute url")}
	}

	req, err := http.NewRequestWithContext(ctx, "GET", u, nil)
	if err != nil {
		return nil, &TransferError{URL: u, Err: err}
	}

	rsp, err := hc.Do(req)
	if err != nil {
		return nil, &TransferError{URL: u, Err: fmt.Errorf("failed to send request: %w", err)}
	}

	if rsp.StatusCode < 200 || rsp.StatusCode >= 300 {
		rsp.Body.Close()
		return nil, &TransferError{
			URL:        u,
			StatusCode: rsp.StatusCode,
			Err:        fmt.Errorf("error status: %s", rsp.Status),
		}
	}

	return &bodyReader{
		r:          NewContextReader(ctx, rsp.Body),
		c:          rsp.Body,
		url:        u,
		statusCode: rsp.StatusCode,
	}, nil
}

// bodyReader tags errors from reading a response body so they can be told
// apart from errors writing it to disk.
type bodyReader struct {
	r          io.Reader
	c          io.Closer
	url        string
	statusCode int
}

func (br *bodyReader) Read(p []byte) (int, error) {
	n, err := br.r.Read(p)
	if err != nil && !errors.Is(err, io.EOF) {
		err = &TransferError{
			URL:        br.url,
			StatusCode: br.statusCode,
			Err:        fmt.Errorf("failed to read body: %w", err),
		}
	}
	return n, err
}

func (br *bodyReader) Close() error {
	return br.c.Close()
}
