package langserver

import (
	"io"

	"go.uber.org/multierr"
)

// readWriteCloser joins the server's stdout and stdin pipes into the single
// stream that jsonrpc2 expects.
type readWriteCloser struct {
	reader io.ReadCloser
	writer io.WriteCloser
}

func (r *readWriteCloser) Read(b []byte) (int, error) {
	return r.reader.Read(b)
}

func (r *readWriteCloser) Write(b []byte) (int, error) {
	return r.writer.Write(b)
}

func (r *readWriteCloser) Close() error {
	return multierr.Append(r.reader.Close(), r.writer.Close())
}
