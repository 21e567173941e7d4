package reader

import (
	"compress/gzip"
	"errors"
	"io"
	"os"

	"github.com/anvesh9652/csvbench/pkg/shared"
)

type FileGzipReader struct {
	actualReader *os.File
	gzReader     *gzip.Reader
}

var _ io.ReadCloser = (*FileGzipReader)(nil)

// Return a reader that internally handles both compressed and uncompressed files.
func NewFileGzipReader(file string) (*FileGzipReader, error) {
	f, err := os.Open(file)
	if err != nil {
		return nil, err
	}
	fzr := &FileGzipReader{actualReader: f}
	if shared.IsGZIPFile(file) {
		gr, err := gzip.NewReader(f)
		if err != nil {
			// don't leak the descriptor when the gzip header is bad
			return nil, errors.Join(err, f.Close())
		}
		fzr.gzReader = gr
	}
	return fzr, nil
}

func (r *FileGzipReader) Read(p []byte) (int, error) {
	if r.gzReader != nil {
		return r.gzReader.Read(p)
	}
	return r.actualReader.Read(p)
}

// Size is the on-disk size of the underlying file, not the decompressed size.
// It is -1 when the file can't be stat'ed.
func (r *FileGzipReader) Size() int64 {
	info, err := r.actualReader.Stat()
	if err != nil {
		return -1
	}
	return info.Size()
}

// Close both the GZIP reader and the actual file reader.
func (r *FileGzipReader) Close() error {
	var err error
	if r.gzReader != nil {
		err = r.gzReader.Close()
	}
	return errors.Join(err, r.actualReader.Close())
}
