package records

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
)

var (
	gzipMagic = []byte{0x1f, 0x8b}
	zstdMagic = []byte{0x28, 0xb5, 0x2f, 0xfd}
)

type decompressReader struct {
	io.Reader
	closers []io.Closer
}

type closerFunc func() error

func (fn closerFunc) Close() error { return fn() }

func (d *decompressReader) Close() error {
	var first error
	for _, c := range d.closers {
		if err := c.Close(); err != nil && first == nil {
			first = err
		}
	}
	return first
}

// Open opens an STDF file for reading, transparently decompressing
// gzip and zstd containers. Detection is by magic bytes, not file
// extension, so renamed files still work.
func Open(name string) (io.ReadCloser, error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, err
	}
	rc, err := wrapCompressed(f)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("open %s: %w", name, err)
	}
	return rc, nil
}

func wrapCompressed(f *os.File) (io.ReadCloser, error) {
	br := bufio.NewReader(f)
	magic, err := br.Peek(4)
	if err != nil {
		// Too short for any container; pass the bytes through and let
		// the record stream end where it ends.
		return &decompressReader{Reader: br, closers: []io.Closer{f}}, nil
	}
	switch {
	case magic[0] == gzipMagic[0] && magic[1] == gzipMagic[1]:
		zr, err := gzip.NewReader(br)
		if err != nil {
			return nil, err
		}
		return &decompressReader{Reader: zr, closers: []io.Closer{zr, f}}, nil
	case magic[0] == zstdMagic[0] && magic[1] == zstdMagic[1] &&
		magic[2] == zstdMagic[2] && magic[3] == zstdMagic[3]:
		zr, err := zstd.NewReader(br)
		if err != nil {
			return nil, err
		}
		closeDec := closerFunc(func() error { zr.Close(); return nil })
		return &decompressReader{Reader: zr, closers: []io.Closer{closeDec, f}}, nil
	}
	return &decompressReader{Reader: br, closers: []io.Closer{f}}, nil
}
