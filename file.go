package appinfo

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"

	"github.com/golang/snappy"
)

// snappy framing format stream identifier
var snappyMagic = []byte("\xff\x06\x00\x00sNaPpY")

// File is a Reader bound to an open file.
type File struct {
	*Reader
	f *os.File
}

// Open opens the appinfo file at path. Snapshots stored in the snappy
// framing format are decompressed into memory first.
func Open(path string, o *Options) (*File, error) {
	f, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s: %w", ErrFileNotFound, path, fs.ErrNotExist)
	} else if err != nil {
		return nil, err
	}

	o = o.norm()
	rs, err := sniff(f, o.MaxSnapshotSize)
	if err != nil {
		_ = f.Close()
		return nil, err
	}

	r, err := NewReader(rs, o)
	if err != nil {
		_ = f.Close()
		return nil, err
	}
	return &File{Reader: r, f: f}, nil
}

// Close closes the underlying file.
func (f *File) Close() error {
	return f.f.Close()
}

func sniff(f *os.File, maxSize int64) (io.ReadSeeker, error) {
	tmp := make([]byte, len(snappyMagic))
	n, err := io.ReadFull(f, tmp)
	if err != nil && err != io.ErrUnexpectedEOF && err != io.EOF {
		return nil, err
	}
	if _, err := f.Seek(0, io.SeekStart); err != nil {
		return nil, err
	}
	if !bytes.Equal(tmp[:n], snappyMagic) {
		return f, nil
	}

	plain, err := io.ReadAll(io.LimitReader(snappy.NewReader(f), maxSize+1))
	if err != nil {
		return nil, err
	}
	if int64(len(plain)) > maxSize {
		return nil, fmt.Errorf("%w: snapshot exceeds %d bytes", ErrCorrupt, maxSize)
	}
	return bytes.NewReader(plain), nil
}
