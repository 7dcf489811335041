// Package appinfotest writes appinfo files for tests.
package appinfotest

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"sort"

	"github.com/bsm/appinfo"
	"github.com/golang/snappy"
)

// Default header values, as found in current Steam clients.
const (
	DefaultMagic    = 0x07564429
	DefaultUniverse = 1
)

var errClosed = errors.New("appinfotest: is closed")

// Compression is the output compression.
type Compression byte

// Supported compression codecs
const (
	NoCompression Compression = iota
	SnappyCompression
)

// WriterOptions define writer specific options.
type WriterOptions struct {
	// Magic is written verbatim.
	// Default: DefaultMagic.
	Magic uint32

	// Universe is written verbatim.
	// Default: DefaultUniverse.
	Universe uint32

	// Compression wraps the whole file in the snappy framing format.
	// Default: NoCompression.
	Compression Compression
}

func (o *WriterOptions) norm() *WriterOptions {
	var oo WriterOptions
	if o != nil {
		oo = *o
	}

	if oo.Magic == 0 {
		oo.Magic = DefaultMagic
	}
	if oo.Universe == 0 {
		oo.Universe = DefaultUniverse
	}
	return &oo
}

// Writer instances can write an appinfo file. Entries are buffered until
// Close as the header must point past them.
type Writer struct {
	w io.Writer
	o *WriterOptions

	keys  []string
	index map[string]int32

	buf []byte // entries
	tmp []byte // scratch buffer
}

// NewWriter wraps a writer and returns a Writer.
func NewWriter(w io.Writer, o *WriterOptions) *Writer {
	return &Writer{
		w:     w,
		o:     o.norm(),
		index: make(map[string]int32),
		tmp:   make([]byte, 8),
	}
}

// Key interns name and returns its key table index.
func (w *Writer) Key(name string) int32 {
	if n, ok := w.index[name]; ok {
		return n
	}
	n := int32(len(w.keys))
	w.keys = append(w.keys, name)
	w.index[name] = n
	return n
}

// Encode encodes tree as a payload, interning keys. Keys are written in
// sorted order.
func (w *Writer) Encode(tree appinfo.Object) ([]byte, error) {
	return w.encodeObject(nil, tree)
}

func (w *Writer) encodeObject(dst []byte, obj appinfo.Object) ([]byte, error) {
	names := make([]string, 0, len(obj))
	for name := range obj {
		names = append(names, name)
	}
	sort.Strings(names)

	var err error
	for _, name := range names {
		switch v := obj[name].(type) {
		case appinfo.Object:
			dst = w.appendKey(append(dst, 0x00), name)
			if dst, err = w.encodeObject(dst, v); err != nil {
				return nil, err
			}
		case appinfo.String:
			dst = w.appendKey(append(dst, 0x01), name)
			dst = append(append(dst, string(v)...), 0)
		case appinfo.Int:
			dst = w.appendKey(append(dst, 0x02), name)
			dst = binary.LittleEndian.AppendUint32(dst, uint32(v))
		default:
			return nil, fmt.Errorf("appinfotest: unsupported value %T for key %q", v, name)
		}
	}
	return append(dst, 0x08), nil
}

func (w *Writer) appendKey(dst []byte, name string) []byte {
	return binary.LittleEndian.AppendUint32(dst, uint32(w.Key(name)))
}

// Append appends an entry for appID with an encoded tree.
func (w *Writer) Append(appID uint32, tree appinfo.Object) error {
	payload, err := w.Encode(tree)
	if err != nil {
		return err
	}
	return w.AppendRaw(appID, payload)
}

// AppendRaw appends an entry for appID with a raw payload.
func (w *Writer) AppendRaw(appID uint32, payload []byte) error {
	return w.AppendEntry(appinfo.EntryHeader{
		AppID: appID,
		Size:  uint32(len(payload) + 60),
	}, payload)
}

// AppendEntry appends an entry verbatim. The declared size in hdr is
// written as given, even if it does not match the payload.
func (w *Writer) AppendEntry(hdr appinfo.EntryHeader, payload []byte) error {
	if w.tmp == nil {
		return errClosed
	}

	le := binary.LittleEndian
	w.buf = le.AppendUint32(w.buf, hdr.AppID)
	w.buf = le.AppendUint32(w.buf, hdr.Size)
	w.buf = le.AppendUint32(w.buf, hdr.InfoState)
	w.buf = le.AppendUint32(w.buf, hdr.LastUpdated)
	w.buf = le.AppendUint64(w.buf, hdr.AccessToken)
	w.buf = append(w.buf, hdr.SHA1[:]...)
	w.buf = le.AppendUint32(w.buf, hdr.ChangeNumber)
	w.buf = append(w.buf, hdr.PayloadSHA1[:]...)
	w.buf = append(w.buf, payload...)
	return nil
}

// Close writes the file.
func (w *Writer) Close() error {
	if w.tmp == nil {
		return errClosed
	}

	out := w.w
	var snp *snappy.Writer
	if w.o.Compression == SnappyCompression {
		snp = snappy.NewBufferedWriter(w.w)
		out = snp
	}

	if err := w.writeHeader(out); err != nil {
		return err
	}
	if _, err := out.Write(w.buf); err != nil {
		return err
	}
	if err := w.writeKeyTable(out); err != nil {
		return err
	}
	if snp != nil {
		if err := snp.Close(); err != nil {
			return err
		}
	}

	w.tmp = nil
	return nil
}

func (w *Writer) writeHeader(out io.Writer) error {
	keyTableOffset := 16 + int64(len(w.buf)) + 4

	hdr := make([]byte, 0, 16)
	hdr = binary.LittleEndian.AppendUint32(hdr, w.o.Magic)
	hdr = binary.LittleEndian.AppendUint32(hdr, w.o.Universe)
	hdr = binary.LittleEndian.AppendUint64(hdr, uint64(keyTableOffset))
	_, err := out.Write(hdr)
	return err
}

func (w *Writer) writeKeyTable(out io.Writer) error {
	// zero app id terminates the entry run
	binary.LittleEndian.PutUint32(w.tmp, 0)
	if _, err := out.Write(w.tmp[:4]); err != nil {
		return err
	}

	binary.LittleEndian.PutUint32(w.tmp, uint32(len(w.keys)))
	if _, err := out.Write(w.tmp[:4]); err != nil {
		return err
	}
	for _, key := range w.keys {
		if _, err := io.WriteString(out, key+"\x00"); err != nil {
			return err
		}
	}
	return nil
}
