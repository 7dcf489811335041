package appinfo

import (
	"bufio"
	"encoding/binary"
	"io"
	"unicode/utf8"
)

type byteReader interface {
	io.Reader
	io.ByteReader
}

// decoder reads little-endian primitives from a byte stream.
type decoder struct {
	r   byteReader
	tmp [8]byte
	str []byte // scratch for strings
}

func newDecoder(r io.Reader) *decoder {
	br, ok := r.(byteReader)
	if !ok {
		br = bufio.NewReader(r)
	}
	return &decoder{r: br}
}

func (d *decoder) readByte() (byte, error) {
	return d.r.ReadByte()
}

func (d *decoder) readExact(p []byte) error {
	_, err := io.ReadFull(d.r, p)
	return err
}

func (d *decoder) readU32() (uint32, error) {
	if err := d.readExact(d.tmp[:4]); err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint32(d.tmp[:4]), nil
}

func (d *decoder) readI32() (int32, error) {
	u, err := d.readU32()
	return int32(u), err
}

func (d *decoder) readU64() (uint64, error) {
	if err := d.readExact(d.tmp[:8]); err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint64(d.tmp[:8]), nil
}

func (d *decoder) readI64() (int64, error) {
	u, err := d.readU64()
	return int64(u), err
}

// readCString reads up to and including the next zero byte. The terminator
// is consumed even when the content turns out to be invalid.
func (d *decoder) readCString() (string, error) {
	d.str = d.str[:0]
	for {
		c, err := d.r.ReadByte()
		if err == io.EOF {
			return "", io.ErrUnexpectedEOF
		} else if err != nil {
			return "", err
		}
		if c == 0 {
			break
		}
		d.str = append(d.str, c)
	}

	if !utf8.Valid(d.str) {
		return "", errInvalidText
	}
	return string(d.str), nil
}
