package appinfo

import (
	"bytes"
	"fmt"
	"io"
)

// Header is the fixed file header. Magic and universe are exposed as read,
// they are not validated.
type Header struct {
	Magic          uint32
	Universe       uint32
	KeyTableOffset int64 // absolute offset of the key table
}

// EntryHeader holds the fixed metadata preceding each entry payload.
type EntryHeader struct {
	AppID        uint32
	Size         uint32 // bytes following the size field
	InfoState    uint32
	LastUpdated  uint32
	AccessToken  uint64
	SHA1         [20]byte
	ChangeNumber uint32
	PayloadSHA1  [20]byte
}

// PayloadLen returns the length of the payload following the header.
func (h *EntryHeader) PayloadLen() (int64, error) {
	if h.Size < entryMetaSize {
		return 0, fmt.Errorf("%w: app %d declares entry size %d", ErrCorrupt, h.AppID, h.Size)
	}
	return int64(h.Size) - entryMetaSize, nil
}

func (h *EntryHeader) decode(d *decoder) (err error) {
	if h.AppID, err = d.readU32(); err != nil {
		return
	}
	if h.Size, err = d.readU32(); err != nil {
		return
	}
	if h.InfoState, err = d.readU32(); err != nil {
		return
	}
	if h.LastUpdated, err = d.readU32(); err != nil {
		return
	}
	if h.AccessToken, err = d.readU64(); err != nil {
		return
	}
	if err = d.readExact(h.SHA1[:]); err != nil {
		return
	}
	if h.ChangeNumber, err = d.readU32(); err != nil {
		return
	}
	return d.readExact(h.PayloadSHA1[:])
}

// --------------------------------------------------------------------

// Reader instances can iterate across entries and find single apps.
// A Reader keeps a single cursor on the underlying source and must not be
// used concurrently.
type Reader struct {
	rs io.ReadSeeker
	o  *Options

	hdr  Header
	keys keyTable

	minOffset int64 // first entry
	maxOffset int64 // end of the entry run
}

// NewReader reads the file header and the key table.
func NewReader(rs io.ReadSeeker, o *Options) (*Reader, error) {
	if _, err := rs.Seek(0, io.SeekStart); err != nil {
		return nil, err
	}

	var tmp [headerSize]byte
	if _, err := io.ReadFull(rs, tmp[:]); err != nil {
		return nil, err
	}

	var hdr Header
	d := newDecoder(bytes.NewReader(tmp[:]))
	hdr.Magic, _ = d.readU32()
	hdr.Universe, _ = d.readU32()
	hdr.KeyTableOffset, _ = d.readI64()

	if hdr.KeyTableOffset < headerSize {
		return nil, fmt.Errorf("%w: key table offset %d", ErrCorrupt, hdr.KeyTableOffset)
	}

	keys, err := loadKeyTable(rs, hdr.KeyTableOffset)
	if err != nil {
		return nil, err
	}

	return &Reader{
		rs: rs,
		o:  o.norm(),

		hdr:  hdr,
		keys: keys,

		minOffset: headerSize,
		maxOffset: hdr.KeyTableOffset - terminatorSize,
	}, nil
}

// Header returns the file header.
func (r *Reader) Header() Header { return r.hdr }

// Keys returns the key table. The slice must not be modified.
func (r *Reader) Keys() []string { return r.keys }

// Iterate returns an iterator positioned before the first entry.
// Only one iterator per reader may be in use at a time.
func (r *Reader) Iterate() (*Iterator, error) {
	if _, err := r.rs.Seek(r.minOffset, io.SeekStart); err != nil {
		return nil, err
	}
	return &Iterator{r: r, pos: r.minOffset}, nil
}

// Find returns the parsed payload of the first entry for appID whose
// payload parses. It may return an ErrNotFound error.
func (r *Reader) Find(appID uint32) (Object, error) {
	iter, err := r.Iterate()
	if err != nil {
		return nil, err
	}
	defer iter.Release()

	for iter.Next() {
		if iter.Header().AppID != appID {
			continue
		}

		obj, err := iter.Parse()
		if err != nil {
			r.o.Logger.Debug().Uint32("appid", appID).Int64("offset", iter.Offset()).Err(err).Msg("skipping unparseable entry")
			continue
		}
		return obj, nil
	}
	if err := iter.Err(); err != nil {
		return nil, err
	}
	return nil, ErrNotFound
}

// --------------------------------------------------------------------

// Iterator walks the entries in file order.
type Iterator struct {
	r *Reader

	pos   int64 // offset of the next entry
	start int64 // payload offset of the current entry
	hdr   EntryHeader
	buf   []byte // current payload
	tmp   [entryHeaderSize]byte

	err error
}

// Next advances to the next entry and returns true if successful.
func (i *Iterator) Next() bool {
	if i.err != nil || i.pos >= i.r.maxOffset {
		return false
	}

	if _, err := io.ReadFull(i.r.rs, i.tmp[:]); err != nil {
		i.err = err
		return false
	}
	if err := i.hdr.decode(newDecoder(bytes.NewReader(i.tmp[:]))); err != nil {
		i.err = err
		return false
	}

	size, err := i.hdr.PayloadLen()
	if err != nil {
		i.err = err
		return false
	}
	if size > int64(i.r.o.MaxPayloadSize) {
		i.err = fmt.Errorf("%w: app %d declares payload of %d bytes", ErrCorrupt, i.hdr.AppID, size)
		return false
	}
	n := int(size)

	if n > cap(i.buf) {
		releaseBuffer(i.buf)
		i.buf = fetchBuffer(n)
	}
	i.buf = i.buf[:n]
	if _, err := io.ReadFull(i.r.rs, i.buf); err != nil {
		i.err = err
		return false
	}

	// the declared length decides where the next entry starts, independent
	// of how much of the payload a parse consumes
	i.start = i.pos + entryHeaderSize
	i.pos = i.start + int64(n)
	return true
}

// Header returns the header of the current entry.
func (i *Iterator) Header() EntryHeader { return i.hdr }

// Offset returns the absolute offset of the current payload.
func (i *Iterator) Offset() int64 { return i.start }

// Payload returns the raw payload of the current entry. Please note that
// payloads are temporary buffers and must be copied if used beyond the
// next cursor move.
func (i *Iterator) Payload() []byte { return i.buf }

// Parse decodes the current payload. The payload is decoded in isolation,
// errors only concern the current entry.
func (i *Iterator) Parse() (Object, error) {
	if i.err != nil {
		return nil, i.err
	}

	p := &parser{
		d:      newDecoder(bytes.NewReader(i.buf)),
		keys:   i.r.keys,
		strict: i.r.o.StrictTags,
	}
	obj, _, err := p.parseObject()
	return obj, err
}

// Err exposes iterator errors, if any.
func (i *Iterator) Err() error {
	if i.err == errReleased {
		return nil
	}
	return i.err
}

// Release releases the iterator and frees up resources. The iterator must not be used
// after this method is called.
func (i *Iterator) Release() {
	releaseBuffer(i.buf)
	i.buf = nil
	i.err = errReleased
}
