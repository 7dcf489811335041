package appinfo

import (
	"errors"

	"github.com/rs/zerolog"
)

// Payload type tags.
const (
	tagObject = 0x00
	tagString = 0x01
	tagInt32  = 0x02
	tagEnd    = 0x08
)

const (
	headerSize      = 16 // magic + universe + key table offset
	entryHeaderSize = 68 // app id through vdf sha1

	// entry sizes are declared after the app id and size fields, so the
	// payload length is entrySize minus the rest of the fixed header.
	entryMetaSize = entryHeaderSize - 8

	// the entry run is terminated by a zero app id right before the key table.
	terminatorSize = 4
)

// ErrNotFound is returned by the reader when an app id cannot be found.
var ErrNotFound = errors.New("appinfo: not found")

// ErrFileNotFound is returned when the appinfo file does not exist.
var ErrFileNotFound = errors.New("appinfo: file not found")

// ErrCorrupt is returned when the file layout cannot be followed any further.
var ErrCorrupt = errors.New("appinfo: corrupt file")

var (
	errInvalidText = errors.New("appinfo: string is not valid UTF-8")
	errUnknownTag  = errors.New("appinfo: unknown type tag")
	errReleased    = errors.New("appinfo: iterator was released")
)

// --------------------------------------------------------------------

// Options define reader specific options.
type Options struct {
	// StrictTags fails the parse of an entry on the first unknown type tag.
	// By default an unknown tag is skipped by consuming either a string
	// or a 32-bit value, whichever reads successfully.
	StrictTags bool

	// MaxPayloadSize is the largest entry payload the reader will allocate.
	// Default: 64MiB.
	MaxPayloadSize int

	// MaxSnapshotSize is the largest decompressed size accepted for snappy
	// compressed files, which are held in memory.
	// Default: 1GiB.
	MaxSnapshotSize int64

	// Logger receives debug messages about skipped entries.
	// Default: disabled.
	Logger *zerolog.Logger
}

func (o *Options) norm() *Options {
	var oo Options
	if o != nil {
		oo = *o
	}

	if oo.MaxPayloadSize < 1 {
		oo.MaxPayloadSize = 64 << 20
	}
	if oo.MaxSnapshotSize < 1 {
		oo.MaxSnapshotSize = 1 << 30
	}
	if oo.Logger == nil {
		nop := zerolog.Nop()
		oo.Logger = &nop
	}

	return &oo
}
