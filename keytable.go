package appinfo

import (
	"fmt"
	"io"
	"strconv"
)

// keyTable is the string pool referenced by key indices in entry payloads.
type keyTable []string

// loadKeyTable reads the key table at the absolute offset and restores the
// cursor of rs to where it was before the call.
func loadKeyTable(rs io.ReadSeeker, offset int64) (keyTable, error) {
	pos, err := rs.Seek(0, io.SeekCurrent)
	if err != nil {
		return nil, err
	}
	if _, err := rs.Seek(offset, io.SeekStart); err != nil {
		return nil, err
	}

	d := newDecoder(rs)
	cnt, err := d.readI32()
	if err != nil {
		return nil, err
	}
	if cnt < 0 {
		return nil, fmt.Errorf("%w: negative key count %d", ErrCorrupt, cnt)
	}

	keys := make(keyTable, 0, min(int(cnt), 1<<16))
	for i := int32(0); i < cnt; i++ {
		s, err := d.readCString()
		if err != nil {
			return nil, fmt.Errorf("appinfo: key %d: %w", i, err)
		}
		keys = append(keys, s)
	}

	if _, err := rs.Seek(pos, io.SeekStart); err != nil {
		return nil, err
	}
	return keys, nil
}

// Resolve returns the key at index n. Indices outside the table resolve to
// a placeholder so parsing can continue.
func (t keyTable) Resolve(n int32) string {
	if n < 0 || int(n) >= len(t) {
		return "unknown_" + strconv.Itoa(int(n))
	}
	return t[n]
}
