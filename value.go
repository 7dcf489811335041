package appinfo

import (
	"fmt"
	"io"
)

// Value is a node of a parsed payload tree: a String, an Int or an Object.
type Value interface {
	isValue()
}

// String is a text value.
type String string

// Int is a 32-bit signed integer value.
type Int int32

// Object maps keys to nested values.
type Object map[string]Value

func (String) isValue() {}
func (Int) isValue()    {}
func (Object) isValue() {}

// Lookup descends through nested objects along path.
func (o Object) Lookup(path ...string) (Value, bool) {
	var v Value = o
	for _, key := range path {
		obj, ok := v.(Object)
		if !ok {
			return nil, false
		}
		if v, ok = obj[key]; !ok {
			return nil, false
		}
	}
	return v, true
}

// Text returns the string value at path.
func (o Object) Text(path ...string) (string, bool) {
	v, _ := o.Lookup(path...)
	s, ok := v.(String)
	return string(s), ok
}

// Int returns the integer value at path.
func (o Object) Int(path ...string) (int32, bool) {
	v, _ := o.Lookup(path...)
	n, ok := v.(Int)
	return int32(n), ok
}

// Object returns the nested object at path.
func (o Object) Object(path ...string) (Object, bool) {
	v, _ := o.Lookup(path...)
	obj, ok := v.(Object)
	return obj, ok
}

// --------------------------------------------------------------------

// Parse decodes a single binary payload from r. Keys are resolved through
// keys; a nil table means keys are stored inline as zero-terminated strings.
// A payload that ends before its closing tag yields the data read so far.
//
// Readers that do not implement io.ByteReader are buffered, so Parse may
// consume bytes past the end of the payload from them. Pass a
// *bytes.Reader or *bufio.Reader when the stream is shared.
func Parse(r io.Reader, keys []string) (Object, error) {
	p := &parser{d: newDecoder(r), keys: keys}
	obj, _, err := p.parseObject()
	return obj, err
}

type parser struct {
	d      *decoder
	keys   keyTable // nil for inline keys
	strict bool
}

// parseObject reads key/value pairs until the end tag. The returned bool
// reports whether the input was exhausted before the end tag.
func (p *parser) parseObject() (Object, bool, error) {
	obj := make(Object)
	for {
		tag, err := p.d.readByte()
		if err != nil {
			return obj, true, nil
		}
		if tag == tagEnd {
			return obj, false, nil
		}

		key, err := p.readKey()
		if err != nil {
			return nil, false, err
		}

		switch tag {
		case tagObject:
			child, eof, err := p.parseObject()
			if err != nil {
				return nil, false, err
			}
			obj[key] = child
			if eof {
				return obj, true, nil
			}
		case tagString:
			s, err := p.d.readCString()
			if err != nil {
				return nil, false, err
			}
			obj[key] = String(s)
		case tagInt32:
			n, err := p.d.readI32()
			if err != nil {
				return nil, false, err
			}
			obj[key] = Int(n)
		default:
			if p.strict {
				return nil, false, fmt.Errorf("%w 0x%02x for key %q", errUnknownTag, tag, key)
			}
			if _, err := p.d.readCString(); err != nil {
				_, _ = p.d.readI32()
			}
		}
	}
}

func (p *parser) readKey() (string, error) {
	if p.keys == nil {
		return p.d.readCString()
	}

	n, err := p.d.readI32()
	if err != nil {
		return "", err
	}
	return p.keys.Resolve(n), nil
}
