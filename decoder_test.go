package appinfo

import (
	"bytes"
	"io"
	"strings"

	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"
)

var _ = Describe("decoder", func() {
	It("should read integers", func() {
		d := newDecoder(bytes.NewReader([]byte{
			0x01, 0x02, 0x03, 0x04,
			0xfe, 0xff, 0xff, 0xff,
			0x01, 0, 0, 0, 0, 0, 0, 0x80,
		}))
		Expect(d.readU32()).To(Equal(uint32(0x04030201)))
		Expect(d.readI32()).To(Equal(int32(-2)))
		Expect(d.readU64()).To(Equal(uint64(0x8000000000000001)))

		_, err := d.readU32()
		Expect(err).To(Equal(io.EOF))
	})

	It("should fail on short reads", func() {
		d := newDecoder(bytes.NewReader([]byte{1, 2}))
		_, err := d.readI64()
		Expect(err).To(Equal(io.ErrUnexpectedEOF))
	})

	It("should read strings", func() {
		d := newDecoder(strings.NewReader("common\x00\x00clienticon\x00tail"))
		Expect(d.readCString()).To(Equal("common"))
		Expect(d.readCString()).To(Equal(""))
		Expect(d.readCString()).To(Equal("clienticon"))

		_, err := d.readCString()
		Expect(err).To(Equal(io.ErrUnexpectedEOF))
	})

	It("should reject invalid text", func() {
		d := newDecoder(bytes.NewReader([]byte{'a', 0xff, 'b', 0, 'o', 'k', 0}))
		_, err := d.readCString()
		Expect(err).To(Equal(errInvalidText))
		Expect(d.readCString()).To(Equal("ok"))
	})

	It("should buffer plain readers", func() {
		d := newDecoder(io.MultiReader(strings.NewReader("ab"), strings.NewReader("c\x00")))
		Expect(d.readCString()).To(Equal("abc"))
	})
})

var _ = Describe("keyTable", func() {
	It("should load", func() {
		src := bytes.NewReader([]byte("xxxx\x02\x00\x00\x00appinfo\x00appid\x00"))
		_, err := src.Seek(2, io.SeekStart)
		Expect(err).NotTo(HaveOccurred())

		keys, err := loadKeyTable(src, 4)
		Expect(err).NotTo(HaveOccurred())
		Expect(keys).To(Equal(keyTable{"appinfo", "appid"}))
		Expect(src.Seek(0, io.SeekCurrent)).To(Equal(int64(2)))
	})

	It("should fail on truncated tables", func() {
		src := bytes.NewReader([]byte("\x03\x00\x00\x00appinfo\x00appid\x00"))
		_, err := loadKeyTable(src, 0)
		Expect(err).To(MatchError(`appinfo: key 2: unexpected EOF`))
	})

	It("should resolve", func() {
		keys := keyTable{"appinfo", "appid", "common", "clienticon"}
		Expect(keys.Resolve(0)).To(Equal("appinfo"))
		Expect(keys.Resolve(3)).To(Equal("clienticon"))
		Expect(keys.Resolve(4)).To(Equal("unknown_4"))
		Expect(keys.Resolve(-1)).To(Equal("unknown_-1"))
		Expect(keyTable{}.Resolve(0)).To(Equal("unknown_0"))
	})
})

var _ = Describe("Options", func() {
	It("should normalize", func() {
		o := (*Options)(nil).norm()
		Expect(o.MaxPayloadSize).To(Equal(64 << 20))
		Expect(o.MaxSnapshotSize).To(Equal(int64(1 << 30)))
		Expect(o.Logger).NotTo(BeNil())
		Expect(o.StrictTags).To(BeFalse())

		o = (&Options{MaxPayloadSize: 10, StrictTags: true}).norm()
		Expect(o.MaxPayloadSize).To(Equal(10))
		Expect(o.StrictTags).To(BeTrue())
	})
})
