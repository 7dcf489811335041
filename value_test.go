package appinfo_test

import (
	"bytes"
	"strings"

	"github.com/bsm/appinfo"
	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"
)

var _ = Describe("Parse", func() {
	It("should parse inline keys", func() {
		obj, err := appinfo.Parse(strings.NewReader(""+
			"\x00shortcuts\x00"+
			"\x00"+"0\x00"+
			"\x01AppName\x00Half-Life\x00"+
			"\x02appid\x00\x46\x00\x00\x00"+
			"\x08\x08\x08"), nil)
		Expect(err).NotTo(HaveOccurred())
		Expect(obj).To(Equal(appinfo.Object{
			"shortcuts": appinfo.Object{
				"0": appinfo.Object{
					"AppName": appinfo.String("Half-Life"),
					"appid":   appinfo.Int(70),
				},
			},
		}))
	})

	It("should parse indexed keys", func() {
		keys := []string{"name", "appid"}
		obj, err := appinfo.Parse(bytes.NewReader([]byte{
			0x01, 1, 0, 0, 0, 'x', 0,
			0x02, 1, 0, 0, 0, 0xff, 0xff, 0xff, 0xff,
			0x01, 0, 0, 0, 0, 'T', 'F', '2', 0,
			0x08,
		}), keys)
		Expect(err).NotTo(HaveOccurred())
		Expect(obj).To(Equal(appinfo.Object{
			"appid": appinfo.Int(-1), // last one wins
			"name":  appinfo.String("TF2"),
		}))
	})

	It("should stop at the first end tag", func() {
		obj, err := appinfo.Parse(strings.NewReader("\x01a\x00b\x00\x08\x01c\x00d\x00\x08"), nil)
		Expect(err).NotTo(HaveOccurred())
		Expect(obj).To(Equal(appinfo.Object{"a": appinfo.String("b")}))
	})

	It("should return partial data on exhausted input", func() {
		obj, err := appinfo.Parse(strings.NewReader("\x01a\x00b\x00\x00c\x00\x02d\x00\x01\x00\x00\x00"), nil)
		Expect(err).NotTo(HaveOccurred())
		Expect(obj).To(Equal(appinfo.Object{
			"a": appinfo.String("b"),
			"c": appinfo.Object{"d": appinfo.Int(1)},
		}))

		obj, err = appinfo.Parse(strings.NewReader(""), nil)
		Expect(err).NotTo(HaveOccurred())
		Expect(obj).To(BeEmpty())
	})

	It("should fail on truncated values", func() {
		_, err := appinfo.Parse(strings.NewReader("\x02a\x00\x01\x00"), nil)
		Expect(err).To(HaveOccurred())

		_, err = appinfo.Parse(strings.NewReader("\x00a\x00\x01b\x00trunc"), nil)
		Expect(err).To(HaveOccurred())

		_, err = appinfo.Parse(bytes.NewReader([]byte{0x01, 0, 0}), []string{"a"})
		Expect(err).To(HaveOccurred())
	})

	It("should not read past the end tag of byte readers", func() {
		src := bytes.NewReader([]byte("\x01a\x00b\x00\x08next"))
		obj, err := appinfo.Parse(src, nil)
		Expect(err).NotTo(HaveOccurred())
		Expect(obj).To(Equal(appinfo.Object{"a": appinfo.String("b")}))
		Expect(src.Len()).To(Equal(4))
	})

	It("should fail on invalid text", func() {
		_, err := appinfo.Parse(strings.NewReader("\x01a\x00\xc3\x28\x00\x08"), nil)
		Expect(err).To(MatchError(`appinfo: string is not valid UTF-8`))
	})

	It("should skip unknown tags", func() {
		// a string-like value
		obj, err := appinfo.Parse(strings.NewReader("\x07a\x00skip\x00\x01b\x00c\x00\x08"), nil)
		Expect(err).NotTo(HaveOccurred())
		Expect(obj).To(Equal(appinfo.Object{"b": appinfo.String("c")}))

		// nothing readable after the key
		obj, err = appinfo.Parse(strings.NewReader("\x01b\x00c\x00\x05a\x00"), nil)
		Expect(err).NotTo(HaveOccurred())
		Expect(obj).To(Equal(appinfo.Object{"b": appinfo.String("c")}))
	})
})

var _ = Describe("Object", func() {
	subject := appinfo.Object{
		"appinfo": appinfo.Object{
			"appid": appinfo.Int(440),
			"common": appinfo.Object{
				"name":       appinfo.String("Team Fortress 2"),
				"clienticon": appinfo.String("e3f595a92552da3d664ad00277fad2107345f743"),
			},
		},
	}

	It("should lookup", func() {
		v, ok := subject.Lookup()
		Expect(ok).To(BeTrue())
		Expect(v).To(Equal(subject))

		v, ok = subject.Lookup("appinfo", "appid")
		Expect(ok).To(BeTrue())
		Expect(v).To(Equal(appinfo.Int(440)))

		_, ok = subject.Lookup("appinfo", "missing")
		Expect(ok).To(BeFalse())
		_, ok = subject.Lookup("appinfo", "appid", "deeper")
		Expect(ok).To(BeFalse())
	})

	It("should return typed values", func() {
		n, ok := subject.Int("appinfo", "appid")
		Expect(ok).To(BeTrue())
		Expect(n).To(Equal(int32(440)))

		s, ok := subject.Text("appinfo", "common", "name")
		Expect(ok).To(BeTrue())
		Expect(s).To(Equal("Team Fortress 2"))

		obj, ok := subject.Object("appinfo", "common")
		Expect(ok).To(BeTrue())
		Expect(obj).To(HaveLen(2))

		_, ok = subject.Text("appinfo", "appid")
		Expect(ok).To(BeFalse())
		_, ok = subject.Int("appinfo", "common")
		Expect(ok).To(BeFalse())
		_, ok = subject.Object("appinfo", "common", "name")
		Expect(ok).To(BeFalse())
	})
})
