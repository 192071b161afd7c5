package dex

import "testing"

func TestDecodeMUTF8(t *testing.T) {
	cases := []struct {
		name  string
		bytes []byte
		n     uint32
		want  string
	}{
		{"ascii", []byte("hello"), 5, "hello"},
		{"encoded nul", []byte{0xC0, 0x80}, 1, "\x00"},
		{"two-byte", []byte{0xC2, 0xA9}, 1, "©"},
		{"three-byte", []byte{0xE2, 0x82, 0xAC}, 1, "€"},
	}
	for _, c := range cases {
		r := newByteReader(c.bytes)
		got, err := decodeMUTF8(r, c.n)
		if err != nil {
			t.Errorf("%s: unexpected error %v", c.name, err)
			continue
		}
		if got != c.want {
			t.Errorf("%s: got %q, want %q", c.name, got, c.want)
		}
	}
}

func TestDecodeMUTF8BadContinuation(t *testing.T) {
	r := newByteReader([]byte{0xC2, 0x20}) // second byte isn't a continuation byte
	if _, err := decodeMUTF8(r, 1); err == nil {
		t.Errorf("expected BadMutf8 error for malformed continuation byte")
	}
}

func TestDecodeMUTF8IllegalLead(t *testing.T) {
	r := newByteReader([]byte{0xFF})
	if _, err := decodeMUTF8(r, 1); err == nil {
		t.Errorf("expected BadMutf8 error for illegal lead byte")
	}
}
