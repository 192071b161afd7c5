package dex

import "testing"

func TestReadULEB128(t *testing.T) {
	cases := []struct {
		bytes []byte
		want  uint32
	}{
		{[]byte{0x00}, 0},
		{[]byte{0x7f}, 127},
		{[]byte{0x80, 0x01}, 128},
		{[]byte{0xe5, 0x8e, 0x26}, 624485},
	}
	for _, c := range cases {
		r := newByteReader(c.bytes)
		got, err := r.readULEB128()
		if err != nil {
			t.Errorf("readULEB128(%v): unexpected error %v", c.bytes, err)
			continue
		}
		if got != c.want {
			t.Errorf("readULEB128(%v) = %d, want %d", c.bytes, got, c.want)
		}
	}
}

func TestReadULEB128Overflow(t *testing.T) {
	r := newByteReader([]byte{0x80, 0x80, 0x80, 0x80, 0x80, 0x01})
	if _, err := r.readULEB128(); err == nil {
		t.Errorf("expected LebOverflow error for 6-byte sequence")
	}
}

func TestReadSLEB128(t *testing.T) {
	cases := []struct {
		bytes []byte
		want  int32
	}{
		{[]byte{0x00}, 0},
		{[]byte{0x7f}, -1},
		{[]byte{0x3f}, 63},
		{[]byte{0xc0, 0x00}, 64},
		{[]byte{0xc0, 0xbb, 0x78}, -123456},
	}
	for _, c := range cases {
		r := newByteReader(c.bytes)
		got, err := r.readSLEB128()
		if err != nil {
			t.Errorf("readSLEB128(%v): unexpected error %v", c.bytes, err)
			continue
		}
		if got != c.want {
			t.Errorf("readSLEB128(%v) = %d, want %d", c.bytes, got, c.want)
		}
	}
}

func TestReadBytesTruncated(t *testing.T) {
	r := newByteReader([]byte{0x01, 0x02})
	if _, err := r.readBytes(3); err == nil {
		t.Errorf("expected Truncated error reading past end of buffer")
	}
}

func TestSeekAndPosition(t *testing.T) {
	r := newByteReader([]byte{1, 2, 3, 4, 5})
	r.seek(3)
	if r.position() != 3 {
		t.Fatalf("position() = %d, want 3", r.position())
	}
	b, err := r.readU8()
	if err != nil || b != 4 {
		t.Fatalf("readU8() after seek(3) = (%d, %v), want (4, nil)", b, err)
	}
}
