package dex

import "encoding/binary"

// byteReader is a seekable random-access view over a fully-buffered DEX
// image. The format requires arbitrary backward seeks (resolving a field's
// type id, for instance, means jumping to an earlier pool while mid-decode
// of a class), so the whole image is read into memory once at Open and
// every accessor seeks into this same buffer rather than streaming through
// an io.Reader. Shape follows the private reader/pos cursor used by
// dis.reader in the original source's sibling tools and by enjarify's
// byteio.Reader, generalized with ULEB128/SLEB128 decoding and explicit
// Truncated/LebOverflow errors instead of silent panics.
type byteReader struct {
	data []byte
	pos  int64
}

func newByteReader(data []byte) *byteReader {
	return &byteReader{data: data}
}

func (r *byteReader) size() int64 { return int64(len(r.data)) }

// seek repositions the cursor to an absolute file offset. It does not
// validate that the offset is within bounds; that is deferred to the next
// read, which fails with Truncated if there isn't enough data.
func (r *byteReader) seek(offset int64) {
	r.pos = offset
}

func (r *byteReader) position() int64 {
	return r.pos
}

func (r *byteReader) readU8() (uint8, error) {
	if r.pos < 0 || r.pos+1 > int64(len(r.data)) {
		return 0, errTruncated(r.pos)
	}
	v := r.data[r.pos]
	r.pos++
	return v, nil
}

func (r *byteReader) readU16LE() (uint16, error) {
	b, err := r.readBytes(2)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint16(b), nil
}

func (r *byteReader) readU32LE() (uint32, error) {
	b, err := r.readBytes(4)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint32(b), nil
}

func (r *byteReader) readBytes(n int) ([]byte, error) {
	if n < 0 || r.pos < 0 || r.pos+int64(n) > int64(len(r.data)) {
		return nil, errTruncated(r.pos)
	}
	b := r.data[r.pos : r.pos+int64(n)]
	r.pos += int64(n)
	return b, nil
}

// readULEB128 decodes an unsigned LEB128 integer. Fails with LebOverflow
// if more than five payload bytes are consumed (the maximum needed to
// represent a 32-bit value, per the DEX format's own encoding rules).
func (r *byteReader) readULEB128() (uint32, error) {
	start := r.pos
	var result uint32
	var shift uint
	for i := 0; i < 5; i++ {
		b, err := r.readU8()
		if err != nil {
			return 0, err
		}
		result |= uint32(b&0x7f) << shift
		if b&0x80 == 0 {
			return result, nil
		}
		shift += 7
	}
	return 0, errLebOverflow(start)
}

// readSLEB128 decodes a signed LEB128 integer, sign-extending from the
// last payload byte's sign bit.
func (r *byteReader) readSLEB128() (int32, error) {
	start := r.pos
	var result int32
	var shift uint
	var b uint8
	var err error
	for i := 0; i < 5; i++ {
		b, err = r.readU8()
		if err != nil {
			return 0, err
		}
		result |= int32(b&0x7f) << shift
		shift += 7
		if b&0x80 == 0 {
			if shift < 32 && b&0x40 != 0 {
				result |= -1 << shift
			}
			return result, nil
		}
	}
	return 0, errLebOverflow(start)
}
