package dex

import "unicode/utf16"

// stringIDSize is the width of a string_id_item: a single u32 data offset.
const stringIDSize = 4

// getString resolves a string id: seek to string_ids_off + 4*id, read the
// u32 data offset, then seek there and decode a (ULEB128 length, MUTF-8
// bytes) record. The length is the *character* count, not the byte count;
// the 0x00 terminator implied by that count is never relied upon to stop
// decoding (per spec: "implementations must not rely on it to stop").
func (im *Image) getString(id uint32) (string, error) {
	if id >= im.header.StringIDs.Count {
		return "", errOutOfRange("strings", id, im.header.StringIDs.Count)
	}

	im.r.seek(int64(im.header.StringIDs.Offset) + int64(id)*stringIDSize)
	dataOffset, err := im.r.readU32LE()
	if err != nil {
		return "", err
	}

	im.r.seek(int64(dataOffset))
	nchars, err := im.r.readULEB128()
	if err != nil {
		return "", err
	}

	return decodeMUTF8(im.r, nchars)
}

// decodeMUTF8 decodes exactly nchars UTF-16 code units' worth of Modified
// UTF-8 starting at the reader's current position. Surrogate code units
// are accepted as decoded (MUTF-8 encodes supplementary code points as
// surrogate pairs, each encoded as its own three-byte sequence, never as a
// four-byte sequence); the returned Go string joins each valid pair into
// one code point and holds U+FFFD in place of an unpaired surrogate.
func decodeMUTF8(r *byteReader, nchars uint32) (string, error) {
	// nchars comes straight off the wire as a ULEB128 value; a corrupt
	// length prefix must fail via Truncated once the backing buffer runs
	// out, not force a multi-gigabyte allocation up front. Every code unit
	// consumes at least one byte, so the remaining buffer size is a safe
	// upper bound on the capacity hint.
	capHint := r.size() - r.position()
	if capHint < 0 {
		capHint = 0
	}
	if uint64(nchars) < uint64(capHint) {
		capHint = int64(nchars)
	}
	units := make([]uint16, 0, capHint)

	for uint32(len(units)) < nchars {
		start := r.position()
		b, err := r.readU8()
		if err != nil {
			return "", err
		}

		switch {
		case b&0x80 == 0x00:
			// 0xxxxxxx: single-byte code point.
			units = append(units, uint16(b))

		case b&0xE0 == 0xC0:
			// 110xxxxx: one continuation byte. This range includes the
			// two-byte encoding of NUL (0xC0 0x80).
			c2, err := r.readU8()
			if err != nil {
				return "", err
			}
			if c2&0xC0 != 0x80 {
				return "", errBadMutf8(start, "bad continuation byte")
			}
			cp := (uint16(b&0x1F) << 6) | uint16(c2&0x3F)
			units = append(units, cp)

		case b&0xF0 == 0xE0:
			// 1110xxxx: two continuation bytes.
			c2, err := r.readU8()
			if err != nil {
				return "", err
			}
			if c2&0xC0 != 0x80 {
				return "", errBadMutf8(start, "bad first continuation byte")
			}
			c3, err := r.readU8()
			if err != nil {
				return "", err
			}
			if c3&0xC0 != 0x80 {
				return "", errBadMutf8(start, "bad second continuation byte")
			}
			cp := (uint16(b&0x0F) << 12) | (uint16(c2&0x3F) << 6) | uint16(c3&0x3F)
			units = append(units, cp)

		default:
			return "", errBadMutf8(start, "illegal lead byte")
		}
	}

	// utf16.Decode turns the (possibly unpaired, since this core does no
	// validation beyond what MUTF-8 itself guarantees) code units into
	// runes, reassembling surrogate pairs into their supplementary code
	// points and replacing any unpaired surrogate with U+FFFD.
	return string(utf16.Decode(units)), nil
}
