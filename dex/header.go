package dex

const (
	// headerSize is the fixed size of the DEX header, in bytes.
	// https://source.android.com/devices/tech/dalvik/dex-format.html#header-item
	headerSize = 112

	// endianConstant is the expected value of the header's endian tag for
	// a little-endian image; this is the only byte order this core reads.
	endianConstant = 0x12345678

	magicPrefixLen = 4 // "dex\n"
	versionLen     = 4 // three ASCII digits + NUL
)

// idPool describes one fixed-width id pool's location within the image:
// how many entries it has, and where the array starts.
type idPool struct {
	Count  uint32
	Offset uint32
}

// Header is the parsed, fixed-size DEX header. All offsets are absolute
// from the start of the file; all counts are unsigned 32-bit. No
// checksum/signature verification is performed; those fields are exposed
// verbatim for callers that want to check them.
type Header struct {
	Magic      [8]byte
	Checksum   uint32
	Signature  [20]byte
	FileSize   uint32
	HeaderSize uint32
	EndianTag  uint32
	LinkSize   uint32
	LinkOffset uint32
	MapOffset  uint32

	StringIDs    idPool
	TypeIDs      idPool
	ProtoIDs     idPool
	FieldIDs     idPool
	MethodIDs    idPool
	ClassDefs    idPool
	Data         idPool
}

// Version returns the three-digit ASCII DEX format version embedded in
// the magic, e.g. "035".
func (h *Header) Version() string {
	return string(h.Magic[4:7])
}

// parseHeader reads and validates the 112-byte header at offset 0.
func parseHeader(r *byteReader, fileSize int64) (Header, error) {
	var h Header

	r.seek(0)
	magic, err := r.readBytes(8)
	if err != nil {
		return h, err
	}
	copy(h.Magic[:], magic)

	if string(magic[:magicPrefixLen]) != "dex\n" {
		return h, errBadMagic("missing dex\\n prefix")
	}
	for _, c := range magic[magicPrefixLen : magicPrefixLen+3] {
		if c < '0' || c > '9' {
			return h, errBadMagic("non-numeric version digit")
		}
	}
	if magic[7] != 0x00 {
		return h, errBadMagic("missing version terminator")
	}

	h.Checksum, err = r.readU32LE()
	if err != nil {
		return h, err
	}
	sig, err := r.readBytes(20)
	if err != nil {
		return h, err
	}
	copy(h.Signature[:], sig)

	if h.FileSize, err = r.readU32LE(); err != nil {
		return h, err
	}
	if h.HeaderSize, err = r.readU32LE(); err != nil {
		return h, err
	}
	if h.EndianTag, err = r.readU32LE(); err != nil {
		return h, err
	}
	if h.EndianTag != endianConstant {
		return h, errUnsupportedEndian(h.EndianTag)
	}
	if h.LinkSize, err = r.readU32LE(); err != nil {
		return h, err
	}
	if h.LinkOffset, err = r.readU32LE(); err != nil {
		return h, err
	}
	if h.MapOffset, err = r.readU32LE(); err != nil {
		return h, err
	}

	pools := []*idPool{
		&h.StringIDs, &h.TypeIDs, &h.ProtoIDs,
		&h.FieldIDs, &h.MethodIDs, &h.ClassDefs, &h.Data,
	}
	for _, p := range pools {
		if p.Count, err = r.readU32LE(); err != nil {
			return h, err
		}
		if p.Offset, err = r.readU32LE(); err != nil {
			return h, err
		}
		if int64(p.Offset) > fileSize {
			return h, errOffsetBeyondFile(int64(p.Offset), "pool offset beyond end of file")
		}
	}

	return h, nil
}
