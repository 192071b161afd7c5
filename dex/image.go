package dex

import "fmt"

// Image is an opened, fully-buffered DEX file. Every accessor method is a
// value lookup: nothing is cached beyond the header and section map, so
// repeated calls re-read the underlying buffer. Grounded on the teacher's
// dexState (dexread.go), generalized from a single forward pass over the
// file into a handle supporting random-access lookups in any order.
type Image struct {
	r      *byteReader
	header Header
	sm     SectionMap
}

// Open parses a DEX image already read fully into memory. The caller owns
// data's lifetime; Image never mutates it, and keeps a reference to it
// until Close.
func Open(data []byte) (*Image, error) {
	r := newByteReader(data)

	h, err := parseHeader(r, int64(len(data)))
	if err != nil {
		return nil, err
	}

	sm, err := parseSectionMap(r, h.MapOffset)
	if err != nil {
		return nil, err
	}

	return &Image{r: r, header: h, sm: sm}, nil
}

// Close releases the image's reference to its backing buffer. Image holds
// no file descriptors or other OS resources, so Close never returns an
// error; it exists so callers can use Image the way they'd use any other
// closeable handle (e.g. deferred immediately after Open).
func (im *Image) Close() error {
	im.r = nil
	return nil
}

// Header returns the image's parsed header.
func (im *Image) Header() Header { return im.header }

// SectionMap returns the image's parsed map_list.
func (im *Image) SectionMap() SectionMap { return im.sm }

// StringCount returns the number of entries in the string pool.
func (im *Image) StringCount() uint32 { return im.header.StringIDs.Count }

// GetString resolves a string id to its decoded value.
func (im *Image) GetString(id uint32) (string, error) { return im.getString(id) }

// IterStrings calls fn once per string id in ascending order, stopping at
// the first error fn returns or the decoder encounters.
func (im *Image) IterStrings(fn func(id uint32, s string) error) error {
	for id := uint32(0); id < im.header.StringIDs.Count; id++ {
		s, err := im.getString(id)
		if err != nil {
			return err
		}
		if err := fn(id, s); err != nil {
			return err
		}
	}
	return nil
}

// TypeCount returns the number of entries in the type pool.
func (im *Image) TypeCount() uint32 { return im.header.TypeIDs.Count }

// GetTypeName resolves a type id to its human-readable name.
func (im *Image) GetTypeName(id uint32) (string, error) { return im.Type(id) }

// IterTypeNames calls fn once per type id in ascending order.
func (im *Image) IterTypeNames(fn func(id uint32, name string) error) error {
	for id := uint32(0); id < im.header.TypeIDs.Count; id++ {
		name, err := im.Type(id)
		if err != nil {
			return err
		}
		if err := fn(id, name); err != nil {
			return err
		}
	}
	return nil
}

// PrototypeCount returns the number of entries in the prototype pool.
func (im *Image) PrototypeCount() uint32 { return im.header.ProtoIDs.Count }

// GetPrototype resolves a prototype id.
func (im *Image) GetPrototype(id uint32) (Prototype, error) { return im.Prototype(id) }

// IterPrototypes calls fn once per prototype id in ascending order.
func (im *Image) IterPrototypes(fn func(id uint32, p Prototype) error) error {
	for id := uint32(0); id < im.header.ProtoIDs.Count; id++ {
		p, err := im.Prototype(id)
		if err != nil {
			return err
		}
		if err := fn(id, p); err != nil {
			return err
		}
	}
	return nil
}

// FieldCount returns the number of entries in the field pool.
func (im *Image) FieldCount() uint32 { return im.header.FieldIDs.Count }

// GetField resolves a field id.
func (im *Image) GetField(id uint32) (Field, error) { return im.Field(id) }

// IterFields calls fn once per field id in ascending order.
func (im *Image) IterFields(fn func(id uint32, f Field) error) error {
	for id := uint32(0); id < im.header.FieldIDs.Count; id++ {
		f, err := im.Field(id)
		if err != nil {
			return err
		}
		if err := fn(id, f); err != nil {
			return err
		}
	}
	return nil
}

// MethodCount returns the number of entries in the method pool.
func (im *Image) MethodCount() uint32 { return im.header.MethodIDs.Count }

// GetMethod resolves a method id. codeOffset is optional context (0 if
// unknown); it lets Method.Code work for methods reached other than via a
// class-data walk, e.g. a bare operand id from the instruction decoder for
// which the caller already knows the code_item offset some other way.
func (im *Image) GetMethod(id uint32, codeOffset uint32) (Method, error) {
	return im.Method(id, codeOffset)
}

// IterMethods calls fn once per method id in ascending order, with no
// code_item offset attached (use IterClasses/ClassMethod for that).
func (im *Image) IterMethods(fn func(id uint32, m Method) error) error {
	for id := uint32(0); id < im.header.MethodIDs.Count; id++ {
		m, err := im.Method(id, 0)
		if err != nil {
			return err
		}
		if err := fn(id, m); err != nil {
			return err
		}
	}
	return nil
}

// ClassCount returns the number of entries in the class_def pool.
func (im *Image) ClassCount() uint32 { return im.header.ClassDefs.Count }

// GetClass resolves a class_def id.
func (im *Image) GetClass(id uint32) (Class, error) {
	if id >= im.header.ClassDefs.Count {
		return Class{}, errOutOfRange("classes", id, im.header.ClassDefs.Count)
	}

	im.r.seek(int64(im.header.ClassDefs.Offset) + int64(id)*classDefSize)

	var c Class
	var err error
	var accessRaw uint32

	if c.TypeID, err = im.r.readU32LE(); err != nil {
		return Class{}, err
	}
	if accessRaw, err = im.r.readU32LE(); err != nil {
		return Class{}, err
	}
	c.AccessFlags = AccessFlags(accessRaw)
	if c.SuperclassTypeID, err = im.r.readU32LE(); err != nil {
		return Class{}, err
	}
	if c.InterfacesOffset, err = im.r.readU32LE(); err != nil {
		return Class{}, err
	}
	if c.SourceFileID, err = im.r.readU32LE(); err != nil {
		return Class{}, err
	}
	if c.AnnotationsOffset, err = im.r.readU32LE(); err != nil {
		return Class{}, err
	}
	if c.ClassDataOffset, err = im.r.readU32LE(); err != nil {
		return Class{}, err
	}
	if c.StaticValuesOffset, err = im.r.readU32LE(); err != nil {
		return Class{}, err
	}
	c.im = im

	return c, nil
}

// IterClasses calls fn once per class_def id in ascending order (the order
// class defs appear in the file, which need not match any class hierarchy).
func (im *Image) IterClasses(fn func(id uint32, c Class) error) error {
	for id := uint32(0); id < im.header.ClassDefs.Count; id++ {
		c, err := im.GetClass(id)
		if err != nil {
			return err
		}
		if err := fn(id, c); err != nil {
			return err
		}
	}
	return nil
}

// DecodeOpcode decodes a single instruction at the given absolute file
// offset and returns it along with the absolute offset of the instruction
// that follows it.
func (im *Image) DecodeOpcode(offset int64) (Instruction, int64, error) {
	return decodeInstruction(im.r, offset)
}

func (im *Image) String() string {
	return fmt.Sprintf("dex.Image{version=%s strings=%d types=%d classes=%d}",
		im.header.Version(), im.header.StringIDs.Count, im.header.TypeIDs.Count, im.header.ClassDefs.Count)
}
