package dex

// Item sizes for the fixed-layout id pools, per §4.6.
const (
	typeIDSize      = 4
	protoIDSize     = 12
	fieldIDSize     = 8
	methodIDSize    = 8
	classDefSize    = 32
	noIndex         = 0xFFFFFFFF
)

// Type resolves a type id to its human-readable name (not its raw
// descriptor string) by looking up the descriptor's string id and running
// it through typeToString.
func (im *Image) Type(id uint32) (string, error) {
	if id >= im.header.TypeIDs.Count {
		return "", errOutOfRange("types", id, im.header.TypeIDs.Count)
	}

	im.r.seek(int64(im.header.TypeIDs.Offset) + int64(id)*typeIDSize)
	stringID, err := im.r.readU32LE()
	if err != nil {
		return "", err
	}
	desc, err := im.getString(stringID)
	if err != nil {
		return "", err
	}
	return typeToString(desc), nil
}

// Prototype is a resolved method prototype: a return type and a list of
// parameter types.
type Prototype struct {
	Shorty     string
	ReturnType string
	ParamTypes []string
}

// Prototype resolves a prototype id. parametersOffset == 0 means an empty
// parameter list; otherwise it points to a type_list: a u32 count
// followed by that many u16 type ids.
func (im *Image) Prototype(id uint32) (Prototype, error) {
	if id >= im.header.ProtoIDs.Count {
		return Prototype{}, errOutOfRange("prototypes", id, im.header.ProtoIDs.Count)
	}

	im.r.seek(int64(im.header.ProtoIDs.Offset) + int64(id)*protoIDSize)
	shortyID, err := im.r.readU32LE()
	if err != nil {
		return Prototype{}, err
	}
	returnTypeID, err := im.r.readU32LE()
	if err != nil {
		return Prototype{}, err
	}
	paramsOffset, err := im.r.readU32LE()
	if err != nil {
		return Prototype{}, err
	}

	shorty, err := im.getString(shortyID)
	if err != nil {
		return Prototype{}, err
	}
	returnType, err := im.Type(returnTypeID)
	if err != nil {
		return Prototype{}, err
	}

	var params []string
	if paramsOffset != 0 {
		typeIDs, err := im.readTypeList(paramsOffset)
		if err != nil {
			return Prototype{}, err
		}
		params = make([]string, len(typeIDs))
		for i, tid := range typeIDs {
			name, err := im.Type(uint32(tid))
			if err != nil {
				return Prototype{}, err
			}
			params[i] = name
		}
	}

	return Prototype{Shorty: shorty, ReturnType: returnType, ParamTypes: params}, nil
}

// readTypeList decodes a type_list at the given absolute offset: a u32
// count followed by that many u16 type ids.
func (im *Image) readTypeList(offset uint32) ([]uint16, error) {
	im.r.seek(int64(offset))
	count, err := im.r.readU32LE()
	if err != nil {
		return nil, err
	}
	ids := make([]uint16, count)
	for i := range ids {
		ids[i], err = im.r.readU16LE()
		if err != nil {
			return nil, err
		}
	}
	return ids, nil
}

// Field is a resolved field reference.
type Field struct {
	im *Image

	DefiningClassTypeID uint16
	TypeID              uint16
	NameStringID        uint32
}

// Name returns the field's name.
func (f Field) Name() (string, error) { return f.im.getString(f.NameStringID) }

// TypeName returns the field's type's human-readable name.
func (f Field) TypeName() (string, error) { return f.im.Type(uint32(f.TypeID)) }

// ClassName returns the human-readable name of the field's defining class.
func (f Field) ClassName() (string, error) { return f.im.Type(uint32(f.DefiningClassTypeID)) }

// Field resolves a field id. Per §9, this accessor uses id >= count
// uniformly (the source's id > count off-by-one is a documented bug this
// core does not reproduce).
func (im *Image) Field(id uint32) (Field, error) {
	if id >= im.header.FieldIDs.Count {
		return Field{}, errOutOfRange("fields", id, im.header.FieldIDs.Count)
	}

	im.r.seek(int64(im.header.FieldIDs.Offset) + int64(id)*fieldIDSize)
	classIdx, err := im.r.readU16LE()
	if err != nil {
		return Field{}, err
	}
	typeIdx, err := im.r.readU16LE()
	if err != nil {
		return Field{}, err
	}
	nameIdx, err := im.r.readU32LE()
	if err != nil {
		return Field{}, err
	}

	return Field{im: im, DefiningClassTypeID: classIdx, TypeID: typeIdx, NameStringID: nameIdx}, nil
}

// Method is a resolved method reference.
type Method struct {
	im *Image

	DefiningClassTypeID uint16
	PrototypeID         uint16
	NameStringID        uint32

	// codeOffset is 0 unless this Method was produced by a class-data walk
	// that knows the method's code_item offset (see Class.Methods), or was
	// resolved via Image.Method/GetMethod with a non-zero codeOffset.
	codeOffset uint32
}

// Name returns the method's name.
func (m Method) Name() (string, error) { return m.im.getString(m.NameStringID) }

// ClassName returns the human-readable name of the method's defining class.
func (m Method) ClassName() (string, error) { return m.im.Type(uint32(m.DefiningClassTypeID)) }

// Prototype resolves the method's prototype.
func (m Method) Prototype() (Prototype, error) { return m.im.Prototype(uint32(m.PrototypeID)) }

// CodeOffset returns the absolute file offset of this method's code_item,
// or 0 if the method is abstract/native or this Method was resolved
// without class-data context.
func (m Method) CodeOffset() uint32 { return m.codeOffset }

// Code decodes the method's code_item, if it has one.
func (m Method) Code() (CodeItem, error) {
	if m.codeOffset == 0 {
		return CodeItem{}, nil
	}
	return m.im.readCodeItem(m.codeOffset)
}

// Method resolves a method id, optionally attaching a known code_item
// offset (pass 0 when none is known, e.g. when resolving bare operand ids
// from the instruction decoder rather than walking class-data).
func (im *Image) Method(id uint32, codeOffset uint32) (Method, error) {
	if id >= im.header.MethodIDs.Count {
		return Method{}, errOutOfRange("methods", id, im.header.MethodIDs.Count)
	}

	im.r.seek(int64(im.header.MethodIDs.Offset) + int64(id)*methodIDSize)
	classIdx, err := im.r.readU16LE()
	if err != nil {
		return Method{}, err
	}
	protoIdx, err := im.r.readU16LE()
	if err != nil {
		return Method{}, err
	}
	nameIdx, err := im.r.readU32LE()
	if err != nil {
		return Method{}, err
	}

	return Method{im: im, DefiningClassTypeID: classIdx, PrototypeID: protoIdx, NameStringID: nameIdx, codeOffset: codeOffset}, nil
}
