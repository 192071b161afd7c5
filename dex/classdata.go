package dex

// AccessFlags are the Dalvik access_flags bitmask shared by classes,
// fields and methods. Grounded on dutchcoders-godex__dex.go's ACC_*
// constants.
type AccessFlags uint32

const (
	AccPublic       AccessFlags = 0x1
	AccPrivate      AccessFlags = 0x2
	AccProtected    AccessFlags = 0x4
	AccStatic       AccessFlags = 0x8
	AccFinal        AccessFlags = 0x10
	AccSynchronized AccessFlags = 0x20
	AccVolatile     AccessFlags = 0x40
	AccBridge       AccessFlags = 0x40
	AccTransient    AccessFlags = 0x80
	AccVarargs      AccessFlags = 0x80
	AccNative       AccessFlags = 0x100
	AccInterface    AccessFlags = 0x200
	AccAbstract     AccessFlags = 0x400
	AccStrict       AccessFlags = 0x800
	AccSynthetic    AccessFlags = 0x1000
	AccAnnotation   AccessFlags = 0x2000
	AccEnum         AccessFlags = 0x4000

	AccConstructor           AccessFlags = 0x10000
	AccDeclaredSynchronized  AccessFlags = 0x20000
)

var accessFlagNames = []struct {
	flag AccessFlags
	name string
}{
	{AccPublic, "public"},
	{AccPrivate, "private"},
	{AccProtected, "protected"},
	{AccStatic, "static"},
	{AccFinal, "final"},
	{AccSynchronized, "synchronized"},
	{AccVolatile, "volatile"},
	{AccTransient, "transient"},
	{AccNative, "native"},
	{AccInterface, "interface"},
	{AccAbstract, "abstract"},
	{AccStrict, "strictfp"},
	{AccSynthetic, "synthetic"},
	{AccAnnotation, "annotation"},
	{AccEnum, "enum"},
	{AccConstructor, "constructor"},
	{AccDeclaredSynchronized, "declared-synchronized"},
}

// String renders the set bits as a space-separated list of their
// conventional Java/Dalvik names, e.g. "public static".
func (a AccessFlags) String() string {
	if a == 0 {
		return ""
	}
	s := ""
	for _, fn := range accessFlagNames {
		if a&fn.flag != 0 {
			if s != "" {
				s += " "
			}
			s += fn.name
		}
	}
	return s
}

// Class is a resolved class definition.
type Class struct {
	im *Image

	TypeID            uint32
	AccessFlags       AccessFlags
	SuperclassTypeID  uint32 // noIndex if none (java.lang.Object)
	InterfacesOffset  uint32
	SourceFileID      uint32 // noIndex if none
	AnnotationsOffset uint32
	ClassDataOffset   uint32
	StaticValuesOffset uint32
}

// Name returns the class's own human-readable type name.
func (c Class) Name() (string, error) { return c.im.Type(c.TypeID) }

// Superclass returns the superclass's human-readable name, or "" with no
// error if this class has no superclass (the sentinel case, e.g.
// java.lang.Object).
func (c Class) Superclass() (string, error) {
	if c.SuperclassTypeID == noIndex {
		return "", nil
	}
	return c.im.Type(c.SuperclassTypeID)
}

// SourceFile returns the class's source file name, or "" with no error if
// none is recorded.
func (c Class) SourceFile() (string, error) {
	if c.SourceFileID == noIndex {
		return "", nil
	}
	return c.im.getString(c.SourceFileID)
}

// Interfaces returns the human-readable names of the class's declared
// interfaces. An InterfacesOffset of 0 means no interfaces.
func (c Class) Interfaces() ([]string, error) {
	if c.InterfacesOffset == 0 {
		return nil, nil
	}
	ids, err := c.im.readTypeList(c.InterfacesOffset)
	if err != nil {
		return nil, err
	}
	names := make([]string, len(ids))
	for i, id := range ids {
		name, err := c.im.Type(uint32(id))
		if err != nil {
			return nil, err
		}
		names[i] = name
	}
	return names, nil
}

// classData holds the raw counts read from the head of a class_data_item,
// grounded on the teacher's dexClassContents (struct.go).
type classData struct {
	numStaticFields   uint32
	numInstanceFields uint32
	numDirectMethods  uint32
	numVirtualMethods uint32
}

// ClassField is a field declared directly on a class, with its access
// flags (fields themselves carry no further per-field data in class_data).
type ClassField struct {
	Field
	AccessFlags AccessFlags
	Static      bool
}

// ClassMethod is a method declared directly on a class, with its access
// flags and (if present) code offset.
type ClassMethod struct {
	Method
	ID          uint32
	AccessFlags AccessFlags
	Direct      bool
}

// classDataWalk performs the class_data_item ULEB128 walk described in
// §4.6/§9: static fields, instance fields, direct methods, virtual
// methods in that order, with each field/method id delta-encoded against
// the previous one within its own group (the "method ID value read is a
// difference from the index of the previous element" rule). Grounded on
// the teacher's examineClass (dexread.go) and google-enjarify's
// newClassData walk (parsedex.go), generalized to resolve full Field/
// Method values instead of just names.
func (im *Image) classDataWalk(offset uint32) ([]ClassField, []ClassField, []ClassMethod, []ClassMethod, error) {
	if offset == 0 {
		return nil, nil, nil, nil, nil
	}

	r := newByteReader(im.r.data)
	r.seek(int64(offset))

	var cd classData
	var err error
	if cd.numStaticFields, err = r.readULEB128(); err != nil {
		return nil, nil, nil, nil, err
	}
	if cd.numInstanceFields, err = r.readULEB128(); err != nil {
		return nil, nil, nil, nil, err
	}
	if cd.numDirectMethods, err = r.readULEB128(); err != nil {
		return nil, nil, nil, nil, err
	}
	if cd.numVirtualMethods, err = r.readULEB128(); err != nil {
		return nil, nil, nil, nil, err
	}

	readFields := func(n uint32, static bool) ([]ClassField, error) {
		fields := make([]ClassField, 0, n)
		var fieldIdx uint64
		for i := uint32(0); i < n; i++ {
			delta, err := r.readULEB128()
			if err != nil {
				return nil, err
			}
			fieldIdx += uint64(delta)
			accessRaw, err := r.readULEB128()
			if err != nil {
				return nil, err
			}
			f, err := im.Field(uint32(fieldIdx))
			if err != nil {
				return nil, err
			}
			fields = append(fields, ClassField{Field: f, AccessFlags: AccessFlags(accessRaw), Static: static})
		}
		return fields, nil
	}

	readMethods := func(n uint32, direct bool) ([]ClassMethod, error) {
		methods := make([]ClassMethod, 0, n)
		var methodIdx uint64
		for i := uint32(0); i < n; i++ {
			delta, err := r.readULEB128()
			if err != nil {
				return nil, err
			}
			methodIdx += uint64(delta)
			accessRaw, err := r.readULEB128()
			if err != nil {
				return nil, err
			}
			codeOff, err := r.readULEB128()
			if err != nil {
				return nil, err
			}
			m, err := im.Method(uint32(methodIdx), codeOff)
			if err != nil {
				return nil, err
			}
			methods = append(methods, ClassMethod{Method: m, ID: uint32(methodIdx), AccessFlags: AccessFlags(accessRaw), Direct: direct})
		}
		return methods, nil
	}

	staticFields, err := readFields(cd.numStaticFields, true)
	if err != nil {
		return nil, nil, nil, nil, err
	}
	instanceFields, err := readFields(cd.numInstanceFields, false)
	if err != nil {
		return nil, nil, nil, nil, err
	}
	directMethods, err := readMethods(cd.numDirectMethods, true)
	if err != nil {
		return nil, nil, nil, nil, err
	}
	virtualMethods, err := readMethods(cd.numVirtualMethods, false)
	if err != nil {
		return nil, nil, nil, nil, err
	}

	return staticFields, instanceFields, directMethods, virtualMethods, nil
}

// Fields returns every field declared directly on this class (static then
// instance), lazily decoding the class-data block on each call.
func (c Class) Fields() ([]ClassField, error) {
	static, instance, _, _, err := c.im.classDataWalk(c.ClassDataOffset)
	if err != nil {
		return nil, err
	}
	return append(static, instance...), nil
}

// Methods returns every method declared directly on this class (direct
// then virtual), lazily decoding the class-data block on each call.
func (c Class) Methods() ([]ClassMethod, error) {
	_, _, direct, virtual, err := c.im.classDataWalk(c.ClassDataOffset)
	if err != nil {
		return nil, err
	}
	return append(direct, virtual...), nil
}
