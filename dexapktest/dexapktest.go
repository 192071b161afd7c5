//
// This package contains helper functions that are common to the
// unit tests for the dexread and apkread packages: a visitor class
// for capturing callbacks, a whitespace squeeze helper routine, and a
// builder for synthetic, minimal-but-valid DEX images (no real .dex
// fixture binaries are checked into this tree).
//
package dexapktest

import (
	"fmt"
	"regexp"

	"github.com/mariokmk/dexlib/dex"
)

// A visitor to pass to ReadDEX/ReadAPK during unit testing. It
// captures any callbacks into a slice of strings, which can then be
// examined/verified.
//
type CaptureDexApkVisitOperations struct {
	Result []string
}

func (c *CaptureDexApkVisitOperations) VisitAPK(apk string) error {
	c.Result = append(c.Result, fmt.Sprintf("APK %s", apk))
	return nil
}

func (c *CaptureDexApkVisitOperations) VisitDEX(dexname string, signature [20]byte) error {
	c.Result = append(c.Result, fmt.Sprintf(" DEX %s sha1 %x", dexname, signature))
	return nil
}

func (c *CaptureDexApkVisitOperations) VisitClass(classname string, flags dex.AccessFlags, nfields, nmethods uint32) error {
	c.Result = append(c.Result, fmt.Sprintf("  class %s flags: %d fields: %d methods: %d",
		classname, flags, nfields, nmethods))
	return nil
}

func (c *CaptureDexApkVisitOperations) VisitField(fieldname string, typeName string, flags dex.AccessFlags) error {
	c.Result = append(c.Result, fmt.Sprintf("   field '%s' type %s flags: %d", fieldname, typeName, flags))
	return nil
}

func (c *CaptureDexApkVisitOperations) VisitMethod(methodname string, methodIdx uint64, codeOffset uint64, flags dex.AccessFlags) error {
	c.Result = append(c.Result, fmt.Sprintf("   method id %d name '%s' code offset %d flags: %d", methodIdx, methodname, codeOffset, flags))
	return nil
}

func (c *CaptureDexApkVisitOperations) Verbose(vlevel int, s string, a ...interface{}) {
}

// Squeeze repeated whitespace and convert tabs/newlines to spaces.
func SqueezeWhite(s string) string {
	re := regexp.MustCompile(`[ \n\t]+`)
	return re.ReplaceAllLiteralString(s, " ")
}

func putULEB128(v uint32) []byte {
	var out []byte
	for {
		b := byte(v & 0x7f)
		v >>= 7
		if v != 0 {
			out = append(out, b|0x80)
		} else {
			out = append(out, b)
			break
		}
	}
	return out
}

func ulebLen(v uint32) int { return len(putULEB128(v)) }

func putMUTF8(s string) []byte {
	var out []byte
	for _, r := range s {
		switch {
		case r == 0:
			out = append(out, 0xC0, 0x80)
		case r < 0x80:
			out = append(out, byte(r))
		case r < 0x800:
			out = append(out, byte(0xC0|(r>>6)), byte(0x80|(r&0x3F)))
		default:
			out = append(out, byte(0xE0|(r>>12)), byte(0x80|((r>>6)&0x3F)), byte(0x80|(r&0x3F)))
		}
	}
	return out
}

func putU16(v uint16) []byte { return []byte{byte(v), byte(v >> 8)} }
func putU32(v uint32) []byte {
	return []byte{byte(v), byte(v >> 8), byte(v >> 16), byte(v >> 24)}
}

// BuildSyntheticDex constructs a minimal, hand-assembled but fully valid
// little-endian DEX image byte-for-byte, in lieu of a checked-in compiled
// .dex fixture: one class "foo.Bar" extending "java.lang.Object" with one
// public static int field "count" and one public constructor "<init>()V"
// whose code is "nop; return-void". Every pool and offset is built the way
// a real dex compiler would lay them out (fixed-width id pools first,
// variable-length string/class-data/code_item/map data after), so it
// exercises the same code paths a real DEX would.
func BuildSyntheticDex() []byte {
	strs := []string{
		"Lfoo/Bar;",          // 0: class type descriptor
		"Ljava/lang/Object;", // 1: superclass descriptor
		"I",                  // 2: field type descriptor
		"count",              // 3: field name
		"<init>",             // 4: method name
		"V",                  // 5: method return type descriptor
		"()V",                // 6: method shorty
	}
	const (
		strClass = 0
		strSuper = 1
		strFieldType = 2
		strFieldName = 3
		strMethodName = 4
		strReturnType = 5
		strShorty = 6
	)
	// type pool: indices into strs, one type per distinct descriptor used.
	types := []uint32{strClass, strSuper, strFieldType, strReturnType}
	const (
		typeClass = 0
		typeSuper = 1
		typeField = 2
		typeReturn = 3
	)

	const (
		headerSize     = 112
		stringIDSize   = 4
		typeIDSize     = 4
		protoIDSize    = 12
		fieldIDSize    = 8
		methodIDSize   = 8
		classDefSize   = 32
	)

	numStrings := uint32(len(strs))
	numTypes := uint32(len(types))
	numProtos := uint32(1)
	numFields := uint32(1)
	numMethods := uint32(1)
	numClasses := uint32(1)

	stringIDsOff := uint32(headerSize)
	typeIDsOff := stringIDsOff + numStrings*stringIDSize
	protoIDsOff := typeIDsOff + numTypes*typeIDSize
	fieldIDsOff := protoIDsOff + numProtos*protoIDSize
	methodIDsOff := fieldIDsOff + numFields*fieldIDSize
	classDefsOff := methodIDsOff + numMethods*methodIDSize
	dataOff := classDefsOff + numClasses*classDefSize

	// Lay out the data section: string data for each string (in pool
	// order), then the class_data_item, then the code_item, then the
	// map_list last.
	var data []byte
	stringDataOffs := make([]uint32, numStrings)
	for i, s := range strs {
		stringDataOffs[i] = dataOff + uint32(len(data))
		data = append(data, putULEB128(uint32(len([]rune(s))))...)
		data = append(data, putMUTF8(s)...)
	}

	classDataOff := dataOff + uint32(len(data))

	// code_item for <init>: registers_size=1, ins_size=1, outs_size=0,
	// tries_size=0, debug_info_off=0, insns = [nop, return-void].
	insns := []byte{0x00, 0x00, 0x0e, 0x00}
	codeItem := append([]byte{}, putU16(1)...) // registers_size
	codeItem = append(codeItem, putU16(1)...)  // ins_size
	codeItem = append(codeItem, putU16(0)...)  // outs_size
	codeItem = append(codeItem, putU16(0)...)  // tries_size
	codeItem = append(codeItem, putU32(0)...)  // debug_info_off
	codeItem = append(codeItem, putU32(uint32(len(insns)/2))...)
	codeItem = append(codeItem, insns...)

	// class_data_item: static field count, instance field count, direct
	// method count, virtual method count, then the static field and
	// direct method records. code_off's own encoded width feeds back into
	// its own value, so resolve it with a small fixed point search instead
	// of assuming a byte width up front.
	prefix := append([]byte{}, putULEB128(1)...) // num static fields
	prefix = append(prefix, putULEB128(0)...)    // num instance fields
	prefix = append(prefix, putULEB128(1)...)    // num direct methods
	prefix = append(prefix, putULEB128(0)...)    // num virtual methods
	prefix = append(prefix, putULEB128(0)...)    // static field 0: field_idx_diff
	prefix = append(prefix, putULEB128(0x9)...)  // static field 0: access_flags (public|static)
	prefix = append(prefix, putULEB128(0)...)    // direct method 0: method_idx_diff
	prefix = append(prefix, putULEB128(0x1)...)  // direct method 0: access_flags (public)

	var codeOff uint32
	for l := 1; l <= 5; l++ {
		candidate := classDataOff + uint32(len(prefix)) + uint32(l)
		if ulebLen(candidate) == l {
			codeOff = candidate
			break
		}
	}
	classData := append(append([]byte{}, prefix...), putULEB128(codeOff)...)

	data = append(data, classData...)
	data = append(data, codeItem...)

	mapOff := dataOff + uint32(len(data))
	var mapList []byte
	type mapEntry struct {
		typeCode uint16
		count    uint32
		offset   uint32
	}
	entries := []mapEntry{
		{dex.TypeHeaderItem, 1, 0},
		{dex.TypeStringIDItem, numStrings, stringIDsOff},
		{dex.TypeTypeIDItem, numTypes, typeIDsOff},
		{dex.TypeProtoIDItem, numProtos, protoIDsOff},
		{dex.TypeFieldIDItem, numFields, fieldIDsOff},
		{dex.TypeMethodIDItem, numMethods, methodIDsOff},
		{dex.TypeClassDefItem, numClasses, classDefsOff},
		{dex.TypeClassDataItem, numClasses, classDataOff},
		{dex.TypeCodeItem, numMethods, codeOff},
		{dex.TypeStringDataItem, numStrings, stringDataOffs[0]},
		{dex.TypeMapList, 1, mapOff},
	}
	mapList = append(mapList, putU32(uint32(len(entries)))...)
	for _, e := range entries {
		mapList = append(mapList, putU16(e.typeCode)...)
		mapList = append(mapList, putU16(0)...) // unused
		mapList = append(mapList, putU32(e.count)...)
		mapList = append(mapList, putU32(e.offset)...)
	}
	data = append(data, mapList...)

	fileSize := dataOff + uint32(len(data))

	var buf []byte
	buf = append(buf, []byte("dex\n035\x00")...)
	buf = append(buf, putU32(0)...)        // checksum
	buf = append(buf, make([]byte, 20)...) // signature
	buf = append(buf, putU32(fileSize)...)
	buf = append(buf, putU32(headerSize)...)
	buf = append(buf, putU32(0x12345678)...) // endian_tag
	buf = append(buf, putU32(0)...)          // link_size
	buf = append(buf, putU32(0)...)          // link_off
	buf = append(buf, putU32(mapOff)...)

	appendPool := func(count, offset uint32) {
		buf = append(buf, putU32(count)...)
		buf = append(buf, putU32(offset)...)
	}
	appendPool(numStrings, stringIDsOff)
	appendPool(numTypes, typeIDsOff)
	appendPool(numProtos, protoIDsOff)
	appendPool(numFields, fieldIDsOff)
	appendPool(numMethods, methodIDsOff)
	appendPool(numClasses, classDefsOff)
	appendPool(0, dataOff) // data pool: count is informational

	for _, off := range stringDataOffs {
		buf = append(buf, putU32(off)...)
	}
	for _, strIdx := range types {
		buf = append(buf, putU32(strIdx)...)
	}
	// proto 0: shorty, return type, no parameters.
	buf = append(buf, putU32(strShorty)...)
	buf = append(buf, putU32(typeReturn)...)
	buf = append(buf, putU32(0)...)
	// field 0: defining class, type, name.
	buf = append(buf, putU16(uint16(typeClass))...)
	buf = append(buf, putU16(uint16(typeField))...)
	buf = append(buf, putU32(strFieldName)...)
	// method 0: defining class, proto, name.
	buf = append(buf, putU16(uint16(typeClass))...)
	buf = append(buf, putU16(0)...) // proto 0
	buf = append(buf, putU32(strMethodName)...)
	// class_def 0.
	buf = append(buf, putU32(uint32(typeClass))...)
	buf = append(buf, putU32(0x1)...) // access_flags: public
	buf = append(buf, putU32(uint32(typeSuper))...)
	buf = append(buf, putU32(0)...)          // interfaces_off
	buf = append(buf, putU32(0xFFFFFFFF)...) // source_file_idx: none
	buf = append(buf, putU32(0)...)          // annotations_off
	buf = append(buf, putU32(classDataOff)...)
	buf = append(buf, putU32(0)...) // static_values_off

	buf = append(buf, data...)

	return buf
}
