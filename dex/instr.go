package dex

// opcodeMnemonic maps an opcode byte to its disassembly mnemonic. Grounded
// on dutchcoders-godex__dex.go's instructions map, trimmed to the bare
// mnemonic (operand syntax lives in the Format/Operands pair instead of a
// format string). Slots with no defined opcode are "".
var opcodeMnemonic = [256]string{
	0x00: "nop", 0x01: "move", 0x02: "move/from16", 0x03: "move/16",
	0x04: "move-wide", 0x05: "move-wide/from16", 0x06: "move-wide/16",
	0x07: "move-object", 0x08: "move-object/from16", 0x09: "move-object/16",
	0x0a: "move-result", 0x0b: "move-result-wide", 0x0c: "move-result-object",
	0x0d: "move-exception", 0x0e: "return-void", 0x0f: "return",
	0x10: "return-wide", 0x11: "return-object",
	0x12: "const/4", 0x13: "const/16", 0x14: "const", 0x15: "const/high16",
	0x16: "const-wide/16", 0x17: "const-wide/32", 0x18: "const-wide",
	0x19: "const-wide/high16",
	0x1a: "const-string", 0x1b: "const-string/jumbo", 0x1c: "const-class",
	0x1d: "monitor-enter", 0x1e: "monitor-exit",
	0x1f: "check-cast", 0x20: "instance-of", 0x21: "array-length",
	0x22: "new-instance", 0x23: "new-array",
	0x24: "filled-new-array", 0x25: "filled-new-array/range",
	0x26: "fill-array-data", 0x27: "throw",
	0x28: "goto", 0x29: "goto/16", 0x2a: "goto/32",
	0x2b: "packed-switch", 0x2c: "sparse-switch",
	0x2d: "cmpl-float", 0x2e: "cmpg-float", 0x2f: "cmpl-double", 0x30: "cmpg-double",
	0x31: "cmp-long",
	0x32: "if-eq", 0x33: "if-ne", 0x34: "if-lt", 0x35: "if-ge", 0x36: "if-gt", 0x37: "if-le",
	0x38: "if-eqz", 0x39: "if-nez", 0x3a: "if-ltz", 0x3b: "if-gez", 0x3c: "if-gtz", 0x3d: "if-lez",
	0x44: "aget", 0x45: "aget-wide", 0x46: "aget-object", 0x47: "aget-boolean",
	0x48: "aget-byte", 0x49: "aget-char", 0x4a: "aget-short",
	0x4b: "aput", 0x4c: "aput-wide", 0x4d: "aput-object", 0x4e: "aput-boolean",
	0x4f: "aput-byte", 0x50: "aput-char", 0x51: "aput-short",
	0x52: "iget", 0x53: "iget-wide", 0x54: "iget-object", 0x55: "iget-boolean",
	0x56: "iget-byte", 0x57: "iget-char", 0x58: "iget-short",
	0x59: "iput", 0x5a: "iput-wide", 0x5b: "iput-object", 0x5c: "iput-boolean",
	0x5d: "iput-byte", 0x5e: "iput-char", 0x5f: "iput-short",
	0x60: "sget", 0x61: "sget-wide", 0x62: "sget-object", 0x63: "sget-boolean",
	0x64: "sget-byte", 0x65: "sget-char", 0x66: "sget-short",
	0x67: "sput", 0x68: "sput-wide", 0x69: "sput-object", 0x6a: "sput-boolean",
	0x6b: "sput-byte", 0x6c: "sput-char", 0x6d: "sput-short",
	0x6e: "invoke-virtual", 0x6f: "invoke-super", 0x70: "invoke-direct",
	0x71: "invoke-static", 0x72: "invoke-interface",
	0x74: "invoke-virtual/range", 0x75: "invoke-super/range", 0x76: "invoke-direct/range",
	0x77: "invoke-static/range", 0x78: "invoke-interface/range",
	0x7b: "neg-int", 0x7c: "not-int", 0x7d: "neg-long", 0x7e: "not-long",
	0x7f: "neg-float", 0x80: "neg-double",
	0x81: "int-to-long", 0x82: "int-to-float", 0x83: "int-to-double",
	0x84: "long-to-int", 0x85: "long-to-float", 0x86: "long-to-double",
	0x87: "float-to-int", 0x88: "float-to-long", 0x89: "float-to-double",
	0x8a: "double-to-int", 0x8b: "double-to-long", 0x8c: "double-to-float",
	0x8d: "int-to-byte", 0x8e: "int-to-char", 0x8f: "int-to-short",
	0x90: "add-int", 0x91: "sub-int", 0x92: "mul-int", 0x93: "div-int", 0x94: "rem-int",
	0x95: "and-int", 0x96: "or-int", 0x97: "xor-int", 0x98: "shl-int", 0x99: "shr-int", 0x9a: "ushr-int",
	0x9b: "add-long", 0x9c: "sub-long", 0x9d: "mul-long", 0x9e: "div-long", 0x9f: "rem-long",
	0xa0: "and-long", 0xa1: "or-long", 0xa2: "xor-long", 0xa3: "shl-long", 0xa4: "shr-long", 0xa5: "ushr-long",
	0xa6: "add-float", 0xa7: "sub-float", 0xa8: "mul-float", 0xa9: "div-float", 0xaa: "rem-float",
	0xab: "add-double", 0xac: "sub-double", 0xad: "mul-double", 0xae: "div-double", 0xaf: "rem-double",
	0xb0: "add-int/2addr", 0xb1: "sub-int/2addr", 0xb2: "mul-int/2addr", 0xb3: "div-int/2addr", 0xb4: "rem-int/2addr",
	0xb5: "and-int/2addr", 0xb6: "or-int/2addr", 0xb7: "xor-int/2addr", 0xb8: "shl-int/2addr", 0xb9: "shr-int/2addr", 0xba: "ushr-int/2addr",
	0xbb: "add-long/2addr", 0xbc: "sub-long/2addr", 0xbd: "mul-long/2addr", 0xbe: "div-long/2addr", 0xbf: "rem-long/2addr",
	0xc0: "and-long/2addr", 0xc1: "or-long/2addr", 0xc2: "xor-long/2addr", 0xc3: "shl-long/2addr", 0xc4: "shr-long/2addr", 0xc5: "ushr-long/2addr",
	0xc6: "add-float/2addr", 0xc7: "sub-float/2addr", 0xc8: "mul-float/2addr", 0xc9: "div-float/2addr", 0xca: "rem-float/2addr",
	0xcb: "add-double/2addr", 0xcc: "sub-double/2addr", 0xcd: "mul-double/2addr", 0xce: "div-double/2addr", 0xcf: "rem-double/2addr",
	0xd0: "add-int/lit16", 0xd1: "rsub-int", 0xd2: "mul-int/lit16", 0xd3: "div-int/lit16",
	0xd4: "rem-int/lit16", 0xd5: "and-int/lit16", 0xd6: "or-int/lit16", 0xd7: "xor-int/lit16",
	0xd8: "add-int/lit8", 0xd9: "rsub-int/lit8", 0xda: "mul-int/lit8", 0xdb: "div-int/lit8",
	0xdc: "rem-int/lit8", 0xdd: "and-int/lit8", 0xde: "or-int/lit8", 0xdf: "xor-int/lit8",
	0xe0: "shl-int/lit8", 0xe1: "shr-int/lit8", 0xe2: "ushr-int/lit8",

	// DEX 038+ opcodes, absent from the teacher's table (which predates
	// them); formats and semantics per the Dalvik bytecode reference.
	0xfa: "invoke-polymorphic", 0xfb: "invoke-polymorphic/range",
	0xfc: "invoke-custom", 0xfd: "invoke-custom/range",
	0xfe: "const-method-handle", 0xff: "const-method-type",
}

// opcodeFormat maps an opcode byte to its instruction format code. Copied
// verbatim from google-enjarify__formats.go's formats table (the 0x00-0xe2
// range), then overridden for the 038+ opcodes it predates.
var opcodeFormat = [256]string{
	"10x", "12x", "22x", "32x", "12x", "22x", "32x", "12x", "22x", "32x", "11x", "11x", "11x", "11x", "10x", "11x", "11x", "11x", "11n", "21s", "31i", "21h", "21s", "31i", "51l", "21h", "21c", "31c", "21c", "11x", "11x", "21c", "22c", "12x", "21c", "22c", "35c", "3rc", "31t", "11x", "10t", "20t", "30t", "31t", "31t", "23x", "23x", "23x", "23x", "23x", "22t", "22t", "22t", "22t", "22t", "22t", "21t", "21t", "21t", "21t", "21t", "21t", "10x", "10x", "10x", "10x", "10x", "10x", "23x", "23x", "23x", "23x", "23x", "23x", "23x", "23x", "23x", "23x", "23x", "23x", "23x", "23x", "22c", "22c", "22c", "22c", "22c", "22c", "22c", "22c", "22c", "22c", "22c", "22c", "22c", "22c", "21c", "21c", "21c", "21c", "21c", "21c", "21c", "21c", "21c", "21c", "21c", "21c", "21c", "21c", "35c", "35c", "35c", "35c", "35c", "10x", "3rc", "3rc", "3rc", "3rc", "3rc", "10x", "10x", "12x", "12x", "12x", "12x", "12x", "12x", "12x", "12x", "12x", "12x", "12x", "12x", "12x", "12x", "12x", "12x", "12x", "12x", "12x", "12x", "12x", "23x", "23x", "23x", "23x", "23x", "23x", "23x", "23x", "23x", "23x", "23x", "23x", "23x", "23x", "23x", "23x", "23x", "23x", "23x", "23x", "23x", "23x", "23x", "23x", "23x", "23x", "23x", "23x", "23x", "23x", "23x", "23x", "12x", "12x", "12x", "12x", "12x", "12x", "12x", "12x", "12x", "12x", "12x", "12x", "12x", "12x", "12x", "12x", "12x", "12x", "12x", "12x", "12x", "12x", "12x", "12x", "12x", "12x", "12x", "12x", "12x", "12x", "12x", "12x", "22s", "22s", "22s", "22s", "22s", "22s", "22s", "22s", "22b", "22b", "22b", "22b", "22b", "22b", "22b", "22b", "22b", "22b", "22b", "10x", "10x", "10x", "10x", "10x", "10x", "10x", "10x", "10x", "10x", "10x", "10x", "10x", "10x", "10x", "10x", "10x", "10x", "10x", "10x", "10x", "10x", "10x", "10x", "10x", "10x", "10x", "10x", "10x",
}

func init() {
	opcodeFormat[0xfa] = "45cc"
	opcodeFormat[0xfb] = "4rcc"
	opcodeFormat[0xfc] = "35c"
	opcodeFormat[0xfd] = "3rc"
	opcodeFormat[0xfe] = "21c"
	opcodeFormat[0xff] = "21c"
}

// PoolKind identifies which id pool an instruction's index operand names.
// Image.DecodeOpcode tags operands with their pool but never resolves them; the
// caller resolves through Image.Type/Field/Method/Prototype/etc as needed.
type PoolKind int

const (
	PoolNone PoolKind = iota
	PoolString
	PoolType
	PoolField
	PoolMethod
	PoolProto
	PoolCallSite
	PoolMethodHandle
)

// PoolRef is a tagged, unresolved pool index.
type PoolRef struct {
	Kind  PoolKind
	Index uint32
}

// poolKindForOpcode classifies which pool an index-carrying opcode refers
// to. Grounded on the opcode group boundaries in google-enjarify__dalvik.go's
// getOpcode, generalized to name the pool instead of a semantic category.
func poolKindForOpcode(opcode byte) PoolKind {
	switch {
	case opcode == 0x1a || opcode == 0x1b:
		return PoolString
	case opcode == 0x1c || opcode == 0x1f || opcode == 0x20 || opcode == 0x22 || opcode == 0x23 ||
		opcode == 0x24 || opcode == 0x25:
		return PoolType
	case opcode >= 0x52 && opcode <= 0x6d:
		return PoolField
	case opcode >= 0x6e && opcode <= 0x72, opcode >= 0x74 && opcode <= 0x78:
		return PoolMethod
	case opcode == 0xfa || opcode == 0xfb:
		return PoolMethod // the method half; Proto carries PoolProto separately
	case opcode == 0xfc || opcode == 0xfd:
		return PoolCallSite
	case opcode == 0xfe:
		return PoolMethodHandle
	case opcode == 0xff:
		return PoolProto
	}
	return PoolNone
}

// Operand bundle types, one per instruction format this core decodes.
// Kept as distinct types rather than a single generic struct so that each
// format only carries the fields it actually has.

type OpNone struct{}
type Op11x struct{ A uint32 }
type Op12x struct{ A, B uint32 }
type Op11n struct {
	A       uint32
	Literal int32
}
type Op21s struct {
	A       uint32
	Literal int32
}
type Op21h struct {
	A       uint32
	Literal int64 // already widened to its canonical bit position
}
type Op51l struct {
	A       uint32
	Literal int64
}
type Op21c struct {
	A    uint32
	Pool PoolRef
}
type Op31c struct {
	A    uint32
	Pool PoolRef
}
type Op22c struct {
	A, B uint32
	Pool PoolRef
}
type Op35c struct {
	Args []uint32 // up to 5 registers, vC..vG in that order
	Pool PoolRef
}
type Op3rc struct {
	FirstReg uint32
	Count    uint32
	Pool     PoolRef
}
type Op31t struct {
	A      uint32
	Target int64 // absolute file offset of the referenced payload
}
type Op10t struct{ Target int64 }
type Op20t struct{ Target int64 }
type Op30t struct{ Target int64 }
type Op21t struct {
	A      uint32
	Target int64
}
type Op22t struct {
	A, B   uint32
	Target int64
}
type Op22x struct{ A, B uint32 }
type Op32x struct{ A, B uint32 }
type Op23x struct{ A, B, C uint32 }
type Op22b struct {
	A, B    uint32
	Literal int32
}
type Op22s struct {
	A, B    uint32
	Literal int32
}
type Op31i struct {
	A       uint32
	Literal int32
}
type Op45cc struct {
	Args   []uint32
	Method PoolRef
	Proto  PoolRef
}
type Op4rcc struct {
	FirstReg uint32
	Count    uint32
	Method   PoolRef
	Proto    PoolRef
}

// PackedSwitchPayload is a decoded packed-switch-payload pseudo-instruction.
// Targets are signed code-unit offsets relative to the packed-switch
// instruction that references this payload, not to the payload itself;
// add twice a target (code units to bytes) to the referencing
// instruction's own offset to recover an absolute target, the same
// convention §4.7 uses for ordinary branch targets.
type PackedSwitchPayload struct {
	FirstKey int32
	Targets  []int32
}

// SparseSwitchPayload is a decoded sparse-switch-payload pseudo-instruction.
type SparseSwitchPayload struct {
	Keys    []int32
	Targets []int32
}

// FillArrayDataPayload is a decoded fill-array-data-payload pseudo-instruction.
type FillArrayDataPayload struct {
	ElementWidth uint16
	Data         []byte
}

// Instruction is one decoded Dalvik instruction or payload pseudo-instruction.
type Instruction struct {
	Opcode   byte
	Mnemonic string
	Format   string // "" for payload pseudo-instructions
	Offset   int64  // absolute file offset of the opcode/payload-tag code unit
	Length   int    // length in bytes
	Operands any
}

// decodeInstruction decodes one instruction or payload at offset and
// returns it plus the absolute offset of whatever follows it. Grounded on
// google-enjarify's decode/parseInstruction (formats.go, dalvik.go),
// reworked to read through the seekable byteReader instead of indexing a
// pre-sliced []uint16, and to tag pool operands instead of resolving them.
func decodeInstruction(r *byteReader, offset int64) (Instruction, int64, error) {
	r.seek(offset)
	word, err := r.readU16LE()
	if err != nil {
		return Instruction{}, offset, err
	}

	switch word {
	case 0x0100:
		return decodePackedSwitchPayload(r, offset)
	case 0x0200:
		return decodeSparseSwitchPayload(r, offset)
	case 0x0300:
		return decodeFillArrayDataPayload(r, offset)
	}

	opcode := byte(word)
	format := opcodeFormat[opcode]
	mnemonic := opcodeMnemonic[opcode]
	if format == "" || mnemonic == "" {
		return Instruction{}, offset, errUnknownOpcode(opcode, offset)
	}

	inst := Instruction{Opcode: opcode, Mnemonic: mnemonic, Format: format, Offset: offset}

	readWord := func() (uint16, error) { return r.readU16LE() }

	switch format {
	case "10x":
		inst.Operands = OpNone{}

	case "12x":
		inst.Operands = Op12x{A: uint32(word>>8) & 0xF, B: uint32(word >> 12)}

	case "11n":
		lit := int32(int8(word>>12) << 4 >> 4)
		inst.Operands = Op11n{A: uint32(word>>8) & 0xF, Literal: lit}

	case "11x":
		inst.Operands = Op11x{A: uint32(word >> 8)}

	case "10t":
		inst.Operands = Op10t{Target: offset + int64(int8(word>>8))*2}

	case "20t":
		w2, err := readWord()
		if err != nil {
			return Instruction{}, offset, err
		}
		inst.Operands = Op20t{Target: offset + int64(int16(w2))*2}

	case "22x":
		w2, err := readWord()
		if err != nil {
			return Instruction{}, offset, err
		}
		inst.Operands = Op22x{A: uint32(word >> 8), B: uint32(w2)}

	case "21t":
		w2, err := readWord()
		if err != nil {
			return Instruction{}, offset, err
		}
		inst.Operands = Op21t{A: uint32(word >> 8), Target: offset + int64(int16(w2))*2}

	case "21s":
		w2, err := readWord()
		if err != nil {
			return Instruction{}, offset, err
		}
		inst.Operands = Op21s{A: uint32(word >> 8), Literal: int32(int16(w2))}

	case "21h":
		w2, err := readWord()
		if err != nil {
			return Instruction{}, offset, err
		}
		var lit int64
		if opcode == 0x15 { // const/high16: widen into a 32-bit value
			lit = int64(int32(uint32(w2) << 16))
		} else { // const-wide/high16: widen into a 64-bit value
			lit = int64(uint64(w2) << 48)
		}
		inst.Operands = Op21h{A: uint32(word >> 8), Literal: lit}

	case "21c":
		w2, err := readWord()
		if err != nil {
			return Instruction{}, offset, err
		}
		inst.Operands = Op21c{A: uint32(word >> 8), Pool: PoolRef{Kind: poolKindForOpcode(opcode), Index: uint32(w2)}}

	case "23x":
		w2, err := readWord()
		if err != nil {
			return Instruction{}, offset, err
		}
		inst.Operands = Op23x{A: uint32(word >> 8), B: uint32(w2) & 0xFF, C: uint32(w2) >> 8}

	case "22b":
		w2, err := readWord()
		if err != nil {
			return Instruction{}, offset, err
		}
		inst.Operands = Op22b{A: uint32(word >> 8), B: uint32(w2) & 0xFF, Literal: int32(int8(w2 >> 8))}

	case "22t":
		w2, err := readWord()
		if err != nil {
			return Instruction{}, offset, err
		}
		inst.Operands = Op22t{A: uint32(word>>8) & 0xF, B: uint32(word >> 12), Target: offset + int64(int16(w2))*2}

	case "22s":
		w2, err := readWord()
		if err != nil {
			return Instruction{}, offset, err
		}
		inst.Operands = Op22s{A: uint32(word>>8) & 0xF, B: uint32(word >> 12), Literal: int32(int16(w2))}

	case "22c":
		w2, err := readWord()
		if err != nil {
			return Instruction{}, offset, err
		}
		inst.Operands = Op22c{A: uint32(word>>8) & 0xF, B: uint32(word >> 12), Pool: PoolRef{Kind: poolKindForOpcode(opcode), Index: uint32(w2)}}

	case "30t":
		w2, err := readWord()
		if err != nil {
			return Instruction{}, offset, err
		}
		w3, err := readWord()
		if err != nil {
			return Instruction{}, offset, err
		}
		delta := int32(uint32(w2) | uint32(w3)<<16)
		inst.Operands = Op30t{Target: offset + int64(delta)*2}

	case "32x":
		w2, err := readWord()
		if err != nil {
			return Instruction{}, offset, err
		}
		w3, err := readWord()
		if err != nil {
			return Instruction{}, offset, err
		}
		inst.Operands = Op32x{A: uint32(w2), B: uint32(w3)}

	case "31i":
		w2, err := readWord()
		if err != nil {
			return Instruction{}, offset, err
		}
		w3, err := readWord()
		if err != nil {
			return Instruction{}, offset, err
		}
		inst.Operands = Op31i{A: uint32(word >> 8), Literal: int32(uint32(w2) | uint32(w3)<<16)}

	case "31t":
		w2, err := readWord()
		if err != nil {
			return Instruction{}, offset, err
		}
		w3, err := readWord()
		if err != nil {
			return Instruction{}, offset, err
		}
		delta := int32(uint32(w2) | uint32(w3)<<16)
		inst.Operands = Op31t{A: uint32(word >> 8), Target: offset + int64(delta)*2}

	case "31c":
		w2, err := readWord()
		if err != nil {
			return Instruction{}, offset, err
		}
		w3, err := readWord()
		if err != nil {
			return Instruction{}, offset, err
		}
		index := uint32(w2) | uint32(w3)<<16
		inst.Operands = Op31c{A: uint32(word >> 8), Pool: PoolRef{Kind: PoolString, Index: index}}

	case "35c":
		a := word >> 12
		if a > 5 {
			return Instruction{}, offset, errBadInstructionFormat(opcode, offset, "arg count out of range for 35c")
		}
		w2, err := readWord()
		if err != nil {
			return Instruction{}, offset, err
		}
		w3, err := readWord()
		if err != nil {
			return Instruction{}, offset, err
		}
		c, d, e, f := w3&0xF, (w3>>4)&0xF, (w3>>8)&0xF, (w3>>12)&0xF
		g := (word >> 8) & 0xF
		all := []uint32{uint32(c), uint32(d), uint32(e), uint32(f), uint32(g)}
		inst.Operands = Op35c{Args: all[:a], Pool: PoolRef{Kind: poolKindForOpcode(opcode), Index: uint32(w2)}}

	case "3rc":
		a := word >> 8
		w2, err := readWord()
		if err != nil {
			return Instruction{}, offset, err
		}
		w3, err := readWord()
		if err != nil {
			return Instruction{}, offset, err
		}
		inst.Operands = Op3rc{FirstReg: uint32(w3), Count: uint32(a), Pool: PoolRef{Kind: poolKindForOpcode(opcode), Index: uint32(w2)}}

	case "45cc":
		a := word >> 12
		if a < 1 || a > 5 {
			return Instruction{}, offset, errBadInstructionFormat(opcode, offset, "arg count out of range for 45cc")
		}
		w2, err := readWord() // method index
		if err != nil {
			return Instruction{}, offset, err
		}
		w3, err := readWord()
		if err != nil {
			return Instruction{}, offset, err
		}
		w4, err := readWord() // proto index
		if err != nil {
			return Instruction{}, offset, err
		}
		c, d, e, f := w3&0xF, (w3>>4)&0xF, (w3>>8)&0xF, (w3>>12)&0xF
		g := (word >> 8) & 0xF
		all := []uint32{uint32(c), uint32(d), uint32(e), uint32(f), uint32(g)}
		inst.Operands = Op45cc{
			Args:   all[:a],
			Method: PoolRef{Kind: PoolMethod, Index: uint32(w2)},
			Proto:  PoolRef{Kind: PoolProto, Index: uint32(w4)},
		}

	case "4rcc":
		a := word >> 8
		w2, err := readWord() // method index
		if err != nil {
			return Instruction{}, offset, err
		}
		w3, err := readWord() // first register
		if err != nil {
			return Instruction{}, offset, err
		}
		w4, err := readWord() // proto index
		if err != nil {
			return Instruction{}, offset, err
		}
		inst.Operands = Op4rcc{
			FirstReg: uint32(w3), Count: uint32(a),
			Method: PoolRef{Kind: PoolMethod, Index: uint32(w2)},
			Proto:  PoolRef{Kind: PoolProto, Index: uint32(w4)},
		}

	case "51l":
		a := uint32(word >> 8)
		var long uint64
		for i := 0; i < 4; i++ {
			w, err := readWord()
			if err != nil {
				return Instruction{}, offset, err
			}
			long |= uint64(w) << (16 * i)
		}
		inst.Operands = Op51l{A: a, Literal: int64(long)}

	default:
		return Instruction{}, offset, errBadInstructionFormat(opcode, offset, "unrecognized format "+format)
	}

	inst.Length = int(r.position() - offset)
	return inst, offset + int64(inst.Length), nil
}

// decodePackedSwitchPayload decodes a packed-switch-payload pseudo-
// instruction: ident (0x0100), size, first_key, then size signed 32-bit
// relative targets. Grounded on google-enjarify__dalvik.go's parseInstruction
// packed-switch branch.
func decodePackedSwitchPayload(r *byteReader, offset int64) (Instruction, int64, error) {
	size, err := r.readU16LE()
	if err != nil {
		return Instruction{}, offset, err
	}
	firstKeyU, err := r.readU32LE()
	if err != nil {
		return Instruction{}, offset, err
	}
	targets := make([]int32, size)
	for i := range targets {
		t, err := r.readU32LE()
		if err != nil {
			return Instruction{}, offset, err
		}
		targets[i] = int32(t)
	}

	length := int(r.position() - offset)
	inst := Instruction{
		Opcode: 0x00, Mnemonic: "packed-switch-payload", Offset: offset, Length: length,
		Operands: PackedSwitchPayload{FirstKey: int32(firstKeyU), Targets: targets},
	}
	return inst, offset + int64(length), nil
}

// decodeSparseSwitchPayload decodes a sparse-switch-payload pseudo-
// instruction: ident (0x0200), size, size signed 32-bit keys (ascending),
// then size signed 32-bit relative targets.
func decodeSparseSwitchPayload(r *byteReader, offset int64) (Instruction, int64, error) {
	size, err := r.readU16LE()
	if err != nil {
		return Instruction{}, offset, err
	}
	keys := make([]int32, size)
	for i := range keys {
		k, err := r.readU32LE()
		if err != nil {
			return Instruction{}, offset, err
		}
		keys[i] = int32(k)
	}
	targets := make([]int32, size)
	for i := range targets {
		t, err := r.readU32LE()
		if err != nil {
			return Instruction{}, offset, err
		}
		targets[i] = int32(t)
	}

	length := int(r.position() - offset)
	inst := Instruction{
		Opcode: 0x00, Mnemonic: "sparse-switch-payload", Offset: offset, Length: length,
		Operands: SparseSwitchPayload{Keys: keys, Targets: targets},
	}
	return inst, offset + int64(length), nil
}

// decodeFillArrayDataPayload decodes a fill-array-data-payload pseudo-
// instruction: ident (0x0300), element_width, size, then size*element_width
// bytes of raw element data (padded to an even byte count).
func decodeFillArrayDataPayload(r *byteReader, offset int64) (Instruction, int64, error) {
	width, err := r.readU16LE()
	if err != nil {
		return Instruction{}, offset, err
	}
	size, err := r.readU32LE()
	if err != nil {
		return Instruction{}, offset, err
	}

	dataLen := int64(width) * int64(size)
	data, err := r.readBytes(int(dataLen))
	if err != nil {
		return Instruction{}, offset, err
	}
	dataCopy := make([]byte, len(data))
	copy(dataCopy, data)

	if dataLen%2 != 0 {
		if _, err := r.readU8(); err != nil { // trailing pad byte to keep code-unit alignment
			return Instruction{}, offset, err
		}
	}

	length := int(r.position() - offset)
	inst := Instruction{
		Opcode: 0x00, Mnemonic: "fill-array-data-payload", Offset: offset, Length: length,
		Operands: FillArrayDataPayload{ElementWidth: width, Data: dataCopy},
	}
	return inst, offset + int64(length), nil
}
