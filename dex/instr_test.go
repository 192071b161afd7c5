package dex

import "testing"

func code(units ...uint16) []byte {
	b := make([]byte, len(units)*2)
	for i, u := range units {
		b[2*i] = byte(u)
		b[2*i+1] = byte(u >> 8)
	}
	return b
}

func TestDecodeInstructionNop(t *testing.T) {
	r := newByteReader(code(0x0000))
	inst, next, err := decodeInstruction(r, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if inst.Mnemonic != "nop" || inst.Format != "10x" || inst.Length != 2 || next != 2 {
		t.Errorf("got %+v next=%d, want nop/10x/len2/next2", inst, next)
	}
}

func TestDecodeInstructionConst4(t *testing.T) {
	// const/4 vA, #+B: opcode 0x12, A=1, B=-1 (0xF nibble sign-extended)
	word := uint16(0x12) | uint16(1)<<8 | uint16(0xF)<<12
	r := newByteReader(code(word))
	inst, _, err := decodeInstruction(r, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	op, ok := inst.Operands.(Op11n)
	if !ok {
		t.Fatalf("Operands = %T, want Op11n", inst.Operands)
	}
	if op.A != 1 || op.Literal != -1 {
		t.Errorf("got A=%d Literal=%d, want A=1 Literal=-1", op.A, op.Literal)
	}
}

func TestDecodeInstructionGoto(t *testing.T) {
	// goto +2 (branch forward one code unit pair, signed 8-bit code-unit
	// offset = 2), placed at absolute offset 100 of the buffer.
	word := uint16(0x28) | uint16(2)<<8
	r := newByteReader(append(make([]byte, 100), code(word)...))
	inst, next, err := decodeInstruction(r, 100)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	op, ok := inst.Operands.(Op10t)
	if !ok {
		t.Fatalf("Operands = %T, want Op10t", inst.Operands)
	}
	if op.Target != 104 {
		t.Errorf("Target = %d, want 104 (100 + 2*2)", op.Target)
	}
	if next != 102 {
		t.Errorf("next = %d, want 102", next)
	}
}

func TestDecodeInstructionConstString(t *testing.T) {
	// const-string vAA, string@BBBB: opcode 0x1a, A=0, string id 0x0005
	w1 := uint16(0x1a)
	w2 := uint16(0x0005)
	r := newByteReader(code(w1, w2))
	inst, _, err := decodeInstruction(r, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	op, ok := inst.Operands.(Op21c)
	if !ok {
		t.Fatalf("Operands = %T, want Op21c", inst.Operands)
	}
	if op.Pool.Kind != PoolString || op.Pool.Index != 5 {
		t.Errorf("Pool = %+v, want {PoolString 5}", op.Pool)
	}
}

func TestDecodeInstructionInvokeVirtual(t *testing.T) {
	// invoke-virtual {vC..vG}, meth@BBBB with 2 args: opcode 0x6e
	w1 := uint16(0x6e) | uint16(2)<<12 // arg count = 2
	w2 := uint16(7)                    // method index
	w3 := uint16(0x0001) | uint16(0x0002)<<4
	r := newByteReader(code(w1, w2, w3))
	inst, _, err := decodeInstruction(r, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	op, ok := inst.Operands.(Op35c)
	if !ok {
		t.Fatalf("Operands = %T, want Op35c", inst.Operands)
	}
	if op.Pool.Kind != PoolMethod || op.Pool.Index != 7 {
		t.Errorf("Pool = %+v, want {PoolMethod 7}", op.Pool)
	}
	if len(op.Args) != 2 || op.Args[0] != 1 || op.Args[1] != 2 {
		t.Errorf("Args = %v, want [1 2]", op.Args)
	}
}

func TestDecodeInstructionUnknownOpcode(t *testing.T) {
	r := newByteReader(code(0x00e3)) // unassigned opcode in this table
	if _, _, err := decodeInstruction(r, 0); err == nil {
		t.Errorf("expected UnknownOpcode error for opcode 0xe3")
	}
}

func TestDecodePackedSwitchPayload(t *testing.T) {
	// ident=0x0100, size=2, first_key=10, targets=[5,9]
	buf := append([]byte{}, code(0x0100, 0x0002)...)
	buf = append(buf, putTestU32(10)...)
	buf = append(buf, putTestU32(5)...)
	buf = append(buf, putTestU32(9)...)
	r := newByteReader(buf)
	inst, next, err := decodeInstruction(r, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	p, ok := inst.Operands.(PackedSwitchPayload)
	if !ok {
		t.Fatalf("Operands = %T, want PackedSwitchPayload", inst.Operands)
	}
	if p.FirstKey != 10 || len(p.Targets) != 2 || p.Targets[0] != 5 || p.Targets[1] != 9 {
		t.Errorf("got %+v, want FirstKey=10 Targets=[5 9]", p)
	}
	if next != int64(len(buf)) {
		t.Errorf("next = %d, want %d", next, len(buf))
	}
}

func putTestU32(v uint32) []byte {
	return []byte{byte(v), byte(v >> 8), byte(v >> 16), byte(v >> 24)}
}
