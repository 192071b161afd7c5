package dex

// CatchHandler is one (type, handler address) pair from a try block's
// exception handler list. A catch-all address, if any, is held by the
// enclosing TryBlock's CatchAllAddr, not here.
type CatchHandler struct {
	TypeTypeID uint32
	Address    uint32
}

// TryBlock is one try_item plus its resolved handler list.
type TryBlock struct {
	StartAddr    uint32 // in 16-bit code units from the start of insns
	InsnCount    uint16
	Handlers     []CatchHandler
	CatchAllAddr uint32 // 0xFFFFFFFF (noIndex) if there is no catch-all
}

// CodeItem is a decoded code_item: register/parameter counts, the location
// and length of the instruction stream (the instructions themselves are
// not copied out; decode them in place from InsnsOffset), and try/catch
// tables. This
// spec's Non-goals exclude full debug-info decoding, but not the
// try/catch table, since a disassembler's control-flow view needs it.
type CodeItem struct {
	RegistersSize uint16
	InsSize       uint16
	OutsSize      uint16
	DebugInfoOff  uint32

	// InsnsOffset is the absolute file offset of the first instruction;
	// pass this to Image.DecodeOpcode to begin decoding.
	InsnsOffset uint32
	InsnsSize   uint32 // in 16-bit code units

	Tries []TryBlock
}

// readCodeItem decodes the code_item at the given absolute offset.
func (im *Image) readCodeItem(offset uint32) (CodeItem, error) {
	var ci CodeItem

	r := newByteReader(im.r.data)
	r.seek(int64(offset))

	var err error
	if ci.RegistersSize, err = r.readU16LE(); err != nil {
		return ci, err
	}
	if ci.InsSize, err = r.readU16LE(); err != nil {
		return ci, err
	}
	if ci.OutsSize, err = r.readU16LE(); err != nil {
		return ci, err
	}
	triesSize, err := r.readU16LE()
	if err != nil {
		return ci, err
	}
	if ci.DebugInfoOff, err = r.readU32LE(); err != nil {
		return ci, err
	}
	if ci.InsnsSize, err = r.readU32LE(); err != nil {
		return ci, err
	}
	ci.InsnsOffset = uint32(r.position())

	// Skip over the instruction stream to reach the try/catch tables.
	r.seek(r.position() + int64(ci.InsnsSize)*2)

	if triesSize == 0 {
		return ci, nil
	}

	// A two-byte padding field appears before the try_item array only
	// when insns_size is odd (so the array is 4-byte aligned).
	if ci.InsnsSize%2 != 0 {
		if _, err := r.readU16LE(); err != nil {
			return ci, err
		}
	}

	type rawTry struct {
		startAddr uint32
		insnCount uint16
		handlerOff uint16
	}
	rawTries := make([]rawTry, triesSize)
	for i := range rawTries {
		if rawTries[i].startAddr, err = r.readU32LE(); err != nil {
			return ci, err
		}
		if rawTries[i].insnCount, err = r.readU16LE(); err != nil {
			return ci, err
		}
		if rawTries[i].handlerOff, err = r.readU16LE(); err != nil {
			return ci, err
		}
	}

	handlersListStart := r.position()
	handlersCount, err := r.readULEB128()
	if err != nil {
		return ci, err
	}

	// Each handler list entry's offset in the try_item table is relative
	// to the start of the encoded_catch_handler_list (i.e. to
	// handlersListStart), so decode every list entry once, indexed by its
	// byte offset from that start, then look each try's handlerOff up.
	byOffset := make(map[uint16][]CatchHandler, handlersCount)
	catchAllByOffset := make(map[uint16]uint32, handlersCount)
	for i := uint32(0); i < handlersCount; i++ {
		entryOffset := uint16(r.position() - handlersListStart)
		size, err := r.readSLEB128()
		if err != nil {
			return ci, err
		}
		n := size
		if n < 0 {
			n = -n
		}
		handlers := make([]CatchHandler, 0, n)
		for j := int32(0); j < n; j++ {
			typeIdx, err := r.readULEB128()
			if err != nil {
				return ci, err
			}
			addr, err := r.readULEB128()
			if err != nil {
				return ci, err
			}
			handlers = append(handlers, CatchHandler{TypeTypeID: typeIdx, Address: addr})
		}
		catchAll := uint32(noIndex)
		if size <= 0 {
			catchAll, err = r.readULEB128()
			if err != nil {
				return ci, err
			}
		}
		byOffset[entryOffset] = handlers
		catchAllByOffset[entryOffset] = catchAll
	}

	ci.Tries = make([]TryBlock, triesSize)
	for i, rt := range rawTries {
		ci.Tries[i] = TryBlock{
			StartAddr:    rt.startAddr,
			InsnCount:    rt.insnCount,
			Handlers:     byOffset[rt.handlerOff],
			CatchAllAddr: catchAllByOffset[rt.handlerOff],
		}
	}

	return ci, nil
}
