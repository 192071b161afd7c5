package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/mariokmk/dexlib/dex"
	"github.com/mariokmk/dexlib/render"
)

// plainRenderer is the reference Renderer implementation: one line per
// field/method declaration, one line per instruction (mnemonic plus a
// %+v dump of its operand bundle). With emitRawBytes set, each line also
// shows the instruction's length in bytes; the raw bytes themselves are
// not printed. It exists to prove render.Renderer is satisfiable
// by something simple, not to be a full disassembler front-end; a
// "resolved" renderer that annotates operands with their pool names is
// deliberately left unbuilt (see DESIGN.md).
type plainRenderer struct{}

func init() {
	render.Default.Register("plain", func() render.Renderer { return &plainRenderer{} })
}

func (p *plainRenderer) Name() string      { return "plain" }
func (p *plainRenderer) Extension() string { return "txt" }

func (p *plainRenderer) RenderClass(im *dex.Image, class dex.Class, opts render.DisplayOptions, out io.Writer) error {
	name, err := class.Name()
	if err != nil {
		return err
	}
	super, err := class.Superclass()
	if err != nil {
		return err
	}
	if super == "" {
		fmt.Fprintf(out, "class %s\n", name)
	} else {
		fmt.Fprintf(out, "class %s extends %s\n", name, super)
	}

	if opts.ShowFields {
		fields, err := class.Fields()
		if err != nil {
			return err
		}
		for _, f := range fields {
			fname, err := f.Name()
			if err != nil {
				return err
			}
			ftype, err := f.TypeName()
			if err != nil {
				return err
			}
			kind := "instance"
			if f.Static {
				kind = "static"
			}
			fmt.Fprintf(out, "  %s field %s %s\n", kind, ftype, fname)
		}
	}

	if opts.ShowMethods {
		methods, err := class.Methods()
		if err != nil {
			return err
		}
		for _, m := range methods {
			if err := p.RenderMethod(im, class, m, out, 2, opts.EmitRawBytes); err != nil {
				return err
			}
		}
	}
	return nil
}

func (p *plainRenderer) RenderMethod(im *dex.Image, class dex.Class, method dex.ClassMethod, out io.Writer, indent int, emitRawBytes bool) error {
	pad := strings.Repeat(" ", indent)

	mname, err := method.Name()
	if err != nil {
		return err
	}
	proto, err := method.Prototype()
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "%smethod %s %s(%s)\n", pad, proto.ReturnType, mname, strings.Join(proto.ParamTypes, ", "))

	ci, err := method.Code()
	if err != nil {
		return err
	}
	if ci.InsnsOffset == 0 {
		fmt.Fprintf(out, "%s  (no code)\n", pad)
		return nil
	}

	insnsEnd := int64(ci.InsnsOffset) + int64(ci.InsnsSize)*2
	offset := int64(ci.InsnsOffset)
	for offset < insnsEnd {
		inst, next, err := im.DecodeOpcode(offset)
		if err != nil {
			return err
		}
		if emitRawBytes {
			fmt.Fprintf(out, "%s  %04x: [%d bytes] %s %+v\n", pad, offset, inst.Length, inst.Mnemonic, inst.Operands)
		} else {
			fmt.Fprintf(out, "%s  %04x: %s %+v\n", pad, offset, inst.Mnemonic, inst.Operands)
		}
		offset = next
	}
	return nil
}
