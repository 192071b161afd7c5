package dex_test

import (
	"testing"

	"github.com/mariokmk/dexlib/dex"
	"github.com/mariokmk/dexlib/dexapktest"
)

func TestOpenSyntheticImage(t *testing.T) {
	im, err := dex.Open(dexapktest.BuildSyntheticDex())
	if err != nil {
		t.Fatalf("Open: unexpected error %v", err)
	}
	defer im.Close()

	hdr := im.Header()
	if hdr.Version() != "035" {
		t.Errorf("Version() = %q, want 035", hdr.Version())
	}
	if im.ClassCount() != 1 {
		t.Fatalf("ClassCount() = %d, want 1", im.ClassCount())
	}

	c, err := im.GetClass(0)
	if err != nil {
		t.Fatalf("GetClass(0): unexpected error %v", err)
	}
	name, err := c.Name()
	if err != nil || name != "foo.Bar" {
		t.Errorf("Name() = (%q, %v), want (foo.Bar, nil)", name, err)
	}
	super, err := c.Superclass()
	if err != nil || super != "java.lang.Object" {
		t.Errorf("Superclass() = (%q, %v), want (java.lang.Object, nil)", super, err)
	}

	fields, err := c.Fields()
	if err != nil {
		t.Fatalf("Fields(): unexpected error %v", err)
	}
	if len(fields) != 1 {
		t.Fatalf("len(Fields()) = %d, want 1", len(fields))
	}
	fname, err := fields[0].Name()
	if err != nil || fname != "count" {
		t.Errorf("field Name() = (%q, %v), want (count, nil)", fname, err)
	}
	if !fields[0].Static {
		t.Errorf("field Static = false, want true")
	}

	methods, err := c.Methods()
	if err != nil {
		t.Fatalf("Methods(): unexpected error %v", err)
	}
	if len(methods) != 1 {
		t.Fatalf("len(Methods()) = %d, want 1", len(methods))
	}
	mname, err := methods[0].Name()
	if err != nil || mname != "<init>" {
		t.Errorf("method Name() = (%q, %v), want (<init>, nil)", mname, err)
	}

	ci, err := methods[0].Code()
	if err != nil {
		t.Fatalf("Code(): unexpected error %v", err)
	}
	if ci.InsnsSize != 2 {
		t.Errorf("InsnsSize = %d, want 2", ci.InsnsSize)
	}

	inst, next, err := im.DecodeOpcode(int64(ci.InsnsOffset))
	if err != nil {
		t.Fatalf("DecodeOpcode: unexpected error %v", err)
	}
	if inst.Mnemonic != "nop" {
		t.Errorf("first instruction = %q, want nop", inst.Mnemonic)
	}
	inst2, _, err := im.DecodeOpcode(next)
	if err != nil {
		t.Fatalf("DecodeOpcode (2nd): unexpected error %v", err)
	}
	if inst2.Mnemonic != "return-void" {
		t.Errorf("second instruction = %q, want return-void", inst2.Mnemonic)
	}
}

func TestGetClassOutOfRange(t *testing.T) {
	im, err := dex.Open(dexapktest.BuildSyntheticDex())
	if err != nil {
		t.Fatalf("Open: unexpected error %v", err)
	}
	defer im.Close()

	if _, err := im.GetClass(im.ClassCount()); err == nil {
		t.Errorf("expected OutOfRange error for id == count")
	}
}
