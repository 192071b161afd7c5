package dexread

import (
	"bytes"
	"strings"
	"testing"

	"github.com/mariokmk/dexlib/dexapktest"
)

func TestSmallDexRead(t *testing.T) {
	visitor := &dexapktest.CaptureDexApkVisitOperations{}
	data := dexapktest.BuildSyntheticDex()
	err := ReadDEX(nil, "synthetic.dex", bytes.NewReader(data), visitor)
	if err != nil {
		t.Fatalf("ReadDEX: unexpected error %v", err)
	}

	actual := strings.Join(visitor.Result, "\n")

	if !strings.Contains(actual, "DEX synthetic.dex") {
		t.Errorf("missing VisitDEX callback in %q", actual)
	}
	if !strings.Contains(actual, "class foo.Bar") {
		t.Errorf("missing VisitClass callback in %q", actual)
	}
	if !strings.Contains(actual, "field 'count'") {
		t.Errorf("missing VisitField callback in %q", actual)
	}
	if !strings.Contains(actual, "method") || !strings.Contains(actual, "<init>") {
		t.Errorf("missing VisitMethod callback in %q", actual)
	}
}

func TestNonexistentDexFileRead(t *testing.T) {
	visitor := &dexapktest.CaptureDexApkVisitOperations{}
	err := ReadDEXFile("quix", visitor)
	if err == nil {
		t.Errorf("expected error opening nonexistent file")
	}
}

func TestBadDexFileRead(t *testing.T) {
	visitor := &dexapktest.CaptureDexApkVisitOperations{}
	err := ReadDEXFile("dexread.go", visitor)
	if err == nil {
		t.Errorf("expected error reading non-DEX file as DEX")
	}
}
