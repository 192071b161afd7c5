package render

import (
	"errors"
	"io"
	"testing"

	"github.com/mariokmk/dexlib/dex"
)

type fakeRenderer struct{ name string }

func (f *fakeRenderer) Name() string      { return f.name }
func (f *fakeRenderer) Extension() string { return "txt" }
func (f *fakeRenderer) RenderClass(im *dex.Image, class dex.Class, opts DisplayOptions, out io.Writer) error {
	return nil
}
func (f *fakeRenderer) RenderMethod(im *dex.Image, class dex.Class, method dex.ClassMethod, out io.Writer, indent int, emitRawBytes bool) error {
	return nil
}

func TestRegistryRegisterAndNew(t *testing.T) {
	r := NewRegistry()
	r.Register("fake", func() Renderer { return &fakeRenderer{name: "fake"} })

	got, err := r.New("fake")
	if err != nil {
		t.Fatalf("New: unexpected error %v", err)
	}
	if got.Name() != "fake" {
		t.Errorf("Name() = %q, want fake", got.Name())
	}
}

func TestRegistryNewUnknown(t *testing.T) {
	r := NewRegistry()
	_, err := r.New("nope")
	if err == nil {
		t.Fatalf("expected error for unregistered name")
	}
	var ure *UnknownRendererError
	if !errors.As(err, &ure) {
		t.Errorf("error = %v, want *UnknownRendererError", err)
	}
}

func TestRegistryNames(t *testing.T) {
	r := NewRegistry()
	r.Register("a", func() Renderer { return &fakeRenderer{name: "a"} })
	r.Register("b", func() Renderer { return &fakeRenderer{name: "b"} })

	names := r.Names()
	if len(names) != 2 {
		t.Fatalf("len(Names()) = %d, want 2", len(names))
	}
}
