//
// Package render defines the contract used by front-ends to turn decoded
// DEX entities into text: a stable name, a filename extension, and two
// operations, render_class and render_method. The core (package dex)
// provides no renderer of its own; it only needs callers to be able to
// walk its decoded entities, so this interface lives outside dex and is
// satisfied by whatever front-end wants one.
//
package render

import (
	"io"

	"github.com/mariokmk/dexlib/dex"
)

// DisplayOptions controls how much detail a renderer includes.
type DisplayOptions struct {
	// ShowFields includes a class's fields in its rendering.
	ShowFields bool
	// ShowMethods includes a class's methods in its rendering.
	ShowMethods bool
	// EmitRawBytes includes the raw instruction bytes alongside mnemonics.
	EmitRawBytes bool
}

// Renderer turns decoded classes and methods into text written to an
// io.Writer. A renderer never mutates the dex.Image it's given.
type Renderer interface {
	// Name is the renderer's stable, registry-lookup name.
	Name() string
	// Extension is the filename extension this renderer's output suggests,
	// without a leading dot (e.g. "txt").
	Extension() string
	// RenderClass writes a class's declaration and (per opts) its fields
	// and methods to out.
	RenderClass(im *dex.Image, class dex.Class, opts DisplayOptions, out io.Writer) error
	// RenderMethod writes a single method's disassembly to out, indented
	// by indent spaces, optionally with raw instruction bytes alongside
	// each mnemonic.
	RenderMethod(im *dex.Image, class dex.Class, method dex.ClassMethod, out io.Writer, indent int, emitRawBytes bool) error
}

// Registry is a name to constructor map, replacing runtime reflection-
// based renderer discovery: callers Register a renderer's constructor at
// init() time in their own package, and look it up by name with New.
type Registry struct {
	ctors map[string]func() Renderer
}

// NewRegistry returns an empty Registry ready for Register calls.
func NewRegistry() *Registry {
	return &Registry{ctors: make(map[string]func() Renderer)}
}

// Register adds a renderer constructor under name, overwriting any
// existing registration for that name.
func (r *Registry) Register(name string, ctor func() Renderer) {
	r.ctors[name] = ctor
}

// New constructs a new renderer instance by name.
func (r *Registry) New(name string) (Renderer, error) {
	ctor, ok := r.ctors[name]
	if !ok {
		return nil, &UnknownRendererError{Name: name}
	}
	return ctor(), nil
}

// Names returns every registered renderer name, in no particular order.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.ctors))
	for name := range r.ctors {
		names = append(names, name)
	}
	return names
}

// UnknownRendererError is returned by Registry.New for an unregistered name.
type UnknownRendererError struct {
	Name string
}

func (e *UnknownRendererError) Error() string {
	return "render: no renderer registered under name " + e.Name
}

// Default is the process-wide registry front-ends register against,
// mirroring the single shared registry a renderer/discovery layer would
// otherwise build by scanning a package for implementations.
var Default = NewRegistry()
