//
// Rudimentary package for examining DEX files. See:
//
//   https://source.android.com/devices/tech/dalvik/dex-format.html
//
// for a specification of the DEX file format.
//
// This package walks the classes, fields and methods in a DEX file; you
// pass it a visitor object and it invokes callbacks on the visitor for
// each DEX class, field and method of interest. All parsing is delegated
// to package dex; this package only drives the walk and adapts errors.
//
package dexread

import (
	"fmt"
	"io"
	"os"

	"github.com/mariokmk/dexlib/dex"
	"github.com/mariokmk/dexlib/dexapkvisit"
)

// ReadDEXFile opens and examines the DEX file at dexFilePath, invoking
// visitor for its classes, fields and methods.
func ReadDEXFile(dexFilePath string, visitor dexapkvisit.DexApkVisitor) error {
	dfile, err := os.Open(dexFilePath)
	if err != nil {
		return fmt.Errorf("reading dex %s: %w", dexFilePath, err)
	}
	defer dfile.Close()
	return ReadDEX(nil, dexFilePath, dfile, visitor)
}

// ReadDEX examines the contents of the DEX file pointed to by reader. If
// the DEX file is embedded within an APK, apk names the containing APK
// (for error reporting only); pass nil for a standalone DEX file.
func ReadDEX(apk *string, dexName string, reader io.Reader, visitor dexapkvisit.DexApkVisitor) error {
	wrap := func(err error) error {
		if err == nil {
			return nil
		}
		if apk != nil {
			return fmt.Errorf("reading apk %s dex %s: %w", *apk, dexName, err)
		}
		return fmt.Errorf("reading dex %s: %w", dexName, err)
	}

	data, err := io.ReadAll(reader)
	if err != nil {
		return wrap(err)
	}

	im, err := dex.Open(data)
	if err != nil {
		return wrap(err)
	}
	defer im.Close()

	if err := visitor.VisitDEX(dexName, im.Header().Signature); err != nil {
		return wrap(err)
	}
	visitor.Verbose(1, "dex %s: %d classes, %d strings", dexName, im.ClassCount(), im.StringCount())

	err = im.IterClasses(func(id uint32, c dex.Class) error {
		return examineClass(im, c, visitor)
	})
	return wrap(err)
}

func examineClass(im *dex.Image, c dex.Class, visitor dexapkvisit.DexApkVisitor) error {
	name, err := c.Name()
	if err != nil {
		return err
	}

	fields, err := c.Fields()
	if err != nil {
		return err
	}
	methods, err := c.Methods()
	if err != nil {
		return err
	}

	if err := visitor.VisitClass(name, c.AccessFlags, uint32(len(fields)), uint32(len(methods))); err != nil {
		return err
	}
	visitor.Verbose(1, "class %s: %d fields, %d methods", name, len(fields), len(methods))

	for _, f := range fields {
		fname, err := f.Name()
		if err != nil {
			return err
		}
		ftype, err := f.TypeName()
		if err != nil {
			return err
		}
		if err := visitor.VisitField(fname, ftype, f.AccessFlags); err != nil {
			return err
		}
	}

	for _, m := range methods {
		mname, err := m.Name()
		if err != nil {
			return err
		}
		visitor.Verbose(1, "method %s idx %d off %d", mname, m.ID, m.CodeOffset())
		if err := visitor.VisitMethod(mname, uint64(m.ID), uint64(m.CodeOffset()), m.AccessFlags); err != nil {
			return err
		}
	}

	return nil
}
