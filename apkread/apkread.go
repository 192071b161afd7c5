//
// Rudimentary package for examining Android APK files. An APK file
// is basically a ZIP file that contains an Android manifest and a series
// of DEX files, strings, resources, bitmaps, and assorted other items.
// This specific reader looks only at the DEX files, not the other
// bits and pieces (of which there are many).
//
package apkread

import (
	"archive/zip"
	"fmt"
	"io"
	"regexp"

	"github.com/mariokmk/dexlib/dex"
	"github.com/mariokmk/dexlib/dexapkvisit"
	"github.com/mariokmk/dexlib/dexread"
)

var isDex = regexp.MustCompile(`^\S+\.dex$`)

// Open opens the first .dex entry of the zip-format APK at path and
// returns a dex.Image decoding it, plus that entry's name within the
// archive. Multi-dex APKs (classes2.dex, classes3.dex, ...) are not
// linked together by this core; use OpenAll to get every dex entry as an
// independent image.
func Open(path string) (*dex.Image, string, error) {
	rc, err := zip.OpenReader(path)
	if err != nil {
		return nil, "", fmt.Errorf("apkread: open %s: %w", path, err)
	}
	defer rc.Close()

	for _, f := range rc.File {
		if !isDex.MatchString(f.Name) {
			continue
		}
		im, err := readEntry(f)
		if err != nil {
			return nil, "", fmt.Errorf("apkread: %s entry %s: %w", path, f.Name, err)
		}
		return im, f.Name, nil
	}
	return nil, "", fmt.Errorf("apkread: %s contains no dex entries", path)
}

// OpenAll opens every .dex entry of the zip-format APK at path, each as
// an independent dex.Image decoded on its own; no cross-file (multidex)
// linking is performed.
func OpenAll(path string) ([]*dex.Image, []string, error) {
	rc, err := zip.OpenReader(path)
	if err != nil {
		return nil, nil, fmt.Errorf("apkread: open %s: %w", path, err)
	}
	defer rc.Close()

	var images []*dex.Image
	var names []string
	for _, f := range rc.File {
		if !isDex.MatchString(f.Name) {
			continue
		}
		im, err := readEntry(f)
		if err != nil {
			return nil, nil, fmt.Errorf("apkread: %s entry %s: %w", path, f.Name, err)
		}
		images = append(images, im)
		names = append(names, f.Name)
	}
	if len(images) == 0 {
		return nil, nil, fmt.Errorf("apkread: %s contains no dex entries", path)
	}
	return images, names, nil
}

func readEntry(f *zip.File) (*dex.Image, error) {
	rd, err := f.Open()
	if err != nil {
		return nil, err
	}
	defer rd.Close()
	data, err := io.ReadAll(rd)
	if err != nil {
		return nil, err
	}
	return dex.Open(data)
}

// ReadAPK opens the specified APK file 'apk' and walks the contents of
// every DEX file it contains, making callbacks at various points through
// a user-supplied visitor object 'visitor'. See DexApkVisitor for more
// info on which DEX/APK parts are visited.
func ReadAPK(apk string, visitor dexapkvisit.DexApkVisitor) error {
	rc, err := zip.OpenReader(apk)
	if err != nil {
		return fmt.Errorf("unable to open APK %s: %w", apk, err)
	}
	defer rc.Close()

	if err := visitor.VisitAPK(apk); err != nil {
		return err
	}
	visitor.Verbose(1, "APK %s contains %d entries", apk, len(rc.File))

	for i, f := range rc.File {
		if !isDex.MatchString(f.Name) {
			continue
		}
		visitor.Verbose(1, "dex file %s at entry %d", f.Name, i)
		reader, err := f.Open()
		if err != nil {
			return fmt.Errorf("opening apk %s dex %s: %w", apk, f.Name, err)
		}
		err = dexread.ReadDEX(&apk, f.Name, reader, visitor)
		reader.Close()
		if err != nil {
			return err
		}
	}
	return nil
}
