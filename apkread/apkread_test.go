package apkread

import (
	"archive/zip"
	"bytes"
	"os"
	"strings"
	"testing"

	"github.com/mariokmk/dexlib/dexapktest"
)

// buildSyntheticApk packages BuildSyntheticDex's bytes as an entry named
// entryName of an in-memory zip archive, in lieu of a checked-in .apk
// fixture.
func buildSyntheticApk(t *testing.T, entryName string) string {
	t.Helper()
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	w, err := zw.Create(entryName)
	if err != nil {
		t.Fatalf("zip Create: %v", err)
	}
	if _, err := w.Write(dexapktest.BuildSyntheticDex()); err != nil {
		t.Fatalf("zip Write: %v", err)
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("zip Close: %v", err)
	}

	f, err := os.CreateTemp(t.TempDir(), "synthetic-*.apk")
	if err != nil {
		t.Fatalf("CreateTemp: %v", err)
	}
	if _, err := f.Write(buf.Bytes()); err != nil {
		t.Fatalf("write temp apk: %v", err)
	}
	f.Close()
	return f.Name()
}

func TestOpen(t *testing.T) {
	path := buildSyntheticApk(t, "classes.dex")

	im, name, err := Open(path)
	if err != nil {
		t.Fatalf("Open: unexpected error %v", err)
	}
	defer im.Close()
	if name != "classes.dex" {
		t.Errorf("entry name = %q, want classes.dex", name)
	}
	if im.ClassCount() != 1 {
		t.Errorf("ClassCount() = %d, want 1", im.ClassCount())
	}
}

func TestOpenAll(t *testing.T) {
	path := buildSyntheticApk(t, "classes.dex")

	images, names, err := OpenAll(path)
	if err != nil {
		t.Fatalf("OpenAll: unexpected error %v", err)
	}
	if len(images) != 1 || len(names) != 1 {
		t.Fatalf("len(images)=%d len(names)=%d, want 1 and 1", len(images), len(names))
	}
	defer images[0].Close()
	if names[0] != "classes.dex" {
		t.Errorf("names[0] = %q, want classes.dex", names[0])
	}
}

func TestOpenNoDexEntries(t *testing.T) {
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	if _, err := zw.Create("AndroidManifest.xml"); err != nil {
		t.Fatalf("zip Create: %v", err)
	}
	zw.Close()

	f, err := os.CreateTemp(t.TempDir(), "nodex-*.apk")
	if err != nil {
		t.Fatalf("CreateTemp: %v", err)
	}
	f.Write(buf.Bytes())
	f.Close()

	if _, _, err := Open(f.Name()); err == nil {
		t.Errorf("expected error opening APK with no dex entries")
	}
}

func TestReadAPK(t *testing.T) {
	path := buildSyntheticApk(t, "classes.dex")

	visitor := &dexapktest.CaptureDexApkVisitOperations{}
	if err := ReadAPK(path, visitor); err != nil {
		t.Fatalf("ReadAPK: unexpected error %v", err)
	}

	actual := strings.Join(visitor.Result, "\n")
	if !strings.Contains(actual, "APK "+path) {
		t.Errorf("missing VisitAPK callback in %q", actual)
	}
	if !strings.Contains(actual, "class foo.Bar") {
		t.Errorf("missing VisitClass callback in %q", actual)
	}
}
