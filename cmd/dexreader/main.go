//
// dexreader is a rudimentary program for examining Android DEX and APK
// files. An APK file is basically a ZIP file that contains an Android
// manifest and a series of DEX files, strings, resources, bitmaps, and
// assorted other items; this program looks only at the DEX files, not
// the other bits and pieces.
//
package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/apex/log"
	logcli "github.com/apex/log/handlers/cli"

	"github.com/mariokmk/dexlib/apkdump"
	"github.com/mariokmk/dexlib/apkread"
	"github.com/mariokmk/dexlib/dex"
	"github.com/mariokmk/dexlib/dexread"
	"github.com/mariokmk/dexlib/render"
)

var (
	verbflag   = flag.Int("v", 0, "verbose trace output level")
	dumpflag   = flag.Bool("dump", false, "dump DEX/APK info to stdout")
	renderflag = flag.String("render", "", "render classes using the named renderer (e.g. \"plain\")")
	rawflag    = flag.Bool("raw", false, "include each instruction's byte length when rendering (the bytes themselves are not printed)")
)

func usage(msg string) {
	if len(msg) > 0 {
		fmt.Fprintf(os.Stderr, "error: %s\n", msg)
	}
	fmt.Fprintf(os.Stderr, "usage: dexreader [flags] <DEX or APK file>\n")
	flag.PrintDefaults()
	os.Exit(2)
}

func main() {
	log.SetHandler(logcli.Default)
	flag.Parse()
	if *verbflag > 0 {
		log.SetLevel(log.DebugLevel)
	}

	if flag.NArg() != 1 {
		usage("please supply an input DEX or APK file")
	}
	if !*dumpflag && *renderflag == "" {
		usage("select one of: -dump, -render")
	}
	path := flag.Arg(0)
	log.Debugf("input is %s", path)

	if *dumpflag {
		if err := runDump(path); err != nil {
			log.Fatalf("%v", err)
		}
	}
	if *renderflag != "" {
		if err := runRender(path, *renderflag); err != nil {
			log.Fatalf("%v", err)
		}
	}
}

func isAPK(path string) bool {
	return strings.HasSuffix(strings.ToLower(path), ".apk")
}

func runDump(path string) error {
	dumper := &apkdump.DexApkDumper{Vlevel: *verbflag}
	if isAPK(path) {
		return apkread.ReadAPK(path, dumper)
	}
	return dexread.ReadDEXFile(path, dumper)
}

func runRender(path, name string) error {
	renderer, err := render.Default.New(name)
	if err != nil {
		return fmt.Errorf("renderers available: %v: %w", render.Default.Names(), err)
	}

	var im *dex.Image
	if isAPK(path) {
		var err error
		im, _, err = apkread.Open(path)
		if err != nil {
			return err
		}
	} else {
		data, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		im, err = dex.Open(data)
		if err != nil {
			return err
		}
	}
	defer im.Close()

	opts := render.DisplayOptions{ShowFields: true, ShowMethods: true, EmitRawBytes: *rawflag}
	return im.IterClasses(func(id uint32, c dex.Class) error {
		return renderer.RenderClass(im, c, opts, os.Stdout)
	})
}
