//
// This implementation of the DexApkVisitor interface dumps out
// information about the APK/DEX contents to stdout, in the same
// top-down visit order as the DexApkVisitor doc comment describes.
//
package apkdump

import (
	"fmt"

	"github.com/mariokmk/dexlib/dex"
)

// DexApkDumper implements dexapkvisit.DexApkVisitor by printing each
// callback to stdout.
type DexApkDumper struct {
	Vlevel int
}

func (d *DexApkDumper) VisitAPK(apk string) error {
	fmt.Printf("APK %s\n", apk)
	return nil
}

func (d *DexApkDumper) VisitDEX(dexname string, signature [20]byte) error {
	fmt.Printf(" DEX %s sha1 %x\n", dexname, signature)
	return nil
}

func (d *DexApkDumper) VisitClass(classname string, flags dex.AccessFlags, nfields, nmethods uint32) error {
	fmt.Printf("  class %s flags: %s fields: %d methods: %d\n", classname, flags, nfields, nmethods)
	return nil
}

func (d *DexApkDumper) VisitField(fieldname string, typeName string, flags dex.AccessFlags) error {
	fmt.Printf("   field '%s' type %s flags: %s\n", fieldname, typeName, flags)
	return nil
}

func (d *DexApkDumper) VisitMethod(methodname string, methodIdx uint64, codeOffset uint64, flags dex.AccessFlags) error {
	fmt.Printf("   method id %d name '%s' code offset %d flags: %s\n",
		methodIdx, methodname, codeOffset, flags)
	return nil
}

func (d *DexApkDumper) Verbose(vlevel int, s string, a ...interface{}) {
	if d.Vlevel >= vlevel {
		fmt.Printf("++ ")
		fmt.Printf(s, a...)
		fmt.Printf("\n")
	}
}
