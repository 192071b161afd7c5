//
// Interface for visiting interesting elements within an Android DEX
// file: classes, fields, and methods. Visit order is logically
// top-down, e.g.
//
//        VisitAPK("mumble.apk")
//          VisitDEX("classes1.dex")
//            VisitClass("foo", flags, 1, 1)
//              VisitField("foofield1", "int", flags)
//              VisitMethod("foomethod1", 0, 400, flags)
//            VisitClass("bar", flags, 0, 1)
//              VisitMethod("barmethod1", 1, 500, flags)
//          VisitDEX("classes2.dex")
//           ...
//
// Unlike the original narrower visitor (which only ever saw methods and
// treated any decoding failure as fatal), every callback here can fail
// and the walk that invokes it aborts with that error, so a caller can
// report partial results instead of crashing on the first malformed
// class in a large APK.
//
package dexapkvisit

import "github.com/mariokmk/dexlib/dex"

type DexApkVisitor interface {
	VisitAPK(apk string) error
	VisitDEX(dexname string, signature [20]byte) error
	VisitClass(classname string, flags dex.AccessFlags, nfields, nmethods uint32) error
	VisitField(fieldname string, typeName string, flags dex.AccessFlags) error
	VisitMethod(methodname string, methodIdx uint64, codeOffset uint64, flags dex.AccessFlags) error
	Verbose(vlevel int, s string, a ...interface{})
}
