package assimp

/*
#include <stdlib.h>
#include <assimp/cimport.h>
#include <assimp/version.h>
*/
import "C"

import (
	"fmt"
	"sort"
	"strings"
	"unsafe"
)

// LibraryVersion is the version of the linked native library.
type LibraryVersion struct {
	Major    uint32
	Minor    uint32
	Revision uint32
}

func (v LibraryVersion) String() string {
	return fmt.Sprintf("%d.%d.%d", v.Major, v.Minor, v.Revision)
}

func Version() LibraryVersion {
	return LibraryVersion{
		Major:    uint32(C.aiGetVersionMajor()),
		Minor:    uint32(C.aiGetVersionMinor()),
		Revision: uint32(C.aiGetVersionRevision()),
	}
}

// LegalString returns the copyright notice of the native library.
func LegalString() string {
	return C.GoString(C.aiGetLegalString())
}

// BuildFlags describe how the native library was built.
type BuildFlags uint32

const (
	CompileShared         BuildFlags = 0x1
	CompileSTLPort        BuildFlags = 0x2
	CompileDebug          BuildFlags = 0x4
	CompileNoBoost        BuildFlags = 0x8
	CompileSingleThreaded BuildFlags = 0x10
	CompileDoubleSupport  BuildFlags = 0x20
)

func (f BuildFlags) String() string {
	var parts []string
	for _, n := range []struct {
		flag BuildFlags
		name string
	}{
		{CompileShared, "shared"},
		{CompileSTLPort, "stlport"},
		{CompileDebug, "debug"},
		{CompileNoBoost, "noboost"},
		{CompileSingleThreaded, "singlethreaded"},
		{CompileDoubleSupport, "double"},
	} {
		if f&n.flag != 0 {
			parts = append(parts, n.name)
		}
	}
	if len(parts) == 0 {
		return "static"
	}
	return strings.Join(parts, "|")
}

func CompileFlags() BuildFlags {
	return BuildFlags(C.aiGetCompileFlags())
}

// IsExtensionSupported reports whether a reader exists for ext. The leading
// dot or "*." is optional and case is ignored.
func IsExtensionSupported(ext string) bool {
	ext = strings.TrimPrefix(strings.TrimPrefix(ext, "*"), ".")
	if ext == "" {
		return false
	}
	cExt := C.CString("." + strings.ToLower(ext))
	defer C.free(unsafe.Pointer(cExt))
	return C.aiIsExtensionSupported(cExt) != 0
}

// SupportedExtensions lists every extension the native readers accept,
// lower case without the dot, sorted.
func SupportedExtensions() []string {
	var list C.struct_aiString
	C.aiGetExtensionList(&list)

	var out []string
	for _, e := range strings.Split(goString(&list), ";") {
		e = strings.ToLower(strings.TrimPrefix(strings.TrimSpace(e), "*."))
		if e != "" {
			out = append(out, e)
		}
	}
	sort.Strings(out)
	return out
}
