// Package assimp binds the Open Asset Import Library through cgo.
//
// The package never interprets model data itself: every import is forwarded
// to the native library and the resulting aiScene is deep-copied into the
// garbage collected types of package scene before the native memory is
// released. Link flags come from pkg-config; build with the
// assimp_nopkgconfig tag to link against -lassimp from the default search
// path instead.
package assimp

/*
#cgo !assimp_nopkgconfig pkg-config: assimp
#cgo assimp_nopkgconfig LDFLAGS: -lassimp
#include <stdlib.h>
#include <assimp/cimport.h>
#include <assimp/scene.h>
*/
import "C"

import "unsafe"

// cSlice views a native array as a Go slice without copying. The result must
// not outlive the native allocation.
func cSlice[T any](ptr *T, n C.uint) []T {
	if ptr == nil || n == 0 {
		return nil
	}
	return unsafe.Slice(ptr, int(n))
}

func goString(s *C.struct_aiString) string {
	if s == nil || s.length == 0 {
		return ""
	}
	return C.GoStringN(&s.data[0], C.int(s.length))
}

// setString fills dst with s, truncated to the fixed native capacity.
func setString(dst *C.struct_aiString, s string) {
	n := len(s)
	if n > len(dst.data)-1 {
		n = len(dst.data) - 1
	}
	for i := 0; i < n; i++ {
		dst.data[i] = C.char(s[i])
	}
	dst.data[n] = 0
	dst.length = C.ai_uint32(n)
}
