package assimp

/*
#include <stdlib.h>
#include <assimp/cimport.h>
#include <assimp/scene.h>
*/
import "C"

import (
	"fmt"
	"io"
	"runtime"
	"sync"
	"unsafe"

	"github.com/spaghettifunk/anima/engine/core"
	"github.com/spaghettifunk/anima/engine/math"
	"github.com/spaghettifunk/anima/engine/scene"
)

// importMutex serialises every call into the native importer. The native
// error string is shared by the whole process, so two concurrent imports
// could otherwise report each other's failures.
var importMutex sync.Mutex

// Importer owns a native property store holding the import settings. Base
// flags set with WithFlags are added to the flags of every import.
//
// An Importer may be shared between goroutines. Close releases the native
// handle; a finalizer does the same for importers that are never closed.
type Importer struct {
	mu    sync.Mutex
	store *C.struct_aiPropertyStore
	flags Process
}

type ImporterOption func(imp *Importer) error

// WithFlags adds flags to every import made by the importer.
func WithFlags(flags Process) ImporterOption {
	return func(imp *Importer) error {
		imp.flags |= flags
		return nil
	}
}

func WithPropertyInt(p Property, v int) ImporterOption {
	return func(imp *Importer) error {
		return imp.SetPropertyInt(p, v)
	}
}

func WithPropertyFloat(p Property, v float32) ImporterOption {
	return func(imp *Importer) error {
		return imp.SetPropertyFloat(p, v)
	}
}

func WithPropertyString(p Property, v string) ImporterOption {
	return func(imp *Importer) error {
		return imp.SetPropertyString(p, v)
	}
}

func WithPropertyBool(p Property, v bool) ImporterOption {
	return func(imp *Importer) error {
		return imp.SetPropertyBool(p, v)
	}
}

func WithPropertyMatrix(p Property, v math.Mat4) ImporterOption {
	return func(imp *Importer) error {
		return imp.SetPropertyMatrix(p, v)
	}
}

// NewImporter allocates the native handle and applies opts in order.
func NewImporter(opts ...ImporterOption) (*Importer, error) {
	store := C.aiCreatePropertyStore()
	if store == nil {
		return nil, core.ErrNativeAllocation
	}
	imp := &Importer{store: store}
	runtime.SetFinalizer(imp, (*Importer).Close)

	for _, opt := range opts {
		if err := opt(imp); err != nil {
			imp.Close()
			return nil, err
		}
	}
	return imp, nil
}

// Flags returns the base flags of the importer.
func (imp *Importer) Flags() Process {
	imp.mu.Lock()
	defer imp.mu.Unlock()
	return imp.flags
}

// Close releases the native handle. Calling it again is a no-op.
func (imp *Importer) Close() error {
	imp.mu.Lock()
	defer imp.mu.Unlock()

	if imp.store == nil {
		return nil
	}
	C.aiReleasePropertyStore(imp.store)
	imp.store = nil
	runtime.SetFinalizer(imp, nil)
	return nil
}

// Import reads the file at path. path and flags are passed to the native
// importer unchanged.
func (imp *Importer) Import(path string, flags Process) (*scene.Scene, error) {
	imp.mu.Lock()
	defer imp.mu.Unlock()

	if imp.store == nil {
		return nil, core.ErrImporterClosed
	}

	cPath := C.CString(path)
	defer C.free(unsafe.Pointer(cPath))

	all := imp.flags | flags
	return imp.run(path, all, func() *C.struct_aiScene {
		return C.aiImportFileExWithProperties(cPath, C.uint(all), nil, imp.store)
	})
}

// ImportMemory reads a model from data. hint is the file extension of the
// format without the dot ("obj", "glb") and helps the native library pick a
// reader when the content is ambiguous.
func (imp *Importer) ImportMemory(data []byte, hint string, flags Process) (*scene.Scene, error) {
	imp.mu.Lock()
	defer imp.mu.Unlock()

	if imp.store == nil {
		return nil, core.ErrImporterClosed
	}

	source := "memory"
	if hint != "" {
		source += "." + hint
	}
	if len(data) == 0 {
		return nil, &ImportError{Path: source, Message: "empty buffer"}
	}

	cHint := C.CString(hint)
	defer C.free(unsafe.Pointer(cHint))

	all := imp.flags | flags
	return imp.run(source, all, func() *C.struct_aiScene {
		return C.aiImportFileFromMemoryWithProperties(
			(*C.char)(unsafe.Pointer(&data[0])),
			C.uint(len(data)),
			C.uint(all),
			cHint,
			imp.store,
		)
	})
}

// ImportReader drains r and imports the bytes with ImportMemory.
func (imp *Importer) ImportReader(r io.Reader, hint string, flags Process) (*scene.Scene, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("could not read model data: %w", err)
	}
	return imp.ImportMemory(data, hint, flags)
}

// run performs one native import, copies the result and releases it.
func (imp *Importer) run(source string, flags Process, call func() *C.struct_aiScene) (*scene.Scene, error) {
	core.LogDebug("importing %s with %s", source, flags)

	clock := core.NewClock()
	clock.Start()

	importMutex.Lock()
	cs := call()
	if cs == nil {
		msg := C.GoString(C.aiGetErrorString())
		importMutex.Unlock()

		clock.Stop()
		core.MetricsRecordImport(clock.Elapsed(), true)
		core.LogError("failed to import %s: %s", source, msg)
		return nil, &ImportError{Path: source, Message: msg}
	}
	importMutex.Unlock()
	defer C.aiReleaseImport(cs)

	sc := convertScene(cs, source)

	clock.Stop()
	core.MetricsRecordImport(clock.Elapsed(), false)
	core.LogInfo("imported %s in %s: %d meshes, %d vertices, %d faces",
		source, clock.Elapsed(), sc.NumMeshes(), sc.NumVertices(), sc.NumFaces())
	return sc, nil
}

func (imp *Importer) withStore(p Property, fn func(store *C.struct_aiPropertyStore, name *C.char)) error {
	imp.mu.Lock()
	defer imp.mu.Unlock()

	if imp.store == nil {
		return core.ErrImporterClosed
	}
	cName := C.CString(string(p))
	defer C.free(unsafe.Pointer(cName))
	fn(imp.store, cName)
	return nil
}

func (imp *Importer) SetPropertyInt(p Property, v int) error {
	return imp.withStore(p, func(store *C.struct_aiPropertyStore, name *C.char) {
		C.aiSetImportPropertyInteger(store, name, C.int(v))
	})
}

func (imp *Importer) SetPropertyBool(p Property, v bool) error {
	i := 0
	if v {
		i = 1
	}
	return imp.SetPropertyInt(p, i)
}

func (imp *Importer) SetPropertyFloat(p Property, v float32) error {
	return imp.withStore(p, func(store *C.struct_aiPropertyStore, name *C.char) {
		C.aiSetImportPropertyFloat(store, name, C.ai_real(v))
	})
}

func (imp *Importer) SetPropertyString(p Property, v string) error {
	var s C.struct_aiString
	if len(v) >= len(s.data) {
		return fmt.Errorf("property %s: value of %d bytes exceeds the native limit of %d", p, len(v), len(s.data)-1)
	}
	setString(&s, v)
	return imp.withStore(p, func(store *C.struct_aiPropertyStore, name *C.char) {
		C.aiSetImportPropertyString(store, name, &s)
	})
}

func (imp *Importer) SetPropertyMatrix(p Property, v math.Mat4) error {
	r := v.RowMajor()
	m := C.struct_aiMatrix4x4{
		a1: C.ai_real(r[0]), a2: C.ai_real(r[1]), a3: C.ai_real(r[2]), a4: C.ai_real(r[3]),
		b1: C.ai_real(r[4]), b2: C.ai_real(r[5]), b3: C.ai_real(r[6]), b4: C.ai_real(r[7]),
		c1: C.ai_real(r[8]), c2: C.ai_real(r[9]), c3: C.ai_real(r[10]), c4: C.ai_real(r[11]),
		d1: C.ai_real(r[12]), d2: C.ai_real(r[13]), d3: C.ai_real(r[14]), d4: C.ai_real(r[15]),
	}
	return imp.withStore(p, func(store *C.struct_aiPropertyStore, name *C.char) {
		C.aiSetImportPropertyMatrix(store, name, &m)
	})
}
