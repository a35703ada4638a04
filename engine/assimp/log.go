package assimp

/*
#include <stdlib.h>
#include <stdint.h>
#include <assimp/cimport.h>
#include "logstream.h"
*/
import "C"

import (
	"fmt"
	"io"
	"strings"
	"sync"
	"sync/atomic"
	"unsafe"

	"github.com/spaghettifunk/anima/engine/core"
)

type logStreamKind int

const (
	streamStdout logStreamKind = iota + 1
	streamStderr
	streamDebugger
	streamFile
	streamWriter
)

// LogStream is a destination for the messages of the native library.
// Streams are process-wide: attaching one affects every Importer.
type LogStream struct {
	kind logStreamKind
	path string
	w    io.Writer
	id   uint64
}

var writerStreamID atomic.Uint64

func Stdout() LogStream {
	return LogStream{kind: streamStdout}
}

func Stderr() LogStream {
	return LogStream{kind: streamStderr}
}

// Debugger streams to the attached debugger. Only MSVC builds of the native
// library support it; elsewhere it is silently dropped.
func Debugger() LogStream {
	return LogStream{kind: streamDebugger}
}

// File appends to the file at path. The native library opens the file when
// the stream is attached.
func File(path string) LogStream {
	return LogStream{kind: streamFile, path: path}
}

// Writer forwards each native log line to w. Every call returns a distinct
// stream, even for the same writer; keep the value to detach it later.
// Writes happen on the goroutine running the import.
func Writer(w io.Writer) LogStream {
	return LogStream{kind: streamWriter, w: w, id: writerStreamID.Add(1)}
}

// LoggerStream routes native log lines into the package logger of core,
// keeping the native severity.
func LoggerStream() LogStream {
	return Writer(loggerWriter{})
}

func (s LogStream) String() string {
	switch s.kind {
	case streamStdout:
		return "stdout"
	case streamStderr:
		return "stderr"
	case streamDebugger:
		return "debugger"
	case streamFile:
		return "file:" + s.path
	case streamWriter:
		return fmt.Sprintf("writer#%d", s.id)
	}
	return "invalid"
}

type attachedStream struct {
	native C.struct_aiLogStream
	handle uintptr
}

var (
	logMutex sync.Mutex
	attached = map[string]*attachedStream{}
)

// AttachLogStream starts sending native log output to s. Attaching a stream
// that is already attached does nothing. Configure streams at startup: the
// native logger is shared by the whole process.
func AttachLogStream(s LogStream) error {
	logMutex.Lock()
	defer logMutex.Unlock()

	key := s.String()
	if _, ok := attached[key]; ok {
		return nil
	}

	a := &attachedStream{}
	switch s.kind {
	case streamStdout:
		a.native = C.aiGetPredefinedLogStream(C.aiDefaultLogStream_STDOUT, nil)
	case streamStderr:
		a.native = C.aiGetPredefinedLogStream(C.aiDefaultLogStream_STDERR, nil)
	case streamDebugger:
		a.native = C.aiGetPredefinedLogStream(C.aiDefaultLogStream_DEBUGGER, nil)
	case streamFile:
		if s.path == "" {
			return fmt.Errorf("file stream without a path: %w", core.ErrUnknownLogStream)
		}
		cPath := C.CString(s.path)
		defer C.free(unsafe.Pointer(cPath))
		a.native = C.aiGetPredefinedLogStream(C.aiDefaultLogStream_FILE, cPath)
	case streamWriter:
		if s.w == nil {
			return fmt.Errorf("writer stream without a writer: %w", core.ErrUnknownLogStream)
		}
		a.handle = core.HandleAcquire(s.w)
		a.native = C.makeWriterLogStream(C.uintptr_t(a.handle))
	default:
		return fmt.Errorf("%s: %w", key, core.ErrUnknownLogStream)
	}

	if a.native.callback == nil {
		if a.handle != 0 {
			core.HandleRelease(a.handle)
		}
		return fmt.Errorf("native library refused stream %s: %w", key, core.ErrUnknownLogStream)
	}

	C.aiAttachLogStream(&a.native)
	attached[key] = a
	core.LogDebug("attached native log stream %s", key)
	return nil
}

// DetachLogStream stops sending native log output to s.
func DetachLogStream(s LogStream) error {
	logMutex.Lock()
	defer logMutex.Unlock()

	key := s.String()
	a, ok := attached[key]
	if !ok {
		return fmt.Errorf("%s is not attached: %w", key, core.ErrUnknownLogStream)
	}
	delete(attached, key)

	ret := C.aiDetachLogStream(&a.native)
	if a.handle != 0 {
		core.HandleRelease(a.handle)
	}
	if ret != C.aiReturn_SUCCESS {
		return fmt.Errorf("native library could not detach %s: %w", key, core.ErrUnknownLogStream)
	}
	core.LogDebug("detached native log stream %s", key)
	return nil
}

// DetachAllLogStreams detaches every stream and shuts the native logger
// down.
func DetachAllLogStreams() {
	logMutex.Lock()
	defer logMutex.Unlock()

	C.aiDetachAllLogStreams()
	for key, a := range attached {
		if a.handle != 0 {
			core.HandleRelease(a.handle)
		}
		delete(attached, key)
	}
}

// AttachedLogStreams lists the attached streams by name.
func AttachedLogStreams() []string {
	logMutex.Lock()
	defer logMutex.Unlock()

	out := make([]string, 0, len(attached))
	for key := range attached {
		out = append(out, key)
	}
	return out
}

// EnableVerboseLogging toggles debug messages of the native library on all
// streams.
func EnableVerboseLogging(enable bool) {
	v := C.aiBool(0)
	if enable {
		v = 1
	}
	C.aiEnableVerboseLogging(v)
}

//export goLogStreamCallback
func goLogStreamCallback(message *C.char, user *C.char) {
	owner, err := core.HandleLookup(uintptr(unsafe.Pointer(user)))
	if err != nil {
		return
	}
	w, ok := owner.(io.Writer)
	if !ok {
		return
	}
	io.WriteString(w, C.GoString(message))
}

// loggerWriter parses lines such as "Warn,  T0: message" and logs them at
// the matching level.
type loggerWriter struct{}

func (loggerWriter) Write(p []byte) (int, error) {
	for _, line := range strings.Split(strings.TrimRight(string(p), "\r\n"), "\n") {
		if line == "" {
			continue
		}
		level, msg := parseNativeLine(line)
		core.LogAt(level, "assimp: "+msg)
	}
	return len(p), nil
}

func parseNativeLine(line string) (core.LogLevel, string) {
	level := core.LogLevelInfo
	severity, rest, found := strings.Cut(line, ",")
	if !found {
		return level, strings.TrimSpace(line)
	}
	switch strings.TrimSpace(severity) {
	case "Debug", "Verbose":
		level = core.LogLevelDebug
	case "Info":
		level = core.LogLevelInfo
	case "Warn":
		level = core.LogLevelWarn
	case "Error":
		level = core.LogLevelError
	default:
		return level, strings.TrimSpace(line)
	}
	rest = strings.TrimSpace(rest)
	// Drop the thread tag.
	if thread, msg, ok := strings.Cut(rest, ": "); ok && isThreadTag(thread) {
		rest = msg
	}
	return level, rest
}

func isThreadTag(s string) bool {
	if len(s) < 2 || s[0] != 'T' {
		return false
	}
	for _, r := range s[1:] {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
