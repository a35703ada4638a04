package core

import (
	"errors"
)

var (
	ErrImportFailed      = errors.New("import failed")
	ErrImporterClosed    = errors.New("importer already closed")
	ErrNativeAllocation  = errors.New("native library could not allocate the importer handle")
	ErrUnknownFlag       = errors.New("unknown post-processing flag")
	ErrUnknownLogStream  = errors.New("unknown log stream")
	ErrHandleNotFound    = errors.New("handle not found")
	ErrUnsupportedFormat = errors.New("unsupported file format")
)
