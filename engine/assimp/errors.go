package assimp

import (
	"fmt"

	"github.com/spaghettifunk/anima/engine/core"
)

// ImportError is returned when the native importer rejects a file or buffer.
// Message is the native error string recorded for that import.
type ImportError struct {
	Path    string
	Message string
}

func (e *ImportError) Error() string {
	return fmt.Sprintf("import %q: %s", e.Path, e.Message)
}

func (e *ImportError) Unwrap() error {
	return core.ErrImportFailed
}
