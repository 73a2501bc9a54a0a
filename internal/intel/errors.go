package intel

import (
	"fmt"
	"strings"
)

// SchemaError reports a response payload that does not conform to its
// declared response spec. Fatal for the primary call; degrading for the
// follow-up call.
type SchemaError struct {
	Spec   string   // response spec name
	Fields []string // missing or mismatched field names
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("invalid response schema %s: bad fields [%s]",
		e.Spec, strings.Join(e.Fields, ", "))
}

// FileWriteError reports a failed output write, with the path that failed.
type FileWriteError struct {
	Path string
	Err  error
}

func (e *FileWriteError) Error() string {
	return fmt.Sprintf("failed to write %s: %v", e.Path, e.Err)
}

func (e *FileWriteError) Unwrap() error { return e.Err }
