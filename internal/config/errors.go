package config

import (
	"errors"
	"fmt"

	"github.com/dshills/hardmode/internal/config/registry"
)

var (
	ErrNodeNotFound = errors.New("node not found")
	ErrTypeMismatch = errors.New("type mismatch")
	ErrUnsupported  = errors.New("unsupported node type")
	ErrClosed       = errors.New("config closed")
)

// DocOp names the document operation that failed.
type DocOp string

const (
	OpLoad    DocOp = "load"
	OpRender  DocOp = "render"
	OpPersist DocOp = "persist"
)

// DocumentError reports one document the cycle could not read, render or
// write. It is recorded in the report and never aborts the cycle.
type DocumentError struct {
	Op   DocOp
	Path string
	Err  error
}

func (e *DocumentError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

func (e *DocumentError) Unwrap() error {
	return e.Err
}

// Skipped reports whether err left a document out of the cycle entirely.
func Skipped(err error) bool {
	var derr *DocumentError
	return errors.As(err, &derr) && derr.Op == OpLoad
}

// TypeError is returned by the typed getters when the effective value of a
// node has a different Go type.
type TypeError struct {
	Node string
	Want string
	Got  any
}

func (e *TypeError) Error() string {
	return fmt.Sprintf("%s holds %s, not %s", e.Node, goType(e.Got), e.Want)
}

// Is matches ErrTypeMismatch.
func (e *TypeError) Is(target error) bool {
	return target == ErrTypeMismatch
}

func goType(v any) string {
	switch v.(type) {
	case nil:
		return "nothing"
	case string:
		return "string"
	case int:
		return "int"
	case float64:
		return "float64"
	case bool:
		return "bool"
	case []string:
		return "[]string"
	default:
		return fmt.Sprintf("%T", v)
	}
}

// nodeError wraps ErrNodeNotFound with the path.
func nodeError(path string) error {
	return fmt.Errorf("%w: %s", ErrNodeNotFound, path)
}

// unsupported wraps ErrUnsupported with the node and its type.
func unsupported(n *registry.Node) error {
	return fmt.Errorf("%w: %s is %s", ErrUnsupported, n.Path, n.Type)
}
