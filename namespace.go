package counters

import (
	"errors"
	"fmt"
	"os"
	"unicode/utf8"
)

// NamespaceEnv is the environment variable EnvNamespace reads by default.
const NamespaceEnv = "COUNTERS_NAMESPACE"

var (
	// ErrNamespaceUnset indicates the namespace variable is not present.
	ErrNamespaceUnset = errors.New("counters: namespace not set")
	// ErrNamespaceMalformed indicates the namespace variable is present but
	// is not valid UTF-8 text.
	ErrNamespaceMalformed = errors.New("counters: namespace is not valid text")
)

// NamespaceError records a failed namespace lookup.
type NamespaceError struct {
	Var string
	Err error
}

func (e *NamespaceError) Error() string {
	return fmt.Sprintf("%v (%s)", e.Err, e.Var)
}

func (e *NamespaceError) Unwrap() error { return e.Err }

// Namespacer resolves the namespace of the calling component.
type Namespacer interface {
	Namespace() (string, error)
}

// NamespaceFunc adapts a function to Namespacer.
type NamespaceFunc func() (string, error)

func (f NamespaceFunc) Namespace() (string, error) { return f() }

// StaticNamespace always resolves to itself.
type StaticNamespace string

func (s StaticNamespace) Namespace() (string, error) { return string(s), nil }

// EnvNamespace reads the namespace from an environment variable.
// The zero value reads NamespaceEnv with os.LookupEnv.
type EnvNamespace struct {
	// Var is the variable name; NamespaceEnv if empty.
	Var string
	// LookupEnv replaces os.LookupEnv, mostly for tests.
	LookupEnv func(key string) (string, bool)
}

func (e EnvNamespace) Namespace() (string, error) {
	name := e.Var
	if name == "" {
		name = NamespaceEnv
	}
	lookup := e.LookupEnv
	if lookup == nil {
		lookup = os.LookupEnv
	}
	v, ok := lookup(name)
	if !ok {
		return "", &NamespaceError{Var: name, Err: ErrNamespaceUnset}
	}
	if !utf8.ValidString(v) {
		return "", &NamespaceError{Var: name, Err: ErrNamespaceMalformed}
	}
	return v, nil
}
