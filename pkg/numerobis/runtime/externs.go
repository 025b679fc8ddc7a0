package runtime

import "fmt"

// The extern registry maps host-function names to callable values. It is
// populated during startup, before compiled code runs, and is read-only
// afterwards.
var externs = map[string]*ExternFn{}

// Register adds a host function under a name. Registering the same name
// twice is a startup bug and panics, mirroring the abort-on-duplicate of
// the original registry.
func Register(name string, fn ExternFunc) {
	if name == "" || fn == nil {
		panic("runtime: Register with empty name or nil function")
	}
	if _, exists := externs[name]; exists {
		panic(fmt.Sprintf("runtime: extern function already defined: %s", name))
	}
	externs[name] = &ExternFn{Fn: fn}
}

// Lookup returns the extern registered under name, or nil.
func Lookup(name string) *ExternFn {
	return externs[name]
}

func init() {
	Register("echo", Echo)
	Register("format", Format)
}
