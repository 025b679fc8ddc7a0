package runtime

import (
	"fmt"
	"io"
	"os"
)

// EchoWriter receives echo output. Swappable so embeddings and tests can
// capture stdout.
var EchoWriter io.Writer = os.Stdout

// echoInList tracks whether the stringifier is re-entered from inside a
// list, which switches strings to their quoted form. Execution is
// single-threaded, so a plain package variable stands in for the original's
// thread-local.
var echoInList = false

// Echo prints a value. args[0] is the value; an optional args[1] string is
// printed after it instead of the default newline.
func Echo(args ...Object) Object {
	var val Object = &Str{}
	if len(args) > 0 && args[0] != nil {
		val = args[0]
	}

	echoValue(val)

	if len(args) > 1 {
		if end, ok := args[1].(*Str); ok {
			fmt.Fprint(EchoWriter, end.Value)
			return NONE
		}
	}
	fmt.Fprintln(EchoWriter)
	return NONE
}

func echoValue(val Object) {
	switch val := val.(type) {
	case *Str:
		if echoInList {
			fmt.Fprintf(EchoWriter, "%q", val.Value)
		} else {
			fmt.Fprint(EchoWriter, val.Value)
		}
	case *List:
		echoList(val)
	default:
		fmt.Fprint(EchoWriter, val.Inspect())
	}
}

func echoList(l *List) {
	wasInList := echoInList
	echoInList = true

	fmt.Fprint(EchoWriter, "[")
	for i, elem := range l.Elements {
		if i > 0 {
			fmt.Fprint(EchoWriter, ", ")
		}
		if elem == nil {
			fmt.Fprint(EchoWriter, "None")
			continue
		}
		echoValue(elem)
	}
	fmt.Fprint(EchoWriter, "]")

	echoInList = wasInList
}
