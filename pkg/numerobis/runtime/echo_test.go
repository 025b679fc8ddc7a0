package runtime

import (
	"bytes"
	"testing"
)

// captureEcho redirects echo output for the duration of fn.
func captureEcho(fn func()) string {
	var buf bytes.Buffer
	prev := EchoWriter
	EchoWriter = &buf
	defer func() { EchoWriter = prev }()
	fn()
	return buf.String()
}

func TestEcho(t *testing.T) {
	installTestTables()

	tests := []struct {
		name string
		args []Object
		want string
	}{
		{"number", []Object{NewInt(42, nil)}, "42\n"},
		{"number with unit", []Object{NewInt(3, metre())}, "3 m\n"},
		{"bare string unquoted", []Object{&Str{Value: "hi"}}, "hi\n"},
		{"boolean", []Object{TRUE}, "true\n"},
		{"none", []Object{NONE}, "None\n"},
		{"no arguments", nil, "\n"},
		{
			"strings inside lists are quoted",
			[]Object{ListOf(NewInt(1, nil), &Str{Value: "two"})},
			"[1, \"two\"]\n",
		},
		{
			"nested lists keep quoting",
			[]Object{ListOf(ListOf(&Str{Value: "x"}))},
			"[[\"x\"]]\n",
		},
		{
			"custom end replaces the newline",
			[]Object{&Str{Value: "a"}, &Str{Value: ""}},
			"a",
		},
		{
			"end argument is printed",
			[]Object{NewInt(1, nil), &Str{Value: "; "}},
			"1; ",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := captureEcho(func() { Echo(tt.args...) })
			if got != tt.want {
				t.Errorf("echo wrote %q, want %q", got, tt.want)
			}
		})
	}
}

func TestEchoQuotingResets(t *testing.T) {
	out := captureEcho(func() {
		Echo(ListOf(&Str{Value: "in"}))
		Echo(&Str{Value: "out"})
	})
	want := "[\"in\"]\nout\n"
	if out != want {
		t.Errorf("echo wrote %q, want %q", out, want)
	}
}

func TestExternRegistry(t *testing.T) {
	if Lookup("echo") == nil {
		t.Fatalf("echo builtin not registered")
	}
	if Lookup("format") == nil {
		t.Fatalf("format builtin not registered")
	}
	if Lookup("no-such-extern") != nil {
		t.Errorf("unknown extern should be nil")
	}

	Register("test-extern", func(args ...Object) Object { return NONE })
	if Lookup("test-extern") == nil {
		t.Errorf("registered extern not found")
	}

	defer func() {
		if recover() == nil {
			t.Errorf("duplicate registration should panic")
		}
	}()
	Register("test-extern", func(args ...Object) Object { return NONE })
}

func TestExternCallable(t *testing.T) {
	installTestTables()

	out := captureEcho(func() {
		fn := Lookup("echo")
		fn.Fn(NewInt(7, nil))
	})
	if out != "7\n" {
		t.Errorf("extern echo wrote %q", out)
	}
}
