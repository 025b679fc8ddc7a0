package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/sambeau/numerobis/pkg/numerobis/catalog"
	"github.com/sambeau/numerobis/pkg/numerobis/repl"
	"github.com/sambeau/numerobis/pkg/numerobis/runtime"
	"github.com/sambeau/numerobis/pkg/numerobis/unitlang"
	"github.com/sambeau/numerobis/pkg/numerobis/units"
)

// Version information, set at build time via -ldflags
var (
	Version = "dev" // -X main.Version=$(git describe --tags --always)
)

func main() {
	if err := run(os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string, stdout, stderr io.Writer) error {
	flags := flag.NewFlagSet("numerobis", flag.ContinueOnError)
	flags.SetOutput(stderr)

	catalogPath := flags.String("catalog", "", "Path to a YAML unit catalog (default: built-in)")
	locale := flags.String("locale", "", "Format results for a BCP 47 locale tag")

	flags.Usage = func() {
		fmt.Fprintln(stderr, "usage: numerobis [flags]              start the REPL")
		fmt.Fprintln(stderr, "       numerobis [flags] eval <expr>  evaluate one expression")
		flags.PrintDefaults()
	}

	if err := flags.Parse(args); err != nil {
		return err
	}

	cat, err := loadCatalog(*catalogPath)
	if err != nil {
		return err
	}
	// evaluation tables are process-wide and install exactly once
	if !units.Installed() {
		cat.Install()
	}

	rest := flags.Args()
	if len(rest) == 0 {
		repl.Start(stdout, cat, Version)
		return nil
	}

	switch rest[0] {
	case "eval":
		if len(rest) < 2 {
			return errors.New("eval needs an expression")
		}
		return evalExpr(stdout, cat, rest[1], *locale)
	default:
		flags.Usage()
		return fmt.Errorf("unknown command %q", rest[0])
	}
}

func loadCatalog(path string) (*catalog.Catalog, error) {
	if path == "" {
		return catalog.Std(), nil
	}
	return catalog.LoadFile(path)
}

func evalExpr(stdout io.Writer, cat *catalog.Catalog, expr, locale string) error {
	v, err := unitlang.Eval(expr, cat)
	if err != nil {
		return err
	}

	if locale != "" {
		if n, ok := v.(*runtime.Number); ok {
			fmt.Fprintln(stdout, runtime.FormatLocalized(n, locale))
			return nil
		}
	}
	fmt.Fprintln(stdout, v.Inspect())
	return nil
}
