// Package repl provides the interactive Numerobis unit calculator with line
// editing, history, and tab completion.
package repl

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/peterh/liner"

	"github.com/sambeau/numerobis/pkg/numerobis/catalog"
	"github.com/sambeau/numerobis/pkg/numerobis/unitlang"
)

const PROMPT = ">> "

const LOGO = `
█▄░█ █░█ █▀▄▀█ █▀▀ █▀█ █▀█ █▄▄ █ █▀
█░▀█ █▄█ █░▀░█ ██▄ █▀▄ █▄█ █▄█ █ ▄█ `

// operator and command words offered alongside unit names for completion
var completionWords = []string{
	"|+|", "|-|", "->",
	":quit", ":units", ":help",
}

// Start runs the REPL against a catalog until EOF or :quit. The catalog
// must already be installed as the process evaluation tables.
func Start(out io.Writer, cat *catalog.Catalog, version string) {
	line := liner.NewLiner()
	defer line.Close()

	line.SetCtrlCAborts(true)

	words := append([]string{}, completionWords...)
	words = append(words, cat.Names()...)
	sort.Strings(words)

	line.SetCompleter(func(input string) []string {
		fields := strings.Fields(input)
		if len(fields) == 0 {
			return nil
		}
		last := fields[len(fields)-1]
		prefix := strings.TrimSuffix(input, last)

		var matches []string
		for _, w := range words {
			if strings.HasPrefix(w, last) {
				matches = append(matches, prefix+w)
			}
		}
		return matches
	})

	historyPath := historyFile()
	if historyPath != "" {
		if f, err := os.Open(historyPath); err == nil {
			line.ReadHistory(f)
			f.Close()
		}
	}

	fmt.Fprintln(out, LOGO)
	fmt.Fprintf(out, "\nNumerobis %s — unit calculator. :help for help.\n\n", version)

	for {
		input, err := line.Prompt(PROMPT)
		if err != nil {
			// io.EOF on Ctrl+D, liner.ErrPromptAborted on Ctrl+C
			if err == liner.ErrPromptAborted {
				continue
			}
			break
		}

		input = strings.TrimSpace(input)
		if input == "" {
			continue
		}
		line.AppendHistory(input)

		if strings.HasPrefix(input, ":") {
			if runCommand(out, cat, input) {
				break
			}
			continue
		}

		v, err := unitlang.Eval(input, cat)
		if err != nil {
			fmt.Fprintf(out, "error: %v\n", err)
			continue
		}
		fmt.Fprintln(out, v.Inspect())
	}

	if historyPath != "" {
		if f, err := os.Create(historyPath); err == nil {
			line.WriteHistory(f)
			f.Close()
		}
	}
}

// runCommand handles a colon command; returns true when the REPL should
// exit.
func runCommand(out io.Writer, cat *catalog.Catalog, input string) bool {
	switch input {
	case ":quit", ":q":
		return true

	case ":units":
		names := cat.Names()
		sort.Strings(names)
		fmt.Fprintln(out, strings.Join(names, "  "))

	case ":help":
		fmt.Fprintln(out, "expressions:  1 m + 2 m   9.81 m/s^2   2 * 60 dBm")
		fmt.Fprintln(out, "delta ops:    60 dBm |+| 60 dBm")
		fmt.Fprintln(out, "conversion:   0 °C -> K")
		fmt.Fprintln(out, "commands:     :units  :quit")

	default:
		fmt.Fprintf(out, "unknown command %s\n", input)
	}
	return false
}

func historyFile() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".numerobis_history")
}
