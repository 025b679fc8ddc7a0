package errors

import (
	"fmt"
	"strings"
)

// Program is one registered source module, kept for diagnostic previews.
type Program struct {
	Path   string
	Source []string
}

// The module registry and current-file marker are populated once by the
// compiled program's startup code and only read afterwards.
var (
	moduleRegistry = map[string]*Program{}
	currentFile    string
)

// RegisterModule records a module's source for diagnostic printing. Called
// from generated init code, before execution starts.
func RegisterModule(path string, source []string) {
	moduleRegistry[path] = &Program{Path: path, Source: source}
}

// SetCurrentFile marks the module currently executing; diagnostics resolve
// their source window against it.
func SetCurrentFile(path string) { currentFile = path }

// CurrentFile returns the module marked as currently executing.
func CurrentFile() string { return currentFile }

// LookupModule returns the registered program for a path, or nil.
func LookupModule(path string) *Program { return moduleRegistry[path] }

// splitSpan breaks a multi-line span into one span per line, so each source
// line gets its own underline segment.
func splitSpan(span *Location) []Location {
	start := span.Line
	end := span.EndLine
	if end == -1 {
		end = span.Line
	}
	if end < start {
		return nil
	}

	lines := make([]Location, 0, end-start+1)
	for line := start; line <= end; line++ {
		col := 1
		if line == span.Line {
			col = span.Col
		}
		endCol := -1
		if line == span.EndLine {
			endCol = span.EndCol
		}
		lines = append(lines, Location{Line: line, Col: col, EndLine: line, EndCol: endCol})
	}
	return lines
}

// previewWindow is how many runes of context are shown either side of the
// highlighted span.
const previewWindow = 30

func writePreview(out *strings.Builder, program *Program, span *Location) {
	lines := splitSpan(span)

	out.WriteString("\n")
	for i, line := range lines {
		if line.Line < 1 || line.Line > len(program.Source) {
			continue
		}
		src := []rune(program.Source[line.Line-1])
		srcLen := len(src)

		endCol := line.EndCol
		if endCol <= 0 {
			endCol = srcLen + 1
		}

		// clamp to valid range
		colStart := max(1, min(line.Col, srcLen+1))
		colEnd := max(colStart, min(endCol, srcLen+1)) + 1

		windowStart := max(0, colStart-1-previewWindow)
		windowEnd := min(srcLen, colEnd-1+previewWindow)

		before := string(src[windowStart : colStart-1])
		highlight := string(src[colStart-1 : min(colEnd-1, srcLen)])
		after := ""
		if colEnd-1 <= windowEnd {
			after = string(src[colEnd-1 : windowEnd])
		}

		prefix := ""
		if windowStart > 0 {
			prefix = "..."
		}
		suffix := ""
		if windowEnd < srcLen {
			suffix = "..."
		}

		fmt.Fprintf(out, "%s   %s%s%s%s%s\n",
			colour(fmt.Sprintf("%5d │", line.Line), ansiDim),
			prefix, before, colour(highlight, ansiRedBold), after, suffix)

		highlightLen := len([]rune(highlight))
		if highlightLen == 0 {
			continue
		}

		var underline strings.Builder
		for j := 0; j < highlightLen; j++ {
			switch {
			case i == 0 && j == 0:
				underline.WriteString("╰")
			case i == len(lines)-1 && j == highlightLen-1:
				underline.WriteString("╯")
			default:
				underline.WriteString("─")
			}
		}

		pad := len([]rune(prefix)) + len([]rune(before))
		fmt.Fprintf(out, "%s%s%s\n",
			colour("      │   ", ansiDim),
			strings.Repeat(" ", pad),
			colour(underline.String(), ansiRedBold))
	}
}
