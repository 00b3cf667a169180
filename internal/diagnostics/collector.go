package diagnostics

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"github.com/nx-lang/nx/internal/lexer/token"
)

var (
	ErrCompilerErrorFound = errors.New("compiler error found")
)

type Kind int

const (
	LEXICAL Kind = iota
	SYNTAX
	IMPORT
	RUNTIME
)

func (kind Kind) String() string {
	switch kind {
	case LEXICAL:
		return "lexical"
	case SYNTAX:
		return "syntax"
	case IMPORT:
		return "import"
	case RUNTIME:
		return "runtime"
	}
	return "unknown"
}

type Diag struct {
	Kind    Kind
	Pos     token.Pos
	Message string
}

type Collector struct {
	Diags []Diag

	out     io.Writer
	sources map[string][]string

	errorStyle lipgloss.Style
	caretStyle lipgloss.Style
}

func New() *Collector {
	return NewWithWriter(os.Stderr)
}

func NewWithWriter(out io.Writer) *Collector {
	collector := &Collector{
		Diags:   nil,
		out:     out,
		sources: make(map[string][]string),
	}
	collector.SetColor(COLOR_AUTO)
	return collector
}

// SetColor rebuilds the styles used for the "Error" label and the caret.
// In auto mode only terminals get escape sequences.
func (collector *Collector) SetColor(mode ColorMode) {
	renderer := lipgloss.NewRenderer(collector.out)
	switch mode {
	case COLOR_NEVER:
		renderer.SetColorProfile(termenv.Ascii)
	case COLOR_ALWAYS:
		renderer.SetColorProfile(termenv.ANSI)
	default:
		if _, ok := collector.out.(*os.File); !ok {
			renderer.SetColorProfile(termenv.Ascii)
		}
	}
	collector.errorStyle = renderer.NewStyle().Bold(true).Foreground(lipgloss.Color("9"))
	collector.caretStyle = renderer.NewStyle().Bold(true).Foreground(lipgloss.Color("10"))
}

// AddSource makes the text of a file available for the source excerpt
// printed under each diagnostic.
func (collector *Collector) AddSource(filename string, src []byte) {
	lines := strings.Split(string(src), "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSuffix(line, "\r")
	}
	collector.sources[filename] = lines
}

func (collector *Collector) ReportAndSave(diag Diag) {
	if collector.out != nil {
		fmt.Fprint(collector.out, collector.Render(diag))
	}
	collector.Diags = append(collector.Diags, diag)
}

// HasErrors reports whether a lexical or syntax diagnostic was collected.
// Those are the ones that stop a program from running. Import and runtime
// diagnostics leave the offending call evaluating to "".
func (collector *Collector) HasErrors() bool {
	for _, diag := range collector.Diags {
		if diag.Kind == LEXICAL || diag.Kind == SYNTAX {
			return true
		}
	}
	return false
}

func (collector *Collector) Count(kind Kind) int {
	n := 0
	for _, diag := range collector.Diags {
		if diag.Kind == kind {
			n++
		}
	}
	return n
}

func (collector *Collector) Reset() {
	collector.Diags = nil
}

// Render formats a diagnostic as
//
//	Error at line L, column C: message
//	<source line>
//	    ^
func (collector *Collector) Render(diag Diag) string {
	label := collector.errorStyle.Render("Error")
	if !diag.Pos.IsValid() {
		return fmt.Sprintf("%s: %s\n", label, diag.Message)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s at line %d, column %d: %s\n", label, diag.Pos.Line, diag.Pos.Column, diag.Message)

	line, column, ok := collector.excerpt(diag.Pos)
	if !ok {
		return b.String()
	}
	b.WriteString(line)
	b.WriteByte('\n')
	b.WriteString(caretPadding(line, column))
	b.WriteString(collector.caretStyle.Render("^"))
	b.WriteByte('\n')
	return b.String()
}

// excerpt picks the line and the 1-based caret column to show. When the
// column is past the end of its line (or the line is blank) the caret goes
// right after the last character of the preceding line.
func (collector *Collector) excerpt(pos token.Pos) (string, int, bool) {
	lines, ok := collector.sources[pos.Filename]
	if !ok {
		return "", 0, false
	}

	var text string
	if pos.Line <= len(lines) {
		text = lines[pos.Line-1]
	}

	if strings.TrimSpace(text) != "" && pos.Column >= 1 && pos.Column <= len(text)+1 {
		return text, pos.Column, true
	}

	if pos.Line >= 2 && pos.Line-2 < len(lines) {
		prev := lines[pos.Line-2]
		return prev, len(prev) + 1, true
	}
	if text == "" {
		return "", 0, false
	}
	return text, len(text) + 1, true
}

func caretPadding(line string, column int) string {
	pad := make([]byte, 0, column)
	for i := 0; i < column-1; i++ {
		if i < len(line) && line[i] == '\t' {
			pad = append(pad, '\t')
		} else {
			pad = append(pad, ' ')
		}
	}
	return string(pad)
}
