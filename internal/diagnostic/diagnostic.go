// Package diagnostic renders front-end errors against their source text:
//
//	error: unexpected NUMBER(5), expected "IDENT"
//	 --> prog.evs:1:5
//	  |
//	1 | let 5 = 1;
//	  |     ^
package diagnostic

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"github.com/metaphox/eventscript/lexer"
	"github.com/metaphox/eventscript/parser"
	"github.com/metaphox/eventscript/symbols"
)

// Colour palette shared by all reports.
var (
	ColorError  = lipgloss.Color("#EF4444") // Red
	ColorAccent = lipgloss.Color("#06B6D4") // Cyan
	ColorMuted  = lipgloss.Color("#6B7280") // Gray
)

type styles struct {
	label  lipgloss.Style
	path   lipgloss.Style
	gutter lipgloss.Style
	caret  lipgloss.Style
}

func newStyles(r *lipgloss.Renderer) styles {
	return styles{
		label:  r.NewStyle().Foreground(ColorError).Bold(true),
		path:   r.NewStyle().Foreground(ColorAccent),
		gutter: r.NewStyle().Foreground(ColorMuted),
		caret:  r.NewStyle().Foreground(ColorError).Bold(true),
	}
}

// Location is the span an error points at. Line and Col are 1-based; Width is
// at least 1.
type Location struct {
	Line  int
	Col   int
	Width int
}

// Locate extracts the position carried by a lexer, parser or symbol error
// anywhere in err's chain.
func Locate(err error) (Location, bool) {
	var (
		lexErr   *lexer.Error
		parseErr *parser.Error
		redecl   *symbols.RedeclaredError
		unknown  *symbols.UnknownTypeError
		undef    *symbols.UndefinedError
	)
	switch {
	case errors.As(err, &lexErr):
		return span(lexErr.Line, lexErr.Col, len(lexErr.Text)), true
	case errors.As(err, &parseErr):
		tok := parseErr.Token
		return span(tok.Line, tok.Col, len(tok.Literal)), true
	case errors.As(err, &redecl):
		return span(redecl.Token.Line, redecl.Token.Col, len(redecl.Token.Literal)), true
	case errors.As(err, &unknown):
		return span(unknown.Token.Line, unknown.Token.Col, len(unknown.Token.Literal)), true
	case errors.As(err, &undef):
		return span(undef.Token.Line, undef.Token.Col, len(undef.Token.Literal)), true
	}
	return Location{}, false
}

func span(line, col, width int) Location {
	if width < 1 {
		width = 1
	}
	return Location{Line: line, Col: col, Width: width}
}

// Reporter writes diagnostics to one writer.
type Reporter struct {
	w io.Writer
	s styles
}

// New returns a Reporter for w. color is one of "auto", "always" or "never";
// "auto" colours only when w is a terminal.
func New(w io.Writer, color string) *Reporter {
	r := lipgloss.NewRenderer(w)
	switch color {
	case "always":
		r.SetColorProfile(termenv.TrueColor)
	case "never":
		r.SetColorProfile(termenv.Ascii)
	}
	return &Reporter{w: w, s: newStyles(r)}
}

// Report writes err. When err carries a position inside source, the offending
// line is quoted with a caret under the span. name labels the input.
func (r *Reporter) Report(name, source string, err error) error {
	loc, ok := Locate(err)
	msg := err.Error()
	if ok {
		msg = strings.TrimPrefix(msg, fmt.Sprintf("%d:%d: ", loc.Line, loc.Col))
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s %s\n", r.s.label.Render("error:"), msg)
	if !ok {
		_, werr := io.WriteString(r.w, b.String())
		return werr
	}

	num := fmt.Sprint(loc.Line)
	pad := strings.Repeat(" ", len(num))
	fmt.Fprintf(&b, "%s %s\n", r.s.gutter.Render(pad+"-->"),
		r.s.path.Render(fmt.Sprintf("%s:%d:%d", name, loc.Line, loc.Col)))

	if text, found := sourceLine(source, loc.Line); found {
		bar := r.s.gutter.Render(pad + " |")
		fmt.Fprintf(&b, "%s\n", bar)
		fmt.Fprintf(&b, "%s %s\n", r.s.gutter.Render(num+" |"), text)
		fmt.Fprintf(&b, "%s %s%s\n", bar, indentFor(text, loc.Col),
			r.s.caret.Render(strings.Repeat("^", caretWidth(text, loc))))
	}
	_, werr := io.WriteString(r.w, b.String())
	return werr
}

// sourceLine returns the 1-based line n of source without its newline. The
// line just past the last newline exists so that errors at EOF can be shown.
func sourceLine(source string, n int) (string, bool) {
	if n < 1 {
		return "", false
	}
	lines := strings.Split(source, "\n")
	if n > len(lines) {
		return "", false
	}
	return strings.TrimSuffix(lines[n-1], "\r"), true
}

// indentFor returns whitespace reaching column col of text. Tabs are kept so
// the caret lines up however the terminal expands them.
func indentFor(text string, col int) string {
	var b strings.Builder
	for i := 0; i < col-1; i++ {
		if i < len(text) && text[i] == '\t' {
			b.WriteByte('\t')
		} else {
			b.WriteByte(' ')
		}
	}
	return b.String()
}

// caretWidth clips the span to the end of the line, keeping at least one caret.
func caretWidth(text string, loc Location) int {
	w := loc.Width
	if rest := len(text) - (loc.Col - 1); rest < w {
		w = rest
	}
	if w < 1 {
		w = 1
	}
	return w
}
