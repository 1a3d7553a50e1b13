package cli

import (
	"fmt"
	"io"
	"os"

	"golang.org/x/term"
)

const (
	ansiReset  = "\033[0m"
	ansiRed    = "\033[31m"
	ansiGreen  = "\033[32m"
	ansiYellow = "\033[33m"
)

// printer writes one status line per call, colored when w is a terminal and
// NO_COLOR is unset.
type printer struct {
	w     io.Writer
	color bool
}

func newPrinter(w io.Writer) *printer {
	p := &printer{w: w}
	if f, ok := w.(*os.File); ok && os.Getenv("NO_COLOR") == "" {
		p.color = term.IsTerminal(int(f.Fd()))
	}
	return p
}

func (p *printer) line(color, format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	if p.color && color != "" {
		msg = color + msg + ansiReset
	}
	fmt.Fprintln(p.w, msg)
}

func (p *printer) Success(format string, args ...any) { p.line(ansiGreen, format, args...) }
func (p *printer) Warn(format string, args ...any)    { p.line(ansiYellow, format, args...) }
func (p *printer) Error(format string, args ...any)   { p.line(ansiRed, format, args...) }
func (p *printer) Plain(format string, args ...any)   { p.line("", format, args...) }
