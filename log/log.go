// Package log wraps the standard library logger with a raw terminal mode.
// While the viewer owns the screen the terminal is in raw mode, where a bare
// LF only moves down a row; raw mode rewrites every LF to CRLF so log output
// stays readable without the viewer having to care.
package log

import (
	"fmt"
	"io"
	"log"
	"os"
	"regexp"
)

type Logger struct {
	l       *log.Logger
	rawMode bool
}

var crlfPrefixer = regexp.MustCompile(`(?:([^\r])\n|^\n)`)

var std = NewFromLogger(log.Default(), false)

// Default returns the standard logger used by the package-level output
// functions.
func Default() *Logger { return std }

func New(out io.Writer, prefix string, flag int, rawMode bool) *Logger {
	return NewFromLogger(log.New(out, prefix, flag), rawMode)
}

func NewFromLogger(l *log.Logger, rawMode bool) *Logger {
	return &Logger{l: l, rawMode: rawMode}
}

func (l *Logger) fixString(str string) string {
	if !l.rawMode {
		return str
	}

	s := crlfPrefixer.ReplaceAllString(str, "$1\r\n")
	if len(s) == 0 || s[len(s)-1] != '\n' {
		s += "\r\n"
	}
	return s
}

// SetRawMode toggles CRLF rewriting for raw terminal output.
func (l *Logger) SetRawMode(rawMode bool) {
	l.rawMode = rawMode
}

// SetOutput sets the output destination for the logger.
func (l *Logger) SetOutput(w io.Writer) {
	l.l.SetOutput(w)
}

// Print calls l.Output to print to the logger.
// Arguments are handled in the manner of [fmt.Print].
func (l *Logger) Print(v ...any) {
	l.l.Output(2, l.fixString(fmt.Sprint(v...)))
}

// Printf calls l.Output to print to the logger.
// Arguments are handled in the manner of [fmt.Printf].
func (l *Logger) Printf(format string, v ...any) {
	l.l.Output(2, l.fixString(fmt.Sprintf(format, v...)))
}

// Println calls l.Output to print to the logger.
// Arguments are handled in the manner of [fmt.Println].
func (l *Logger) Println(v ...any) {
	l.l.Output(2, l.fixString(fmt.Sprintln(v...)))
}

// Fatalln is equivalent to l.Println() followed by a call to [os.Exit](1).
func (l *Logger) Fatalln(v ...any) {
	l.Println(v...)
	os.Exit(1)
}

// SetOutput sets the output destination for the standard logger.
func SetOutput(w io.Writer) {
	std.SetOutput(w)
}

// SetRawMode toggles CRLF rewriting on the standard logger.
func SetRawMode(rawMode bool) {
	std.SetRawMode(rawMode)
}

// Print calls Output to print to the standard logger.
// Arguments are handled in the manner of [fmt.Print].
func Print(v ...any) {
	std.Print(v...)
}

// Printf calls Output to print to the standard logger.
// Arguments are handled in the manner of [fmt.Printf].
func Printf(format string, v ...any) {
	std.Printf(format, v...)
}

// Println calls Output to print to the standard logger.
// Arguments are handled in the manner of [fmt.Println].
func Println(v ...any) {
	std.Println(v...)
}

// Fatalln is equivalent to [Println] followed by a call to [os.Exit](1).
func Fatalln(v ...any) {
	std.Fatalln(v...)
}
