// Package logging provides a small leveled console logger with colored
// prefixes.
package logging

import (
	"fmt"
	"io"
	"os"

	"github.com/gookit/color"
)

// Level is the minimum severity a Logger prints
type Level int

// Levels, lowest first
const (
	LevelBasic Level = iota
	LevelStatus
	LevelError
	LevelImportant
	LevelSilent
)

var (
	styleBasic     = color.Style{color.FgCyan}
	styleStatus    = color.Style{color.FgMagenta}
	styleError     = color.Style{color.FgRed, color.OpBold}
	styleImportant = color.Style{color.FgRed, color.OpBold}
)

// Logger prints "[x] message" lines to a writer.
type Logger struct {
	out     io.Writer
	level   Level
	colored bool
}

// New returns a logger writing to out. Colors are on when colored is true.
func New(out io.Writer, level Level, colored bool) *Logger {
	return &Logger{out: out, level: level, colored: colored}
}

// Stdout returns a logger writing to standard output at LevelBasic
func Stdout(colored bool) *Logger {
	return New(os.Stdout, LevelBasic, colored)
}

// Discard returns a logger that prints nothing
func Discard() *Logger {
	return New(io.Discard, LevelSilent, false)
}

// SetLevel changes the minimum level printed
func (l *Logger) SetLevel(level Level) {
	l.level = level
}

// Basic logs routine progress
func (l *Logger) Basic(format string, a ...any) {
	l.print(LevelBasic, styleBasic, "[>]", format, a...)
}

// Status logs a state change worth noticing
func (l *Logger) Status(format string, a ...any) {
	l.print(LevelStatus, styleStatus, "[@]", format, a...)
}

// Error logs a failure
func (l *Logger) Error(format string, a ...any) {
	l.print(LevelError, styleError, "[!]", format, a...)
}

// Important logs a message that should stand out
func (l *Logger) Important(format string, a ...any) {
	l.print(LevelImportant, styleImportant, "[#]", format, a...)
}

func (l *Logger) print(level Level, style color.Style, prefix, format string, a ...any) {
	if l == nil || level < l.level {
		return
	}
	msg := fmt.Sprintf(format, a...)
	if l.colored {
		prefix = style.Sprint(prefix)
		if level == LevelImportant {
			msg = color.OpBold.Sprint(msg)
		}
	}
	fmt.Fprintf(l.out, "%s %s\n", prefix, msg)
}
