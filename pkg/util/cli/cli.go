// Package cli prints leveled, colored messages for the command line.
package cli

import (
	"fmt"
	"io"

	"github.com/fatih/color"
)

// Silent silences all the non-error messages
var Silent bool

// Verbose allows printing verbose messages.
var Verbose bool

// Output is where the messages are written.
var Output io.Writer = color.Output

// ErrOutput is where the failure messages are written.
var ErrOutput io.Writer = color.Error

type level int

const (
	levelVerbose level = iota
	levelInfo
	levelSuccess
	levelWarning
	levelFailure
)

func (l level) mark() string {
	switch l {
	case levelSuccess:
		return color.GreenString("✓")
	case levelWarning:
		return color.YellowString("!")
	case levelFailure:
		return color.RedString("x")
	default:
		return color.BlueString("•")
	}
}

func (l level) enabled() bool {
	switch {
	case l == levelFailure:
		return true
	case Silent:
		return false
	case l == levelVerbose:
		return Verbose
	default:
		return true
	}
}

func emit(l level, msg string) {
	if !l.enabled() {
		return
	}

	w := Output
	if l == levelFailure {
		w = ErrOutput
	}

	fmt.Fprint(w, "["+l.mark()+"] "+msg)
}

// Warningln formats warning message
func Warningln(content ...interface{}) {
	emit(levelWarning, fmt.Sprintln(content...))
}

// Successln formats success message
func Successln(content ...interface{}) {
	emit(levelSuccess, fmt.Sprintln(content...))
}

// Infoln formats info message
func Infoln(content ...interface{}) {
	emit(levelInfo, fmt.Sprintln(content...))
}

// Verboseln formats verbose message
func Verboseln(content ...interface{}) {
	emit(levelVerbose, fmt.Sprintln(content...))
}

// Failureln formats failure message
func Failureln(content ...interface{}) {
	emit(levelFailure, fmt.Sprintln(content...))
}

// Warningf formats warning message
func Warningf(format string, values ...interface{}) {
	emit(levelWarning, fmt.Sprintf(format, values...))
}

// Successf formats success message
func Successf(format string, values ...interface{}) {
	emit(levelSuccess, fmt.Sprintf(format, values...))
}

// Infof formats info message
func Infof(format string, values ...interface{}) {
	emit(levelInfo, fmt.Sprintf(format, values...))
}

// Verbosef formats verbose message
func Verbosef(format string, values ...interface{}) {
	emit(levelVerbose, fmt.Sprintf(format, values...))
}

// Failuref formats failure message
func Failuref(format string, values ...interface{}) {
	emit(levelFailure, fmt.Sprintf(format, values...))
}
