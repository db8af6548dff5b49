package errors

import (
	"runtime"
)

const maxStackDepth = 32

// StackTrace is a list of program counters, the first one is the place where the error was created.
type StackTrace []uintptr

func callers() StackTrace {
	var pcs [maxStackDepth]uintptr
	// Skip runtime.Callers, callers and the constructor
	n := runtime.Callers(3, pcs[:])
	return pcs[0:n]
}

// Frame returns file and line of the first frame.
func (t StackTrace) Frame() (file string, line int, ok bool) {
	if len(t) == 0 {
		return "", 0, false
	}
	pc := t[0] - 1
	fn := runtime.FuncForPC(pc)
	if fn == nil {
		return "", 0, false
	}
	file, line = fn.FileLine(pc)
	return file, line, true
}
