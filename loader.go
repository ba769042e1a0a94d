package tusl

import (
	"os"
	"strconv"
	"strings"
)

// LoadingLoop reads and dispatches tokens from the current input stream
// until EOF, starting in interpret mode. Blank lines are consumed and
// ignored.
func (vm *VM) LoadingLoop() {
	vm.mode = ModeInterpret
	for {
		token, ok := vm.getToken()
		if !ok {
			return
		}
		if token == "\n" {
			continue
		}
		vm.dispatch(token)
	}
}

// InteractiveLoop reads and dispatches tokens from the current input
// stream until EOF, printing a mode-and-stack-height prompt between
// tokens and recovering from errors by discarding the rest of the
// offending line and reprompting, rather than aborting the loop.
func (vm *VM) InteractiveLoop() {
	vm.mode = ModeInterpret
	vm.prompt()
	for {
		var eof, blank bool
		complaint, threw := vm.protect(func() {
			token, ok := vm.getToken()
			if !ok {
				eof = true
				return
			}
			if token == "\n" {
				blank = true
				return
			}
			vm.dispatch(token)
		})
		if threw {
			vm.PutString(vm.stringAt(complaint))
			vm.PutChar('\n')
			vm.input.discardLine()
			vm.prompt()
			continue
		}
		if eof {
			break
		}
		if blank {
			vm.prompt()
		}
	}
	vm.PutChar('\n')
}

// prompt prints the current mode character and, if the stack is
// non-empty, its height, matching spec.md §4.8's "<<height>>" element.
func (vm *VM) prompt() {
	vm.PutChar(byte(vm.mode))
	vm.PutChar(' ')
	if height := vm.StackDepth(); height > 0 {
		vm.PutChar('<')
		vm.PutString(strconv.Itoa(height))
		vm.PutString("> ")
	}
	vm.FlushOutput()
}

// loadFile runs LoadingLoop against the named file's contents, restoring
// the prior input stream and mode on every path, and reports whether an
// error escaped along with its complaint offset. It does not itself
// decide how to propagate that error: Load turns it into a Go error,
// while the "load" primitive re-escapes it into the caller's own
// exception chain.
func (vm *VM) loadFile(filename string) (complaint int, threw bool) {
	f, err := os.Open(filename)
	if err != nil {
		return vm.formatComplaint(filename + ": " + err.Error()), true
	}
	saved := vm.input
	vm.input = closingInputStream(filename, f)
	complaint, threw = vm.protect(vm.LoadingLoop)
	vm.input.Close()
	vm.mode = ModeInterpret
	vm.input = saved
	return complaint, threw
}

// Load runs the named file's contents as source code, starting and ending
// in interpret mode, restoring whatever input stream and mode were active
// before the call.
func (vm *VM) Load(filename string) error {
	if complaint, threw := vm.loadFile(filename); threw {
		return Error{Offset: complaint, Message: vm.stringAt(complaint)}
	}
	return nil
}

// LoadString runs the contents of s as source code against a fresh
// in-memory input stream named "<string>".
func (vm *VM) LoadString(s string) error {
	saved := vm.input
	vm.input = inputStream("<string>", strings.NewReader(s))
	complaint, threw := vm.protect(vm.LoadingLoop)
	vm.mode = ModeInterpret
	vm.input = saved
	if threw {
		return Error{Offset: complaint, Message: vm.stringAt(complaint)}
	}
	return nil
}

// LoadInteractive runs InteractiveLoop against r (and w for prompts and
// output), restoring whatever streams were active before the call.
func (vm *VM) LoadInteractive(r *Stream, w *Stream) {
	savedIn, savedOut := vm.input, vm.output
	vm.input, vm.output = r, w
	vm.InteractiveLoop()
	vm.input, vm.output = savedIn, savedOut
}

// withIOOnFile opens filename in the given mode ("r" for input, anything
// else for output), runs word against it, and restores the previous
// streams afterward whether or not word's execution threw.
func (vm *VM) withIOOnFile(filename, mode string, word int) {
	savedIn, savedOut := vm.input, vm.output
	var f *os.File
	var err error
	if mode == "r" {
		f, err = os.Open(filename)
	} else {
		f, err = os.Create(filename)
	}
	if err != nil {
		vm.errorf("%s: %s", filename, err)
		return
	}
	if mode == "r" {
		vm.input = closingInputStream(filename, f)
	} else {
		vm.output = closingOutputStream(filename, f)
	}
	complaint, threw := vm.protect(func() { vm.Run(word) })
	if mode == "r" {
		vm.input.Close()
	} else {
		vm.output.Close()
	}
	vm.input, vm.output = savedIn, savedOut
	if threw {
		vm.escape(complaint)
	}
}
