// Package panicrec turns a goroutine panic (or runtime.Goexit) into an
// ordinary error, so that a VM embedder never observes a raw panic escape
// across the engine's public API.
package panicrec

import (
	"errors"
	"fmt"
	"runtime/debug"
)

// Run calls f on a child goroutine and waits for it, recovering any panic
// and converting it to an error. Unlike a bare recover(), this also catches
// runtime.Goexit, by watching for the absence of a send.
func Run(name string, f func() error) (err error) {
	done := make(chan error, 1)
	go func() {
		defer close(done)
		defer func() {
			if e := recover(); e != nil {
				done <- PanicError{Name: name, Value: e, Stack: debug.Stack()}
			}
		}()
		done <- f()
	}()
	err, ok := <-done
	if !ok {
		return GoexitError(name)
	}
	return err
}

// GoexitError indicates that the named operation called runtime.Goexit
// instead of returning normally.
type GoexitError string

func (name GoexitError) Error() string {
	if name == "" {
		return "runtime.Goexit called"
	}
	return fmt.Sprintf("%s called runtime.Goexit", string(name))
}

// PanicError wraps a recovered panic value with the name of the operation
// that panicked and its stack trace at the time.
type PanicError struct {
	Name  string
	Value interface{}
	Stack []byte
}

func (pe PanicError) Error() string {
	if pe.Name == "" {
		return fmt.Sprintf("panic: %v", pe.Value)
	}
	return fmt.Sprintf("%s panicked: %v", pe.Name, pe.Value)
}

// Format supports "%+v" to additionally print the captured stack trace.
func (pe PanicError) Format(f fmt.State, c rune) {
	fmt.Fprint(f, pe.Error())
	if c == 'v' && f.Flag('+') {
		fmt.Fprintf(f, "\npanic stack:\n%s", pe.Stack)
	}
}

func (pe PanicError) Unwrap() error {
	err, _ := pe.Value.(error)
	return err
}

// Is reports whether err is, or wraps, a recovered panic.
func Is(err error) bool {
	var pe PanicError
	return errors.As(err, &pe)
}
