package tusl

import (
	"context"
	"io"
	"strings"
)

// config collects everything an Option can influence. Size options must
// take effect before the VM's backing slices are allocated; I/O and
// logging options take effect afterward, against the live VM. Keeping them
// in one struct lets New() stay a single straight-line function regardless
// of which phase an option belongs to.
type config struct {
	stackCapacity int
	arenaSize     int
	dictCapacity  int
	reserved      int

	input   *Stream
	output  *Stream
	logfn   func(mess string, args ...interface{})
	tracer  func(vm *VM, word int) bool
	colonFn func(vm *VM, w *Word) bool
	ctx     context.Context
}

func (cfg *config) applyLate(vm *VM) {
	if cfg.input != nil {
		vm.input.Close()
		vm.input = cfg.input
	}
	if cfg.output != nil {
		vm.output.Close()
		vm.output = cfg.output
	}
	if cfg.logfn != nil {
		vm.logfn = cfg.logfn
	}
	if cfg.tracer != nil {
		vm.tracer = cfg.tracer
	}
	if cfg.colonFn != nil {
		vm.colonTracer = cfg.colonFn
	}
	if cfg.ctx != nil {
		vm.ctx = cfg.ctx
	}
}

// Option configures a VM at construction time.
type Option interface {
	apply(cfg *config)
}

type optionFunc func(cfg *config)

func (f optionFunc) apply(cfg *config) { f(cfg) }

// WithStackCapacity overrides the data stack's fixed capacity.
func WithStackCapacity(n int) Option {
	return optionFunc(func(cfg *config) { cfg.stackCapacity = n })
}

// WithArenaSize overrides the data arena's fixed size in bytes.
func WithArenaSize(n int) Option {
	return optionFunc(func(cfg *config) { cfg.arenaSize = n })
}

// WithDictionaryCapacity overrides the dictionary's fixed capacity.
func WithDictionaryCapacity(n int) Option {
	return optionFunc(func(cfg *config) { cfg.dictCapacity = n })
}

// WithReservedSpace overrides how much arena space is kept clear between
// here and there beyond what a single request asks for.
func WithReservedSpace(n int) Option {
	return optionFunc(func(cfg *config) { cfg.reserved = n })
}

// WithInputFile configures the VM's initial input stream, named for
// diagnostics.
func WithInputFile(name string, r io.ReadCloser) Option {
	return optionFunc(func(cfg *config) { cfg.input = closingInputStream(name, r) })
}

// WithInputString configures the VM's initial input as an in-memory
// string.
func WithInputString(s string) Option {
	return optionFunc(func(cfg *config) { cfg.input = inputStream("<string>", strings.NewReader(s)) })
}

// WithOutputFile configures the VM's initial output stream, named for
// diagnostics.
func WithOutputFile(name string, w io.WriteCloser) Option {
	return optionFunc(func(cfg *config) { cfg.output = closingOutputStream(name, w) })
}

// WithLogf wires a leveled logging sink (e.g. (*logio.Logger).Leveledf) that
// the inner interpreter uses to trace each call it makes to another word.
func WithLogf(fn func(mess string, args ...interface{})) Option {
	return optionFunc(func(cfg *config) { cfg.logfn = fn })
}

// WithTracer installs a hook consulted before every cell fetched inside a
// running sequence; returning true stops that sequence's execution
// immediately (spec.md §4.4's "may request early termination"). This
// backs the start-tracing/stop-tracing words (SPEC_FULL.md §3), whose
// default tracer always returns false to keep tracing running.
func WithTracer(fn func(vm *VM, word int) bool) Option {
	return optionFunc(func(cfg *config) { cfg.tracer = fn })
}

// WithContext bounds every subsequent sequence execution by ctx: the inner
// interpreter checks ctx.Done() every few hundred steps and aborts with a
// FatalError carrying ctx.Err()'s message if it fires, so a host can cap a runaway or
// hostile script without killing the whole process.
func WithContext(ctx context.Context) Option {
	return optionFunc(func(cfg *config) { cfg.ctx = ctx })
}

// WithColonTracer installs a hook consulted every time execSequence enters
// a colon-defined word's body, and again immediately before a tail call
// replaces the program counter with another such body (spec.md §4.4):
// returning true stops execution of the sequence being entered without
// running any of it.
func WithColonTracer(fn func(vm *VM, w *Word) bool) Option {
	return optionFunc(func(cfg *config) { cfg.colonFn = fn })
}
