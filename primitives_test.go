package tusl

import (
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

type nopCloseWriter struct{ io.Writer }

func (nopCloseWriter) Close() error { return nil }

// TestFindLocatesInstalledWord exercises doFind's success path: an
// installed word's name resolves to its dictionary index with the -1
// (all-bits-set) true flag shared by =/</u<.
func TestFindLocatesInstalledWord(t *testing.T) {
	vm := New()
	idx := vm.Install("thing", func(vm *VM, w *Word) {}, 0)

	vm.push(vm.internString("thing"))
	doFind(vm, nil)

	assert.Equal(t, -1, vm.pop())
	assert.Equal(t, idx, vm.pop())
}

// TestFindReportsTheOffsetItFailedToResolve is the bug this word shipped
// with: on failure it must push back the same string offset it was given,
// not 0, so the caller can still report what name it tried and failed to
// find (tusl.c's ts_find, spec.md §4.6).
func TestFindReportsTheOffsetItFailedToResolve(t *testing.T) {
	vm := New()
	z := vm.internString("no-such-word")

	vm.push(z)
	doFind(vm, nil)

	assert.Equal(t, 0, vm.pop())
	assert.Equal(t, z, vm.pop())
}

// TestParseNumberPushesPlainOneOnSuccess guards parse-number's asymmetric
// success flag: unlike =/</u</find, a successful parse pushes a plain 1,
// not -1 (tusl.c's ts_parse_number).
func TestParseNumberPushesPlainOneOnSuccess(t *testing.T) {
	vm := New()
	z := vm.internString("42")

	vm.push(z)
	doParseNumber(vm, nil)

	assert.Equal(t, 1, vm.pop())
	assert.Equal(t, 42, vm.pop())
}

// TestParseNumberReportsTheOffsetItFailedToParse mirrors find's failure
// contract: push back the input offset, then 0.
func TestParseNumberReportsTheOffsetItFailedToParse(t *testing.T) {
	vm := New()
	z := vm.internString("not-a-number")

	vm.push(z)
	doParseNumber(vm, nil)

	assert.Equal(t, 0, vm.pop())
	assert.Equal(t, z, vm.pop())
}

// TestCreateConstantAllot exercises create/constant/allot/here/there/where
// end to end, the way a script would drive them through execute.
func TestCreateConstantAllot(t *testing.T) {
	vm := New()

	before := vm.Here()
	vm.push(vm.internString("thing"))
	doCreate(vm, nil)
	idx, ok := vm.lookup("thing")
	assert.True(t, ok)
	assert.Equal(t, before, vm.WordAt(idx).Datum)

	vm.push(99)
	doMakeConstant(vm, nil)
	vm.Run(idx)
	assert.Equal(t, 99, vm.pop())

	hereBefore := vm.Here()
	vm.push(8)
	doAllot(vm, nil)
	assert.Equal(t, hereBefore+8, vm.Here())

	vm.push(0)
	doThere(vm, nil)
	assert.NotEqual(t, 0, vm.pop())

	doWhere(vm, nil)
	assert.Equal(t, len(vm.dict), vm.pop())
}

func TestBitwiseOps(t *testing.T) {
	vm := New()

	vm.push(0b1100)
	vm.push(0b1010)
	doAnd(vm, nil)
	assert.Equal(t, 0b1000, vm.pop())

	vm.push(0b1100)
	vm.push(0b1010)
	doOr(vm, nil)
	assert.Equal(t, 0b1110, vm.pop())

	vm.push(0b1100)
	vm.push(0b1010)
	doXor(vm, nil)
	assert.Equal(t, 0b0110, vm.pop())

	vm.push(1)
	vm.push(4)
	doLshift(vm, nil)
	assert.Equal(t, 16, vm.pop())

	vm.push(-8)
	vm.push(1)
	doRshift(vm, nil)
	assert.Equal(t, -4, vm.pop())

	vm.push(-8)
	vm.push(1)
	doURshift(vm, nil)
	assert.NotEqual(t, -4, vm.pop())
}

func TestFloatOps(t *testing.T) {
	vm := New()

	vm.push(f2i(1.5))
	vm.push(f2i(2.25))
	doFAdd(vm, nil)
	assert.InDelta(t, 3.75, float64(i2f(vm.pop())), 0.0001)

	vm.push(f2i(5))
	vm.push(f2i(2))
	doFSub(vm, nil)
	assert.InDelta(t, 3, float64(i2f(vm.pop())), 0.0001)

	vm.push(f2i(3))
	vm.push(f2i(4))
	doFMul(vm, nil)
	assert.InDelta(t, 12, float64(i2f(vm.pop())), 0.0001)

	vm.push(f2i(9))
	vm.push(f2i(2))
	doFDiv(vm, nil)
	assert.InDelta(t, 4.5, float64(i2f(vm.pop())), 0.0001)
}

// TestPrintStackShowsEveryElementInOrder exercises .s, which read the
// whole data stack without consuming it.
func TestPrintStackShowsEveryElementInOrder(t *testing.T) {
	var out strings.Builder
	vm := New(WithOutputFile("<test>", nopCloseWriter{&out}))
	vm.push(1)
	vm.push(2)
	vm.push(3)

	doPrintStack(vm, nil)

	assert.Equal(t, "1 2 3\n", out.String())
	assert.Equal(t, 3, len(vm.stack))
}

// TestStartStopTracingArmsAndDisarmsTheDefaultTracer exercises the two
// words a script uses to toggle tracing, and confirms the default tracer
// they install reports (keeps running) rather than halts.
func TestStartStopTracingArmsAndDisarmsTheDefaultTracer(t *testing.T) {
	vm := New()
	assert.Nil(t, vm.tracer)

	doStartTracing(vm, nil)
	assert.NotNil(t, vm.tracer)
	assert.False(t, vm.tracer(vm, wordExit))

	doStopTracing(vm, nil)
	assert.Nil(t, vm.tracer)
}
