package tusl

import (
	"math"
	"strconv"
)

// InstallStandardWords adds every primitive that cannot corrupt memory or
// touch the filesystem: arithmetic, comparison, bitwise, the safe memory
// operators bounds-checked against the arena, dictionary/compiling
// primitives, string and number parsing, and stack/tracing diagnostics.
func (vm *VM) InstallStandardWords() {
	vm.install("+", doAdd, 0)
	vm.install("-", doSub, 0)
	vm.install("*", doMul, 0)
	vm.install("/", doDiv, 0)
	vm.install("mod", doMod, 0)
	vm.install("u*", doUMul, 0)
	vm.install("u/", doUDiv, 0)
	vm.install("umod", doUMod, 0)
	vm.install("=", doEq, 0)
	vm.install("<", doLt, 0)
	vm.install("u<", doULt, 0)
	vm.install("and", doAnd, 0)
	vm.install("or", doOr, 0)
	vm.install("xor", doXor, 0)
	vm.install("<<", doLshift, 0)
	vm.install(">>", doRshift, 0)
	vm.install("u>>", doURshift, 0)

	vm.install("@", doFetch, 0)
	vm.install("!", doStore, 0)
	vm.install("c@", doCFetch, 0)
	vm.install("c!", doCStore, 0)
	vm.install("+!", doPlusStore, 0)

	vm.install("literal", doMakeLiteral, 0)
	vm.install(",", doComma, 0)
	vm.install("here", doHere, 0)
	vm.install("there", doThere, 0)
	vm.install("where", doWhere, 0)
	vm.install("allot", doAllot, 0)
	vm.install("align!", doAlignBang, 0)
	vm.install("constant", doMakeConstant, 0)
	vm.install("create", doCreate, 0)
	vm.install("create-local", doCreateLocal, 0)
	vm.install("reset-locals", doResetLocals, 0)
	vm.install("compile-grab", doCompileGrab, 0)
	vm.install("find", doFind, 0)
	vm.install("string,", doStringComma, 0)

	vm.install("parse-number", doParseNumber, 0)

	vm.install("emit", doEmit, 0)
	vm.install(".", doPrint, 0)
	vm.install("absorb", doAbsorb, 0)

	vm.install("execute", doExecute, 0)

	vm.install("catch", doCatch, 0)
	vm.install("throw", doThrow, 0)
	vm.install("error", doPrimError, 0)

	vm.install("clear-stack", doClearStack, 0)
	vm.install(".s", doPrintStack, 0)
	vm.install("start-tracing", doStartTracing, 0)
	vm.install("stop-tracing", doStopTracing, 0)

	vm.install("f+", doFAdd, 0)
	vm.install("f-", doFSub, 0)
	vm.install("f*", doFMul, 0)
	vm.install("f/", doFDiv, 0)
	vm.install("f.", doFPrint, 0)

	vm.install("0<", doIsNegative, 0)
	vm.install("0=", doIsZero, 0)
	vm.install("2+", doAdd2, 0)
	vm.install("1+", doAdd1, 0)
	vm.install("1-", doSub1, 0)
	vm.install("2-", doSub2, 0)
	vm.install("cells", doTimes4, 0)
	vm.install("4*", doTimes4, 0)
	vm.install("2*", doTimes2, 0)
	vm.install("2/", doDiv2, 0)
	vm.install("4/", doDiv4, 0)
}

// InstallUnsafeWords adds every primitive that can corrupt memory
// (unchecked host-pointer access) or touch the filesystem.
func (vm *VM) InstallUnsafeWords() {
	vm.install(">data", doToData, 0)
	vm.install("@u", doFetchU, 0)
	vm.install("!u", doStoreU, 0)
	vm.install("c@u", doCFetchU, 0)
	vm.install("c!u", doCStoreU, 0)
	vm.install("+!u", doPlusStoreU, 0)

	vm.install("with-io-on-file", doWithIOOnFile, 0)
	vm.install("repl", doRepl, 0)
	vm.install("load", doPrimLoad, 0)
}

func (vm *VM) pop2() (y, z int) {
	z = vm.pop()
	y = vm.pop()
	return
}

func boolInt(b bool) int {
	if b {
		return -1
	}
	return 0
}

func doAdd(vm *VM, w *Word)  { y, z := vm.pop2(); vm.push(y + z) }
func doSub(vm *VM, w *Word)  { y, z := vm.pop2(); vm.push(y - z) }
func doMul(vm *VM, w *Word)  { y, z := vm.pop2(); vm.push(y * z) }
func doUMul(vm *VM, w *Word) { y, z := vm.pop2(); vm.push(int(uint32(y) * uint32(z))) }

func nonzero(vm *VM, z int) {
	if z == 0 {
		vm.errorf("Division by 0")
	}
}

func doDiv(vm *VM, w *Word)  { y, z := vm.pop2(); nonzero(vm, z); vm.push(y / z) }
func doMod(vm *VM, w *Word)  { y, z := vm.pop2(); nonzero(vm, z); vm.push(y % z) }
func doUDiv(vm *VM, w *Word) { y, z := vm.pop2(); nonzero(vm, z); vm.push(int(uint32(y) / uint32(z))) }
func doUMod(vm *VM, w *Word) { y, z := vm.pop2(); nonzero(vm, z); vm.push(int(uint32(y) % uint32(z))) }

func doEq(vm *VM, w *Word)  { y, z := vm.pop2(); vm.push(boolInt(y == z)) }
func doLt(vm *VM, w *Word)  { y, z := vm.pop2(); vm.push(boolInt(y < z)) }
func doULt(vm *VM, w *Word) { y, z := vm.pop2(); vm.push(boolInt(uint32(y) < uint32(z))) }

func doAnd(vm *VM, w *Word) { y, z := vm.pop2(); vm.push(y & z) }
func doOr(vm *VM, w *Word)  { y, z := vm.pop2(); vm.push(y | z) }
func doXor(vm *VM, w *Word) { y, z := vm.pop2(); vm.push(y ^ z) }

func doLshift(vm *VM, w *Word)  { y, z := vm.pop2(); vm.push(y << uint(z)) }
func doRshift(vm *VM, w *Word)  { y, z := vm.pop2(); vm.push(y >> uint(z)) }
func doURshift(vm *VM, w *Word) { y, z := vm.pop2(); vm.push(int(uint32(y) >> uint(z))) }

func doFetch(vm *VM, w *Word)     { z := vm.pop(); vm.push(int(vm.CellAt(z))) }
func doCFetch(vm *VM, w *Word)    { z := vm.pop(); vm.push(int(vm.ByteAt(z))) }
func doStore(vm *VM, w *Word)     { y, z := vm.pop2(); vm.SetCellAt(z, int32(y)) }
func doCStore(vm *VM, w *Word)    { y, z := vm.pop2(); vm.SetByteAt(z, byte(y)) }
func doPlusStore(vm *VM, w *Word) { y, z := vm.pop2(); vm.SetCellAt(z, vm.CellAt(z)+int32(y)) }

func doMakeLiteral(vm *VM, w *Word) { vm.compilePush(vm.pop()) }
func doComma(vm *VM, w *Word)       { vm.compile(int32(vm.pop())) }
func doHere(vm *VM, w *Word)        { vm.push(vm.here) }
func doThere(vm *VM, w *Word)       { vm.push(vm.there) }
func doWhere(vm *VM, w *Word)       { vm.push(len(vm.dict)) }
func doAllot(vm *VM, w *Word)       { vm.allot(vm.pop()) }
func doAlignBang(vm *VM, w *Word)   { vm.alignHere() }

// doMakeConstant pops a value and turns the most recently defined word
// into a constant: invoking it pushes that value back.
func doMakeConstant(vm *VM, w *Word) {
	z := vm.pop()
	target := vm.WordAt(vm.lastCreated)
	target.Action = doPush
	target.Datum = z
}

func doPush(vm *VM, w *Word) { vm.push(w.Datum) }

// doCreate pops a name and installs a new word by it, sharing
// do_sequence's action as its body fills in: by itself the new word does
// nothing useful until `,`/`allot` lay down data for it or `will` gives it
// a does-part.
func doCreate(vm *VM, w *Word) {
	name := vm.stringAt(vm.pop())
	vm.install(name, doSequence, vm.here)
}

func doCreateLocal(vm *VM, w *Word) { vm.addLocal(vm.stringAt(vm.pop())) }
func doResetLocals(vm *VM, w *Word) { vm.beginLocals() }
func doCompileGrab(vm *VM, w *Word) { vm.compileGrabIfAny() }

func doFind(vm *VM, w *Word) {
	z := vm.pop()
	if idx, ok := vm.lookup(vm.stringAt(z)); ok {
		vm.push(idx)
		vm.push(-1)
	} else {
		vm.push(z)
		vm.push(0)
	}
}

func doStringComma(vm *VM, w *Word) { vm.push(vm.internString(vm.stringAt(vm.pop()))) }

func doParseNumber(vm *VM, w *Word) {
	z := vm.pop()
	text := vm.stringAt(z)
	if n, ok := parseNumber(text); ok {
		vm.push(n)
		vm.push(1)
	} else {
		vm.push(z)
		vm.push(0)
	}
}

func doEmit(vm *VM, w *Word) { vm.EmitRune(rune(vm.pop())) }
func doPrint(vm *VM, w *Word) {
	vm.PutString(strconv.Itoa(vm.pop()))
	vm.PutChar(' ')
}
func doAbsorb(vm *VM, w *Word) {
	c, ok := vm.input.GetChar()
	if !ok {
		vm.push(-1)
		return
	}
	vm.push(int(c))
}

func doExecute(vm *VM, w *Word) { vm.Run(vm.pop()) }

func doCatch(vm *VM, w *Word) {
	word := vm.pop()
	sp := len(vm.stack)
	complaint, threw := vm.protect(func() { vm.Run(word) })
	if threw {
		vm.stack = vm.stack[:sp]
		vm.push(complaint)
	} else {
		vm.push(0)
	}
}

func doThrow(vm *VM, w *Word) {
	complaint := vm.pop()
	if complaint != 0 {
		vm.escape(complaint)
	}
}

func doPrimError(vm *VM, w *Word) { vm.errorf("%s", vm.stringAt(vm.pop())) }

func doClearStack(vm *VM, w *Word) { vm.stack = vm.stack[:0] }

func doPrintStack(vm *VM, w *Word) {
	for i, v := range vm.stack {
		if i > 0 {
			vm.PutChar(' ')
		}
		vm.PutString(strconv.Itoa(v))
	}
	vm.PutChar('\n')
}

func doStartTracing(vm *VM, w *Word) { vm.tracer = defaultTracer }
func doStopTracing(vm *VM, w *Word)  { vm.tracer = nil }

// EnableTracing installs the default tracer, the host-facing equivalent of
// running "start-tracing" from a script.
func (vm *VM) EnableTracing() { vm.tracer = defaultTracer }

// DisableTracing removes whatever tracer is installed.
func (vm *VM) DisableTracing() { vm.tracer = nil }

// defaultTracer prints each word about to execute and the current stack to
// the output stream, the supplemented equivalent of the original's
// stderr-only tracer (SPEC_FULL.md §3). It always returns false: tracing
// keeps running word after word until stop-tracing disarms it, rather than
// requesting early termination of the sequence it's watching.
func defaultTracer(vm *VM, word int) bool {
	if word < len(vm.dict) {
		vm.PutString("trace: " + vm.dict[word].Name + "\t")
	} else {
		vm.PutString("trace: bad word #" + strconv.Itoa(word))
	}
	doPrintStack(vm, nil)
	return false
}

func i2f(i int) float32 { return math.Float32frombits(uint32(int32(i))) }
func f2i(f float32) int { return int(int32(math.Float32bits(f))) }

func doFAdd(vm *VM, w *Word) { y, z := vm.pop2(); vm.push(f2i(i2f(y) + i2f(z))) }
func doFSub(vm *VM, w *Word) { y, z := vm.pop2(); vm.push(f2i(i2f(y) - i2f(z))) }
func doFMul(vm *VM, w *Word) { y, z := vm.pop2(); vm.push(f2i(i2f(y) * i2f(z))) }
func doFDiv(vm *VM, w *Word) { y, z := vm.pop2(); vm.push(f2i(i2f(y) / i2f(z))) }
func doFPrint(vm *VM, w *Word) {
	z := vm.pop()
	vm.PutString(strconv.FormatFloat(float64(i2f(z)), 'g', -1, 32))
	vm.PutChar(' ')
}

func doIsNegative(vm *VM, w *Word) { z := vm.pop(); vm.push(boolInt(z < 0)) }
func doIsZero(vm *VM, w *Word)     { z := vm.pop(); vm.push(boolInt(z == 0)) }
func doAdd2(vm *VM, w *Word)       { vm.push(vm.pop() + 2) }
func doAdd1(vm *VM, w *Word)       { vm.push(vm.pop() + 1) }
func doSub1(vm *VM, w *Word)       { vm.push(vm.pop() - 1) }
func doSub2(vm *VM, w *Word)       { vm.push(vm.pop() - 2) }
func doTimes2(vm *VM, w *Word)     { vm.push(vm.pop() << 1) }
func doTimes4(vm *VM, w *Word)     { vm.push(vm.pop() << 2) }
func doDiv2(vm *VM, w *Word)       { vm.push(vm.pop() >> 1) }
func doDiv4(vm *VM, w *Word)       { vm.push(vm.pop() >> 2) }

// compilePush compiles a literal: the (LITERAL, value) cell pair that
// pushes value when the sequence runs it.
func (vm *VM) compilePush(value int) {
	vm.compile(int32(wordLiteral))
	vm.compile(int32(value))
}

// Unsafe words: raw host-pointer access, entirely unchecked against the
// arena. datum/z here are native memory addresses, not arena offsets.

func doToData(vm *VM, w *Word)  { vm.push(vm.arenaAddr(vm.pop())) }
func doFetchU(vm *VM, w *Word)  { vm.push(vm.uFetch(vm.pop())) }
func doCFetchU(vm *VM, w *Word) { vm.push(int(vm.uCFetch(vm.pop()))) }
func doStoreU(vm *VM, w *Word) {
	y, z := vm.pop2()
	vm.uStore(z, y)
}
func doCStoreU(vm *VM, w *Word) {
	y, z := vm.pop2()
	vm.uCStore(z, byte(y))
}
func doPlusStoreU(vm *VM, w *Word) {
	y, z := vm.pop2()
	vm.uStore(z, vm.uFetch(z)+y)
}

func doWithIOOnFile(vm *VM, w *Word) {
	word := vm.pop()
	mode := vm.stringAt(vm.pop())
	filename := vm.stringAt(vm.pop())
	vm.withIOOnFile(filename, mode, word)
}

func doRepl(vm *VM, w *Word) { vm.InteractiveLoop() }

func doPrimLoad(vm *VM, w *Word) {
	filename := vm.stringAt(vm.pop())
	if complaint, threw := vm.loadFile(filename); threw {
		vm.escape(complaint)
	}
}
