package tusl

import "encoding/binary"

// cellSize is the width of one compiled "machine integer" cell in the data
// arena. Dictionary indices, literals, and string offsets all fit in this
// width; the data stack itself holds full Go ints and is not
// byte-addressed, so it is unaffected by this choice.
const cellSize = 4

// Here returns the next free byte of the "code" side of the arena.
func (vm *VM) Here() int { return vm.here }

// There returns the next free byte of the "string" side of the arena.
func (vm *VM) There() int { return vm.there }

// ArenaSize returns the total size of the data arena in bytes.
func (vm *VM) ArenaSize() int { return len(vm.arena) }

func (vm *VM) alignHere() {
	vm.here = (vm.here + cellSize - 1) &^ (cellSize - 1)
}

// ensureSpace raises an "Out of space" error unless size more bytes can be allotted
// from here while preserving the reserved region below there.
func (vm *VM) ensureSpace(size int) {
	if vm.there < vm.here+vm.reserved+size {
		vm.errorf("Out of space")
	}
}

// checkArenaIndex validates that a single byte at i is addressable.
func (vm *VM) checkArenaIndex(i int) {
	if i < 0 || i >= len(vm.arena) {
		vm.errorf("Arena index out of range: %d", i)
	}
}

// ByteAt returns the byte at arena offset i, raising an error if i is out of
// range.
func (vm *VM) ByteAt(i int) byte {
	vm.checkArenaIndex(i)
	return vm.arena[i]
}

// SetByteAt stores a byte at arena offset i, raising an error if i is out of
// range.
func (vm *VM) SetByteAt(i int, b byte) {
	vm.checkArenaIndex(i)
	vm.arena[i] = b
}

// CellAt reads the 4-byte cell starting at arena offset i.
func (vm *VM) CellAt(i int) int32 {
	vm.checkArenaIndex(i)
	vm.checkArenaIndex(i + cellSize - 1)
	return int32(binary.LittleEndian.Uint32(vm.arena[i:]))
}

// SetCellAt stores a 4-byte cell starting at arena offset i.
func (vm *VM) SetCellAt(i int, v int32) {
	vm.checkArenaIndex(i)
	vm.checkArenaIndex(i + cellSize - 1)
	binary.LittleEndian.PutUint32(vm.arena[i:], uint32(v))
}

// compile appends one cell to the code side of the arena, cell-aligning
// here first, and returns the offset it was written at.
func (vm *VM) compile(v int32) int {
	vm.alignHere()
	vm.ensureSpace(cellSize)
	at := vm.here
	vm.SetCellAt(at, v)
	vm.here += cellSize
	return at
}

// allot grows here by n bytes without writing anything.
func (vm *VM) allot(n int) {
	if n < 0 {
		vm.errorf("Negative allot: %d", n)
	}
	vm.ensureSpace(n)
	vm.here += n
}

// internString copies s, NUL-terminated, onto the string side of the arena
// (growing there downward) and returns the offset of its first byte.
func (vm *VM) internString(s string) int {
	size := len(s) + 1
	vm.ensureSpace(size)
	vm.there -= size
	copy(vm.arena[vm.there:], s)
	vm.arena[vm.there+len(s)] = 0
	return vm.there
}

// stringAt reads a NUL-terminated string starting at arena offset i.
func (vm *VM) stringAt(i int) string {
	vm.checkArenaIndex(i)
	end := i
	for end < len(vm.arena) && vm.arena[end] != 0 {
		end++
	}
	return string(vm.arena[i:end])
}

// lastResortMessage reports the message reserved at arena offset 1, used
// when there is no room left to format a normal diagnostic.
func (vm *VM) lastResortMessage() string {
	return vm.stringAt(1)
}
