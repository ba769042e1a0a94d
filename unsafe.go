package tusl

import "unsafe"

// arenaAddr converts an arena offset into a raw address of the underlying
// byte slice's backing array, the Go analogue of the original's practice of
// treating an arena cell as a genuine C pointer. Unlike every other memory
// primitive in this package, none of the u-suffixed operators below bounds-
// check their argument: that is the whole point of the vocabulary, and
// callers who reach for it accept everything C would have let them get
// away with, including a crash.
func (vm *VM) arenaAddr(offset int) int {
	if len(vm.arena) == 0 {
		vm.errorf("Unsafe access to empty arena")
	}
	return int(uintptr(unsafe.Pointer(&vm.arena[0])) + uintptr(offset))
}

func (vm *VM) uFetch(addr int) int {
	return int(*(*int32)(unsafe.Pointer(uintptr(addr))))
}

func (vm *VM) uStore(addr int, v int) {
	*(*int32)(unsafe.Pointer(uintptr(addr))) = int32(v)
}

func (vm *VM) uCFetch(addr int) byte {
	return *(*byte)(unsafe.Pointer(uintptr(addr)))
}

func (vm *VM) uCStore(addr int, b byte) {
	*(*byte)(unsafe.Pointer(uintptr(addr))) = b
}
