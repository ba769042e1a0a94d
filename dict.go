package tusl

// install appends a new entry to the fixed-capacity dictionary, raising an
// error if it is already full. Lookup afterward favors the most recently
// installed entry of a given name, so installing a name a second time
// shadows the first without disturbing it (spec.md §3's "most recent
// installation wins").
func (vm *VM) install(name string, action Action, datum int) int {
	if len(vm.dict) >= cap(vm.dict) {
		vm.errorf("Dictionary full")
	}
	vm.dict = append(vm.dict, Word{Name: name, Action: action, Datum: datum})
	vm.lastCreated = len(vm.dict) - 1
	return vm.lastCreated
}

// Install registers a host-defined primitive under name, for embedding
// applications. action is invoked with the Word passed to lookup, so a
// closure built by RunVoid0..RunInt4 can ignore it entirely.
func (vm *VM) Install(name string, action Action, datum int) int {
	return vm.install(name, action, datum)
}

// lookup searches the dictionary from most- to least-recently installed,
// returning the index and ok=true on a match.
func (vm *VM) lookup(name string) (int, bool) {
	for i := len(vm.dict) - 1; i >= 0; i-- {
		if vm.dict[i].Name == name {
			return i, true
		}
	}
	return 0, false
}

// Find reports the dictionary index of name, or ok=false if no word by
// that name has been installed. Backs the "find" primitive.
func (vm *VM) Find(name string) (int, bool) { return vm.lookup(name) }

// WordAt returns the dictionary entry at index i, raising an error if i is
// out of range.
func (vm *VM) WordAt(i int) *Word {
	if i < 0 || i >= len(vm.dict) {
		vm.errorf("Dictionary index out of range: %d", i)
	}
	return &vm.dict[i]
}

// beginLocals resets the scope of locals being compiled for the colon
// definition currently under construction. Called when mode first enters
// ModeAwaitLocalName.
func (vm *VM) beginLocals() { vm.locals = vm.locals[:0] }

// addLocal appends name to the current local scope, raising an error if
// more than numMaxLocals locals have been named for this definition.
func (vm *VM) addLocal(name string) {
	if len(vm.locals) >= numMaxLocals {
		vm.errorf("Too many locals (max %d)", numMaxLocals)
	}
	vm.locals = append(vm.locals, name)
}

// resolve looks a name up the way the dispatcher does: as a local within
// the definition currently being compiled first, falling back to the main
// dictionary. A local resolves to one of the fixed LOCAL0..LOCAL4
// indices, which every compiled sequence interprets the same way
// regardless of which definition or which local name it stands for.
func (vm *VM) resolve(name string) (int, bool) {
	if slot, ok := vm.lookupLocal(name); ok {
		return wordLocal0 + slot, true
	}
	return vm.lookup(name)
}

// compileGrabIfAny compiles the GRAB opcode matching the number of locals
// declared for the definition in progress, if any were declared. Called
// when local-name declaration finishes (the '}' token).
func (vm *VM) compileGrabIfAny() {
	if n := len(vm.locals); n > 0 {
		vm.compile(int32(wordGrab1 + n - 1))
	}
}

// lookupLocal reports the LOCAL slot (0 is "z", the most recently declared
// name) that name was bound to in the current local scope, or ok=false if
// it is not a local. Declaration order and grab order run opposite ways:
// the last-declared name ends up on top of the data stack and so is
// grabbed first, into slot 0.
func (vm *VM) lookupLocal(name string) (int, bool) {
	for i, n := range vm.locals {
		if n == name {
			return len(vm.locals) - 1 - i, true
		}
	}
	return 0, false
}
