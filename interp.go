package tusl

import "reflect"

// localsFrame holds the values an activation grabbed off the data stack,
// in grab order: frame.values[0] is "z", the name bound to the first
// grabbed (i.e. most recently pushed) argument.
type localsFrame struct {
	values [numMaxLocals]int
}

// inertAction is installed on every reserved dictionary index that the
// inner interpreter handles inline by index rather than by calling
// Action: calling it directly (e.g. by looking the name up and running it
// from the interpreter) is always a mistake.
func inertAction(vm *VM, w *Word) {
	if idx, ok := vm.lookup(w.Name); ok {
		vm.errorf("execute of a sequential-only word: %d", idx)
		return
	}
	vm.errorf("execute of a sequential-only word: %s", w.Name)
}

// doWill is the action installed on a word once will has compiled a
// does-part for it: push the address it was created with, then run the
// does-part like any other sequence.
func doWill(vm *VM, w *Word) {
	vm.push(w.Created)
	vm.execSequence(w)
}

// isSequence reports whether action is doSequence, identifying a word
// whose Datum is the arena offset of a compiled cell sequence. Named
// top-level functions compare reliably by reflect.Value.Pointer(); this
// package never stores a closure as a colon-word's action.
func isSequence(action Action) bool {
	return action != nil && reflect.ValueOf(action).Pointer() == reflect.ValueOf(doSequence).Pointer()
}

// doSequence is the action every colon-defined word carries: w.Datum is
// the arena offset of its compiled body.
func doSequence(vm *VM, w *Word) { vm.execSequence(w) }

// Run executes the dictionary word at index, as if it had been invoked
// directly from interpret mode: reserved primitives that only make sense
// inside a compiled sequence raise an error instead of running.
func (vm *VM) Run(index int) {
	w := vm.WordAt(index)
	if index <= lastSpecialPrim {
		vm.errorf("execute of a sequential-only word: %d", index)
		return
	}
	w.Action(vm, w)
}

// execSequence runs the cell sequence belonging to w, starting at w.Datum,
// until it reaches EXIT, looping in place (rather than recursing) on tail
// calls to other compiled sequences so that deep recursion in well-formed
// tail position costs O(1) native stack, per spec.md §4.5.
//
// The colon-tracer, if installed, is consulted here at call entry and
// again immediately before every tail-call replacement, per spec.md §4.4;
// either consultation returning true stops execution of this sequence
// without running any more of its body.
func (vm *VM) execSequence(w *Word) {
	if vm.colonTracer != nil && vm.colonTracer(vm, w) {
		return
	}

	savedProg, savedFrame := vm.prog, vm.frame
	var frame localsFrame
	vm.frame = &frame
	defer func() {
		vm.prog, vm.frame = savedProg, savedFrame
	}()
	vm.prog = w.Datum

	for {
		vm.steps++
		if vm.steps&stepCheckMask == 0 {
			select {
			case <-vm.ctx.Done():
				vm.die(vm.ctx.Err().Error())
			default:
			}
		}

		idx := int(vm.CellAt(vm.prog))
		vm.prog += cellSize

		// The tracer hook is consulted before every fetched cell, not just
		// calls to other words: it may request early termination of this
		// sequence by returning true.
		if vm.tracer != nil && vm.tracer(vm, idx) {
			return
		}

		switch {
		case idx == wordExit:
			return

		case idx == wordLiteral:
			v := vm.CellAt(vm.prog)
			vm.prog += cellSize
			vm.push(int(v))

		case idx == wordBranch:
			target := int(vm.CellAt(vm.prog))
			vm.prog += cellSize
			if vm.pop() == 0 {
				vm.prog = target
			}

		case idx >= wordLocal0 && idx <= wordLocal4:
			vm.push(frame.values[idx-wordLocal0])

		case idx >= wordGrab1 && idx <= wordGrab5:
			n := idx - wordGrab1 + 1
			for i := 0; i < n; i++ {
				frame.values[i] = vm.pop()
			}

		case idx == wordWill:
			// The word most recently installed (by : or create) becomes a
			// does-word: everything compiled after this cell, up to the
			// closing ;, is its does-part, and its own data address is
			// handed back to it each time it runs.
			target := vm.WordAt(vm.lastCreated)
			target.Created = target.Datum
			target.Datum = vm.prog
			target.Action = doWill
			return

		default:
			callee := vm.WordAt(idx)
			if callee.Action == nil {
				vm.errorf("%s has no action", callee.Name)
			}
			if vm.logfn != nil {
				vm.logfn("call %s @%d", callee.Name, vm.prog)
			}
			if isSequence(callee.Action) && int(vm.CellAt(vm.prog)) == wordExit {
				if vm.colonTracer != nil && vm.colonTracer(vm, w) {
					return
				}
				vm.prog = callee.Datum
				frame = localsFrame{}
				continue
			}
			callee.Action(vm, callee)
		}
	}
}
